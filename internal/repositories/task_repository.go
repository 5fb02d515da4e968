package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"callcenter/internal/models"
)

// ErrNoRowsAffected reports a write that matched no row.
var ErrNoRowsAffected = errors.New("no rows affected")

type TaskRepository interface {
	Store(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id int64) (*models.Task, error)
	FindAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	Delete(ctx context.Context, id int64) error

	// SaveLifecycle writes the fields owned by the lifecycle transitions.
	SaveLifecycle(ctx context.Context, task *models.Task) error
	UpdateAssignee(ctx context.Context, id int64, assigneeID int64) error
}

type taskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = `id, assignee_id, creator_id, retailer_id, retailer_name, priority, due_date,
       status, task_type, description, outcome, comment, progress, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(s rowScanner, t *models.Task) error {
	var (
		outcome  sql.NullString
		comment  sql.NullString
		progress sql.NullInt64
	)
	if err := s.Scan(
		&t.ID, &t.AssigneeID, &t.CreatorID, &t.RetailerID, &t.RetailerName, &t.Priority, &t.DueDate,
		&t.Status, &t.TaskType, &t.Description, &outcome, &comment, &progress, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return err
	}
	t.Outcome, t.Comment, t.Progress = nil, nil, nil
	if outcome.Valid {
		o := models.Outcome(outcome.String)
		t.Outcome = &o
	}
	if comment.Valid {
		c := comment.String
		t.Comment = &c
	}
	if progress.Valid {
		p := int(progress.Int64)
		t.Progress = &p
	}
	return nil
}

func (r *taskRepository) Store(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (
			assignee_id, creator_id, retailer_id, retailer_name, priority, due_date,
			status, task_type, description, outcome, comment, progress, created_at, updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		task.AssigneeID, task.CreatorID, task.RetailerID, task.RetailerName, task.Priority, task.DueDate,
		task.Status, task.TaskType, task.Description, task.Outcome, task.Comment, task.Progress,
		task.CreatedAt, task.UpdatedAt,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return fmt.Errorf("store task: %w", err)
	}
	return nil
}

func (r *taskRepository) FindByID(ctx context.Context, id int64) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	task := &models.Task{}
	if err := scanTask(r.db.QueryRowContext(ctx, query, id), task); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return task, nil
}

func (r *taskRepository) FindAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	baseQuery := `SELECT ` + taskColumns + ` FROM tasks`

	conditions, args := taskFilterConditions(filter, "")
	if len(conditions) > 0 {
		baseQuery += " WHERE " + strings.Join(conditions, " AND ")
	}
	baseQuery += " ORDER BY due_date ASC, id ASC"

	rows, err := r.db.QueryContext(ctx, baseQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := scanTask(rows, &t); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// taskFilterConditions builds the WHERE terms for filter. prefix qualifies the
// column names when the tasks table is joined.
func taskFilterConditions(filter models.TaskFilter, prefix string) ([]string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}
	argID := 1

	if filter.AssigneeID != nil {
		conditions = append(conditions, fmt.Sprintf("%sassignee_id = $%d", prefix, argID))
		args = append(args, *filter.AssigneeID)
		argID++
	}
	if filter.RetailerID != nil {
		conditions = append(conditions, fmt.Sprintf("%sretailer_id = $%d", prefix, argID))
		args = append(args, *filter.RetailerID)
		argID++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("%sstatus = $%d", prefix, argID))
		args = append(args, *filter.Status)
		argID++
	}
	if filter.Priority != nil {
		conditions = append(conditions, fmt.Sprintf("%spriority = $%d", prefix, argID))
		args = append(args, *filter.Priority)
	}
	return conditions, args
}

// SaveLifecycle only touches open tasks. It returns ErrNoRowsAffected when the
// task is gone or was completed since it was read.
func (r *taskRepository) SaveLifecycle(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE tasks SET
			status=$1, progress=$2, outcome=$3, comment=$4, updated_at=$5
		WHERE id=$6 AND status <> 'Completed'`
	res, err := r.db.ExecContext(ctx, query,
		task.Status, task.Progress, task.Outcome, task.Comment, task.UpdatedAt, task.ID,
	)
	if err != nil {
		return fmt.Errorf("save task lifecycle: %w", err)
	}
	return expectRow(res, "save task lifecycle")
}

func (r *taskRepository) UpdateAssignee(ctx context.Context, id int64, assigneeID int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET assignee_id=$1, updated_at=NOW() WHERE id=$2`, assigneeID, id)
	if err != nil {
		return fmt.Errorf("update task assignee: %w", err)
	}
	return expectRow(res, "update task assignee")
}

func (r *taskRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return expectRow(res, "delete task")
}

func expectRow(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, ErrNoRowsAffected)
	}
	return nil
}
