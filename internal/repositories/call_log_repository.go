package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"callcenter/internal/models"
)

type CallLogRepository interface {
	Create(ctx context.Context, l *models.CallLog) error
	ListByTask(ctx context.Context, taskID int64) ([]models.CallLog, error)
	CountOutcomes(ctx context.Context, filter models.TaskFilter) (map[models.Outcome]int, error)
}

type callLogRepository struct {
	db *sql.DB
}

func NewCallLogRepository(db *sql.DB) CallLogRepository {
	return &callLogRepository{db: db}
}

func (r *callLogRepository) Create(ctx context.Context, l *models.CallLog) error {
	const q = `
		INSERT INTO call_logs (task_id, agent_id, retailer_id, kind, outcome, comment, progress, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id`
	err := r.db.QueryRowContext(ctx, q,
		l.TaskID, l.AgentID, l.RetailerID, l.Kind, l.Outcome, l.Comment, l.Progress, l.CreatedAt,
	).Scan(&l.ID)
	if err != nil {
		return fmt.Errorf("create call log: %w", err)
	}
	return nil
}

func (r *callLogRepository) ListByTask(ctx context.Context, taskID int64) ([]models.CallLog, error) {
	const q = `
		SELECT id, task_id, agent_id, retailer_id, kind, outcome, comment, progress, created_at
		FROM call_logs
		WHERE task_id=$1
		ORDER BY created_at ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, q, taskID)
	if err != nil {
		return nil, fmt.Errorf("list call logs: %w", err)
	}
	defer rows.Close()

	var out []models.CallLog
	for rows.Next() {
		var (
			l       models.CallLog
			outcome sql.NullString
			comment sql.NullString
		)
		if err := rows.Scan(&l.ID, &l.TaskID, &l.AgentID, &l.RetailerID, &l.Kind, &outcome, &comment, &l.Progress, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan call log: %w", err)
		}
		if outcome.Valid {
			o := models.Outcome(outcome.String)
			l.Outcome = &o
		}
		if comment.Valid {
			c := comment.String
			l.Comment = &c
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// CountOutcomes counts logged completions of the tasks matched by filter.
func (r *callLogRepository) CountOutcomes(ctx context.Context, filter models.TaskFilter) (map[models.Outcome]int, error) {
	conditions, args := taskFilterConditions(filter, "t.")
	conditions = append([]string{"l.kind='completed'", "l.outcome IS NOT NULL"}, conditions...)
	q := `
		SELECT l.outcome, COUNT(*)
		FROM call_logs l
		JOIN tasks t ON t.id = l.task_id
		WHERE ` + strings.Join(conditions, " AND ") + `
		GROUP BY l.outcome`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("count outcomes: %w", err)
	}
	defer rows.Close()

	res := map[models.Outcome]int{}
	for rows.Next() {
		var (
			o models.Outcome
			n int
		)
		if err := rows.Scan(&o, &n); err != nil {
			return nil, err
		}
		res[o] = n
	}
	return res, rows.Err()
}
