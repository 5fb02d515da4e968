// internal/services/task_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"callcenter/internal/lifecycle"
	"callcenter/internal/models"
	"callcenter/internal/repositories"
)

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrTaskCompleted    = errors.New("task already completed")
	ErrRetailerNotFound = errors.New("retailer not found")
	ErrAssigneeNotFound = errors.New("assignee not found")
	ErrInvalidDueDate   = errors.New("invalid due_date, want YYYY-MM-DD")
)

// TaskService defines the interface for task-related business logic.
type TaskService interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	GetByID(ctx context.Context, id int64) (*models.Task, error)
	GetAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	Reassign(ctx context.Context, id int64, assigneeID int64) (*models.Task, error)
	Delete(ctx context.Context, id int64) error

	MarkAsCalled(ctx context.Context, id int64) (*models.Task, error)
	Complete(ctx context.Context, id int64, outcome models.Outcome, comment string) (*models.Task, error)
	Summary(ctx context.Context, filter models.TaskFilter) (lifecycle.Summary, error)
	History(ctx context.Context, id int64) ([]models.CallLog, error)
}

type taskService struct {
	repo      repositories.TaskRepository
	retailers repositories.RetailerRepository
	calls     repositories.CallLogRepository
	users     repositories.UserRepository
	notifier  Notifier
	now       func() time.Time
}

// NewTaskService creates a new instance of TaskService. notifier may be nil.
func NewTaskService(
	repo repositories.TaskRepository,
	retailers repositories.RetailerRepository,
	calls repositories.CallLogRepository,
	users repositories.UserRepository,
	notifier Notifier,
) TaskService {
	return &taskService{
		repo:      repo,
		retailers: retailers,
		calls:     calls,
		users:     users,
		notifier:  notifier,
		now:       time.Now,
	}
}

func (s *taskService) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	if !task.Priority.Valid() {
		return nil, models.ErrInvalidPriority
	}
	if task.DueDate != "" {
		if _, err := time.Parse(time.DateOnly, task.DueDate); err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDueDate, task.DueDate)
		}
	}

	assignee, err := s.users.GetByID(ctx, task.AssigneeID)
	if err != nil {
		return nil, err
	}
	if assignee == nil {
		return nil, ErrAssigneeNotFound
	}

	retailer, err := s.retailers.GetByRetailerID(ctx, task.RetailerID)
	if err != nil {
		return nil, err
	}
	if retailer == nil {
		return nil, ErrRetailerNotFound
	}
	if strings.TrimSpace(task.RetailerName) == "" {
		task.RetailerName = retailer.Name
	}

	// a new task always starts untouched
	task.Status = models.StatusPending
	task.Progress = nil
	task.Outcome = nil
	task.Comment = nil

	now := s.now()
	task.CreatedAt = now
	task.UpdatedAt = now

	if err := s.repo.Store(ctx, task); err != nil {
		return nil, err
	}
	s.notifyUser(ctx, task.AssigneeID, formatTask("📌 New task", task))
	return task, nil
}

func (s *taskService) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *taskService) GetAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	return s.repo.FindAll(ctx, filter)
}

func (s *taskService) Reassign(ctx context.Context, id int64, assigneeID int64) (*models.Task, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrTaskNotFound
	}
	assignee, err := s.users.GetByID(ctx, assigneeID)
	if err != nil {
		return nil, err
	}
	if assignee == nil {
		return nil, ErrAssigneeNotFound
	}
	if err := s.repo.UpdateAssignee(ctx, id, assigneeID); err != nil {
		if errors.Is(err, repositories.ErrNoRowsAffected) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if updated != nil {
		s.notifyUser(ctx, assigneeID, formatTask("👤 Task assigned to you", updated))
	}
	return updated, nil
}

func (s *taskService) Delete(ctx context.Context, id int64) error {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrTaskNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNoRowsAffected) {
			return ErrTaskNotFound
		}
		return err
	}
	return nil
}

// MarkAsCalled logs a call attempt on an open task.
func (s *taskService) MarkAsCalled(ctx context.Context, id int64) (*models.Task, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrTaskNotFound
	}
	if current.Status == models.StatusCompleted {
		return nil, ErrTaskCompleted
	}

	updated := lifecycle.MarkAsCalled([]models.Task{*current}, id)[0]
	if err := s.persist(ctx, &updated, models.CallAttempt); err != nil {
		return nil, err
	}
	log.Printf("[task][called][ok] id=%d progress=%d", id, lifecycle.DisplayProgress(updated))
	return &updated, nil
}

// Complete closes an open task with the call outcome. A task's outcome is set
// once; completing it again is rejected.
func (s *taskService) Complete(ctx context.Context, id int64, outcome models.Outcome, comment string) (*models.Task, error) {
	if !outcome.Valid() {
		return nil, models.ErrInvalidOutcome
	}
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrTaskNotFound
	}
	if current.Status == models.StatusCompleted {
		return nil, ErrTaskCompleted
	}

	updated := lifecycle.Complete([]models.Task{*current}, id, outcome, comment)[0]
	if err := s.persist(ctx, &updated, models.CallCompleted); err != nil {
		return nil, err
	}
	log.Printf("[task][complete][ok] id=%d outcome=%q", id, outcome)
	s.notifyUser(ctx, updated.CreatorID, formatTask("✅ Task completed", &updated))
	return &updated, nil
}

func (s *taskService) Summary(ctx context.Context, filter models.TaskFilter) (lifecycle.Summary, error) {
	tasks, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return lifecycle.Summary{}, err
	}
	return lifecycle.Summarize(tasks), nil
}

func (s *taskService) History(ctx context.Context, id int64) ([]models.CallLog, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrTaskNotFound
	}
	return s.calls.ListByTask(ctx, id)
}

// persist saves the transition, then records the call. The call log and the
// retailer's last call date are best effort.
func (s *taskService) persist(ctx context.Context, t *models.Task, kind models.CallKind) error {
	now := s.now()
	t.UpdatedAt = now
	if err := s.repo.SaveLifecycle(ctx, t); err != nil {
		if errors.Is(err, repositories.ErrNoRowsAffected) {
			return s.staleTaskError(ctx, t.ID)
		}
		return err
	}

	entry := &models.CallLog{
		TaskID:     t.ID,
		AgentID:    t.AssigneeID,
		RetailerID: t.RetailerID,
		Kind:       kind,
		Outcome:    t.Outcome,
		Comment:    t.Comment,
		Progress:   lifecycle.DisplayProgress(*t),
		CreatedAt:  now,
	}
	if err := s.calls.Create(ctx, entry); err != nil {
		log.Printf("[task][calllog][warn] task=%d kind=%s: %v", t.ID, kind, err)
	}
	if err := s.retailers.UpdateLastCallDate(ctx, t.RetailerID, now); err != nil {
		log.Printf("[task][retailer][warn] task=%d retailer=%s: %v", t.ID, t.RetailerID, err)
	}
	return nil
}

// staleTaskError tells apart a task deleted or completed between read and write.
func (s *taskService) staleTaskError(ctx context.Context, id int64) error {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrTaskNotFound
	}
	log.Printf("[task][save][conflict] id=%d status=%q", id, current.Status)
	return ErrTaskCompleted
}

func (s *taskService) notifyUser(ctx context.Context, userID int64, text string) {
	if s.notifier == nil || userID == 0 {
		return
	}
	chatID, err := s.users.GetTelegramChatID(ctx, userID)
	if err != nil {
		log.Printf("[task][notify] get chat id failed: user=%d err=%v", userID, err)
		return
	}
	if chatID == 0 {
		return
	}
	if err := s.notifier.Notify(chatID, text); err != nil {
		log.Printf("[task][notify][err] user=%d: %v", userID, err)
	}
}
