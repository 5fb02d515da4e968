package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"sort"
	"strconv"
	"time"

	"callcenter/internal/lifecycle"
	"callcenter/internal/models"
	"callcenter/internal/pdf"
	"callcenter/internal/repositories"
)

var (
	ErrAgentNotFound   = errors.New("agent not found")
	ErrEmailDisabled   = errors.New("email is not configured")
	ErrNoReportAddress = errors.New("no recipient address")
)

type AgentStats struct {
	AgentID         int64   `json:"agent_id"`
	AgentName       string  `json:"agent_name"`
	Total           int     `json:"total"`
	Completed       int     `json:"completed"`
	CompletionRate  float64 `json:"completion_rate"`
	AverageProgress int     `json:"average_progress"`
}

type ReportSummary struct {
	Tasks    lifecycle.Summary      `json:"tasks"`
	Outcomes map[models.Outcome]int `json:"outcomes"`
	Agents   []AgentStats           `json:"agents"`
}

type ReportService struct {
	Tasks  repositories.TaskRepository
	Calls  repositories.CallLogRepository
	Users  repositories.UserRepository
	PDF    pdf.Generator
	Mailer EmailService
	now    func() time.Time
}

func NewReportService(
	tasks repositories.TaskRepository,
	calls repositories.CallLogRepository,
	users repositories.UserRepository,
	gen pdf.Generator,
	mailer EmailService,
) *ReportService {
	return &ReportService{Tasks: tasks, Calls: calls, Users: users, PDF: gen, Mailer: mailer, now: time.Now}
}

// GetSummary aggregates the tasks matched by filter. Outcome counts come from
// the call log of those same tasks, so they only cover completions logged
// through the API.
func (s *ReportService) GetSummary(ctx context.Context, filter models.TaskFilter) (*ReportSummary, error) {
	tasks, err := s.Tasks.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	outcomes, err := s.Calls.CountOutcomes(ctx, filter)
	if err != nil {
		return nil, err
	}
	for _, o := range []models.Outcome{models.OutcomeReachable, models.OutcomeUnreachable, models.OutcomeNotInterested} {
		if _, ok := outcomes[o]; !ok {
			outcomes[o] = 0
		}
	}

	agents, err := s.agentStats(ctx, tasks)
	if err != nil {
		return nil, err
	}
	return &ReportSummary{
		Tasks:    lifecycle.Summarize(tasks),
		Outcomes: outcomes,
		Agents:   agents,
	}, nil
}

func (s *ReportService) agentStats(ctx context.Context, tasks []models.Task) ([]AgentStats, error) {
	byAgent := map[int64][]models.Task{}
	for _, t := range tasks {
		byAgent[t.AssigneeID] = append(byAgent[t.AssigneeID], t)
	}

	out := make([]AgentStats, 0, len(byAgent))
	for agentID, list := range byAgent {
		sum := lifecycle.Summarize(list)
		st := AgentStats{
			AgentID:         agentID,
			Total:           sum.Total,
			Completed:       sum.Completed,
			AverageProgress: sum.AverageProgress,
		}
		if sum.Total > 0 {
			st.CompletionRate = float64(sum.Completed) / float64(sum.Total)
		}
		u, err := s.Users.GetByID(ctx, agentID)
		if err != nil {
			return nil, err
		}
		if u != nil {
			st.AgentName = u.FullName
		}
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AgentID < out[j].AgentID })
	return out, nil
}

var csvHeader = []string{
	"id", "retailer_id", "retailer_name", "assignee_id", "task_type", "priority",
	"due_date", "status", "progress", "outcome", "comment",
}

// WriteTasksCSV writes one row per task in the given order.
func WriteTasksCSV(w io.Writer, tasks []models.Task) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, t := range tasks {
		outcome, comment := "", ""
		if t.Outcome != nil {
			outcome = string(*t.Outcome)
		}
		if t.Comment != nil {
			comment = *t.Comment
		}
		row := []string{
			strconv.FormatInt(t.ID, 10),
			t.RetailerID,
			t.RetailerName,
			strconv.FormatInt(t.AssigneeID, 10),
			t.TaskType,
			string(t.Priority),
			t.DueDate,
			string(t.Status),
			strconv.Itoa(lifecycle.DisplayProgress(t)),
			outcome,
			comment,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *ReportService) ExportTasksCSV(ctx context.Context, w io.Writer, filter models.TaskFilter) error {
	tasks, err := s.Tasks.FindAll(ctx, filter)
	if err != nil {
		return err
	}
	return WriteTasksCSV(w, tasks)
}

// AgentReportPDF renders the agent's task sheet and returns the file path.
func (s *ReportService) AgentReportPDF(ctx context.Context, agentID int64) (string, *models.User, error) {
	agent, err := s.Users.GetByID(ctx, agentID)
	if err != nil {
		return "", nil, err
	}
	if agent == nil {
		return "", nil, ErrAgentNotFound
	}
	tasks, err := s.Tasks.FindAll(ctx, models.TaskFilter{AssigneeID: &agentID})
	if err != nil {
		return "", nil, err
	}
	path, err := s.PDF.GenerateAgentReport(pdf.AgentReportData{
		AgentID:   agent.ID,
		AgentName: agent.FullName,
		Tasks:     tasks,
		CreatedAt: s.now(),
	})
	if err != nil {
		return "", nil, fmt.Errorf("generate agent report: %w", err)
	}
	return path, agent, nil
}

// EmailAgentReport mails the agent's PDF report to "to", or to the agent when
// "to" is empty.
func (s *ReportService) EmailAgentReport(ctx context.Context, agentID int64, to string) (string, error) {
	if s.Mailer == nil {
		return "", ErrEmailDisabled
	}
	path, agent, err := s.AgentReportPDF(ctx, agentID)
	if err != nil {
		return "", err
	}
	if to == "" {
		to = agent.Email
	}
	if to == "" {
		return "", ErrNoReportAddress
	}
	if err := s.Mailer.SendReportEmail(to, agent.FullName, path); err != nil {
		return "", err
	}
	log.Printf("[report][email][ok] agent=%d to=%s", agentID, to)
	return to, nil
}
