package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"callcenter/internal/models"
)

func exportTasks() []models.Task {
	notInterested := models.OutcomeNotInterested
	comment := `said "call next month", busy`
	return []models.Task{
		{ID: 1, RetailerID: "RT001", RetailerName: "Boutique Amina", AssigneeID: 2, TaskType: "Recharge follow-up",
			Priority: models.PriorityHigh, DueDate: "2025-03-20", Status: models.StatusPending},
		{ID: 2, RetailerID: "RT002", RetailerName: "Kiosque Central", AssigneeID: 2, TaskType: "Balance check",
			Priority: models.PriorityMedium, DueDate: "2025-03-21", Status: models.StatusInProgress, Progress: intPtr(75)},
		{ID: 3, RetailerID: "RT003", RetailerName: "Épicerie du Port", AssigneeID: 3, TaskType: "Recharge follow-up",
			Priority: models.PriorityLow, DueDate: "2025-03-22", Status: models.StatusCompleted,
			Outcome: &notInterested, Comment: &comment},
	}
}

func newReportFixture() (*ReportService, *fakeCallLogRepo, *fakeMailer, *fakePDF) {
	tasks := newFakeTaskRepo(exportTasks()...)
	calls := &fakeCallLogRepo{tasks: tasks}
	mailer := &fakeMailer{}
	gen := &fakePDF{}
	users := newFakeUserRepo(
		models.User{ID: 2, FullName: "Adam Agent", Email: "adam@example.com", RoleID: 10},
		models.User{ID: 3, FullName: "Lina Agent", RoleID: 10},
	)
	svc := NewReportService(tasks, calls, users, gen, mailer)
	svc.now = func() time.Time { return fixedNow }
	return svc, calls, mailer, gen
}

func TestWriteTasksCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTasksCSV(&buf, exportTasks()))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "tasks_export", buf.Bytes())
}

func TestReportService_ExportTasksCSVFilters(t *testing.T) {
	svc, _, _, _ := newReportFixture()

	agent := int64(3)
	var buf bytes.Buffer
	require.NoError(t, svc.ExportTasksCSV(context.Background(), &buf, models.TaskFilter{AssigneeID: &agent}))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	assert.True(t, bytes.HasPrefix(lines[1], []byte("3,RT003,")))
}

func TestReportService_GetSummary(t *testing.T) {
	svc, calls, _, _ := newReportFixture()
	reachable := models.OutcomeReachable
	calls.logs = []models.CallLog{
		{TaskID: 3, AgentID: 3, Kind: models.CallAttempt},
		{TaskID: 3, AgentID: 3, Kind: models.CallCompleted, Outcome: &reachable},
	}

	sum, err := svc.GetSummary(context.Background(), models.TaskFilter{})
	require.NoError(t, err)

	assert.Equal(t, 3, sum.Tasks.Total)
	assert.Equal(t, 1, sum.Tasks.Completed)
	assert.Equal(t, map[models.Outcome]int{
		models.OutcomeReachable:     1,
		models.OutcomeUnreachable:   0,
		models.OutcomeNotInterested: 0,
	}, sum.Outcomes)

	require.Len(t, sum.Agents, 2)
	assert.Equal(t, AgentStats{AgentID: 2, AgentName: "Adam Agent", Total: 2, Completed: 0, CompletionRate: 0, AverageProgress: 37}, sum.Agents[0])
	assert.Equal(t, AgentStats{AgentID: 3, AgentName: "Lina Agent", Total: 1, Completed: 1, CompletionRate: 1, AverageProgress: 100}, sum.Agents[1])
}

func TestReportService_GetSummaryScopedToAgent(t *testing.T) {
	svc, calls, _, _ := newReportFixture()
	notInterested := models.OutcomeNotInterested
	calls.logs = []models.CallLog{
		{TaskID: 3, AgentID: 3, Kind: models.CallCompleted, Outcome: &notInterested},
	}

	agent := int64(2)
	sum, err := svc.GetSummary(context.Background(), models.TaskFilter{AssigneeID: &agent})
	require.NoError(t, err)

	assert.Equal(t, 2, sum.Tasks.Total)
	assert.Equal(t, 0, sum.Tasks.Completed)
	assert.Equal(t, map[models.Outcome]int{
		models.OutcomeReachable:     0,
		models.OutcomeUnreachable:   0,
		models.OutcomeNotInterested: 0,
	}, sum.Outcomes)
	require.Len(t, sum.Agents, 1)
	assert.Equal(t, int64(2), sum.Agents[0].AgentID)

	other := int64(3)
	sum, err = svc.GetSummary(context.Background(), models.TaskFilter{AssigneeID: &other})
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Outcomes[models.OutcomeNotInterested])
}

func TestReportService_AgentReportPDF(t *testing.T) {
	svc, _, _, gen := newReportFixture()
	ctx := context.Background()

	path, agent, err := svc.AgentReportPDF(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/agent_report.pdf", path)
	assert.Equal(t, "Adam Agent", agent.FullName)
	assert.Len(t, gen.last.Tasks, 2)
	assert.Equal(t, fixedNow, gen.last.CreatedAt)

	_, _, err = svc.AgentReportPDF(ctx, 404)
	assert.ErrorIs(t, err, ErrAgentNotFound)

	gen.err = errBoom
	_, _, err = svc.AgentReportPDF(ctx, 2)
	assert.ErrorIs(t, err, errBoom)
}

func TestReportService_EmailAgentReport(t *testing.T) {
	svc, _, mailer, _ := newReportFixture()
	ctx := context.Background()

	to, err := svc.EmailAgentReport(ctx, 2, "")
	require.NoError(t, err)
	assert.Equal(t, "adam@example.com", to)

	to, err = svc.EmailAgentReport(ctx, 3, "boss@example.com")
	require.NoError(t, err)
	assert.Equal(t, "boss@example.com", to)

	require.Len(t, mailer.reports, 2)
	assert.Equal(t, "/tmp/agent_report.pdf", mailer.reports[0].attachment)

	// agent 3 has no address of their own
	_, err = svc.EmailAgentReport(ctx, 3, "")
	assert.ErrorIs(t, err, ErrNoReportAddress)

	svc.Mailer = nil
	_, err = svc.EmailAgentReport(ctx, 2, "")
	assert.ErrorIs(t, err, ErrEmailDisabled)
}
