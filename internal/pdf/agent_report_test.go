package pdf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"callcenter/internal/models"
)

func TestGenerateAgentReport(t *testing.T) {
	dir := t.TempDir()
	g := NewReportGenerator(dir, "")

	progress := 50
	path, err := g.GenerateAgentReport(AgentReportData{
		AgentID:   7,
		AgentName: "Sarah Johnson",
		CreatedAt: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
		Tasks: []models.Task{
			{ID: 1, RetailerName: "City Hardware", Priority: models.PriorityHigh, Status: models.StatusPending},
			{ID: 2, RetailerName: "Downtown Furniture", Priority: models.PriorityLow, Status: models.StatusInProgress, Progress: &progress},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "agent_report_7_20240115.pdf"), path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, len(b) > 4 && string(b[:4]) == "%PDF")
}

func TestGenerateAgentReport_StripsDirectories(t *testing.T) {
	dir := t.TempDir()
	g := NewReportGenerator(dir, "")

	path, err := g.GenerateAgentReport(AgentReportData{AgentID: 1, Filename: "../../escape.pdf", CreatedAt: time.Now()})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "escape.pdf"), path)
}
