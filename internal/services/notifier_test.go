package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"callcenter/internal/models"
)

func TestNewTelegramNotifier_EmptyTokenIsNoop(t *testing.T) {
	n, err := NewTelegramNotifier("")
	require.NoError(t, err)
	assert.Nil(t, n)
	assert.NoError(t, n.Notify(42, "hello"))
}

func TestFormatTask(t *testing.T) {
	task := openTask(1)
	task.RetailerName = "Tabac <Nord>"
	msg := formatTask("📌 New task", &task)

	assert.Contains(t, msg, "📌 New task\n")
	assert.Contains(t, msg, "<b>Tabac &lt;Nord&gt;</b> (RT001)")
	assert.Contains(t, msg, "Due: <code>2025-03-20</code>")
	assert.NotContains(t, msg, "Outcome")

	reachable := models.OutcomeReachable
	note := "call back & confirm"
	task.Outcome, task.Comment = &reachable, &note
	msg = formatTask("✅ Task completed", &task)
	assert.Contains(t, msg, "Outcome: <code>Reachable</code>")
	assert.Contains(t, msg, "Comment: call back &amp; confirm")
}
