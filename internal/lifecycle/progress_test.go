package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"callcenter/internal/models"
)

func TestDisplayProgress(t *testing.T) {
	task := pendingTask(1)
	assert.Equal(t, 0, DisplayProgress(task))

	task.Status = models.StatusInProgress
	assert.Equal(t, 30, DisplayProgress(task))
	assert.Nil(t, task.Progress, "fallback must not be written back")

	task.Status = models.StatusCompleted
	assert.Equal(t, 100, DisplayProgress(task))

	task.Status = models.StatusInProgress
	task.Progress = intPtr(75)
	assert.Equal(t, 75, DisplayProgress(task))

	task.Progress = intPtr(0)
	assert.Equal(t, 30, DisplayProgress(task))
	assert.Equal(t, 0, *task.Progress)
}

func TestSummarize(t *testing.T) {
	tasks := []models.Task{pendingTask(1), pendingTask(2), pendingTask(3), pendingTask(4)}
	tasks = MarkAsCalled(tasks, 2)
	tasks = Complete(tasks, 3, models.OutcomeReachable, "")

	s := Summarize(tasks)
	assert.Equal(t, Summary{
		Total:           4,
		Pending:         2,
		InProgress:      1,
		Completed:       1,
		AverageProgress: (0 + 50 + 100 + 0) / 4,
	}, s)

	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestPartition(t *testing.T) {
	tasks := []models.Task{pendingTask(1), pendingTask(2), pendingTask(3)}
	tasks = Complete(tasks, 2, models.OutcomeUnreachable, "")

	open, done := Partition(tasks)
	assert.Len(t, open, 2)
	assert.Len(t, done, 1)
	assert.Equal(t, int64(1), open[0].ID)
	assert.Equal(t, int64(3), open[1].ID)
	assert.Equal(t, int64(2), done[0].ID)
}
