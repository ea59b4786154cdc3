package ledger

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowtime-logger.com/flowtime-logger/internal/flowtime"
)

func endedTask(t *testing.T, description string) *flowtime.Task {
	t.Helper()
	task := flowtime.NewTask(description)
	require.NoError(t, task.Stop())
	require.NoError(t, task.Cont())
	require.NoError(t, task.Stop())
	require.NoError(t, task.End())
	return task
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestAppendSummary(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	require.NoError(t, err)

	task := endedTask(t, "first")
	require.NoError(t, w.Append(task))
	require.NoError(t, w.Append(endedTask(t, "second")))

	rows := readCSV(t, filepath.Join(dir, "tasks.csv"))
	require.Len(t, rows, 3, "header plus one row per task")
	assert.Equal(t, summaryHeader, rows[0])

	assert.Equal(t, "first", rows[1][0])
	assert.Equal(t, task.StartTime.Format(time.RFC3339Nano), rows[1][1])
	assert.Equal(t, "2", rows[1][6], "work period count")
	assert.Equal(t, "1", rows[1][7], "break period count")
	assert.Equal(t, "second", rows[2][0])
}

func TestDetailFile(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	require.NoError(t, err)

	task := endedTask(t, "detailed")
	require.NoError(t, w.Append(task))

	rows := readCSV(t, filepath.Join(dir, DetailFileName(task.StartTime)))
	require.Len(t, rows, 4, "header plus 2 work and 1 break period")
	assert.Equal(t, detailHeader, rows[0])

	assert.Equal(t, []string{"1", "work"}, rows[1][:2])
	assert.Equal(t, []string{"2", "work"}, rows[2][:2])
	assert.Equal(t, []string{"1", "break"}, rows[3][:2])

	assert.Equal(t, task.WorkPeriods[0].StartTime.Format(time.RFC3339Nano), rows[1][2])
	assert.Equal(t, task.BreakPeriods[0].Duration.String(), rows[3][4])
}

func TestDetailFilesAreDistinctPerTask(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	require.NoError(t, err)

	// Two tasks created back to back start within the same wall-clock
	// second; each must still get its own detail file.
	first := endedTask(t, "first")
	second := endedTask(t, "second")
	require.NotEqual(t, DetailFileName(first.StartTime), DetailFileName(second.StartTime))

	require.NoError(t, w.Append(first))
	require.NoError(t, w.Append(second))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	detailFiles := 0
	for _, entry := range entries {
		if entry.Name() != "tasks.csv" {
			detailFiles++
		}
	}
	assert.Equal(t, 2, detailFiles, "each task keeps its own detail file")

	rows := readCSV(t, filepath.Join(dir, DetailFileName(first.StartTime)))
	require.Len(t, rows, 4, "first task's record survives the second append")
}

func TestAppendRejectsLiveTask(t *testing.T) {
	w, err := NewWriter(t.TempDir())
	require.NoError(t, err)

	err = w.Append(flowtime.NewTask("still running"))
	assert.ErrorIs(t, err, ErrTaskNotEnded)
}
