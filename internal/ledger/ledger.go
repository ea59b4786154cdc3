// Package ledger persists ended tasks in their flat-record shape: one
// summary row appended to a shared tasks.csv, plus a per-task detail file
// named after the task's start time with one row per period.
package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"flowtime-logger.com/flowtime-logger/internal/flowtime"
	model "flowtime-logger.com/flowtime-logger/internal/models"
)

// ErrTaskNotEnded is returned by Append when the task is still live.
var ErrTaskNotEnded = errors.New("task must be ended before it can be appended to the ledger")

const (
	summaryFile = "tasks.csv"

	// Detail filenames keep full nanosecond precision: two tasks started
	// within the same second must not share a filename, or the later
	// Append would truncate the earlier task's record.
	detailTimeName = "2006-01-02T15-04-05.000000000"
)

var summaryHeader = []string{
	"description", "start_time", "end_time",
	"total_time", "working_time", "resting_time",
	"work_periods", "break_periods",
}

var detailHeader = []string{"ordinal", "type", "start_time", "end_time", "duration"}

// Writer appends task records under a single ledger directory.
type Writer struct {
	dir string
}

func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating ledger directory: %w", err)
	}
	return &Writer{dir: dir}, nil
}

// Append writes the task's summary row and detail file. Append is not
// idempotent: a second call for the same task appends a duplicate summary
// row and rewrites the detail file.
func (w *Writer) Append(task *flowtime.Task) error {
	if !task.Ended() {
		return ErrTaskNotEnded
	}

	if err := w.appendSummary(task); err != nil {
		return &flowtime.StorageError{
			Description: task.Description,
			Phase:       "ledger summary append",
			Err:         err,
		}
	}

	if err := w.writeDetail(task); err != nil {
		return &flowtime.StorageError{
			Description: task.Description,
			Phase:       "ledger detail write",
			Err:         err,
		}
	}

	return nil
}

func (w *Writer) appendSummary(task *flowtime.Task) error {
	f, err := os.OpenFile(filepath.Join(w.dir, summaryFile), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	cw := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := cw.Write(summaryHeader); err != nil {
			return err
		}
	}

	s := task.Summary()
	row := []string{
		s.Description,
		s.StartTime.Format(time.RFC3339Nano),
		s.EndTime.Format(time.RFC3339Nano),
		s.TotalTime.String(),
		s.WorkingTime.String(),
		s.RestingTime.String(),
		strconv.Itoa(s.WorkPeriodCount),
		strconv.Itoa(s.BreakPeriodCount),
	}
	if err := cw.Write(row); err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}

// DetailFileName is the name of the per-task detail file, keyed by the
// task's start time.
func DetailFileName(start time.Time) string {
	return start.Format(detailTimeName) + ".csv"
}

func (w *Writer) writeDetail(task *flowtime.Task) error {
	f, err := os.Create(filepath.Join(w.dir, DetailFileName(task.StartTime)))
	if err != nil {
		return err
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(detailHeader); err != nil {
		return err
	}

	for i, wp := range task.WorkPeriods {
		row := periodRow(i+1, model.PeriodTypeWork, wp.StartTime, wp.EndTime, wp.Duration)
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	for i, bp := range task.BreakPeriods {
		row := periodRow(i+1, model.PeriodTypeBreak, bp.StartTime, bp.EndTime, bp.Duration)
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func periodRow(ordinal int, periodType string, start, end time.Time, d time.Duration) []string {
	return []string{
		strconv.Itoa(ordinal),
		periodType,
		start.Format(time.RFC3339Nano),
		end.Format(time.RFC3339Nano),
		d.String(),
	}
}
