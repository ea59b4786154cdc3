// Package flowtime implements the task lifecycle engine: a single task
// alternating between work periods and break periods, with derived
// total/working/resting time accounting.
//
// The legal sequence of operations is:
//
//	task := flowtime.NewTask("write report")
//	task.Stop()
//	task.Cont()
//	task.Stop()
//	task.End()
//
// Stop, Cont and End check their preconditions and return an
// *IllegalTransitionError when called out of order.
package flowtime

import "time"

// State describes where a task is in its lifecycle.
type State string

const (
	StateRunning State = "running"
	StateStopped State = "stopped"
	StateEnded   State = "ended"
)

// Task is a single unit of work being tracked. It is created running with
// one open work period, mutated in place by Stop/Cont/End, and becomes
// immutable once ended. Not safe for concurrent use; callers serialize.
type Task struct {
	Description string
	StartTime   time.Time
	EndTime     time.Time

	TotalTime   time.Duration
	WorkingTime time.Duration
	RestingTime time.Duration

	WorkPeriods  []WorkPeriod
	BreakPeriods []BreakPeriod

	running bool
	ended   bool
}

// NewTask starts a task and its first work period. The work period's start
// time equals the task's start time.
func NewTask(description string) *Task {
	start := time.Now()
	return &Task{
		Description: description,
		StartTime:   start,
		WorkPeriods: []WorkPeriod{{StartTime: start}},
		running:     true,
	}
}

func (t *Task) Running() bool { return t.running }
func (t *Task) Ended() bool   { return t.ended }

// State reports the current lifecycle state.
func (t *Task) State() State {
	switch {
	case t.ended:
		return StateEnded
	case t.running:
		return StateRunning
	default:
		return StateStopped
	}
}

// Stop closes the current work period, accumulates its duration into
// WorkingTime and opens a break period starting at the moment the work
// period ended. Legal only while the task is running.
func (t *Task) Stop() error {
	if !t.running || t.ended {
		return &IllegalTransitionError{Op: "stop", State: t.State()}
	}

	wp := &t.WorkPeriods[len(t.WorkPeriods)-1]
	wp.close(time.Now())
	t.WorkingTime += wp.Duration

	t.BreakPeriods = append(t.BreakPeriods, BreakPeriod{StartTime: wp.EndTime})
	t.running = false
	return nil
}

// Cont closes the current break period, accumulates its duration into
// RestingTime and opens a new work period starting at the moment the break
// ended. Legal only while the task is stopped and not ended.
func (t *Task) Cont() error {
	if t.running || t.ended {
		return &IllegalTransitionError{Op: "continue", State: t.State()}
	}

	bp := &t.BreakPeriods[len(t.BreakPeriods)-1]
	bp.close(time.Now())
	t.RestingTime += bp.Duration

	t.WorkPeriods = append(t.WorkPeriods, WorkPeriod{StartTime: bp.EndTime})
	t.running = true
	return nil
}

// End makes the task terminal. The task must be stopped first: EndTime is
// the last work period's end time, so ending never advances the clock. The
// trailing break period opened by the final Stop is discarded since no
// further rest is taken.
func (t *Task) End() error {
	if t.running || t.ended {
		return &IllegalTransitionError{Op: "end", State: t.State()}
	}

	t.ended = true
	t.EndTime = t.WorkPeriods[len(t.WorkPeriods)-1].EndTime
	t.BreakPeriods = t.BreakPeriods[:len(t.BreakPeriods)-1]
	t.TotalTime = t.EndTime.Sub(t.StartTime)
	return nil
}

// Summary is the derived record of an ended task.
type Summary struct {
	Description      string        `json:"description"`
	StartTime        time.Time     `json:"start_time"`
	EndTime          time.Time     `json:"end_time"`
	TotalTime        time.Duration `json:"total_time"`
	WorkingTime      time.Duration `json:"working_time"`
	RestingTime      time.Duration `json:"resting_time"`
	WorkPeriodCount  int           `json:"work_period_count"`
	BreakPeriodCount int           `json:"break_period_count"`
}

// Summary collects the task-level fields. Meaningful only once the task has
// ended; before that EndTime and TotalTime are still zero.
func (t *Task) Summary() Summary {
	return Summary{
		Description:      t.Description,
		StartTime:        t.StartTime,
		EndTime:          t.EndTime,
		TotalTime:        t.TotalTime,
		WorkingTime:      t.WorkingTime,
		RestingTime:      t.RestingTime,
		WorkPeriodCount:  len(t.WorkPeriods),
		BreakPeriodCount: len(t.BreakPeriods),
	}
}
