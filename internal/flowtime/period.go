package flowtime

import "time"

// WorkPeriod is a contiguous interval during which the task is actively
// being worked on. EndTime is zero until the period is closed by Stop.
type WorkPeriod struct {
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

func (p *WorkPeriod) close(at time.Time) {
	p.EndTime = at
	p.Duration = p.EndTime.Sub(p.StartTime)
}

// BreakPeriod is a contiguous interval between two work periods during
// which the task is paused. Its StartTime always equals the end time of the
// work period that preceded it.
type BreakPeriod struct {
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

func (p *BreakPeriod) close(at time.Time) {
	p.EndTime = at
	p.Duration = p.EndTime.Sub(p.StartTime)
}
