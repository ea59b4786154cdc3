package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"flowtime-logger.com/flowtime-logger/internal/flowtime"
	"flowtime-logger.com/flowtime-logger/internal/ledger"
	model "flowtime-logger.com/flowtime-logger/internal/models"
	repository "flowtime-logger.com/flowtime-logger/internal/repositories"
)

var (
	ErrSessionActive = errors.New("a task is already being tracked")
	ErrNoActiveTask  = errors.New("no task is being tracked")
)

// Snapshot is the read-back view of the active task handed to presentation
// code. It carries everything a display needs to enable or disable
// controls.
type Snapshot struct {
	SessionID    string         `json:"session_id"`
	Description  string         `json:"description"`
	State        flowtime.State `json:"state"`
	Running      bool           `json:"running"`
	Ended        bool           `json:"ended"`
	StartTime    time.Time      `json:"start_time"`
	EndTime      time.Time      `json:"end_time,omitzero"`
	WorkPeriods  int            `json:"work_periods"`
	BreakPeriods int            `json:"break_periods"`
}

// EndResult is returned by End once the task has been persisted.
type EndResult struct {
	TaskID  uint             `json:"task_id"`
	Summary flowtime.Summary `json:"summary"`
}

// StatusPublisher mirrors the active task's state to an external display
// channel. Publishing is best effort and never blocks a transition.
type StatusPublisher interface {
	Publish(ctx context.Context, snapshot Snapshot) error
}

// SessionService owns the single active task. The engine itself is not
// safe for concurrent use, so every mutating call is serialized here.
type SessionService struct {
	mu        sync.Mutex
	repo      *repository.TaskRepository
	ledger    *ledger.Writer
	publisher StatusPublisher

	task      *flowtime.Task
	sessionID string
}

// NewSessionService wires the service. ledgerWriter and publisher may be
// nil when the flat-record ledger or the status mirror is disabled.
func NewSessionService(
	repo *repository.TaskRepository,
	ledgerWriter *ledger.Writer,
	publisher StatusPublisher,
) *SessionService {
	return &SessionService{
		repo:      repo,
		ledger:    ledgerWriter,
		publisher: publisher,
	}
}

// Start begins tracking a new task. Only one task may be active at a time.
func (s *SessionService) Start(ctx context.Context, description string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.task != nil {
		return Snapshot{}, ErrSessionActive
	}

	s.task = flowtime.NewTask(description)
	s.sessionID = uuid.NewString()

	logrus.WithFields(logrus.Fields{
		"session":     s.sessionID,
		"description": description,
	}).Info("task started")

	return s.publishLocked(ctx), nil
}

// Stop closes the current work period and opens a break.
func (s *SessionService) Stop(ctx context.Context) (Snapshot, error) {
	return s.transition(ctx, "stopped", func(t *flowtime.Task) error { return t.Stop() })
}

// Cont closes the current break period and resumes work.
func (s *SessionService) Cont(ctx context.Context) (Snapshot, error) {
	return s.transition(ctx, "continued", func(t *flowtime.Task) error { return t.Cont() })
}

func (s *SessionService) transition(ctx context.Context, verb string, op func(*flowtime.Task) error) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.task == nil {
		return Snapshot{}, ErrNoActiveTask
	}
	if err := op(s.task); err != nil {
		return Snapshot{}, err
	}

	logrus.WithField("session", s.sessionID).Info("task " + verb)
	return s.publishLocked(ctx), nil
}

// End makes the active task terminal and persists it: the tabular record
// first, then the flat-record ledger when one is configured. The session
// slot is freed only after both writes succeed, so a failed save can be
// retried with another End call (at the cost of duplicate rows, which save
// does not guard against).
func (s *SessionService) End(ctx context.Context) (*EndResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.task == nil {
		return nil, ErrNoActiveTask
	}

	if !s.task.Ended() {
		if err := s.task.End(); err != nil {
			return nil, err
		}
	}

	record, err := s.repo.Save(ctx, s.task)
	if err != nil {
		return nil, err
	}

	if s.ledger != nil {
		if err := s.ledger.Append(s.task); err != nil {
			return nil, err
		}
	}

	summary := s.task.Summary()
	s.publishLocked(ctx)

	logrus.WithFields(logrus.Fields{
		"session": s.sessionID,
		"task_id": record.ID,
		"total":   summary.TotalTime,
		"working": summary.WorkingTime,
		"resting": summary.RestingTime,
	}).Info("task ended and saved")

	s.task = nil
	s.sessionID = ""

	return &EndResult{TaskID: record.ID, Summary: summary}, nil
}

// Abandon stops tracking without persisting anything. Used by interactive
// callers that want to throw a session away.
func (s *SessionService) Abandon() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.task = nil
	s.sessionID = ""
}

// Current returns a snapshot of the active task.
func (s *SessionService) Current() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.task == nil {
		return Snapshot{}, ErrNoActiveTask
	}
	return s.snapshotLocked(), nil
}

// ListTasks returns all saved task records.
func (s *SessionService) ListTasks(ctx context.Context) ([]model.TaskRecord, error) {
	return s.repo.List(ctx)
}

// GetTask returns one saved task record with its ordered periods.
func (s *SessionService) GetTask(ctx context.Context, id uint) (*model.TaskRecord, []model.PeriodRecord, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	periods, err := s.repo.ListPeriods(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return record, periods, nil
}

func (s *SessionService) snapshotLocked() Snapshot {
	t := s.task
	return Snapshot{
		SessionID:    s.sessionID,
		Description:  t.Description,
		State:        t.State(),
		Running:      t.Running(),
		Ended:        t.Ended(),
		StartTime:    t.StartTime,
		EndTime:      t.EndTime,
		WorkPeriods:  len(t.WorkPeriods),
		BreakPeriods: len(t.BreakPeriods),
	}
}

func (s *SessionService) publishLocked(ctx context.Context) Snapshot {
	snapshot := s.snapshotLocked()
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, snapshot); err != nil {
			logrus.WithError(err).Warn("failed to publish task status")
		}
	}
	return snapshot
}
