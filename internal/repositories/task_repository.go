package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"flowtime-logger.com/flowtime-logger/internal/flowtime"
	model "flowtime-logger.com/flowtime-logger/internal/models"
)

// ErrTaskNotEnded is returned by Save when the task is still live. Only
// ended tasks are persisted.
var ErrTaskNotEnded = errors.New("task must be ended before it can be saved")

// TaskRepository persists ended tasks in their tabular shape: one row in
// the tasks table plus one row per surviving period in the periods table.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Save writes the task row and its period rows inside one transaction, so a
// failed save leaves no partial record. Save is not idempotent: calling it
// twice for the same task appends duplicate records.
func (r *TaskRepository) Save(ctx context.Context, task *flowtime.Task) (*model.TaskRecord, error) {
	if !task.Ended() {
		return nil, ErrTaskNotEnded
	}

	record := &model.TaskRecord{
		Description: task.Description,
		StartTime:   task.StartTime,
		EndTime:     task.EndTime,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(record).Error; err != nil {
			return &flowtime.StorageError{
				Description: task.Description,
				Phase:       "task insert",
				Err:         err,
			}
		}

		periods := make([]model.PeriodRecord, 0, len(task.WorkPeriods)+len(task.BreakPeriods))
		for _, wp := range task.WorkPeriods {
			periods = append(periods, model.PeriodRecord{
				Type:      model.PeriodTypeWork,
				StartTime: wp.StartTime,
				EndTime:   wp.EndTime,
				TaskID:    record.ID,
			})
		}
		for _, bp := range task.BreakPeriods {
			periods = append(periods, model.PeriodRecord{
				Type:      model.PeriodTypeBreak,
				StartTime: bp.StartTime,
				EndTime:   bp.EndTime,
				TaskID:    record.ID,
			})
		}

		if err := tx.Create(&periods).Error; err != nil {
			return &flowtime.StorageError{
				Description: task.Description,
				Phase:       "period insert",
				Err:         err,
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

// FindByID returns one saved task row.
func (r *TaskRepository) FindByID(ctx context.Context, id uint) (*model.TaskRecord, error) {
	var record model.TaskRecord
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// List returns all saved task rows, most recent first.
func (r *TaskRepository) List(ctx context.Context) ([]model.TaskRecord, error) {
	var records []model.TaskRecord
	err := r.db.WithContext(ctx).Order("start_time desc").Find(&records).Error
	return records, err
}

// ListPeriods returns a task's period rows in insertion order.
func (r *TaskRepository) ListPeriods(ctx context.Context, taskID uint) ([]model.PeriodRecord, error) {
	var periods []model.PeriodRecord
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("id asc").
		Find(&periods).Error
	return periods, err
}
