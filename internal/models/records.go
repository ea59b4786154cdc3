package model

import "time"

// Period type tags as stored in the Periods table.
const (
	PeriodTypeWork  = "work"
	PeriodTypeBreak = "break"
)

// TaskRecord is the persisted row for an ended task.
type TaskRecord struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Description string    `gorm:"not null" json:"description"`
	StartTime   time.Time `gorm:"not null" json:"start_time"`
	EndTime     time.Time `gorm:"not null" json:"end_time"`
}

func (TaskRecord) TableName() string { return "tasks" }

// PeriodRecord is one persisted work or break period. Rows for a task are
// inserted in chronological creation order, all work periods first, then
// all break periods.
type PeriodRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Type      string    `gorm:"type:varchar(10);not null" json:"type"`
	StartTime time.Time `gorm:"not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`
	TaskID    uint      `gorm:"not null;index" json:"task_id"`
}

func (PeriodRecord) TableName() string { return "periods" }
