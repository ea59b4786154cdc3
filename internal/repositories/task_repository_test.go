package repository

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"flowtime-logger.com/flowtime-logger/internal/flowtime"
	model "flowtime-logger.com/flowtime-logger/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(&model.TaskRecord{}, &model.PeriodRecord{})
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	return db
}

func endedTask(t *testing.T, description string) *flowtime.Task {
	task := flowtime.NewTask(description)
	for _, step := range []func() error{task.Stop, task.Cont, task.Stop, task.End} {
		if err := step(); err != nil {
			t.Fatalf("failed to build ended task: %v", err)
		}
	}
	return task
}

func TestSaveRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	task := endedTask(t, "write report")

	record, err := repo.Save(ctx, task)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if record.ID == 0 {
		t.Error("expected task record to be assigned an id")
	}

	fetched, err := repo.FindByID(ctx, record.ID)
	if err != nil {
		t.Fatalf("failed to read task back: %v", err)
	}
	if fetched.Description != "write report" {
		t.Errorf("expected description %q, got %q", "write report", fetched.Description)
	}
	if !fetched.StartTime.Equal(task.StartTime) || !fetched.EndTime.Equal(task.EndTime) {
		t.Error("persisted times do not match the task")
	}

	periods, err := repo.ListPeriods(ctx, record.ID)
	if err != nil {
		t.Fatalf("failed to list periods: %v", err)
	}
	if len(periods) != 3 {
		t.Fatalf("expected 3 periods (2 work + 1 break), got %d", len(periods))
	}

	wantTypes := []string{model.PeriodTypeWork, model.PeriodTypeWork, model.PeriodTypeBreak}
	for i, p := range periods {
		if p.Type != wantTypes[i] {
			t.Errorf("period %d: expected type %s, got %s", i, wantTypes[i], p.Type)
		}
		if p.TaskID != record.ID {
			t.Errorf("period %d references task %d, want %d", i, p.TaskID, record.ID)
		}
	}
	if !periods[0].StartTime.Equal(task.WorkPeriods[0].StartTime) {
		t.Error("first work period start time does not round-trip")
	}
	if !periods[2].StartTime.Equal(task.BreakPeriods[0].StartTime) {
		t.Error("break period start time does not round-trip")
	}
}

func TestSaveTwoTasks(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	first, err := repo.Save(ctx, endedTask(t, "first"))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	second, err := repo.Save(ctx, endedTask(t, "second"))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if first.ID == second.ID {
		t.Fatalf("expected distinct task ids, both got %d", first.ID)
	}

	for _, record := range []*model.TaskRecord{first, second} {
		periods, err := repo.ListPeriods(ctx, record.ID)
		if err != nil {
			t.Fatalf("failed to list periods: %v", err)
		}
		for _, p := range periods {
			if p.TaskID != record.ID {
				t.Errorf("period %d attributed to task %d, want %d", p.ID, p.TaskID, record.ID)
			}
		}
	}
}

func TestSaveRejectsLiveTask(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)

	task := flowtime.NewTask("still running")

	_, err := repo.Save(context.Background(), task)
	if !errors.Is(err, ErrTaskNotEnded) {
		t.Errorf("expected ErrTaskNotEnded, got %v", err)
	}
}

func TestSaveIsNotIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	task := endedTask(t, "saved twice")

	if _, err := repo.Save(ctx, task); err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	if _, err := repo.Save(ctx, task); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	records, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("failed to list tasks: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("expected duplicate rows after double save, got %d", len(records))
	}
}
