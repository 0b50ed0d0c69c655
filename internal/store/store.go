package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"theater-booking-backend/internal/model"
)

// AttemptPhase distinguishes burst attempts from fallback attempts in the
// journal.
type AttemptPhase string

const (
	PhasePrimary  AttemptPhase = "primary"
	PhaseFallback AttemptPhase = "fallback"
)

// Store is the journal of booking runs. It backs the /api/runs endpoint and
// the outcome notifications; everything in it is process-lifetime scratch.
type Store interface {
	CreateRun(ctx context.Context, roomID string, target time.Time, status string, startedAt time.Time) (int64, error)
	RecordTransition(ctx context.Context, runID int64, status string, at time.Time) error
	AddAttempts(ctx context.Context, runID int64, phase AttemptPhase, n int) error
	FinishRun(ctx context.Context, runID int64, status string, at time.Time) error
	GetRun(ctx context.Context, runID int64) (model.BookingRun, error)
	ListRuns(ctx context.Context) ([]model.BookingRun, error)
	ListTransitions(ctx context.Context, runID int64) ([]model.RunTransition, error)
	DB() *gorm.DB
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) CreateRun(ctx context.Context, roomID string, target time.Time, status string, startedAt time.Time) (int64, error) {
	run := model.BookingRun{
		RoomID:     roomID,
		TargetTime: target,
		Status:     status,
		StartedAt:  startedAt,
	}
	if err := s.db.WithContext(ctx).Create(&run).Error; err != nil {
		return 0, fmt.Errorf("failed to create run record: %w", err)
	}
	return run.ID, nil
}

func (s *gormStore) RecordTransition(ctx context.Context, runID int64, status string, at time.Time) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		transition := model.RunTransition{RunID: runID, Status: status, ObservedAt: at}
		if err := tx.Create(&transition).Error; err != nil {
			return fmt.Errorf("failed to record transition for run %d: %w", runID, err)
		}
		if err := tx.Model(&model.BookingRun{}).Where("id = ?", runID).
			Update("status", status).Error; err != nil {
			return fmt.Errorf("failed to update status for run %d: %w", runID, err)
		}
		return nil
	})
}

func (s *gormStore) AddAttempts(ctx context.Context, runID int64, phase AttemptPhase, n int) error {
	column := "primary_attempts"
	if phase == PhaseFallback {
		column = "fallback_attempts"
	}
	err := s.db.WithContext(ctx).Model(&model.BookingRun{}).Where("id = ?", runID).
		Update(column, gorm.Expr(column+" + ?", n)).Error
	if err != nil {
		return fmt.Errorf("failed to add %s attempts for run %d: %w", phase, runID, err)
	}
	return nil
}

func (s *gormStore) FinishRun(ctx context.Context, runID int64, status string, at time.Time) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		transition := model.RunTransition{RunID: runID, Status: status, ObservedAt: at}
		if err := tx.Create(&transition).Error; err != nil {
			return fmt.Errorf("failed to record terminal transition for run %d: %w", runID, err)
		}
		updates := map[string]any{"status": status, "finished_at": at}
		if err := tx.Model(&model.BookingRun{}).Where("id = ?", runID).
			Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to finish run %d: %w", runID, err)
		}
		return nil
	})
}

func (s *gormStore) GetRun(ctx context.Context, runID int64) (model.BookingRun, error) {
	var run model.BookingRun
	if err := s.db.WithContext(ctx).First(&run, runID).Error; err != nil {
		return model.BookingRun{}, fmt.Errorf("failed to fetch run %d: %w", runID, err)
	}
	return run, nil
}

func (s *gormStore) ListRuns(ctx context.Context) ([]model.BookingRun, error) {
	var runs []model.BookingRun
	if err := s.db.WithContext(ctx).Order("started_at DESC").Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

func (s *gormStore) ListTransitions(ctx context.Context, runID int64) ([]model.RunTransition, error) {
	var transitions []model.RunTransition
	if err := s.db.WithContext(ctx).Where("run_id = ?", runID).
		Order("id ASC").Find(&transitions).Error; err != nil {
		return nil, fmt.Errorf("failed to list transitions for run %d: %w", runID, err)
	}
	return transitions, nil
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}
