package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"theater-booking-backend/internal/model"
)

func newTestStore(t *testing.T) Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.BookingRun{}, &model.RunTransition{}))
	return NewGormStore(db)
}

func TestRunLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	target := time.Date(2024, 5, 25, 8, 0, 0, 0, time.UTC)
	started := time.Date(2024, 5, 25, 7, 59, 50, 0, time.UTC)

	runID, err := s.CreateRun(ctx, "14343", target, "Waiting for booking to start", started)
	require.NoError(t, err)
	require.NotZero(t, runID)

	require.NoError(t, s.RecordTransition(ctx, runID, "Logging in", started.Add(time.Second)))
	require.NoError(t, s.RecordTransition(ctx, runID, "Booking", started.Add(2*time.Second)))
	require.NoError(t, s.AddAttempts(ctx, runID, PhasePrimary, 12))
	require.NoError(t, s.AddAttempts(ctx, runID, PhasePrimary, 8))
	require.NoError(t, s.AddAttempts(ctx, runID, PhaseFallback, 1))
	require.NoError(t, s.FinishRun(ctx, runID, "Success", started.Add(5*time.Second)))

	run, err := s.GetRun(ctx, runID)
	require.NoError(t, err)
	assert.Equal(t, "14343", run.RoomID)
	assert.Equal(t, "Success", run.Status)
	assert.Equal(t, 20, run.PrimaryAttempts, "attempt increments must accumulate")
	assert.Equal(t, 1, run.FallbackAttempts)
	require.NotNil(t, run.FinishedAt)
	assert.True(t, run.FinishedAt.Equal(started.Add(5*time.Second)))

	transitions, err := s.ListTransitions(ctx, runID)
	require.NoError(t, err)
	statuses := make([]string, 0, len(transitions))
	for _, tr := range transitions {
		statuses = append(statuses, tr.Status)
	}
	assert.Equal(t, []string{"Logging in", "Booking", "Success"}, statuses)
}

func TestListRuns_NewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2024, 5, 25, 7, 0, 0, 0, time.UTC)
	first, err := s.CreateRun(ctx, "14343", base.Add(time.Hour), "idle", base)
	require.NoError(t, err)
	second, err := s.CreateRun(ctx, "14350", base.Add(2*time.Hour), "idle", base.Add(time.Minute))
	require.NoError(t, err)

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second, runs[0].ID)
	assert.Equal(t, first, runs[1].ID)
}

func TestGetRun_Missing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetRun(context.Background(), 404)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListTransitions_ScopedToRun(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	a, err := s.CreateRun(ctx, "14343", now, "idle", now)
	require.NoError(t, err)
	b, err := s.CreateRun(ctx, "14350", now, "idle", now)
	require.NoError(t, err)

	require.NoError(t, s.RecordTransition(ctx, a, "Logging in", now))
	require.NoError(t, s.RecordTransition(ctx, b, "Failed", now))

	transitions, err := s.ListTransitions(ctx, a)
	require.NoError(t, err)
	require.Len(t, transitions, 1)
	assert.Equal(t, "Logging in", transitions[0].Status)
}
