package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"theater-booking-backend/config"
	"theater-booking-backend/internal/model"
	"theater-booking-backend/internal/notification"
	"theater-booking-backend/internal/store"
)

// ErrInvalidRequest rejects booking times that do not fall on a half-hour
// boundary. It is the only error StartBookingProcess surfaces synchronously.
var ErrInvalidRequest = errors.New("booking time must fall on the hour or half hour")

// SiteClient is the reservation site as the orchestrator sees it,
// implemented by internal/theater.
type SiteClient interface {
	Login(ctx context.Context, creds model.Credentials) (model.Session, error)
	QueryRooms(ctx context.Context, session model.Session, date time.Time) ([]model.Room, error)
	BookRoom(ctx context.Context, session model.Session, t time.Time, roomID string) (bool, error)
}

// Scheduler drives booking runs and owns the process-wide status and
// settings cells. One run at a time is the intended use; starting a second
// run while one is in flight is not prevented, but the two will interleave
// their status writes unpredictably.
type Scheduler struct {
	client   SiteClient
	journal  store.Store
	notifier *notification.WorkerPool

	headStart     time.Duration
	finalLead     time.Duration
	burstDuration time.Duration
	burstInterval time.Duration

	mu       sync.RWMutex
	status   Status
	settings Settings

	// overridable in tests
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration)
}

// New creates a scheduler. The journal and notifier may be nil; runs then
// execute without journaling or outcome pushes.
func New(cfg *config.BookingConfig, client SiteClient, journal store.Store, notifier *notification.WorkerPool) (*Scheduler, error) {
	start, err := ParseTimeOfDay(cfg.StartTime)
	if err != nil {
		return nil, err
	}
	return &Scheduler{
		client:        client,
		journal:       journal,
		notifier:      notifier,
		headStart:     cfg.HeadStart,
		finalLead:     cfg.FinalLead,
		burstDuration: cfg.BurstDuration,
		burstInterval: cfg.BurstInterval,
		status:        StatusIdle,
		settings: Settings{
			StartTime:          start,
			AlternativeEnabled: cfg.AlternativeEnabled,
			FallbackAttempts:   cfg.FallbackAttempts,
		},
		now:   time.Now,
		sleep: sleepContext,
	}, nil
}

// Run is the handle of one booking run. The HTTP layer discards it; tests
// use it to await completion instead of polling status.
type Run struct {
	done    chan struct{}
	outcome Status
}

// Done is closed when the run has reached a terminal status.
func (r *Run) Done() <-chan struct{} { return r.done }

// Outcome returns the terminal status. Only valid after Done is closed.
func (r *Run) Outcome() Status { return r.outcome }

// StartBookingProcess validates the request, publishes the waiting status
// and executes the run on its own goroutine. It returns immediately; all
// later failures surface only through status changes, never to the caller.
func (s *Scheduler) StartBookingProcess(req model.BookingRequest) (*Run, error) {
	if m := req.Time.Minute(); m != 0 && m != 30 {
		return nil, fmt.Errorf("%w: got %02d:%02d", ErrInvalidRequest, req.Time.Hour(), req.Time.Minute())
	}

	s.setStatus(StatusWaiting)
	run := &Run{done: make(chan struct{})}
	go s.execute(req, run)
	return run, nil
}

// GetStatus returns the current status. It never blocks on a run.
func (s *Scheduler) GetStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// SetSettings overwrites the process-wide settings. A run picks the new
// values up at its next read point; a run already inside the burst phase is
// unaffected.
func (s *Scheduler) SetSettings(settings Settings) {
	if settings.FallbackAttempts <= 0 {
		settings.FallbackAttempts = 5
	}
	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()
}

// GetCurrentSettings returns the settings currently in effect.
func (s *Scheduler) GetCurrentSettings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// execute is one full booking run. Every failure inside it, panics included,
// is collapsed into the Failed status at this boundary.
func (s *Scheduler) execute(req model.BookingRequest, run *Run) {
	ctx := context.Background()
	runID := s.journalStart(ctx, req)

	final := StatusFailed
	defer func() {
		if r := recover(); r != nil {
			log.Printf("booking run for room %s panicked: %v", req.RoomID, r)
			final = StatusFailed
		}
		s.finish(ctx, runID, run, final)
	}()

	start := s.GetCurrentSettings().StartTime
	log.Printf("Waiting for booking to start at %s", start)
	s.sleepUntil(ctx, start, s.headStart)

	s.transition(ctx, runID, StatusLoggingIn)
	session, err := s.client.Login(ctx, req.Credentials)
	if err != nil {
		log.Printf("login failed for %s: %v", req.Credentials.Username, err)
		return
	}
	s.transition(ctx, runID, StatusLoggedIn)

	// settings may have changed while we slept, read again
	s.sleepUntil(ctx, s.GetCurrentSettings().StartTime, s.finalLead)

	s.transition(ctx, runID, StatusBooking)
	booked := s.burst(ctx, runID, session, req.Time, req.RoomID)

	if !booked && s.GetCurrentSettings().AlternativeEnabled {
		s.transition(ctx, runID, StatusAlternativeBooking)
		booked = s.bookAlternative(ctx, runID, session, req)
	}

	if booked {
		final = StatusSuccess
	}
}

// finish publishes the terminal status, closes out the journal record and
// queues the outcome notification.
func (s *Scheduler) finish(ctx context.Context, runID int64, run *Run, final Status) {
	s.setStatus(final)
	if s.journal != nil && runID != 0 {
		if err := s.journal.FinishRun(ctx, runID, string(final), s.now()); err != nil {
			log.Printf("failed to journal run %d completion: %v", runID, err)
		}
	}
	if s.notifier != nil && runID != 0 {
		s.notifier.Dispatch(runID)
	}
	run.outcome = final
	close(run.done)
}

func (s *Scheduler) setStatus(v Status) {
	s.mu.Lock()
	s.status = v
	s.mu.Unlock()
}

// transition publishes a status and journals it.
func (s *Scheduler) transition(ctx context.Context, runID int64, v Status) {
	s.setStatus(v)
	if s.journal == nil || runID == 0 {
		return
	}
	if err := s.journal.RecordTransition(ctx, runID, string(v), s.now()); err != nil {
		log.Printf("failed to journal transition to %q for run %d: %v", v, runID, err)
	}
}

func (s *Scheduler) journalStart(ctx context.Context, req model.BookingRequest) int64 {
	if s.journal == nil {
		return 0
	}
	runID, err := s.journal.CreateRun(ctx, req.RoomID, req.Time, string(StatusWaiting), s.now())
	if err != nil {
		log.Printf("failed to journal run start: %v", err)
		return 0
	}
	return runID
}

func (s *Scheduler) journalAttempts(ctx context.Context, runID int64, phase store.AttemptPhase, n int) {
	if s.journal == nil || runID == 0 || n == 0 {
		return
	}
	if err := s.journal.AddAttempts(ctx, runID, phase, n); err != nil {
		log.Printf("failed to journal %s attempts for run %d: %v", phase, runID, err)
	}
}

// sleepUntil suspends the run until the next occurrence of t, waking lead
// earlier to stay ahead of the crowd.
func (s *Scheduler) sleepUntil(ctx context.Context, t TimeOfDay, lead time.Duration) {
	now := s.now()
	s.sleep(ctx, wakeInstant(now, t, lead).Sub(now))
}

// wakeInstant computes today's date combined with t, minus lead; when that
// instant has already passed it targets tomorrow instead. The result is
// never before now.
func wakeInstant(now time.Time, t TimeOfDay, lead time.Duration) time.Time {
	target := time.Date(now.Year(), now.Month(), now.Day(), t.Hour, t.Minute, 0, 0, now.Location()).Add(-lead)
	if target.Before(now) {
		target = target.AddDate(0, 0, 1)
	}
	return target
}

func sleepContext(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
