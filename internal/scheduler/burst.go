package scheduler

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"theater-booking-backend/internal/model"
	"theater-booking-backend/internal/store"
)

// burst fires booking attempts at the target slot on a fixed cadence for a
// fixed wall-clock duration, without waiting for earlier attempts. The
// cadence is the retry mechanism; individual attempts are never retried.
// After the launch window closes every in-flight attempt is awaited, and the
// burst succeeds if any one of them did.
func (s *Scheduler) burst(ctx context.Context, runID int64, session model.Session, t time.Time, roomID string) bool {
	var (
		wg  sync.WaitGroup
		won atomic.Bool
	)

	deadline := time.Now().Add(s.burstDuration)
	ticker := time.NewTicker(s.burstInterval)
	defer ticker.Stop()

	launched := 0
	for time.Now().Before(deadline) {
		wg.Add(1)
		launched++
		go func() {
			defer wg.Done()
			ok, err := s.client.BookRoom(ctx, session, t, roomID)
			if err != nil {
				// a failed attempt is an ordinary negative outcome here
				log.Printf("burst attempt for room %s failed: %v", roomID, err)
				return
			}
			if ok {
				won.Store(true)
			}
		}()

		select {
		case <-ticker.C:
		case <-ctx.Done():
			log.Printf("burst for room %s interrupted after %d attempts", roomID, launched)
			wg.Wait()
			return won.Load()
		}
	}

	log.Printf("BookRoomConcurrentTasksStarted: %d", launched)
	s.journalAttempts(ctx, runID, store.PhasePrimary, launched)

	wg.Wait()
	return won.Load()
}
