package scheduler

import (
	"context"
	"log"
	"time"

	"theater-booking-backend/internal/model"
	"theater-booking-backend/internal/store"
)

// bookAlternative tries to secure a deduced three-hour window after the
// primary slot was lost. Availability is re-queried on every iteration
// because other users keep booking; a day with no deducible window ends the
// loop immediately, retrying on the same data would be pointless.
func (s *Scheduler) bookAlternative(ctx context.Context, runID int64, session model.Session, req model.BookingRequest) bool {
	attempts := s.GetCurrentSettings().FallbackAttempts
	for i := 0; i < attempts; i++ {
		rooms, err := s.client.QueryRooms(ctx, session, req.Time)
		if err != nil {
			log.Printf("alternative booking: availability query for room %s failed: %v", req.RoomID, err)
			return false
		}

		alt, ok := DeduceAlternativeTime(roomSlots(rooms, req.RoomID))
		if !ok {
			log.Printf("alternative booking: no three-hour window open for room %s", req.RoomID)
			return false
		}

		s.journalAttempts(ctx, runID, store.PhaseFallback, 1)
		booked, err := s.client.BookRoom(ctx, session, alt, req.RoomID)
		if err != nil {
			log.Printf("alternative booking attempt %d for room %s failed: %v", i+1, req.RoomID, err)
			continue
		}
		if booked {
			log.Printf("alternative booking: secured %02d-%02d %s for room %s",
				int(alt.Month()), alt.Day(), alt.Format("15:04"), req.RoomID)
			return true
		}
	}

	log.Printf("alternative booking for room %s gave up after %d attempts", req.RoomID, attempts)
	return false
}

// roomSlots picks the open slots of one room out of an availability result.
func roomSlots(rooms []model.Room, roomID string) []time.Time {
	for _, room := range rooms {
		if room.ID == roomID {
			return room.AvailableSlots
		}
	}
	return nil
}
