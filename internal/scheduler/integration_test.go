package scheduler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"theater-booking-backend/config"
	"theater-booking-backend/internal/model"
	"theater-booking-backend/internal/store"
	"theater-booking-backend/internal/theater"
)

const fakeTokenPage = `<html><body><form>
<input type="hidden" name="form_token" value="e2e-token" />
</form></body></html>`

const fakeCreatedPage = `<html><body>
<div class="alert-dismissible">הזמנות חדרים - הזמנה נוצר.</div>
</body></html>`

const fakeRejectedPage = `<html><body>
<div class="messages error">השעה המבוקשת כבר תפוסה.</div>
</body></html>`

// TestRunAgainstFakeSite pushes a whole run through the real site client, a
// fake Drupal server and a real sqlite journal.
func TestRunAgainstFakeSite(t *testing.T) {
	var bookings atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/he", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "SESSe2e", Value: "cookie", Path: "/"})
	})
	mux.HandleFunc("/he/node/add/room-reservations-reservation/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			_, _ = w.Write([]byte(fakeTokenPage))
			return
		}
		// the first submissions lose the race, a later one wins
		if bookings.Add(1) < 3 {
			_, _ = w.Write([]byte(fakeRejectedPage))
			return
		}
		_, _ = w.Write([]byte(fakeCreatedPage))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := theater.NewClient(&config.SiteConfig{
		BaseURL:   server.URL,
		UserAgent: "booking-backend-test",
		Timeout:   5 * time.Second,
	})

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.BookingRun{}, &model.RunTransition{}))
	journal := store.NewGormStore(db)

	s, err := New(testBookingConfig(), client, journal, nil)
	require.NoError(t, err)
	s.sleep = func(context.Context, time.Duration) {}

	run, err := s.StartBookingProcess(validRequest())
	require.NoError(t, err)
	require.Equal(t, StatusSuccess, awaitRun(t, run))
	assert.Equal(t, StatusSuccess, s.GetStatus())

	recorded, err := journal.GetRun(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, string(StatusSuccess), recorded.Status)
	assert.GreaterOrEqual(t, recorded.PrimaryAttempts, 3)
	require.NotNil(t, recorded.FinishedAt)

	transitions, err := journal.ListTransitions(context.Background(), 1)
	require.NoError(t, err)
	statuses := make([]string, 0, len(transitions))
	for _, tr := range transitions {
		statuses = append(statuses, tr.Status)
	}
	assert.Equal(t, []string{
		string(StatusLoggingIn),
		string(StatusLoggedIn),
		string(StatusBooking),
		string(StatusSuccess),
	}, statuses)
}
