package theater

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"theater-booking-backend/internal/model"
)

const availabilityPage = `<!DOCTYPE html>
<html dir="rtl">
<body>
<div id="halls">
  <div class="grid-column hours-column">
    <ul>
      <li class="room-info"><a href="/he/node/14343">האולם הלבן</a></li>
      <li class="timeslot">08:00</li>
      <li class="reservable"><div class="booking-span"><a href="/he/node/add/room-reservations-reservation/5/25/0800/14343">הזמנה</a></div></li>
      <li class="reservable"><div class="booking-span"><a href="/he/node/add/room-reservations-reservation/5/25/0830/14343">הזמנה</a></div></li>
      <li class="booked"><div class="booking-span">תפוס</div></li>
      <li class="closed"></li>
      <li class="reservable"><div class="booking-span"><a href="/he/node/add/room-reservations-reservation/5/25/1000/14343">הזמנה</a></div></li>
    </ul>
  </div>
  <div class="grid-column hours-column">
    <ul>
      <li class="room-info"><a href="/he/node/14350">אולפן</a></li>
      <li class="reservable"><div class="booking-span"><a href="/he/node/add/room-reservations-reservation/5/25/0900/14350">הזמנה</a></div></li>
    </ul>
  </div>
  <div class="grid-column hours-column">
    <ul>
      <li class="room-info">מקרא</li>
    </ul>
  </div>
</div>
</body>
</html>`

const formTokenPage = `<!DOCTYPE html>
<html><body>
<form id="room-reservations-reservation-node-form">
  <input type="hidden" name="form_token" value="tok-8c1f2a" />
</form>
</body></html>`

const bookingCreatedPage = `<!DOCTYPE html>
<html><body>
<div class="alert-dismissible">הודעת סטטוס: הזמנות חדרים - הזמנה נוצר.</div>
</body></html>`

const bookingRejectedPage = `<!DOCTYPE html>
<html><body>
<div class="messages error">השעה המבוקשת כבר תפוסה.</div>
</body></html>`

func TestParseRooms(t *testing.T) {
	rooms, err := parseRooms(strings.NewReader(availabilityPage))
	require.NoError(t, err)
	require.Len(t, rooms, 2, "the legend column has no metadata link and is not a room")

	assert.Equal(t, "האולם הלבן", rooms[0].Name)
	assert.Equal(t, "14343", rooms[0].ID)
	assert.Equal(t, []time.Time{
		time.Date(1, 5, 25, 8, 0, 0, 0, time.UTC),
		time.Date(1, 5, 25, 8, 30, 0, 0, time.UTC),
		time.Date(1, 5, 25, 10, 0, 0, 0, time.UTC),
	}, rooms[0].AvailableSlots)

	assert.Equal(t, "אולפן", rooms[1].Name)
	assert.Equal(t, "14350", rooms[1].ID)
	assert.Len(t, rooms[1].AvailableSlots, 1)
}

func TestParseRooms_EmptyPage(t *testing.T) {
	rooms, err := parseRooms(strings.NewReader("<html><body></body></html>"))
	require.NoError(t, err)
	assert.Empty(t, rooms)
}

func TestParseFormToken(t *testing.T) {
	token, err := parseFormToken(strings.NewReader(formTokenPage))
	require.NoError(t, err)
	assert.Equal(t, "tok-8c1f2a", token)

	_, err = parseFormToken(strings.NewReader("<html><body>access denied</body></html>"))
	assert.Error(t, err)
}

func TestParseConfirmation(t *testing.T) {
	created := parseConfirmation(strings.NewReader(bookingCreatedPage))
	assert.Contains(t, created, "נוצר")
	assert.True(t, bookingSucceeded(created))

	rejected := parseConfirmation(strings.NewReader(bookingRejectedPage))
	assert.NotEmpty(t, rejected)
	assert.False(t, bookingSucceeded(rejected))

	missing := parseConfirmation(strings.NewReader("<html><body></body></html>"))
	assert.Empty(t, missing)
	assert.False(t, bookingSucceeded(missing))
}

func TestMatchesDate(t *testing.T) {
	rooms := []model.Room{
		{ID: "14343", AvailableSlots: nil},
		{ID: "14350", AvailableSlots: []time.Time{time.Date(1, 5, 25, 9, 0, 0, 0, time.UTC)}},
	}

	assert.True(t, matchesDate(rooms, time.Date(2024, 5, 25, 0, 0, 0, 0, time.UTC)))
	assert.False(t, matchesDate(rooms, time.Date(2024, 5, 26, 0, 0, 0, 0, time.UTC)),
		"a page for another day must be rejected")
	assert.False(t, matchesDate(nil, time.Date(2024, 5, 25, 0, 0, 0, 0, time.UTC)))
	assert.False(t, matchesDate([]model.Room{{ID: "14343"}}, time.Date(2024, 5, 25, 0, 0, 0, 0, time.UTC)),
		"a page with no slots at all is indistinguishable from the failure page")
}
