package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Reservation links look like
// /he/node/add/room-reservations-reservation/{month}/{day}/{hourminute}/{room_id}
var slotLinkRe = regexp.MustCompile(`/(\d{1,2})/(\d{1,2})/(\d{3,4})/(\d+)/?\s*$`)

// SlotRef is the structured form of one reservation link.
type SlotRef struct {
	Month  int
	Day    int
	Hour   int
	Minute int
	RoomID string
}

// Time renders the slot as a timestamp. The site never reports a year, so
// the year is fixed at 1 and carries no information.
func (s SlotRef) Time() time.Time {
	return time.Date(1, time.Month(s.Month), s.Day, s.Hour, s.Minute, 0, 0, time.UTC)
}

// SlotLink extracts the slot reference from a reservation link path.
func SlotLink(href string) (SlotRef, error) {
	m := slotLinkRe.FindStringSubmatch(href)
	if m == nil {
		return SlotRef{}, fmt.Errorf("unable to parse slot link: %q", href)
	}

	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	hhmm := m[3]
	// the time segment is HHMM, with a possibly unpadded hour
	if len(hhmm) == 3 {
		hhmm = "0" + hhmm
	}
	hour, _ := strconv.Atoi(hhmm[:2])
	minute, _ := strconv.Atoi(hhmm[2:])

	if month < 1 || month > 12 || day < 1 || day > 31 || hour > 23 || minute > 59 {
		return SlotRef{}, fmt.Errorf("slot link %q has out-of-range fields", href)
	}

	return SlotRef{
		Month:  month,
		Day:    day,
		Hour:   hour,
		Minute: minute,
		RoomID: m[4],
	}, nil
}

// RoomLink extracts the room id from a room metadata link, which is the
// last path element of /he/node/{room_id}.
func RoomLink(href string) (string, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(href), "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 || idx == len(trimmed)-1 {
		return "", fmt.Errorf("unable to parse room link: %q", href)
	}
	id := trimmed[idx+1:]
	if _, err := strconv.Atoi(id); err != nil {
		return "", fmt.Errorf("room link %q does not end in a numeric id", href)
	}
	return id, nil
}
