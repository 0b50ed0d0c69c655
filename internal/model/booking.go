package model

import "time"

// Credentials are the user's login for the reservation site.
type Credentials struct {
	Username string
	Password string
}

// BookingRequest is one submitted booking order. The time must fall on the
// hour or half hour; the year of Time is the real booking year but only
// month, day and time-of-day travel to the site.
type BookingRequest struct {
	Time        time.Time
	RoomID      string
	Credentials Credentials
}

// Room is one bookable room together with the slots currently open for it.
// Slot times carry year 1 because the site does not report a year.
type Room struct {
	Name           string
	ID             string
	AvailableSlots []time.Time
}
