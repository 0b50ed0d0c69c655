package scheduler

// Status is the externally visible phase of the booking process. The string
// values are polled verbatim by the frontend and must not change.
type Status string

const (
	StatusIdle               Status = "idle"
	StatusWaiting            Status = "Waiting for booking to start"
	StatusLoggingIn          Status = "Logging in"
	StatusLoggedIn           Status = "Logged in"
	StatusBooking            Status = "Booking"
	StatusAlternativeBooking Status = "Alternative booking"
	StatusSuccess            Status = "Success"
	StatusFailed             Status = "Failed"
)

// Terminal reports whether a status ends a run. Idle is never re-entered
// once a run has started.
func (s Status) Terminal() bool {
	return s == StatusSuccess || s == StatusFailed
}
