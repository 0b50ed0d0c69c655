package model

import "net/http"

// Session is an authenticated site session: the cookies handed out at login
// plus the per-session token the reservation form requires. A session belongs
// to exactly one booking run and is never reused.
type Session struct {
	Cookies   []*http.Cookie
	FormToken string
}
