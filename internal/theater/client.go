package theater

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"theater-booking-backend/config"
	"theater-booking-backend/internal/model"
)

const (
	loginFormID   = "user_login"
	bookingFormID = "room_reservations_reservation_node_form"

	// any existing room works for fetching the session form token, the page
	// itself does not have to describe a valid reservation
	formTokenRoomID = "14343"

	// reservations are always made for the maximum length, in minutes
	reservationLength = "180"
)

var (
	// ErrAuthentication reports a failed login or an unreachable login page.
	ErrAuthentication = errors.New("authentication failed")

	// ErrWrongDate reports that the availability page served data for a
	// different day than requested. The site silently falls back to "today"
	// on certain failures, which must not be mistaken for real data.
	ErrWrongDate = errors.New("availability page does not match the requested date")
)

// Client talks to the theater's reservation site. All methods are safe for
// concurrent use; per-run state travels in the model.Session argument.
type Client struct {
	cfg  *config.SiteConfig
	http *http.Client
	now  func() time.Time
}

// NewClient creates a site client from the configuration.
func NewClient(cfg *config.SiteConfig) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		now:  time.Now,
	}
}

// Login exchanges credentials for an authenticated session: the cookies the
// Drupal login hands out plus the per-session form token scraped from a
// reservation page.
func (c *Client) Login(ctx context.Context, creds model.Credentials) (model.Session, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return model.Session{}, fmt.Errorf("%w: %v", ErrAuthentication, err)
	}
	loginClient := &http.Client{Jar: jar, Timeout: c.cfg.Timeout}

	form := url.Values{
		"name":    {creds.Username},
		"pass":    {creds.Password},
		"form_id": {loginFormID},
		"op":      {"כניסה"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/he", strings.NewReader(form.Encode()))
	if err != nil {
		return model.Session{}, fmt.Errorf("%w: %v", ErrAuthentication, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := loginClient.Do(req)
	if err != nil {
		return model.Session{}, fmt.Errorf("%w: login request: %v", ErrAuthentication, err)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	base, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return model.Session{}, fmt.Errorf("%w: invalid base url %q: %v", ErrAuthentication, c.cfg.BaseURL, err)
	}
	cookies := jar.Cookies(base)
	if len(cookies) == 0 {
		return model.Session{}, fmt.Errorf("%w: no session cookie issued for %s", ErrAuthentication, creds.Username)
	}

	token, err := c.queryFormToken(ctx, cookies)
	if err != nil {
		return model.Session{}, fmt.Errorf("%w: %v", ErrAuthentication, err)
	}

	return model.Session{Cookies: cookies, FormToken: token}, nil
}

// queryFormToken fetches an arbitrary reservation page and scrapes the form
// token tied to the session cookies.
func (c *Client) queryFormToken(ctx context.Context, cookies []*http.Cookie) (string, error) {
	resp, err := c.get(ctx, reservationPath(c.now(), formTokenRoomID), cookies)
	if err != nil {
		return "", fmt.Errorf("form token request: %w", err)
	}
	defer resp.Body.Close()

	token, err := parseFormToken(resp.Body)
	if err != nil {
		return "", err
	}
	return token, nil
}

// QueryRooms returns the rooms and their open slots for the given date.
// Availability pages that describe a different day are rejected with
// ErrWrongDate.
func (c *Client) QueryRooms(ctx context.Context, session model.Session, date time.Time) ([]model.Room, error) {
	// month and day must be two-digit numbers in the path
	path := fmt.Sprintf("/he/room_reservations/%02d/%02d", int(date.Month()), date.Day())
	resp, err := c.get(ctx, path, session.Cookies)
	if err != nil {
		return nil, fmt.Errorf("availability request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("availability page returned status %d", resp.StatusCode)
	}

	rooms, err := parseRooms(resp.Body)
	if err != nil {
		return nil, err
	}
	if !matchesDate(rooms, date) {
		return nil, fmt.Errorf("%w: queried %02d/%02d", ErrWrongDate, int(date.Month()), date.Day())
	}
	return rooms, nil
}

// BookRoom submits one reservation for the given slot. A clean rejection
// (slot already taken, no confirmation banner) is a false result, not an
// error; errors report transport failures only.
func (c *Client) BookRoom(ctx context.Context, session model.Session, t time.Time, roomID string) (bool, error) {
	log.Printf("RoomBookingAttempted: room %s at %02d-%02d %s", roomID, int(t.Month()), t.Day(), t.Format("15:04"))

	today := c.now()
	form := url.Values{
		"form_token":              {session.FormToken},
		"form_id":                 {bookingFormID},
		"reservation_length[und]": {reservationLength},
		"reservation_repeat_until[und][0][value][year]":  {strconv.Itoa(today.Year())},
		"reservation_repeat_until[und][0][value][month]": {strconv.Itoa(int(today.Month()))},
		"reservation_repeat_until[und][0][value][day]":   {strconv.Itoa(today.Day())},
		"op": {"שמירה"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+reservationPath(t, roomID), strings.NewReader(form.Encode()))
	if err != nil {
		return false, fmt.Errorf("failed to create booking request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	for _, cookie := range session.Cookies {
		req.AddCookie(cookie)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("booking request failed: %w", err)
	}
	defer resp.Body.Close()

	message := parseConfirmation(resp.Body)
	log.Printf("RoomBookingResponseMessage: %s", message)
	return bookingSucceeded(message), nil
}

// get issues an authenticated GET against the site.
func (c *Client) get(ctx context.Context, path string, cookies []*http.Cookie) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	return c.http.Do(req)
}

// reservationPath builds the reservation node path for a slot. Month and day
// are unpadded here, unlike the availability page path.
func reservationPath(t time.Time, roomID string) string {
	return fmt.Sprintf("/he/node/add/room-reservations-reservation/%d/%d/%s/%s",
		int(t.Month()), t.Day(), t.Format("1504"), roomID)
}

// matchesDate checks the first slot found against the queried (month, day).
// All slots of one page share a day, so one sample is enough. A page with no
// slots at all is indistinguishable from the failure page and is rejected.
func matchesDate(rooms []model.Room, date time.Time) bool {
	for _, room := range rooms {
		if len(room.AvailableSlots) > 0 {
			slot := room.AvailableSlots[0]
			return slot.Month() == date.Month() && slot.Day() == date.Day()
		}
	}
	return false
}
