package theater

import (
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"theater-booking-backend/internal/model"
	"theater-booking-backend/internal/parse"
)

// parseRooms extracts the rooms and their open slots from an availability
// page. Rooms are hour columns inside #halls; columns whose metadata entry
// has no link are layout artifacts, not rooms.
func parseRooms(r io.Reader) ([]model.Room, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse availability page: %w", err)
	}

	var rooms []model.Room
	doc.Find("div#halls div.grid-column.hours-column").Each(func(_ int, col *goquery.Selection) {
		meta := col.Find("li.room-info").First()
		if meta.Length() == 0 {
			log.Printf("room metadata not found in hours column, skipping")
			return
		}
		link := meta.Find("a").First()
		if link.Length() == 0 {
			// not an actual room
			return
		}
		href, _ := link.Attr("href")
		id, err := parse.RoomLink(href)
		if err != nil {
			log.Printf("skipping room with unparseable metadata link: %v", err)
			return
		}

		rooms = append(rooms, model.Room{
			Name:           strings.TrimSpace(meta.Text()),
			ID:             id,
			AvailableSlots: parseAvailableSlots(col),
		})
	})
	return rooms, nil
}

// parseAvailableSlots collects the open slots of one room column. The site
// renders slot times only on reservable entries, so closed and booked slots
// cannot be (and do not need to be) parsed.
func parseAvailableSlots(col *goquery.Selection) []time.Time {
	var slots []time.Time
	col.Find("li").Each(func(_ int, li *goquery.Selection) {
		if !isReservable(li) {
			return
		}
		href, ok := li.Find(".booking-span a").First().Attr("href")
		if !ok {
			log.Printf("reservable slot without a booking link: %s", outerHTML(li))
			return
		}
		ref, err := parse.SlotLink(href)
		if err != nil {
			log.Printf("skipping slot: %v", err)
			return
		}
		slots = append(slots, ref.Time())
	})
	return slots
}

// isReservable classifies one li of a room column by its css classes.
func isReservable(li *goquery.Selection) bool {
	switch {
	case li.HasClass("room-info") || li.HasClass("timeslot"):
		// metadata, not a time slot
		return false
	case li.HasClass("closed") || li.HasClass("booked"):
		return false
	case li.HasClass("reservable"):
		return true
	default:
		log.Printf("unknown slot status: %s", outerHTML(li))
		return false
	}
}

// parseFormToken scrapes the session form token from any reservation page.
func parseFormToken(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("failed to parse form token page: %w", err)
	}
	token, ok := doc.Find(`input[name="form_token"]`).First().Attr("value")
	if !ok || token == "" {
		return "", fmt.Errorf("form token not found in reservation page")
	}
	return token, nil
}

// parseConfirmation extracts the status banner of a booking response. The
// site renders success and failure banners under different classes; a
// response without either is treated as an empty (failed) message.
func parseConfirmation(r io.Reader) string {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		log.Printf("failed to parse booking response: %v", err)
		return ""
	}
	if banner := doc.Find("div.alert-dismissible").First(); banner.Length() > 0 {
		return strings.TrimSpace(banner.Text())
	}
	if banner := doc.Find("div.messages.error").First(); banner.Length() > 0 {
		return strings.TrimSpace(banner.Text())
	}
	log.Printf("booking response message not found")
	return ""
}

// bookingSucceeded reports whether a confirmation banner describes a created
// reservation. The site answers in Hebrew; a created reservation message
// contains the word "נוצר".
func bookingSucceeded(message string) bool {
	return strings.Contains(message, "נוצר")
}

func outerHTML(sel *goquery.Selection) string {
	html, err := goquery.OuterHtml(sel)
	if err != nil {
		return "<unrenderable>"
	}
	return html
}
