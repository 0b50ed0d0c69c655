package parse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlotLink(t *testing.T) {
	testCases := []struct {
		name      string
		href      string
		expected  SlotRef
		expectErr bool
	}{
		{
			name:     "Standard link",
			href:     "/he/node/add/room-reservations-reservation/5/25/0830/14343",
			expected: SlotRef{Month: 5, Day: 25, Hour: 8, Minute: 30, RoomID: "14343"},
		},
		{
			name:     "Unpadded hour",
			href:     "/he/node/add/room-reservations-reservation/12/3/930/123666",
			expected: SlotRef{Month: 12, Day: 3, Hour: 9, Minute: 30, RoomID: "123666"},
		},
		{
			name:     "Trailing slash",
			href:     "/he/node/add/room-reservations-reservation/11/07/2130/14350/",
			expected: SlotRef{Month: 11, Day: 7, Hour: 21, Minute: 30, RoomID: "14350"},
		},
		{
			name:      "Month out of range",
			href:      "/he/node/add/room-reservations-reservation/13/25/0830/14343",
			expectErr: true,
		},
		{
			name:      "Not a reservation link",
			href:      "/he/node/14343",
			expectErr: true,
		},
		{
			name:      "Empty",
			href:      "",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ref, err := SlotLink(tc.href)
			if tc.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, ref)
			}
		})
	}
}

func TestSlotRefTime(t *testing.T) {
	ref := SlotRef{Month: 5, Day: 25, Hour: 8, Minute: 30, RoomID: "14343"}
	assert.Equal(t, time.Date(1, 5, 25, 8, 30, 0, 0, time.UTC), ref.Time())
}

func TestRoomLink(t *testing.T) {
	testCases := []struct {
		name      string
		href      string
		expected  string
		expectErr bool
	}{
		{name: "Standard link", href: "/he/node/14343", expected: "14343"},
		{name: "Trailing slash", href: "/he/node/14350/", expected: "14350"},
		{name: "Non-numeric id", href: "/he/node/about", expectErr: true},
		{name: "No path", href: "14343", expectErr: true},
		{name: "Empty", href: "", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := RoomLink(tc.href)
			if tc.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, id)
			}
		})
	}
}
