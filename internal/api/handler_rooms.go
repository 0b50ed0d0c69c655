package api

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
)

// RoomResponse is one bookable room as exposed to the frontend.
type RoomResponse struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// GetRooms handles the GET /api/rooms request. The room list comes from
// configuration; discovering rooms would need an authenticated session.
func (h *Handler) GetRooms(c *gin.Context) {
	rooms := make([]RoomResponse, 0, len(h.rooms))
	for name, id := range h.rooms {
		rooms = append(rooms, RoomResponse{Name: name, ID: id})
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].Name < rooms[j].Name })
	c.JSON(http.StatusOK, rooms)
}
