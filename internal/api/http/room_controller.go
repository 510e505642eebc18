package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"teleconsult/internal/api/http/converter"
	"teleconsult/internal/repository"
	"teleconsult/internal/service"
)

// RoomController exposes read-only room snapshots. Rooms come into
// existence through joins on the websocket side only.
type RoomController struct {
	rooms service.RoomViewer
}

func NewRoomController(rooms service.RoomViewer) *RoomController {
	return &RoomController{rooms: rooms}
}

func (c *RoomController) GetRoom(ctx *gin.Context) {
	room, err := c.rooms.Room(ctx.Request.Context(), ctx.Param("roomID"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repository.ErrRoomNotFound) {
			status = http.StatusNotFound
		}
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"room": converter.RoomToApi(room)})
}

func (c *RoomController) GetMessages(ctx *gin.Context) {
	history, err := c.rooms.History(ctx.Request.Context(), ctx.Param("roomID"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repository.ErrRoomNotFound) {
			status = http.StatusNotFound
		}
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"messages": history})
}

func (c *RoomController) GetAppointments(ctx *gin.Context) {
	appointments, err := c.rooms.Appointments(ctx.Request.Context(), ctx.Param("roomID"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repository.ErrRoomNotFound) {
			status = http.StatusNotFound
		}
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"appointments": appointments})
}
