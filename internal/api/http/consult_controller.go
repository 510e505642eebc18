package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"teleconsult/internal/domain"
	"teleconsult/internal/service"
	"teleconsult/lib/logger/sl"
)

// ConsultController bridges websocket connections to the coordinator.
// It owns the socket lifecycle only: the coordinator never sees the
// transport, just sessions and their event channels.
type ConsultController struct {
	consult  service.ConsultInteractor
	log      *slog.Logger
	upgrader websocket.Upgrader
}

func NewConsultController(consult service.ConsultInteractor, log *slog.Logger) *ConsultController {
	if log == nil {
		log = slog.Default()
	}
	return &ConsultController{
		consult: consult,
		log:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (c *ConsultController) Serve(ctx *gin.Context) {
	conn, err := c.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.log.Error("failed to upgrade connection", sl.Err(err))
		return
	}

	// The transport assigns the opaque connection identifier.
	connID := uuid.NewString()
	sess := c.consult.Connect(connID)

	go forwardSessionEvents(sess, conn)

	for {
		var event domain.ClientEvent
		if err := conn.ReadJSON(&event); err != nil {
			_ = c.consult.Disconnect(context.Background(), connID)
			conn.Close()
			return
		}

		if err := c.consult.HandleEvent(context.Background(), connID, &event); err != nil {
			// Malformed or unknown events are dropped; no error frame
			// goes back to the connection.
			c.log.Debug("event dropped",
				slog.String("conn_id", connID),
				slog.String("type", event.Type),
				sl.Err(err),
			)
		}
	}
}

func forwardSessionEvents(sess *domain.Session, conn *websocket.Conn) {
	for event := range sess.Events() {
		if err := conn.WriteJSON(event); err != nil {
			return
		}
	}
}
