package http

import (
	"path/filepath"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"teleconsult/internal/config"
)

func SetupRouter(cfg *config.Config, consult *ConsultController, rooms *RoomController, uploads *UploadController) *gin.Engine {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{
		"Authorization",
		"Content-Type",
		"Origin",
		"Accept",
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})

	if cfg != nil {
		router.Static("/uploads", cfg.Upload.Dir)
		router.StaticFile("/", filepath.Join(cfg.Static.Dir, "index.html"))
		router.Static("/public", cfg.Static.Dir)
	}

	if consult != nil {
		router.GET("/ws", consult.Serve)
	}
	if uploads != nil {
		router.POST("/upload", uploads.Upload)
	}

	api := router.Group("/api")

	if rooms != nil {
		group := api.Group("/rooms")
		group.GET("/:roomID", rooms.GetRoom)
		group.GET("/:roomID/messages", rooms.GetMessages)
		group.GET("/:roomID/appointments", rooms.GetAppointments)
	}

	return router
}
