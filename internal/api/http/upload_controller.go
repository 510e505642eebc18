package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"teleconsult/lib/logger/sl"
)

// UploadController accepts one binary file and hands back a reference
// URL the relay core stores verbatim on messages. Files land in an
// append-only directory named by arrival time plus original name.
type UploadController struct {
	dir     string
	maxSize int64
	log     *slog.Logger
}

func NewUploadController(dir string, maxSizeMB int64, log *slog.Logger) *UploadController {
	if log == nil {
		log = slog.Default()
	}
	return &UploadController{
		dir:     dir,
		maxSize: maxSizeMB << 20,
		log:     log,
	}
}

func (c *UploadController) Upload(ctx *gin.Context) {
	const op = "upload.file"
	log := c.log.With(slog.String("op", op))

	file, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if c.maxSize > 0 && file.Size > c.maxSize {
		ctx.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		log.Error("failed to create upload dir", sl.Err(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store file"})
		return
	}

	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(file.Filename))
	dst := filepath.Join(c.dir, name)

	if err := ctx.SaveUploadedFile(file, dst); err != nil {
		log.Error("failed to save file", sl.Err(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store file"})
		return
	}

	contentType := "application/octet-stream"
	if mtype, err := mimetype.DetectFile(dst); err == nil {
		contentType = mtype.String()
	}

	log.Info("file stored",
		slog.String("name", name),
		slog.Int64("size", file.Size),
		slog.String("content_type", contentType),
	)

	ctx.JSON(http.StatusOK, gin.H{
		"fileUrl":     "/uploads/" + name,
		"contentType": contentType,
	})
}
