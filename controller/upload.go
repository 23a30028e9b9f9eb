package controller

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/FaizanInstinct/bytebuddy-chat/logger"
)

// validImageTypes maps accepted MIME types to their file extensions.
var validImageTypes = map[string]string{
	"image/jpeg": "jpeg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// UploadController stores chat image attachments on disk and hands back their
// public path.
type UploadController struct {
	dir      string
	maxBytes int64
}

func NewUploadController(dir string, maxBytes int64) *UploadController {
	return &UploadController{dir: dir, maxBytes: maxBytes}
}

// UploadImage handles POST /upload (multipart form, "image" field)
func (c *UploadController) UploadImage(ctx *gin.Context) {
	file, err := ctx.FormFile("image")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No image file provided"})
		return
	}

	ext, ok := validImageTypes[file.Header.Get("Content-Type")]
	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type. Only JPEG, PNG, GIF, and WebP are supported"})
		return
	}

	if file.Size > c.maxBytes {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "File too large. Maximum size is 5MB"})
		return
	}

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		logger.L.Error("failed to create uploads directory", "error", err, "dir", c.dir)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	filename := fmt.Sprintf("%s.%s", uuid.New(), ext)
	if err := ctx.SaveUploadedFile(file, filepath.Join(c.dir, filename)); err != nil {
		logger.L.Error("failed to save uploaded image", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":  true,
		"imageUrl": "/uploads/" + filename,
	})
}
