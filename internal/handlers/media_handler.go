package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/navalhaprime/barbershop-api/internal/media"
)

const maxUploadBytes = 8 << 20 // 8 MiB

type MediaHandler struct {
	uploader *media.Uploader
}

func NewMediaHandler(uploader *media.Uploader) *MediaHandler {
	return &MediaHandler{uploader: uploader}
}

// Upload takes a multipart "file" field, normalizes the image and
// returns the stored URL to attach to services, products or profiles.
func (h *MediaHandler) Upload(c *gin.Context) {
	if !h.uploader.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "media_disabled",
			"message": "Upload de imagens não está configurado.",
		})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_file"})
		return
	}
	defer file.Close()

	if header.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error":   "file_too_large",
			"message": "Imagem maior que o limite de 8MB.",
		})
		return
	}

	url, err := h.uploader.Upload(c.Request.Context(), file)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "invalid_image",
			"message": "Não foi possível processar a imagem enviada.",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}
