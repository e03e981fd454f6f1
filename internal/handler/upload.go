package handler

import (
	"net/http"

	"github.com/DhanunjayTheDev/ecombazaar/internal/service"

	"github.com/gin-gonic/gin"
)

// UploadHandler accepts admin image uploads and returns the public URL
// paths to store on products and categories.
type UploadHandler struct {
	uploads service.UploadService
}

func NewUploadHandler(uploads service.UploadService) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

// Upload stores the files sent under the "images" field.
func (h *UploadHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Expected a multipart form with images"})
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		files = form.File["image"]
	}
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No images provided"})
		return
	}

	urls := make([]string, 0, len(files))
	for _, fh := range files {
		url, err := h.uploads.Save(fh, "product")
		if err != nil {
			respondError(c, err)
			return
		}
		urls = append(urls, url)
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "url": urls[0], "urls": urls})
}
