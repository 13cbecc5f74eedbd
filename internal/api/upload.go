package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gleviosaa/expireTrack/internal/middleware"
	"github.com/gleviosaa/expireTrack/internal/service"
)

type UploadHandler struct {
	imageService *service.ImageService
	authService  *service.AuthService
}

func NewUploadHandler(imageService *service.ImageService, authService *service.AuthService) *UploadHandler {
	return &UploadHandler{imageService: imageService, authService: authService}
}

func (h *UploadHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/upload", middleware.AuthMiddleware(h.authService), h.UploadImage)
}

// UploadImage accepts a multipart "image" field plus an optional "barcode"
// field. When the barcode already has a shared image the existing URL comes
// back with shared=true and nothing is uploaded.
func (h *UploadHandler) UploadImage(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image file provided"})
		return
	}
	if fileHeader.Size > service.MaxImageBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image exceeds the 5MB limit"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read image file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, service.MaxImageBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read image file"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	barcode := c.PostForm("barcode")

	result, err := h.imageService.Upload(c.Request.Context(), barcode, contentType, data)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
