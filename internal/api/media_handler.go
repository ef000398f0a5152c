package api

import (
	"errors"
	"net/http"

	"tamrino/trainer-app/internal/service"

	"github.com/gin-gonic/gin"
)

// maxMediaUploadBytes caps exercise demo uploads at 100 MiB.
const maxMediaUploadBytes = 100 << 20

// MediaHandler serves exercise demonstration media: multipart upload
// into object storage plus presigned download listing.
type MediaHandler struct {
	mediaService service.MediaService
}

// NewMediaHandler creates a new MediaHandler.
func NewMediaHandler(mediaService service.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// Upload accepts a multipart form with a "file" field and stores it as
// demo media for the exercise.
func (h *MediaHandler) Upload(c *gin.Context) {
	identity := identityFromContext(c)
	exerciseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "file field is required")
		return
	}
	if fileHeader.Size > maxMediaUploadBytes {
		abortWithError(c, http.StatusBadRequest, "file exceeds the upload size limit")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	media, err := h.mediaService.Upload(c.Request.Context(), identity.TrainerID, exerciseID,
		fileHeader.Filename, contentType, file, fileHeader.Size)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCatalogItemNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrCatalogAccessDenied):
			abortWithError(c, http.StatusNotFound, service.ErrCatalogItemNotFound.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to store media")
		}
		return
	}
	c.JSON(http.StatusCreated, media)
}

// List returns the exercise's media entries with presigned download
// URLs.
func (h *MediaHandler) List(c *gin.Context) {
	exerciseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	items, err := h.mediaService.List(c.Request.Context(), exerciseID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load media")
		return
	}
	c.JSON(http.StatusOK, items)
}
