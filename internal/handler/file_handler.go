package handler

import (
	"net/http"
	"os"

	"github.com/labstack/echo/v4"

	"kitchensaver/internal/storage"
)

// FileHandler handles image upload and serving.
type FileHandler struct {
	store *storage.LocalStore
}

// NewFileHandler creates a new file handler.
func NewFileHandler(store *storage.LocalStore) *FileHandler {
	return &FileHandler{store: store}
}

// Upload godoc
// @Summary Upload an image file
// @Tags files
// @Accept multipart/form-data
// @Produce plain
// @Security BearerAuth
// @Param file formData file true "Image file"
// @Success 200 {string} string "stored file name"
// @Failure 400 {string} string
// @Router /upload [post]
func (h *FileHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.String(http.StatusBadRequest, "Failed to upload file: "+err.Error())
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.String(http.StatusBadRequest, "Failed to upload file: "+err.Error())
	}
	defer src.Close()

	fileName, err := h.store.Save(fileHeader.Filename, src)
	if err != nil {
		return c.String(http.StatusBadRequest, "Failed to upload file: "+err.Error())
	}
	return c.String(http.StatusOK, fileName)
}

// Serve godoc
// @Summary Serve a stored image by file name
// @Tags files
// @Produce jpeg
// @Param filename path string true "Stored file name"
// @Success 200 {file} binary
// @Failure 404 {object} nil
// @Failure 500 {object} nil
// @Router /files/{filename} [get]
func (h *FileHandler) Serve(c echo.Context) error {
	data, err := h.store.Read(c.Param("filename"))
	if err != nil {
		if os.IsNotExist(err) {
			return c.NoContent(http.StatusNotFound)
		}
		return c.NoContent(http.StatusInternalServerError)
	}
	return c.Blob(http.StatusOK, "image/jpeg", data)
}
