package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"buildxpert/internal/dto"
	"buildxpert/internal/services"
	"buildxpert/pkg/apperrors"
)

type FileHandler struct {
	*BaseHandler
	uploads *services.UploadService
}

func NewFileHandler(base *BaseHandler, uploads *services.UploadService) *FileHandler {
	return &FileHandler{BaseHandler: base, uploads: uploads}
}

// Upload godoc
// @Summary Upload a file (multipart form, field "file")
// @Tags files
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File"
// @Success 201 {object} dto.UploadResponse
// @Router /files [post]
func (h *FileHandler) Upload(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError("Missing file field"))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}
	defer f.Close()

	contentType := fileHeader.Header.Get("Content-Type")

	resp, err := h.uploads.Save(c.Request.Context(), userID,
		fileHeader.Filename, contentType, f, fileHeader.Size)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Serve godoc
// @Summary Stream a stored file
// @Tags files
// @Produce octet-stream
// @Param id path string true "Upload ID"
// @Success 200
// @Router /files/{id} [get]
func (h *FileHandler) Serve(c *gin.Context) {
	r, upload, err := h.uploads.Open(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer r.Close()

	c.Header("Content-Type", upload.ContentType)
	c.Header("Cache-Control", "public, max-age=86400")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, r)
}

// Delete godoc
// @Summary Delete an upload
// @Tags files
// @Security BearerAuth
// @Produce json
// @Param id path string true "Upload ID"
// @Success 200 {object} dto.MessageResponse
// @Router /files/{id} [delete]
func (h *FileHandler) Delete(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	if err := h.uploads.Delete(c.Request.Context(), c.Param("id"), userID, h.IsAdmin(c)); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Upload deleted"})
}
