package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/ikkim/backoffice-backend/internal/errors"
	"github.com/ikkim/backoffice-backend/internal/middleware"
	"github.com/ikkim/backoffice-backend/internal/storage"
)

type UploadController struct {
	storage *storage.MediaStorage
}

func NewUploadController(mediaStorage *storage.MediaStorage) *UploadController {
	return &UploadController{
		storage: mediaStorage,
	}
}

type PresignUploadRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	Folder      string `json:"folder" binding:"required,oneof=products rewards"`
}

// PresignUpload returns a presigned S3 PUT URL so the frontend can upload
// an image directly to the bucket.
func (ctrl *UploadController) PresignUpload(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req PresignUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid upload request")
		return
	}

	log.Debug("Generating presigned upload URL", map[string]interface{}{
		"filename":     req.Filename,
		"content_type": req.ContentType,
		"folder":       req.Folder,
	})

	result, err := ctrl.storage.PresignUpload(c.Request.Context(), req.Filename, req.ContentType, req.Folder)
	if err != nil {
		if errors.Is(err, storage.ErrContentTypeNotAllowed) || errors.Is(err, storage.ErrFolderNotAllowed) {
			log.Warn("Rejected upload request", map[string]interface{}{
				"content_type": req.ContentType,
				"folder":       req.Folder,
			})
			apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "Only image uploads to the products or rewards folder are allowed")
			return
		}
		log.Error("Failed to generate presigned URL", err, map[string]interface{}{
			"filename": req.Filename,
		})
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.UploadFailed, "Failed to generate upload URL")
		return
	}

	log.Info("Presigned upload URL generated", map[string]interface{}{
		"key": result.Key,
	})

	c.JSON(http.StatusOK, result)
}
