package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"buildxpert/internal/config"
	"buildxpert/internal/dto"
	"buildxpert/internal/models"
	"buildxpert/internal/repositories"
	"buildxpert/internal/storage"
	"buildxpert/pkg/apperrors"
)

type UploadService struct {
	uploads repositories.UploadRepository
	store   storage.Storage
	cfg     config.UploadConfig
}

func NewUploadService(uploads repositories.UploadRepository, store storage.Storage, cfg config.UploadConfig) *UploadService {
	return &UploadService{uploads: uploads, store: store, cfg: cfg}
}

// Save validates size and MIME type, stores the content, and records
// the upload row.
func (s *UploadService) Save(ctx context.Context, userID, fileName, contentType string, r io.Reader, size int64) (*dto.UploadResponse, error) {
	if size > s.cfg.MaxSize {
		return nil, apperrors.ErrFileTooLarge
	}
	if !s.typeAllowed(contentType) {
		return nil, apperrors.ErrInvalidFileType
	}

	key := fmt.Sprintf("%s/%s%s", userID, uuid.NewString(), safeExt(fileName))

	url, err := s.store.Save(ctx, key, contentType, io.LimitReader(r, s.cfg.MaxSize), size)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	upload := &models.Upload{
		UserID:      userID,
		Path:        key,
		URL:         url,
		FileName:    fileName,
		ContentType: contentType,
		Size:        size,
	}
	if err := s.uploads.Create(upload); err != nil {
		_ = s.store.Delete(ctx, key)
		return nil, apperrors.InternalError(err)
	}

	resp := dto.ToUploadResponse(upload)
	return &resp, nil
}

// Open streams a stored file back. Used by the local backend's serving
// route.
func (s *UploadService) Open(ctx context.Context, uploadID string) (io.ReadCloser, *models.Upload, error) {
	upload, err := s.uploads.FindByID(uploadID)
	if err != nil {
		return nil, nil, apperrors.ErrNotFound(err)
	}

	r, err := s.store.Open(ctx, upload.Path)
	if err != nil {
		return nil, nil, apperrors.ErrNotFound(err)
	}
	return r, upload, nil
}

func (s *UploadService) Delete(ctx context.Context, uploadID, userID string, isAdmin bool) error {
	upload, err := s.uploads.FindByID(uploadID)
	if err != nil {
		return apperrors.ErrNotFound(err)
	}
	if upload.UserID != userID && !isAdmin {
		return apperrors.NewForbiddenError("You do not own this upload")
	}

	if err := s.store.Delete(ctx, upload.Path); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.uploads.Delete(uploadID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *UploadService) typeAllowed(contentType string) bool {
	for _, allowed := range s.cfg.AllowedTypes {
		if strings.EqualFold(allowed, contentType) {
			return true
		}
	}
	return false
}

func safeExt(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	if len(ext) > 10 || strings.ContainsAny(ext, "/\\") {
		return ""
	}
	return ext
}
