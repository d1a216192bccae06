package service

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/quizdesk/quizdesk/internal/config"
	"github.com/rs/zerolog"
)

// Sentinel errors for image uploads.
var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
)

// Allowed question image extensions, matched case-insensitively.
var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// MediaService stores question images on local disk under the configured
// upload directory, served back at /uploads/<name>.
type MediaService struct {
	uploadDir string
	maxBytes  int64
	log       zerolog.Logger
}

// NewMediaService creates a new MediaService.
func NewMediaService(cfg *config.Config, log zerolog.Logger) *MediaService {
	return &MediaService{
		uploadDir: cfg.UploadDir,
		maxBytes:  cfg.MaxUploadBytes,
		log:       log.With().Str("component", "media_service").Logger(),
	}
}

// SaveQuestionImage validates and stores an uploaded image, returning the
// public URL path. The stored filename is a fresh UUID so uploads never
// collide or leak the original name.
func (s *MediaService) SaveQuestionImage(header *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExts[ext] {
		return "", fmt.Errorf("%w: %s (allowed: .jpg, .jpeg, .png, .webp)", ErrUnsupportedFileType, ext)
	}

	if header.Size > s.maxBytes {
		return "", fmt.Errorf("%w: %d bytes (max: %d)", ErrFileTooLarge, header.Size, s.maxBytes)
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	filename := uuid.New().String() + ext
	destPath := filepath.Join(s.uploadDir, filename)

	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := dst.ReadFrom(src); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	return "/uploads/" + filename, nil
}

// Remove deletes a stored image by its public URL path. Failures are logged
// and swallowed; a stale file on disk never blocks the caller's delete.
func (s *MediaService) Remove(urlPath string) {
	name := filepath.Base(urlPath)
	if name == "." || name == "/" || name == "" {
		return
	}
	if err := os.Remove(filepath.Join(s.uploadDir, name)); err != nil && !os.IsNotExist(err) {
		s.log.Warn().Err(err).Str("file", name).Msg("Image cleanup failed")
	}
}
