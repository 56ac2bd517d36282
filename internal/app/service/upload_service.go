package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/doorhan-crimea/doorhan-backend/internal/storage"
	"github.com/doorhan-crimea/doorhan-backend/pkg/logger"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var (
	ErrNoFile              = errors.New("no file provided")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
	ErrWriteFailed         = errors.New("failed to store file")
	ErrInvalidPath         = errors.New("invalid file path")
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".svg":  true,
	".avif": true,
}

type UploadConfig struct {
	ImageDir string
	PDFDir   string
	MaxBytes int64
}

type UploadService interface {
	// UploadImage stores one image under a generated name and returns its public path
	UploadImage(ctx context.Context, file *multipart.FileHeader) (string, error)
	// UploadPDF stores one document whose content sniffs as application/pdf
	UploadPDF(ctx context.Context, file *multipart.FileHeader) (string, error)
	// DeleteFile removes a stored upload; an already missing file is not an error
	DeleteFile(ctx context.Context, publicPath string) error
}

type uploadService struct {
	store  storage.Storage
	config UploadConfig
}

func NewUploadService(store storage.Storage, config UploadConfig) UploadService {
	return &uploadService{store: store, config: config}
}

func (s *uploadService) checkSize(file *multipart.FileHeader) error {
	if file == nil {
		return ErrNoFile
	}
	if s.config.MaxBytes > 0 && file.Size > s.config.MaxBytes {
		return ErrFileTooLarge
	}
	return nil
}

func (s *uploadService) UploadImage(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if err := s.checkSize(file); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !imageExtensions[ext] {
		logger.Warn("Rejected image upload", map[string]interface{}{
			"filename": file.Filename,
		})
		return "", ErrUnsupportedFileType
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	defer src.Close()

	return s.save(ctx, s.config.ImageDir, uuid.New().String()+ext, src)
}

func (s *uploadService) UploadPDF(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if err := s.checkSize(file); err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	defer src.Close()

	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	if !mtype.Is("application/pdf") {
		logger.Warn("Rejected PDF upload", map[string]interface{}{
			"filename":  file.Filename,
			"mime_type": mtype.String(),
		})
		return "", ErrUnsupportedFileType
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	return s.save(ctx, s.config.PDFDir, uuid.New().String()+".pdf", src)
}

func (s *uploadService) save(ctx context.Context, dir, name string, r io.Reader) (string, error) {
	publicPath, err := s.store.Save(ctx, dir, name, r)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidPath) {
			return "", ErrInvalidPath
		}
		logger.Error("Failed to store upload", err, map[string]interface{}{
			"dir": dir,
		})
		return "", fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	logger.Info("File uploaded", map[string]interface{}{
		"path": publicPath,
	})
	return publicPath, nil
}

func (s *uploadService) DeleteFile(ctx context.Context, publicPath string) error {
	publicPath = strings.TrimSpace(publicPath)
	if publicPath == "" {
		return requiredError("url")
	}

	if err := s.store.Delete(ctx, publicPath); err != nil {
		if errors.Is(err, storage.ErrInvalidPath) {
			return ErrInvalidPath
		}
		logger.Error("Failed to delete upload", err, map[string]interface{}{
			"path": publicPath,
		})
		return err
	}

	logger.Info("File deleted", map[string]interface{}{
		"path": publicPath,
	})
	return nil
}
