package service

import (
	"context"
	"time"

	"github.com/doorhan-crimea/doorhan-backend/internal/app/repository"
	"github.com/doorhan-crimea/doorhan-backend/internal/storage"
	"github.com/doorhan-crimea/doorhan-backend/pkg/logger"
)

type UploadCleanupService interface {
	// RemoveOrphans deletes stored files that no record references and that
	// are older than the grace period. Returns the number of files removed.
	RemoveOrphans(ctx context.Context) (int, error)
}

type uploadCleanupService struct {
	store   storage.Storage
	refRepo repository.UploadReferenceRepository
	dirs    []string
	grace   time.Duration
	now     func() time.Time
}

func NewUploadCleanupService(store storage.Storage, refRepo repository.UploadReferenceRepository, grace time.Duration, dirs ...string) UploadCleanupService {
	return &uploadCleanupService{
		store:   store,
		refRepo: refRepo,
		dirs:    dirs,
		grace:   grace,
		now:     time.Now,
	}
}

func (s *uploadCleanupService) RemoveOrphans(ctx context.Context) (int, error) {
	// list before collecting references so a file uploaded and linked in
	// between is never seen as orphaned
	var candidates []storage.Object
	cutoff := s.now().Add(-s.grace)
	for _, dir := range s.dirs {
		objects, err := s.store.List(ctx, dir)
		if err != nil {
			return 0, err
		}
		for _, obj := range objects {
			if obj.ModTime.Before(cutoff) {
				candidates = append(candidates, obj)
			}
		}
	}
	if len(candidates) == 0 {
		return 0, nil
	}

	referenced, err := s.refRepo.ReferencedPaths()
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, obj := range candidates {
		if _, ok := referenced[obj.Path]; ok {
			continue
		}
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if err := s.store.Delete(ctx, obj.Path); err != nil {
			logger.Warn("Failed to remove orphaned upload", map[string]interface{}{
				"path":  obj.Path,
				"error": err.Error(),
			})
			continue
		}
		removed++
	}

	logger.Info("Orphaned uploads removed", map[string]interface{}{
		"candidates": len(candidates),
		"removed":    removed,
	})
	return removed, nil
}
