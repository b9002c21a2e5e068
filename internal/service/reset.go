package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/johndoniego/erudite/internal/store"
)

// ResetService clears every app collection
type ResetService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewResetService creates a new reset service
func NewResetService(s *store.Store, logger *slog.Logger) *ResetService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ResetService{store: s, logger: logger}
}

// Reset removes every key that belongs to the app and returns the keys removed.
// Keys written by other applications are left alone.
func (s *ResetService) Reset(ctx context.Context) ([]string, error) {
	keys, err := s.store.Keys(ctx)
	if err != nil {
		return nil, err
	}

	var removed []string
	var errs []error
	for _, key := range keys {
		if !store.IsAppKey(key) {
			continue
		}
		if err := s.store.Remove(ctx, key); err != nil {
			errs = append(errs, err)
			continue
		}
		removed = append(removed, key)
	}

	s.logger.Info("app data reset", "removed", len(removed), "failed", len(errs))
	return removed, errors.Join(errs...)
}
