package stock

import (
	"context"

	"catalog-manager/core/archive"
	"catalog-manager/core/remote"
	"catalog-manager/feature/catalog"

	"go.uber.org/zap"
)

// ArchiveKind names stock sync reports in the run-report archive.
const ArchiveKind = "stock-sync"

// Service handles stock sync runs.
type Service struct {
	engine   *Engine
	archiver *archive.Archiver
	logger   *zap.Logger
}

// NewService creates a new stock service.
func NewService(store *catalog.Store, client remote.Client, cfg remote.Config, archiver *archive.Archiver, logger *zap.Logger) *Service {
	return &Service{
		engine:   NewEngine(store, client, cfg, logger),
		archiver: archiver,
		logger:   logger,
	}
}

// Sync runs one stock sync and archives the summary. A failed archive
// write is logged, never fatal.
func (s *Service) Sync(ctx context.Context, owner string) (*Summary, error) {
	summary, err := s.engine.Sync(ctx, owner)
	if err != nil {
		return nil, err
	}

	if object, err := s.archiver.Put(ctx, ArchiveKind, summary); err != nil {
		s.logger.Warn("Failed to archive stock sync summary", zap.Error(err))
	} else if object != "" {
		s.logger.Debug("Stock sync summary archived", zap.String("object", object))
	}
	return summary, nil
}
