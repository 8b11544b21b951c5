package push

import (
	"context"

	"catalog-manager/core/archive"
	"catalog-manager/core/remote"
	"catalog-manager/feature/catalog"

	"go.uber.org/zap"
)

// ArchiveKind names price push reports in the run-report archive.
const ArchiveKind = "price-push"

// Service handles price push runs.
type Service struct {
	engine   *Engine
	archiver *archive.Archiver
	logger   *zap.Logger
}

// NewService creates a new push service.
func NewService(store *catalog.Store, client remote.Client, cfg remote.Config, archiver *archive.Archiver, logger *zap.Logger) *Service {
	return &Service{
		engine:   NewEngine(store, client, cfg, logger),
		archiver: archiver,
		logger:   logger,
	}
}

// Push runs one price push and archives the report. A failed archive write
// is logged, never fatal.
func (s *Service) Push(ctx context.Context, owner, scope string, productID *int64) (*Report, error) {
	report, err := s.engine.Run(ctx, owner, scope, productID)
	if err != nil {
		return nil, err
	}

	if object, err := s.archiver.Put(ctx, ArchiveKind, report); err != nil {
		s.logger.Warn("Failed to archive push report", zap.Error(err))
	} else if object != "" {
		s.logger.Debug("Push report archived", zap.String("object", object))
	}
	return report, nil
}
