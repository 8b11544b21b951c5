package integrity

import (
	"context"

	"catalog-manager/feature/catalog"

	"go.uber.org/zap"
)

// Service handles integrity checks.
type Service struct {
	store  *catalog.Store
	logger *zap.Logger
}

// NewService creates a new integrity service.
func NewService(store *catalog.Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Check runs all integrity checks for one owner.
func (s *Service) Check(ctx context.Context, owner string) (*Report, error) {
	report, err := CheckCatalog(ctx, s.store, owner)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Integrity check completed",
		zap.String("owner", owner),
		zap.Int("itemsChecked", report.ItemsChecked),
		zap.Int("findings", len(report.Findings)))
	return report, nil
}
