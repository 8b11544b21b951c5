package pricing

import (
	"context"

	"go.uber.org/zap"
)

// RoundingStepKey is the store parameter holding the unit-price rounding
// step. Missing or invalid values fall back to 1.
const RoundingStepKey = "rounding_step"

// ParameterSource provides named numeric parameters scoped to an owner.
type ParameterSource interface {
	GetFloatParameter(ctx context.Context, owner, key string, fallback float64) (float64, error)
}

// Service handles price computations.
type Service struct {
	params ParameterSource
	logger *zap.Logger
}

// NewService creates a new pricing service.
func NewService(params ParameterSource, logger *zap.Logger) *Service {
	return &Service{params: params, logger: logger}
}

// RoundingStep loads the owner's configured rounding step. A missing,
// unparsable or non-positive parameter degrades to 1 with a warning; only
// storage failures are returned.
func (s *Service) RoundingStep(ctx context.Context, owner string) (float64, error) {
	step, err := s.params.GetFloatParameter(ctx, owner, RoundingStepKey, 1)
	if err != nil {
		return 0, err
	}
	if step <= 0 {
		s.logger.Warn("Invalid rounding step, using 1",
			zap.String("owner", owner),
			zap.Float64("step", step))
		return 1, nil
	}
	return step, nil
}

// Compute returns the price breakdown for one set of inputs. When step is
// nil the owner's stored rounding step is used.
func (s *Service) Compute(ctx context.Context, owner string, in Inputs, step *float64) (Breakdown, error) {
	effective := float64(1)
	if step != nil {
		effective = *step
	} else {
		loaded, err := s.RoundingStep(ctx, owner)
		if err != nil {
			return Breakdown{}, err
		}
		effective = loaded
	}
	return ComputePrices(in, effective), nil
}
