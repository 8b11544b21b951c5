package pricing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeParams struct {
	value float64
	err   error
}

func (p *fakeParams) GetFloatParameter(ctx context.Context, owner, key string, fallback float64) (float64, error) {
	if p.err != nil {
		return 0, p.err
	}
	return p.value, nil
}

func TestServiceRoundingStep(t *testing.T) {
	svc := NewService(&fakeParams{value: 5}, zap.NewNop())
	step, err := svc.RoundingStep(context.Background(), "shop")
	assert.NoError(t, err)
	assert.Equal(t, 5.0, step)
}

func TestServiceRoundingStep_NonPositiveDegrades(t *testing.T) {
	svc := NewService(&fakeParams{value: -2}, zap.NewNop())
	step, err := svc.RoundingStep(context.Background(), "shop")
	assert.NoError(t, err)
	assert.Equal(t, 1.0, step)
}

func TestServiceRoundingStep_StorageError(t *testing.T) {
	svc := NewService(&fakeParams{err: errors.New("db down")}, zap.NewNop())
	_, err := svc.RoundingStep(context.Background(), "shop")
	assert.Error(t, err)
}

func TestServiceCompute_ExplicitStepSkipsStore(t *testing.T) {
	svc := NewService(&fakeParams{err: errors.New("db down")}, zap.NewNop())
	step := 5.0
	out, err := svc.Compute(context.Background(), "shop", Inputs{
		ManualUnitCost: f(10),
		RetailMargin:   f(0.4),
	}, &step)
	assert.NoError(t, err)
	assert.Equal(t, 20.0, *out.RetailUnit)
}
