package artifacts

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"gpapredict/ml"
)

// Options names the two artifacts and how to decode them.
type Options struct {
	Scaler     string
	Model      string
	ScalerKind string
	ModelKind  string
	CacheSize  int
}

// Load reads both artifacts from store and returns the runtime. A missing or
// undecodable artifact fails the whole load with ml.ErrArtifactMissing;
// nothing is partially published.
func Load(ctx context.Context, store Store, opts Options, logger *zap.Logger) (*ml.Runtime, error) {
	scalerPayload, err := store.Open(ctx, opts.Scaler)
	if err != nil {
		return nil, fmt.Errorf("scaler: %w", err)
	}
	modelPayload, err := store.Open(ctx, opts.Model)
	if err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}

	scaler, err := ml.LoadScaler(opts.ScalerKind, scalerPayload)
	if err != nil {
		return nil, notLoaded(opts.Scaler, err)
	}
	model, err := ml.LoadModel(opts.ModelKind, modelPayload)
	if err != nil {
		return nil, notLoaded(opts.Model, err)
	}
	model, err = ml.NewCachedRegressor(model, opts.CacheSize)
	if err != nil {
		return nil, notLoaded(opts.Model, err)
	}

	runtime, err := ml.NewRuntime(scaler, model, store.Describe())
	if err != nil {
		return nil, err
	}
	logger.Info("artifacts loaded",
		zap.String("source", store.Describe()),
		zap.String("scaler", opts.Scaler),
		zap.String("model", opts.Model),
		zap.Int("features", scaler.Width()),
		zap.Int("cache_size", opts.CacheSize),
	)
	return runtime, nil
}

// notLoaded classes a decode failure as a missing artifact. Shape mismatches
// keep their own class.
func notLoaded(name string, err error) error {
	if errors.Is(err, ml.ErrShapeMismatch) {
		return fmt.Errorf("%s: %w", name, err)
	}
	return fmt.Errorf("%w: %s: %w", ml.ErrArtifactMissing, name, err)
}
