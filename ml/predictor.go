package ml

import (
	"fmt"
	"math"
	"time"
)

// Tier buckets a predicted GPA for user-facing feedback.
type Tier string

const (
	TierExcellent     Tier = "excellent"
	TierAverageToGood Tier = "average-to-good"
	TierNeedsSupport  Tier = "needs-support"
)

const (
	// MaxGPA is the top of the nominal GPA scale.
	MaxGPA = 4.0
	// ExcellentThreshold is inclusive; SupportThreshold is exclusive.
	ExcellentThreshold = 3.5
	SupportThreshold   = 2.0
)

var tierMessages = map[Tier]string{
	TierExcellent:     "Excellent! This student is projected to be in the top academic tier.",
	TierAverageToGood: "This student is performing at an average to good academic level.",
	TierNeedsSupport:  "This student may benefit from additional academic support.",
}

func (t Tier) Message() string { return tierMessages[t] }

// Celebrate reports whether the tier gets celebratory feedback.
func (t Tier) Celebrate() bool { return t == TierExcellent }

// Warn reports whether the tier gets warning feedback.
func (t Tier) Warn() bool { return t == TierNeedsSupport }

// Classify maps a prediction onto half-open intervals: [3.5, inf) excellent,
// (-inf, 2.0) needs-support, anything else average-to-good.
func Classify(prediction float64) Tier {
	switch {
	case prediction >= ExcellentThreshold:
		return TierExcellent
	case prediction < SupportThreshold:
		return TierNeedsSupport
	default:
		return TierAverageToGood
	}
}

// DisplayValue is clamp(prediction/4, 0, 1), used for the progress bar.
func DisplayValue(prediction float64) float64 {
	if math.IsNaN(prediction) {
		return 0
	}
	return math.Min(math.Max(prediction/MaxGPA, 0), 1)
}

// PredictionResult is computed once per request and never stored.
type PredictionResult struct {
	GPA     float64 `json:"gpa"`
	Display float64 `json:"display"`
	Tier    Tier    `json:"tier"`
}

func NewPredictionResult(gpa float64) PredictionResult {
	return PredictionResult{GPA: gpa, Display: DisplayValue(gpa), Tier: Classify(gpa)}
}

// Predict scales the vector and runs the model. The scaler and model must
// have been fitted on the same column order as FeatureVector; that contract
// cannot be checked here beyond the widths.
func Predict(vector FeatureVector, scaler Scaler, model Regressor) (float64, error) {
	if scaler == nil {
		return 0, fmt.Errorf("%w: scaler not loaded", ErrArtifactMissing)
	}
	if model == nil {
		return 0, fmt.Errorf("%w: model not loaded", ErrArtifactMissing)
	}
	if err := checkWidth("scaler", scaler.Width(), FeatureCount); err != nil {
		return 0, err
	}
	scaled, err := scaler.Transform(vector.Slice())
	if err != nil {
		return 0, fmt.Errorf("transform: %w", err)
	}
	if err := checkWidth("model", model.Width(), len(scaled)); err != nil {
		return 0, err
	}
	prediction, err := model.Predict(scaled)
	if err != nil {
		return 0, fmt.Errorf("predict: %w", err)
	}
	if math.IsNaN(prediction) || math.IsInf(prediction, 0) {
		return 0, ErrNonFinitePrediction
	}
	return prediction, nil
}

// Runtime is the read-only scaler/model pair loaded at startup. It is shared
// by all requests and never mutated after construction.
type Runtime struct {
	scaler   Scaler
	model    Regressor
	source   string
	loadedAt time.Time
}

func NewRuntime(scaler Scaler, model Regressor, source string) (*Runtime, error) {
	if scaler == nil || model == nil {
		return nil, fmt.Errorf("%w: runtime requires both scaler and model", ErrArtifactMissing)
	}
	if err := checkWidth("scaler", scaler.Width(), FeatureCount); err != nil {
		return nil, err
	}
	if err := checkWidth("model", model.Width(), scaler.Width()); err != nil {
		return nil, err
	}
	return &Runtime{scaler: scaler, model: model, source: source, loadedAt: time.Now()}, nil
}

func (r *Runtime) Scaler() Scaler { return r.scaler }
func (r *Runtime) Model() Regressor { return r.model }
func (r *Runtime) Source() string { return r.source }
func (r *Runtime) LoadedAt() time.Time { return r.loadedAt }

// Predict builds the feature vector, runs inference and classifies the result.
func (r *Runtime) Predict(inputs StudentInputs) (PredictionResult, error) {
	if r == nil {
		return PredictionResult{}, ErrArtifactMissing
	}
	vector, err := BuildFeatureVector(inputs)
	if err != nil {
		return PredictionResult{}, err
	}
	gpa, err := Predict(vector, r.scaler, r.model)
	if err != nil {
		return PredictionResult{}, err
	}
	return NewPredictionResult(gpa), nil
}
