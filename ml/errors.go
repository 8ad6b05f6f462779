package ml

import "errors"

var (
	// ErrArtifactMissing is returned when the scaler or model cannot be loaded.
	ErrArtifactMissing = errors.New("artifact missing")
	// ErrShapeMismatch is returned when a vector width disagrees with a scaler or model.
	ErrShapeMismatch = errors.New("shape mismatch")
	// ErrInvalidCategoricalCode is returned for a categorical code outside its enumeration.
	ErrInvalidCategoricalCode = errors.New("invalid categorical code")

	ErrMissingField        = errors.New("missing field")
	ErrInvalidValue        = errors.New("invalid value")
	ErrNonFinitePrediction = errors.New("model returned a non-finite prediction")
	ErrUnsupportedArtifact = errors.New("unsupported artifact kind")
)
