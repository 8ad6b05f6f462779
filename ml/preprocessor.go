package ml

import (
	"errors"
	"fmt"
)

// StandardScaler applies (x - mean) / scale per feature. A zero scale is
// treated as 1, matching how scikit-learn stores constant features.
type StandardScaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

func NewStandardScaler(mean, scale []float64) (*StandardScaler, error) {
	if len(mean) == 0 {
		return nil, errors.New("standard scaler: mean is empty")
	}
	if len(mean) != len(scale) {
		return nil, fmt.Errorf("%w: standard scaler mean has %d values, scale has %d", ErrShapeMismatch, len(mean), len(scale))
	}
	return &StandardScaler{Mean: mean, Scale: scale}, nil
}

func (s *StandardScaler) Width() int { return len(s.Mean) }

func (s *StandardScaler) Transform(features []float64) ([]float64, error) {
	if err := checkWidth("standard scaler", s.Width(), len(features)); err != nil {
		return nil, err
	}
	out := make([]float64, len(features))
	for i, value := range features {
		scale := s.Scale[i]
		if scale == 0 {
			scale = 1
		}
		out[i] = (value - s.Mean[i]) / scale
	}
	return out, nil
}

// MinMaxScaler maps each feature from [min, max] onto [0, 1].
type MinMaxScaler struct {
	Min []float64 `json:"min"`
	Max []float64 `json:"max"`
}

func NewMinMaxScaler(mins, maxs []float64) (*MinMaxScaler, error) {
	if len(mins) == 0 {
		return nil, errors.New("minmax scaler: min is empty")
	}
	if len(mins) != len(maxs) {
		return nil, fmt.Errorf("%w: minmax scaler min has %d values, max has %d", ErrShapeMismatch, len(mins), len(maxs))
	}
	return &MinMaxScaler{Min: mins, Max: maxs}, nil
}

func (s *MinMaxScaler) Width() int { return len(s.Min) }

func (s *MinMaxScaler) Transform(features []float64) ([]float64, error) {
	if err := checkWidth("minmax scaler", s.Width(), len(features)); err != nil {
		return nil, err
	}
	return NormalizeVector(features, s.Min, s.Max)
}

// NormalizeVector scales each value by its min/max pair. Features whose min
// equals max map to 0.
func NormalizeVector(vector, mins, maxs []float64) ([]float64, error) {
	if len(vector) != len(mins) || len(vector) != len(maxs) {
		return nil, fmt.Errorf("%w: vector has %d values, stats have %d/%d", ErrShapeMismatch, len(vector), len(mins), len(maxs))
	}
	out := make([]float64, len(vector))
	for i, value := range vector {
		span := maxs[i] - mins[i]
		if span == 0 {
			continue
		}
		out[i] = (value - mins[i]) / span
	}
	return out, nil
}

// IdentityScaler passes features through unchanged.
type IdentityScaler struct {
	N int `json:"width"`
}

func (s IdentityScaler) Width() int { return s.N }

func (s IdentityScaler) Transform(features []float64) ([]float64, error) {
	if err := checkWidth("identity scaler", s.N, len(features)); err != nil {
		return nil, err
	}
	return append([]float64(nil), features...), nil
}

func checkWidth(component string, want, got int) error {
	if want != got {
		return fmt.Errorf("%w: %s expects %d features, got %d", ErrShapeMismatch, component, want, got)
	}
	return nil
}
