package ml

import (
	"errors"
)

// LinearRegressor predicts intercept + coef·x.
type LinearRegressor struct {
	Coef      []float64 `json:"coef"`
	Intercept float64   `json:"intercept"`
}

func NewLinearRegressor(coef []float64, intercept float64) (*LinearRegressor, error) {
	if len(coef) == 0 {
		return nil, errors.New("linear model: coef is empty")
	}
	return &LinearRegressor{Coef: coef, Intercept: intercept}, nil
}

func (m *LinearRegressor) Width() int { return len(m.Coef) }

func (m *LinearRegressor) Predict(features []float64) (float64, error) {
	if err := checkWidth("linear model", m.Width(), len(features)); err != nil {
		return 0, err
	}
	sum := m.Intercept
	for i, value := range features {
		sum += m.Coef[i] * value
	}
	return sum, nil
}
