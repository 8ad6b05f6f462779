package ml

// Scaler maps raw feature scale to the scale the model was fitted on.
// Width reports how many features it expects.
type Scaler interface {
	Transform(features []float64) ([]float64, error)
	Width() int
}

// Regressor maps a scaled feature vector to a single predicted value.
type Regressor interface {
	Predict(features []float64) (float64, error)
	Width() int
}
