package ml

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyBoundaries(t *testing.T) {
	cases := []struct {
		prediction float64
		tier       Tier
	}{
		{3.5, TierExcellent},
		{3.49999, TierAverageToGood},
		{1.99999, TierNeedsSupport},
		{2.0, TierAverageToGood},
		{4.7, TierExcellent},
		{-1, TierNeedsSupport},
	}
	for _, c := range cases {
		assert.Equal(t, c.tier, Classify(c.prediction), "classify(%v)", c.prediction)
	}
	assert.True(t, TierExcellent.Celebrate())
	assert.True(t, TierNeedsSupport.Warn())
	assert.NotEmpty(t, TierAverageToGood.Message())
}

func TestDisplayValueMonotonicAndBounded(t *testing.T) {
	previous := math.Inf(-1)
	lastDisplay := 0.0
	for p := -10.0; p <= 10.0; p += 0.01 {
		d := DisplayValue(p)
		if d < 0 || d > 1 {
			t.Fatalf("display value %v for %v out of [0,1]", d, p)
		}
		if p > previous && d < lastDisplay {
			t.Fatalf("display value decreased at %v: %v < %v", p, d, lastDisplay)
		}
		previous, lastDisplay = p, d
	}
	assert.Equal(t, 1.0, DisplayValue(math.Inf(1)))
	assert.Equal(t, 0.0, DisplayValue(math.Inf(-1)))
	assert.Equal(t, 0.0, DisplayValue(math.NaN()))
	assert.Equal(t, 0.5, DisplayValue(2))
}

func TestPredictWithConstantModel(t *testing.T) {
	cases := []struct {
		constant float64
		tier     Tier
		display  float64
	}{
		{3.8, TierExcellent, 0.95},
		{1.5, TierNeedsSupport, 0.375},
	}
	for _, c := range cases {
		runtime, err := NewRuntime(identity(), &constantModel{value: c.constant, width: FeatureCount}, "test")
		require.NoError(t, err)

		allValidInputs(func(in StudentInputs) {
			result, err := runtime.Predict(in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.GPA != c.constant || result.Tier != c.tier || result.Display != c.display {
				t.Fatalf("unexpected result %+v for constant %v", result, c.constant)
			}
		})
	}
}

func TestPredictScalesBeforeModel(t *testing.T) {
	scaler, err := NewStandardScaler(repeated(1, FeatureCount), repeated(1, FeatureCount))
	require.NoError(t, err)

	vector, err := BuildFeatureVector(sampleInputs())
	require.NoError(t, err)
	got, err := Predict(vector, scaler, sumModel{})
	require.NoError(t, err)

	want := 0.0
	for _, v := range vector {
		want += v - 1
	}
	assert.Equal(t, want, got)
}

func TestPredictMissingArtifacts(t *testing.T) {
	model := &constantModel{value: 3, width: FeatureCount}
	_, err := Predict(FeatureVector{}, nil, model)
	assert.ErrorIs(t, err, ErrArtifactMissing)
	_, err = Predict(FeatureVector{}, identity(), nil)
	assert.ErrorIs(t, err, ErrArtifactMissing)
	assert.Zero(t, model.calls)

	_, err = NewRuntime(nil, model, "test")
	assert.ErrorIs(t, err, ErrArtifactMissing)

	var runtime *Runtime
	_, err = runtime.Predict(sampleInputs())
	assert.ErrorIs(t, err, ErrArtifactMissing)
}

func TestPredictShapeMismatch(t *testing.T) {
	_, err := Predict(FeatureVector{}, IdentityScaler{N: 11}, &constantModel{width: FeatureCount})
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = Predict(FeatureVector{}, identity(), &constantModel{width: 13})
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = NewRuntime(identity(), &constantModel{width: 10}, "test")
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestPredictRejectsNonFiniteOutput(t *testing.T) {
	_, err := Predict(FeatureVector{}, identity(), &constantModel{value: math.NaN(), width: FeatureCount})
	assert.True(t, errors.Is(err, ErrNonFinitePrediction))
}

func TestRuntimePredictRejectsInvalidCode(t *testing.T) {
	model := &constantModel{value: 3, width: FeatureCount}
	runtime, err := NewRuntime(identity(), model, "test")
	require.NoError(t, err)

	in := sampleInputs()
	in.Ethnicity = 9
	_, err = runtime.Predict(in)
	assert.ErrorIs(t, err, ErrInvalidCategoricalCode)
	assert.Zero(t, model.calls)
}
