package ml

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	ScalerStandard = "standard"
	ScalerMinMax   = "minmax"
	ScalerIdentity = "identity"

	ModelLinear       = "linear"
	ModelDecisionTree = "decision_tree"
	ModelRandomForest = "random_forest"
)

// artifactHeader is the part of every exported artifact that is not
// kind-specific.
type artifactHeader struct {
	Kind         string   `json:"kind"`
	FeatureNames []string `json:"feature_names,omitempty"`
}

// LoadScaler decodes a JSON scaler artifact. kind may be empty, in which case
// the artifact's own "kind" field decides.
func LoadScaler(kind string, payload []byte) (Scaler, error) {
	header, err := decodeHeader(payload)
	if err != nil {
		return nil, fmt.Errorf("decode scaler: %w", err)
	}
	kind, err = resolveKind(kind, header.Kind)
	if err != nil {
		return nil, fmt.Errorf("scaler: %w", err)
	}

	var scaler Scaler
	switch kind {
	case ScalerStandard:
		var raw StandardScaler
		if err := json.Unmarshal(payload, &raw); err != nil {
			return nil, fmt.Errorf("decode standard scaler: %w", err)
		}
		scaler, err = NewStandardScaler(raw.Mean, raw.Scale)
	case ScalerMinMax:
		var raw MinMaxScaler
		if err := json.Unmarshal(payload, &raw); err != nil {
			return nil, fmt.Errorf("decode minmax scaler: %w", err)
		}
		scaler, err = NewMinMaxScaler(raw.Min, raw.Max)
	case ScalerIdentity:
		raw := IdentityScaler{N: FeatureCount}
		if err := json.Unmarshal(payload, &raw); err != nil {
			return nil, fmt.Errorf("decode identity scaler: %w", err)
		}
		scaler = raw
	default:
		return nil, fmt.Errorf("%w: scaler %q", ErrUnsupportedArtifact, kind)
	}
	if err != nil {
		return nil, err
	}
	if err := checkFeatureNames(header.FeatureNames, scaler.Width()); err != nil {
		return nil, fmt.Errorf("scaler: %w", err)
	}
	return scaler, nil
}

// LoadModel decodes a JSON regressor artifact, following the same kind rules
// as LoadScaler.
func LoadModel(kind string, payload []byte) (Regressor, error) {
	header, err := decodeHeader(payload)
	if err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	kind, err = resolveKind(kind, header.Kind)
	if err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}

	var model Regressor
	switch kind {
	case ModelLinear:
		var raw LinearRegressor
		if err := json.Unmarshal(payload, &raw); err != nil {
			return nil, fmt.Errorf("decode linear model: %w", err)
		}
		model, err = NewLinearRegressor(raw.Coef, raw.Intercept)
	case ModelDecisionTree:
		var raw DecisionTreeRegressor
		if err := json.Unmarshal(payload, &raw); err != nil {
			return nil, fmt.Errorf("decode decision tree: %w", err)
		}
		model, err = NewDecisionTreeRegressor(raw.NFeatures, raw.Nodes)
	case ModelRandomForest:
		var raw RandomForestRegressor
		if err := json.Unmarshal(payload, &raw); err != nil {
			return nil, fmt.Errorf("decode random forest: %w", err)
		}
		model, err = NewRandomForestRegressor(raw.NFeatures, raw.Trees)
	default:
		return nil, fmt.Errorf("%w: model %q", ErrUnsupportedArtifact, kind)
	}
	if err != nil {
		return nil, err
	}
	if err := checkFeatureNames(header.FeatureNames, model.Width()); err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}
	return model, nil
}

func decodeHeader(payload []byte) (artifactHeader, error) {
	var header artifactHeader
	if len(payload) == 0 {
		return header, errors.New("empty artifact")
	}
	err := json.Unmarshal(payload, &header)
	return header, err
}

func resolveKind(configured, declared string) (string, error) {
	switch {
	case configured == "" && declared == "":
		return "", errors.New("artifact kind not specified")
	case configured == "":
		return declared, nil
	case declared == "" || declared == configured:
		return configured, nil
	default:
		return "", fmt.Errorf("configured kind %q but artifact declares %q", configured, declared)
	}
}

// checkFeatureNames guards against artifacts fitted on a different column
// order. Artifacts without names are trusted on width alone.
func checkFeatureNames(names []string, width int) error {
	if len(names) == 0 {
		return nil
	}
	if len(names) != width {
		return fmt.Errorf("%w: artifact lists %d feature names for width %d", ErrShapeMismatch, len(names), width)
	}
	if len(names) != FeatureCount {
		return fmt.Errorf("%w: artifact lists %d feature names, schema has %d", ErrShapeMismatch, len(names), FeatureCount)
	}
	for i, name := range names {
		if name != featureNames[i] {
			return fmt.Errorf("%w: feature %d is %q, expected %q", ErrShapeMismatch, i, name, featureNames[i])
		}
	}
	return nil
}
