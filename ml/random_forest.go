package ml

import (
	"errors"
	"fmt"
)

// RandomForestRegressor averages the predictions of its trees.
type RandomForestRegressor struct {
	NFeatures int                      `json:"n_features"`
	Trees     []*DecisionTreeRegressor `json:"trees"`
}

func NewRandomForestRegressor(nFeatures int, trees []*DecisionTreeRegressor) (*RandomForestRegressor, error) {
	if len(trees) == 0 {
		return nil, errors.New("random forest: no trees")
	}
	for i, tree := range trees {
		if tree == nil {
			return nil, fmt.Errorf("random forest: tree %d is empty", i)
		}
		if tree.NFeatures == 0 {
			tree.NFeatures = nFeatures
		}
		if tree.NFeatures != nFeatures {
			return nil, fmt.Errorf("%w: random forest tree %d expects %d features, forest %d", ErrShapeMismatch, i, tree.NFeatures, nFeatures)
		}
		if err := tree.validate(); err != nil {
			return nil, fmt.Errorf("random forest tree %d: %w", i, err)
		}
	}
	return &RandomForestRegressor{NFeatures: nFeatures, Trees: trees}, nil
}

func (rf *RandomForestRegressor) Width() int { return rf.NFeatures }

func (rf *RandomForestRegressor) Predict(features []float64) (float64, error) {
	if len(rf.Trees) == 0 {
		return 0, errors.New("random forest: model not trained")
	}
	if err := checkWidth("random forest", rf.NFeatures, len(features)); err != nil {
		return 0, err
	}
	sum := 0.0
	for _, tree := range rf.Trees {
		value, err := tree.Predict(features)
		if err != nil {
			return 0, err
		}
		sum += value
	}
	return sum / float64(len(rf.Trees)), nil
}
