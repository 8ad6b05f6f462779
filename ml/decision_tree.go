package ml

import (
	"errors"
	"fmt"
)

// DecisionTreeRegressor walks a flattened regression tree. Nodes are stored in
// pre-order: a split node's children always have larger indices than itself.
type DecisionTreeRegressor struct {
	NFeatures int        `json:"n_features"`
	Nodes     []TreeNode `json:"nodes"`
}

type TreeNode struct {
	FeatureIdx int     `json:"feature_idx"`
	Threshold  float64 `json:"threshold"`
	LeftChild  int     `json:"left_child"`
	RightChild int     `json:"right_child"`
	Value      float64 `json:"value"`
	IsLeaf     bool    `json:"is_leaf"`
}

func NewDecisionTreeRegressor(nFeatures int, nodes []TreeNode) (*DecisionTreeRegressor, error) {
	dt := &DecisionTreeRegressor{NFeatures: nFeatures, Nodes: nodes}
	if err := dt.validate(); err != nil {
		return nil, err
	}
	return dt, nil
}

func (dt *DecisionTreeRegressor) Width() int { return dt.NFeatures }

func (dt *DecisionTreeRegressor) Predict(features []float64) (float64, error) {
	if len(dt.Nodes) == 0 {
		return 0, errors.New("decision tree: model not trained")
	}
	if err := checkWidth("decision tree", dt.NFeatures, len(features)); err != nil {
		return 0, err
	}
	idx := 0
	for {
		node := dt.Nodes[idx]
		if node.IsLeaf {
			return node.Value, nil
		}
		if features[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
	}
}

// validate rejects trees that could index out of range or loop.
func (dt *DecisionTreeRegressor) validate() error {
	if dt.NFeatures <= 0 {
		return errors.New("decision tree: n_features must be positive")
	}
	if len(dt.Nodes) == 0 {
		return errors.New("decision tree: no nodes")
	}
	for i, node := range dt.Nodes {
		if node.IsLeaf {
			continue
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= dt.NFeatures {
			return fmt.Errorf("%w: decision tree node %d splits on feature %d of %d", ErrShapeMismatch, i, node.FeatureIdx, dt.NFeatures)
		}
		for _, child := range [2]int{node.LeftChild, node.RightChild} {
			if child <= i || child >= len(dt.Nodes) {
				return fmt.Errorf("decision tree: node %d has invalid child %d", i, child)
			}
		}
	}
	return nil
}
