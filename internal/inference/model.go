// Package inference evaluates the exported risk models: a tree-ensemble
// regressor, a tree-ensemble classifier and a density-cluster model.
package inference

import (
	"context"
	"errors"
)

var (
	// ErrFeatureMismatch is returned when the model was trained on a different feature contract
	ErrFeatureMismatch = errors.New("feature mismatch")
	// ErrWrongKind is returned when a regressor is used as a classifier or vice versa
	ErrWrongKind = errors.New("wrong model kind")
)

// Regressor scores a batch of feature rows
type Regressor interface {
	Predict(ctx context.Context, rows [][]float64) ([]float64, error)
}

// Classifier returns per-class probabilities for a batch of feature rows
type Classifier interface {
	PredictProba(ctx context.Context, rows [][]float64) ([][]float64, error)
}

func sameFeatures(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
