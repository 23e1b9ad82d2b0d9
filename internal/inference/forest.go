package inference

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
)

// Kinds of exported models
const (
	KindRegressor  = "regressor"
	KindClassifier = "classifier"
)

// Aggregations of tree outputs
const (
	AggregateMean = "mean" // random forest
	AggregateSum  = "sum"  // gradient boosting
)

// Tree is one fitted decision tree in scikit-learn's array layout.
// A node is a leaf when ChildrenLeft is -1.
type Tree struct {
	ChildrenLeft  []int       `json:"children_left"`
	ChildrenRight []int       `json:"children_right"`
	Feature       []int       `json:"feature"`
	Threshold     []float64   `json:"threshold"`
	Value         [][]float64 `json:"value"`
}

// Forest is a tree ensemble exported to JSON
type Forest struct {
	Kind         string   `json:"kind"`
	Features     []string `json:"features"`
	NClasses     int      `json:"n_classes"`
	Aggregation  string   `json:"aggregation"`
	BaseScore    float64  `json:"base_score"`
	LearningRate float64  `json:"learning_rate"`
	Trees        []Tree   `json:"trees"`
}

// LoadForestFile reads a model file and checks it against the expected features
func LoadForestFile(path string, features []string) (*Forest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open model %s: %w", path, err)
	}
	defer f.Close()

	forest, err := LoadForest(f, features)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return forest, nil
}

// LoadForest decodes and validates a tree ensemble
func LoadForest(r io.Reader, features []string) (*Forest, error) {
	var f Forest
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode model: %w", err)
	}
	if f.Aggregation == "" {
		f.Aggregation = AggregateMean
	}
	if f.Aggregation == AggregateSum && f.LearningRate == 0 {
		f.LearningRate = 1
	}
	if f.Kind == KindClassifier && f.NClasses == 0 {
		f.NClasses = 2
	}
	if err := f.validate(features); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *Forest) validate(features []string) error {
	switch f.Kind {
	case KindRegressor, KindClassifier:
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrWrongKind, f.Kind)
	}
	switch f.Aggregation {
	case AggregateMean, AggregateSum:
	default:
		return fmt.Errorf("unknown aggregation %q", f.Aggregation)
	}
	if !sameFeatures(f.Features, features) {
		return fmt.Errorf("%w: model expects %v, have %v", ErrFeatureMismatch, f.Features, features)
	}
	if len(f.Trees) == 0 {
		return fmt.Errorf("model has no trees")
	}

	width := 1
	if f.Kind == KindClassifier && f.Aggregation == AggregateMean {
		width = f.NClasses
	}
	for i, t := range f.Trees {
		n := len(t.ChildrenLeft)
		if n == 0 || len(t.ChildrenRight) != n || len(t.Feature) != n || len(t.Threshold) != n || len(t.Value) != n {
			return fmt.Errorf("tree %d: inconsistent node arrays", i)
		}
		for node := 0; node < n; node++ {
			l, r := t.ChildrenLeft[node], t.ChildrenRight[node]
			if l == -1 {
				if len(t.Value[node]) < width {
					return fmt.Errorf("tree %d node %d: leaf value has %d entries, want %d", i, node, len(t.Value[node]), width)
				}
				continue
			}
			if l <= node || r <= node || l >= n || r >= n {
				return fmt.Errorf("tree %d node %d: child index out of range", i, node)
			}
			if t.Feature[node] < 0 || t.Feature[node] >= len(f.Features) {
				return fmt.Errorf("tree %d node %d: feature index %d out of range", i, node, t.Feature[node])
			}
		}
	}
	return nil
}

// leaf walks a tree and returns the value of the leaf reached by x
func (t *Tree) leaf(x []float64) []float64 {
	node := 0
	for t.ChildrenLeft[node] != -1 {
		if x[t.Feature[node]] <= t.Threshold[node] {
			node = t.ChildrenLeft[node]
		} else {
			node = t.ChildrenRight[node]
		}
	}
	return t.Value[node]
}

func (f *Forest) checkRows(rows [][]float64) error {
	for i, row := range rows {
		if len(row) != len(f.Features) {
			return fmt.Errorf("%w: row %d has %d values, model expects %d", ErrFeatureMismatch, i, len(row), len(f.Features))
		}
	}
	return nil
}

// raw sums (or averages) the first leaf value of every tree
func (f *Forest) raw(x []float64) float64 {
	var sum float64
	for i := range f.Trees {
		sum += f.Trees[i].leaf(x)[0]
	}
	if f.Aggregation == AggregateSum {
		return f.BaseScore + f.LearningRate*sum
	}
	return sum / float64(len(f.Trees))
}

// Predict implements Regressor
func (f *Forest) Predict(_ context.Context, rows [][]float64) ([]float64, error) {
	if f.Kind != KindRegressor {
		return nil, fmt.Errorf("%w: %s cannot predict scores", ErrWrongKind, f.Kind)
	}
	if err := f.checkRows(rows); err != nil {
		return nil, err
	}
	out := make([]float64, len(rows))
	for i, x := range rows {
		out[i] = f.raw(x)
	}
	return out, nil
}

// PredictProba implements Classifier. Mean ensembles average the normalized
// class distribution of each leaf; sum ensembles are binary and go through a sigmoid.
func (f *Forest) PredictProba(_ context.Context, rows [][]float64) ([][]float64, error) {
	if f.Kind != KindClassifier {
		return nil, fmt.Errorf("%w: %s cannot predict probabilities", ErrWrongKind, f.Kind)
	}
	if err := f.checkRows(rows); err != nil {
		return nil, err
	}

	out := make([][]float64, len(rows))
	for i, x := range rows {
		if f.Aggregation == AggregateSum {
			p := 1 / (1 + math.Exp(-f.raw(x)))
			out[i] = []float64{1 - p, p}
			continue
		}

		probs := make([]float64, f.NClasses)
		for t := range f.Trees {
			v := f.Trees[t].leaf(x)
			var total float64
			for c := 0; c < f.NClasses; c++ {
				total += v[c]
			}
			if total <= 0 {
				continue
			}
			for c := 0; c < f.NClasses; c++ {
				probs[c] += v[c] / total
			}
		}
		for c := range probs {
			probs[c] /= float64(len(f.Trees))
		}
		out[i] = probs
	}
	return out, nil
}
