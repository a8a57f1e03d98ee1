package bayes

import (
	"encoding/json"
	"fmt"
	"slices"
)

type state struct {
	Alpha          float64     `json:"alpha"`
	Classes        []int       `json:"classes"`
	ClassLogPrior  []float64   `json:"class_log_prior"`
	FeatureLogProb [][]float64 `json:"feature_log_prob"`
}

// MarshalJSON encodes the trained parameters.
func (c *Classifier) MarshalJSON() ([]byte, error) {
	if len(c.classes) == 0 {
		return nil, ErrNotFitted
	}
	return json.Marshal(state{
		Alpha:          c.alpha,
		Classes:        c.classes,
		ClassLogPrior:  c.classLogPrior,
		FeatureLogProb: c.featureLogProb,
	})
}

// UnmarshalJSON restores a trained classifier, rejecting inconsistent state.
func (c *Classifier) UnmarshalJSON(data []byte) error {
	var s state
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	if len(s.Classes) == 0 {
		return fmt.Errorf("decode classifier: %w", ErrNotFitted)
	}
	if !slices.IsSorted(s.Classes) || len(slices.Compact(slices.Clone(s.Classes))) != len(s.Classes) {
		return fmt.Errorf("decode classifier: classes must be sorted and unique")
	}
	if len(s.ClassLogPrior) != len(s.Classes) || len(s.FeatureLogProb) != len(s.Classes) {
		return fmt.Errorf("decode classifier: parameter count does not match %d classes", len(s.Classes))
	}

	features := len(s.FeatureLogProb[0])
	if features == 0 {
		return fmt.Errorf("decode classifier: %w: no features", ErrDimension)
	}
	for k, row := range s.FeatureLogProb {
		if len(row) != features {
			return fmt.Errorf("decode classifier: %w: class %d has %d features, want %d", ErrDimension, k, len(row), features)
		}
		for _, v := range row {
			if !finite(v) || v > 0 {
				return fmt.Errorf("decode classifier: invalid log probability %v", v)
			}
		}
		if lp := s.ClassLogPrior[k]; !finite(lp) || lp > 0 {
			return fmt.Errorf("decode classifier: invalid log prior %v", lp)
		}
	}

	c.alpha = s.Alpha
	c.classes = s.Classes
	c.classLogPrior = s.ClassLogPrior
	c.featureLogProb = s.FeatureLogProb
	return nil
}
