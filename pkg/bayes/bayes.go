// Package bayes implements a multinomial naive Bayes classifier over
// non-negative feature vectors such as TF-IDF weights.
package bayes

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

var (
	// ErrNotFitted is returned when predicting with an untrained classifier.
	ErrNotFitted = errors.New("classifier is not fitted")
	// ErrDimension is returned when a vector length does not match the trained feature count.
	ErrDimension = errors.New("feature dimension mismatch")
	// ErrNumeric is returned when the parameters drive a log likelihood out of
	// the finite range.
	ErrNumeric = errors.New("non-finite log likelihood")
)

// Classifier is a multinomial naive Bayes model with additive (Laplace/Lidstone)
// smoothing. A fitted Classifier is safe for concurrent use.
type Classifier struct {
	alpha          float64
	classes        []int
	classLogPrior  []float64
	featureLogProb [][]float64
}

// New creates an untrained Classifier with smoothing parameter alpha.
func New(alpha float64) *Classifier {
	return &Classifier{alpha: alpha}
}

// Fit trains the classifier on the rows of x labelled by y.
func (c *Classifier) Fit(x [][]float64, y []int) error {
	if len(x) == 0 {
		return fmt.Errorf("fit: no samples")
	}
	if len(x) != len(y) {
		return fmt.Errorf("fit: %d samples but %d labels", len(x), len(y))
	}
	if c.alpha < 0 {
		return fmt.Errorf("fit: alpha must be non-negative, got %v", c.alpha)
	}

	features := len(x[0])
	if features == 0 {
		return fmt.Errorf("fit: %w: empty feature vectors", ErrDimension)
	}

	classes := slices.Clone(y)
	slices.Sort(classes)
	classes = slices.Compact(classes)

	classCount := make([]float64, len(classes))
	featureCount := make([][]float64, len(classes))
	for i := range featureCount {
		featureCount[i] = make([]float64, features)
	}

	for i, row := range x {
		if len(row) != features {
			return fmt.Errorf("fit: %w: row %d has %d features, want %d", ErrDimension, i, len(row), features)
		}
		k, _ := slices.BinarySearch(classes, y[i])
		classCount[k]++
		for j, v := range row {
			if v < 0 || math.IsNaN(v) {
				return fmt.Errorf("fit: negative or NaN feature at row %d column %d", i, j)
			}
			featureCount[k][j] += v
		}
	}

	total := float64(len(x))
	prior := make([]float64, len(classes))
	logProb := make([][]float64, len(classes))
	for k := range classes {
		prior[k] = math.Log(classCount[k]) - math.Log(total)

		var smoothedTotal float64
		for _, v := range featureCount[k] {
			smoothedTotal += v + c.alpha
		}

		logProb[k] = make([]float64, features)
		for j, v := range featureCount[k] {
			logProb[k][j] = math.Log(v+c.alpha) - math.Log(smoothedTotal)
		}
	}

	c.classes = classes
	c.classLogPrior = prior
	c.featureLogProb = logProb
	return nil
}

// PredictProba returns the posterior probability of each class, ordered as Classes().
func (c *Classifier) PredictProba(x []float64) ([]float64, error) {
	jll, err := c.jointLogLikelihood(x)
	if err != nil {
		return nil, err
	}

	maxLL := slices.Max(jll)
	if !finite(maxLL) {
		return nil, fmt.Errorf("%w: joint log likelihood %v", ErrNumeric, maxLL)
	}

	var sum float64
	for _, v := range jll {
		sum += math.Exp(v - maxLL)
	}
	logNorm := maxLL + math.Log(sum)

	proba := make([]float64, len(jll))
	for k, v := range jll {
		p := math.Exp(v - logNorm)
		if !finite(p) {
			return nil, fmt.Errorf("%w: probability %v for class %d", ErrNumeric, p, c.classes[k])
		}
		proba[k] = p
	}
	return proba, nil
}

// Predict returns the most probable class and the full probability distribution.
// Ties resolve to the smallest class label.
func (c *Classifier) Predict(x []float64) (int, []float64, error) {
	proba, err := c.PredictProba(x)
	if err != nil {
		return 0, nil, err
	}

	best := 0
	for k := range proba {
		if proba[k] > proba[best] {
			best = k
		}
	}
	return c.classes[best], proba, nil
}

// Classes returns the class labels in ascending order.
func (c *Classifier) Classes() []int {
	return slices.Clone(c.classes)
}

// Features returns the trained feature count, zero when untrained.
func (c *Classifier) Features() int {
	if len(c.featureLogProb) == 0 {
		return 0
	}
	return len(c.featureLogProb[0])
}

// CheckUnitBound returns ErrNumeric when some non-negative input of unit L2
// norm could push a class's joint log likelihood to -Inf. By Cauchy-Schwarz the
// likelihood of such an input is at least the log prior minus the L2 norm of
// the class's feature log probabilities.
func (c *Classifier) CheckUnitBound() error {
	if len(c.classes) == 0 {
		return ErrNotFitted
	}
	for k, row := range c.featureLogProb {
		if bound := c.classLogPrior[k] - l2Norm(row); !finite(bound) {
			return fmt.Errorf("%w: class %d is unbounded for unit inputs", ErrNumeric, c.classes[k])
		}
	}
	return nil
}

// ClassPriors returns the prior probability of each class, ordered as Classes().
func (c *Classifier) ClassPriors() []float64 {
	priors := make([]float64, len(c.classLogPrior))
	for k, lp := range c.classLogPrior {
		priors[k] = math.Exp(lp)
	}
	return priors
}

func (c *Classifier) jointLogLikelihood(x []float64) ([]float64, error) {
	if len(c.classes) == 0 {
		return nil, ErrNotFitted
	}
	if len(x) != c.Features() {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrDimension, len(x), c.Features())
	}

	jll := make([]float64, len(c.classes))
	for k := range c.classes {
		sum := c.classLogPrior[k]
		for j, v := range x {
			if v != 0 {
				sum += v * c.featureLogProb[k][j]
			}
		}
		jll[k] = sum
	}
	return jll, nil
}

// l2Norm scales by the largest magnitude so squaring cannot overflow.
func l2Norm(v []float64) float64 {
	var scale float64
	for _, x := range v {
		scale = max(scale, math.Abs(x))
	}
	if scale == 0 || !finite(scale) {
		return scale
	}

	var sum float64
	for _, x := range v {
		r := x / scale
		sum += r * r
	}
	return scale * math.Sqrt(sum)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
