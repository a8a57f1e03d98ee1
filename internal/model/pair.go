package model

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/verdict/pkg/bayes"
	"github.com/JaimeStill/verdict/pkg/tfidf"
)

const (
	// MaxFeatures caps the vectorizer vocabulary.
	MaxFeatures = 100
	// Alpha is the classifier's additive smoothing parameter.
	Alpha = 1.0
)

// Pair is a vectorizer and classifier fitted together. A Pair is immutable
// once built and safe for concurrent use.
type Pair struct {
	ID         uuid.UUID
	CreatedAt  time.Time
	Source     string
	Vectorizer *tfidf.Vectorizer
	Classifier *bayes.Classifier
}

// Train fits a fresh pair on the built-in corpus.
func Train() (*Pair, error) {
	texts, labels := Corpus()

	vec := tfidf.New(MaxFeatures)
	x, err := vec.FitTransform(texts)
	if err != nil {
		return nil, fmt.Errorf("fit vectorizer: %w", err)
	}

	clf := bayes.New(Alpha)
	if err := clf.Fit(x, labels); err != nil {
		return nil, fmt.Errorf("fit classifier: %w", err)
	}

	return &Pair{
		ID:         uuid.New(),
		CreatedAt:  time.Now().UTC(),
		Source:     SourceTrained,
		Vectorizer: vec,
		Classifier: clf,
	}, nil
}

// Predict classifies text, returning the label and the winning probability.
func (p *Pair) Predict(text string) (string, float64, error) {
	x, err := p.Vectorizer.Transform(text)
	if err != nil {
		return "", 0, err
	}

	class, proba, err := p.Classifier.Predict(x)
	if err != nil {
		return "", 0, err
	}

	return labelFor(class), slices.Max(proba), nil
}

// Info summarizes the pair for inspection.
func (p *Pair) Info() Info {
	priors := make(map[string]float64)
	classPriors := p.Classifier.ClassPriors()
	for k, class := range p.Classifier.Classes() {
		priors[labelFor(class)] = classPriors[k]
	}

	return Info{
		PairID:      p.ID,
		CreatedAt:   p.CreatedAt,
		Source:      p.Source,
		Vocabulary:  p.Vectorizer.Features(),
		ClassPriors: priors,
	}
}
