// Package tfidf implements a term frequency–inverse document frequency text vectorizer.
//
// Documents are case folded and split into tokens of two or more letters, digits,
// or underscores. Fit keeps at most MaxFeatures terms, chosen by total corpus
// frequency with ties broken alphabetically, and orders the vocabulary
// alphabetically. IDF is smoothed as ln((1+n)/(1+df)) + 1 and every transformed
// vector is L2 normalised.
package tfidf

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"regexp"
	"slices"

	"golang.org/x/text/cases"
)

var (
	// ErrNotFitted is returned when transforming with a vectorizer that has no vocabulary.
	ErrNotFitted = errors.New("vectorizer is not fitted")
	// ErrEmptyVocabulary is returned when fitting produces no terms.
	ErrEmptyVocabulary = errors.New("empty vocabulary: documents contain no tokens")
)

var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Vectorizer maps text to fixed-length TF-IDF feature vectors.
// A fitted Vectorizer is safe for concurrent use.
type Vectorizer struct {
	maxFeatures int
	terms       []string
	index       map[string]int
	idf         []float64
}

// New creates an unfitted Vectorizer keeping at most maxFeatures terms.
// A non-positive maxFeatures keeps every term.
func New(maxFeatures int) *Vectorizer {
	return &Vectorizer{maxFeatures: maxFeatures}
}

// Tokenize returns the tokens the vectorizer counts for text.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(cases.Fold().String(text), -1)
}

// Fit learns the vocabulary and IDF weights from docs.
func (v *Vectorizer) Fit(docs []string) error {
	if len(docs) == 0 {
		return fmt.Errorf("fit: %w", ErrEmptyVocabulary)
	}

	freq := make(map[string]int)
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool)
		for _, tok := range Tokenize(doc) {
			freq[tok]++
			if !seen[tok] {
				seen[tok] = true
				df[tok]++
			}
		}
	}

	if len(freq) == 0 {
		return fmt.Errorf("fit: %w", ErrEmptyVocabulary)
	}

	terms := make([]string, 0, len(freq))
	for term := range freq {
		terms = append(terms, term)
	}

	if v.maxFeatures > 0 && len(terms) > v.maxFeatures {
		slices.SortFunc(terms, func(a, b string) int {
			if c := cmp.Compare(freq[b], freq[a]); c != 0 {
				return c
			}
			return cmp.Compare(a, b)
		})
		terms = terms[:v.maxFeatures]
	}
	slices.Sort(terms)

	n := float64(len(docs))
	idf := make([]float64, len(terms))
	for i, term := range terms {
		idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	v.setVocabulary(terms, idf)
	return nil
}

// Transform maps text to an L2-normalised TF-IDF vector of length Features().
// Text without known terms yields the zero vector.
func (v *Vectorizer) Transform(text string) ([]float64, error) {
	if len(v.terms) == 0 {
		return nil, ErrNotFitted
	}

	vec := make([]float64, len(v.terms))
	for _, tok := range Tokenize(text) {
		if i, ok := v.index[tok]; ok {
			vec[i]++
		}
	}

	var norm float64
	for i := range vec {
		vec[i] *= v.idf[i]
		norm += vec[i] * vec[i]
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}

	return vec, nil
}

// FitTransform fits on docs and returns the transformed matrix.
func (v *Vectorizer) FitTransform(docs []string) ([][]float64, error) {
	if err := v.Fit(docs); err != nil {
		return nil, err
	}

	matrix := make([][]float64, len(docs))
	for i, doc := range docs {
		vec, err := v.Transform(doc)
		if err != nil {
			return nil, err
		}
		matrix[i] = vec
	}
	return matrix, nil
}

// Features returns the vector length, zero when unfitted.
func (v *Vectorizer) Features() int {
	return len(v.terms)
}

// Vocabulary returns the terms in feature index order.
func (v *Vectorizer) Vocabulary() []string {
	return slices.Clone(v.terms)
}

func (v *Vectorizer) setVocabulary(terms []string, idf []float64) {
	index := make(map[string]int, len(terms))
	for i, term := range terms {
		index[term] = i
	}
	v.terms = terms
	v.index = index
	v.idf = idf
}
