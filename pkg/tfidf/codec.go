package tfidf

import (
	"encoding/json"
	"fmt"
	"math"
)

type state struct {
	MaxFeatures int       `json:"max_features"`
	Vocabulary  []string  `json:"vocabulary"`
	IDF         []float64 `json:"idf"`
}

// MarshalJSON encodes the fitted vocabulary and IDF weights.
func (v *Vectorizer) MarshalJSON() ([]byte, error) {
	if len(v.terms) == 0 {
		return nil, ErrNotFitted
	}
	return json.Marshal(state{
		MaxFeatures: v.maxFeatures,
		Vocabulary:  v.terms,
		IDF:         v.idf,
	})
}

// UnmarshalJSON restores a fitted vectorizer, rejecting inconsistent state.
func (v *Vectorizer) UnmarshalJSON(data []byte) error {
	var s state
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	if len(s.Vocabulary) == 0 {
		return fmt.Errorf("decode vectorizer: %w", ErrEmptyVocabulary)
	}
	if len(s.Vocabulary) != len(s.IDF) {
		return fmt.Errorf("decode vectorizer: %d terms but %d idf weights", len(s.Vocabulary), len(s.IDF))
	}

	seen := make(map[string]bool, len(s.Vocabulary))
	for i, term := range s.Vocabulary {
		if term == "" || seen[term] {
			return fmt.Errorf("decode vectorizer: invalid term %q at %d", term, i)
		}
		seen[term] = true

		if w := s.IDF[i]; math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 {
			return fmt.Errorf("decode vectorizer: invalid idf weight %v for %q", w, term)
		}
	}

	v.maxFeatures = s.MaxFeatures
	v.setVocabulary(s.Vocabulary, s.IDF)
	return nil
}
