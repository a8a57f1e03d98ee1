package model

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/verdict/pkg/bayes"
	"github.com/JaimeStill/verdict/pkg/storage"
	"github.com/JaimeStill/verdict/pkg/tfidf"
)

// Storage keys of the two persisted artifacts.
const (
	VectorizerKey = "vectorizer.json"
	ClassifierKey = "model.json"
)

const (
	kindVectorizer = "vectorizer"
	kindClassifier = "classifier"
	contentType    = "application/json"
)

var binaryClasses = []int{ClassNegative, ClassPositive}

type envelope struct {
	Kind      string          `json:"kind"`
	PairID    uuid.UUID       `json:"pair_id"`
	CreatedAt time.Time       `json:"created_at"`
	Payload   json.RawMessage `json:"payload"`
}

// Exists reports whether both artifacts are present in store.
func Exists(ctx context.Context, store storage.System) (bool, error) {
	for _, key := range []string{VectorizerKey, ClassifierKey} {
		ok, err := store.Exists(ctx, key)
		if err != nil {
			return false, fmt.Errorf("check %s: %w", key, err)
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// Load reads and decodes both artifacts concurrently and verifies that they
// belong to the same training run.
func Load(ctx context.Context, store storage.System) (*Pair, error) {
	var (
		vec    tfidf.Vectorizer
		clf    bayes.Classifier
		vecEnv envelope
		clfEnv envelope
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		vecEnv, err = readArtifact(gctx, store, VectorizerKey, kindVectorizer, &vec)
		return err
	})
	g.Go(func() (err error) {
		clfEnv, err = readArtifact(gctx, store, ClassifierKey, kindClassifier, &clf)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	if vecEnv.PairID != clfEnv.PairID {
		return nil, fmt.Errorf("%w: artifacts belong to different pairs (%s, %s)", ErrLoad, vecEnv.PairID, clfEnv.PairID)
	}
	if vec.Features() != clf.Features() {
		return nil, fmt.Errorf("%w: vectorizer has %d features, classifier expects %d", ErrLoad, vec.Features(), clf.Features())
	}
	if classes := clf.Classes(); !slices.Equal(classes, binaryClasses) {
		return nil, fmt.Errorf("%w: classifier classes %v, want %v", ErrLoad, classes, binaryClasses)
	}
	// Transformed vectors are non-negative with unit L2 norm.
	if err := clf.CheckUnitBound(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	return &Pair{
		ID:         vecEnv.PairID,
		CreatedAt:  vecEnv.CreatedAt,
		Source:     SourceLoaded,
		Vectorizer: &vec,
		Classifier: &clf,
	}, nil
}

// Persist writes both artifacts of p to store.
func Persist(ctx context.Context, store storage.System, p *Pair) (map[string]int, error) {
	vecData, err := encodeArtifact(kindVectorizer, p, p.Vectorizer)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersist, err)
	}
	clfData, err := encodeArtifact(kindClassifier, p, p.Classifier)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersist, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return store.Upload(gctx, VectorizerKey, bytes.NewReader(vecData), contentType)
	})
	g.Go(func() error {
		return store.Upload(gctx, ClassifierKey, bytes.NewReader(clfData), contentType)
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersist, err)
	}

	return map[string]int{
		VectorizerKey: len(vecData),
		ClassifierKey: len(clfData),
	}, nil
}

// Reset removes both artifacts from store. Missing artifacts are ignored.
func Reset(ctx context.Context, store storage.System) error {
	for _, key := range []string{VectorizerKey, ClassifierKey} {
		if err := store.Delete(ctx, key); err != nil && !errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("delete %s: %w", key, err)
		}
	}
	return nil
}

func encodeArtifact(kind string, p *Pair, payload json.Marshaler) ([]byte, error) {
	raw, err := payload.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", kind, err)
	}

	return json.Marshal(envelope{
		Kind:      kind,
		PairID:    p.ID,
		CreatedAt: p.CreatedAt,
		Payload:   raw,
	})
}

func readArtifact(ctx context.Context, store storage.System, key, kind string, target json.Unmarshaler) (envelope, error) {
	var env envelope

	r, err := store.Download(ctx, key)
	if err != nil {
		return env, fmt.Errorf("read %s: %w", key, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return env, fmt.Errorf("read %s: %w", key, err)
	}

	if err := json.Unmarshal(data, &env); err != nil {
		return env, fmt.Errorf("decode %s: %w", key, err)
	}
	if env.Kind != kind {
		return env, fmt.Errorf("decode %s: kind %q, want %q", key, env.Kind, kind)
	}
	if env.PairID == uuid.Nil {
		return env, fmt.Errorf("decode %s: missing pair_id", key)
	}
	if len(env.Payload) == 0 {
		return env, fmt.Errorf("decode %s: missing payload", key)
	}
	if err := target.UnmarshalJSON(env.Payload); err != nil {
		return env, fmt.Errorf("decode %s payload: %w", key, err)
	}

	return env, nil
}
