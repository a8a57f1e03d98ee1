package model

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/verdict/pkg/formatting"
	"github.com/JaimeStill/verdict/pkg/storage"
)

// train fits the pair used when no artifacts exist.
var train = Train

// Bootstrap loads the persisted pair when both artifacts exist, otherwise
// trains a new pair on the built-in corpus and persists it. A corrupt or
// unreadable pair is an ErrLoad and never falls back to training. A training
// failure is returned as is; only storage writes yield ErrPersist.
func Bootstrap(ctx context.Context, store storage.System, logger *slog.Logger) (*Pair, error) {
	exists, err := Exists(ctx, store)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	if exists {
		logger.Info("loading pre-trained model", "location", store.Location())
		return Load(ctx, store)
	}

	logger.Info("training new model", "location", store.Location())

	pair, err := train()
	if err != nil {
		return nil, fmt.Errorf("train model: %w", err)
	}

	sizes, err := Persist(ctx, store, pair)
	if err != nil {
		return nil, err
	}

	for _, key := range []string{VectorizerKey, ClassifierKey} {
		logger.Info(
			"artifact persisted",
			"key", key,
			"size", formatting.FormatBytes(int64(sizes[key]), 1),
		)
	}

	return pair, nil
}
