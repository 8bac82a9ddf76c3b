package kv

import (
	"context"
	"encoding/json"
	"fmt"

	"go-jobreels-backend/internal/domain"
	"go-jobreels-backend/pkg/kvstore"
)

type interactionRepo struct {
	store kvstore.Store
}

// NewInteractionRepository creates an interaction store over the given store
func NewInteractionRepository(store kvstore.Store) domain.InteractionRepository {
	return &interactionRepo{store: store}
}

func interactionKey(userID string) string {
	return "interactions:" + userID
}

// Get returns the user's snapshot, lazily initialized to an empty set
func (r *interactionRepo) Get(ctx context.Context, userID string) (*domain.InteractionSet, error) {
	blob, err := r.store.Load(ctx, interactionKey(userID))
	if err != nil {
		return nil, err
	}
	if blob == nil {
		return &domain.InteractionSet{}, nil
	}
	var set domain.InteractionSet
	if err := json.Unmarshal(blob, &set); err != nil {
		return nil, fmt.Errorf("corrupt interaction snapshot for %s: %w", userID, err)
	}
	return &set, nil
}

// Save persists the whole snapshot
func (r *interactionRepo) Save(ctx context.Context, userID string, set *domain.InteractionSet) error {
	blob, err := json.Marshal(set)
	if err != nil {
		return err
	}
	return r.store.Save(ctx, interactionKey(userID), blob)
}
