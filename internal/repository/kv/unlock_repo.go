// Package kv implements the unlock and interaction repositories over the
// narrow blob store in pkg/kvstore. Each user owns one key per store and the
// whole snapshot is rewritten on every mutation, mirroring how the client
// persisted this state before it moved server-side.
package kv

import (
	"context"
	"encoding/json"
	"fmt"

	"go-jobreels-backend/internal/domain"
	"go-jobreels-backend/pkg/kvstore"
)

type unlockRepo struct {
	store kvstore.Store
}

// NewUnlockRepository creates an unlock registry over the given store
func NewUnlockRepository(store kvstore.Store) domain.UnlockRepository {
	return &unlockRepo{store: store}
}

func unlockKey(viewerID string) string {
	return "unlocks:" + viewerID
}

func (r *unlockRepo) load(ctx context.Context, viewerID string) ([]string, error) {
	blob, err := r.store.Load(ctx, unlockKey(viewerID))
	if err != nil {
		return nil, err
	}
	if blob == nil {
		return nil, nil
	}
	var ids []string
	if err := json.Unmarshal(blob, &ids); err != nil {
		return nil, fmt.Errorf("corrupt unlock snapshot for %s: %w", viewerID, err)
	}
	return ids, nil
}

func (r *unlockRepo) IsUnlocked(ctx context.Context, viewerID, subjectID string) (bool, error) {
	ids, err := r.load(ctx, viewerID)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == subjectID {
			return true, nil
		}
	}
	return false, nil
}

func (r *unlockRepo) Add(ctx context.Context, viewerID, subjectID string) error {
	ids, err := r.load(ctx, viewerID)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if id == subjectID {
			return nil
		}
	}
	ids = append(ids, subjectID)

	blob, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return r.store.Save(ctx, unlockKey(viewerID), blob)
}

func (r *unlockRepo) Clear(ctx context.Context, viewerID string) error {
	return r.store.Delete(ctx, unlockKey(viewerID))
}
