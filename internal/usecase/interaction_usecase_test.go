package usecase_test

import (
	"context"
	"testing"

	"go-jobreels-backend/internal/repository/kv"
	"go-jobreels-backend/internal/usecase"
	"go-jobreels-backend/pkg/kvstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleIsSelfInverse(t *testing.T) {
	uc := usecase.NewInteractionUsecase(kv.NewInteractionRepository(kvstore.NewMemoryStore()))
	ctx := context.Background()

	type toggleFn func(ctx context.Context, userID, id string) (bool, error)
	type checkFn func(ctx context.Context, userID, id string) (bool, error)

	cases := []struct {
		name   string
		toggle toggleFn
		check  checkFn
		id     string
	}{
		{"like video", uc.ToggleLikeVideo, uc.IsVideoLiked, "v1"},
		{"save video", uc.ToggleSaveVideo, uc.IsVideoSaved, "v1"},
		{"like user", uc.ToggleLikeUser, uc.IsUserLiked, "jane"},
		{"save user", uc.ToggleSaveUser, uc.IsUserSaved, "jane"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			active, err := tc.toggle(ctx, "u1", tc.id)
			require.NoError(t, err)
			assert.True(t, active)

			got, err := tc.check(ctx, "u1", tc.id)
			require.NoError(t, err)
			assert.True(t, got)

			active, err = tc.toggle(ctx, "u1", tc.id)
			require.NoError(t, err)
			assert.False(t, active)

			got, err = tc.check(ctx, "u1", tc.id)
			require.NoError(t, err)
			assert.False(t, got)
		})
	}
}

func TestInteractionSetsAreIndependent(t *testing.T) {
	uc := usecase.NewInteractionUsecase(kv.NewInteractionRepository(kvstore.NewMemoryStore()))
	ctx := context.Background()

	// The same identifier may live in several sets at once.
	_, err := uc.ToggleLikeVideo(ctx, "u1", "v1")
	require.NoError(t, err)
	_, err = uc.ToggleSaveVideo(ctx, "u1", "v1")
	require.NoError(t, err)

	_, err = uc.ToggleLikeVideo(ctx, "u1", "v1")
	require.NoError(t, err)

	saved, err := uc.IsVideoSaved(ctx, "u1", "v1")
	require.NoError(t, err)
	assert.True(t, saved, "removing a like must not touch the saved set")

	liked, err := uc.IsVideoLiked(ctx, "u1", "v1")
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestInteractionsScopedToUser(t *testing.T) {
	uc := usecase.NewInteractionUsecase(kv.NewInteractionRepository(kvstore.NewMemoryStore()))
	ctx := context.Background()

	_, err := uc.ToggleLikeVideo(ctx, "u1", "v1")
	require.NoError(t, err)

	liked, err := uc.IsVideoLiked(ctx, "u2", "v1")
	require.NoError(t, err)
	assert.False(t, liked)

	set, err := uc.GetInteractions(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, set.LikedVideoIDs)
}
