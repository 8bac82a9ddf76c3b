package domain

import "context"

// InteractionSet holds a user's likes and saves. Four independent sets of
// identifiers; membership is a toggle with no counts and no ordering.
// Persisted as a whole snapshot under one key per user.
type InteractionSet struct {
	LikedVideoIDs []string `json:"liked_video_ids"`
	SavedVideoIDs []string `json:"saved_video_ids"`
	LikedUserIDs  []string `json:"liked_user_ids"`
	SavedUserIDs  []string `json:"saved_user_ids"`
}

func (s *InteractionSet) IsVideoLiked(videoID string) bool { return contains(s.LikedVideoIDs, videoID) }
func (s *InteractionSet) IsVideoSaved(videoID string) bool { return contains(s.SavedVideoIDs, videoID) }
func (s *InteractionSet) IsUserLiked(username string) bool { return contains(s.LikedUserIDs, username) }
func (s *InteractionSet) IsUserSaved(username string) bool { return contains(s.SavedUserIDs, username) }

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

type InteractionRepository interface {
	// Get returns the user's snapshot, or an empty set when none is stored.
	Get(ctx context.Context, userID string) (*InteractionSet, error)
	Save(ctx context.Context, userID string, set *InteractionSet) error
}

// InteractionUsecase exposes the four toggles and matching predicates.
// Toggles report the membership state after the flip. Operations are total
// over arbitrary identifier strings; there are no error conditions beyond
// storage failures.
type InteractionUsecase interface {
	ToggleLikeVideo(ctx context.Context, userID, videoID string) (bool, error)
	ToggleSaveVideo(ctx context.Context, userID, videoID string) (bool, error)
	ToggleLikeUser(ctx context.Context, userID, username string) (bool, error)
	ToggleSaveUser(ctx context.Context, userID, username string) (bool, error)
	IsVideoLiked(ctx context.Context, userID, videoID string) (bool, error)
	IsVideoSaved(ctx context.Context, userID, videoID string) (bool, error)
	IsUserLiked(ctx context.Context, userID, username string) (bool, error)
	IsUserSaved(ctx context.Context, userID, username string) (bool, error)
	GetInteractions(ctx context.Context, userID string) (*InteractionSet, error)
}
