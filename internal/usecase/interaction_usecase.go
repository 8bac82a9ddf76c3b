package usecase

import (
	"context"

	"go-jobreels-backend/internal/domain"
	"go-jobreels-backend/pkg/apperror"
)

type interactionUsecase struct {
	interactionRepo domain.InteractionRepository
}

// NewInteractionUsecase creates a new interaction usecase
func NewInteractionUsecase(interactionRepo domain.InteractionRepository) domain.InteractionUsecase {
	return &interactionUsecase{interactionRepo: interactionRepo}
}

// toggle flips membership of id in ids and reports the new state.
func toggle(ids []string, id string) ([]string, bool) {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...), false
		}
	}
	return append(ids, id), true
}

// toggleAndSave loads the snapshot, applies mutate and persists the result.
func (uc *interactionUsecase) toggleAndSave(ctx context.Context, userID string, mutate func(*domain.InteractionSet) bool) (bool, error) {
	set, err := uc.interactionRepo.Get(ctx, userID)
	if err != nil {
		return false, apperror.Internal(err)
	}
	member := mutate(set)
	if err := uc.interactionRepo.Save(ctx, userID, set); err != nil {
		return false, apperror.Internal(err)
	}
	return member, nil
}

func (uc *interactionUsecase) ToggleLikeVideo(ctx context.Context, userID, videoID string) (bool, error) {
	return uc.toggleAndSave(ctx, userID, func(s *domain.InteractionSet) bool {
		var member bool
		s.LikedVideoIDs, member = toggle(s.LikedVideoIDs, videoID)
		return member
	})
}

func (uc *interactionUsecase) ToggleSaveVideo(ctx context.Context, userID, videoID string) (bool, error) {
	return uc.toggleAndSave(ctx, userID, func(s *domain.InteractionSet) bool {
		var member bool
		s.SavedVideoIDs, member = toggle(s.SavedVideoIDs, videoID)
		return member
	})
}

func (uc *interactionUsecase) ToggleLikeUser(ctx context.Context, userID, username string) (bool, error) {
	return uc.toggleAndSave(ctx, userID, func(s *domain.InteractionSet) bool {
		var member bool
		s.LikedUserIDs, member = toggle(s.LikedUserIDs, username)
		return member
	})
}

func (uc *interactionUsecase) ToggleSaveUser(ctx context.Context, userID, username string) (bool, error) {
	return uc.toggleAndSave(ctx, userID, func(s *domain.InteractionSet) bool {
		var member bool
		s.SavedUserIDs, member = toggle(s.SavedUserIDs, username)
		return member
	})
}

func (uc *interactionUsecase) IsVideoLiked(ctx context.Context, userID, videoID string) (bool, error) {
	set, err := uc.GetInteractions(ctx, userID)
	if err != nil {
		return false, err
	}
	return set.IsVideoLiked(videoID), nil
}

func (uc *interactionUsecase) IsVideoSaved(ctx context.Context, userID, videoID string) (bool, error) {
	set, err := uc.GetInteractions(ctx, userID)
	if err != nil {
		return false, err
	}
	return set.IsVideoSaved(videoID), nil
}

func (uc *interactionUsecase) IsUserLiked(ctx context.Context, userID, username string) (bool, error) {
	set, err := uc.GetInteractions(ctx, userID)
	if err != nil {
		return false, err
	}
	return set.IsUserLiked(username), nil
}

func (uc *interactionUsecase) IsUserSaved(ctx context.Context, userID, username string) (bool, error) {
	set, err := uc.GetInteractions(ctx, userID)
	if err != nil {
		return false, err
	}
	return set.IsUserSaved(username), nil
}

func (uc *interactionUsecase) GetInteractions(ctx context.Context, userID string) (*domain.InteractionSet, error) {
	set, err := uc.interactionRepo.Get(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return set, nil
}
