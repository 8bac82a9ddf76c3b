package usecase

import (
	"context"

	"go-jobreels-backend/internal/domain"
	"go-jobreels-backend/pkg/apperror"
)

type unlockUsecase struct {
	unlockRepo domain.UnlockRepository
	gateway    domain.PaymentGateway
}

// NewUnlockUsecase creates a new unlock usecase
func NewUnlockUsecase(unlockRepo domain.UnlockRepository, gateway domain.PaymentGateway) domain.UnlockUsecase {
	return &unlockUsecase{unlockRepo: unlockRepo, gateway: gateway}
}

// IsUnlocked is a pure lookup with no side effects
func (uc *unlockUsecase) IsUnlocked(ctx context.Context, viewerID, subjectID string) (bool, error) {
	if viewerID == "" || subjectID == "" {
		return false, nil
	}
	unlocked, err := uc.unlockRepo.IsUnlocked(ctx, viewerID, subjectID)
	if err != nil {
		return false, apperror.Internal(err)
	}
	return unlocked, nil
}

// Unlock marks the subject unlocked for the viewer after the gateway
// confirms. The transition is one-way: a second call for the same subject
// skips the gateway entirely and reports success.
func (uc *unlockUsecase) Unlock(ctx context.Context, viewerID, subjectID string, reason domain.UnlockReason) (bool, error) {
	if viewerID == "" || subjectID == "" {
		return false, apperror.BadRequest("Viewer and subject are required")
	}
	if !reason.Valid() {
		return false, apperror.BadRequest("Unlock reason must be PAYMENT or APPLICATION")
	}

	unlocked, err := uc.unlockRepo.IsUnlocked(ctx, viewerID, subjectID)
	if err != nil {
		return false, apperror.Internal(err)
	}
	if unlocked {
		return true, nil
	}

	if err := uc.gateway.Confirm(ctx, viewerID, subjectID, reason); err != nil {
		return false, apperror.New(502, "Unlock confirmation failed", err)
	}

	if err := uc.unlockRepo.Add(ctx, viewerID, subjectID); err != nil {
		return false, apperror.Internal(err)
	}
	return true, nil
}

// Reset clears all unlock state for the viewer. Test/debug support only;
// the router exposes it solely when debug routes are enabled.
func (uc *unlockUsecase) Reset(ctx context.Context, viewerID string) error {
	if viewerID == "" {
		return apperror.BadRequest("Viewer is required")
	}
	if err := uc.unlockRepo.Clear(ctx, viewerID); err != nil {
		return apperror.Internal(err)
	}
	return nil
}
