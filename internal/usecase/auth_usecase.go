package usecase

import (
	"context"
	"errors"
	"time"

	"go-jobreels-backend/internal/domain"
	"go-jobreels-backend/pkg/apperror"
)

type authUsecase struct {
	userRepo domain.UserRepository
}

func NewAuthUsecase(userRepo domain.UserRepository) domain.AuthUsecase {
	return &authUsecase{userRepo: userRepo}
}

func (u *authUsecase) EnsureUserExists(ctx context.Context, user *domain.User) error {
	existing, err := u.userRepo.GetByID(ctx, user.ID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return apperror.Internal(err)
	}
	if existing != nil {
		// Sync mutable profile fields from the auth provider.
		changed := false
		if user.Email != "" && existing.Email != user.Email {
			existing.Email = user.Email
			changed = true
		}
		if user.FullName != "" && existing.FullName != user.FullName {
			existing.FullName = user.FullName
			changed = true
		}
		if changed {
			existing.UpdatedAt = time.Now()
			return u.userRepo.Update(ctx, existing)
		}
		return nil
	}

	// New users browse as seekers until they switch.
	if user.Role == "" {
		user.Role = domain.RoleSeeker
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	return u.userRepo.Create(ctx, user)
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}

// SwitchRole flips the caller between employer and seeker. Only the user
// themselves can switch, and only between the two browsing roles.
func (u *authUsecase) SwitchRole(ctx context.Context, userID string, role string) (*domain.User, error) {
	ctxUserID, ok := ctx.Value(domain.KeyUserID).(string)
	if !ok || ctxUserID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	if ctxUserID != userID {
		return nil, apperror.Forbidden("You can only switch your own role")
	}
	if role != domain.RoleEmployer && role != domain.RoleSeeker {
		return nil, apperror.BadRequest("Role must be employer or seeker")
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}

	user.Role = role
	user.UpdatedAt = time.Now()
	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, apperror.Internal(err)
	}
	return user, nil
}
