package usecase_test

import (
	"context"
	"errors"
	"testing"

	"go-jobreels-backend/internal/domain"
	"go-jobreels-backend/internal/repository/kv"
	"go-jobreels-backend/internal/usecase"
	"go-jobreels-backend/pkg/apperror"
	"go-jobreels-backend/pkg/kvstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) Confirm(ctx context.Context, viewerID, subjectID string, reason domain.UnlockReason) error {
	args := m.Called(ctx, viewerID, subjectID, reason)
	return args.Error(0)
}

func newUnlockFixture(t *testing.T) (domain.UnlockUsecase, *MockPaymentGateway) {
	t.Helper()
	gateway := new(MockPaymentGateway)
	repo := kv.NewUnlockRepository(kvstore.NewMemoryStore())
	return usecase.NewUnlockUsecase(repo, gateway), gateway
}

func TestUnlockMonotonic(t *testing.T) {
	uc, gateway := newUnlockFixture(t)
	ctx := context.Background()

	gateway.On("Confirm", mock.Anything, "e1", "s1", domain.UnlockReasonPayment).Return(nil).Once()

	unlocked, err := uc.Unlock(ctx, "e1", "s1", domain.UnlockReasonPayment)
	require.NoError(t, err)
	assert.True(t, unlocked)

	// A second unlock of the same subject succeeds without a second charge.
	unlocked, err = uc.Unlock(ctx, "e1", "s1", domain.UnlockReasonPayment)
	require.NoError(t, err)
	assert.True(t, unlocked)

	got, err := uc.IsUnlocked(ctx, "e1", "s1")
	require.NoError(t, err)
	assert.True(t, got)

	gateway.AssertExpectations(t)
	gateway.AssertNumberOfCalls(t, "Confirm", 1)
}

func TestUnlockScopedToViewer(t *testing.T) {
	uc, gateway := newUnlockFixture(t)
	ctx := context.Background()

	gateway.On("Confirm", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := uc.Unlock(ctx, "e1", "s1", domain.UnlockReasonApplication)
	require.NoError(t, err)

	other, err := uc.IsUnlocked(ctx, "e2", "s1")
	require.NoError(t, err)
	assert.False(t, other, "unlocks belong to the viewer, not the subject")

	sibling, err := uc.IsUnlocked(ctx, "e1", "s2")
	require.NoError(t, err)
	assert.False(t, sibling)
}

func TestUnlockValidation(t *testing.T) {
	uc, _ := newUnlockFixture(t)
	ctx := context.Background()

	t.Run("missing participants", func(t *testing.T) {
		_, err := uc.Unlock(ctx, "", "s1", domain.UnlockReasonPayment)
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)
	})

	t.Run("unknown reason", func(t *testing.T) {
		_, err := uc.Unlock(ctx, "e1", "s1", domain.UnlockReason("GIFT"))
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)
	})
}

func TestUnlockGatewayFailure(t *testing.T) {
	uc, gateway := newUnlockFixture(t)
	ctx := context.Background()

	gateway.On("Confirm", mock.Anything, "e1", "s1", domain.UnlockReasonPayment).
		Return(errors.New("declined")).Once()

	unlocked, err := uc.Unlock(ctx, "e1", "s1", domain.UnlockReasonPayment)
	assert.False(t, unlocked)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 502, appErr.Code)

	// A declined confirmation must not leave the subject unlocked.
	got, err := uc.IsUnlocked(ctx, "e1", "s1")
	require.NoError(t, err)
	assert.False(t, got)
}

func TestUnlockReset(t *testing.T) {
	uc, gateway := newUnlockFixture(t)
	ctx := context.Background()

	gateway.On("Confirm", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := uc.Unlock(ctx, "e1", "s1", domain.UnlockReasonPayment)
	require.NoError(t, err)
	_, err = uc.Unlock(ctx, "e1", "s2", domain.UnlockReasonApplication)
	require.NoError(t, err)

	require.NoError(t, uc.Reset(ctx, "e1"))

	for _, subject := range []string{"s1", "s2"} {
		got, err := uc.IsUnlocked(ctx, "e1", subject)
		require.NoError(t, err)
		assert.False(t, got)
	}
}

func TestIsUnlockedAnonymousViewer(t *testing.T) {
	uc, _ := newUnlockFixture(t)

	got, err := uc.IsUnlocked(context.Background(), "", "s1")
	require.NoError(t, err)
	assert.False(t, got)
}
