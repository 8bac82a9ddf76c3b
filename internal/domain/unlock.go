package domain

import "context"

// UnlockReason records how a seeker profile came to be unlocked for a viewer.
type UnlockReason string

const (
	UnlockReasonPayment     UnlockReason = "PAYMENT"
	UnlockReasonApplication UnlockReason = "APPLICATION"
)

// Valid reports whether the reason is one of the known unlock paths.
func (r UnlockReason) Valid() bool {
	return r == UnlockReasonPayment || r == UnlockReasonApplication
}

// UnlockRepository tracks which seeker profiles a viewer has unlocked.
// Unlocking is monotonic: there is no re-locking path outside of Clear,
// which exists for test and debug support only.
type UnlockRepository interface {
	IsUnlocked(ctx context.Context, viewerID, subjectID string) (bool, error)
	Add(ctx context.Context, viewerID, subjectID string) error
	Clear(ctx context.Context, viewerID string) error
}

// PaymentGateway confirms an unlock before it is recorded. The simulated
// gateway in pkg/payment always confirms after a configured delay; the
// interface leaves room for a declined-payment path.
type PaymentGateway interface {
	Confirm(ctx context.Context, viewerID, subjectID string, reason UnlockReason) error
}

type UnlockUsecase interface {
	IsUnlocked(ctx context.Context, viewerID, subjectID string) (bool, error)
	// Unlock marks subjectID unlocked for viewerID. Idempotent: unlocking an
	// already-unlocked subject skips the gateway and returns true.
	Unlock(ctx context.Context, viewerID, subjectID string, reason UnlockReason) (bool, error)
	// Reset clears all unlock state for the viewer (test/debug support).
	Reset(ctx context.Context, viewerID string) error
}
