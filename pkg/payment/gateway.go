// Package payment provides the unlock confirmation gateway. The real product
// charges through an external processor; this simulated gateway stands in
// for it and unconditionally confirms after a fixed delay.
package payment

import (
	"context"
	"time"

	"go-jobreels-backend/internal/domain"
)

// SimulatedGateway confirms every unlock after Delay. It exists so the
// unlock usecase has a real suspension point (network/payment latency)
// without a processor integration. No declined-payment path is modeled;
// swap in a real gateway to get one.
type SimulatedGateway struct {
	Delay time.Duration
}

func NewSimulatedGateway(delay time.Duration) *SimulatedGateway {
	return &SimulatedGateway{Delay: delay}
}

// Confirm blocks for the configured delay, honoring context cancellation,
// then confirms. Always succeeds when the context stays alive.
func (g *SimulatedGateway) Confirm(ctx context.Context, viewerID, subjectID string, reason domain.UnlockReason) error {
	if g.Delay <= 0 {
		return nil
	}
	timer := time.NewTimer(g.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
