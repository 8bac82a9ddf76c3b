package payment

import (
	"context"
	"testing"
	"time"

	"go-jobreels-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatedGatewayConfirms(t *testing.T) {
	gateway := NewSimulatedGateway(0)
	err := gateway.Confirm(context.Background(), "e1", "s1", domain.UnlockReasonPayment)
	require.NoError(t, err)

	gateway = NewSimulatedGateway(5 * time.Millisecond)
	err = gateway.Confirm(context.Background(), "e1", "s1", domain.UnlockReasonApplication)
	require.NoError(t, err)
}

func TestSimulatedGatewayHonorsCancellation(t *testing.T) {
	gateway := NewSimulatedGateway(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := gateway.Confirm(ctx, "e1", "s1", domain.UnlockReasonPayment)
	assert.ErrorIs(t, err, context.Canceled)
}
