package payment

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"bus-ticketing/internal/models"
	"bus-ticketing/internal/utils"
)

var ErrCardDeclined = errors.New("card declined")

// SimulatedGateway stands in for a real payment processor: a fixed
// latency per charge, an optional failure rate, and nothing remembered
// between calls. It honors context cancellation during the delay.
type SimulatedGateway struct {
	Latency     time.Duration
	FailureRate float64

	mu  sync.Mutex
	rng *rand.Rand
}

func NewSimulatedGateway(latency time.Duration, failureRate float64) *SimulatedGateway {
	return &SimulatedGateway{
		Latency:     latency,
		FailureRate: failureRate,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (g *SimulatedGateway) Charge(ctx context.Context, req models.ChargeRequest) (*models.ChargeResponse, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("invalid charge amount: %.2f", req.Amount)
	}
	if len(req.Card.CardNumber) < 16 {
		return nil, ErrCardDeclined
	}

	select {
	case <-time.After(g.Latency):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if g.roll() {
		return &models.ChargeResponse{
			Status:  models.StatusFailed,
			Message: "processor rejected the charge",
		}, nil
	}

	return &models.ChargeResponse{
		TransactionID: utils.GenerateTransactionID(),
		Status:        models.StatusSuccess,
	}, nil
}

func (g *SimulatedGateway) roll() bool {
	if g.FailureRate <= 0 {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.Float64() < g.FailureRate
}
