package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotalEmptySelection(t *testing.T) {
	assert.Zero(t, ComputeTotal(214.99, 0, 5.0))
	assert.Zero(t, ComputeTotal(214.99, -1, 5.0))
}

func TestComputeTotalLinearInSeatCount(t *testing.T) {
	price := 214.99
	fee := 5.0
	for n := 1; n < 10; n++ {
		delta := ComputeTotal(price, n+1, fee) - ComputeTotal(price, n, fee)
		assert.InDelta(t, price, delta, 1e-9, "adding a seat adds exactly one fare")
	}
}

func TestComputeTotalIncludesFeeOnce(t *testing.T) {
	assert.InDelta(t, 214.99+5.0, ComputeTotal(214.99, 1, 5.0), 1e-9)
	assert.InDelta(t, 3*214.99+5.0, ComputeTotal(214.99, 3, 5.0), 1e-9)
}

func TestComputeTotalWithoutFee(t *testing.T) {
	// Two seats at the default zero fee cost exactly two fares
	assert.InDelta(t, 2*214.99, ComputeTotal(214.99, 2, 0), 1e-9)
}

func TestNewQuote(t *testing.T) {
	q := NewQuote(214.99, 2, 5.0)
	assert.Equal(t, 2, q.SeatCount)
	assert.InDelta(t, 429.98, q.Subtotal, 1e-9)
	assert.InDelta(t, 5.0, q.ServiceFee, 1e-9)
	assert.InDelta(t, 434.98, q.Total, 1e-9)

	empty := NewQuote(214.99, 0, 5.0)
	assert.Zero(t, empty.Subtotal)
	assert.Zero(t, empty.ServiceFee)
	assert.Zero(t, empty.Total)
}
