package seatmap

import (
	"fmt"
	"math/rand"

	"bus-ticketing/internal/models"
)

const (
	lowerFirst = 1
	lowerLast  = 20
	upperFirst = 21
	upperLast  = 44

	// Probability that a generated seat is free rather than occupied.
	availableProbability = 0.7
)

// Catalog holds the generated seats for one trip, partitioned by floor.
// Occupancy is fixed at generation time; the checkout session overlays
// "selected" on top of it without ever mutating the catalog.
type Catalog struct {
	seats  []models.Seat
	byNum  map[string]int
	TripID string
}

// Generate produces the full two-floor catalog for a trip. Lower floor
// seats are zero-padded ("01".."20"), upper floor seats are "21".."44".
// Even-numbered seats sit at the window, odd ones on the aisle. The
// rand source is injected so tests can seed it.
func Generate(tripID string, rng *rand.Rand) *Catalog {
	c := &Catalog{
		TripID: tripID,
		byNum:  make(map[string]int, upperLast),
	}
	for i := lowerFirst; i <= lowerLast; i++ {
		c.append(fmt.Sprintf("%02d", i), i, models.FloorLower, rng)
	}
	for i := upperFirst; i <= upperLast; i++ {
		c.append(fmt.Sprintf("%d", i), i, models.FloorUpper, rng)
	}
	return c
}

func (c *Catalog) append(number string, ordinal int, floor models.Floor, rng *rand.Rand) {
	status := models.SeatOccupied
	if rng.Float64() < availableProbability {
		status = models.SeatAvailable
	}
	position := models.PositionAisle
	if ordinal%2 == 0 {
		position = models.PositionWindow
	}
	c.byNum[number] = len(c.seats)
	c.seats = append(c.seats, models.Seat{
		Number:   number,
		Status:   status,
		Position: position,
		Floor:    floor,
	})
}

// FromSeats builds a catalog from an explicit seat list. Used by tests
// and by integrations that load occupancy from real inventory instead
// of generating it.
func FromSeats(tripID string, seats []models.Seat) *Catalog {
	c := &Catalog{
		TripID: tripID,
		seats:  append([]models.Seat(nil), seats...),
		byNum:  make(map[string]int, len(seats)),
	}
	for i, s := range c.seats {
		c.byNum[s.Number] = i
	}
	return c
}

// Seat returns the generated seat for a label, or false if the label
// does not exist in this catalog.
func (c *Catalog) Seat(number string) (models.Seat, bool) {
	i, ok := c.byNum[number]
	if !ok {
		return models.Seat{}, false
	}
	return c.seats[i], true
}

// IsOccupied reports whether a label refers to an occupied seat.
// Unknown labels count as occupied so callers can never select them.
func (c *Catalog) IsOccupied(number string) bool {
	seat, ok := c.Seat(number)
	if !ok {
		return true
	}
	return seat.Status == models.SeatOccupied
}

// Seats returns all seats in catalog order.
func (c *Catalog) Seats() []models.Seat {
	return append([]models.Seat(nil), c.seats...)
}

// Floor returns the seats of a single floor, in catalog order.
func (c *Catalog) Floor(floor models.Floor) []models.Seat {
	var out []models.Seat
	for _, s := range c.seats {
		if s.Floor == floor {
			out = append(out, s)
		}
	}
	return out
}

func (c *Catalog) Len() int {
	return len(c.seats)
}
