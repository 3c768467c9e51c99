package models

type SeatStatus string

const (
	SeatAvailable SeatStatus = "available"
	SeatOccupied  SeatStatus = "occupied"
	SeatSelected  SeatStatus = "selected"
)

type SeatPosition string

const (
	PositionWindow SeatPosition = "window"
	PositionAisle  SeatPosition = "aisle"
)

type Floor string

const (
	FloorLower Floor = "lower"
	FloorUpper Floor = "upper"
)

// Seat is one seat in a trip's catalog. Status here is the generated
// occupancy only; "selected" is an overlay derived from the checkout
// session and never stored on the seat itself.
type Seat struct {
	Number   string       `json:"number"`
	Status   SeatStatus   `json:"status"`
	Position SeatPosition `json:"position"`
	Floor    Floor        `json:"floor"`
}
