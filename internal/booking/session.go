package booking

import (
	"errors"
	"sync"

	"bus-ticketing/internal/models"
	"bus-ticketing/internal/seatmap"
)

type Step string

const (
	StepSeatSelection       Step = "seat_selection"
	StepPassengerAndPayment Step = "passenger_and_payment"
	StepConfirmed           Step = "confirmed"
)

var (
	ErrEmptySelection       = errors.New("no seats selected")
	ErrInvalidStep          = errors.New("operation not valid in current checkout step")
	ErrConfirmationInFlight = errors.New("a confirmation is already in flight")
	ErrRosterFull           = errors.New("roster already has one passenger per selected seat")
	ErrPassengerIndex       = errors.New("no passenger at that index")
	ErrOrderConfirmed       = errors.New("order already confirmed")
)

// Confirmation is the finalized order exposed once the funnel reaches
// its terminal step.
type Confirmation struct {
	OrderID          string             `json:"order_id"`
	ConfirmationCode string             `json:"confirmation_code"`
	TransactionID    string             `json:"transaction_id"`
	SeatNumbers      []string           `json:"seat_numbers"`
	Passengers       []models.Passenger `json:"passengers"`
	Total            float64            `json:"total"`
}

// Session carries one user's checkout through the funnel:
// SeatSelection -> PassengerAndPayment -> Confirmed. Going back never
// discards the selection or the roster. All mutations are serialized
// behind the session mutex; the only suspension point, the gateway
// round trip, runs outside it guarded by the confirming flag.
type Session struct {
	SessionID string
	UserID    string
	Trip      models.Trip
	Catalog   *seatmap.Catalog

	mu           sync.Mutex
	step         Step
	selection    []string
	selected     map[string]struct{}
	roster       []models.Passenger
	serviceFee   float64
	confirming   bool
	confirmation *Confirmation
}

func NewSession(sessionID, userID string, trip models.Trip, catalog *seatmap.Catalog, serviceFee float64) *Session {
	return &Session{
		SessionID:  sessionID,
		UserID:     userID,
		Trip:       trip,
		Catalog:    catalog,
		step:       StepSeatSelection,
		selected:   make(map[string]struct{}),
		serviceFee: serviceFee,
	}
}

func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// ---------------- SELECTION ----------------

// ToggleSeat flips a seat's membership in the selection. Occupied and
// unknown seats are ignored, as is any toggle once the funnel has
// moved past seat handling. Never fails.
func (s *Session) ToggleSeat(number string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step == StepConfirmed || s.confirming {
		return
	}
	if s.Catalog.IsOccupied(number) {
		return
	}
	if _, ok := s.selected[number]; ok {
		delete(s.selected, number)
		for i, n := range s.selection {
			if n == number {
				s.selection = append(s.selection[:i], s.selection[i+1:]...)
				break
			}
		}
		return
	}
	s.selected[number] = struct{}{}
	s.selection = append(s.selection, number)
}

func (s *Session) IsSelected(number string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.selected[number]
	return ok
}

// SelectedSeats returns the selection in insertion order, which is also
// the passenger N <-> seat N correspondence.
func (s *Session) SelectedSeats() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.selection...)
}

// ClearSelection empties the selection. Called when the trip context
// changes under the session.
func (s *Session) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step == StepConfirmed || s.confirming {
		return
	}
	s.selection = nil
	s.selected = make(map[string]struct{})
}

// SeatStatus derives the displayed status of a seat: occupancy wins,
// then selection, then available. The catalog itself is never mutated.
func (s *Session) SeatStatus(number string) models.SeatStatus {
	seat, ok := s.Catalog.Seat(number)
	if !ok || seat.Status == models.SeatOccupied {
		return models.SeatOccupied
	}
	if s.IsSelected(number) {
		return models.SeatSelected
	}
	return models.SeatAvailable
}

// FloorView returns one floor's seats with the selection overlay
// applied, ready for display.
func (s *Session) FloorView(floor models.Floor) []models.Seat {
	seats := s.Catalog.Floor(floor)
	for i := range seats {
		seats[i].Status = s.SeatStatus(seats[i].Number)
	}
	return seats
}

// Quote prices the current selection.
func (s *Session) Quote() Quote {
	s.mu.Lock()
	defer s.mu.Unlock()
	return NewQuote(s.Trip.CurrentPrice, len(s.selection), s.serviceFee)
}

// ---------------- ROSTER ----------------

// AddPassenger appends a blank record. The roster never grows past one
// passenger per selected seat.
func (s *Session) AddPassenger() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step != StepPassengerAndPayment || s.confirming {
		return ErrInvalidStep
	}
	if len(s.roster) >= len(s.selection) {
		return ErrRosterFull
	}
	s.roster = append(s.roster, models.NewBlankPassenger())
	return nil
}

// RemovePassenger removes by position. Index 0 is the mandatory first
// passenger and is silently kept, as is any out-of-range index.
func (s *Session) RemovePassenger(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step != StepPassengerAndPayment || s.confirming {
		return
	}
	if index <= 0 || index >= len(s.roster) {
		return
	}
	s.roster = append(s.roster[:index], s.roster[index+1:]...)
}

type PassengerField string

const (
	FieldFullName       PassengerField = "full_name"
	FieldDocumentType   PassengerField = "document_type"
	FieldDocumentNumber PassengerField = "document_number"
)

// UpdatePassenger mutates one field of one roster entry. Validation
// happens at submit time, not here.
func (s *Session) UpdatePassenger(index int, field PassengerField, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step != StepPassengerAndPayment || s.confirming {
		return ErrInvalidStep
	}
	if index < 0 || index >= len(s.roster) {
		return ErrPassengerIndex
	}
	switch field {
	case FieldFullName:
		s.roster[index].FullName = value
	case FieldDocumentType:
		s.roster[index].DocumentType = models.DocumentType(value)
	case FieldDocumentNumber:
		s.roster[index].DocumentNumber = value
	default:
		return errors.New("unknown passenger field: " + string(field))
	}
	return nil
}

// Roster returns a copy of the passenger records.
func (s *Session) Roster() []models.Passenger {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Passenger(nil), s.roster...)
}

// ---------------- FUNNEL ----------------

// AdvanceToPayment moves the funnel to the passenger/payment step. It
// requires at least one selected seat and reconciles the roster to the
// selection: missing records are padded blank, surplus ones from an
// earlier, larger selection are dropped from the tail.
func (s *Session) AdvanceToPayment() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step != StepSeatSelection {
		return ErrInvalidStep
	}
	if len(s.selection) == 0 {
		return ErrEmptySelection
	}
	for len(s.roster) < len(s.selection) {
		s.roster = append(s.roster, models.NewBlankPassenger())
	}
	if len(s.roster) > len(s.selection) {
		s.roster = s.roster[:len(s.selection)]
	}
	s.step = StepPassengerAndPayment
	return nil
}

// Back returns to seat selection without losing the roster or the
// selection. A confirmed order never regresses.
func (s *Session) Back() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.confirming {
		return ErrConfirmationInFlight
	}
	if s.step != StepPassengerAndPayment {
		return ErrInvalidStep
	}
	s.step = StepSeatSelection
	return nil
}

// beginSubmit validates the whole funnel and flips the confirming flag.
// The caller performs the gateway round trip outside the session lock
// and then finishes with completeSubmit or failSubmit.
func (s *Session) beginSubmit(card models.CardDetails) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step == StepConfirmed {
		return ErrOrderConfirmed
	}
	if s.step != StepPassengerAndPayment {
		return ErrInvalidStep
	}
	if s.confirming {
		return ErrConfirmationInFlight
	}

	var errs ValidationErrors
	for i, p := range s.roster {
		errs = append(errs, ValidatePassenger(i, p)...)
	}
	errs = append(errs, ValidateCard(card)...)
	if len(s.roster) != len(s.selection) {
		errs = append(errs, FieldError{
			Field:   "roster",
			Index:   PaymentFieldIndex,
			Message: "Quantidade de passageiros difere dos assentos selecionados",
		})
	}
	if len(errs) > 0 {
		return errs
	}

	s.confirming = true
	return nil
}

// completeSubmit lands the funnel in its terminal step.
func (s *Session) completeSubmit(conf *Confirmation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.confirming = false
	s.confirmation = conf
	s.step = StepConfirmed
}

// failSubmit returns the funnel to the payment step after a gateway or
// lock failure. Selection and roster stay intact for another attempt.
func (s *Session) failSubmit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.confirming = false
}

// Confirmation returns the finalized order, or nil before confirmation.
func (s *Session) Confirmation() *Confirmation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.confirmation
}
