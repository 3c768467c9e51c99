package booking

import (
	"testing"
	"time"

	"bus-ticketing/internal/models"
	"bus-ticketing/internal/seatmap"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureTrip() models.Trip {
	dep := time.Date(2026, 9, 12, 22, 30, 0, 0, time.UTC)
	return models.Trip{
		TripID:        "trip-garcia-sp-rj",
		Company:       "VIAÇÃO GARCIA",
		Origin:        "São Paulo - Tietê",
		Destination:   "Rio de Janeiro - Novo Rio",
		DepartureTime: dep,
		ArrivalTime:   dep.Add(6 * time.Hour),
		Type:          models.TripLeito,
		OriginalPrice: 262.27,
		CurrentPrice:  214.99,
	}
}

// fixtureCatalog is a small deterministic catalog: odd seats occupied,
// even seats available.
func fixtureCatalog() *seatmap.Catalog {
	return seatmap.FromSeats("trip-garcia-sp-rj", []models.Seat{
		{Number: "01", Status: models.SeatOccupied, Position: models.PositionAisle, Floor: models.FloorLower},
		{Number: "02", Status: models.SeatAvailable, Position: models.PositionWindow, Floor: models.FloorLower},
		{Number: "03", Status: models.SeatOccupied, Position: models.PositionAisle, Floor: models.FloorLower},
		{Number: "04", Status: models.SeatAvailable, Position: models.PositionWindow, Floor: models.FloorLower},
		{Number: "05", Status: models.SeatOccupied, Position: models.PositionAisle, Floor: models.FloorLower},
		{Number: "06", Status: models.SeatAvailable, Position: models.PositionWindow, Floor: models.FloorLower},
		{Number: "21", Status: models.SeatAvailable, Position: models.PositionAisle, Floor: models.FloorUpper},
	})
}

func fixtureSession() *Session {
	return NewSession("sess-1", "user-1", fixtureTrip(), fixtureCatalog(), 5.0)
}

func validCard() models.CardDetails {
	return models.CardDetails{
		CardNumber: "4111111111111111",
		CardName:   "Jane Doe",
		ExpiryDate: "12/29",
		CVV:        "123",
	}
}

func fillRoster(t *testing.T, s *Session) {
	t.Helper()
	for i := range s.Roster() {
		require.NoError(t, s.UpdatePassenger(i, FieldFullName, "Maria da Silva"))
		require.NoError(t, s.UpdatePassenger(i, FieldDocumentType, "cpf"))
		require.NoError(t, s.UpdatePassenger(i, FieldDocumentNumber, "123.456.789-00"))
	}
}

func TestToggleSeatOccupiedIsNoOp(t *testing.T) {
	s := fixtureSession()

	s.ToggleSeat("01")
	assert.Empty(t, s.SelectedSeats())

	// Unknown labels behave like occupied seats
	s.ToggleSeat("99")
	assert.Empty(t, s.SelectedSeats())
}

func TestToggleSeatIsInvolutive(t *testing.T) {
	s := fixtureSession()

	s.ToggleSeat("02")
	assert.True(t, s.IsSelected("02"))

	s.ToggleSeat("02")
	assert.False(t, s.IsSelected("02"))
	assert.Empty(t, s.SelectedSeats())
}

func TestSelectionKeepsInsertionOrder(t *testing.T) {
	s := fixtureSession()

	s.ToggleSeat("04")
	s.ToggleSeat("02")
	s.ToggleSeat("06")
	assert.Equal(t, []string{"04", "02", "06"}, s.SelectedSeats())

	// Removing the middle seat preserves the others' order
	s.ToggleSeat("02")
	assert.Equal(t, []string{"04", "06"}, s.SelectedSeats())
}

func TestClearSelection(t *testing.T) {
	s := fixtureSession()
	s.ToggleSeat("02")
	s.ToggleSeat("04")

	s.ClearSelection()

	assert.Empty(t, s.SelectedSeats())
	assert.False(t, s.IsSelected("02"))
}

func TestSeatStatusOverlay(t *testing.T) {
	s := fixtureSession()
	s.ToggleSeat("02")

	assert.Equal(t, models.SeatOccupied, s.SeatStatus("01"))
	assert.Equal(t, models.SeatSelected, s.SeatStatus("02"))
	assert.Equal(t, models.SeatAvailable, s.SeatStatus("04"))
	assert.Equal(t, models.SeatOccupied, s.SeatStatus("99"))
}

func TestFloorViewAppliesOverlayWithoutMutatingCatalog(t *testing.T) {
	s := fixtureSession()
	s.ToggleSeat("02")

	view := s.FloorView(models.FloorLower)
	require.Len(t, view, 6)
	assert.Equal(t, models.SeatSelected, view[1].Status)

	// The catalog underneath still reports the generated occupancy
	seat, ok := s.Catalog.Seat("02")
	require.True(t, ok)
	assert.Equal(t, models.SeatAvailable, seat.Status)
}

func TestQuoteFollowsSelection(t *testing.T) {
	s := fixtureSession()

	q := s.Quote()
	assert.Zero(t, q.Total)

	s.ToggleSeat("02")
	s.ToggleSeat("04")
	q = s.Quote()
	assert.Equal(t, 2, q.SeatCount)
	assert.InDelta(t, 2*214.99, q.Subtotal, 1e-9)
	assert.InDelta(t, 2*214.99+5.0, q.Total, 1e-9)
}

func TestAdvanceRequiresSelection(t *testing.T) {
	s := fixtureSession()

	err := s.AdvanceToPayment()
	assert.ErrorIs(t, err, ErrEmptySelection)
	assert.Equal(t, StepSeatSelection, s.Step())
}

func TestAdvancePadsRosterToSelection(t *testing.T) {
	s := fixtureSession()
	s.ToggleSeat("02")
	s.ToggleSeat("04")

	require.NoError(t, s.AdvanceToPayment())

	assert.Equal(t, StepPassengerAndPayment, s.Step())
	roster := s.Roster()
	require.Len(t, roster, 2)
	assert.Equal(t, models.DocumentCPF, roster[0].DocumentType)
	assert.Empty(t, roster[0].FullName)
}

func TestAdvanceTrimsSurplusRoster(t *testing.T) {
	s := fixtureSession()
	s.ToggleSeat("02")
	s.ToggleSeat("04")
	require.NoError(t, s.AdvanceToPayment())
	fillRoster(t, s)

	// Back out and shrink the selection to one seat
	require.NoError(t, s.Back())
	s.ToggleSeat("04")
	require.NoError(t, s.AdvanceToPayment())

	roster := s.Roster()
	require.Len(t, roster, 1)
	assert.Equal(t, "Maria da Silva", roster[0].FullName)
}

func TestBackKeepsSelectionAndRoster(t *testing.T) {
	s := fixtureSession()
	s.ToggleSeat("02")
	require.NoError(t, s.AdvanceToPayment())
	fillRoster(t, s)

	require.NoError(t, s.Back())

	assert.Equal(t, StepSeatSelection, s.Step())
	assert.Equal(t, []string{"02"}, s.SelectedSeats())
	assert.Equal(t, "Maria da Silva", s.Roster()[0].FullName)
}

func TestBackOnlyFromPaymentStep(t *testing.T) {
	s := fixtureSession()
	assert.ErrorIs(t, s.Back(), ErrInvalidStep)
}

func TestAddPassengerCappedBySelection(t *testing.T) {
	s := fixtureSession()
	s.ToggleSeat("02")
	require.NoError(t, s.AdvanceToPayment())

	err := s.AddPassenger()
	assert.ErrorIs(t, err, ErrRosterFull)
	assert.Len(t, s.Roster(), 1)
}

func TestAddPassengerAfterRemoval(t *testing.T) {
	s := fixtureSession()
	s.ToggleSeat("02")
	s.ToggleSeat("04")
	require.NoError(t, s.AdvanceToPayment())

	s.RemovePassenger(1)
	require.Len(t, s.Roster(), 1)

	require.NoError(t, s.AddPassenger())
	assert.Len(t, s.Roster(), 2)
}

func TestRemoveFirstPassengerIsNoOp(t *testing.T) {
	s := fixtureSession()
	s.ToggleSeat("02")
	s.ToggleSeat("04")
	require.NoError(t, s.AdvanceToPayment())

	s.RemovePassenger(0)
	assert.Len(t, s.Roster(), 2)

	s.RemovePassenger(5)
	assert.Len(t, s.Roster(), 2)
}

func TestUpdatePassengerFields(t *testing.T) {
	s := fixtureSession()
	s.ToggleSeat("02")
	require.NoError(t, s.AdvanceToPayment())

	require.NoError(t, s.UpdatePassenger(0, FieldFullName, "João Pereira"))
	require.NoError(t, s.UpdatePassenger(0, FieldDocumentType, "rg"))
	require.NoError(t, s.UpdatePassenger(0, FieldDocumentNumber, "12.345.678-9"))

	p := s.Roster()[0]
	assert.Equal(t, "João Pereira", p.FullName)
	assert.Equal(t, models.DocumentRG, p.DocumentType)
	assert.Equal(t, "12.345.678-9", p.DocumentNumber)

	assert.ErrorIs(t, s.UpdatePassenger(3, FieldFullName, "x"), ErrPassengerIndex)
	assert.Error(t, s.UpdatePassenger(0, PassengerField("shoe_size"), "42"))
}

func TestRosterEditsRejectedOutsidePaymentStep(t *testing.T) {
	s := fixtureSession()
	s.ToggleSeat("02")

	assert.ErrorIs(t, s.AddPassenger(), ErrInvalidStep)
	assert.ErrorIs(t, s.UpdatePassenger(0, FieldFullName, "x"), ErrInvalidStep)
}

func TestBeginSubmitValidatesRosterAndCard(t *testing.T) {
	s := fixtureSession()
	s.ToggleSeat("02")
	s.ToggleSeat("04")
	require.NoError(t, s.AdvanceToPayment())
	fillRoster(t, s)
	// Blank the second passenger's document
	require.NoError(t, s.UpdatePassenger(1, FieldDocumentNumber, ""))

	err := s.beginSubmit(validCard())

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 1)
	assert.Equal(t, "document_number", verrs[0].Field)
	assert.Equal(t, 1, verrs[0].Index)
	assert.Equal(t, "Número do documento é obrigatório", verrs[0].Message)

	// Funnel stays put and is not stuck confirming
	assert.Equal(t, StepPassengerAndPayment, s.Step())
	require.NoError(t, s.UpdatePassenger(1, FieldDocumentNumber, "987.654.321-00"))
	assert.NoError(t, s.beginSubmit(validCard()))
}

func TestBeginSubmitRejectsBadCard(t *testing.T) {
	s := fixtureSession()
	s.ToggleSeat("02")
	require.NoError(t, s.AdvanceToPayment())
	fillRoster(t, s)

	err := s.beginSubmit(models.CardDetails{CardNumber: "4111", CardName: "J", ExpiryDate: "1", CVV: "9"})

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 4)
	for _, fe := range verrs {
		assert.Equal(t, PaymentFieldIndex, fe.Index)
	}
}

func TestBeginSubmitGuards(t *testing.T) {
	s := fixtureSession()
	s.ToggleSeat("02")
	require.NoError(t, s.AdvanceToPayment())
	fillRoster(t, s)

	require.NoError(t, s.beginSubmit(validCard()))

	// Second submit while the first is in flight
	assert.ErrorIs(t, s.beginSubmit(validCard()), ErrConfirmationInFlight)
	assert.ErrorIs(t, s.Back(), ErrConfirmationInFlight)

	s.completeSubmit(&Confirmation{OrderID: "ord-1"})
	assert.Equal(t, StepConfirmed, s.Step())
	assert.ErrorIs(t, s.beginSubmit(validCard()), ErrOrderConfirmed)

	// A confirmed order never regresses or mutates
	s.ToggleSeat("04")
	assert.Equal(t, []string{"02"}, s.SelectedSeats())
	assert.ErrorIs(t, s.Back(), ErrInvalidStep)
}

func TestFailSubmitKeepsFunnelInPaymentStep(t *testing.T) {
	s := fixtureSession()
	s.ToggleSeat("02")
	require.NoError(t, s.AdvanceToPayment())
	fillRoster(t, s)
	require.NoError(t, s.beginSubmit(validCard()))

	s.failSubmit()

	assert.Equal(t, StepPassengerAndPayment, s.Step())
	assert.Nil(t, s.Confirmation())
	assert.Equal(t, []string{"02"}, s.SelectedSeats())

	// Another attempt is allowed
	assert.NoError(t, s.beginSubmit(validCard()))
}
