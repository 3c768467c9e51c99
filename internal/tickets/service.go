package tickets

import (
	"fmt"
	"time"

	"bus-ticketing/internal/models"
	"bus-ticketing/internal/tickets/qr"
	"bus-ticketing/internal/utils"
)

type TicketDBLayer interface {
	CreateTicket(ticket models.Ticket) error
	GetTicketsByOrder(orderID string) ([]models.Ticket, error)
}

// TicketService turns a confirmed order into boarding passes, one per
// seat, each with an encrypted QR code.
type TicketService struct {
	DB TicketDBLayer
	QR *qr.QRGenerator
}

func NewTicketService(db TicketDBLayer, qrSecret string) *TicketService {
	return &TicketService{DB: db, QR: qr.NewQRGenerator(qrSecret)}
}

// IssueTickets creates one ticket per seat in the order. The roster is
// matched to seats by position: passenger N rides in seat N.
func (s *TicketService) IssueTickets(order models.Order) ([]models.Ticket, error) {
	if len(order.Passengers) != len(order.SeatNumbers) {
		return nil, fmt.Errorf("order %s has %d passengers for %d seats",
			order.OrderID, len(order.Passengers), len(order.SeatNumbers))
	}

	issued := make([]models.Ticket, 0, len(order.SeatNumbers))
	for i, seatNumber := range order.SeatNumbers {
		passenger := order.Passengers[i]
		ticket := models.Ticket{
			TicketID:        utils.GenerateTicketID(),
			OrderID:         order.OrderID,
			TripID:          order.TripID,
			SeatNumber:      seatNumber,
			PassengerName:   passenger.FullName,
			DocumentNumber:  passenger.DocumentNumber,
			PriceAtPurchase: order.PricePerSeat,
			IssuedAt:        time.Now(),
		}

		qrBytes, err := s.QR.GenerateEncryptedQR(ticket)
		if err != nil {
			return issued, fmt.Errorf("failed to generate QR for seat %s: %w", seatNumber, err)
		}
		ticket.QRCode = qrBytes

		if err := s.DB.CreateTicket(ticket); err != nil {
			return issued, fmt.Errorf("failed to create ticket for seat %s: %w", seatNumber, err)
		}
		issued = append(issued, ticket)
	}
	return issued, nil
}

func (s *TicketService) TicketsForOrder(orderID string) ([]models.Ticket, error) {
	return s.DB.GetTicketsByOrder(orderID)
}
