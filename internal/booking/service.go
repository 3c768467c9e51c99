package booking

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"bus-ticketing/internal/logger"
	"bus-ticketing/internal/models"
	"bus-ticketing/internal/seatmap"
	"bus-ticketing/internal/utils"

	"github.com/google/uuid"
)

type DBLayer interface {
	CreateOrder(order models.Order) error
	GetOrderByID(id string) (*models.Order, error)
	UpdateOrder(order models.Order) error
	GetOrdersWithTicketsByUserID(userID string) ([]models.OrderWithTickets, error)
}

type SeatLock interface {
	LockSeats(tripID string, seatNumbers []string, orderID string) (bool, error)
	UnlockSeats(tripID string, seatNumbers []string, orderID string) error
}

type EventPublisher interface {
	PublishOrderConfirmed(order models.Order) error
	PublishOrderCancelled(order models.Order) error
}

type Gateway interface {
	Charge(ctx context.Context, req models.ChargeRequest) (*models.ChargeResponse, error)
}

type TicketIssuer interface {
	IssueTickets(order models.Order) ([]models.Ticket, error)
}

type TripSource interface {
	GetTrip(ctx context.Context, tripID string) (*models.Trip, error)
}

var (
	ErrSessionNotFound = errors.New("checkout session not found")
	ErrSeatsLocked     = errors.New("one or more seats already locked")
)

// GatewayError wraps a failed or errored gateway round trip so the API
// layer can tell a declined payment from a validation problem.
type GatewayError struct {
	Err error
}

func (e *GatewayError) Error() string { return "payment gateway: " + e.Err.Error() }
func (e *GatewayError) Unwrap() error { return e.Err }

// BookingService owns the live checkout sessions and drives each one
// through the funnel, talking to the order store, the seat locks, the
// payment gateway and the event stream on the way out.
type BookingService struct {
	DB      DBLayer
	Locks   SeatLock
	Events  EventPublisher
	Gateway Gateway
	Tickets TicketIssuer
	Trips   TripSource
	Logger  *logger.Logger

	ServiceFee float64

	// Seed source for catalog generation, injectable for tests.
	SeedFn func() int64

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewBookingService(db DBLayer, locks SeatLock, events EventPublisher, gateway Gateway, tickets TicketIssuer, trips TripSource, log *logger.Logger) *BookingService {
	return &BookingService{
		DB:       db,
		Locks:    locks,
		Events:   events,
		Gateway:  gateway,
		Tickets:  tickets,
		Trips:    trips,
		Logger:   log,
		SeedFn:   func() int64 { return time.Now().UnixNano() },
		sessions: make(map[string]*Session),
	}
}

// StartSession opens a fresh checkout for a trip. A new trip context
// always means a new session, so the selection starts empty.
func (s *BookingService) StartSession(ctx context.Context, tripID, userID string) (*Session, error) {
	trip, err := s.Trips.GetTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("trip %s not found: %w", tripID, err)
	}

	rng := rand.New(rand.NewSource(s.SeedFn()))
	catalog := seatmap.Generate(tripID, rng)

	session := NewSession(uuid.NewString(), userID, *trip, catalog, s.ServiceFee)

	s.mu.Lock()
	s.sessions[session.SessionID] = session
	s.mu.Unlock()

	s.Logger.LogBooking("SESSION_START", session.SessionID,
		fmt.Sprintf("trip=%s user=%s seats=%d", tripID, userID, catalog.Len()))
	return session, nil
}

func (s *BookingService) GetSession(sessionID string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Submit runs the PassengerAndPayment -> Confirmed transition: validate
// everything, lock the seats, charge the gateway, persist the order and
// its tickets, publish the event. Any failure after validation releases
// the locks and leaves the funnel in the payment step.
func (s *BookingService) Submit(ctx context.Context, sessionID string, card models.CardDetails) (*Confirmation, error) {
	session, err := s.GetSession(sessionID)
	if err != nil {
		return nil, err
	}

	if err := session.beginSubmit(card); err != nil {
		return nil, err
	}

	orderID := uuid.NewString()
	seats := session.SelectedSeats()
	quote := session.Quote()

	ok, err := s.Locks.LockSeats(session.Trip.TripID, seats, orderID)
	if err != nil {
		session.failSubmit()
		return nil, fmt.Errorf("redis lock error: %w", err)
	}
	if !ok {
		session.failSubmit()
		return nil, ErrSeatsLocked
	}

	resp, err := s.Gateway.Charge(ctx, models.ChargeRequest{
		OrderID: orderID,
		Amount:  quote.Total,
		Card:    card,
	})
	if err != nil {
		s.Logger.LogBooking("CHARGE_FAILED", orderID, err.Error())
		_ = s.Locks.UnlockSeats(session.Trip.TripID, seats, orderID)
		session.failSubmit()
		return nil, &GatewayError{Err: err}
	}
	if resp.Status != models.StatusSuccess {
		s.Logger.LogBooking("CHARGE_DECLINED", orderID, resp.Message)
		_ = s.Locks.UnlockSeats(session.Trip.TripID, seats, orderID)
		session.failSubmit()
		return nil, &GatewayError{Err: fmt.Errorf("charge declined: %s", resp.Message)}
	}

	order := models.Order{
		OrderID:          orderID,
		ConfirmationCode: utils.GenerateConfirmationCode(),
		UserID:           session.UserID,
		TripID:           session.Trip.TripID,
		SeatNumbers:      seats,
		Passengers:       session.Roster(),
		PricePerSeat:     quote.PricePerSeat,
		ServiceFee:       quote.ServiceFee,
		Total:            quote.Total,
		Status:           models.OrderConfirmed,
		TransactionID:    resp.TransactionID,
		CreatedAt:        time.Now(),
	}

	if err := s.DB.CreateOrder(order); err != nil {
		s.Logger.LogBooking("PERSIST_FAILED", orderID, err.Error())
		_ = s.Locks.UnlockSeats(session.Trip.TripID, seats, orderID)
		session.failSubmit()
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	if _, err := s.Tickets.IssueTickets(order); err != nil {
		// The order stands; ticket issuance can be retried from the
		// order record.
		s.Logger.Error("BOOKING", fmt.Sprintf("ticket issuance failed for order %s: %v", orderID, err))
	}

	if err := s.Events.PublishOrderConfirmed(order); err != nil {
		s.Logger.Error("KAFKA", fmt.Sprintf("publish error (order confirmed): %v", err))
	}

	conf := &Confirmation{
		OrderID:          order.OrderID,
		ConfirmationCode: order.ConfirmationCode,
		TransactionID:    order.TransactionID,
		SeatNumbers:      order.SeatNumbers,
		Passengers:       order.Passengers,
		Total:            order.Total,
	}
	session.completeSubmit(conf)

	s.Logger.LogBooking("CONFIRMED", orderID,
		fmt.Sprintf("code=%s seats=%v total=%.2f", order.ConfirmationCode, order.SeatNumbers, order.Total))
	return conf, nil
}

func (s *BookingService) GetOrder(orderID string) (*models.Order, error) {
	return s.DB.GetOrderByID(orderID)
}

// OrderHistory returns a user's orders with their boarding passes,
// newest first.
func (s *BookingService) OrderHistory(userID string) ([]models.OrderWithTickets, error) {
	return s.DB.GetOrdersWithTicketsByUserID(userID)
}

// CancelOrder releases a confirmed order's seats and publishes the
// cancellation.
func (s *BookingService) CancelOrder(orderID string) error {
	order, err := s.DB.GetOrderByID(orderID)
	if err != nil {
		return fmt.Errorf("order %s not found: %w", orderID, err)
	}
	if order.Status != models.OrderConfirmed {
		return errors.New("cannot cancel a non-confirmed order")
	}

	order.Status = models.OrderCancelled
	if err := s.DB.UpdateOrder(*order); err != nil {
		return fmt.Errorf("failed to cancel order %s: %w", orderID, err)
	}

	if err := s.Locks.UnlockSeats(order.TripID, order.SeatNumbers, order.OrderID); err != nil {
		s.Logger.Error("REDIS", fmt.Sprintf("failed to unlock seats for order %s: %v", orderID, err))
	}
	if err := s.Events.PublishOrderCancelled(*order); err != nil {
		s.Logger.Error("KAFKA", fmt.Sprintf("publish error (order cancelled): %v", err))
	}
	return nil
}
