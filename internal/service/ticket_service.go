package service

import (
	"context"
	"log"
	"time"

	"github.com/guilhermereis1k/oscar-cinema/internal/domain"
	"github.com/guilhermereis1k/oscar-cinema/internal/queue"
)

// TicketStore is the persistence surface the booking flow needs.
// *repository.TicketRepo satisfies it.
type TicketStore interface {
	Create(ctx context.Context, t *domain.Ticket) error
	GetDetailed(ctx context.Context, id uint64) (*domain.Ticket, error)
	ListByUser(ctx context.Context, userID uint64) ([]domain.Ticket, error)
	UpdatePaymentStatus(ctx context.Context, id uint64, status domain.PaymentStatus, paid bool) error
}

// ExhibitionTypeStore resolves the exhibition pricing tier of a session.
type ExhibitionTypeStore interface {
	GetByID(ctx context.Context, id uint64) (*domain.ExhibitionType, error)
}

// SeatTypeStore resolves the seat pricing tier catalog.
type SeatTypeStore interface {
	Map(ctx context.Context) (map[uint64]domain.SeatType, error)
}

// PublishFunc pushes a ticket-issued event to the message broker. Publish
// failures must never fail a booking; implementations log and return.
type PublishFunc func(ctx context.Context, ev queue.TicketIssuedEvent) error

// TicketService orchestrates bookings: load the session graph, assemble
// the ticket in memory, persist it atomically, reload it for the response
// and announce it on the queue.
type TicketService struct {
	sessions    SessionStore
	tickets     TicketStore
	exhibitions ExhibitionTypeStore
	seatTypes   SeatTypeStore
	publish     PublishFunc
	now         func() time.Time
}

// NewTicketService constructs a TicketService. publish may be nil when no
// broker is configured.
func NewTicketService(sessions SessionStore, tickets TicketStore, exhibitions ExhibitionTypeStore, seatTypes SeatTypeStore, publish PublishFunc) *TicketService {
	if sessions == nil || tickets == nil || exhibitions == nil || seatTypes == nil {
		panic("nil store passed to NewTicketService")
	}
	return &TicketService{
		sessions:    sessions,
		tickets:     tickets,
		exhibitions: exhibitions,
		seatTypes:   seatTypes,
		publish:     publish,
		now:         time.Now,
	}
}

// Create books the selected seats of a session for a user. Steps run in
// order, each a hard precondition with no partial writes:
//
//  1. load the session detailed (room, seats, tickets, ticket-seats);
//  2. resolve the exhibition tier and the seat tier catalog;
//  3. assemble the ticket in memory (availability, seat-in-room and
//     pricing rules live in domain.BuildTicket);
//  4. persist ticket plus ticket-seats in one transaction — a concurrent
//     booking of the same seat loses here on the storage constraint;
//  5. reload the persisted ticket with its seats for the response.
func (s *TicketService) Create(ctx context.Context, sessionID, userID uint64, method domain.PaymentMethod, selections []domain.SeatSelection) (*domain.Ticket, error) {
	sess, err := s.sessions.GetDetailed(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	exhibition, err := s.exhibitions.GetByID(ctx, sess.ExhibitionTypeID)
	if err != nil {
		return nil, err
	}
	seatTypes, err := s.seatTypes.Map(ctx)
	if err != nil {
		return nil, err
	}
	ticket, err := domain.BuildTicket(sess, userID, method, selections, exhibition, seatTypes, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}
	issued, err := s.tickets.GetDetailed(ctx, ticket.ID)
	if err != nil {
		return nil, err
	}
	s.announce(sess, issued)
	return issued, nil
}

// announce publishes a ticket.issued event. Failures are logged, never
// surfaced: the booking is already committed.
func (s *TicketService) announce(sess *domain.Session, t *domain.Ticket) {
	if s.publish == nil {
		return
	}
	labels := make([]string, 0, len(t.Seats))
	for _, ts := range t.Seats {
		if seat, ok := sess.Room.SeatByID(ts.SeatID); ok {
			labels = append(labels, seat.Label())
		}
	}
	ev := queue.TicketIssuedEvent{
		TicketID:      t.ID,
		Reference:     t.Reference,
		UserID:        t.UserID,
		SessionID:     t.SessionID,
		MovieID:       t.MovieID,
		RoomID:        t.RoomID,
		SeatLabels:    labels,
		TotalCents:    int64(t.Total),
		PaymentMethod: string(t.PaymentMethod),
		IssuedAt:      t.CreatedAt.Format(time.RFC3339),
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.publish(ctx, ev); err != nil {
		log.Printf("ticket-service: publish ticket.issued failed: %v", err)
	}
}

// Get returns one ticket with its seats.
func (s *TicketService) Get(ctx context.Context, id uint64) (*domain.Ticket, error) {
	return s.tickets.GetDetailed(ctx, id)
}

// ListByUser returns all tickets of a user.
func (s *TicketService) ListByUser(ctx context.Context, userID uint64) ([]domain.Ticket, error) {
	return s.tickets.ListByUser(ctx, userID)
}

// SetPaymentStatus transitions a ticket's stored payment state; Paid is
// derived from the APPROVED status.
func (s *TicketService) SetPaymentStatus(ctx context.Context, id uint64, status domain.PaymentStatus) (*domain.Ticket, error) {
	t, err := s.tickets.GetDetailed(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := t.SetPaymentStatus(status); err != nil {
		return nil, err
	}
	if err := s.tickets.UpdatePaymentStatus(ctx, id, t.PaymentStatus, t.Paid); err != nil {
		return nil, err
	}
	return t, nil
}
