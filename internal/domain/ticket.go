package domain

import (
	"fmt"
	"time"
)

// Ticket is one booking transaction: a set of seats bought for a session in
// a single request. The ticket owns its ticket-seats; Total is always the
// sum of their prices and is recomputed on every add or remove, never set
// directly.
//
// Fields:
//  ID            – primary key identifier.
//  Reference     – external reference code (UUID) carried in responses
//                  and queue events.
//  UserID        – buyer.
//  MovieID       – denormalized movie reference for quick lookups.
//  RoomID        – denormalized room reference for quick lookups.
//  SessionID     – owning session (cascade delete).
//  PaymentMethod – how the ticket is paid.
//  PaymentStatus – stored payment state, starts at PENDING.
//  Paid          – set when the payment status reaches APPROVED.
//  Total         – derived sum of seat prices.
//  Seats         – owned ticket-seat records.
type Ticket struct {
	ID            uint64        `json:"id"`
	Reference     string        `json:"reference"`
	UserID        uint64        `json:"user_id"`
	MovieID       uint64        `json:"movie_id"`
	RoomID        uint64        `json:"room_id"`
	SessionID     uint64        `json:"session_id"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	Paid          bool          `json:"paid"`
	Total         Money         `json:"total_value"`
	Seats         []TicketSeat  `json:"seats"`
	CreatedAt     time.Time     `json:"date"`
}

// AddSeat attaches a ticket-seat and recomputes the total. Adding the same
// seat twice is rejected.
func (t *Ticket) AddSeat(ts TicketSeat) error {
	for _, existing := range t.Seats {
		if existing.SeatID == ts.SeatID {
			return fmt.Errorf("%w: seat %d added twice", ErrValidation, ts.SeatID)
		}
	}
	t.Seats = append(t.Seats, ts)
	t.recomputeTotal()
	return nil
}

// RemoveSeat detaches the ticket-seat for the given seat ID and recomputes
// the total. It reports whether a seat was removed.
func (t *Ticket) RemoveSeat(seatID uint64) bool {
	for i, ts := range t.Seats {
		if ts.SeatID == seatID {
			t.Seats = append(t.Seats[:i], t.Seats[i+1:]...)
			t.recomputeTotal()
			return true
		}
	}
	return false
}

func (t *Ticket) recomputeTotal() {
	var total Money
	for _, ts := range t.Seats {
		total += ts.Price
	}
	t.Total = total
}

// SetPaymentStatus transitions the stored payment state. Paid mirrors
// whether the status is APPROVED.
func (t *Ticket) SetPaymentStatus(status PaymentStatus) error {
	if _, err := ParsePaymentStatus(string(status)); err != nil {
		return err
	}
	t.PaymentStatus = status
	t.Paid = status == PaymentApproved
	return nil
}

// TicketSeat links a ticket to one seat of the session's room, together
// with the discount category and the final computed price. Its existence is
// what makes the seat occupied for the session.
type TicketSeat struct {
	TicketID  uint64     `json:"-"`
	SessionID uint64     `json:"-"`
	SeatID    uint64     `json:"seat_id"`
	Type      TicketType `json:"ticket_type"`
	Price     Money      `json:"price"`
}

// NewTicketSeat builds a ticket-seat with a guarded price.
func NewTicketSeat(sessionID, seatID uint64, ticketType TicketType, price Money) (TicketSeat, error) {
	ts := TicketSeat{SessionID: sessionID, SeatID: seatID, Type: ticketType}
	if err := ts.SetPrice(price); err != nil {
		return TicketSeat{}, err
	}
	return ts, nil
}

// SetPrice is the only way to change the final price. Non-positive values
// are rejected.
func (ts *TicketSeat) SetPrice(price Money) error {
	if price <= 0 {
		return fmt.Errorf("%w: ticket seat price must be positive", ErrValidation)
	}
	ts.Price = price
	return nil
}
