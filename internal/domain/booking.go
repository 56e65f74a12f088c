package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SeatSelection is one (seat, discount category) pair of a booking request.
type SeatSelection struct {
	SeatID uint64     `json:"seat_id"`
	Type   TicketType `json:"ticket_type"`
}

// BuildTicket assembles a complete ticket for a booking request against an
// already loaded session graph. It performs no I/O: the session must carry
// its room (with seats) and its tickets (with ticket-seats), and the
// exhibition type plus seat type catalog must be supplied by the caller.
//
// Preconditions are checked fail-fast, in order:
//  1. at least one seat is selected and no seat is selected twice;
//  2. the session is not finished;
//  3. every requested seat is free (disjoint from the occupied set);
//  4. every requested seat belongs to the session's room;
//  5. every seat's pricing tier is known.
//
// Each ticket-seat price is the exhibition price plus the seat tier price
// with the ticket-type multiplier applied; attaching seats recomputes the
// ticket total as their sum.
func BuildTicket(s *Session, userID uint64, method PaymentMethod, selections []SeatSelection, exhibition *ExhibitionType, seatTypes map[uint64]SeatType, now time.Time) (*Ticket, error) {
	if s == nil || s.Room == nil {
		return nil, fmt.Errorf("%w: session must be loaded with its room and tickets", ErrValidation)
	}
	if userID == 0 {
		return nil, fmt.Errorf("%w: user id must be positive", ErrValidation)
	}
	if _, err := ParsePaymentMethod(string(method)); err != nil {
		return nil, err
	}
	if len(selections) == 0 {
		return nil, fmt.Errorf("%w: at least one seat must be selected", ErrValidation)
	}
	if exhibition == nil {
		return nil, fmt.Errorf("%w: exhibition type", ErrNotFound)
	}
	if s.IsFinished {
		return nil, ErrSessionFinished
	}

	seatIDs := make([]uint64, 0, len(selections))
	seen := make(map[uint64]struct{}, len(selections))
	for _, sel := range selections {
		if _, dup := seen[sel.SeatID]; dup {
			return nil, fmt.Errorf("%w: seat %d selected twice", ErrValidation, sel.SeatID)
		}
		seen[sel.SeatID] = struct{}{}
		seatIDs = append(seatIDs, sel.SeatID)
	}
	if !s.SeatsAvailable(seatIDs) {
		return nil, ErrSeatOccupied
	}

	t := &Ticket{
		Reference:     uuid.NewString(),
		UserID:        userID,
		MovieID:       s.MovieID,
		RoomID:        s.RoomID,
		SessionID:     s.ID,
		PaymentMethod: method,
		PaymentStatus: PaymentPending,
		Paid:          false,
		CreatedAt:     now.UTC(),
	}
	for _, sel := range selections {
		seat, ok := s.Room.SeatByID(sel.SeatID)
		if !ok {
			return nil, fmt.Errorf("%w: seat %d", ErrSeatNotInRoom, sel.SeatID)
		}
		tier, ok := seatTypes[seat.SeatTypeID]
		if !ok {
			return nil, fmt.Errorf("%w: seat type %d", ErrNotFound, seat.SeatTypeID)
		}
		base, err := CalculateSeatPrice(exhibition.Price, tier.Price)
		if err != nil {
			return nil, err
		}
		price, err := ApplyTicketType(base, sel.Type)
		if err != nil {
			return nil, err
		}
		ts, err := NewTicketSeat(s.ID, seat.ID, sel.Type, price)
		if err != nil {
			return nil, err
		}
		if err := t.AddSeat(ts); err != nil {
			return nil, err
		}
	}
	return t, nil
}
