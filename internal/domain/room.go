package domain

import (
	"fmt"
	"strings"
	"time"
)

// Room is a screening room. It owns its seats; a seat exists in exactly one
// room and is addressed by row label plus number, unique within the room.
//
// Fields:
//  ID     – primary key identifier.
//  Number – room number, unique across the cinema.
//  Name   – display name.
//  Seats  – seat catalog, populated on detailed loads.
type Room struct {
	ID        uint64    `json:"id"`
	Number    uint32    `json:"number"`
	Name      string    `json:"name"`
	Seats     []Seat    `json:"seats,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks the room's required fields before persistence.
func (r *Room) Validate() error {
	if r.Number == 0 {
		return fmt.Errorf("%w: room number must be positive", ErrValidation)
	}
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: room name is required", ErrValidation)
	}
	return nil
}

// SeatByID resolves a seat from the room's loaded seat collection. The
// boolean is false when the seat does not belong to this room.
func (r *Room) SeatByID(id uint64) (Seat, bool) {
	for _, s := range r.Seats {
		if s.ID == id {
			return s, true
		}
	}
	return Seat{}, false
}

// Seat is a physical seat in a room. Occupancy is never stored on the seat:
// the same seat can be free for one session and taken for another, so
// availability is derived per session from ticket-seat associations.
//
// Fields:
//  ID         – primary key identifier.
//  RoomID     – owning room.
//  RowLabel   – row letter (A, B, ..., AA).
//  Number     – position within the row, 1-based.
//  SeatTypeID – pricing tier reference.
type Seat struct {
	ID         uint64 `json:"id"`
	RoomID     uint64 `json:"room_id"`
	RowLabel   string `json:"row_label"`
	Number     uint32 `json:"number"`
	SeatTypeID uint64 `json:"seat_type_id"`
}

// Validate checks the seat's required fields before persistence.
func (s *Seat) Validate() error {
	if strings.TrimSpace(s.RowLabel) == "" {
		return fmt.Errorf("%w: seat row label is required", ErrValidation)
	}
	if s.Number == 0 {
		return fmt.Errorf("%w: seat number must be positive", ErrValidation)
	}
	if s.SeatTypeID == 0 {
		return fmt.Errorf("%w: seat type id must be positive", ErrValidation)
	}
	return nil
}

// Label renders the seat position as row+number, e.g. "A12".
func (s Seat) Label() string {
	return fmt.Sprintf("%s%d", s.RowLabel, s.Number)
}
