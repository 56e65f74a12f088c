package domain

import (
	"fmt"
	"time"
)

// MinStartLead is the minimum gap between "now" and a session's start time
// at creation or update.
const MinStartLead = 30 * time.Minute

// Session is the scheduling unit: a movie shown in a room with an
// exhibition type, starting at a point in time for a number of minutes.
// The end time is always derived from start plus duration. A session owns
// its tickets; deleting a session cascades to them.
//
// Fields:
//  ID               – primary key identifier.
//  MovieID          – movie being shown (restrict delete).
//  RoomID           – room hosting the session (restrict delete).
//  ExhibitionTypeID – pricing tier of the exhibition (restrict delete).
//  StartsAt         – UTC start time.
//  DurationMin      – running time in minutes, positive.
//  IsFinished       – one-way flag set by Finish; finished sessions no
//                     longer participate in conflict checks.
//  Room             – room with seats, populated on detailed loads.
//  Tickets          – owned tickets with their seats, populated on
//                     detailed loads.
type Session struct {
	ID               uint64    `json:"id"`
	MovieID          uint64    `json:"movie_id"`
	RoomID           uint64    `json:"room_id"`
	ExhibitionTypeID uint64    `json:"exhibition_type_id"`
	StartsAt         time.Time `json:"starts_at"`
	DurationMin      uint32    `json:"duration_min"`
	IsFinished       bool      `json:"is_finished"`
	Room             *Room     `json:"room,omitempty"`
	Tickets          []Ticket  `json:"tickets,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewSession validates and builds a session. References must be positive,
// duration must be positive and the start time must be at least MinStartLead
// in the future relative to now.
func NewSession(movieID, roomID, exhibitionTypeID uint64, startsAt time.Time, durationMin uint32, now time.Time) (*Session, error) {
	s := &Session{
		MovieID:          movieID,
		RoomID:           roomID,
		ExhibitionTypeID: exhibitionTypeID,
		StartsAt:         startsAt.UTC(),
		DurationMin:      durationMin,
	}
	if err := s.validate(now); err != nil {
		return nil, err
	}
	return s, nil
}

// Reschedule applies new attributes to an existing session, re-running the
// same validation as NewSession. Finished sessions cannot be rescheduled.
func (s *Session) Reschedule(movieID, roomID, exhibitionTypeID uint64, startsAt time.Time, durationMin uint32, now time.Time) error {
	if s.IsFinished {
		return ErrSessionFinished
	}
	next := Session{
		MovieID:          movieID,
		RoomID:           roomID,
		ExhibitionTypeID: exhibitionTypeID,
		StartsAt:         startsAt.UTC(),
		DurationMin:      durationMin,
	}
	if err := next.validate(now); err != nil {
		return err
	}
	s.MovieID = next.MovieID
	s.RoomID = next.RoomID
	s.ExhibitionTypeID = next.ExhibitionTypeID
	s.StartsAt = next.StartsAt
	s.DurationMin = next.DurationMin
	return nil
}

func (s *Session) validate(now time.Time) error {
	if s.MovieID == 0 {
		return fmt.Errorf("%w: movie id must be positive", ErrValidation)
	}
	if s.RoomID == 0 {
		return fmt.Errorf("%w: room id must be positive", ErrValidation)
	}
	if s.ExhibitionTypeID == 0 {
		return fmt.Errorf("%w: exhibition type id must be positive", ErrValidation)
	}
	if s.DurationMin == 0 {
		return fmt.Errorf("%w: duration must be positive", ErrValidation)
	}
	if s.StartsAt.Before(now.UTC().Add(MinStartLead)) {
		return fmt.Errorf("%w: session must start at least %d minutes from now", ErrValidation, int(MinStartLead.Minutes()))
	}
	return nil
}

// EndsAt derives the end of the interval: start plus duration.
func (s *Session) EndsAt() time.Time {
	return s.StartsAt.Add(time.Duration(s.DurationMin) * time.Minute)
}

// ConflictsWith reports whether the session's interval overlaps [start, end).
// Intervals are half-open, so a session ending exactly when another starts
// does not conflict. Finished sessions never conflict: "finished" is an
// explicit business signal that frees the room regardless of wall-clock time.
func (s *Session) ConflictsWith(start, end time.Time) bool {
	if s.IsFinished {
		return false
	}
	return s.StartsAt.Before(end) && start.Before(s.EndsAt())
}

// Finish marks the session finished. The transition is one-way; finishing
// an already finished session is an error. Tickets and seats are untouched.
func (s *Session) Finish() error {
	if s.IsFinished {
		return ErrSessionFinished
	}
	s.IsFinished = true
	return nil
}

// OccupiedSeatIDs unions the seat IDs of every ticket-seat across every
// ticket attached to the session. It is a pure function of the loaded
// ticket graph; the caller must have loaded the session detailed.
func (s *Session) OccupiedSeatIDs() map[uint64]struct{} {
	occupied := make(map[uint64]struct{})
	for i := range s.Tickets {
		for _, ts := range s.Tickets[i].Seats {
			occupied[ts.SeatID] = struct{}{}
		}
	}
	return occupied
}

// SeatsAvailable reports whether every requested seat ID is free for this
// session, i.e. disjoint from the occupied set. An empty request is
// vacuously available; booking rejects empty selections upstream.
func (s *Session) SeatsAvailable(seatIDs []uint64) bool {
	occupied := s.OccupiedSeatIDs()
	for _, id := range seatIDs {
		if _, taken := occupied[id]; taken {
			return false
		}
	}
	return true
}

// SeatStatus pairs a seat with its derived occupancy for this session.
type SeatStatus struct {
	Seat     Seat `json:"seat"`
	Occupied bool `json:"occupied"`
}

// SeatMap produces the per-seat occupancy view used by the public seat map
// endpoint: every seat of the session's room flagged with whether its ID is
// in the occupied set. Requires a detailed load (room with seats).
func (s *Session) SeatMap() []SeatStatus {
	if s.Room == nil {
		return nil
	}
	occupied := s.OccupiedSeatIDs()
	statuses := make([]SeatStatus, 0, len(s.Room.Seats))
	for _, seat := range s.Room.Seats {
		_, taken := occupied[seat.ID]
		statuses = append(statuses, SeatStatus{Seat: seat, Occupied: taken})
	}
	return statuses
}
