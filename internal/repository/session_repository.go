package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/guilhermereis1k/oscar-cinema/internal/domain"
)

// SessionRepo manages persistence for sessions and the loads the booking
// flow depends on. The "detailed" load populates the session's room (with
// seats) and its tickets (with ticket-seats) so availability and pricing
// can run on the in-memory graph.
type SessionRepo struct {
	db *sql.DB
}

// NewSessionRepo constructs a SessionRepo with the given DB handle.
func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

const sessionColumns = `id, movie_id, room_id, exhibition_type_id, starts_at, duration_min, is_finished, created_at, updated_at`

func scanSession(row interface{ Scan(...any) error }, s *domain.Session) error {
	return row.Scan(&s.ID, &s.MovieID, &s.RoomID, &s.ExhibitionTypeID, &s.StartsAt, &s.DurationMin, &s.IsFinished, &s.CreatedAt, &s.UpdatedAt)
}

// Create inserts a session and populates its generated ID and timestamps.
// An unknown movie, room or exhibition type maps to domain.ErrNotFound.
func (r *SessionRepo) Create(ctx context.Context, s *domain.Session) error {
	const q = `INSERT INTO sessions (movie_id, room_id, exhibition_type_id, starts_at, duration_min) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.MovieID, s.RoomID, s.ExhibitionTypeID, s.StartsAt, s.DurationMin)
	if err != nil {
		if isMySQLErr(err, mysqlNoReferencedRow) {
			return fmt.Errorf("%w: referenced movie, room or exhibition type", domain.ErrNotFound)
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	const sel = `SELECT ` + sessionColumns + ` FROM sessions WHERE id = ?`
	return scanSession(r.db.QueryRowContext(ctx, sel, s.ID), s)
}

// GetByID fetches a bare session row without its graph.
func (r *SessionRepo) GetByID(ctx context.Context, id uint64) (*domain.Session, error) {
	const q = `SELECT ` + sessionColumns + ` FROM sessions WHERE id = ?`
	var s domain.Session
	if err := scanSession(r.db.QueryRowContext(ctx, q, id), &s); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: session %d", domain.ErrNotFound, id)
		}
		return nil, err
	}
	return &s, nil
}

// GetDetailed fetches a session with its room, the room's seats, and every
// ticket with its ticket-seats. Booking and seat-map requests always go
// through this load so occupancy can be derived without further queries.
func (r *SessionRepo) GetDetailed(ctx context.Context, id uint64) (*domain.Session, error) {
	s, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	const roomQ = `SELECT id, number, name, created_at, updated_at FROM rooms WHERE id = ?`
	var room domain.Room
	if err := r.db.QueryRowContext(ctx, roomQ, s.RoomID).
		Scan(&room.ID, &room.Number, &room.Name, &room.CreatedAt, &room.UpdatedAt); err != nil {
		return nil, err
	}
	const seatQ = `SELECT id, room_id, row_label, seat_number, seat_type_id
	               FROM seats WHERE room_id = ? ORDER BY row_label, seat_number`
	seatRows, err := r.db.QueryContext(ctx, seatQ, room.ID)
	if err != nil {
		return nil, err
	}
	defer seatRows.Close()
	for seatRows.Next() {
		var seat domain.Seat
		if err := seatRows.Scan(&seat.ID, &seat.RoomID, &seat.RowLabel, &seat.Number, &seat.SeatTypeID); err != nil {
			return nil, err
		}
		room.Seats = append(room.Seats, seat)
	}
	if err := seatRows.Err(); err != nil {
		return nil, err
	}
	s.Room = &room

	const ticketQ = `SELECT id, reference, user_id, movie_id, room_id, session_id, payment_method, payment_status, paid, total_cents, created_at
	                 FROM tickets WHERE session_id = ? ORDER BY id`
	ticketRows, err := r.db.QueryContext(ctx, ticketQ, id)
	if err != nil {
		return nil, err
	}
	defer ticketRows.Close()
	byID := make(map[uint64]int)
	for ticketRows.Next() {
		var t domain.Ticket
		if err := ticketRows.Scan(&t.ID, &t.Reference, &t.UserID, &t.MovieID, &t.RoomID, &t.SessionID,
			&t.PaymentMethod, &t.PaymentStatus, &t.Paid, &t.Total, &t.CreatedAt); err != nil {
			return nil, err
		}
		byID[t.ID] = len(s.Tickets)
		s.Tickets = append(s.Tickets, t)
	}
	if err := ticketRows.Err(); err != nil {
		return nil, err
	}
	if len(s.Tickets) == 0 {
		return s, nil
	}

	const seatLinkQ = `SELECT ts.ticket_id, ts.session_id, ts.seat_id, ts.ticket_type, ts.price_cents
	                   FROM ticket_seats ts
	                   JOIN tickets t ON t.id = ts.ticket_id
	                   WHERE t.session_id = ?`
	linkRows, err := r.db.QueryContext(ctx, seatLinkQ, id)
	if err != nil {
		return nil, err
	}
	defer linkRows.Close()
	for linkRows.Next() {
		var ts domain.TicketSeat
		if err := linkRows.Scan(&ts.TicketID, &ts.SessionID, &ts.SeatID, &ts.Type, &ts.Price); err != nil {
			return nil, err
		}
		if i, ok := byID[ts.TicketID]; ok {
			s.Tickets[i].Seats = append(s.Tickets[i].Seats, ts)
		}
	}
	return s, linkRows.Err()
}

// FindOverlapping returns the non-finished sessions of a room whose
// interval overlaps [start, end). Intervals are half-open: a session ending
// exactly at start does not overlap. excludeID skips the session being
// updated so it cannot collide with itself; pass zero for creates.
func (r *SessionRepo) FindOverlapping(ctx context.Context, roomID uint64, start, end time.Time, excludeID uint64) ([]domain.Session, error) {
	const q = `SELECT ` + sessionColumns + `
	           FROM sessions
	           WHERE room_id = ?
	             AND id <> ?
	             AND is_finished = 0
	             AND starts_at < ?
	             AND DATE_ADD(starts_at, INTERVAL duration_min MINUTE) > ?`
	rows, err := r.db.QueryContext(ctx, q, roomID, excludeID, end, start)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var overlaps []domain.Session
	for rows.Next() {
		var s domain.Session
		if err := scanSession(rows, &s); err != nil {
			return nil, err
		}
		overlaps = append(overlaps, s)
	}
	return overlaps, rows.Err()
}

// List returns sessions ordered by start time. When roomID is non-zero the
// result is limited to that room.
func (r *SessionRepo) List(ctx context.Context, roomID uint64) ([]domain.Session, error) {
	q := `SELECT ` + sessionColumns + ` FROM sessions ORDER BY starts_at`
	args := []interface{}{}
	if roomID != 0 {
		q = `SELECT ` + sessionColumns + ` FROM sessions WHERE room_id = ? ORDER BY starts_at`
		args = append(args, roomID)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []domain.Session
	for rows.Next() {
		var s domain.Session
		if err := scanSession(rows, &s); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// Update rewrites the schedulable attributes of a session.
func (r *SessionRepo) Update(ctx context.Context, s *domain.Session) error {
	const q = `UPDATE sessions
	           SET movie_id = ?, room_id = ?, exhibition_type_id = ?, starts_at = ?, duration_min = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, s.MovieID, s.RoomID, s.ExhibitionTypeID, s.StartsAt, s.DurationMin, s.ID)
	if err != nil {
		if isMySQLErr(err, mysqlNoReferencedRow) {
			return fmt.Errorf("%w: referenced movie, room or exhibition type", domain.ErrNotFound)
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM sessions WHERE id = ?`, s.ID).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("%w: session %d", domain.ErrNotFound, s.ID)
			}
			return err
		}
	}
	return nil
}

// MarkFinished flips the one-way finished flag in storage.
func (r *SessionRepo) MarkFinished(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET is_finished = 1, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND is_finished = 0`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var finished bool
		if err := r.db.QueryRowContext(ctx, `SELECT is_finished FROM sessions WHERE id = ?`, id).Scan(&finished); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("%w: session %d", domain.ErrNotFound, id)
			}
			return err
		}
		return domain.ErrSessionFinished
	}
	return nil
}

// Delete removes a session; its tickets and their ticket-seats go with it
// through the cascade foreign keys.
func (r *SessionRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: session %d", domain.ErrNotFound, id)
	}
	return nil
}
