package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/guilhermereis1k/oscar-cinema/internal/domain"
)

// TicketRepo manages persistence for tickets and their ticket-seats.
//
// The ticket_seats table carries a UNIQUE (session_id, seat_id) constraint.
// The booking flow's in-memory availability check is advisory; this
// constraint is what actually prevents two concurrent bookings of the same
// seat, and a violation on commit is surfaced as domain.ErrSeatOccupied.
type TicketRepo struct {
	db *sql.DB
}

// NewTicketRepo constructs a TicketRepo with the given DB handle.
func NewTicketRepo(db *sql.DB) *TicketRepo {
	return &TicketRepo{db: db}
}

// Create persists a ticket and all of its ticket-seats as a single unit of
// work. On success the generated ticket ID is populated. When another
// booking grabbed one of the seats between the availability check and this
// commit, the unique constraint fires and domain.ErrSeatOccupied is
// returned with nothing written.
func (r *TicketRepo) Create(ctx context.Context, t *domain.Ticket) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	const insTicket = `INSERT INTO tickets (reference, user_id, movie_id, room_id, session_id, payment_method, payment_status, paid, total_cents, created_at)
	                   VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, insTicket,
		t.Reference, t.UserID, t.MovieID, t.RoomID, t.SessionID,
		string(t.PaymentMethod), string(t.PaymentStatus), t.Paid, int64(t.Total), t.CreatedAt)
	if err != nil {
		if isMySQLErr(err, mysqlNoReferencedRow) {
			return fmt.Errorf("%w: session %d", domain.ErrNotFound, t.SessionID)
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)

	if len(t.Seats) == 0 {
		return fmt.Errorf("%w: ticket has no seats", domain.ErrValidation)
	}
	query := `INSERT INTO ticket_seats (ticket_id, session_id, seat_id, ticket_type, price_cents) VALUES `
	args := make([]interface{}, 0, len(t.Seats)*5)
	for i := range t.Seats {
		t.Seats[i].TicketID = t.ID
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?)"
		args = append(args, t.ID, t.Seats[i].SessionID, t.Seats[i].SeatID, string(t.Seats[i].Type), int64(t.Seats[i].Price))
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		if isMySQLErr(err, mysqlDuplicateEntry) {
			return domain.ErrSeatOccupied
		}
		if isMySQLErr(err, mysqlNoReferencedRow) {
			return fmt.Errorf("%w: seat", domain.ErrNotFound)
		}
		return err
	}
	return nil
}

const ticketColumns = `id, reference, user_id, movie_id, room_id, session_id, payment_method, payment_status, paid, total_cents, created_at`

func scanTicket(row interface{ Scan(...any) error }, t *domain.Ticket) error {
	return row.Scan(&t.ID, &t.Reference, &t.UserID, &t.MovieID, &t.RoomID, &t.SessionID,
		&t.PaymentMethod, &t.PaymentStatus, &t.Paid, &t.Total, &t.CreatedAt)
}

// GetDetailed fetches a ticket together with its ticket-seats. Used to
// build the booking response from persisted state rather than the
// in-memory graph.
func (r *TicketRepo) GetDetailed(ctx context.Context, id uint64) (*domain.Ticket, error) {
	const q = `SELECT ` + ticketColumns + ` FROM tickets WHERE id = ?`
	var t domain.Ticket
	if err := scanTicket(r.db.QueryRowContext(ctx, q, id), &t); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: ticket %d", domain.ErrNotFound, id)
		}
		return nil, err
	}
	if err := r.loadSeats(ctx, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TicketRepo) loadSeats(ctx context.Context, t *domain.Ticket) error {
	const q = `SELECT ticket_id, session_id, seat_id, ticket_type, price_cents
	           FROM ticket_seats WHERE ticket_id = ? ORDER BY seat_id`
	rows, err := r.db.QueryContext(ctx, q, t.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var ts domain.TicketSeat
		if err := rows.Scan(&ts.TicketID, &ts.SessionID, &ts.SeatID, &ts.Type, &ts.Price); err != nil {
			return err
		}
		t.Seats = append(t.Seats, ts)
	}
	return rows.Err()
}

// ListByUser returns all tickets of a user, newest first, with seats.
func (r *TicketRepo) ListByUser(ctx context.Context, userID uint64) ([]domain.Ticket, error) {
	const q = `SELECT ` + ticketColumns + ` FROM tickets WHERE user_id = ? ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var tickets []domain.Ticket
	for rows.Next() {
		var t domain.Ticket
		if err := scanTicket(rows, &t); err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range tickets {
		if err := r.loadSeats(ctx, &tickets[i]); err != nil {
			return nil, err
		}
	}
	return tickets, nil
}

// UpdatePaymentStatus persists a payment state transition.
func (r *TicketRepo) UpdatePaymentStatus(ctx context.Context, id uint64, status domain.PaymentStatus, paid bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tickets SET payment_status = ?, paid = ? WHERE id = ?`, string(status), paid, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM tickets WHERE id = ?`, id).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("%w: ticket %d", domain.ErrNotFound, id)
			}
			return err
		}
	}
	return nil
}
