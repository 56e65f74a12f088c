package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/guilhermereis1k/oscar-cinema/internal/domain"
)

// RoomRepo manages persistence for rooms and their seat catalogs.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo constructs a RoomRepo with the given DB handle.
func NewRoomRepo(db *sql.DB) *RoomRepo {
	return &RoomRepo{db: db}
}

// Create inserts a room. A duplicate room number maps to ErrDuplicate.
func (r *RoomRepo) Create(ctx context.Context, room *domain.Room) error {
	const q = `INSERT INTO rooms (number, name) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, room.Number, room.Name)
	if err != nil {
		if isMySQLErr(err, mysqlDuplicateEntry) {
			return fmt.Errorf("%w: room number %d", ErrDuplicate, room.Number)
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	room.ID = uint64(id)
	const sel = `SELECT id, number, name, created_at, updated_at FROM rooms WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, room.ID).
		Scan(&room.ID, &room.Number, &room.Name, &room.CreatedAt, &room.UpdatedAt)
}

// GetByID fetches a room without its seats.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*domain.Room, error) {
	const q = `SELECT id, number, name, created_at, updated_at FROM rooms WHERE id = ?`
	var room domain.Room
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&room.ID, &room.Number, &room.Name, &room.CreatedAt, &room.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: room %d", domain.ErrNotFound, id)
		}
		return nil, err
	}
	return &room, nil
}

// GetWithSeats fetches a room together with its full seat catalog ordered
// by row label then seat number.
func (r *RoomRepo) GetWithSeats(ctx context.Context, id uint64) (*domain.Room, error) {
	room, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	seats, err := r.SeatsByRoom(ctx, id)
	if err != nil {
		return nil, err
	}
	room.Seats = seats
	return room, nil
}

// List returns all rooms ordered by number, without seats.
func (r *RoomRepo) List(ctx context.Context) ([]domain.Room, error) {
	const q = `SELECT id, number, name, created_at, updated_at FROM rooms ORDER BY number`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []domain.Room
	for rows.Next() {
		var room domain.Room
		if err := rows.Scan(&room.ID, &room.Number, &room.Name, &room.CreatedAt, &room.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, room)
	}
	return result, rows.Err()
}

// Update rewrites the room's number and name.
func (r *RoomRepo) Update(ctx context.Context, room *domain.Room) error {
	const q = `UPDATE rooms SET number = ?, name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, room.Number, room.Name, room.ID)
	if err != nil {
		if isMySQLErr(err, mysqlDuplicateEntry) {
			return fmt.Errorf("%w: room number %d", ErrDuplicate, room.Number)
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM rooms WHERE id = ?`, room.ID).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("%w: room %d", domain.ErrNotFound, room.ID)
			}
			return err
		}
	}
	return nil
}

// Delete removes a room and its seats. Sessions referencing the room block
// the delete via the restrict FK.
func (r *RoomRepo) Delete(ctx context.Context, id uint64) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()
	if _, err = tx.ExecContext(ctx, `DELETE FROM seats WHERE room_id = ?`, id); err != nil {
		if isMySQLErr(err, mysqlRowIsReferenced) {
			return ErrReferenced
		}
		return err
	}
	var res sql.Result
	if res, err = tx.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id); err != nil {
		if isMySQLErr(err, mysqlRowIsReferenced) {
			return ErrReferenced
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = fmt.Errorf("%w: room %d", domain.ErrNotFound, id)
	}
	return err
}

// SeatsByRoom retrieves all seats of a room ordered by row then number.
func (r *RoomRepo) SeatsByRoom(ctx context.Context, roomID uint64) ([]domain.Seat, error) {
	const q = `SELECT id, room_id, row_label, seat_number, seat_type_id
	           FROM seats
	           WHERE room_id = ?
	           ORDER BY row_label, seat_number`
	rows, err := r.db.QueryContext(ctx, q, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var seats []domain.Seat
	for rows.Next() {
		var s domain.Seat
		if err := rows.Scan(&s.ID, &s.RoomID, &s.RowLabel, &s.Number, &s.SeatTypeID); err != nil {
			return nil, err
		}
		seats = append(seats, s)
	}
	return seats, rows.Err()
}

// CreateSeats inserts multiple seats for a room in a single statement.
// Duplicate (row, number) positions map to ErrDuplicate; an unknown seat
// type maps to domain.ErrNotFound.
func (r *RoomRepo) CreateSeats(ctx context.Context, roomID uint64, seats []domain.Seat) error {
	if len(seats) == 0 {
		return nil
	}
	query := `INSERT INTO seats (room_id, row_label, seat_number, seat_type_id) VALUES `
	args := make([]interface{}, 0, len(seats)*4)
	for i, s := range seats {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?)"
		args = append(args, roomID, s.RowLabel, s.Number, s.SeatTypeID)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isMySQLErr(err, mysqlDuplicateEntry) {
			return fmt.Errorf("%w: seat position already exists in room %d", ErrDuplicate, roomID)
		}
		if isMySQLErr(err, mysqlNoReferencedRow) {
			return fmt.Errorf("%w: seat type", domain.ErrNotFound)
		}
		return err
	}
	return nil
}

// DeleteSeat removes one seat. Historical bookings referencing the seat
// block the delete via the restrict FK on ticket_seats.
func (r *RoomRepo) DeleteSeat(ctx context.Context, roomID, seatID uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM seats WHERE id = ? AND room_id = ?`, seatID, roomID)
	if err != nil {
		if isMySQLErr(err, mysqlRowIsReferenced) {
			return ErrReferenced
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: seat %d", domain.ErrNotFound, seatID)
	}
	return nil
}
