package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/guilhermereis1k/oscar-cinema/internal/domain"
)

// SeatTypeRepo manages persistence for seat pricing tiers.
type SeatTypeRepo struct {
	db *sql.DB
}

// NewSeatTypeRepo constructs a SeatTypeRepo with the given DB handle.
func NewSeatTypeRepo(db *sql.DB) *SeatTypeRepo {
	return &SeatTypeRepo{db: db}
}

// Create inserts a seat type. Duplicate names map to ErrDuplicate.
func (r *SeatTypeRepo) Create(ctx context.Context, st *domain.SeatType) error {
	const q = `INSERT INTO seat_types (name, price_cents) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, st.Name, int64(st.Price))
	if err != nil {
		if isMySQLErr(err, mysqlDuplicateEntry) {
			return fmt.Errorf("%w: seat type %q", ErrDuplicate, st.Name)
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	st.ID = uint64(id)
	return nil
}

// GetByID fetches one seat type.
func (r *SeatTypeRepo) GetByID(ctx context.Context, id uint64) (*domain.SeatType, error) {
	const q = `SELECT id, name, price_cents FROM seat_types WHERE id = ?`
	var st domain.SeatType
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&st.ID, &st.Name, &st.Price); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: seat type %d", domain.ErrNotFound, id)
		}
		return nil, err
	}
	return &st, nil
}

// List returns all seat types ordered by name.
func (r *SeatTypeRepo) List(ctx context.Context) ([]domain.SeatType, error) {
	const q = `SELECT id, name, price_cents FROM seat_types ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []domain.SeatType
	for rows.Next() {
		var st domain.SeatType
		if err := rows.Scan(&st.ID, &st.Name, &st.Price); err != nil {
			return nil, err
		}
		result = append(result, st)
	}
	return result, rows.Err()
}

// Map returns all seat types keyed by ID, used by the booking flow to
// resolve seat pricing tiers without per-seat queries.
func (r *SeatTypeRepo) Map(ctx context.Context) (map[uint64]domain.SeatType, error) {
	types, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	m := make(map[uint64]domain.SeatType, len(types))
	for _, st := range types {
		m[st.ID] = st
	}
	return m, nil
}

// UpdatePrice persists a price change. The caller must have gone through
// the guarded SetPrice, so only positive values reach this method.
func (r *SeatTypeRepo) UpdatePrice(ctx context.Context, id uint64, price domain.Money) error {
	res, err := r.db.ExecContext(ctx, `UPDATE seat_types SET price_cents = ? WHERE id = ?`, int64(price), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM seat_types WHERE id = ?`, id).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("%w: seat type %d", domain.ErrNotFound, id)
			}
			return err
		}
	}
	return nil
}

// Delete removes a seat type unless seats still reference it.
func (r *SeatTypeRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM seat_types WHERE id = ?`, id)
	if err != nil {
		if isMySQLErr(err, mysqlRowIsReferenced) {
			return ErrReferenced
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: seat type %d", domain.ErrNotFound, id)
	}
	return nil
}

// ExhibitionTypeRepo manages persistence for exhibition pricing tiers.
type ExhibitionTypeRepo struct {
	db *sql.DB
}

// NewExhibitionTypeRepo constructs an ExhibitionTypeRepo with the given DB handle.
func NewExhibitionTypeRepo(db *sql.DB) *ExhibitionTypeRepo {
	return &ExhibitionTypeRepo{db: db}
}

// Create inserts an exhibition type. Duplicate names map to ErrDuplicate.
func (r *ExhibitionTypeRepo) Create(ctx context.Context, et *domain.ExhibitionType) error {
	const q = `INSERT INTO exhibition_types (name, price_cents) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, et.Name, int64(et.Price))
	if err != nil {
		if isMySQLErr(err, mysqlDuplicateEntry) {
			return fmt.Errorf("%w: exhibition type %q", ErrDuplicate, et.Name)
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	et.ID = uint64(id)
	return nil
}

// GetByID fetches one exhibition type.
func (r *ExhibitionTypeRepo) GetByID(ctx context.Context, id uint64) (*domain.ExhibitionType, error) {
	const q = `SELECT id, name, price_cents FROM exhibition_types WHERE id = ?`
	var et domain.ExhibitionType
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&et.ID, &et.Name, &et.Price); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: exhibition type %d", domain.ErrNotFound, id)
		}
		return nil, err
	}
	return &et, nil
}

// List returns all exhibition types ordered by name.
func (r *ExhibitionTypeRepo) List(ctx context.Context) ([]domain.ExhibitionType, error) {
	const q = `SELECT id, name, price_cents FROM exhibition_types ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []domain.ExhibitionType
	for rows.Next() {
		var et domain.ExhibitionType
		if err := rows.Scan(&et.ID, &et.Name, &et.Price); err != nil {
			return nil, err
		}
		result = append(result, et)
	}
	return result, rows.Err()
}

// UpdatePrice persists a price change for an exhibition type.
func (r *ExhibitionTypeRepo) UpdatePrice(ctx context.Context, id uint64, price domain.Money) error {
	res, err := r.db.ExecContext(ctx, `UPDATE exhibition_types SET price_cents = ? WHERE id = ?`, int64(price), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM exhibition_types WHERE id = ?`, id).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("%w: exhibition type %d", domain.ErrNotFound, id)
			}
			return err
		}
	}
	return nil
}

// Delete removes an exhibition type unless sessions still reference it.
func (r *ExhibitionTypeRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM exhibition_types WHERE id = ?`, id)
	if err != nil {
		if isMySQLErr(err, mysqlRowIsReferenced) {
			return ErrReferenced
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: exhibition type %d", domain.ErrNotFound, id)
	}
	return nil
}
