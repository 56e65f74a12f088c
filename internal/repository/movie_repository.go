package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/guilhermereis1k/oscar-cinema/internal/domain"
)

// MovieRepo manages persistence for the movie catalog.
type MovieRepo struct {
	db *sql.DB
}

// NewMovieRepo constructs a MovieRepo with the given DB handle.
func NewMovieRepo(db *sql.DB) *MovieRepo {
	return &MovieRepo{db: db}
}

const movieColumns = `id, title, description, image_url, duration_min, genre, age_rating, created_at, updated_at`

func scanMovie(row interface{ Scan(...any) error }, m *domain.Movie) error {
	return row.Scan(&m.ID, &m.Title, &m.Description, &m.ImageURL, &m.DurationMin, &m.Genre, &m.AgeRating, &m.CreatedAt, &m.UpdatedAt)
}

// Create inserts a movie and populates its generated ID and timestamps.
func (r *MovieRepo) Create(ctx context.Context, m *domain.Movie) error {
	const q = `INSERT INTO movies (title, description, image_url, duration_min, genre, age_rating) VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, m.Title, m.Description, m.ImageURL, m.DurationMin, m.Genre, m.AgeRating)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	const sel = `SELECT ` + movieColumns + ` FROM movies WHERE id = ?`
	return scanMovie(r.db.QueryRowContext(ctx, sel, m.ID), m)
}

// GetByID fetches one movie. Returns domain.ErrNotFound when missing.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (*domain.Movie, error) {
	const q = `SELECT ` + movieColumns + ` FROM movies WHERE id = ?`
	var m domain.Movie
	if err := scanMovie(r.db.QueryRowContext(ctx, q, id), &m); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: movie %d", domain.ErrNotFound, id)
		}
		return nil, err
	}
	return &m, nil
}

// List returns the whole catalog ordered by title.
func (r *MovieRepo) List(ctx context.Context) ([]domain.Movie, error) {
	const q = `SELECT ` + movieColumns + ` FROM movies ORDER BY title`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []domain.Movie
	for rows.Next() {
		var m domain.Movie
		if err := scanMovie(rows, &m); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

// Update rewrites the mutable attributes of a movie.
// Returns domain.ErrNotFound when the row does not exist.
func (r *MovieRepo) Update(ctx context.Context, m *domain.Movie) error {
	const q = `UPDATE movies
	           SET title = ?, description = ?, image_url = ?, duration_min = ?, genre = ?, age_rating = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, m.Title, m.Description, m.ImageURL, m.DurationMin, m.Genre, m.AgeRating, m.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// distinguish missing row from a no-op update
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM movies WHERE id = ?`, m.ID).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("%w: movie %d", domain.ErrNotFound, m.ID)
			}
			return err
		}
	}
	return nil
}

// Delete removes a movie. Sessions referencing it block the delete via the
// restrict FK, surfaced as ErrReferenced.
func (r *MovieRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM movies WHERE id = ?`, id)
	if err != nil {
		if isMySQLErr(err, mysqlRowIsReferenced) {
			return ErrReferenced
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: movie %d", domain.ErrNotFound, id)
	}
	return nil
}
