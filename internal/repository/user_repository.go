package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/guilhermereis1k/oscar-cinema/internal/domain"
	"github.com/guilhermereis1k/oscar-cinema/internal/utils"
)

// UserRepo manages persistence for user accounts.
type UserRepo struct{ DB *sql.DB }

// NewUserRepo constructs a UserRepo with the given DB handle.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// ErrEmailExists is returned when registering with an email or document
// that is already taken.
var ErrEmailExists = errors.New("email or document already exists")

// userRow pairs the domain user with its stored password hash. The hash
// never leaves the repository/handler boundary.
type userRow struct {
	domain.User
	PasswordHash string
}

// Create hashes the password, inserts the account and returns its ID.
func (r *UserRepo) Create(ctx context.Context, u *domain.User, password string, cost int) (uint64, error) {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (name, document, email, password_hash, role) VALUES (?,?,?,?,?)",
		u.Name, string(u.Document), u.Email, hash, string(u.Role))
	if err != nil {
		if isMySQLErr(err, mysqlDuplicateEntry) {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	u.ID = uint64(id)
	return u.ID, nil
}

const userColumns = `id, name, document, email, password_hash, role, is_active, created_at, updated_at`

func (r *UserRepo) getBy(ctx context.Context, where string, arg interface{}) (*userRow, error) {
	var u userRow
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE "+where+" LIMIT 1", arg).
		Scan(&u.ID, &u.Name, &u.Document, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: user", domain.ErrNotFound)
		}
		return nil, err
	}
	return &u, nil
}

// GetByEmail fetches a user and their password hash by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, string, error) {
	u, err := r.getBy(ctx, "email=?", email)
	if err != nil {
		return nil, "", err
	}
	return &u.User, u.PasswordHash, nil
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*domain.User, error) {
	u, err := r.getBy(ctx, "id=?", id)
	if err != nil {
		return nil, err
	}
	return &u.User, nil
}
