package domain

import (
	"fmt"
	"strings"
	"time"
)

// User is an application account. The document number is a validated CPF
// value object; the password hash and refresh tokens live in the identity
// tables managed by the repositories.
//
// Fields:
//  ID           – primary key identifier.
//  Name         – display name, required.
//  Document     – validated national ID.
//  Email        – unique, normalized to lower case.
//  Role         – USER, ADMIN or EMPLOYEE.
//  IsActive     – whether the account may authenticate.
type User struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Document  Document  `json:"document"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUser validates and normalizes the fields of a new account.
func NewUser(name, document, email string, role Role) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: user name is required", ErrValidation)
	}
	doc, err := NewDocument(document)
	if err != nil {
		return nil, err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: invalid email", ErrValidation)
	}
	if _, err := ParseRole(string(role)); err != nil {
		return nil, err
	}
	return &User{Name: name, Document: doc, Email: email, Role: role, IsActive: true}, nil
}
