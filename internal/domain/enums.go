package domain

import (
	"fmt"
	"strings"
)

// PaymentMethod enumerates how a ticket is paid for. The value is stored
// as-is in the tickets table.
type PaymentMethod string

const (
	PaymentCash          PaymentMethod = "CASH"
	PaymentCreditCard    PaymentMethod = "CREDIT_CARD"
	PaymentDebitCard     PaymentMethod = "DEBIT_CARD"
	PaymentPix           PaymentMethod = "PIX"
	PaymentBankSlip      PaymentMethod = "BANK_SLIP"
	PaymentDigitalWallet PaymentMethod = "DIGITAL_WALLET"
)

// ParsePaymentMethod normalizes and validates a payment method value.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(strings.ToUpper(strings.TrimSpace(s))); m {
	case PaymentCash, PaymentCreditCard, PaymentDebitCard, PaymentPix, PaymentBankSlip, PaymentDigitalWallet:
		return m, nil
	default:
		return "", fmt.Errorf("%w: unknown payment method %q", ErrValidation, s)
	}
}

// PaymentStatus tracks the lifecycle of a ticket's payment. The status is a
// stored enum only; no gateway integration lives here.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentApproved  PaymentStatus = "APPROVED"
	PaymentRejected  PaymentStatus = "REJECTED"
	PaymentCancelled PaymentStatus = "CANCELLED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)

// ParsePaymentStatus normalizes and validates a payment status value.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch st := PaymentStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case PaymentPending, PaymentApproved, PaymentRejected, PaymentCancelled, PaymentRefunded:
		return st, nil
	default:
		return "", fmt.Errorf("%w: unknown payment status %q", ErrValidation, s)
	}
}

// TicketType selects the discount category applied to a seat price.
// HALF and STUDENT_HALF currently share the same multiplier but are kept
// as distinct values: the eligibility rules differ and the amounts may
// diverge later.
type TicketType string

const (
	TicketFull        TicketType = "FULL"
	TicketHalf        TicketType = "HALF"
	TicketStudentHalf TicketType = "STUDENT_HALF"
)

// ParseTicketType normalizes and validates a ticket type value.
func ParseTicketType(s string) (TicketType, error) {
	switch t := TicketType(strings.ToUpper(strings.TrimSpace(s))); t {
	case TicketFull, TicketHalf, TicketStudentHalf:
		return t, nil
	default:
		return "", fmt.Errorf("%w: unknown ticket type %q", ErrValidation, s)
	}
}

// Role enumerates the access levels of a user account.
type Role string

const (
	RoleUser     Role = "USER"
	RoleAdmin    Role = "ADMIN"
	RoleEmployee Role = "EMPLOYEE"
)

// ParseRole normalizes and validates a role value.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToUpper(strings.TrimSpace(s))); r {
	case RoleUser, RoleAdmin, RoleEmployee:
		return r, nil
	default:
		return "", fmt.Errorf("%w: unknown role %q", ErrValidation, s)
	}
}
