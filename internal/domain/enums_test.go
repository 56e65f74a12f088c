package domain

import (
	"errors"
	"testing"
)

func TestParseEnumsNormalizeCase(t *testing.T) {
	if m, err := ParsePaymentMethod(" pix "); err != nil || m != PaymentPix {
		t.Fatalf("ParsePaymentMethod(pix) = %v, %v", m, err)
	}
	if s, err := ParsePaymentStatus("approved"); err != nil || s != PaymentApproved {
		t.Fatalf("ParsePaymentStatus(approved) = %v, %v", s, err)
	}
	if tt, err := ParseTicketType("student_half"); err != nil || tt != TicketStudentHalf {
		t.Fatalf("ParseTicketType(student_half) = %v, %v", tt, err)
	}
	if r, err := ParseRole("admin"); err != nil || r != RoleAdmin {
		t.Fatalf("ParseRole(admin) = %v, %v", r, err)
	}
}

func TestParseEnumsRejectUnknown(t *testing.T) {
	if _, err := ParsePaymentMethod("CHECK"); !errors.Is(err, ErrValidation) {
		t.Fatalf("payment method: got %v, want ErrValidation", err)
	}
	if _, err := ParsePaymentStatus("DONE"); !errors.Is(err, ErrValidation) {
		t.Fatalf("payment status: got %v, want ErrValidation", err)
	}
	if _, err := ParseTicketType("SENIOR"); !errors.Is(err, ErrValidation) {
		t.Fatalf("ticket type: got %v, want ErrValidation", err)
	}
	if _, err := ParseRole("ROOT"); !errors.Is(err, ErrValidation) {
		t.Fatalf("role: got %v, want ErrValidation", err)
	}
}
