package domain

import (
	"errors"
	"testing"
)

func TestTicketTotalTracksSeats(t *testing.T) {
	ticket := &Ticket{}

	s1, err := NewTicketSeat(1, 10, TicketFull, 10050)
	if err != nil {
		t.Fatalf("seat 1: %v", err)
	}
	s2, err := NewTicketSeat(1, 11, TicketHalf, 5025)
	if err != nil {
		t.Fatalf("seat 2: %v", err)
	}
	if err := ticket.AddSeat(s1); err != nil {
		t.Fatalf("add seat 1: %v", err)
	}
	if err := ticket.AddSeat(s2); err != nil {
		t.Fatalf("add seat 2: %v", err)
	}
	if ticket.Total != 15075 {
		t.Fatalf("total = %d, want 15075", ticket.Total)
	}

	if err := ticket.AddSeat(s1); !errors.Is(err, ErrValidation) {
		t.Fatalf("duplicate seat: got %v, want ErrValidation", err)
	}

	if !ticket.RemoveSeat(10) {
		t.Fatal("RemoveSeat(10) = false")
	}
	if ticket.Total != 5025 {
		t.Fatalf("total after remove = %d, want 5025", ticket.Total)
	}
	if ticket.RemoveSeat(99) {
		t.Fatal("RemoveSeat(99) = true for unknown seat")
	}
}

func TestNewTicketSeatRejectsNonPositivePrice(t *testing.T) {
	if _, err := NewTicketSeat(1, 10, TicketFull, 0); !errors.Is(err, ErrValidation) {
		t.Fatalf("zero price: got %v, want ErrValidation", err)
	}
	if _, err := NewTicketSeat(1, 10, TicketFull, -50); !errors.Is(err, ErrValidation) {
		t.Fatalf("negative price: got %v, want ErrValidation", err)
	}
}

func TestSetPaymentStatus(t *testing.T) {
	ticket := &Ticket{PaymentStatus: PaymentPending}

	if err := ticket.SetPaymentStatus(PaymentApproved); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if !ticket.Paid {
		t.Fatal("approved ticket not marked paid")
	}

	if err := ticket.SetPaymentStatus(PaymentRefunded); err != nil {
		t.Fatalf("refund: %v", err)
	}
	if ticket.Paid {
		t.Fatal("refunded ticket still marked paid")
	}

	if err := ticket.SetPaymentStatus("SETTLED"); !errors.Is(err, ErrValidation) {
		t.Fatalf("unknown status: got %v, want ErrValidation", err)
	}
}
