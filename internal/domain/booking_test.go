package domain

import (
	"errors"
	"testing"
)

// bookableSession returns a detailed session graph: a room with three seats
// (standard, standard, premium) where seat 3 is already taken.
func bookableSession() *Session {
	return &Session{
		ID:               7,
		MovieID:          1,
		RoomID:           2,
		ExhibitionTypeID: 3,
		StartsAt:         at(19, 0),
		DurationMin:      120,
		Room: &Room{
			ID:     2,
			Number: 1,
			Seats: []Seat{
				{ID: 1, RoomID: 2, RowLabel: "A", Number: 1, SeatTypeID: 1},
				{ID: 2, RoomID: 2, RowLabel: "A", Number: 2, SeatTypeID: 1},
				{ID: 3, RoomID: 2, RowLabel: "B", Number: 1, SeatTypeID: 2},
			},
		},
		Tickets: []Ticket{
			{Seats: []TicketSeat{{SeatID: 3, Price: 12000}}},
		},
	}
}

func testCatalog() (*ExhibitionType, map[uint64]SeatType) {
	exhibition := &ExhibitionType{ID: 3, Name: "3D", Price: 7500}
	seatTypes := map[uint64]SeatType{
		1: {ID: 1, Name: "Standard", Price: 2550},
		2: {ID: 2, Name: "Premium", Price: 4500},
	}
	return exhibition, seatTypes
}

func TestBuildTicket(t *testing.T) {
	exhibition, seatTypes := testCatalog()

	ticket, err := BuildTicket(bookableSession(), 42, PaymentPix, []SeatSelection{
		{SeatID: 1, Type: TicketFull},
		{SeatID: 2, Type: TicketHalf},
	}, exhibition, seatTypes, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Seat 1: 75.00 + 25.50 = 100.50 full. Seat 2: half of 100.50 = 50.25.
	if len(ticket.Seats) != 2 {
		t.Fatalf("got %d seats, want 2", len(ticket.Seats))
	}
	if ticket.Seats[0].Price != 10050 {
		t.Errorf("full seat price = %d, want 10050", ticket.Seats[0].Price)
	}
	if ticket.Seats[1].Price != 5025 {
		t.Errorf("half seat price = %d, want 5025", ticket.Seats[1].Price)
	}
	if ticket.Total != 15075 {
		t.Errorf("total = %d, want 15075", ticket.Total)
	}
	if ticket.PaymentStatus != PaymentPending || ticket.Paid {
		t.Errorf("new ticket must start PENDING and unpaid, got %s paid=%v", ticket.PaymentStatus, ticket.Paid)
	}
	if ticket.Reference == "" {
		t.Error("ticket has no reference code")
	}
	if ticket.SessionID != 7 || ticket.MovieID != 1 || ticket.RoomID != 2 || ticket.UserID != 42 {
		t.Errorf("ticket references wrong records: %+v", ticket)
	}
}

func TestBuildTicketFailures(t *testing.T) {
	exhibition, seatTypes := testCatalog()
	one := []SeatSelection{{SeatID: 1, Type: TicketFull}}

	cases := []struct {
		name   string
		mutate func(*Session) (sel []SeatSelection, ex *ExhibitionType, userID uint64, method PaymentMethod)
		want   error
	}{
		{
			"empty selection",
			func(s *Session) ([]SeatSelection, *ExhibitionType, uint64, PaymentMethod) {
				return nil, exhibition, 42, PaymentPix
			},
			ErrValidation,
		},
		{
			"duplicate seat in request",
			func(s *Session) ([]SeatSelection, *ExhibitionType, uint64, PaymentMethod) {
				return []SeatSelection{{SeatID: 1, Type: TicketFull}, {SeatID: 1, Type: TicketHalf}}, exhibition, 42, PaymentPix
			},
			ErrValidation,
		},
		{
			"zero user",
			func(s *Session) ([]SeatSelection, *ExhibitionType, uint64, PaymentMethod) {
				return one, exhibition, 0, PaymentPix
			},
			ErrValidation,
		},
		{
			"unknown payment method",
			func(s *Session) ([]SeatSelection, *ExhibitionType, uint64, PaymentMethod) {
				return one, exhibition, 42, PaymentMethod("IOU")
			},
			ErrValidation,
		},
		{
			"missing exhibition type",
			func(s *Session) ([]SeatSelection, *ExhibitionType, uint64, PaymentMethod) {
				return one, nil, 42, PaymentPix
			},
			ErrNotFound,
		},
		{
			"finished session",
			func(s *Session) ([]SeatSelection, *ExhibitionType, uint64, PaymentMethod) {
				s.IsFinished = true
				return one, exhibition, 42, PaymentPix
			},
			ErrSessionFinished,
		},
		{
			"occupied seat",
			func(s *Session) ([]SeatSelection, *ExhibitionType, uint64, PaymentMethod) {
				return []SeatSelection{{SeatID: 3, Type: TicketFull}}, exhibition, 42, PaymentPix
			},
			ErrSeatOccupied,
		},
		{
			"seat from another room",
			func(s *Session) ([]SeatSelection, *ExhibitionType, uint64, PaymentMethod) {
				return []SeatSelection{{SeatID: 99, Type: TicketFull}}, exhibition, 42, PaymentPix
			},
			ErrSeatNotInRoom,
		},
		{
			"unknown seat type",
			func(s *Session) ([]SeatSelection, *ExhibitionType, uint64, PaymentMethod) {
				s.Room.Seats[0].SeatTypeID = 77
				return one, exhibition, 42, PaymentPix
			},
			ErrNotFound,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sess := bookableSession()
			sel, ex, userID, method := tc.mutate(sess)
			_, err := BuildTicket(sess, userID, method, sel, ex, seatTypes, testNow)
			if !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestBuildTicketRequiresLoadedSession(t *testing.T) {
	exhibition, seatTypes := testCatalog()
	sel := []SeatSelection{{SeatID: 1, Type: TicketFull}}

	if _, err := BuildTicket(nil, 42, PaymentPix, sel, exhibition, seatTypes, testNow); !errors.Is(err, ErrValidation) {
		t.Fatalf("nil session: got %v, want ErrValidation", err)
	}
	bare := &Session{ID: 7}
	if _, err := BuildTicket(bare, 42, PaymentPix, sel, exhibition, seatTypes, testNow); !errors.Is(err, ErrValidation) {
		t.Fatalf("session without room: got %v, want ErrValidation", err)
	}
}
