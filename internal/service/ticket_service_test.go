package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/guilhermereis1k/oscar-cinema/internal/domain"
	"github.com/guilhermereis1k/oscar-cinema/internal/queue"
)

// fakeTicketStore persists tickets in memory and can simulate the unique
// seat constraint firing on insert.
type fakeTicketStore struct {
	tickets    map[uint64]*domain.Ticket
	nextID     uint64
	failCreate error
}

func newFakeTicketStore() *fakeTicketStore {
	return &fakeTicketStore{tickets: map[uint64]*domain.Ticket{}, nextID: 1}
}

func (f *fakeTicketStore) Create(_ context.Context, t *domain.Ticket) error {
	if f.failCreate != nil {
		return f.failCreate
	}
	t.ID = f.nextID
	f.nextID++
	cp := *t
	f.tickets[t.ID] = &cp
	return nil
}

func (f *fakeTicketStore) GetDetailed(_ context.Context, id uint64) (*domain.Ticket, error) {
	t, ok := f.tickets[id]
	if !ok {
		return nil, fmt.Errorf("%w: ticket %d", domain.ErrNotFound, id)
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTicketStore) ListByUser(_ context.Context, userID uint64) ([]domain.Ticket, error) {
	var out []domain.Ticket
	for _, t := range f.tickets {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeTicketStore) UpdatePaymentStatus(_ context.Context, id uint64, status domain.PaymentStatus, paid bool) error {
	t, ok := f.tickets[id]
	if !ok {
		return fmt.Errorf("%w: ticket %d", domain.ErrNotFound, id)
	}
	t.PaymentStatus = status
	t.Paid = paid
	return nil
}

type fakeExhibitionStore struct{ types map[uint64]*domain.ExhibitionType }

func (f *fakeExhibitionStore) GetByID(_ context.Context, id uint64) (*domain.ExhibitionType, error) {
	et, ok := f.types[id]
	if !ok {
		return nil, fmt.Errorf("%w: exhibition type %d", domain.ErrNotFound, id)
	}
	return et, nil
}

type fakeSeatTypeStore struct{ types map[uint64]domain.SeatType }

func (f *fakeSeatTypeStore) Map(_ context.Context) (map[uint64]domain.SeatType, error) {
	return f.types, nil
}

// bookingFixture wires a ticket service over in-memory stores: one session
// at 19:00 in a three-seat room, seat 3 already sold.
type bookingFixture struct {
	sessions *fakeSessionStore
	tickets  *fakeTicketStore
	svc      *TicketService
	events   []queue.TicketIssuedEvent
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()
	fx := &bookingFixture{
		sessions: newFakeSessionStore(),
		tickets:  newFakeTicketStore(),
	}
	fx.sessions.add(&domain.Session{
		MovieID:          1,
		RoomID:           2,
		ExhibitionTypeID: 3,
		StartsAt:         at(19, 0),
		DurationMin:      120,
		Room: &domain.Room{
			ID:     2,
			Number: 1,
			Seats: []domain.Seat{
				{ID: 1, RoomID: 2, RowLabel: "A", Number: 1, SeatTypeID: 1},
				{ID: 2, RoomID: 2, RowLabel: "A", Number: 2, SeatTypeID: 1},
				{ID: 3, RoomID: 2, RowLabel: "B", Number: 1, SeatTypeID: 2},
			},
		},
		Tickets: []domain.Ticket{
			{Seats: []domain.TicketSeat{{SeatID: 3, Price: 12000}}},
		},
	})
	exhibitions := &fakeExhibitionStore{types: map[uint64]*domain.ExhibitionType{
		3: {ID: 3, Name: "3D", Price: 7500},
	}}
	seatTypes := &fakeSeatTypeStore{types: map[uint64]domain.SeatType{
		1: {ID: 1, Name: "Standard", Price: 2550},
		2: {ID: 2, Name: "Premium", Price: 4500},
	}}
	publish := func(_ context.Context, ev queue.TicketIssuedEvent) error {
		fx.events = append(fx.events, ev)
		return nil
	}
	fx.svc = NewTicketService(fx.sessions, fx.tickets, exhibitions, seatTypes, publish)
	fx.svc.now = func() time.Time { return testNow }
	return fx
}

func TestBookTicket(t *testing.T) {
	fx := newBookingFixture(t)

	ticket, err := fx.svc.Create(context.Background(), 1, 42, domain.PaymentPix, []domain.SeatSelection{
		{SeatID: 1, Type: domain.TicketFull},
		{SeatID: 2, Type: domain.TicketHalf},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ticket.ID == 0 {
		t.Fatal("persisted ticket has no id")
	}
	if ticket.Total != 15075 {
		t.Fatalf("total = %d, want 15075", ticket.Total)
	}
	if len(fx.events) != 1 {
		t.Fatalf("got %d published events, want 1", len(fx.events))
	}
	ev := fx.events[0]
	if ev.TicketID != ticket.ID || ev.UserID != 42 || ev.TotalCents != 15075 {
		t.Fatalf("event does not match ticket: %+v", ev)
	}
	if len(ev.SeatLabels) != 2 || ev.SeatLabels[0] != "A1" || ev.SeatLabels[1] != "A2" {
		t.Fatalf("seat labels = %v, want [A1 A2]", ev.SeatLabels)
	}
}

func TestBookTicketOccupiedSeat(t *testing.T) {
	fx := newBookingFixture(t)

	_, err := fx.svc.Create(context.Background(), 1, 42, domain.PaymentPix, []domain.SeatSelection{
		{SeatID: 3, Type: domain.TicketFull},
	})
	if !errors.Is(err, domain.ErrSeatOccupied) {
		t.Fatalf("got %v, want ErrSeatOccupied", err)
	}
	if len(fx.tickets.tickets) != 0 {
		t.Fatal("failed booking persisted a ticket")
	}
	if len(fx.events) != 0 {
		t.Fatal("failed booking published an event")
	}
}

func TestBookTicketLosesStorageRace(t *testing.T) {
	fx := newBookingFixture(t)
	// A concurrent booking slipped in between the availability check and
	// the insert; the unique seat constraint fires.
	fx.tickets.failCreate = domain.ErrSeatOccupied

	_, err := fx.svc.Create(context.Background(), 1, 42, domain.PaymentPix, []domain.SeatSelection{
		{SeatID: 1, Type: domain.TicketFull},
	})
	if !errors.Is(err, domain.ErrSeatOccupied) {
		t.Fatalf("got %v, want ErrSeatOccupied", err)
	}
	if len(fx.events) != 0 {
		t.Fatal("lost race still published an event")
	}
}

func TestBookTicketFinishedSession(t *testing.T) {
	fx := newBookingFixture(t)
	fx.sessions.sessions[1].IsFinished = true

	_, err := fx.svc.Create(context.Background(), 1, 42, domain.PaymentPix, []domain.SeatSelection{
		{SeatID: 1, Type: domain.TicketFull},
	})
	if !errors.Is(err, domain.ErrSessionFinished) {
		t.Fatalf("got %v, want ErrSessionFinished", err)
	}
}

func TestBookTicketPublishFailureDoesNotFailBooking(t *testing.T) {
	fx := newBookingFixture(t)
	fx.svc.publish = func(context.Context, queue.TicketIssuedEvent) error {
		return errors.New("broker down")
	}

	ticket, err := fx.svc.Create(context.Background(), 1, 42, domain.PaymentPix, []domain.SeatSelection{
		{SeatID: 1, Type: domain.TicketFull},
	})
	if err != nil {
		t.Fatalf("booking failed on publish error: %v", err)
	}
	if ticket.ID == 0 {
		t.Fatal("ticket not persisted")
	}
}

func TestSetPaymentStatus(t *testing.T) {
	fx := newBookingFixture(t)
	ticket, err := fx.svc.Create(context.Background(), 1, 42, domain.PaymentPix, []domain.SeatSelection{
		{SeatID: 1, Type: domain.TicketFull},
	})
	if err != nil {
		t.Fatalf("booking: %v", err)
	}

	updated, err := fx.svc.SetPaymentStatus(context.Background(), ticket.ID, domain.PaymentApproved)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if !updated.Paid || updated.PaymentStatus != domain.PaymentApproved {
		t.Fatalf("ticket not approved: %+v", updated)
	}

	stored, err := fx.tickets.GetDetailed(context.Background(), ticket.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !stored.Paid {
		t.Fatal("approval not persisted")
	}
}
