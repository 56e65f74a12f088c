package domain

import (
	"errors"
	"testing"
	"time"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 10, hour, min, 0, 0, time.UTC)
}

func TestNewSessionValidation(t *testing.T) {
	cases := []struct {
		name     string
		movie    uint64
		room     uint64
		exhib    uint64
		startsAt time.Time
		duration uint32
		wantErr  bool
	}{
		{"valid", 1, 1, 1, at(19, 0), 120, false},
		{"starts exactly at lead", 1, 1, 1, testNow.Add(MinStartLead), 120, false},
		{"starts too soon", 1, 1, 1, testNow.Add(MinStartLead - time.Minute), 120, true},
		{"starts in the past", 1, 1, 1, at(11, 0), 120, true},
		{"zero movie", 0, 1, 1, at(19, 0), 120, true},
		{"zero room", 1, 0, 1, at(19, 0), 120, true},
		{"zero exhibition type", 1, 1, 0, at(19, 0), 120, true},
		{"zero duration", 1, 1, 1, at(19, 0), 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSession(tc.movie, tc.room, tc.exhib, tc.startsAt, tc.duration, testNow)
			if tc.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestSessionConflictsWith(t *testing.T) {
	// Existing session 19:00-21:00.
	sess := &Session{StartsAt: at(19, 0), DurationMin: 120}

	cases := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"overlap at tail", at(20, 0), at(22, 0), true},
		{"overlap at head", at(18, 0), at(19, 30), true},
		{"contained", at(19, 30), at(20, 30), true},
		{"containing", at(18, 0), at(22, 0), true},
		{"identical", at(19, 0), at(21, 0), true},
		{"touching after", at(21, 0), at(23, 0), false},
		{"touching before", at(17, 0), at(19, 0), false},
		{"disjoint", at(22, 0), at(23, 0), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := sess.ConflictsWith(tc.start, tc.end); got != tc.want {
				t.Fatalf("ConflictsWith(%v, %v) = %v, want %v", tc.start, tc.end, got, tc.want)
			}
		})
	}
}

func TestFinishedSessionNeverConflicts(t *testing.T) {
	sess := &Session{StartsAt: at(19, 0), DurationMin: 120, IsFinished: true}
	if sess.ConflictsWith(at(19, 0), at(21, 0)) {
		t.Fatal("finished session reported a conflict")
	}
}

func TestSessionFinishIsOneWay(t *testing.T) {
	sess := &Session{StartsAt: at(19, 0), DurationMin: 120}
	if err := sess.Finish(); err != nil {
		t.Fatalf("first finish: %v", err)
	}
	if !sess.IsFinished {
		t.Fatal("session not marked finished")
	}
	if err := sess.Finish(); !errors.Is(err, ErrSessionFinished) {
		t.Fatalf("second finish: got %v, want ErrSessionFinished", err)
	}
}

func TestRescheduleRejectsFinished(t *testing.T) {
	sess := &Session{StartsAt: at(19, 0), DurationMin: 120, IsFinished: true}
	err := sess.Reschedule(1, 1, 1, at(20, 0), 90, testNow)
	if !errors.Is(err, ErrSessionFinished) {
		t.Fatalf("got %v, want ErrSessionFinished", err)
	}
}

func TestOccupancyIsDerivedFromTicketSeats(t *testing.T) {
	sess := &Session{
		Room: &Room{Seats: []Seat{{ID: 1}, {ID: 2}, {ID: 3}}},
		Tickets: []Ticket{
			{Seats: []TicketSeat{{SeatID: 1, Price: 100}}},
			{Seats: []TicketSeat{{SeatID: 3, Price: 100}}},
		},
	}

	if sess.SeatsAvailable([]uint64{2}) != true {
		t.Fatal("free seat reported occupied")
	}
	if sess.SeatsAvailable([]uint64{2, 3}) != false {
		t.Fatal("occupied seat reported free")
	}
	if sess.SeatsAvailable(nil) != true {
		t.Fatal("empty request must be vacuously available")
	}

	seatMap := sess.SeatMap()
	if len(seatMap) != 3 {
		t.Fatalf("seat map has %d entries, want 3", len(seatMap))
	}
	wantOccupied := map[uint64]bool{1: true, 2: false, 3: true}
	for _, st := range seatMap {
		if st.Occupied != wantOccupied[st.Seat.ID] {
			t.Errorf("seat %d occupied=%v, want %v", st.Seat.ID, st.Occupied, wantOccupied[st.Seat.ID])
		}
	}
}

func TestSeatMapRequiresDetailedLoad(t *testing.T) {
	sess := &Session{}
	if sess.SeatMap() != nil {
		t.Fatal("seat map without a loaded room must be nil")
	}
}
