package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/guilhermereis1k/oscar-cinema/internal/domain"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 10, hour, min, 0, 0, time.UTC)
}

// fakeSessionStore keeps sessions in memory. FindOverlapping returns every
// session in the room and lets the domain predicate decide, which is the
// wider contract the service must tolerate.
type fakeSessionStore struct {
	sessions map[uint64]*domain.Session
	nextID   uint64
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[uint64]*domain.Session{}, nextID: 1}
}

func (f *fakeSessionStore) add(s *domain.Session) *domain.Session {
	s.ID = f.nextID
	f.nextID++
	f.sessions[s.ID] = s
	return s
}

func (f *fakeSessionStore) Create(_ context.Context, s *domain.Session) error {
	f.add(s)
	return nil
}

func (f *fakeSessionStore) GetByID(_ context.Context, id uint64) (*domain.Session, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: session %d", domain.ErrNotFound, id)
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSessionStore) GetDetailed(ctx context.Context, id uint64) (*domain.Session, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeSessionStore) FindOverlapping(_ context.Context, roomID uint64, _, _ time.Time, excludeID uint64) ([]domain.Session, error) {
	var out []domain.Session
	for _, s := range f.sessions {
		if s.RoomID == roomID && s.ID != excludeID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSessionStore) List(_ context.Context, roomID uint64) ([]domain.Session, error) {
	var out []domain.Session
	for _, s := range f.sessions {
		if roomID == 0 || s.RoomID == roomID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSessionStore) Update(_ context.Context, s *domain.Session) error {
	if _, ok := f.sessions[s.ID]; !ok {
		return fmt.Errorf("%w: session %d", domain.ErrNotFound, s.ID)
	}
	cp := *s
	f.sessions[s.ID] = &cp
	return nil
}

func (f *fakeSessionStore) MarkFinished(_ context.Context, id uint64) error {
	s, ok := f.sessions[id]
	if !ok {
		return fmt.Errorf("%w: session %d", domain.ErrNotFound, id)
	}
	if s.IsFinished {
		return domain.ErrSessionFinished
	}
	s.IsFinished = true
	return nil
}

func (f *fakeSessionStore) Delete(_ context.Context, id uint64) error {
	if _, ok := f.sessions[id]; !ok {
		return fmt.Errorf("%w: session %d", domain.ErrNotFound, id)
	}
	delete(f.sessions, id)
	return nil
}

func newTestSessionService(store *fakeSessionStore) *SessionService {
	svc := NewSessionService(store)
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestCreateSessionConflicts(t *testing.T) {
	ctx := context.Background()
	store := newFakeSessionStore()
	store.add(&domain.Session{MovieID: 1, RoomID: 1, ExhibitionTypeID: 1, StartsAt: at(19, 0), DurationMin: 120})
	svc := newTestSessionService(store)

	// 20:00 starts inside the 19:00-21:00 session.
	_, err := svc.Create(ctx, 1, 1, 1, at(20, 0), 120)
	if !errors.Is(err, domain.ErrScheduleConflict) {
		t.Fatalf("overlapping create: got %v, want ErrScheduleConflict", err)
	}

	// Touching intervals do not conflict.
	if _, err := svc.Create(ctx, 1, 1, 1, at(21, 0), 60); err != nil {
		t.Fatalf("touching create: %v", err)
	}

	// Same slot in another room is fine.
	if _, err := svc.Create(ctx, 1, 2, 1, at(20, 0), 120); err != nil {
		t.Fatalf("other room create: %v", err)
	}
}

func TestCreateSessionAfterFinishFreesRoom(t *testing.T) {
	ctx := context.Background()
	store := newFakeSessionStore()
	blocker := store.add(&domain.Session{MovieID: 1, RoomID: 1, ExhibitionTypeID: 1, StartsAt: at(19, 0), DurationMin: 120})
	svc := newTestSessionService(store)

	if _, err := svc.Create(ctx, 1, 1, 1, at(19, 30), 60); !errors.Is(err, domain.ErrScheduleConflict) {
		t.Fatalf("expected conflict before finish, got %v", err)
	}

	if err := svc.Finish(ctx, blocker.ID); err != nil {
		t.Fatalf("finish: %v", err)
	}

	if _, err := svc.Create(ctx, 1, 1, 1, at(19, 30), 60); err != nil {
		t.Fatalf("create after finish: %v", err)
	}
}

func TestUpdateSessionIgnoresOwnInterval(t *testing.T) {
	ctx := context.Background()
	store := newFakeSessionStore()
	sess := store.add(&domain.Session{MovieID: 1, RoomID: 1, ExhibitionTypeID: 1, StartsAt: at(19, 0), DurationMin: 120})
	store.add(&domain.Session{MovieID: 1, RoomID: 1, ExhibitionTypeID: 1, StartsAt: at(22, 0), DurationMin: 60})
	svc := newTestSessionService(store)

	// Shrinking inside its own old interval must not self-conflict.
	if _, err := svc.Update(ctx, sess.ID, 1, 1, 1, at(19, 30), 60); err != nil {
		t.Fatalf("self-overlapping update: %v", err)
	}

	// Moving onto the other session must conflict.
	if _, err := svc.Update(ctx, sess.ID, 1, 1, 1, at(21, 30), 60); !errors.Is(err, domain.ErrScheduleConflict) {
		t.Fatalf("got %v, want ErrScheduleConflict", err)
	}
}

func TestFinishSessionIsOneWay(t *testing.T) {
	ctx := context.Background()
	store := newFakeSessionStore()
	sess := store.add(&domain.Session{MovieID: 1, RoomID: 1, ExhibitionTypeID: 1, StartsAt: at(19, 0), DurationMin: 120})
	svc := newTestSessionService(store)

	if err := svc.Finish(ctx, sess.ID); err != nil {
		t.Fatalf("first finish: %v", err)
	}
	if err := svc.Finish(ctx, sess.ID); !errors.Is(err, domain.ErrSessionFinished) {
		t.Fatalf("second finish: got %v, want ErrSessionFinished", err)
	}
	if err := svc.Finish(ctx, 999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing session: got %v, want ErrNotFound", err)
	}
}

func TestCreateSessionValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestSessionService(newFakeSessionStore())

	if _, err := svc.Create(ctx, 1, 1, 1, testNow.Add(10*time.Minute), 120); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("short lead: got %v, want ErrValidation", err)
	}
	if _, err := svc.Create(ctx, 0, 1, 1, at(19, 0), 120); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("zero movie: got %v, want ErrValidation", err)
	}
}
