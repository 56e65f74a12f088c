// Package service contains the application services that sit between the
// HTTP handlers and the repositories: session scheduling with conflict
// detection, and ticket booking with availability and pricing. Services
// depend on narrow store interfaces so the orchestration logic can be
// exercised against in-memory fakes.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/guilhermereis1k/oscar-cinema/internal/domain"
)

// SessionStore is the persistence surface the session service needs.
// *repository.SessionRepo satisfies it.
type SessionStore interface {
	Create(ctx context.Context, s *domain.Session) error
	GetByID(ctx context.Context, id uint64) (*domain.Session, error)
	GetDetailed(ctx context.Context, id uint64) (*domain.Session, error)
	FindOverlapping(ctx context.Context, roomID uint64, start, end time.Time, excludeID uint64) ([]domain.Session, error)
	List(ctx context.Context, roomID uint64) ([]domain.Session, error)
	Update(ctx context.Context, s *domain.Session) error
	MarkFinished(ctx context.Context, id uint64) error
	Delete(ctx context.Context, id uint64) error
}

// SessionService schedules sessions. Every create and update runs the
// room/interval conflict guard before anything is persisted.
type SessionService struct {
	sessions SessionStore
	now      func() time.Time
}

// NewSessionService constructs a SessionService over the given store.
func NewSessionService(sessions SessionStore) *SessionService {
	if sessions == nil {
		panic("nil session store passed to NewSessionService")
	}
	return &SessionService{sessions: sessions, now: time.Now}
}

// hasConflict reports whether [start, end) collides with any non-finished
// session in the room, skipping excludeID so updates don't collide with
// themselves. The store query narrows the candidates; the domain predicate
// makes the final call.
func (s *SessionService) hasConflict(ctx context.Context, roomID uint64, start, end time.Time, excludeID uint64) (bool, error) {
	candidates, err := s.sessions.FindOverlapping(ctx, roomID, start, end, excludeID)
	if err != nil {
		return false, err
	}
	for i := range candidates {
		if candidates[i].ID == excludeID {
			continue
		}
		if candidates[i].ConflictsWith(start, end) {
			return true, nil
		}
	}
	return false, nil
}

// Create validates, conflict-checks and persists a new session.
func (s *SessionService) Create(ctx context.Context, movieID, roomID, exhibitionTypeID uint64, startsAt time.Time, durationMin uint32) (*domain.Session, error) {
	sess, err := domain.NewSession(movieID, roomID, exhibitionTypeID, startsAt, durationMin, s.now())
	if err != nil {
		return nil, err
	}
	conflict, err := s.hasConflict(ctx, sess.RoomID, sess.StartsAt, sess.EndsAt(), 0)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, fmt.Errorf("%w: room %d is busy in that interval", domain.ErrScheduleConflict, roomID)
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Update revalidates and conflict-checks a session's new schedule, ignoring
// the session's own interval.
func (s *SessionService) Update(ctx context.Context, id, movieID, roomID, exhibitionTypeID uint64, startsAt time.Time, durationMin uint32) (*domain.Session, error) {
	sess, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := sess.Reschedule(movieID, roomID, exhibitionTypeID, startsAt, durationMin, s.now()); err != nil {
		return nil, err
	}
	conflict, err := s.hasConflict(ctx, sess.RoomID, sess.StartsAt, sess.EndsAt(), id)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, fmt.Errorf("%w: room %d is busy in that interval", domain.ErrScheduleConflict, roomID)
	}
	if err := s.sessions.Update(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Finish marks a session finished. The transition is one-way; a second
// Finish returns domain.ErrSessionFinished.
func (s *SessionService) Finish(ctx context.Context, id uint64) error {
	sess, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := sess.Finish(); err != nil {
		return err
	}
	return s.sessions.MarkFinished(ctx, id)
}

// Get returns a bare session.
func (s *SessionService) Get(ctx context.Context, id uint64) (*domain.Session, error) {
	return s.sessions.GetByID(ctx, id)
}

// List returns sessions, optionally filtered by room (zero means all).
func (s *SessionService) List(ctx context.Context, roomID uint64) ([]domain.Session, error) {
	return s.sessions.List(ctx, roomID)
}

// SeatMap returns the derived per-seat occupancy view of a session.
func (s *SessionService) SeatMap(ctx context.Context, id uint64) ([]domain.SeatStatus, error) {
	sess, err := s.sessions.GetDetailed(ctx, id)
	if err != nil {
		return nil, err
	}
	return sess.SeatMap(), nil
}

// Delete removes a session and, through cascade, its tickets.
func (s *SessionService) Delete(ctx context.Context, id uint64) error {
	return s.sessions.Delete(ctx, id)
}
