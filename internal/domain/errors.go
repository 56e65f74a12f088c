// Package domain holds the business entities of the ticketing system and the
// rules that govern them: session scheduling, seat occupancy, ticket pricing.
// Nothing in this package touches the database; repositories load entity
// graphs and hand them to these types.
package domain

import "errors"

// ErrValidation marks any invariant violation raised by constructors and
// guarded setters. Handlers translate it into an HTTP 400 response. Specific
// failures wrap this sentinel so callers can match with errors.Is.
var ErrValidation = errors.New("validation failed")

// ErrNotFound is returned when a referenced entity (session, seat type,
// exhibition type, ticket) does not exist. Handlers translate it into 404.
var ErrNotFound = errors.New("not found")

// ErrScheduleConflict signals that a proposed session overlaps an existing
// non-finished session in the same room. Handlers translate it into 409.
var ErrScheduleConflict = errors.New("session schedule conflict")

// ErrSeatOccupied signals that at least one requested seat already belongs
// to a ticket of the session. It is raised both by the in-memory
// availability check and by the storage-level unique constraint on
// (session_id, seat_id). Handlers translate it into 409.
var ErrSeatOccupied = errors.New("seat already occupied")

// ErrSeatNotInRoom signals that a requested seat does not belong to the
// room the session is scheduled in.
var ErrSeatNotInRoom = errors.New("seat does not belong to room")

// ErrSessionFinished signals an operation against a session that has
// already been marked finished (booking a ticket, finishing twice).
var ErrSessionFinished = errors.New("session already finished")
