// Package queue defines the message payloads exchanged over the broker and
// the background consumer that records issued tickets.
package queue

// TicketIssuedEvent is published after a booking commits. It carries enough
// for downstream consumers to log or notify without querying the database.
type TicketIssuedEvent struct {
	TicketID      uint64   `json:"ticket_id"`
	Reference     string   `json:"reference"`
	UserID        uint64   `json:"user_id"`
	SessionID     uint64   `json:"session_id"`
	MovieID       uint64   `json:"movie_id"`
	RoomID        uint64   `json:"room_id"`
	SeatLabels    []string `json:"seats"`
	TotalCents    int64    `json:"total_cents"`
	PaymentMethod string   `json:"payment_method"`
	IssuedAt      string   `json:"issued_at"`
}
