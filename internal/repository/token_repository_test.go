package repository

import (
	"database/sql"
	"testing"
	"time"
)

func TestRefreshUsable(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	revoked := sql.NullTime{Time: now.Add(-time.Hour), Valid: true}
	active := sql.NullTime{}

	cases := []struct {
		name      string
		expiresAt time.Time
		revokedAt sql.NullTime
		want      bool
	}{
		{"active and unexpired", now.Add(24 * time.Hour), active, true},
		{"expires exactly now", now, active, true},
		{"expired", now.Add(-time.Minute), active, false},
		{"revoked", now.Add(24 * time.Hour), revoked, false},
		{"revoked and expired", now.Add(-time.Minute), revoked, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := refreshUsable(tc.expiresAt, tc.revokedAt, now); got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}
