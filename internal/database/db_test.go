package database

import (
	"testing"
	"time"

	"github.com/guilhermereis1k/oscar-cinema/internal/config"
)

func TestBuildDSN(t *testing.T) {
	cases := []struct {
		name string
		pass string
		want string
	}{
		{
			"with password",
			"s3cret",
			"app:s3cret@tcp(db:3306)/cinema?charset=utf8mb4&parseTime=true&loc=UTC",
		},
		{
			"without password",
			"",
			"app@tcp(db:3306)/cinema?charset=utf8mb4&parseTime=true&loc=UTC",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := buildDSN("app", tc.pass, "db", "3306", "cinema"); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestPoolLimits(t *testing.T) {
	cases := []struct {
		name         string
		cfg          config.Config
		wantOpen     int
		wantIdle     int
		wantLifetime time.Duration
	}{
		{
			"configured values pass through",
			config.Config{DBMaxOpenConns: 10, DBMaxIdleConns: 5, DBConnLifetime: time.Hour},
			10, 5, time.Hour,
		},
		{
			"zero values fall back",
			config.Config{},
			25, 25, 30 * time.Minute,
		},
		{
			"idle clamped to open",
			config.Config{DBMaxOpenConns: 4, DBMaxIdleConns: 50, DBConnLifetime: time.Minute},
			4, 4, time.Minute,
		},
		{
			"negative lifetime falls back",
			config.Config{DBMaxOpenConns: 8, DBMaxIdleConns: 2, DBConnLifetime: -time.Second},
			8, 2, 30 * time.Minute,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			open, idle, lifetime := poolLimits(tc.cfg)
			if open != tc.wantOpen || idle != tc.wantIdle || lifetime != tc.wantLifetime {
				t.Fatalf("got (%d, %d, %v), want (%d, %d, %v)",
					open, idle, lifetime, tc.wantOpen, tc.wantIdle, tc.wantLifetime)
			}
		})
	}
}
