// Package storage persists game snapshots and daily oracle usage per profile.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/tatianab/element-mixer/internal/models"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

// Store is implemented by the YAML file store and the SQLite store.
type Store interface {
	// LoadSnapshot returns ErrNotFound when the profile has never been saved.
	LoadSnapshot(ctx context.Context, profile string) (models.Snapshot, error)
	SaveSnapshot(ctx context.Context, profile string, snap models.Snapshot) error
	ListProfiles(ctx context.Context) ([]string, error)

	DailyUsage(ctx context.Context, profile string, day time.Time) (int, error)
	// IncrementDailyUsage records one oracle call and returns the new count.
	IncrementDailyUsage(ctx context.Context, profile string, day time.Time) (int, error)

	Close() error
}

// DayKey is the calendar day usage is bucketed by, in UTC.
func DayKey(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}
