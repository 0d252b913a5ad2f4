// Package sqlite provides a SQLite-backed storage.Store: one row per profile
// holding the YAML snapshot, plus per-day oracle usage counters.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tatianab/element-mixer/internal/models"
	"github.com/tatianab/element-mixer/internal/storage"
	"github.com/tatianab/element-mixer/internal/storage/sqlite/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// Store persists profiles in SQLite.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Profile is one save slot.
type Profile struct {
	ID        string
	Name      string
	GameMode  models.GameMode
	CreatedAt time.Time
	UpdatedAt time.Time
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens the database at path and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(context.Background(), sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// CreateProfile inserts a new, empty profile.
func (s *Store) CreateProfile(ctx context.Context, name string, mode models.GameMode) (Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Profile{}, fmt.Errorf("profile name is required")
	}
	if !mode.Valid() {
		return Profile{}, fmt.Errorf("unknown game mode %q", mode)
	}
	now := s.now().UTC()
	p := Profile{ID: uuid.NewString(), Name: name, GameMode: mode, CreatedAt: now, UpdatedAt: now}

	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO profiles (id, name, game_mode, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.Name, string(p.GameMode), toMillis(now), toMillis(now),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return Profile{}, fmt.Errorf("profile %q: %w", name, storage.ErrAlreadyExists)
		}
		return Profile{}, fmt.Errorf("create profile: %w", err)
	}
	return p, nil
}

// GetProfile looks a profile up by name.
func (s *Store) GetProfile(ctx context.Context, name string) (Profile, error) {
	var (
		p                    Profile
		mode                 string
		createdAt, updatedAt int64
	)
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, name, game_mode, created_at, updated_at FROM profiles WHERE name = ?`,
		strings.TrimSpace(name),
	).Scan(&p.ID, &p.Name, &mode, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, fmt.Errorf("profile %q: %w", name, storage.ErrNotFound)
	}
	if err != nil {
		return Profile{}, fmt.Errorf("get profile: %w", err)
	}
	p.GameMode = models.GameMode(mode)
	p.CreatedAt = fromMillis(createdAt)
	p.UpdatedAt = fromMillis(updatedAt)
	return p, nil
}

func (s *Store) ListProfiles(ctx context.Context) ([]string, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT name FROM profiles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *Store) LoadSnapshot(ctx context.Context, profile string) (models.Snapshot, error) {
	var data []byte
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT snapshot_yaml FROM profiles WHERE name = ?`, strings.TrimSpace(profile),
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && len(data) == 0) {
		return models.Snapshot{}, fmt.Errorf("profile %q: %w", profile, storage.ErrNotFound)
	}
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}
	return models.DecodeSnapshot(data)
}

// SaveSnapshot stores snap, creating the profile on first save.
func (s *Store) SaveSnapshot(ctx context.Context, profile string, snap models.Snapshot) error {
	data, err := snap.MarshalYAMLBytes()
	if err != nil {
		return err
	}
	p, err := s.ensureProfile(ctx, profile, snap.GameMode)
	if err != nil {
		return err
	}
	mode := snap.GameMode
	if !mode.Valid() {
		mode = p.GameMode
	}
	_, err = s.sqlDB.ExecContext(ctx,
		`UPDATE profiles SET snapshot_yaml = ?, game_mode = ?, updated_at = ? WHERE id = ?`,
		data, string(mode), toMillis(s.now()), p.ID,
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (s *Store) DailyUsage(ctx context.Context, profile string, day time.Time) (int, error) {
	var count int
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT u.count FROM daily_usage u JOIN profiles p ON p.id = u.profile_id WHERE p.name = ? AND u.day = ?`,
		strings.TrimSpace(profile), storage.DayKey(day),
	).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("daily usage: %w", err)
	}
	return count, nil
}

func (s *Store) IncrementDailyUsage(ctx context.Context, profile string, day time.Time) (int, error) {
	p, err := s.ensureProfile(ctx, profile, models.ModeScience)
	if err != nil {
		return 0, err
	}
	var count int
	err = s.sqlDB.QueryRowContext(ctx,
		`INSERT INTO daily_usage (profile_id, day, count) VALUES (?, ?, 1)
		 ON CONFLICT (profile_id, day) DO UPDATE SET count = count + 1
		 RETURNING count`,
		p.ID, storage.DayKey(day),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("increment daily usage: %w", err)
	}
	return count, nil
}

func (s *Store) ensureProfile(ctx context.Context, name string, mode models.GameMode) (Profile, error) {
	p, err := s.GetProfile(ctx, name)
	if err == nil || !errors.Is(err, storage.ErrNotFound) {
		return p, err
	}
	if !mode.Valid() {
		mode = models.ModeScience
	}
	p, err = s.CreateProfile(ctx, name, mode)
	if errors.Is(err, storage.ErrAlreadyExists) {
		return s.GetProfile(ctx, name)
	}
	return p, err
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

var _ storage.Store = (*Store)(nil)
