package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/tatianab/element-mixer/internal/models"
	"gopkg.in/yaml.v3"
)

const usageFile = "usage.yaml"

// Files keeps one directory per profile under dir.
type Files struct {
	dir string
	mu  sync.Mutex
}

// NewFiles stores profiles under dir, ".saves" when empty.
func NewFiles(dir string) *Files {
	if dir == "" {
		dir = ".saves"
	}
	return &Files{dir: dir}
}

func (f *Files) LoadSnapshot(_ context.Context, profile string) (models.Snapshot, error) {
	snap, err := models.LoadSnapshot(f.dir, profile)
	if errors.Is(err, fs.ErrNotExist) {
		return models.Snapshot{}, fmt.Errorf("profile %q: %w", profile, ErrNotFound)
	}
	return snap, err
}

func (f *Files) SaveSnapshot(_ context.Context, profile string, snap models.Snapshot) error {
	return snap.Save(f.dir, profile)
}

func (f *Files) ListProfiles(context.Context) ([]string, error) {
	return models.ListSaves(f.dir)
}

func (f *Files) DailyUsage(_ context.Context, profile string, day time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts, err := f.readUsage(profile)
	if err != nil {
		return 0, err
	}
	return counts[DayKey(day)], nil
}

func (f *Files) IncrementDailyUsage(_ context.Context, profile string, day time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts, err := f.readUsage(profile)
	if err != nil {
		return 0, err
	}
	key := DayKey(day)
	// Only today matters; older buckets are dropped.
	next := map[string]int{key: counts[key] + 1}

	data, err := yaml.Marshal(next)
	if err != nil {
		return 0, err
	}
	dir := filepath.Join(f.dir, profile)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, err
	}
	if err := os.WriteFile(filepath.Join(dir, usageFile), data, 0644); err != nil {
		return 0, err
	}
	return next[key], nil
}

func (f *Files) Close() error { return nil }

func (f *Files) readUsage(profile string) (map[string]int, error) {
	data, err := os.ReadFile(filepath.Join(f.dir, profile, usageFile))
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]int{}, nil
	}
	if err != nil {
		return nil, err
	}
	counts := map[string]int{}
	if err := yaml.Unmarshal(data, &counts); err != nil {
		return nil, fmt.Errorf("decode usage: %w", err)
	}
	return counts, nil
}

var _ Store = (*Files)(nil)
