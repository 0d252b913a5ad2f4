// Package session binds a Game to a saved profile: it restores the snapshot
// on open, persists after every change and keeps the daily oracle count in
// storage so limits survive restarts.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tatianab/element-mixer/internal/engine"
	"github.com/tatianab/element-mixer/internal/models"
	"github.com/tatianab/element-mixer/internal/placement"
	"github.com/tatianab/element-mixer/internal/storage"
)

type Session struct {
	game    *engine.Game
	store   storage.Store
	profile string
	now     func() time.Time
	logger  *slog.Logger
}

type Options struct {
	Game    *engine.Game
	Store   storage.Store
	Profile string
	Now     func() time.Time
	Logger  *slog.Logger
}

// Open restores the profile's snapshot, if any, into the game.
func Open(ctx context.Context, opts Options) (*Session, error) {
	if opts.Game == nil || opts.Store == nil {
		return nil, fmt.Errorf("session needs a game and a store")
	}
	s := &Session{
		game:    opts.Game,
		store:   opts.Store,
		profile: opts.Profile,
		now:     opts.Now,
		logger:  opts.Logger,
	}
	if s.profile == "" {
		s.profile = "current"
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	snap, err := s.store.LoadSnapshot(ctx, s.profile)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		s.logger.Info("starting a new game", "profile", s.profile, "mode", s.game.State().GameMode)
	case err != nil:
		return nil, fmt.Errorf("load profile %q: %w", s.profile, err)
	default:
		// A saved mode wins over the configured one.
		if snap.GameMode.Valid() {
			s.game.SetMode(snap.GameMode)
		}
		s.game.Load(snap)
	}

	count, err := s.store.DailyUsage(ctx, s.profile, s.now())
	if err != nil {
		return nil, err
	}
	u := s.game.Usage()
	u.DailyCount = count
	s.game.SetUsage(u)
	return s, nil
}

func (s *Session) Profile() string { return s.profile }

func (s *Session) Game() *engine.Game { return s.game }

func (s *Session) State() models.GameState { return s.game.State() }

func (s *Session) Place(name string, p placement.Point) (models.WorkspaceToken, error) {
	return s.game.Place(name, p)
}

func (s *Session) Mix(ctx context.Context, a, b int) (engine.Result, error) {
	res, err := s.game.Mix(ctx, a, b)
	if err != nil {
		return res, err
	}
	return res, s.afterMix(ctx, res)
}

func (s *Session) Combine(ctx context.Context, energized bool, names ...string) (engine.Result, error) {
	res, err := s.game.Combine(ctx, energized, names...)
	if err != nil {
		return res, err
	}
	return res, s.afterMix(ctx, res)
}

func (s *Session) Undo(ctx context.Context) (models.LastCombination, error) {
	last, err := s.game.Undo()
	if err != nil {
		return last, err
	}
	return last, s.Save(ctx)
}

func (s *Session) Reset(ctx context.Context) error {
	s.game.Reset()
	return s.Save(ctx)
}

func (s *Session) SetMode(ctx context.Context, mode models.GameMode) error {
	if !mode.Valid() {
		return fmt.Errorf("unknown game mode %q", mode)
	}
	s.game.SetMode(mode)
	return s.Save(ctx)
}

// Save writes the current snapshot.
func (s *Session) Save(ctx context.Context) error {
	if err := s.store.SaveSnapshot(ctx, s.profile, s.game.Snapshot()); err != nil {
		return fmt.Errorf("save profile %q: %w", s.profile, err)
	}
	return nil
}

func (s *Session) afterMix(ctx context.Context, res engine.Result) error {
	if res.Outcome.Charged {
		n, err := s.store.IncrementDailyUsage(ctx, s.profile, s.now())
		if err != nil {
			s.logger.Warn("failed to record oracle usage", "profile", s.profile, "error", err)
		} else {
			u := s.game.Usage()
			u.DailyCount = n
			s.game.SetUsage(u)
		}
	}
	return s.Save(ctx)
}
