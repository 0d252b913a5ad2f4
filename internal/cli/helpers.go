package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/tatianab/element-mixer/internal/config"
	"github.com/tatianab/element-mixer/internal/engine"
	"github.com/tatianab/element-mixer/internal/icons"
	"github.com/tatianab/element-mixer/internal/logging"
	"github.com/tatianab/element-mixer/internal/models"
	"github.com/tatianab/element-mixer/internal/oracle"
	"github.com/tatianab/element-mixer/internal/placement"
	"github.com/tatianab/element-mixer/internal/session"
	"github.com/tatianab/element-mixer/internal/storage"
	"github.com/tatianab/element-mixer/internal/storage/sqlite"
)

// overrideDelay keeps hand-authored results from answering noticeably faster
// than the model.
const overrideDelay = 400 * time.Millisecond

// newOracle builds the oracle for a session. Tests swap it for a fake.
var newOracle = func(ctx context.Context, cfg *config.Config) (engine.Oracle, func(), error) {
	g, err := oracle.NewGemini(ctx, cfg.APIKey(), cfg.Model, logging.New("oracle"))
	if err != nil {
		return nil, nil, fmt.Errorf("create oracle: %w", err)
	}
	return g, g.Close, nil
}

type app struct {
	cfg     *config.Config
	store   storage.Store
	session *session.Session
	closers []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// loadConfig reads the environment and applies the persistent flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if rootFlags.profile != "" {
		cfg.Profile = rootFlags.profile
	}
	if rootFlags.mode != "" {
		cfg.GameMode = models.GameMode(rootFlags.mode)
		if !cfg.GameMode.Valid() {
			return nil, fmt.Errorf("unknown game mode %q", rootFlags.mode)
		}
	}
	if rootFlags.db != "" {
		cfg.DBPath = rootFlags.db
	}
	return cfg, nil
}

func openStore(cfg *config.Config) (storage.Store, error) {
	if cfg.DBPath != "" {
		st, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		return st, nil
	}
	return storage.NewFiles(cfg.SaveDir), nil
}

// openApp wires config, logging, storage, the oracle and a session for the
// configured profile. logTo receives log output.
func openApp(ctx context.Context, logTo io.Writer, withOracle bool) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logging.Init(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat, logTo)

	a := &app{cfg: cfg}
	a.store, err = openStore(cfg)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() { _ = a.store.Close() })

	var orc engine.Oracle
	if withOracle {
		o, closeOracle, err := newOracle(ctx, cfg)
		if err != nil {
			a.Close()
			return nil, err
		}
		orc = o
		a.closers = append(a.closers, closeOracle)
	}

	game := engine.NewGame(engine.Options{
		Mode:   cfg.GameMode,
		Oracle: orc,
		Layout: placement.Layout{
			Width:     cfg.WorkspaceWidth,
			Height:    cfg.WorkspaceHeight,
			TokenSize: cfg.TokenSize,
		},
		Icons: icons.Resolve,
		Usage: engine.Usage{
			HasAPIKey:    cfg.HasUserAPIKey(),
			TokenBalance: cfg.TokenBalance,
			DailyLimit:   cfg.DailyLimit,
		},
		Logger:        logging.New("engine"),
		OverrideDelay: overrideDelay,
	})

	a.session, err = session.Open(ctx, session.Options{
		Game:    game,
		Store:   a.store,
		Profile: cfg.Profile,
		Logger:  logging.New("session"),
	})
	if err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

// logFile opens the log file used while the full-screen UI owns the terminal.
func logFile(cfg *config.Config) (*os.File, error) {
	if err := os.MkdirAll(cfg.SaveDir, 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(cfg.SaveDir, "element-mixer.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
