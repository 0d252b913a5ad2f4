package cli

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/tatianab/element-mixer/internal/config"
	"github.com/tatianab/element-mixer/internal/engine"
	"github.com/tatianab/element-mixer/internal/models"
	"github.com/tatianab/element-mixer/internal/storage"
)

// setup points config at a temp save dir and replaces the oracle with one
// that always answers Steam.
func setup(t *testing.T) *atomic.Int32 {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "test")
	t.Setenv("ELEMENT_MIXER_SAVE_DIR", t.TempDir())
	t.Setenv("ELEMENT_MIXER_DAILY_LIMIT", "5")

	oldOracle := newOracle
	t.Cleanup(func() { newOracle = oldOracle })

	var calls atomic.Int32
	newOracle = func(context.Context, *config.Config) (engine.Oracle, func(), error) {
		return engine.OracleFunc(func(context.Context, models.OracleRequest) (*models.OracleResponse, error) {
			calls.Add(1)
			return &models.OracleResponse{Outcomes: []models.ElementDraft{{
				Name:      "Steam",
				Emoji:     "💨",
				Reasoning: "Heat turns water to vapor.",
				Tags:      []string{"gas"},
			}}}, nil
		}), func() {}, nil
	}
	return &calls
}

// runCLI resets flag state left over from earlier runs before executing.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	rootFlags.profile, rootFlags.mode, rootFlags.db = "", "", ""
	mixFlags.energized = false
	var buf bytes.Buffer
	err := run(&buf, args...)
	return buf.String(), err
}

func TestStatusFreshProfile(t *testing.T) {
	setup(t)
	got, err := runCLI(t, "status")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Profile:      current", "Mode:         science", "Discovered:   5 (0 final)", "0/5 today", "Energy"} {
		if !strings.Contains(got, want) {
			t.Errorf("status output missing %q:\n%s", want, got)
		}
	}
}

func TestMixPersistsAcrossRuns(t *testing.T) {
	calls := setup(t)

	got, err := runCLI(t, "mix", "fire", "Water")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "New element discovered: 💨 Steam") || !strings.Contains(got, "Heat turns water to vapor.") {
		t.Errorf("mix output = %q", got)
	}

	// The second mix is a cache hit and never reaches the oracle.
	got, err = runCLI(t, "mix", "Water", "Fire")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "You made 💨 Steam") {
		t.Errorf("repeat mix output = %q", got)
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("oracle called %d times, want 1", n)
	}

	got, err = runCLI(t, "status")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Discovered:   6", "Steam", "1/5 today"} {
		if !strings.Contains(got, want) {
			t.Errorf("status output missing %q:\n%s", want, got)
		}
	}
}

func TestMixErrors(t *testing.T) {
	setup(t)
	if _, err := runCLI(t, "mix", "Fire", "Plasma"); !errors.Is(err, engine.ErrUnknownElement) {
		t.Errorf("mixing an unknown element: err = %v", err)
	}
	if _, err := runCLI(t, "mix", "Earth", "Energy", "Energy"); !errors.Is(err, engine.ErrModifierInput) {
		t.Errorf("Energy as an ingredient: err = %v", err)
	}
	if _, err := runCLI(t, "mix", "Fire"); err == nil {
		t.Error("mix with one argument succeeded")
	}
	if _, err := runCLI(t, "--mode", "arcade", "status"); err == nil {
		t.Error("unknown --mode accepted")
	}
}

func TestReset(t *testing.T) {
	setup(t)
	if _, err := runCLI(t, "mix", "Fire", "Water"); err != nil {
		t.Fatal(err)
	}

	got, err := runCLI(t, "reset", "--mode", "creative")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "reset to creative mode") {
		t.Errorf("reset output = %q", got)
	}
	got, err = runCLI(t, "status")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "Mode:         creative") || strings.Contains(got, "Steam") {
		t.Errorf("status after reset:\n%s", got)
	}
}

func TestProfilesWithFiles(t *testing.T) {
	setup(t)
	got, err := runCLI(t, "profile", "new", "alice")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "Created profile alice (science mode)") {
		t.Errorf("profile new = %q", got)
	}
	if _, err := runCLI(t, "profile", "new", "alice"); !errors.Is(err, storage.ErrAlreadyExists) {
		t.Errorf("duplicate profile: err = %v", err)
	}
	if _, err := runCLI(t, "-p", "bob", "mix", "Fire", "Water"); err != nil {
		t.Fatal(err)
	}
	got, err = runCLI(t, "profile", "list")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "alice") || !strings.Contains(got, "bob") {
		t.Errorf("profile list = %q", got)
	}
}

func TestProfilesWithSQLite(t *testing.T) {
	setup(t)
	db := filepath.Join(t.TempDir(), "mixer.db")

	got, err := runCLI(t, "--db", db, "--mode", "creative", "profile", "new", "carol")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "Created profile carol") || !strings.Contains(got, "creative mode") {
		t.Errorf("profile new = %q", got)
	}
	if _, err := runCLI(t, "--db", db, "profile", "new", "carol"); !errors.Is(err, storage.ErrAlreadyExists) {
		t.Errorf("duplicate profile: err = %v", err)
	}

	if _, err := runCLI(t, "--db", db, "-p", "carol", "mix", "Fire", "Water"); err != nil {
		t.Fatal(err)
	}
	got, err = runCLI(t, "--db", db, "-p", "carol", "status")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Profile:      carol", "Mode:         creative", "1/5 today"} {
		if !strings.Contains(got, want) {
			t.Errorf("status output missing %q:\n%s", want, got)
		}
	}
}
