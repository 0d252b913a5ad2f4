package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tatianab/element-mixer/internal/engine"
	"github.com/tatianab/element-mixer/internal/models"
	"github.com/tatianab/element-mixer/internal/session"
	"github.com/tatianab/element-mixer/internal/storage"
)

func newTestModel(t *testing.T) model {
	t.Helper()
	game := engine.NewGame(engine.Options{
		Mode:      models.ModeScience,
		Overrides: engine.Overrides{},
		Usage:     engine.Usage{DailyLimit: 5},
		Oracle: engine.OracleFunc(func(context.Context, models.OracleRequest) (*models.OracleResponse, error) {
			return &models.OracleResponse{Outcomes: []models.ElementDraft{{Name: "Steam", Emoji: "💨", Tags: []string{"gas"}}}}, nil
		}),
	})
	s, err := session.Open(context.Background(), session.Options{Game: game, Store: storage.NewFiles(t.TempDir())})
	if err != nil {
		t.Fatal(err)
	}
	m := NewModel(s)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(model)
}

func TestRunWorkspaceCommands(t *testing.T) {
	m := newTestModel(t)

	if got := m.run(command{kind: cmdPlace, names: []string{"Fire"}}); !strings.Contains(got, "#1") {
		t.Errorf("place = %q", got)
	}
	if got := m.run(command{kind: cmdPlace, names: []string{"Water"}}); !strings.Contains(got, "#2") {
		t.Errorf("place = %q", got)
	}
	if got := m.run(command{kind: cmdPlace, names: []string{"Plasma"}}); !strings.Contains(got, "not been discovered") {
		t.Errorf("placing an unknown element = %q", got)
	}
	if got := m.run(command{kind: cmdMove, indices: []int{1}, x: 0, y: 0, hasPos: true}); !strings.Contains(got, "(0, 0)") {
		t.Errorf("move = %q", got)
	}
	if got := m.run(command{kind: cmdUndo}); got != engine.ErrNothingToUndo.Error() {
		t.Errorf("undo = %q", got)
	}
	if n := len(m.session.State().Workspace); n != 2 {
		t.Fatalf("workspace has %d tokens, want 2", n)
	}

	m.run(command{kind: cmdClear})
	if n := len(m.session.State().Workspace); n != 0 {
		t.Errorf("workspace has %d tokens after clear", n)
	}
}

func TestMixCommandUpdatesLog(t *testing.T) {
	m := newTestModel(t)
	m.run(command{kind: cmdPlace, names: []string{"Fire"}})
	m.run(command{kind: cmdPlace, names: []string{"Water"}})

	msg := m.mix(command{kind: cmdMix, indices: []int{1, 2}})()
	updated, _ := m.Update(msg)
	m = updated.(model)

	if !strings.Contains(m.gameLog, "New element discovered") || !strings.Contains(m.gameLog, "Steam") {
		t.Errorf("log missing the discovery:\n%s", m.gameLog)
	}
	if !strings.Contains(m.renderState(), "Steam") {
		t.Error("side panel does not list Steam")
	}
	if !strings.Contains(m.View(), "Mixes today: 1/5") {
		t.Errorf("usage not shown:\n%s", m.View())
	}
}
