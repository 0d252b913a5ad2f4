package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tatianab/element-mixer/internal/achievements"
	"github.com/tatianab/element-mixer/internal/mix"
	"github.com/tatianab/element-mixer/internal/models"
	"github.com/tatianab/element-mixer/internal/placement"
	"github.com/tatianab/element-mixer/internal/state"
)

// IconFunc resolves a display reference for a newly created element.
type IconFunc func(emoji, name string, tags []string) string

// Options configures a Game. Zero values pick sensible defaults; a nil
// Overrides uses DefaultOverrides, an empty non-nil one disables them.
type Options struct {
	Mode       models.GameMode
	Oracle     Oracle
	Permission PermissionFunc
	Overrides  Overrides
	Rand       func() float64
	Layout     placement.Layout
	Icons      IconFunc
	Usage      Usage
	Now        func() time.Time
	Logger     *slog.Logger

	// OverrideDelay keeps deterministic results from feeling instant next to
	// oracle results.
	OverrideDelay time.Duration
}

// Game drives one player's session: it owns the state store and turns
// workspace gestures into resolved mixes.
type Game struct {
	store    *state.Store
	resolver *Resolver
	checker  *achievements.Checker
	layout   placement.Layout
	icons    IconFunc
	now      func() time.Time
	delay    time.Duration
	logger   *slog.Logger

	mu    sync.Mutex
	usage Usage
}

// Result describes what a mix did.
type Result struct {
	Kind    mix.Kind
	Outcome Outcome

	// Element is the produced element, new or already known.
	Element      *models.Element
	IsNew        bool
	Achievements []models.Achievement
	// Token is the token left in the workspace: the result token, or the
	// energized token for an Energize mix.
	Token *models.WorkspaceToken
}

// Message is short player-facing text for the result.
func (r Result) Message() string {
	if r.Kind == mix.Energize && r.Token != nil {
		return fmt.Sprintf("%s is now energized", r.Token.Name)
	}
	switch o := r.Outcome; {
	case o.Kind == OutcomeDenied:
		return o.Reason
	case o.Kind == OutcomeError:
		return "The mix fizzled. Please try again."
	case o.NoReaction():
		if o.Reasoning != "" {
			return o.Reasoning
		}
		return "No reaction."
	case r.IsNew:
		return fmt.Sprintf("New element discovered: %s %s", r.Element.Emoji, r.Element.Name)
	case r.Element != nil:
		return fmt.Sprintf("You made %s %s", r.Element.Emoji, r.Element.Name)
	}
	return ""
}

func NewGame(opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	overrides := opts.Overrides
	if overrides == nil {
		overrides = DefaultOverrides
	}
	layout := opts.Layout
	if layout.TokenSize <= 0 {
		layout = placement.DefaultLayout
	}
	return &Game{
		store: state.NewStore(opts.Mode),
		resolver: &Resolver{
			Oracle:     opts.Oracle,
			Permission: opts.Permission,
			Overrides:  overrides,
			Rand:       opts.Rand,
			Logger:     logger,
		},
		checker: &achievements.Checker{Now: now, Logger: logger},
		layout:  layout,
		icons:   opts.Icons,
		now:     now,
		delay:   opts.OverrideDelay,
		logger:  logger,
		usage:   opts.Usage,
	}
}

// State returns the current state with progressive achievement tiers
// recomputed.
func (g *Game) State() models.GameState {
	s := g.store.State()
	s.Achievements = achievements.UpdateWithProgress(s.Achievements, s.Elements, s.EndElements)
	return s
}

// Snapshot returns the persistable slice of the current state.
func (g *Game) Snapshot() models.Snapshot {
	return g.State().Snapshot()
}

// Load merges a persisted snapshot over the current state.
func (g *Game) Load(snap models.Snapshot) models.GameState {
	return g.store.Dispatch(state.LoadState{Snapshot: snap})
}

func (g *Game) SetMode(mode models.GameMode) models.GameState {
	return g.store.Dispatch(state.SetGameMode{Mode: mode})
}

func (g *Game) Reset() models.GameState {
	return g.store.Dispatch(state.Reset{})
}

func (g *Game) Usage() Usage {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.usage
}

func (g *Game) SetUsage(u Usage) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.usage = u
}

// Layout returns the workspace layout used for placement.
func (g *Game) Layout() placement.Layout {
	return g.layout
}

// Place puts a discovered element into the workspace near p.
func (g *Game) Place(name string, p placement.Point) (models.WorkspaceToken, error) {
	var placed models.WorkspaceToken
	var err error
	g.store.Update(func(s models.GameState) []state.Action {
		e, ok := s.FindElement(name)
		if !ok {
			err = fmt.Errorf("place %q: %w", name, ErrUnknownElement)
			return nil
		}
		if e.IsEndElement {
			err = fmt.Errorf("place %q: %w", name, ErrTerminalInput)
			return nil
		}
		pos := placement.Resolve(p, s.Workspace, g.layout, placement.NoExclude)
		placed = models.WorkspaceToken{Element: e, X: pos.X, Y: pos.Y, Index: s.NextTokenIndex}
		return []state.Action{state.AddWorkspaceToken{Token: placed}}
	})
	return placed, err
}

// Move drags a token to the nearest free position around p.
func (g *Game) Move(index int, p placement.Point) (models.WorkspaceToken, error) {
	var moved models.WorkspaceToken
	var err error
	g.store.Update(func(s models.GameState) []state.Action {
		tok, ok := s.FindToken(index)
		if !ok {
			err = fmt.Errorf("move token %d: %w", index, ErrTokenNotFound)
			return nil
		}
		if tok.IsEndElement {
			err = fmt.Errorf("move token %d: %w", index, ErrTerminalInput)
			return nil
		}
		pos := placement.Resolve(p, s.Workspace, g.layout, index)
		tok.X, tok.Y = pos.X, pos.Y
		moved = tok
		return []state.Action{state.UpdateWorkspaceToken{Index: index, X: pos.X, Y: pos.Y}}
	})
	return moved, err
}

// Remove takes a token out of the workspace.
func (g *Game) Remove(index int) error {
	if _, ok := g.store.State().FindToken(index); !ok {
		return fmt.Errorf("remove token %d: %w", index, ErrTokenNotFound)
	}
	g.store.Dispatch(state.RemoveWorkspaceTokens{Indices: []int{index}})
	return nil
}

// Clear empties the workspace.
func (g *Game) Clear() {
	g.store.Dispatch(state.ClearWorkspace{})
}

// Undo reverts the last new discovery.
func (g *Game) Undo() (models.LastCombination, error) {
	var undone models.LastCombination
	var err error
	g.store.Update(func(s models.GameState) []state.Action {
		if s.LastCombination == nil {
			err = ErrNothingToUndo
			return nil
		}
		undone = *s.LastCombination
		return []state.Action{state.Undo{}}
	})
	return undone, err
}

// Mix combines two workspace tokens. Terminal tokens are rejected. Both
// tokens leave the workspace before the oracle is awaited so they cannot be
// mixed twice; they come back if nothing is produced.
func (g *Game) Mix(ctx context.Context, a, b int) (Result, error) {
	if a == b {
		return Result{}, ErrSameToken
	}

	var (
		ta, tb  models.WorkspaceToken
		before  []models.WorkspaceToken
		kind    mix.Kind
		req     Request
		settled *Result
		err     error
	)
	g.store.Update(func(s models.GameState) []state.Action {
		var ok bool
		if ta, ok = s.FindToken(a); !ok {
			err = fmt.Errorf("mix token %d: %w", a, ErrTokenNotFound)
			return nil
		}
		if tb, ok = s.FindToken(b); !ok {
			err = fmt.Errorf("mix token %d: %w", b, ErrTokenNotFound)
			return nil
		}
		if ta.IsEndElement || tb.IsEndElement {
			err = ErrTerminalInput
			return nil
		}

		kind = mix.Classify(ta, tb)
		if kind == mix.Energize {
			res, actions := energize(ta, tb)
			settled = &res
			return actions
		}

		req = Request{
			Inputs:    []models.Element{ta.Element, tb.Element},
			Energized: kind == mix.EnergyMix,
			Usage:     g.Usage(),
		}
		if d := g.resolver.Permit(req.Usage); !d.Allowed {
			settled = &Result{Kind: kind, Outcome: Outcome{Kind: OutcomeDenied, Reason: d.Reason}}
			return nil
		}
		before = s.Workspace
		return []state.Action{state.RemoveWorkspaceTokens{Indices: []int{a, b}}}
	})
	if err != nil {
		return Result{}, err
	}
	if settled != nil {
		return *settled, nil
	}

	drop := placement.Midpoint(ta, tb)
	out := g.resolve(ctx, req)
	return g.settle(kind, req, out, before, []models.WorkspaceToken{ta, tb}, &drop), nil
}

// Combine mixes 2 or 3 discovered elements directly, without the workspace.
func (g *Game) Combine(ctx context.Context, energized bool, names ...string) (Result, error) {
	s := g.store.State()
	if len(names) < 2 || len(names) > 3 {
		return Result{}, ErrInputCount
	}
	inputs := make([]models.Element, 0, len(names))
	for _, name := range names {
		e, ok := s.FindElement(name)
		if !ok {
			return Result{}, fmt.Errorf("combine %q: %w", name, ErrUnknownElement)
		}
		if e.IsEndElement {
			return Result{}, fmt.Errorf("combine %q: %w", name, ErrTerminalInput)
		}
		// "Earth+Energy+Energy" would name both a plain and an energized mix.
		if mix.IsModifier(e.Name) {
			return Result{}, fmt.Errorf("combine %q: %w", name, ErrModifierInput)
		}
		inputs = append(inputs, e)
	}

	kind := mix.PlainMix
	if energized {
		kind = mix.EnergyMix
	}
	req := Request{Inputs: inputs, Energized: energized, Usage: g.Usage()}
	out := g.resolve(ctx, req)
	return g.settle(kind, req, out, s.Workspace, nil, nil), nil
}

func energize(ta, tb models.WorkspaceToken) (Result, []state.Action) {
	target, modifier := ta, tb
	if mix.IsModifier(ta.Name) {
		target, modifier = tb, ta
	}
	energized := true
	target.Energized = true
	return Result{Kind: mix.Energize, Token: &target}, []state.Action{
		state.RemoveWorkspaceTokens{Indices: []int{modifier.Index}},
		state.UpdateWorkspaceToken{Index: target.Index, X: target.X, Y: target.Y, Energized: &energized},
	}
}

func (g *Game) resolve(ctx context.Context, req Request) Outcome {
	out := g.resolver.Resolve(ctx, g.store.State(), req)
	switch {
	case out.Charged:
		g.mu.Lock()
		g.usage = g.usage.consume()
		g.mu.Unlock()
	case out.Kind == OutcomeDeterministic:
		if g.delay > 0 {
			t := time.NewTimer(g.delay)
			select {
			case <-t.C:
			case <-ctx.Done():
				t.Stop()
			}
		}
	}
	g.logger.Debug("combination resolved", "key", out.Key, "outcome", out.Kind, "result", out.ResultName())
	return out
}

// settle reconciles an outcome with the store. consumed tokens (already
// removed) are restored when nothing was produced; drop is where a result
// token goes, nil for workspace-less combinations.
func (g *Game) settle(kind mix.Kind, req Request, out Outcome, before, consumed []models.WorkspaceToken, drop *placement.Point) Result {
	res := Result{Kind: kind, Outcome: out}

	g.store.Update(func(s models.GameState) []state.Action {
		var actions []state.Action
		restore := func() {
			if len(consumed) > 0 {
				actions = append(actions, state.SetWorkspace{Tokens: append(append([]models.WorkspaceToken(nil), s.Workspace...), consumed...)})
			}
		}

		switch {
		case out.Kind == OutcomeDenied || out.Kind == OutcomeError:
			restore()
			return actions

		case out.NoReaction():
			if out.Kind == OutcomeGenerated {
				actions = append(actions,
					state.AddFailedCombination{Key: out.Key},
					state.SetCombination{Key: out.Key, Result: nil},
				)
			}
			restore()
			return actions
		}

		var produced models.Element
		switch existing, found := g.existing(s, out); {
		case found:
			// Cache hit or rediscovery: no new unlock, no undo record.
			produced = existing
			if out.Kind != OutcomeCached {
				actions = append(actions, state.SetCombination{Key: out.Key, Result: models.StringPtr(existing.Name)})
			}
			actions = append(actions, state.ClearLastCombination{})

		default:
			produced = g.newElement(s, req, *out.Draft)
			res.IsNew = true
			res.Achievements = g.checker.Check(produced, s.Elements, s.EndElements, s.Achievements, s.GameMode)
			actions = append(actions,
				state.RecordLastCombination{Record: state.NewLastCombination(produced, out.Key, before, res.Achievements, g.now())},
			)
			if produced.IsEndElement {
				actions = append(actions, state.AddEndElement{Element: produced})
			} else {
				actions = append(actions, state.AddElement{Element: produced})
			}
			actions = append(actions,
				state.SetCombination{Key: out.Key, Result: models.StringPtr(produced.Name)},
				state.AddAchievements{Achievements: res.Achievements},
			)
		}
		actions = append(actions, state.IncrementCombinations{})
		res.Element = &produced

		if drop != nil {
			pos := placement.Resolve(*drop, s.Workspace, g.layout, placement.NoExclude)
			tok := models.WorkspaceToken{Element: produced, X: pos.X, Y: pos.Y, Index: s.NextTokenIndex}
			res.Token = &tok
			actions = append(actions, state.AddWorkspaceToken{Token: tok})
		}
		return actions
	})

	if res.IsNew {
		g.logger.Info("new element discovered", "element", res.Element.Name, "key", out.Key, "achievements", len(res.Achievements))
	}
	return res
}

// existing resolves the outcome to an element that is already discovered.
func (g *Game) existing(s models.GameState, out Outcome) (models.Element, bool) {
	if out.Element != nil {
		return *out.Element, true
	}
	return s.FindElement(out.Draft.Name)
}

func (g *Game) newElement(s models.GameState, req Request, d models.ElementDraft) models.Element {
	order := s.DiscoveredCount()
	for _, e := range append(append([]models.Element(nil), s.Elements...), s.EndElements...) {
		if e.UnlockOrder >= order {
			order = e.UnlockOrder + 1
		}
	}
	e := models.Element{
		ID:             models.Slug(d.Name),
		Name:           d.Name,
		Emoji:          d.Emoji,
		Color:          d.Color,
		UnlockOrder:    order,
		Rarity:         d.Rarity,
		Reasoning:      d.Reasoning,
		Tags:           append([]string(nil), d.Tags...),
		IsEndElement:   d.IsEndElement,
		Parents:        req.Names(),
		EnergyEnhanced: req.Energized,
	}
	if g.icons != nil {
		e.Icon = g.icons(e.Emoji, e.Name, e.Tags)
	}
	return e
}
