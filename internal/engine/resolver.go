package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tatianab/element-mixer/internal/mix"
	"github.com/tatianab/element-mixer/internal/models"
	"golang.org/x/sync/singleflight"
)

const (
	recentSuccessContext = 10
	recentFailureContext = models.MaxFailedCombinations

	// oracleTimeout bounds a shared oracle call, which outlives the
	// context of the caller that started it.
	oracleTimeout = 2 * time.Minute
)

type OutcomeKind int

const (
	OutcomeError OutcomeKind = iota
	OutcomeCached
	OutcomeDeterministic
	OutcomeGenerated
	OutcomeDenied
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeCached:
		return "cached"
	case OutcomeDeterministic:
		return "deterministic"
	case OutcomeGenerated:
		return "generated"
	case OutcomeDenied:
		return "denied"
	default:
		return "error"
	}
}

// Outcome is the result of resolving one combination.
type Outcome struct {
	Kind OutcomeKind
	Key  string

	// Element is set on a cache hit that names an existing element.
	Element *models.Element
	// Draft is set on deterministic and generated successes.
	Draft *models.ElementDraft

	Reasoning string // oracle's explanation, also the "no reaction" message
	Reason    string // why mixing was denied
	Err       error

	// Charged is set on the one generated outcome that pays for an oracle
	// call. Callers that joined an in-flight call get the answer for free.
	Charged bool
}

// NoReaction reports whether the combination resolved to nothing.
func (o Outcome) NoReaction() bool {
	switch o.Kind {
	case OutcomeCached:
		return o.Element == nil
	case OutcomeGenerated:
		return o.Draft == nil
	}
	return false
}

// ResultName is the name of the resolved element, or "" when there is none.
func (o Outcome) ResultName() string {
	switch {
	case o.Element != nil:
		return o.Element.Name
	case o.Draft != nil:
		return o.Draft.Name
	}
	return ""
}

// Request is one combination to resolve.
type Request struct {
	Inputs    []models.Element
	Energized bool
	Usage     Usage
}

// Names returns the input element names.
func (r Request) Names() []string {
	names := make([]string, len(r.Inputs))
	for i, e := range r.Inputs {
		names[i] = e.Name
	}
	return names
}

// Key returns the canonical combination key of the request.
func (r Request) Key() string {
	return mix.Key(r.Names(), r.Energized)
}

// Resolver decides what a combination produces. It never mutates state; the
// caller turns the returned Outcome into store actions.
type Resolver struct {
	Oracle     Oracle
	Permission PermissionFunc
	Overrides  Overrides
	Rand       func() float64
	Logger     *slog.Logger

	mu       sync.Mutex
	inflight singleflight.Group
}

// Permit runs the permission predicate.
func (r *Resolver) Permit(u Usage) Decision {
	if r.Permission == nil {
		return DefaultPermission(u)
	}
	return r.Permission(u)
}

// Resolve runs permission, cache, overrides and finally the oracle. Identical
// keys resolving concurrently share a single oracle call.
func (r *Resolver) Resolve(ctx context.Context, s models.GameState, req Request) Outcome {
	if n := len(req.Inputs); n < 2 || n > 3 {
		return Outcome{Kind: OutcomeError, Err: ErrInputCount}
	}

	if d := r.Permit(req.Usage); !d.Allowed {
		return Outcome{Kind: OutcomeDenied, Reason: d.Reason}
	}

	key := req.Key()
	if result, found := s.Combinations.Lookup(key); found {
		return r.cached(s, key, result)
	}

	if draft, ok := r.Overrides.Lookup(s.GameMode, key); ok {
		return Outcome{Kind: OutcomeDeterministic, Key: key, Draft: &draft, Reasoning: draft.Reasoning}
	}

	oreq := r.oracleRequest(s, req)
	resp, claimed, err := r.callOracle(ctx, string(s.GameMode)+"|"+key, oreq)
	if err != nil {
		r.logger().Warn("oracle call failed", "key", key, "error", err)
		return Outcome{Kind: OutcomeError, Key: key, Err: err}
	}
	out := r.normalize(key, resp)
	out.Charged = claimed && out.Kind == OutcomeGenerated
	return out
}

func (r *Resolver) cached(s models.GameState, key string, result *string) Outcome {
	if result == nil {
		return Outcome{Kind: OutcomeCached, Key: key}
	}
	e, ok := s.FindElement(*result)
	if !ok {
		r.logger().Warn("cached combination points at a missing element", "key", key, "result", *result)
		return Outcome{Kind: OutcomeCached, Key: key}
	}
	return Outcome{Kind: OutcomeCached, Key: key, Element: &e}
}

func (r *Resolver) oracleRequest(s models.GameState, req Request) models.OracleRequest {
	var success []string
	for _, rec := range s.Combinations.Recent(recentSuccessContext) {
		if rec.Result == nil {
			continue
		}
		success = append(success, fmt.Sprintf("%s = %s", describeKey(rec.Key), *rec.Result))
	}

	var failure []string
	failed := s.FailedCombinations
	if len(failed) > recentFailureContext {
		failed = failed[len(failed)-recentFailureContext:]
	}
	for _, key := range failed {
		failure = append(failure, describeKey(key))
	}

	return models.OracleRequest{
		Inputs:        req.Names(),
		Energized:     req.Energized,
		Mode:          s.GameMode,
		RecentSuccess: strings.Join(success, "\n"),
		RecentFailure: strings.Join(failure, "\n"),
		TargetRarity:  TargetRarity(r.roll()),
	}
}

// flight is one oracle call shared by every caller asking for the same key.
type flight struct {
	resp    *models.OracleResponse
	claimed atomic.Bool
}

// callOracle asks the oracle, joining an identical call already in flight.
// claimed is true for exactly one caller that receives the answer.
func (r *Resolver) callOracle(ctx context.Context, flightKey string, req models.OracleRequest) (resp *models.OracleResponse, claimed bool, err error) {
	if r.Oracle == nil {
		return nil, false, fmt.Errorf("no oracle configured")
	}
	ch := r.inflight.DoChan(flightKey, func() (any, error) {
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), oracleTimeout)
		defer cancel()
		answer, callErr := r.Oracle.Combine(callCtx, req)
		if callErr != nil {
			return nil, callErr
		}
		return &flight{resp: answer}, nil
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, false, res.Err
		}
		f, _ := res.Val.(*flight)
		if f == nil || f.resp == nil {
			return nil, false, fmt.Errorf("oracle returned an empty response")
		}
		return f.resp, f.claimed.CompareAndSwap(false, true), nil
	case <-ctx.Done():
		return nil, false, ctx.Err()
	}
}

func (r *Resolver) normalize(key string, resp *models.OracleResponse) Outcome {
	if resp.NoReaction() {
		return Outcome{Kind: OutcomeGenerated, Key: key, Reasoning: resp.Reasoning}
	}

	var candidates []models.ElementDraft
	for _, c := range resp.Outcomes {
		if c, ok := normalizeDraft(c); ok {
			candidates = append(candidates, c)
		}
	}

	selected, ok := SelectCandidate(candidates, r.roll(), r.roll())
	if !ok {
		return Outcome{Kind: OutcomeError, Key: key, Err: ErrNoUsableOutcome}
	}
	return Outcome{Kind: OutcomeGenerated, Key: key, Draft: &selected, Reasoning: selected.Reasoning}
}

func normalizeDraft(d models.ElementDraft) (models.ElementDraft, bool) {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return d, false
	}
	switch rarity := models.Rarity(strings.ToLower(strings.TrimSpace(string(d.Rarity)))); rarity {
	case models.RarityCommon, models.RarityUncommon, models.RarityRare:
		d.Rarity = rarity
	default:
		d.Rarity = models.RarityCommon
	}
	tags := make([]string, 0, len(d.Tags))
	for _, t := range d.Tags {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			tags = append(tags, t)
		}
	}
	d.Tags = tags
	return d, true
}

// describeKey renders "Earth+Water+Energy" as "Earth + Water (energized)"
// and leaves a plain "Energy+Energy" alone.
func describeKey(key string) string {
	energized := mix.IsEnergized(key)
	if energized {
		key = strings.TrimSuffix(key, "+"+models.ModifierName)
	}
	text := strings.ReplaceAll(key, "+", " + ")
	if energized {
		text += " (energized)"
	}
	return text
}

func (r *Resolver) roll() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Rand == nil {
		return rand.Float64()
	}
	return r.Rand()
}

func (r *Resolver) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}
