package placement

import (
	"math/rand/v2"
	"testing"

	"github.com/tatianab/element-mixer/internal/models"
)

func token(index int, x, y float64) models.WorkspaceToken {
	return models.WorkspaceToken{Index: index, X: x, Y: y}
}

func TestResolveExactTarget(t *testing.T) {
	got := Resolve(Point{X: 100, Y: 100}, nil, DefaultLayout, NoExclude)
	if got != (Point{X: 100, Y: 100}) {
		t.Errorf("Resolve = %+v, want exact target", got)
	}
}

func TestResolveAvoidsOverlap(t *testing.T) {
	tokens := []models.WorkspaceToken{token(1, 100, 100)}
	got := Resolve(Point{X: 110, Y: 110}, tokens, DefaultLayout, NoExclude)
	if !Valid(got, tokens, DefaultLayout, NoExclude) {
		t.Errorf("Resolve returned invalid point %+v", got)
	}
}

func TestResolveExcludesMovingToken(t *testing.T) {
	tokens := []models.WorkspaceToken{token(1, 100, 100)}
	target := Point{X: 110, Y: 110}
	if got := Resolve(target, tokens, DefaultLayout, 1); got != target {
		t.Errorf("Resolve = %+v, want %+v when the only obstacle is excluded", got, target)
	}
}

func TestResolveClampsIntoBounds(t *testing.T) {
	got := Resolve(Point{X: -30, Y: 600}, nil, DefaultLayout, NoExclude)
	if !Valid(got, nil, DefaultLayout, NoExclude) {
		t.Errorf("Resolve returned out of bounds point %+v", got)
	}
}

func TestResolveFullWorkspaceReturnsTarget(t *testing.T) {
	layout := Layout{Width: 128, Height: 64, TokenSize: 64}
	tokens := []models.WorkspaceToken{token(1, 0, 0), token(2, 64, 0)}
	target := Point{X: 10, Y: 0}
	if got := Resolve(target, tokens, layout, NoExclude); got != target {
		t.Errorf("Resolve = %+v, want fallback to target %+v", got, target)
	}
}

func TestResolveGridFallback(t *testing.T) {
	// A narrow strip where rings from a far-away target never land in bounds.
	layout := Layout{Width: 64, Height: 300, TokenSize: 64}
	tokens := []models.WorkspaceToken{token(1, 0, 0)}
	got := Resolve(Point{X: 2000, Y: 2000}, tokens, layout, NoExclude)
	if !Valid(got, tokens, layout, NoExclude) {
		t.Fatalf("Resolve = %+v, want a valid grid position", got)
	}
	if got != (Point{X: 0, Y: 74}) {
		t.Errorf("Resolve = %+v, want first free grid cell {0 74}", got)
	}
}

func TestResolveDeterministic(t *testing.T) {
	tokens := []models.WorkspaceToken{token(1, 200, 200), token(2, 260, 200), token(3, 200, 260)}
	a := Resolve(Point{X: 220, Y: 220}, tokens, DefaultLayout, NoExclude)
	b := Resolve(Point{X: 220, Y: 220}, tokens, DefaultLayout, NoExclude)
	if a != b {
		t.Errorf("Resolve not deterministic: %+v vs %+v", a, b)
	}
}

func TestResolveAlwaysValidWhenSpaceRemains(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for trial := 0; trial < 200; trial++ {
		var tokens []models.WorkspaceToken
		for i := 0; i < 20; i++ {
			p := Point{X: rng.Float64() * DefaultLayout.Width, Y: rng.Float64() * DefaultLayout.Height}
			p = Resolve(p, tokens, DefaultLayout, NoExclude)
			if !Valid(p, tokens, DefaultLayout, NoExclude) {
				t.Fatalf("trial %d token %d: invalid placement %+v", trial, i, p)
			}
			tokens = append(tokens, token(i+1, p.X, p.Y))
		}
	}
}
