// Package placement finds free, in-bounds positions for workspace tokens.
//
// The search is deterministic: identical inputs always yield the same
// position, so programmatic placement is reproducible in tests.
package placement

import (
	"math"

	"github.com/tatianab/element-mixer/internal/models"
)

const (
	// Spacing is the gap kept between tokens on top of their side length.
	Spacing = 10.0
	// AnglesPerRing is the number of equally spaced samples per spiral ring.
	AnglesPerRing = 12
	// StepDecay shrinks the ring step after every ring.
	StepDecay = 0.7
	// MaxSearchRadius caps the spiral search.
	MaxSearchRadius = 480.0

	// NoExclude means every token counts as an obstacle.
	NoExclude = -1
)

// Point is a top-left position in workspace-local pixels.
type Point struct {
	X, Y float64
}

// Layout describes the workspace bounds and the current token size.
type Layout struct {
	Width     float64
	Height    float64
	TokenSize float64
}

// DefaultLayout matches a desktop-sized workspace.
var DefaultLayout = Layout{Width: 960, Height: 640, TokenSize: 64}

// Resolve returns the nearest valid position to target. It never fails: when
// the workspace is full the original target is returned even if it overlaps.
// exclude is the index of a token being repositioned, or NoExclude.
func Resolve(target Point, tokens []models.WorkspaceToken, layout Layout, exclude int) Point {
	if valid(target, tokens, layout, exclude) {
		return target
	}

	if p, ok := spiral(target, tokens, layout, exclude); ok {
		return p
	}
	if p, ok := gridScan(tokens, layout, exclude); ok {
		return p
	}
	return target
}

// Midpoint is the drop point between two tokens.
func Midpoint(a, b models.WorkspaceToken) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

func spiral(target Point, tokens []models.WorkspaceToken, layout Layout, exclude int) (Point, bool) {
	step := layout.TokenSize + Spacing
	minStep := layout.TokenSize / 4
	if minStep < 1 {
		minStep = 1
	}

	radius := step
	for radius <= MaxSearchRadius {
		for i := 0; i < AnglesPerRing; i++ {
			angle := 2 * math.Pi * float64(i) / AnglesPerRing
			p := Point{
				X: math.Round(target.X + radius*math.Cos(angle)),
				Y: math.Round(target.Y + radius*math.Sin(angle)),
			}
			if valid(p, tokens, layout, exclude) {
				return p, true
			}
		}
		step = math.Max(step*StepDecay, minStep)
		radius += step
	}
	return Point{}, false
}

func gridScan(tokens []models.WorkspaceToken, layout Layout, exclude int) (Point, bool) {
	step := layout.TokenSize + Spacing
	for y := 0.0; y+layout.TokenSize <= layout.Height; y += step {
		for x := 0.0; x+layout.TokenSize <= layout.Width; x += step {
			p := Point{X: x, Y: y}
			if valid(p, tokens, layout, exclude) {
				return p, true
			}
		}
	}
	return Point{}, false
}

// Valid reports whether a token at p fits inside the layout without
// overlapping any token other than exclude.
func Valid(p Point, tokens []models.WorkspaceToken, layout Layout, exclude int) bool {
	return valid(p, tokens, layout, exclude)
}

func valid(p Point, tokens []models.WorkspaceToken, layout Layout, exclude int) bool {
	size := layout.TokenSize
	if p.X < 0 || p.Y < 0 || p.X+size > layout.Width || p.Y+size > layout.Height {
		return false
	}
	for _, t := range tokens {
		if t.Index == exclude {
			continue
		}
		if math.Abs(t.X-p.X) < size && math.Abs(t.Y-p.Y) < size {
			return false
		}
	}
	return true
}
