package models

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
)

// GameMode selects the starting elements and the oracle's prompt family.
type GameMode string

const (
	ModeScience  GameMode = "science"
	ModeCreative GameMode = "creative"
)

// Valid reports whether m is a known game mode.
func (m GameMode) Valid() bool {
	return m == ModeScience || m == ModeCreative
}

type Rarity string

const (
	RarityCommon   Rarity = "common"
	RarityUncommon Rarity = "uncommon"
	RarityRare     Rarity = "rare"
)

// Element represents a discovered entity.
type Element struct {
	ID             string   `yaml:"id"`
	Name           string   `yaml:"name"`
	Emoji          string   `yaml:"emoji"`
	Color          string   `yaml:"color"`
	Icon           string   `yaml:"icon,omitempty"` // opaque display reference, never interpreted
	UnlockOrder    int      `yaml:"unlock_order"`
	Rarity         Rarity   `yaml:"rarity,omitempty"`
	Reasoning      string   `yaml:"reasoning,omitempty"`
	Tags           []string `yaml:"tags,omitempty"`
	IsEndElement   bool     `yaml:"is_end_element,omitempty"`
	Parents        []string `yaml:"parents,omitempty"` // lineage for display only
	EnergyEnhanced bool     `yaml:"energy_enhanced,omitempty"`
}

// HasTag reports whether the element carries tag (case-insensitive).
func (e Element) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if SameName(t, tag) {
			return true
		}
	}
	return false
}

// ElementDraft is a proposed element that has not been assigned an unlock order yet.
type ElementDraft struct {
	Name         string   `yaml:"result"`
	Emoji        string   `yaml:"emoji"`
	Color        string   `yaml:"color"`
	Rarity       Rarity   `yaml:"rarity"`
	Reasoning    string   `yaml:"reasoning"`
	Tags         []string `yaml:"tags"`
	IsEndElement bool     `yaml:"is_end_element"`
}

// WorkspaceToken is an element placed in the bounded workspace.
type WorkspaceToken struct {
	Element   `yaml:",inline"`
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	Index     int     `yaml:"index"` // opaque and monotonically increasing, not a position
	Energized bool    `yaml:"energized,omitempty"`

	// Only meaningful while a drag is in flight.
	FromWorkspace bool `yaml:"-"`
	SourceIndex   int  `yaml:"-"`
}

// Achievement is an unlocked achievement. Progressive achievements also carry
// their current tier.
type Achievement struct {
	ID          string    `yaml:"id"`
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Emoji       string    `yaml:"emoji"`
	Unlocked    time.Time `yaml:"unlocked"`

	CountType    string `yaml:"count_type,omitempty"`
	Tier         int    `yaml:"tier,omitempty"`
	CurrentCount int    `yaml:"current_count,omitempty"`
	NextTierAt   *int   `yaml:"next_tier_at,omitempty"` // nil at max tier
}

// LastCombination is the single-slot undo record.
type LastCombination struct {
	Created            Element          `yaml:"created"`
	IsEndElement       bool             `yaml:"is_end_element"`
	Key                string           `yaml:"key"`
	WorkspaceBefore    []WorkspaceToken `yaml:"workspace_before"`
	AchievementsGained []Achievement    `yaml:"achievements_gained"`
	Timestamp          time.Time        `yaml:"timestamp"`
}

// GameState is the aggregate root of a game.
type GameState struct {
	Elements              []Element          `yaml:"elements"`
	EndElements           []Element          `yaml:"end_elements"`
	Combinations          Combinations       `yaml:"combinations"`
	FailedCombinations    FailedCombinations `yaml:"failed_combinations"`
	Workspace             []WorkspaceToken   `yaml:"workspace"`
	Achievements          []Achievement      `yaml:"achievements"`
	LastCombination       *LastCombination   `yaml:"last_combination"`
	UndoAvailable         bool               `yaml:"undo_available"`
	GameMode              GameMode           `yaml:"game_mode"`
	TotalCombinationsMade int                `yaml:"total_combinations_made"`
	NextTokenIndex        int                `yaml:"next_token_index"`
}

// DiscoveredCount is the size of both collections combined.
func (s GameState) DiscoveredCount() int {
	return len(s.Elements) + len(s.EndElements)
}

// FindElement looks a name up in both collections, case-insensitively.
func (s GameState) FindElement(name string) (Element, bool) {
	for _, e := range s.Elements {
		if SameName(e.Name, name) {
			return e, true
		}
	}
	for _, e := range s.EndElements {
		if SameName(e.Name, name) {
			return e, true
		}
	}
	return Element{}, false
}

// FindToken returns the workspace token with the given index.
func (s GameState) FindToken(index int) (WorkspaceToken, bool) {
	for _, t := range s.Workspace {
		if t.Index == index {
			return t, true
		}
	}
	return WorkspaceToken{}, false
}

// HasAchievement reports whether id is already unlocked.
func (s GameState) HasAchievement(id string) bool {
	return ContainsAchievement(s.Achievements, id)
}

func ContainsAchievement(list []Achievement, id string) bool {
	for _, a := range list {
		if a.ID == id {
			return true
		}
	}
	return false
}

// FoldName normalizes a name for case-insensitive comparison.
func FoldName(name string) string {
	// A Caser is stateful, so each call gets its own.
	return cases.Fold().String(strings.TrimSpace(name))
}

// SameName compares two element names case-insensitively.
func SameName(a, b string) bool {
	return FoldName(a) == FoldName(b)
}

// Slug derives a stable id from a display name, e.g. "Hot Spring" -> "hot-spring".
func Slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
