package models

// ModifierName is the special element that energizes other tokens.
const ModifierName = "Energy"

var scienceStarters = []Element{
	{ID: "water", Name: "Water", Emoji: "💧", Color: "#3B82F6", Tags: []string{"liquid"}},
	{ID: "fire", Name: "Fire", Emoji: "🔥", Color: "#EF4444", Tags: []string{"energy"}},
	{ID: "earth", Name: "Earth", Emoji: "🌍", Color: "#92400E", Tags: []string{"solid"}},
	{ID: "air", Name: "Air", Emoji: "💨", Color: "#93C5FD", Tags: []string{"gas"}},
	{ID: "energy", Name: ModifierName, Emoji: "⚡", Color: "#FACC15", Tags: []string{"energy"}},
}

var creativeStarters = []Element{
	{ID: "water", Name: "Water", Emoji: "🌊", Color: "#0EA5E9", Tags: []string{"nature"}},
	{ID: "fire", Name: "Fire", Emoji: "🔥", Color: "#F97316", Tags: []string{"nature"}},
	{ID: "earth", Name: "Earth", Emoji: "⛰️", Color: "#A16207", Tags: []string{"nature"}},
	{ID: "air", Name: "Air", Emoji: "🌬️", Color: "#A5F3FC", Tags: []string{"nature"}},
	{ID: "energy", Name: ModifierName, Emoji: "✨", Color: "#FDE047", Tags: []string{"magic"}},
}

// StarterElements returns a fresh copy of the fixed starting set for mode.
// Unknown modes fall back to science.
func StarterElements(mode GameMode) []Element {
	src := scienceStarters
	if mode == ModeCreative {
		src = creativeStarters
	}
	out := make([]Element, len(src))
	for i, e := range src {
		e.Tags = append([]string(nil), e.Tags...)
		out[i] = e
	}
	return out
}

// NewGameState returns the canonical fresh state for mode.
func NewGameState(mode GameMode) GameState {
	if !mode.Valid() {
		mode = ModeScience
	}
	return GameState{
		Elements:           StarterElements(mode),
		EndElements:        []Element{},
		Combinations:       Combinations{},
		FailedCombinations: FailedCombinations{},
		Workspace:          []WorkspaceToken{},
		Achievements:       []Achievement{},
		GameMode:           mode,
		NextTokenIndex:     1,
	}
}
