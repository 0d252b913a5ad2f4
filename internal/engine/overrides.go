package engine

import (
	"github.com/tatianab/element-mixer/internal/mix"
	"github.com/tatianab/element-mixer/internal/models"
)

// Override is a hand-authored combination that bypasses the oracle.
type Override struct {
	Mode      models.GameMode
	Inputs    []string
	Energized bool
	Result    models.ElementDraft
}

// Overrides is a mode-scoped table of deterministic outcomes.
type Overrides []Override

// Lookup returns the override for key in mode.
func (o Overrides) Lookup(mode models.GameMode, key string) (models.ElementDraft, bool) {
	for _, ov := range o {
		if ov.Mode == mode && mix.Key(ov.Inputs, ov.Energized) == key {
			return ov.Result, true
		}
	}
	return models.ElementDraft{}, false
}

// DefaultOverrides bootstraps early-game biology in science mode, which the
// oracle tends to skip over.
var DefaultOverrides = Overrides{
	{
		Mode:      models.ModeScience,
		Inputs:    []string{"Earth", "Water"},
		Energized: true,
		Result: models.ElementDraft{
			Name:      "Primordial Soup",
			Emoji:     "🥣",
			Color:     "#65A30D",
			Rarity:    models.RarityUncommon,
			Reasoning: "Energy surging through wet minerals sparks organic chemistry.",
			Tags:      []string{"liquid", "organic"},
		},
	},
	{
		Mode:      models.ModeScience,
		Inputs:    []string{"Primordial Soup", "Air"},
		Energized: true,
		Result: models.ElementDraft{
			Name:      "Microbe",
			Emoji:     "🦠",
			Color:     "#16A34A",
			Rarity:    models.RarityRare,
			Reasoning: "Lightning in an early atmosphere turns organic soup into the first cells.",
			Tags:      []string{"lifeform", "microbe"},
		},
	},
	{
		Mode:   models.ModeScience,
		Inputs: []string{"Microbe", "Water"},
		Result: models.ElementDraft{
			Name:      "Algae",
			Emoji:     "🌿",
			Color:     "#15803D",
			Rarity:    models.RarityCommon,
			Reasoning: "Microbes thriving in water begin to photosynthesize.",
			Tags:      []string{"lifeform", "plant", "ocean"},
		},
	},
	{
		Mode:      models.ModeCreative,
		Inputs:    []string{"Air", "Fire"},
		Energized: true,
		Result: models.ElementDraft{
			Name:      "Phoenix",
			Emoji:     "🐦‍🔥",
			Color:     "#EA580C",
			Rarity:    models.RarityRare,
			Reasoning: "A living flame carried on charged winds.",
			Tags:      []string{"myth", "creature"},
		},
	},
}
