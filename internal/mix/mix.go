// Package mix canonicalizes combination keys and classifies workspace mixes.
package mix

import (
	"sort"
	"strings"

	"github.com/tatianab/element-mixer/internal/models"
)

const (
	keySeparator = "+"
	energySuffix = keySeparator + models.ModifierName
)

// Kind is the classification of a two-token mix.
type Kind int

const (
	// PlainMix combines two ordinary tokens.
	PlainMix Kind = iota
	// Energize consumes the modifier token and energizes the other one.
	Energize
	// EnergyMix combines tokens where at least one is already energized.
	EnergyMix
)

func (k Kind) String() string {
	switch k {
	case Energize:
		return "energize"
	case EnergyMix:
		return "energyMix"
	default:
		return "plainMix"
	}
}

// Key returns the canonical combination key: names sorted and joined by "+",
// with "+Energy" appended when the modifier was involved.
func Key(names []string, energized bool) string {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	key := strings.Join(sorted, keySeparator)
	if energized {
		key += energySuffix
	}
	return key
}

// IsEnergized reports whether key was produced with the modifier. Energized
// keys have at least two inputs before the suffix, so a plain "Energy+Energy"
// is not one.
func IsEnergized(key string) bool {
	return strings.Count(key, keySeparator) >= 2 && strings.HasSuffix(key, energySuffix)
}

// IsModifier reports whether name is the modifier element.
func IsModifier(name string) bool {
	return models.SameName(name, models.ModifierName)
}

// Classify decides what happens when a and b touch. Terminal tokens must be
// rejected by the caller before reaching here.
func Classify(a, b models.WorkspaceToken) Kind {
	aMod, bMod := IsModifier(a.Name), IsModifier(b.Name)
	switch {
	case aMod != bMod && ((aMod && !b.Energized) || (bMod && !a.Energized)):
		return Energize
	case a.Energized || b.Energized:
		return EnergyMix
	default:
		return PlainMix
	}
}
