package engine

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/tatianab/element-mixer/internal/models"
)

func TestTargetRarityBoundaries(t *testing.T) {
	tests := []struct {
		roll float64
		want models.Rarity
	}{
		{0, models.RarityCommon},
		{0.8499, models.RarityCommon},
		{0.85, models.RarityUncommon},
		{0.9599, models.RarityUncommon},
		{0.96, models.RarityRare},
		{0.9999, models.RarityRare},
	}
	for _, tt := range tests {
		if got := TargetRarity(tt.roll); got != tt.want {
			t.Errorf("TargetRarity(%v) = %q, want %q", tt.roll, got, tt.want)
		}
	}
}

func TestTargetRarityDistribution(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	const trials = 10000
	counts := map[models.Rarity]int{}
	for range trials {
		counts[TargetRarity(r.Float64())]++
	}
	checkShare(t, counts, trials, map[models.Rarity]float64{
		models.RarityCommon:   0.85,
		models.RarityUncommon: 0.11,
		models.RarityRare:     0.04,
	})
}

var mixedCandidates = []models.ElementDraft{
	{Name: "Steam", Rarity: models.RarityCommon},
	{Name: "Cloud", Rarity: models.RarityUncommon},
	{Name: "Geyser", Rarity: models.RarityRare},
}

func TestSelectCandidateDistribution(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	const trials = 10000
	counts := map[models.Rarity]int{}
	for range trials {
		got, ok := SelectCandidate(mixedCandidates, r.Float64(), r.Float64())
		if !ok {
			t.Fatal("SelectCandidate returned nothing for a non-empty input")
		}
		counts[got.Rarity]++
	}
	checkShare(t, counts, trials, map[models.Rarity]float64{
		models.RarityCommon:   0.60,
		models.RarityUncommon: 0.30,
		models.RarityRare:     0.10,
	})
}

func TestSelectCandidateEmptyBucketFallsBack(t *testing.T) {
	onlyCommon := []models.ElementDraft{
		{Name: "Mud", Rarity: models.RarityCommon},
		{Name: "Clay", Rarity: models.RarityCommon},
	}
	r := rand.New(rand.NewPCG(5, 6))
	seen := map[string]bool{}
	for range 1000 {
		got, ok := SelectCandidate(onlyCommon, r.Float64(), r.Float64())
		if !ok {
			t.Fatal("empty rare bucket produced no result")
		}
		seen[got.Name] = true
	}
	if !seen["Mud"] || !seen["Clay"] {
		t.Errorf("fallback is not uniform over candidates: %v", seen)
	}

	// A rare roll with no rare candidate still picks something.
	if _, ok := SelectCandidate(onlyCommon, 0.99, 0.5); !ok {
		t.Error("rare roll with no rare candidates returned nothing")
	}
}

func TestSelectCandidateEdges(t *testing.T) {
	if _, ok := SelectCandidate(nil, 0.5, 0.5); ok {
		t.Error("empty candidate list should yield nothing")
	}
	one := []models.ElementDraft{{Name: "Steam", Rarity: models.RarityRare}}
	if got, ok := SelectCandidate(one, 0.1, 0.1); !ok || got.Name != "Steam" {
		t.Errorf("single candidate = %+v, %v", got, ok)
	}
	if got, _ := SelectCandidate(mixedCandidates, 0.5, 1); got.Name != "Steam" {
		t.Errorf("pick of 1 should clamp to the last bucket entry, got %q", got.Name)
	}
}

func checkShare(t *testing.T, counts map[models.Rarity]int, trials int, want map[models.Rarity]float64) {
	t.Helper()
	for rarity, share := range want {
		got := float64(counts[rarity]) / float64(trials)
		if math.Abs(got-share) > 0.02 {
			t.Errorf("%s share = %.3f, want %.2f±0.02", rarity, got, share)
		}
	}
}
