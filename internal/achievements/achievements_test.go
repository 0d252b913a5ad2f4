package achievements

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/tatianab/element-mixer/internal/models"
)

var fixedNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func newTestChecker() *Checker {
	return &Checker{Now: func() time.Time { return fixedNow }}
}

func elementsN(n int, tags ...string) []models.Element {
	out := make([]models.Element, n)
	for i := range out {
		out[i] = models.Element{Name: fmt.Sprintf("E%d-%s", i, strings.Join(tags, "-")), Tags: tags}
	}
	return out
}

func ids(list []models.Achievement) []string {
	var out []string
	for _, a := range list {
		out = append(out, a.ID)
	}
	return out
}

func TestCheckTenthElementMilestone(t *testing.T) {
	c := newTestChecker()
	discovered := models.StarterElements(models.ModeScience)
	discovered = append(discovered, elementsN(4)...)
	tenth := models.Element{Name: "Steam", Tags: []string{"gas"}}

	got := c.Check(tenth, discovered, nil, nil, models.ModeScience)
	if diff := cmp.Diff([]string{"alchemist-apprentice"}, ids(got)); diff != "" {
		t.Fatalf("unlocked mismatch:\n%s", diff)
	}
	if got[0].Name != "Alchemist Apprentice" || !got[0].Unlocked.Equal(fixedNow) {
		t.Errorf("unexpected achievement %+v", got[0])
	}

	// The 11th discovery must not re-emit it.
	discovered = append(discovered, tenth)
	eleventh := models.Element{Name: "Mud", Tags: []string{"solid"}}
	again := c.Check(eleventh, discovered, nil, got, models.ModeScience)
	if len(again) != 0 {
		t.Errorf("expected no new achievements, got %v", ids(again))
	}
}

func TestCheckIsIdempotent(t *testing.T) {
	c := newTestChecker()
	discovered := append(models.StarterElements(models.ModeScience), elementsN(20, "metal")...)
	newElem := discovered[len(discovered)-1]

	first := c.Check(newElem, discovered, nil, nil, models.ModeScience)
	second := c.Check(newElem, discovered, nil, first, models.ModeScience)
	if len(second) != 0 {
		t.Errorf("second check emitted duplicates: %v", ids(second))
	}
	seen := map[string]bool{}
	for _, a := range first {
		if seen[a.ID] {
			t.Errorf("duplicate id %s in one call", a.ID)
		}
		seen[a.ID] = true
	}
}

func TestCheckTagFirstDiscovery(t *testing.T) {
	c := newTestChecker()
	iron := models.Element{Name: "Iron", Tags: []string{"metal", "solid"}}

	got := c.Check(iron, models.StarterElements(models.ModeScience), nil, nil, models.ModeScience)
	if diff := cmp.Diff([]string{"metalworker"}, ids(got)); diff != "" {
		t.Errorf("unlocked mismatch:\n%s", diff)
	}

	// A second metal is not a first discovery.
	discovered := append(models.StarterElements(models.ModeScience), iron)
	copper := models.Element{Name: "Copper", Tags: []string{"metal"}}
	if got := c.Check(copper, discovered, nil, nil, models.ModeScience); len(got) != 0 {
		t.Errorf("expected nothing for second metal, got %v", ids(got))
	}
}

func TestCheckTagTablesAreModeSpecific(t *testing.T) {
	c := newTestChecker()
	iron := models.Element{Name: "Iron", Tags: []string{"metal"}}
	if got := c.Check(iron, nil, nil, nil, models.ModeCreative); len(got) != 0 {
		t.Errorf("creative mode should not map metal, got %v", ids(got))
	}

	dragon := models.Element{Name: "Dragon", Tags: []string{"myth"}}
	got := c.Check(dragon, nil, nil, nil, models.ModeCreative)
	if diff := cmp.Diff([]string{"mythmaker"}, ids(got)); diff != "" {
		t.Errorf("unlocked mismatch:\n%s", diff)
	}
}

func TestCheckEndMilestonesScienceOnly(t *testing.T) {
	c := newTestChecker()
	blackHole := models.Element{Name: "Black Hole", IsEndElement: true}

	got := c.Check(blackHole, models.StarterElements(models.ModeScience), nil, nil, models.ModeScience)
	if diff := cmp.Diff([]string{"the-end"}, ids(got)); diff != "" {
		t.Errorf("unlocked mismatch:\n%s", diff)
	}

	got = c.Check(blackHole, models.StarterElements(models.ModeCreative), nil, nil, models.ModeCreative)
	if len(got) != 0 {
		t.Errorf("creative mode has no end milestones, got %v", ids(got))
	}

	ends := elementsN(9)
	for i := range ends {
		ends[i].IsEndElement = true
	}
	got = c.Check(blackHole, nil, ends, []models.Achievement{{ID: "the-end"}, {ID: "alchemist-apprentice"}}, models.ModeScience)
	if diff := cmp.Diff([]string{"finality"}, ids(got)); diff != "" {
		t.Errorf("unlocked mismatch:\n%s", diff)
	}
}

func TestCheckCompoundConditions(t *testing.T) {
	c := newTestChecker()
	var discovered []models.Element
	discovered = append(discovered, elementsN(5, "solid")...)
	discovered = append(discovered, elementsN(5, "liquid")...)
	discovered = append(discovered, elementsN(4, "gas")...)
	for _, biome := range []string{"desert", "ocean", "forest"} {
		discovered = append(discovered, models.Element{Name: "Biome " + biome, Tags: []string{biome}})
	}
	existing := []models.Achievement{{ID: "alchemist-apprentice"}}

	before := c.Check(discovered[0], discovered, nil, existing, models.ModeScience)
	if len(before) != 0 {
		t.Fatalf("nothing should unlock yet, got %v", ids(before))
	}

	tundraGas := models.Element{Name: "Blizzard", Tags: []string{"gas", "tundra"}}
	got := c.Check(tundraGas, discovered, nil, existing, models.ModeScience)
	if diff := cmp.Diff([]string{"states-of-matter", "world-traveler"}, ids(got)); diff != "" {
		t.Errorf("unlocked mismatch:\n%s", diff)
	}
}

func TestCheckDangerAndLife(t *testing.T) {
	c := newTestChecker()
	var discovered []models.Element
	discovered = append(discovered, elementsN(3, "toxic")...)
	discovered = append(discovered, elementsN(2, "explosive")...)
	discovered = append(discovered, elementsN(8, "plant")...)
	discovered = append(discovered, elementsN(7, "animal")...)
	existing := []models.Achievement{{ID: "alchemist-apprentice"}, {ID: "green-thumb"}, {ID: "kaboom"}}

	got := c.Check(discovered[0], discovered, nil, existing, models.ModeScience)
	if diff := cmp.Diff([]string{"danger-zone", "circle-of-life"}, ids(got)); diff != "" {
		t.Errorf("unlocked mismatch:\n%s", diff)
	}
}

func TestCheckSwallowsRulePanics(t *testing.T) {
	var buf bytes.Buffer
	c := newTestChecker()
	c.Logger = slog.New(slog.NewTextHandler(&buf, nil))

	saved := rules
	t.Cleanup(func() { rules = saved })
	rules = append([]rule{{name: "broken", apply: func(*evaluation) { panic("boom") }}}, saved...)

	iron := models.Element{Name: "Iron", Tags: []string{"metal"}}
	got := c.Check(iron, nil, nil, nil, models.ModeScience)
	if diff := cmp.Diff([]string{"metalworker"}, ids(got)); diff != "" {
		t.Errorf("remaining rules should still run:\n%s", diff)
	}
	if !strings.Contains(buf.String(), "rule=broken") {
		t.Errorf("expected panic to be logged, got: %s", buf.String())
	}
}

func TestUpdateWithProgress(t *testing.T) {
	existing := []models.Achievement{
		{ID: "alchemist-apprentice", Name: "Alchemist Apprentice"},
		{ID: "metalworker", Name: "Metalworker"},
		{ID: "states-of-matter", Name: "States of Matter"},
	}
	elements := append(models.StarterElements(models.ModeScience), elementsN(50, "metal")...)

	got := UpdateWithProgress(existing, elements, nil)

	apprentice := got[0]
	if apprentice.Tier != 2 || apprentice.CurrentCount != 55 || apprentice.NextTierAt == nil || *apprentice.NextTierAt != 100 {
		t.Errorf("apprentice progress = tier %d count %d next %v", apprentice.Tier, apprentice.CurrentCount, apprentice.NextTierAt)
	}
	metal := got[1]
	if metal.Tier != 3 || metal.NextTierAt != nil || metal.CountType != CountTag {
		t.Errorf("metalworker progress = %+v", metal)
	}
	if diff := cmp.Diff(existing[2], got[2]); diff != "" {
		t.Errorf("non-tiered achievement changed:\n%s", diff)
	}

	// Pure: inputs untouched, second pass identical.
	if existing[0].Tier != 0 {
		t.Error("UpdateWithProgress mutated its input")
	}
	if diff := cmp.Diff(got, UpdateWithProgress(got, elements, nil)); diff != "" {
		t.Errorf("not idempotent:\n%s", diff)
	}
}

func TestTierFor(t *testing.T) {
	thresholds := [3]int{1, 5, 10}
	tests := []struct {
		count    int
		wantTier int
		wantNext int // 0 means nil
	}{
		{0, 1, 5},
		{1, 1, 5},
		{5, 2, 10},
		{9, 2, 10},
		{10, 3, 0},
		{42, 3, 0},
	}
	for _, tt := range tests {
		tier, next := tierFor(thresholds, tt.count)
		if tier != tt.wantTier {
			t.Errorf("tierFor(%d) tier = %d, want %d", tt.count, tier, tt.wantTier)
		}
		if tt.wantNext == 0 && next != nil {
			t.Errorf("tierFor(%d) next = %d, want nil", tt.count, *next)
		}
		if tt.wantNext != 0 && (next == nil || *next != tt.wantNext) {
			t.Errorf("tierFor(%d) next = %v, want %d", tt.count, next, tt.wantNext)
		}
	}
}
