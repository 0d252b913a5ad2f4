package oracle

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tatianab/element-mixer/internal/models"
)

func TestParseResponse(t *testing.T) {
	reply := "```yaml\n" + `outcomes:
  - result: Steam
    emoji: "💨"
    color: "#CBD5E1"
    rarity: common
    reasoning: Heat turns water into vapour.
    tags: [gas]
  - result: Geyser
    rarity: rare
    tags: [landform]
    is_end_element: true
reasoning: ""
` + "```"

	got, err := ParseResponse(reply)
	if err != nil {
		t.Fatal(err)
	}
	want := &models.OracleResponse{Outcomes: []models.ElementDraft{
		{Name: "Steam", Emoji: "💨", Color: "#CBD5E1", Rarity: models.RarityCommon, Reasoning: "Heat turns water into vapour.", Tags: []string{"gas"}},
		{Name: "Geyser", Rarity: models.RarityRare, Tags: []string{"landform"}, IsEndElement: true},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseResponse mismatch (-want +got):\n%s", diff)
	}
}

func TestParseResponseNoReaction(t *testing.T) {
	got, err := ParseResponse("outcomes: []\nreasoning: Sand and air do not react.")
	if err != nil {
		t.Fatal(err)
	}
	if !got.NoReaction() || got.Reasoning != "Sand and air do not react." {
		t.Errorf("got %+v", got)
	}

	got, err = ParseResponse("outcomes: null\nreasoning: nothing")
	if err != nil || !got.NoReaction() {
		t.Errorf("null outcomes = %+v, %v", got, err)
	}
}

func TestParseResponseInvalid(t *testing.T) {
	if _, err := ParseResponse("outcomes: [unterminated"); err == nil {
		t.Error("expected a parse error")
	}
}

func TestPrompt(t *testing.T) {
	req := models.OracleRequest{
		Inputs:        []string{"Fire", "Water"},
		Energized:     true,
		Mode:          models.ModeScience,
		RecentSuccess: "Earth + Water = Mud",
		TargetRarity:  models.RarityUncommon,
	}
	got, err := Prompt(req)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Combine: Fire + Water", "energized", "Aim for a uncommon result", "Earth + Water = Mud"} {
		if !strings.Contains(got, want) {
			t.Errorf("science prompt is missing %q", want)
		}
	}
	if strings.Contains(got, "produced nothing") {
		t.Error("empty failure list should be omitted")
	}

	req.Mode = models.ModeCreative
	req.Energized = false
	got, err = Prompt(req)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "whimsical") || strings.Contains(got, "charged with magic") {
		t.Errorf("creative prompt rendered wrongly:\n%s", got)
	}
}
