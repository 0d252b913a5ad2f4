package engine

import "github.com/tatianab/element-mixer/internal/models"

// Target rarity split for the oracle hint, in percent.
const (
	targetCommonPct   = 85
	targetUncommonPct = 11
)

// Selection buckets over a percentile roll when the oracle offers several
// candidates: [0,60) common, [60,90) uncommon, [90,100) rare.
const (
	selectCommonBelow   = 60
	selectUncommonBelow = 90
)

// TargetRarity maps a roll in [0,1) onto the rarity hint sent to the oracle.
func TargetRarity(roll float64) models.Rarity {
	p := roll * 100
	switch {
	case p < targetCommonPct:
		return models.RarityCommon
	case p < targetCommonPct+targetUncommonPct:
		return models.RarityUncommon
	default:
		return models.RarityRare
	}
}

// SelectCandidate picks one candidate. roll chooses the rarity bucket and
// pick chooses uniformly within it; an empty bucket falls back to all
// candidates, so a non-empty input always yields a result.
func SelectCandidate(candidates []models.ElementDraft, roll, pick float64) (models.ElementDraft, bool) {
	switch len(candidates) {
	case 0:
		return models.ElementDraft{}, false
	case 1:
		return candidates[0], true
	}

	want := models.RarityRare
	switch p := roll * 100; {
	case p < selectCommonBelow:
		want = models.RarityCommon
	case p < selectUncommonBelow:
		want = models.RarityUncommon
	}

	var bucket []models.ElementDraft
	for _, c := range candidates {
		if c.Rarity == want {
			bucket = append(bucket, c)
		}
	}
	if len(bucket) == 0 {
		bucket = candidates
	}
	return bucket[uniformIndex(pick, len(bucket))], true
}

func uniformIndex(pick float64, n int) int {
	i := int(pick * float64(n))
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}
