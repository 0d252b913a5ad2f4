package achievements

import "github.com/tatianab/element-mixer/internal/models"

// UpdateWithProgress recomputes tier, count and next threshold for every
// unlocked achievement that has a tier rule. It is pure and idempotent, so it
// is safe to call on every state read. Achievements without a rule are
// returned unchanged.
func UpdateWithProgress(existing []models.Achievement, elements, endElements []models.Element) []models.Achievement {
	if len(existing) == 0 {
		return existing
	}
	out := make([]models.Achievement, len(existing))
	for i, a := range existing {
		out[i] = a
		r, ok := findTierRule(a.ID)
		if !ok {
			continue
		}
		count := progressCount(r, elements, endElements)
		tier, next := tierFor(r.Thresholds, count)
		out[i].CountType = r.CountType
		out[i].CurrentCount = count
		out[i].Tier = tier
		out[i].NextTierAt = next
	}
	return out
}

func findTierRule(id string) (tierRule, bool) {
	for _, r := range tierRules {
		if r.ID == id {
			return r, true
		}
	}
	return tierRule{}, false
}

func progressCount(r tierRule, elements, endElements []models.Element) int {
	switch r.CountType {
	case CountEnd:
		return len(endElements)
	case CountTag:
		return countTag(elements, r.Tag) + countTag(endElements, r.Tag)
	default:
		return len(elements) + len(endElements)
	}
}

// tierFor maps a count onto tiers 1..3. An unlocked achievement is at least
// tier 1 even if the count has since dropped below the first threshold.
func tierFor(thresholds [3]int, count int) (int, *int) {
	tier := 1
	for i := 1; i < len(thresholds); i++ {
		if count >= thresholds[i] {
			tier = i + 1
		}
	}
	if tier == len(thresholds) {
		return tier, nil
	}
	next := thresholds[tier]
	return tier, &next
}
