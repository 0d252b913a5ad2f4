// Package achievements computes one-shot unlocks for new discoveries and the
// tiers of progressive achievements.
package achievements

import (
	"log/slog"
	"time"

	"github.com/tatianab/element-mixer/internal/models"
)

// Checker evaluates achievement rules. A rule that panics is logged and
// skipped; it never blocks the discovery that triggered it.
type Checker struct {
	Now    func() time.Time
	Logger *slog.Logger
}

// NewChecker returns a Checker using the wall clock.
func NewChecker(logger *slog.Logger) *Checker {
	return &Checker{Now: time.Now, Logger: logger}
}

type evaluation struct {
	mode     models.GameMode
	newElem  models.Element
	all      []models.Element
	ends     int
	existing []models.Achievement
	now      time.Time
	unlocked []models.Achievement
}

func (ev *evaluation) emit(def definition) {
	if models.ContainsAchievement(ev.existing, def.ID) || models.ContainsAchievement(ev.unlocked, def.ID) {
		return
	}
	ev.unlocked = append(ev.unlocked, models.Achievement{
		ID:          def.ID,
		Name:        def.Name,
		Description: def.Description,
		Emoji:       def.Emoji,
		Unlocked:    ev.now,
	})
}

type rule struct {
	name        string
	scienceOnly bool
	apply       func(ev *evaluation)
}

var rules = []rule{
	{name: "tag-first-discovery", apply: tagFirstDiscovery},
	{name: "milestones", apply: discoveryMilestones},
	{name: "end-milestones", scienceOnly: true, apply: endElementMilestones},
	{name: "compound", scienceOnly: true, apply: compoundConditions},
}

// Check returns the achievements newly unlocked by discovering newElement.
// elements and endElements are the full discovered sets; newElement is
// counted whether or not it has been added to them yet.
func (c *Checker) Check(newElement models.Element, elements, endElements []models.Element, existing []models.Achievement, mode models.GameMode) []models.Achievement {
	ev := &evaluation{
		mode:     mode,
		newElem:  newElement,
		existing: existing,
		now:      c.now(),
	}
	ev.all = make([]models.Element, 0, len(elements)+len(endElements)+1)
	ev.all = append(ev.all, elements...)
	ev.all = append(ev.all, endElements...)
	ev.ends = len(endElements)
	if !containsName(ev.all, newElement.Name) {
		ev.all = append(ev.all, newElement)
		if newElement.IsEndElement {
			ev.ends++
		}
	}

	for _, r := range rules {
		if r.scienceOnly && mode != models.ModeScience {
			continue
		}
		c.run(r, ev)
	}
	return ev.unlocked
}

func (c *Checker) run(r rule, ev *evaluation) {
	defer func() {
		if p := recover(); p != nil {
			c.logger().Error("achievement rule failed", "rule", r.name, "element", ev.newElem.Name, "panic", p)
		}
	}()
	r.apply(ev)
}

func (c *Checker) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func (c *Checker) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

func tagFirstDiscovery(ev *evaluation) {
	table := tagAchievements[ev.mode]
	for _, tag := range ev.newElem.Tags {
		def, ok := table[models.FoldName(tag)]
		if !ok {
			continue
		}
		seen := false
		for _, e := range ev.all {
			if !models.SameName(e.Name, ev.newElem.Name) && e.HasTag(tag) {
				seen = true
				break
			}
		}
		if !seen {
			ev.emit(def)
		}
	}
}

func discoveryMilestones(ev *evaluation) {
	for _, m := range milestones {
		if len(ev.all) >= m.Count {
			ev.emit(m.definition)
		}
	}
}

func endElementMilestones(ev *evaluation) {
	for _, m := range endMilestones {
		if ev.ends >= m.Count {
			ev.emit(m.definition)
		}
	}
}

func compoundConditions(ev *evaluation) {
	if countTag(ev.all, "solid") >= 5 && countTag(ev.all, "liquid") >= 5 && countTag(ev.all, "gas") >= 5 {
		ev.emit(statesOfMatter)
	}

	biomes := 0
	for _, tag := range biomeTags {
		if countTag(ev.all, tag) > 0 {
			biomes++
		}
	}
	if biomes >= 4 {
		ev.emit(worldTraveler)
	}

	if countTag(ev.all, "metal") >= 10 {
		ev.emit(ironAge)
	}
	if countAnyTag(ev.all, dangerTags) >= 5 {
		ev.emit(dangerZone)
	}
	if countAnyTag(ev.all, lifeTags) >= 15 {
		ev.emit(circleOfLife)
	}
}

func countTag(elements []models.Element, tag string) int {
	n := 0
	for _, e := range elements {
		if e.HasTag(tag) {
			n++
		}
	}
	return n
}

func countAnyTag(elements []models.Element, tags []string) int {
	n := 0
	for _, e := range elements {
		for _, tag := range tags {
			if e.HasTag(tag) {
				n++
				break
			}
		}
	}
	return n
}

func containsName(elements []models.Element, name string) bool {
	for _, e := range elements {
		if models.SameName(e.Name, name) {
			return true
		}
	}
	return false
}
