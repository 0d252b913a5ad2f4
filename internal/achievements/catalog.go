package achievements

import "github.com/tatianab/element-mixer/internal/models"

type definition struct {
	ID          string
	Name        string
	Description string
	Emoji       string
}

// Tag-first-discovery tables, per game mode.
var tagAchievements = map[models.GameMode]map[string]definition{
	models.ModeScience: {
		"metal":      {ID: "metalworker", Name: "Metalworker", Description: "Discover your first metal", Emoji: "⚒️"},
		"lifeform":   {ID: "genesis", Name: "Genesis", Description: "Create the first living thing", Emoji: "🧬"},
		"plant":      {ID: "green-thumb", Name: "Green Thumb", Description: "Grow your first plant", Emoji: "🌱"},
		"weather":    {ID: "storm-chaser", Name: "Storm Chaser", Description: "Discover your first weather phenomenon", Emoji: "⛈️"},
		"celestial":  {ID: "stargazer", Name: "Stargazer", Description: "Reach for the stars", Emoji: "🔭"},
		"technology": {ID: "tinkerer", Name: "Tinkerer", Description: "Invent your first piece of technology", Emoji: "⚙️"},
		"explosive":  {ID: "kaboom", Name: "Kaboom", Description: "Make something that goes bang", Emoji: "💥"},
	},
	models.ModeCreative: {
		"myth":     {ID: "mythmaker", Name: "Mythmaker", Description: "Bring a legend to life", Emoji: "🐉"},
		"food":     {ID: "chef", Name: "Chef", Description: "Cook up your first dish", Emoji: "🍳"},
		"magic":    {ID: "spellcaster", Name: "Spellcaster", Description: "Discover real magic", Emoji: "🪄"},
		"music":    {ID: "bard", Name: "Bard", Description: "Compose your first tune", Emoji: "🎵"},
		"creature": {ID: "beast-tamer", Name: "Beast Tamer", Description: "Conjure a creature", Emoji: "🦄"},
		"story":    {ID: "storyteller", Name: "Storyteller", Description: "Write the first chapter", Emoji: "📖"},
	},
}

type milestone struct {
	definition
	Count int
}

var milestones = []milestone{
	{definition{ID: "alchemist-apprentice", Name: "Alchemist Apprentice", Description: "Discover 10 elements", Emoji: "🧪"}, 10},
	{definition{ID: "seasoned-alchemist", Name: "Seasoned Alchemist", Description: "Discover 50 elements", Emoji: "⚗️"}, 50},
	{definition{ID: "grand-alchemist", Name: "Grand Alchemist", Description: "Discover 100 elements", Emoji: "🏆"}, 100},
}

// Science mode only.
var endMilestones = []milestone{
	{definition{ID: "the-end", Name: "The End?", Description: "Discover your first final element", Emoji: "🏁"}, 1},
	{definition{ID: "finality", Name: "Finality", Description: "Discover 10 final elements", Emoji: "🪦"}, 10},
}

var (
	statesOfMatter = definition{ID: "states-of-matter", Name: "States of Matter", Description: "Discover 5 solids, 5 liquids and 5 gases", Emoji: "🧊"}
	worldTraveler  = definition{ID: "world-traveler", Name: "World Traveler", Description: "Discover 4 different biomes", Emoji: "🗺️"}
	ironAge        = definition{ID: "iron-age", Name: "Iron Age", Description: "Discover 10 metals", Emoji: "🔩"}
	dangerZone     = definition{ID: "danger-zone", Name: "Danger Zone", Description: "Discover 5 dangerous elements", Emoji: "☢️"}
	circleOfLife   = definition{ID: "circle-of-life", Name: "Circle of Life", Description: "Discover 15 living things", Emoji: "🌳"}
)

var (
	biomeTags  = []string{"desert", "ocean", "forest", "tundra", "mountain", "jungle", "grassland", "swamp", "volcano", "cave"}
	dangerTags = []string{"explosive", "toxic", "radioactive", "weapon", "disaster", "poison"}
	lifeTags   = []string{"lifeform", "plant", "animal", "microbe", "fungus", "human"}
)

// Count types for progressive achievements.
const (
	CountTotal = "total"
	CountEnd   = "end"
	CountTag   = "tag"
)

type tierRule struct {
	ID         string
	CountType  string
	Tag        string
	Thresholds [3]int
}

var tierRules = []tierRule{
	{ID: "alchemist-apprentice", CountType: CountTotal, Thresholds: [3]int{10, 50, 100}},
	{ID: "the-end", CountType: CountEnd, Thresholds: [3]int{1, 5, 10}},
	{ID: "metalworker", CountType: CountTag, Tag: "metal", Thresholds: [3]int{1, 5, 10}},
	{ID: "genesis", CountType: CountTag, Tag: "lifeform", Thresholds: [3]int{1, 10, 25}},
	{ID: "green-thumb", CountType: CountTag, Tag: "plant", Thresholds: [3]int{1, 5, 15}},
	{ID: "mythmaker", CountType: CountTag, Tag: "myth", Thresholds: [3]int{1, 5, 15}},
	{ID: "chef", CountType: CountTag, Tag: "food", Thresholds: [3]int{1, 5, 15}},
}
