package models

// OracleRequest is everything the generative oracle needs to invent an outcome.
type OracleRequest struct {
	Inputs        []string
	Energized     bool
	Mode          GameMode
	RecentSuccess string // "A + B = C" lines
	RecentFailure string // keys that produced nothing
	TargetRarity  Rarity
}

// OracleResponse is either a list of candidate outcomes or a nil list with
// the oracle's reason for "no reaction".
type OracleResponse struct {
	Outcomes  []ElementDraft `yaml:"outcomes"`
	Reasoning string         `yaml:"reasoning"`
}

// NoReaction reports whether the oracle declined to produce anything.
func (r OracleResponse) NoReaction() bool {
	return len(r.Outcomes) == 0
}
