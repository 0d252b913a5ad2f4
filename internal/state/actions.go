package state

import (
	"time"

	"github.com/tatianab/element-mixer/internal/models"
)

// Action is a state transition. The set of actions is closed: only types in
// this package implement it.
type Action interface {
	action()
}

// SetGameMode resets to the canonical fresh state of Mode.
type SetGameMode struct{ Mode models.GameMode }

// Reset resets to the canonical fresh state of the current mode.
type Reset struct{}

type AddElement struct{ Element models.Element }

type ReplaceElements struct{ Elements []models.Element }

type AddEndElement struct{ Element models.Element }

type ReplaceEndElements struct{ Elements []models.Element }

// SetCombination caches Key -> Result. A nil Result records "no reaction".
type SetCombination struct {
	Key    string
	Result *string
}

type AddFailedCombination struct{ Key string }

// AddWorkspaceToken places Token, assigning it the next token index.
type AddWorkspaceToken struct{ Token models.WorkspaceToken }

type RemoveWorkspaceTokens struct{ Indices []int }

// UpdateWorkspaceToken moves a token and optionally changes its energized flag.
type UpdateWorkspaceToken struct {
	Index     int
	X, Y      float64
	Energized *bool
}

// SetWorkspace replaces the workspace wholesale.
type SetWorkspace struct{ Tokens []models.WorkspaceToken }

type ClearWorkspace struct{}

type AddAchievements struct{ Achievements []models.Achievement }

type RemoveAchievements struct{ IDs []string }

// RecordLastCombination fills the single undo slot.
type RecordLastCombination struct{ Record models.LastCombination }

type ClearLastCombination struct{}

// Undo reverts the recorded combination, if any.
type Undo struct{}

type IncrementCombinations struct{}

// LoadState shallow-merges a persisted snapshot over the current state.
type LoadState struct{ Snapshot models.Snapshot }

func (SetGameMode) action()           {}
func (Reset) action()                 {}
func (AddElement) action()            {}
func (ReplaceElements) action()       {}
func (AddEndElement) action()         {}
func (ReplaceEndElements) action()    {}
func (SetCombination) action()        {}
func (AddFailedCombination) action()  {}
func (AddWorkspaceToken) action()     {}
func (RemoveWorkspaceTokens) action() {}
func (UpdateWorkspaceToken) action()  {}
func (SetWorkspace) action()          {}
func (ClearWorkspace) action()        {}
func (AddAchievements) action()       {}
func (RemoveAchievements) action()    {}
func (RecordLastCombination) action() {}
func (ClearLastCombination) action()  {}
func (Undo) action()                  {}
func (IncrementCombinations) action() {}
func (LoadState) action()             {}

// NewLastCombination builds an undo record.
func NewLastCombination(created models.Element, key string, before []models.WorkspaceToken, gained []models.Achievement, at time.Time) models.LastCombination {
	return models.LastCombination{
		Created:            created,
		IsEndElement:       created.IsEndElement,
		Key:                key,
		WorkspaceBefore:    cloneTokens(before),
		AchievementsGained: append([]models.Achievement(nil), gained...),
		Timestamp:          at,
	}
}
