// Package state holds the game state machine. All mutations go through
// Reduce, which is total and free of side effects; callers perform I/O
// separately and feed the results back in as actions.
package state

import (
	"github.com/tatianab/element-mixer/internal/models"
)

// Reduce applies a to s and returns the next state. s is never modified:
// every changed collection is rebuilt.
func Reduce(s models.GameState, a Action) models.GameState {
	switch a := a.(type) {
	case SetGameMode:
		return models.NewGameState(a.Mode)

	case Reset:
		return models.NewGameState(s.GameMode)

	case AddElement:
		s.Elements = upsertElement(s.Elements, a.Element)

	case ReplaceElements:
		s.Elements = append([]models.Element(nil), a.Elements...)

	case AddEndElement:
		s.EndElements = upsertElement(s.EndElements, a.Element)

	case ReplaceEndElements:
		s.EndElements = append([]models.Element(nil), a.Elements...)

	case SetCombination:
		s.Combinations = s.Combinations.With(a.Key, a.Result)

	case AddFailedCombination:
		s.FailedCombinations = s.FailedCombinations.Add(a.Key)

	case AddWorkspaceToken:
		tok := a.Token
		if s.NextTokenIndex < 1 {
			s.NextTokenIndex = nextIndexAfter(s.Workspace)
		}
		tok.Index = s.NextTokenIndex
		tok.FromWorkspace = false
		tok.SourceIndex = 0
		s.NextTokenIndex++
		s.Workspace = append(cloneTokens(s.Workspace), tok)

	case RemoveWorkspaceTokens:
		s.Workspace = removeTokens(s.Workspace, a.Indices)

	case UpdateWorkspaceToken:
		tokens := cloneTokens(s.Workspace)
		for i := range tokens {
			if tokens[i].Index != a.Index {
				continue
			}
			tokens[i].X, tokens[i].Y = a.X, a.Y
			if a.Energized != nil {
				tokens[i].Energized = *a.Energized
			}
		}
		s.Workspace = tokens

	case SetWorkspace:
		s.Workspace = cloneTokens(a.Tokens)
		if next := nextIndexAfter(s.Workspace); next > s.NextTokenIndex {
			s.NextTokenIndex = next
		}

	case ClearWorkspace:
		s.Workspace = []models.WorkspaceToken{}

	case AddAchievements:
		out := append([]models.Achievement(nil), s.Achievements...)
		for _, ach := range a.Achievements {
			if !models.ContainsAchievement(out, ach.ID) {
				out = append(out, ach)
			}
		}
		s.Achievements = out

	case RemoveAchievements:
		s.Achievements = removeAchievements(s.Achievements, a.IDs)

	case RecordLastCombination:
		rec := a.Record
		rec.WorkspaceBefore = cloneTokens(rec.WorkspaceBefore)
		s.LastCombination = &rec
		s.UndoAvailable = true

	case ClearLastCombination:
		s.LastCombination = nil
		s.UndoAvailable = false

	case Undo:
		return undo(s)

	case IncrementCombinations:
		s.TotalCombinationsMade++

	case LoadState:
		return load(s, a.Snapshot)
	}
	return s
}

func undo(s models.GameState) models.GameState {
	last := s.LastCombination
	if last == nil {
		s.UndoAvailable = false
		return s
	}

	if last.IsEndElement {
		s.EndElements = removeElement(s.EndElements, last.Created.Name)
	} else {
		s.Elements = removeElement(s.Elements, last.Created.Name)
	}
	s.Workspace = cloneTokens(last.WorkspaceBefore)
	s.Combinations = s.Combinations.Without(last.Key)
	s.FailedCombinations = s.FailedCombinations.Remove(last.Key)

	gained := make([]string, 0, len(last.AchievementsGained))
	for _, a := range last.AchievementsGained {
		gained = append(gained, a.ID)
	}
	s.Achievements = removeAchievements(s.Achievements, gained)

	s.LastCombination = nil
	s.UndoAvailable = false
	return s
}

// load is a shallow merge: fields absent from the snapshot keep their
// current values.
func load(s models.GameState, snap models.Snapshot) models.GameState {
	if snap.GameMode.Valid() {
		s.GameMode = snap.GameMode
	}
	if snap.Elements != nil {
		s.Elements = append([]models.Element(nil), snap.Elements...)
	}
	if snap.EndElements != nil {
		s.EndElements = append([]models.Element(nil), snap.EndElements...)
	}
	if snap.Combinations != nil {
		s.Combinations = append(models.Combinations(nil), snap.Combinations...)
	}
	if snap.FailedCombinations != nil {
		s.FailedCombinations = append(models.FailedCombinations(nil), snap.FailedCombinations...)
	}
	if snap.Achievements != nil {
		s.Achievements = append([]models.Achievement(nil), snap.Achievements...)
	}
	if snap.TotalCombinationsMade > 0 {
		s.TotalCombinationsMade = snap.TotalCombinationsMade
	}
	return s
}

func upsertElement(list []models.Element, e models.Element) []models.Element {
	out := append([]models.Element(nil), list...)
	for i := range out {
		if models.SameName(out[i].Name, e.Name) {
			out[i] = e
			return out
		}
	}
	return append(out, e)
}

func removeElement(list []models.Element, name string) []models.Element {
	out := make([]models.Element, 0, len(list))
	for _, e := range list {
		if !models.SameName(e.Name, name) {
			out = append(out, e)
		}
	}
	return out
}

func removeTokens(list []models.WorkspaceToken, indices []int) []models.WorkspaceToken {
	out := make([]models.WorkspaceToken, 0, len(list))
	for _, t := range list {
		drop := false
		for _, idx := range indices {
			if t.Index == idx {
				drop = true
				break
			}
		}
		if !drop {
			out = append(out, t)
		}
	}
	return out
}

func removeAchievements(list []models.Achievement, ids []string) []models.Achievement {
	out := make([]models.Achievement, 0, len(list))
	for _, a := range list {
		keep := true
		for _, id := range ids {
			if a.ID == id {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, a)
		}
	}
	return out
}

func cloneTokens(list []models.WorkspaceToken) []models.WorkspaceToken {
	out := make([]models.WorkspaceToken, len(list))
	copy(out, list)
	return out
}

func nextIndexAfter(tokens []models.WorkspaceToken) int {
	next := 1
	for _, t := range tokens {
		if t.Index >= next {
			next = t.Index + 1
		}
	}
	return next
}
