package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"github.com/tatianab/element-mixer/internal/models"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show discoveries, achievements and today's usage",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context(), os.Stderr, false)
	if err != nil {
		return err
	}
	defer a.Close()

	st := a.session.State()
	w := out(cmd)
	fmt.Fprintf(w, "Profile:      %s\n", a.session.Profile())
	fmt.Fprintf(w, "Mode:         %s\n", st.GameMode)
	fmt.Fprintf(w, "Discovered:   %d (%d final)\n", st.DiscoveredCount(), len(st.EndElements))
	fmt.Fprintf(w, "Combinations: %d\n", st.TotalCombinationsMade)

	u := a.session.Game().Usage()
	if u.HasAPIKey {
		fmt.Fprintf(w, "Usage:        own API key\n")
	} else {
		fmt.Fprintf(w, "Usage:        %d/%d today, %d tokens\n", u.DailyCount, u.DailyLimit, u.TokenBalance)
	}

	elements := append([]models.Element(nil), st.Elements...)
	elements = append(elements, st.EndElements...)
	sort.SliceStable(elements, func(i, j int) bool { return elements[i].UnlockOrder < elements[j].UnlockOrder })
	fmt.Fprintf(w, "Elements:\n")
	for _, e := range elements {
		suffix := ""
		if e.IsEndElement {
			suffix = " (final)"
		}
		fmt.Fprintf(w, "  %s %s%s\n", e.Emoji, e.Name, suffix)
	}
	if len(st.Achievements) > 0 {
		fmt.Fprintf(w, "Achievements:\n")
		for _, ach := range st.Achievements {
			tier := ""
			if ach.Tier > 0 {
				tier = fmt.Sprintf(" tier %d", ach.Tier)
				if ach.NextTierAt != nil {
					tier += fmt.Sprintf(" (%d/%d)", ach.CurrentCount, *ach.NextTierAt)
				}
			}
			fmt.Fprintf(w, "  %s %s%s\n", ach.Emoji, ach.Name, tier)
		}
	}
	return nil
}
