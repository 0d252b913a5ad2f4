package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var mixFlags struct {
	energized bool
}

var mixCmd = &cobra.Command{
	Use:   "mix <element> <element> [element]",
	Short: "Mix two or three discovered elements",
	Long: `Mix discovered elements directly, without the workspace.

Usage:
  element-mixer mix Fire Water
  element-mixer mix Earth Water --energized
  element-mixer mix "Primordial Soup" Air -e`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runMix,
}

func init() {
	mixCmd.Flags().BoolVarP(&mixFlags.energized, "energized", "e", false, "Add Energy to the mix")
}

func runMix(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context(), os.Stderr, true)
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := a.session.Combine(cmd.Context(), mixFlags.energized, args...)
	if err != nil {
		return err
	}
	w := out(cmd)
	fmt.Fprintln(w, res.Message())
	if res.IsNew && res.Element.Reasoning != "" {
		fmt.Fprintf(w, "  %s\n", res.Element.Reasoning)
	}
	for _, ach := range res.Achievements {
		fmt.Fprintf(w, "Achievement unlocked: %s %s\n", ach.Emoji, ach.Name)
	}
	return nil
}
