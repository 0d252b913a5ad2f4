package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tatianab/element-mixer/internal/models"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Start the profile over; --mode also switches the game mode",
	RunE:  runReset,
}

func runReset(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context(), os.Stderr, false)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	if rootFlags.mode != "" {
		err = a.session.SetMode(ctx, models.GameMode(rootFlags.mode))
	} else {
		err = a.session.Reset(ctx)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out(cmd), "Profile %s reset to %s mode\n", a.session.Profile(), a.session.State().GameMode)
	return nil
}
