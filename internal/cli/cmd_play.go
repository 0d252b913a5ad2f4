package cli

import (
	"github.com/spf13/cobra"
	"github.com/tatianab/element-mixer/internal/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal UI (the default)",
	RunE:  runPlay,
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	f, err := logFile(cfg)
	if err != nil {
		return err
	}
	defer f.Close()

	a, err := openApp(cmd.Context(), f, true)
	if err != nil {
		return err
	}
	defer a.Close()
	return tui.Run(a.session)
}
