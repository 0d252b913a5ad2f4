package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tatianab/element-mixer/internal/models"
	"github.com/tatianab/element-mixer/internal/storage"
	"github.com/tatianab/element-mixer/internal/storage/sqlite"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage save profiles",
}

var profileNewCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create an empty profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileNew,
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved profiles",
	RunE:  runProfileList,
}

func init() {
	profileCmd.AddCommand(profileNewCmd)
	profileCmd.AddCommand(profileListCmd)
}

func runProfileNew(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	name := args[0]
	if db, ok := st.(*sqlite.Store); ok {
		p, err := db.CreateProfile(ctx, name, cfg.GameMode)
		if err != nil {
			return err
		}
		if err := db.SaveSnapshot(ctx, name, models.NewGameState(cfg.GameMode).Snapshot()); err != nil {
			return err
		}
		fmt.Fprintf(out(cmd), "Created profile %s (%s, %s mode)\n", p.Name, p.ID, p.GameMode)
		return nil
	}

	if _, err := st.LoadSnapshot(ctx, name); err == nil {
		return fmt.Errorf("profile %q: %w", name, storage.ErrAlreadyExists)
	}
	if err := st.SaveSnapshot(ctx, name, models.NewGameState(cfg.GameMode).Snapshot()); err != nil {
		return err
	}
	fmt.Fprintf(out(cmd), "Created profile %s (%s mode)\n", name, cfg.GameMode)
	return nil
}

func runProfileList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	names, err := st.ListProfiles(cmd.Context())
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Fprintln(out(cmd), name)
	}
	return nil
}
