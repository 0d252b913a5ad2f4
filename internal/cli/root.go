// Package cli is the element-mixer command tree.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	profile string
	mode    string
	db      string
}

var rootCmd = &cobra.Command{
	Use:   "element-mixer",
	Short: "Combine elements and discover new ones",
	Long: `Element Mixer starts you with Water, Fire, Earth, Air and Energy.
Mix them to discover new elements; a generative model decides what each
new combination produces.

Settings come from the environment (GEMINI_API_KEY, ELEMENT_MIXER_*);
flags override them.`,
	SilenceUsage: true,
	RunE:         runPlay,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVarP(&rootFlags.profile, "profile", "p", "", "Save profile (default: $ELEMENT_MIXER_PROFILE)")
	f.StringVar(&rootFlags.mode, "mode", "", "Game mode for a new profile: science or creative")
	f.StringVar(&rootFlags.db, "db", "", "SQLite database path; YAML files are used when empty")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(mixCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.Version = version
}

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run executes args against the tree with output captured, for tests.
func run(out io.Writer, args ...string) error {
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	}()
	return rootCmd.Execute()
}
