package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"schemasync/internal/console"
	"schemasync/internal/engine"
)

var checkCmd = &cobra.Command{
	Use:   "check <object>",
	Short: "Look up an object by name in the source database",
	Long: `Looks up a table, view, procedure or other object by name in the source
(Host A). Useful when a procedure in A references something that is missing
in B: if it is missing in A too, the reference was already broken there.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := LoadConfig()
		if err != nil {
			return err
		}

		log, err := newLogger(cfg.Settings.Verbose)
		if err != nil {
			return err
		}
		defer log.Sync()

		info, err := engine.NewRunner(log).Check(cmd.Context(), cfg.Source, args[0])
		if err != nil {
			return err
		}

		console.New(os.Stdout, nil).Dependency(info)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(checkCmd)
}
