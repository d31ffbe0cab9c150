package cmd

import (
	"os"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"schemasync/internal/console"
	"schemasync/internal/engine"
	"schemasync/internal/output"
)

var noProgress bool

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Compare source and target and write the sync script",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := LoadConfig()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		log, err := newLogger(cfg.Settings.Verbose)
		if err != nil {
			return err
		}
		defer log.Sync()

		d, err := engine.Dialect(cfg.Source, cfg.Target)
		if err != nil {
			return err
		}
		out := console.New(os.Stdout, d.QuoteIdent)
		out.Banner(cfg.Source.String(), cfg.Target.String(), cfg.Settings.TargetAddress)

		runner := engine.NewRunner(log)

		if !noProgress {
			uiprogress.Start()
			bar := uiprogress.AddBar(engine.PhaseCount).AppendCompleted().PrependElapsed()
			bar.PrependFunc(func(b *uiprogress.Bar) string {
				return "Synchronizing: "
			})
			runner.OnPhase = func(engine.Phase) {
				bar.Incr()
			}
		}

		res, err := runner.Run(cmd.Context(), engine.Options{
			Source:        cfg.Source,
			Target:        cfg.Target,
			TargetAddress: cfg.Settings.TargetAddress,
			CheckObject:   cfg.Settings.CheckObject,
			OutputPath:    cfg.Settings.Output,
			DiffDir:       cfg.Settings.DiffDir,
		})

		if !noProgress {
			uiprogress.Stop()
		}
		if err != nil {
			return err
		}

		out.Loaded("Host A", res.Source.Columns, res.Source.Procedures)
		out.Loaded("Host B", res.Target.Columns, res.Target.Procedures)
		out.Tables(res.Tables)
		out.Procedures(res.Procedures)
		out.DiffFiles(cfg.Settings.DiffDir, res.DiffFiles)
		if res.Dependency != nil {
			out.Dependency(*res.Dependency)
		}

		if cfg.Settings.Report != "" {
			report := output.NewReport(cfg.Source.String(), cfg.Target.String(), res.ScriptPath,
				res.GeneratedAt, res.Tables, res.Procedures, res.Dependency)
			if err := output.WriteReport(cfg.Settings.Report, report); err != nil {
				return err
			}
			log.Info("report written", zap.String("path", cfg.Settings.Report))
		}

		out.Done(res.ScriptPath)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringP("output", "o", "", "script file to write (overrides config)")
	generateCmd.Flags().String("diff-dir", "", "directory for mismatched procedure definitions")
	generateCmd.Flags().String("target-address", "", "the only server address the script may run on")
	generateCmd.Flags().String("check", "", "object to look up in the source after generating")
	generateCmd.Flags().String("report", "", "write a YAML summary to this file")
	generateCmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable the progress bar")

	viper.BindPFlag("settings.output", generateCmd.Flags().Lookup("output"))
	viper.BindPFlag("settings.diff_dir", generateCmd.Flags().Lookup("diff-dir"))
	viper.BindPFlag("settings.target_address", generateCmd.Flags().Lookup("target-address"))
	viper.BindPFlag("settings.check_object", generateCmd.Flags().Lookup("check"))
	viper.BindPFlag("settings.report", generateCmd.Flags().Lookup("report"))
}
