package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"schemasync/internal/console"
	"schemasync/internal/failure"
)

var cfgFile string

var RootCmd = &cobra.Command{
	Use:   "schemasync",
	Short: "Generate a guarded schema sync script from one database to another",
	Long: `
 ____       _                          ____                   
/ ___|  ___| |__   ___ _ __ ___   __ _/ ___| _   _ _ __   ___ 
\___ \ / __| '_ \ / _ \ '_ ` + "`" + ` _ \ / _` + "`" + ` \___ \| | | | '_ \ / __|
 ___) | (__| | | |  __/ | | | | | (_| |___) | |_| | | | | (__ 
|____/ \___|_| |_|\___|_| |_| |_|\__,_|____/ \__, |_| |_|\___|
                                             |___/            
SchemaSync - compares Host A (source) with Host B (target) and writes
an idempotent script that brings B's tables and procedures in line with A.
The script refuses to run anywhere but the configured target address.
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with a status derived from the
// failure kind.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := RootCmd.ExecuteContext(ctx); err != nil {
		console.New(os.Stderr, nil).Failed(err)
		stop()
		os.Exit(failure.KindOf(err).ExitCode())
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./schemasync.yaml)")
	RootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug logging")
	viper.BindPFlag("settings.verbose", RootCmd.PersistentFlags().Lookup("verbose"))

	setDefaults()
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// 1. Executable Directory (Priority 1)
		ex, err := os.Executable()
		if err == nil {
			viper.AddConfigPath(filepath.Dir(ex))
		}

		// 2. Current Directory (Priority 2)
		viper.AddConfigPath(".")

		viper.SetConfigName("schemasync")
		viper.SetConfigType("yaml")
	}

	// SCHEMASYNC_TARGET_HOST overrides target.host, and so on.
	viper.SetEnvPrefix("SCHEMASYNC")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
