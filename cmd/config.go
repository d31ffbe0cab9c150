package cmd

import (
	"fmt"

	"github.com/spf13/viper"

	"schemasync/internal/conn"
)

type Settings struct {
	TargetAddress string `mapstructure:"target_address"`
	CheckObject   string `mapstructure:"check_object"`
	Output        string `mapstructure:"output"`
	DiffDir       string `mapstructure:"diff_dir"`
	Report        string `mapstructure:"report"`
	Verbose       bool   `mapstructure:"verbose"`
}

type Config struct {
	Source   conn.Target `mapstructure:"source"`
	Target   conn.Target `mapstructure:"target"`
	Settings Settings    `mapstructure:"settings"`
}

func setDefaults() {
	viper.SetDefault("source.driver", "sqlserver")
	viper.SetDefault("source.host", "127.0.0.1")
	viper.SetDefault("source.database", "SourceDB")
	viper.SetDefault("target.driver", "sqlserver")
	viper.SetDefault("target.host", "192.168.1.100")
	viper.SetDefault("target.database", "TargetDB")

	// Unmarshal only sees env-only keys that have a default.
	for _, side := range []string{"source", "target"} {
		viper.SetDefault(side+".port", 0)
		for _, k := range []string{"auth", "user", "password", "dsn"} {
			viper.SetDefault(side+"."+k, "")
		}
	}

	viper.SetDefault("settings.target_address", "192.168.1.100")
	viper.SetDefault("settings.check_object", "")
	viper.SetDefault("settings.output", "Sync_Full_Schema_A_to_B.sql")
	viper.SetDefault("settings.diff_dir", "Diff_Check")
	viper.SetDefault("settings.report", "")
	viper.SetDefault("settings.verbose", false)
}

// LoadConfig reads the merged flag / env / file / default configuration.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	for name, t := range map[string]conn.Target{"source": c.Source, "target": c.Target} {
		if t.DSN != "" {
			continue
		}
		if t.Host == "" {
			return fmt.Errorf("%s.host is required", name)
		}
		if t.Database == "" {
			return fmt.Errorf("%s.database is required", name)
		}
	}
	if c.Settings.TargetAddress == "" {
		return fmt.Errorf("settings.target_address is required")
	}
	return nil
}
