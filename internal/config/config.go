package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const appDirName = ".rest-timer"

// Config holds the rest timer settings
type Config struct {
	// ProgramFile is a YAML training program. Empty uses the bundled program.
	ProgramFile string `mapstructure:"program_file"`

	// ProgressFile stores completed sets.
	ProgressFile string `mapstructure:"progress_file"`

	LogFile       string `mapstructure:"log_file"`
	LogMaxSizeMB  int    `mapstructure:"log_max_size_mb"`
	LogMaxBackups int    `mapstructure:"log_max_backups"`

	// TickInterval is the countdown clock period. One second in normal use.
	TickInterval time.Duration `mapstructure:"tick_interval"`

	// AdjustStepSeconds is added or removed by the +/- keys.
	AdjustStepSeconds int `mapstructure:"adjust_step_seconds"`

	// Applied to program exercises that leave sets or rest out
	DefaultRestSeconds int `mapstructure:"default_rest_seconds"`
	DefaultSets        int `mapstructure:"default_sets"`

	StartWeek int `mapstructure:"start_week"`
}

// DefaultConfig returns a Config with every key at its default
func DefaultConfig() *Config {
	dataDir := dataDir()
	return &Config{
		ProgramFile:        "",
		ProgressFile:       filepath.Join(dataDir, "progress.json"),
		LogFile:            filepath.Join(dataDir, "rest-timer.log"),
		LogMaxSizeMB:       5,
		LogMaxBackups:      3,
		TickInterval:       time.Second,
		AdjustStepSeconds:  15,
		DefaultRestSeconds: 90,
		DefaultSets:        3,
		StartWeek:          1,
	}
}

func dataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return appDirName
	}
	return filepath.Join(home, appDirName)
}

// RegisterFlags defines the command line flags understood by Load
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "config file (default config.yaml in ~/.rest-timer)")
	flags.String("program", "", "training program YAML file (default: bundled program)")
	flags.String("progress", "", "completed sets file")
	flags.String("log-file", "", "log file")
	flags.Int("week", 0, "week shown at startup")
	flags.Duration("tick-interval", 0, "countdown clock period")
}

var flagKeys = map[string]string{
	"program":       "program_file",
	"progress":      "progress_file",
	"log-file":      "log_file",
	"week":          "start_week",
	"tick-interval": "tick_interval",
}

// Load reads the configuration from defaults, an optional config.yaml,
// REST_TIMER_* environment variables and the flags, in increasing priority.
// flags may be nil.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("program_file", defaults.ProgramFile)
	v.SetDefault("progress_file", defaults.ProgressFile)
	v.SetDefault("log_file", defaults.LogFile)
	v.SetDefault("log_max_size_mb", defaults.LogMaxSizeMB)
	v.SetDefault("log_max_backups", defaults.LogMaxBackups)
	v.SetDefault("tick_interval", defaults.TickInterval)
	v.SetDefault("adjust_step_seconds", defaults.AdjustStepSeconds)
	v.SetDefault("default_rest_seconds", defaults.DefaultRestSeconds)
	v.SetDefault("default_sets", defaults.DefaultSets)
	v.SetDefault("start_week", defaults.StartWeek)

	configFile := ""
	if flags != nil {
		if f := flags.Lookup("config"); f != nil {
			configFile = f.Value.String()
		}
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dataDir())
		if userConfig, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(userConfig, "rest-timer"))
		}
	}

	// REST_TIMER_TICK_INTERVAL, REST_TIMER_START_WEEK, ...
	v.SetEnvPrefix("REST_TIMER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Only flags set on the command line override the other sources
	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the timer cannot run with
func (c *Config) Validate() error {
	var problems []string
	if c.TickInterval <= 0 {
		problems = append(problems, fmt.Sprintf("tick_interval must be positive, got %s", c.TickInterval))
	}
	if c.AdjustStepSeconds <= 0 {
		problems = append(problems, fmt.Sprintf("adjust_step_seconds must be positive, got %d", c.AdjustStepSeconds))
	}
	if c.DefaultRestSeconds < 0 {
		problems = append(problems, fmt.Sprintf("default_rest_seconds cannot be negative, got %d", c.DefaultRestSeconds))
	}
	if c.DefaultSets <= 0 {
		problems = append(problems, fmt.Sprintf("default_sets must be positive, got %d", c.DefaultSets))
	}
	if c.StartWeek <= 0 {
		problems = append(problems, fmt.Sprintf("start_week must be positive, got %d", c.StartWeek))
	}
	if c.LogMaxSizeMB <= 0 {
		problems = append(problems, fmt.Sprintf("log_max_size_mb must be positive, got %d", c.LogMaxSizeMB))
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
