package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. WAYPOINT_DB_PATH for
// db.path.
const EnvPrefix = "WAYPOINT"

// Config represents the complete waypoint configuration
type Config struct {
	// Workspace selects which stored forest, history and punch list to use.
	Workspace string        `mapstructure:"workspace"`
	DB        DBConfig      `mapstructure:"db"`
	History   HistoryConfig `mapstructure:"history"`
	Review    ReviewConfig  `mapstructure:"review"`
	Gantt     GanttConfig   `mapstructure:"gantt"`
	Log       LogConfig     `mapstructure:"log"`
}

type DBConfig struct {
	// Path is the SQLite file, or ":memory:".
	Path string `mapstructure:"path"`
}

// HistoryConfig bounds the undo stack.
type HistoryConfig struct {
	Limit int `mapstructure:"limit"`
}

// ReviewConfig controls the review dashboard.
type ReviewConfig struct {
	// DueSoonWeekdays is how many weekdays ahead an open item counts as due soon.
	DueSoonWeekdays int `mapstructure:"due_soon_weekdays"`
}

type GanttConfig struct {
	// Width is the number of columns used for the bar area.
	Width int `mapstructure:"width"`
}

type LogConfig struct {
	// UseCases writes one structured line per service use case to stderr.
	UseCases bool `mapstructure:"use_cases"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Workspace: "default",
		DB:        DBConfig{Path: filepath.Join(ConfigDir(), "waypoint.db")},
		History:   HistoryConfig{Limit: 50},
		Review:    ReviewConfig{DueSoonWeekdays: 5},
		Gantt:     GanttConfig{Width: 60},
		Log:       LogConfig{UseCases: false},
	}
}

// SetDefaults registers default values with v so they apply even without a
// config file.
func SetDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("workspace", defaults.Workspace)
	v.SetDefault("db.path", defaults.DB.Path)
	v.SetDefault("history.limit", defaults.History.Limit)
	v.SetDefault("review.due_soon_weekdays", defaults.Review.DueSoonWeekdays)
	v.SetDefault("gantt.width", defaults.Gantt.Width)
	v.SetDefault("log.use_cases", defaults.Log.UseCases)
}

// Init prepares v: defaults, config file lookup and environment overrides.
// A missing default config file is not an error; a missing explicit one is.
func Init(v *viper.Viper, cfgFile string) error {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(ConfigDir())
	}

	v.AutomaticEnv()
	v.SetEnvPrefix(EnvPrefix)
	// WAYPOINT_REVIEW_DUE_SOON_WEEKDAYS for review.due_soon_weekdays
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	return nil
}

// Load reads the configuration from v into a Config struct and validates it
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the directory holding config.yaml and the default
// database.
func ConfigDir() string {
	if dir := os.Getenv("WAYPOINT_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".waypoint"
	}
	return filepath.Join(home, ".waypoint")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
