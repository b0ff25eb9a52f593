package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type PageSQLConfig struct {
	AppName string `mapstructure:"app_name"`

	Storage struct {
		HeaderPages int `mapstructure:"header_pages"`
	} `mapstructure:"storage"`

	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`

	Repl struct {
		Prompt  string `mapstructure:"prompt"`
		History string `mapstructure:"history"`
	} `mapstructure:"repl"`
}

const EnvPrefix = "PAGESQL"

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "pagesql")
	v.SetDefault("storage.header_pages", 1)
	v.SetDefault("log.level", "info")
	v.SetDefault("repl.prompt", "db > ")
	v.SetDefault("repl.history", defaultHistoryPath())
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".pagesql_history"
	}
	return filepath.Join(home, ".pagesql_history")
}

// LoadConfig reads the YAML file at path, if any, over the defaults.
// PAGESQL_* environment variables win over both, e.g. PAGESQL_LOG_LEVEL.
func LoadConfig(path string) (*PageSQLConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg PageSQLConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Storage.HeaderPages < 1 {
		return nil, fmt.Errorf("config: storage.header_pages must be >= 1, got %d", cfg.Storage.HeaderPages)
	}
	return &cfg, nil
}
