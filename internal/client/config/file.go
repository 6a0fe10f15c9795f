package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/vibejournal/internal/flagx"
	"github.com/dmitrijs2005/vibejournal/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is a DTO used only for unmarshalling config files. Intervals
// use timex.Duration so they can be written as "3s" or integer nanoseconds.
// Zero values leave the corresponding Config field untouched.
type FileConfig struct {
	ServerBaseURL       string         `json:"server_base_url" yaml:"server_base_url"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval" yaml:"online_check_interval"`
	HTTPTimeout         timex.Duration `json:"http_timeout" yaml:"http_timeout"`
	TokenStore          string         `json:"token_store" yaml:"token_store"`
	DataDir             string         `json:"data_dir" yaml:"data_dir"`
	PlayerCommand       string         `json:"player_command" yaml:"player_command"`
	LogLevel            string         `json:"log_level" yaml:"log_level"`
}

// parseFile overlays cfg with the file named by -c / -config. Files ending
// in .yaml or .yml are read as YAML, anything else as JSON.
//
// Panics on read or unmarshal errors.
func parseFile(cfg *Config, args []string) {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(fmt.Errorf("config file %s: %w", path, err))
	}

	fc.apply(cfg)
}

func (fc *FileConfig) apply(cfg *Config) {
	setString(&cfg.ServerBaseURL, fc.ServerBaseURL)
	setString(&cfg.TokenStore, fc.TokenStore)
	setString(&cfg.DataDir, fc.DataDir)
	setString(&cfg.PlayerCommand, fc.PlayerCommand)
	setString(&cfg.LogLevel, fc.LogLevel)

	if fc.OnlineCheckInterval.Duration != 0 {
		cfg.OnlineCheckInterval = fc.OnlineCheckInterval.Duration
	}
	if fc.HTTPTimeout.Duration != 0 {
		cfg.HTTPTimeout = fc.HTTPTimeout.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
