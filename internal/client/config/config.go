package config

import (
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime settings for the vibejournal CLI.
//
// Fields:
//   - ServerBaseURL: base URL every relative API path is resolved against.
//   - OnlineCheckInterval: how often the client checks backend reachability.
//   - HTTPTimeout: overall per-request timeout of the HTTP transport.
//   - TokenStore: token persistence backend, "sqlite" or "memory".
//   - DataDir: directory holding the local database, device key and media.
//   - PlayerCommand: external command used to play audio clips; the clip
//     path is appended as the last argument. Empty disables playback.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	ServerBaseURL       string        `env:"SERVER_URL"`
	OnlineCheckInterval time.Duration `env:"ONLINE_CHECK_INTERVAL"`
	HTTPTimeout         time.Duration `env:"HTTP_TIMEOUT"`
	TokenStore          string        `env:"TOKEN_STORE"`
	DataDir             string        `env:"DATA_DIR"`
	PlayerCommand       string        `env:"PLAYER"`
	LogLevel            string        `env:"LOG_LEVEL"`
}

const envPrefix = "VIBE_"

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8000"
	c.OnlineCheckInterval = 10 * time.Second
	c.HTTPTimeout = 60 * time.Second
	c.TokenStore = "sqlite"
	c.DataDir = "~/.vibejournal"
	c.PlayerCommand = "ffplay -nodisp -autoexit -loglevel quiet"
	c.LogLevel = "warn"
}

// LoadConfig builds a Config from the process environment and command line.
func LoadConfig() *Config {
	return Load(os.Args[1:], env.ToMap(os.Environ()))
}

// Load applies defaults, then environment variables, then the optional
// config file, then flags. Later sources take precedence over earlier ones.
// It panics on malformed input; callers recover into a fatal log.
func Load(args []string, environ map[string]string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg, environ)
	parseFile(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
