package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/vibejournal/internal/flagx"
)

var knownFlags = []string{"-a", "-i", "-s", "-d", "-l", "-p"}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   backend base URL
//	-i int      online check interval in seconds
//	-s string   token store backend (sqlite|memory)
//	-d string   data directory
//	-l string   log level
//	-p string   audio player command
//
// args are filtered with flagx.FilterArgs first so flags owned by other
// components do not break parsing.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, knownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "backend base URL")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.TokenStore, "s", cfg.TokenStore, "token store backend: sqlite or memory")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.PlayerCommand, "p", cfg.PlayerCommand, "audio player command")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
