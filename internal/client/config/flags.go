package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/heavyhire/internal/flagx"
)

var knownFlags = []string{"-a", "-k", "-r", "-b", "-d", "-l", "-p", "-t", "-m", "-log-level", "-log-format"}

// parseFlags populates selected Config fields from command-line flags.
// See the package documentation for the list.
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], knownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BackendURL, "a", cfg.BackendURL, "backend project URL")
	fs.StringVar(&cfg.APIKey, "k", cfg.APIKey, "public API key")
	fs.StringVar(&cfg.RedirectTo, "r", cfg.RedirectTo, "sign-up redirect URL")
	fs.StringVar(&cfg.RowBackend, "b", cfg.RowBackend, "row backend: rest or postgres")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "postgres DSN")
	fs.StringVar(&cfg.LocalDBPath, "l", cfg.LocalDBPath, "local database file")
	fs.StringVar(&cfg.SessionPassphrase, "p", cfg.SessionPassphrase, "session passphrase")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	refreshMargin := fs.Int("m", int(cfg.RefreshMargin.Seconds()), "token refresh margin (in seconds)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: text, json or zap")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
	cfg.RefreshMargin = time.Duration(*refreshMargin) * time.Second
}
