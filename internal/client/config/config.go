package config

import "time"

// Row backends selectable with RowBackend.
const (
	RowBackendREST     = "rest"
	RowBackendPostgres = "postgres"
)

// Config holds runtime settings for the HeavyHire CLI.
//
// Durations are time.Duration values; flags express them in seconds.
type Config struct {
	// BackendURL is the BaaS project URL (auth under /auth/v1, rows under /rest/v1).
	BackendURL string
	// APIKey is the project's public key sent with every request.
	APIKey string
	// RedirectTo is where sign-up confirmation e-mails send the user.
	RedirectTo string

	// RowBackend is "rest" or "postgres".
	RowBackend  string
	DatabaseDSN string

	// LocalDBPath is the SQLite file holding the persisted session.
	LocalDBPath string
	// SessionPassphrase encrypts the persisted session. Empty disables persistence.
	SessionPassphrase string

	RefreshMargin  time.Duration
	RequestTimeout time.Duration

	StorageEndpoint  string
	StorageRegion    string
	StorageBucket    string
	StorageAccessKey string
	StorageSecretKey string
	StoragePublicURL string

	LogLevel  string
	LogFormat string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BackendURL = "http://127.0.0.1:54321"
	c.RedirectTo = "http://127.0.0.1:3000/"
	c.RowBackend = RowBackendREST
	c.LocalDBPath = "heavyhire.db"
	c.RefreshMargin = 60 * time.Second
	c.RequestTimeout = 15 * time.Second
	c.StorageRegion = "us-east-1"
	c.StorageBucket = "avatars"
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
