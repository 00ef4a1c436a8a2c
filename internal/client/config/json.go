package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/heavyhire/internal/flagx"
	"github.com/dmitrijs2005/heavyhire/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "3s" or as integer nanoseconds.
type JsonConfig struct {
	BackendURL        string          `json:"backend_url"`
	APIKey            string          `json:"api_key"`
	RedirectTo        string          `json:"redirect_to"`
	RowBackend        string          `json:"row_backend"`
	DatabaseDSN       string          `json:"database_dsn"`
	LocalDBPath       string          `json:"local_db_path"`
	SessionPassphrase string          `json:"session_passphrase"`
	RefreshMargin     *timex.Duration `json:"refresh_margin"`
	RequestTimeout    *timex.Duration `json:"request_timeout"`
	Storage           JsonStorage     `json:"storage"`
	LogLevel          string          `json:"log_level"`
	LogFormat         string          `json:"log_format"`
}

type JsonStorage struct {
	Endpoint  string `json:"endpoint"`
	Region    string `json:"region"`
	Bucket    string `json:"bucket"`
	AccessKey string `json:"access_key"`
	SecretKey string `json:"secret_key"`
	PublicURL string `json:"public_url"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path comes from -c/-config (or HEAVYHIRE_CONFIG) via
// flagx.JsonConfigFlags. Without one nothing is loaded. Read or unmarshal
// errors panic.
//
// Intended usage is: defaults -> parseJson -> parseFlags, where later stages
// override earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.BackendURL, jc.BackendURL)
	set(&cfg.APIKey, jc.APIKey)
	set(&cfg.RedirectTo, jc.RedirectTo)
	set(&cfg.RowBackend, jc.RowBackend)
	set(&cfg.DatabaseDSN, jc.DatabaseDSN)
	set(&cfg.LocalDBPath, jc.LocalDBPath)
	set(&cfg.SessionPassphrase, jc.SessionPassphrase)
	set(&cfg.StorageEndpoint, jc.Storage.Endpoint)
	set(&cfg.StorageRegion, jc.Storage.Region)
	set(&cfg.StorageBucket, jc.Storage.Bucket)
	set(&cfg.StorageAccessKey, jc.Storage.AccessKey)
	set(&cfg.StorageSecretKey, jc.Storage.SecretKey)
	set(&cfg.StoragePublicURL, jc.Storage.PublicURL)
	set(&cfg.LogLevel, jc.LogLevel)
	set(&cfg.LogFormat, jc.LogFormat)

	if jc.RefreshMargin != nil {
		cfg.RefreshMargin = jc.RefreshMargin.Duration
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}
