// Package config loads runtime configuration for the HeavyHire CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags -c or -config,
//     or the HEAVYHIRE_CONFIG environment variable.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   backend project URL
//	-k string   public API key
//	-r string   sign-up redirect URL
//	-b string   row backend: rest or postgres
//	-d string   postgres DSN (row backend postgres)
//	-l string   local SQLite file for the persisted session
//	-p string   passphrase for the persisted session
//	-t int      request timeout (seconds)
//	-m int      token refresh margin (seconds)
//	-log-level  debug, info, warn or error
//	-log-format text, json or zap
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "15s"
// or integer nanoseconds. Keys that are absent keep their previous value.
//
//	{
//	  "backend_url": "https://project.example.co",
//	  "api_key": "public-anon-key",
//	  "redirect_to": "https://heavyhire.example.com/",
//	  "row_backend": "rest",
//	  "database_dsn": "",
//	  "local_db_path": "heavyhire.db",
//	  "session_passphrase": "",
//	  "refresh_margin": "60s",
//	  "request_timeout": "15s",
//	  "storage": {
//	    "endpoint": "https://project.example.co/storage/v1/s3",
//	    "region": "us-east-1",
//	    "bucket": "avatars",
//	    "access_key": "...",
//	    "secret_key": "...",
//	    "public_url": "https://project.example.co/storage/v1/object/public/avatars"
//	  },
//	  "log_level": "info",
//	  "log_format": "text"
//	}
//
// Storage settings are read from JSON only.
package config
