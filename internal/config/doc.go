// Package config provides configuration management for liqgen.
//
// This package handles:
//   - Loading and saving settings from JSON or YAML files
//   - Default configuration values
//   - LIQGEN_* environment overrides
//   - Conversion to model.Params for document assembly
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Scans ./playlists, writes ./radio.liq
//	// Random combinator, telnet on port 1234
//	// Icecast on localhost:8000, mount "radio", 192k MP3
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/liqgen.yaml")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//	settings.ApplyEnv()
//
// # Saving Settings
//
//	settings.Bitrate = "128k"
//	err := settings.Save("/path/to/liqgen.json")
//
// # Precedence
//
// Front ends apply, in order: defaults, file, environment, then any
// command-line flag the user set explicitly.
package config
