package config

import (
	"os"
	"strconv"
)

// ApplyEnv overrides settings from LIQGEN_* environment variables.
//
// Empty variables are ignored and invalid integers keep the current value,
// so a typo never silently resets a port to zero.
func (s *Settings) ApplyEnv() {
	s.PlaylistDir = envStr("LIQGEN_DIR", s.PlaylistDir)
	s.OutputFile = envStr("LIQGEN_OUTPUT", s.OutputFile)
	s.Mode = envStr("LIQGEN_MODE", s.Mode)

	s.Host = envStr("LIQGEN_HOST", s.Host)
	s.Port = envInt("LIQGEN_PORT", s.Port)
	s.Password = envStr("LIQGEN_PASSWORD", s.Password)
	s.Mount = envStr("LIQGEN_MOUNT", s.Mount)
	s.Bitrate = envStr("LIQGEN_BITRATE", s.Bitrate)
	s.TelnetPort = envInt("LIQGEN_TELNET_PORT", s.TelnetPort)
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
