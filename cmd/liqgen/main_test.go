package main

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/handiism/liquidsoap-conf-gen/internal/config"
)

var envKeys = []string{
	"LIQGEN_DIR", "LIQGEN_OUTPUT", "LIQGEN_MODE", "LIQGEN_HOST", "LIQGEN_PORT",
	"LIQGEN_PASSWORD", "LIQGEN_MOUNT", "LIQGEN_BITRATE", "LIQGEN_TELNET_PORT",
}

const fileConfig = `host: file.example.org
port: 9000
mount: file-mount
telnet: true
bitrate: 96k
`

func TestLoadSettings_Precedence(t *testing.T) {
	tests := []struct {
		name  string
		file  bool
		env   map[string]string
		args  []string
		check func(t *testing.T, s *config.Settings)
	}{
		{
			name: "defaults only",
			check: func(t *testing.T, s *config.Settings) {
				if *s != *config.DefaultSettings() {
					t.Errorf("settings = %+v, want defaults", s)
				}
			},
		},
		{
			name: "file beats defaults",
			file: true,
			check: func(t *testing.T, s *config.Settings) {
				if s.Host != "file.example.org" || s.Port != 9000 || s.Bitrate != "96k" {
					t.Errorf("host/port/bitrate = %s/%d/%s", s.Host, s.Port, s.Bitrate)
				}
				if s.Password != "hackme" {
					t.Errorf("Password = %q, want default", s.Password)
				}
			},
		},
		{
			name: "env beats file",
			file: true,
			env:  map[string]string{"LIQGEN_HOST": "env.example.org", "LIQGEN_BITRATE": "128k"},
			check: func(t *testing.T, s *config.Settings) {
				if s.Host != "env.example.org" || s.Bitrate != "128k" {
					t.Errorf("host/bitrate = %s/%s, want env values", s.Host, s.Bitrate)
				}
				if s.Port != 9000 {
					t.Errorf("Port = %d, want 9000 from file", s.Port)
				}
			},
		},
		{
			name: "explicit flags beat env and file",
			file: true,
			env:  map[string]string{"LIQGEN_HOST": "env.example.org", "LIQGEN_PORT": "8010"},
			args: []string{"-host", "flag.example.org", "-telnet=false"},
			check: func(t *testing.T, s *config.Settings) {
				if s.Host != "flag.example.org" {
					t.Errorf("Host = %q, want flag value", s.Host)
				}
				if s.Telnet {
					t.Error("Telnet should be disabled by -telnet=false")
				}
				if s.Port != 8010 {
					t.Errorf("Port = %d, want 8010 from env", s.Port)
				}
			},
		},
		{
			name: "unset flags keep file values",
			file: true,
			args: []string{"-mode", "rotation"},
			check: func(t *testing.T, s *config.Settings) {
				if s.Mount != "file-mount" || s.Port != 9000 || s.Bitrate != "96k" {
					t.Errorf("mount/port/bitrate = %s/%d/%s, want file values", s.Mount, s.Port, s.Bitrate)
				}
				if s.Mode != "rotation" {
					t.Errorf("Mode = %q, want rotation", s.Mode)
				}
			},
		},
		{
			name: "metadata log sets both fields",
			args: []string{"-metadata-log", "/var/log/radio/now.log", "-record", "/srv/rec.mp3", "-ids", "index", "-workers", "8"},
			check: func(t *testing.T, s *config.Settings) {
				if !s.MetadataLog || s.MetadataLogFile != "/var/log/radio/now.log" {
					t.Errorf("MetadataLog = %v, MetadataLogFile = %q", s.MetadataLog, s.MetadataLogFile)
				}
				if s.RecordPath != "/srv/rec.mp3" || s.IDPolicy != "index" || s.Workers != 8 {
					t.Errorf("record/ids/workers = %s/%s/%d", s.RecordPath, s.IDPolicy, s.Workers)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range envKeys {
				t.Setenv(key, "")
			}
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			args := tt.args
			if tt.file {
				path := filepath.Join(t.TempDir(), "liqgen.yaml")
				if err := os.WriteFile(path, []byte(fileConfig), 0644); err != nil {
					t.Fatal(err)
				}
				args = append([]string{"-config", path}, args...)
			}

			fs := flag.NewFlagSet("liqgen", flag.ContinueOnError)
			fs.SetOutput(io.Discard)
			opts := registerFlags(fs, config.DefaultSettings())
			if err := fs.Parse(args); err != nil {
				t.Fatalf("Parse: %v", err)
			}

			s, err := loadSettings(fs, opts)
			if err != nil {
				t.Fatalf("loadSettings: %v", err)
			}
			tt.check(t, s)
		})
	}
}

func TestLoadSettings_BadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "liqgen.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	fs := flag.NewFlagSet("liqgen", flag.ContinueOnError)
	opts := registerFlags(fs, config.DefaultSettings())
	if err := fs.Parse([]string{"-config", path}); err != nil {
		t.Fatal(err)
	}

	if _, err := loadSettings(fs, opts); err == nil {
		t.Error("expected error for invalid config file")
	}
}
