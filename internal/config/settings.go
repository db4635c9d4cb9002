package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/handiism/liquidsoap-conf-gen/internal/model"
	"gopkg.in/yaml.v3"
)

// Settings holds all configuration options.
type Settings struct {
	// Input and output
	PlaylistDir string `json:"playlist_dir" yaml:"playlist_dir"`
	OutputFile  string `json:"output_file" yaml:"output_file"`
	Extension   string `json:"extension" yaml:"extension"`
	Inspect     bool   `json:"inspect" yaml:"inspect"`
	Workers     int    `json:"workers" yaml:"workers"`

	// Server settings
	Telnet          bool   `json:"telnet" yaml:"telnet"`
	TelnetPort      int    `json:"telnet_port" yaml:"telnet_port"`
	LogStdout       bool   `json:"log_stdout" yaml:"log_stdout"`
	LogFile         bool   `json:"log_file" yaml:"log_file"`
	FrameAudioSize  int    `json:"frame_audio_size" yaml:"frame_audio_size"`
	MetadataLog     bool   `json:"metadata_log" yaml:"metadata_log"`
	MetadataLogFile string `json:"metadata_log_file" yaml:"metadata_log_file"`

	// Sources. Mode is random, rotation or fallback; IDPolicy is name or index.
	ReloadMode string `json:"reload_mode" yaml:"reload_mode"`
	Reload     int    `json:"reload" yaml:"reload"`
	CueCut     bool   `json:"cue_cut" yaml:"cue_cut"`
	Mode       string `json:"mode" yaml:"mode"`
	IDPolicy   string `json:"id_policy" yaml:"id_policy"`
	DayStart   int    `json:"day_start" yaml:"day_start"`
	NightStart int    `json:"night_start" yaml:"night_start"`

	// Processing chain
	Normalize         bool    `json:"normalize" yaml:"normalize"`
	NormalizeTarget   float64 `json:"normalize_target" yaml:"normalize_target"`
	Filter            bool    `json:"filter" yaml:"filter"`
	FilterFrequency   float64 `json:"filter_frequency" yaml:"filter_frequency"`
	FilterOrder       int     `json:"filter_order" yaml:"filter_order"`
	Compress          bool    `json:"compress" yaml:"compress"`
	CompressAttack    float64 `json:"compress_attack" yaml:"compress_attack"`
	CompressRelease   float64 `json:"compress_release" yaml:"compress_release"`
	CompressThreshold float64 `json:"compress_threshold" yaml:"compress_threshold"`
	CompressRatio     float64 `json:"compress_ratio" yaml:"compress_ratio"`
	CompressGain      float64 `json:"compress_gain" yaml:"compress_gain"`
	Limit             bool    `json:"limit" yaml:"limit"`
	LimitThreshold    float64 `json:"limit_threshold" yaml:"limit_threshold"`
	Crossfade         bool    `json:"crossfade" yaml:"crossfade"`
	CrossfadeDuration float64 `json:"crossfade_duration" yaml:"crossfade_duration"`
	EmergencyFile     string  `json:"emergency_file" yaml:"emergency_file"`

	// Icecast output
	Host        string `json:"host" yaml:"host"`
	Port        int    `json:"port" yaml:"port"`
	Password    string `json:"password" yaml:"password"`
	Mount       string `json:"mount" yaml:"mount"`
	Bitrate     string `json:"bitrate" yaml:"bitrate"`
	StationName string `json:"station_name" yaml:"station_name"`
	Description string `json:"description" yaml:"description"`
	Genre       string `json:"genre" yaml:"genre"`
	Public      bool   `json:"public" yaml:"public"`
	RecordPath  string `json:"record_path" yaml:"record_path"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		PlaylistDir: "playlists",
		OutputFile:  "radio.liq",
		Extension:   ".m3u",
		Inspect:     true,
		Workers:     4,

		Telnet:          true,
		TelnetPort:      1234,
		LogStdout:       true,
		LogFile:         false,
		FrameAudioSize:  1024,
		MetadataLog:     false,
		MetadataLogFile: "",

		ReloadMode: "watch",
		Reload:     300,
		CueCut:     true,
		Mode:       "random",
		IDPolicy:   "name",
		DayStart:   6,
		NightStart: 18,

		Normalize:         true,
		NormalizeTarget:   -12,
		Filter:            false,
		FilterFrequency:   30,
		FilterOrder:       4,
		Compress:          false,
		CompressAttack:    50,
		CompressRelease:   400,
		CompressThreshold: -18,
		CompressRatio:     3,
		CompressGain:      2,
		Limit:             false,
		LimitThreshold:    -1,
		Crossfade:         true,
		CrossfadeDuration: 3,

		Host:        "localhost",
		Port:        8000,
		Password:    "hackme",
		Mount:       "radio",
		Bitrate:     "192k",
		StationName: "AutoRadio",
		Description: "Automatically generated radio station",
		Genre:       "Various",
		Public:      true,
	}
}

// Load reads settings from a JSON or YAML file.
//
// Files ending in .yaml or .yml are decoded as YAML, anything else as
// JSON. Fields missing from the file keep their default values, and a
// missing file yields DefaultSettings().
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if isYAML(path) {
		err = yaml.Unmarshal(data, settings)
	} else {
		err = json.Unmarshal(data, settings)
	}
	if err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON or YAML file, chosen by extension.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var data []byte
	var err error
	if isYAML(path) {
		data, err = yaml.Marshal(s)
	} else {
		data, err = json.MarshalIndent(s, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// ToParams converts settings to the immutable generation parameters.
//
// Unknown mode or identifier policy values fall back to random and name.
func (s *Settings) ToParams() model.Params {
	mode, _ := model.ParseMode(s.Mode)
	policy, _ := model.ParseIDPolicy(s.IDPolicy)

	return model.Params{
		Server: model.ServerParams{
			Telnet:          s.Telnet,
			TelnetPort:      s.TelnetPort,
			LogStdout:       s.LogStdout,
			LogFile:         s.LogFile,
			FrameAudioSize:  s.FrameAudioSize,
			MetadataLog:     s.MetadataLog,
			MetadataLogFile: s.MetadataLogFile,
		},
		Sources: model.SourceParams{
			ReloadMode: s.ReloadMode,
			Reload:     s.Reload,
			CueCut:     s.CueCut,
			Mode:       mode,
			IDPolicy:   policy,
			DayStart:   s.DayStart,
			NightStart: s.NightStart,
		},
		Processing: model.ProcessingParams{
			Normalize:         s.Normalize,
			NormalizeTarget:   s.NormalizeTarget,
			Filter:            s.Filter,
			FilterFrequency:   s.FilterFrequency,
			FilterOrder:       s.FilterOrder,
			Compress:          s.Compress,
			CompressAttack:    s.CompressAttack,
			CompressRelease:   s.CompressRelease,
			CompressThreshold: s.CompressThreshold,
			CompressRatio:     s.CompressRatio,
			CompressGain:      s.CompressGain,
			Limit:             s.Limit,
			LimitThreshold:    s.LimitThreshold,
			Crossfade:         s.Crossfade,
			CrossfadeDuration: s.CrossfadeDuration,
			EmergencyFile:     s.EmergencyFile,
		},
		Sink: model.SinkParams{
			Host:        s.Host,
			Port:        s.Port,
			Password:    s.Password,
			Mount:       s.Mount,
			Bitrate:     s.Bitrate,
			Name:        s.StationName,
			Description: s.Description,
			Genre:       s.Genre,
			Public:      s.Public,
			RecordPath:  s.RecordPath,
		},
	}
}
