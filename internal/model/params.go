package model

import "strings"

// Mode selects the combinator that merges all playlist sources into one.
type Mode int

const (
	// ModeRandom picks uniformly at random between all playlists.
	ModeRandom Mode = iota

	// ModeRotation splits the playlists into a day group and a night group
	// and switches between them by time of day.
	ModeRotation

	// ModeFallback plays the first available playlist in order.
	ModeFallback
)

// String returns the mode name as used in settings and flags.
func (m Mode) String() string {
	switch m {
	case ModeRotation:
		return "rotation"
	case ModeFallback:
		return "fallback"
	default:
		return "random"
	}
}

// ParseMode converts a settings value to a Mode.
// The second return value is false for unknown values.
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "random", "":
		return ModeRandom, true
	case "rotation":
		return ModeRotation, true
	case "fallback":
		return ModeFallback, true
	default:
		return ModeRandom, false
	}
}

// Params holds every value interpolated into the generated script.
//
// Params is built once per run (see config.Settings.ToParams) and passed by
// value, so assembly code cannot change it behind the caller's back.
type Params struct {
	Server     ServerParams
	Sources    SourceParams
	Processing ProcessingParams
	Sink       SinkParams
}

// ServerParams are the engine-wide settings written as set(...) statements.
type ServerParams struct {
	Telnet         bool
	TelnetPort     int
	LogStdout      bool
	LogFile        bool
	FrameAudioSize int

	// MetadataLog registers a callback that logs every new track.
	MetadataLog bool

	// MetadataLogFile, when set, makes the callback also append to this file.
	MetadataLogFile string
}

// SourceParams control playlist declarations and the combinator.
type SourceParams struct {
	ReloadMode string
	Reload     int
	CueCut     bool
	Mode       Mode
	IDPolicy   IDPolicy

	// DayStart and NightStart are hours (0-23) used by ModeRotation.
	DayStart   int
	NightStart int
}

// ProcessingParams describe the audio chain applied to the combined source.
// Stages run in field order; disabled stages are skipped.
type ProcessingParams struct {
	Normalize       bool
	NormalizeTarget float64

	Filter          bool
	FilterFrequency float64
	FilterOrder     int

	Compress          bool
	CompressAttack    float64
	CompressRelease   float64
	CompressThreshold float64
	CompressRatio     float64
	CompressGain      float64

	Limit          bool
	LimitThreshold float64

	Crossfade         bool
	CrossfadeDuration float64

	// EmergencyFile is played when every playlist fails. Empty disables it.
	EmergencyFile string
}

// SinkParams describe the Icecast output and the optional recording.
type SinkParams struct {
	Host        string
	Port        int
	Password    string
	Mount       string
	Bitrate     string
	Name        string
	Description string
	Genre       string
	Public      bool

	// RecordPath, when set, adds a file output with this path template.
	RecordPath string
}
