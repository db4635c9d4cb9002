package generate

import (
	"fmt"

	"github.com/handiism/liquidsoap-conf-gen/internal/liquidsoap"
	"github.com/handiism/liquidsoap-conf-gen/internal/model"
)

// Variable names used in generated scripts.
const (
	CombinedVar = "random_source"
	MainVar     = "main_source"
	DayVar      = "day_source"
	NightVar    = "night_source"
)

// Build assembles the script for playlists, which must already carry IDs.
//
// Blocks are emitted in a fixed order: header, settings, one declaration
// per playlist, the combinator, processing stages, callbacks, sinks.
// The returned warnings describe adjustments made to the request, such as
// a rotation that needs more playlists than were found.
func Build(p model.Params, playlists []*model.Playlist) (*liquidsoap.Document, []string) {
	doc := &liquidsoap.Document{}
	var warnings []string

	doc.Add(liquidsoap.Comment{Lines: []string{
		"Liquidsoap configuration generated by liqgen",
		"Regenerate it instead of editing by hand",
	}})

	doc.Add(settingBlocks(p.Server)...)

	ids := make([]string, len(playlists))
	for i, pl := range playlists {
		ids[i] = pl.ID
		doc.Add(liquidsoap.Declaration{
			ID:         pl.ID,
			Name:       pl.Name,
			Path:       pl.Path,
			Note:       pl.Note,
			ReloadMode: p.Sources.ReloadMode,
			Reload:     p.Sources.Reload,
			CueCut:     p.Sources.CueCut,
		})
	}

	mode := p.Sources.Mode
	if mode == model.ModeRotation && len(ids) < 2 {
		warnings = append(warnings, fmt.Sprintf("rotation needs at least 2 playlists, found %d; using random", len(ids)))
		mode = model.ModeRandom
	}
	doc.Add(liquidsoap.Combinator{
		Mode:       mode,
		Var:        CombinedVar,
		Sources:    ids,
		DayVar:     DayVar,
		NightVar:   NightVar,
		DayStart:   p.Sources.DayStart,
		NightStart: p.Sources.NightStart,
	})

	doc.Add(stageBlocks(p.Processing)...)

	doc.Add(callbackBlocks(p.Server)...)

	doc.Add(sinkBlocks(p.Sink)...)

	return doc, warnings
}

func settingBlocks(s model.ServerParams) []liquidsoap.Block {
	blocks := []liquidsoap.Block{
		liquidsoap.Setting{Key: "server.telnet", Value: liquidsoap.Bool(s.Telnet)},
	}
	if s.Telnet {
		blocks = append(blocks, liquidsoap.Setting{Key: "server.telnet.port", Value: liquidsoap.Int(s.TelnetPort)})
	}
	blocks = append(blocks,
		liquidsoap.Setting{Key: "log.stdout", Value: liquidsoap.Bool(s.LogStdout)},
		liquidsoap.Setting{Key: "log.file", Value: liquidsoap.Bool(s.LogFile)},
	)
	if s.FrameAudioSize > 0 {
		blocks = append(blocks, liquidsoap.Setting{Key: "frame.audio.size", Value: liquidsoap.Int(s.FrameAudioSize)})
	}
	return blocks
}

// stageBlocks builds the processing chain. Each stage wraps the previous
// variable, starting from the combined source; mksafe always comes last.
func stageBlocks(p model.ProcessingParams) []liquidsoap.Block {
	var blocks []liquidsoap.Block
	prev := CombinedVar

	add := func(comment, fn string, args ...liquidsoap.Arg) {
		args = append(args, liquidsoap.Positional(liquidsoap.Ident(prev)))
		blocks = append(blocks, liquidsoap.Stage{
			Comment: comment,
			Var:     MainVar,
			Expr:    liquidsoap.Call{Func: fn, Args: args},
		})
		prev = MainVar
	}

	if p.Normalize {
		add("Loudness normalization", "normalize",
			liquidsoap.Named("target", liquidsoap.Float(p.NormalizeTarget)))
	}
	if p.Filter {
		add("Cut rumble below the audible range", "filter.iir.butterworth.high",
			liquidsoap.Named("frequency", liquidsoap.Float(p.FilterFrequency)),
			liquidsoap.Named("order", liquidsoap.Int(p.FilterOrder)))
	}
	if p.Compress {
		add("Dynamic range compression", "compress",
			liquidsoap.Named("attack", liquidsoap.Float(p.CompressAttack)),
			liquidsoap.Named("release", liquidsoap.Float(p.CompressRelease)),
			liquidsoap.Named("threshold", liquidsoap.Float(p.CompressThreshold)),
			liquidsoap.Named("ratio", liquidsoap.Float(p.CompressRatio)),
			liquidsoap.Named("gain", liquidsoap.Float(p.CompressGain)))
	}
	if p.Limit {
		add("Peak limiting", "limit",
			liquidsoap.Named("threshold", liquidsoap.Float(p.LimitThreshold)))
	}
	if p.Crossfade {
		add("Smooth transitions between tracks", "crossfade",
			liquidsoap.Named("duration", liquidsoap.Float(p.CrossfadeDuration)))
	}
	if p.EmergencyFile != "" {
		blocks = append(blocks, liquidsoap.Stage{
			Comment: "Emergency fallback when every playlist fails",
			Var:     MainVar,
			Expr: liquidsoap.Call{Func: "fallback", Args: []liquidsoap.Arg{
				liquidsoap.Named("track_sensitive", liquidsoap.Bool(false)),
				liquidsoap.Positional(liquidsoap.List{
					liquidsoap.Ident(prev),
					liquidsoap.Call{Func: "single", Args: []liquidsoap.Arg{
						liquidsoap.Positional(liquidsoap.String(p.EmergencyFile)),
					}},
				}),
			}},
		})
		prev = MainVar
	}

	add("Never let the output run dry", "mksafe")
	return blocks
}

func callbackBlocks(s model.ServerParams) []liquidsoap.Block {
	var blocks []liquidsoap.Block

	if s.MetadataLog {
		body := []string{
			`artist = m["artist"]`,
			`title = m["title"]`,
			`log.important("Now playing: #{artist} - #{title}")`,
		}
		if s.MetadataLogFile != "" {
			body = append(body,
				`stamp = time.string("%Y-%m-%d %H:%M:%S")`,
				fmt.Sprintf(`file.write(append=true, data="#{stamp} #{artist} - #{title}\n", %s)`, liquidsoap.Quote(s.MetadataLogFile)),
			)
		}
		blocks = append(blocks, liquidsoap.Callback{
			Comment:  "Log every new track",
			Def:      liquidsoap.Function{Name: "log_metadata", Params: []string{"m"}, Body: body},
			Register: liquidsoap.Call{Func: MainVar + ".on_metadata", Args: []liquidsoap.Arg{liquidsoap.Positional(liquidsoap.Ident("log_metadata"))}},
		})
	}

	if s.Telnet {
		blocks = append(blocks,
			telnetCommand("Telnet: radio.skip", "skip_track", "skip", "Skip the current track",
				MainVar+".skip()", `"Skipped"`),
			telnetCommand("Telnet: radio.remaining", "remaining_time", "remaining", "Seconds left in the current track",
				"string("+MainVar+".remaining())"),
		)
	}

	return blocks
}

func telnetCommand(comment, fn, command, description string, body ...string) liquidsoap.Callback {
	return liquidsoap.Callback{
		Comment: comment,
		Def:     liquidsoap.Function{Name: fn, Params: []string{"_"}, Body: body},
		Register: liquidsoap.Call{Func: "server.register", Args: []liquidsoap.Arg{
			liquidsoap.Named("namespace", liquidsoap.String("radio")),
			liquidsoap.Named("description", liquidsoap.String(description)),
			liquidsoap.Named("usage", liquidsoap.String(command)),
			liquidsoap.Positional(liquidsoap.String(command)),
			liquidsoap.Positional(liquidsoap.Ident(fn)),
		}},
	}
}

// mp3Encoder is the FFmpeg MP3 encoder shared by every sink.
func mp3Encoder(bitrate string) liquidsoap.Encoder {
	return liquidsoap.Encoder{Name: "ffmpeg", Args: []liquidsoap.Arg{
		liquidsoap.Named("format", liquidsoap.String("mp3")),
		liquidsoap.Positional(liquidsoap.Encoder{Name: "audio", Args: []liquidsoap.Arg{
			liquidsoap.Named("codec", liquidsoap.String("libmp3lame")),
			liquidsoap.Named("b", liquidsoap.String(bitrate)),
		}}),
	}}
}

func sinkBlocks(s model.SinkParams) []liquidsoap.Block {
	blocks := []liquidsoap.Block{
		liquidsoap.Sink{
			Comment: "Icecast output, MP3 through FFmpeg",
			Output: liquidsoap.Call{Func: "output.icecast", Args: []liquidsoap.Arg{
				liquidsoap.Positional(mp3Encoder(s.Bitrate)),
				liquidsoap.Named("host", liquidsoap.String(s.Host)),
				liquidsoap.Named("port", liquidsoap.Int(s.Port)),
				liquidsoap.Named("password", liquidsoap.String(s.Password)),
				liquidsoap.Named("mount", liquidsoap.String(s.Mount)),
				liquidsoap.Named("name", liquidsoap.String(s.Name)),
				liquidsoap.Named("description", liquidsoap.String(s.Description)),
				liquidsoap.Named("genre", liquidsoap.String(s.Genre)),
				liquidsoap.Named("public", liquidsoap.Bool(s.Public)),
				liquidsoap.Positional(liquidsoap.Ident(MainVar)),
			}},
		},
	}

	if s.RecordPath != "" {
		blocks = append(blocks, liquidsoap.Sink{
			Comment: "Local recording",
			Output: liquidsoap.Call{Func: "output.file", Args: []liquidsoap.Arg{
				liquidsoap.Positional(mp3Encoder(s.Bitrate)),
				liquidsoap.Positional(liquidsoap.String(s.RecordPath)),
				liquidsoap.Positional(liquidsoap.Ident(MainVar)),
			}},
		})
	}

	return blocks
}
