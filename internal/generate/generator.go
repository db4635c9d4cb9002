package generate

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/handiism/liquidsoap-conf-gen/internal/audio"
	"github.com/handiism/liquidsoap-conf-gen/internal/config"
	ioutils "github.com/handiism/liquidsoap-conf-gen/internal/io"
	"github.com/handiism/liquidsoap-conf-gen/internal/liquidsoap"
	"github.com/handiism/liquidsoap-conf-gen/internal/model"
	"golang.org/x/sync/errgroup"
)

// ErrNoPlaylists is returned by Initialize when discovery finds nothing.
// The output file is never touched in that case.
var ErrNoPlaylists = errors.New("no playlists found")

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a generation progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Generator coordinates one generation run.
type Generator struct {
	settings  *config.Settings
	params    model.Params
	inspector *audio.Inspector
	formatter *liquidsoap.Formatter

	playlists []*model.Playlist
	warnings  []string
	mode      model.Mode
	inspected int32
	total     int32

	onProgress func(ProgressEvent)
}

// NewGenerator creates a Generator from a copy of settings, so later
// changes to settings do not affect the run.
func NewGenerator(settings *config.Settings, onProgress func(ProgressEvent)) *Generator {
	s := *settings
	params := s.ToParams()
	return &Generator{
		settings:   &s,
		params:     params,
		mode:       params.Sources.Mode,
		inspector:  audio.NewInspector(audio.NewTagReader()),
		formatter:  liquidsoap.NewFormatter(),
		onProgress: onProgress,
	}
}

// Params returns the resolved generation parameters.
func (g *Generator) Params() model.Params {
	return g.params
}

// Initialize discovers playlists, assigns identifiers and, if enabled,
// inspects every playlist for its declaration comment.
//
// Returns ErrNoPlaylists (wrapped with the directory) when nothing matches.
func (g *Generator) Initialize(ctx context.Context) error {
	dir, ext := g.settings.PlaylistDir, g.settings.Extension

	g.progress(ProgressEvent{Message: fmt.Sprintf("Scanning %s for %s files", dir, ext), Level: LevelVerbose})

	paths, err := ioutils.FindPlaylists(ctx, dir, ext)
	if err != nil {
		return fmt.Errorf("scan %s: %w", dir, err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("%w: no %s files in %s", ErrNoPlaylists, ext, dir)
	}

	playlists := make([]*model.Playlist, len(paths))
	for i, p := range paths {
		playlists[i] = model.NewPlaylist(p)
	}

	for _, r := range model.AssignIDs(playlists, g.params.Sources.IDPolicy) {
		g.progress(ProgressEvent{Message: fmt.Sprintf("Identifier %s already used, %s declared as %s", r.From, r.Path, r.To), Level: LevelWarning})
	}

	if g.params.Sources.IDPolicy == model.IDPolicyName {
		var opaque int
		for _, pl := range playlists {
			if !model.ReadableName(pl.Name) {
				opaque++
			}
		}
		if opaque > 0 {
			g.progress(ProgressEvent{Message: fmt.Sprintf("%d playlist name(s) have no ASCII letters or digits and were declared as underscores; consider index identifiers (-ids index)", opaque), Level: LevelWarning})
		}
	}

	g.playlists = playlists
	atomic.StoreInt32(&g.total, int32(len(playlists)))
	g.progress(ProgressEvent{Message: fmt.Sprintf("Found %d playlist(s)", len(playlists)), Level: LevelInfo})

	if g.settings.Inspect {
		if err := g.inspect(ctx); err != nil {
			return err
		}
	}

	return nil
}

// inspect annotates playlists concurrently. Results are stored per
// playlist, so the output order never depends on scheduling.
func (g *Generator) inspect(ctx context.Context) error {
	workers := g.settings.Workers
	if workers < 1 {
		workers = 1
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	for _, pl := range g.playlists {
		pl := pl // capture
		eg.Go(func() error {
			summary, err := g.inspector.Inspect(ctx, pl.Path)
			atomic.AddInt32(&g.inspected, 1)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				g.progress(ProgressEvent{Message: fmt.Sprintf("Could not inspect %s: %v", pl.Path, err), Level: LevelWarning})
				return nil // Declaration is still emitted
			}
			pl.Note = summary.String()
			g.progress(ProgressEvent{Message: fmt.Sprintf("%s: %s", pl.ID, pl.Note), Level: LevelVerbose})
			return nil
		})
	}

	return eg.Wait()
}

// Document assembles the script blocks for the discovered playlists.
func (g *Generator) Document() *liquidsoap.Document {
	doc, warnings := Build(g.params, g.playlists)
	g.warnings = warnings
	if combs := doc.Combinators(); len(combs) > 0 {
		g.mode = combs[0].Mode
	}
	for _, w := range warnings {
		g.progress(ProgressEvent{Message: w, Level: LevelWarning})
	}
	return doc
}

// Script renders the whole script as text.
func (g *Generator) Script() string {
	return g.formatter.Format(g.Document())
}

// Write renders the script and writes it to the configured output file,
// returning the number of bytes written.
//
// The script is rendered completely before the file is opened.
func (g *Generator) Write(ctx context.Context) (int, error) {
	if len(g.playlists) == 0 {
		return 0, ErrNoPlaylists
	}

	script := g.Script()
	if err := ioutils.WriteFile(ctx, g.settings.OutputFile, []byte(script)); err != nil {
		return 0, fmt.Errorf("write %s: %w", g.settings.OutputFile, err)
	}

	g.progress(ProgressEvent{Message: fmt.Sprintf("Wrote %s", g.settings.OutputFile), Level: LevelSuccess})
	return len(script), nil
}

// GetProgress returns how many playlists have been inspected out of the total.
func (g *Generator) GetProgress() (inspected, total int32) {
	return atomic.LoadInt32(&g.inspected), atomic.LoadInt32(&g.total)
}

// GetPlaylistNames returns "id: path" for every discovered playlist.
func (g *Generator) GetPlaylistNames() []string {
	names := make([]string, len(g.playlists))
	for i, pl := range g.playlists {
		names[i] = fmt.Sprintf("%s: %s", pl.ID, pl.Path)
	}
	return names
}

// Playlists returns the discovered playlists in declaration order.
func (g *Generator) Playlists() []*model.Playlist {
	return g.playlists
}

// Mode returns the combinator mode of the last Document call, which
// differs from the configured mode when rotation had to fall back to random.
// Before Document is called it is the configured mode.
func (g *Generator) Mode() model.Mode {
	return g.mode
}

// Warnings returns the adjustments reported by the last Document call.
func (g *Generator) Warnings() []string {
	return g.warnings
}

func (g *Generator) progress(event ProgressEvent) {
	if g.onProgress != nil {
		g.onProgress(event)
	}
}
