package audio

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Summary describes a playlist in one line.
type Summary struct {
	Tracks   int
	Duration time.Duration

	// First describes the first track, from ID3 tags when available,
	// otherwise from the #EXTINF title or the file name.
	First string
}

// String formats the summary, e.g. "12 tracks, 48m0s, first: AC/DC - Thunderstruck".
func (s Summary) String() string {
	parts := []string{pluralTracks(s.Tracks)}
	if s.Duration > 0 {
		parts = append(parts, s.Duration.Round(time.Second).String())
	}
	if s.First != "" {
		parts = append(parts, "first: "+s.First)
	}
	return strings.Join(parts, ", ")
}

func pluralTracks(n int) string {
	if n == 1 {
		return "1 track"
	}
	return fmt.Sprintf("%d tracks", n)
}

// Inspector summarizes playlist files.
//
// Inspector is safe for concurrent use as long as its TagReader is.
type Inspector struct {
	tags *TagReader
}

// NewInspector creates an Inspector. If tags is nil, NewTagReader() is used.
func NewInspector(tags *TagReader) *Inspector {
	if tags == nil {
		tags = NewTagReader()
	}
	return &Inspector{tags: tags}
}

// Inspect parses the playlist at path and describes it.
//
// Only the first entry is examined for tags: a local MP3 is opened with
// the TagReader; anything else (URLs, other formats, unreadable files)
// falls back to the #EXTINF title, then to the file name.
func (i *Inspector) Inspect(ctx context.Context, path string) (Summary, error) {
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}

	list, err := ReadM3U(path)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{
		Tracks:   len(list.Entries),
		Duration: list.TotalDuration(),
	}
	if len(list.Entries) > 0 {
		summary.First = i.describe(list.Entries[0], filepath.Dir(filepath.FromSlash(path)))
	}

	return summary, nil
}

func (i *Inspector) describe(e Entry, dir string) string {
	if !e.IsRemote() && isMP3(e.Location) {
		if tags, err := i.tags.ReadTags(e.Resolve(dir)); err == nil && !tags.IsEmpty() {
			return tags.String()
		}
	}
	if e.Title != "" {
		return e.Title
	}
	if e.IsRemote() {
		return e.Location
	}
	loc := strings.ReplaceAll(e.Location, `\`, "/")
	base := loc[strings.LastIndex(loc, "/")+1:]
	return strings.TrimSuffix(base, filepath.Ext(base))
}
