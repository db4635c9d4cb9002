package audio

import (
	"strings"

	"github.com/bogem/id3v2"
)

// TrackTags holds the ID3 fields used to describe a playlist.
type TrackTags struct {
	Artist string
	Title  string
}

// String formats the tags as "Artist - Title", dropping missing parts.
func (t TrackTags) String() string {
	switch {
	case t.Artist != "" && t.Title != "":
		return t.Artist + " - " + t.Title
	case t.Title != "":
		return t.Title
	default:
		return t.Artist
	}
}

// IsEmpty reports whether neither artist nor title is set.
func (t TrackTags) IsEmpty() bool {
	return t.Artist == "" && t.Title == ""
}

// TagReader reads ID3 tags from MP3 files.
//
// Only the TPE1 (Lead artist) and TIT2 (Title) frames are parsed, which
// keeps reads cheap for files with large embedded artwork.
//
// Example:
//
//	reader := NewTagReader()
//	tags, err := reader.ReadTags("/music/01 Thunderstruck.mp3")
//	fmt.Println(tags) // "AC/DC - Thunderstruck"
type TagReader struct {
	frames []string
}

// NewTagReader creates a new TagReader.
func NewTagReader() *TagReader {
	return &TagReader{frames: []string{"Artist", "Title"}}
}

// ReadTags returns the artist and title of the MP3 at path.
//
// A file without an ID3 tag yields empty TrackTags and no error.
func (r *TagReader) ReadTags(path string) (TrackTags, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true, ParseFrames: r.frames})
	if err != nil {
		return TrackTags{}, err
	}
	defer tag.Close()

	return TrackTags{
		Artist: strings.TrimSpace(tag.Artist()),
		Title:  strings.TrimSpace(tag.Title()),
	}, nil
}

// isMP3 reports whether path looks like an MP3 file.
func isMP3(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".mp3")
}
