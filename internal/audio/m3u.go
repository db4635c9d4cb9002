package audio

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Entry is one track reference in an M3U playlist.
type Entry struct {
	// Location is the path or URL exactly as written in the playlist.
	Location string

	// Title comes from the preceding #EXTINF line, if any.
	Title string

	// Duration comes from the preceding #EXTINF line.
	// Zero means unknown (missing or -1).
	Duration time.Duration
}

// IsRemote reports whether the entry is a URL rather than a file.
func (e Entry) IsRemote() bool {
	return strings.Contains(e.Location, "://")
}

// Resolve returns the entry's file path, resolving relative locations
// against dir (the directory holding the playlist).
func (e Entry) Resolve(dir string) string {
	loc := filepath.FromSlash(strings.ReplaceAll(e.Location, `\`, "/"))
	if filepath.IsAbs(loc) {
		return loc
	}
	return filepath.Join(dir, loc)
}

// M3U is a parsed playlist.
//
// Plain M3U:
//
//	song1.mp3
//	song2.mp3
//
// Extended M3U:
//
//	#EXTM3U
//	#EXTINF:180,Artist - Title
//	song1.mp3
type M3U struct {
	Extended bool
	Entries  []Entry
}

// TotalDuration sums the known entry durations.
func (m *M3U) TotalDuration() time.Duration {
	var total time.Duration
	for _, e := range m.Entries {
		total += e.Duration
	}
	return total
}

// ReadM3U opens and parses the playlist at path.
func ReadM3U(path string) (*M3U, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParseM3U(f)
}

// ParseM3U parses plain or extended M3U content.
//
// Blank lines and comments other than #EXTM3U and #EXTINF are ignored.
// A UTF-8 byte order mark and Windows line endings are tolerated.
func ParseM3U(r io.Reader) (*M3U, error) {
	list := &M3U{}
	scanner := bufio.NewScanner(r)

	var pending *Entry
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}
		line = strings.TrimSpace(line)

		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "#EXTM3U"):
			list.Extended = true
		case strings.HasPrefix(line, "#EXTINF:"):
			e := parseExtInf(strings.TrimPrefix(line, "#EXTINF:"))
			pending = &e
		case strings.HasPrefix(line, "#"):
			continue
		default:
			e := Entry{Location: line}
			if pending != nil {
				e.Title = pending.Title
				e.Duration = pending.Duration
				pending = nil
			}
			list.Entries = append(list.Entries, e)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

// parseExtInf parses "<seconds>[ attrs],<title>".
func parseExtInf(s string) Entry {
	var e Entry

	info, title, found := strings.Cut(s, ",")
	if found {
		e.Title = strings.TrimSpace(title)
	}

	// Attributes such as tvg-id="..." may follow the duration.
	if fields := strings.Fields(info); len(fields) > 0 {
		if secs, err := strconv.ParseFloat(fields[0], 64); err == nil && secs > 0 {
			e.Duration = time.Duration(secs * float64(time.Second))
		}
	}

	return e
}
