package model

import (
	"fmt"
	"path"
	"strings"
)

// IDPrefix is prepended to every generated source identifier.
const IDPrefix = "playlist_"

// IDPolicy selects how source identifiers are derived from playlists.
type IDPolicy int

const (
	// IDPolicyName derives the identifier from the file name,
	// e.g. "Jazz Classics.m3u" becomes "playlist_Jazz_Classics".
	// Two files with the same normalized name in different folders
	// would collide; AssignIDs suffixes later duplicates.
	IDPolicyName IDPolicy = iota

	// IDPolicyIndex numbers playlists in discovery order,
	// e.g. "playlist_1", "playlist_2". Unique by construction.
	IDPolicyIndex
)

// String returns the policy name as used in settings and flags.
func (p IDPolicy) String() string {
	switch p {
	case IDPolicyIndex:
		return "index"
	default:
		return "name"
	}
}

// ParseIDPolicy converts a settings value to an IDPolicy.
// The second return value is false for unknown values.
func ParseIDPolicy(s string) (IDPolicy, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "name", "":
		return IDPolicyName, true
	case "index":
		return IDPolicyIndex, true
	default:
		return IDPolicyName, false
	}
}

// Playlist is a discovered playlist file.
//
// Path is absolute and uses forward slashes regardless of platform, since
// it is written verbatim into the generated script.
type Playlist struct {
	// Path is the absolute, forward-slash path of the playlist file.
	Path string

	// Name is the file name without directory and extension.
	Name string

	// ID is the source identifier assigned by AssignIDs.
	ID string

	// Note is an optional one-line description written as a comment
	// above the declaration. Empty means no annotation.
	Note string
}

// NewPlaylist creates a Playlist for the given path.
//
// Backslashes are normalized to forward slashes before the name is taken.
func NewPlaylist(p string) *Playlist {
	p = strings.ReplaceAll(p, `\`, "/")
	base := path.Base(p)
	return &Playlist{
		Path: p,
		Name: strings.TrimSuffix(base, path.Ext(base)),
	}
}

// Rename records an identifier that had to be changed to stay unique.
type Rename struct {
	Path string
	From string
	To   string
}

// AssignIDs sets the ID of every playlist according to policy.
//
// Playlists keep their order; index identifiers start at 1. With
// IDPolicyName, a name that is already taken gets the first free
// "_2", "_3", ... suffix, and every such change is returned so the
// caller can report it.
func AssignIDs(playlists []*Playlist, policy IDPolicy) []Rename {
	var renames []Rename

	if policy == IDPolicyIndex {
		for i, pl := range playlists {
			pl.ID = IndexID(i + 1)
		}
		return nil
	}

	taken := make(map[string]bool, len(playlists))
	for _, pl := range playlists {
		id := NameID(pl.Name)
		if taken[id] {
			base := id
			for n := 2; ; n++ {
				candidate := fmt.Sprintf("%s_%d", base, n)
				if !taken[candidate] {
					id = candidate
					break
				}
			}
			renames = append(renames, Rename{Path: pl.Path, From: base, To: id})
		}
		taken[id] = true
		pl.ID = id
	}

	return renames
}

// NameID derives an identifier from a playlist name.
//
// Spaces and hyphens become underscores, as does any other character
// outside [A-Za-z0-9_], so the result is always a valid identifier.
//
//	NameID("Jazz Classics") // "playlist_Jazz_Classics"
//	NameID("lo-fi")         // "playlist_lo_fi"
func NameID(name string) string {
	var sb strings.Builder
	sb.WriteString(IDPrefix)
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	return sb.String()
}

// ReadableName reports whether name keeps at least one ASCII letter or
// digit in its NameID, i.e. the identifier is not all underscores.
//
//	ReadableName("Рок")    // false, NameID gives "playlist____"
//	ReadableName("Рок 80") // true
func ReadableName(name string) bool {
	for _, r := range name {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}

// IndexID returns the positional identifier for the n-th playlist (1-based).
func IndexID(n int) string {
	return fmt.Sprintf("%s%d", IDPrefix, n)
}
