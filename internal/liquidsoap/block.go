package liquidsoap

import "github.com/handiism/liquidsoap-conf-gen/internal/model"

// Block is one top-level section of a script.
type Block interface {
	isBlock()
}

// Comment is a run of comment lines, written with a "# " prefix.
type Comment struct {
	Lines []string
}

// Setting is a global engine setting: set("key", value).
type Setting struct {
	Key   string
	Value Value
}

// Declaration declares one playlist source.
//
//	# Playlist: Rock
//	playlist_Rock = playlist(reload_mode="watch", reload=300, "/music/Rock.m3u")
//	playlist_Rock = cue_cut(playlist_Rock)
type Declaration struct {
	ID   string
	Name string
	Path string

	// Note is appended to the comment line in parentheses when set.
	Note string

	ReloadMode string
	Reload     int
	CueCut     bool
}

// Combinator merges every declared source into Var.
//
// For model.ModeRotation the sources are split in two halves by integer
// division: the first len/2 go to the day group, the rest to the night
// group, so an odd count puts the extra source at night.
type Combinator struct {
	Mode    model.Mode
	Var     string
	Sources []string

	// Rotation only.
	DayVar     string
	NightVar   string
	DayStart   int
	NightStart int
}

// Groups returns the day and night halves used by rotation.
func (c Combinator) Groups() (day, night []string) {
	half := len(c.Sources) / 2
	return c.Sources[:half], c.Sources[half:]
}

// References returns every source identifier the combinator reads,
// in the order they are written.
func (c Combinator) References() []string {
	refs := make([]string, len(c.Sources))
	copy(refs, c.Sources)
	return refs
}

// Stage rebinds Var to Expr, which normally wraps the previous value.
//
//	main_source = normalize(target=-12., random_source)
type Stage struct {
	Comment string
	Var     string
	Expr    Value
}

// Function is a named function definition with a verbatim body.
type Function struct {
	Name   string
	Params []string
	Body   []string
}

// Callback defines a function and registers it with one call, e.g. a
// metadata handler or a telnet command.
type Callback struct {
	Comment  string
	Def      Function
	Register Call
}

// Sink is an output, rendered with one argument per line.
type Sink struct {
	Comment string
	Output  Call
}

func (Comment) isBlock()     {}
func (Setting) isBlock()     {}
func (Declaration) isBlock() {}
func (Combinator) isBlock()  {}
func (Stage) isBlock()       {}
func (Callback) isBlock()    {}
func (Sink) isBlock()        {}

// Document is an ordered script.
type Document struct {
	Blocks []Block
}

// Add appends blocks in order.
func (d *Document) Add(blocks ...Block) {
	d.Blocks = append(d.Blocks, blocks...)
}

// Declarations returns the declaration blocks in order.
func (d *Document) Declarations() []Declaration {
	var decls []Declaration
	for _, b := range d.Blocks {
		if decl, ok := b.(Declaration); ok {
			decls = append(decls, decl)
		}
	}
	return decls
}

// Combinators returns the combinator blocks in order.
func (d *Document) Combinators() []Combinator {
	var combs []Combinator
	for _, b := range d.Blocks {
		if c, ok := b.(Combinator); ok {
			combs = append(combs, c)
		}
	}
	return combs
}

// Sinks returns the sink blocks in order.
func (d *Document) Sinks() []Sink {
	var sinks []Sink
	for _, b := range d.Blocks {
		if s, ok := b.(Sink); ok {
			sinks = append(sinks, s)
		}
	}
	return sinks
}
