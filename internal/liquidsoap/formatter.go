package liquidsoap

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/handiism/liquidsoap-conf-gen/internal/model"
)

// Formatter renders a Document as Liquidsoap source text.
type Formatter struct {
	indent string
}

// NewFormatter creates a Formatter using two-space indentation.
func NewFormatter() *Formatter {
	return &Formatter{indent: "  "}
}

// Format renders the whole document.
//
// Blocks are separated by one blank line, except that consecutive
// settings are kept together. The result always ends with a newline.
func (f *Formatter) Format(doc *Document) string {
	var sb strings.Builder

	var prev Block
	for _, b := range doc.Blocks {
		if prev != nil {
			_, prevSetting := prev.(Setting)
			_, curSetting := b.(Setting)
			if !(prevSetting && curSetting) {
				sb.WriteString("\n")
			}
		}
		f.writeBlock(&sb, b)
		prev = b
	}

	return sb.String()
}

func (f *Formatter) writeBlock(sb *strings.Builder, b Block) {
	switch b := b.(type) {
	case Comment:
		for _, line := range b.Lines {
			f.writeComment(sb, line)
		}
	case Setting:
		fmt.Fprintf(sb, "set(%s, %s)\n", f.Expr(String(b.Key)), f.Expr(b.Value))
	case Declaration:
		f.writeDeclaration(sb, b)
	case Combinator:
		f.writeCombinator(sb, b)
	case Stage:
		f.writeComment(sb, b.Comment)
		fmt.Fprintf(sb, "%s = %s\n", b.Var, f.Expr(b.Expr))
	case Callback:
		f.writeCallback(sb, b)
	case Sink:
		f.writeComment(sb, b.Comment)
		f.writeMultiline(sb, b.Output)
	}
}

// writeComment writes one comment line. Control characters, line breaks
// included, become spaces so file names and tags stay inside the comment.
func (f *Formatter) writeComment(sb *strings.Builder, line string) {
	if line == "" {
		return
	}
	line = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, line)
	sb.WriteString("# " + line + "\n")
}

func (f *Formatter) writeDeclaration(sb *strings.Builder, d Declaration) {
	comment := "Playlist: " + d.Name
	if d.Note != "" {
		comment += " (" + d.Note + ")"
	}
	f.writeComment(sb, comment)

	source := Call{Func: "playlist", Args: []Arg{
		Named("reload_mode", String(d.ReloadMode)),
		Named("reload", Int(d.Reload)),
		Positional(String(d.Path)),
	}}
	fmt.Fprintf(sb, "%s = %s\n", d.ID, f.Expr(source))

	if d.CueCut {
		cut := Call{Func: "cue_cut", Args: []Arg{Positional(Ident(d.ID))}}
		fmt.Fprintf(sb, "%s = %s\n", d.ID, f.Expr(cut))
	}
}

func (f *Formatter) writeCombinator(sb *strings.Builder, c Combinator) {
	switch c.Mode {
	case model.ModeRotation:
		day, night := c.Groups()
		f.writeComment(sb, fmt.Sprintf("Daytime group (%dh-%dh) and nighttime group (%dh-%dh)", c.DayStart, c.NightStart, c.NightStart, c.DayStart))
		fmt.Fprintf(sb, "%s = %s\n", c.DayVar, f.Expr(randomCall(day)))
		fmt.Fprintf(sb, "%s = %s\n", c.NightVar, f.Expr(randomCall(night)))

		sw := Call{Func: "switch", Args: []Arg{
			Named("track_sensitive", Bool(true)),
			Positional(List{
				Tuple{Interval{FromHour: c.DayStart, ToHour: c.NightStart}, Ident(c.DayVar)},
				Tuple{Interval{FromHour: c.NightStart, ToHour: c.DayStart}, Ident(c.NightVar)},
			}),
		}}
		f.writeComment(sb, "Switch between groups by time of day")
		fmt.Fprintf(sb, "%s = %s\n", c.Var, f.Expr(sw))

	case model.ModeFallback:
		fb := Call{Func: "fallback", Args: []Arg{
			Named("track_sensitive", Bool(true)),
			Positional(Idents(c.Sources)),
		}}
		f.writeComment(sb, "Play the first available playlist")
		fmt.Fprintf(sb, "%s = %s\n", c.Var, f.Expr(fb))

	default:
		f.writeComment(sb, "Random switch between playlists")
		fmt.Fprintf(sb, "%s = %s\n", c.Var, f.Expr(randomCall(c.Sources)))
	}
}

// randomCall builds random(weights=[1, ...], [ids...]) with equal weights.
func randomCall(ids []string) Call {
	weights := make(List, len(ids))
	for i := range weights {
		weights[i] = Int(1)
	}
	return Call{Func: "random", Args: []Arg{
		Named("weights", weights),
		Positional(Idents(ids)),
	}}
}

func (f *Formatter) writeCallback(sb *strings.Builder, c Callback) {
	f.writeComment(sb, c.Comment)
	fmt.Fprintf(sb, "def %s(%s) =\n", c.Def.Name, strings.Join(c.Def.Params, ", "))
	for _, line := range c.Def.Body {
		sb.WriteString(f.indent + line + "\n")
	}
	sb.WriteString("end\n")
	sb.WriteString(f.Expr(c.Register) + "\n")
}

// writeMultiline renders a call with one argument per line.
func (f *Formatter) writeMultiline(sb *strings.Builder, c Call) {
	sb.WriteString(c.Func + "(\n")
	for i, a := range c.Args {
		sb.WriteString(f.indent + f.arg(a))
		if i < len(c.Args)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(")\n")
}

// Expr renders a single expression.
func (f *Formatter) Expr(v Value) string {
	switch v := v.(type) {
	case String:
		return Quote(string(v))
	case Int:
		return strconv.Itoa(int(v))
	case Float:
		return FormatFloat(float64(v))
	case Bool:
		return strconv.FormatBool(bool(v))
	case Ident:
		return string(v)
	case List:
		return "[" + f.join(v) + "]"
	case Tuple:
		return "(" + f.join(v) + ")"
	case Interval:
		return fmt.Sprintf("{%dh-%dh}", v.FromHour, v.ToHour)
	case Call:
		return v.Func + "(" + f.args(v.Args) + ")"
	case Encoder:
		return "%" + v.Name + "(" + f.args(v.Args) + ")"
	case nil:
		return "()"
	default:
		panic(fmt.Sprintf("liquidsoap: unknown value type %T", v))
	}
}

func (f *Formatter) join(values []Value) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = f.Expr(v)
	}
	return strings.Join(parts, ", ")
}

func (f *Formatter) args(args []Arg) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = f.arg(a)
	}
	return strings.Join(parts, ", ")
}

func (f *Formatter) arg(a Arg) string {
	if a.Name == "" {
		return f.Expr(a.Value)
	}
	return a.Name + "=" + f.Expr(a.Value)
}

var quoteReplacer = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

// Quote returns s as a double-quoted Liquidsoap string expression.
//
// The engine interpolates #{...} inside string literals, so a string
// containing "#{" is split between the '#' and the '{' and rendered as a
// concatenation: "a#{b}" becomes ("a#" ^ "{b}").
func Quote(s string) string {
	if !strings.Contains(s, "#{") {
		return quoteLiteral(s)
	}

	parts := strings.Split(s, "#{")
	quoted := make([]string, len(parts))
	for i, p := range parts {
		if i > 0 {
			p = "{" + p
		}
		if i < len(parts)-1 {
			p += "#"
		}
		quoted[i] = quoteLiteral(p)
	}
	return "(" + strings.Join(quoted, " ^ ") + ")"
}

func quoteLiteral(s string) string {
	return `"` + quoteReplacer.Replace(s) + `"`
}

// FormatFloat renders f as a Liquidsoap float literal.
// Whole numbers keep a trailing dot: 3 -> "3.", -12 -> "-12.".
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += "."
	}
	return s
}
