package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"ember/internal/diag"
	"ember/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info, note, loc, gutter, caret *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgBlue, color.Bold),
		loc:    color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.loc, p.gutter, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
//
//	<path>:<line>:<col>: <sev> <CODE>: <Message>
//	   3 | строка исходника
//	     |     ^~~~
//
// Ширина символов считается через runewidth, так что каретка стоит
// под нужной колонкой и для широких символов.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		prettyOne(w, d, fs, opts, pal)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	file, hasFile := fileOf(fs, d.Primary)

	header := d.Loc.File
	if d.Loc.IsValid() {
		header = d.Loc.String()
	}
	var start, end source.LineCol
	if hasFile {
		start, end = fs.Resolve(d.Primary)
		header = fmt.Sprintf("%s:%d:%d", formatPath(file, opts.PathMode, fs), start.Line, start.Col)
	}
	if header != "" {
		fmt.Fprintf(w, "%s: ", pal.loc.Sprint(header))
	}
	fmt.Fprintf(w, "%s %s: %s\n",
		pal.severity(d.Severity).Sprint(d.Severity.Label()),
		d.Code.ID(),
		d.Message,
	)

	if hasFile {
		writeSnippet(w, file, start, end, opts.Context, pal)
	}

	if opts.ShowNotes {
		for _, n := range d.Notes {
			loc := ""
			if nf, ok := fileOf(fs, n.Span); ok {
				ns, _ := fs.Resolve(n.Span)
				loc = fmt.Sprintf(" (%s:%d:%d)", formatPath(nf, opts.PathMode, fs), ns.Line, ns.Col)
			}
			fmt.Fprintf(w, "  %s %s%s\n", pal.note.Sprint("note:"), n.Msg, loc)
		}
	}
}

func writeSnippet(w io.Writer, f *source.File, start, end source.LineCol, context int, pal palette) {
	first := start.Line
	if context > 0 {
		if uint32(context) >= first {
			first = 1
		} else {
			first -= uint32(context)
		}
	}
	gutterWidth := len(fmt.Sprint(start.Line))

	for ln := first; ln <= start.Line; ln++ {
		line := f.GetLine(ln)
		fmt.Fprintf(w, " %s %s\n",
			pal.gutter.Sprintf("%*d |", gutterWidth, ln),
			expandTabs(line),
		)
	}

	line := f.GetLine(start.Line)
	pad, width := caretLayout(line, start, end)
	marker := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, " %s %s%s\n",
		pal.gutter.Sprintf("%*s |", gutterWidth, ""),
		strings.Repeat(" ", pad),
		pal.caret.Sprint(marker),
	)
}

// caretLayout возвращает отступ и длину подчёркивания в экранных колонках.
// Многострочный span подчёркивается до конца первой строки.
func caretLayout(line string, start, end source.LineCol) (pad, width int) {
	from := min(int(start.Col)-1, len(line))
	from = max(from, 0)
	to := len(line)
	if end.Line == start.Line {
		to = min(int(end.Col)-1, len(line))
	}
	to = max(to, from)

	pad = runewidth.StringWidth(expandTabs(line[:from]))
	width = runewidth.StringWidth(expandTabs(line[from:to]))
	if width < 1 {
		width = 1
	}
	return pad, width
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}
