package diff

import (
	"html"
	"strconv"
	"strings"
	"unicode"

	"textforge-api/pkg/utils/text"
)

// CanonicalStyles is the stylesheet the canonical table's classes expect
const CanonicalStyles = `
        table.diff {font-family:Courier; border:medium;}
        .diff_header {background-color:#e0e0e0}
        td.diff_header {text-align:right}
        .diff_next {background-color:#c0c0c0}
        .diff_add {background-color:#aaffaa}
        .diff_chg {background-color:` + ColorChange + `}
        .diff_sub {background-color:#ffaaaa}`

const (
	fromPrefix     = "from0_"
	toPrefix       = "to0_"
	defaultTabSize = 8

	// DefaultNumLines is the context kept around changes in context mode
	DefaultNumLines = 5
)

// TableOptions controls the canonical table. With Context set, only
// NumLines unchanged lines around each change are shown.
type TableOptions struct {
	FromDesc string
	ToDesc   string
	Context  bool
	NumLines int
	TabSize  int
}

// Table renders the canonical full side-by-side table with intraline
// change markers and navigation links. Anchor ids are fixed so the output
// depends only on the inputs.
func Table(original, modified string, opts TableOptions) string {
	if opts.TabSize <= 0 {
		opts.TabSize = defaultTabSize
	}
	if opts.NumLines < 0 {
		opts.NumLines = 0
	}

	a := expandTableTabs(text.SplitLines(original), opts.TabSize)
	b := expandTableTabs(text.SplitLines(modified), opts.TabSize)

	rows := pairLines(lineTriples(ndiff(a, b)))
	if opts.Context {
		rows = windowRows(rows, opts.NumLines)
	}

	fromList, toList, flags := collectRows(rows)
	fromList, toList, flags, nextHref, nextID := convertFlags(fromList, toList, flags, opts.Context, opts.NumLines)

	var data strings.Builder
	for i := range flags {
		if flags[i] == flagSeparator {
			if i > 0 {
				data.WriteString("        </tbody>        \n        <tbody>\n")
			}
			continue
		}
		data.WriteString(`            <tr><td class="diff_next"` + nextID[i] + `>` + nextHref[i] + `</td>` + fromList[i])
		data.WriteString(`<td class="diff_next">` + nextHref[i] + `</td>` + toList[i] + "</tr>\n")
	}

	header := ""
	if opts.FromDesc != "" || opts.ToDesc != "" {
		header = `<thead><tr><th class="diff_next"><br /></th>` +
			`<th colspan="2" class="diff_header">` + html.EscapeString(opts.FromDesc) + `</th>` +
			`<th class="diff_next"><br /></th>` +
			`<th colspan="2" class="diff_header">` + html.EscapeString(opts.ToDesc) + `</th></tr></thead>`
	}

	table := "\n" +
		`    <table class="diff" id="difflib_chg_` + toPrefix + `_top"` + "\n" +
		`           cellspacing="0" cellpadding="0" rules="groups" >` + "\n" +
		"        <colgroup></colgroup> <colgroup></colgroup> <colgroup></colgroup>\n" +
		"        <colgroup></colgroup> <colgroup></colgroup> <colgroup></colgroup>\n" +
		"        " + header + "\n" +
		"        <tbody>\n" +
		data.String() +
		"        </tbody>\n" +
		"    </table>"

	return markerReplacer.Replace(table)
}

var markerReplacer = strings.NewReplacer(
	"\x00+", `<span class="diff_add">`,
	"\x00-", `<span class="diff_sub">`,
	"\x00^", `<span class="diff_chg">`,
	"\x01", "</span>",
	"\t", "&nbsp;",
)

// expandTableTabs expands tabs while marking the inserted padding with tab
// characters, which render as non-breaking spaces
func expandTableTabs(lines []string, tabSize int) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		line = strings.ReplaceAll(line, " ", "\x00")
		line = text.ExpandTabs(line, tabSize)
		line = strings.ReplaceAll(line, " ", "\t")
		out[i] = strings.ReplaceAll(line, "\x00", " ")
	}
	return out
}

// tableLine is one side of a table row; a blank line pads the shorter side
// of a change
type tableLine struct {
	num   int
	text  string
	blank bool
}

type triple struct {
	from, to *tableLine
	diff     bool
}

// lineTriples pairs ndiff output into from/to lines, inserting blank lines
// so the two sides of a change stay aligned
func lineTriples(diffLines []string) []triple {
	var (
		out      []triple
		lines    []string
		next     int
		numLines [2]int
		pending  int
		toYield  int
	)

	pull := func() string {
		if next < len(diffLines) {
			next++
			return diffLines[next-1]
		}
		return "X"
	}
	pop := func() string {
		s := lines[0]
		lines = lines[1:]
		return s
	}
	makeLine := func(key byte, side int) *tableLine {
		numLines[side]++
		var t string
		switch key {
		case 0:
			t = pop()[2:]
		case '?':
			t = applyMarkers(pop(), pop())[2:]
		default:
			t = pop()[2:]
			if t == "" {
				t = " "
			}
			t = "\x00" + string(key) + t + "\x01"
		}
		return &tableLine{num: numLines[side], text: t}
	}

	for {
		for len(lines) < 4 {
			lines = append(lines, pull())
		}
		var s strings.Builder
		for _, l := range lines {
			s.WriteByte(l[0])
		}
		sig := s.String()

		var from, to *tableLine
		done := false
		switch {
		case strings.HasPrefix(sig, "X"):
			toYield = pending
			done = true
		case strings.HasPrefix(sig, "-?+?"):
			f := makeLine('?', 0)
			out = append(out, triple{f, makeLine('?', 1), true})
			continue
		case strings.HasPrefix(sig, "--++"):
			pending--
			out = append(out, triple{makeLine('-', 0), nil, true})
			continue
		case strings.HasPrefix(sig, "--?+"), strings.HasPrefix(sig, "--+"), strings.HasPrefix(sig, "- "):
			from = makeLine('-', 0)
			toYield, pending = pending-1, 0
		case strings.HasPrefix(sig, "-+?"):
			f := makeLine(0, 0)
			out = append(out, triple{f, makeLine('?', 1), true})
			continue
		case strings.HasPrefix(sig, "-?+"):
			f := makeLine('?', 0)
			out = append(out, triple{f, makeLine(0, 1), true})
			continue
		case strings.HasPrefix(sig, "-"):
			pending--
			out = append(out, triple{makeLine('-', 0), nil, true})
			continue
		case strings.HasPrefix(sig, "+--"):
			pending++
			out = append(out, triple{nil, makeLine('+', 1), true})
			continue
		case strings.HasPrefix(sig, "+ "), strings.HasPrefix(sig, "+-"):
			to = makeLine('+', 1)
			toYield, pending = pending+1, 0
		case strings.HasPrefix(sig, "+"):
			pending++
			out = append(out, triple{nil, makeLine('+', 1), true})
			continue
		case strings.HasPrefix(sig, " "):
			numLines[0]++
			f := &tableLine{num: numLines[0], text: lines[0][2:]}
			out = append(out, triple{f, makeLine(0, 1), false})
			continue
		default:
			pop()
			continue
		}

		for ; toYield < 0; toYield++ {
			out = append(out, triple{nil, &tableLine{blank: true, text: "\n"}, true})
		}
		for ; toYield > 0; toYield-- {
			out = append(out, triple{&tableLine{blank: true, text: "\n"}, nil, true})
		}
		if done {
			return out
		}
		out = append(out, triple{from, to, true})
	}
}

// applyMarkers wraps each run of ^, - or + in the guide line around the
// matching characters of the text line
func applyMarkers(line, guide string) string {
	t, g := []rune(line), []rune(guide)

	type run struct {
		key        rune
		begin, end int
	}
	var runs []run
	for i := 0; i < len(g); {
		c := g[i]
		if c != '^' && c != '-' && c != '+' {
			i++
			continue
		}
		j := i
		for j < len(g) && g[j] == c {
			j++
		}
		runs = append(runs, run{c, i, j})
		i = j
	}

	for k := len(runs) - 1; k >= 0; k-- {
		r := runs[k]
		begin, end := clamp(r.begin, len(t)), clamp(r.end, len(t))
		var next []rune
		next = append(next, t[:begin]...)
		next = append(next, 0, r.key)
		next = append(next, t[begin:end]...)
		next = append(next, 1)
		next = append(next, t[end:]...)
		t = next
	}
	return string(t)
}

func clamp(i, n int) int {
	if i > n {
		return n
	}
	return i
}

type tableRow struct {
	from, to  *tableLine
	diff      bool
	separator bool
}

func pairLines(triples []triple) []tableRow {
	type queued struct {
		line *tableLine
		diff bool
	}
	var (
		rows       []tableRow
		fromQ, toQ []queued
		i          int
	)
	for {
		for len(fromQ) == 0 || len(toQ) == 0 {
			if i >= len(triples) {
				return rows
			}
			t := triples[i]
			i++
			if t.from != nil {
				fromQ = append(fromQ, queued{t.from, t.diff})
			}
			if t.to != nil {
				toQ = append(toQ, queued{t.to, t.diff})
			}
		}
		f, t := fromQ[0], toQ[0]
		fromQ, toQ = fromQ[1:], toQ[1:]
		rows = append(rows, tableRow{from: f.line, to: t.line, diff: f.diff || t.diff})
	}
}

// windowRows keeps numLines unchanged rows around each change and marks
// collapsed runs with a separator row
func windowRows(rows []tableRow, numLines int) []tableRow {
	context := numLines + 1
	var out []tableRow
	pos := 0

	for {
		index := 0
		ring := make([]tableRow, context)
		found := false
		for !found {
			if pos >= len(rows) {
				return out
			}
			r := rows[pos]
			pos++
			ring[index%context] = r
			index++
			found = r.diff
		}

		var toWrite int
		if index > context {
			out = append(out, tableRow{separator: true})
			toWrite = context
		} else {
			toWrite = index
			index = 0
		}
		for ; toWrite > 0; toWrite-- {
			out = append(out, ring[index%context])
			index++
		}

		toWrite = context - 1
		for toWrite > 0 {
			if pos >= len(rows) {
				return out
			}
			r := rows[pos]
			pos++
			if r.diff {
				toWrite = context - 1
			} else {
				toWrite--
			}
			out = append(out, r)
		}
	}
}

type rowFlag int

const (
	flagSeparator rowFlag = iota
	flagSame
	flagChanged
)

func collectRows(rows []tableRow) ([]string, []string, []rowFlag) {
	fromList := make([]string, 0, len(rows))
	toList := make([]string, 0, len(rows))
	flags := make([]rowFlag, 0, len(rows))
	for _, r := range rows {
		if r.separator {
			fromList = append(fromList, "")
			toList = append(toList, "")
			flags = append(flags, flagSeparator)
			continue
		}
		fromList = append(fromList, formatCell(fromPrefix, r.from))
		toList = append(toList, formatCell(toPrefix, r.to))
		if r.diff {
			flags = append(flags, flagChanged)
		} else {
			flags = append(flags, flagSame)
		}
	}
	return fromList, toList, flags
}

var cellEscaper = strings.NewReplacer("&", "&amp;", ">", "&gt;", "<", "&lt;", " ", "&nbsp;")

func formatCell(prefix string, l *tableLine) string {
	id, num := "", ""
	if !l.blank {
		num = strconv.Itoa(l.num)
		id = ` id="` + prefix + num + `"`
	}
	t := strings.TrimRightFunc(cellEscaper.Replace(l.text), unicode.IsSpace)
	return `<td class="diff_header"` + id + `>` + num + `</td><td nowrap="nowrap">` + t + `</td>`
}

// convertFlags builds the n/f/t navigation column
func convertFlags(fromList, toList []string, flags []rowFlag, context bool, numLines int) ([]string, []string, []rowFlag, []string, []string) {
	nextID := make([]string, len(flags))
	nextHref := make([]string, len(flags))
	numChg, inChange, last := 0, false, 0

	for i, flag := range flags {
		if flag != flagChanged {
			inChange = false
			continue
		}
		if inChange {
			continue
		}
		inChange = true
		last = i
		at := i - numLines
		if at < 0 {
			at = 0
		}
		nextID[at] = ` id="difflib_chg_` + toPrefix + `_` + strconv.Itoa(numChg) + `"`
		numChg++
		nextHref[last] = `<a href="#difflib_chg_` + toPrefix + `_` + strconv.Itoa(numChg) + `">n</a>`
	}

	if len(flags) == 0 {
		flags = []rowFlag{flagSame}
		nextID = []string{""}
		nextHref = []string{""}
		last = 0
		if context {
			fromList = []string{"<td></td><td>&nbsp;No Differences Found&nbsp;</td>"}
		} else {
			fromList = []string{"<td></td><td>&nbsp;Empty File&nbsp;</td>"}
		}
		toList = fromList
	}

	if flags[0] != flagChanged {
		nextHref[0] = `<a href="#difflib_chg_` + toPrefix + `_0">f</a>`
	}
	nextHref[last] = `<a href="#difflib_chg_` + toPrefix + `_top">t</a>`
	return fromList, toList, flags, nextHref, nextID
}
