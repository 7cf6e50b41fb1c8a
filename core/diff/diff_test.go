package diff

import (
	"strings"
	"testing"

	"textforge-api/core/domain"
	"textforge-api/pkg/utils/text"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineOpcodes_IdenticalInputIsAllEqual(t *testing.T) {
	inputs := []string{"a", "a\nb\nc", "x\n\ny\n", strings.Repeat("same\n", 300)}
	for _, in := range inputs {
		for _, op := range LineOpcodes(in, in) {
			assert.Equal(t, domain.OpEqual, op.Tag)
		}
		assert.Empty(t, Unified(in, in, DefaultUnifiedOptions()).Hunks)
	}
}

func TestLineOpcodes_SingleReplace(t *testing.T) {
	ops := LineOpcodes("line1\nline2", "line1\nlineX")
	expected := []domain.Opcode{
		{Tag: domain.OpEqual, I1: 0, I2: 1, J1: 0, J2: 1},
		{Tag: domain.OpReplace, I1: 1, I2: 2, J1: 1, J2: 2},
	}
	if diff := cmp.Diff(expected, ops); diff != "" {
		t.Errorf("opcodes mismatch (-want +got):\n%s", diff)
	}
}

func TestOpcodes_LeftmostBlockWins(t *testing.T) {
	ops := Opcodes([]string{"a", "b", "a"}, []string{"a"})
	expected := []domain.Opcode{
		{Tag: domain.OpEqual, I1: 0, I2: 1, J1: 0, J2: 1},
		{Tag: domain.OpDelete, I1: 1, I2: 3, J1: 1, J2: 1},
	}
	assert.Equal(t, expected, ops)
}

func TestOpcodes_CoverBothSequences(t *testing.T) {
	a := strings.Split("the quick brown fox jumps over the lazy dog", " ")
	b := strings.Split("a quick red fox leaps over the dog today", " ")

	ops := Opcodes(a, b)
	require.NotEmpty(t, ops)
	i, j := 0, 0
	for _, op := range ops {
		assert.Equal(t, i, op.I1)
		assert.Equal(t, j, op.J1)
		i, j = op.I2, op.J2
	}
	assert.Equal(t, len(a), i)
	assert.Equal(t, len(b), j)
}

func TestUnified_Text(t *testing.T) {
	res := Unified("line1\nline2", "line1\nlineX", DefaultUnifiedOptions())
	assert.Equal(t, "--- Original\n+++ Modified\n@@ -1,2 +1,2 @@\n line1\n-line2\n+lineX", res.Text)
	require.Len(t, res.Hunks, 1)

	h := res.Hunks[0]
	assert.Equal(t, 1, h.OldStart)
	assert.Equal(t, 2, h.OldLines)
	assert.Equal(t, []domain.HunkLine{
		{Kind: domain.LineContext, Content: "line1", OldNum: 1, NewNum: 1},
		{Kind: domain.LineDelete, Content: "line2", OldNum: 2},
		{Kind: domain.LineAdd, Content: "lineX", NewNum: 2},
	}, h.Lines)
}

func TestUnified_Ranges(t *testing.T) {
	var lines []string
	for i := 0; i < 10; i++ {
		lines = append(lines, string(rune('a'+i)))
	}
	original := strings.Join(lines, "\n")
	lines[4] = "E"
	modified := strings.Join(lines, "\n")

	res := Unified(original, modified, UnifiedOptions{Context: 1})
	require.Len(t, res.Hunks, 1)
	assert.Equal(t, "@@ -4,3 +4,3 @@", res.Hunks[0].Header)

	res = Unified("", "a\nb", DefaultUnifiedOptions())
	require.Len(t, res.Hunks, 1)
	assert.Equal(t, "@@ -0,0 +1,2 @@", res.Hunks[0].Header)

	res = Unified("a\nb\nc", "a\nc", UnifiedOptions{Context: 0})
	assert.Equal(t, "@@ -2 +1,0 @@", res.Hunks[0].Header)
}

func TestUnified_Labels(t *testing.T) {
	res := Unified("a", "b", UnifiedOptions{FromLabel: "before.json", ToLabel: "after.json", Context: 3})
	assert.True(t, strings.HasPrefix(res.Text, "--- before.json\n+++ after.json\n"), res.Text)
}

func TestUnified_Reconstructs(t *testing.T) {
	pairs := [][2]string{
		{"a\nb\nc", "a\nc\nd"},
		{"one\ntwo\nthree\nfour\nfive", "zero\none\nthree\nfour\nsix\nseven"},
		{"x", "y"},
		{"", "only\nadded"},
		{"only\nremoved", ""},
		{strings.Repeat("row\n", 20) + "tail", "head\n" + strings.Repeat("row\n", 20)},
	}

	for _, p := range pairs {
		res := Unified(p[0], p[1], UnifiedOptions{Context: -1})
		var from, to []string
		for _, h := range res.Hunks {
			for _, l := range h.Lines {
				switch l.Kind {
				case domain.LineContext:
					from = append(from, l.Content)
					to = append(to, l.Content)
				case domain.LineDelete:
					from = append(from, l.Content)
				case domain.LineAdd:
					to = append(to, l.Content)
				}
			}
		}
		assert.Equal(t, text.SplitLines(p[0]), from)
		assert.Equal(t, text.SplitLines(p[1]), to)
	}
}

func TestUnifiedHTML(t *testing.T) {
	res := UnifiedHTML("line1\nline2", "line1\nlineX", DefaultUnifiedOptions())
	expected := "--- Original\n+++ Modified\n@@ -1,2 +1,2 @@\n line1\n" +
		`<span style="background-color:#ffeef0">-line2</span>` + "\n" +
		`<span style="background-color:#e6ffed">+lineX</span>`
	assert.Equal(t, expected, res.Text)

	res = UnifiedHTML("<a>", "<b>", DefaultUnifiedOptions())
	assert.Contains(t, res.Text, "-&lt;a&gt;")
	assert.NotContains(t, res.Text, "<a>")

	res = UnifiedHTML("-- comment", "--- header-like", DefaultUnifiedOptions())
	assert.Contains(t, res.Text, `<span style="background-color:#ffeef0">--- comment</span>`)
}

func TestSideBySide(t *testing.T) {
	res := SideBySide("line1\nline2", "line1\nlineX")
	require.Len(t, res.Rows, 2)

	assert.Equal(t, domain.RowEqual, res.Rows[0].Kind)
	assert.Equal(t, domain.RowChanged, res.Rows[1].Kind)
	assert.Equal(t, []domain.Segment{{Tag: domain.OpEqual, Text: "line"}, {Tag: domain.OpReplace, Text: "2"}}, res.Rows[1].Left)
	assert.Equal(t, []domain.Segment{{Tag: domain.OpEqual, Text: "line"}, {Tag: domain.OpReplace, Text: "X"}}, res.Rows[1].Right)

	assert.Contains(t, res.HTML, "<th")
	assert.Contains(t, res.HTML, ">Original</th>")
	assert.Contains(t, res.HTML, `line<span style="background-color:#ffeef0">2</span>`)
	assert.Contains(t, res.HTML, `line<span style="background-color:#e6ffed">X</span>`)
	assert.Contains(t, res.HTML, "background-color:#f0f0f0")
	assert.Contains(t, res.HTML, `<tr style="background-color:#ffffff;"><td style="`+cellStyle+`">line1</td>`)
	assert.Equal(t, 1, strings.Count(res.HTML, "background-color:#ffffff"))
}

func TestSideBySide_PadsShorterSide(t *testing.T) {
	res := SideBySide("a\nb\nc", "a")
	require.Len(t, res.Rows, 3)
	assert.Equal(t, []domain.Segment{{Tag: domain.OpDelete, Text: "b"}}, res.Rows[1].Left)
	assert.Empty(t, res.Rows[1].Right)

	res = SideBySide("a & b", "a < b")
	assert.Contains(t, res.HTML, "&amp;")
	assert.Contains(t, res.HTML, "&lt;")
}

func TestNdiff(t *testing.T) {
	got := ndiff([]string{"line1", "line2"}, []string{"line1", "lineX"})
	expected := []string{"  line1", "- line2", "?     ^\n", "+ lineX", "?     ^\n"}
	assert.Equal(t, expected, got)

	got = ndiff([]string{"abc"}, []string{"xyz"})
	assert.Equal(t, []string{"- abc", "+ xyz"}, got)
}

func TestTable_IntralineChange(t *testing.T) {
	out := Table("line1\nline2", "line1\nlineX", TableOptions{NumLines: DefaultNumLines})

	assert.True(t, strings.HasPrefix(out, "\n    <table class=\"diff\" id=\"difflib_chg_to0__top\""), out)
	assert.Contains(t, out, `<tr><td class="diff_next" id="difflib_chg_to0__0"><a href="#difflib_chg_to0__0">f</a></td>`+
		`<td class="diff_header" id="from0_1">1</td><td nowrap="nowrap">line1</td>`+
		`<td class="diff_next"><a href="#difflib_chg_to0__0">f</a></td>`+
		`<td class="diff_header" id="to0_1">1</td><td nowrap="nowrap">line1</td></tr>`)
	assert.Contains(t, out, `<td class="diff_header" id="from0_2">2</td><td nowrap="nowrap">line<span class="diff_chg">2</span></td>`)
	assert.Contains(t, out, `<td class="diff_header" id="to0_2">2</td><td nowrap="nowrap">line<span class="diff_chg">X</span></td>`)
	assert.Contains(t, out, `<a href="#difflib_chg_to0__top">t</a>`)
	assert.Equal(t, 6, strings.Count(out, "<colgroup></colgroup>"))
}

func TestTable_AddedAndRemovedLines(t *testing.T) {
	out := Table("keep\nold", "keep\nnew\nextra", TableOptions{NumLines: DefaultNumLines})
	assert.Contains(t, out, `<span class="diff_sub">old</span>`)
	assert.Contains(t, out, `<span class="diff_add">new</span>`)
	assert.Contains(t, out, `<span class="diff_add">extra</span>`)
	assert.Contains(t, out, `<td class="diff_header"></td><td nowrap="nowrap"></td>`)
}

func TestTable_Placeholders(t *testing.T) {
	out := Table("same\nlines", "same\nlines", TableOptions{Context: true, NumLines: 2})
	assert.Contains(t, out, "&nbsp;No Differences Found&nbsp;")

	out = Table("", "", TableOptions{})
	assert.Contains(t, out, "&nbsp;Empty File&nbsp;")
}

func TestTable_ContextWindow(t *testing.T) {
	var lines []string
	for i := 0; i < 20; i++ {
		lines = append(lines, "l"+string(rune('a'+i)))
	}
	original := strings.Join(lines, "\n")
	lines[10] = "changed"
	modified := strings.Join(lines, "\n")

	out := Table(original, modified, TableOptions{Context: true, NumLines: 2})
	assert.Equal(t, 5, strings.Count(out, "<tr>"))
	assert.Contains(t, out, `id="from0_9"`)
	assert.Contains(t, out, `id="from0_13"`)
	assert.NotContains(t, out, `id="from0_8"`)
	assert.NotContains(t, out, `id="from0_14"`)
}

func TestTable_TabsAndHeader(t *testing.T) {
	out := Table("a\tb", "a\tc", TableOptions{FromDesc: "Original", ToDesc: "Modified", NumLines: DefaultNumLines})
	assert.Contains(t, out, `<th colspan="2" class="diff_header">Original</th>`)
	assert.Contains(t, out, "a&nbsp;&nbsp;&nbsp;&nbsp;&nbsp;&nbsp;&nbsp;")
	assert.NotContains(t, out, "\t")
}

func TestTable_IsDeterministic(t *testing.T) {
	a, b := "x\ny\nz", "x\nY\nz\nw"
	assert.Equal(t, Table(a, b, TableOptions{}), Table(a, b, TableOptions{}))
}
