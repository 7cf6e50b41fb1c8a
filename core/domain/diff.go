// ABOUTME: Diff domain model describes opcodes, hunks and side-by-side rows
// ABOUTME: Opcodes for one comparison are contiguous and cover both sequences

package domain

// OpTag is the kind of a diff opcode
type OpTag string

// Opcode tags
const (
	OpEqual   OpTag = "equal"
	OpReplace OpTag = "replace"
	OpDelete  OpTag = "delete"
	OpInsert  OpTag = "insert"
)

// Opcode describes how A[I1:I2] relates to B[J1:J2]
type Opcode struct {
	Tag OpTag
	I1  int
	I2  int
	J1  int
	J2  int
}

// LineKind is the role of a line inside a hunk
type LineKind string

// Hunk line kinds
const (
	LineContext LineKind = "context"
	LineDelete  LineKind = "delete"
	LineAdd     LineKind = "add"
)

// HunkLine is one rendered line of a unified hunk
type HunkLine struct {
	Kind    LineKind
	Content string
	OldNum  int
	NewNum  int
}

// Prefix returns the unified diff prefix for the line kind
func (l HunkLine) Prefix() string {
	switch l.Kind {
	case LineDelete:
		return "-"
	case LineAdd:
		return "+"
	default:
		return " "
	}
}

// Hunk is a contiguous group of opcodes with surrounding context
type Hunk struct {
	OldStart int
	OldLines int
	NewStart int
	NewLines int
	Header   string
	Opcodes  []Opcode
	Lines    []HunkLine
}

// RowKind classifies a side-by-side row
type RowKind string

// Side-by-side row kinds
const (
	RowEqual   RowKind = "equal"
	RowChanged RowKind = "changed"
)

// Segment is a run of characters inside a side-by-side cell
type Segment struct {
	Tag  OpTag
	Text string
}

// SideBySideRow pairs one line of each side after padding
type SideBySideRow struct {
	Index int
	Kind  RowKind
	Left  []Segment
	Right []Segment
}
