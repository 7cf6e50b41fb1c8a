// ABOUTME: Diff engine computes line and character opcodes over go-difflib's SequenceMatcher
// ABOUTME: The matcher picks the leftmost longest block, so output is reproducible

package diff

import (
	"slices"

	"textforge-api/core/domain"
	"textforge-api/pkg/utils/text"

	"github.com/pmezard/go-difflib/difflib"
)

// Highlight colors emitted in rendered markup
const (
	ColorAdded   = "#e6ffed"
	ColorRemoved = "#ffeef0"
	ColorHeader  = "#f0f0f0"
	ColorChange  = "#ffff77"
	ColorNeutral = "#ffffff"
)

var opTags = map[byte]domain.OpTag{
	'e': domain.OpEqual,
	'r': domain.OpReplace,
	'd': domain.OpDelete,
	'i': domain.OpInsert,
}

// Opcodes returns the edit script turning a into b. The opcodes are
// contiguous and cover both sequences.
func Opcodes(a, b []string) []domain.Opcode {
	return convert(matchCodes(a, b))
}

// matchCodes short-circuits identical sequences, which autojunk would
// otherwise report as replaced when one element dominates them
func matchCodes(a, b []string) []difflib.OpCode {
	if slices.Equal(a, b) {
		if len(a) == 0 {
			return nil
		}
		return []difflib.OpCode{{Tag: 'e', I1: 0, I2: len(a), J1: 0, J2: len(b)}}
	}
	return difflib.NewMatcher(a, b).GetOpCodes()
}

// LineOpcodes splits both texts into lines and diffs them
func LineOpcodes(original, modified string) []domain.Opcode {
	return Opcodes(text.SplitLines(original), text.SplitLines(modified))
}

// CharOpcodes diffs two strings character by character. Indices are rune
// offsets.
func CharOpcodes(a, b string) []domain.Opcode {
	return Opcodes(chars(a), chars(b))
}

func convert(codes []difflib.OpCode) []domain.Opcode {
	out := make([]domain.Opcode, 0, len(codes))
	for _, c := range codes {
		out = append(out, domain.Opcode{Tag: opTags[c.Tag], I1: c.I1, I2: c.I2, J1: c.J1, J2: c.J2})
	}
	return out
}

// chars splits s into one string per rune
func chars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
