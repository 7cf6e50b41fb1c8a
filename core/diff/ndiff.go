package diff

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Line pairing for the canonical table. Each output line carries a two
// character prefix: "  " unchanged, "- " removed, "+ " added, and "? " a
// guide line marking intraline changes with ^, - and +.

const (
	fancyCutoff    = 0.75
	fancyBestRatio = 0.74
)

func isCharJunk(s string) bool {
	return s == " " || s == "\t"
}

// ndiff compares two line sequences and returns the prefixed lines
func ndiff(a, b []string) []string {
	var out []string
	for _, op := range matchCodes(a, b) {
		switch op.Tag {
		case 'r':
			out = fancyReplace(out, a, op.I1, op.I2, b, op.J1, op.J2)
		case 'd':
			out = dump(out, "-", a, op.I1, op.I2)
		case 'i':
			out = dump(out, "+", b, op.J1, op.J2)
		case 'e':
			out = dump(out, " ", a, op.I1, op.I2)
		}
	}
	return out
}

func dump(out []string, tag string, x []string, lo, hi int) []string {
	for i := lo; i < hi; i++ {
		out = append(out, tag+" "+x[i])
	}
	return out
}

func plainReplace(out []string, a []string, alo, ahi int, b []string, blo, bhi int) []string {
	if bhi-blo < ahi-alo {
		out = dump(out, "+", b, blo, bhi)
		return dump(out, "-", a, alo, ahi)
	}
	out = dump(out, "-", a, alo, ahi)
	return dump(out, "+", b, blo, bhi)
}

// fancyReplace pairs the most similar lines of a replaced block and emits
// guide lines for them, recursing on the regions either side of the pair
func fancyReplace(out []string, a []string, alo, ahi int, b []string, blo, bhi int) []string {
	bestRatio := fancyBestRatio
	bestI, bestJ := -1, -1
	eqI, eqJ := -1, -1

	cruncher := difflib.NewMatcherWithJunk(nil, nil, true, isCharJunk)
	for j := blo; j < bhi; j++ {
		bj := b[j]
		cruncher.SetSeq2(chars(bj))
		for i := alo; i < ahi; i++ {
			ai := a[i]
			if ai == bj {
				if eqI < 0 {
					eqI, eqJ = i, j
				}
				continue
			}
			cruncher.SetSeq1(chars(ai))
			if cruncher.RealQuickRatio() > bestRatio &&
				cruncher.QuickRatio() > bestRatio &&
				cruncher.Ratio() > bestRatio {
				bestRatio, bestI, bestJ = cruncher.Ratio(), i, j
			}
		}
	}

	identical := false
	if bestRatio < fancyCutoff {
		if eqI < 0 {
			return plainReplace(out, a, alo, ahi, b, blo, bhi)
		}
		bestI, bestJ, identical = eqI, eqJ, true
	}

	out = fancyHelper(out, a, alo, bestI, b, blo, bestJ)

	aelt, belt := a[bestI], b[bestJ]
	if identical {
		out = append(out, "  "+aelt)
	} else {
		var atags, btags strings.Builder
		cruncher.SetSeqs(chars(aelt), chars(belt))
		for _, op := range cruncher.GetOpCodes() {
			la, lb := op.I2-op.I1, op.J2-op.J1
			switch op.Tag {
			case 'r':
				atags.WriteString(strings.Repeat("^", la))
				btags.WriteString(strings.Repeat("^", lb))
			case 'd':
				atags.WriteString(strings.Repeat("-", la))
			case 'i':
				btags.WriteString(strings.Repeat("+", lb))
			case 'e':
				atags.WriteString(strings.Repeat(" ", la))
				btags.WriteString(strings.Repeat(" ", lb))
			}
		}
		out = qformat(out, aelt, belt, atags.String(), btags.String())
	}

	return fancyHelper(out, a, bestI+1, ahi, b, bestJ+1, bhi)
}

func fancyHelper(out []string, a []string, alo, ahi int, b []string, blo, bhi int) []string {
	switch {
	case alo < ahi && blo < bhi:
		return fancyReplace(out, a, alo, ahi, b, blo, bhi)
	case alo < ahi:
		return dump(out, "-", a, alo, ahi)
	case blo < bhi:
		return dump(out, "+", b, blo, bhi)
	}
	return out
}

func qformat(out []string, aline, bline, atags, btags string) []string {
	atags = strings.TrimRight(atags, " ")
	btags = strings.TrimRight(btags, " ")

	out = append(out, "- "+aline)
	if atags != "" {
		out = append(out, "? "+atags+"\n")
	}
	out = append(out, "+ "+bline)
	if btags != "" {
		out = append(out, "? "+btags+"\n")
	}
	return out
}
