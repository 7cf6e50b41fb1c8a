package formatter

import (
	"strings"
	"unicode"
)

type sqlTokenKind int

const (
	sqlSpace sqlTokenKind = iota
	sqlLineComment
	sqlBlockComment
	sqlQuoted
	sqlWord
	sqlPunct
)

type sqlToken struct {
	kind sqlTokenKind
	text string
}

var sqlKeywords = map[string]bool{
	"ADD": true, "ALL": true, "ALTER": true, "AND": true, "AS": true, "ASC": true,
	"BETWEEN": true, "BY": true, "CASE": true, "CHECK": true, "CONSTRAINT": true,
	"CREATE": true, "CROSS": true, "DEFAULT": true, "DELETE": true, "DESC": true,
	"DISTINCT": true, "DROP": true, "ELSE": true, "END": true, "EXCEPT": true,
	"EXISTS": true, "FOREIGN": true, "FROM": true, "FULL": true, "GROUP": true,
	"HAVING": true, "IF": true, "IN": true, "INDEX": true, "INNER": true,
	"INSERT": true, "INTERSECT": true, "INTO": true, "IS": true, "JOIN": true,
	"KEY": true, "LEFT": true, "LIKE": true, "LIMIT": true, "NATURAL": true,
	"NOT": true, "NULL": true, "OFFSET": true, "ON": true, "OR": true,
	"ORDER": true, "OUTER": true, "PRIMARY": true, "REFERENCES": true,
	"RETURNING": true, "RIGHT": true, "SELECT": true, "SET": true, "TABLE": true,
	"THEN": true, "UNION": true, "UNIQUE": true, "UPDATE": true, "USING": true,
	"VALUES": true, "VIEW": true, "WHEN": true, "WHERE": true, "WITH": true,
}

// clauseKeywords start a new line at statement level
var clauseKeywords = map[string]bool{
	"SELECT": true, "FROM": true, "WHERE": true, "GROUP": true, "ORDER": true,
	"HAVING": true, "LIMIT": true, "OFFSET": true, "UNION": true,
	"INTERSECT": true, "EXCEPT": true, "VALUES": true, "SET": true,
	"RETURNING": true, "INSERT": true, "UPDATE": true, "DELETE": true,
	"JOIN": true, "INNER": true, "LEFT": true, "RIGHT": true, "FULL": true,
	"CROSS": true, "NATURAL": true,
}

var joinModifiers = map[string]bool{
	"INNER": true, "LEFT": true, "RIGHT": true, "FULL": true, "OUTER": true,
	"CROSS": true, "NATURAL": true,
}

const selectListIndent = "       "

func tokenizeSQL(sql string) []sqlToken {
	var tokens []sqlToken
	rs := []rune(sql)
	for i := 0; i < len(rs); {
		start := i
		r := rs[i]
		switch {
		case unicode.IsSpace(r):
			for i < len(rs) && unicode.IsSpace(rs[i]) {
				i++
			}
			tokens = append(tokens, sqlToken{sqlSpace, string(rs[start:i])})
		case r == '-' && i+1 < len(rs) && rs[i+1] == '-':
			for i < len(rs) && rs[i] != '\n' {
				i++
			}
			tokens = append(tokens, sqlToken{sqlLineComment, string(rs[start:i])})
		case r == '/' && i+1 < len(rs) && rs[i+1] == '*':
			i += 2
			for i < len(rs) && !(rs[i] == '*' && i+1 < len(rs) && rs[i+1] == '/') {
				i++
			}
			i = min(i+2, len(rs))
			tokens = append(tokens, sqlToken{sqlBlockComment, string(rs[start:i])})
		case r == '\'' || r == '"' || r == '`':
			i++
			for i < len(rs) {
				if rs[i] == r {
					// doubled quote is an escaped quote
					if i+1 < len(rs) && rs[i+1] == r {
						i += 2
						continue
					}
					i++
					break
				}
				i++
			}
			tokens = append(tokens, sqlToken{sqlQuoted, string(rs[start:i])})
		case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
			for i < len(rs) && (rs[i] == '_' || rs[i] == '$' || unicode.IsLetter(rs[i]) || unicode.IsDigit(rs[i])) {
				i++
			}
			tokens = append(tokens, sqlToken{sqlWord, string(rs[start:i])})
		default:
			i++
			tokens = append(tokens, sqlToken{sqlPunct, string(r)})
		}
	}
	return tokens
}

type sqlWriter struct {
	b            strings.Builder
	indent       string
	pendingSpace bool
	lineStart    bool
}

func (w *sqlWriter) write(s string) {
	switch {
	case w.lineStart:
		w.b.WriteString(w.indent)
	case w.pendingSpace:
		w.b.WriteByte(' ')
	}
	w.b.WriteString(s)
	w.pendingSpace = false
	w.lineStart = false
}

// newline ends the current line; the indent is written with the next token
func (w *sqlWriter) newline(indent string) {
	if !w.lineStart {
		w.b.WriteByte('\n')
	}
	w.indent = indent
	w.pendingSpace = false
	w.lineStart = true
}

func (w *sqlWriter) blankLine() {
	w.newline("")
	w.b.WriteByte('\n')
}

// reindentSQL upper-cases keywords and breaks statement-level clauses onto
// their own lines. Select-list items align under the first item and boolean
// operators in filters are indented by two spaces. Parenthesized text keeps
// its original layout apart from keyword case.
func reindentSQL(sql string) string {
	tokens := tokenizeSQL(sql)
	w := &sqlWriter{lineStart: true}

	depth := 0
	clause := ""
	prevWord := ""
	betweenOpen := false

	for i, tok := range tokens {
		switch tok.kind {
		case sqlSpace:
			w.pendingSpace = true
			continue
		case sqlLineComment:
			w.write(tok.text)
			w.newline("")
			continue
		case sqlBlockComment, sqlQuoted:
			w.write(tok.text)
			prevWord = ""
			continue
		case sqlPunct:
			switch tok.text {
			case "(":
				depth++
			case ")":
				if depth > 0 {
					depth--
				}
			case ",":
				if depth == 0 && clause == "SELECT" {
					w.write(",")
					w.newline(selectListIndent)
					prevWord = ""
					continue
				}
			case ";":
				w.write(";")
				depth, clause, prevWord, betweenOpen = 0, "", "", false
				if hasSignificant(tokens[i+1:]) {
					w.blankLine()
				}
				continue
			}
			w.write(tok.text)
			prevWord = ""
			continue
		}

		word := tok.text
		upper := strings.ToUpper(word)
		if !sqlKeywords[upper] {
			w.write(word)
			prevWord = ""
			continue
		}

		if depth == 0 {
			switch {
			case upper == "JOIN" && joinModifiers[prevWord]:
			case clauseKeywords[upper] && !(joinModifiers[upper] && joinModifiers[prevWord]):
				w.newline("")
				clause = upper
				if joinModifiers[upper] {
					clause = "JOIN"
				}
			case upper == "BETWEEN":
				betweenOpen = true
			case upper == "AND" && betweenOpen:
				betweenOpen = false
			case (upper == "AND" || upper == "OR") && (clause == "WHERE" || clause == "HAVING" || clause == "JOIN"):
				w.newline("  ")
			}
		}

		w.write(upper)
		if upper == "UNION" || upper == "INTERSECT" || upper == "EXCEPT" {
			clause = ""
		}
		prevWord = upper
	}

	return strings.TrimRight(w.b.String(), "\n")
}

func hasSignificant(tokens []sqlToken) bool {
	for _, tok := range tokens {
		if tok.kind != sqlSpace {
			return true
		}
	}
	return false
}
