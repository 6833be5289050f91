// Package expr resolves the debuggable expression under a loose cursor or
// mouse selection within a single line of source text.
//
// The resolver is lexical. It knows nothing about any particular language
// and only splits lines on a fixed set of breaking characters, which works
// passably for C-like, dotted and arrow/scope-operator syntaxes:
//
//	myVar.prop, a.b.c.d, myVar?.prop, myVar->prop, MyClass::StaticProp, *myVar
package expr

import (
	"strings"
	"unicode"
)

// Range is the exact span of an expression in a line. Columns are 1-indexed
// rune offsets and both ends are inclusive. The zero Range is the sentinel
// for "no expression".
type Range struct {
	Start int
	End   int
}

func (r Range) IsZero() bool {
	return r.Start == 0 && r.End == 0
}

// Text returns the part of line covered by r, or "" for the sentinel or a
// range that does not fit the line.
func (r Range) Text(line string) string {
	runes := []rune(line)
	if r.IsZero() || r.Start < 1 || r.End > len(runes) || r.End < r.Start {
		return ""
	}
	return string(runes[r.Start-1 : r.End])
}

// breaking holds the characters, besides whitespace, that end a token.
const breaking = "()[]{}<>+-/%~#^;=|,`!"

// isTokenRune reports whether r may be part of an expression token on its
// own. The arrow "->" is a token even though '-' and '>' are not.
func isTokenRune(r rune) bool {
	return !isSpace(r) && !strings.ContainsRune(breaking, r)
}

// isSpace is the \s class of ECMAScript regexps used by editor clients:
// U+FEFF counts as whitespace, U+0085 does not.
func isSpace(r rune) bool {
	switch r {
	case '\ufeff':
		return true
	case '\u0085':
		return false
	}
	return unicode.IsSpace(r)
}

func isWordRune(r rune) bool {
	return r == '_' ||
		('a' <= r && r <= 'z') ||
		('A' <= r && r <= 'Z') ||
		('0' <= r && r <= '9')
}

// tokenWidth returns how many runes starting at i continue a token, 0 if the
// rune at i breaks it.
func tokenWidth(runes []rune, i int) int {
	if i >= len(runes) {
		return 0
	}
	if isTokenRune(runes[i]) {
		return 1
	}
	if runes[i] == '-' && i+1 < len(runes) && runes[i+1] == '>' {
		return 2
	}
	return 0
}

func tokens(runes []rune) []Range {
	var spans []Range
	for i := 0; i < len(runes); {
		n := tokenWidth(runes, i)
		if n == 0 {
			i++
			continue
		}
		start := i
		for n > 0 {
			i += n
			n = tokenWidth(runes, i)
		}
		spans = append(spans, Range{Start: start + 1, End: i})
	}
	return spans
}

// Tokens returns every maximal run of token characters in line, left to
// right. Adjacent runs are never merged.
func Tokens(line string) []Range {
	return tokens([]rune(line))
}

// Extract returns the exact range of the expression selected by the loose
// columns [looseStart, looseEnd] in line.
//
// The first token that fully contains the loose range is taken and then cut
// after the first word run that reaches looseEnd, so hovering b in a.b.c.d
// resolves to a.b. A token without word runs reaching that far is kept whole.
func Extract(line string, looseStart, looseEnd int) Range {
	runes := []rune(line)
	for _, tok := range tokens(runes) {
		// tok.End+1 is the exclusive end column of the token.
		if tok.Start <= looseStart && tok.End+1 >= looseEnd {
			return truncate(runes[tok.Start-1:tok.End], tok, looseEnd)
		}
	}
	return Range{}
}

func truncate(candidate []rune, tok Range, looseEnd int) Range {
	for i := 0; i < len(candidate); {
		if !isWordRune(candidate[i]) {
			i++
			continue
		}
		j := i
		for j < len(candidate) && isWordRune(candidate[j]) {
			j++
		}
		if i+1+tok.Start+(j-i) >= looseEnd {
			return Range{Start: tok.Start, End: tok.Start + j - 1}
		}
		i = j
	}
	return tok
}

// Expression is Extract followed by Text.
func Expression(line string, looseStart, looseEnd int) (string, Range) {
	r := Extract(line, looseStart, looseEnd)
	return r.Text(line), r
}
