package expr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		start, end int
		want       string
		wantRange  Range
	}{
		{"arrow chain truncated after baz", "foo.bar->baz.qux", 9, 12, "foo.bar->baz", Range{1, 12}},
		{"operators bound identifier", "x = a + b;", 5, 6, "a", Range{5, 5}},
		{"dotted inside b", "a.b.c.d", 3, 4, "a.b", Range{1, 3}},
		{"dotted inside d", "a.b.c.d", 7, 8, "a.b.c.d", Range{1, 7}},
		{"arrow member", "  myVar->prop = 1", 10, 14, "myVar->prop", Range{3, 13}},
		{"scope operator", "MyClass::StaticProp", 10, 20, "MyClass::StaticProp", Range{1, 19}},
		{"dereference", "*ptr", 2, 5, "*ptr", Range{1, 4}},
		{"call argument", "foo(bar.baz)", 5, 8, "bar", Range{5, 7}},
		{"optional chaining", "if (myVar?.prop) {", 12, 16, "myVar?.prop", Range{5, 15}},
		{"punctuation only keeps candidate", "x = ... ;", 5, 6, "...", Range{5, 7}},
		{"minus splits", "a-b", 3, 4, "b", Range{3, 3}},
		{"arrow head only", "a->b", 1, 2, "a", Range{1, 1}},
		{"multibyte runes", "π.x = 1", 3, 4, "π.x", Range{1, 3}},
		{"empty line", "", 1, 1, "", Range{}},
		{"whitespace", "a    b", 3, 4, "", Range{}},
		{"past end of line", "x = a + b;", 100, 120, "", Range{}},
		{"spans two tokens", "a + b", 1, 6, "", Range{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, r := Expression(tt.line, tt.start, tt.end)
			assert.Equal(t, tt.wantRange, r)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractSingleWordTokens(t *testing.T) {
	line := "alpha beta_1 gamma2"
	for _, tok := range Tokens(line) {
		for s := tok.Start; s <= tok.End; s++ {
			for e := s; e <= tok.End+1; e++ {
				require.Equal(t, tok, Extract(line, s, e), "loose [%d,%d]", s, e)
			}
		}
	}
}

func TestExtractNeverSplitsArrow(t *testing.T) {
	lines := []string{
		"a->b->c",
		"node->next->value + 1",
		"p->q.r->s",
		"x-->y",
	}
	for _, line := range lines {
		n := len([]rune(line))
		for s := 0; s <= n+1; s++ {
			for e := s; e <= n+1; e++ {
				got := Extract(line, s, e).Text(line)
				assert.False(t, strings.HasSuffix(got, "-"), "%q [%d,%d] = %q", line, s, e, got)
			}
		}
	}
}

func TestExtractWhitespaceIsSentinel(t *testing.T) {
	line := "\tfoo   \t bar  "
	for _, r := range []Range{{1, 1}, {6, 7}, {7, 9}, {13, 14}} {
		assert.True(t, Extract(line, r.Start, r.End).IsZero(), "loose %v", r)
	}
}

func TestExtractIsTotal(t *testing.T) {
	lines := []string{"", " ", "->", "-", "()", "a", "a.b", "日本.語"}
	bounds := []int{-5, -1, 0, 1, 2, 3, 4, 50}
	for _, line := range lines {
		for _, s := range bounds {
			for _, e := range bounds {
				require.NotPanics(t, func() {
					r := Extract(line, s, e)
					_ = r.Text(line)
				})
			}
		}
	}
}

func TestTokens(t *testing.T) {
	got := Tokens("a.b (c->d) e")
	require.Equal(t, []Range{{1, 3}, {6, 9}, {12, 12}}, got)

	assert.Empty(t, Tokens(""))
	assert.Empty(t, Tokens(" \t()[]{}"))
	assert.Equal(t, []Range{{2, 3}}, Tokens("-->"))

	// byte order mark separates tokens, next line does not
	assert.Equal(t, []Range{{1, 1}, {3, 3}}, Tokens("a\ufeffb"))
	assert.Equal(t, []Range{{1, 3}}, Tokens("a\u0085b"))
}

func TestTokenRunes(t *testing.T) {
	for _, r := range "abcXYZ019_.?:*&$@'\"π" {
		assert.True(t, isTokenRune(r), "%q", r)
	}
	for _, r := range "()[]{}<> \t+-/%~#^;=|,`!" {
		assert.False(t, isTokenRune(r), "%q", r)
	}
}

func TestRangeText(t *testing.T) {
	assert.Equal(t, "", Range{}.Text("abc"))
	assert.Equal(t, "", Range{2, 9}.Text("abc"))
	assert.Equal(t, "bc", Range{2, 3}.Text("abc"))
}
