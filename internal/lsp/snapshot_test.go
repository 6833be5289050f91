package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
)

func TestDocumentLineText(t *testing.T) {
	doc := &Document{Src: []byte("first\r\nsecond\n\nlast")}

	tests := []struct {
		line int
		want string
	}{
		{1, "first"},
		{2, "second"},
		{3, ""},
		{4, "last"},
	}
	for _, tt := range tests {
		got, err := doc.LineText(tt.line)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := doc.LineText(0)
	assert.Error(t, err)
	_, err = doc.LineText(5)
	assert.Error(t, err)
}

func TestSnapshotLinesFollowLatestVersion(t *testing.T) {
	u := uri.File("/tmp/main.c")
	s := NewSnapshot()
	lines := s.Lines(u)

	_, err := lines.LineText(1)
	assert.Error(t, err)

	s.Set(&Document{URI: u, Version: 1, Src: []byte("a.b")})
	got, err := lines.LineText(1)
	require.NoError(t, err)
	assert.Equal(t, "a.b", got)

	s.Set(&Document{URI: u, Version: 2, Src: []byte("c->d")})
	got, err = lines.LineText(1)
	require.NoError(t, err)
	assert.Equal(t, "c->d", got)

	s.Remove(u)
	_, err = lines.LineText(1)
	assert.Error(t, err)
}

func TestSelectionFromRange(t *testing.T) {
	doc := &Document{Src: []byte("😀.x\n  y")}
	sel := selectionFromRange(doc, protocol.Range{
		Start: protocol.Position{Line: 0, Character: 3},
		End:   protocol.Position{Line: 0, Character: 4},
	})
	assert.Equal(t, 1, sel.StartLine)
	assert.Equal(t, 3, sel.StartColumn)
	assert.Equal(t, 1, sel.EndLine)
	assert.Equal(t, 4, sel.EndColumn)

	pos := positionFromHover(doc, sel.Start())
	assert.Equal(t, protocol.Position{Line: 0, Character: 3}, pos)
}
