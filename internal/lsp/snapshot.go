package lsp

import (
	"fmt"
	"strings"

	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"

	cmap "github.com/orcaman/concurrent-map/v2"

	"github.com/harry-hov/debughover/internal/hover"
)

// Snapshot holds the latest text of every open document.
type Snapshot struct {
	file cmap.ConcurrentMap[string, *Document]
}

func NewSnapshot() *Snapshot {
	return &Snapshot{
		file: cmap.New[*Document](),
	}
}

func (s *Snapshot) Get(u uri.URI) (*Document, bool) {
	return s.file.Get(string(u))
}

func (s *Snapshot) Set(doc *Document) {
	s.file.Set(string(doc.URI), doc)
}

func (s *Snapshot) Remove(u uri.URI) {
	s.file.Remove(string(u))
}

// Lines returns a hover.LineSource that always reads the latest version of
// the document.
func (s *Snapshot) Lines(u uri.URI) hover.LineSource {
	return snapshotLines{snapshot: s, uri: u}
}

type snapshotLines struct {
	snapshot *Snapshot
	uri      uri.URI
}

func (l snapshotLines) LineText(line int) (string, error) {
	doc, ok := l.snapshot.Get(l.uri)
	if !ok {
		return "", fmt.Errorf("document not open: %s", l.uri)
	}
	return doc.LineText(line)
}

// Document is one version of an open text document.
type Document struct {
	URI     protocol.DocumentURI
	Version int32
	Src     []byte
}

// LineText returns the 1-indexed line without its line terminator.
func (d *Document) LineText(line int) (string, error) {
	lines := strings.SplitAfter(string(d.Src), "\n")
	if line < 1 || line > len(lines) {
		return "", fmt.Errorf("line %d out of range [1, %d]", line, len(lines))
	}
	return strings.TrimRight(lines[line-1], "\r\n"), nil
}
