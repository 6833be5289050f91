package lsp

import (
	"go.lsp.dev/protocol"

	"github.com/harry-hov/debughover/internal/hover"
)

// selectionFromRange converts an LSP range in doc into a hover.Selection.
func selectionFromRange(doc *Document, r protocol.Range) hover.Selection {
	startText, _ := doc.LineText(int(r.Start.Line) + 1)
	endText, _ := doc.LineText(int(r.End.Line) + 1)
	return hover.Selection{
		StartLine:   int(r.Start.Line) + 1,
		StartColumn: runeColumn(startText, r.Start.Character),
		EndLine:     int(r.End.Line) + 1,
		EndColumn:   runeColumn(endText, r.End.Character),
	}
}

func positionFromHover(doc *Document, p hover.Position) protocol.Position {
	text, _ := doc.LineText(p.Line)
	line := 0
	if p.Line > 0 {
		line = p.Line - 1
	}
	return protocol.Position{
		Line:      uint32(line),
		Character: utf16Character(text, p.Column),
	}
}
