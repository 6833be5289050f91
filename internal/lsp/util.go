package lsp

import (
	"unicode/utf8"

	"go.lsp.dev/protocol"

	"github.com/harry-hov/debughover/internal/expr"
)

// LSP characters are UTF-16 code units; columns used by expr and hover are
// 1-based runes.

func utf16Len(r rune) uint32 {
	if r >= 0x10000 && r <= utf8.MaxRune {
		return 2
	}
	return 1
}

// runeColumn converts a 0-based UTF-16 offset into a 1-based rune column.
// Offsets past the end of line keep counting one column per unit.
func runeColumn(line string, character uint32) int {
	col := 1
	var units uint32
	for _, r := range line {
		if units >= character {
			return col
		}
		units += utf16Len(r)
		col++
	}
	if character > units {
		col += int(character - units)
	}
	return col
}

// utf16Character is the inverse of runeColumn.
func utf16Character(line string, column int) uint32 {
	col := 1
	var units uint32
	for _, r := range line {
		if col >= column {
			return units
		}
		units += utf16Len(r)
		col++
	}
	if column > col {
		units += uint32(column - col)
	}
	return units
}

// exprToRange converts an expression range on the 0-based line into an LSP
// range.
func exprToRange(line uint32, text string, r expr.Range) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{
			Line:      line,
			Character: utf16Character(text, r.Start),
		},
		End: protocol.Position{
			Line:      line,
			Character: utf16Character(text, r.End+1),
		},
	}
}
