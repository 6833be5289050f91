// Package hover decides when a debugger hover is shown or hidden for one
// document and where it is anchored.
//
// A Controller resolves the expression under a selection with package expr,
// hands it to an Evaluator and asks a Layouter to recompute the overlay
// position whenever visibility changes. Requests coming from pointer
// movement can be debounced so that rapid show/hide calls collapse into the
// last one.
package hover

import (
	"context"
	"fmt"

	"go.lsp.dev/uri"
)

// FrameGuard reports the source of the debug session's current frame.
type FrameGuard interface {
	CurrentDebugSource() (uri.URI, bool)
}

// Evaluator evaluates an expression in the current debug frame and reports
// whether it produced something worth displaying.
type Evaluator interface {
	Evaluate(ctx context.Context, expression string) (bool, error)
}

// LineSource returns the text of a 1-indexed line of the hovered document.
type LineSource interface {
	LineText(line int) (string, error)
}

// Layouter is told to recompute the overlay anchor, usually by calling
// Controller.Anchor.
type Layouter interface {
	Relayout(ctx context.Context)
}

// Position is a 1-indexed line and column.
type Position struct {
	Line   int
	Column int
}

// Selection is an editor range with 1-indexed lines and columns.
type Selection struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

func (s Selection) Start() Position {
	return Position{Line: s.StartLine, Column: s.StartColumn}
}

// ShowOptions is a request to show the hover for Selection.
type ShowOptions struct {
	Selection Selection
	// Focus asks the client to move focus into the hover once shown.
	Focus bool
	// Debounce delays the request until the pointer has been quiet for the
	// controller's delay. The zero value runs it immediately.
	Debounce bool
}

type HideOptions struct {
	Debounce bool
}

// Placement is where the overlay goes relative to its anchor.
type Placement int

const (
	PlacementAbove Placement = iota
	PlacementBelow
)

func (p Placement) String() string {
	switch p {
	case PlacementAbove:
		return "above"
	case PlacementBelow:
		return "below"
	default:
		return fmt.Sprintf("Placement(%d)", int(p))
	}
}

// Anchor is where a visible hover attaches, with placements in order of
// preference.
type Anchor struct {
	Position   Position
	Preference []Placement
}

// State is a snapshot of a Controller.
type State struct {
	Visible bool
	// Options is the active request. It is nil when the hover is hidden.
	Options *ShowOptions
	// Expression is the resolved expression, empty until resolution succeeds.
	Expression string
}
