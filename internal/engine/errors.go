package engine

import (
	"errors"

	"github.com/dshills/mathstorm/internal/engine/history"
)

// Errors returned by engine operations.
var (
	// ErrUnknownSymbol indicates a palette ID that is not registered.
	ErrUnknownSymbol = errors.New("unknown symbol")

	// ErrEmptyText indicates InsertText was called with an empty string.
	ErrEmptyText = errors.New("empty text")

	// ErrInvalidComponent indicates a component description that cannot be built.
	ErrInvalidComponent = errors.New("invalid component")

	// ErrEmptyExpression indicates a commit of an expression with no components.
	ErrEmptyExpression = errors.New("expression is empty")

	// ErrHistoryEmpty indicates there are no committed expressions.
	ErrHistoryEmpty = history.ErrHistoryEmpty
)
