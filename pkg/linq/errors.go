package linq

import "go.llib.dev/frameless/pkg/errorkit"

const (
	// ErrInvalidArgument is returned when an operator receives a nil callback where one is required,
	// or a negative count for Take/Skip.
	ErrInvalidArgument errorkit.Error = "ErrInvalidArgument"
	// ErrInvalidState is returned when the cursor is accessed outside of its valid window,
	// or when a single-use source is asked to restart after it was already consumed.
	ErrInvalidState errorkit.Error = "ErrInvalidState"
	// ErrMultipleMatches is returned by SingleOrDefault when more than one element satisfies the predicate.
	ErrMultipleMatches errorkit.Error = "ErrMultipleMatches"
	// ErrDuplicateKey is returned on strict insertion of a key that is already present.
	ErrDuplicateKey errorkit.Error = "ErrDuplicateKey"
	// ErrInvalidCast is returned by Cast when an element doesn't hold the requested type.
	ErrInvalidCast errorkit.Error = "ErrInvalidCast"
)
