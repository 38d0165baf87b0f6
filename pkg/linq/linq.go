// Package linq provides a deferred, cursor based query toolkit with LINQ style operators.
//
// # Summary
//
// A Sequence wraps an Iterator and exposes chainable operators on it.
// Building a chain does no work, every operator only wraps the upstream cursor,
// and values are pulled through the chain when the final Sequence is iterated.
//
// Streaming operators (Where, Select, Take, Concat, Zip ...) forward elements one by one.
// Buffering operators (Distinct, OrderBy, GroupBy, Except, Intersect ...) need knowledge
// about the whole upstream, so they materialise it on the first pull.
// The buffer belongs to a single pass, Reset drops it and the next pull rebuilds it.
//
// Operators whose result type differs from the input type are package level functions (Select, GroupBy, Zip),
// the rest are methods, so a query reads left to right:
//
//	evens, err := linq.From(numbers).
//		Where(func(n int) bool { return n%2 == 0 }).
//		Take(3).
//		ToSlice()
//
// A Sequence is a single cursor. Operators derived from it pull from that very cursor,
// so two queries that need independent positions should be built over two Sequence values.
//
// # Resources
//
// https://en.wikipedia.org/wiki/Iterator_pattern
// https://learn.microsoft.com/en-us/dotnet/csharp/linq/
package linq

import (
	"io"
	"iter"
)

// Iterator is the cursor contract every data source and operator implements.
// Interface design is based on the frameless iterator, extended with the ability to restart.
type Iterator[T any] interface {
	// Next advances the cursor and reports whether it is positioned on an element.
	// Once Next returned false, it must keep returning false until Reset is called.
	Next() bool
	// Value returns the element under the cursor.
	// The action should be repeatable without side effects.
	Value() T
	// Err return the error cause.
	Err() error
	// Closer is required to make it able to release resources that are used behind the scene.
	// For sources where nothing needs to be released, it should simply return nil.
	io.Closer
	// Reset moves the cursor back before the first element.
	// Calling Reset multiple times in a row is equivalent to calling it once.
	// Reset is valid after exhaustion and after Close as well.
	Reset() error
}

// Sequence is the fluent query type.
// It implements Iterator, thus any Sequence can be the upstream of another operator.
type Sequence[T any] struct {
	iter  Iterator[T]
	err   error
	state cursorState
}

var _ Iterator[any] = (*Sequence[any])(nil)

type cursorState int

const (
	cursorInitial cursorState = iota
	cursorOnElement
	cursorExhausted
)

func (cs cursorState) String() string {
	switch cs {
	case cursorInitial:
		return "not yet advanced"
	case cursorOnElement:
		return "positioned"
	case cursorExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

func newSequence[T any](i Iterator[T]) *Sequence[T] {
	return &Sequence[T]{iter: i}
}

// failed returns a Sequence that carries a construction error.
// Its Err reports the error right away, before any iteration.
func failed[T any](err error) *Sequence[T] {
	return &Sequence[T]{iter: emptyIter[T]{}, err: err, state: cursorExhausted}
}

func derive[T, R any](up *Sequence[T], mk func(up Iterator[T]) Iterator[R]) *Sequence[R] {
	if up == nil {
		return failed[R](ErrInvalidArgument.F("nil upstream sequence"))
	}
	if up.err != nil {
		return failed[R](up.err)
	}
	return newSequence(mk(up))
}

func missing[T any](operator, name string) *Sequence[T] {
	return failed[T](ErrInvalidArgument.F("%s requires a non-nil %s", operator, name))
}

func (s *Sequence[T]) Next() bool {
	if s.err != nil || s.state == cursorExhausted {
		return false
	}
	if s.iter.Next() {
		s.state = cursorOnElement
		return true
	}
	s.state = cursorExhausted
	return false
}

// HasCurrent reports whether the cursor is positioned on an element.
func (s *Sequence[T]) HasCurrent() bool {
	return s.state == cursorOnElement
}

func (s *Sequence[T]) Value() T {
	if s.state != cursorOnElement {
		var zero T
		return zero
	}
	return s.iter.Value()
}

// Current is the checked version of Value.
// It fails with ErrInvalidState before the first Next and after the cursor is exhausted.
func (s *Sequence[T]) Current() (T, error) {
	if s.state != cursorOnElement {
		var zero T
		return zero, ErrInvalidState.F("cursor is %s", s.state)
	}
	return s.iter.Value(), nil
}

func (s *Sequence[T]) Err() error {
	if s.err != nil {
		return s.err
	}
	return s.iter.Err()
}

func (s *Sequence[T]) Close() error {
	if s.err != nil {
		return nil
	}
	s.state = cursorExhausted
	return s.iter.Close()
}

func (s *Sequence[T]) Reset() error {
	if s.err != nil {
		return s.err
	}
	if err := s.iter.Reset(); err != nil {
		return err
	}
	s.state = cursorInitial
	return nil
}

// Values returns the remaining elements as an iter.Seq.
// Iteration problems are reported by Err after the range loop.
//
//	for v := range seq.Values() {
//		// ...
//	}
//	if err := seq.Err(); err != nil {
//		return err
//	}
func (s *Sequence[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for s.Next() {
			if !yield(s.Value()) {
				return
			}
		}
	}
}
