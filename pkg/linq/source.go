package linq

import (
	"iter"

	"go.llib.dev/frameless/pkg/iterkit"
)

// From creates a Sequence over the elements of a slice.
// The slice is referenced, not copied, and never modified.
func From[T any](vs []T) *Sequence[T] {
	return newSequence[T](&sliceIter[T]{Slice: vs})
}

// Of creates a Sequence from the given values.
func Of[T any](vs ...T) *Sequence[T] {
	return From(vs)
}

// Empty is a Sequence without elements.
func Empty[T any]() *Sequence[T] {
	return newSequence[T](emptyIter[T]{})
}

// Range yields count consecutive integers starting from start.
func Range(start, count int) *Sequence[int] {
	if count < 0 {
		return failed[int](ErrInvalidArgument.F("Range count must not be negative: %d", count))
	}
	return newSequence[int](&rangeIter{Start: start, Count: count})
}

// Repeat yields v count times.
func Repeat[T any](v T, count int) *Sequence[T] {
	return Select(Range(0, count), func(int) T { return v })
}

// FromSeq adapts a generator function.
// Restarting the Sequence starts the generator again from the beginning.
// A Sequence that is abandoned before exhaustion should be closed to release the generator.
func FromSeq[T any](seq iter.Seq[T]) *Sequence[T] {
	if seq == nil {
		return missing[T]("FromSeq", "iter.Seq")
	}
	return newSequence[T](&seqIter[T]{Seq: seq})
}

// FromIterator adapts an external Iterator implementation.
func FromIterator[T any](i Iterator[T]) *Sequence[T] {
	if i == nil {
		return missing[T]("FromIterator", "Iterator")
	}
	if s, ok := i.(*Sequence[T]); ok {
		return s
	}
	return newSequence(i)
}

// FromPullIter adapts a single-use pull iterator, such as the ones made by the frameless iterkit package.
// It can be restarted only as long as no element has been pulled from it yet,
// afterwards Reset fails with ErrInvalidState.
func FromPullIter[T any](i iterkit.PullIter[T]) *Sequence[T] {
	if i == nil {
		return missing[T]("FromPullIter", "iterkit.PullIter")
	}
	return newSequence[T](&pullIter[T]{PullIter: i})
}

type sliceIter[T any] struct {
	Slice []T

	closed bool
	index  int
	value  T
}

func (i *sliceIter[T]) Close() error {
	i.closed = true
	return nil
}

func (i *sliceIter[T]) Err() error {
	return nil
}

func (i *sliceIter[T]) Next() bool {
	if i.closed {
		return false
	}
	if len(i.Slice) <= i.index {
		return false
	}
	i.value = i.Slice[i.index]
	i.index++
	return true
}

func (i *sliceIter[T]) Value() T {
	return i.value
}

func (i *sliceIter[T]) Reset() error {
	var zero T
	i.closed = false
	i.index = 0
	i.value = zero
	return nil
}

// emptyIter can help achieve Null Object Pattern when no value is logically expected.
type emptyIter[T any] struct{}

func (emptyIter[T]) Close() error { return nil }
func (emptyIter[T]) Next() bool   { return false }
func (emptyIter[T]) Err() error   { return nil }
func (emptyIter[T]) Reset() error { return nil }
func (emptyIter[T]) Value() T {
	var v T
	return v
}

type rangeIter struct {
	Start int
	Count int

	index int
	value int
}

func (i *rangeIter) Next() bool {
	if i.Count <= i.index {
		return false
	}
	i.value = i.Start + i.index
	i.index++
	return true
}

func (i *rangeIter) Close() error {
	i.index = i.Count
	return nil
}

func (i *rangeIter) Reset() error {
	i.index = 0
	i.value = 0
	return nil
}

func (i *rangeIter) Value() int { return i.value }
func (i *rangeIter) Err() error { return nil }

type seqIter[T any] struct {
	Seq iter.Seq[T]

	next   func() (T, bool)
	stop   func()
	closed bool
	value  T
}

func (i *seqIter[T]) Next() bool {
	if i.closed {
		return false
	}
	if i.next == nil {
		i.next, i.stop = iter.Pull(i.Seq)
	}
	v, ok := i.next()
	if !ok {
		return false
	}
	i.value = v
	return true
}

func (i *seqIter[T]) Value() T { return i.value }
func (i *seqIter[T]) Err() error { return nil }

func (i *seqIter[T]) Close() error {
	i.release()
	i.closed = true
	return nil
}

func (i *seqIter[T]) Reset() error {
	i.release()
	i.closed = false
	return nil
}

func (i *seqIter[T]) release() {
	if i.stop != nil {
		i.stop()
	}
	var zero T
	i.next, i.stop = nil, nil
	i.value = zero
}

type pullIter[T any] struct {
	iterkit.PullIter[T]
	consumed bool
}

func (i *pullIter[T]) Next() bool {
	i.consumed = true
	return i.PullIter.Next()
}

func (i *pullIter[T]) Reset() error {
	if !i.consumed {
		return nil
	}
	return ErrInvalidState.F("single-use iterator can not be restarted once it was consumed")
}
