package linq

import (
	"reflect"

	"go.llib.dev/frameless/pkg/errorkit"
)

// Where yields the elements that satisfy the predicate.
func (s *Sequence[T]) Where(predicate func(T) bool) *Sequence[T] {
	if predicate == nil {
		return missing[T]("Where", "predicate")
	}
	return derive(s, func(up Iterator[T]) Iterator[T] {
		return &whereIter[T]{Iterator: up, Predicate: predicate}
	})
}

type whereIter[T any] struct {
	Iterator[T]
	Predicate func(T) bool

	value T
}

func (i *whereIter[T]) Next() bool {
	for i.Iterator.Next() {
		v := i.Iterator.Value()
		if i.Predicate(v) {
			i.value = v
			return true
		}
	}
	return false
}

func (i *whereIter[T]) Value() T { return i.value }

func (i *whereIter[T]) Reset() error {
	var zero T
	i.value = zero
	return i.Iterator.Reset()
}

// Select projects every element into a new form.
func Select[T, R any](s *Sequence[T], selector func(T) R) *Sequence[R] {
	if selector == nil {
		return missing[R]("Select", "selector")
	}
	return derive(s, func(up Iterator[T]) Iterator[R] {
		return &selectIter[T, R]{Iterator: up, Selector: selector}
	})
}

type selectIter[T, R any] struct {
	Iterator Iterator[T]
	Selector func(T) R

	value R
}

func (i *selectIter[T, R]) Next() bool {
	if !i.Iterator.Next() {
		return false
	}
	i.value = i.Selector(i.Iterator.Value())
	return true
}

func (i *selectIter[T, R]) Value() R     { return i.value }
func (i *selectIter[T, R]) Err() error   { return i.Iterator.Err() }
func (i *selectIter[T, R]) Close() error { return i.Iterator.Close() }

func (i *selectIter[T, R]) Reset() error {
	var zero R
	i.value = zero
	return i.Iterator.Reset()
}

// SelectMany projects every element into an Iterator and flattens the results,
// walking the inner elements of an outer element before moving to the next outer element.
// Every inner Iterator is closed once it is exhausted.
func SelectMany[T, R any](s *Sequence[T], selector func(T) Iterator[R]) *Sequence[R] {
	if selector == nil {
		return missing[R]("SelectMany", "selector")
	}
	return derive(s, func(up Iterator[T]) Iterator[R] {
		return &selectManyIter[T, R]{Iterator: up, Selector: selector}
	})
}

type selectManyIter[T, R any] struct {
	Iterator Iterator[T]
	Selector func(T) Iterator[R]

	inner Iterator[R]
	value R
	err   error
}

func (i *selectManyIter[T, R]) Next() bool {
	if i.err != nil {
		return false
	}
	for {
		if i.inner != nil {
			if i.inner.Next() {
				i.value = i.inner.Value()
				return true
			}
			if err := errorkit.Merge(i.inner.Err(), i.inner.Close()); err != nil {
				i.err = err
				i.inner = nil
				return false
			}
			i.inner = nil
		}
		if !i.Iterator.Next() {
			return false
		}
		i.inner = i.Selector(i.Iterator.Value())
	}
}

func (i *selectManyIter[T, R]) Value() R { return i.value }

func (i *selectManyIter[T, R]) Err() error {
	if i.err != nil {
		return i.err
	}
	return i.Iterator.Err()
}

func (i *selectManyIter[T, R]) Close() error {
	var innerErr error
	if i.inner != nil {
		innerErr = i.inner.Close()
		i.inner = nil
	}
	return errorkit.Merge(innerErr, i.Iterator.Close())
}

func (i *selectManyIter[T, R]) Reset() error {
	var zero R
	i.value = zero
	i.err = nil
	var innerErr error
	if i.inner != nil {
		innerErr = i.inner.Close()
		i.inner = nil
	}
	return errorkit.Merge(innerErr, i.Iterator.Reset())
}

// TakeWhile yields elements as long as the predicate holds, and stops at the first element that fails it.
// The failing element is pulled from the upstream to be tested, so on a shared cursor it is consumed.
func (s *Sequence[T]) TakeWhile(predicate func(T) bool) *Sequence[T] {
	if predicate == nil {
		return missing[T]("TakeWhile", "predicate")
	}
	return s.TakeWhileIndex(func(v T, _ int) bool { return predicate(v) })
}

// TakeWhileIndex is TakeWhile with the zero based position of the element passed to the predicate.
func (s *Sequence[T]) TakeWhileIndex(predicate func(v T, index int) bool) *Sequence[T] {
	if predicate == nil {
		return missing[T]("TakeWhileIndex", "predicate")
	}
	return derive(s, func(up Iterator[T]) Iterator[T] {
		return &takeWhileIter[T]{Iterator: up, Predicate: predicate}
	})
}

// Take yields the first n elements.
// The upstream is not advanced past the n-th element,
// so a shared cursor continues right after the taken elements.
func (s *Sequence[T]) Take(n int) *Sequence[T] {
	if n < 0 {
		return failed[T](ErrInvalidArgument.F("Take count must not be negative: %d", n))
	}
	return derive(s, func(up Iterator[T]) Iterator[T] {
		return &takeIter[T]{Iterator: up, N: n}
	})
}

type takeIter[T any] struct {
	Iterator[T]
	N int

	index int
	done  bool
}

func (i *takeIter[T]) Next() bool {
	if i.done || i.N <= i.index {
		i.done = true
		return false
	}
	if !i.Iterator.Next() {
		i.done = true
		return false
	}
	i.index++
	return true
}

func (i *takeIter[T]) Reset() error {
	i.index = 0
	i.done = false
	return i.Iterator.Reset()
}

type takeWhileIter[T any] struct {
	Iterator[T]
	Predicate func(T, int) bool

	index int
	done  bool
	value T
}

func (i *takeWhileIter[T]) Next() bool {
	if i.done {
		return false
	}
	if !i.Iterator.Next() {
		i.done = true
		return false
	}
	v := i.Iterator.Value()
	if !i.Predicate(v, i.index) {
		i.done = true
		return false
	}
	i.index++
	i.value = v
	return true
}

func (i *takeWhileIter[T]) Value() T { return i.value }

func (i *takeWhileIter[T]) Reset() error {
	var zero T
	i.index = 0
	i.done = false
	i.value = zero
	return i.Iterator.Reset()
}

// SkipWhile bypasses elements as long as the predicate holds, then yields the rest.
func (s *Sequence[T]) SkipWhile(predicate func(T) bool) *Sequence[T] {
	if predicate == nil {
		return missing[T]("SkipWhile", "predicate")
	}
	return s.SkipWhileIndex(func(v T, _ int) bool { return predicate(v) })
}

// SkipWhileIndex is SkipWhile with the zero based position of the element passed to the predicate.
func (s *Sequence[T]) SkipWhileIndex(predicate func(v T, index int) bool) *Sequence[T] {
	if predicate == nil {
		return missing[T]("SkipWhileIndex", "predicate")
	}
	return derive(s, func(up Iterator[T]) Iterator[T] {
		return &skipWhileIter[T]{Iterator: up, Predicate: predicate}
	})
}

// Skip bypasses the first n elements.
func (s *Sequence[T]) Skip(n int) *Sequence[T] {
	if n < 0 {
		return failed[T](ErrInvalidArgument.F("Skip count must not be negative: %d", n))
	}
	return s.SkipWhileIndex(func(_ T, index int) bool { return index < n })
}

type skipWhileIter[T any] struct {
	Iterator[T]
	Predicate func(T, int) bool

	index   int
	yielded bool
	value   T
}

func (i *skipWhileIter[T]) Next() bool {
	for i.Iterator.Next() {
		v := i.Iterator.Value()
		if !i.yielded && i.Predicate(v, i.index) {
			i.index++
			continue
		}
		i.yielded = true
		i.value = v
		return true
	}
	return false
}

func (i *skipWhileIter[T]) Value() T { return i.value }

func (i *skipWhileIter[T]) Reset() error {
	var zero T
	i.index = 0
	i.yielded = false
	i.value = zero
	return i.Iterator.Reset()
}

// Concat yields every element of the receiver, then every element of other.
func (s *Sequence[T]) Concat(other Iterator[T]) *Sequence[T] {
	if other == nil {
		return missing[T]("Concat", "second iterator")
	}
	return derive(s, func(up Iterator[T]) Iterator[T] {
		return &concatIter[T]{First: up, Second: other}
	})
}

type concatIter[T any] struct {
	First  Iterator[T]
	Second Iterator[T]

	onSecond bool
}

func (i *concatIter[T]) Next() bool {
	if !i.onSecond {
		if i.First.Next() {
			return true
		}
		if i.First.Err() != nil {
			return false
		}
		i.onSecond = true
	}
	return i.Second.Next()
}

func (i *concatIter[T]) Value() T {
	if i.onSecond {
		return i.Second.Value()
	}
	return i.First.Value()
}

func (i *concatIter[T]) Err() error {
	if err := i.First.Err(); err != nil {
		return err
	}
	return i.Second.Err()
}

func (i *concatIter[T]) Close() error {
	return errorkit.Merge(i.First.Close(), i.Second.Close())
}

func (i *concatIter[T]) Reset() error {
	i.onSecond = false
	return errorkit.Merge(i.First.Reset(), i.Second.Reset())
}

// Zip merges two sequences element by element with the selector.
// It stops as soon as either of them runs out of elements.
func Zip[T, U, R any](s *Sequence[T], other Iterator[U], selector func(T, U) R) *Sequence[R] {
	if other == nil {
		return missing[R]("Zip", "second iterator")
	}
	if selector == nil {
		return missing[R]("Zip", "selector")
	}
	return derive(s, func(up Iterator[T]) Iterator[R] {
		return &zipIter[T, U, R]{First: up, Second: other, Selector: selector}
	})
}

type zipIter[T, U, R any] struct {
	First    Iterator[T]
	Second   Iterator[U]
	Selector func(T, U) R

	value R
}

func (i *zipIter[T, U, R]) Next() bool {
	if !i.First.Next() || !i.Second.Next() {
		return false
	}
	i.value = i.Selector(i.First.Value(), i.Second.Value())
	return true
}

func (i *zipIter[T, U, R]) Value() R { return i.value }

func (i *zipIter[T, U, R]) Err() error {
	return errorkit.Merge(i.First.Err(), i.Second.Err())
}

func (i *zipIter[T, U, R]) Close() error {
	return errorkit.Merge(i.First.Close(), i.Second.Close())
}

func (i *zipIter[T, U, R]) Reset() error {
	var zero R
	i.value = zero
	return errorkit.Merge(i.First.Reset(), i.Second.Reset())
}

// DefaultIfEmpty yields the upstream elements,
// or the given defaults when the upstream has none.
// Without defaults, a single zero value is used.
func (s *Sequence[T]) DefaultIfEmpty(defaults ...T) *Sequence[T] {
	if len(defaults) == 0 {
		defaults = make([]T, 1)
	}
	return derive(s, func(up Iterator[T]) Iterator[T] {
		return &defaultIfEmptyIter[T]{Iterator: up, Defaults: defaults}
	})
}

type defaultIfEmptyIter[T any] struct {
	Iterator[T]
	Defaults []T

	yielded  bool
	fallback bool
	index    int
	value    T
}

func (i *defaultIfEmptyIter[T]) Next() bool {
	if !i.fallback {
		if i.Iterator.Next() {
			i.yielded = true
			i.value = i.Iterator.Value()
			return true
		}
		if i.yielded || i.Iterator.Err() != nil {
			return false
		}
		i.fallback = true
	}
	if len(i.Defaults) <= i.index {
		return false
	}
	i.value = i.Defaults[i.index]
	i.index++
	return true
}

func (i *defaultIfEmptyIter[T]) Value() T { return i.value }

func (i *defaultIfEmptyIter[T]) Reset() error {
	var zero T
	i.yielded = false
	i.fallback = false
	i.index = 0
	i.value = zero
	return i.Iterator.Reset()
}

// Cast converts every element to R with a type assertion.
// An element that doesn't hold an R stops the iteration with ErrInvalidCast.
func Cast[R, T any](s *Sequence[T]) *Sequence[R] {
	return derive(s, func(up Iterator[T]) Iterator[R] {
		return &castIter[T, R]{Iterator: up}
	})
}

type castIter[T, R any] struct {
	Iterator Iterator[T]

	value R
	err   error
}

func (i *castIter[T, R]) Next() bool {
	if i.err != nil {
		return false
	}
	if !i.Iterator.Next() {
		return false
	}
	v := i.Iterator.Value()
	r, ok := any(v).(R)
	if !ok {
		i.err = ErrInvalidCast.F("%T is not a %s", v, reflect.TypeFor[R]().String())
		return false
	}
	i.value = r
	return true
}

func (i *castIter[T, R]) Value() R     { return i.value }
func (i *castIter[T, R]) Close() error { return i.Iterator.Close() }

func (i *castIter[T, R]) Err() error {
	if i.err != nil {
		return i.err
	}
	return i.Iterator.Err()
}

func (i *castIter[T, R]) Reset() error {
	var zero R
	i.value = zero
	i.err = nil
	return i.Iterator.Reset()
}

// OfType yields the elements that hold an R, converted to R.
func OfType[R, T any](s *Sequence[T]) *Sequence[R] {
	isR := func(v T) bool {
		_, ok := any(v).(R)
		return ok
	}
	return Select(s.Where(isR), func(v T) R {
		return any(v).(R)
	})
}
