package linq

import (
	"cmp"
)

// Number is the set of types Sum, Average and Multiply can fold.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// Count consumes the remaining elements and returns their number.
func (s *Sequence[T]) Count() (int, error) {
	var n int
	for s.Next() {
		n++
	}
	return n, s.Err()
}

// ToSlice consumes the remaining elements into a slice.
func (s *Sequence[T]) ToSlice() ([]T, error) {
	var vs []T
	for s.Next() {
		vs = append(vs, s.Value())
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return vs, nil
}

// All reports whether every remaining element satisfies the predicate.
// It stops at the first element that does not.
func (s *Sequence[T]) All(predicate func(T) bool) (bool, error) {
	if predicate == nil {
		return false, ErrInvalidArgument.F("All requires a non-nil predicate")
	}
	for s.Next() {
		if !predicate(s.Value()) {
			return false, s.Err()
		}
	}
	return true, s.Err()
}

// Any reports whether any remaining element satisfies the predicate.
// A nil predicate checks if the sequence has any element at all.
func (s *Sequence[T]) Any(predicate func(T) bool) (bool, error) {
	predicate = predicateOrDefault(predicate)
	for s.Next() {
		if predicate(s.Value()) {
			return true, s.Err()
		}
	}
	return false, s.Err()
}

// Contains reports whether v is among the remaining elements.
func (s *Sequence[T]) Contains(v T, comparer Comparer[T]) (bool, error) {
	comparer = comparerOrDefault(comparer)
	return s.Any(func(o T) bool { return comparer(v, o) })
}

func (s *Sequence[T]) FirstOrDefault(def T) (T, error) {
	return s.FirstOrDefaultWhere(nil, def)
}

// FirstOrDefaultWhere returns the first element that satisfies the predicate, or def if none does.
func (s *Sequence[T]) FirstOrDefaultWhere(predicate func(T) bool, def T) (T, error) {
	predicate = predicateOrDefault(predicate)
	for s.Next() {
		if v := s.Value(); predicate(v) {
			return v, s.Err()
		}
	}
	return def, s.Err()
}

func (s *Sequence[T]) LastOrDefault(def T) (T, error) {
	return s.LastOrDefaultWhere(nil, def)
}

// LastOrDefaultWhere returns the last element that satisfies the predicate, or def if none does.
func (s *Sequence[T]) LastOrDefaultWhere(predicate func(T) bool, def T) (T, error) {
	predicate = predicateOrDefault(predicate)
	var (
		last  T
		found bool
	)
	for s.Next() {
		if v := s.Value(); predicate(v) {
			last, found = v, true
		}
	}
	if err := s.Err(); err != nil {
		return def, err
	}
	if !found {
		return def, nil
	}
	return last, nil
}

func (s *Sequence[T]) SingleOrDefault(def T) (T, error) {
	return s.SingleOrDefaultWhere(nil, def)
}

// SingleOrDefaultWhere returns the only element that satisfies the predicate, or def if none does.
// More than one match is an ErrMultipleMatches error.
func (s *Sequence[T]) SingleOrDefaultWhere(predicate func(T) bool, def T) (T, error) {
	predicate = predicateOrDefault(predicate)
	var (
		single T
		found  bool
	)
	for s.Next() {
		v := s.Value()
		if !predicate(v) {
			continue
		}
		if found {
			return def, ErrMultipleMatches.F("more than one element matched")
		}
		single, found = v, true
	}
	if err := s.Err(); err != nil {
		return def, err
	}
	if !found {
		return def, nil
	}
	return single, nil
}

// ElementAtOrDefault returns the element at the zero based index counted from the current position,
// or def when the sequence is shorter or the index is negative.
func (s *Sequence[T]) ElementAtOrDefault(index int, def T) (T, error) {
	if index < 0 {
		return def, s.Err()
	}
	for i := 0; s.Next(); i++ {
		if i == index {
			return s.Value(), s.Err()
		}
	}
	return def, s.Err()
}

// SequenceEqual reports whether the remaining elements of the receiver and other are pairwise equal
// and both run out at the same time.
func (s *Sequence[T]) SequenceEqual(other Iterator[T], comparer Comparer[T]) (bool, error) {
	if other == nil {
		return false, ErrInvalidArgument.F("SequenceEqual requires a non-nil other iterator")
	}
	comparer = comparerOrDefault(comparer)
	for {
		ok1, ok2 := s.Next(), other.Next()
		if ok1 != ok2 {
			return false, s.errWith(other)
		}
		if !ok1 {
			return true, s.errWith(other)
		}
		if !comparer(s.Value(), other.Value()) {
			return false, s.errWith(other)
		}
	}
}

func (s *Sequence[T]) errWith(other Iterator[T]) error {
	if err := s.Err(); err != nil {
		return err
	}
	return other.Err()
}

// MinFunc returns the smallest remaining element according to sortFunc, or def for an empty sequence.
// A nil sortFunc means NaturalOrder.
func (s *Sequence[T]) MinFunc(sortFunc SortFunc[T], def T) (T, error) {
	sortFunc = sortFuncOrDefault(sortFunc)
	return fold(s, def, func(acc, v T) T {
		if sortFunc(v, acc) < 0 {
			return v
		}
		return acc
	})
}

// MaxFunc returns the largest remaining element according to sortFunc, or def for an empty sequence.
func (s *Sequence[T]) MaxFunc(sortFunc SortFunc[T], def T) (T, error) {
	sortFunc = sortFuncOrDefault(sortFunc)
	return fold(s, def, func(acc, v T) T {
		if 0 < sortFunc(v, acc) {
			return v
		}
		return acc
	})
}

// fold seeds the accumulator with the first element.
// def is returned only when there is no element.
func fold[T any](s *Sequence[T], def T, fn func(acc, v T) T) (T, error) {
	if !s.Next() {
		return def, s.Err()
	}
	acc := s.Value()
	for s.Next() {
		acc = fn(acc, s.Value())
	}
	if err := s.Err(); err != nil {
		return def, err
	}
	return acc, nil
}

// Sum adds up the remaining elements, def is returned for an empty sequence.
func Sum[T Number](s *Sequence[T], def T) (T, error) {
	return fold(s, def, func(acc, v T) T { return acc + v })
}

// Multiply multiplies the remaining elements, def is returned for an empty sequence.
func Multiply[T Number](s *Sequence[T], def T) (T, error) {
	return fold(s, def, func(acc, v T) T { return acc * v })
}

// Product is an alias of Multiply.
func Product[T Number](s *Sequence[T], def T) (T, error) {
	return Multiply(s, def)
}

// Average returns the arithmetic mean of the remaining elements, def is returned for an empty sequence.
func Average[T Number](s *Sequence[T], def float64) (float64, error) {
	var (
		sum float64
		n   int
	)
	for s.Next() {
		sum += float64(s.Value())
		n++
	}
	if err := s.Err(); err != nil {
		return def, err
	}
	if n == 0 {
		return def, nil
	}
	return sum / float64(n), nil
}

func Min[T cmp.Ordered](s *Sequence[T], def T) (T, error) {
	return s.MinFunc(cmp.Compare[T], def)
}

func Max[T cmp.Ordered](s *Sequence[T], def T) (T, error) {
	return s.MaxFunc(cmp.Compare[T], def)
}

// ToDictionary consumes the remaining elements into a Dictionary keyed by keySelector.
// Two elements with the same key is an ErrDuplicateKey error.
func ToDictionary[T, K any](s *Sequence[T], keySelector func(T) K, keyComparer Comparer[K]) (*Dictionary[K, T], error) {
	if keySelector == nil {
		return nil, ErrInvalidArgument.F("ToDictionary requires a non-nil key selector")
	}
	d := NewDictionary[K, T](keyComparer)
	for s.Next() {
		v := s.Value()
		if err := d.Add(keySelector(v), v); err != nil {
			return nil, err
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return d, nil
}
