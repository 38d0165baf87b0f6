package linq

import (
	"cmp"
	"slices"

	"go.llib.dev/frameless/pkg/errorkit"
)

// Distinct yields the first occurrence of every element, in the original order.
// Every new element is compared against the already yielded ones,
// so the worst case cost is quadratic to the number of distinct elements.
// A nil comparer means Equal.
func (s *Sequence[T]) Distinct(comparer Comparer[T]) *Sequence[T] {
	comparer = comparerOrDefault(comparer)
	return derive(s, func(up Iterator[T]) Iterator[T] {
		return &distinctIter[T]{Iterator: up, Comparer: comparer}
	})
}

type distinctIter[T any] struct {
	Iterator[T]
	Comparer Comparer[T]

	seen  []T
	value T
}

func (i *distinctIter[T]) Next() bool {
	for i.Iterator.Next() {
		v := i.Iterator.Value()
		if containsFunc(i.seen, v, i.Comparer) {
			continue
		}
		i.seen = append(i.seen, v)
		i.value = v
		return true
	}
	return false
}

func (i *distinctIter[T]) Value() T { return i.value }

func (i *distinctIter[T]) Reset() error {
	var zero T
	i.seen = nil
	i.value = zero
	return i.Iterator.Reset()
}

// OrderBy sorts the elements by the key the keySelector returns.
// The sort is stable, elements with equal keys keep their upstream order.
// A nil sortFunc means NaturalOrder.
func OrderBy[T, K any](s *Sequence[T], keySelector func(T) K, sortFunc SortFunc[K]) *Sequence[T] {
	if keySelector == nil {
		return missing[T]("OrderBy", "key selector")
	}
	return orderBy(s, func(v T, _ int) K { return keySelector(v) }, sortFuncOrDefault(sortFunc))
}

// OrderByDescending is OrderBy with the reverse order.
func OrderByDescending[T, K any](s *Sequence[T], keySelector func(T) K, sortFunc SortFunc[K]) *Sequence[T] {
	if keySelector == nil {
		return missing[T]("OrderByDescending", "key selector")
	}
	return orderBy(s, func(v T, _ int) K { return keySelector(v) }, descending(sortFuncOrDefault(sortFunc)))
}

// Order sorts the elements themselves.
func (s *Sequence[T]) Order(sortFunc SortFunc[T]) *Sequence[T] {
	return OrderBy(s, identity[T], sortFunc)
}

// OrderDescending sorts the elements themselves in reverse order.
func (s *Sequence[T]) OrderDescending(sortFunc SortFunc[T]) *Sequence[T] {
	return OrderByDescending(s, identity[T], sortFunc)
}

// Reverse yields the elements backwards.
// It orders by a synthetic position key, so the element values play no role.
func (s *Sequence[T]) Reverse() *Sequence[T] {
	return orderBy(s, func(_ T, index int) int { return index }, descending(cmp.Compare[int]))
}

func identity[T any](v T) T { return v }

func orderBy[T, K any](s *Sequence[T], key func(T, int) K, sortFunc SortFunc[K]) *Sequence[T] {
	return derive(s, func(up Iterator[T]) Iterator[T] {
		return &orderIter[T, K]{Iterator: up, Key: key, SortFunc: sortFunc}
	})
}

type orderIter[T, K any] struct {
	Iterator Iterator[T]
	Key      func(T, int) K
	SortFunc SortFunc[K]

	loaded bool
	items  []T
	index  int
	value  T
	err    error
}

type keyed[K, T any] struct {
	key   K
	value T
}

func (i *orderIter[T, K]) load() {
	i.loaded = true
	var pairs []keyed[K, T]
	for n := 0; i.Iterator.Next(); n++ {
		v := i.Iterator.Value()
		pairs = append(pairs, keyed[K, T]{key: i.Key(v, n), value: v})
	}
	if err := i.Iterator.Err(); err != nil {
		i.err = err
		return
	}
	slices.SortStableFunc(pairs, func(a, b keyed[K, T]) int {
		return i.SortFunc(a.key, b.key)
	})
	i.items = make([]T, 0, len(pairs))
	for _, p := range pairs {
		i.items = append(i.items, p.value)
	}
}

func (i *orderIter[T, K]) Next() bool {
	if !i.loaded {
		i.load()
	}
	if i.err != nil || len(i.items) <= i.index {
		return false
	}
	i.value = i.items[i.index]
	i.index++
	return true
}

func (i *orderIter[T, K]) Value() T     { return i.value }
func (i *orderIter[T, K]) Close() error { return i.Iterator.Close() }

func (i *orderIter[T, K]) Err() error {
	if i.err != nil {
		return i.err
	}
	return i.Iterator.Err()
}

func (i *orderIter[T, K]) Reset() error {
	var zero T
	i.loaded = false
	i.items = nil
	i.index = 0
	i.value = zero
	i.err = nil
	return i.Iterator.Reset()
}

// GroupBy collects the elements under the key the keySelector returns.
// Groups are yielded in the order their key was first seen,
// and the members of a group keep their upstream order.
// A nil keyComparer means Equal.
func GroupBy[T, K any](s *Sequence[T], keySelector func(T) K, keyComparer Comparer[K]) *Sequence[Grouping[K, T]] {
	if keySelector == nil {
		return missing[Grouping[K, T]]("GroupBy", "key selector")
	}
	return derive(s, func(up Iterator[T]) Iterator[Grouping[K, T]] {
		return &groupByIter[T, K]{Iterator: up, KeySelector: keySelector, KeyComparer: keyComparer}
	})
}

type groupByIter[T, K any] struct {
	Iterator    Iterator[T]
	KeySelector func(T) K
	KeyComparer Comparer[K]

	loaded bool
	groups []Grouping[K, T]
	index  int
	value  Grouping[K, T]
	err    error
}

func (i *groupByIter[T, K]) load() {
	i.loaded = true
	members := NewDictionary[K, []T](i.KeyComparer)
	for i.Iterator.Next() {
		v := i.Iterator.Value()
		k := i.KeySelector(v)
		vs, _ := members.Lookup(k)
		members.Set(k, append(vs, v))
	}
	if err := i.Iterator.Err(); err != nil {
		i.err = err
		return
	}
	i.groups = make([]Grouping[K, T], 0, members.Len())
	for k, vs := range members.All() {
		i.groups = append(i.groups, Grouping[K, T]{key: k, items: vs})
	}
}

func (i *groupByIter[T, K]) Next() bool {
	if !i.loaded {
		i.load()
	}
	if i.err != nil || len(i.groups) <= i.index {
		return false
	}
	i.value = i.groups[i.index]
	i.index++
	return true
}

func (i *groupByIter[T, K]) Value() Grouping[K, T] { return i.value }
func (i *groupByIter[T, K]) Close() error          { return i.Iterator.Close() }

func (i *groupByIter[T, K]) Err() error {
	if i.err != nil {
		return i.err
	}
	return i.Iterator.Err()
}

func (i *groupByIter[T, K]) Reset() error {
	i.loaded = false
	i.groups = nil
	i.index = 0
	i.value = Grouping[K, T]{}
	i.err = nil
	return i.Iterator.Reset()
}

// Except yields the elements of the receiver that are not present in second.
// The distinct elements of second are collected on the first pull.
// A nil comparer means Equal.
func (s *Sequence[T]) Except(second Iterator[T], comparer Comparer[T]) *Sequence[T] {
	if second == nil {
		return missing[T]("Except", "second iterator")
	}
	comparer = comparerOrDefault(comparer)
	return derive(s, func(up Iterator[T]) Iterator[T] {
		return &setIter[T]{
			Iterator: up,
			Second:   second,
			Comparer: comparer,
			Match: func(pool *[]T, v T) bool {
				return !containsFunc(*pool, v, comparer)
			},
		}
	})
}

// Intersect yields the elements of the receiver that are present in second.
// The distinct elements of second form a pool, and every match takes its element out of the pool,
// so an element of second can match at most once.
// A nil comparer means Equal.
func (s *Sequence[T]) Intersect(second Iterator[T], comparer Comparer[T]) *Sequence[T] {
	if second == nil {
		return missing[T]("Intersect", "second iterator")
	}
	comparer = comparerOrDefault(comparer)
	return derive(s, func(up Iterator[T]) Iterator[T] {
		return &setIter[T]{
			Iterator: up,
			Second:   second,
			Comparer: comparer,
			Match: func(pool *[]T, v T) bool {
				index := indexFunc(*pool, v, comparer)
				if index < 0 {
					return false
				}
				*pool = slices.Delete(*pool, index, index+1)
				return true
			},
		}
	})
}

// Union yields the distinct elements of the receiver followed by the distinct new elements of second.
func (s *Sequence[T]) Union(second Iterator[T], comparer Comparer[T]) *Sequence[T] {
	return s.Concat(second).Distinct(comparer)
}

type setIter[T any] struct {
	Iterator Iterator[T]
	Second   Iterator[T]
	Comparer Comparer[T]
	Match    func(pool *[]T, v T) bool

	loaded bool
	pool   []T
	value  T
	err    error
}

func (i *setIter[T]) load() {
	i.loaded = true
	for i.Second.Next() {
		v := i.Second.Value()
		if !containsFunc(i.pool, v, i.Comparer) {
			i.pool = append(i.pool, v)
		}
	}
	i.err = i.Second.Err()
}

func (i *setIter[T]) Next() bool {
	if !i.loaded {
		i.load()
	}
	if i.err != nil {
		return false
	}
	for i.Iterator.Next() {
		v := i.Iterator.Value()
		if i.Match(&i.pool, v) {
			i.value = v
			return true
		}
	}
	return false
}

func (i *setIter[T]) Value() T { return i.value }

func (i *setIter[T]) Err() error {
	if i.err != nil {
		return i.err
	}
	return i.Iterator.Err()
}

func (i *setIter[T]) Close() error {
	return errorkit.Merge(i.Iterator.Close(), i.Second.Close())
}

func (i *setIter[T]) Reset() error {
	var zero T
	i.loaded = false
	i.pool = nil
	i.value = zero
	i.err = nil
	return errorkit.Merge(i.Iterator.Reset(), i.Second.Reset())
}
