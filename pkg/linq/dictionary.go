package linq

import (
	"iter"
	"slices"
)

// KeyValue is a single entry of a Dictionary or of a key-value store.
type KeyValue[K, V any] struct {
	Key   K
	Value V
}

// Dictionary is a map that keeps insertion order and compares keys with a Comparer.
// Because keys are looked up with a linear scan, any type can be a key,
// including slices and maps, at the price of O(n) access.
//
// The zero value is ready to use with Equal as the key comparer.
type Dictionary[K, V any] struct {
	Comparer Comparer[K]

	entries []KeyValue[K, V]
}

func NewDictionary[K, V any](keyComparer Comparer[K]) *Dictionary[K, V] {
	return &Dictionary[K, V]{Comparer: keyComparer}
}

func (d *Dictionary[K, V]) index(key K) int {
	comparer := comparerOrDefault(d.Comparer)
	for i, e := range d.entries {
		if comparer(key, e.Key) {
			return i
		}
	}
	return -1
}

// Add inserts a new entry.
// It fails with ErrDuplicateKey when the key is already present.
func (d *Dictionary[K, V]) Add(key K, value V) error {
	if 0 <= d.index(key) {
		return ErrDuplicateKey.F("key: %v", key)
	}
	d.entries = append(d.entries, KeyValue[K, V]{Key: key, Value: value})
	return nil
}

// Set inserts or overwrites an entry.
// An overwritten entry keeps its original position.
func (d *Dictionary[K, V]) Set(key K, value V) {
	if i := d.index(key); 0 <= i {
		d.entries[i].Value = value
		return
	}
	d.entries = append(d.entries, KeyValue[K, V]{Key: key, Value: value})
}

// Lookup returns the value of the key and whether the key is present.
func (d *Dictionary[K, V]) Lookup(key K) (V, bool) {
	if i := d.index(key); 0 <= i {
		return d.entries[i].Value, true
	}
	var zero V
	return zero, false
}

// Get returns the value of the key, or the zero value when it is absent.
func (d *Dictionary[K, V]) Get(key K) V {
	v, _ := d.Lookup(key)
	return v
}

func (d *Dictionary[K, V]) Has(key K) bool {
	return 0 <= d.index(key)
}

// Delete removes the key and reports whether it was present.
func (d *Dictionary[K, V]) Delete(key K) bool {
	i := d.index(key)
	if i < 0 {
		return false
	}
	d.entries = slices.Delete(d.entries, i, i+1)
	return true
}

func (d *Dictionary[K, V]) Len() int {
	return len(d.entries)
}

func (d *Dictionary[K, V]) Keys() []K {
	keys := make([]K, 0, len(d.entries))
	for _, e := range d.entries {
		keys = append(keys, e.Key)
	}
	return keys
}

func (d *Dictionary[K, V]) Values() []V {
	vs := make([]V, 0, len(d.entries))
	for _, e := range d.entries {
		vs = append(vs, e.Value)
	}
	return vs
}

// All iterates the entries in insertion order.
func (d *Dictionary[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, e := range d.entries {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

// Sequence returns the entries as a Sequence.
// It works on a snapshot, later changes to the Dictionary do not affect it.
func (d *Dictionary[K, V]) Sequence() *Sequence[KeyValue[K, V]] {
	return From(slices.Clone(d.entries))
}
