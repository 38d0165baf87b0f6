// Package linqcontract holds the behavioural contract of a restartable linq.Iterator.
// Data source implementations can run it from their own tests.
package linqcontract

import (
	"testing"

	"go.llib.dev/frameless/port/contract"
	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"

	"go.llib.dev/linqkit/pkg/linq"
)

// Subject is an Iterator along with the values it must yield, in order.
// Values should contain at least one element.
type Subject[T any] struct {
	Iterator linq.Iterator[T]
	Values   []T
}

func Iterator[T any](mk contract.Make[Subject[T]]) contract.Contract {
	s := testcase.NewSpec(nil)

	subject := testcase.Let(s, func(t *testcase.T) Subject[T] {
		return mk(t)
	})

	collect := func(t *testcase.T, i linq.Iterator[T]) []T {
		var vs []T
		for i.Next() {
			vs = append(vs, i.Value())
		}
		assert.NoError(t, i.Err())
		return vs
	}

	s.Before(func(t *testcase.T) {
		t.Defer(subject.Get(t).Iterator.Close)
	})

	s.Then("it yields the expected values in order", func(t *testcase.T) {
		assert.Equal(t, subject.Get(t).Values, collect(t, subject.Get(t).Iterator))
	})

	s.Then("it stays exhausted after the last element", func(t *testcase.T) {
		i := subject.Get(t).Iterator
		collect(t, i)
		t.Random.Repeat(1, 3, func() {
			assert.False(t, i.Next())
		})
	})

	s.Then("reset after exhaustion restarts the iteration", func(t *testcase.T) {
		i := subject.Get(t).Iterator
		collect(t, i)
		assert.NoError(t, i.Reset())
		assert.Equal(t, subject.Get(t).Values, collect(t, i))
	})

	s.Then("reset in the middle of the iteration restarts it", func(t *testcase.T) {
		i := subject.Get(t).Iterator
		assert.True(t, i.Next())
		assert.NoError(t, i.Reset())
		assert.Equal(t, subject.Get(t).Values, collect(t, i))
	})

	s.Then("reset is idempotent", func(t *testcase.T) {
		i := subject.Get(t).Iterator
		assert.True(t, i.Next())
		t.Random.Repeat(2, 5, func() {
			assert.NoError(t, i.Reset())
		})
		assert.Equal(t, subject.Get(t).Values, collect(t, i))
	})

	s.Then("value is repeatable without side effects", func(t *testcase.T) {
		i := subject.Get(t).Iterator
		assert.True(t, i.Next())
		v := i.Value()
		assert.Equal(t, v, i.Value())
		assert.Equal(t, subject.Get(t).Values[0], v)
	})

	s.Then("close releases the iterator and reset reopens it", func(t *testcase.T) {
		i := subject.Get(t).Iterator
		assert.True(t, i.Next())
		assert.NoError(t, i.Close())
		assert.False(t, i.Next())
		assert.NoError(t, i.Reset())
		assert.Equal(t, subject.Get(t).Values, collect(t, i))
	})

	s.Then("operators built on it can be restarted", func(t *testcase.T) {
		seq := linq.FromIterator(subject.Get(t).Iterator)
		n, err := seq.Count()
		assert.NoError(t, err)
		assert.Equal(t, len(subject.Get(t).Values), n)
		assert.NoError(t, seq.Reset())
		vs, err := seq.Reverse().Reverse().ToSlice()
		assert.NoError(t, err)
		assert.Equal(t, subject.Get(t).Values, vs)
	})

	return s.AsSuite("linq.Iterator")
}

// Run is a shorthand for running the contract straight from a test function.
func Run[T any](t *testing.T, mk contract.Make[Subject[T]]) {
	Iterator[T](mk).Test(t)
}
