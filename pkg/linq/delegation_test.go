package linq_test

import (
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"go.llib.dev/testcase/assert"

	"go.llib.dev/linqkit/pkg/linq"
)

func TestSequence_delegatesToTheSource(t *testing.T) {
	t.Run("close is forwarded through streaming operators", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		src := NewMockStringIterator(ctrl)
		src.EXPECT().Close().Return(nil).Times(1)

		seq := linq.Select(linq.FromIterator[string](src).Where(func(string) bool { return true }), func(s string) int { return len(s) })
		assert.NoError(t, seq.Close())
	})

	t.Run("reset is forwarded through buffering operators", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		src := NewMockStringIterator(ctrl)
		gomock.InOrder(
			src.EXPECT().Next().Return(true),
			src.EXPECT().Value().Return("b"),
			src.EXPECT().Next().Return(true),
			src.EXPECT().Value().Return("a"),
			src.EXPECT().Next().Return(false),
			src.EXPECT().Err().Return(nil),
			src.EXPECT().Reset().Return(nil),
		)

		seq := linq.FromIterator[string](src).Order(nil)
		assert.True(t, seq.Next())
		assert.Equal(t, "a", seq.Value())
		assert.NoError(t, seq.Reset())
	})

	t.Run("take does not advance the source past the last taken element", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		src := NewMockStringIterator(ctrl)
		gomock.InOrder(
			src.EXPECT().Next().Return(true),
			src.EXPECT().Value().Return("a"),
			src.EXPECT().Next().Return(true),
			src.EXPECT().Value().Return("b"),
		)
		src.EXPECT().Err().Return(nil).AnyTimes()

		vs, err := linq.FromIterator[string](src).Take(2).ToSlice()
		assert.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, vs)
	})

	t.Run("take zero never touches the source", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		src := NewMockStringIterator(ctrl)
		src.EXPECT().Err().Return(nil).AnyTimes()

		vs, err := linq.FromIterator[string](src).Take(0).ToSlice()
		assert.NoError(t, err)
		assert.Empty(t, vs)
	})

	t.Run("source errors surface from terminal operators", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		src := NewMockStringIterator(ctrl)
		expErr := errors.New("boom")
		gomock.InOrder(
			src.EXPECT().Next().Return(true),
			src.EXPECT().Value().Return("x"),
			src.EXPECT().Next().Return(false),
		)
		src.EXPECT().Err().Return(expErr).AnyTimes()

		_, err := linq.FromIterator[string](src).Where(func(string) bool { return true }).ToSlice()
		assert.ErrorIs(t, err, expErr)
	})

	t.Run("reset errors are returned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		src := NewMockStringIterator(ctrl)
		expErr := errors.New("can't rewind")
		src.EXPECT().Reset().Return(expErr)

		assert.ErrorIs(t, linq.FromIterator[string](src).Distinct(nil).Reset(), expErr)
	})

	t.Run("zip closes both sources", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		left, right := NewMockStringIterator(ctrl), NewMockStringIterator(ctrl)
		left.EXPECT().Close().Return(nil)
		right.EXPECT().Close().Return(nil)

		seq := linq.Zip(linq.FromIterator[string](left), right, func(a, b string) string { return a + b })
		assert.NoError(t, seq.Close())
	})
}
