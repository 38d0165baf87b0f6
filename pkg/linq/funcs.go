package linq

import (
	"cmp"
	"fmt"
	"reflect"
	"strings"

	"go.llib.dev/frameless/pkg/reflectkit"
)

// Comparer tells whether two values should be treated as equal.
// It is used by Distinct, Contains, Except, Intersect, Union, SequenceEqual and Dictionary keys.
type Comparer[T any] func(x, y T) bool

// SortFunc is a three way comparison, it returns
//   - a negative number if x < y
//   - zero if x == y
//   - a positive number if x > y
type SortFunc[T any] func(x, y T) int

// Comparable is implemented by types that define their own ordering.
// Compare follows the SortFunc convention with the receiver as x.
type Comparable[T any] interface {
	Compare(T) int
}

// Equal is the default Comparer, it compares two values deeply.
// Types with an Equal method are compared with it.
func Equal[T any](x, y T) bool {
	return reflectkit.Equal(x, y)
}

// NaturalOrder is the default SortFunc.
//
// Types implementing Comparable are compared with their Compare method.
// Numbers are compared by value even across kinds, strings lexically, and false sorts before true.
// When the dynamic types differ, nil < bool < number < string < everything else.
func NaturalOrder[T any](x, y T) int {
	if c, ok := any(x).(Comparable[T]); ok {
		return c.Compare(y)
	}
	return naturalCompare(any(x), any(y))
}

func comparerOrDefault[T any](comparer Comparer[T]) Comparer[T] {
	if comparer == nil {
		return Equal[T]
	}
	return comparer
}

func sortFuncOrDefault[T any](sortFunc SortFunc[T]) SortFunc[T] {
	if sortFunc == nil {
		return NaturalOrder[T]
	}
	return sortFunc
}

func descending[T any](sortFunc SortFunc[T]) SortFunc[T] {
	return func(x, y T) int { return -sortFunc(x, y) }
}

func matchAll[T any](T) bool { return true }

func predicateOrDefault[T any](predicate func(T) bool) func(T) bool {
	if predicate == nil {
		return matchAll[T]
	}
	return predicate
}

func containsFunc[T any](vs []T, v T, comparer Comparer[T]) bool {
	return indexFunc(vs, v, comparer) >= 0
}

func indexFunc[T any](vs []T, v T, comparer Comparer[T]) int {
	for i, o := range vs {
		if comparer(v, o) {
			return i
		}
	}
	return -1
}

type orderClass int

const (
	classNil orderClass = iota
	classBool
	classNumber
	classString
	classOther
)

func classOf(v reflect.Value) orderClass {
	switch v.Kind() {
	case reflect.Invalid:
		return classNil
	case reflect.Bool:
		return classBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return classNumber
	case reflect.String:
		return classString
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if v.IsNil() {
			return classNil
		}
		return classOther
	default:
		return classOther
	}
}

func naturalCompare(x, y any) int {
	vx, vy := reflect.ValueOf(x), reflect.ValueOf(y)
	cx, cy := classOf(vx), classOf(vy)
	if cx != cy {
		return cmp.Compare(int(cx), int(cy))
	}
	switch cx {
	case classNil:
		return 0
	case classBool:
		return cmp.Compare(boolRank(vx.Bool()), boolRank(vy.Bool()))
	case classNumber:
		return compareNumbers(vx, vy)
	case classString:
		return strings.Compare(vx.String(), vy.String())
	}
	if vx.Type() == vy.Type() {
		if m := vx.MethodByName("Compare"); m.IsValid() {
			mt := m.Type()
			if mt.NumIn() == 1 && mt.In(0) == vy.Type() && mt.NumOut() == 1 && mt.Out(0).Kind() == reflect.Int {
				return int(m.Call([]reflect.Value{vy})[0].Int())
			}
		}
	}
	return strings.Compare(fmt.Sprint(x), fmt.Sprint(y))
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

func compareNumbers(x, y reflect.Value) int {
	switch {
	case x.CanInt() && y.CanInt():
		return cmp.Compare(x.Int(), y.Int())
	case x.CanUint() && y.CanUint():
		return cmp.Compare(x.Uint(), y.Uint())
	default:
		return cmp.Compare(toFloat(x), toFloat(y))
	}
}

func toFloat(v reflect.Value) float64 {
	switch {
	case v.CanInt():
		return float64(v.Int())
	case v.CanUint():
		return float64(v.Uint())
	default:
		return v.Float()
	}
}
