// Package linqjson turns JSON documents into linq sequences.
//
// Objects are decoded into *linq.Dictionary[string, any] so the key order of the document is kept,
// arrays into []any, integral numbers into int64 and the rest of the numbers into float64.
package linqjson

import (
	"bytes"
	"errors"
	"io"

	jsoniter "github.com/json-iterator/go"
	"go.llib.dev/frameless/pkg/errorkit"

	"go.llib.dev/linqkit/pkg/linq"
)

const ErrMalformed errorkit.Error = "ErrMalformed"

// Object is the decoded form of a JSON object.
type Object = *linq.Dictionary[string, any]

func NewObject() Object {
	return linq.NewDictionary[string, any](sameKey)
}

func sameKey(a, b string) bool { return a == b }

var config = jsoniter.Config{UseNumber: true}.Froze()

// Parse decodes data as a single JSON value.
// Anything but whitespace after the value makes the document malformed.
func Parse(data []byte) (any, error) {
	return read(jsoniter.ParseBytes(config, data))
}

// Decode reads r to its end as a single JSON value.
func Decode(r io.Reader) (any, error) {
	return read(jsoniter.Parse(config, r, 4096))
}

func read(it *jsoniter.Iterator) (any, error) {
	v := readValue(it)
	if err := it.Error; err != nil {
		return nil, malformed(err)
	}
	if err := checkEnd(it); err != nil {
		return nil, err
	}
	return v, nil
}

// checkEnd makes sure only whitespace is left in the input.
func checkEnd(it *jsoniter.Iterator) error {
	if it.WhatIsNext() == jsoniter.InvalidValue && errors.Is(it.Error, io.EOF) {
		it.Error = nil
		return nil
	}
	if it.Error != nil {
		return malformed(it.Error)
	}
	return ErrMalformed.F("trailing data after the JSON value")
}

func malformed(err error) error {
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return ErrMalformed.Wrap(err)
}

func readValue(it *jsoniter.Iterator) any {
	switch it.WhatIsNext() {
	case jsoniter.ObjectValue:
		obj := NewObject()
		it.ReadObjectCB(func(it *jsoniter.Iterator, key string) bool {
			obj.Set(key, readValue(it))
			return it.Error == nil
		})
		return obj
	case jsoniter.ArrayValue:
		vs := make([]any, 0)
		it.ReadArrayCB(func(it *jsoniter.Iterator) bool {
			vs = append(vs, readValue(it))
			return it.Error == nil
		})
		return vs
	case jsoniter.StringValue:
		return it.ReadString()
	case jsoniter.NumberValue:
		n := it.ReadNumber()
		if errors.Is(it.Error, io.EOF) {
			// a number can only end at the end of the input when it is the top level value
			it.Error = nil
		}
		if i, err := n.Int64(); err == nil {
			return i
		}
		f, err := n.Float64()
		if err != nil {
			it.ReportError("read number", err.Error())
		}
		return f
	case jsoniter.BoolValue:
		return it.ReadBool()
	case jsoniter.NilValue:
		it.ReadNil()
		return nil
	default:
		if it.Error == nil {
			it.ReportError("read value", "unexpected token")
		}
		return nil
	}
}

// Elements yields the elements of a top level JSON array one by one,
// without reading the whole document into memory.
// open is called at the start of every pass, and the reader is closed when the pass ends.
func Elements(open func() (io.ReadCloser, error)) *linq.Sequence[any] {
	return linq.FromIterator[any](&elementIter{Open: open})
}

// ElementsOf is Elements over an in-memory document.
func ElementsOf(data []byte) *linq.Sequence[any] {
	return Elements(func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	})
}

type elementIter struct {
	Open func() (io.ReadCloser, error)

	rc    io.ReadCloser
	it    *jsoniter.Iterator
	done  bool
	value any
	err   error
}

func (i *elementIter) Next() bool {
	if i.done || i.err != nil {
		return false
	}
	if i.it == nil {
		rc, err := i.Open()
		if err != nil {
			i.err = err
			return false
		}
		i.rc = rc
		i.it = jsoniter.Parse(config, rc, 4096)
	}
	if !i.it.ReadArray() {
		if i.it.Error == nil {
			i.err = checkEnd(i.it)
		}
		i.finish()
		return false
	}
	v := readValue(i.it)
	if i.it.Error != nil {
		i.finish()
		return false
	}
	i.value = v
	return true
}

func (i *elementIter) finish() {
	i.done = true
	if err := i.it.Error; err != nil {
		i.err = malformed(err)
	}
	if err := i.release(); err != nil {
		i.err = errorkit.Merge(i.err, err)
	}
}

func (i *elementIter) release() error {
	i.it = nil
	if i.rc == nil {
		return nil
	}
	rc := i.rc
	i.rc = nil
	return rc.Close()
}

func (i *elementIter) Value() any { return i.value }
func (i *elementIter) Err() error { return i.err }

func (i *elementIter) Close() error {
	i.done = true
	return i.release()
}

func (i *elementIter) Reset() error {
	err := i.release()
	i.done = false
	i.value = nil
	i.err = nil
	return err
}
