package linq_test

import "go.llib.dev/linqkit/pkg/linq"

//go:generate mockgen -destination mock_iterator_test.go -source iterator_test.go -package linq_test

// StringIterator is linq.Iterator[string] spelled out, so mockgen can generate a double for it.
type StringIterator interface {
	Next() bool
	Value() string
	Err() error
	Close() error
	Reset() error
}

var (
	_ linq.Iterator[string] = StringIterator(nil)
	_ StringIterator        = (*MockStringIterator)(nil)
)
