// Package badgerkv exposes a key range of a badger database as a restartable linq sequence.
package badgerkv

import (
	"context"

	"github.com/dgraph-io/badger/v4"
	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/pkg/logger"
	"go.llib.dev/frameless/pkg/logging"

	"go.llib.dev/linqkit/pkg/linq"
)

// Source describes which entries of a badger database to iterate.
type Source[V any] struct {
	DB *badger.DB
	// Prefix limits the iteration to the keys starting with it.
	Prefix []byte
	// Decode turns a stored value into V.
	// A decode failure stops the iteration with the returned error.
	Decode func(data []byte) (V, error)
}

// Raw is a Decode function that keeps the stored value as is.
func Raw(data []byte) ([]byte, error) { return data, nil }

// Entries returns the key-value pairs under Prefix in key order.
// Every pass reads from its own read-only transaction snapshot,
// which is discarded when the pass is exhausted, closed or reset.
func (src Source[V]) Entries(ctx context.Context) *linq.Sequence[linq.KeyValue[string, V]] {
	return linq.FromIterator[linq.KeyValue[string, V]](&entryIter[V]{Context: ctx, Source: src})
}

type entryIter[V any] struct {
	Context context.Context
	Source  Source[V]

	txn   *badger.Txn
	it    *badger.Iterator
	done  bool
	value linq.KeyValue[string, V]
	err   error
}

func (i *entryIter[V]) open() error {
	if i.Source.DB == nil {
		return linq.ErrInvalidArgument.F("badgerkv: missing DB")
	}
	if i.Source.Decode == nil {
		return linq.ErrInvalidArgument.F("badgerkv: missing Decode function")
	}
	opts := badger.DefaultIteratorOptions
	opts.Prefix = i.Source.Prefix
	i.txn = i.Source.DB.NewTransaction(false)
	i.it = i.txn.NewIterator(opts)
	i.it.Rewind()
	logger.Debug(i.Context, "badger read transaction opened", logging.Field("prefix", string(i.Source.Prefix)))
	return nil
}

func (i *entryIter[V]) Next() bool {
	if i.done || i.err != nil {
		return false
	}
	if err := i.Context.Err(); err != nil {
		i.fail(err)
		return false
	}
	if i.txn == nil {
		if err := i.open(); err != nil {
			i.fail(err)
			return false
		}
	} else {
		i.it.Next()
	}
	if !i.it.ValidForPrefix(i.Source.Prefix) {
		i.done = true
		i.release()
		return false
	}
	item := i.it.Item()
	data, err := item.ValueCopy(nil)
	if err != nil {
		i.fail(err)
		return false
	}
	v, err := i.Source.Decode(data)
	if err != nil {
		i.fail(err)
		return false
	}
	i.value = linq.KeyValue[string, V]{Key: string(item.KeyCopy(nil)), Value: v}
	return true
}

func (i *entryIter[V]) fail(err error) {
	i.err = errorkit.Merge(i.err, err)
	i.release()
}

func (i *entryIter[V]) release() {
	if i.txn == nil {
		return
	}
	i.it.Close()
	i.txn.Discard()
	i.it, i.txn = nil, nil
	logger.Debug(i.Context, "badger read transaction discarded", logging.Field("prefix", string(i.Source.Prefix)))
}

func (i *entryIter[V]) Value() linq.KeyValue[string, V] { return i.value }
func (i *entryIter[V]) Err() error                      { return i.err }

func (i *entryIter[V]) Close() error {
	i.done = true
	i.release()
	return nil
}

func (i *entryIter[V]) Reset() error {
	i.release()
	i.done = false
	i.err = nil
	i.value = linq.KeyValue[string, V]{}
	return nil
}
