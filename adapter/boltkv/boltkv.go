// Package boltkv exposes the entries of a bolt bucket as a restartable linq sequence.
package boltkv

import (
	"bytes"
	"context"

	"github.com/boltdb/bolt"
	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/pkg/logger"
	"go.llib.dev/frameless/pkg/logging"

	"go.llib.dev/linqkit/pkg/linq"
)

const ErrBucketNotFound errorkit.Error = "ErrBucketNotFound"

// Raw is a Decode function that keeps the stored value as is.
func Raw(data []byte) ([]byte, error) { return data, nil }

// Source describes which entries of a bolt database to iterate.
type Source[V any] struct {
	DB     *bolt.DB
	Bucket string
	// Prefix limits the iteration to the keys starting with it.
	Prefix []byte
	// Decode turns a stored value into V.
	// A decode failure stops the iteration with the returned error.
	Decode func(data []byte) (V, error)
}

// Entries returns the key-value pairs of the bucket in key order.
//
// Every pass opens its own read-only transaction on the first pull,
// and rolls it back when the pass is exhausted, closed or reset.
// An abandoned pass keeps its transaction open, and bolt blocks remapping while a read transaction is alive,
// so a Sequence that is not iterated to the end should be closed.
func (src Source[V]) Entries(ctx context.Context) *linq.Sequence[linq.KeyValue[string, V]] {
	return linq.FromIterator[linq.KeyValue[string, V]](&entryIter[V]{Context: ctx, Source: src})
}

type entryIter[V any] struct {
	Context context.Context
	Source  Source[V]

	tx     *bolt.Tx
	cursor *bolt.Cursor
	done   bool
	value  linq.KeyValue[string, V]
	err    error
}

func (i *entryIter[V]) open() error {
	if i.Source.DB == nil {
		return linq.ErrInvalidArgument.F("boltkv: missing DB")
	}
	if i.Source.Decode == nil {
		return linq.ErrInvalidArgument.F("boltkv: missing Decode function")
	}
	tx, err := i.Source.DB.Begin(false)
	if err != nil {
		return err
	}
	bucket := tx.Bucket([]byte(i.Source.Bucket))
	if bucket == nil {
		_ = tx.Rollback()
		return ErrBucketNotFound.F("bucket: %s", i.Source.Bucket)
	}
	logger.Debug(i.Context, "bolt read transaction opened",
		logging.Field("bucket", i.Source.Bucket),
		logging.Field("prefix", string(i.Source.Prefix)))
	i.tx = tx
	i.cursor = bucket.Cursor()
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
	var k, v []byte
	if i.tx == nil {
		if err := i.open(); err != nil {
			i.fail(err)
			return false
		}
		k, v = i.cursor.Seek(i.Source.Prefix)
	} else {
		k, v = i.cursor.Next()
	}
	// nested buckets have a nil value
	for k != nil && v == nil {
		k, v = i.cursor.Next()
	}
	if k == nil || !bytes.HasPrefix(k, i.Source.Prefix) {
		i.done = true
		i.fail(i.release())
		return false
	}
	// bolt owns k and v only until the transaction ends
	decoded, err := i.Source.Decode(bytes.Clone(v))
	if err != nil {
		i.fail(err)
		return false
	}
	i.value = linq.KeyValue[string, V]{Key: string(k), Value: decoded}
	return true
}

func (i *entryIter[V]) fail(err error) {
	if err == nil {
		return
	}
	i.err = errorkit.Merge(err, i.release())
}

func (i *entryIter[V]) release() error {
	if i.tx == nil {
		return nil
	}
	tx := i.tx
	i.tx, i.cursor = nil, nil
	logger.Debug(i.Context, "bolt read transaction closed", logging.Field("bucket", i.Source.Bucket))
	return tx.Rollback()
}

func (i *entryIter[V]) Value() linq.KeyValue[string, V] { return i.value }
func (i *entryIter[V]) Err() error                      { return i.err }

func (i *entryIter[V]) Close() error {
	i.done = true
	return i.release()
}

func (i *entryIter[V]) Reset() error {
	err := i.release()
	i.done = false
	i.err = nil
	i.value = linq.KeyValue[string, V]{}
	return err
}
