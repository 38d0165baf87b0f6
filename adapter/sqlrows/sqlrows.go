// Package sqlrows turns a SQL query into a restartable linq sequence.
package sqlrows

import (
	"context"

	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/pkg/flsql"
	"go.llib.dev/frameless/pkg/logger"
	"go.llib.dev/frameless/pkg/logging"

	"go.llib.dev/linqkit/pkg/linq"
)

// Query is a SQL query along with the mapping of its rows.
//
//	people := sqlrows.Query[Person]{
//		Connection: flsql.QueryableSQL(db),
//		SQL:        `SELECT name, age FROM people WHERE age >= $1`,
//		Args:       []any{18},
//		Scan: func(p *Person, s flsql.Scanner) error {
//			return s.Scan(&p.Name, &p.Age)
//		},
//	}.Sequence(ctx)
type Query[T any] struct {
	Connection flsql.Queryable
	SQL        string
	Args       []any
	Scan       flsql.MapScan[T]
}

// Sequence executes the query on the first pull of every pass.
// The rows are closed when the pass is exhausted, closed or reset,
// so a reset Sequence reflects the state of the database at the time of the new pass.
func (q Query[T]) Sequence(ctx context.Context) *linq.Sequence[T] {
	return linq.FromIterator[T](&rowsIter[T]{Context: ctx, Query: q})
}

type rowsIter[T any] struct {
	Context context.Context
	Query   Query[T]

	rows  flsql.Rows
	done  bool
	value T
	err   error
}

func (i *rowsIter[T]) open() error {
	if i.Query.Connection == nil {
		return linq.ErrInvalidArgument.F("sqlrows: missing Connection")
	}
	if i.Query.Scan == nil {
		return linq.ErrInvalidArgument.F("sqlrows: missing Scan function")
	}
	logger.Debug(i.Context, "executing query", logging.Fields{
		"query": i.Query.SQL,
		"args":  i.Query.Args,
	})
	rows, err := i.Query.Connection.QueryContext(i.Context, i.Query.SQL, i.Query.Args...)
	if err != nil {
		return err
	}
	i.rows = rows
	return nil
}

func (i *rowsIter[T]) Next() bool {
	if i.done || i.err != nil {
		return false
	}
	if i.rows == nil {
		if err := i.open(); err != nil {
			i.err = err
			return false
		}
	}
	if !i.rows.Next() {
		i.done = true
		i.err = errorkit.Merge(i.rows.Err(), i.release())
		return false
	}
	v, err := i.Query.Scan.Map(i.rows)
	if err != nil {
		i.err = errorkit.Merge(err, i.release())
		return false
	}
	i.value = v
	return true
}

func (i *rowsIter[T]) release() error {
	if i.rows == nil {
		return nil
	}
	rows := i.rows
	i.rows = nil
	return rows.Close()
}

func (i *rowsIter[T]) Value() T   { return i.value }
func (i *rowsIter[T]) Err() error { return i.err }

func (i *rowsIter[T]) Close() error {
	i.done = true
	return i.release()
}

func (i *rowsIter[T]) Reset() error {
	var zero T
	err := i.release()
	i.done = false
	i.value = zero
	i.err = nil
	return err
}
