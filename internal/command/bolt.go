package command

import (
	"time"

	"github.com/boltdb/bolt"
	"go.llib.dev/frameless/pkg/cli"
	"go.llib.dev/frameless/pkg/logger"
	"go.llib.dev/frameless/pkg/logging"

	"go.llib.dev/linqkit/adapter/boltkv"
	"go.llib.dev/linqkit/pkg/linq"
	"go.llib.dev/linqkit/pkg/linq/linqjson"
)

// Bolt lists the JSON values of a bolt bucket as {"key": ..., "value": ...} entries in key order.
type Bolt struct {
	Path   string `arg:"0" required:"true" desc:"path of the bolt database file"`
	Bucket string `flag:"bucket" env:"LINQ_BOLT_BUCKET" required:"true" desc:"bucket to read"`
	Prefix string `flag:"prefix" desc:"only list the keys with this prefix"`
	Where  string `flag:"where" desc:"keep the entries whose value has this path"`
	Eq     string `flag:"eq" desc:"with -where, keep the entries whose value at the path equals this JSON value"`
	Take   int    `flag:"take" default:"-1" desc:"list at most this many entries, negative means all"`
}

func (cmd Bolt) Summary() string {
	return "List the JSON values stored in a bolt bucket."
}

func (cmd Bolt) ServeCLI(w cli.ResponseWriter, r *cli.Request) {
	ctx := r.Context()
	db, err := bolt.Open(cmd.Path, 0600, &bolt.Options{ReadOnly: true, Timeout: time.Second})
	if err != nil {
		fail(w, r, err)
		return
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn(ctx, "failed to close the bolt database", logging.ErrField(err))
		}
	}()

	entries := boltkv.Source[any]{
		DB:     db,
		Bucket: cmd.Bucket,
		Prefix: []byte(cmd.Prefix),
		Decode: linqjson.Parse,
	}.Entries(ctx)
	defer entries.Close()

	seq := entries.Where(func(kv linq.KeyValue[string, any]) bool {
		return matches(kv.Value, cmd.Where, cmd.Eq)
	})
	if 0 <= cmd.Take {
		seq = seq.Take(cmd.Take)
	}
	vs, err := linq.Select(seq, func(kv linq.KeyValue[string, any]) any { return kv }).ToSlice()
	if err != nil {
		fail(w, r, err)
		return
	}
	if vs == nil {
		vs = []any{}
	}
	write(w, r, vs)
}
