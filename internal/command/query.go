package command

import (
	"go.llib.dev/frameless/pkg/cli"
	"go.llib.dev/frameless/pkg/logger"
	"go.llib.dev/frameless/pkg/logging"

	"go.llib.dev/linqkit/pkg/linq"
)

// Query filters, orders, pages and projects the elements of a JSON array.
//
//	linq query -f people.json -where city -eq '"Budapest"' -order-by age -select name -take 3
type Query struct {
	File     string `flag:"file,f" env:"LINQ_INPUT" desc:"JSON array to read, STDIN when empty"`
	Where    string `flag:"where" desc:"keep the elements that have this path"`
	Eq       string `flag:"eq" desc:"with -where, keep the elements whose value at the path equals this JSON value"`
	OrderBy  string `flag:"order-by" desc:"order the elements by the value at this path"`
	Desc     bool   `flag:"desc" default:"false" desc:"order in descending order"`
	Distinct bool   `flag:"distinct" default:"false" desc:"drop repeated results"`
	Skip     int    `flag:"skip" default:"0" desc:"bypass this many elements"`
	Take     int    `flag:"take" default:"-1" desc:"return at most this many elements, negative means all"`
	Select   string `flag:"select" desc:"project each element to the value at this path"`
}

func (cmd Query) Summary() string {
	return "Query the elements of a JSON array."
}

func (cmd Query) ServeCLI(w cli.ResponseWriter, r *cli.Request) {
	logger.Debug(r.Context(), "running query", logging.Fields{
		"where":    cmd.Where,
		"order-by": cmd.OrderBy,
		"select":   cmd.Select,
	})
	seq := filter(elements(r, cmd.File), cmd.Where, cmd.Eq)
	if cmd.OrderBy != "" {
		if cmd.Desc {
			seq = linq.OrderByDescending(seq, at(cmd.OrderBy), nil)
		} else {
			seq = linq.OrderBy(seq, at(cmd.OrderBy), nil)
		}
	}
	if cmd.Select != "" {
		seq = linq.Select(seq.Where(has(cmd.Select)), at(cmd.Select))
	}
	if cmd.Distinct {
		seq = seq.Distinct(nil)
	}
	seq = seq.Skip(cmd.Skip)
	if 0 <= cmd.Take {
		seq = seq.Take(cmd.Take)
	}
	defer seq.Close()

	vs, err := seq.ToSlice()
	if err != nil {
		fail(w, r, err)
		return
	}
	if vs == nil {
		vs = []any{}
	}
	write(w, r, vs)
}
