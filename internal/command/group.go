package command

import (
	"go.llib.dev/frameless/pkg/cli"
	"go.llib.dev/frameless/pkg/logger"
	"go.llib.dev/frameless/pkg/logging"

	"go.llib.dev/linqkit/pkg/linq"
	"go.llib.dev/linqkit/pkg/linq/linqjson"
)

// Group partitions the elements of a JSON array by the value at a path.
// Groups are written as {"key": ..., "items": [...]} in the order their keys first appear,
// or as {"key": ..., "count": n} with -count.
type Group struct {
	File   string `flag:"file,f" env:"LINQ_INPUT" desc:"JSON array to read, STDIN when empty"`
	By     string `flag:"by" required:"true" desc:"group the elements by the value at this path"`
	Where  string `flag:"where" desc:"keep the elements that have this path"`
	Eq     string `flag:"eq" desc:"with -where, keep the elements whose value at the path equals this JSON value"`
	Select string `flag:"select" desc:"project the grouped elements to the value at this path"`
	Count  bool   `flag:"count" default:"false" desc:"write the size of the groups instead of their items"`
}

func (cmd Group) Summary() string {
	return "Group the elements of a JSON array."
}

func (cmd Group) ServeCLI(w cli.ResponseWriter, r *cli.Request) {
	logger.Debug(r.Context(), "grouping elements", logging.Field("by", cmd.By))
	groups := linq.GroupBy(filter(elements(r, cmd.File), cmd.Where, cmd.Eq), at(cmd.By), nil)
	defer groups.Close()

	var vs []any
	for groups.Next() {
		g := groups.Value()
		switch {
		case cmd.Count:
			obj := linqjson.NewObject()
			obj.Set("key", g.Key())
			obj.Set("count", g.Len())
			vs = append(vs, obj)
		case cmd.Select == "":
			vs = append(vs, g)
		default:
			items, err := linq.Select(g.Elements().Where(has(cmd.Select)), at(cmd.Select)).ToSlice()
			if err != nil {
				fail(w, r, err)
				return
			}
			vs = append(vs, linq.NewGrouping(g.Key(), items...))
		}
	}
	if err := groups.Err(); err != nil {
		fail(w, r, err)
		return
	}
	if vs == nil {
		vs = []any{}
	}
	write(w, r, vs)
}
