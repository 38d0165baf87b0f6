package command

import (
	"go.llib.dev/frameless/pkg/cli"
	"go.llib.dev/frameless/pkg/logger"
	"go.llib.dev/frameless/pkg/logging"

	"go.llib.dev/linqkit/pkg/linq"
)

// Stats aggregates the numbers found at a path of the elements of a JSON array.
// Elements without a number at the path are left out of the aggregation, except for count.
type Stats struct {
	File  string `flag:"file,f" env:"LINQ_INPUT" desc:"JSON array to read, STDIN when empty"`
	Field string `flag:"field" desc:"path of the aggregated value, the element itself when empty"`
	Op    string `flag:"op" default:"count" enum:"count,sum,avg,min,max" desc:"aggregation to compute"`
	Where string `flag:"where" desc:"keep the elements that have this path"`
	Eq    string `flag:"eq" desc:"with -where, keep the elements whose value at the path equals this JSON value"`
}

func (cmd Stats) Summary() string {
	return "Aggregate the elements of a JSON array."
}

func (cmd Stats) ServeCLI(w cli.ResponseWriter, r *cli.Request) {
	logger.Debug(r.Context(), "computing stats", logging.Fields{
		"op":    cmd.Op,
		"field": cmd.Field,
	})
	seq := filter(elements(r, cmd.File), cmd.Where, cmd.Eq)
	defer seq.Close()

	if cmd.Op == "count" {
		n, err := seq.Where(has(cmd.Field)).Count()
		if err != nil {
			fail(w, r, err)
			return
		}
		write(w, r, n)
		return
	}

	numbers := linq.Select(linq.Select(seq, at(cmd.Field)).Where(isNumber), toFloat64)
	var (
		result float64
		err    error
	)
	switch cmd.Op {
	case "sum":
		result, err = linq.Sum(numbers, 0)
	case "avg":
		result, err = linq.Average(numbers, 0)
	case "min":
		result, err = linq.Min(numbers, 0)
	case "max":
		result, err = linq.Max(numbers, 0)
	default:
		err = linq.ErrInvalidArgument.F("unknown aggregation: %s", cmd.Op)
	}
	if err != nil {
		fail(w, r, err)
		return
	}
	write(w, r, result)
}

func isNumber(v any) bool {
	switch v.(type) {
	case int64, float64:
		return true
	default:
		return false
	}
}

func toFloat64(v any) float64 {
	switch v := v.(type) {
	case int64:
		return float64(v)
	case float64:
		return v
	default:
		return 0
	}
}
