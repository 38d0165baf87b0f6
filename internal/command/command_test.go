package command_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/boltdb/bolt"
	"go.llib.dev/frameless/pkg/cli"
	"go.llib.dev/frameless/pkg/logger"
	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"
	"go.llib.dev/testcase/let"

	"go.llib.dev/linqkit/internal/command"
	"go.llib.dev/linqkit/pkg/linq/linqjson"
)

const people = `[
	{"name": "Ada", "city": "London", "age": 36},
	{"name": "Grace", "city": "New York", "age": 45},
	{"name": "Linus", "city": "Helsinki", "age": 21},
	{"name": "Ken", "city": "New York", "age": 80},
	{"name": "Anon"}
]`

func TestMux(t *testing.T) {
	s := testcase.NewSpec(t)
	s.Before(func(t *testcase.T) { logger.Testing(t) })

	var (
		body = let.Var(s, func(t *testcase.T) string { return people })
		args = let.Var(s, func(t *testcase.T) []string { return nil })

		response = let.Var(s, func(t *testcase.T) *cli.ResponseRecorder {
			return &cli.ResponseRecorder{}
		})
	)
	act := func(t *testcase.T) {
		command.Mux().ServeCLI(response.Get(t), &cli.Request{
			Args: args.Get(t),
			Body: strings.NewReader(body.Get(t)),
		})
	}
	s.Before(func(t *testcase.T) {
		t.OnFail(func() {
			t.Log("args:", args.Get(t))
			t.Log("code:", response.Get(t).Code)
			t.Log("\nout:\n", response.Get(t).Out.String())
			t.Log("\nerr:\n", response.Get(t).Err.String())
		})
	})
	thenOutputIs := func(s *testcase.Spec, exp string) {
		s.Then("the result is written as JSON", func(t *testcase.T) {
			act(t)
			assert.Equal(t, 0, response.Get(t).Code)
			assert.Equal(t, exp+"\n", response.Get(t).Out.String())
		})
	}
	number := func(t *testcase.T) float64 {
		v, err := linqjson.Parse(response.Get(t).Out.Bytes())
		assert.NoError(t, err)
		switch n := v.(type) {
		case int64:
			return float64(n)
		case float64:
			return n
		default:
			t.Fatalf("not a number: %#v", v)
			return 0
		}
	}

	s.Context("query", func(s *testcase.Spec) {
		s.When("filtering by a JSON value", func(s *testcase.Spec) {
			args.Let(s, func(t *testcase.T) []string {
				return []string{"query", "-where", "city", "-eq", `"New York"`, "-select", "name"}
			})

			thenOutputIs(s, `["Grace","Ken"]`)
		})

		s.When("filtering by a plain string", func(s *testcase.Spec) {
			args.Let(s, func(t *testcase.T) []string {
				return []string{"query", "-where", "city", "-eq", "Helsinki", "-select", "name"}
			})

			thenOutputIs(s, `["Linus"]`)
		})

		s.When("filtering by a number", func(s *testcase.Spec) {
			args.Let(s, func(t *testcase.T) []string {
				return []string{"query", "-where", "age", "-eq", "36", "-select", "name"}
			})

			thenOutputIs(s, `["Ada"]`)
		})

		s.When("filtering by a plain string that starts like a JSON value", func(s *testcase.Spec) {
			body.LetValue(s, `[
				{"name": "Ada", "address": "123 Main St"},
				{"name": "Grace", "address": 123},
				{"name": "Linus", "address": "nullable"},
				{"name": "Ken", "address": null}
			]`)

			s.And("the value is a number followed by text", func(s *testcase.Spec) {
				args.Let(s, func(t *testcase.T) []string {
					return []string{"query", "-where", "address", "-eq", "123 Main St", "-select", "name"}
				})

				thenOutputIs(s, `["Ada"]`)
			})

			s.And("the value is a keyword followed by text", func(s *testcase.Spec) {
				args.Let(s, func(t *testcase.T) []string {
					return []string{"query", "-where", "address", "-eq", "nullable", "-select", "name"}
				})

				thenOutputIs(s, `["Linus"]`)
			})
		})

		s.When("ordering", func(s *testcase.Spec) {
			args.Let(s, func(t *testcase.T) []string {
				return []string{"query", "-order-by", "age", "-select", "name"}
			})

			thenOutputIs(s, `["Anon","Linus","Ada","Grace","Ken"]`)
		})

		s.When("ordering in descending order with a limit", func(s *testcase.Spec) {
			args.Let(s, func(t *testcase.T) []string {
				return []string{"query", "-order-by", "age", "-desc", "-take", "2", "-select", "name"}
			})

			thenOutputIs(s, `["Ken","Grace"]`)
		})

		s.When("paging", func(s *testcase.Spec) {
			args.Let(s, func(t *testcase.T) []string {
				return []string{"query", "-skip", "1", "-take", "1", "-select", "name"}
			})

			thenOutputIs(s, `["Grace"]`)
		})

		s.When("projecting distinct values", func(s *testcase.Spec) {
			args.Let(s, func(t *testcase.T) []string {
				return []string{"query", "-select", "city", "-distinct"}
			})

			thenOutputIs(s, `["London","New York","Helsinki"]`)
		})

		s.When("nothing matches", func(s *testcase.Spec) {
			args.Let(s, func(t *testcase.T) []string {
				return []string{"query", "-where", "email"}
			})

			thenOutputIs(s, `[]`)
		})

		s.When("the input is not a JSON array", func(s *testcase.Spec) {
			body.LetValue(s, `[{"name": "Ada"`)
			args.Let(s, func(t *testcase.T) []string { return []string{"query"} })

			s.Then("it fails", func(t *testcase.T) {
				act(t)
				assert.Equal(t, cli.ExitCodeError, response.Get(t).Code)
				assert.Contains(t, response.Get(t).Err.String(), "ErrMalformed")
			})
		})

		s.When("the input is read from a file", func(s *testcase.Spec) {
			path := let.Var(s, func(t *testcase.T) string {
				path := filepath.Join(t.TempDir(), "people.json")
				assert.NoError(t, os.WriteFile(path, []byte(people), 0600))
				return path
			})
			body.LetValue(s, "")

			s.And("the file is given as a flag", func(s *testcase.Spec) {
				args.Let(s, func(t *testcase.T) []string {
					return []string{"query", "-f", path.Get(t), "-where", "age", "-select", "name", "-take", "1"}
				})

				thenOutputIs(s, `["Ada"]`)
			})

			s.And("the file is given in the environment", func(s *testcase.Spec) {
				s.Before(func(t *testcase.T) { t.Setenv("LINQ_INPUT", path.Get(t)) })
				args.Let(s, func(t *testcase.T) []string {
					return []string{"query", "-select", "name", "-skip", "4"}
				})

				thenOutputIs(s, `["Anon"]`)
			})
		})
	})

	s.Context("group", func(s *testcase.Spec) {
		s.When("grouping with a projection", func(s *testcase.Spec) {
			args.Let(s, func(t *testcase.T) []string {
				return []string{"group", "-by", "city", "-select", "name"}
			})

			thenOutputIs(s, `[`+
				`{"key":"London","items":["Ada"]},`+
				`{"key":"New York","items":["Grace","Ken"]},`+
				`{"key":"Helsinki","items":["Linus"]},`+
				`{"key":null,"items":["Anon"]}]`)
		})

		s.When("counting the groups", func(s *testcase.Spec) {
			args.Let(s, func(t *testcase.T) []string {
				return []string{"group", "-by", "city", "-where", "age", "-count"}
			})

			thenOutputIs(s, `[{"key":"London","count":1},{"key":"New York","count":2},{"key":"Helsinki","count":1}]`)
		})

		s.When("the input breaks while a group is projected", func(s *testcase.Spec) {
			body.LetValue(s, `[{"city": "London", "name": "Ada"}, {"city": `)
			args.Let(s, func(t *testcase.T) []string {
				return []string{"group", "-by", "city", "-select", "name"}
			})

			s.Then("it fails", func(t *testcase.T) {
				act(t)
				assert.Equal(t, cli.ExitCodeError, response.Get(t).Code)
				assert.Empty(t, response.Get(t).Out.String())
				assert.Contains(t, response.Get(t).Err.String(), "ErrMalformed")
			})
		})

		s.When("the key path is missing", func(s *testcase.Spec) {
			args.Let(s, func(t *testcase.T) []string { return []string{"group"} })

			s.Then("it is a bad request", func(t *testcase.T) {
				act(t)
				assert.Equal(t, cli.ExitCodeBadRequest, response.Get(t).Code)
			})
		})
	})

	s.Context("stats", func(s *testcase.Spec) {
		s.Test("count", func(t *testcase.T) {
			args.Set(t, []string{"stats"})
			act(t)
			assert.Equal(t, 0, response.Get(t).Code)
			assert.Equal(t, 5.0, number(t))
		})

		s.Test("count of a field", func(t *testcase.T) {
			args.Set(t, []string{"stats", "-field", "age", "-op", "count"})
			act(t)
			assert.Equal(t, 4.0, number(t))
		})

		s.Test("sum", func(t *testcase.T) {
			args.Set(t, []string{"stats", "-field", "age", "-op", "sum"})
			act(t)
			assert.Equal(t, 182.0, number(t))
		})

		s.Test("avg", func(t *testcase.T) {
			args.Set(t, []string{"stats", "-field", "age", "-op", "avg"})
			act(t)
			assert.Equal(t, 45.5, number(t))
		})

		s.Test("min and max", func(t *testcase.T) {
			args.Set(t, []string{"stats", "-field", "age", "-op", "min"})
			act(t)
			assert.Equal(t, 21.0, number(t))

			response.Set(t, &cli.ResponseRecorder{})
			args.Set(t, []string{"stats", "-field", "age", "-op", "max"})
			act(t)
			assert.Equal(t, 80.0, number(t))
		})

		s.Test("filtered", func(t *testcase.T) {
			args.Set(t, []string{"stats", "-field", "age", "-op", "sum", "-where", "city", "-eq", `"New York"`})
			act(t)
			assert.Equal(t, 125.0, number(t))
		})

		s.Test("unknown operation", func(t *testcase.T) {
			args.Set(t, []string{"stats", "-op", "median"})
			act(t)
			assert.Equal(t, cli.ExitCodeBadRequest, response.Get(t).Code)
		})

		s.Test("empty operation", func(t *testcase.T) {
			args.Set(t, []string{"stats", "-op", ""})
			act(t)
			assert.Equal(t, cli.ExitCodeBadRequest, response.Get(t).Code)
			assert.Empty(t, response.Get(t).Out.String())
		})
	})

	s.Context("bolt", func(s *testcase.Spec) {
		stored := let.Var(s, func(t *testcase.T) map[string]string {
			return map[string]string{
				"person:1": `{"name":"Ada","age":36}`,
				"person:2": `{"name":"Grace","age":45}`,
				"person:3": `{"name":"Linus"}`,
				"team:1":   `{"name":"Compilers"}`,
			}
		})
		path := let.Var(s, func(t *testcase.T) string {
			path := filepath.Join(t.TempDir(), "people.db")
			db, err := bolt.Open(path, 0600, nil)
			assert.NoError(t, err)
			assert.NoError(t, db.Update(func(tx *bolt.Tx) error {
				b, err := tx.CreateBucket([]byte("people"))
				if err != nil {
					return err
				}
				for k, v := range stored.Get(t) {
					if err := b.Put([]byte(k), []byte(v)); err != nil {
						return err
					}
				}
				return nil
			}))
			assert.NoError(t, db.Close())
			return path
		})

		s.When("listing a prefix", func(s *testcase.Spec) {
			args.Let(s, func(t *testcase.T) []string {
				return []string{"bolt", "-bucket", "people", "-prefix", "person:", "-where", "age", path.Get(t)}
			})

			thenOutputIs(s, `[`+
				`{"key":"person:1","value":{"name":"Ada","age":36}},`+
				`{"key":"person:2","value":{"name":"Grace","age":45}}]`)
		})

		s.When("taking the first entry", func(s *testcase.Spec) {
			args.Let(s, func(t *testcase.T) []string {
				return []string{"bolt", "-bucket", "people", "-take", "1", path.Get(t)}
			})

			thenOutputIs(s, `[{"key":"person:1","value":{"name":"Ada","age":36}}]`)
		})

		s.When("a stored value has data after the JSON document", func(s *testcase.Spec) {
			stored.Let(s, func(t *testcase.T) map[string]string {
				vs := stored.Super(t)
				vs["person:4"] = `{"name":"Ken"} trailing`
				return vs
			})
			args.Let(s, func(t *testcase.T) []string {
				return []string{"bolt", "-bucket", "people", "-prefix", "person:", path.Get(t)}
			})

			s.Then("it fails as malformed", func(t *testcase.T) {
				act(t)
				assert.Equal(t, cli.ExitCodeError, response.Get(t).Code)
				assert.Empty(t, response.Get(t).Out.String())
				assert.Contains(t, response.Get(t).Err.String(), "ErrMalformed")
			})
		})

		s.When("the bucket doesn't exist", func(s *testcase.Spec) {
			args.Let(s, func(t *testcase.T) []string {
				return []string{"bolt", "-bucket", "unknown", path.Get(t)}
			})

			s.Then("it fails", func(t *testcase.T) {
				act(t)
				assert.Equal(t, cli.ExitCodeError, response.Get(t).Code)
				assert.Empty(t, response.Get(t).Out.String())
				assert.Contains(t, response.Get(t).Err.String(), "ErrBucketNotFound")
			})
		})
	})
}
