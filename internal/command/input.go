package command

import (
	"fmt"
	"io"
	"os"

	"go.llib.dev/frameless/pkg/cli"
	"go.llib.dev/frameless/pkg/logger"
	"go.llib.dev/frameless/pkg/logging"

	"go.llib.dev/linqkit/pkg/linq"
	"go.llib.dev/linqkit/pkg/linq/linqjson"
)

// elements returns the elements of the JSON array found in file.
// When no file is given, the request body is read once and kept in memory,
// so the returned sequence stays restartable.
func elements(r *cli.Request, file string) *linq.Sequence[any] {
	if file != "" {
		logger.Debug(r.Context(), "reading input file", logging.Field("file", file))
		return linqjson.Elements(func() (io.ReadCloser, error) {
			return os.Open(file)
		})
	}
	if r.Body == nil {
		return linq.Empty[any]()
	}
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return linqjson.Elements(func() (io.ReadCloser, error) { return nil, err })
	}
	return linqjson.ElementsOf(data)
}

// at returns a key selector reading path from an element.
// Missing paths select nil.
func at(path string) func(any) any {
	return func(v any) any {
		out, _ := linqjson.Get(v, path)
		return out
	}
}

// has reports whether path is present in an element.
func has(path string) func(any) bool {
	return func(v any) bool {
		_, ok := linqjson.Get(v, path)
		return ok
	}
}

// literal interprets a command line value as JSON and falls back to a plain string.
func literal(raw string) any {
	v, err := linqjson.Parse([]byte(raw))
	if err != nil {
		return raw
	}
	return v
}

// filter keeps the elements that match path and eq.
func filter(seq *linq.Sequence[any], path, eq string) *linq.Sequence[any] {
	if path == "" {
		return seq
	}
	return seq.Where(func(v any) bool { return matches(v, path, eq) })
}

// matches reports whether v has path, and when eq is given, whether the value at path equals it.
// An empty path matches everything.
func matches(v any, path, eq string) bool {
	if path == "" {
		return true
	}
	got, ok := linqjson.Get(v, path)
	if !ok {
		return false
	}
	return eq == "" || linq.Equal(got, literal(eq))
}

func write(w cli.ResponseWriter, r *cli.Request, v any) {
	if err := linqjson.Encode(w, v); err != nil {
		fail(w, r, err)
		return
	}
	_, _ = w.Write([]byte("\n"))
}

// fail reports err on the error output of w and exits with the error code.
func fail(w cli.ResponseWriter, r *cli.Request, err error) {
	logger.Debug(r.Context(), "command failed", logging.ErrField(err))
	w.ExitCode(cli.ExitCodeError)
	var out io.Writer = w
	if ew, ok := w.(cli.ErrorWriter); ok && ew.Stderr() != nil {
		out = ew.Stderr()
	}
	_, _ = fmt.Fprintln(out, err.Error())
}
