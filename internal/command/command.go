// Package command holds the subcommands of the linq command line tool.
package command

import "go.llib.dev/frameless/pkg/cli"

func Mux() *cli.Mux {
	var mux cli.Mux
	mux.Handle("query", Query{})
	mux.Handle("group", Group{})
	mux.Handle("stats", Stats{})
	mux.Handle("bolt", Bolt{})
	return &mux
}
