// Command vesper is the Vesper language's compiler/VM driver: it runs a
// source file to completion or starts an interactive REPL.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
	"github.com/mna/mainer"

	"github.com/vesper-lang/vesper/internal/maincmd"
)

func main() {
	stdio := mainer.CurrentStdio()

	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&maincmd.RunCmd{Stdio: stdio}, "")
	subcommands.Register(&maincmd.ReplCmd{Stdio: stdio}, "")

	flag.Parse()
	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	os.Exit(int(subcommands.Execute(ctx)))
}
