// Package maincmd implements the vesper binary's sub-commands: running a
// source file and the interactive REPL.
package maincmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/mna/mainer"

	"github.com/vesper-lang/vesper/lang/value"
	"github.com/vesper-lang/vesper/lang/vm"
)

// Exit codes follow the sysexits.h convention the spec borrows: a clean
// run is 0, a compile error is 65 (EX_DATAERR), a runtime error is 70
// (EX_SOFTWARE).
const (
	exitOK           subcommands.ExitStatus = 0
	exitCompileError subcommands.ExitStatus = 65
	exitRuntimeError subcommands.ExitStatus = 70
)

// RunCmd implements "vesper run <path>": compile and execute one source
// file to completion.
type RunCmd struct {
	Stdio mainer.Stdio
}

func (*RunCmd) Name() string     { return "run" }
func (*RunCmd) Synopsis() string { return "compile and run a vesper source file" }
func (*RunCmd) Usage() string {
	return `run <path>:
  Compile and execute the vesper script at path.
`
}
func (*RunCmd) SetFlags(*flag.FlagSet) {}

func (c *RunCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	args := f.Args()
	if len(args) != 1 {
		fmt.Fprintln(c.Stdio.Stderr, "run: expected exactly one source file")
		return subcommands.ExitUsageError
	}

	src, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(c.Stdio.Stderr, "run: %s\n", err)
		return subcommands.ExitFailure
	}

	m := vm.New(value.NewInterner(), c.Stdio.Stdout, c.Stdio.Stderr)
	return resultToExit(m.Interpret(string(src)))
}

func resultToExit(r vm.Result) subcommands.ExitStatus {
	switch r {
	case vm.ResultOK:
		return exitOK
	case vm.ResultCompileError:
		return exitCompileError
	default:
		return exitRuntimeError
	}
}
