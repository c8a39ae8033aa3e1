package maincmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"
	"github.com/mna/mainer"

	"github.com/vesper-lang/vesper/lang/value"
	"github.com/vesper-lang/vesper/lang/vm"
)

// ReplCmd implements "vesper repl": a read-eval-print loop that shares one
// VM (and therefore one string interner) across every line, so string
// literals entered on different lines still intern to the same value.
type ReplCmd struct {
	Stdio mainer.Stdio
}

func (*ReplCmd) Name() string     { return "repl" }
func (*ReplCmd) Synopsis() string { return "start an interactive vesper session" }
func (*ReplCmd) Usage() string {
	return `repl:
  Read, compile, and run vesper statements one line at a time.
`
}
func (*ReplCmd) SetFlags(*flag.FlagSet) {}

func (c *ReplCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		Stdin:           io.NopCloser(c.Stdio.Stdin),
		Stdout:          c.Stdio.Stdout,
		Stderr:          c.Stdio.Stderr,
		HistoryLimit:    1000,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintf(c.Stdio.Stderr, "repl: %s\n", err)
		return subcommands.ExitFailure
	}
	defer rl.Close()

	m := vm.New(value.NewInterner(), c.Stdio.Stdout, c.Stdio.Stderr)
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return exitOK
		}
		if err != nil {
			fmt.Fprintf(c.Stdio.Stderr, "repl: %s\n", err)
			return subcommands.ExitFailure
		}
		if line == "" {
			continue
		}
		// A REPL-entered expression without a trailing ';' is not run: the VM
		// reports a compile error and the loop reads the next line.
		m.Interpret(line)
	}
}
