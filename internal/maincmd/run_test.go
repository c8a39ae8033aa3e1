package maincmd_test

import (
	"bytes"
	"flag"
	"os"
	"strings"
	"testing"

	"github.com/google/subcommands"
	"github.com/mna/mainer"
	"github.com/stretchr/testify/require"

	"github.com/vesper-lang/vesper/internal/clitest"
	"github.com/vesper-lang/vesper/internal/maincmd"
)

func TestRunCmdProducesGoldenOutput(t *testing.T) {
	var stdout, stderr bytes.Buffer
	cmd := &maincmd.RunCmd{Stdio: mainer.Stdio{
		Stdin:  strings.NewReader(""),
		Stdout: &stdout,
		Stderr: &stderr,
	}}

	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	require.NoError(t, fs.Parse([]string{"testdata/hello.vsp"}))

	status := cmd.Execute(nil, fs)
	require.Equal(t, subcommands.ExitStatus(0), status)
	require.Empty(t, stderr.String())
	clitest.DiffGolden(t, "testdata/hello.vsp.want", stdout.String())
}

func TestRunCmdCompileErrorExitsWith65(t *testing.T) {
	var stdout, stderr bytes.Buffer
	cmd := &maincmd.RunCmd{Stdio: mainer.Stdio{
		Stdin:  strings.NewReader(""),
		Stdout: &stdout,
		Stderr: &stderr,
	}}

	dir := t.TempDir()
	badFile := dir + "/bad.vsp"
	require.NoError(t, os.WriteFile(badFile, []byte("1 +;"), 0o600))

	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	require.NoError(t, fs.Parse([]string{badFile}))

	status := cmd.Execute(nil, fs)
	require.Equal(t, subcommands.ExitStatus(65), status)
}

func TestRunCmdRuntimeErrorExitsWith70(t *testing.T) {
	var stdout, stderr bytes.Buffer
	cmd := &maincmd.RunCmd{Stdio: mainer.Stdio{
		Stdin:  strings.NewReader(""),
		Stdout: &stdout,
		Stderr: &stderr,
	}}

	dir := t.TempDir()
	badFile := dir + "/bad.vsp"
	require.NoError(t, os.WriteFile(badFile, []byte(`print -"x";`), 0o600))

	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	require.NoError(t, fs.Parse([]string{badFile}))

	status := cmd.Execute(nil, fs)
	require.Equal(t, subcommands.ExitStatus(70), status)
}

func TestRunCmdRequiresExactlyOneArg(t *testing.T) {
	var stdout, stderr bytes.Buffer
	cmd := &maincmd.RunCmd{Stdio: mainer.Stdio{
		Stdin:  strings.NewReader(""),
		Stdout: &stdout,
		Stderr: &stderr,
	}}

	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	require.NoError(t, fs.Parse(nil))

	status := cmd.Execute(nil, fs)
	require.Equal(t, subcommands.ExitUsageError, status)
}
