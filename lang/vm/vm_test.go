package vm_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vesper-lang/vesper/lang/value"
	"github.com/vesper-lang/vesper/lang/vm"
)

func run(t *testing.T, src string) (string, string, vm.Result) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	m := vm.New(value.NewInterner(), &stdout, &stderr)
	res := m.Interpret(src)
	return stdout.String(), stderr.String(), res
}

func TestInterpretArithmetic(t *testing.T) {
	out, _, res := run(t, "print 1 + 2 * 3;")
	require.Equal(t, vm.ResultOK, res)
	require.Equal(t, "7\n", out)
}

func TestInterpretStringConcatenation(t *testing.T) {
	out, _, res := run(t, `print "foo" + "bar";`)
	require.Equal(t, vm.ResultOK, res)
	require.Equal(t, "foobar\n", out)
}

func TestInterpretComparisonAndEquality(t *testing.T) {
	out, _, res := run(t, `print 1 < 2; print 1 == 1.0; print "a" == "a";`)
	require.Equal(t, vm.ResultOK, res)
	require.Equal(t, "true\ntrue\ntrue\n", out)
}

func TestInterpretTruthiness(t *testing.T) {
	out, _, res := run(t, "print !nil; print !false; print !0;")
	require.Equal(t, vm.ResultOK, res)
	require.Equal(t, "true\ntrue\nfalse\n", out)
}

func TestInterpretNegate(t *testing.T) {
	out, _, res := run(t, "print -(1 + 1);")
	require.Equal(t, vm.ResultOK, res)
	require.Equal(t, "-2\n", out)
}

func TestInterpretCompileErrorYieldsCompileErrorResult(t *testing.T) {
	_, errOut, res := run(t, "1 +;")
	require.Equal(t, vm.ResultCompileError, res)
	require.Contains(t, errOut, "Expect expression.")
}

func TestInterpretNegateNonNumberIsRuntimeError(t *testing.T) {
	_, errOut, res := run(t, `print -"x";`)
	require.Equal(t, vm.ResultRuntimeError, res)
	require.Contains(t, errOut, "Operand must be a number.")
	require.Contains(t, errOut, "[line 1] in script")
}

func TestInterpretAddMismatchedTypesIsRuntimeError(t *testing.T) {
	_, errOut, res := run(t, `print 1 + "x";`)
	require.Equal(t, vm.ResultRuntimeError, res)
	require.Contains(t, errOut, "Operands must be two numbers or two strings.")
}

func TestInterpretComparisonRequiresNumbers(t *testing.T) {
	_, errOut, res := run(t, `print "a" < "b";`)
	require.Equal(t, vm.ResultRuntimeError, res)
	require.Contains(t, errOut, "Operands must be numbers.")
}

func TestInterpretRuntimeErrorResetsStack(t *testing.T) {
	var out bytes.Buffer
	m := vm.New(value.NewInterner(), &out, &bytes.Buffer{})
	res := m.Interpret(`print 1 + "x";`)
	require.Equal(t, vm.ResultRuntimeError, res)

	// A fresh interpret call on the same VM must not see leftover stack state.
	res2 := m.Interpret("print 42;")
	require.Equal(t, vm.ResultOK, res2)
	require.Equal(t, "42\n", out.String())
}

func TestInterpretNaNNeverEqualsItself(t *testing.T) {
	out, _, res := run(t, "print (0/0 == 0/0);")
	require.Equal(t, vm.ResultOK, res)
	require.Equal(t, "false\n", out)
}

func TestInterpretRuntimeErrorReportsFaultingLine(t *testing.T) {
	_, errOut, res := run(t, "print 1;\nprint 2 + \"x\";")
	require.Equal(t, vm.ResultRuntimeError, res)
	require.Contains(t, errOut, "[line 2] in script")
}
