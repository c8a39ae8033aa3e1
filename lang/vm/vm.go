// Package vm implements Vesper's stack-based bytecode interpreter: a
// fetch-decode-execute loop over a fixed-size value stack.
package vm

import (
	"fmt"
	"io"

	"github.com/vesper-lang/vesper/lang/chunk"
	"github.com/vesper-lang/vesper/lang/compiler"
	"github.com/vesper-lang/vesper/lang/value"
)

// StackMax is the maximum number of values the VM's stack can hold.
const StackMax = 256

// Result reports the outcome of a single Interpret call.
type Result int

const (
	ResultOK Result = iota
	ResultCompileError
	ResultRuntimeError
)

func (r Result) String() string {
	switch r {
	case ResultOK:
		return "OK"
	case ResultCompileError:
		return "COMPILE_ERROR"
	case ResultRuntimeError:
		return "RUNTIME_ERROR"
	default:
		return "UNKNOWN"
	}
}

// RuntimeError describes a failed execution. Interpret does not return it;
// it reports ResultRuntimeError and writes Error's text to the VM's stderr
// stream: the message, then "[line L] in script".
type RuntimeError struct {
	Line    int
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d] in script", e.Message, e.Line)
}

// VM is a single bytecode execution context: a chunk, an instruction
// pointer into it, and a value stack. It is constructed fresh per logical
// "program" (one VM per file run, or one shared across REPL lines if the
// caller wants persistent top-level state); two Interpret calls on
// different VMs never interact.
type VM struct {
	interner *value.Interner
	stdout   io.Writer
	stderr   io.Writer

	chunk *chunk.Chunk
	ip    int

	stack    [StackMax]value.Value
	stackTop int
}

// New constructs a VM whose compilations intern strings through interner
// and whose PRINT/error output goes to stdout/stderr respectively.
func New(interner *value.Interner, stdout, stderr io.Writer) *VM {
	return &VM{interner: interner, stdout: stdout, stderr: stderr}
}

// Interpret compiles source and, on success, runs it to completion.
func (vm *VM) Interpret(source string) Result {
	var ch chunk.Chunk
	ok, err := compiler.Compile(source, &ch, vm.interner)
	if !ok {
		if err != nil {
			fmt.Fprintln(vm.stderr, err.Error())
		}
		return ResultCompileError
	}

	vm.chunk = &ch
	vm.ip = 0
	vm.stackTop = 0
	return vm.run()
}

func (vm *VM) push(v value.Value) {
	vm.stack[vm.stackTop] = v
	vm.stackTop++
}

func (vm *VM) pop() value.Value {
	vm.stackTop--
	return vm.stack[vm.stackTop]
}

func (vm *VM) peek(distance int) value.Value {
	return vm.stack[vm.stackTop-1-distance]
}

func (vm *VM) resetStack() { vm.stackTop = 0 }

func (vm *VM) readByte() byte {
	b := vm.chunk.Code[vm.ip]
	vm.ip++
	return b
}

func (vm *VM) readConstant() value.Value {
	return vm.chunk.Constants[vm.readByte()]
}

func (vm *VM) run() Result {
	for {
		op := chunk.Op(vm.readByte())
		switch op {
		case chunk.OpConstant:
			vm.push(vm.readConstant())

		case chunk.OpNil:
			vm.push(value.NilValue)
		case chunk.OpTrue:
			vm.push(value.Bool(true))
		case chunk.OpFalse:
			vm.push(value.Bool(false))

		case chunk.OpPop:
			vm.pop()

		case chunk.OpEqual:
			b := vm.pop()
			a := vm.pop()
			vm.push(value.Bool(value.Equal(a, b)))

		case chunk.OpGreater:
			if !vm.binaryNumber(func(a, b float64) value.Value { return value.Bool(a > b) }) {
				return ResultRuntimeError
			}
		case chunk.OpLess:
			if !vm.binaryNumber(func(a, b float64) value.Value { return value.Bool(a < b) }) {
				return ResultRuntimeError
			}

		case chunk.OpAdd:
			if !vm.add() {
				return ResultRuntimeError
			}
		case chunk.OpSubtract:
			if !vm.binaryNumber(func(a, b float64) value.Value { return value.Number(a - b) }) {
				return ResultRuntimeError
			}
		case chunk.OpMultiply:
			if !vm.binaryNumber(func(a, b float64) value.Value { return value.Number(a * b) }) {
				return ResultRuntimeError
			}
		case chunk.OpDivide:
			if !vm.binaryNumber(func(a, b float64) value.Value { return value.Number(a / b) }) {
				return ResultRuntimeError
			}

		case chunk.OpNot:
			vm.push(value.Bool(value.IsFalsey(vm.pop())))

		case chunk.OpNegate:
			n, ok := vm.peek(0).(value.Number)
			if !ok {
				vm.runtimeError("Operand must be a number.")
				return ResultRuntimeError
			}
			vm.pop()
			vm.push(-n)

		case chunk.OpPrint:
			fmt.Fprintln(vm.stdout, vm.pop().String())

		case chunk.OpReturn:
			return ResultOK

		default:
			vm.runtimeError("Unknown opcode %d.", op)
			return ResultRuntimeError
		}
	}
}

func (vm *VM) binaryNumber(op func(a, b float64) value.Value) bool {
	bn, bOk := vm.peek(0).(value.Number)
	an, aOk := vm.peek(1).(value.Number)
	if !aOk || !bOk {
		vm.runtimeError("Operands must be numbers.")
		return false
	}
	vm.pop()
	vm.pop()
	vm.push(op(float64(an), float64(bn)))
	return true
}

// add implements OP_ADD's overload: number+number, or string+string
// concatenation. Both operands must be the same one of those two kinds;
// mixing a string and a number is a runtime error, not a coercion.
func (vm *VM) add() bool {
	b := vm.peek(0)
	a := vm.peek(1)

	switch a := a.(type) {
	case value.Number:
		if b, ok := b.(value.Number); ok {
			vm.pop()
			vm.pop()
			vm.push(a + b)
			return true
		}
	case *value.String:
		if b, ok := b.(*value.String); ok {
			vm.pop()
			vm.pop()
			vm.push(vm.interner.CopyString(a.String() + b.String()))
			return true
		}
	}

	vm.runtimeError("Operands must be two numbers or two strings.")
	return false
}

func (vm *VM) runtimeError(format string, args ...any) {
	err := &RuntimeError{
		Line:    vm.chunk.Lines[vm.ip-1],
		Message: fmt.Sprintf(format, args...),
	}
	fmt.Fprintln(vm.stderr, err.Error())
	vm.resetStack()
}
