// Package chunk implements Vesper's bytecode container: a flat byte
// array of opcodes and operands, a parallel line-number array for error
// reporting, and a constant pool.
package chunk

import "github.com/vesper-lang/vesper/lang/value"

// Op is a single bytecode instruction. Every Op is one byte on the wire;
// some are followed by a one-byte operand (an index into a Chunk's
// Constants).
type Op byte

const (
	OpConstant Op = iota // —→v   push Constants[operand]
	OpNil                // —→v   push Nil
	OpTrue               // —→v   push Bool(true)
	OpFalse              // —→v   push Bool(false)
	OpPop                // v→—   discard top
	OpEqual              // a b→r push Bool(a==b)
	OpGreater            // a b→r number-only comparison
	OpLess               // a b→r number-only comparison
	OpAdd                // a b→r number+number or string+string
	OpSubtract           // a b→r number-only
	OpMultiply           // a b→r number-only
	OpDivide             // a b→r number-only
	OpNot                // v→r   push Bool(isFalsey(v))
	OpNegate             // v→r   number-only
	OpPrint              // v→—   write value + newline
	OpReturn             // —     terminate the current execution unit
)

var opNames = [...]string{
	OpConstant: "OP_CONSTANT",
	OpNil:      "OP_NIL",
	OpTrue:     "OP_TRUE",
	OpFalse:    "OP_FALSE",
	OpPop:      "OP_POP",
	OpEqual:    "OP_EQUAL",
	OpGreater:  "OP_GREATER",
	OpLess:     "OP_LESS",
	OpAdd:      "OP_ADD",
	OpSubtract: "OP_SUBTRACT",
	OpMultiply: "OP_MULTIPLY",
	OpDivide:   "OP_DIVIDE",
	OpNot:      "OP_NOT",
	OpNegate:   "OP_NEGATE",
	OpPrint:    "OP_PRINT",
	OpReturn:   "OP_RETURN",
}

func (op Op) String() string {
	if int(op) < len(opNames) && opNames[op] != "" {
		return opNames[op]
	}
	return "OP_UNKNOWN"
}

// MaxConstants is the largest number of constants a single Chunk can hold;
// OpConstant's operand is one byte.
const MaxConstants = 256

// Chunk is a unit of compiled bytecode: the code stream, a line number
// for every byte of it (for runtime error reporting), and the pool of
// constant Values the code indexes into.
type Chunk struct {
	Code      []byte
	Lines     []int
	Constants []value.Value
}

// Write appends a byte (an opcode or an operand) to the chunk, recording
// line as the source line it came from.
func (c *Chunk) Write(b byte, line int) {
	c.Code = append(c.Code, b)
	c.Lines = append(c.Lines, line)
}

// WriteOp is Write for an Op, saving call sites the byte conversion.
func (c *Chunk) WriteOp(op Op, line int) {
	c.Write(byte(op), line)
}

// AddConstant appends v to the constant pool and returns its index. The
// caller is responsible for checking against MaxConstants before emitting
// an OpConstant that references it.
func (c *Chunk) AddConstant(v value.Value) int {
	c.Constants = append(c.Constants, v)
	return len(c.Constants) - 1
}

// Len reports the number of bytes of code in the chunk.
func (c *Chunk) Len() int { return len(c.Code) }
