// Package disasm renders a chunk.Chunk as human-readable pseudo-assembly,
// one instruction per line, in the style the teacher's own bytecode
// disassembler uses for debugging: offset, source line (or "|" when it
// repeats the previous line), mnemonic, and any operand.
package disasm

import (
	"fmt"
	"io"

	"github.com/vesper-lang/vesper/lang/chunk"
)

// Disassemble writes every instruction in ch to w, preceded by a name
// header, the same shape a "dump this chunk" debug command would print.
func Disassemble(w io.Writer, ch *chunk.Chunk, name string) {
	fmt.Fprintf(w, "== %s ==\n", name)
	for offset := 0; offset < ch.Len(); {
		offset = DisassembleInstruction(w, ch, offset)
	}
}

// DisassembleInstruction writes the single instruction at offset and
// returns the offset of the next one.
func DisassembleInstruction(w io.Writer, ch *chunk.Chunk, offset int) int {
	fmt.Fprintf(w, "%04d ", offset)
	if offset > 0 && ch.Lines[offset] == ch.Lines[offset-1] {
		fmt.Fprint(w, "   | ")
	} else {
		fmt.Fprintf(w, "%4d ", ch.Lines[offset])
	}

	op := chunk.Op(ch.Code[offset])
	switch op {
	case chunk.OpConstant:
		return constantInstruction(w, ch, op, offset)
	case chunk.OpNil, chunk.OpTrue, chunk.OpFalse, chunk.OpPop,
		chunk.OpEqual, chunk.OpGreater, chunk.OpLess,
		chunk.OpAdd, chunk.OpSubtract, chunk.OpMultiply, chunk.OpDivide,
		chunk.OpNot, chunk.OpNegate, chunk.OpPrint, chunk.OpReturn:
		return simpleInstruction(w, op, offset)
	default:
		fmt.Fprintf(w, "Unknown opcode %d\n", op)
		return offset + 1
	}
}

func simpleInstruction(w io.Writer, op chunk.Op, offset int) int {
	fmt.Fprintln(w, op.String())
	return offset + 1
}

func constantInstruction(w io.Writer, ch *chunk.Chunk, op chunk.Op, offset int) int {
	idx := ch.Code[offset+1]
	fmt.Fprintf(w, "%-16s %4d '%s'\n", op.String(), idx, ch.Constants[idx].String())
	return offset + 2
}
