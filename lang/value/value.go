// Package value implements Vesper's runtime value representation: a tagged
// union of nil, boolean, number, and interned-string cases.
package value

import "fmt"

// Value is the interface implemented by every runtime value the VM
// manipulates. It intentionally carries no behavior beyond printing and
// naming its type — arithmetic and comparison are implemented by the VM, and
// equality by Equal, as explicit type switches, not polymorphic dispatch,
// because the core language only ever needs exactly four cases.
type Value interface {
	// String returns the value's canonical textual form, the same form the
	// PRINT opcode writes to stdout.
	String() string
	// Type names the value's runtime type.
	Type() string
}

// Nil is the type of the language's single nil value.
type Nil struct{}

// NilValue is the sole instance of Nil.
var NilValue = Nil{}

var _ Value = Nil{}

func (Nil) String() string { return "nil" }
func (Nil) Type() string   { return "nil" }

// Bool is the type of boolean values.
type Bool bool

var _ Value = Bool(false)

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}
func (Bool) Type() string { return "boolean" }

// Number is the type of the language's one numeric type, an IEEE-754
// double-precision float.
type Number float64

var _ Value = Number(0)

func (n Number) String() string { return fmt.Sprintf("%g", float64(n)) }
func (Number) Type() string     { return "number" }

// IsFalsey reports whether v is one of the two falsey values: nil or false.
// Every other value, including the number zero, is truthy.
func IsFalsey(v Value) bool {
	switch v := v.(type) {
	case Nil:
		return true
	case Bool:
		return !bool(v)
	default:
		return false
	}
}

// Equal implements the language's total equality relation. Values of
// different runtime types are never equal. Numbers compare by IEEE-754
// equality (so NaN != NaN). Strings compare by identity, which the
// *String interning invariant makes equivalent to content equality.
func Equal(a, b Value) bool {
	switch a := a.(type) {
	case Nil:
		_, ok := b.(Nil)
		return ok
	case Bool:
		bb, ok := b.(Bool)
		return ok && a == bb
	case Number:
		bn, ok := b.(Number)
		return ok && a == bn
	case *String:
		bs, ok := b.(*String)
		return ok && a == bs
	default:
		return false
	}
}
