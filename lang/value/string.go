package value

import (
	"hash/fnv"
	"strconv"

	"github.com/vesper-lang/vesper/lang/htable"
)

// String is Vesper's single heap-allocated object kind: an immutable,
// interned string. Two Strings with equal content are always the same
// *String, so the VM implements string equality as pointer comparison
// rather than a byte-for-byte compare.
type String struct {
	htable.Key // Chars, Hash
}

var _ Value = (*String)(nil)

func (s *String) String() string { return s.Chars }
func (*String) Type() string     { return "string" }

// Quoted renders the string the way a REPL or disassembler would, with
// surrounding quotes, as opposed to String which renders the raw content
// the way the PRINT opcode does.
func (s *String) Quoted() string { return strconv.Quote(s.Chars) }

// Interner owns the process-wide (or, in tests, per-VM) string intern
// table. Every *String the compiler or VM ever produces is minted by an
// Interner, which guarantees the interning invariant: equal content always
// resolves to the same *String.
type Interner struct {
	strings htable.Table
	objects []*String // intrusive bookkeeping list, mirrors the VM's object list
}

// NewInterner returns an empty Interner.
func NewInterner() *Interner { return &Interner{} }

// CopyString interns chars, copying it into a new *String if no equal
// string is already interned.
func (in *Interner) CopyString(chars string) *String {
	h := hashString(chars)
	if v, ok := in.strings.FindString(chars, h); ok {
		return v.(*String)
	}

	s := &String{Key: htable.Key{Chars: chars, Hash: h}}
	in.strings.Set(&s.Key, s)
	in.objects = append(in.objects, s)
	return s
}

// TakeString interns chars exactly like CopyString. In the original C
// implementation this variant took ownership of an already-allocated
// buffer, freeing it on an intern hit instead of copying; Go's garbage
// collector makes that distinction moot; the method survives only so
// call sites can document which ownership story they had in mind.
func (in *Interner) TakeString(chars string) *String {
	return in.CopyString(chars)
}

// Len reports how many distinct strings are currently interned.
func (in *Interner) Len() int { return len(in.objects) }

func hashString(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s)) // hash.Hash.Write never fails
	return h.Sum32()
}
