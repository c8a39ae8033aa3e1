// Package htable implements the open-addressed, linear-probed hash table
// used to intern Vesper's strings. It is a bespoke structure rather than a
// general-purpose map because its probe chain and tombstone-deletion
// semantics are load-bearing: string interning (and therefore the VM's
// pointer-identity string equality) depends on them exactly as described
// here, not on any incidental behavior of a generic hash map.
package htable

const maxLoad = 0.75

// Entry is one slot of the table. A slot is empty when Key == nil and Value
// is nil; it is a tombstone (a deleted slot kept alive to preserve probe
// chains) when Key == nil and Value is the tombstone sentinel; otherwise it
// is occupied.
type Entry struct {
	Key   *Key
	Value any
}

// Key is the minimal shape the table needs from an interned string: its
// content and its precomputed hash. It is satisfied by *value.String without
// htable importing the value package, avoiding an import cycle between the
// two (value.String owns the intern table that stores *Key-compatible
// entries of itself).
type Key struct {
	Chars string
	Hash  uint32
}

var tombstone = new(int) // distinguishable sentinel value for a deleted slot

// Table is an open-addressed hash set/map keyed by *Key, used as Vesper's
// string intern set.
type Table struct {
	count    int // occupied slots plus tombstones
	entries  []Entry
	capacity int
}

// Get returns the value associated with key, if key is present.
func (t *Table) Get(key *Key) (any, bool) {
	if t.count == 0 {
		return nil, false
	}
	e := t.findEntry(t.entries, key)
	if e.Key == nil {
		return nil, false
	}
	return e.Value, true
}

// Set associates key with v, growing the table first if needed. It reports
// whether key was not already present.
func (t *Table) Set(key *Key, v any) bool {
	if float64(t.count+1) > float64(t.capacity)*maxLoad {
		t.adjustCapacity(growCapacity(t.capacity))
	}

	e := t.findEntry(t.entries, key)
	isNew := e.Key == nil
	if isNew && e.Value != tombstone {
		t.count++
	}

	e.Key = key
	e.Value = v
	return isNew
}

// Delete removes key from the table, leaving a tombstone in its slot so that
// probe chains through it stay intact. It reports whether key was present.
func (t *Table) Delete(key *Key) bool {
	if t.count == 0 {
		return false
	}
	e := t.findEntry(t.entries, key)
	if e.Key == nil {
		return false
	}
	e.Key = nil
	e.Value = tombstone
	return true
}

// FindString looks up an interned entry by raw content and precomputed
// hash, without requiring an already-interned *Key to compare against, and
// returns the value stored alongside it. This is the lookup path used when
// interning: it lets the caller find out whether a string with this exact
// content is already interned (and get the canonical value back) before
// allocating a new one.
func (t *Table) FindString(chars string, hash uint32) (any, bool) {
	if t.count == 0 {
		return nil, false
	}

	index := hash % uint32(t.capacity)
	for {
		e := &t.entries[index]
		if e.Key == nil {
			if e.Value != tombstone {
				return nil, false
			}
		} else if e.Key.Hash == hash && e.Key.Chars == chars {
			return e.Value, true
		}
		index = (index + 1) % uint32(t.capacity)
	}
}

// Len reports the number of live (non-tombstone) entries. It is exact, not
// an estimate: computed by walking the table, since count conflates live
// entries and tombstones by design (see findEntry).
func (t *Table) Len() int {
	n := 0
	for _, e := range t.entries {
		if e.Key != nil {
			n++
		}
	}
	return n
}

// findEntry probes linearly from key's hash modulo the table's capacity. It
// assumes capacity > 0, which Set guarantees by growing before it calls it,
// and Get and Delete by returning early on an empty table.
func (t *Table) findEntry(entries []Entry, key *Key) *Entry {
	index := key.Hash % uint32(t.capacity)
	var tomb *Entry

	for {
		e := &entries[index]
		switch {
		case e.Key == nil && e.Value != tombstone:
			// empty slot: prefer a tombstone seen earlier on this probe chain so
			// that repeated insert/delete cycles don't grow the chain forever
			if tomb != nil {
				return tomb
			}
			return e
		case e.Key == nil:
			// tombstone
			if tomb == nil {
				tomb = e
			}
		case e.Key == key:
			return e
		}
		index = (index + 1) % uint32(t.capacity)
	}
}

func (t *Table) adjustCapacity(capacity int) {
	entries := make([]Entry, capacity)

	old := t.entries
	oldCap := t.capacity
	t.entries = entries
	t.capacity = capacity
	t.count = 0

	for i := 0; i < oldCap; i++ {
		e := old[i]
		if e.Key == nil {
			continue
		}
		dest := t.findEntry(entries, e.Key)
		dest.Key = e.Key
		dest.Value = e.Value
		t.count++
	}
}

func growCapacity(capacity int) int {
	if capacity < 8 {
		return 8
	}
	return capacity * 2
}
