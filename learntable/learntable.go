// Package learntable implements vswitch's MAC learning table: a bounded,
// fixed-capacity association from MAC address to egress port index,
// maintained from observed frame source addresses.
//
// The storage shape is a flat array with a write cursor that advances
// modulo capacity, the same bounded-ring approach as a small fixed-size
// cache; unlike a plain ring cache, Learn performs move-on-change in place
// rather than always pushing a fresh entry, per the learning table's
// contract: a MAC never consumes a second slot just because its port
// changed.
package learntable

// entry is one occupied-or-empty slot. used distinguishes an empty slot
// from one holding the zero MAC, which is a valid (if unusual) address.
type entry struct {
	mac  [6]byte
	port int
	used bool
}

// Table is a fixed-capacity MAC-to-port map with FIFO slot replacement.
// The zero value is not usable; construct with New.
type Table struct {
	slots  []entry
	cursor int
}

// DefaultCapacity is the learning table size used when none is configured,
// matching the original switch's NBR_ENTRIES.
const DefaultCapacity = 8

// New returns a Table with room for capacity entries. It panics if capacity
// is not positive.
func New(capacity int) *Table {
	if capacity <= 0 {
		panic("learntable: capacity must be > 0")
	}
	return &Table{slots: make([]entry, capacity)}
}

// Len returns the learning table's capacity (its slot count, not how many
// are currently occupied).
func (t *Table) Len() int { return len(t.slots) }

// Learn records that mac was last seen arriving on port. If mac is already
// present, its stored port is updated in place and no slot is consumed or
// reordered. Otherwise mac is written into the slot at the write cursor,
// overwriting whatever was previously there, and the cursor advances modulo
// capacity. Callers must only pass unicast MACs; see the forwarding engine's
// source-sanity check (multicast/broadcast sources are dropped before ever
// reaching Learn).
func (t *Table) Learn(mac [6]byte, port int) {
	for i := range t.slots {
		s := &t.slots[i]
		if s.used && s.mac == mac {
			s.port = port
			return
		}
	}
	t.slots[t.cursor] = entry{mac: mac, port: port, used: true}
	t.cursor = (t.cursor + 1) % len(t.slots)
}

// Lookup returns the port last learned for mac and true, or (0, false) if
// mac has never been learned. Lookup performs a linear scan over occupied
// slots; callers must not pass multicast/broadcast MACs — the learning
// table never stores or reports a match for one, since the forwarding
// engine always floods such destinations instead of consulting Lookup.
func (t *Table) Lookup(mac [6]byte) (port int, ok bool) {
	for i := range t.slots {
		s := &t.slots[i]
		if s.used && s.mac == mac {
			return s.port, true
		}
	}
	return 0, false
}

// Occupied returns the number of slots currently holding an entry. Always
// <= Len(); exposed for the bounded-learning invariant's tests.
func (t *Table) Occupied() int {
	n := 0
	for i := range t.slots {
		if t.slots[i].used {
			n++
		}
	}
	return n
}
