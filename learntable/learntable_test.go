package learntable

import "testing"

func TestLearnMoveOnChange(t *testing.T) {
	tbl := New(2)
	mac := [6]byte{1, 2, 3, 4, 5, 6}

	tbl.Learn(mac, 1)
	if p, ok := tbl.Lookup(mac); !ok || p != 1 {
		t.Fatalf("lookup after first learn: %d, %v", p, ok)
	}
	if tbl.Occupied() != 1 {
		t.Fatalf("occupied = %d, want 1", tbl.Occupied())
	}

	// Repeated learn with unchanged port leaves the table unchanged.
	tbl.Learn(mac, 1)
	if tbl.Occupied() != 1 {
		t.Fatalf("re-learning the same port consumed a slot: occupied = %d", tbl.Occupied())
	}

	// Learn with a different port updates in place, consuming no new slot.
	tbl.Learn(mac, 2)
	if tbl.Occupied() != 1 {
		t.Fatalf("move-on-change consumed a slot: occupied = %d", tbl.Occupied())
	}
	if p, ok := tbl.Lookup(mac); !ok || p != 2 {
		t.Fatalf("lookup after move: %d, %v", p, ok)
	}
}

func TestLearnFIFOReplacement(t *testing.T) {
	tbl := New(2)
	macA := [6]byte{0xA, 0, 0, 0, 0, 0}
	macB := [6]byte{0xB, 0, 0, 0, 0, 0}
	macC := [6]byte{0xC, 0, 0, 0, 0, 0}

	tbl.Learn(macA, 1)
	tbl.Learn(macB, 2)
	if tbl.Occupied() != 2 {
		t.Fatalf("occupied = %d, want 2", tbl.Occupied())
	}
	// Table is full; learning a third MAC overwrites the oldest slot (A).
	tbl.Learn(macC, 3)
	if tbl.Occupied() != 2 {
		t.Fatalf("occupied = %d, want 2 (bounded)", tbl.Occupied())
	}
	if _, ok := tbl.Lookup(macA); ok {
		t.Fatal("expected macA to have been evicted by FIFO cursor")
	}
	if p, ok := tbl.Lookup(macB); !ok || p != 2 {
		t.Fatalf("macB should survive: %d, %v", p, ok)
	}
	if p, ok := tbl.Lookup(macC); !ok || p != 3 {
		t.Fatalf("macC should be present: %d, %v", p, ok)
	}
}

func TestLookupUnknownMAC(t *testing.T) {
	tbl := New(4)
	if _, ok := tbl.Lookup([6]byte{9, 9, 9, 9, 9, 9}); ok {
		t.Fatal("expected miss on empty table")
	}
}

// FuzzLearnLookup checks the production cursor-based Table against a
// reference slice-based implementation driven by the same operation
// sequence: a differential model catches cursor/eviction bugs that
// example-based tests miss.
func FuzzLearnLookup(f *testing.F) {
	type refEntry struct {
		mac  [6]byte
		port int
	}

	f.Add(uint8(1), []byte{0x01, 0x01, 0x01})
	f.Add(uint8(3), []byte{0x01, 0x01, 0x02, 0x02, 0x00, 0x01})

	f.Fuzz(func(t *testing.T, capM1 uint8, ops []byte) {
		cap := int(capM1)%8 + 1
		tbl := New(cap)
		var ref []refEntry
		cursor := 0

		nextByte := func() (byte, bool) {
			if len(ops) == 0 {
				return 0, false
			}
			b := ops[0]
			ops = ops[1:]
			return b, true
		}

		refLookup := func(mac [6]byte) (int, bool) {
			for _, e := range ref {
				if e.mac == mac {
					return e.port, true
				}
			}
			return 0, false
		}
		refLearn := func(mac [6]byte, port int) {
			for i := range ref {
				if ref[i].mac == mac {
					ref[i].port = port
					return
				}
			}
			if len(ref) < cap {
				ref = append(ref, refEntry{mac, port})
				cursor = len(ref) % cap
				return
			}
			ref[cursor] = refEntry{mac, port}
			cursor = (cursor + 1) % cap
		}

		for {
			opB, ok := nextByte()
			if !ok {
				break
			}
			macB, ok := nextByte()
			mac := [6]byte{macB}
			if opB&1 == 0 {
				portB, ok2 := nextByte()
				if !ok2 {
					break
				}
				tbl.Learn(mac, int(portB))
				refLearn(mac, int(portB))
			} else {
				if !ok {
					break
				}
				gotPort, gotOK := tbl.Lookup(mac)
				wantPort, wantOK := refLookup(mac)
				if gotOK != wantOK || (gotOK && gotPort != wantPort) {
					t.Fatalf("lookup mismatch for %v: got (%d,%v) want (%d,%v)", mac, gotPort, gotOK, wantPort, wantOK)
				}
			}
		}
	})
}
