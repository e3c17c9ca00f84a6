package ethernet

import (
	"bytes"
	"testing"
)

func mustMAC(s string) (m [6]byte) {
	copy(m[:], s)
	return m
}

func TestNewFrameShort(t *testing.T) {
	t.Run("under 14 bytes", func(t *testing.T) {
		_, err := NewFrame(make([]byte, 13))
		if err != ErrShortFrame {
			t.Errorf("expected ErrShortFrame, got %v", err)
		}
	})
	t.Run("tagged but under 18 bytes", func(t *testing.T) {
		buf := make([]byte, 16)
		buf[12], buf[13] = 0x81, 0x00
		_, err := NewFrame(buf)
		if err != ErrShortFrame {
			t.Errorf("expected ErrShortFrame, got %v", err)
		}
	})
	t.Run("exactly 14 bytes untagged ok", func(t *testing.T) {
		_, err := NewFrame(make([]byte, 14))
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
	t.Run("exactly 18 bytes tagged ok", func(t *testing.T) {
		buf := make([]byte, 18)
		buf[12], buf[13] = 0x81, 0x00
		_, err := NewFrame(buf)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestEmitUntaggedRoundTrip(t *testing.T) {
	dst := mustMAC("AAAAAA")
	src := mustMAC("BBBBBB")
	payload := bytes.Repeat([]byte{0x42}, 512)
	buf := EmitUntagged(dst, src, TypeIPv4, payload)
	if len(buf) != sizeHeaderNoVLAN+len(payload) {
		t.Fatalf("unexpected length %d", len(buf))
	}
	frm, err := NewFrame(buf)
	if err != nil {
		t.Fatal(err)
	}
	if frm.HasTag() {
		t.Fatal("expected untagged frame")
	}
	if *frm.Destination() != dst || *frm.Source() != src {
		t.Fatal("addresses not preserved")
	}
	if frm.EtherTypeOrTPID() != TypeIPv4 {
		t.Fatalf("ethertype not preserved: %v", frm.EtherTypeOrTPID())
	}
	if !bytes.Equal(frm.Payload(), payload) {
		t.Fatal("payload not preserved")
	}
}

func TestEmitTaggedAndStripInsert(t *testing.T) {
	dst := mustMAC("AAAAAA")
	src := mustMAC("BBBBBB")
	payload := bytes.Repeat([]byte{0x7}, 64)
	tci := NewVLANTag(1, 0, false)

	tagged := EmitTagged(dst, src, tci, TypeIPv4, payload)
	tfrm, err := NewFrame(tagged)
	if err != nil {
		t.Fatal(err)
	}
	if !tfrm.HasTag() {
		t.Fatal("expected tagged frame")
	}
	if tfrm.TCI().VLANIdentifier() != 1 {
		t.Fatalf("vid mismatch: %v", tfrm.TCI().VLANIdentifier())
	}
	if tfrm.InnerEtherType() != TypeIPv4 {
		t.Fatal("inner ethertype mismatch")
	}
	if !bytes.Equal(tfrm.Payload(), payload) {
		t.Fatal("payload mismatch on tagged frame")
	}

	stripped := StripTag(tfrm)
	sfrm, err := NewFrame(stripped)
	if err != nil {
		t.Fatal(err)
	}
	if sfrm.HasTag() {
		t.Fatal("expected untagged frame after strip")
	}
	if *sfrm.Destination() != dst || *sfrm.Source() != src {
		t.Fatal("addresses not preserved across strip")
	}
	if sfrm.EtherTypeOrTPID() != TypeIPv4 {
		t.Fatal("ethertype not preserved across strip")
	}
	if !bytes.Equal(sfrm.Payload(), payload) {
		t.Fatal("payload not preserved across strip")
	}

	reinserted := InsertTag(sfrm, tci)
	if !bytes.Equal(reinserted, tagged) {
		t.Fatal("insert after strip did not round-trip byte-for-byte")
	}
}

func TestVLANTagBitLayout(t *testing.T) {
	tci := NewVLANTag(1, 0x5, true)
	if tci.VLANIdentifier() != 1 {
		t.Errorf("vid = %d, want 1", tci.VLANIdentifier())
	}
	if tci.PriorityCodePoint() != 0x5 {
		t.Errorf("pcp = %d, want 5", tci.PriorityCodePoint())
	}
	if !tci.DropEligibleIndicator() {
		t.Error("dei not set")
	}
}

func TestIsMulticast(t *testing.T) {
	cases := []struct {
		addr [6]byte
		want bool
	}{
		{[6]byte{0x00, 0, 0, 0, 0, 0}, false},
		{[6]byte{0x01, 0, 0, 0, 0, 0}, true},
		{BroadcastAddr(), true},
		{[6]byte{0x02, 0, 0, 0, 0, 0}, false},
	}
	for _, c := range cases {
		if got := IsMulticast(c.addr); got != c.want {
			t.Errorf("IsMulticast(%v) = %v, want %v", c.addr, got, c.want)
		}
	}
}
