package ethernet

import "encoding/binary"

// NewFrame parses buf as an Ethernet frame: destination ‖ source ‖
// ethertype-or-TPID, with an optional 802.1Q tag. It returns ErrShortFrame
// if buf is shorter than 14 bytes, or shorter than 18 bytes when the
// ethertype field reads as the 802.1Q TPID (0x8100).
func NewFrame(buf []byte) (Frame, error) {
	var v Validator
	ValidateSize(&v, buf)
	if v.HasError() {
		return Frame{}, v.Err()
	}
	return Frame{buf: buf}, nil
}

// Frame is a view over a byte slice holding an Ethernet II frame, without
// preamble or FCS: the first byte is the destination address. Frame is a
// thin wrapper; all accessors read/write directly into the backing buffer.
type Frame struct {
	buf []byte
}

// RawData returns the underlying slice the Frame was created from.
func (efrm Frame) RawData() []byte { return efrm.buf }

// Destination returns the frame's destination hardware address.
func (efrm Frame) Destination() *[6]byte { return (*[6]byte)(efrm.buf[0:6]) }

// Source returns the frame's source hardware address.
func (efrm Frame) Source() *[6]byte { return (*[6]byte)(efrm.buf[6:12]) }

// EtherTypeOrTPID returns the raw 16-bit field at offset 12: either the
// EtherType/size of an untagged frame, or TypeVLAN if a tag follows.
func (efrm Frame) EtherTypeOrTPID() Type {
	return Type(binary.BigEndian.Uint16(efrm.buf[12:14]))
}

// hasTagField reports whether offset 12 reads as the 802.1Q TPID. It does
// not by itself guarantee the buffer is long enough to hold the tag; NewFrame
// checks length before a Frame is handed out, so HasTag is safe to trust on
// any Frame value in circulation.
func (efrm Frame) hasTagField() bool { return efrm.EtherTypeOrTPID() == TypeVLAN }

// HasTag reports whether this frame carries an 802.1Q tag.
func (efrm Frame) HasTag() bool { return efrm.hasTagField() }

// TCI returns the Tag Control Information field of a tagged frame. On an
// untagged frame it returns the two bytes at offset 14, which are not a TCI
// (and panics if the frame is shorter than 16 bytes); callers must check
// HasTag first.
func (efrm Frame) TCI() VLANTag {
	return VLANTag(binary.BigEndian.Uint16(efrm.buf[14:16]))
}

// InnerEtherType returns the EtherType following the TCI of a tagged frame.
func (efrm Frame) InnerEtherType() Type {
	return Type(binary.BigEndian.Uint16(efrm.buf[16:18]))
}

// HeaderLen returns 14 for an untagged frame, 18 for a tagged one.
func (efrm Frame) HeaderLen() int {
	if efrm.HasTag() {
		return sizeHeaderVLAN
	}
	return sizeHeaderNoVLAN
}

// Payload returns the bytes following the header.
func (efrm Frame) Payload() []byte {
	return efrm.buf[efrm.HeaderLen():]
}

// EmitUntagged writes a 14-byte Ethernet header followed by payload into a
// freshly allocated buffer and returns it.
func EmitUntagged(dst, src [6]byte, ethertype Type, payload []byte) []byte {
	out := make([]byte, sizeHeaderNoVLAN+len(payload))
	copy(out[0:6], dst[:])
	copy(out[6:12], src[:])
	binary.BigEndian.PutUint16(out[12:14], uint16(ethertype))
	copy(out[sizeHeaderNoVLAN:], payload)
	return out
}

// EmitTagged writes an 18-byte Ethernet+802.1Q header followed by payload
// into a freshly allocated buffer and returns it. innerEthertype is the
// EtherType/size field that follows the tag.
func EmitTagged(dst, src [6]byte, tci VLANTag, innerEthertype Type, payload []byte) []byte {
	out := make([]byte, sizeHeaderVLAN+len(payload))
	copy(out[0:6], dst[:])
	copy(out[6:12], src[:])
	binary.BigEndian.PutUint16(out[12:14], uint16(TypeVLAN))
	binary.BigEndian.PutUint16(out[14:16], uint16(tci))
	binary.BigEndian.PutUint16(out[16:18], uint16(innerEthertype))
	copy(out[sizeHeaderVLAN:], payload)
	return out
}

// StripTag returns a freshly allocated untagged frame built from a tagged
// one: destination and source are preserved, the 4-byte 802.1Q shim is
// removed, and the inner EtherType plus payload are preserved verbatim.
func StripTag(efrm Frame) []byte {
	out := make([]byte, len(efrm.buf)-tagLen)
	copy(out[0:12], efrm.buf[0:12])
	copy(out[12:], efrm.buf[sizeHeaderVLAN-2:])
	return out
}

// InsertTag returns a freshly allocated tagged frame built from an untagged
// one: destination and source are preserved, a 4-byte 802.1Q shim carrying
// tci is inserted, and the original EtherType/size plus payload are
// preserved verbatim as the content following the tag.
func InsertTag(efrm Frame, tci VLANTag) []byte {
	out := make([]byte, len(efrm.buf)+tagLen)
	copy(out[0:12], efrm.buf[0:12])
	binary.BigEndian.PutUint16(out[12:14], uint16(TypeVLAN))
	binary.BigEndian.PutUint16(out[14:16], uint16(tci))
	copy(out[sizeHeaderVLAN-2:], efrm.buf[12:])
	return out
}
