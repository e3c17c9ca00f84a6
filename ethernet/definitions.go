package ethernet

import (
	"errors"
	"strconv"
)

const (
	sizeHeaderNoVLAN = 14
	sizeHeaderVLAN   = 18
	// tagLen is the size in bytes of the inserted 802.1Q shim (tpid ‖ tci).
	tagLen = 4
)

// AppendAddr appends the text representation of the hardware address to the destination buffer.
func AppendAddr(dst []byte, hwAddr [6]byte) []byte {
	for i, b := range hwAddr {
		if i != 0 {
			dst = append(dst, ':')
		}
		if b < 16 {
			dst = append(dst, '0')
		}
		dst = strconv.AppendUint(dst, uint64(b), 16)
	}
	return dst
}

// BroadcastAddr returns the all 0xff's broadcast hardware/MAC/EUI/OUI address.
func BroadcastAddr() [6]byte {
	return [6]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
}

// IsMulticast reports whether addr has the multicast/broadcast bit set, i.e.
// the low bit of its first octet. The all-ones broadcast address tests
// multicast under this rule, as required by the learning table contract:
// such addresses are never learned and never looked up.
func IsMulticast(addr [6]byte) bool { return addr[0]&1 != 0 }

// IsBroadcast reports whether addr is the all-ones broadcast address.
func IsBroadcast(addr [6]byte) bool { return addr == BroadcastAddr() }

//go:generate stringer -type=Type -linecomment -output stringers.go .

type Type uint16

// IsSize returns true if the EtherType is actually the size of the payload
// and should NOT be interpreted as an EtherType.
func (et Type) IsSize() bool { return et <= 1500 }

// Ethernet type flags
const (
	TypeIPv4                Type = 0x0800 // IPv4
	TypeARP                 Type = 0x0806 // ARP
	TypeWakeOnLAN           Type = 0x0842 // wake on LAN
	TypeTRILL               Type = 0x22F3 // TRILL
	TypeDECnetPhase4        Type = 0x6003 // DECnetPhase4
	TypeRARP                Type = 0x8035 // RARP
	TypeAppleTalk           Type = 0x809B // AppleTalk
	TypeAARP                Type = 0x80F3 // AARP
	TypeIPX1                Type = 0x8137 // IPx1
	TypeIPX2                Type = 0x8138 // IPx2
	TypeQNXQnet             Type = 0x8204 // QNXQnet
	TypeIPv6                Type = 0x86DD // IPv6
	TypeEthernetFlowControl Type = 0x8808 // EthernetFlowCtl
	TypeIEEE802_3           Type = 0x8809 // IEEE802.3
	TypeCobraNet            Type = 0x8819 // CobraNet
	TypeMPLSUnicast         Type = 0x8847 // MPLS Unicast
	TypeMPLSMulticast       Type = 0x8848 // MPLS Multicast
	TypePPPoEDiscovery      Type = 0x8863 // PPPoE discovery
	TypePPPoESession        Type = 0x8864 // PPPoE session
	TypeJumboFrames         Type = 0x8870 // jumbo frames
	TypeHomePlug1_0MME      Type = 0x887B // home plug 1 0mme
	TypeIEEE802_1X          Type = 0x888E // IEEE 802.1x
	TypePROFINET            Type = 0x8892 // profinet
	TypeHyperSCSI           Type = 0x889A // hyper SCSI
	TypeAoE                 Type = 0x88A2 // AoE
	TypeEtherCAT            Type = 0x88A4 // EtherCAT
	TypeEthernetPowerlink   Type = 0x88AB // Ethernet powerlink
	TypeLLDP                Type = 0x88CC // LLDP
	TypeSERCOS3             Type = 0x88CD // SERCOS3
	TypeHomePlugAVMME       Type = 0x88E1 // home plug AVMME
	TypeMRP                 Type = 0x88E3 // MRP
	TypeIEEE802_1AE         Type = 0x88E5 // IEEE 802.1ae
	TypeIEEE1588            Type = 0x88F7 // IEEE 1588
	TypeIEEE802_1ag         Type = 0x8902 // IEEE 802.1ag
	TypeFCoE                Type = 0x8906 // FCoE
	TypeFCoEInit            Type = 0x8914 // FCoE init
	TypeRoCE                Type = 0x8915 // RoCE
	TypeCTP                 Type = 0x9000 // CTP
	TypeVeritasLLT          Type = 0xCAFE // Veritas LLT
	TypeVLAN                Type = 0x8100 // VLAN
	TypeServiceVLAN         Type = 0x88a8 // service VLAN
)

// VLANID is a 12-bit VLAN identifier. Valid identifiers lie in [0, MaxVLAN];
// NoVLAN is the distinguished sentinel for "no membership".
type VLANID int32

const (
	// NoVLAN means "none/absent": a port with no untagged membership, or
	// (internally) an ingress classification that could not be determined.
	NoVLAN VLANID = -1
	// DefaultVLAN is assumed for any port spec naming no membership.
	DefaultVLAN VLANID = 0
	// MaxVLAN is the largest VLAN identifier a PORTSPEC may name and the
	// largest number of tagged memberships a single port may hold.
	MaxVLAN VLANID = 4092
)

// Valid reports whether v is a concrete (non-sentinel) VLAN identifier in
// [0, MaxVLAN].
func (v VLANID) Valid() bool { return v >= 0 && v <= MaxVLAN }

// VLANTag holds priority (PCP), drop-eligible indicator (DEI) and VLAN ID
// bits of the TCI field of an 802.1Q tag, per IEEE 802.1Q: bits 15-13 PCP,
// bit 12 DEI, bits 11-0 VID.
type VLANTag uint16

// NewVLANTag packs a VLAN identifier and PCP/DEI bits into a VLANTag.
// vswitch's own tag insertion always calls this with pcp=0, dei=false
// (see design note on TCI bits in SPEC_FULL.md §9.4); preserving the
// original PCP/DEI on a tagged-to-tagged forward is done by copying the
// ingress TCI verbatim instead of calling NewVLANTag.
func NewVLANTag(vid VLANID, pcp uint8, dei bool) VLANTag {
	t := uint16(vid) & 0x0fff
	t |= uint16(pcp&0x7) << 13
	if dei {
		t |= 1 << 12
	}
	return VLANTag(t)
}

// DropEligibleIndicator returns true if the DEI bit is set.
// DEI may be used separately or in conjunction with PCP to indicate frames eligible to be dropped in the presence of congestion.
func (vt VLANTag) DropEligibleIndicator() bool { return vt&(1<<12) != 0 }

// PriorityCodePoint is 3-bit field which refers to the IEEE 802.1p class of service (CoS) and maps to the frame priority level. Different PCP values can be used to prioritize different classes of traffic
func (vt VLANTag) PriorityCodePoint() uint8 { return uint8(vt>>13) & 0b111 }

// VLANIdentifier is the 12 bit field which specifies which VLAN the frame belongs to.
func (vt VLANTag) VLANIdentifier() VLANID { return VLANID(vt & 0x0fff) }

// ErrShortFrame is returned when a buffer is too small to hold a
// well-formed Ethernet header: 14 bytes untagged, 18 bytes tagged.
var ErrShortFrame = errors.New("ethernet: frame shorter than header")
