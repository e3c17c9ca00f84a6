// Package port implements vswitch's port configuration model: per-port
// identity (index, MAC, name) and IEEE 802.1Q VLAN membership (one untagged
// VLAN plus an ordered set of tagged VLANs), held in a fixed-size Table
// built once at startup from the configured port list.
package port

import (
	"errors"
	"strings"

	"github.com/vlanswitch/vswitch/ethernet"
)

// MaxTaggedVLANs is the maximum number of tagged VLANs a single port may
// belong to: the same bound as ethernet.MaxVLAN (4092).
const MaxTaggedVLANs = int(ethernet.MaxVLAN)

var (
	// ErrDuplicateUntagged is returned when a Port is given a second
	// untagged membership; a port has at most one.
	ErrDuplicateUntagged = errors.New("port: already has an untagged VLAN")
	// ErrDuplicateTagged is returned when a VLAN is added twice to the
	// same port's tagged membership set.
	ErrDuplicateTagged = errors.New("port: VLAN already tagged on this port")
	// ErrTooManyTagged is returned when a port's tagged membership set
	// would exceed MaxTaggedVLANs.
	ErrTooManyTagged = errors.New("port: too many tagged VLANs")
	// ErrUntaggedConflictsTagged is returned when a VLAN is requested as
	// untagged membership while already present in the tagged set, or
	// vice versa: a port never has both forms of membership in one VLAN.
	ErrUntaggedConflictsTagged = errors.New("port: VLAN already present as the other membership kind")
	// ErrMACAlreadySet is returned by SetMAC on a port whose MAC has
	// already been filled in; the driver's startup message sets it
	// exactly once.
	ErrMACAlreadySet = errors.New("port: MAC already set")
	// ErrIndexOutOfRange is returned by Table.ByIndex for an index outside
	// [1, N].
	ErrIndexOutOfRange = errors.New("port: index out of range")
	// ErrNotFound is returned by Table.ByName when no port matches.
	ErrNotFound = errors.New("port: no such name")
)

// Port holds one switch port's identity and VLAN membership.
type Port struct {
	// Index is the 1-based index matching the driver's channel numbering.
	Index int
	// Name is a human-readable label used only for diagnostics.
	Name string
	// MAC is discovered once from the driver's initial control message.
	MAC [6]byte
	// macSet distinguishes a zero MAC that hasn't been filled in yet from
	// a legitimately all-zero hardware address.
	macSet bool

	untaggedVLAN ethernet.VLANID
	taggedVLANs  []ethernet.VLANID
}

// New returns a Port at the given 1-based index with no VLAN membership
// configured yet (UntaggedVLAN returns ethernet.NoVLAN).
func New(index int, name string) *Port {
	return &Port{Index: index, Name: name, untaggedVLAN: ethernet.NoVLAN}
}

// UntaggedVLAN returns the VLAN this port participates in untagged, or
// ethernet.NoVLAN if it has no untagged membership.
func (p *Port) UntaggedVLAN() ethernet.VLANID { return p.untaggedVLAN }

// TaggedVLANs returns the ordered, duplicate-free set of VLANs this port
// participates in tagged. The returned slice must not be mutated by callers.
func (p *Port) TaggedVLANs() []ethernet.VLANID { return p.taggedVLANs }

// IsTaggedMember reports whether the port is a tagged member of vid.
func (p *Port) IsTaggedMember(vid ethernet.VLANID) bool {
	for _, v := range p.taggedVLANs {
		if v == vid {
			return true
		}
	}
	return false
}

// IsUntaggedMember reports whether the port is the untagged member of vid.
func (p *Port) IsUntaggedMember(vid ethernet.VLANID) bool {
	return p.untaggedVLAN == vid
}

// SetUntagged sets the port's untagged VLAN membership. It fails if the
// port already has an untagged membership, or if vid is already present in
// the tagged set.
func (p *Port) SetUntagged(vid ethernet.VLANID) error {
	if p.untaggedVLAN != ethernet.NoVLAN {
		return ErrDuplicateUntagged
	}
	if p.IsTaggedMember(vid) {
		return ErrUntaggedConflictsTagged
	}
	p.untaggedVLAN = vid
	return nil
}

// AddTagged adds vid to the port's tagged membership set, in insertion
// order. It fails on a duplicate, on exceeding MaxTaggedVLANs, or if vid is
// already the port's untagged membership.
func (p *Port) AddTagged(vid ethernet.VLANID) error {
	if p.untaggedVLAN == vid {
		return ErrUntaggedConflictsTagged
	}
	if p.IsTaggedMember(vid) {
		return ErrDuplicateTagged
	}
	if len(p.taggedVLANs) >= MaxTaggedVLANs {
		return ErrTooManyTagged
	}
	p.taggedVLANs = append(p.taggedVLANs, vid)
	return nil
}

// SetMAC fills in the port's hardware address. It may be called exactly
// once, before any frame is processed; a second call returns
// ErrMACAlreadySet.
func (p *Port) SetMAC(mac [6]byte) error {
	if p.macSet {
		return ErrMACAlreadySet
	}
	p.MAC = mac
	p.macSet = true
	return nil
}

// Table holds all configured ports, fixed in count at startup.
type Table struct {
	ports []*Port
}

// NewTable builds a Table from ports already constructed and indexed 1..N
// in order. It does not validate indices; callers build the slice via
// NewTable's companion constructors in the portspec package.
func NewTable(ports []*Port) *Table {
	return &Table{ports: ports}
}

// Len returns the number of configured ports.
func (t *Table) Len() int { return len(t.ports) }

// ByIndex returns the port at the given 1-based index.
func (t *Table) ByIndex(index int) (*Port, error) {
	if index < 1 || index > len(t.ports) {
		return nil, ErrIndexOutOfRange
	}
	return t.ports[index-1], nil
}

// ByName performs a case-insensitive linear scan for a port with the given
// name. Used only by diagnostics/CLI, never on the frame-forwarding path.
func (t *Table) ByName(name string) (*Port, error) {
	for _, p := range t.ports {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return nil, ErrNotFound
}

// All returns every configured port, indexed 1..N in order. The returned
// slice must not be mutated by callers.
func (t *Table) All() []*Port { return t.ports }
