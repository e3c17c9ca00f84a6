// Package engine implements vswitch's forwarding engine: per spec this is
// the component that, given an ingress frame and port, decides the egress
// port set and the per-egress tag transformation, consulting and updating
// the MAC learning table along the way.
//
// The engine is stateless apart from the learning table: it never buffers a
// frame or reorders emissions relative to the order Ingress is called in.
// Ingress follows the familiar parse-validate-dispatch shape of a link
// layer demultiplexer, generalized from "route to one registered handler"
// to "flood to every VLAN-matching port, or direct to one if learned".
package engine

import (
	"errors"
	"log/slog"

	"github.com/vlanswitch/vswitch/ethernet"
	"github.com/vlanswitch/vswitch/internal/xlog"
	"github.com/vlanswitch/vswitch/learntable"
	"github.com/vlanswitch/vswitch/port"
)

// Drop reasons, per spec.md §7's error taxonomy. The engine logs the drop at
// debug level and returns one of these from Ingress when a frame is silently
// dropped; the IO loop emits nothing for it.
var (
	ErrShortFrame       = ethernet.ErrShortFrame
	ErrBadSource        = errors.New("engine: source MAC is multicast/broadcast")
	ErrVlanMismatch     = errors.New("engine: ingress port is not a member of the frame's VLAN")
	ErrCrossVlanLearned = errors.New("engine: destination learned on a port outside the ingress VLAN")
)

// Egress is one outbound emission: the transformed frame bytes and the
// 1-based port index to send them on.
type Egress struct {
	Port  int
	Frame []byte
}

// Switch is the forwarding engine's aggregate state: the port table (fixed
// at startup) and the MAC learning table (mutated on every forwarded
// frame). A Switch is owned by the IO loop and must not be shared across
// goroutines without external synchronization — see SPEC_FULL.md §5.
type Switch struct {
	Ports *port.Table
	Learn *learntable.Table
	Log   xlog.Logger
}

// New returns a Switch over the given port table, with a learning table of
// the given capacity.
func New(ports *port.Table, learnCapacity int) *Switch {
	return &Switch{
		Ports: ports,
		Learn: learntable.New(learnCapacity),
	}
}

// Ingress processes one frame received on port pIn, per spec.md §4.4
// steps 1-8. On success it returns the set of transformed frames to emit
// and their egress ports, in no particular order. On a drop it returns a
// nil slice and one of this package's sentinel errors, or
// port.ErrIndexOutOfRange when pIn names no configured port; the caller must not
// treat a drop as fatal — only propagate it to logging.
func (s *Switch) Ingress(pIn int, frame []byte) ([]Egress, error) {
	efrm, err := ethernet.NewFrame(frame)
	if err != nil {
		s.Log.Debug("engine: short frame", slog.Int("port", pIn), slog.Int("len", len(frame)))
		return nil, ErrShortFrame
	}

	src, dst := *efrm.Source(), *efrm.Destination()
	if ethernet.IsMulticast(src) {
		s.Log.Debug("engine: multicast source dropped", slog.Int("port", pIn), xlog.MAC("src", src))
		return nil, ErrBadSource
	}
	// Ordering guarantee (spec.md §4.3): learning the source completes
	// before the destination lookup below, so a loopback-addressed frame
	// (src == dst) sees its own just-learned port.
	s.Learn.Learn(src, pIn)

	ingressPort, err := s.Ports.ByIndex(pIn)
	if err != nil {
		s.Log.Debug("engine: unknown ingress port", slog.Int("port", pIn))
		return nil, err
	}

	vIn, err := s.ingressVLAN(ingressPort, efrm)
	if err != nil {
		s.Log.Debug("engine: vlan mismatch", slog.Int("port", pIn), xlog.MAC("src", src), xlog.MAC("dst", dst))
		return nil, err
	}

	egressPorts := s.egressSet(pIn, vIn)

	if !ethernet.IsMulticast(dst) {
		if learnedPort, ok := s.Learn.Lookup(dst); ok {
			target, inSet := findPort(egressPorts, learnedPort)
			if !inSet {
				s.Log.Debug("engine: cross-vlan learned destination dropped",
					slog.Int("port", pIn), xlog.MAC("dst", dst), slog.Int("learned_port", learnedPort))
				return nil, ErrCrossVlanLearned
			}
			egressPorts = []*port.Port{target}
		}
		// Unknown unicast: fall through to flooding egressPorts.
	}

	out := make([]Egress, 0, len(egressPorts))
	for _, q := range egressPorts {
		out = append(out, Egress{Port: q.Index, Frame: s.transform(efrm, vIn, q)})
	}
	return out, nil
}

// ingressVLAN determines the ingress VLAN of a frame per spec.md §4.4 step
// 4: a tagged frame's VID, validated against the ingress port's tagged
// membership; or an untagged frame's port-configured untagged VLAN.
func (s *Switch) ingressVLAN(ingress *port.Port, efrm ethernet.Frame) (ethernet.VLANID, error) {
	if efrm.HasTag() {
		vIn := efrm.TCI().VLANIdentifier()
		if !ingress.IsTaggedMember(vIn) {
			return ethernet.NoVLAN, ErrVlanMismatch
		}
		return vIn, nil
	}
	vIn := ingress.UntaggedVLAN()
	if vIn == ethernet.NoVLAN {
		return ethernet.NoVLAN, ErrVlanMismatch
	}
	return vIn, nil
}

// egressSet returns every port other than pIn that is a tagged or untagged
// member of vIn, per spec.md §4.4 step 5.
func (s *Switch) egressSet(pIn int, vIn ethernet.VLANID) []*port.Port {
	all := s.Ports.All()
	set := make([]*port.Port, 0, len(all))
	for _, p := range all {
		if p.Index == pIn {
			continue
		}
		if p.IsTaggedMember(vIn) || p.IsUntaggedMember(vIn) {
			set = append(set, p)
		}
	}
	return set
}

// transform applies the per-egress tag transformation of spec.md §4.4 step
// 7, returning a freshly built frame for egress port q.
func (s *Switch) transform(efrm ethernet.Frame, vIn ethernet.VLANID, q *port.Port) []byte {
	egressTagged := q.IsTaggedMember(vIn)
	switch {
	case egressTagged && efrm.HasTag():
		// Tagged -> tagged: forward verbatim, original TCI preserved.
		return efrm.RawData()
	case egressTagged && !efrm.HasTag():
		// Untagged -> tagged: insert a shim with VID=vIn, PCP=0, DEI=0.
		return ethernet.InsertTag(efrm, ethernet.NewVLANTag(vIn, 0, false))
	case !egressTagged && efrm.HasTag():
		// Tagged -> untagged: strip the shim.
		return ethernet.StripTag(efrm)
	default:
		// Untagged -> untagged: forward verbatim.
		return efrm.RawData()
	}
}

func findPort(set []*port.Port, index int) (*port.Port, bool) {
	for _, p := range set {
		if p.Index == index {
			return p, true
		}
	}
	return nil, false
}
