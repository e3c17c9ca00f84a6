// Package portspec parses the command-line PORTSPEC grammar used to
// configure a port's VLAN membership:
//
//	NAME                    untagged member of the default VLAN (0)
//	NAME[U:VID]             untagged member of VID
//	NAME[T:VID,VID,...]     tagged member of each listed VID
//
// Grounded on the original switch's argv parsing: one PORTSPEC per
// command-line positional argument, in driver port order starting at 1.
package portspec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vlanswitch/vswitch/ethernet"
	"github.com/vlanswitch/vswitch/port"
)

// ParseError reports a PORTSPEC that failed to parse, identifying which
// positional argument (1-based) caused it.
type ParseError struct {
	Index int
	Arg   string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("portspec #%d (%q): %v", e.Index, e.Arg, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseAll parses a list of PORTSPEC strings in order, assigning 1-based
// port indices, and returns the resulting port.Table. It fails on the
// first invalid spec.
func ParseAll(args []string) (*port.Table, error) {
	ports := make([]*port.Port, 0, len(args))
	for i, arg := range args {
		p, err := Parse(i+1, arg)
		if err != nil {
			return nil, &ParseError{Index: i + 1, Arg: arg, Err: err}
		}
		ports = append(ports, p)
	}
	return port.NewTable(ports), nil
}

// Parse parses one PORTSPEC string into a Port at the given 1-based index.
func Parse(index int, arg string) (*port.Port, error) {
	open := strings.IndexByte(arg, '[')
	if open < 0 {
		p := port.New(index, arg)
		if err := p.SetUntagged(ethernet.DefaultVLAN); err != nil {
			return nil, err
		}
		return p, nil
	}
	name := arg[:open]
	close := strings.IndexByte(arg[open:], ']')
	if close < 0 {
		return nil, fmt.Errorf("includes '[' but lacks ']'")
	}
	close += open
	body := arg[open+1 : close]
	if len(body) < 2 || body[1] != ':' {
		return nil, fmt.Errorf("expected 'T:' or 'U:' after '['")
	}
	kind, spec := body[0], body[2:]

	p := port.New(index, name)
	switch kind {
	case 'T':
		return p, parseTagged(p, spec)
	case 'U':
		return p, parseUntagged(p, spec)
	default:
		return nil, fmt.Errorf("unsupported tagged/untagged specification %q", kind)
	}
}

func parseTagged(p *port.Port, spec string) error {
	for _, tok := range strings.Split(spec, ",") {
		vid, err := parseVID(tok)
		if err != nil {
			return err
		}
		if err := p.AddTagged(vid); err != nil {
			return err
		}
	}
	return nil
}

func parseUntagged(p *port.Port, spec string) error {
	vid, err := parseVID(spec)
	if err != nil {
		return err
	}
	return p.SetUntagged(vid)
}

func parseVID(tok string) (ethernet.VLANID, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(tok), 10, 32)
	if err != nil {
		return ethernet.NoVLAN, fmt.Errorf("expected a number, got %q", tok)
	}
	if n > uint64(ethernet.MaxVLAN) {
		return ethernet.NoVLAN, fmt.Errorf("%d is too large for a 802.1Q VLAN ID", n)
	}
	return ethernet.VLANID(n), nil
}
