// Command vswitch is a VLAN-aware Ethernet switch that forwards framed
// traffic between a configured set of ports over its standard input and
// output, learning source MAC addresses per port and applying IEEE 802.1Q
// tag insertion, removal, and membership filtering.
package main

import (
	"os"

	"github.com/vlanswitch/vswitch/cmd/vswitch"
)

func main() {
	if err := vswitch.Execute(); err != nil {
		os.Exit(1)
	}
}
