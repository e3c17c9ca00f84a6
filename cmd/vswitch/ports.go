package vswitch

import (
	"fmt"

	"github.com/spf13/cobra"
)

// portsCmd parses the same PORTSPEC argv a real run would take (or the
// config file's static ports list) and prints the resulting table, without
// starting the IO loop. Useful for validating a topology before wiring it
// to a real driver.
var portsCmd = &cobra.Command{
	Use:   "ports [PORTSPEC...]",
	Short: "Parse and print a port topology without starting the switch",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := loadEffectiveConfig()
		if err != nil {
			return err
		}
		ports, err := resolvePorts(args, f)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, p := range ports.All() {
			fmt.Fprintf(out, "%d\t%s\tuntagged=%d\ttagged=%v\n",
				p.Index, p.Name, p.UntaggedVLAN(), p.TaggedVLANs())
		}
		return nil
	},
}
