package vswitch

import (
	"fmt"
	"log/slog"

	"github.com/vlanswitch/vswitch/engine"
	"github.com/vlanswitch/vswitch/ioloop"
	"github.com/vlanswitch/vswitch/port"
)

func runVswitch(args []string) error {
	f, err := loadEffectiveConfig()
	if err != nil {
		return err
	}
	ports, err := resolvePorts(args, f)
	if err != nil {
		return err
	}
	log := newLogger(f)

	sw := engine.New(ports, f.MACTableSize)
	sw.Log = log

	loop := ioloop.New(stdinFD, stdoutFD, sw, log)
	loop.OnPortsReady(func() error { return announceStartup(loop, ports) })

	log.Info("vswitch starting", slog.Int("ports", ports.Len()), slog.Int("mac_table_size", f.MACTableSize))

	if err := loop.Run(); err != nil {
		log.Error("io loop terminated", slog.String("err", err.Error()))
		return err
	}
	return nil
}

// announceStartup emits one control-channel diagnostic line per port,
// summarizing its name, index, MAC and VLAN membership. Registered as the
// IO loop's OnPortsReady hook, so it fires once the driver's first control
// message has actually populated every port's MAC — never before.
func announceStartup(loop *ioloop.Loop, ports *port.Table) error {
	for _, p := range ports.All() {
		line := fmt.Sprintf("port %d %q mac=%02x:%02x:%02x:%02x:%02x:%02x untagged=%d tagged=%v",
			p.Index, p.Name, p.MAC[0], p.MAC[1], p.MAC[2], p.MAC[3], p.MAC[4], p.MAC[5],
			p.UntaggedVLAN(), p.TaggedVLANs())
		if err := loop.Diagnostic(line); err != nil {
			return err
		}
	}
	return nil
}
