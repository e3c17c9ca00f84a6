// Package ioloop implements vswitch's driver framing: a length-prefixed
// message stream read from and written to a pair of file descriptors
// (typically stdin/stdout, piped from a packet driver process). Each
// message is a 4-byte header (total size, message type) followed by a
// payload; type 0 carries control data (first the driver's port MAC table,
// then free-form diagnostic text), and any other type N is a frame
// received on port N.
package ioloop

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sys/unix"

	"github.com/vlanswitch/vswitch/engine"
	"github.com/vlanswitch/vswitch/internal/xlog"
)

// headerLen is the size of the size+type prefix on every message.
const headerLen = 4

// maxMessage bounds a single message's total size, matching the 16-bit
// size field's range.
const maxMessage = 1<<16 - 1

// Fatal errors, matching the taxonomy rows that terminate the loop rather
// than drop a single frame. Both are logged at slog.LevelError before Run
// returns them.
var (
	// ErrProtocolFraming is returned when the driver stream's length-prefix
	// framing is malformed (a declared message size smaller than the
	// header, or an outbound message too large for the 16-bit size field).
	ErrProtocolFraming = errors.New("ioloop: malformed message framing")
	// ErrWriteFailure wraps a failed write to the driver's output
	// descriptor — most commonly EPIPE, when the driver on the other end
	// of the pipe is gone. Surfacing it as an error lets Run return
	// cleanly instead of the process dying to SIGPIPE.
	ErrWriteFailure = errors.New("ioloop: write to driver failed")
)

// Loop owns the raw file descriptors and drives frames between them and a
// forwarding engine. It is not safe for concurrent use; vswitch runs one
// Loop per process.
type Loop struct {
	in  int
	out int
	sw  *engine.Switch
	log xlog.Logger

	buf    []byte
	filled int
	macSet bool

	onPortsReady func() error
}

// New returns a Loop reading from inFD and writing to outFD, dispatching
// decoded frames to sw.
func New(inFD, outFD int, sw *engine.Switch, log xlog.Logger) *Loop {
	return &Loop{
		in:  inFD,
		out: outFD,
		sw:  sw,
		log: log,
		buf: make([]byte, maxMessage),
	}
}

// OnPortsReady registers fn to run exactly once, immediately after the
// driver's first control message has populated every port's MAC address —
// before that point, Port.MAC reads as the zero address. Must be called
// before Run.
func (l *Loop) OnPortsReady(fn func() error) {
	l.onPortsReady = fn
}

// Run reads messages from the input descriptor until EOF or a fatal error,
// dispatching each to the engine and writing out whatever it returns.
// A read returning 0 bytes (EOF) ends the loop cleanly with a nil error.
func (l *Loop) Run() error {
	for {
		n, err := readRetryEINTR(l.in, l.buf[l.filled:])
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
		l.filled += n
		if err := l.drain(); err != nil {
			return err
		}
	}
}

// drain processes every complete message currently buffered, then compacts
// the buffer so a partial trailing message starts at offset 0.
func (l *Loop) drain() error {
	off := 0
	for l.filled-off >= headerLen {
		size := int(binary.BigEndian.Uint16(l.buf[off : off+2]))
		typ := int(binary.BigEndian.Uint16(l.buf[off+2 : off+4]))
		if size < headerLen {
			l.log.Error("ioloop: message size smaller than header", slog.Int("size", size))
			return ErrProtocolFraming
		}
		if l.filled-off < size {
			break
		}
		if err := l.dispatch(typ, l.buf[off+headerLen:off+size]); err != nil {
			return err
		}
		off += size
	}
	remaining := l.filled - off
	copy(l.buf, l.buf[off:l.filled])
	l.filled = remaining
	return nil
}

func (l *Loop) dispatch(typ int, payload []byte) error {
	if typ == 0 {
		return l.handleControl(payload)
	}
	return l.handleFrame(typ, payload)
}

// handleControl processes a type-0 message: the first one received carries
// the driver's per-port MAC table (one 6-byte address per port, in port
// order); every subsequent one is free-form diagnostic text, logged and
// otherwise ignored.
func (l *Loop) handleControl(payload []byte) error {
	if !l.macSet {
		const macLen = 6
		for i := 0; i*macLen+macLen <= len(payload); i++ {
			var mac [6]byte
			copy(mac[:], payload[i*macLen:i*macLen+macLen])
			p, err := l.sw.Ports.ByIndex(i + 1)
			if err != nil {
				// The driver reported more MACs than configured ports;
				// ignore the extras rather than fail the whole startup.
				break
			}
			if err := p.SetMAC(mac); err != nil {
				l.log.Warn("ioloop: duplicate MAC control message", slog.Int("port", i+1))
			}
		}
		l.macSet = true
		if l.onPortsReady != nil {
			return l.onPortsReady()
		}
		return nil
	}
	l.log.Debug("ioloop: control message", slog.String("text", string(payload)))
	return nil
}

func (l *Loop) handleFrame(portIdx int, frame []byte) error {
	out, err := l.sw.Ingress(portIdx, frame)
	if err != nil {
		return nil // drop reasons are already logged by the engine
	}
	for _, e := range out {
		if err := l.write(e.Port, e.Frame); err != nil {
			return err
		}
	}
	return nil
}

// write frames payload with the given message type (an egress port index,
// or 0 for a control/diagnostic message) and writes it out in full.
func (l *Loop) write(msgType int, payload []byte) error {
	total := headerLen + len(payload)
	if total > maxMessage {
		l.log.Error("ioloop: outbound message too large", slog.Int("total", total))
		return ErrProtocolFraming
	}
	out := make([]byte, total)
	binary.BigEndian.PutUint16(out[0:2], uint16(total))
	binary.BigEndian.PutUint16(out[2:4], uint16(msgType))
	copy(out[headerLen:], payload)
	if err := writeAll(l.out, out); err != nil {
		l.log.Error("ioloop: write to driver failed", slog.String("err", err.Error()))
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	return nil
}

// Diagnostic emits a type-0 control message carrying a human-readable text
// line, the only user-visible channel the driver side of the pipe ever
// sees. Used for the startup banner.
func (l *Loop) Diagnostic(text string) error {
	return l.write(0, []byte(text))
}

// readRetryEINTR calls unix.Read, retrying transparently on EINTR the way
// a blocking read from a pipe is expected to behave.
func readRetryEINTR(fd int, b []byte) (int, error) {
	for {
		n, err := unix.Read(fd, b)
		if err == unix.EINTR {
			continue
		}
		return n, err
	}
}

// writeAll writes the entirety of b to fd, retrying on EINTR and on short
// writes. The underlying errno (e.g. EPIPE, when the driver on the other
// end of the pipe is gone) is returned as-is; write wraps it as
// ErrWriteFailure before it reaches the caller.
func writeAll(fd int, b []byte) error {
	for len(b) > 0 {
		n, err := unix.Write(fd, b)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}
