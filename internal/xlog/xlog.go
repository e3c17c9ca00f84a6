// Package xlog provides the small logging shim shared by vswitch's
// packages: a struct embedding a *slog.Logger with level-named methods,
// so call sites read "s.Log.Debug(...)" instead of threading context.Background
// and a level constant through every call.
package xlog

import (
	"context"
	"encoding/binary"
	"log/slog"
)

// Logger wraps an optional *slog.Logger. A zero Logger discards everything,
// so packages can embed one unconditionally without a nil check at each
// call site.
type Logger struct {
	Log *slog.Logger
}

func (l Logger) Error(msg string, attrs ...slog.Attr) { l.log(slog.LevelError, msg, attrs...) }
func (l Logger) Warn(msg string, attrs ...slog.Attr)  { l.log(slog.LevelWarn, msg, attrs...) }
func (l Logger) Info(msg string, attrs ...slog.Attr)  { l.log(slog.LevelInfo, msg, attrs...) }
func (l Logger) Debug(msg string, attrs ...slog.Attr) { l.log(slog.LevelDebug, msg, attrs...) }

func (l Logger) log(level slog.Level, msg string, attrs ...slog.Attr) {
	if l.Log == nil {
		return
	}
	l.Log.LogAttrs(context.Background(), level, msg, attrs...)
}

// MAC returns a slog.Attr for a 6-byte hardware address packed into a
// uint64, avoiding the string allocation a naive net.HardwareAddr.String()
// call would cost on a hot path that may log on every dropped frame.
func MAC(key string, addr [6]byte) slog.Attr {
	var buf [8]byte
	copy(buf[2:], addr[:])
	return slog.Uint64(key, binary.BigEndian.Uint64(buf[:]))
}
