package main

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var (
	log atomic.Pointer[zap.Logger]
	nop = zap.NewNop()
)

// logger returns the command logger: a development logger while a command
// runs with --verbose and a no-op logger otherwise.
func logger() *zap.Logger {
	if l := log.Load(); l != nil {
		return l
	}

	return nop
}

func setLogger(l *zap.Logger) {
	log.Store(l)
}
