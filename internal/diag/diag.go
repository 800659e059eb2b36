// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package diag wires a logiface/stumpy logger into the lifecycle events a
// Collection exposes: task submission and closing. Logger also has an
// Aborted event, which the Collection never calls. It is deliberately
// narrow — there is no request/response tracing here, only the handful of
// events a caller debugging a stuck poll loop would want.
package diag

import (
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// Logger is the sink a Collection logs lifecycle events through.
type Logger interface {
	Submitted(nodeCount int)
	Closed(drainedCount int)
	Aborted(reason string)
}

// disabled is the default Logger: every call is a no-op.
type disabled struct{}

func (disabled) Submitted(int)  {}
func (disabled) Closed(int)     {}
func (disabled) Aborted(string) {}

// Disabled returns a Logger that drops everything.
func Disabled() Logger { return disabled{} }

// stumpyLogger adapts a *logiface.Logger[*stumpy.Event] to Logger.
type stumpyLogger struct {
	l *logiface.Logger[*stumpy.Event]
}

// NewStumpy builds a Logger backed by stumpy, configured only by opts and
// writing to stumpy's default output. Grounded on logiface-stumpy's
// example_test.go construction pattern (stumpy.L.New with WithStumpy).
func NewStumpy(opts ...stumpy.Option) Logger {
	return stumpyLogger{l: stumpy.L.New(stumpy.L.WithStumpy(opts...))}
}

// NewStumpyWriter builds a stumpy-backed Logger that writes through the
// logiface writer w; when w is nil it returns NewStumpy().
func NewStumpyWriter(w logiface.Writer[*stumpy.Event]) Logger {
	if w == nil {
		return NewStumpy()
	}
	return stumpyLogger{l: stumpy.L.New(stumpy.L.WithWriter(w))}
}

func (s stumpyLogger) Submitted(nodeCount int) {
	s.l.Info().Int64(`live_tasks`, int64(nodeCount)).Log(`task submitted`)
}

func (s stumpyLogger) Closed(drainedCount int) {
	s.l.Info().Int64(`drained`, int64(drainedCount)).Log(`collection closed`)
}

func (s stumpyLogger) Aborted(reason string) {
	s.l.Err().Str(`reason`, reason).Log(`collection aborted`)
}
