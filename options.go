// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package futureset

import (
	"unsafe"

	"code.hybscloud.com/futureset/internal/diag"
)

// config holds the settings assembled by a Collection's Option list.
type config struct {
	logger diag.Logger
}

// Option configures a Collection at construction time.
//
// The shape is the teacher's fluent, closure-returning Builder idiom
// trimmed to the one axis this package needs to configure: where lifecycle
// diagnostics go. There is no algorithm to select between (unlike the
// teacher's Builder, which picks among SPSC/MPSC/SPMC/MPMC) because a
// Collection is always MPSC: any number of Task-owned Wakers, exactly one
// poller.
type Option func(*config)

// WithLogger attaches a diagnostics sink. Submit and Close log through it;
// an internal abort does not, and nothing in this package calls the
// logger's Aborted method. The default is diag.Disabled, which drops
// everything.
func WithLogger(l diag.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

func newConfig(opts []Option) config {
	c := config{logger: diag.Disabled()}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// ptrSize is the size of a pointer in bytes.
const ptrSize = int(unsafe.Sizeof(uintptr(0)))

// pad is cache line padding to prevent false sharing between the hot
// atomic fields of node and sharedHead.
type pad [64]byte

// padShort is padding to fill a cache line after an 8-byte field.
type padShort [64 - 8]byte

// padPtr is padding to fill a cache line after a pointer-sized field.
type padPtr [64 - ptrSize]byte
