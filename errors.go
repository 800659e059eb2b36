// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package futureset

import "errors"

// ErrCollectionClosed is returned by Submit once Close has been called.
//
// The original Rust type has no equivalent: calling push on a value already
// consumed by drop does not type-check there. Go's garbage-collected
// Collection[T] stays a reachable value after Close, so "submit after
// close" is a real runtime mistake worth naming rather than corrupting the
// owner set silently.
var ErrCollectionClosed = errors.New("futureset: collection is closed")

// abort terminates the process unconditionally, for invariant violations
// that indicate memory unsoundness if execution continued (reference-count
// overflow, use-after-release). The panic is raised on a goroutine of its
// own, which no recover in caller code can reach, while the calling
// goroutine blocks so it never continues past the violation.
func abort(msg string) {
	go func() {
		panic("futureset: abort: " + msg)
	}()
	select {}
}
