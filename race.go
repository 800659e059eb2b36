// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package futureset

// RaceEnabled is true when the race detector is active.
// Used by stress tests to scale down goroutine/iteration counts, since the
// detector's instrumentation overhead turns the 64x10000 fan-in case into a
// multi-minute run.
const RaceEnabled = true
