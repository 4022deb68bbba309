// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package hwy

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unsafe"
)

// DispatchLevel represents a SIMD instruction set a kernel can run on.
type DispatchLevel int

const (
	// DispatchScalar indicates no SIMD, pure Go implementation.
	DispatchScalar DispatchLevel = iota

	// DispatchSSE2 indicates SSE2 instructions (x86-64 baseline).
	DispatchSSE2

	// DispatchAVX2 indicates AVX2 instructions (256-bit SIMD).
	DispatchAVX2

	// DispatchAVX512 indicates AVX-512 instructions (512-bit SIMD).
	DispatchAVX512

	// DispatchNEON indicates ARM NEON instructions (128-bit SIMD).
	DispatchNEON

	// DispatchSVE indicates ARM SVE instructions (scalable vector).
	DispatchSVE
)

// ErrUnknownLevel is returned by ParseLevel for names it does not recognize.
var ErrUnknownLevel = errors.New("hwy: unknown dispatch level")

var levelNames = [...]string{
	DispatchScalar: "scalar",
	DispatchSSE2:   "sse2",
	DispatchAVX2:   "avx2",
	DispatchAVX512: "avx512",
	DispatchNEON:   "neon",
	DispatchSVE:    "sve",
}

// String returns a human-readable name for the dispatch level.
func (d DispatchLevel) String() string {
	if d < 0 || int(d) >= len(levelNames) {
		return "unknown"
	}
	return levelNames[d]
}

// ParseLevel returns the level whose String form is name (case-insensitive).
// "fallback" is accepted as an alias for scalar, matching hwygen's target names.
func ParseLevel(name string) (DispatchLevel, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "fallback" {
		return DispatchScalar, nil
	}
	for i, n := range levelNames {
		if n == name {
			return DispatchLevel(i), nil
		}
	}
	return DispatchScalar, fmt.Errorf("%w: %q", ErrUnknownLevel, name)
}

// LevelWidth returns the vector register width in bytes for level.
// Scalar uses 16-byte vectors for consistency with the SIMD paths. SVE is
// reported at its minimum architectural width.
func LevelWidth(level DispatchLevel) int {
	switch level {
	case DispatchAVX2:
		return 32
	case DispatchAVX512:
		return 64
	default:
		return 16
	}
}

// currentLevel is the best SIMD level for this runtime.
// Set by init() in dispatch_*.go files.
var currentLevel DispatchLevel

// availableLevels lists every level this runtime can execute, scalar first.
// Set by init() in dispatch_*.go files.
var availableLevels = []DispatchLevel{DispatchScalar}

// CurrentLevel returns the best SIMD instruction set available.
func CurrentLevel() DispatchLevel {
	return currentLevel
}

// CurrentWidth returns the SIMD register width in bytes for CurrentLevel.
func CurrentWidth() int {
	return LevelWidth(currentLevel)
}

// MaxLanes returns the number of lanes of type T in a vector of the current
// level.
//
// For example, with AVX2 (256 bits / 32 bytes):
//   - float32: 32/4 = 8 lanes
//   - float64: 32/8 = 4 lanes
func MaxLanes[T Lanes]() int {
	return LevelLanes[T](currentLevel)
}

// LevelLanes returns the number of lanes of type T in a vector of level,
// at least 1.
func LevelLanes[T Lanes](level DispatchLevel) int {
	var dummy T
	return max(1, LevelWidth(level)/int(unsafe.Sizeof(dummy)))
}

// CurrentName returns a human-readable name for the current SIMD target.
func CurrentName() string {
	return currentLevel.String()
}

// AvailableLevels returns the levels this CPU can run, ordered from scalar to
// the widest. The returned slice is a copy.
func AvailableLevels() []DispatchLevel {
	return append([]DispatchLevel(nil), availableLevels...)
}

// NoSimdEnv checks if the HWY_NO_SIMD environment variable is set.
// When set, only the scalar level is reported as available.
func NoSimdEnv() bool {
	val := os.Getenv("HWY_NO_SIMD")
	if val == "" {
		return false
	}
	// Any non-empty value is considered true, but also parse as bool
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}

// setLevels records the detected levels; the last one becomes current.
func setLevels(levels ...DispatchLevel) {
	availableLevels = append([]DispatchLevel{DispatchScalar}, levels...)
	currentLevel = availableLevels[len(availableLevels)-1]
}
