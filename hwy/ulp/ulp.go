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

// Package ulp decides whether two floating-point values are within a number
// of representable steps (units in the last place) of each other.
//
// Everything here works on the IEEE-754 bit pattern with integer operations
// only. Kernels under test may run with flush-to-zero or denormals-are-zero
// enabled, and a comparison built on float arithmetic would inherit those
// modes and misjudge denormal results.
package ulp

import (
	"encoding/binary"
	"math"
)

// Format describes a binary floating-point layout: one sign bit, then the
// exponent, then Mantissa explicit mantissa bits.
type Format struct {
	Name     string
	Bits     uint
	Mantissa uint
}

// Formats the comparison engine understands.
var (
	Float16  = Format{Name: "float16", Bits: 16, Mantissa: 10}
	BFloat16 = Format{Name: "bfloat16", Bits: 16, Mantissa: 7}
	Float32  = Format{Name: "float32", Bits: 32, Mantissa: 23}
	Float64  = Format{Name: "float64", Bits: 64, Mantissa: 52}
)

// Size returns the width of one element in bytes.
func (f Format) Size() int {
	return int(f.Bits / 8)
}

func (f Format) signMask() uint64 {
	return 1 << (f.Bits - 1)
}

func (f Format) mantMask() uint64 {
	return 1<<f.Mantissa - 1
}

func (f Format) expMask() uint64 {
	return (f.signMask() - 1) &^ f.mantMask()
}

func (f Format) valueMask() uint64 {
	if f.Bits == 64 {
		return math.MaxUint64
	}
	return 1<<f.Bits - 1
}

// IsNaN reports whether bits encodes a NaN.
func (f Format) IsNaN(bits uint64) bool {
	return bits&f.expMask() == f.expMask() && bits&f.mantMask() != 0
}

// IsInf reports whether bits encodes positive or negative infinity.
func (f Format) IsInf(bits uint64) bool {
	return bits&(f.expMask()|f.mantMask()) == f.expMask()
}

// IsZero reports whether bits encodes positive or negative zero.
func (f Format) IsZero(bits uint64) bool {
	return bits&(f.signMask()-1) == 0
}

// IsNegative reports whether the sign bit is set, which includes -0.
func (f Format) IsNegative(bits uint64) bool {
	return bits&f.signMask() != 0
}

// key maps a bit pattern onto a signed integer that is ordered the same way
// as the values it encodes. Both zeros map to 0.
func (f Format) key(bits uint64) int64 {
	mag := int64(bits & (f.signMask() - 1))
	if f.IsNegative(bits) {
		return -mag
	}
	return mag
}

// Next returns the representable value one step from from in the direction
// of to. NaN operands, an infinite from, and from == to leave from unchanged.
// Stepping through zero goes +0 -> -0 (or -0 -> +0) before reaching the
// smallest denormal of the other sign.
func (f Format) Next(from, to uint64) uint64 {
	from &= f.valueMask()
	to &= f.valueMask()
	switch {
	case f.IsNaN(from) || f.IsNaN(to):
		return from
	case f.IsInf(from):
		return from
	case from == to:
		return from
	}

	negZero := f.signMask()
	if from == 0 && f.IsNegative(to) {
		return negZero
	}
	if from == negZero && !f.IsNegative(to) {
		return 0
	}

	// Within one sign, the magnitude grows with the raw pattern, so moving up
	// in value is +1 for positive patterns and -1 for negative ones. The
	// direction comes from value order: comparing the raw patterns as signed
	// integers would step away from to when from is negative and to positive.
	up := f.key(from) < f.key(to)
	if up == !f.IsNegative(from) {
		return from + 1
	}
	return from - 1
}

// Equivalent reports whether a and b are equal within ulps steps, that is
// whether at most ulps calls to Next lead from a to b. Two NaNs are always
// equivalent, and with zeroEqual set so are +0 and -0. The cost does not
// depend on ulps.
func (f Format) Equivalent(a, b uint64, ulps uint32, zeroEqual bool) bool {
	a &= f.valueMask()
	b &= f.valueMask()
	switch {
	case a == b:
		return true
	case f.IsNaN(a) && f.IsNaN(b):
		return true
	case zeroEqual && f.IsZero(a) && f.IsZero(b):
		return true
	case f.IsNaN(a) || f.IsNaN(b) || f.IsInf(a):
		// Next never moves off a NaN or an infinity.
		return false
	}
	// A finite a walks onto an infinite b through the largest finite value,
	// which steps counts like any other pattern.
	return f.steps(a, b) <= uint64(ulps)
}

// Load returns the i-th element of a native-endian array in this format.
func (f Format) Load(data []byte, i int) uint64 {
	switch f.Bits {
	case 16:
		return uint64(binary.NativeEndian.Uint16(data[i*2:]))
	case 32:
		return uint64(binary.NativeEndian.Uint32(data[i*4:]))
	default:
		return binary.NativeEndian.Uint64(data[i*8:])
	}
}

// FirstMismatch compares two native-endian arrays of the same length element
// by element and returns the index of the first pair that is not equivalent,
// or -1 when every pair is.
func (f Format) FirstMismatch(a, b []byte, ulps uint32, zeroEqual bool) int {
	n := min(len(a), len(b)) / f.Size()
	for i := range n {
		if !f.Equivalent(f.Load(a, i), f.Load(b, i), ulps, zeroEqual) {
			return i
		}
	}
	return -1
}

// Distance returns the number of steps Next needs to get from a to b. It
// reports false when either value is NaN or infinite.
func (f Format) Distance(a, b uint64) (uint64, bool) {
	a &= f.valueMask()
	b &= f.valueMask()
	if f.IsNaN(a) || f.IsNaN(b) || f.IsInf(a) || f.IsInf(b) {
		return 0, false
	}
	return f.steps(a, b), true
}

// steps counts the calls to Next between two non-NaN patterns.
func (f Format) steps(a, b uint64) uint64 {
	ka, kb := f.key(a), f.key(b)
	d := uint64(kb - ka)
	if ka > kb {
		d = uint64(ka - kb)
	}
	// Next visits both zeros, so a path that crosses zero takes one extra step.
	if f.IsNegative(a) != f.IsNegative(b) {
		d++
	}
	return d
}
