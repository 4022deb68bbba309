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
	"math"

	"github.com/ajroetker/hwyverify/hwy/ulp"
)

// Float16 is an IEEE 754 binary16 value stored in its raw bit pattern.
//
//	S | EEEEE | MMMMMMMMMM
type Float16 uint16

// Float16 constants for special values.
const (
	Float16Zero    Float16 = 0x0000
	Float16NegZero Float16 = 0x8000
	Float16One     Float16 = 0x3C00
	Float16Max     Float16 = 0x7BFF // 65504
	Float16Inf     Float16 = 0x7C00
	Float16NegInf  Float16 = 0xFC00
	Float16NaN     Float16 = 0x7E00
)

// Float16ToFloat32 widens h to float32. The conversion is exact.
func Float16ToFloat32(h Float16) float32 {
	sign := uint32(h&0x8000) << 16
	exp := uint32(h>>10) & 0x1F
	mant := uint32(h) & 0x3FF

	switch {
	case exp == 0x1F:
		return math.Float32frombits(sign | 0x7F800000 | mant<<13)
	case exp == 0 && mant == 0:
		return math.Float32frombits(sign)
	case exp == 0:
		// Denormal: shift the leading one into the implicit bit.
		e := uint32(127 - 15 + 1)
		for mant&0x400 == 0 {
			mant <<= 1
			e--
		}
		return math.Float32frombits(sign | e<<23 | (mant&0x3FF)<<13)
	}
	return math.Float32frombits(sign | (exp+127-15)<<23 | mant<<13)
}

// Float32ToFloat16 narrows f with round-to-nearest-even. Values too large
// become infinity and values too small become signed zero.
func Float32ToFloat16(f float32) Float16 {
	bits := math.Float32bits(f)
	sign := uint16(bits>>16) & 0x8000
	exp := int32(bits>>23) & 0xFF
	mant := bits & 0x7FFFFF

	if exp == 0xFF {
		if mant != 0 {
			return Float16(sign) | Float16NaN
		}
		return Float16(sign) | Float16Inf
	}

	e := exp - 127 + 15
	if e >= 0x1F {
		return Float16(sign) | Float16Inf
	}
	if e <= 0 {
		if e < -10 {
			return Float16(sign)
		}
		return Float16(sign | uint16(roundShift(mant|0x800000, uint32(14-e))))
	}
	// A carry out of the mantissa bumps the exponent, possibly to infinity.
	return Float16(sign | uint16(roundShift(uint32(e)<<23|mant, 13)))
}

// roundShift shifts v right by n bits, rounding half to even.
func roundShift(v, n uint32) uint32 {
	r := v >> n
	rem := v & (1<<n - 1)
	half := uint32(1) << (n - 1)
	if rem > half || (rem == half && r&1 == 1) {
		r++
	}
	return r
}

// IsNaN returns true if h is a NaN value.
func (h Float16) IsNaN() bool { return ulp.Float16.IsNaN(uint64(h)) }

// IsInf returns true if h is positive or negative infinity.
func (h Float16) IsInf() bool { return ulp.Float16.IsInf(uint64(h)) }

// IsZero returns true if h is positive or negative zero.
func (h Float16) IsZero() bool { return ulp.Float16.IsZero(uint64(h)) }

// Float32 converts h to float32.
func (h Float16) Float32() float32 { return Float16ToFloat32(h) }
