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

// BFloat16 is a brain floating-point value: the upper 16 bits of a float32.
//
//	S | EEEEEEEE | MMMMMMM
type BFloat16 uint16

// BFloat16 constants for special values.
const (
	BFloat16Zero    BFloat16 = 0x0000
	BFloat16NegZero BFloat16 = 0x8000
	BFloat16One     BFloat16 = 0x3F80
	BFloat16Inf     BFloat16 = 0x7F80
	BFloat16NaN     BFloat16 = 0x7FC0
)

// BFloat16ToFloat32 widens b to float32. The conversion is exact.
func BFloat16ToFloat32(b BFloat16) float32 {
	return math.Float32frombits(uint32(b) << 16)
}

// Float32ToBFloat16 narrows f with round-to-nearest-even. NaNs stay NaN.
func Float32ToBFloat16(f float32) BFloat16 {
	bits := math.Float32bits(f)
	if ulp.Float32.IsNaN(uint64(bits)) {
		return BFloat16(bits>>16) | 0x0040
	}
	return BFloat16(roundShift(bits, 16))
}

// IsNaN returns true if b is a NaN value.
func (b BFloat16) IsNaN() bool { return ulp.BFloat16.IsNaN(uint64(b)) }

// IsInf returns true if b is positive or negative infinity.
func (b BFloat16) IsInf() bool { return ulp.BFloat16.IsInf(uint64(b)) }

// IsZero returns true if b is positive or negative zero.
func (b BFloat16) IsZero() bool { return ulp.BFloat16.IsZero(uint64(b)) }

// Float32 converts b to float32.
func (b BFloat16) Float32() float32 { return BFloat16ToFloat32(b) }
