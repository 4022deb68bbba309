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

package ulp

import "math"

// NextToward32 returns the float32 one step from from toward to.
func NextToward32(from, to float32) float32 {
	return math.Float32frombits(uint32(Float32.Next(uint64(math.Float32bits(from)), uint64(math.Float32bits(to)))))
}

// NextToward64 returns the float64 one step from from toward to.
func NextToward64(from, to float64) float64 {
	return math.Float64frombits(Float64.Next(math.Float64bits(from), math.Float64bits(to)))
}

// Equal32 compares two float32 slices element by element and returns the
// index of the first pair more than ulps steps apart, or -1 if there is none.
// Only the common prefix is compared.
func Equal32(a, b []float32, ulps uint32, zeroEqual bool) int {
	for i := range min(len(a), len(b)) {
		if !Float32.Equivalent(uint64(math.Float32bits(a[i])), uint64(math.Float32bits(b[i])), ulps, zeroEqual) {
			return i
		}
	}
	return -1
}

// Equal64 is Equal32 for float64 slices.
func Equal64(a, b []float64, ulps uint32, zeroEqual bool) int {
	for i := range min(len(a), len(b)) {
		if !Float64.Equivalent(math.Float64bits(a[i]), math.Float64bits(b[i]), ulps, zeroEqual) {
			return i
		}
	}
	return -1
}
