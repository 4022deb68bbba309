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
	"testing"
)

func TestSaturatedAddUint8(t *testing.T) {
	a := LoadLanes([]uint8{250, 100, 0, 255}, 4)
	b := LoadLanes([]uint8{10, 100, 0, 1}, 4)
	want := []uint8{255, 200, 0, 255}
	for i, v := range SaturatedAdd(a, b).Data() {
		if v != want[i] {
			t.Errorf("SaturatedAdd: lane %d: got %d, want %d", i, v, want[i])
		}
	}
}

func TestSaturatedAddSigned(t *testing.T) {
	tests := []struct {
		name string
		got  int64
		want int64
	}{
		{"int8 high", int64(saturatedAdd[int8](100, 100)), math.MaxInt8},
		{"int8 low", int64(saturatedAdd[int8](-100, -100)), math.MinInt8},
		{"int16", int64(saturatedAdd[int16](30000, 5000)), math.MaxInt16},
		{"int32", int64(saturatedAdd[int32](math.MinInt32, -1)), math.MinInt32},
		{"int64 high", saturatedAdd[int64](math.MaxInt64, 1), math.MaxInt64},
		{"int64 low", saturatedAdd[int64](math.MinInt64, -1), math.MinInt64},
		{"int64 in range", saturatedAdd[int64](-5, 3), -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %d, want %d", tt.got, tt.want)
			}
		})
	}

	if got := saturatedAdd[uint64](math.MaxUint64, 1); got != math.MaxUint64 {
		t.Errorf("uint64: got %d", got)
	}
	if got := saturatedAdd[uint32](math.MaxUint32, 7); got != math.MaxUint32 {
		t.Errorf("uint32: got %d", got)
	}
	if got := saturatedAdd[uint16](1, 2); got != 3 {
		t.Errorf("uint16: got %d", got)
	}
}
