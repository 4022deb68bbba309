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

func TestLoadLanes(t *testing.T) {
	data := []float32{1, 2, 3, 4, 5, 6, 7, 8}
	v := LoadLanes(data, 4)
	if v.NumLanes() != 4 {
		t.Fatalf("LoadLanes: got %d lanes, want 4", v.NumLanes())
	}
	for i := range 4 {
		if v.data[i] != data[i] {
			t.Errorf("LoadLanes: lane %d: got %v, want %v", i, v.data[i], data[i])
		}
	}

	// Short sources give short vectors.
	if n := LoadLanes(data[6:], 4).NumLanes(); n != 2 {
		t.Errorf("LoadLanes tail: got %d lanes, want 2", n)
	}

	if n := Load(data).NumLanes(); n != min(len(data), MaxLanes[float32]()) {
		t.Errorf("Load: got %d lanes, want %d", n, min(len(data), MaxLanes[float32]()))
	}
}

func TestStore(t *testing.T) {
	dst := make([]int32, 3)
	SetLanes[int32](7, 5).Store(dst)
	for i, v := range dst {
		if v != 7 {
			t.Errorf("Store: dst[%d] = %d, want 7", i, v)
		}
	}
	if n := Zero[int32]().NumLanes(); n != MaxLanes[int32]() {
		t.Errorf("Zero: got %d lanes, want %d", n, MaxLanes[int32]())
	}
}

func TestLevelLanes(t *testing.T) {
	tests := []struct {
		level DispatchLevel
		f32   int
		i8    int
	}{
		{DispatchScalar, 4, 16},
		{DispatchAVX2, 8, 32},
		{DispatchAVX512, 16, 64},
		{DispatchNEON, 4, 16},
	}
	for _, tt := range tests {
		if got := LevelLanes[float32](tt.level); got != tt.f32 {
			t.Errorf("LevelLanes[float32](%v) = %d, want %d", tt.level, got, tt.f32)
		}
		if got := LevelLanes[int8](tt.level); got != tt.i8 {
			t.Errorf("LevelLanes[int8](%v) = %d, want %d", tt.level, got, tt.i8)
		}
	}
	if MaxLanes[float64]() != CurrentWidth()/8 {
		t.Errorf("MaxLanes[float64]() = %d, want %d", MaxLanes[float64](), CurrentWidth()/8)
	}
}

func TestAddMul(t *testing.T) {
	a := LoadLanes([]int32{1, math.MaxInt32, -3}, 3)
	b := LoadLanes([]int32{2, 1, 4}, 3)
	want := []int32{3, math.MinInt32, 1}
	for i, v := range Add(a, b).Data() {
		if v != want[i] {
			t.Errorf("Add: lane %d: got %d, want %d", i, v, want[i])
		}
	}
	if got := Mul(a, b).Data()[2]; got != -12 {
		t.Errorf("Mul: got %d, want -12", got)
	}

	// Mismatched lane counts use the shorter vector.
	if n := Add(a, LoadLanes([]int32{1}, 1)).NumLanes(); n != 1 {
		t.Errorf("Add: got %d lanes, want 1", n)
	}
}

func TestAddHalf(t *testing.T) {
	one := Float32ToFloat16(1)
	sum := Add(SetLanes(one, 2), SetLanes(Float32ToFloat16(0.5), 2))
	if got := sum.Data()[0].Float32(); got != 1.5 {
		t.Errorf("Add[Float16]: got %v, want 1.5", got)
	}
	if got := ReduceSum(SetLanes(one, 4)).Float32(); got != 4 {
		t.Errorf("ReduceSum[Float16]: got %v, want 4", got)
	}
	if got := Mul(SetLanes(Float32ToBFloat16(3), 1), SetLanes(Float32ToBFloat16(-2), 1)).Data()[0].Float32(); got != -6 {
		t.Errorf("Mul[BFloat16]: got %v, want -6", got)
	}
}

func TestFMA(t *testing.T) {
	// 1+2^-12 squared needs more than 24 bits; an unfused multiply-add loses
	// the 2^-24 term.
	x := float32(1 + 1.0/4096)
	a := SetLanes(x, 2)
	c := SetLanes(float32(-1), 2)
	fused := FMA(a, a, c).Data()[0]
	if want := float32(1.0/2048 + 1.0/(1<<24)); fused != want {
		t.Errorf("FMA: got %v, want %v", fused, want)
	}
	if got := FMA(SetLanes(2.0, 1), SetLanes(3.0, 1), SetLanes(1.0, 1)).Data()[0]; got != 7 {
		t.Errorf("FMA[float64]: got %v, want 7", got)
	}
}

func TestAbsAndNot(t *testing.T) {
	negZero := float32(math.Copysign(0, -1))
	v := LoadLanes([]float32{-2, negZero, 3}, 3)

	abs := Abs(v).Data()
	if abs[0] != 2 || abs[2] != 3 {
		t.Errorf("Abs: got %v", abs)
	}
	if !math.Signbit(float64(abs[1])) {
		t.Error("Abs(-0) should keep the sign bit")
	}

	cleared := AndNot(SetLanes(negZero, 3), v).Data()
	if cleared[0] != 2 || cleared[2] != 3 || math.Signbit(float64(cleared[1])) {
		t.Errorf("AndNot(sign, v): got %v", cleared)
	}

	if got := AndNot(SetLanes[uint8](0x0F, 1), SetLanes[uint8](0xFF, 1)).Data()[0]; got != 0xF0 {
		t.Errorf("AndNot[uint8]: got %#x, want 0xf0", got)
	}
	if got := Abs(SetLanes[int16](-5, 1)).Data()[0]; got != 5 {
		t.Errorf("Abs[int16]: got %d, want 5", got)
	}
}

func TestSqrtIsNaN(t *testing.T) {
	v := Sqrt(LoadLanes([]float64{4, -1, 9}, 3))
	m := IsNaN(v)
	if m.NumLanes() != 3 || m.CountTrue() != 1 || !m.AnyTrue() {
		t.Fatalf("IsNaN: got %d of %d lanes", m.CountTrue(), m.NumLanes())
	}

	fixed := IfThenElse(m, SetLanes(0.0, 3), v).Data()
	want := []float64{2, 0, 3}
	for i := range want {
		if fixed[i] != want[i] {
			t.Errorf("IfThenElse: lane %d: got %v, want %v", i, fixed[i], want[i])
		}
	}
	if IsNaN(SetLanes[float32](1, 4)).AnyTrue() {
		t.Error("IsNaN(1) reported NaN")
	}
}

func TestReduceSum(t *testing.T) {
	if got := ReduceSum(LoadLanes([]float32{1, 2, 3, 4}, 4)); got != 10 {
		t.Errorf("ReduceSum: got %v, want 10", got)
	}
	if got := ReduceSum(ZeroLanes[int64](0)); got != 0 {
		t.Errorf("ReduceSum(empty): got %d, want 0", got)
	}
}

func TestAbsHalf(t *testing.T) {
	if got := Abs(SetLanes(Float32ToFloat16(-1.5), 1)).Data()[0].Float32(); got != 1.5 {
		t.Errorf("Abs[Float16]: got %v, want 1.5", got)
	}
	if got := Abs(SetLanes(Float32ToBFloat16(2), 1)).Data()[0].Float32(); got != 2 {
		t.Errorf("Abs[BFloat16]: got %v, want 2", got)
	}
}
