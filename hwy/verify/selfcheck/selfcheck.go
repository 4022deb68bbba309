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

// Package selfcheck is a verification suite built on the portable hwy vector
// operations. Each target loads vectors with as many lanes as its registers
// hold, so wider targets reassociate reductions exactly like real SIMD code
// does. Integer results must match bit for bit; float results are recorded
// with the tolerance their kernel needs.
package selfcheck

import (
	"math"

	"github.com/ajroetker/hwyverify/hwy"
	"github.com/ajroetker/hwyverify/hwy/results"
	"github.com/ajroetker/hwyverify/hwy/verify"
)

// Sizes used by every case: empty, sub-vector, exact and ragged tails.
var sizes = []int{0, 1, 7, 16, 37, 64}

// Register adds all self-check cases to s.
func Register(s *verify.Suite) {
	for _, c := range Cases() {
		s.MustAdd(c)
	}
}

// Cases returns the self-check cases.
func Cases() []verify.Case {
	return []verify.Case{
		{Name: "add_int32", Run: addInt32},
		{Name: "saturated_add_uint8", Run: saturatedAddUint8},
		{Name: "sum_float32", Run: sumFloat32},
		{Name: "dot_float64", Run: dotFloat64},
		{Name: "muladd_float32", Run: mulAddFloat32},
		{Name: "abs_zero_float32", Run: absZeroFloat32},
		{Name: "nan_float64", Run: nanFloat64},
		{Name: "half_float16", Run: halfFloat16},
	}
}

// rng is a small deterministic generator so every target sees the same
// input without sharing state.
type rng uint64

func (r *rng) next() uint64 {
	*r = *r*6364136223846793005 + 1442695040888963407
	return uint64(*r) >> 11
}

// float32In returns a value in [lo, lo+1).
func (r *rng) float32In(lo float32) float32 {
	return lo + float32(r.next()&0xFFFFFF)/(1<<24)
}

func (r *rng) float64In(lo float64) float64 {
	return lo + float64(r.next())/(1<<53)
}

func addInt32(t verify.Target, s *results.Set) {
	r := rng(1)
	lanes := t.Lanes(4)
	for _, n := range sizes {
		a := make([]int32, n)
		b := make([]int32, n)
		for i := range a {
			a[i] = int32(r.next())
			b[i] = int32(r.next())
		}
		out := make([]int32, n)
		eachVector(n, lanes, func(i int) {
			hwy.Add(hwy.LoadLanes(a[i:], lanes), hwy.LoadLanes(b[i:], lanes)).Store(out[i:])
		})
		results.Record(s, out)
	}

	// Wide targets also check a lane-blocked horizontal sum, which has no
	// scalar counterpart. Leaving the section empty elsewhere keeps the
	// sections aligned.
	s.NextSection()
	if t.Width() >= 32 {
		x := make([]int32, 1000)
		for i := range x {
			x[i] = int32(r.next())
		}
		total := sumVectors(len(x), lanes, func(i int) hwy.Vec[int32] {
			return hwy.LoadLanes(x[i:], lanes)
		})
		results.Record(s, []int32{total})
	}

	s.NextSection()
	results.Record(s, []int32{math.MaxInt32, math.MinInt32})
}

func saturatedAddUint8(t verify.Target, s *results.Set) {
	r := rng(2)
	lanes := t.Lanes(1)
	for _, n := range sizes {
		a := make([]uint8, n)
		b := make([]uint8, n)
		for i := range a {
			a[i] = uint8(r.next())
			b[i] = uint8(r.next())
		}
		out := make([]uint8, n)
		eachVector(n, lanes, func(i int) {
			hwy.SaturatedAdd(hwy.LoadLanes(a[i:], lanes), hwy.LoadLanes(b[i:], lanes)).Store(out[i:])
		})
		results.Record(s, out)
	}
}

// sumFloat32 reduces with one accumulator per lane, then adds the lanes.
// All inputs are positive, so each ordering is within n/2 ULP of the exact
// sum and two orderings are within n ULP of each other.
func sumFloat32(t verify.Target, s *results.Set) {
	r := rng(3)
	lanes := t.Lanes(4)
	for _, n := range sizes {
		x := make([]float32, n)
		for i := range x {
			x[i] = r.float32In(1)
		}
		total := sumVectors(n, lanes, func(i int) hwy.Vec[float32] {
			return hwy.LoadLanes(x[i:], lanes)
		})
		s.SetPrecision(uint32(n))
		results.Record(s, []float32{total})
		s.NextSection()
	}
}

func dotFloat64(t verify.Target, s *results.Set) {
	r := rng(4)
	lanes := t.Lanes(8)
	for _, n := range sizes {
		x := make([]float64, n)
		y := make([]float64, n)
		for i := range x {
			x[i] = r.float64In(0.5)
			y[i] = r.float64In(0.5)
		}
		// Mul then Add rounds twice on every target, so only the summation
		// order differs.
		dot := sumVectors(n, lanes, func(i int) hwy.Vec[float64] {
			return hwy.Mul(hwy.LoadLanes(x[i:], lanes), hwy.LoadLanes(y[i:], lanes))
		})
		s.SetPrecision(uint32(n))
		results.Record(s, []float64{dot})
	}
}

// mulAddFloat32 computes x*y+z. Scalar rounds the product and the sum;
// SIMD targets use a fused multiply-add. With positive inputs the two
// differ by at most one step, two near a binade boundary.
func mulAddFloat32(t verify.Target, s *results.Set) {
	r := rng(5)
	lanes := t.Lanes(4)
	s.SetPrecision(2)
	for _, n := range sizes {
		x := make([]float32, n)
		y := make([]float32, n)
		z := make([]float32, n)
		for i := range x {
			x[i], y[i], z[i] = r.float32In(1), r.float32In(1), r.float32In(0)
		}
		out := make([]float32, n)
		eachVector(n, lanes, func(i int) {
			vx, vy, vz := hwy.LoadLanes(x[i:], lanes), hwy.LoadLanes(y[i:], lanes), hwy.LoadLanes(z[i:], lanes)
			if t.Level == hwy.DispatchScalar {
				hwy.Add(hwy.Mul(vx, vy), vz).Store(out[i:])
			} else {
				hwy.FMA(vx, vy, vz).Store(out[i:])
			}
		})
		results.Record(s, out)
	}
}

// absZeroFloat32 takes absolute values. The scalar target compares with
// zero and returns -0 unchanged; SIMD targets clear the sign bit. Only
// zero-equal comparison accepts both.
func absZeroFloat32(t verify.Target, s *results.Set) {
	negZero := float32(math.Copysign(0, -1))
	in := []float32{-2, negZero, 0, 3.5, -1e-40}
	out := make([]float32, len(in))
	lanes := t.Lanes(4)
	signBit := hwy.SetLanes(negZero, lanes)
	eachVector(len(in), lanes, func(i int) {
		v := hwy.LoadLanes(in[i:], lanes)
		if t.Level == hwy.DispatchScalar {
			hwy.Abs(v).Store(out[i:])
		} else {
			hwy.AndNot(signBit, v).Store(out[i:])
		}
	})
	s.SetZeroEqual(true)
	results.Record(s, out)
}

// nanFloat64 takes square roots of negative inputs. The SIMD targets
// produce the x86 default NaN, the scalar target whatever math.Sqrt returns.
func nanFloat64(t verify.Target, s *results.Set) {
	in := []float64{4, -1, 9, -0.5, math.Inf(1)}
	out := make([]float64, len(in))
	lanes := t.Lanes(8)
	defaultNaN := hwy.SetLanes(math.Float64frombits(0xFFF8000000000000), lanes)
	eachVector(len(in), lanes, func(i int) {
		v := hwy.Sqrt(hwy.LoadLanes(in[i:], lanes))
		if t.Level != hwy.DispatchScalar {
			v = hwy.IfThenElse(hwy.IsNaN(v), defaultNaN, v)
		}
		v.Store(out[i:])
	})
	results.Record(s, out)
}

// halfFloat16 averages triples in float32 and stores float16. Targets add
// in different orders, which can move the rounded half by one step.
func halfFloat16(t verify.Target, s *results.Set) {
	r := rng(6)
	lanes := t.Lanes(4)
	third := hwy.SetLanes(float32(1.0/3), lanes)
	for _, n := range sizes {
		a := make([]float32, n)
		b := make([]float32, n)
		c := make([]float32, n)
		for i := range a {
			a[i], b[i], c[i] = r.float32In(0), r.float32In(0), r.float32In(0)
		}
		avg := make([]float32, n)
		eachVector(n, lanes, func(i int) {
			va, vb, vc := hwy.LoadLanes(a[i:], lanes), hwy.LoadLanes(b[i:], lanes), hwy.LoadLanes(c[i:], lanes)
			var sum hwy.Vec[float32]
			if t.Level == hwy.DispatchScalar {
				sum = hwy.Add(hwy.Add(va, vb), vc)
			} else {
				sum = hwy.Add(va, hwy.Add(vb, vc))
			}
			hwy.Mul(sum, third).Store(avg[i:])
		})
		out := make([]hwy.Float16, n)
		for i, v := range avg {
			out[i] = hwy.Float32ToFloat16(v)
		}
		s.SetPrecision(1)
		results.Record(s, out)
	}
}

// eachVector calls fn with the start of every vector in [0, n): full
// vectors of lanes elements, then one short vector for the tail.
func eachVector(n, lanes int, fn func(i int)) {
	for i := 0; i < n; i += lanes {
		fn(i)
	}
}

// sumVectors adds the full vectors lane-wise, reduces the accumulator, then
// adds the reduced tail vector.
func sumVectors[T hwy.Lanes](n, lanes int, load func(i int) hwy.Vec[T]) T {
	acc := hwy.ZeroLanes[T](lanes)
	i := 0
	for ; i+lanes <= n; i += lanes {
		acc = hwy.Add(acc, load(i))
	}
	total := hwy.ReduceSum(acc)
	if i < n {
		total += hwy.ReduceSum(load(i))
	}
	return total
}
