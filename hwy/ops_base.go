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

import "math"

// This file provides the pure Go implementation of the portable vector
// operations. Every operation works on however many lanes its inputs hold,
// so the same kernel emulates any target once its vectors are loaded with
// that target's lane count (see LoadLanes and LevelLanes).

// Load creates a vector by loading up to MaxLanes elements from a slice.
func Load[T Lanes](src []T) Vec[T] {
	return LoadLanes(src, MaxLanes[T]())
}

// LoadLanes creates a vector of at most lanes elements from the front of
// src. A short src gives a short vector, like a masked tail load.
func LoadLanes[T Lanes](src []T, lanes int) Vec[T] {
	n := min(len(src), lanes)
	data := make([]T, n)
	copy(data, src[:n])
	return Vec[T]{data: data}
}

// Store writes a vector's data to a slice.
func Store[T Lanes](v Vec[T], dst []T) {
	n := min(len(dst), len(v.data))
	copy(dst[:n], v.data[:n])
}

// Set creates a vector of MaxLanes lanes all set to value.
func Set[T Lanes](value T) Vec[T] {
	return SetLanes(value, MaxLanes[T]())
}

// SetLanes creates a vector of lanes lanes all set to value.
func SetLanes[T Lanes](value T, lanes int) Vec[T] {
	data := make([]T, lanes)
	for i := range data {
		data[i] = value
	}
	return Vec[T]{data: data}
}

// Zero creates a vector with all lanes set to zero.
func Zero[T Lanes]() Vec[T] {
	return ZeroLanes[T](MaxLanes[T]())
}

// ZeroLanes creates a vector of lanes zero lanes.
func ZeroLanes[T Lanes](lanes int) Vec[T] {
	return Vec[T]{data: make([]T, lanes)}
}

// Add performs element-wise addition. Integers wrap.
func Add[T Lanes](a, b Vec[T]) Vec[T] {
	n := min(len(b.data), len(a.data))
	result := make([]T, n)
	for i := range n {
		result[i] = addHelper(a.data[i], b.data[i])
	}
	return Vec[T]{data: result}
}

func addHelper[T Lanes](a, b T) T {
	switch av := any(a).(type) {
	case Float16:
		bv := any(b).(Float16)
		return any(Float32ToFloat16(av.Float32() + bv.Float32())).(T)
	case BFloat16:
		bv := any(b).(BFloat16)
		return any(Float32ToBFloat16(av.Float32() + bv.Float32())).(T)
	default:
		return a + b
	}
}

// Mul performs element-wise multiplication.
func Mul[T Lanes](a, b Vec[T]) Vec[T] {
	n := min(len(b.data), len(a.data))
	result := make([]T, n)
	for i := range n {
		result[i] = mulHelper(a.data[i], b.data[i])
	}
	return Vec[T]{data: result}
}

func mulHelper[T Lanes](a, b T) T {
	switch av := any(a).(type) {
	case Float16:
		bv := any(b).(Float16)
		return any(Float32ToFloat16(av.Float32() * bv.Float32())).(T)
	case BFloat16:
		bv := any(b).(BFloat16)
		return any(Float32ToBFloat16(av.Float32() * bv.Float32())).(T)
	default:
		return a * b
	}
}

// FMA performs fused multiply-add: a*b+c with a single rounding.
func FMA[T Floats](a, b, c Vec[T]) Vec[T] {
	n := min(len(c.data), min(len(b.data), len(a.data)))
	result := make([]T, n)
	for i := range n {
		switch av := any(a.data[i]).(type) {
		case float32:
			bv := any(b.data[i]).(float32)
			cv := any(c.data[i]).(float32)
			result[i] = any(float32(math.FMA(float64(av), float64(bv), float64(cv)))).(T)
		case float64:
			bv := any(b.data[i]).(float64)
			cv := any(c.data[i]).(float64)
			result[i] = any(math.FMA(av, bv, cv)).(T)
		}
	}
	return Vec[T]{data: result}
}

// Abs computes absolute value by comparing with zero, so -0 stays -0.
// Clearing the sign bit with AndNot gives +0 instead.
func Abs[T Lanes](v Vec[T]) Vec[T] {
	result := make([]T, len(v.data))
	for i, x := range v.data {
		result[i] = absHelper(x)
	}
	return Vec[T]{data: result}
}

func absHelper[T Lanes](x T) T {
	switch h := any(x).(type) {
	case Float16:
		if f := h.Float32(); f < 0 {
			return any(Float32ToFloat16(-f)).(T)
		}
		return x
	case BFloat16:
		if f := h.Float32(); f < 0 {
			return any(Float32ToBFloat16(-f)).(T)
		}
		return x
	}
	if x < 0 {
		return -x
	}
	return x
}

// Sqrt computes square root.
func Sqrt[T Floats](v Vec[T]) Vec[T] {
	result := make([]T, len(v.data))
	for i := range v.data {
		switch x := any(v.data[i]).(type) {
		case float32:
			result[i] = any(float32(math.Sqrt(float64(x)))).(T)
		case float64:
			result[i] = any(math.Sqrt(x)).(T)
		}
	}
	return Vec[T]{data: result}
}

// ReduceSum sums all lanes in lane order.
func ReduceSum[T Lanes](v Vec[T]) T {
	var sum T
	for _, x := range v.data {
		sum = addHelper(sum, x)
	}
	return sum
}

// IsNaN returns a mask indicating which lanes contain NaN values.
func IsNaN[T Floats](v Vec[T]) Mask[T] {
	bits := make([]bool, len(v.data))
	for i, x := range v.data {
		bits[i] = x != x
	}
	return Mask[T]{bits: bits}
}

// IfThenElse performs conditional selection.
func IfThenElse[T Lanes](mask Mask[T], a, b Vec[T]) Vec[T] {
	n := min(len(b.data), min(len(a.data), len(mask.bits)))
	result := make([]T, n)
	for i := range n {
		if mask.bits[i] {
			result[i] = a.data[i]
		} else {
			result[i] = b.data[i]
		}
	}
	return Vec[T]{data: result}
}

// AndNot performs element-wise bitwise AND NOT (~a & b).
func AndNot[T Lanes](a, b Vec[T]) Vec[T] {
	n := min(len(b.data), len(a.data))
	result := make([]T, n)
	for i := range n {
		result[i] = bitwiseAndNot(a.data[i], b.data[i])
	}
	return Vec[T]{data: result}
}

func bitwiseAndNot[T Lanes](a, b T) T {
	switch av := any(a).(type) {
	case float32:
		bU := math.Float32bits(any(b).(float32))
		return any(math.Float32frombits(^math.Float32bits(av) & bU)).(T)
	case float64:
		bU := math.Float64bits(any(b).(float64))
		return any(math.Float64frombits(^math.Float64bits(av) & bU)).(T)
	case int8:
		return any(^av & any(b).(int8)).(T)
	case int16:
		return any(^av & any(b).(int16)).(T)
	case int32:
		return any(^av & any(b).(int32)).(T)
	case int64:
		return any(^av & any(b).(int64)).(T)
	case uint8:
		return any(^av & any(b).(uint8)).(T)
	case uint16:
		return any(^av & any(b).(uint16)).(T)
	case uint32:
		return any(^av & any(b).(uint32)).(T)
	case uint64:
		return any(^av & any(b).(uint64)).(T)
	default:
		return a
	}
}
