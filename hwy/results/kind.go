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

// Package results records the vectors a kernel produces on one SIMD target
// and compares two such recordings taken on different targets.
//
// A test records every interesting vector into a Set while it runs. Running
// the same test once per target yields one Set per target; Compare then walks
// two Sets in lockstep and writes a diagnostic for every vector that differs
// by more than the tolerance it was recorded with.
//
//	a := results.NewSet("sum")
//	results.Record(a, sumScalar(x))
//	b := results.NewSet("sum")
//	results.Record(b, sumAVX2(x))
//	r := results.NewTextReporter(os.Stderr)
//	results.Compare(a, "scalar", b, "avx2", r)
package results

import (
	"github.com/ajroetker/hwyverify/hwy/ulp"
)

// Kind identifies the element type of a recorded vector.
type Kind uint8

const (
	KindUint8 Kind = iota
	KindInt8
	KindUint16
	KindInt16
	KindUint32
	KindInt32
	KindUint64
	KindInt64
	KindFloat32
	KindFloat64
	KindFloat16
	KindBFloat16

	numKinds
)

var kindInfo = [numKinds]struct {
	name string
	size int
}{
	KindUint8:    {"uint8", 1},
	KindInt8:     {"int8", 1},
	KindUint16:   {"uint16", 2},
	KindInt16:    {"int16", 2},
	KindUint32:   {"uint32", 4},
	KindInt32:    {"int32", 4},
	KindUint64:   {"uint64", 8},
	KindInt64:    {"int64", 8},
	KindFloat32:  {"float32", 4},
	KindFloat64:  {"float64", 8},
	KindFloat16:  {"float16", 2},
	KindBFloat16: {"bfloat16", 2},
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k < numKinds
}

// String returns the Go-style type name of the kind.
func (k Kind) String() string {
	if !k.Valid() {
		return "undefined"
	}
	return kindInfo[k].name
}

// Size returns the width of one element in bytes, or 0 for an invalid kind.
func (k Kind) Size() int {
	if !k.Valid() {
		return 0
	}
	return kindInfo[k].size
}

// IsFloat reports whether values of kind k are compared with a ULP tolerance.
func (k Kind) IsFloat() bool {
	_, ok := k.Format()
	return ok
}

// Format returns the floating-point layout of k.
func (k Kind) Format() (ulp.Format, bool) {
	switch k {
	case KindFloat32:
		return ulp.Float32, true
	case KindFloat64:
		return ulp.Float64, true
	case KindFloat16:
		return ulp.Float16, true
	case KindBFloat16:
		return ulp.BFloat16, true
	}
	return ulp.Format{}, false
}
