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

package results

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/tools/txtar"
)

// scenarios build the pairs of sets whose diagnostics are stored in
// testdata/reports.txtar, keyed by archive file name.
var scenarios = map[string]struct {
	build          func() (a, b *Set)
	passed, failed int
}{
	"untolerated_float32": {
		build: func() (*Set, *Set) {
			a, b := NewSet("drift"), NewSet("drift")
			RecordAt(a, "drift_test.go", 10, []float32{1})
			RecordAt(b, "drift_test.go", 10, []float32{math.Float32frombits(0x3F800001)})
			return a, b
		},
		failed: 1,
	},
	"float64_precision": {
		build: func() (*Set, *Set) {
			a, b := NewSet("prec"), NewSet("prec")
			a.SetPrecision(1)
			RecordAt(a, "prec_test.go", 20, []int32{7})
			RecordAt(b, "prec_test.go", 20, []int32{7})
			RecordAt(a, "prec_test.go", 21, []float64{1, 2, 3})
			RecordAt(b, "prec_test.go", 21, []float64{1, math.Float64frombits(0x4000000000000004), 3})
			return a, b
		},
		passed: 1,
		failed: 1,
	},
	"int8": {
		build: func() (*Set, *Set) {
			a, b := NewSet("ints"), NewSet("ints")
			RecordAt(a, "ints_test.go", 5, []int8{-1, 5})
			RecordAt(b, "ints_test.go", 5, []int8{-1, 6})
			RecordAt(a, "ints_test.go", 6, []uint8{200})
			RecordAt(b, "ints_test.go", 6, []uint8{201})
			return a, b
		},
		failed: 2,
	},
	"name_mismatch": {
		build: func() (*Set, *Set) {
			a, b := NewSet("alpha"), NewSet("beta")
			RecordAt(a, "a_test.go", 3, []int32{1})
			RecordAt(b, "a_test.go", 3, []int32{1})
			return a, b
		},
		failed: 1,
	},
	"section_count": {
		build: func() (*Set, *Set) {
			a, b := NewSet("sections"), NewSet("sections")
			RecordAt(a, "s_test.go", 1, []int32{1})
			a.NextSection()
			RecordAt(a, "s_test.go", 2, []int32{1})
			RecordAt(b, "s_test.go", 1, []int32{1})
			return a, b
		},
		failed: 1,
	},
	"entry_count": {
		build: func() (*Set, *Set) {
			a, b := NewSet("entries"), NewSet("entries")
			RecordAt(a, "e_test.go", 1, []int32{1})
			RecordAt(a, "e_test.go", 2, []int32{2})
			RecordAt(b, "e_test.go", 1, []int32{1})
			a.NextSection()
			b.NextSection()
			RecordAt(a, "e_test.go", 4, []uint16{9})
			RecordAt(b, "e_test.go", 4, []uint16{9})
			return a, b
		},
		passed: 1,
		failed: 1,
	},
	"shape": {
		build: func() (*Set, *Set) {
			a, b := NewSet("shape"), NewSet("shape")
			RecordAt(a, "shape_test.go", 7, make([]int32, 4))
			RecordAt(b, "shape_test.go", 8, make([]float32, 8))
			return a, b
		},
		failed: 1,
	},
}

func TestCompareReports(t *testing.T) {
	ar, err := txtar.ParseFile("testdata/reports.txtar")
	if err != nil {
		t.Fatal(err)
	}
	if len(ar.Files) != len(scenarios) {
		t.Fatalf("archive has %d files, want %d", len(ar.Files), len(scenarios))
	}

	for _, f := range ar.Files {
		t.Run(f.Name, func(t *testing.T) {
			sc, ok := scenarios[f.Name]
			if !ok {
				t.Fatalf("no scenario for %q", f.Name)
			}
			a, b := sc.build()
			var out strings.Builder
			r := NewTextReporter(&out)
			Compare(a, "scalar", b, "avx2", r)

			if diff := cmp.Diff(string(f.Data), out.String()); diff != "" {
				t.Errorf("report mismatch (-want +got):\n%s", diff)
			}
			if r.Passed() != sc.passed || r.Failed() != sc.failed {
				t.Errorf("tally = %d passed, %d failed; want %d, %d", r.Passed(), r.Failed(), sc.passed, sc.failed)
			}
		})
	}
}

func compareQuiet(t *testing.T, a, b *Set) *TextReporter {
	t.Helper()
	var out strings.Builder
	r := NewTextReporter(&out)
	Compare(a, "A", b, "B", r)
	if r.Success() && out.Len() != 0 {
		t.Errorf("passing comparison wrote output:\n%s", out.String())
	}
	return r
}

func TestCompareExactMatch(t *testing.T) {
	a, b := NewSet("exact"), NewSet("exact")
	RecordAt(a, "x.go", 1, []int32{1, 2, 3, 4})
	RecordAt(b, "x.go", 1, []int32{1, 2, 3, 4})

	r := compareQuiet(t, a, b)
	if r.Passed() != 1 || r.Failed() != 0 {
		t.Errorf("got %d passed, %d failed; want 1, 0", r.Passed(), r.Failed())
	}
}

func TestCompareToleratedDrift(t *testing.T) {
	a, b := NewSet("drift"), NewSet("drift")
	a.SetPrecision(1)
	b.SetPrecision(1)
	RecordAt(a, "x.go", 1, []float32{1})
	RecordAt(b, "x.go", 1, []float32{math.Float32frombits(0x3F800001)})

	r := compareQuiet(t, a, b)
	if r.Passed() != 1 || r.Failed() != 0 {
		t.Errorf("got %d passed, %d failed; want 1, 0", r.Passed(), r.Failed())
	}
}

func TestCompareTakesLargerPrecision(t *testing.T) {
	a, b := NewSet("p"), NewSet("p")
	b.SetPrecision(2)
	RecordAt(a, "x.go", 1, []float64{1})
	RecordAt(b, "x.go", 1, []float64{math.Float64frombits(0x3FF0000000000002)})

	if r := compareQuiet(t, a, b); !r.Success() {
		t.Error("precision of B was not applied")
	}
}

func TestCompareVacuous(t *testing.T) {
	t.Run("EmptySet", func(t *testing.T) {
		a, b := NewSet("v"), NewSet("v")
		RecordAt(a, "x.go", 1, []int32{1})
		r := compareQuiet(t, a, b)
		if r.Passed()+r.Failed() != 0 {
			t.Errorf("empty set tallied %d checks", r.Passed()+r.Failed())
		}
	})
	t.Run("EmptySection", func(t *testing.T) {
		a, b := NewSet("v"), NewSet("v")
		// Section 0 is empty in b because its first push lands in section 1.
		RecordAt(a, "x.go", 1, []int32{1})
		a.NextSection()
		b.NextSection()
		RecordAt(a, "x.go", 2, []int32{2})
		RecordAt(b, "x.go", 2, []int32{2})

		r := compareQuiet(t, a, b)
		if r.Passed() != 1 || r.Failed() != 0 {
			t.Errorf("got %d passed, %d failed; want 1, 0", r.Passed(), r.Failed())
		}
	})
}

func TestCompareShapeMismatchStopsEverything(t *testing.T) {
	a, b := NewSet("s"), NewSet("s")
	RecordAt(a, "x.go", 1, make([]float32, 4))
	RecordAt(b, "x.go", 1, make([]float32, 8))
	RecordAt(a, "x.go", 2, []int32{1})
	RecordAt(b, "x.go", 2, []int32{2})
	a.NextSection()
	b.NextSection()
	RecordAt(a, "x.go", 3, []int32{1})
	RecordAt(b, "x.go", 3, []int32{1})

	var out strings.Builder
	r := NewTextReporter(&out)
	Compare(a, "A", b, "B", r)
	if r.Passed() != 0 || r.Failed() != 1 {
		t.Errorf("got %d passed, %d failed; want 0, 1", r.Passed(), r.Failed())
	}
	if strings.Contains(out.String(), "ERROR") {
		t.Errorf("entries after the mismatch were compared:\n%s", out.String())
	}
}

func TestCompareNaNAndSignedZero(t *testing.T) {
	qnan := math.Float32frombits(0x7FC00000)
	snan := math.Float32frombits(0xFF800001)
	negZero := math.Float32frombits(0x80000000)

	tests := []struct {
		name      string
		a, b      []float32
		zeroEqA   bool
		zeroEqB   bool
		wantMatch bool
	}{
		{"DifferentNaNs", []float32{1, qnan}, []float32{1, snan}, false, false, true},
		{"NaNVersusNumber", []float32{qnan}, []float32{0}, true, true, false},
		{"SignedZeroStrict", []float32{0}, []float32{negZero}, false, false, false},
		{"SignedZeroEqualA", []float32{0}, []float32{negZero}, true, false, true},
		{"SignedZeroEqualB", []float32{negZero}, []float32{0}, false, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := NewSet("z"), NewSet("z")
			a.SetZeroEqual(tt.zeroEqA)
			b.SetZeroEqual(tt.zeroEqB)
			ea := RecordAt(a, "x.go", 1, tt.a)
			eb := RecordAt(b, "x.go", 1, tt.b)
			if _, ok := CompareEntries(ea, eb); ok != tt.wantMatch {
				t.Errorf("CompareEntries = %v, want %v", ok, tt.wantMatch)
			}
		})
	}
}

func TestCompareEntriesIntegerIndex(t *testing.T) {
	a, b := NewSet("i"), NewSet("i")
	ea := RecordAt(a, "x.go", 1, []uint64{1, 2, 3})
	eb := RecordAt(b, "x.go", 1, []uint64{1, 2, 4})
	idx, ok := CompareEntries(ea, eb)
	if ok || idx != 2 {
		t.Errorf("CompareEntries = %d, %v; want 2, false", idx, ok)
	}
}

func TestCompareEntriesShape(t *testing.T) {
	a, b := NewSet("s"), NewSet("s")
	tests := []struct {
		name   string
		ea, eb *Entry
		want   int
	}{
		{"ShorterFloat", RecordAt(a, "x.go", 1, []float32{1}), RecordAt(b, "x.go", 1, []float32{1, 2}), 1},
		{"ShorterInt", RecordAt(a, "x.go", 2, []int16{1, 2}), RecordAt(b, "x.go", 2, []int16{1}), 1},
		{"Kind", RecordAt(a, "x.go", 3, []uint32{0}), RecordAt(b, "x.go", 3, []float32{0}), 1},
		{"EmptyVersusOne", RecordAt(a, "x.go", 4, []float64{}), RecordAt(b, "x.go", 4, []float64{0}), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, ok := CompareEntries(tt.ea, tt.eb)
			if ok || idx != tt.want {
				t.Errorf("CompareEntries = %d, %v; want %d, false", idx, ok, tt.want)
			}
		})
	}
}

type failingWriter struct{ n int }

func (w *failingWriter) Write(p []byte) (int, error) {
	w.n++
	return 0, errors.New("disk full")
}

func TestTextReporterWriteError(t *testing.T) {
	a, b := NewSet("w"), NewSet("w")
	RecordAt(a, "x.go", 1, []int16{1})
	RecordAt(b, "x.go", 1, []int16{2})

	w := &failingWriter{}
	r := NewTextReporter(w)
	Compare(a, "A", b, "B", r)
	if r.Failed() != 1 {
		t.Errorf("Failed() = %d, want 1", r.Failed())
	}
	if r.Err() == nil || w.n != 1 {
		t.Errorf("Err() = %v after %d writes; want the first error and no retries", r.Err(), w.n)
	}
}

func TestFormatElem(t *testing.T) {
	tests := []struct {
		kind Kind
		bits uint64
		want string
	}{
		{KindUint8, 0xFF, "255"},
		{KindInt8, 0xFF, "-1"},
		{KindInt16, 0x8000, "-32768"},
		{KindUint32, 0xFFFFFFFF, "4294967295"},
		{KindInt64, 0xFFFFFFFFFFFFFFFE, "-2"},
		{KindFloat32, 0x7FC00000, "NaN"},
		{KindFloat32, 0x80000000, "-0"},
		{KindFloat64, 0x7FF0000000000000, "+Inf"},
		{KindFloat16, 0x3C00, "1"},
		{KindBFloat16, 0xBF80, "-1"},
		{Kind(200), 0, "?"},
	}
	for _, tt := range tests {
		if got := formatElem(tt.kind, tt.bits); got != tt.want {
			t.Errorf("formatElem(%v, %#x) = %q, want %q", tt.kind, tt.bits, got, tt.want)
		}
	}
}

func TestFatal(t *testing.T) {
	var out strings.Builder
	r := NewTextReporter(&out)
	Fatal(r, "crash", "scalar", "avx2", "target %s panicked: %v", "avx2", "boom")

	want := separator +
		"  For architectures: scalar and avx2 :\n" +
		"  In file \"<unknown>\" :\n" +
		"  In test case \"crash\" :\n" +
		"FATAL: target avx2 panicked: boom\n" +
		separator
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Errorf("Fatal output mismatch (-want +got):\n%s", diff)
	}
	if r.Failed() != 1 {
		t.Errorf("Failed() = %d, want 1", r.Failed())
	}
}
