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
	"bytes"
)

// Compare checks that two Sets recorded by the same test on different
// targets agree, writing a diagnostic to r for every disagreement and adding
// one result to r per compared entry.
//
// Structural disagreements are fatal. Differing test names, section counts,
// or an entry whose line, kind or length differs from its counterpart abort
// the comparison after one failed result, since nothing after them can be
// aligned. A section whose entry counts differ is reported and skipped.
// A Set with no sections, and an empty section on either side, is skipped
// silently: tests may record nothing on targets they do not apply to.
func Compare(a *Set, archA string, b *Set, archB string, r Reporter) {
	d := &diagnostic{w: r.Out(), name: a.Name(), archA: archA, archB: archB}

	if a.Name() != b.Name() {
		d.fatalf(fileOf(a, b), 0, false, "Test case names do not match: %q and %q", a.Name(), b.Name())
		r.AddResult(false)
		return
	}

	if a.NumSections() == 0 || b.NumSections() == 0 {
		return
	}
	if a.NumSections() != b.NumSections() {
		d.fatalf(fileOf(a, b), 0, true, "The number of result sections do not match: %d/%d",
			a.NumSections(), b.NumSections())
		r.AddResult(false)
		return
	}

	for is := range a.NumSections() {
		sa, sb := a.Section(is), b.Section(is)
		if len(sa) == 0 || len(sb) == 0 {
			continue
		}
		if len(sa) != len(sb) {
			d.fatalf(sa[0].file, 0, true, "The number of results in a section do not match: section: %d result count: %d/%d",
				is, len(sa), len(sb))
			r.AddResult(false)
			continue
		}

		for i, ea := range sa {
			eb := sb[i]
			if !sameShape(ea, eb) {
				d.shapeMismatch(is, i, ea, eb)
				r.AddResult(false)
				return
			}

			idx, ok := CompareEntries(ea, eb)
			if !ok {
				d.valueMismatch(ea, eb, idx, effectivePrecision(ea, eb))
			}
			r.AddResult(ok)
		}
	}
}

// CompareEntries compares the values of two entries. It returns -1 and true
// when they are equivalent, otherwise the index of the first element that is
// not and false. Entries of different kinds or lengths are never equivalent;
// the index is then the length of the shorter one.
//
// Byte-identical storage is always equivalent. Otherwise float kinds allow the
// larger of the two precisions and treat +0 and -0 as equal if either entry
// asks for it; integer kinds must match exactly.
func CompareEntries(a, b *Entry) (int, bool) {
	if a.kind != b.kind || a.length != b.length {
		return min(a.length, b.length), false
	}
	if bytes.Equal(a.data, b.data) {
		return -1, true
	}
	if f, ok := a.kind.Format(); ok {
		idx := f.FirstMismatch(a.data, b.data, effectivePrecision(a, b), a.zeroEqual || b.zeroEqual)
		return idx, idx < 0
	}
	size := a.ElemSize()
	for i := range a.length {
		if !bytes.Equal(a.data[i*size:(i+1)*size], b.data[i*size:(i+1)*size]) {
			return i, false
		}
	}
	return -1, true
}

func sameShape(a, b *Entry) bool {
	return a.line == b.line && a.kind == b.kind && a.length == b.length
}

func effectivePrecision(a, b *Entry) uint32 {
	if !a.kind.IsFloat() {
		return 0
	}
	return max(a.precision, b.precision)
}

// fileOf picks a file name to report for set-level problems.
func fileOf(a, b *Set) string {
	if f := a.firstFile(); f != "" {
		return f
	}
	return b.firstFile()
}
