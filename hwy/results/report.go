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
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/ajroetker/hwyverify/hwy"
)

// Reporter collects the outcome of each comparison and provides the sink
// diagnostics are written to.
type Reporter interface {
	// AddResult records one passed or failed check.
	AddResult(ok bool)
	// Out returns the writer diagnostics are printed to.
	Out() io.Writer
}

// TextReporter is a Reporter that counts results and writes diagnostics to
// an io.Writer. Write errors never interrupt a comparison; the first one is
// kept and returned by Err.
type TextReporter struct {
	w      *stickyWriter
	passed int
	failed int
}

// NewTextReporter returns a TextReporter that writes to w.
func NewTextReporter(w io.Writer) *TextReporter {
	return &TextReporter{w: &stickyWriter{w: w}}
}

// AddResult implements Reporter.
func (r *TextReporter) AddResult(ok bool) {
	if ok {
		r.passed++
	} else {
		r.failed++
	}
}

// Out implements Reporter.
func (r *TextReporter) Out() io.Writer { return r.w }

// Passed returns the number of passed checks.
func (r *TextReporter) Passed() int { return r.passed }

// Failed returns the number of failed checks.
func (r *TextReporter) Failed() int { return r.failed }

// Success reports whether no check has failed.
func (r *TextReporter) Success() bool { return r.failed == 0 }

// Err returns the first error the underlying writer returned, if any.
func (r *TextReporter) Err() error { return r.w.err }

// stickyWriter drops writes after the first error and remembers it.
type stickyWriter struct {
	w   io.Writer
	err error
}

func (s *stickyWriter) Write(p []byte) (int, error) {
	if s.err != nil {
		return len(p), nil
	}
	if _, err := s.w.Write(p); err != nil {
		s.err = err
	}
	return len(p), nil
}

const separator = "--------------------------------------------------------------\n"

// diagnostic formats the report for one pair of Sets.
type diagnostic struct {
	w            io.Writer
	name         string
	archA, archB string
}

func (d *diagnostic) printf(format string, args ...any) {
	fmt.Fprintf(d.w, format, args...)
}

// header prints the separator and the context lines. line 0 omits the line
// number and withCase adds the test case line.
func (d *diagnostic) header(file string, line int, withCase bool) {
	d.printf(separator)
	d.printf("  For architectures: %s and %s :\n", d.archA, d.archB)
	if file == "" {
		file = "<unknown>"
	}
	if line > 0 {
		d.printf("  In file %q at line %d :\n", file, line)
	} else {
		d.printf("  In file %q :\n", file)
	}
	if withCase {
		d.printf("  In test case %q :\n", d.name)
	}
}

func (d *diagnostic) fatalf(file string, line int, withCase bool, format string, args ...any) {
	d.header(file, line, withCase)
	d.printf("FATAL: "+format+"\n", args...)
	d.printf(separator)
}

// shapeMismatch reports every attribute that differs between two entries
// with the same position.
func (d *diagnostic) shapeMismatch(section, id int, a, b *Entry) {
	d.header(a.file, a.line, true)
	if a.line != b.line {
		d.printf("FATAL: Line numbers do not match for items with the same sequence number: section: %d id: %d line_A: %d line_B: %d\n",
			section, id, a.line, b.line)
	}
	if a.kind != b.kind {
		d.printf("FATAL: Types do not match for items with the same sequence number: id: %d type_A: %v type_B: %v\n",
			id, a.kind, b.kind)
	}
	if a.length != b.length {
		d.printf("FATAL: Number of elements do not match for items with the same sequence number: id: %d length_A: %d length_B: %d\n",
			id, a.length, b.length)
	}
	d.printf(separator)
}

func (d *diagnostic) valueMismatch(a, b *Entry, index int, precision uint32) {
	d.header(a.file, a.line, true)
	d.printf("  Sequence number: %d\n", a.seq)
	d.printf("  First differing element: %d\n", index)
	d.printf("ERROR: Vectors not equal:\n")
	d.vector(a, "A : ")
	d.vector(b, "B : ")
	if precision > 0 {
		d.printf("  Precision: %dULP\n", precision)
	}
	d.printf(separator)
}

// vector prints e twice: raw bits in hex, then typed values.
func (d *diagnostic) vector(e *Entry, prefix string) {
	hex := make([]string, e.length)
	num := make([]string, e.length)
	for i := range e.length {
		bits := e.bits(i)
		hex[i] = fmt.Sprintf("%0*x", e.ElemSize()*2, bits)
		num[i] = formatElem(e.kind, bits)
	}
	d.printf("%s[ %s ]\n", prefix, strings.Join(hex, " ; "))
	d.printf("%s[ %s ]\n", prefix, strings.Join(num, " ; "))
}

// formatElem renders one element in decimal. 8-bit kinds print as numbers,
// floats in the shortest form that round-trips.
func formatElem(k Kind, bits uint64) string {
	switch k {
	case KindUint8, KindUint16, KindUint32, KindUint64:
		return strconv.FormatUint(bits, 10)
	case KindInt8:
		return strconv.FormatInt(int64(int8(bits)), 10)
	case KindInt16:
		return strconv.FormatInt(int64(int16(bits)), 10)
	case KindInt32:
		return strconv.FormatInt(int64(int32(bits)), 10)
	case KindInt64:
		return strconv.FormatInt(int64(bits), 10)
	case KindFloat32:
		return strconv.FormatFloat(float64(math.Float32frombits(uint32(bits))), 'g', -1, 32)
	case KindFloat64:
		return strconv.FormatFloat(math.Float64frombits(bits), 'g', -1, 64)
	case KindFloat16:
		return formatHalf(hwy.Float16(bits))
	case KindBFloat16:
		return formatHalf(hwy.BFloat16(bits))
	default:
		return "?"
	}
}

func formatHalf[T hwy.HalfFloats](h T) string {
	return strconv.FormatFloat(float64(h.Float32()), 'g', -1, 32)
}

// Fatal reports a problem that prevented two recordings of testCase from
// being compared at all, such as a target that crashed while recording, and
// adds one failed result.
func Fatal(r Reporter, testCase, archA, archB string, format string, args ...any) {
	d := &diagnostic{w: r.Out(), name: testCase, archA: archA, archB: archB}
	d.fatalf("", 0, true, format, args...)
	r.AddResult(false)
}
