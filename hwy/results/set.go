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
	"encoding/binary"
	"fmt"
)

// Entry is one recorded vector.
type Entry struct {
	kind      Kind
	length    int
	data      []byte
	file      string
	line      int
	seq       int
	precision uint32
	zeroEqual bool
}

// Kind returns the element type.
func (e *Entry) Kind() Kind { return e.kind }

// Len returns the number of elements.
func (e *Entry) Len() int { return e.length }

// ElemSize returns the width of one element in bytes.
func (e *Entry) ElemSize() int { return e.kind.Size() }

// Bytes returns the raw element storage, Len()*ElemSize() bytes in native
// byte order. The producer fills it right after Push; it must not be
// modified once the entry takes part in a comparison.
func (e *Entry) Bytes() []byte { return e.data }

// File returns the source file the entry was recorded from.
func (e *Entry) File() string { return e.file }

// Line returns the source line the entry was recorded from.
func (e *Entry) Line() int { return e.line }

// Seq returns the 1-based position of the entry in its Set.
func (e *Entry) Seq() int { return e.seq }

// Precision returns the tolerance in ULPs. It is always 0 for integer kinds.
func (e *Entry) Precision() uint32 { return e.precision }

// ZeroEqual reports whether +0 and -0 compare equal for this entry.
func (e *Entry) ZeroEqual() bool { return e.zeroEqual }

// bits returns element i zero-extended to 64 bits.
func (e *Entry) bits(i int) uint64 {
	switch e.ElemSize() {
	case 1:
		return uint64(e.data[i])
	case 2:
		return uint64(binary.NativeEndian.Uint16(e.data[i*2:]))
	case 4:
		return uint64(binary.NativeEndian.Uint32(e.data[i*4:]))
	default:
		return binary.NativeEndian.Uint64(e.data[i*8:])
	}
}

// Section is an ordered group of entries, usually one sub-test.
type Section []*Entry

// Set is the ordered log of vectors recorded by one test case on one target.
//
// A Set is owned by a single goroutine while it is being recorded and is
// read-only afterwards. Run the same test on several targets with one Set
// each.
type Set struct {
	name     string
	sections []Section
	seq      int

	precision uint32
	zeroEqual bool
	current   int
}

// NewSet returns an empty Set for the test case called name.
func NewSet(name string) *Set {
	return &Set{name: name, seq: 1}
}

// Name returns the test case name.
func (s *Set) Name() string { return s.name }

// Push appends a new entry of length elements to the current section and
// returns it so the caller can fill Bytes. The entry takes the current
// precision and zero-equal settings and the next sequence number.
//
// Push panics if kind is not a valid Kind or length is negative.
func (s *Set) Push(kind Kind, length int, file string, line int) *Entry {
	if !kind.Valid() {
		panic(fmt.Sprintf("results: invalid kind %d", kind))
	}
	if length < 0 {
		panic(fmt.Sprintf("results: negative length %d", length))
	}
	for len(s.sections) <= s.current {
		s.sections = append(s.sections, nil)
	}

	e := &Entry{
		kind:      kind,
		length:    length,
		data:      make([]byte, length*kind.Size()),
		file:      file,
		line:      line,
		seq:       s.seq,
		zeroEqual: s.zeroEqual,
	}
	if kind.IsFloat() {
		e.precision = s.precision
	}
	s.seq++
	s.sections[s.current] = append(s.sections[s.current], e)
	return e
}

// NextSection makes subsequent Push calls append to a new section.
// Sections are created when first pushed to, so calling NextSection on a
// test that then records nothing adds no section.
func (s *Set) NextSection() {
	s.current++
}

// SetPrecision sets the ULP tolerance for entries pushed from now on.
func (s *Set) SetPrecision(ulps uint32) {
	s.precision = ulps
}

// SetZeroEqual sets whether entries pushed from now on treat +0 and -0 as
// equal.
func (s *Set) SetZeroEqual(eq bool) {
	s.zeroEqual = eq
}

// Precision returns the tolerance applied to the next pushed entry.
func (s *Set) Precision() uint32 { return s.precision }

// Sections returns the recorded sections. The slice must not be modified.
func (s *Set) Sections() []Section { return s.sections }

// NumSections returns the number of sections created so far.
func (s *Set) NumSections() int { return len(s.sections) }

// Section returns section i.
func (s *Set) Section(i int) Section { return s.sections[i] }

// Len returns the total number of recorded entries.
func (s *Set) Len() int { return s.seq - 1 }

// firstFile returns the file of the first entry of the first section, or ""
// if that section is missing or empty.
func (s *Set) firstFile() string {
	if len(s.sections) == 0 || len(s.sections[0]) == 0 {
		return ""
	}
	return s.sections[0][0].file
}
