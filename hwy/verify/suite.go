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

// Package verify runs a suite of result-recording test cases once per SIMD
// target and compares every target against a baseline.
//
// A Case records its vectors into the results.Set it is given, choosing its
// implementation from the Target. The Runner records all targets of a case
// concurrently, one Set per target, then hands each baseline/target pair to
// results.Compare.
package verify

import (
	"errors"
	"fmt"
	"path"
	"slices"

	"github.com/ajroetker/hwyverify/hwy"
	"github.com/ajroetker/hwyverify/hwy/results"
)

var (
	// ErrDuplicateCase is returned when a case name is registered twice.
	ErrDuplicateCase = errors.New("verify: duplicate case")

	// ErrNoCases is returned when no registered case matches the filter.
	ErrNoCases = errors.New("verify: no cases to run")
)

// Target is the SIMD target a case is being run for.
type Target struct {
	Level hwy.DispatchLevel
}

// Name returns the target label used in diagnostics.
func (t Target) Name() string { return t.Level.String() }

// Width returns the vector width in bytes.
func (t Target) Width() int { return hwy.LevelWidth(t.Level) }

// Lanes returns how many elements of elemSize bytes fit in one vector.
func (t Target) Lanes(elemSize int) int { return max(1, t.Width()/elemSize) }

// Case is one test case. Run is called once per target, possibly from
// several goroutines at once, each time with a fresh Set.
type Case struct {
	Name string
	Run  func(t Target, s *results.Set)
}

// Suite is an ordered collection of uniquely named cases.
type Suite struct {
	cases []Case
}

// NewSuite returns an empty suite.
func NewSuite() *Suite {
	return &Suite{}
}

// Add registers c.
func (s *Suite) Add(c Case) error {
	if c.Name == "" || c.Run == nil {
		return fmt.Errorf("verify: case %q needs a name and a Run function", c.Name)
	}
	if slices.ContainsFunc(s.cases, func(o Case) bool { return o.Name == c.Name }) {
		return fmt.Errorf("%w: %q", ErrDuplicateCase, c.Name)
	}
	s.cases = append(s.cases, c)
	return nil
}

// MustAdd is Add for init-time registration; it panics on error.
func (s *Suite) MustAdd(c Case) {
	if err := s.Add(c); err != nil {
		panic(err)
	}
}

// Cases returns the registered cases in registration order.
func (s *Suite) Cases() []Case {
	return slices.Clone(s.cases)
}

// Match returns the cases whose name matches the path.Match pattern.
// An empty pattern matches everything.
func (s *Suite) Match(pattern string) ([]Case, error) {
	if pattern == "" {
		return s.Cases(), nil
	}
	var out []Case
	for _, c := range s.cases {
		ok, err := path.Match(pattern, c.Name)
		if err != nil {
			return nil, fmt.Errorf("verify: case filter %q: %w", pattern, err)
		}
		if ok {
			out = append(out, c)
		}
	}
	return out, nil
}
