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

package verify

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/ajroetker/hwyverify/hwy/results"
)

// Tolerance is the starting comparison setting for a case. The case may
// still change it with SetPrecision and SetZeroEqual while recording.
type Tolerance struct {
	Precision uint32 `json:"precision"`
	ZeroEqual bool   `json:"zeroEqual"`
}

// Tolerances maps case names to their starting tolerance.
//
//	sum_float32:
//	  precision: 128
//	abs_zero_float32:
//	  zeroEqual: true
type Tolerances map[string]Tolerance

// ParseTolerances decodes a YAML (or JSON) tolerance document.
func ParseTolerances(data []byte) (Tolerances, error) {
	var t Tolerances
	if err := yaml.UnmarshalStrict(data, &t); err != nil {
		return nil, fmt.Errorf("verify: parsing tolerances: %w", err)
	}
	return t, nil
}

// LoadTolerances reads and decodes the tolerance file at path.
func LoadTolerances(path string) (Tolerances, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("verify: reading tolerances: %w", err)
	}
	return ParseTolerances(data)
}

// apply sets the starting tolerance for name on s, if there is one.
func (t Tolerances) apply(name string, s *results.Set) {
	tol, ok := t[name]
	if !ok {
		return
	}
	s.SetPrecision(tol.Precision)
	s.SetZeroEqual(tol.ZeroEqual)
}
