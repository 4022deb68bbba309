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

// Command hwyverify runs the self-check suite on several SIMD targets and
// reports every result that differs from the baseline target.
//
// Usage:
//
//	hwyverify                                 # all available targets vs scalar
//	hwyverify run --targets sse2,avx2,avx512   # explicit (emulated) targets
//	hwyverify run --cases 'sum_*' --tolerances tol.yaml
//	hwyverify targets                         # what this CPU supports
//	hwyverify ulp 1 1.0000001 --float32       # steps between two values
//
// Settings can also come from HWYVERIFY_* environment variables or a .env
// file; flags win over both. The exit status is 1 when a check failed and 2
// when the run could not start or its metrics file could not be written.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errChecksFailed):
		return 1
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
}
