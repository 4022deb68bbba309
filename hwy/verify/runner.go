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
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/ajroetker/hwyverify/hwy"
	"github.com/ajroetker/hwyverify/hwy/contrib/workerpool"
	"github.com/ajroetker/hwyverify/hwy/results"
)

// Config controls a Runner.
type Config struct {
	// Baseline is the target every other target is compared against.
	Baseline hwy.DispatchLevel

	// Targets lists the targets to run. The baseline is always run and may
	// be omitted. Empty means hwy.AvailableLevels().
	Targets []hwy.DispatchLevel

	// Filter selects cases by name, see Suite.Match.
	Filter string

	// Tolerances sets per-case starting tolerances.
	Tolerances Tolerances

	// Workers bounds how many targets record at once; <= 0 uses GOMAXPROCS.
	Workers int

	// Logger receives progress logs. Nil discards them.
	Logger *zerolog.Logger

	// Metrics, when set, counts every check in Prometheus.
	Metrics *results.Metrics
}

// Summary is the outcome of a Run.
type Summary struct {
	Cases       int
	Targets     []hwy.DispatchLevel
	Passed      int
	Failed      int
	FailedCases []string
}

// OK reports whether every check passed.
func (s Summary) OK() bool {
	return s.Failed == 0
}

// Runner runs the cases of a Suite on several targets.
type Runner struct {
	suite *Suite
	cfg   Config
	log   zerolog.Logger
}

// NewRunner returns a Runner for suite.
func NewRunner(suite *Suite, cfg Config) *Runner {
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}
	return &Runner{suite: suite, cfg: cfg, log: log}
}

// targets returns the baseline followed by the other requested targets,
// without duplicates.
func (r *Runner) targets() []hwy.DispatchLevel {
	levels := r.cfg.Targets
	if len(levels) == 0 {
		levels = hwy.AvailableLevels()
	}
	return lo.Uniq(append([]hwy.DispatchLevel{r.cfg.Baseline}, levels...))
}

// Run runs every selected case on every target, writes diagnostics to out
// and returns the tally. An error means nothing was compared.
func (r *Runner) Run(out io.Writer) (Summary, error) {
	cases, err := r.suite.Match(r.cfg.Filter)
	if err != nil {
		return Summary{}, err
	}
	if len(cases) == 0 {
		return Summary{}, fmt.Errorf("%w (filter %q)", ErrNoCases, r.cfg.Filter)
	}

	levels := r.targets()
	log := r.log
	if len(levels) == 1 {
		log.Warn().Str("baseline", levels[0].String()).Msg("only the baseline target selected, nothing to compare")
	}
	log.Info().
		Int("cases", len(cases)).
		Strs("targets", lo.Map(levels, func(l hwy.DispatchLevel, _ int) string { return l.String() })).
		Msg("starting verification")

	pool := workerpool.New(r.cfg.Workers)
	defer pool.Close()

	sum := Summary{Cases: len(cases), Targets: levels}
	start := time.Now()
	for _, c := range cases {
		rec := make([]recording, len(levels))
		pool.Each(len(levels), func(i int) {
			rec[i] = r.record(c, Target{Level: levels[i]})
		})

		passed, failed := r.compare(c.Name, rec, out)
		sum.Passed += passed
		sum.Failed += failed
		ev := log.Debug()
		if failed > 0 {
			sum.FailedCases = append(sum.FailedCases, c.Name)
			ev = log.Warn()
		}
		ev.Str("case", c.Name).Int("passed", passed).Int("failed", failed).Msg("case compared")
	}

	log.Info().
		Int("passed", sum.Passed).
		Int("failed", sum.Failed).
		Dur("elapsed", time.Since(start)).
		Msg("verification finished")
	return sum, nil
}

// recording is the Set one target produced for one case.
type recording struct {
	target Target
	set    *results.Set
	panic  any
}

func (r *Runner) record(c Case, t Target) (rec recording) {
	rec.target = t
	rec.set = results.NewSet(c.Name)
	r.cfg.Tolerances.apply(c.Name, rec.set)
	defer func() {
		rec.panic = recover()
	}()
	c.Run(t, rec.set)
	return rec
}

// compare checks every recording against the baseline in rec[0].
func (r *Runner) compare(name string, rec []recording, out io.Writer) (passed, failed int) {
	base := rec[0]
	for _, other := range rec[1:] {
		tr := results.NewTextReporter(out)
		var rep results.Reporter = tr
		if r.cfg.Metrics != nil {
			rep = r.cfg.Metrics.Wrap(tr, base.target.Name(), other.target.Name())
		}

		switch {
		case base.panic != nil:
			results.Fatal(rep, name, base.target.Name(), other.target.Name(),
				"Test case panicked on %s: %v", base.target.Name(), base.panic)
		case other.panic != nil:
			results.Fatal(rep, name, base.target.Name(), other.target.Name(),
				"Test case panicked on %s: %v", other.target.Name(), other.panic)
		default:
			results.Compare(base.set, base.target.Name(), other.set, other.target.Name(), rep)
		}

		if err := tr.Err(); err != nil {
			r.log.Error().Err(err).Str("case", name).Msg("writing diagnostics failed")
		}
		passed += tr.Passed()
		failed += tr.Failed()
	}
	return passed, failed
}
