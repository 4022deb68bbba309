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
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exports comparison outcomes as Prometheus counters.
type Metrics struct {
	checks   *prometheus.CounterVec
	failures *prometheus.CounterVec
}

// NewMetrics registers the comparison counters on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		checks: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hwyverify_checks_total",
				Help: "Total number of compared entries, by target pair and outcome",
			},
			[]string{"baseline", "target", "result"}, // result: "pass" | "fail"
		),
		failures: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hwyverify_case_failures_total",
				Help: "Total number of test cases with at least one failed check, by target pair",
			},
			[]string{"baseline", "target"},
		),
	}
}

// Wrap returns a Reporter that forwards to inner and counts every result
// under the archA/archB pair.
func (m *Metrics) Wrap(inner Reporter, archA, archB string) *MetricsReporter {
	return &MetricsReporter{
		inner: inner,
		pass:  m.checks.WithLabelValues(archA, archB, "pass"),
		fail:  m.checks.WithLabelValues(archA, archB, "fail"),
		cases: m.failures.WithLabelValues(archA, archB),
	}
}

// MetricsReporter counts results in Prometheus before forwarding them.
type MetricsReporter struct {
	inner  Reporter
	pass   prometheus.Counter
	fail   prometheus.Counter
	cases  prometheus.Counter
	failed bool
}

// AddResult implements Reporter.
func (m *MetricsReporter) AddResult(ok bool) {
	if ok {
		m.pass.Inc()
	} else {
		m.fail.Inc()
		if !m.failed {
			m.failed = true
			m.cases.Inc()
		}
	}
	m.inner.AddResult(ok)
}

// Out implements Reporter.
func (m *MetricsReporter) Out() io.Writer { return m.inner.Out() }

// Failed reports whether any result forwarded through m failed.
func (m *MetricsReporter) Failed() bool { return m.failed }
