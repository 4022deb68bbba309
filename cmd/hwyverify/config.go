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

package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"

	"github.com/ajroetker/hwyverify/hwy"
)

// envPrefix is the prefix of every environment variable read by Config.
const envPrefix = "HWYVERIFY"

// Config holds the settings of a verification run.
type Config struct {
	Baseline   string   `envconfig:"BASELINE" default:"scalar"`
	Targets    []string `envconfig:"TARGETS"`
	Cases      string   `envconfig:"CASES"`
	Tolerances string   `envconfig:"TOLERANCES"`
	Workers    int      `envconfig:"WORKERS" default:"0"`
	MetricsOut string   `envconfig:"METRICS_OUT"`
	LogLevel   string   `envconfig:"LOG_LEVEL" default:"info"`
	LogJSON    bool     `envconfig:"LOG_JSON" default:"false"`
}

// loadConfig reads envFile, if it exists, into the environment without
// overriding variables that are already set, then decodes HWYVERIFY_*.
func loadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("reading environment: %w", err)
	}
	return cfg, nil
}

// levels parses the baseline and target names.
func (c Config) levels() (hwy.DispatchLevel, []hwy.DispatchLevel, error) {
	base, err := hwy.ParseLevel(c.Baseline)
	if err != nil {
		return 0, nil, fmt.Errorf("baseline: %w", err)
	}
	var targets []hwy.DispatchLevel
	for _, name := range c.Targets {
		if strings.TrimSpace(name) == "" {
			continue
		}
		l, err := hwy.ParseLevel(name)
		if err != nil {
			return 0, nil, fmt.Errorf("targets: %w", err)
		}
		targets = append(targets, l)
	}
	return base, targets, nil
}

// logger builds the zerolog logger described by c, writing to w.
func (c Config) logger(w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("log level: %w", err)
	}
	if !c.LogJSON {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: true}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}
