/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func isolate(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv(EnvConfigPath, p)
	return p
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	isolate(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Animation.Frames != 25 || cfg.Animation.IntervalMs != 30 || cfg.View.GridResolution != 100 || cfg.View.Zoom != 80 {
		t.Fatalf("unexpected defaults: %#v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	isolate(t)
	cfg := Defaults()
	cfg.Animation.Frames = 40
	cfg.Tour.MaxPoints = 8
	cfg.Logging.Level = "debug"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	got, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.Animation.Frames != 40 || got.Tour.MaxPoints != 8 || got.Logging.Level != "debug" {
		t.Fatalf("saved values not loaded back: %#v", got)
	}
}

func TestLoadReportsBrokenFile(t *testing.T) {
	p := isolate(t)
	if err := os.WriteFile(p, []byte("animation: [not, a, map"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "parse") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestEnvOverridesAnimation(t *testing.T) {
	isolate(t)
	t.Setenv(EnvFrames, "10")
	t.Setenv(EnvIntervalMs, "16")
	t.Setenv(EnvIdleStep, "0.03")
	t.Setenv(EnvGridRes, "not-a-number")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Animation.Frames != 10 || cfg.Animation.IdleStep != 0.03 {
		t.Fatalf("env overrides not applied: %#v", cfg.Animation)
	}
	if cfg.Animation.Interval() != 16*time.Millisecond {
		t.Fatalf("Interval() = %v", cfg.Animation.Interval())
	}
	if cfg.View.GridResolution != 100 {
		t.Fatalf("invalid env value must be ignored, got %d", cfg.View.GridResolution)
	}
	if env, ok := EnvOverrideFor("animation.frames"); !ok || env != EnvFrames {
		t.Fatalf("EnvOverrideFor(animation.frames) = %q, %v", env, ok)
	}
	// reported as overridden even though the value was unusable
	if _, ok := EnvOverrideFor("view.grid_resolution"); !ok {
		t.Fatalf("expected grid resolution to be reported as overridden")
	}
	if _, ok := EnvOverrideFor("nope"); ok {
		t.Fatalf("unknown key must not be reported")
	}
}

func TestMergeIncludesLogging(t *testing.T) {
	dst := Defaults()
	src := Defaults()
	src.Logging.Level = "debug"
	src.Logging.Format = "json"
	src.Logging.Source = true
	src.Logging.File = "/tmp/geoc.log"
	mergeInto(&dst, &src)
	if dst.Logging.Level != "debug" || dst.Logging.Format != "json" || !dst.Logging.Source || dst.Logging.File != "/tmp/geoc.log" {
		t.Fatalf("logging fields not merged correctly: %#v", dst.Logging)
	}
}

func TestEnvOverridesLogging(t *testing.T) {
	isolate(t)
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogFormat, "json")
	t.Setenv(EnvLogSource, "1")
	t.Setenv(EnvLogFile, "/var/tmp/geoc.log")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Logging.Level != "error" || cfg.Logging.Format != "json" || !cfg.Logging.Source || cfg.Logging.File != "/var/tmp/geoc.log" {
		t.Fatalf("env overrides not applied to logging: %#v", cfg.Logging)
	}
}

func TestValidateRejectsNonPositive(t *testing.T) {
	cfg := Defaults()
	cfg.Animation.Frames = 0
	cfg.View.GridResolution = -1
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "animation.frames") || !strings.Contains(msg, "view.grid_resolution") {
		t.Fatalf("expected both problems reported, got %q", msg)
	}
}
