/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are treated as read-only overrides at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.

type AnimationConfig struct {
	Frames     int     `yaml:"frames"`
	IntervalMs int     `yaml:"interval_ms"`
	IdleStep   float64 `yaml:"idle_step"`
}

type ViewConfig struct {
	GridResolution int     `yaml:"grid_resolution"`
	Zoom           float64 `yaml:"zoom"`
	IdleOnStart    bool    `yaml:"idle_on_start"`
}

type TourConfig struct {
	MaxPoints int `yaml:"max_points"`
}

type HistoryConfig struct {
	MaxBytes      int `yaml:"max_bytes"`
	MaxPerTarget  int `yaml:"max_per_target"`
	MinIntervalMs int `yaml:"min_interval_ms"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int             `yaml:"config_version"`
	Animation     AnimationConfig `yaml:"animation"`
	View          ViewConfig      `yaml:"view"`
	Tour          TourConfig      `yaml:"tour"`
	History       HistoryConfig   `yaml:"history"`
	Logging       LoggingConfig   `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Animation:     AnimationConfig{Frames: 25, IntervalMs: 30, IdleStep: 0.04},
		View:          ViewConfig{GridResolution: 100, Zoom: 80, IdleOnStart: true},
		Tour:          TourConfig{MaxPoints: 10},
		History:       HistoryConfig{MaxBytes: 8 * 1024 * 1024, MaxPerTarget: 50, MinIntervalMs: 0},
		Logging:       LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvConfigPath    = "GEOC_CONFIG"
	EnvFrames        = "GEOC_FRAMES"
	EnvIntervalMs    = "GEOC_INTERVAL_MS"
	EnvIdleStep      = "GEOC_IDLE_STEP"
	EnvGridRes       = "GEOC_GRID_RES"
	EnvZoom          = "GEOC_ZOOM"
	EnvMaxTourPoints = "GEOC_MAX_TOUR_POINTS"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "GEOC_LOG_LEVEL"
	EnvLogFormat = "GEOC_LOG_FORMAT"
	EnvLogSource = "GEOC_LOG_SOURCE"
	EnvLogFile   = "GEOC_LOG_FILE"
)

// ConfigPath returns the per-user config file path. GEOC_CONFIG wins when set.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, nil
	}
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "Geoc")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "Geoc")
	default: // linux and others
		base = filepath.Join(os.Getenv("HOME"), ".config", "geoc")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and merges environment overrides.
// A file that exists but does not parse is reported; a missing file is not.
func Load() (AppConfig, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
		mergeInto(&cfg, &fileCfg)
	case !errors.Is(err, os.ErrNotExist):
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Validate rejects settings the engine cannot run with.
func (c AppConfig) Validate() error {
	var errs []error
	if c.Animation.Frames <= 0 {
		errs = append(errs, fmt.Errorf("animation.frames must be positive, got %d", c.Animation.Frames))
	}
	if c.Animation.IntervalMs <= 0 {
		errs = append(errs, fmt.Errorf("animation.interval_ms must be positive, got %d", c.Animation.IntervalMs))
	}
	if c.View.GridResolution <= 0 {
		errs = append(errs, fmt.Errorf("view.grid_resolution must be positive, got %d", c.View.GridResolution))
	}
	if c.View.Zoom <= 0 {
		errs = append(errs, fmt.Errorf("view.zoom must be positive, got %g", c.View.Zoom))
	}
	if c.Tour.MaxPoints < 0 {
		errs = append(errs, fmt.Errorf("tour.max_points must not be negative, got %d", c.Tour.MaxPoints))
	}
	return errors.Join(errs...)
}

// Interval returns the tick cadence.
func (a AnimationConfig) Interval() time.Duration {
	if a.IntervalMs <= 0 {
		return time.Duration(Defaults().Animation.IntervalMs) * time.Millisecond
	}
	return time.Duration(a.IntervalMs) * time.Millisecond
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if src.Animation.Frames != 0 {
		dst.Animation.Frames = src.Animation.Frames
	}
	if src.Animation.IntervalMs != 0 {
		dst.Animation.IntervalMs = src.Animation.IntervalMs
	}
	if src.Animation.IdleStep != 0 {
		dst.Animation.IdleStep = src.Animation.IdleStep
	}
	if src.View.GridResolution != 0 {
		dst.View.GridResolution = src.View.GridResolution
	}
	if src.View.Zoom != 0 {
		dst.View.Zoom = src.View.Zoom
	}
	// booleans: copy directly from src (file) so user preferences persist
	dst.View.IdleOnStart = src.View.IdleOnStart
	if src.Tour.MaxPoints != 0 {
		dst.Tour.MaxPoints = src.Tour.MaxPoints
	}
	if src.History.MaxBytes != 0 {
		dst.History.MaxBytes = src.History.MaxBytes
	}
	if src.History.MaxPerTarget != 0 {
		dst.History.MaxPerTarget = src.History.MaxPerTarget
	}
	if src.History.MinIntervalMs != 0 {
		dst.History.MinIntervalMs = src.History.MinIntervalMs
	}
	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func envInt(key string, dst *int) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func envFloat(key string, dst *float64) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	envInt(EnvFrames, &cfg.Animation.Frames)
	envInt(EnvIntervalMs, &cfg.Animation.IntervalMs)
	envFloat(EnvIdleStep, &cfg.Animation.IdleStep)
	envInt(EnvGridRes, &cfg.View.GridResolution)
	envFloat(EnvZoom, &cfg.View.Zoom)
	envInt(EnvMaxTourPoints, &cfg.Tour.MaxPoints)
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		lv := strings.ToLower(v)
		cfg.Logging.Source = lv == "1" || lv == "true" || lv == "on" || lv == "yes"
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	var env string
	switch key {
	case "animation.frames":
		env = EnvFrames
	case "animation.interval_ms":
		env = EnvIntervalMs
	case "animation.idle_step":
		env = EnvIdleStep
	case "view.grid_resolution":
		env = EnvGridRes
	case "view.zoom":
		env = EnvZoom
	case "tour.max_points":
		env = EnvMaxTourPoints
	case "logging.level":
		env = EnvLogLevel
	case "logging.format":
		env = EnvLogFormat
	case "logging.source":
		env = EnvLogSource
	case "logging.file":
		env = EnvLogFile
	default:
		return "", false
	}
	if os.Getenv(env) != "" {
		return env, true
	}
	return "", false
}
