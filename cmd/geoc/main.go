/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"geoc/internal/config"
	"geoc/internal/crash"
	"geoc/internal/engine"
	"geoc/internal/geom"
	"geoc/internal/history"
	"geoc/internal/input"
	applog "geoc/internal/log"
	"geoc/internal/render"
	"geoc/internal/term"
	"geoc/internal/ui"
	"geoc/internal/version"
)

func usage() {
	fmt.Println("geoc - 3D transform playground")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  geoc version|-v|--version                  Show version")
	fmt.Println("  geoc view [<points>]                       Interactive terminal viewer")
	fmt.Println("  geoc ui [<points>]                         Launch desktop UI (build with -tags fyne for full UI)")
	fmt.Println("  geoc tour <points>                         Print the shortest closed tour through the points")
	fmt.Println("  geoc export png|pdf <out> [<points>]       Render the scene to an image or PDF")
	fmt.Println("  geoc config [init]                         Show the config path, or write the defaults there")
	fmt.Println()
	fmt.Println("A points file holds one \"x y z\" triple per line.")
}

func main() {
	cfg, cfgErr := config.Load()
	args := os.Args
	logOpts := applog.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.Source,
		File:      cfg.Logging.File,
	}
	if len(args) > 1 && args[1] == "view" {
		// the viewer owns the terminal
		logOpts.Console = io.Discard
	}
	applog.Init(logOpts)
	l := applog.WithComponent("cli")

	var eng *engine.Engine
	defer crash.Recover(crash.Context{Command: args, Scene: func() string { return summary(eng) }})

	if cfgErr != nil {
		l.Warn("config not loaded, using defaults", slog.Any("err", cfgErr))
	}
	if err := cfg.Validate(); err != nil {
		fail(l, fmt.Errorf("invalid config: %w", err))
	}
	if len(args) < 2 {
		usage()
		return
	}
	ctx := applog.ContextWith(context.Background(), slog.String("cmd", args[1]))
	l.DebugContext(ctx, "start", slog.Int("args", len(args)))

	switch args[1] {
	case "version", "--version", "-v":
		fmt.Println("geoc - 3D transform playground")
		fmt.Println(version.String())
	case "view":
		pts := loadOptional(l, args, 2)
		v, err := term.New(term.Options{Interval: cfg.Animation.Interval(), Logger: applog.WithComponent("term")})
		if err != nil {
			fail(l, err)
		}
		opts := engineOptions(cfg)
		opts.Repainter = v
		eng = engine.New(opts)
		eng.SetVectors(pts)
		if cfg.View.IdleOnStart {
			eng.ToggleIdleRotation()
		}
		runCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
		defer stop()
		if err := v.Run(runCtx, eng); err != nil {
			fail(l, err)
		}
	case "ui":
		pts := loadOptional(l, args, 2)
		err := ui.Run(ui.Options{
			Engine:      engineOptions(cfg),
			Interval:    cfg.Animation.Interval(),
			IdleOnStart: cfg.View.IdleOnStart,
			Vectors:     pts,
		})
		if err != nil {
			fail(l, err)
		}
	case "tour":
		if len(args) < 3 {
			fmt.Println("tour requires <points>")
			usage()
			os.Exit(2)
		}
		pts, err := loadPoints(args[2])
		if err != nil {
			fail(l, err)
		}
		eng = engine.New(engineOptions(cfg))
		t, err := eng.SolveTour(pts)
		if err != nil {
			fail(l, err)
		}
		fmt.Printf("Points: %d\n", len(pts))
		fmt.Printf("Order:  %v\n", t.Order)
		fmt.Printf("Score:  %.6f\n", t.Score)
		fmt.Printf("Length: %.6f\n", t.Length)
	case "export":
		if len(args) < 4 {
			fmt.Println("export requires png|pdf and <out>")
			usage()
			os.Exit(2)
		}
		format, out := strings.ToLower(args[2]), args[3]
		if format != "png" && format != "pdf" {
			fmt.Printf("unknown export format %q\n", args[2])
			usage()
			os.Exit(2)
		}
		eng = engine.New(engineOptions(cfg))
		eng.SetVectors(loadOptional(l, args, 4))
		if err := export(eng, format, out); err != nil {
			fail(l, err)
		}
		abs, _ := filepath.Abs(out)
		l.InfoContext(ctx, "exported", slog.String("format", format), slog.String("path", abs))
		fmt.Println("Wrote", abs)
	case "config":
		path, err := config.ConfigPath()
		if err != nil {
			fail(l, err)
		}
		if len(args) > 2 && args[2] == "init" {
			if err := config.Save(config.Defaults()); err != nil {
				fail(l, fmt.Errorf("write config: %w", err))
			}
			fmt.Println("Wrote defaults to", path)
			return
		}
		fmt.Println("Config:", path)
		fmt.Printf("Animation: %d frames every %s, idle step %g rad\n", cfg.Animation.Frames, cfg.Animation.Interval(), cfg.Animation.IdleStep)
		fmt.Printf("View: grid %d, zoom %g, idle on start %t\n", cfg.View.GridResolution, cfg.View.Zoom, cfg.View.IdleOnStart)
		fmt.Printf("Tour: max %d points\n", cfg.Tour.MaxPoints)
	default:
		usage()
		os.Exit(2)
	}
}

func engineOptions(cfg config.AppConfig) engine.Options {
	return engine.Options{
		Frames:         cfg.Animation.Frames,
		IdleStep:       cfg.Animation.IdleStep,
		GridResolution: cfg.View.GridResolution,
		Zoom:           cfg.View.Zoom,
		MaxTourPoints:  cfg.Tour.MaxPoints,
		History: history.Config{
			MaxBytes:     cfg.History.MaxBytes,
			MaxPerTarget: cfg.History.MaxPerTarget,
			MinInterval:  time.Duration(cfg.History.MinIntervalMs) * time.Millisecond,
		},
		Logger: applog.WithComponent("engine"),
	}
}

func export(e *engine.Engine, format, out string) error {
	f := render.Build(e.Snapshot(), render.DefaultOptions())
	if f.Skipped > 0 {
		applog.WithComponent("cli").Warn("points outside the view skipped", slog.Int("count", f.Skipped))
	}
	if format == "pdf" {
		return render.SavePDF(out, f)
	}
	return render.SavePNG(out, f)
}

func loadPoints(path string) ([]geom.Point3, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open points: %w", err)
	}
	defer f.Close()
	pts, err := input.ParsePoints(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pts, nil
}

// loadOptional loads the points file at args[i] when present.
func loadOptional(l *slog.Logger, args []string, i int) []geom.Point3 {
	if len(args) <= i {
		return nil
	}
	pts, err := loadPoints(args[i])
	if err != nil {
		fail(l, err)
	}
	return pts
}

func summary(e *engine.Engine) string {
	if e == nil {
		return "no scene"
	}
	cam := e.Scene().Camera()
	return fmt.Sprintf("vectors=%d shapes=%d camera=(%.3f, %.3f) zoom=%g busy=%t",
		e.Scene().Vectors().Len(), e.Scene().Shapes().Len(), cam.AngleZ, cam.AngleX, e.Scene().Zoom(), e.Busy())
}

func fail(l *slog.Logger, err error) {
	l.Error("command failed", slog.Any("err", err))
	fmt.Println("Error:", err)
	os.Exit(1)
}
