/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package term is the interactive terminal viewer. It owns the tick loop:
// terminal events and ticker fires are serialized on one goroutine, so the
// engine is only ever touched from there.
package term

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"time"

	"geoc/internal/anim"
	"geoc/internal/engine"
	"geoc/internal/geom"
	"geoc/internal/render"
	"geoc/internal/scene"

	"github.com/gdamore/tcell/v2"
)

const (
	// RotateStep is the camera turn per arrow key press, in radians.
	RotateStep = 0.1
	// DefaultShapeSize scales inserted shapes.
	DefaultShapeSize = 5.0

	// terminal cells are roughly twice as tall as wide
	cellScaleX = 0.1
	cellScaleY = 0.05
)

const help = "arrows/drag rotate  +/- zoom  space spin  1-4 shape  g/h/m/r transform  t tour  u/y undo/redo  q quit"

type Options struct {
	Interval  time.Duration
	ShapeSize float64
	ShapeRes  int
	Logger    *slog.Logger
	// Screen defaults to the real terminal.
	Screen tcell.Screen
}

// Viewer draws the engine's scene into a terminal. It implements
// engine.Repainter and must be passed to engine.New before Run.
type Viewer struct {
	screen   tcell.Screen
	interval time.Duration
	size     float64
	res      int
	log      *slog.Logger

	dirty  bool
	status string
}

func New(opts Options) (*Viewer, error) {
	if opts.Interval <= 0 {
		opts.Interval = anim.DefaultInterval
	}
	if opts.ShapeSize <= 0 {
		opts.ShapeSize = DefaultShapeSize
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	s := opts.Screen
	if s == nil {
		var err error
		if s, err = tcell.NewScreen(); err != nil {
			return nil, fmt.Errorf("screen init failed: %w", err)
		}
	}
	return &Viewer{
		screen:   s,
		interval: opts.Interval,
		size:     opts.ShapeSize,
		res:      opts.ShapeRes,
		log:      opts.Logger,
		dirty:    true,
		status:   help,
	}, nil
}

// RequestRepaint marks the screen for redraw on the next tick.
func (v *Viewer) RequestRepaint() { v.dirty = true }

// Run takes over the terminal until the user quits or ctx ends.
func (v *Viewer) Run(ctx context.Context, e *engine.Engine) error {
	if err := v.screen.Init(); err != nil {
		return fmt.Errorf("screen start failed: %w", err)
	}
	defer v.screen.Fini()
	v.screen.EnableMouse()
	v.screen.Clear()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go v.screen.ChannelEvents(events, quit)

	ticker := time.NewTicker(v.interval)
	defer ticker.Stop()

	v.log.InfoContext(ctx, "viewer started", slog.Duration("interval", v.interval))
	v.draw(e)
	for {
		select {
		case <-ctx.Done():
			v.log.InfoContext(ctx, "viewer stopped", slog.String("reason", ctx.Err().Error()))
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if v.handle(e, ev) {
				v.log.InfoContext(ctx, "viewer stopped", slog.String("reason", "quit"))
				return nil
			}
		case <-ticker.C:
			e.Tick()
			if v.dirty {
				v.draw(e)
			}
		}
	}
}

// handle applies one terminal event and reports whether to quit.
func (v *Viewer) handle(e *engine.Engine, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return v.key(e, ev)
	case *tcell.EventMouse:
		v.mouse(e, ev)
	case *tcell.EventResize:
		v.screen.Sync()
		v.dirty = true
	}
	return false
}

func (v *Viewer) key(e *engine.Engine, ev *tcell.EventKey) bool {
	cam := e.Scene().Camera()
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyLeft:
		e.RotateCamera(cam.AngleZ-RotateStep, cam.AngleX)
	case tcell.KeyRight:
		e.RotateCamera(cam.AngleZ+RotateStep, cam.AngleX)
	case tcell.KeyUp:
		e.RotateCamera(cam.AngleZ, cam.AngleX-RotateStep)
	case tcell.KeyDown:
		e.RotateCamera(cam.AngleZ, cam.AngleX+RotateStep)
	case tcell.KeyRune:
		return v.runeKey(e, ev.Rune())
	}
	return false
}

func (v *Viewer) runeKey(e *engine.Engine, r rune) bool {
	switch r {
	case 'q', 'Q':
		return true
	case '+', '=':
		e.AddZoom(1)
	case '-', '_':
		e.AddZoom(-1)
	case ' ':
		if e.ToggleIdleRotation() {
			v.setStatus("idle spin on")
		} else {
			v.setStatus("idle spin off")
		}
	case '1', '2', '3', '4':
		kind := geom.ShapeKinds()[r-'1']
		if err := e.InsertShape(kind, v.res, v.size); err != nil {
			v.setStatus("Error: " + err.Error())
		} else {
			v.setStatus("inserted " + kind.String())
		}
	case 'g':
		v.transform(e, anim.Scale, anim.Params{Factor: 2})
	case 'h':
		v.transform(e, anim.Scale, anim.Params{Factor: 0.5})
	case 'm':
		v.transform(e, anim.Reflect, anim.Params{Axis: geom.AxisZ, Sweep: true})
	case 'r':
		v.transform(e, anim.Rotate, anim.Params{X: math.Pi / 2, Z: math.Pi / 4})
	case 't':
		t, err := e.SolveTour(nil)
		if err != nil {
			v.setStatus("Error: " + err.Error())
		} else {
			v.setStatus(fmt.Sprintf("tour length %.3f", t.Length))
		}
	case 'u':
		if !e.Undo(engine.Shapes) && !e.Undo(engine.Vectors) {
			v.setStatus("nothing to undo")
		}
	case 'y':
		if !e.Redo(engine.Shapes) && !e.Redo(engine.Vectors) {
			v.setStatus("nothing to redo")
		}
	}
	return false
}

// transform runs kind on the shapes, or on the vectors when there are no
// shapes.
func (v *Viewer) transform(e *engine.Engine, kind anim.Kind, p anim.Params) {
	if e.Busy() {
		v.setStatus("busy")
		return
	}
	if _, ok := e.ApplyTransform(kind, p, engine.Shapes); ok {
		v.setStatus(kind.String() + " shapes")
		return
	}
	if _, ok := e.ApplyTransform(kind, p, engine.Vectors); ok {
		v.setStatus(kind.String() + " vectors")
		return
	}
	v.setStatus("nothing selected")
}

func (v *Viewer) mouse(e *engine.Engine, ev *tcell.EventMouse) {
	btn := ev.Buttons()
	switch {
	case btn&tcell.WheelUp != 0:
		e.AddZoom(1)
	case btn&tcell.WheelDown != 0:
		e.AddZoom(-1)
	case btn&tcell.Button1 != 0:
		x, y := ev.Position()
		w, h := v.screen.Size()
		az, ax := scene.ScreenToAngles(x, y, w, h)
		e.RotateCamera(az, ax)
	}
}

func (v *Viewer) setStatus(s string) {
	v.status = s
	v.dirty = true
}

func (v *Viewer) draw(e *engine.Engine) {
	v.dirty = false
	v.screen.Clear()
	w, h := v.screen.Size()
	if w <= 0 || h <= 1 {
		v.screen.Show()
		return
	}
	f := render.Build(e.Snapshot(), render.Options{
		Width:     w,
		Height:    h - 1,
		Transform: render.Scale(cellScaleX, cellScaleY),
	})
	plotFrame(f, func(x, y int, r rune, c color.RGBA) {
		v.screen.SetContent(x, y, r, nil, tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))))
	})
	drawText(v.screen, 0, h-1, tcell.StyleDefault.Foreground(tcell.ColorDarkGray), v.status)
	v.screen.Show()
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, str string) {
	for i, r := range []rune(str) {
		s.SetContent(x+i, y, r, nil, style)
	}
}
