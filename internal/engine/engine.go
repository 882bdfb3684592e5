/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package engine ties the scene, the animation scheduler, the tour solver and
// the undo history into the single object collaborators talk to.
package engine

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"geoc/internal/anim"
	"geoc/internal/geom"
	"geoc/internal/history"
	applog "geoc/internal/log"
	"geoc/internal/scene"
	"geoc/internal/tour"
)

// Target selects which collection an operation works on.
type Target = history.Target

const (
	Vectors = history.Vectors
	Shapes  = history.Shapes
)

// Selection supplies the currently selected items. The engine only reads it.
type Selection interface {
	ActiveVectors() []geom.Point3
	ActiveShapes() [][]geom.Point3
}

// ResultSink receives the final state of a transform that finished while its
// collection was still active.
type ResultSink interface {
	CommitVectors(pts []geom.Point3)
	CommitShapes(shapes [][]geom.Point3)
}

// Repainter is told when the view changed.
type Repainter interface {
	RequestRepaint()
}

// Options configures an Engine. Zero values fall back to package defaults;
// nil collaborators are allowed.
type Options struct {
	Frames         int
	IdleStep       float64
	GridResolution int
	Zoom           float64
	MaxTourPoints  int
	History        history.Config

	// Selection defaults to the whole active collections.
	Selection Selection
	Sink      ResultSink
	Repainter Repainter
	Logger    *slog.Logger
	// Now is the clock used for history timestamps.
	Now func() time.Time
}

type pending struct {
	target Target
	points *scene.PointSet
	shapes *scene.ShapeSet
	before [][]geom.Point3
}

// Engine is the explicit scene context. It is not safe for concurrent use;
// input handling and Tick must run on the same goroutine.
type Engine struct {
	scene  *scene.Scene
	sched  *anim.Scheduler
	hist   *history.Manager
	solver tour.Solver

	frames   int
	idleStep float64
	idle     *anim.IdleTask
	inFlight map[*anim.TransformTask]pending

	sel  Selection
	sink ResultSink
	rp   Repainter
	log  *slog.Logger
	now  func() time.Time
}

func New(opts Options) *Engine {
	if opts.Frames <= 0 {
		opts.Frames = anim.DefaultFrames
	}
	if opts.IdleStep == 0 {
		opts.IdleStep = anim.DefaultIdleStep
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	e := &Engine{
		scene:    scene.New(opts.GridResolution, opts.Zoom),
		sched:    anim.NewScheduler(opts.Logger.With(slog.String("component", "anim"))),
		hist:     history.NewManager(opts.History),
		solver:   tour.Solver{MaxPoints: opts.MaxTourPoints},
		frames:   opts.Frames,
		idleStep: opts.IdleStep,
		inFlight: make(map[*anim.TransformTask]pending),
		sink:     opts.Sink,
		rp:       opts.Repainter,
		log:      opts.Logger,
		now:      opts.Now,
	}
	e.sel = opts.Selection
	if e.sel == nil {
		e.sel = wholeScene{e.scene}
	}
	e.sched.OnComplete(e.complete)
	return e
}

// wholeScene selects every item of the active collections.
type wholeScene struct{ s *scene.Scene }

func (w wholeScene) ActiveVectors() []geom.Point3  { return w.s.Vectors().Original() }
func (w wholeScene) ActiveShapes() [][]geom.Point3 { return w.s.Shapes().Original() }

// Scene exposes the underlying scene for read access.
func (e *Engine) Scene() *scene.Scene { return e.scene }

// Snapshot captures what a renderer needs to draw the current frame.
func (e *Engine) Snapshot() scene.View { return e.scene.View() }

// Busy reports whether a bounded animation is still running.
func (e *Engine) Busy() bool { return e.sched.Busy() }

// Idle reports whether the idle camera spin is active.
func (e *Engine) Idle() bool { return e.idle != nil }

func (e *Engine) repaint() {
	if e.rp != nil {
		e.rp.RequestRepaint()
	}
}

// SetVectors replaces the working point collection.
func (e *Engine) SetVectors(pts []geom.Point3) {
	e.scene.SetVectors(pts)
	e.repaint()
}

// SetShapes replaces the working shape collection.
func (e *Engine) SetShapes(shapes [][]geom.Point3) {
	e.scene.SetShapes(shapes)
	e.repaint()
}

// ApplyTransform starts an animated transform of the selected items of
// target. A selection matching the active collection keeps that collection,
// so tasks already running on it share its storage and the last writer of a
// tick wins. Any other selection becomes the new working collection. With
// nothing selected, or an unknown kind, nothing happens and ok is false.
func (e *Engine) ApplyTransform(kind anim.Kind, p anim.Params, target Target) (task *anim.TransformTask, ok bool) {
	l := applog.WithOperation(e.log, "apply").With(slog.String("kind", kind.String()), slog.String("target", target.String()))
	if kind < anim.Translate || kind > anim.Shear {
		l.Warn("unknown transform kind")
		return nil, false
	}
	pd := pending{target: target}
	switch target {
	case Vectors:
		pts := e.sel.ActiveVectors()
		if len(pts) == 0 {
			l.Debug("empty selection")
			return nil, false
		}
		pd.points = e.scene.Vectors()
		if !slices.Equal(pts, pd.points.Original()) {
			pd.points = e.scene.SetVectors(pts)
		}
		pd.before = pd.points.Snapshot()
		task = anim.NewTransformTask(kind, p, pd.points, e.frames)
	default:
		shapes := e.sel.ActiveShapes()
		if len(shapes) == 0 {
			l.Debug("empty selection")
			return nil, false
		}
		pd.shapes = e.scene.Shapes()
		if !slices.EqualFunc(shapes, pd.shapes.Original(), slices.Equal[[]geom.Point3]) {
			pd.shapes = e.scene.SetShapes(shapes)
		}
		pd.before = pd.shapes.Snapshot()
		task = anim.NewTransformTask(kind, p, pd.shapes, e.frames)
	}
	e.inFlight[task] = pd
	e.sched.Submit(task)
	l.Info("transform started", slog.Int("steps", task.Total()))
	e.repaint()
	return task, true
}

func (e *Engine) complete(t *anim.TransformTask) {
	pd, ok := e.inFlight[t]
	if !ok {
		return
	}
	delete(e.inFlight, t)
	// a rotation with every phase skipped leaves nothing to undo
	changed := t.Applied() > 0
	switch pd.target {
	case Vectors:
		if !e.scene.IsActiveVectors(pd.points) {
			e.log.Debug("result dropped, collection replaced", slog.String("kind", t.Kind().String()))
			return
		}
		if changed {
			e.hist.Push(history.State{Target: Vectors, Groups: pd.before, TS: e.now()})
		}
		if e.sink != nil {
			e.sink.CommitVectors(pd.points.Original())
		}
	default:
		if !e.scene.IsActiveShapes(pd.shapes) {
			e.log.Debug("result dropped, collection replaced", slog.String("kind", t.Kind().String()))
			return
		}
		if changed {
			e.hist.Push(history.State{Target: Shapes, Groups: pd.before, TS: e.now()})
		}
		if e.sink != nil {
			e.sink.CommitShapes(pd.shapes.Original())
		}
	}
}

// Tick advances every animation one step and asks for a repaint when
// anything moved.
func (e *Engine) Tick() {
	active := e.sched.Len() > 0
	e.sched.Tick()
	if active {
		e.repaint()
	}
}

// RotateCamera sets both camera angles immediately.
func (e *Engine) RotateCamera(angleZ, angleX float64) {
	e.scene.RotateCamera(angleZ, angleX)
	e.repaint()
}

// SetZoom sets the projection scale.
func (e *Engine) SetZoom(v float64) {
	e.scene.SetZoom(v)
	e.repaint()
}

// AddZoom changes the zoom by wheel notches.
func (e *Engine) AddZoom(notches int) {
	e.scene.AddZoom(notches)
	e.repaint()
}

// ToggleIdleRotation starts or stops the idle camera spin and reports whether
// it is now running.
func (e *Engine) ToggleIdleRotation() bool {
	if e.idle != nil {
		e.idle.Cancel()
		e.idle = nil
		e.log.Debug("idle rotation stopped")
		return false
	}
	e.idle = anim.NewIdleTask(e.scene, e.idleStep)
	e.sched.Submit(e.idle)
	e.log.Debug("idle rotation started", slog.Float64("step", e.idleStep))
	return true
}

// SolveTour finds the shortest tour through pts and replaces the shapes with
// the resulting polygon. A nil pts uses the selected vectors.
func (e *Engine) SolveTour(pts []geom.Point3) (tour.Tour, error) {
	if pts == nil {
		pts = e.sel.ActiveVectors()
	}
	l := applog.WithOperation(e.log, "tour")
	start := time.Now()
	t, err := e.solver.Solve(pts)
	if err != nil {
		l.Warn("tour rejected", slog.Int("points", len(pts)), slog.Any("err", err))
		return tour.Tour{}, fmt.Errorf("solve tour: %w", err)
	}
	l.Info("tour solved",
		slog.Int("points", len(pts)),
		slog.Float64("length", t.Length),
		slog.Duration("took", time.Since(start)))
	if len(t.Order) > 0 {
		e.replaceShapes([][]geom.Point3{t.Polygon(pts)})
	}
	return t, nil
}

// InsertShape appends a generated shape, scaled by size, to the shapes.
func (e *Engine) InsertShape(kind geom.ShapeKind, res int, size float64) error {
	vs := kind.Vertices(res)
	if vs == nil {
		return fmt.Errorf("insert shape: unknown kind %v", kind)
	}
	if size > 0 && size != 1 {
		vs = geom.Map(vs, func(p geom.Point3) geom.Point3 { return geom.Scale(p, size) })
	}
	shapes := e.scene.Shapes().Original()
	e.replaceShapes(append(shapes, vs))
	e.log.Debug("shape inserted", slog.String("kind", kind.String()), slog.Int("vertices", len(vs)))
	return nil
}

func (e *Engine) replaceShapes(shapes [][]geom.Point3) {
	e.hist.Push(history.State{Target: Shapes, Groups: e.scene.Shapes().Original(), TS: e.now()})
	e.scene.SetShapes(shapes)
	if e.sink != nil {
		e.sink.CommitShapes(geom.CloneGroups(shapes))
	}
	e.repaint()
}

// Undo restores the previous committed state of target.
func (e *Engine) Undo(target Target) bool {
	st, ok := e.hist.Undo(target, e.current(target))
	if ok {
		e.restore(st)
	}
	return ok
}

// Redo re-applies the last undone state of target.
func (e *Engine) Redo(target Target) bool {
	st, ok := e.hist.Redo(target, e.current(target))
	if ok {
		e.restore(st)
	}
	return ok
}

func (e *Engine) current(target Target) [][]geom.Point3 {
	if target == Vectors {
		return e.scene.Vectors().Snapshot()
	}
	return e.scene.Shapes().Snapshot()
}

func (e *Engine) restore(st history.State) {
	if st.Target == Vectors {
		var pts []geom.Point3
		if len(st.Groups) > 0 {
			pts = st.Groups[0]
		}
		e.scene.SetVectors(pts)
		if e.sink != nil {
			e.sink.CommitVectors(geom.Clone(pts))
		}
	} else {
		e.scene.SetShapes(st.Groups)
		if e.sink != nil {
			e.sink.CommitShapes(geom.CloneGroups(st.Groups))
		}
	}
	e.repaint()
}
