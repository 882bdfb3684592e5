/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package engine

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"geoc/internal/anim"
	"geoc/internal/geom"
	"geoc/internal/tour"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	vectors  [][]geom.Point3
	shapes   [][][]geom.Point3
	repaints int
}

func (r *recorder) CommitVectors(p []geom.Point3)  { r.vectors = append(r.vectors, p) }
func (r *recorder) CommitShapes(s [][]geom.Point3) { r.shapes = append(r.shapes, s) }
func (r *recorder) RequestRepaint()                { r.repaints++ }

func (r *recorder) lastVectors() []geom.Point3  { return r.vectors[len(r.vectors)-1] }
func (r *recorder) lastShapes() [][]geom.Point3 { return r.shapes[len(r.shapes)-1] }

func newEngine(r *recorder, frames int) *Engine {
	return New(Options{Frames: frames, Sink: r, Repainter: r})
}

func run(e *Engine, ticks int) {
	for i := 0; i < ticks; i++ {
		e.Tick()
	}
}

type fixedSelection struct{ pts []geom.Point3 }

func (f fixedSelection) ActiveVectors() []geom.Point3  { return f.pts }
func (f fixedSelection) ActiveShapes() [][]geom.Point3 { return nil }

func TestApplyTransformCommitsAndUndoes(t *testing.T) {
	r := &recorder{}
	e := newEngine(r, 5)
	orig := []geom.Point3{geom.P(1, 1, 1), geom.P(-2, 0, 3)}
	e.SetVectors(orig)

	task, ok := e.ApplyTransform(anim.Translate, anim.Params{X: 1, Y: 2, Z: 3}, Vectors)
	require.True(t, ok)
	require.True(t, e.Busy())
	run(e, 5)
	assert.Equal(t, anim.Done, task.State())
	assert.False(t, e.Busy())

	want := []geom.Point3{geom.P(2, 3, 4), geom.P(-1, 2, 6)}
	require.Len(t, r.vectors, 1)
	assert.Equal(t, want, r.lastVectors())
	assert.Equal(t, want, e.Scene().Vectors().Original())

	require.True(t, e.Undo(Vectors))
	assert.Equal(t, orig, e.Scene().Vectors().Original())
	assert.Equal(t, orig, r.lastVectors())

	require.True(t, e.Redo(Vectors))
	assert.Equal(t, want, e.Scene().Vectors().Original())
	assert.False(t, e.Redo(Vectors))
}

func TestApplyTransformEmptySelectionIsNoop(t *testing.T) {
	r := &recorder{}
	e := newEngine(r, 5)
	task, ok := e.ApplyTransform(anim.Scale, anim.Params{Factor: 2}, Vectors)
	assert.Nil(t, task)
	assert.False(t, ok)
	_, ok = e.ApplyTransform(anim.Scale, anim.Params{Factor: 2}, Shapes)
	assert.False(t, ok)
	assert.False(t, e.Busy())
	assert.Zero(t, r.repaints)

	e.SetVectors([]geom.Point3{geom.P(1, 0, 0)})
	_, ok = e.ApplyTransform(anim.Kind(99), anim.Params{}, Vectors)
	assert.False(t, ok)
}

func TestReplacedCollectionIsNotCommitted(t *testing.T) {
	r := &recorder{}
	e := newEngine(r, 4)
	e.SetVectors([]geom.Point3{geom.P(1, 0, 0)})
	_, ok := e.ApplyTransform(anim.Scale, anim.Params{Factor: 3}, Vectors)
	require.True(t, ok)
	run(e, 2)

	e.SetVectors([]geom.Point3{geom.P(0, 0, 7)})
	run(e, 5)
	assert.Empty(t, r.vectors)
	assert.Equal(t, []geom.Point3{geom.P(0, 0, 7)}, e.Scene().Vectors().Original())
	assert.False(t, e.Undo(Vectors))
}

func TestZeroRotationCommitsWithoutHistory(t *testing.T) {
	r := &recorder{}
	e := newEngine(r, 5)
	pts := []geom.Point3{geom.P(1, 2, 3)}
	e.SetVectors(pts)
	task, ok := e.ApplyTransform(anim.Rotate, anim.Params{}, Vectors)
	require.True(t, ok)
	e.Tick()
	assert.Equal(t, 3*5, task.Counter())
	require.Len(t, r.vectors, 1)
	assert.Equal(t, pts, r.lastVectors())
	assert.False(t, e.Undo(Vectors))
}

func TestCustomSelectionBecomesWorkingSet(t *testing.T) {
	r := &recorder{}
	sel := fixedSelection{pts: []geom.Point3{geom.P(0, 1, 0)}}
	e := New(Options{Frames: 2, Sink: r, Selection: sel})
	e.SetVectors([]geom.Point3{geom.P(5, 5, 5), geom.P(0, 1, 0)})

	_, ok := e.ApplyTransform(anim.Reflect, anim.Params{Axis: geom.AxisY, Sweep: true}, Vectors)
	require.True(t, ok)
	run(e, 2)
	require.Len(t, r.vectors, 1)
	assert.Len(t, r.lastVectors(), 1)
	assert.InDelta(t, -1.0, r.lastVectors()[0].Y, 1e-12)
}

func TestOverlappingTransformsShareCollection(t *testing.T) {
	r := &recorder{}
	e := newEngine(r, 4)
	e.SetVectors([]geom.Point3{geom.P(2, 0, 0)})
	active := e.Scene().Vectors()
	x := func() float64 { return e.Scene().Vectors().Original()[0].X }

	move, ok := e.ApplyTransform(anim.Translate, anim.Params{X: 8}, Vectors)
	require.True(t, ok)
	run(e, 2)
	assert.Equal(t, 6.0, x())

	grow, ok := e.ApplyTransform(anim.Scale, anim.Params{Factor: 2}, Vectors)
	require.True(t, ok)
	assert.Same(t, active, e.Scene().Vectors())

	// both tasks write each tick; the later one is what stays visible
	e.Tick()
	assert.Equal(t, 7.5, x())
	assert.Equal(t, 8.0, move.Result()[0][0].X)

	e.Tick()
	assert.Equal(t, anim.Done, move.State())
	assert.Equal(t, 9.0, x())
	require.Len(t, r.vectors, 1)
	assert.Equal(t, []geom.Point3{geom.P(9, 0, 0)}, r.lastVectors())

	run(e, 2)
	assert.Equal(t, anim.Done, grow.State())
	assert.False(t, e.Busy())
	assert.Same(t, active, e.Scene().Vectors())
	require.Len(t, r.vectors, 2)
	assert.Equal(t, []geom.Point3{geom.P(12, 0, 0)}, r.lastVectors())

	require.True(t, e.Undo(Vectors))
	assert.Equal(t, 6.0, x())
	require.True(t, e.Undo(Vectors))
	assert.Equal(t, 2.0, x())
	assert.False(t, e.Undo(Vectors))
}

func TestOperationsLogTheirOp(t *testing.T) {
	var buf bytes.Buffer
	e := New(Options{Frames: 2, Logger: slog.New(slog.NewJSONHandler(&buf, nil))})
	e.SetVectors([]geom.Point3{geom.P(0, 0, 0), geom.P(3, 4, 0)})

	_, ok := e.ApplyTransform(anim.Translate, anim.Params{X: 1}, Vectors)
	require.True(t, ok)
	assert.Contains(t, buf.String(), `"msg":"transform started","op":"apply","kind":"translate","target":"vectors"`)

	buf.Reset()
	_, err := e.SolveTour(nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"msg":"tour solved","op":"tour"`)
}

func TestIdleRotationRunsAlongsideTransform(t *testing.T) {
	r := &recorder{}
	e := newEngine(r, 3)
	e.SetShapes([][]geom.Point3{geom.Cube.Vertices(0)})

	require.True(t, e.ToggleIdleRotation())
	assert.True(t, e.Idle())
	_, ok := e.ApplyTransform(anim.Scale, anim.Params{Factor: 2}, Shapes)
	require.True(t, ok)

	run(e, 4)
	assert.InDelta(t, 4*anim.DefaultIdleStep, e.Scene().Camera().AngleZ, 1e-12)
	require.Len(t, r.shapes, 1)
	assert.Equal(t, geom.P(-2, 2, 2), r.lastShapes()[0][0])

	view := e.Snapshot()
	assert.Equal(t, geom.RotateZX(geom.P(-2, 2, 2), view.Camera.AngleZ, 0), view.Shapes[0][0])

	assert.False(t, e.ToggleIdleRotation())
	run(e, 3)
	assert.InDelta(t, 4*anim.DefaultIdleStep, e.Scene().Camera().AngleZ, 1e-12)
}

func TestSolveTourReplacesShapes(t *testing.T) {
	r := &recorder{}
	e := newEngine(r, 5)
	sq := []geom.Point3{geom.P(0, 0, 0), geom.P(1, 0, 0), geom.P(1, 1, 0), geom.P(0, 1, 0)}
	e.SetVectors(sq)

	got, err := e.SolveTour(nil)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, got.Length, 1e-12)
	shapes := e.Scene().Shapes().Original()
	require.Len(t, shapes, 1)
	assert.Len(t, shapes[0], 4)
	assert.Equal(t, shapes, r.lastShapes())

	require.True(t, e.Undo(Shapes))
	assert.Zero(t, e.Scene().Shapes().Len())
}

func TestSolveTourOverflow(t *testing.T) {
	e := New(Options{MaxTourPoints: 3})
	_, err := e.SolveTour(make([]geom.Point3, 4))
	assert.True(t, errors.Is(err, tour.ErrPermutationOverflow))
	assert.Zero(t, e.Scene().Shapes().Len())
}

func TestInsertShapeAndCamera(t *testing.T) {
	r := &recorder{}
	e := newEngine(r, 5)
	require.NoError(t, e.InsertShape(geom.Pyramid, 0, 10))
	require.NoError(t, e.InsertShape(geom.Cone, 8, 0))
	shapes := e.Scene().Shapes().Original()
	require.Len(t, shapes, 2)
	assert.Len(t, shapes[0], 5)
	assert.Len(t, shapes[1], 9)
	assert.Error(t, e.InsertShape(geom.ShapeKind(77), 0, 1))

	before := r.repaints
	e.RotateCamera(0.5, 0.25)
	e.SetZoom(120)
	e.AddZoom(-1)
	assert.Equal(t, before+3, r.repaints)
	assert.Equal(t, 116.0, e.Scene().Zoom())
	assert.Equal(t, 0.25, e.Snapshot().Camera.AngleX)
}
