/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package anim

import (
	"math"
	"testing"

	"geoc/internal/geom"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memTarget struct {
	groups [][]geom.Point3
	writes int
}

func (m *memTarget) Snapshot() [][]geom.Point3 { return geom.CloneGroups(m.groups) }

func (m *memTarget) Overwrite(g [][]geom.Point3) {
	m.groups = geom.CloneGroups(g)
	m.writes++
}

type spinCounter struct{ angle float64 }

func (s *spinCounter) SpinCamera(step float64) { s.angle += step }

func one(p geom.Point3) *memTarget { return &memTarget{groups: [][]geom.Point3{{p}}} }

func runUntilIdle(s *Scheduler, limit int) int {
	n := 0
	for s.Busy() && n < limit {
		s.Tick()
		n++
	}
	return n
}

func TestTranslateInterpolatesFromSnapshot(t *testing.T) {
	tgt := one(geom.P(1, 1, 1))
	task := NewTransformTask(Translate, Params{X: 10, Y: -5}, tgt, 5)
	s := NewScheduler(nil)
	s.Submit(task)
	assert.Equal(t, Pending, task.State())

	s.Tick()
	assert.Equal(t, Running, task.State())
	assert.Equal(t, geom.P(3, 0, 1), tgt.groups[0][0])

	// external edits between ticks do not accumulate: the next step uses the snapshot
	tgt.groups[0][0] = geom.P(100, 100, 100)
	s.Tick()
	assert.Equal(t, geom.P(5, -1, 1), tgt.groups[0][0])

	ticks := runUntilIdle(s, 100)
	assert.Equal(t, 3, ticks)
	assert.Equal(t, Done, task.State())
	assert.Equal(t, 5, task.Counter())
	assert.Equal(t, geom.P(11, -4, 1), tgt.groups[0][0])
	assert.Equal(t, 0, s.Len())
}

func TestScaleEndsExactlyOnTarget(t *testing.T) {
	tgt := one(geom.P(2, -4, 8))
	task := NewTransformTask(Scale, Params{Factor: 0.1}, tgt, DefaultFrames)
	s := NewScheduler(nil)
	s.Submit(task)
	runUntilIdle(s, 100)
	require.Equal(t, Done, task.State())
	assert.Equal(t, geom.Scale(geom.P(2, -4, 8), 0.1), tgt.groups[0][0])
	assert.Equal(t, DefaultFrames, task.Applied())
	assert.Equal(t, DefaultFrames, tgt.writes)
}

func TestProjectAndShear(t *testing.T) {
	tgt := one(geom.P(2, 3, 4))
	s := NewScheduler(nil)
	s.Submit(NewTransformTask(Project, Params{Axis: geom.AxisZ, Factor: 0}, tgt, 4))
	runUntilIdle(s, 10)
	assert.Equal(t, geom.P(2, 3, 0), tgt.groups[0][0])

	tgt = one(geom.P(2, 3, 4))
	s.Submit(NewTransformTask(Shear, Params{Axis: geom.AxisX, S: 1, T: 2}, tgt, 4))
	runUntilIdle(s, 10)
	assert.Equal(t, geom.Shear(geom.P(2, 3, 4), geom.AxisX, 1, 2), tgt.groups[0][0])
}

func TestReflectSweep(t *testing.T) {
	tgt := one(geom.P(1, 2, 3))
	task := NewTransformTask(Reflect, Params{Axis: geom.AxisY, Sweep: true}, tgt, 10)
	require.Equal(t, 20, task.Total())
	s := NewScheduler(nil)
	s.Submit(task)

	s.Tick()
	assert.Equal(t, 2, task.Counter())
	assert.InDelta(t, 2*0.8, tgt.groups[0][0].Y, 1e-12)

	ticks := 1 + runUntilIdle(s, 100)
	assert.Equal(t, 10, ticks)
	assert.Equal(t, 20, task.Counter())
	assert.InDelta(t, -2.0, tgt.groups[0][0].Y, 1e-12)
	assert.Equal(t, 1.0, tgt.groups[0][0].X)
}

func TestRotationAllZeroSkipsEverything(t *testing.T) {
	tgt := one(geom.P(1, 2, 3))
	task := NewTransformTask(Rotate, Params{}, tgt, DefaultFrames)
	s := NewScheduler(nil)
	s.Submit(task)
	s.Tick()

	assert.Equal(t, Done, task.State())
	assert.Equal(t, 3*DefaultFrames, task.Counter())
	assert.Equal(t, 3*DefaultFrames, task.Skipped())
	assert.Zero(t, task.Applied())
	assert.Zero(t, tgt.writes)
	assert.Equal(t, 0, s.Len())
}

func TestRotationYOnlySkipsTwoPhases(t *testing.T) {
	tgt := one(geom.P(1, 0, 0))
	task := NewTransformTask(Rotate, Params{Y: math.Pi / 2}, tgt, DefaultFrames)
	s := NewScheduler(nil)
	s.Submit(task)
	ticks := runUntilIdle(s, 1000)

	assert.Equal(t, DefaultFrames, ticks)
	assert.Equal(t, 3*DefaultFrames, task.Counter())
	assert.Equal(t, 2*DefaultFrames, task.Skipped())
	assert.Equal(t, DefaultFrames, task.Applied())
	want := geom.RotateY(geom.P(1, 0, 0), math.Pi/2)
	got := tgt.groups[0][0]
	assert.InDelta(t, want.X, got.X, 1e-12)
	assert.InDelta(t, want.Z, got.Z, 1e-12)
}

func TestRotationPhasesStartFromSnapshot(t *testing.T) {
	p := geom.P(0, 1, 0)
	tgt := one(p)
	task := NewTransformTask(Rotate, Params{X: math.Pi / 2, Z: math.Pi / 2}, tgt, 4)
	s := NewScheduler(nil)
	s.Submit(task)

	for range 4 {
		s.Tick()
	}
	afterX := geom.RotateX(p, math.Pi/2)
	assert.InDelta(t, afterX.Y, tgt.groups[0][0].Y, 1e-12)
	assert.InDelta(t, afterX.Z, tgt.groups[0][0].Z, 1e-12)

	// the Z phase turns the untouched snapshot, not the X result
	s.Tick()
	first := geom.RotateZ(p, math.Pi/8)
	got := tgt.groups[0][0]
	assert.InDelta(t, first.X, got.X, 1e-12)
	assert.InDelta(t, first.Y, got.Y, 1e-12)
	assert.InDelta(t, 0.0, got.Z, 1e-12)

	ticks := runUntilIdle(s, 100)
	assert.Equal(t, 3, ticks)
	assert.Equal(t, 4, task.Skipped())
	got = tgt.groups[0][0]
	assert.InDelta(t, 1.0, math.Abs(got.X), 1e-12)
	assert.InDelta(t, 0.0, got.Y, 1e-12)
	assert.InDelta(t, 0.0, got.Z, 1e-12)
	want := geom.RotateZ(p, math.Pi/2)
	assert.InDelta(t, want.X, got.X, 1e-12)
	assert.Equal(t, got, task.Result()[0][0])
}

func TestIdleAndBoundedTaskDoNotInterfere(t *testing.T) {
	sp := &spinCounter{}
	tgt := one(geom.P(0, 0, 0))
	s := NewScheduler(nil)

	idle := NewIdleTask(sp, 0)
	s.Submit(idle)
	bounded := NewTransformTask(Translate, Params{X: 5}, tgt, 5)
	s.Submit(bounded)

	var completed []*TransformTask
	s.OnComplete(func(tt *TransformTask) { completed = append(completed, tt) })

	for i := 0; i < 8; i++ {
		s.Tick()
	}
	assert.InDelta(t, 8*DefaultIdleStep, sp.angle, 1e-12)
	assert.Equal(t, 8, idle.Ticks())
	assert.Equal(t, Done, bounded.State())
	assert.Equal(t, geom.P(5, 0, 0), tgt.groups[0][0])
	require.Len(t, completed, 1)
	assert.Same(t, bounded, completed[0])
	assert.Equal(t, 1, s.Len())

	idle.Cancel()
	s.Tick()
	assert.Equal(t, 0, s.Len())
	assert.InDelta(t, 8*DefaultIdleStep, sp.angle, 1e-12)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("Rotate")
	require.NoError(t, err)
	assert.Equal(t, Rotate, k)
	_, err = ParseKind("warp")
	assert.Error(t, err)
	assert.Equal(t, "shear", Shear.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}
