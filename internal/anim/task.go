/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package anim

import (
	"fmt"
	"strings"

	"geoc/internal/geom"
)

// Kind selects the transform a task animates.
type Kind int

const (
	Translate Kind = iota
	Scale
	Project
	Reflect
	Rotate
	Shear
)

var kindNames = [...]string{"translate", "scale", "project", "reflect", "rotate", "shear"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind resolves a transform name, case-insensitively.
func ParseKind(s string) (Kind, error) {
	for i, n := range kindNames {
		if strings.EqualFold(s, n) {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown transform %q", s)
}

// Params carries the target parameters of a transform. Which fields are used
// depends on the Kind:
//
//	Translate: X, Y, Z deltas
//	Rotate:    X, Y, Z angles in radians, one phase each in that order
//	Scale:     Factor
//	Project:   Axis, Factor
//	Reflect:   Axis, Factor (ignored when Sweep is set; the sweep always ends at -1)
//	Shear:     Axis, S, T
type Params struct {
	X, Y, Z float64
	Factor  float64
	Axis    geom.Axis
	S, T    float64
	Sweep   bool
}

// State is the lifecycle position of a task.
type State int

const (
	Pending State = iota
	Running
	Done
	Cancelled
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Running:
		return "running"
	case Done:
		return "done"
	case Cancelled:
		return "cancelled"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Target is a collection a transform task writes into. Snapshot must return an
// independent copy; Overwrite replaces the collection's content wholesale.
type Target interface {
	Snapshot() [][]geom.Point3
	Overwrite(groups [][]geom.Point3)
}

// Task is a unit of work advanced by the Scheduler once per tick.
type Task interface {
	State() State
	begin()
	step()
}

// TransformTask animates one transform over a fixed number of frames. Every
// step is computed from the snapshot taken at creation, never from the
// previous step's output.
type TransformTask struct {
	kind     Kind
	params   Params
	frames   int
	total    int
	counter  int
	applied  int
	skipped  int
	state    State
	target   Target
	snapshot [][]geom.Point3
	result   [][]geom.Point3
}

// NewTransformTask snapshots target and returns a pending task. frames below 1
// is treated as 1.
func NewTransformTask(kind Kind, params Params, target Target, frames int) *TransformTask {
	if frames < 1 {
		frames = 1
	}
	t := &TransformTask{
		kind:     kind,
		params:   params,
		frames:   frames,
		target:   target,
		snapshot: target.Snapshot(),
	}
	switch {
	case kind == Rotate:
		t.total = 3 * frames
	case kind == Reflect && params.Sweep:
		t.total = 2 * frames
	default:
		t.total = frames
	}
	return t
}

func (t *TransformTask) Kind() Kind { return t.kind }

func (t *TransformTask) Params() Params { return t.params }

func (t *TransformTask) State() State { return t.state }

// Target returns the collection the task writes into.
func (t *TransformTask) Target() Target { return t.target }

// Counter is the step counter; it equals Total once the task is done.
func (t *TransformTask) Counter() int { return t.counter }

func (t *TransformTask) Total() int { return t.total }

// Applied counts the steps that produced output.
func (t *TransformTask) Applied() int { return t.applied }

// Skipped counts counter units jumped over by zero-angle rotation phases.
func (t *TransformTask) Skipped() int { return t.skipped }

// Result returns the last state written to the target, nil before the first
// applied step.
func (t *TransformTask) Result() [][]geom.Point3 { return geom.CloneGroups(t.result) }

func (t *TransformTask) begin() {
	if t.state == Pending {
		t.state = Running
	}
}

func (t *TransformTask) step() {
	if t.state != Running {
		return
	}
	switch {
	case t.kind == Rotate:
		t.stepRotate()
	case t.kind == Reflect && t.params.Sweep:
		t.counter += 2
		f := 1 - float64(t.counter)/float64(t.frames)
		t.write(geom.MapGroups(t.snapshot, func(p geom.Point3) geom.Point3 {
			return geom.Reflect(p, t.params.Axis, f)
		}))
	default:
		t.counter++
		t.write(geom.MapGroups(t.snapshot, t.linear(t.counter)))
	}
	if t.counter >= t.total {
		t.counter = t.total
		t.state = Done
	}
}

func (t *TransformTask) write(groups [][]geom.Point3) {
	t.result = groups
	t.applied++
	t.target.Overwrite(groups)
}

// frac returns k/frames, exactly 1 on the last frame.
func (t *TransformTask) frac(k int) float64 {
	if k >= t.frames {
		return 1
	}
	return float64(k) / float64(t.frames)
}

// towards interpolates from the identity value id to target.
func towards(id, target, frac float64) float64 {
	if frac == 1 {
		return target
	}
	return id + (target-id)*frac
}

func (t *TransformTask) linear(k int) func(geom.Point3) geom.Point3 {
	f := t.frac(k)
	p := t.params
	switch t.kind {
	case Translate:
		dx, dy, dz := towards(0, p.X, f), towards(0, p.Y, f), towards(0, p.Z, f)
		return func(q geom.Point3) geom.Point3 { return geom.Translate(q, dx, dy, dz) }
	case Scale:
		s := towards(1, p.Factor, f)
		return func(q geom.Point3) geom.Point3 { return geom.Scale(q, s) }
	case Project:
		s := towards(1, p.Factor, f)
		return func(q geom.Point3) geom.Point3 { return geom.Project(q, p.Axis, s) }
	case Reflect:
		s := towards(1, p.Factor, f)
		return func(q geom.Point3) geom.Point3 { return geom.Reflect(q, p.Axis, s) }
	case Shear:
		s, tt := towards(0, p.S, f), towards(0, p.T, f)
		return func(q geom.Point3) geom.Point3 { return geom.Shear(q, p.Axis, s, tt) }
	}
	return func(q geom.Point3) geom.Point3 { return q }
}

func (t *TransformTask) phaseAngle(phase int) float64 {
	switch phase {
	case 0:
		return t.params.X
	case 1:
		return t.params.Y
	default:
		return t.params.Z
	}
}

// skipZeroPhases jumps the counter over every zero-angle phase starting at the
// current position.
func (t *TransformTask) skipZeroPhases() {
	for t.counter < t.total && t.counter%t.frames == 0 && t.phaseAngle(t.counter/t.frames) == 0 {
		t.counter += t.frames
		t.skipped += t.frames
	}
}

// stepRotate turns the snapshot about one axis per phase. Every phase starts
// from the snapshot itself, so a later phase overwrites the earlier ones and
// the final state is the last non-zero phase applied alone.
func (t *TransformTask) stepRotate() {
	t.skipZeroPhases()
	if t.counter >= t.total {
		return
	}
	t.counter++
	phase := (t.counter - 1) / t.frames
	k := t.counter - phase*t.frames
	a := t.phaseAngle(phase) * t.frac(k)
	ax := geom.Axis(phase)
	t.write(geom.MapGroups(t.snapshot, func(q geom.Point3) geom.Point3 { return geom.Rotate(q, ax, a) }))
	t.skipZeroPhases()
}
