/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package scene owns the point and shape collections, the camera and the
// reference grid of a single viewing context.
package scene

import (
	"strconv"

	"geoc/internal/geom"
)

const (
	DefaultZoom           = 80
	DefaultGridResolution = 100
	// ZoomStep is the zoom change per wheel notch.
	ZoomStep = 4
)

// Segment is a line between two points.
type Segment struct {
	A, B geom.Point3
}

// AxisTick is a numbered mark along one axis line.
type AxisTick struct {
	Axis  geom.Axis
	At    geom.Point3
	Label string
}

// Scene is the single viewing context: one camera, one zoom level, the active
// vector and shape collections and the reference lines. It is not safe for
// concurrent use; callers drive it from one goroutine.
type Scene struct {
	cam     *Camera
	proj    Projector
	vectors *PointSet
	shapes  *ShapeSet

	grid      []Segment
	axes      [3]Segment
	gridView  []Segment
	axesView  [3]Segment
	tickCount int
}

// New returns an empty scene. A non-positive resolution or zoom falls back to
// the defaults.
func New(gridResolution int, zoom float64) *Scene {
	if gridResolution <= 0 {
		gridResolution = DefaultGridResolution
	}
	if zoom <= 0 {
		zoom = DefaultZoom
	}
	cam := &Camera{}
	s := &Scene{
		cam:     cam,
		proj:    Projector{Zoom: zoom, GridResolution: gridResolution},
		vectors: newPointSet(cam, nil),
		shapes:  newShapeSet(cam, nil),
	}
	s.buildReference()
	return s
}

func (s *Scene) buildReference() {
	res := s.proj.GridResolution
	j := res >> 1
	hi := j
	if res&1 == 0 {
		hi = j - 1
	}
	fj := float64(j)
	s.grid = s.grid[:0]
	for i := -j; i <= hi; i++ {
		fi := float64(i)
		s.grid = append(s.grid,
			Segment{geom.P(fi, fj, 0), geom.P(fi, -fj, 0)},
			Segment{geom.P(fj, fi, 0), geom.P(-fj, fi, 0)},
		)
	}
	s.axes = [3]Segment{
		{geom.P(fj, 0, 0), geom.P(-fj, 0, 0)},
		{geom.P(0, fj, 0), geom.P(0, -fj, 0)},
		{geom.P(0, 0, fj), geom.P(0, 0, -fj)},
	}
	s.tickCount = res + 1
	s.refreshReference()
}

func (s *Scene) refreshReference() {
	view := make([]Segment, len(s.grid))
	for i, g := range s.grid {
		view[i] = Segment{s.cam.Apply(g.A), s.cam.Apply(g.B)}
	}
	s.gridView = view
	for i, a := range s.axes {
		s.axesView[i] = Segment{s.cam.Apply(a.A), s.cam.Apply(a.B)}
	}
}

// Camera returns the current camera angles.
func (s *Scene) Camera() Camera { return *s.cam }

func (s *Scene) Projector() Projector { return s.proj }

func (s *Scene) Zoom() float64 { return s.proj.Zoom }

// SetZoom sets the zoom factor. Values below 1 are clamped to 1.
func (s *Scene) SetZoom(v float64) {
	if v < 1 {
		v = 1
	}
	s.proj.Zoom = v
}

// AddZoom changes the zoom by the given number of wheel notches.
func (s *Scene) AddZoom(notches int) {
	s.SetZoom(s.proj.Zoom + float64(notches*ZoomStep))
}

// RotateCamera sets both camera angles and rebuilds every view.
func (s *Scene) RotateCamera(angleZ, angleX float64) {
	s.cam.AngleZ = angleZ
	s.cam.AngleX = angleX
	s.Refresh()
}

// SpinCamera adds step to the Z-phase angle and rebuilds every view.
func (s *Scene) SpinCamera(step float64) {
	s.cam.AngleZ += step
	s.Refresh()
}

// Refresh recomputes all camera-dependent views from their originals.
func (s *Scene) Refresh() {
	s.refreshReference()
	s.vectors.refresh()
	s.shapes.refresh()
}

// Vectors returns the active point collection.
func (s *Scene) Vectors() *PointSet { return s.vectors }

// Shapes returns the active shape collection.
func (s *Scene) Shapes() *ShapeSet { return s.shapes }

// SetVectors replaces the active point collection with a new one. Previously
// returned *PointSet values stay valid but are no longer active.
func (s *Scene) SetVectors(pts []geom.Point3) *PointSet {
	s.vectors = newPointSet(s.cam, pts)
	return s.vectors
}

// SetShapes replaces the active shape collection with a new one.
func (s *Scene) SetShapes(shapes [][]geom.Point3) *ShapeSet {
	s.shapes = newShapeSet(s.cam, shapes)
	return s.shapes
}

// IsActiveVectors reports whether ps is still the scene's point collection.
func (s *Scene) IsActiveVectors(ps *PointSet) bool { return ps != nil && ps == s.vectors }

// IsActiveShapes reports whether ss is still the scene's shape collection.
func (s *Scene) IsActiveShapes(ss *ShapeSet) bool { return ss != nil && ss == s.shapes }

// GridView returns the camera-space grid lines in the z=0 plane.
func (s *Scene) GridView() []Segment { return s.gridView }

// AxesView returns the camera-space X, Y and Z axis lines.
func (s *Scene) AxesView() [3]Segment { return s.axesView }

// AxisTicks returns the numbered marks along each axis in camera space,
// running from +res/2 down to -res/2.
func (s *Scene) AxisTicks() []AxisTick {
	half := s.proj.GridResolution >> 1
	res := float64(s.proj.GridResolution)
	out := make([]AxisTick, 0, 3*s.tickCount)
	for i, a := range s.axesView {
		for k := 0; k < s.tickCount; k++ {
			out = append(out, AxisTick{
				Axis:  geom.Axis(i),
				At:    a.A.Lerp(a.B, float64(k)/res),
				Label: strconv.Itoa(half - k),
			})
		}
	}
	return out
}

// View is a read-only capture of everything a renderer draws.
type View struct {
	Camera    Camera
	Projector Projector
	// Labels holds the model-space points; Vectors holds them in camera space.
	Labels  []geom.Point3
	Vectors []geom.Point3
	Shapes  [][]geom.Point3
	Grid    []Segment
	Axes    [3]Segment
	Ticks   []AxisTick
}

// View captures the current state. The returned slices are not shared with
// the scene.
func (s *Scene) View() View {
	return View{
		Camera:    *s.cam,
		Projector: s.proj,
		Labels:    s.vectors.Original(),
		Vectors:   geom.Clone(s.vectors.View()),
		Shapes:    geom.CloneGroups(s.shapes.View()),
		Grid:      append([]Segment(nil), s.gridView...),
		Axes:      s.axesView,
		Ticks:     s.AxisTicks(),
	}
}
