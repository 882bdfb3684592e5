/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import "geoc/internal/geom"

// Camera holds the two angles applied to every point before projection.
type Camera struct {
	AngleZ float64
	AngleX float64
}

// Apply rotates p into view space.
func (c Camera) Apply(p geom.Point3) geom.Point3 {
	return geom.RotateZX(p, c.AngleZ, c.AngleX)
}

// PointSet is an ordered list of points kept as an (original, view) pair.
// The view is always rebuilt in full from the original and the camera; it is
// never patched incrementally.
type PointSet struct {
	cam      *Camera
	original []geom.Point3
	view     []geom.Point3
}

func newPointSet(cam *Camera, pts []geom.Point3) *PointSet {
	s := &PointSet{cam: cam, original: geom.Clone(pts)}
	s.refresh()
	return s
}

func (s *PointSet) Len() int { return len(s.original) }

// Original returns a copy of the model-space points.
func (s *PointSet) Original() []geom.Point3 { return geom.Clone(s.original) }

// View returns the camera-space points. The slice is shared with the set and
// must not be modified; it is replaced (not mutated) on the next refresh.
func (s *PointSet) View() []geom.Point3 { return s.view }

// Snapshot returns the original as a single group, for animation tasks.
func (s *PointSet) Snapshot() [][]geom.Point3 {
	return [][]geom.Point3{geom.Clone(s.original)}
}

// Overwrite replaces the original wholesale with the first group and rebuilds
// the view. Extra groups are ignored.
func (s *PointSet) Overwrite(groups [][]geom.Point3) {
	if len(groups) == 0 {
		s.original = nil
	} else {
		s.original = geom.Clone(groups[0])
	}
	s.refresh()
}

func (s *PointSet) refresh() {
	view := make([]geom.Point3, len(s.original))
	for i, p := range s.original {
		view[i] = s.cam.Apply(p)
	}
	s.view = view
}

// ShapeSet is an ordered list of closed polygons with the same original/view
// pairing as PointSet.
type ShapeSet struct {
	cam      *Camera
	original [][]geom.Point3
	view     [][]geom.Point3
}

func newShapeSet(cam *Camera, shapes [][]geom.Point3) *ShapeSet {
	s := &ShapeSet{cam: cam, original: geom.CloneGroups(shapes)}
	s.refresh()
	return s
}

func (s *ShapeSet) Len() int { return len(s.original) }

func (s *ShapeSet) Original() [][]geom.Point3 { return geom.CloneGroups(s.original) }

// View returns the camera-space polygons; read-only.
func (s *ShapeSet) View() [][]geom.Point3 { return s.view }

func (s *ShapeSet) Snapshot() [][]geom.Point3 { return geom.CloneGroups(s.original) }

func (s *ShapeSet) Overwrite(groups [][]geom.Point3) {
	s.original = geom.CloneGroups(groups)
	s.refresh()
}

func (s *ShapeSet) refresh() {
	view := make([][]geom.Point3, len(s.original))
	for i, g := range s.original {
		view[i] = geom.Map(g, s.cam.Apply)
	}
	s.view = view
}
