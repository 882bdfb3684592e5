/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geom

import (
	"fmt"
	"math"
	"strings"
)

// ShapeKind enumerates the built-in solids that can be inserted into a scene.
type ShapeKind int

const (
	Cube ShapeKind = iota
	Pyramid
	Sphere
	Cone
)

// DefaultSphereResolution matches the density of the classic sphere preset.
const DefaultSphereResolution = 96

var shapeNames = [...]string{Cube: "cube", Pyramid: "pyramid", Sphere: "sphere", Cone: "cone"}

func (k ShapeKind) String() string {
	if k >= 0 && int(k) < len(shapeNames) {
		return shapeNames[k]
	}
	return fmt.Sprintf("ShapeKind(%d)", int(k))
}

// ShapeKinds lists every kind in declaration order.
func ShapeKinds() []ShapeKind { return []ShapeKind{Cube, Pyramid, Sphere, Cone} }

// ParseShapeKind resolves a case-insensitive shape name.
func ParseShapeKind(s string) (ShapeKind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range shapeNames {
		if n == name {
			return ShapeKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown shape %q", s)
}

// Vertices returns the vertex loop of the shape. res is used by sphere and cone
// only; values below 3 fall back to DefaultSphereResolution.
func (k ShapeKind) Vertices(res int) []Point3 {
	if res < 3 {
		res = DefaultSphereResolution
	}
	switch k {
	case Cube:
		return cubeVertices()
	case Pyramid:
		return pyramidVertices()
	case Sphere:
		return sphereVertices(res)
	case Cone:
		return coneVertices(res)
	}
	return nil
}

func cubeVertices() []Point3 {
	return []Point3{
		{-1, 1, 1}, {-1, 1, -1}, {1, 1, -1}, {1, 1, 1},
		{1, -1, 1}, {1, -1, -1}, {-1, -1, -1}, {-1, -1, 1},
	}
}

// apex at (0,0,1), base in the z=-1 plane
func pyramidVertices() []Point3 {
	return []Point3{
		{0, 0, 1}, {-1, 1, -1}, {1, 1, -1},
		{1, -1, -1}, {-1, -1, -1},
	}
}

// sphereVertices walks meridians: the seed is turned around Y by a growing
// angle (cumulatively) and each meridian is swept around X.
func sphereVertices(res int) []Point3 {
	out := make([]Point3, res*res)
	step := 2 * math.Pi / float64(res)
	aux := Point3{1, 0, 0}
	for i := 0; i < res; i++ {
		aux = RotateY(aux, float64(i)*step)
		for j := 0; j < res; j++ {
			out[i*res+j] = RotateX(aux, float64(j)*step)
		}
	}
	return out
}

// coneVertices is the base rim in the z=-1 plane followed by the apex.
func coneVertices(res int) []Point3 {
	out := make([]Point3, 0, res+1)
	step := 2 * math.Pi / float64(res)
	for i := 0; i < res; i++ {
		out = append(out, RotateZ(Point3{1, 0, -1}, float64(i)*step))
	}
	return append(out, Point3{0, 0, 1})
}
