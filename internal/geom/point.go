/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package geom holds the 3D point type and the pure transform functions applied
// to it. Everything here is stateless and safe to call from any goroutine.
package geom

import (
	"fmt"
	"math"
	"strings"
)

// Point3 is a 3D coordinate. It is a value type; transforms return new points.
type Point3 struct{ X, Y, Z float64 }

// P is shorthand for Point3{x, y, z}.
func P(x, y, z float64) Point3 { return Point3{X: x, Y: y, Z: z} }

func (p Point3) Add(q Point3) Point3 { return Point3{p.X + q.X, p.Y + q.Y, p.Z + q.Z} }
func (p Point3) Sub(q Point3) Point3 { return Point3{p.X - q.X, p.Y - q.Y, p.Z - q.Z} }

// Dist returns the Euclidean distance between p and q.
func (p Point3) Dist(q Point3) float64 {
	d := p.Sub(q)
	return math.Sqrt(d.X*d.X + d.Y*d.Y + d.Z*d.Z)
}

// Lerp interpolates between p (t=0) and q (t=1).
func (p Point3) Lerp(q Point3, t float64) Point3 {
	return Point3{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
		Z: p.Z + (q.Z-p.Z)*t,
	}
}

// Finite reports whether all coordinates are finite.
func (p Point3) Finite() bool {
	return !math.IsInf(p.X, 0) && !math.IsNaN(p.X) &&
		!math.IsInf(p.Y, 0) && !math.IsNaN(p.Y) &&
		!math.IsInf(p.Z, 0) && !math.IsNaN(p.Z)
}

func (p Point3) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", p.X, p.Y, p.Z)
}

// Axis names one of the three coordinate axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// ParseAxis accepts "x", "y" or "z" (any case).
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x":
		return AxisX, nil
	case "y":
		return AxisY, nil
	case "z":
		return AxisZ, nil
	}
	return 0, fmt.Errorf("unknown axis %q", s)
}

// Map applies fn to every point of pts and returns a new slice.
func Map(pts []Point3, fn func(Point3) Point3) []Point3 {
	out := make([]Point3, len(pts))
	for i, p := range pts {
		out[i] = fn(p)
	}
	return out
}

// MapGroups applies fn to every point of every group.
func MapGroups(groups [][]Point3, fn func(Point3) Point3) [][]Point3 {
	out := make([][]Point3, len(groups))
	for i, g := range groups {
		out[i] = Map(g, fn)
	}
	return out
}

// Clone returns an independent copy of pts (nil stays nil).
func Clone(pts []Point3) []Point3 {
	if pts == nil {
		return nil
	}
	return append([]Point3(nil), pts...)
}

// CloneGroups deep-copies groups.
func CloneGroups(groups [][]Point3) [][]Point3 {
	if groups == nil {
		return nil
	}
	out := make([][]Point3, len(groups))
	for i, g := range groups {
		out[i] = Clone(g)
	}
	return out
}
