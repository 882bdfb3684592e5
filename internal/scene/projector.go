/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import (
	"math"

	"geoc/internal/geom"
)

// Projector maps view-space points to screen offsets from the canvas center.
// The depth axis is Y; near and far planes derive from the grid resolution.
type Projector struct {
	Zoom           float64
	GridResolution int
}

// Near is half the grid resolution (integer halving).
func (p Projector) Near() float64 { return float64(p.GridResolution >> 1) }

// Far is twice the grid resolution.
func (p Projector) Far() float64 { return float64(p.GridResolution << 1) }

// ToScreen returns the screen offset of v. When v.Y+Far is zero the result is
// a signed infinity (NaN for a zero numerator); see Finite.
func (p Projector) ToScreen(v geom.Point3) (x, y float64) {
	near, far := p.Near(), p.Far()
	x = p.Zoom * v.X * near / (v.Y + far)
	y = p.Zoom * v.Z * near / (v.Y + far)
	return x, y
}

// Finite reports whether a projected coordinate pair can be drawn.
func Finite(x, y float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x) && !math.IsInf(y, 0) && !math.IsNaN(y)
}

// ScreenToAngles converts a drag position on a w×h canvas to camera angles:
// a full canvas width is one turn of the Z-phase, a full height one turn of
// the X-phase.
func ScreenToAngles(px, py, w, h int) (angleZ, angleX float64) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	return float64(px) * 2 * math.Pi / float64(w), float64(py) * 2 * math.Pi / float64(h)
}
