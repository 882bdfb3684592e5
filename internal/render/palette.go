/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"image/color"
	"math"

	"geoc/internal/geom"

	colorful "github.com/lucasb-eyer/go-colorful"
)

var (
	Background = color.RGBA{A: 0xff}
	GridColor  = toRGBA(color.NRGBA{R: 90, G: 90, B: 90, A: 120})
	ShapeColor = color.RGBA{R: 255, G: 255, A: 0xff}

	vectorNear = colorful.Color{R: 1, G: 175.0 / 255, B: 175.0 / 255}
	vectorFar  = colorful.Color{R: 0.45, G: 0.2, B: 0.3}
)

func toRGBA(c color.Color) color.RGBA {
	return color.RGBAModel.Convert(c).(color.RGBA)
}

// AxisColor returns the line colour of axis a.
func AxisColor(a geom.Axis) color.RGBA {
	i := int(a)
	if i < 0 || i > 2 {
		return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	return color.RGBA{R: uint8(255 - i*100), G: uint8(i * 110), B: uint8(22 << i), A: 0xff}
}

// VectorColor shades a vector by its camera-space depth: points towards the
// viewer stay pink and points further back fade towards a dark mauve.
func VectorColor(depth, far float64) color.RGBA {
	return DepthColor(vectorNear, vectorFar, depth, far)
}

// DepthColor blends from near to farC in Lab space as depth goes from -far
// to +far. A non-positive far returns near.
func DepthColor(near, farC colorful.Color, depth, far float64) color.RGBA {
	t := 0.0
	if far > 0 {
		t = (depth + far) / (2 * far)
	}
	switch {
	case t < 0 || math.IsNaN(t):
		t = 0
	case t > 1:
		t = 1
	}
	r, g, b := near.BlendLab(farC, t).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// straight returns the non-premultiplied components of c.
func straight(c color.RGBA) (r, g, b, a uint8) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return n.R, n.G, n.B, n.A
}
