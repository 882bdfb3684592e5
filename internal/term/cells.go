/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package term

import (
	"image/color"
	"math"

	"geoc/internal/render"
)

// setCell writes one glyph into the character grid.
type setCell func(x, y int, r rune, c color.RGBA)

func layerRune(l render.Layer) rune {
	switch l {
	case render.LayerGrid:
		return '·'
	case render.LayerAxis:
		return '+'
	case render.LayerShape:
		return '#'
	default:
		return '*'
	}
}

// plotFrame draws every line of f into a w×h cell grid, later lines over
// earlier ones, then the labels.
func plotFrame(f render.Frame, set setCell) {
	for _, l := range f.Lines {
		plotLine(l, f.Width, f.Height, layerRune(l.Layer), set)
	}
	for _, lb := range f.Labels {
		x, y := int(math.Round(lb.At.X)), int(math.Round(lb.At.Y))
		if y < 0 || y >= f.Height {
			continue
		}
		for i, r := range []rune(lb.Text) {
			if x+i >= 0 && x+i < f.Width {
				set(x+i, y, r, lb.Color)
			}
		}
	}
}

func plotLine(l render.Line, w, h int, r rune, set setCell) {
	x0, y0, x1, y1, ok := clip(l.A.X, l.A.Y, l.B.X, l.B.Y, float64(w-1), float64(h-1))
	if !ok {
		return
	}
	ax, ay := int(math.Round(x0)), int(math.Round(y0))
	bx, by := int(math.Round(x1)), int(math.Round(y1))
	dx, dy := abs(bx-ax), -abs(by-ay)
	sx, sy := 1, 1
	if ax > bx {
		sx = -1
	}
	if ay > by {
		sy = -1
	}
	e := dx + dy
	for {
		set(ax, ay, r, l.Color)
		if ax == bx && ay == by {
			return
		}
		if e2 := 2 * e; e2 >= dy {
			e += dy
			ax += sx
		}
		if e2 := 2 * e; e2 <= dx {
			e += dx
			ay += sy
		}
	}
}

// clip trims the segment to [0,maxX]×[0,maxY] (Liang-Barsky).
func clip(x0, y0, x1, y1, maxX, maxY float64) (float64, float64, float64, float64, bool) {
	if maxX < 0 || maxY < 0 {
		return 0, 0, 0, 0, false
	}
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{{-dx, x0}, {dx, maxX - x0}, {-dy, y0}, {dy, maxY - y0}}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = math.Max(t0, t)
		} else {
			if t < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = math.Min(t1, t)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
