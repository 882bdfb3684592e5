/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package render turns a scene view into a flat list of screen-space lines
// and labels, and writes that list out as PNG or PDF.
package render

import (
	"image/color"
	"math"
	"strconv"

	"geoc/internal/geom"
	"geoc/internal/scene"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 600

	// maxCoord bounds drawable screen coordinates. Points that project
	// further out are treated like non-finite ones.
	maxCoord = 1 << 20
)

// Pt is a screen-space point; X grows right and Y grows down.
type Pt struct{ X, Y float64 }

// Affine2D represents a 2D affine transform as matrix:
// | a c e |
// | b d f |
// | 0 0 1 |
type Affine2D struct{ A, B, C, D, E, F float64 }

var Identity = Affine2D{A: 1, D: 1}

func (m Affine2D) Mul(n Affine2D) Affine2D {
	return Affine2D{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

func (m Affine2D) Apply(p Pt) Pt {
	return Pt{
		X: m.A*p.X + m.C*p.Y + m.E,
		Y: m.B*p.X + m.D*p.Y + m.F,
	}
}

func Translate(tx, ty float64) Affine2D { return Affine2D{A: 1, D: 1, E: tx, F: ty} }
func Scale(sx, sy float64) Affine2D     { return Affine2D{A: sx, D: sy} }

// Layer tells what a line belongs to.
type Layer uint8

const (
	LayerGrid Layer = iota
	LayerAxis
	LayerShape
	LayerVector
)

// Line is a straight segment in screen space.
type Line struct {
	A, B  Pt
	Color color.RGBA
	Layer Layer
}

// Label is a text anchored at its baseline origin.
type Label struct {
	At    Pt
	Text  string
	Color color.RGBA
}

// Frame is everything drawn for one picture, back to front.
type Frame struct {
	Width, Height int
	Background    color.RGBA
	Lines         []Line
	Labels        []Label
	// Skipped counts lines and labels dropped because a point did not
	// project to a usable screen position.
	Skipped int
}

// Options controls frame layout.
type Options struct {
	Width, Height int
	// Ticks draws the numbered marks along the axes.
	Ticks bool
	// VectorLabels draws index and coordinate text next to each vector.
	VectorLabels bool
	// Transform is applied after centring; zero means identity.
	Transform Affine2D
}

// DefaultOptions matches the interactive view.
func DefaultOptions() Options {
	return Options{Width: DefaultWidth, Height: DefaultHeight, Ticks: true, VectorLabels: true}
}

// Build lays out v on a canvas of the configured size with the origin at the
// centre. Anything touching a point that projects to a non-finite or
// out-of-range position is left out and counted in Frame.Skipped.
func Build(v scene.View, opts Options) Frame {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	m := Translate(float64(opts.Width>>1), float64(opts.Height>>1))
	if opts.Transform != (Affine2D{}) {
		m = m.Mul(opts.Transform)
	}
	b := builder{
		proj: v.Projector,
		m:    m,
		f:    Frame{Width: opts.Width, Height: opts.Height, Background: Background},
	}

	for _, s := range v.Grid {
		b.segment(s.A, s.B, GridColor, LayerGrid)
	}
	for i, s := range v.Axes {
		b.segment(s.A, s.B, AxisColor(geom.Axis(i)), LayerAxis)
	}
	if opts.Ticks {
		for _, t := range v.Ticks {
			b.label(t.At, Pt{}, t.Label, AxisColor(t.Axis))
		}
	}
	for _, g := range v.Shapes {
		n := len(g)
		if n < 2 {
			continue
		}
		for j := 0; j < n-1; j++ {
			b.segment(g[j], g[j+1], ShapeColor, LayerShape)
		}
		if n > 2 {
			b.segment(g[n-1], g[0], ShapeColor, LayerShape)
		}
	}

	center := m.Apply(Pt{})
	far := v.Projector.Far()
	for i, p := range v.Vectors {
		q, ok := b.screen(p)
		if !ok {
			b.f.Skipped++
			continue
		}
		col := VectorColor(p.Y, far)
		b.f.Lines = append(b.f.Lines, Line{A: center, B: q, Color: col, Layer: LayerVector})
		if !opts.VectorLabels {
			continue
		}
		b.f.Labels = append(b.f.Labels, Label{At: q, Text: strconv.Itoa(i), Color: col})
		if i < len(v.Labels) {
			b.f.Labels = append(b.f.Labels, Label{At: Pt{q.X - 10, q.Y - 10}, Text: v.Labels[i].String(), Color: col})
		}
	}
	return b.f
}

type builder struct {
	proj scene.Projector
	m    Affine2D
	f    Frame
}

func (b *builder) screen(p geom.Point3) (Pt, bool) {
	x, y := b.proj.ToScreen(p)
	if !scene.Finite(x, y) || math.Abs(x) > maxCoord || math.Abs(y) > maxCoord {
		return Pt{}, false
	}
	return b.m.Apply(Pt{x, y}), true
}

func (b *builder) segment(p, q geom.Point3, c color.RGBA, layer Layer) {
	a, okA := b.screen(p)
	z, okB := b.screen(q)
	if !okA || !okB {
		b.f.Skipped++
		return
	}
	b.f.Lines = append(b.f.Lines, Line{A: a, B: z, Color: c, Layer: layer})
}

func (b *builder) label(p geom.Point3, off Pt, text string, c color.RGBA) {
	a, ok := b.screen(p)
	if !ok {
		b.f.Skipped++
		return
	}
	b.f.Labels = append(b.f.Labels, Label{At: Pt{a.X + off.X, a.Y + off.Y}, Text: text, Color: c})
}
