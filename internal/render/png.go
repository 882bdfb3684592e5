/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// lineWidth is the stroke width of every line in pixels.
const lineWidth = 1.0

// Rasterize paints f onto a new RGBA image.
func Rasterize(f Frame) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: f.Background}, image.Point{}, draw.Src)

	z := vector.NewRasterizer(f.Width, f.Height)
	for _, l := range f.Lines {
		strokeLine(z, img, l)
	}

	d := &font.Drawer{Dst: img, Face: basicfont.Face7x13}
	for _, lb := range f.Labels {
		d.Src = image.NewUniform(lb.Color)
		d.Dot = fixed.P(int(math.Round(lb.At.X)), int(math.Round(lb.At.Y)))
		d.DrawString(lb.Text)
	}
	return img
}

// strokeLine fills the thin quad around l. Zero-length lines are dropped.
func strokeLine(z *vector.Rasterizer, dst draw.Image, l Line) {
	dx, dy := l.B.X-l.A.X, l.B.Y-l.A.Y
	n := math.Hypot(dx, dy)
	if n == 0 {
		return
	}
	// half-width normal
	nx, ny := -dy/n*lineWidth/2, dx/n*lineWidth/2
	z.Reset(dst.Bounds().Dx(), dst.Bounds().Dy())
	z.DrawOp = draw.Over
	z.MoveTo(float32(l.A.X+nx), float32(l.A.Y+ny))
	z.LineTo(float32(l.B.X+nx), float32(l.B.Y+ny))
	z.LineTo(float32(l.B.X-nx), float32(l.B.Y-ny))
	z.LineTo(float32(l.A.X-nx), float32(l.A.Y-ny))
	z.ClosePath()
	z.Draw(dst, dst.Bounds(), image.NewUniform(l.Color), image.Point{})
}

// WritePNG encodes f as PNG to w.
func WritePNG(w io.Writer, f Frame) error {
	if err := png.Encode(w, Rasterize(f)); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SavePNG writes f to path, creating parent directories.
func SavePNG(path string, f Frame) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	if err := WritePNG(out, f); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close png: %w", err)
	}
	return nil
}
