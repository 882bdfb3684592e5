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
	"os"
	"path/filepath"

	"geoc/internal/version"

	"github.com/jung-kurt/gofpdf"
)

// SavePDF writes f as a single-page PDF with one point per pixel.
func SavePDF(path string, f Frame) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	w, h := float64(f.Width), float64(f.Height)
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: w, Ht: h},
	})
	pdf.SetTitle("geoc scene", false)
	pdf.SetCreator("geoc "+version.String(), false)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.AddPage()

	r, g, b, _ := straight(f.Background)
	pdf.SetFillColor(int(r), int(g), int(b))
	pdf.Rect(0, 0, w, h, "F")

	pdf.SetLineWidth(lineWidth)
	pdf.SetLineCapStyle("round")
	for _, l := range f.Lines {
		r, g, b, a := straight(l.Color)
		pdf.SetAlpha(float64(a)/255, "Normal")
		pdf.SetDrawColor(int(r), int(g), int(b))
		pdf.Line(l.A.X, l.A.Y, l.B.X, l.B.Y)
	}

	pdf.SetAlpha(1, "Normal")
	pdf.SetFont("Helvetica", "", 8)
	for _, lb := range f.Labels {
		r, g, b, _ := straight(lb.Color)
		pdf.SetTextColor(int(r), int(g), int(b))
		pdf.Text(lb.At.X, lb.At.Y, lb.Text)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
