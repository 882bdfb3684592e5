//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"fmt"
	"image"
	"log/slog"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"geoc/internal/anim"
	"geoc/internal/engine"
	"geoc/internal/geom"
	"geoc/internal/input"
	applog "geoc/internal/log"
	"geoc/internal/render"
	"geoc/internal/scene"
	"geoc/internal/version"
)

// Run opens the desktop window and blocks until it is closed. All engine
// access happens on the Fyne main goroutine; the ticker hands each tick over
// with fyne.Do.
func Run(opts Options) error {
	l := applog.WithComponent("ui")
	l.Info("starting UI")

	if opts.Interval <= 0 {
		opts.Interval = anim.DefaultInterval
	}

	fyneApp := app.NewWithID("geoc")
	w := fyneApp.NewWindow("geoc " + version.String())
	prefs := fyneApp.Preferences()
	winW := prefs.IntWithFallback("window.width", 1100)
	winH := prefs.IntWithFallback("window.height", 760)
	if winW < 640 {
		winW = 640
	}
	if winH < 480 {
		winH = 480
	}
	w.Resize(fyne.NewSize(float32(winW), float32(winH)))

	status := widget.NewLabel("Ready")
	sc := NewSceneCanvas()
	eo := opts.Engine
	eo.Repainter = sc
	eo.Sink = statusSink{status}
	if eo.Logger == nil {
		eo.Logger = l
	}
	e := engine.New(eo)
	sc.attach(e)
	if len(opts.Vectors) > 0 {
		e.SetVectors(opts.Vectors)
	}

	idle := widget.NewCheck("Idle spin", func(on bool) {
		if on != e.Idle() {
			e.ToggleIdleRotation()
		}
	})
	if opts.IdleOnStart {
		idle.SetChecked(true)
	}

	// Transform form
	kinds := make([]string, 0, 6)
	for k := anim.Translate; k <= anim.Shear; k++ {
		kinds = append(kinds, k.String())
	}
	kindSel := widget.NewSelect(kinds, nil)
	kindSel.SetSelected(anim.Translate.String())
	targetSel := widget.NewRadioGroup([]string{engine.Vectors.String(), engine.Shapes.String()}, nil)
	targetSel.Horizontal = true
	targetSel.SetSelected(engine.Vectors.String())
	xE, yE, zE := widget.NewEntry(), widget.NewEntry(), widget.NewEntry()
	factorE := widget.NewEntry()
	axisSel := widget.NewSelect([]string{"x", "y", "z"}, nil)
	axisSel.SetSelected("x")
	sweep := widget.NewCheck("Sweep", nil)
	for _, en := range []*widget.Entry{xE, yE, zE, factorE} {
		en.Validator = func(s string) error {
			if s == "" || input.Validate(s) {
				return nil
			}
			return input.ErrInvalidInput
		}
	}

	applyBtn := widget.NewButton("Apply", func() {
		kind, err := anim.ParseKind(kindSel.Selected)
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		p, err := ParseParams(kind, Fields{X: xE.Text, Y: yE.Text, Z: zE.Text, Factor: factorE.Text, Axis: axisSel.Selected, Sweep: sweep.Checked})
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		target := engine.Vectors
		if targetSel.Selected == engine.Shapes.String() {
			target = engine.Shapes
		}
		if _, ok := e.ApplyTransform(kind, p, target); !ok {
			status.SetText("Nothing selected.")
			return
		}
		status.SetText(fmt.Sprintf("Running %s on %s…", kind, target))
	})

	// Shapes
	shapeNames := make([]string, 0, 4)
	for _, k := range geom.ShapeKinds() {
		shapeNames = append(shapeNames, k.String())
	}
	shapeSel := widget.NewSelect(shapeNames, nil)
	shapeSel.SetSelected(geom.Cube.String())
	sizeE := widget.NewEntry()
	sizeE.SetText("5")
	insertBtn := widget.NewButton("Insert", func() {
		kind, err := geom.ParseShapeKind(shapeSel.Selected)
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		if err := e.InsertShape(kind, 0, input.OrZero(sizeE.Text)); err != nil {
			dialog.ShowError(err, w)
		}
	})

	// Points
	pointsE := widget.NewMultiLineEntry()
	pointsE.SetPlaceHolder("x y z per line")
	pointsE.SetMinRowsVisible(5)
	setPtsBtn := widget.NewButton("Set vectors", func() {
		pts, err := input.ParsePoints(strings.NewReader(pointsE.Text))
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		e.SetVectors(pts)
		status.SetText(fmt.Sprintf("%d vectors loaded.", len(pts)))
	})
	tourBtn := widget.NewButton("Shortest tour", func() {
		t, err := e.SolveTour(nil)
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		status.SetText(fmt.Sprintf("Tour length %.3f through %d points.", t.Length, len(t.Order)))
	})

	undoBtn := widget.NewButton("Undo", func() {
		if !e.Undo(selectedTarget(targetSel)) {
			status.SetText("Nothing to undo.")
		}
	})
	redoBtn := widget.NewButton("Redo", func() {
		if !e.Redo(selectedTarget(targetSel)) {
			status.SetText("Nothing to redo.")
		}
	})

	exportPNG := widget.NewButton("Export PNG", func() { exportDialog(w, e, status, ".png") })
	exportPDF := widget.NewButton("Export PDF", func() { exportDialog(w, e, status, ".pdf") })

	right := container.NewVScroll(container.NewVBox(
		widget.NewLabelWithStyle("Transform", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		kindSel, targetSel,
		widget.NewForm(
			widget.NewFormItem("X", xE),
			widget.NewFormItem("Y", yE),
			widget.NewFormItem("Z", zE),
			widget.NewFormItem("Factor", factorE),
			widget.NewFormItem("Axis", axisSel),
		),
		sweep, applyBtn,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Shapes", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewBorder(nil, nil, nil, insertBtn, container.NewGridWithColumns(2, shapeSel, sizeE)),
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Vectors", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		pointsE, container.NewHBox(setPtsBtn, tourBtn),
		widget.NewSeparator(),
		idle,
		container.NewHBox(undoBtn, redoBtn),
		container.NewHBox(exportPNG, exportPDF),
	))

	w.SetContent(container.NewBorder(nil, status, nil, right, sc))
	w.Canvas().SetOnTypedRune(func(r rune) {
		switch r {
		case '+', '=':
			e.AddZoom(1)
		case '-', '_':
			e.AddZoom(-1)
		case ' ':
			idle.SetChecked(!idle.Checked)
		}
	})

	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(opts.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				fyne.Do(e.Tick)
			}
		}
	}()
	w.SetOnClosed(func() {
		close(stop)
		sz := w.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
		l.Info("window closed")
	})

	w.ShowAndRun()
	return nil
}

func selectedTarget(r *widget.RadioGroup) engine.Target {
	if r.Selected == engine.Shapes.String() {
		return engine.Shapes
	}
	return engine.Vectors
}

func exportDialog(w fyne.Window, e *engine.Engine, status *widget.Label, ext string) {
	fd := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		if uc == nil {
			return
		}
		path := uc.URI().Path()
		_ = uc.Close()
		sz := w.Canvas().Size()
		f := render.Build(e.Snapshot(), render.Options{Width: int(sz.Width), Height: int(sz.Height), Ticks: true, VectorLabels: true})
		if ext == ".pdf" {
			err = render.SavePDF(path, f)
		} else {
			err = render.SavePNG(path, f)
		}
		if err != nil {
			applog.WithComponent("ui").Error("export failed", slog.String("path", path), slog.Any("err", err))
			dialog.ShowError(err, w)
			return
		}
		status.SetText("Exported " + path)
	}, w)
	fd.SetFileName("scene" + ext)
	fd.Show()
}

// statusSink reports committed results in the status bar.
type statusSink struct{ l *widget.Label }

func (s statusSink) CommitVectors(pts []geom.Point3) {
	s.l.SetText(fmt.Sprintf("%d vectors updated.", len(pts)))
}

func (s statusSink) CommitShapes(shapes [][]geom.Point3) {
	s.l.SetText(fmt.Sprintf("%d shapes updated.", len(shapes)))
}

// SceneCanvas draws the engine's scene and turns drags into camera angles and
// wheel notches into zoom steps.
type SceneCanvas struct {
	widget.BaseWidget
	eng    *engine.Engine
	raster *canvas.Raster
}

func NewSceneCanvas() *SceneCanvas {
	c := &SceneCanvas{}
	c.raster = canvas.NewRaster(c.draw)
	c.raster.SetMinSize(fyne.NewSize(render.DefaultWidth/2, render.DefaultHeight/2))
	c.ExtendBaseWidget(c)
	return c
}

func (c *SceneCanvas) attach(e *engine.Engine) { c.eng = e }

func (c *SceneCanvas) draw(w, h int) image.Image {
	if c.eng == nil || w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	}
	f := render.Build(c.eng.Snapshot(), render.Options{Width: w, Height: h, Ticks: true, VectorLabels: true})
	return render.Rasterize(f)
}

// RequestRepaint schedules a redraw of the raster.
func (c *SceneCanvas) RequestRepaint() { c.raster.Refresh() }

func (c *SceneCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(c.raster)
}

func (c *SceneCanvas) Dragged(e *fyne.DragEvent) {
	if c.eng == nil {
		return
	}
	sz := c.Size()
	az, ax := scene.ScreenToAngles(int(e.Position.X), int(e.Position.Y), int(sz.Width), int(sz.Height))
	c.eng.RotateCamera(az, ax)
}

func (c *SceneCanvas) DragEnd() {}

func (c *SceneCanvas) Scrolled(e *fyne.ScrollEvent) {
	if c.eng == nil || e.Scrolled.DY == 0 {
		return
	}
	if e.Scrolled.DY > 0 {
		c.eng.AddZoom(1)
	} else {
		c.eng.AddZoom(-1)
	}
}
