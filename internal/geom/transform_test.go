/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func assertNear(t *testing.T, want, got Point3, delta float64) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta, "x of %v vs %v", want, got)
	assert.InDelta(t, want.Y, got.Y, delta, "y of %v vs %v", want, got)
	assert.InDelta(t, want.Z, got.Z, delta, "z of %v vs %v", want, got)
}

var samples = []Point3{
	{0, 0, 0},
	{1, 2, 3},
	{-4.5, 0.25, 9},
	{1000, -1000, 500},
	{-999.9, 0.001, -1000},
}

var angles = []float64{0, 0.1, math.Pi / 4, math.Pi / 2, 2, math.Pi, -1.3, 7}

func TestRotationRoundTrip(t *testing.T) {
	rots := map[string]func(Point3, float64) Point3{
		"x": RotateX, "y": RotateY, "z": RotateZ,
	}
	for name, rot := range rots {
		for _, p := range samples {
			for _, a := range angles {
				got := rot(rot(p, a), -a)
				assertNear(t, p, got, 1e-9*math.Max(1, math.Abs(p.X)+math.Abs(p.Y)+math.Abs(p.Z)))
				if t.Failed() {
					t.Fatalf("rotate%s round trip failed for p=%v a=%v", name, p, a)
				}
			}
		}
	}
}

func TestRotateKeepsAxisAndLength(t *testing.T) {
	p := P(3, -4, 12)
	assert.Equal(t, p.X, RotateX(p, 1.1).X)
	assert.Equal(t, p.Y, RotateY(p, 1.1).Y)
	assert.Equal(t, p.Z, RotateZ(p, 1.1).Z)
	o := Point3{}
	for _, a := range angles {
		assert.InDelta(t, 13.0, RotateX(p, a).Dist(o), eps)
		assert.InDelta(t, 13.0, RotateY(p, a).Dist(o), eps)
		assert.InDelta(t, 13.0, RotateZ(p, a).Dist(o), eps)
	}
}

func TestRotateQuarterTurns(t *testing.T) {
	// quarter turns follow the closed forms literally
	assertNear(t, P(0, 0, -1), RotateX(P(0, 1, 0), math.Pi/2), eps)
	assertNear(t, P(0, 0, 1), RotateY(P(1, 0, 0), math.Pi/2), eps)
	assertNear(t, P(0, -1, 0), RotateZ(P(1, 0, 0), math.Pi/2), eps)
	assertNear(t, P(0, 1, 0), Rotate(P(0, 0, 1), AxisX, math.Pi/2), eps)
}

func TestRotateZXIdentityAndClosedForm(t *testing.T) {
	for _, p := range samples {
		assert.Equal(t, p, RotateZX(p, 0, 0))
	}
	// with no X-phase the camera reduces to RotateZ
	for _, p := range samples {
		assertNear(t, RotateZ(p, 0.7), RotateZX(p, 0.7, 0), 1e-9)
	}
	// explicit values
	p := P(1, 2, 3)
	az, ax := 0.3, -1.2
	cz, sz, cx, sx := math.Cos(az), math.Sin(az), math.Cos(ax), math.Sin(ax)
	want := P(1*cz+2*sz, (2*cz-1*sz)*cx+3*sx, 3*cx-(2*cz-1*sz)*sx)
	assert.Equal(t, want, RotateZX(p, az, ax))
}

func TestReflect(t *testing.T) {
	p := P(1.5, -2, 7)
	for _, ax := range []Axis{AxisX, AxisY, AxisZ} {
		assert.Equal(t, p, Reflect(p, ax, 1))
	}
	assert.Equal(t, P(-1.5, -2, 7), Reflect(p, AxisX, -1))
	assert.Equal(t, P(1.5, 2, 7), Reflect(p, AxisY, -1))
	assert.Equal(t, P(1.5, -2, -7), Reflect(p, AxisZ, -1))
}

func TestProject(t *testing.T) {
	p := P(1.5, -2, 7)
	assert.Equal(t, P(0, -2, 7), Project(p, AxisX, 0))
	assert.Equal(t, P(1.5, 0, 7), Project(p, AxisY, 0))
	assert.Equal(t, P(1.5, -2, 0), Project(p, AxisZ, 0))
	for _, ax := range []Axis{AxisX, AxisY, AxisZ} {
		assert.Equal(t, p, Project(p, ax, 1))
	}
}

func TestScaleTranslate(t *testing.T) {
	p := P(1.5, -2, 7)
	assert.Equal(t, p, Scale(p, 1))
	assert.Equal(t, Point3{}, Scale(p, 0))
	assert.Equal(t, P(3, -4, 14), Scale(p, 2))
	assert.Equal(t, P(2.5, 0, 4), Translate(p, 1, 2, -3))
}

func TestShear(t *testing.T) {
	p := P(2, 3, 5)
	assert.Equal(t, P(2, 3+2*0.5, 5+2*-1), Shear(p, AxisX, 0.5, -1))
	assert.Equal(t, P(2+3*0.5, 3, 5+3*-1), Shear(p, AxisY, 0.5, -1))
	assert.Equal(t, P(2+5*0.5, 3+5*-1, 5), Shear(p, AxisZ, 0.5, -1))
	assert.Equal(t, p, Shear(p, AxisY, 0, 0))
}

func TestLargeInputsStayFinite(t *testing.T) {
	for _, p := range samples {
		for _, a := range angles {
			require.True(t, RotateZX(p, a, -a).Finite())
			require.True(t, Shear(p, AxisZ, a, a).Finite())
		}
	}
}

func TestParseAxis(t *testing.T) {
	ax, err := ParseAxis(" Y ")
	require.NoError(t, err)
	assert.Equal(t, AxisY, ax)
	_, err = ParseAxis("w")
	assert.Error(t, err)
	assert.Equal(t, "z", AxisZ.String())
}

func TestPointString(t *testing.T) {
	assert.Equal(t, "(1.00, -2.50, 0.33)", P(1, -2.5, 1.0/3).String())
}

func TestCloneIsIndependent(t *testing.T) {
	src := [][]Point3{{P(1, 1, 1)}, {P(2, 2, 2), P(3, 3, 3)}}
	cp := CloneGroups(src)
	cp[1][0].X = 99
	assert.Equal(t, 2.0, src[1][0].X)
	assert.Nil(t, Clone(nil))
}
