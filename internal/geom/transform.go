/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geom

import "math"

// RotateX rotates p around the X axis by a radians.
func RotateX(p Point3, a float64) Point3 {
	c, s := math.Cos(a), math.Sin(a)
	return Point3{
		X: p.X,
		Y: p.Y*c + p.Z*s,
		Z: p.Z*c - p.Y*s,
	}
}

// RotateY rotates p around the Y axis by a radians.
func RotateY(p Point3, a float64) Point3 {
	c, s := math.Cos(a), math.Sin(a)
	return Point3{
		X: p.X*c - p.Z*s,
		Y: p.Y,
		Z: p.Z*c + p.X*s,
	}
}

// RotateZ rotates p around the Z axis by a radians.
func RotateZ(p Point3, a float64) Point3 {
	c, s := math.Cos(a), math.Sin(a)
	return Point3{
		X: p.X*c + p.Y*s,
		Y: p.Y*c - p.X*s,
		Z: p.Z,
	}
}

// Rotate applies the single-axis rotation selected by axis.
func Rotate(p Point3, axis Axis, a float64) Point3 {
	switch axis {
	case AxisX:
		return RotateX(p, a)
	case AxisY:
		return RotateY(p, a)
	default:
		return RotateZ(p, a)
	}
}

// RotateZX is the camera rotation: Z by az, then X by ax, written out in closed
// form. Keep the expression as is; the camera code relies on its exact rounding.
func RotateZX(p Point3, az, ax float64) Point3 {
	cz, sz := math.Cos(az), math.Sin(az)
	cx, sx := math.Cos(ax), math.Sin(ax)
	return Point3{
		X: p.X*cz + p.Y*sz,
		Y: (p.Y*cz-p.X*sz)*cx + p.Z*sx,
		Z: p.Z*cx - (p.Y*cz-p.X*sz)*sx,
	}
}

// Project scales the named axis by factor. factor 0 flattens p onto the plane
// spanned by the other two axes.
func Project(p Point3, axis Axis, factor float64) Point3 {
	return scaleAxis(p, axis, factor)
}

// Reflect scales the named axis by factor; -1 mirrors, values in between give
// the intermediate frames of an animated flip.
func Reflect(p Point3, axis Axis, factor float64) Point3 {
	return scaleAxis(p, axis, factor)
}

// Scale multiplies all coordinates by factor.
func Scale(p Point3, factor float64) Point3 {
	return Point3{p.X * factor, p.Y * factor, p.Z * factor}
}

// Translate adds (dx, dy, dz) to p.
func Translate(p Point3, dx, dy, dz float64) Point3 {
	return Point3{p.X + dx, p.Y + dy, p.Z + dz}
}

// Shear keeps the named axis and adds axis*s and axis*t to the other two
// coordinates, taken in x, y, z order.
func Shear(p Point3, axis Axis, s, t float64) Point3 {
	switch axis {
	case AxisX:
		return Point3{p.X, p.Y + p.X*s, p.Z + p.X*t}
	case AxisY:
		return Point3{p.X + p.Y*s, p.Y, p.Z + p.Y*t}
	default:
		return Point3{p.X + p.Z*s, p.Y + p.Z*t, p.Z}
	}
}

func scaleAxis(p Point3, axis Axis, f float64) Point3 {
	switch axis {
	case AxisX:
		p.X *= f
	case AxisY:
		p.Y *= f
	default:
		p.Z *= f
	}
	return p
}
