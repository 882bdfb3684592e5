/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"fmt"
	"strings"
	"time"

	"geoc/internal/anim"
	"geoc/internal/engine"
	"geoc/internal/geom"
	"geoc/internal/input"
)

// Options configures the desktop window.
type Options struct {
	Engine      engine.Options
	Interval    time.Duration
	IdleOnStart bool
	// Vectors seeds the point collection.
	Vectors []geom.Point3
}

// Fields is the raw text of the transform form.
type Fields struct {
	X, Y, Z string
	Factor  string
	Axis    string
	Sweep   bool
}

// ParseParams turns form text into transform parameters for kind. Rotation
// angles are typed in degrees and a blank angle means no turn; every other
// field the kind uses must hold a valid number.
func ParseParams(kind anim.Kind, f Fields) (anim.Params, error) {
	var p anim.Params
	switch kind {
	case anim.Translate:
		v, err := input.ParseTriple(f.X, f.Y, f.Z)
		if err != nil {
			return p, fmt.Errorf("translate: %w", err)
		}
		p.X, p.Y, p.Z = v[0], v[1], v[2]
	case anim.Scale:
		v, err := input.ParseNumber(f.Factor)
		if err != nil {
			return p, fmt.Errorf("scale factor: %w", err)
		}
		p.Factor = v
	case anim.Project, anim.Reflect:
		axis, err := geom.ParseAxis(f.Axis)
		if err != nil {
			return p, fmt.Errorf("%s axis: %w", kind, err)
		}
		p.Axis = axis
		p.Sweep = kind == anim.Reflect && f.Sweep
		if p.Sweep {
			break
		}
		if p.Factor, err = input.ParseNumber(f.Factor); err != nil {
			return p, fmt.Errorf("%s factor: %w", kind, err)
		}
	case anim.Rotate:
		for i, s := range []string{f.X, f.Y, f.Z} {
			if strings.TrimSpace(s) == "" {
				continue
			}
			a, err := input.ParseDegrees(s)
			if err != nil {
				return p, fmt.Errorf("rotate %s: %w", geom.Axis(i), err)
			}
			switch i {
			case 0:
				p.X = a
			case 1:
				p.Y = a
			default:
				p.Z = a
			}
		}
	case anim.Shear:
		axis, err := geom.ParseAxis(f.Axis)
		if err != nil {
			return p, fmt.Errorf("shear axis: %w", err)
		}
		p.Axis = axis
		if p.S, err = input.ParseNumber(f.X); err != nil {
			return p, fmt.Errorf("shear s: %w", err)
		}
		if p.T, err = input.ParseNumber(f.Y); err != nil {
			return p, fmt.Errorf("shear t: %w", err)
		}
	default:
		return p, fmt.Errorf("unknown transform %v", kind)
	}
	return p, nil
}
