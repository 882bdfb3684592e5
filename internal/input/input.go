/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package input validates the numeric text typed into coordinate fields before
// it reaches the transform core.
package input

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrInvalidInput marks text that is not an accepted number.
var ErrInvalidInput = errors.New("invalid numeric input")

// Validate reports whether s is an accepted number: digits with at most one
// decimal point, an optional leading minus, and a digit as the last character.
// Exponents, plus signs and whitespace are rejected.
func Validate(s string) bool {
	if s == "" {
		return false
	}
	dot := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c == '-' && i == 0:
		case c == '.':
			if dot {
				return false
			}
			dot = true
		default:
			return false
		}
	}
	last := s[len(s)-1]
	return last >= '0' && last <= '9'
}

// ParseNumber validates s and converts it to a float64.
func ParseNumber(s string) (float64, error) {
	if !Validate(s) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidInput, s)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// only reachable for out-of-range magnitudes
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidInput, s, err)
	}
	return v, nil
}

// ParseTriple parses the three coordinate fields. Any invalid field rejects the
// whole triple so a half-typed vector never starts a transform.
func ParseTriple(x, y, z string) ([3]float64, error) {
	var out [3]float64
	for i, s := range [3]string{x, y, z} {
		v, err := ParseNumber(s)
		if err != nil {
			return [3]float64{}, fmt.Errorf("field %d: %w", i+1, err)
		}
		out[i] = v
	}
	return out, nil
}

// ParseDegrees parses an angle typed in degrees and returns radians.
func ParseDegrees(s string) (float64, error) {
	v, err := ParseNumber(s)
	if err != nil {
		return 0, err
	}
	return v * math.Pi / 180, nil
}

// OrZero parses s, treating empty or invalid text as 0. Transform fields that
// may be left blank (e.g. the unused axis of a rotation) go through here.
func OrZero(s string) float64 {
	v, err := ParseNumber(s)
	if err != nil {
		return 0
	}
	return v
}
