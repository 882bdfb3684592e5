/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package tour finds the shortest visiting order of a small point set by
// exhaustive search.
package tour

import (
	"errors"
	"fmt"

	"geoc/internal/geom"
)

// DefaultMaxPoints bounds the search to 10! orderings.
const DefaultMaxPoints = 10

// ErrPermutationOverflow is returned when the point count exceeds the solver's
// limit.
var ErrPermutationOverflow = errors.New("too many points for exhaustive tour search")

// Tour is the result of a search.
//
// Score is the search objective: the open path through Order plus the edge
// from its last point back to point 0 (not to Order[0]). Length is the closed
// cyclic length of Order.
type Tour struct {
	Order  []int
	Score  float64
	Length float64
}

// Polygon returns the points in tour order.
func (t Tour) Polygon(pts []geom.Point3) []geom.Point3 {
	out := make([]geom.Point3, len(t.Order))
	for i, idx := range t.Order {
		out[i] = pts[idx]
	}
	return out
}

// DistanceMatrix returns the symmetric pairwise distances of pts.
func DistanceMatrix(pts []geom.Point3) [][]float64 {
	n := len(pts)
	d := make([][]float64, n)
	for i := range d {
		d[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v := pts[i].Dist(pts[j])
			d[i][j] = v
			d[j][i] = v
		}
	}
	return d
}

// Solver runs the exhaustive search.
type Solver struct {
	// MaxPoints is the largest accepted input; zero means DefaultMaxPoints.
	MaxPoints int
}

func (s Solver) limit() int {
	if s.MaxPoints <= 0 {
		return DefaultMaxPoints
	}
	return s.MaxPoints
}

// Solve returns the ordering with the smallest score. On ties the first
// ordering in enumeration order wins.
func (s Solver) Solve(pts []geom.Point3) (Tour, error) {
	n := len(pts)
	if n > s.limit() {
		return Tour{}, fmt.Errorf("%w: %d points, limit %d", ErrPermutationOverflow, n, s.limit())
	}
	switch n {
	case 0:
		return Tour{Order: []int{}}, nil
	case 1:
		return Tour{Order: []int{0}}, nil
	}

	d := DistanceMatrix(pts)
	var best []int
	bestScore := 0.0
	for perm := range Permutations(n) {
		sc := score(d, perm)
		if best == nil || sc < bestScore {
			best, bestScore = perm, sc
		}
	}
	return Tour{Order: best, Score: bestScore, Length: cycleLength(d, best)}, nil
}

func score(d [][]float64, perm []int) float64 {
	sum := 0.0
	for i := 0; i+1 < len(perm); i++ {
		sum += d[perm[i]][perm[i+1]]
	}
	return sum + d[perm[len(perm)-1]][0]
}

func cycleLength(d [][]float64, order []int) float64 {
	sum := 0.0
	for i := range order {
		sum += d[order[i]][order[(i+1)%len(order)]]
	}
	return sum
}
