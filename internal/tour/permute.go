/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package tour

import "iter"

// Permutations yields every ordering of 0..n-1 using the iterative form of
// Heap's algorithm. The first permutation is the identity. Each yielded slice
// is freshly allocated and owned by the caller.
func Permutations(n int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		if n <= 0 {
			return
		}
		a := make([]int, n)
		for i := range a {
			a[i] = i
		}
		if !yield(append([]int(nil), a...)) {
			return
		}
		c := make([]int, n)
		for i := 1; i < n; {
			if c[i] < i {
				if i%2 == 0 {
					a[0], a[i] = a[i], a[0]
				} else {
					a[c[i]], a[i] = a[i], a[c[i]]
				}
				if !yield(append([]int(nil), a...)) {
					return
				}
				c[i]++
				i = 1
			} else {
				c[i] = 0
				i++
			}
		}
	}
}

// Factorial returns n!, or -1 when it does not fit in an int.
func Factorial(n int) int {
	if n < 0 {
		return -1
	}
	f := 1
	for i := 2; i <= n; i++ {
		if f > int(^uint(0)>>1)/i {
			return -1
		}
		f *= i
	}
	return f
}
