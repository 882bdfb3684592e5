/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package input

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"geoc/internal/geom"
)

// ParsePoints reads one point per line as whitespace-separated "x y z".
// Blank lines and lines starting with '#' are ignored, as are fields after
// the third. Any malformed line rejects the whole input.
func ParsePoints(r io.Reader) ([]geom.Point3, error) {
	var out []geom.Point3
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		f := strings.Fields(text)
		if len(f) < 3 {
			return nil, fmt.Errorf("line %d: %w: want 3 coordinates, got %d", line, ErrInvalidInput, len(f))
		}
		v, err := ParseTriple(f[0], f[1], f[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, geom.P(v[0], v[1], v[2]))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read points: %w", err)
	}
	return out, nil
}
