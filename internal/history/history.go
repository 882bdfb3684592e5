/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package history keeps bounded undo/redo stacks of committed collection states.
package history

import (
	"sync"
	"time"

	"geoc/internal/geom"
)

// Target names the collection a state belongs to.
type Target int

const (
	Vectors Target = iota
	Shapes
)

func (t Target) String() string {
	if t == Shapes {
		return "shapes"
	}
	return "vectors"
}

// pointBytes is the accounted size of one stored point.
const pointBytes = 24

// State is one recorded collection content. Vector states are stored as a
// single group.
type State struct {
	Target Target
	Groups [][]geom.Point3
	TS     time.Time
}

func (s State) size() int {
	n := 0
	for _, g := range s.Groups {
		n += len(g)
	}
	return n * pointBytes
}

// Config controls memory and depth caps and coalescing behavior.
type Config struct {
	// MaxBytes is a soft cap; the oldest states are pruned when exceeded.
	MaxBytes int
	// MaxPerTarget limits the undo depth per target (0 means unlimited).
	MaxPerTarget int
	// MinInterval coalesces pushes for the same target that arrive within the
	// interval, replacing the previous entry.
	MinInterval time.Duration
}

// Manager provides in-memory undo/redo stacks per target.
// It is safe for concurrent use.
type Manager struct {
	cfg Config
	mu  sync.Mutex

	undo map[Target][]State
	redo map[Target][]State

	totalBytes int
}

func NewManager(cfg Config) *Manager {
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = 8 * 1024 * 1024
	}
	if cfg.MinInterval < 0 {
		cfg.MinInterval = 0
	}
	return &Manager{cfg: cfg, undo: make(map[Target][]State), redo: make(map[Target][]State)}
}

// Push records the state a target had before a change. A push within
// MinInterval of the previous one for the same target keeps the older entry,
// so a burst of changes undoes in one step. Any push clears the target's redo
// stack.
func (m *Manager) Push(s State) {
	s.Groups = geom.CloneGroups(s.Groups)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.redo[s.Target] = nil
	stack := m.undo[s.Target]
	if n := len(stack); n > 0 && m.cfg.MinInterval > 0 {
		if s.TS.Sub(stack[n-1].TS) < m.cfg.MinInterval {
			stack[n-1].TS = s.TS
			return
		}
	}
	m.undo[s.Target] = append(stack, s)
	m.totalBytes += s.size()
	m.enforceCapsLocked(s.Target)
}

// Undo pops the latest recorded state of target and returns it. current is
// what the target holds now; it is pushed onto the redo stack.
func (m *Manager) Undo(target Target, current [][]geom.Point3) (State, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stack := m.undo[target]
	if len(stack) == 0 {
		return State{}, false
	}
	s := stack[len(stack)-1]
	m.undo[target] = stack[:len(stack)-1]
	m.totalBytes -= s.size()
	m.redo[target] = append(m.redo[target], State{Target: target, Groups: geom.CloneGroups(current), TS: s.TS})
	return s, true
}

// Redo pops the latest undone state of target and pushes current back onto
// the undo stack.
func (m *Manager) Redo(target Target, current [][]geom.Point3) (State, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := m.redo[target]
	if len(r) == 0 {
		return State{}, false
	}
	s := r[len(r)-1]
	m.redo[target] = r[:len(r)-1]
	back := State{Target: target, Groups: geom.CloneGroups(current), TS: s.TS}
	m.undo[target] = append(m.undo[target], back)
	m.totalBytes += back.size()
	m.enforceCapsLocked(target)
	return s, true
}

// CanUndo reports whether target has recorded states.
func (m *Manager) CanUndo(target Target) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.undo[target]) > 0
}

// CanRedo reports whether target has undone states.
func (m *Manager) CanRedo(target Target) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.redo[target]) > 0
}

// Clear drops both stacks of target.
func (m *Manager) Clear(target Target) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.undo[target] {
		m.totalBytes -= s.size()
	}
	delete(m.undo, target)
	delete(m.redo, target)
	if m.totalBytes < 0 {
		m.totalBytes = 0
	}
}

// Stats returns current sizes for diagnostics.
func (m *Manager) Stats() (totalBytes int, targets int, totalStates int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.undo {
		if len(v) > 0 {
			targets++
		}
		totalStates += len(v)
	}
	return m.totalBytes, targets, totalStates
}

func (m *Manager) enforceCapsLocked(target Target) {
	if m.cfg.MaxPerTarget > 0 {
		stack := m.undo[target]
		if drop := len(stack) - m.cfg.MaxPerTarget; drop > 0 {
			for i := 0; i < drop; i++ {
				m.totalBytes -= stack[i].size()
			}
			m.undo[target] = append([]State{}, stack[drop:]...)
		}
	}
	// prune oldest across targets
	for m.totalBytes > m.cfg.MaxBytes {
		oldest := Target(-1)
		var oldestTS time.Time
		for t, stack := range m.undo {
			if len(stack) == 0 {
				continue
			}
			if oldest < 0 || stack[0].TS.Before(oldestTS) {
				oldest, oldestTS = t, stack[0].TS
			}
		}
		if oldest < 0 {
			break
		}
		stack := m.undo[oldest]
		m.totalBytes -= stack[0].size()
		m.undo[oldest] = stack[1:]
	}
}
