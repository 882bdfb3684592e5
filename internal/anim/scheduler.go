/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package anim implements a cooperative, tick-driven animation scheduler.
//
// The scheduler owns no timer. A collaborator calls Tick at its own cadence
// (30 ms is the reference interval) from the goroutine that owns the scene;
// every running task advances exactly one step per call.
package anim

import (
	"log/slog"
	"time"
)

const (
	DefaultFrames   = 25
	DefaultInterval = 30 * time.Millisecond
)

// Scheduler keeps the list of live tasks in registration order.
type Scheduler struct {
	tasks      []Task
	ticks      uint64
	onComplete func(*TransformTask)
	log        *slog.Logger
}

// NewScheduler returns an empty scheduler. A nil logger discards output.
func NewScheduler(l *slog.Logger) *Scheduler {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	return &Scheduler{log: l}
}

// OnComplete registers fn to run for each transform task that finishes. It is
// invoked after the task has been detached, within the same Tick.
func (s *Scheduler) OnComplete(fn func(*TransformTask)) { s.onComplete = fn }

// Submit registers t. It starts running on the next Tick.
func (s *Scheduler) Submit(t Task) {
	s.tasks = append(s.tasks, t)
	if tt, ok := t.(*TransformTask); ok {
		s.log.Debug("task submitted", slog.String("kind", tt.kind.String()), slog.Int("total", tt.total))
	}
}

// Len returns the number of attached tasks.
func (s *Scheduler) Len() int { return len(s.tasks) }

// Ticks returns how many times Tick has run.
func (s *Scheduler) Ticks() uint64 { return s.ticks }

// Tasks returns a copy of the attached task list.
func (s *Scheduler) Tasks() []Task { return append([]Task(nil), s.tasks...) }

// Busy reports whether any bounded task is still attached.
func (s *Scheduler) Busy() bool {
	for _, t := range s.tasks {
		if _, ok := t.(*TransformTask); ok {
			return true
		}
	}
	return false
}

// Tick promotes pending tasks, advances every running task one step in
// registration order and detaches the ones that finished or were cancelled.
func (s *Scheduler) Tick() {
	s.ticks++
	var finished []*TransformTask
	live := s.tasks[:0]
	for _, t := range s.tasks {
		t.begin()
		t.step()
		switch t.State() {
		case Done:
			if tt, ok := t.(*TransformTask); ok {
				finished = append(finished, tt)
			}
		case Cancelled:
			s.log.Debug("task cancelled")
		default:
			live = append(live, t)
		}
	}
	clear(s.tasks[len(live):])
	s.tasks = live

	for _, tt := range finished {
		s.log.Debug("task done",
			slog.String("kind", tt.kind.String()),
			slog.Int("applied", tt.applied),
			slog.Int("skipped", tt.skipped))
		if s.onComplete != nil {
			s.onComplete(tt)
		}
	}
}
