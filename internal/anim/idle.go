/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package anim

// DefaultIdleStep is the camera Z-phase increment per tick, in radians.
const DefaultIdleStep = 0.04

// Spinner is anything whose camera can be turned about Z.
type Spinner interface {
	SpinCamera(step float64)
}

// IdleTask turns the camera a fixed step every tick until cancelled. It has no
// snapshot and never completes on its own.
type IdleTask struct {
	spinner Spinner
	stepRad float64
	ticks   int
	state   State
}

func NewIdleTask(s Spinner, step float64) *IdleTask {
	if step == 0 {
		step = DefaultIdleStep
	}
	return &IdleTask{spinner: s, stepRad: step}
}

func (t *IdleTask) State() State { return t.state }

// Ticks is the number of steps applied so far.
func (t *IdleTask) Ticks() int { return t.ticks }

// Cancel stops the task; it is detached on the next tick.
func (t *IdleTask) Cancel() { t.state = Cancelled }

func (t *IdleTask) begin() {
	if t.state == Pending {
		t.state = Running
	}
}

func (t *IdleTask) step() {
	if t.state != Running {
		return
	}
	t.ticks++
	t.spinner.SpinCamera(t.stepRad)
}
