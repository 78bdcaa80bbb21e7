// Copyright 2025 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package clock provides the block-height source used by the moderation
// engine. Heights never move backwards
package clock

import "sync"

// Clock reports the current block height
type Clock interface {
	Height() uint64
}

// ManualClock is a Clock that only moves when told to. It is used by tests
// and by tools that replay a known height
type ManualClock struct {
	mu     sync.RWMutex
	height uint64
}

func NewManualClock(height uint64) *ManualClock {
	return &ManualClock{height: height}
}

func (c *ManualClock) Height() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.height
}

// Advance moves the clock forward by count blocks and returns the new height
func (c *ManualClock) Advance(count uint64) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.height+count < c.height {
		c.height = ^uint64(0)
	} else {
		c.height += count
	}
	return c.height
}

// Set moves the clock to height. Attempts to move backwards are ignored and
// the result reports whether the height changed
func (c *ManualClock) Set(height uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if height <= c.height {
		return false
	}
	c.height = height
	return true
}
