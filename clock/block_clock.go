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

package clock

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

const DefaultBlockInterval = 10 * time.Minute

// BlockTick is sent to subscribers each time the BlockClock advances
type BlockTick struct {
	Time   time.Time
	Height uint64
}

type BlockClockConfig struct {
	Logger *slog.Logger
	// OnTick is called from the clock goroutine after each advance, before
	// subscribers are notified
	OnTick func(BlockTick)
	// Interval between blocks. Default: 10m
	Interval time.Duration
	// StartHeight is the height the clock resumes from
	StartHeight uint64
}

// BlockClock advances the height by one block every interval. It stands in
// for the external chain that schedules blocks
type BlockClock struct {
	config      BlockClockConfig
	subscribers []chan BlockTick
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	height      atomic.Uint64
	mu          sync.Mutex
	running     bool
}

func NewBlockClock(config BlockClockConfig) *BlockClock {
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if config.Interval <= 0 {
		config.Interval = DefaultBlockInterval
	}
	bc := &BlockClock{config: config}
	bc.height.Store(config.StartHeight)
	return bc
}

func (bc *BlockClock) Height() uint64 {
	return bc.height.Load()
}

// Start begins ticking. It returns immediately and the tick loop runs until
// Stop is called or ctx is cancelled
func (bc *BlockClock) Start(ctx context.Context) {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	if bc.running {
		return
	}
	bc.running = true
	runCtx, cancel := context.WithCancel(ctx)
	bc.cancel = cancel
	bc.wg.Add(1)
	go bc.run(runCtx)
}

// Stop halts the clock, waits for the tick loop to exit and closes all
// subscriber channels
func (bc *BlockClock) Stop() {
	bc.mu.Lock()
	if !bc.running {
		bc.mu.Unlock()
		return
	}
	bc.running = false
	bc.cancel()
	bc.mu.Unlock()

	bc.wg.Wait()

	bc.mu.Lock()
	for _, ch := range bc.subscribers {
		close(ch)
	}
	bc.subscribers = nil
	bc.mu.Unlock()
}

// Subscribe returns a channel receiving a BlockTick for each new block. Ticks
// are dropped for a subscriber that has not drained the previous one
func (bc *BlockClock) Subscribe() <-chan BlockTick {
	ch := make(chan BlockTick, 1)
	bc.mu.Lock()
	bc.subscribers = append(bc.subscribers, ch)
	bc.mu.Unlock()
	return ch
}

func (bc *BlockClock) run(ctx context.Context) {
	defer bc.wg.Done()
	ticker := time.NewTicker(bc.config.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			bc.tick(now)
		}
	}
}

func (bc *BlockClock) tick(now time.Time) {
	tick := BlockTick{
		Time:   now,
		Height: bc.height.Add(1),
	}
	bc.config.Logger.Debug(
		"block height advanced",
		"component", "clock",
		"height", tick.Height,
	)
	if bc.config.OnTick != nil {
		bc.config.OnTick(tick)
	}
	bc.mu.Lock()
	defer bc.mu.Unlock()
	for _, ch := range bc.subscribers {
		select {
		case ch <- tick:
		default:
		}
	}
}
