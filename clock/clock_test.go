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

package clock_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/blinklabs-io/modledger/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestManualClockMonotonic(t *testing.T) {
	c := clock.NewManualClock(10)
	assert.Equal(t, uint64(10), c.Height())
	assert.Equal(t, uint64(154), c.Advance(144))
	assert.False(t, c.Set(100), "moving backwards should be ignored")
	assert.Equal(t, uint64(154), c.Height())
	assert.True(t, c.Set(200))
	assert.Equal(t, uint64(200), c.Height())
}

func TestManualClockAdvanceSaturates(t *testing.T) {
	c := clock.NewManualClock(^uint64(0) - 1)
	assert.Equal(t, ^uint64(0), c.Advance(5))
}

func TestBlockClockTicks(t *testing.T) {
	var onTick atomic.Uint64
	bc := clock.NewBlockClock(clock.BlockClockConfig{
		Interval:    5 * time.Millisecond,
		StartHeight: 100,
		OnTick: func(tick clock.BlockTick) {
			onTick.Store(tick.Height)
		},
	})
	ticks := bc.Subscribe()
	bc.Start(context.Background())
	select {
	case tick := <-ticks:
		assert.Greater(t, tick.Height, uint64(100))
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for block tick")
	}
	require.Eventually(
		t,
		func() bool { return onTick.Load() > 100 },
		2*time.Second,
		5*time.Millisecond,
	)
	bc.Stop()
	stopped := bc.Height()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, bc.Height(), "height should not move after Stop")
	_, ok := <-ticks
	for ok {
		_, ok = <-ticks
	}
}

func TestBlockClockStopWithoutStart(t *testing.T) {
	bc := clock.NewBlockClock(clock.BlockClockConfig{})
	bc.Stop()
	assert.Equal(t, uint64(0), bc.Height())
}

func TestBlockClockContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	bc := clock.NewBlockClock(clock.BlockClockConfig{Interval: time.Millisecond})
	bc.Start(ctx)
	cancel()
	bc.Stop()
}
