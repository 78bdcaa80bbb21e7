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

package moderation_test

import (
	"context"
	"testing"

	"github.com/blinklabs-io/modledger/moderation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStakeAndUnstake(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.fund(t, testAlice, 6_000_000)
	env.clock.Set(50)

	require.NoError(t, env.mod.StakeTokens(ctx, testAlice, 5_000_000))
	stake, err := env.mod.GetModeratorStake(testAlice)
	require.NoError(t, err)
	require.NotNil(t, stake)
	assert.True(t, stake.Active)
	assert.Equal(t, uint64(5_000_000), uint64(stake.Amount))
	assert.Equal(t, uint64(50), stake.StakedAt)
	balance, err := env.mod.Balance(testAlice)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_000_000), balance)

	require.ErrorIs(t, env.mod.StakeTokens(ctx, testAlice, 1_000_000), moderation.ErrAlreadyStaked)

	// Lockup not yet expired
	env.clock.Set(769)
	_, err = env.mod.UnstakeTokens(ctx, testAlice)
	require.ErrorIs(t, err, moderation.ErrNotAuthorized)

	env.clock.Set(770)
	released, err := env.mod.UnstakeTokens(ctx, testAlice)
	require.NoError(t, err)
	assert.Equal(t, uint64(5_000_000), released)
	stake, err = env.mod.GetModeratorStake(testAlice)
	require.NoError(t, err)
	require.NotNil(t, stake)
	assert.False(t, stake.Active)
	assert.Zero(t, uint64(stake.Amount))
	balance, err = env.mod.Balance(testAlice)
	require.NoError(t, err)
	assert.Equal(t, uint64(6_000_000), balance)

	_, err = env.mod.UnstakeTokens(ctx, testAlice)
	require.ErrorIs(t, err, moderation.ErrNoStakeFound)

	// The slot is reused for a new stake
	require.NoError(t, env.mod.StakeTokens(ctx, testAlice, 2_000_000))
	stake, err = env.mod.GetModeratorStake(testAlice)
	require.NoError(t, err)
	assert.True(t, stake.Active)
	assert.Equal(t, uint64(770), stake.StakedAt)
}

func TestUnstakeWithoutStake(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.mod.UnstakeTokens(context.Background(), testBob)
	require.ErrorIs(t, err, moderation.ErrNoStakeFound)
	stake, err := env.mod.GetModeratorStake(testBob)
	require.NoError(t, err)
	assert.Nil(t, stake)
}

func TestStakeBelowMinimum(t *testing.T) {
	env := newTestEnv(t)
	env.fund(t, testAlice, 5_000_000)
	require.ErrorIs(
		t,
		env.mod.StakeTokens(context.Background(), testAlice, 999_999),
		moderation.ErrStakeBelowMinimum,
	)
}

func TestStakeInsufficientFunds(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.fund(t, testAlice, 4_000_000)
	require.ErrorIs(
		t,
		env.mod.StakeTokens(ctx, testAlice, 5_000_000),
		moderation.ErrInsufficientFunds,
	)
	stake, err := env.mod.GetModeratorStake(testAlice)
	require.NoError(t, err)
	assert.Nil(t, stake)
	balance, err := env.mod.Balance(testAlice)
	require.NoError(t, err)
	assert.Equal(t, uint64(4_000_000), balance)
}
