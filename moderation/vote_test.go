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

func TestVoteRewardsReputation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.setReputation(t, testBob, 200)
	id := env.submit(t, testAlice)

	require.NoError(t, env.mod.Vote(ctx, testBob, id, true))
	rep, err := env.mod.GetUserReputation(testBob)
	require.NoError(t, err)
	require.NotNil(t, rep)
	assert.Equal(t, uint64(210), uint64(rep.Score))

	vote, err := env.mod.GetVote(id, testBob)
	require.NoError(t, err)
	require.NotNil(t, vote)
	assert.True(t, vote.Approve)

	content, err := env.mod.GetContent(id)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), content.VotesFor)
	assert.Equal(t, uint64(0), content.VotesAgainst)
}

func TestVoteTwiceRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.setReputation(t, testBob, 300)
	id := env.submit(t, testAlice)
	require.NoError(t, env.mod.Vote(ctx, testBob, id, false))
	require.ErrorIs(t, env.mod.Vote(ctx, testBob, id, true), moderation.ErrAlreadyVoted)

	// The failed vote changes nothing
	rep, err := env.mod.GetUserReputation(testBob)
	require.NoError(t, err)
	assert.Equal(t, uint64(310), uint64(rep.Score))
	content, err := env.mod.GetContent(id)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), content.VotesFor)
	assert.Equal(t, uint64(1), content.VotesAgainst)
}

func TestVoteInsufficientReputation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.submit(t, testAlice)
	// No reputation record at all
	require.ErrorIs(t, env.mod.Vote(ctx, testBob, id, true), moderation.ErrInsufficientReputation)
	env.setReputation(t, testBob, 0)
	require.ErrorIs(t, env.mod.Vote(ctx, testBob, id, true), moderation.ErrInsufficientReputation)
	env.setReputation(t, testBob, 99)
	require.ErrorIs(t, env.mod.Vote(ctx, testBob, id, true), moderation.ErrInsufficientReputation)
	env.setReputation(t, testBob, 100)
	require.NoError(t, env.mod.Vote(ctx, testBob, id, true))
	vote, err := env.mod.GetVote(id, testCarol)
	require.NoError(t, err)
	assert.Nil(t, vote)
}

func TestVoteUnknownContent(t *testing.T) {
	env := newTestEnv(t)
	env.setReputation(t, testBob, 200)
	require.ErrorIs(
		t,
		env.mod.Vote(context.Background(), testBob, 5, true),
		moderation.ErrContentNotFound,
	)
}

func TestVoteWindowClosed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.setReputation(t, testBob, 200)
	env.setReputation(t, testCarol, 200)
	env.clock.Set(10)
	id := env.submit(t, testAlice)
	env.clock.Set(153)
	require.NoError(t, env.mod.Vote(ctx, testCarol, id, true))
	env.clock.Set(154)
	require.ErrorIs(t, env.mod.Vote(ctx, testBob, id, true), moderation.ErrInvalidVoteTarget)
}

func TestVoteFinalizedContent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.setReputation(t, testBob, 200)
	id := env.submit(t, testAlice)
	env.clock.Advance(144)
	_, err := env.mod.FinalizeModeration(ctx, testAlice, id)
	require.NoError(t, err)
	require.ErrorIs(t, env.mod.Vote(ctx, testBob, id, true), moderation.ErrInvalidVoteTarget)
}

func TestVoteReputationSaturates(t *testing.T) {
	env := newTestEnv(t)
	env.setReputation(t, testBob, ^uint64(0)-3)
	id := env.submit(t, testAlice)
	require.NoError(t, env.mod.Vote(context.Background(), testBob, id, true))
	rep, err := env.mod.GetUserReputation(testBob)
	require.NoError(t, err)
	assert.Equal(t, ^uint64(0), uint64(rep.Score))
}

func TestInitializeReputationPrivileged(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.ErrorIs(
		t,
		env.mod.InitializeReputation(ctx, testAlice, testAlice, 1000),
		moderation.ErrNotAuthorized,
	)
	rep, err := env.mod.GetUserReputation(testAlice)
	require.NoError(t, err)
	assert.Nil(t, rep)
	require.ErrorIs(
		t,
		env.mod.InitializeReputation(ctx, testAdmin, "", 1000),
		moderation.ErrInvalidInput,
	)
}
