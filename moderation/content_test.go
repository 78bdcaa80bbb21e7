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
	"bytes"
	"context"
	"testing"

	"github.com/blinklabs-io/modledger/database/models"
	"github.com/blinklabs-io/modledger/moderation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitContent(t *testing.T) {
	env := newTestEnv(t)
	env.clock.Set(42)
	id := env.submit(t, testAlice)
	assert.Equal(t, uint64(1), id)
	assert.Equal(t, uint64(2), env.submit(t, testBob))

	content, err := env.mod.GetContent(id)
	require.NoError(t, err)
	require.NotNil(t, content)
	assert.Equal(t, testAlice, content.Author)
	assert.Equal(t, testContentHash, content.ContentHash)
	assert.Equal(t, models.ContentStatusPending, content.Status)
	assert.Equal(t, uint64(42), content.SubmittedAt)
	assert.Zero(t, content.VotesFor)
	assert.Zero(t, content.VotesAgainst)
}

func TestSubmitContentHashBounds(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.mod.SubmitContent(ctx, testAlice, []byte{})
	require.ErrorIs(t, err, moderation.ErrInvalidInput)
	_, err = env.mod.SubmitContent(ctx, testAlice, bytes.Repeat([]byte{0xab}, 65))
	require.ErrorIs(t, err, moderation.ErrInvalidInput)
	id, err := env.mod.SubmitContent(ctx, testAlice, bytes.Repeat([]byte{0xab}, 64))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), id, "rejected submissions must not consume ids")
}

func TestGetContentMissing(t *testing.T) {
	env := newTestEnv(t)
	content, err := env.mod.GetContent(7)
	require.NoError(t, err)
	assert.Nil(t, content)
}

func TestSubmitContentCooldown(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.clock.Set(100)
	require.ErrorIs(
		t,
		env.mod.ApplyCooldown(ctx, testAlice, testBob),
		moderation.ErrNotAuthorized,
	)
	require.NoError(t, env.mod.ApplyCooldown(ctx, testAdmin, testBob))
	cooldown, err := env.mod.GetUserCooldown(testBob)
	require.NoError(t, err)
	require.NotNil(t, cooldown)
	assert.Equal(t, uint64(172), cooldown.CooldownUntil)

	env.clock.Set(171)
	_, err = env.mod.SubmitContent(ctx, testBob, testContentHash)
	require.ErrorIs(t, err, moderation.ErrCooldownActive)
	// Other principals are unaffected
	env.submit(t, testAlice)

	env.clock.Set(172)
	env.submit(t, testBob)

	// Reapplying overwrites rather than extends
	require.NoError(t, env.mod.ApplyCooldown(ctx, testAdmin, testBob))
	cooldown, err = env.mod.GetUserCooldown(testBob)
	require.NoError(t, err)
	assert.Equal(t, uint64(244), cooldown.CooldownUntil)
}

func TestFinalizeModeration(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.setReputation(t, testBob, 200)
	env.setReputation(t, testCarol, 200)
	env.setReputation(t, testDave, 200)
	id := env.submit(t, testAlice)
	require.NoError(t, env.mod.Vote(ctx, testBob, id, true))
	require.NoError(t, env.mod.Vote(ctx, testCarol, id, true))
	require.NoError(t, env.mod.Vote(ctx, testDave, id, false))

	// Voting window is still open
	env.clock.Set(144)
	_, err := env.mod.FinalizeModeration(ctx, testBob, id)
	require.ErrorIs(t, err, moderation.ErrNotAuthorized)

	env.clock.Set(145)
	status, err := env.mod.FinalizeModeration(ctx, testBob, id)
	require.NoError(t, err)
	assert.Equal(t, models.ContentStatusApproved, status)
	content, err := env.mod.GetContent(id)
	require.NoError(t, err)
	assert.Equal(t, models.ContentStatusApproved, content.Status)
	assert.Equal(t, uint64(2), content.VotesFor)
	assert.Equal(t, uint64(1), content.VotesAgainst)

	_, err = env.mod.FinalizeModeration(ctx, testBob, id)
	require.ErrorIs(t, err, moderation.ErrInvalidVoteTarget)
}

func TestFinalizeModerationTieRejects(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.submit(t, testAlice)
	env.clock.Advance(144)
	status, err := env.mod.FinalizeModeration(ctx, testCarol, id)
	require.NoError(t, err)
	assert.Equal(t, models.ContentStatusRejected, status)
}

func TestFinalizeModerationNotFound(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.mod.FinalizeModeration(context.Background(), testAlice, 99)
	require.ErrorIs(t, err, moderation.ErrContentNotFound)
}
