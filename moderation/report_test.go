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
	"strings"
	"testing"

	"github.com/blinklabs-io/modledger/database/models"
	"github.com/blinklabs-io/modledger/moderation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportThresholdEscalates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.submit(t, testAlice)

	require.NoError(t, env.mod.ReportContent(ctx, testBob, id, "spam"))
	require.NoError(t, env.mod.ReportContent(ctx, testCarol, id, "spam"))
	report, err := env.mod.GetContentReports(id)
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, uint64(2), report.ReportCount)
	assert.False(t, report.Resolved)

	require.NoError(t, env.mod.ReportContent(ctx, testDave, id, "abuse"))
	report, err = env.mod.GetContentReports(id)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), report.ReportCount)
	assert.True(t, report.Resolved)
	content, err := env.mod.GetContent(id)
	require.NoError(t, err)
	assert.Equal(t, models.ContentStatusUnderReview, content.Status)

	require.ErrorIs(
		t,
		env.mod.ReportContent(ctx, "erin", id, "late"),
		moderation.ErrInvalidReport,
	)

	markers, err := env.mod.GetReportMarkers(id)
	require.NoError(t, err)
	require.Len(t, markers, 3)
	assert.Equal(t, testBob, markers[0].Reporter)
	assert.Equal(t, "abuse", markers[2].Reason)
}

func TestReportDuplicateReporter(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.submit(t, testAlice)
	require.NoError(t, env.mod.ReportContent(ctx, testBob, id, "spam"))
	require.ErrorIs(
		t,
		env.mod.ReportContent(ctx, testBob, id, "spam again"),
		moderation.ErrAlreadyReported,
	)
	report, err := env.mod.GetContentReports(id)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), report.ReportCount)
}

func TestReportValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.ErrorIs(
		t,
		env.mod.ReportContent(ctx, testBob, 1, "spam"),
		moderation.ErrContentNotFound,
	)
	id := env.submit(t, testAlice)
	require.ErrorIs(
		t,
		env.mod.ReportContent(ctx, testBob, id, strings.Repeat("x", 257)),
		moderation.ErrInvalidInput,
	)
	require.NoError(t, env.mod.ReportContent(ctx, testBob, id, strings.Repeat("x", 256)))
	report, err := env.mod.GetContentReports(99)
	require.NoError(t, err)
	assert.Nil(t, report)
}

func TestReportFinalizedContent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.submit(t, testAlice)
	env.clock.Advance(144)
	_, err := env.mod.FinalizeModeration(ctx, testAlice, id)
	require.NoError(t, err)
	require.ErrorIs(
		t,
		env.mod.ReportContent(ctx, testBob, id, "spam"),
		moderation.ErrInvalidReport,
	)
}

func TestUnderReviewContentCannotBeFinalized(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.submit(t, testAlice)
	for _, reporter := range []string{testBob, testCarol, testDave} {
		require.NoError(t, env.mod.ReportContent(ctx, reporter, id, "spam"))
	}
	env.clock.Advance(144)
	_, err := env.mod.FinalizeModeration(ctx, testAlice, id)
	require.ErrorIs(t, err, moderation.ErrInvalidVoteTarget)
	env.setReputation(t, testBob, 200)
	require.ErrorIs(t, env.mod.Vote(ctx, testBob, id, true), moderation.ErrInvalidVoteTarget)
}
