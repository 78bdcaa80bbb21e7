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
	"time"

	"github.com/blinklabs-io/modledger/bank"
	"github.com/blinklabs-io/modledger/clock"
	"github.com/blinklabs-io/modledger/database"
	"github.com/blinklabs-io/modledger/database/models"
	"github.com/blinklabs-io/modledger/event"
	"github.com/blinklabs-io/modledger/moderation"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAdmin     = "admin"
	testAlice     = "alice"
	testBob       = "bob"
	testCarol     = "carol"
	testDave      = "dave"
	testFinalizer = "finalizer"
	testPool      = "penalty-pool"
)

// testContentHash is a 20-byte fingerprint
var testContentHash = []byte("0123456789abcdefghij")

type testEnv struct {
	mod      *moderation.Moderator
	clock    *clock.ManualClock
	db       *database.Database
	eventBus *event.EventBus
	registry *prometheus.Registry
}

func newTestEnv(t *testing.T, opts ...func(*moderation.Config)) *testEnv {
	t.Helper()
	db, err := database.New(&database.Config{})
	require.NoError(t, err)
	registry := prometheus.NewRegistry()
	eventBus := event.NewEventBus(nil, nil)
	c := clock.NewManualClock(1)
	cfg := moderation.Config{
		Database:          db,
		Ledger:            bank.New(db, nil),
		Clock:             c,
		EventBus:          eventBus,
		PromRegistry:      registry,
		Admin:             testAdmin,
		TrustedFinalizers: []string{testFinalizer},
		PenaltyPool:       testPool,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	mod, err := moderation.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		eventBus.Stop()
		require.NoError(t, db.Close())
	})
	return &testEnv{
		mod:      mod,
		clock:    c,
		db:       db,
		eventBus: eventBus,
		registry: registry,
	}
}

func (e *testEnv) setReputation(t *testing.T, principal string, score uint64) {
	t.Helper()
	require.NoError(
		t,
		e.mod.InitializeReputation(context.Background(), testAdmin, principal, score),
	)
}

func (e *testEnv) fund(t *testing.T, principal string, amount uint64) {
	t.Helper()
	_, err := e.mod.Deposit(context.Background(), testAdmin, principal, amount)
	require.NoError(t, err)
}

func (e *testEnv) submit(t *testing.T, author string) uint64 {
	t.Helper()
	id, err := e.mod.SubmitContent(context.Background(), author, testContentHash)
	require.NoError(t, err)
	return id
}

func TestNewRequiresAdmin(t *testing.T) {
	db, err := database.New(&database.Config{})
	require.NoError(t, err)
	defer db.Close()
	_, err = moderation.New(moderation.Config{
		Database: db,
		Ledger:   bank.New(db, nil),
		Clock:    clock.NewManualClock(0),
	})
	require.Error(t, err)
}

func TestNewRejectsInvalidParams(t *testing.T) {
	db, err := database.New(&database.Config{})
	require.NoError(t, err)
	defer db.Close()
	params := moderation.DefaultParams()
	params.VotingPeriod = 0
	_, err = moderation.New(moderation.Config{
		Database: db,
		Ledger:   bank.New(db, nil),
		Clock:    clock.NewManualClock(0),
		Admin:    testAdmin,
		Params:   &params,
	})
	require.Error(t, err)
}

func TestMissingCaller(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.mod.SubmitContent(context.Background(), "", testContentHash)
	require.ErrorIs(t, err, moderation.ErrInvalidInput)
}

func TestErrorCodes(t *testing.T) {
	assert.Len(t, moderation.Errors, 17)
	for idx, modErr := range moderation.Errors {
		assert.Equal(t, uint(idx+1), modErr.Code) // #nosec G115
		assert.Same(t, modErr, moderation.ErrorByCode(modErr.Code))
	}
	assert.Nil(t, moderation.ErrorByCode(99))
	assert.Equal(t, "not-authorized (u1)", moderation.ErrNotAuthorized.Error())
}

func TestJournalRecordsCommittedOperations(t *testing.T) {
	env := newTestEnv(t)
	env.setReputation(t, testBob, 200)
	id := env.submit(t, testAlice)
	// Rejected operations leave no journal entry
	_, err := env.mod.FinalizeModeration(context.Background(), testAlice, id)
	require.ErrorIs(t, err, moderation.ErrNotAuthorized)
	require.NoError(t, env.mod.Vote(context.Background(), testBob, id, true))

	entries, err := env.mod.Journal(0, 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "initialize-reputation", entries[0].Operation)
	assert.Equal(t, "submit-content", entries[1].Operation)
	assert.Equal(t, testAlice, entries[1].Principal)
	assert.Equal(t, "1", entries[1].Detail["content-id"])
	assert.Equal(t, "vote", entries[2].Operation)
	assert.Equal(t, "true", entries[2].Detail["approve"])
	assert.Equal(t, uint64(3), entries[2].Sequence)
}

func TestOperationMetrics(t *testing.T) {
	env := newTestEnv(t)
	env.submit(t, testAlice)
	_, err := env.mod.SubmitContent(context.Background(), testAlice, nil)
	require.ErrorIs(t, err, moderation.ErrInvalidInput)

	assert.InDelta(t, 1.0, counterValue(t, env.registry, "modledger_operations_total", map[string]string{
		"operation": "submit-content",
		"result":    "ok",
	}), 0.0001)
	assert.InDelta(t, 1.0, counterValue(t, env.registry, "modledger_operations_total", map[string]string{
		"operation": "submit-content",
		"result":    "invalid-input",
	}), 0.0001)
	assert.InDelta(t, 1.0, gaugeValue(t, env.registry, "modledger_content_items", map[string]string{
		"status": "pending",
	}), 0.0001)
	count, err := testutil.GatherAndCount(env.registry, "modledger_content_items")
	require.NoError(t, err)
	assert.Equal(t, len(models.ContentStatuses), count)
}

func TestEventsPublishedAfterCommit(t *testing.T) {
	env := newTestEnv(t)
	_, submitted := env.eventBus.Subscribe(event.ContentSubmittedEventType)
	id := env.submit(t, testAlice)
	select {
	case evt := <-submitted:
		data, ok := evt.Data.(event.ContentSubmittedEvent)
		require.True(t, ok)
		assert.Equal(t, id, data.ContentID)
		assert.Equal(t, testContentHash, data.ContentHash)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for content submitted event")
	}
	// Failed operations publish nothing
	_, err := env.mod.SubmitContent(context.Background(), testAlice, nil)
	require.Error(t, err)
	select {
	case evt := <-submitted:
		t.Fatalf("unexpected event: %#v", evt)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestRecordHeight(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.mod.RecordHeight(500))
	height, err := env.db.GetChainHeight(nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(500), height)
}

func TestCommittedOperationPersistsHeight(t *testing.T) {
	env := newTestEnv(t)
	env.clock.Advance(49)
	env.submit(t, testAlice)
	height, err := env.db.GetChainHeight(nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(50), height)

	// Rejected operations do not touch the stored height
	env.clock.Advance(10)
	_, err = env.mod.SubmitContent(context.Background(), testAlice, nil)
	require.Error(t, err)
	height, err = env.db.GetChainHeight(nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(50), height)

	// A stale tick never lowers it
	require.NoError(t, env.mod.RecordHeight(20))
	height, err = env.db.GetChainHeight(nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(50), height)
}

func TestDepositAndBalance(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.mod.Deposit(ctx, testAlice, testAlice, 100)
	require.ErrorIs(t, err, moderation.ErrNotAuthorized)
	_, err = env.mod.Deposit(ctx, testAdmin, testAlice, 0)
	require.ErrorIs(t, err, moderation.ErrInvalidInput)
	balance, err := env.mod.Deposit(ctx, testAdmin, testAlice, 100)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), balance)
	balance, err = env.mod.Deposit(ctx, testAdmin, testAlice, 50)
	require.NoError(t, err)
	assert.Equal(t, uint64(150), balance)
	balance, err = env.mod.Balance(testAlice)
	require.NoError(t, err)
	assert.Equal(t, uint64(150), balance)
}

func counterValue(
	t *testing.T,
	reg *prometheus.Registry,
	name string,
	labels map[string]string,
) float64 {
	t.Helper()
	metric := findMetric(t, reg, name, labels)
	return metric.GetCounter().GetValue()
}

func gaugeValue(
	t *testing.T,
	reg *prometheus.Registry,
	name string,
	labels map[string]string,
) float64 {
	t.Helper()
	metric := findMetric(t, reg, name, labels)
	return metric.GetGauge().GetValue()
}

func findMetric(
	t *testing.T,
	reg *prometheus.Registry,
	name string,
	labels map[string]string,
) *dto.Metric {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			matched := 0
			for _, label := range metric.GetLabel() {
				if labels[label.GetName()] == label.GetValue() {
					matched++
				}
			}
			if matched == len(labels) {
				return metric
			}
		}
	}
	t.Fatalf("metric %s with labels %v not found", name, labels)
	return nil
}
