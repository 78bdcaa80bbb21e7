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

package event_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/blinklabs-io/modledger/event"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestEventBusSingleSubscriber(t *testing.T) {
	eb := event.NewEventBus(nil, nil)
	defer eb.Stop()
	_, subCh := eb.Subscribe(event.ContentSubmittedEventType)
	eb.Publish(
		event.ContentSubmittedEventType,
		event.NewEvent(
			event.ContentSubmittedEventType,
			event.ContentSubmittedEvent{ContentID: 1, Author: "alice"},
		),
	)
	select {
	case evt, ok := <-subCh:
		require.True(t, ok, "event channel closed unexpectedly")
		data, ok := evt.Data.(event.ContentSubmittedEvent)
		require.True(t, ok, "event data was not of expected type, got %T", evt.Data)
		assert.Equal(t, uint64(1), data.ContentID)
		assert.Equal(t, "alice", data.Author)
	case <-time.After(1 * time.Second):
		t.Fatalf("timeout waiting for event")
	}
}

func TestEventBusMultipleSubscribers(t *testing.T) {
	eb := event.NewEventBus(nil, nil)
	defer eb.Stop()
	_, sub1Ch := eb.Subscribe(event.ContentVotedEventType)
	_, sub2Ch := eb.Subscribe(event.ContentVotedEventType)
	eb.Publish(
		event.ContentVotedEventType,
		event.NewEvent(event.ContentVotedEventType, 999),
	)
	for _, ch := range []<-chan event.Event{sub1Ch, sub2Ch} {
		select {
		case evt := <-ch:
			assert.Equal(t, 999, evt.Data)
		case <-time.After(1 * time.Second):
			t.Fatalf("timeout waiting for event")
		}
	}
}

func TestEventBusUnsubscribe(t *testing.T) {
	eb := event.NewEventBus(nil, nil)
	defer eb.Stop()
	subId, subCh := eb.Subscribe(event.StakeChangedEventType)
	eb.Unsubscribe(event.StakeChangedEventType, subId)
	eb.Publish(
		event.StakeChangedEventType,
		event.NewEvent(event.StakeChangedEventType, 1),
	)
	select {
	case _, ok := <-subCh:
		require.False(t, ok, "received unexpected event")
	case <-time.After(1 * time.Second):
		t.Fatalf("subscriber channel was not closed after Unsubscribe")
	}
}

func TestEventBusOtherTypeNotDelivered(t *testing.T) {
	eb := event.NewEventBus(nil, nil)
	defer eb.Stop()
	_, subCh := eb.Subscribe(event.ChallengeOpenedEventType)
	eb.Publish(
		event.ChallengeVotedEventType,
		event.NewEvent(event.ChallengeVotedEventType, 1),
	)
	select {
	case evt := <-subCh:
		t.Fatalf("received unexpected event: %#v", evt)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestEventBusSubscribeFuncAsync(t *testing.T) {
	eb := event.NewEventBus(nil, nil)
	var received atomic.Int64
	eb.SubscribeFunc(event.ChainHeightEventType, func(evt event.Event) {
		data := evt.Data.(event.ChainHeightEvent)
		received.Add(int64(data.Height)) // #nosec G115
	})
	for i := 1; i <= 3; i++ {
		ok := eb.PublishAsync(
			event.ChainHeightEventType,
			event.NewEvent(
				event.ChainHeightEventType,
				event.ChainHeightEvent{Height: uint64(i)}, // #nosec G115
			),
		)
		require.True(t, ok)
	}
	require.Eventually(
		t,
		func() bool { return received.Load() == 6 },
		2*time.Second,
		10*time.Millisecond,
	)
	eb.Stop()
	assert.False(
		t,
		eb.PublishAsync(
			event.ChainHeightEventType,
			event.NewEvent(event.ChainHeightEventType, event.ChainHeightEvent{}),
		),
		"publish after stop should be rejected",
	)
}

func TestEventBusMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	eb := event.NewEventBus(reg, nil)
	defer eb.Stop()
	_, subCh := eb.Subscribe(event.CooldownAppliedEventType)
	eb.Publish(
		event.CooldownAppliedEventType,
		event.NewEvent(event.CooldownAppliedEventType, event.CooldownAppliedEvent{}),
	)
	<-subCh
	count, err := testutil.GatherAndCount(reg, "event_bus_events_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	count, err = testutil.GatherAndCount(reg, "event_bus_subscribers")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
