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

package event

import "github.com/prometheus/client_golang/prometheus"

type eventMetrics struct {
	eventsTotal    *prometheus.CounterVec
	eventsDropped  *prometheus.CounterVec
	deliveryErrors *prometheus.CounterVec
	subscribers    *prometheus.GaugeVec
}

func newEventMetrics(promRegistry prometheus.Registerer) *eventMetrics {
	m := &eventMetrics{
		eventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "event_bus_events_total",
				Help: "Total events published by type",
			},
			[]string{"type"},
		),
		eventsDropped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "event_bus_events_dropped_total",
				Help: "Async events dropped because the queue was full",
			},
			[]string{"type"},
		),
		deliveryErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "event_bus_delivery_errors_total",
				Help: "Subscriber delivery failures by type",
			},
			[]string{"type"},
		),
		subscribers: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "event_bus_subscribers",
				Help: "Current subscribers by event type",
			},
			[]string{"type"},
		),
	}
	promRegistry.MustRegister(
		m.eventsTotal,
		m.eventsDropped,
		m.deliveryErrors,
		m.subscribers,
	)
	return m
}
