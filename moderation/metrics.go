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

package moderation

import (
	"github.com/blinklabs-io/modledger/database/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type moderatorMetrics struct {
	operations    *prometheus.CounterVec
	contentStatus *prometheus.GaugeVec
	height        prometheus.Gauge
}

func (m *moderatorMetrics) init(promRegistry prometheus.Registerer) {
	promautoFactory := promauto.With(promRegistry)
	m.operations = promautoFactory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "modledger_operations_total",
			Help: "moderation operations by name and result",
		},
		[]string{"operation", "result"},
	)
	m.contentStatus = promautoFactory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "modledger_content_items",
			Help: "content items by moderation status",
		},
		[]string{"status"},
	)
	m.height = promautoFactory.NewGauge(prometheus.GaugeOpts{
		Name: "modledger_block_height",
		Help: "block height observed by the last operation",
	})
}

// operationResult labels an operation outcome, using the error name for rule violations
func operationResult(err error) string {
	if err == nil {
		return "ok"
	}
	if modErr := asModerationError(err); modErr != nil {
		return modErr.Name
	}
	return "error"
}

func (m *moderatorMetrics) statusMoved(from, to models.ContentStatus) {
	if from != "" {
		m.contentStatus.WithLabelValues(string(from)).Dec()
	}
	m.contentStatus.WithLabelValues(string(to)).Inc()
}
