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

package badger

import "github.com/prometheus/client_golang/prometheus"

const blobMetricNamePrefix = "database_blob_"

type blobMetrics struct {
	opsTotal   *prometheus.CounterVec
	bytesTotal *prometheus.CounterVec
}

func newBlobMetrics(registry prometheus.Registerer) *blobMetrics {
	m := &blobMetrics{
		opsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: blobMetricNamePrefix + "ops_total",
				Help: "Total number of blob store operations",
			},
			[]string{"op"},
		),
		bytesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: blobMetricNamePrefix + "bytes_total",
				Help: "Total bytes read/written by blob store operations",
			},
			[]string{"op"},
		),
	}
	registry.MustRegister(m.opsTotal, m.bytesTotal)
	return m
}

// observe is safe to call on a nil receiver so stores without a registry skip metrics
func (m *blobMetrics) observe(op string, size int) {
	if m == nil {
		return
	}
	m.opsTotal.WithLabelValues(op).Inc()
	m.bytesTotal.WithLabelValues(op).Add(float64(size))
}
