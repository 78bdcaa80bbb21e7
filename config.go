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

package modledger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/blinklabs-io/modledger/moderation"
	"github.com/prometheus/client_golang/prometheus"
)

type Config struct {
	promRegistry      prometheus.Registerer
	logger            *slog.Logger
	params            *moderation.Params
	dataDir           string
	admin             string
	penaltyPool       string
	trustedFinalizers []string
	// API listen address (empty = disabled)
	apiListenAddress string
	apiRateLimit     float64
	apiRateBurst     int
	blockInterval    time.Duration
	shutdownTimeout  time.Duration
	tracing          bool
	tracingStdout    bool
}

func (n *Node) configValidate() error {
	if n.config.admin == "" {
		return errors.New("admin principal is required")
	}
	if n.config.params != nil {
		if err := n.config.params.Validate(); err != nil {
			return err
		}
	}
	if n.config.apiRateLimit < 0 {
		return fmt.Errorf(
			"invalid API rate limit: %v",
			n.config.apiRateLimit,
		)
	}
	return nil
}

// ConfigOptionFunc is a type that represents functions that modify the node config
type ConfigOptionFunc func(*Config)

// NewConfig creates a new modledger config with the specified options
func NewConfig(opts ...ConfigOptionFunc) Config {
	c := Config{
		// Default logger will throw away logs
		// We do this so we don't have to add guards around every log operation
		logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	// Apply options
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithDatabasePath specifies the persistent data directory to use. The default is to store everything in memory
func WithDatabasePath(dataDir string) ConfigOptionFunc {
	return func(c *Config) {
		c.dataDir = dataDir
	}
}

// WithLogger specifies the logger to use. The default discards all logs
func WithLogger(logger *slog.Logger) ConfigOptionFunc {
	return func(c *Config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithPrometheusRegistry specifies a prometheus.Registerer instance to add metrics to. In most cases, prometheus.DefaultRegistry would be
// a good choice to get metrics working
func WithPrometheusRegistry(registry prometheus.Registerer) ConfigOptionFunc {
	return func(c *Config) {
		c.promRegistry = registry
	}
}

// WithAdmin specifies the privileged principal
func WithAdmin(admin string) ConfigOptionFunc {
	return func(c *Config) {
		c.admin = admin
	}
}

// WithTrustedFinalizers specifies principals that may finalize challenges besides the admin
func WithTrustedFinalizers(finalizers ...string) ConfigOptionFunc {
	return func(c *Config) {
		c.trustedFinalizers = finalizers
	}
}

// WithPenaltyPool specifies the principal credited with forfeited challenge stakes. Forfeited stakes are burned when unset
func WithPenaltyPool(pool string) ConfigOptionFunc {
	return func(c *Config) {
		c.penaltyPool = pool
	}
}

// WithParams overrides the moderation rule parameters
func WithParams(params moderation.Params) ConfigOptionFunc {
	return func(c *Config) {
		c.params = &params
	}
}

// WithAPIListenAddress specifies the listen address for the HTTP API. The API is disabled when empty
func WithAPIListenAddress(addr string) ConfigOptionFunc {
	return func(c *Config) {
		c.apiListenAddress = addr
	}
}

// WithAPIRateLimit limits API requests to limit per second with the given burst. A limit of 0 disables rate limiting
func WithAPIRateLimit(limit float64, burst int) ConfigOptionFunc {
	return func(c *Config) {
		c.apiRateLimit = limit
		c.apiRateBurst = burst
	}
}

// WithBlockInterval specifies how often the block height advances. The default is clock.DefaultBlockInterval
func WithBlockInterval(interval time.Duration) ConfigOptionFunc {
	return func(c *Config) {
		c.blockInterval = interval
	}
}

// WithTracing enables tracing. By default, spans are submitted to a HTTP(s) endpoint using OTLP. This can be configured
// using the OTEL_EXPORTER_OTLP_* env vars documented in the README for [go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp]
func WithTracing(tracing bool) ConfigOptionFunc {
	return func(c *Config) {
		c.tracing = tracing
	}
}

// WithTracingStdout enables tracing output to stdout. This also requires tracing to enabled separately. This is mostly useful for debugging
func WithTracingStdout(stdout bool) ConfigOptionFunc {
	return func(c *Config) {
		c.tracingStdout = stdout
	}
}

// WithShutdownTimeout specifies the timeout for graceful shutdown. The default is 30 seconds
func WithShutdownTimeout(timeout time.Duration) ConfigOptionFunc {
	return func(c *Config) {
		c.shutdownTimeout = timeout
	}
}
