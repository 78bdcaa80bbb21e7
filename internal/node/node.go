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

package node

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	_ "net/http/pprof" // #nosec G108
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blinklabs-io/modledger"
	"github.com/blinklabs-io/modledger/internal/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// newNode builds the ledger node described by cfg
func newNode(
	cfg *config.Config,
	logger *slog.Logger,
	registry prometheus.Registerer,
) (*modledger.Node, error) {
	blockInterval, err := cfg.BlockIntervalDuration()
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := cfg.ShutdownTimeoutDuration()
	if err != nil {
		return nil, err
	}
	opts := []modledger.ConfigOptionFunc{
		modledger.WithLogger(logger),
		modledger.WithDatabasePath(cfg.DatabasePath),
		modledger.WithPrometheusRegistry(registry),
		modledger.WithAdmin(cfg.Admin),
		modledger.WithTrustedFinalizers(cfg.TrustedFinalizers...),
		modledger.WithPenaltyPool(cfg.PenaltyPool),
		modledger.WithParams(cfg.Moderation),
		modledger.WithAPIRateLimit(cfg.ApiRateLimit, cfg.ApiRateBurst),
		modledger.WithBlockInterval(blockInterval),
		modledger.WithShutdownTimeout(shutdownTimeout),
		modledger.WithTracing(cfg.Tracing),
		modledger.WithTracingStdout(cfg.TracingStdout),
	}
	if cfg.ApiPort > 0 {
		opts = append(
			opts,
			modledger.WithAPIListenAddress(
				fmt.Sprintf("%s:%d", cfg.BindAddr, cfg.ApiPort),
			),
		)
	}
	return modledger.New(modledger.NewConfig(opts...))
}

func Run(cfg *config.Config, logger *slog.Logger) error {
	logger.Debug(fmt.Sprintf("config: %+v", cfg), "component", "node")
	shutdownTimeout, err := cfg.ShutdownTimeoutDuration()
	if err != nil {
		return err
	}
	d, err := newNode(cfg, logger, prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}
	// Metrics and debug listener
	var metricsServer *http.Server
	if cfg.MetricsPort > 0 {
		http.Handle("/metrics", promhttp.Handler())
		metricsAddr := fmt.Sprintf("%s:%d", cfg.BindAddr, cfg.MetricsPort)
		logger.Info(
			"serving prometheus metrics on "+metricsAddr,
			"component", "node",
		)
		metricsServer = &http.Server{
			Addr:              metricsAddr,
			ReadHeaderTimeout: 60 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil &&
				!errors.Is(err, http.ErrServerClosed) {
				logger.Error(
					fmt.Sprintf("failed to start metrics listener: %s", err),
					"component", "node",
				)
				os.Exit(1)
			}
		}()
	}
	shutdownMetrics := func() {
		if metricsServer == nil {
			return
		}
		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			shutdownTimeout,
		)
		defer cancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("metrics server shutdown error", "error", err)
		}
	}
	// Wait for interrupt/termination signal
	signalCtx, signalCtxStop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer signalCtxStop()

	// Run node in goroutine
	errChan := make(chan error, 1)
	go func() {
		errChan <- d.Run()
	}()

	// Wait for signal or error
	select {
	case <-signalCtx.Done():
		logger.Info("signal received, initiating graceful shutdown")
		shutdownMetrics()
		if err := d.Stop(); err != nil {
			logger.Error("shutdown errors occurred", "error", err)
			return err
		}
		logger.Info("shutdown complete")
		return nil

	case err := <-errChan:
		shutdownMetrics()
		if stopErr := d.Stop(); stopErr != nil {
			logger.Error(
				"shutdown errors occurred",
				"error",
				stopErr,
			)
			if err == nil {
				return stopErr
			}
		}
		if err != nil {
			logger.Error("node error", "error", err)
			return err
		}
		logger.Info("node stopped")
		return nil
	}
}
