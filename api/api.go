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

package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultListenAddress = "127.0.0.1:8080"
	// PrincipalHeader names the caller of a request. Its value is trusted as
	// given, including for admin and finalizer routes. It must be set by an
	// authenticating proxy in front of the API, and the listener must not be
	// reachable by clients directly
	PrincipalHeader = "X-Principal"
)

// Config controls the HTTP listener. A RateLimit of 0 disables request
// rate limiting.
type Config struct {
	ListenAddress string
	RateLimit     float64
	RateBurst     int
}

// API is the REST front end of the moderation ledger.
type API struct {
	config     Config
	logger     *slog.Logger
	node       ModerationNode
	limiter    *rate.Limiter
	httpServer *http.Server
	mu         sync.Mutex
}

// New creates a new API server instance.
func New(
	cfg Config,
	node ModerationNode,
	logger *slog.Logger,
) *API {
	if logger == nil {
		logger = slog.New(
			slog.NewJSONHandler(io.Discard, nil),
		)
	}
	logger = logger.With("component", "api")
	if cfg.ListenAddress == "" {
		cfg.ListenAddress = DefaultListenAddress
	}
	a := &API{
		config: cfg,
		logger: logger,
		node:   node,
	}
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		a.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return a
}

// Handler returns the routed HTTP handler, including rate limiting
func (a *API) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", a.handleRoot)
	mux.HandleFunc("GET /health", a.handleHealth)
	mux.HandleFunc("GET /api/v0/height", a.handleHeight)
	mux.HandleFunc("GET /api/v0/params", a.handleParams)
	mux.HandleFunc("GET /api/v0/journal", a.handleJournal)

	mux.HandleFunc("POST /api/v0/content", a.handleSubmitContent)
	mux.HandleFunc("GET /api/v0/content/{id}", a.handleGetContent)
	mux.HandleFunc(
		"POST /api/v0/content/{id}/finalize",
		a.handleFinalizeModeration,
	)
	mux.HandleFunc("POST /api/v0/content/{id}/votes", a.handleVote)
	mux.HandleFunc(
		"GET /api/v0/content/{id}/votes/{voter}",
		a.handleGetVote,
	)
	mux.HandleFunc("POST /api/v0/content/{id}/reports", a.handleReport)
	mux.HandleFunc("GET /api/v0/content/{id}/reports", a.handleGetReports)
	mux.HandleFunc(
		"POST /api/v0/content/{id}/challenges",
		a.handleChallenge,
	)
	mux.HandleFunc(
		"GET /api/v0/content/{id}/challenges/{challenger}",
		a.handleGetChallenge,
	)
	mux.HandleFunc(
		"POST /api/v0/content/{id}/challenges/{challenger}/votes",
		a.handleChallengeVote,
	)
	mux.HandleFunc(
		"POST /api/v0/content/{id}/challenges/{challenger}/finalize",
		a.handleFinalizeChallenge,
	)

	mux.HandleFunc(
		"GET /api/v0/reputation/{principal}",
		a.handleGetReputation,
	)
	mux.HandleFunc(
		"PUT /api/v0/reputation/{principal}",
		a.handleInitializeReputation,
	)
	mux.HandleFunc(
		"GET /api/v0/cooldowns/{principal}",
		a.handleGetCooldown,
	)
	mux.HandleFunc(
		"POST /api/v0/cooldowns/{principal}",
		a.handleApplyCooldown,
	)
	mux.HandleFunc("POST /api/v0/stake", a.handleStake)
	mux.HandleFunc("DELETE /api/v0/stake", a.handleUnstake)
	mux.HandleFunc("GET /api/v0/stake/{principal}", a.handleGetStake)
	mux.HandleFunc(
		"GET /api/v0/balances/{principal}",
		a.handleGetBalance,
	)
	mux.HandleFunc(
		"POST /api/v0/balances/{principal}/deposits",
		a.handleDeposit,
	)
	return a.rateLimit(mux)
}

func (a *API) rateLimit(next http.Handler) http.Handler {
	if a.limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.limiter.Allow() {
			writeError(
				w,
				http.StatusTooManyRequests,
				"Too Many Requests",
				"Request rate limit exceeded.",
			)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Start starts the HTTP server in a background goroutine.
func (a *API) Start(
	ctx context.Context,
) error {
	a.mu.Lock()
	if a.httpServer != nil {
		a.mu.Unlock()
		return errors.New("server already started")
	}
	server := &http.Server{
		Addr:              a.config.ListenAddress,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 60 * time.Second,
	}
	a.httpServer = server
	a.mu.Unlock()

	if err := a.startServer(server); err != nil {
		a.mu.Lock()
		a.httpServer = nil
		a.mu.Unlock()
		return err
	}

	a.logger.Info(
		"API listener started on " + a.config.ListenAddress,
	)

	go func() {
		<-ctx.Done()
		a.mu.Lock()
		srv := a.httpServer
		a.httpServer = nil
		a.mu.Unlock()

		if srv != nil {
			a.logger.Debug(
				"context cancelled, shutting down API server",
			)
			//nolint:contextcheck
			shutdownCtx, cancel := context.WithTimeout(
				context.Background(),
				30*time.Second,
			)
			defer cancel()
			//nolint:contextcheck
			if err := srv.Shutdown(shutdownCtx); err != nil {
				a.logger.Error(
					"failed to shutdown API server on context cancellation",
					"error", err,
				)
			}
		}
	}()

	return nil
}

// Stop gracefully shuts down the HTTP server.
func (a *API) Stop(
	ctx context.Context,
) error {
	a.mu.Lock()
	srv := a.httpServer
	a.httpServer = nil
	a.mu.Unlock()

	if srv != nil {
		a.logger.Debug("shutting down API server")
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf(
				"failed to shutdown API server: %w",
				err,
			)
		}
	}
	return nil
}

// startServer binds the listening socket before serving so that port
// conflicts surface as an error from Start.
func (a *API) startServer(
	server *http.Server,
) error {
	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return fmt.Errorf(
			"failed to listen for API server: %w",
			err,
		)
	}
	go func() {
		if err := server.Serve(ln); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			a.logger.Error(
				"API server error",
				"error", err,
			)
		}
	}()
	return nil
}
