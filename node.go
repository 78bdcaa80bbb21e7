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
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/blinklabs-io/modledger/api"
	"github.com/blinklabs-io/modledger/bank"
	"github.com/blinklabs-io/modledger/clock"
	"github.com/blinklabs-io/modledger/database"
	"github.com/blinklabs-io/modledger/event"
	"github.com/blinklabs-io/modledger/moderation"
)

type Node struct {
	eventBus      *event.EventBus
	db            *database.Database
	blockClock    *clock.BlockClock
	moderator     *moderation.Moderator
	api           *api.API
	cancel        context.CancelFunc
	shutdownFuncs []func(context.Context) error
	config        Config
	ready         chan struct{}
	done          chan struct{}
	shutdownOnce  sync.Once
}

func New(cfg Config) (*Node, error) {
	eventBus := event.NewEventBus(cfg.promRegistry, cfg.logger)
	n := &Node{
		config:   cfg,
		eventBus: eventBus,
		ready:    make(chan struct{}),
		done:     make(chan struct{}),
	}
	if err := n.configValidate(); err != nil {
		eventBus.Stop()
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return n, nil
}

// EventBus returns the node's event bus. Subscriptions may be made before Run
func (n *Node) EventBus() *event.EventBus {
	return n.eventBus
}

// Ready is closed once Run has started every component
func (n *Node) Ready() <-chan struct{} {
	return n.ready
}

// Moderator returns the moderation engine. It is nil until Ready is closed
func (n *Node) Moderator() *moderation.Moderator {
	return n.moderator
}

func (n *Node) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	n.cancel = cancel
	// Configure tracing
	if n.config.tracing {
		if err := n.setupTracing(); err != nil {
			return err
		}
	}
	// Load database
	db, err := database.New(&database.Config{
		DataDir:      n.config.dataDir,
		Logger:       n.config.logger,
		PromRegistry: n.config.promRegistry,
	})
	if db == nil {
		if err == nil {
			err = errors.New("empty database returned")
		}
		return fmt.Errorf("failed to open database: %w", err)
	}
	n.db = db
	if err != nil {
		// The stores disagree on the last commit and there is no way to
		// replay the missing side
		return fmt.Errorf("failed to open database: %w", err)
	}
	startHeight, err := db.GetChainHeight(nil)
	if err != nil {
		return fmt.Errorf("failed to load chain height: %w", err)
	}
	// The clock resolves the moderator lazily since each needs the other
	n.blockClock = clock.NewBlockClock(clock.BlockClockConfig{
		Logger:      n.config.logger,
		Interval:    n.config.blockInterval,
		StartHeight: startHeight,
		OnTick: func(tick clock.BlockTick) {
			if n.moderator == nil {
				return
			}
			if err := n.moderator.RecordHeight(tick.Height); err != nil {
				n.config.logger.Error(
					"failed to record block height",
					"component", "node",
					"height", tick.Height,
					"error", err,
				)
			}
		},
	})
	mod, err := moderation.New(moderation.Config{
		Database:          n.db,
		Ledger:            bank.New(n.db, n.config.logger),
		Clock:             n.blockClock,
		EventBus:          n.eventBus,
		Logger:            n.config.logger,
		PromRegistry:      n.config.promRegistry,
		Params:            n.config.params,
		Admin:             n.config.admin,
		TrustedFinalizers: n.config.trustedFinalizers,
		PenaltyPool:       n.config.penaltyPool,
	})
	if err != nil {
		return fmt.Errorf("failed to load moderation engine: %w", err)
	}
	n.moderator = mod
	n.subscribeEvents()
	n.blockClock.Start(ctx)
	n.config.logger.Info(
		"moderation ledger started",
		"component", "node",
		"height", startHeight,
	)
	// Configure API
	if n.config.apiListenAddress != "" {
		n.api = api.New(
			api.Config{
				ListenAddress: n.config.apiListenAddress,
				RateLimit:     n.config.apiRateLimit,
				RateBurst:     n.config.apiRateBurst,
			},
			n.moderator,
			n.config.logger,
		)
		if err := n.api.Start(ctx); err != nil {
			return err
		}
	}
	close(n.ready)

	// Wait for shutdown signal
	<-n.done
	return nil
}

// subscribeEvents logs terminal moderation outcomes
func (n *Node) subscribeEvents() {
	logEvent := func(evt event.Event) {
		n.config.logger.Info(
			"moderation event",
			"component", "node",
			"type", string(evt.Type),
			"data", fmt.Sprintf("%+v", evt.Data),
		)
	}
	for _, eventType := range []event.EventType{
		event.ContentFinalizedEventType,
		event.ContentEscalatedEventType,
		event.ChallengeFinalizedEventType,
	} {
		n.eventBus.SubscribeFunc(eventType, logEvent)
	}
}

func (n *Node) Stop() error {
	var err error
	n.shutdownOnce.Do(func() {
		err = n.shutdown()
	})
	return err
}

func (n *Node) shutdown() error {
	// Create shutdown context with timeout (default 30s if not configured)
	shutdownTimeout := 30 * time.Second
	if n.config.shutdownTimeout > 0 {
		shutdownTimeout = n.config.shutdownTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var err error

	n.config.logger.Debug("starting graceful shutdown")

	// Phase 1: Stop accepting new work
	if n.api != nil {
		if stopErr := n.api.Stop(ctx); stopErr != nil {
			err = errors.Join(err, fmt.Errorf("api shutdown: %w", stopErr))
		}
	}
	if n.blockClock != nil {
		n.blockClock.Stop()
	}
	if n.cancel != nil {
		n.cancel()
	}

	// Phase 2: Close database
	if n.db != nil {
		if closeErr := n.db.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("database close: %w", closeErr))
		}
	}

	// Phase 3: Cleanup resources
	for _, fn := range n.shutdownFuncs {
		if fnErr := fn(ctx); fnErr != nil {
			err = errors.Join(err, fmt.Errorf("shutdown function: %w", fnErr))
		}
	}
	n.shutdownFuncs = nil

	if n.eventBus != nil {
		n.eventBus.Stop()
	}

	n.config.logger.Debug("graceful shutdown complete")
	close(n.done)
	return err
}
