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
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/blinklabs-io/modledger/clock"
	"github.com/blinklabs-io/modledger/database"
	"github.com/blinklabs-io/modledger/database/models"
	"github.com/blinklabs-io/modledger/event"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/blinklabs-io/modledger/moderation"

type Config struct {
	Database     *database.Database
	Ledger       Ledger
	Clock        clock.Clock
	EventBus     *event.EventBus
	Logger       *slog.Logger
	PromRegistry prometheus.Registerer
	// Params defaults to DefaultParams() when nil
	Params *Params
	// Admin is the principal allowed to run privileged operations
	Admin string
	// TrustedFinalizers may finalize challenges in addition to Admin
	TrustedFinalizers []string
	// PenaltyPool receives forfeited challenge stakes. Forfeited stakes are
	// burned when empty
	PenaltyPool string
}

// Moderator runs the moderation rules against the database. Mutating calls
// are processed one at a time, each in a single transaction that reads the
// block height once
type Moderator struct {
	config  Config
	params  Params
	db      *database.Database
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics moderatorMetrics
	mu      sync.RWMutex
}

func New(cfg Config) (*Moderator, error) {
	if cfg.Database == nil {
		return nil, errors.New("database is required")
	}
	if cfg.Ledger == nil {
		return nil, errors.New("ledger is required")
	}
	if cfg.Clock == nil {
		return nil, errors.New("clock is required")
	}
	if cfg.Admin == "" {
		return nil, errors.New("admin principal is required")
	}
	params := DefaultParams()
	if cfg.Params != nil {
		params = *cfg.Params
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid moderation params: %w", err)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	m := &Moderator{
		config: cfg,
		params: params,
		db:     cfg.Database,
		logger: logger,
		tracer: otel.Tracer(tracerName),
	}
	m.metrics.init(cfg.PromRegistry)
	counts, err := m.db.CountContentByStatus(nil)
	if err != nil {
		return nil, fmt.Errorf("load content counts: %w", err)
	}
	for _, status := range models.ContentStatuses {
		m.metrics.contentStatus.WithLabelValues(string(status)).
			Set(float64(counts[status]))
	}
	return m, nil
}

// Params returns the active rule parameters
func (m *Moderator) Params() Params {
	return m.params
}

// Height returns the current block height
func (m *Moderator) Height() uint64 {
	return m.config.Clock.Height()
}

func (m *Moderator) isAdmin(principal string) bool {
	return principal == m.config.Admin
}

func (m *Moderator) isFinalizer(principal string) bool {
	return m.isAdmin(principal) ||
		slices.Contains(m.config.TrustedFinalizers, principal)
}

// operation carries the per-call state of a mutating operation
type operation struct {
	detail      map[string]string
	name        string
	caller      string
	events      []event.Event
	statusMoves [][2]models.ContentStatus
	height      uint64
}

func (op *operation) set(key string, val any) {
	op.detail[key] = fmt.Sprint(val)
}

func (op *operation) emit(eventType event.EventType, data any) {
	op.events = append(op.events, event.NewEvent(eventType, data))
}

func (op *operation) moveStatus(from, to models.ContentStatus) {
	op.statusMoves = append(op.statusMoves, [2]models.ContentStatus{from, to})
}

// execute runs fn as one all-or-nothing operation. The journal entry is
// written in the same transaction, and events are published only after commit
func (m *Moderator) execute(
	ctx context.Context,
	name string,
	caller string,
	fn func(*database.Txn, *operation) error,
) error {
	_, span := m.tracer.Start(
		ctx,
		name,
		trace.WithAttributes(attribute.String("modledger.caller", caller)),
	)
	defer span.End()
	if caller == "" {
		m.metrics.operations.WithLabelValues(name, ErrInvalidInput.Name).Inc()
		return fmt.Errorf("missing caller: %w", ErrInvalidInput)
	}
	m.mu.Lock()
	op := &operation{
		name:   name,
		caller: caller,
		height: m.config.Clock.Height(),
		detail: make(map[string]string),
	}
	err := m.db.Transaction(true).Do(func(txn *database.Txn) error {
		if err := fn(txn, op); err != nil {
			return err
		}
		// A restart must never resume below a committed operation
		if err := m.db.AdvanceChainHeight(op.height, txn); err != nil {
			return err
		}
		return m.db.AppendJournal(
			&database.JournalEntry{
				Operation: name,
				Principal: caller,
				Height:    op.height,
				Detail:    op.detail,
			},
			txn,
		)
	})
	m.mu.Unlock()
	span.SetAttributes(attribute.Int64("modledger.height", int64(op.height))) // #nosec G115
	m.metrics.operations.WithLabelValues(name, operationResult(err)).Inc()
	m.metrics.height.Set(float64(op.height))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if asModerationError(err) == nil {
			m.logger.Error(
				"operation failed",
				"component", "moderation",
				"operation", name,
				"caller", caller,
				"height", op.height,
				"error", err,
			)
		} else {
			m.logger.Debug(
				"operation rejected",
				"component", "moderation",
				"operation", name,
				"caller", caller,
				"height", op.height,
				"error", err,
			)
		}
		return err
	}
	m.logger.Debug(
		"operation applied",
		"component", "moderation",
		"operation", name,
		"caller", caller,
		"height", op.height,
	)
	for _, move := range op.statusMoves {
		m.metrics.statusMoved(move[0], move[1])
	}
	if m.config.EventBus != nil {
		for _, evt := range op.events {
			m.config.EventBus.PublishAsync(evt.Type, evt)
		}
	}
	return nil
}

// view runs fn in a read-only transaction that is consistent with respect to
// mutating operations
func (m *Moderator) view(fn func(*database.Txn) error) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.db.Transaction(false).Do(fn)
}

// RecordHeight persists the block height so the clock resumes from it after
// a restart, and announces it on the event bus
func (m *Moderator) RecordHeight(height uint64) error {
	m.mu.Lock()
	err := m.db.AdvanceChainHeight(height, nil)
	m.mu.Unlock()
	if err != nil {
		return fmt.Errorf("persist chain height: %w", err)
	}
	m.metrics.height.Set(float64(height))
	if m.config.EventBus != nil {
		m.config.EventBus.PublishAsync(
			event.ChainHeightEventType,
			event.NewEvent(
				event.ChainHeightEventType,
				event.ChainHeightEvent{Height: height},
			),
		)
	}
	return nil
}

// Journal returns committed operations starting at sequence number from
func (m *Moderator) Journal(from uint64, limit int) ([]database.JournalEntry, error) {
	var ret []database.JournalEntry
	err := m.view(func(txn *database.Txn) error {
		var err error
		ret, err = m.db.Journal(from, limit, txn)
		return err
	})
	return ret, err
}

func asModerationError(err error) *Error {
	var modErr *Error
	if errors.As(err, &modErr) {
		return modErr
	}
	return nil
}
