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

// Package bank keeps principal token balances in the metadata store so that
// stake and challenge bond movements commit atomically with the moderation
// operation that caused them
package bank

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/blinklabs-io/modledger/database"
	"github.com/blinklabs-io/modledger/moderation"
)

var ErrBalanceOverflow = errors.New("balance overflow")

type Bank struct {
	db     *database.Database
	logger *slog.Logger
}

func New(db *database.Database, logger *slog.Logger) *Bank {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Bank{
		db:     db,
		logger: logger,
	}
}

func (b *Bank) Balance(txn *database.Txn, principal string) (uint64, error) {
	return b.db.GetBalance(principal, txn)
}

// Debit removes amount from a principal's balance
func (b *Bank) Debit(txn *database.Txn, principal string, amount uint64) error {
	balance, err := b.db.GetBalance(principal, txn)
	if err != nil {
		return err
	}
	if balance < amount {
		return fmt.Errorf(
			"debit %d from %s with balance %d: %w",
			amount,
			principal,
			balance,
			moderation.ErrInsufficientFunds,
		)
	}
	if err := b.db.SetBalance(principal, balance-amount, txn); err != nil {
		return err
	}
	b.logger.Debug(
		"debited balance",
		"component", "bank",
		"principal", principal,
		"amount", amount,
	)
	return nil
}

// Credit adds amount to a principal's balance
func (b *Bank) Credit(txn *database.Txn, principal string, amount uint64) error {
	balance, err := b.db.GetBalance(principal, txn)
	if err != nil {
		return err
	}
	if balance+amount < balance {
		return fmt.Errorf("credit %d to %s: %w", amount, principal, ErrBalanceOverflow)
	}
	if err := b.db.SetBalance(principal, balance+amount, txn); err != nil {
		return err
	}
	b.logger.Debug(
		"credited balance",
		"component", "bank",
		"principal", principal,
		"amount", amount,
	)
	return nil
}
