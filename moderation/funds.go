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
	"fmt"

	"github.com/blinklabs-io/modledger/database"
	"github.com/blinklabs-io/modledger/event"
)

// Deposit credits amount to a principal's ledger balance. Admin only. It is
// how principals are funded before they can stake or challenge
func (m *Moderator) Deposit(
	ctx context.Context,
	caller string,
	principal string,
	amount uint64,
) (uint64, error) {
	var balance uint64
	err := m.execute(
		ctx,
		"deposit",
		caller,
		func(txn *database.Txn, op *operation) error {
			if !m.isAdmin(caller) {
				return ErrNotAuthorized
			}
			if principal == "" || amount == 0 {
				return ErrInvalidInput
			}
			if err := m.config.Ledger.Credit(txn, principal, amount); err != nil {
				return fmt.Errorf("credit deposit: %w", err)
			}
			var err error
			balance, err = m.config.Ledger.Balance(txn, principal)
			if err != nil {
				return err
			}
			op.set("principal", principal)
			op.set("amount", amount)
			op.emit(
				event.FundsDepositedEventType,
				event.FundsDepositedEvent{
					Principal: principal,
					Amount:    amount,
					Balance:   balance,
				},
			)
			return nil
		},
	)
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// Balance returns a principal's ledger balance
func (m *Moderator) Balance(principal string) (uint64, error) {
	var ret uint64
	err := m.view(func(txn *database.Txn) error {
		var err error
		ret, err = m.config.Ledger.Balance(txn, principal)
		return err
	})
	return ret, err
}
