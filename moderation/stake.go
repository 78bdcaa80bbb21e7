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
	"github.com/blinklabs-io/modledger/database/models"
	"github.com/blinklabs-io/modledger/database/types"
	"github.com/blinklabs-io/modledger/event"
)

// StakeTokens locks amount from the caller's balance and makes the caller a moderator
func (m *Moderator) StakeTokens(
	ctx context.Context,
	caller string,
	amount uint64,
) error {
	return m.execute(
		ctx,
		"stake-tokens",
		caller,
		func(txn *database.Txn, op *operation) error {
			stake, err := m.db.GetStake(caller, txn)
			if err != nil {
				return err
			}
			if stake != nil && stake.Active {
				return ErrAlreadyStaked
			}
			if amount < m.params.MinStakeAmount {
				return ErrStakeBelowMinimum
			}
			if err := m.config.Ledger.Debit(txn, caller, amount); err != nil {
				return fmt.Errorf("debit stake: %w", err)
			}
			err = m.db.SetStake(
				&models.Stake{
					Principal: caller,
					Amount:    types.Uint64(amount),
					StakedAt:  op.height,
					Active:    true,
				},
				txn,
			)
			if err != nil {
				return err
			}
			op.set("amount", amount)
			op.emit(
				event.StakeChangedEventType,
				event.StakeChangedEvent{
					Principal: caller,
					Amount:    amount,
					Height:    op.height,
					Active:    true,
				},
			)
			return nil
		},
	)
}

// UnstakeTokens returns the caller's stake once the lockup period has passed
// and returns the amount released
func (m *Moderator) UnstakeTokens(
	ctx context.Context,
	caller string,
) (uint64, error) {
	var released uint64
	err := m.execute(
		ctx,
		"unstake-tokens",
		caller,
		func(txn *database.Txn, op *operation) error {
			stake, err := m.db.GetStake(caller, txn)
			if err != nil {
				return err
			}
			if stake == nil || !stake.Active {
				return ErrNoStakeFound
			}
			if op.height < saturatingAdd(stake.StakedAt, m.params.StakeLockupPeriod) {
				return ErrNotAuthorized
			}
			released = uint64(stake.Amount)
			if err := m.config.Ledger.Credit(txn, caller, released); err != nil {
				return fmt.Errorf("credit stake: %w", err)
			}
			stake.Amount = 0
			stake.Active = false
			if err := m.db.SetStake(stake, txn); err != nil {
				return err
			}
			op.set("amount", released)
			op.emit(
				event.StakeChangedEventType,
				event.StakeChangedEvent{
					Principal: caller,
					Height:    op.height,
				},
			)
			return nil
		},
	)
	if err != nil {
		return 0, err
	}
	return released, nil
}

// GetModeratorStake returns the stake slot of a principal, or nil if it never staked
func (m *Moderator) GetModeratorStake(principal string) (*models.Stake, error) {
	var ret *models.Stake
	err := m.view(func(txn *database.Txn) error {
		var err error
		ret, err = m.db.GetStake(principal, txn)
		return err
	})
	return ret, err
}
