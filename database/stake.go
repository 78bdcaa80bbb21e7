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

package database

import "github.com/blinklabs-io/modledger/database/models"

// GetStake returns the stake slot for a principal. An inactive slot is
// returned as-is, callers decide whether that counts as having a stake
func (d *Database) GetStake(principal string, txn *Txn) (*models.Stake, error) {
	var ret *models.Stake
	err := d.withTxn(txn, false, func(txn *Txn) error {
		var err error
		ret, err = d.metadata.GetStake(principal, txn.Metadata())
		return err
	})
	return ret, err
}

func (d *Database) SetStake(stake *models.Stake, txn *Txn) error {
	return d.withTxn(txn, true, func(txn *Txn) error {
		return d.metadata.SetStake(stake, txn.Metadata())
	})
}

// GetBalance returns the ledger balance of a principal, which is 0 when it was never funded
func (d *Database) GetBalance(principal string, txn *Txn) (uint64, error) {
	var ret uint64
	err := d.withTxn(txn, false, func(txn *Txn) error {
		balance, err := d.metadata.GetBalance(principal, txn.Metadata())
		if err != nil {
			return err
		}
		if balance != nil {
			ret = uint64(balance.Amount)
		}
		return nil
	})
	return ret, err
}

func (d *Database) SetBalance(principal string, amount uint64, txn *Txn) error {
	return d.withTxn(txn, true, func(txn *Txn) error {
		return d.metadata.SetBalance(principal, amount, txn.Metadata())
	})
}

// GetChainHeight returns the last persisted chain height
func (d *Database) GetChainHeight(txn *Txn) (uint64, error) {
	var ret uint64
	err := d.withTxn(txn, false, func(txn *Txn) error {
		var err error
		ret, err = d.metadata.GetChainHeight(txn.Metadata())
		return err
	})
	return ret, err
}

// SetChainHeight persists the chain height
func (d *Database) SetChainHeight(height uint64, txn *Txn) error {
	return d.withTxn(txn, true, func(txn *Txn) error {
		return d.metadata.SetChainHeight(height, txn.Metadata())
	})
}

// AdvanceChainHeight persists height unless a greater height is already stored
func (d *Database) AdvanceChainHeight(height uint64, txn *Txn) error {
	return d.withTxn(txn, true, func(txn *Txn) error {
		stored, err := d.metadata.GetChainHeight(txn.Metadata())
		if err != nil {
			return err
		}
		if height <= stored {
			return nil
		}
		return d.metadata.SetChainHeight(height, txn.Metadata())
	})
}
