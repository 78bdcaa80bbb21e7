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

func (d *Database) GetReputation(
	principal string,
	txn *Txn,
) (*models.Reputation, error) {
	var ret *models.Reputation
	err := d.withTxn(txn, false, func(txn *Txn) error {
		var err error
		ret, err = d.metadata.GetReputation(principal, txn.Metadata())
		return err
	})
	return ret, err
}

func (d *Database) SetReputation(principal string, score uint64, txn *Txn) error {
	return d.withTxn(txn, true, func(txn *Txn) error {
		return d.metadata.SetReputation(principal, score, txn.Metadata())
	})
}

func (d *Database) GetCooldown(
	principal string,
	txn *Txn,
) (*models.Cooldown, error) {
	var ret *models.Cooldown
	err := d.withTxn(txn, false, func(txn *Txn) error {
		var err error
		ret, err = d.metadata.GetCooldown(principal, txn.Metadata())
		return err
	})
	return ret, err
}

func (d *Database) SetCooldown(principal string, until uint64, txn *Txn) error {
	return d.withTxn(txn, true, func(txn *Txn) error {
		return d.metadata.SetCooldown(principal, until, txn.Metadata())
	})
}
