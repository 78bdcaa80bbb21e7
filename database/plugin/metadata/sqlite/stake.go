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

package sqlite

import (
	"errors"

	"github.com/blinklabs-io/modledger/database/models"
	"github.com/blinklabs-io/modledger/database/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetStake returns the stake slot for a principal, or nil if it was never used
func (d *MetadataStoreSqlite) GetStake(
	principal string,
	txn types.Txn,
) (*models.Stake, error) {
	db, err := d.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	ret := &models.Stake{}
	result := db.Where("principal = ?", principal).First(ret)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return ret, nil
}

// SetStake creates or overwrites the stake slot for a principal
func (d *MetadataStoreSqlite) SetStake(
	stake *models.Stake,
	txn types.Txn,
) error {
	db, err := d.resolveDB(txn)
	if err != nil {
		return err
	}
	result := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "principal"}},
		DoUpdates: clause.AssignmentColumns(
			[]string{"amount", "staked_at", "active"},
		),
	}).Create(stake)
	return result.Error
}

// GetBalance returns the ledger balance for a principal, or nil if it has never been funded
func (d *MetadataStoreSqlite) GetBalance(
	principal string,
	txn types.Txn,
) (*models.Balance, error) {
	db, err := d.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	ret := &models.Balance{}
	result := db.Where("principal = ?", principal).First(ret)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return ret, nil
}

// SetBalance creates or overwrites the ledger balance for a principal
func (d *MetadataStoreSqlite) SetBalance(
	principal string,
	amount uint64,
	txn types.Txn,
) error {
	db, err := d.resolveDB(txn)
	if err != nil {
		return err
	}
	tmpItem := models.Balance{
		Principal: principal,
		Amount:    types.Uint64(amount),
	}
	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "principal"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount"}),
	}).Create(&tmpItem)
	return result.Error
}
