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

// singletonRowId is the primary key of the row in each single-row table
const singletonRowId = 1

// loadSingleton reads the row of a single-row table into dest. It returns
// false if the row was never written
func loadSingleton(db *gorm.DB, dest any) (bool, error) {
	result := db.Where("id = ?", singletonRowId).Take(dest)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if result.Error != nil {
		return false, result.Error
	}
	return true, nil
}

// storeSingleton upserts row, which must have its ID set to singletonRowId,
// replacing column on conflict
func storeSingleton(db *gorm.DB, row any, column string) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{column}),
	}).Create(row).Error
}

// GetCommitTimestamp returns the timestamp of the last commit, or 0 for a new
// store. It reads outside any transaction since it only runs at open
func (d *MetadataStoreSqlite) GetCommitTimestamp() (int64, error) {
	var row models.CommitTimestamp
	if _, err := loadSingleton(d.DB(), &row); err != nil {
		return 0, err
	}
	return row.Timestamp, nil
}

func (d *MetadataStoreSqlite) SetCommitTimestamp(
	timestamp int64,
	txn types.Txn,
) error {
	db, err := d.resolveDB(txn)
	if err != nil {
		return err
	}
	return storeSingleton(
		db,
		&models.CommitTimestamp{ID: singletonRowId, Timestamp: timestamp},
		"timestamp",
	)
}

// GetChainHeight returns the last persisted chain height, or 0 if none was stored
func (d *MetadataStoreSqlite) GetChainHeight(txn types.Txn) (uint64, error) {
	db, err := d.resolveDB(txn)
	if err != nil {
		return 0, err
	}
	var row models.ChainHeight
	if _, err := loadSingleton(db, &row); err != nil {
		return 0, err
	}
	return row.Height, nil
}

// SetChainHeight persists the chain height
func (d *MetadataStoreSqlite) SetChainHeight(
	height uint64,
	txn types.Txn,
) error {
	db, err := d.resolveDB(txn)
	if err != nil {
		return err
	}
	return storeSingleton(
		db,
		&models.ChainHeight{ID: singletonRowId, Height: height},
		"height",
	)
}
