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

// GetReputation returns the reputation record for a principal, or nil if none exists
func (d *MetadataStoreSqlite) GetReputation(
	principal string,
	txn types.Txn,
) (*models.Reputation, error) {
	db, err := d.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	ret := &models.Reputation{}
	result := db.Where("principal = ?", principal).First(ret)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return ret, nil
}

// SetReputation creates or overwrites the reputation score for a principal
func (d *MetadataStoreSqlite) SetReputation(
	principal string,
	score uint64,
	txn types.Txn,
) error {
	db, err := d.resolveDB(txn)
	if err != nil {
		return err
	}
	tmpItem := models.Reputation{
		Principal: principal,
		Score:     types.Uint64(score),
	}
	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "principal"}},
		DoUpdates: clause.AssignmentColumns([]string{"score"}),
	}).Create(&tmpItem)
	return result.Error
}

// GetCooldown returns the cooldown record for a principal, or nil if none exists
func (d *MetadataStoreSqlite) GetCooldown(
	principal string,
	txn types.Txn,
) (*models.Cooldown, error) {
	db, err := d.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	ret := &models.Cooldown{}
	result := db.Where("principal = ?", principal).First(ret)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return ret, nil
}

// SetCooldown creates or overwrites the cooldown for a principal
func (d *MetadataStoreSqlite) SetCooldown(
	principal string,
	until uint64,
	txn types.Txn,
) error {
	db, err := d.resolveDB(txn)
	if err != nil {
		return err
	}
	tmpItem := models.Cooldown{
		Principal:     principal,
		CooldownUntil: until,
	}
	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "principal"}},
		DoUpdates: clause.AssignmentColumns([]string{"cooldown_until"}),
	}).Create(&tmpItem)
	return result.Error
}
