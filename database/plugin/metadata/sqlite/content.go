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
	"database/sql"
	"errors"

	"github.com/blinklabs-io/modledger/database/models"
	"github.com/blinklabs-io/modledger/database/types"
	"gorm.io/gorm"
)

// GetContent returns the content record with the given id, or nil if it does not exist
func (d *MetadataStoreSqlite) GetContent(
	id uint64,
	txn types.Txn,
) (*models.Content, error) {
	db, err := d.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	ret := &models.Content{}
	result := db.Where("id = ?", id).First(ret)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return ret, nil
}

// SetContent creates or replaces a content record
func (d *MetadataStoreSqlite) SetContent(
	content *models.Content,
	txn types.Txn,
) error {
	db, err := d.resolveDB(txn)
	if err != nil {
		return err
	}
	return db.Save(content).Error
}

// NextContentID returns the id that the next submitted content will receive
func (d *MetadataStoreSqlite) NextContentID(txn types.Txn) (uint64, error) {
	db, err := d.resolveDB(txn)
	if err != nil {
		return 0, err
	}
	var maxID sql.NullInt64
	if err := db.Model(&models.Content{}).Select("MAX(id)").Row().Scan(&maxID); err != nil {
		return 0, err
	}
	if !maxID.Valid {
		return 1, nil
	}
	return uint64(maxID.Int64) + 1, nil // #nosec G115
}

// CountContentByStatus returns the number of content records in each status
func (d *MetadataStoreSqlite) CountContentByStatus(
	txn types.Txn,
) (map[models.ContentStatus]uint64, error) {
	db, err := d.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	var rows []struct {
		Status models.ContentStatus
		Count  uint64
	}
	result := db.Model(&models.Content{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	ret := make(map[models.ContentStatus]uint64, len(models.ContentStatuses))
	for _, row := range rows {
		ret[row.Status] = row.Count
	}
	return ret, nil
}

// GetVote returns the vote cast by voter on the given content, or nil if none exists
func (d *MetadataStoreSqlite) GetVote(
	contentID uint64,
	voter string,
	txn types.Txn,
) (*models.Vote, error) {
	db, err := d.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	ret := &models.Vote{}
	result := db.Where("content_id = ? AND voter = ?", contentID, voter).
		First(ret)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return ret, nil
}

// AddVote records a vote. The (content, voter) pair must be new
func (d *MetadataStoreSqlite) AddVote(
	vote *models.Vote,
	txn types.Txn,
) error {
	db, err := d.resolveDB(txn)
	if err != nil {
		return err
	}
	return db.Create(vote).Error
}
