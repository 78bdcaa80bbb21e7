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

// GetReport returns the report aggregate for a content id, or nil if it was never reported
func (d *MetadataStoreSqlite) GetReport(
	contentID uint64,
	txn types.Txn,
) (*models.Report, error) {
	db, err := d.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	ret := &models.Report{}
	result := db.Where("content_id = ?", contentID).First(ret)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return ret, nil
}

// SetReport creates or overwrites the report aggregate for a content id
func (d *MetadataStoreSqlite) SetReport(
	report *models.Report,
	txn types.Txn,
) error {
	db, err := d.resolveDB(txn)
	if err != nil {
		return err
	}
	result := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "content_id"}},
		DoUpdates: clause.AssignmentColumns(
			[]string{"report_count", "resolved"},
		),
	}).Create(report)
	return result.Error
}

// GetReportMarker returns the report filed by reporter on the given content, or nil
func (d *MetadataStoreSqlite) GetReportMarker(
	contentID uint64,
	reporter string,
	txn types.Txn,
) (*models.ReportMarker, error) {
	db, err := d.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	ret := &models.ReportMarker{}
	result := db.Where(
		"content_id = ? AND reporter = ?",
		contentID,
		reporter,
	).First(ret)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return ret, nil
}

// AddReportMarker records that reporter has reported the content
func (d *MetadataStoreSqlite) AddReportMarker(
	marker *models.ReportMarker,
	txn types.Txn,
) error {
	db, err := d.resolveDB(txn)
	if err != nil {
		return err
	}
	return db.Create(marker).Error
}

// GetReportMarkers returns all reports filed against a content id, oldest first
func (d *MetadataStoreSqlite) GetReportMarkers(
	contentID uint64,
	txn types.Txn,
) ([]models.ReportMarker, error) {
	db, err := d.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	var ret []models.ReportMarker
	result := db.Where("content_id = ?", contentID).
		Order("id ASC").
		Find(&ret)
	if result.Error != nil {
		return nil, result.Error
	}
	return ret, nil
}
