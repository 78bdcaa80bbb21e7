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

func (d *Database) GetReport(contentID uint64, txn *Txn) (*models.Report, error) {
	var ret *models.Report
	err := d.withTxn(txn, false, func(txn *Txn) error {
		var err error
		ret, err = d.metadata.GetReport(contentID, txn.Metadata())
		return err
	})
	return ret, err
}

func (d *Database) SetReport(report *models.Report, txn *Txn) error {
	return d.withTxn(txn, true, func(txn *Txn) error {
		return d.metadata.SetReport(report, txn.Metadata())
	})
}

func (d *Database) GetReportMarker(
	contentID uint64,
	reporter string,
	txn *Txn,
) (*models.ReportMarker, error) {
	var ret *models.ReportMarker
	err := d.withTxn(txn, false, func(txn *Txn) error {
		var err error
		ret, err = d.metadata.GetReportMarker(contentID, reporter, txn.Metadata())
		return err
	})
	return ret, err
}

// GetReportMarkers returns every report filed against a content item
func (d *Database) GetReportMarkers(
	contentID uint64,
	txn *Txn,
) ([]models.ReportMarker, error) {
	var ret []models.ReportMarker
	err := d.withTxn(txn, false, func(txn *Txn) error {
		var err error
		ret, err = d.metadata.GetReportMarkers(contentID, txn.Metadata())
		return err
	})
	return ret, err
}

func (d *Database) AddReportMarker(marker *models.ReportMarker, txn *Txn) error {
	return d.withTxn(txn, true, func(txn *Txn) error {
		return d.metadata.AddReportMarker(marker, txn.Metadata())
	})
}
