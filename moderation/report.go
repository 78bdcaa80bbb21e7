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

	"github.com/blinklabs-io/modledger/database"
	"github.com/blinklabs-io/modledger/database/models"
	"github.com/blinklabs-io/modledger/event"
)

// ReportContent files a report against pending content. Reaching the report
// threshold moves the content to under_review and closes further reports
func (m *Moderator) ReportContent(
	ctx context.Context,
	caller string,
	contentID uint64,
	reason string,
) error {
	return m.execute(
		ctx,
		"report-content",
		caller,
		func(txn *database.Txn, op *operation) error {
			content, err := m.db.GetContent(contentID, txn)
			if err != nil {
				return err
			}
			if content == nil {
				return ErrContentNotFound
			}
			if len(reason) > m.params.MaxReasonLength {
				return ErrInvalidInput
			}
			report, err := m.db.GetReport(contentID, txn)
			if err != nil {
				return err
			}
			if report == nil {
				report = &models.Report{ContentID: contentID}
			}
			if report.Resolved || content.Status != models.ContentStatusPending {
				return ErrInvalidReport
			}
			marker, err := m.db.GetReportMarker(contentID, caller, txn)
			if err != nil {
				return err
			}
			if marker != nil {
				return ErrAlreadyReported
			}
			err = m.db.AddReportMarker(
				&models.ReportMarker{
					ContentID: contentID,
					Reporter:  caller,
					Reason:    reason,
					Height:    op.height,
				},
				txn,
			)
			if err != nil {
				return err
			}
			report.ReportCount++
			op.set("content-id", contentID)
			op.set("report-count", report.ReportCount)
			op.emit(
				event.ContentReportedEventType,
				event.ContentReportedEvent{
					Reporter:    caller,
					Reason:      reason,
					ContentID:   contentID,
					ReportCount: report.ReportCount,
					Height:      op.height,
				},
			)
			if report.ReportCount >= m.params.ReportThreshold {
				report.Resolved = true
				content.Status = models.ContentStatusUnderReview
				if err := m.db.UpdateContent(content, txn); err != nil {
					return err
				}
				op.set("status", content.Status)
				op.moveStatus(
					models.ContentStatusPending,
					models.ContentStatusUnderReview,
				)
				op.emit(
					event.ContentEscalatedEventType,
					event.ContentEscalatedEvent{
						ContentID:   contentID,
						ReportCount: report.ReportCount,
						Height:      op.height,
					},
				)
			}
			return m.db.SetReport(report, txn)
		},
	)
}

// GetContentReports returns the report aggregate for a content item, or nil
// if it was never reported
func (m *Moderator) GetContentReports(contentID uint64) (*models.Report, error) {
	var ret *models.Report
	err := m.view(func(txn *database.Txn) error {
		var err error
		ret, err = m.db.GetReport(contentID, txn)
		return err
	})
	return ret, err
}

// GetReportMarkers returns the individual reports filed against a content item
func (m *Moderator) GetReportMarkers(contentID uint64) ([]models.ReportMarker, error) {
	var ret []models.ReportMarker
	err := m.view(func(txn *database.Txn) error {
		var err error
		ret, err = m.db.GetReportMarkers(contentID, txn)
		return err
	})
	return ret, err
}
