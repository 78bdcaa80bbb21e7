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

// SubmitContent registers a content fingerprint for moderation and returns its id
func (m *Moderator) SubmitContent(
	ctx context.Context,
	caller string,
	contentHash []byte,
) (uint64, error) {
	var contentID uint64
	err := m.execute(
		ctx,
		"submit-content",
		caller,
		func(txn *database.Txn, op *operation) error {
			cooldown, err := m.db.GetCooldown(caller, txn)
			if err != nil {
				return err
			}
			if cooldown != nil && op.height < cooldown.CooldownUntil {
				return ErrCooldownActive
			}
			if len(contentHash) == 0 ||
				len(contentHash) > m.params.MaxContentHashSize {
				return ErrInvalidInput
			}
			content, err := m.db.AddContent(caller, contentHash, op.height, txn)
			if err != nil {
				return err
			}
			contentID = content.ID
			op.set("content-id", content.ID)
			op.moveStatus("", models.ContentStatusPending)
			op.emit(
				event.ContentSubmittedEventType,
				event.ContentSubmittedEvent{
					Author:      caller,
					ContentHash: content.ContentHash,
					ContentID:   content.ID,
					Height:      op.height,
				},
			)
			return nil
		},
	)
	if err != nil {
		return 0, err
	}
	return contentID, nil
}

// FinalizeModeration closes voting on a content item once its voting period
// has elapsed. Any principal may call it. Ties are rejected
func (m *Moderator) FinalizeModeration(
	ctx context.Context,
	caller string,
	contentID uint64,
) (models.ContentStatus, error) {
	var status models.ContentStatus
	err := m.execute(
		ctx,
		"finalize-moderation",
		caller,
		func(txn *database.Txn, op *operation) error {
			content, err := m.db.GetContent(contentID, txn)
			if err != nil {
				return err
			}
			if content == nil {
				return ErrContentNotFound
			}
			if content.Status != models.ContentStatusPending {
				return ErrInvalidVoteTarget
			}
			if op.height < saturatingAdd(content.SubmittedAt, m.params.VotingPeriod) {
				return ErrNotAuthorized
			}
			status = models.ContentStatusRejected
			if content.VotesFor > content.VotesAgainst {
				status = models.ContentStatusApproved
			}
			content.Status = status
			if err := m.db.UpdateContent(content, txn); err != nil {
				return err
			}
			op.set("content-id", contentID)
			op.set("status", status)
			op.moveStatus(models.ContentStatusPending, status)
			op.emit(
				event.ContentFinalizedEventType,
				event.ContentFinalizedEvent{
					Status:       string(status),
					ContentID:    contentID,
					VotesFor:     content.VotesFor,
					VotesAgainst: content.VotesAgainst,
					Height:       op.height,
				},
			)
			return nil
		},
	)
	if err != nil {
		return "", err
	}
	return status, nil
}

// GetContent returns a content record including its fingerprint, or nil if it does not exist
func (m *Moderator) GetContent(contentID uint64) (*models.Content, error) {
	var ret *models.Content
	err := m.view(func(txn *database.Txn) error {
		var err error
		ret, err = m.db.GetContent(contentID, txn)
		return err
	})
	return ret, err
}
