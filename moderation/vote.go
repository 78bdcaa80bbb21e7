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

// Vote casts a reputation-gated vote on pending content during its voting
// window and rewards the voter with reputation
func (m *Moderator) Vote(
	ctx context.Context,
	caller string,
	contentID uint64,
	approve bool,
) error {
	return m.execute(
		ctx,
		"vote",
		caller,
		func(txn *database.Txn, op *operation) error {
			content, err := m.db.GetContent(contentID, txn)
			if err != nil {
				return err
			}
			if content == nil {
				return ErrContentNotFound
			}
			if content.Status != models.ContentStatusPending ||
				op.height >= saturatingAdd(content.SubmittedAt, m.params.VotingPeriod) {
				return ErrInvalidVoteTarget
			}
			var score uint64
			rep, err := m.db.GetReputation(caller, txn)
			if err != nil {
				return err
			}
			if rep != nil {
				score = uint64(rep.Score)
			}
			if score < m.params.ReputationThreshold {
				return ErrInsufficientReputation
			}
			prevVote, err := m.db.GetVote(contentID, caller, txn)
			if err != nil {
				return err
			}
			if prevVote != nil {
				return ErrAlreadyVoted
			}
			if approve {
				content.VotesFor = saturatingAdd(content.VotesFor, 1)
			} else {
				content.VotesAgainst = saturatingAdd(content.VotesAgainst, 1)
			}
			if err := m.db.UpdateContent(content, txn); err != nil {
				return err
			}
			err = m.db.AddVote(
				&models.Vote{
					ContentID: contentID,
					Voter:     caller,
					Height:    op.height,
					Approve:   approve,
				},
				txn,
			)
			if err != nil {
				return err
			}
			newScore := saturatingAdd(score, m.params.VoteReward)
			if err := m.db.SetReputation(caller, newScore, txn); err != nil {
				return err
			}
			op.set("content-id", contentID)
			op.set("approve", approve)
			op.emit(
				event.ContentVotedEventType,
				event.ContentVotedEvent{
					Voter:     caller,
					ContentID: contentID,
					Height:    op.height,
					Approve:   approve,
				},
			)
			op.emit(
				event.ReputationChangedEventType,
				event.ReputationChangedEvent{Principal: caller, Score: newScore},
			)
			return nil
		},
	)
}

// GetVote returns the vote cast by voter on a content item, or nil
func (m *Moderator) GetVote(contentID uint64, voter string) (*models.Vote, error) {
	var ret *models.Vote
	err := m.view(func(txn *database.Txn) error {
		var err error
		ret, err = m.db.GetVote(contentID, voter, txn)
		return err
	})
	return ret, err
}
