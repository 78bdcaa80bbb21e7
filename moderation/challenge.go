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
	"fmt"

	"github.com/blinklabs-io/modledger/database"
	"github.com/blinklabs-io/modledger/database/models"
	"github.com/blinklabs-io/modledger/database/types"
	"github.com/blinklabs-io/modledger/event"
)

// ChallengeModeration opens a staked dispute against a finalized decision
func (m *Moderator) ChallengeModeration(
	ctx context.Context,
	caller string,
	contentID uint64,
	stakeAmount uint64,
	reason string,
) error {
	return m.execute(
		ctx,
		"challenge-moderation",
		caller,
		func(txn *database.Txn, op *operation) error {
			content, err := m.db.GetContent(contentID, txn)
			if err != nil {
				return err
			}
			if content == nil {
				return ErrContentNotFound
			}
			if !content.Status.Terminal() {
				return ErrInvalidVoteTarget
			}
			if stakeAmount < m.params.MinChallengeStake {
				return ErrStakeBelowMinimum
			}
			existing, err := m.db.GetChallenge(contentID, caller, txn)
			if err != nil {
				return err
			}
			if existing != nil {
				return ErrAlreadyChallenged
			}
			if len(reason) > m.params.MaxReasonLength {
				return ErrInvalidInput
			}
			if err := m.config.Ledger.Debit(txn, caller, stakeAmount); err != nil {
				return fmt.Errorf("debit challenge stake: %w", err)
			}
			err = m.db.SetChallenge(
				&models.Challenge{
					ContentID:   contentID,
					Challenger:  caller,
					Reason:         reason,
					DisputedStatus: content.Status,
					StakeAmount:    types.Uint64(stakeAmount),
					OpenedAt:       op.height,
				},
				txn,
			)
			if err != nil {
				return err
			}
			op.set("content-id", contentID)
			op.set("stake-amount", stakeAmount)
			op.emit(
				event.ChallengeOpenedEventType,
				event.ChallengeOpenedEvent{
					Challenger:  caller,
					Reason:      reason,
					ContentID:   contentID,
					StakeAmount: stakeAmount,
					Height:      op.height,
				},
			)
			return nil
		},
	)
}

// VoteOnChallenge records a moderator's vote on an open challenge. agree
// sides with the challenger
func (m *Moderator) VoteOnChallenge(
	ctx context.Context,
	caller string,
	contentID uint64,
	challenger string,
	agree bool,
) error {
	return m.execute(
		ctx,
		"vote-on-challenge",
		caller,
		func(txn *database.Txn, op *operation) error {
			challenge, err := m.db.GetChallenge(contentID, challenger, txn)
			if err != nil {
				return err
			}
			if challenge == nil {
				return ErrChallengeNotFound
			}
			if challenge.Resolved {
				return ErrAlreadyResolved
			}
			stake, err := m.db.GetStake(caller, txn)
			if err != nil {
				return err
			}
			if stake == nil || !stake.Active || caller == challenger {
				return ErrNotAuthorized
			}
			prevVote, err := m.db.GetChallengeVote(contentID, challenger, caller, txn)
			if err != nil {
				return err
			}
			if prevVote != nil {
				return ErrAlreadyVoted
			}
			err = m.db.AddChallengeVote(
				&models.ChallengeVote{
					ContentID:  contentID,
					Challenger: challenger,
					Moderator:  caller,
					Height:     op.height,
					Agree:      agree,
				},
				txn,
			)
			if err != nil {
				return err
			}
			if agree {
				challenge.UpholdVotes = saturatingAdd(challenge.UpholdVotes, 1)
			} else {
				challenge.ReverseVotes = saturatingAdd(challenge.ReverseVotes, 1)
			}
			if err := m.db.SetChallenge(challenge, txn); err != nil {
				return err
			}
			op.set("content-id", contentID)
			op.set("challenger", challenger)
			op.set("agree", agree)
			op.emit(
				event.ChallengeVotedEventType,
				event.ChallengeVotedEvent{
					Challenger: challenger,
					Moderator:  caller,
					ContentID:  contentID,
					Height:     op.height,
					Agree:      agree,
				},
			)
			return nil
		},
	)
}

// FinalizeChallenge settles a challenge by simple majority of moderator votes.
// A successful challenge flips the disputed decision and refunds the
// challenger. If an earlier challenge already overturned that decision, the
// status is left alone and the challenger is still refunded. A failed
// challenge forfeits the stake to the penalty pool
func (m *Moderator) FinalizeChallenge(
	ctx context.Context,
	caller string,
	contentID uint64,
	challenger string,
) (bool, error) {
	var successful bool
	err := m.execute(
		ctx,
		"finalize-challenge",
		caller,
		func(txn *database.Txn, op *operation) error {
			if !m.isFinalizer(caller) {
				return ErrNotAuthorized
			}
			challenge, err := m.db.GetChallenge(contentID, challenger, txn)
			if err != nil {
				return err
			}
			if challenge == nil {
				return ErrChallengeNotFound
			}
			if challenge.Resolved {
				return ErrAlreadyResolved
			}
			if challenge.UpholdVotes == 0 && challenge.ReverseVotes == 0 {
				return ErrNoChallengeVotes
			}
			successful = challenge.UpholdVotes > challenge.ReverseVotes
			stakeAmount := uint64(challenge.StakeAmount)
			if successful {
				if err := m.overturn(txn, op, challenge); err != nil {
					return err
				}
				if err := m.config.Ledger.Credit(txn, challenger, stakeAmount); err != nil {
					return fmt.Errorf("refund challenge stake: %w", err)
				}
			} else if m.config.PenaltyPool != "" {
				if err := m.config.Ledger.Credit(txn, m.config.PenaltyPool, stakeAmount); err != nil {
					return fmt.Errorf("forfeit challenge stake: %w", err)
				}
			}
			challenge.Resolved = true
			challenge.Successful = successful
			if err := m.db.SetChallenge(challenge, txn); err != nil {
				return err
			}
			op.set("content-id", contentID)
			op.set("challenger", challenger)
			op.set("successful", successful)
			op.emit(
				event.ChallengeFinalizedEventType,
				event.ChallengeFinalizedEvent{
					Challenger:  challenger,
					ContentID:   contentID,
					StakeAmount: stakeAmount,
					Height:      op.height,
					Successful:  successful,
				},
			)
			return nil
		},
	)
	if err != nil {
		return false, err
	}
	return successful, nil
}

// overturn flips the decision disputed by a challenge. It is a no-op when
// that decision is no longer the one in force
func (m *Moderator) overturn(
	txn *database.Txn,
	op *operation,
	challenge *models.Challenge,
) error {
	contentID := challenge.ContentID
	content, err := m.db.GetContent(contentID, txn)
	if err != nil {
		return err
	}
	if content == nil {
		return ErrContentNotFound
	}
	prevStatus := content.Status
	if prevStatus != challenge.DisputedStatus {
		op.set("overturned", false)
		return nil
	}
	switch prevStatus {
	case models.ContentStatusApproved:
		content.Status = models.ContentStatusRejected
	case models.ContentStatusRejected:
		content.Status = models.ContentStatusApproved
	default:
		return fmt.Errorf(
			"content %d has non-terminal status %s under challenge",
			contentID,
			prevStatus,
		)
	}
	if err := m.db.UpdateContent(content, txn); err != nil {
		return err
	}
	op.set("overturned", true)
	op.set("status", content.Status)
	op.moveStatus(prevStatus, content.Status)
	op.emit(
		event.ContentFinalizedEventType,
		event.ContentFinalizedEvent{
			Status:       string(content.Status),
			ContentID:    contentID,
			VotesFor:     content.VotesFor,
			VotesAgainst: content.VotesAgainst,
			Height:       op.height,
		},
	)
	return nil
}

// GetContentChallenge returns the challenge opened by challenger against a content item, or nil
func (m *Moderator) GetContentChallenge(
	contentID uint64,
	challenger string,
) (*models.Challenge, error) {
	var ret *models.Challenge
	err := m.view(func(txn *database.Txn) error {
		var err error
		ret, err = m.db.GetChallenge(contentID, challenger, txn)
		return err
	})
	return ret, err
}
