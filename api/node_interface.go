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

package api

import (
	"context"

	"github.com/blinklabs-io/modledger/database"
	"github.com/blinklabs-io/modledger/database/models"
	"github.com/blinklabs-io/modledger/moderation"
)

// ModerationNode is the set of ledger operations exposed over HTTP.
// It is satisfied by *moderation.Moderator.
type ModerationNode interface {
	Params() moderation.Params
	Height() uint64

	SubmitContent(ctx context.Context, caller string, contentHash []byte) (uint64, error)
	GetContent(contentID uint64) (*models.Content, error)
	FinalizeModeration(ctx context.Context, caller string, contentID uint64) (models.ContentStatus, error)

	Vote(ctx context.Context, caller string, contentID uint64, approve bool) error
	GetVote(contentID uint64, voter string) (*models.Vote, error)

	InitializeReputation(ctx context.Context, caller string, principal string, score uint64) error
	GetUserReputation(principal string) (*models.Reputation, error)

	ApplyCooldown(ctx context.Context, caller string, principal string) error
	GetUserCooldown(principal string) (*models.Cooldown, error)

	StakeTokens(ctx context.Context, caller string, amount uint64) error
	UnstakeTokens(ctx context.Context, caller string) (uint64, error)
	GetModeratorStake(principal string) (*models.Stake, error)

	ReportContent(ctx context.Context, caller string, contentID uint64, reason string) error
	GetContentReports(contentID uint64) (*models.Report, error)
	GetReportMarkers(contentID uint64) ([]models.ReportMarker, error)

	ChallengeModeration(ctx context.Context, caller string, contentID uint64, stakeAmount uint64, reason string) error
	VoteOnChallenge(ctx context.Context, caller string, contentID uint64, challenger string, agree bool) error
	FinalizeChallenge(ctx context.Context, caller string, contentID uint64, challenger string) (bool, error)
	GetContentChallenge(contentID uint64, challenger string) (*models.Challenge, error)

	Deposit(ctx context.Context, caller string, principal string, amount uint64) (uint64, error)
	Balance(principal string) (uint64, error)

	Journal(from uint64, limit int) ([]database.JournalEntry, error)
}

var _ ModerationNode = (*moderation.Moderator)(nil)
