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

package metadata

import (
	"log/slog"

	"github.com/blinklabs-io/modledger/database/models"
	"github.com/blinklabs-io/modledger/database/plugin/metadata/sqlite"
	"github.com/blinklabs-io/modledger/database/types"
	"gorm.io/gorm"
)

type MetadataStore interface {
	// Database
	AutoMigrate(...any) error
	Close() error
	DB() *gorm.DB
	GetCommitTimestamp() (int64, error)
	SetCommitTimestamp(int64, types.Txn) error
	Transaction() types.Txn

	// Content registry and voting
	GetContent(uint64, types.Txn) (*models.Content, error)
	SetContent(*models.Content, types.Txn) error
	NextContentID(types.Txn) (uint64, error)
	CountContentByStatus(types.Txn) (map[models.ContentStatus]uint64, error)
	GetVote(
		uint64, // content ID
		string, // voter
		types.Txn,
	) (*models.Vote, error)
	AddVote(*models.Vote, types.Txn) error

	// Reputation and cooldown
	GetReputation(string, types.Txn) (*models.Reputation, error)
	SetReputation(string, uint64, types.Txn) error
	GetCooldown(string, types.Txn) (*models.Cooldown, error)
	SetCooldown(string, uint64, types.Txn) error

	// Stake registry and ledger balances
	GetStake(string, types.Txn) (*models.Stake, error)
	SetStake(*models.Stake, types.Txn) error
	GetBalance(string, types.Txn) (*models.Balance, error)
	SetBalance(string, uint64, types.Txn) error

	// Reports
	GetReport(uint64, types.Txn) (*models.Report, error)
	SetReport(*models.Report, types.Txn) error
	GetReportMarker(
		uint64, // content ID
		string, // reporter
		types.Txn,
	) (*models.ReportMarker, error)
	GetReportMarkers(uint64, types.Txn) ([]models.ReportMarker, error)
	AddReportMarker(*models.ReportMarker, types.Txn) error

	// Challenges
	GetChallenge(
		uint64, // content ID
		string, // challenger
		types.Txn,
	) (*models.Challenge, error)
	SetChallenge(*models.Challenge, types.Txn) error
	GetChallengeVote(
		uint64, // content ID
		string, // challenger
		string, // moderator
		types.Txn,
	) (*models.ChallengeVote, error)
	AddChallengeVote(*models.ChallengeVote, types.Txn) error

	// Chain
	GetChainHeight(types.Txn) (uint64, error)
	SetChainHeight(uint64, types.Txn) error
}

// For now, this always returns a sqlite plugin
func New(
	dataDir string,
	logger *slog.Logger,
) (MetadataStore, error) {
	store, err := sqlite.New(dataDir, logger)
	if err != nil {
		if store != nil {
			_ = store.Close()
		}
		return nil, err
	}
	return store, nil
}
