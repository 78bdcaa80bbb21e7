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
)

// GetChallenge returns the challenge opened by challenger against a content id, or nil
func (d *MetadataStoreSqlite) GetChallenge(
	contentID uint64,
	challenger string,
	txn types.Txn,
) (*models.Challenge, error) {
	db, err := d.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	ret := &models.Challenge{}
	result := db.Where(
		"content_id = ? AND challenger = ?",
		contentID,
		challenger,
	).First(ret)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return ret, nil
}

// SetChallenge creates a challenge, or updates it when it already has an ID
func (d *MetadataStoreSqlite) SetChallenge(
	challenge *models.Challenge,
	txn types.Txn,
) error {
	db, err := d.resolveDB(txn)
	if err != nil {
		return err
	}
	if challenge.ID == 0 {
		return db.Create(challenge).Error
	}
	return db.Save(challenge).Error
}

// GetChallengeVote returns the vote cast by moderator on a challenge, or nil
func (d *MetadataStoreSqlite) GetChallengeVote(
	contentID uint64,
	challenger string,
	moderator string,
	txn types.Txn,
) (*models.ChallengeVote, error) {
	db, err := d.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	ret := &models.ChallengeVote{}
	result := db.Where(
		"content_id = ? AND challenger = ? AND moderator = ?",
		contentID,
		challenger,
		moderator,
	).First(ret)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return ret, nil
}

// AddChallengeVote records a moderator's vote on a challenge
func (d *MetadataStoreSqlite) AddChallengeVote(
	vote *models.ChallengeVote,
	txn types.Txn,
) error {
	db, err := d.resolveDB(txn)
	if err != nil {
		return err
	}
	return db.Create(vote).Error
}
