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

func (d *Database) GetChallenge(
	contentID uint64,
	challenger string,
	txn *Txn,
) (*models.Challenge, error) {
	var ret *models.Challenge
	err := d.withTxn(txn, false, func(txn *Txn) error {
		var err error
		ret, err = d.metadata.GetChallenge(contentID, challenger, txn.Metadata())
		return err
	})
	return ret, err
}

func (d *Database) SetChallenge(challenge *models.Challenge, txn *Txn) error {
	return d.withTxn(txn, true, func(txn *Txn) error {
		return d.metadata.SetChallenge(challenge, txn.Metadata())
	})
}

func (d *Database) GetChallengeVote(
	contentID uint64,
	challenger string,
	moderator string,
	txn *Txn,
) (*models.ChallengeVote, error) {
	var ret *models.ChallengeVote
	err := d.withTxn(txn, false, func(txn *Txn) error {
		var err error
		ret, err = d.metadata.GetChallengeVote(
			contentID,
			challenger,
			moderator,
			txn.Metadata(),
		)
		return err
	})
	return ret, err
}

func (d *Database) AddChallengeVote(vote *models.ChallengeVote, txn *Txn) error {
	return d.withTxn(txn, true, func(txn *Txn) error {
		return d.metadata.AddChallengeVote(vote, txn.Metadata())
	})
}
