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

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/blinklabs-io/modledger/database/models"
	"github.com/blinklabs-io/modledger/database/types"
)

const contentHashBlobKeyPrefix = "content_hash_"

// ContentHashBlobKey returns the blob key holding the fingerprint of a content item
func ContentHashBlobKey(id uint64) []byte {
	return binary.BigEndian.AppendUint64([]byte(contentHashBlobKeyPrefix), id)
}

// GetContent returns the content record with its fingerprint, or nil if it does not exist
func (d *Database) GetContent(id uint64, txn *Txn) (*models.Content, error) {
	var ret *models.Content
	err := d.withTxn(txn, false, func(txn *Txn) error {
		content, err := d.metadata.GetContent(id, txn.Metadata())
		if err != nil {
			return err
		}
		if content == nil {
			return nil
		}
		hash, err := d.blob.Get(txn.Blob(), ContentHashBlobKey(id))
		if err != nil {
			if errors.Is(err, types.ErrBlobKeyNotFound) {
				return fmt.Errorf("content %d has no fingerprint: %w", id, err)
			}
			return err
		}
		content.ContentHash = hash
		ret = content
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}

// AddContent assigns the next content id and stores a new pending content record
func (d *Database) AddContent(
	author string,
	hash []byte,
	height uint64,
	txn *Txn,
) (*models.Content, error) {
	var ret *models.Content
	err := d.withTxn(txn, true, func(txn *Txn) error {
		id, err := d.metadata.NextContentID(txn.Metadata())
		if err != nil {
			return err
		}
		content := &models.Content{
			ID:          id,
			Author:      author,
			ContentHash: hash,
			Status:      models.ContentStatusPending,
			SubmittedAt: height,
		}
		if err := d.metadata.SetContent(content, txn.Metadata()); err != nil {
			return err
		}
		if err := d.blob.Set(txn.Blob(), ContentHashBlobKey(id), hash); err != nil {
			return err
		}
		ret = content
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}

// UpdateContent saves the status and tallies of an existing content record.
// The fingerprint is immutable and is not rewritten
func (d *Database) UpdateContent(content *models.Content, txn *Txn) error {
	return d.withTxn(txn, true, func(txn *Txn) error {
		return d.metadata.SetContent(content, txn.Metadata())
	})
}

// CountContentByStatus returns the number of content records in each status
func (d *Database) CountContentByStatus(
	txn *Txn,
) (map[models.ContentStatus]uint64, error) {
	var ret map[models.ContentStatus]uint64
	err := d.withTxn(txn, false, func(txn *Txn) error {
		var err error
		ret, err = d.metadata.CountContentByStatus(txn.Metadata())
		return err
	})
	return ret, err
}

// GetVote returns the vote cast by voter on a content item, or nil
func (d *Database) GetVote(
	contentID uint64,
	voter string,
	txn *Txn,
) (*models.Vote, error) {
	var ret *models.Vote
	err := d.withTxn(txn, false, func(txn *Txn) error {
		var err error
		ret, err = d.metadata.GetVote(contentID, voter, txn.Metadata())
		return err
	})
	return ret, err
}

// AddVote records a vote
func (d *Database) AddVote(vote *models.Vote, txn *Txn) error {
	return d.withTxn(txn, true, func(txn *Txn) error {
		return d.metadata.AddVote(vote, txn.Metadata())
	})
}
