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

package database_test

import (
	"errors"
	"testing"

	"github.com/blinklabs-io/modledger/database"
	"github.com/blinklabs-io/modledger/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *database.Database {
	t.Helper()
	db, err := database.New(&database.Config{})
	require.NoError(t, err, "failed to create test database")
	t.Cleanup(func() {
		require.NoError(t, db.Close(), "failed to close test database")
	})
	return db
}

func TestAddContentAssignsSequentialIDs(t *testing.T) {
	db := newTestDB(t)
	first, err := db.AddContent("alice", []byte("hash-one"), 10, nil)
	require.NoError(t, err)
	second, err := db.AddContent("bob", []byte("hash-two"), 11, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), first.ID)
	assert.Equal(t, uint64(2), second.ID)

	content, err := db.GetContent(2, nil)
	require.NoError(t, err)
	require.NotNil(t, content)
	assert.Equal(t, "bob", content.Author)
	assert.Equal(t, []byte("hash-two"), content.ContentHash)
	assert.Equal(t, models.ContentStatusPending, content.Status)
	assert.Equal(t, uint64(11), content.SubmittedAt)
}

func TestGetContentMissing(t *testing.T) {
	db := newTestDB(t)
	content, err := db.GetContent(42, nil)
	require.NoError(t, err)
	assert.Nil(t, content)
}

func TestTxnRollbackDiscardsBothStores(t *testing.T) {
	db := newTestDB(t)
	errTest := errors.New("abort")
	txn := db.Transaction(true)
	err := txn.Do(func(txn *database.Txn) error {
		if _, err := db.AddContent("alice", []byte{0x01}, 1, txn); err != nil {
			return err
		}
		if err := db.AppendJournal(&database.JournalEntry{Operation: "submit-content"}, txn); err != nil {
			return err
		}
		return errTest
	})
	require.ErrorIs(t, err, errTest)

	content, err := db.GetContent(1, nil)
	require.NoError(t, err)
	assert.Nil(t, content)
	entries, err := db.Journal(0, 0, nil)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCountContentByStatus(t *testing.T) {
	db := newTestDB(t)
	for range 3 {
		_, err := db.AddContent("alice", []byte{0xaa}, 1, nil)
		require.NoError(t, err)
	}
	content, err := db.GetContent(2, nil)
	require.NoError(t, err)
	content.Status = models.ContentStatusApproved
	content.VotesFor = 2
	require.NoError(t, db.UpdateContent(content, nil))

	counts, err := db.CountContentByStatus(nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), counts[models.ContentStatusPending])
	assert.Equal(t, uint64(1), counts[models.ContentStatusApproved])
	assert.Equal(t, uint64(0), counts[models.ContentStatusRejected])
}

func TestReputationAndBalanceUpsert(t *testing.T) {
	db := newTestDB(t)
	rep, err := db.GetReputation("alice", nil)
	require.NoError(t, err)
	assert.Nil(t, rep)

	require.NoError(t, db.SetReputation("alice", 200, nil))
	require.NoError(t, db.SetReputation("alice", ^uint64(0), nil))
	rep, err = db.GetReputation("alice", nil)
	require.NoError(t, err)
	require.NotNil(t, rep)
	assert.Equal(t, ^uint64(0), uint64(rep.Score))

	balance, err := db.GetBalance("alice", nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), balance)
	require.NoError(t, db.SetBalance("alice", 5_000_000, nil))
	balance, err = db.GetBalance("alice", nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(5_000_000), balance)
}

func TestJournalAppendAndRange(t *testing.T) {
	db := newTestDB(t)
	for i := range 5 {
		entry := &database.JournalEntry{
			Operation: "vote",
			Principal: "alice",
			Height:    uint64(100 + i), // #nosec G115
			Detail:    map[string]string{"content-id": "1"},
		}
		require.NoError(t, db.AppendJournal(entry, nil))
		assert.Equal(t, uint64(i+1), entry.Sequence) // #nosec G115
	}
	entries, err := db.Journal(2, 2, nil)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, uint64(2), entries[0].Sequence)
	assert.Equal(t, uint64(3), entries[1].Sequence)
	assert.Equal(t, uint64(102), entries[1].Height)
	assert.Equal(t, "1", entries[1].Detail["content-id"])

	all, err := db.Journal(0, 0, nil)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestChainHeightPersists(t *testing.T) {
	dataDir := t.TempDir()
	db, err := database.New(&database.Config{DataDir: dataDir})
	require.NoError(t, err)
	require.NoError(t, db.SetChainHeight(1234, nil))
	require.NoError(t, db.Close())

	db, err = database.New(&database.Config{DataDir: dataDir})
	require.NoError(t, err)
	defer db.Close()
	height, err := db.GetChainHeight(nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(1234), height)
}

func TestAdvanceChainHeight(t *testing.T) {
	db, err := database.New(&database.Config{})
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.AdvanceChainHeight(10, nil))
	require.NoError(t, db.AdvanceChainHeight(7, nil))
	height, err := db.GetChainHeight(nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), height)
	require.NoError(t, db.AdvanceChainHeight(11, nil))
	height, err = db.GetChainHeight(nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(11), height)
}

func TestCommitTimestampMismatch(t *testing.T) {
	dataDir := t.TempDir()
	db, err := database.New(&database.Config{DataDir: dataDir})
	require.NoError(t, err)
	_, err = db.AddContent("alice", []byte{0x01}, 1, nil)
	require.NoError(t, err)
	// Simulate a crash between the blob and metadata commits
	require.NoError(t, db.Metadata().SetCommitTimestamp(1, nil))
	require.NoError(t, db.Close())

	db, err = database.New(&database.Config{DataDir: dataDir})
	require.NotNil(t, db)
	defer db.Close()
	var tsErr database.CommitTimestampError
	require.ErrorAs(t, err, &tsErr)
	assert.Equal(t, int64(1), tsErr.MetadataTimestamp)
}
