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

	"github.com/blinklabs-io/gouroboros/cbor"
	"github.com/blinklabs-io/modledger/database/types"
)

const (
	journalEntryBlobKeyPrefix = "journal_entry_"
	journalSeqBlobKey         = "journal_seq"
)

// JournalEntry records one committed mutating operation
type JournalEntry struct {
	cbor.StructAsArray
	Detail    map[string]string `json:"detail,omitempty"`
	Operation string            `json:"operation"`
	Principal string            `json:"principal"`
	Sequence  uint64            `json:"sequence"`
	Height    uint64            `json:"height"`
}

func journalEntryBlobKey(seq uint64) []byte {
	return binary.BigEndian.AppendUint64([]byte(journalEntryBlobKeyPrefix), seq)
}

// AppendJournal assigns the next sequence number to entry and stores it
func (d *Database) AppendJournal(entry *JournalEntry, txn *Txn) error {
	return d.withTxn(txn, true, func(txn *Txn) error {
		var seq uint64
		val, err := d.blob.Get(txn.Blob(), []byte(journalSeqBlobKey))
		if err != nil {
			if !errors.Is(err, types.ErrBlobKeyNotFound) {
				return err
			}
		} else {
			if len(val) != 8 {
				return errors.New("invalid journal sequence value")
			}
			seq = binary.BigEndian.Uint64(val)
		}
		seq++
		entry.Sequence = seq
		entryCbor, err := cbor.Encode(entry)
		if err != nil {
			return fmt.Errorf("encode journal entry: %w", err)
		}
		if err := d.blob.Set(txn.Blob(), journalEntryBlobKey(seq), entryCbor); err != nil {
			return err
		}
		return d.blob.Set(
			txn.Blob(),
			[]byte(journalSeqBlobKey),
			binary.BigEndian.AppendUint64(nil, seq),
		)
	})
}

// Journal returns up to limit journal entries starting at sequence number from
func (d *Database) Journal(from uint64, limit int, txn *Txn) ([]JournalEntry, error) {
	ret := []JournalEntry{}
	err := d.withTxn(txn, false, func(txn *Txn) error {
		prefix := []byte(journalEntryBlobKeyPrefix)
		iter := d.blob.NewIterator(
			txn.Blob(),
			types.BlobIteratorOptions{Prefix: prefix},
		)
		defer iter.Close()
		for iter.Seek(journalEntryBlobKey(from)); iter.ValidForPrefix(prefix); iter.Next() {
			if limit > 0 && len(ret) >= limit {
				break
			}
			val, err := iter.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			var entry JournalEntry
			if _, err := cbor.Decode(val, &entry); err != nil {
				return fmt.Errorf("decode journal entry: %w", err)
			}
			ret = append(ret, entry)
		}
		return iter.Err()
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}
