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

package blob

import (
	"log/slog"

	"github.com/blinklabs-io/modledger/database/plugin/blob/badger"
	"github.com/blinklabs-io/modledger/database/types"
	"github.com/prometheus/client_golang/prometheus"
)

type BlobStore interface {
	Close() error
	NewTransaction(bool) types.Txn
	Get(types.Txn, []byte) ([]byte, error)
	Set(types.Txn, []byte, []byte) error
	Delete(types.Txn, []byte) error
	NewIterator(types.Txn, types.BlobIteratorOptions) types.BlobIterator

	GetCommitTimestamp() (int64, error)
	SetCommitTimestamp(int64, types.Txn) error
}

// New returns a badger blob store rooted at dataDir, or in memory when dataDir is empty
func New(
	dataDir string,
	logger *slog.Logger,
	promRegistry prometheus.Registerer,
) (BlobStore, error) {
	opts := []badger.BlobStoreBadgerOptionFunc{
		badger.WithDataDir(dataDir),
		badger.WithLogger(logger),
	}
	if promRegistry != nil {
		opts = append(opts, badger.WithPromRegistry(promRegistry))
	}
	store, err := badger.New(opts...)
	if err != nil {
		return nil, err
	}
	return store, nil
}
