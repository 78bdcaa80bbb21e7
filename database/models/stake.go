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

package models

import "github.com/blinklabs-io/modledger/database/types"

// Stake is a moderator stake slot. An unstaked slot is kept with a zero
// amount and Active set to false so that it can be reused.
type Stake struct {
	Principal string       `gorm:"primaryKey;size:128" json:"principal"`
	Amount    types.Uint64 `gorm:"not null"            json:"amount"`
	StakedAt  uint64       `gorm:"not null"            json:"stakedAt"`
	Active    bool         `gorm:"index;not null"      json:"active"`
}

func (Stake) TableName() string {
	return "stake"
}

// Balance is the spendable amount held for a principal by the built-in ledger
type Balance struct {
	Principal string       `gorm:"primaryKey;size:128" json:"principal"`
	Amount    types.Uint64 `gorm:"not null"            json:"amount"`
}

func (Balance) TableName() string {
	return "balance"
}

// ChainHeight is a single-row table holding the last height seen by the clock
type ChainHeight struct {
	ID     uint   `gorm:"primarykey"`
	Height uint64 `gorm:"not null"`
}

func (ChainHeight) TableName() string {
	return "chain_height"
}

// CommitTimestamp is a single-row table holding the timestamp of the last
// commit. The blob store keeps a copy, and the two must agree on open
type CommitTimestamp struct {
	ID        uint  `gorm:"primarykey"`
	Timestamp int64 `gorm:"not null"`
}

func (CommitTimestamp) TableName() string {
	return "commit_timestamp"
}
