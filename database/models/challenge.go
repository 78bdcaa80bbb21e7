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

// Challenge is a staked dispute against a terminal moderation decision
type Challenge struct {
	Challenger string `gorm:"uniqueIndex:idx_challenge_content_challenger;size:128;not null" json:"challenger"`
	Reason     string `gorm:"size:256"                                                      json:"reason"`
	// DisputedStatus is the decision in force when the challenge was opened
	DisputedStatus ContentStatus `gorm:"size:16"                                                       json:"disputedStatus"`
	StakeAmount    types.Uint64  `gorm:"not null"                                                      json:"stakeAmount"`
	ID             uint          `gorm:"primarykey"                                                    json:"-"`
	ContentID      uint64        `gorm:"uniqueIndex:idx_challenge_content_challenger;not null"         json:"contentId"`
	OpenedAt       uint64        `gorm:"not null"                                                      json:"openedAt"`
	UpholdVotes    uint64        `gorm:"not null;default:0"                                            json:"upholdVotes"`
	ReverseVotes   uint64        `gorm:"not null;default:0"                                            json:"reverseVotes"`
	Resolved       bool          `gorm:"not null;default:false"                                        json:"resolved"`
	Successful     bool          `gorm:"not null;default:false"                                        json:"successful"`
}

func (Challenge) TableName() string {
	return "challenge"
}

// ChallengeVote is the (content, challenger, moderator) dedup record
type ChallengeVote struct {
	Challenger string `gorm:"uniqueIndex:idx_challenge_vote;size:128;not null" json:"challenger"`
	Moderator  string `gorm:"uniqueIndex:idx_challenge_vote;size:128;not null" json:"moderator"`
	ID         uint   `gorm:"primarykey"                                      json:"-"`
	ContentID  uint64 `gorm:"uniqueIndex:idx_challenge_vote;not null"         json:"contentId"`
	Height     uint64 `gorm:"not null"                                        json:"height"`
	Agree      bool   `gorm:"not null"                                        json:"agree"`
}

func (ChallengeVote) TableName() string {
	return "challenge_vote"
}
