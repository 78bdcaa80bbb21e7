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

// ContentStatus is the moderation lifecycle state of a content record
type ContentStatus string

const (
	ContentStatusPending     ContentStatus = "pending"
	ContentStatusUnderReview ContentStatus = "under_review"
	ContentStatusApproved    ContentStatus = "approved"
	ContentStatusRejected    ContentStatus = "rejected"
)

// ContentStatuses lists every known status, in lifecycle order
var ContentStatuses = []ContentStatus{
	ContentStatusPending,
	ContentStatusUnderReview,
	ContentStatusApproved,
	ContentStatusRejected,
}

// Terminal returns true for statuses produced by finalization
func (s ContentStatus) Terminal() bool {
	return s == ContentStatusApproved || s == ContentStatusRejected
}

// Content is a submitted fingerprint tracked through the moderation lifecycle.
// The fingerprint itself lives in the blob store and is populated on read.
type Content struct {
	ContentHash  []byte        `gorm:"-"                        json:"contentHash"`
	Author       string        `gorm:"index;size:128;not null"  json:"author"`
	Status       ContentStatus `gorm:"index;size:16;not null"   json:"status"`
	ID           uint64        `gorm:"primaryKey;autoIncrement:false" json:"id"`
	VotesFor     uint64        `gorm:"not null;default:0"       json:"votesFor"`
	VotesAgainst uint64        `gorm:"not null;default:0"       json:"votesAgainst"`
	SubmittedAt  uint64        `gorm:"index;not null"           json:"submittedAt"`
}

func (Content) TableName() string {
	return "content"
}

// Vote records a single voter's decision on a content record. Its presence is
// the dedup marker for the (content, voter) pair.
type Vote struct {
	Voter     string `gorm:"uniqueIndex:idx_vote_content_voter;size:128;not null" json:"voter"`
	ID        uint   `gorm:"primarykey"                                          json:"-"`
	ContentID uint64 `gorm:"uniqueIndex:idx_vote_content_voter;not null"         json:"contentId"`
	Height    uint64 `gorm:"not null"                                            json:"height"`
	Approve   bool   `gorm:"not null"                                            json:"approve"`
}

func (Vote) TableName() string {
	return "vote"
}
