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

package event

const (
	ContentSubmittedEventType   = EventType("content.submitted")
	ContentVotedEventType       = EventType("content.voted")
	ContentFinalizedEventType   = EventType("content.finalized")
	ContentReportedEventType    = EventType("content.reported")
	ContentEscalatedEventType   = EventType("content.escalated")
	ReputationChangedEventType  = EventType("reputation.changed")
	StakeChangedEventType       = EventType("stake.changed")
	ChallengeOpenedEventType    = EventType("challenge.opened")
	ChallengeVotedEventType     = EventType("challenge.voted")
	ChallengeFinalizedEventType = EventType("challenge.finalized")
	CooldownAppliedEventType    = EventType("cooldown.applied")
	FundsDepositedEventType     = EventType("funds.deposited")
	ChainHeightEventType        = EventType("chain.height")
)

type ContentSubmittedEvent struct {
	Author      string
	ContentHash []byte
	ContentID   uint64
	Height      uint64
}

type ContentVotedEvent struct {
	Voter     string
	ContentID uint64
	Height    uint64
	Approve   bool
}

// ContentFinalizedEvent is emitted when a content item reaches a terminal
// status, either by FinalizeModeration or by a successful challenge
type ContentFinalizedEvent struct {
	Status       string
	ContentID    uint64
	VotesFor     uint64
	VotesAgainst uint64
	Height       uint64
}

type ContentReportedEvent struct {
	Reporter    string
	Reason      string
	ContentID   uint64
	ReportCount uint64
	Height      uint64
}

// ContentEscalatedEvent is emitted when reports push a content item into review
type ContentEscalatedEvent struct {
	ContentID   uint64
	ReportCount uint64
	Height      uint64
}

type ReputationChangedEvent struct {
	Principal string
	Score     uint64
}

type StakeChangedEvent struct {
	Principal string
	Amount    uint64
	Height    uint64
	Active    bool
}

type ChallengeOpenedEvent struct {
	Challenger  string
	Reason      string
	ContentID   uint64
	StakeAmount uint64
	Height      uint64
}

type ChallengeVotedEvent struct {
	Challenger string
	Moderator  string
	ContentID  uint64
	Height     uint64
	Agree      bool
}

type ChallengeFinalizedEvent struct {
	Challenger  string
	ContentID   uint64
	StakeAmount uint64
	Height      uint64
	Successful  bool
}

type CooldownAppliedEvent struct {
	Principal     string
	CooldownUntil uint64
}

type FundsDepositedEvent struct {
	Principal string
	Amount    uint64
	Balance   uint64
}

type ChainHeightEvent struct {
	Height uint64
}
