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

package moderation

import "errors"

// Params holds the tunable constants of the moderation rules. Durations are
// measured in blocks
type Params struct {
	VotingPeriod        uint64 `yaml:"votingPeriod"        json:"votingPeriod"        envconfig:"VOTING_PERIOD"`
	StakeLockupPeriod   uint64 `yaml:"stakeLockupPeriod"   json:"stakeLockupPeriod"   envconfig:"STAKE_LOCKUP_PERIOD"`
	CooldownPeriod      uint64 `yaml:"cooldownPeriod"      json:"cooldownPeriod"      envconfig:"COOLDOWN_PERIOD"`
	VoteReward          uint64 `yaml:"voteReward"          json:"voteReward"          envconfig:"VOTE_REWARD"`
	ReportThreshold     uint64 `yaml:"reportThreshold"     json:"reportThreshold"     envconfig:"REPORT_THRESHOLD"`
	ReputationThreshold uint64 `yaml:"reputationThreshold" json:"reputationThreshold" envconfig:"REPUTATION_THRESHOLD"`
	MinStakeAmount      uint64 `yaml:"minStakeAmount"      json:"minStakeAmount"      envconfig:"MIN_STAKE_AMOUNT"`
	MinChallengeStake   uint64 `yaml:"minChallengeStake"   json:"minChallengeStake"   envconfig:"MIN_CHALLENGE_STAKE"`
	MaxContentHashSize  int    `yaml:"maxContentHashSize"  json:"maxContentHashSize"  envconfig:"MAX_CONTENT_HASH_SIZE"`
	MaxReasonLength     int    `yaml:"maxReasonLength"     json:"maxReasonLength"     envconfig:"MAX_REASON_LENGTH"`
}

func DefaultParams() Params {
	return Params{
		VotingPeriod:        144,
		StakeLockupPeriod:   720,
		CooldownPeriod:      72,
		VoteReward:          10,
		ReportThreshold:     3,
		ReputationThreshold: 100,
		MinStakeAmount:      1_000_000,
		MinChallengeStake:   1_000_000,
		MaxContentHashSize:  64,
		MaxReasonLength:     256,
	}
}

// Validate checks that the parameters describe a usable rule set
func (p Params) Validate() error {
	if p.VotingPeriod == 0 {
		return errors.New("voting period must be positive")
	}
	if p.ReportThreshold == 0 {
		return errors.New("report threshold must be positive")
	}
	if p.MaxContentHashSize <= 0 {
		return errors.New("max content hash size must be positive")
	}
	if p.MaxReasonLength < 0 {
		return errors.New("max reason length must not be negative")
	}
	return nil
}

// saturatingAdd returns a+b, or the maximum uint64 on overflow
func saturatingAdd(a, b uint64) uint64 {
	if a+b < a {
		return ^uint64(0)
	}
	return a + b
}
