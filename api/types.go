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

package api

import (
	"encoding/hex"

	"github.com/blinklabs-io/modledger/database/models"
)

// RootResponse is returned by GET /.
type RootResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	IsHealthy bool   `json:"is_healthy"`
	Height    uint64 `json:"height"`
}

// ErrorResponse is the body of every non-2xx response. Code carries the
// moderation error code, or 0 for transport level failures.
type ErrorResponse struct {
	StatusCode int    `json:"status_code"`
	Code       uint   `json:"code"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}

type HeightResponse struct {
	Height uint64 `json:"height"`
}

type SubmitContentRequest struct {
	ContentHash string `json:"content_hash"`
}

type SubmitContentResponse struct {
	ID uint64 `json:"id"`
}

// ContentResponse is a content record with its fingerprint hex encoded.
type ContentResponse struct {
	ID           uint64 `json:"id"`
	Author       string `json:"author"`
	ContentHash  string `json:"content_hash"`
	Status       string `json:"status"`
	VotesFor     uint64 `json:"votes_for"`
	VotesAgainst uint64 `json:"votes_against"`
	SubmittedAt  uint64 `json:"submitted_at"`
}

// NewContentResponse converts a stored content record
func NewContentResponse(c *models.Content) ContentResponse {
	return ContentResponse{
		ID:           c.ID,
		Author:       c.Author,
		ContentHash:  hex.EncodeToString(c.ContentHash),
		Status:       string(c.Status),
		VotesFor:     c.VotesFor,
		VotesAgainst: c.VotesAgainst,
		SubmittedAt:  c.SubmittedAt,
	}
}

type StatusResponse struct {
	Status string `json:"status"`
}

type VoteRequest struct {
	Approve bool `json:"approve"`
}

type VoteResponse struct {
	ContentID uint64 `json:"content_id"`
	Voter     string `json:"voter"`
	Approve   bool   `json:"approve"`
	Height    uint64 `json:"height"`
}

type ReputationRequest struct {
	Score uint64 `json:"score"`
}

type ReputationResponse struct {
	Principal string `json:"principal"`
	Score     uint64 `json:"score"`
}

type CooldownResponse struct {
	Principal     string `json:"principal"`
	CooldownUntil uint64 `json:"cooldown_until"`
	Active        bool   `json:"active"`
}

type StakeRequest struct {
	Amount uint64 `json:"amount"`
}

type StakeResponse struct {
	Principal string `json:"principal"`
	Amount    uint64 `json:"amount"`
	StakedAt  uint64 `json:"staked_at"`
	Active    bool   `json:"active"`
}

type UnstakeResponse struct {
	Released uint64 `json:"released"`
}

type ReportRequest struct {
	Reason string `json:"reason"`
}

type ReportMarkerResponse struct {
	Reporter string `json:"reporter"`
	Reason   string `json:"reason"`
	Height   uint64 `json:"height"`
}

type ReportsResponse struct {
	ContentID   uint64                 `json:"content_id"`
	ReportCount uint64                 `json:"report_count"`
	Resolved    bool                   `json:"resolved"`
	Reports     []ReportMarkerResponse `json:"reports"`
}

type ChallengeRequest struct {
	StakeAmount uint64 `json:"stake_amount"`
	Reason      string `json:"reason"`
}

type ChallengeVoteRequest struct {
	Agree bool `json:"agree"`
}

type ChallengeResponse struct {
	ContentID      uint64 `json:"content_id"`
	Challenger     string `json:"challenger"`
	DisputedStatus string `json:"disputed_status"`
	StakeAmount    uint64 `json:"stake_amount"`
	Reason         string `json:"reason"`
	OpenedAt       uint64 `json:"opened_at"`
	UpholdVotes    uint64 `json:"uphold_votes"`
	ReverseVotes   uint64 `json:"reverse_votes"`
	Resolved       bool   `json:"resolved"`
	Successful     bool   `json:"successful"`
}

func NewChallengeResponse(c *models.Challenge) ChallengeResponse {
	return ChallengeResponse{
		ContentID:      c.ContentID,
		Challenger:     c.Challenger,
		DisputedStatus: string(c.DisputedStatus),
		StakeAmount:    uint64(c.StakeAmount),
		Reason:         c.Reason,
		OpenedAt:       c.OpenedAt,
		UpholdVotes:    c.UpholdVotes,
		ReverseVotes:   c.ReverseVotes,
		Resolved:       c.Resolved,
		Successful:     c.Successful,
	}
}

type ChallengeResultResponse struct {
	Successful bool `json:"successful"`
}

type DepositRequest struct {
	Amount uint64 `json:"amount"`
}

type BalanceResponse struct {
	Principal string `json:"principal"`
	Balance   uint64 `json:"balance"`
}

type JournalEntryResponse struct {
	Sequence  uint64            `json:"sequence"`
	Height    uint64            `json:"height"`
	Operation string            `json:"operation"`
	Principal string            `json:"principal"`
	Detail    map[string]string `json:"detail,omitempty"`
}
