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
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/blinklabs-io/modledger/internal/version"
)

const maxRequestBodySize = 64 * 1024

// writeJSON writes a JSON response with the given status
// code.
func writeJSON(
	w http.ResponseWriter,
	status int,
	v any,
) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,errchkjson
	json.NewEncoder(w).Encode(v)
}

// writeError writes a transport level error response.
func writeError(
	w http.ResponseWriter,
	status int,
	errStr string,
	message string,
) {
	writeJSON(w, status, ErrorResponse{
		StatusCode: status,
		Error:      errStr,
		Message:    message,
	})
}

func badRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, "Bad Request", message)
}

func notFound(w http.ResponseWriter, message string) {
	writeError(w, http.StatusNotFound, "Not Found", message)
}

// caller returns the principal issuing the request. It writes a 401 and
// returns false when the header is absent.
func caller(w http.ResponseWriter, r *http.Request) (string, bool) {
	principal := strings.TrimSpace(r.Header.Get(PrincipalHeader))
	if principal == "" {
		writeError(
			w,
			http.StatusUnauthorized,
			"Unauthorized",
			errMissingPrincipal.Error(),
		)
		return "", false
	}
	return principal, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		badRequest(w, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func pathContentID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		badRequest(w, "Invalid content id.")
		return 0, false
	}
	return id, true
}

func (a *API) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, RootResponse{
		Name:    "modledger",
		Version: version.GetVersionString(),
	})
}

func (a *API) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		IsHealthy: true,
		Height:    a.node.Height(),
	})
}

func (a *API) handleHeight(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HeightResponse{Height: a.node.Height()})
}

func (a *API) handleParams(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, a.node.Params())
}

// handleJournal handles GET /api/v0/journal and returns committed
// operations in sequence order.
func (a *API) handleJournal(w http.ResponseWriter, r *http.Request) {
	params, err := ParsePagination(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	entries, err := a.node.Journal(params.From, params.Count)
	if err != nil {
		a.writeModerationError(w, err)
		return
	}
	resp := make([]JournalEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, JournalEntryResponse{
			Sequence:  e.Sequence,
			Height:    e.Height,
			Operation: e.Operation,
			Principal: e.Principal,
			Detail:    e.Detail,
		})
	}
	if len(entries) > 0 {
		setNextHeader(w, params, len(entries), entries[len(entries)-1].Sequence)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *API) handleSubmitContent(w http.ResponseWriter, r *http.Request) {
	principal, ok := caller(w, r)
	if !ok {
		return
	}
	var req SubmitContentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	hash, err := hex.DecodeString(req.ContentHash)
	if err != nil {
		badRequest(w, "content_hash must be hex encoded.")
		return
	}
	id, err := a.node.SubmitContent(r.Context(), principal, hash)
	if err != nil {
		a.writeModerationError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, SubmitContentResponse{ID: id})
}

func (a *API) handleGetContent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathContentID(w, r)
	if !ok {
		return
	}
	content, err := a.node.GetContent(id)
	if err != nil {
		a.writeModerationError(w, err)
		return
	}
	if content == nil {
		notFound(w, "Content not found.")
		return
	}
	writeJSON(w, http.StatusOK, NewContentResponse(content))
}

func (a *API) handleFinalizeModeration(w http.ResponseWriter, r *http.Request) {
	principal, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathContentID(w, r)
	if !ok {
		return
	}
	status, err := a.node.FinalizeModeration(r.Context(), principal, id)
	if err != nil {
		a.writeModerationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, StatusResponse{Status: string(status)})
}

func (a *API) handleVote(w http.ResponseWriter, r *http.Request) {
	principal, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathContentID(w, r)
	if !ok {
		return
	}
	var req VoteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := a.node.Vote(r.Context(), principal, id, req.Approve); err != nil {
		a.writeModerationError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleGetVote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathContentID(w, r)
	if !ok {
		return
	}
	vote, err := a.node.GetVote(id, r.PathValue("voter"))
	if err != nil {
		a.writeModerationError(w, err)
		return
	}
	if vote == nil {
		notFound(w, "Vote not found.")
		return
	}
	writeJSON(w, http.StatusOK, VoteResponse{
		ContentID: vote.ContentID,
		Voter:     vote.Voter,
		Approve:   vote.Approve,
		Height:    vote.Height,
	})
}

func (a *API) handleReport(w http.ResponseWriter, r *http.Request) {
	principal, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathContentID(w, r)
	if !ok {
		return
	}
	var req ReportRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := a.node.ReportContent(r.Context(), principal, id, req.Reason); err != nil {
		a.writeModerationError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleGetReports(w http.ResponseWriter, r *http.Request) {
	id, ok := pathContentID(w, r)
	if !ok {
		return
	}
	report, err := a.node.GetContentReports(id)
	if err != nil {
		a.writeModerationError(w, err)
		return
	}
	markers, err := a.node.GetReportMarkers(id)
	if err != nil {
		a.writeModerationError(w, err)
		return
	}
	resp := ReportsResponse{
		ContentID: id,
		Reports:   make([]ReportMarkerResponse, 0, len(markers)),
	}
	if report != nil {
		resp.ReportCount = report.ReportCount
		resp.Resolved = report.Resolved
	}
	for _, m := range markers {
		resp.Reports = append(resp.Reports, ReportMarkerResponse{
			Reporter: m.Reporter,
			Reason:   m.Reason,
			Height:   m.Height,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *API) handleChallenge(w http.ResponseWriter, r *http.Request) {
	principal, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathContentID(w, r)
	if !ok {
		return
	}
	var req ChallengeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	err := a.node.ChallengeModeration(
		r.Context(),
		principal,
		id,
		req.StakeAmount,
		req.Reason,
	)
	if err != nil {
		a.writeModerationError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (a *API) handleGetChallenge(w http.ResponseWriter, r *http.Request) {
	id, ok := pathContentID(w, r)
	if !ok {
		return
	}
	challenge, err := a.node.GetContentChallenge(id, r.PathValue("challenger"))
	if err != nil {
		a.writeModerationError(w, err)
		return
	}
	if challenge == nil {
		notFound(w, "Challenge not found.")
		return
	}
	writeJSON(w, http.StatusOK, NewChallengeResponse(challenge))
}

func (a *API) handleChallengeVote(w http.ResponseWriter, r *http.Request) {
	principal, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathContentID(w, r)
	if !ok {
		return
	}
	var req ChallengeVoteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	err := a.node.VoteOnChallenge(
		r.Context(),
		principal,
		id,
		r.PathValue("challenger"),
		req.Agree,
	)
	if err != nil {
		a.writeModerationError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleFinalizeChallenge(w http.ResponseWriter, r *http.Request) {
	principal, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathContentID(w, r)
	if !ok {
		return
	}
	successful, err := a.node.FinalizeChallenge(
		r.Context(),
		principal,
		id,
		r.PathValue("challenger"),
	)
	if err != nil {
		a.writeModerationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ChallengeResultResponse{Successful: successful})
}

// handleGetReputation reports a score of 0 for unknown principals
func (a *API) handleGetReputation(w http.ResponseWriter, r *http.Request) {
	principal := r.PathValue("principal")
	rep, err := a.node.GetUserReputation(principal)
	if err != nil {
		a.writeModerationError(w, err)
		return
	}
	resp := ReputationResponse{Principal: principal}
	if rep != nil {
		resp.Score = uint64(rep.Score)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *API) handleInitializeReputation(w http.ResponseWriter, r *http.Request) {
	principal, ok := caller(w, r)
	if !ok {
		return
	}
	var req ReputationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	target := r.PathValue("principal")
	err := a.node.InitializeReputation(r.Context(), principal, target, req.Score)
	if err != nil {
		a.writeModerationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ReputationResponse{
		Principal: target,
		Score:     req.Score,
	})
}

func (a *API) handleGetCooldown(w http.ResponseWriter, r *http.Request) {
	principal := r.PathValue("principal")
	cooldown, err := a.node.GetUserCooldown(principal)
	if err != nil {
		a.writeModerationError(w, err)
		return
	}
	resp := CooldownResponse{Principal: principal}
	if cooldown != nil {
		resp.CooldownUntil = cooldown.CooldownUntil
		resp.Active = a.node.Height() < cooldown.CooldownUntil
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *API) handleApplyCooldown(w http.ResponseWriter, r *http.Request) {
	principal, ok := caller(w, r)
	if !ok {
		return
	}
	err := a.node.ApplyCooldown(r.Context(), principal, r.PathValue("principal"))
	if err != nil {
		a.writeModerationError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleStake(w http.ResponseWriter, r *http.Request) {
	principal, ok := caller(w, r)
	if !ok {
		return
	}
	var req StakeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := a.node.StakeTokens(r.Context(), principal, req.Amount); err != nil {
		a.writeModerationError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (a *API) handleUnstake(w http.ResponseWriter, r *http.Request) {
	principal, ok := caller(w, r)
	if !ok {
		return
	}
	released, err := a.node.UnstakeTokens(r.Context(), principal)
	if err != nil {
		a.writeModerationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, UnstakeResponse{Released: released})
}

func (a *API) handleGetStake(w http.ResponseWriter, r *http.Request) {
	stake, err := a.node.GetModeratorStake(r.PathValue("principal"))
	if err != nil {
		a.writeModerationError(w, err)
		return
	}
	if stake == nil {
		notFound(w, "Stake not found.")
		return
	}
	writeJSON(w, http.StatusOK, StakeResponse{
		Principal: stake.Principal,
		Amount:    uint64(stake.Amount),
		StakedAt:  stake.StakedAt,
		Active:    stake.Active,
	})
}

func (a *API) handleGetBalance(w http.ResponseWriter, r *http.Request) {
	principal := r.PathValue("principal")
	balance, err := a.node.Balance(principal)
	if err != nil {
		a.writeModerationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, BalanceResponse{
		Principal: principal,
		Balance:   balance,
	})
}

func (a *API) handleDeposit(w http.ResponseWriter, r *http.Request) {
	principal, ok := caller(w, r)
	if !ok {
		return
	}
	var req DepositRequest
	if !decodeBody(w, r, &req) {
		return
	}
	target := r.PathValue("principal")
	balance, err := a.node.Deposit(r.Context(), principal, target, req.Amount)
	if err != nil {
		a.writeModerationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, BalanceResponse{
		Principal: target,
		Balance:   balance,
	})
}
