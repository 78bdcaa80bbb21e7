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
	"errors"
	"net/http"

	"github.com/blinklabs-io/modledger/moderation"
)

var errMissingPrincipal = errors.New("missing " + PrincipalHeader + " header")

// statusForError maps a moderation error onto an HTTP status
func statusForError(modErr *moderation.Error) int {
	switch modErr {
	case moderation.ErrNotAuthorized:
		return http.StatusForbidden
	case moderation.ErrContentNotFound,
		moderation.ErrChallengeNotFound,
		moderation.ErrNoStakeFound:
		return http.StatusNotFound
	case moderation.ErrAlreadyVoted,
		moderation.ErrAlreadyStaked,
		moderation.ErrAlreadyReported,
		moderation.ErrAlreadyResolved,
		moderation.ErrAlreadyChallenged:
		return http.StatusConflict
	case moderation.ErrInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusUnprocessableEntity
	}
}

// writeModerationError writes err as an API error. Moderation rule
// violations keep their code, anything else is reported as an internal
// error without leaking details.
func (a *API) writeModerationError(
	w http.ResponseWriter,
	err error,
) {
	var modErr *moderation.Error
	if errors.As(err, &modErr) {
		writeJSON(w, statusForError(modErr), ErrorResponse{
			StatusCode: statusForError(modErr),
			Code:       modErr.Code,
			Error:      modErr.Name,
			Message:    modErr.Error(),
		})
		return
	}
	a.logger.Error("request failed", "error", err)
	writeError(
		w,
		http.StatusInternalServerError,
		"Internal Server Error",
		"An unexpected response was received from the backend.",
	)
}
