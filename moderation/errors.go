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

import "fmt"

// Error is a moderation rule violation. The set of values is closed and each
// carries a stable numeric code that clients may rely on
type Error struct {
	Name string
	Code uint
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (u%d)", e.Name, e.Code)
}

var (
	ErrNotAuthorized          = &Error{Code: 1, Name: "not-authorized"}
	ErrAlreadyVoted           = &Error{Code: 2, Name: "already-voted"}
	ErrContentNotFound        = &Error{Code: 3, Name: "content-not-found"}
	ErrInsufficientReputation = &Error{Code: 4, Name: "insufficient-reputation"}
	ErrInvalidVoteTarget      = &Error{Code: 5, Name: "invalid-vote-target"}
	ErrAlreadyStaked          = &Error{Code: 6, Name: "already-staked"}
	ErrNoStakeFound           = &Error{Code: 7, Name: "no-stake-found"}
	ErrCooldownActive         = &Error{Code: 8, Name: "cooldown-active"}
	ErrInvalidReport          = &Error{Code: 9, Name: "invalid-report"}
	ErrStakeBelowMinimum      = &Error{Code: 10, Name: "stake-below-minimum"}
	ErrAlreadyReported        = &Error{Code: 11, Name: "already-reported"}
	ErrChallengeNotFound      = &Error{Code: 12, Name: "challenge-not-found"}
	ErrAlreadyResolved        = &Error{Code: 13, Name: "already-resolved"}
	ErrNoChallengeVotes       = &Error{Code: 14, Name: "no-challenge-votes"}
	ErrInsufficientFunds      = &Error{Code: 15, Name: "insufficient-funds"}
	ErrInvalidInput           = &Error{Code: 16, Name: "invalid-input"}
	ErrAlreadyChallenged      = &Error{Code: 17, Name: "already-challenged"}
)

// Errors lists every moderation error in code order
var Errors = []*Error{
	ErrNotAuthorized,
	ErrAlreadyVoted,
	ErrContentNotFound,
	ErrInsufficientReputation,
	ErrInvalidVoteTarget,
	ErrAlreadyStaked,
	ErrNoStakeFound,
	ErrCooldownActive,
	ErrInvalidReport,
	ErrStakeBelowMinimum,
	ErrAlreadyReported,
	ErrChallengeNotFound,
	ErrAlreadyResolved,
	ErrNoChallengeVotes,
	ErrInsufficientFunds,
	ErrInvalidInput,
	ErrAlreadyChallenged,
}

// ErrorByCode returns the moderation error with the given code, or nil
func ErrorByCode(code uint) *Error {
	for _, e := range Errors {
		if e.Code == code {
			return e
		}
	}
	return nil
}
