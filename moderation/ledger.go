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

import "github.com/blinklabs-io/modledger/database"

// Ledger moves token balances for stakes and challenge bonds. Calls receive
// the operation's transaction so balance changes commit or roll back with the
// rest of the operation. Debit must fail with an error wrapping
// ErrInsufficientFunds when the balance is too low
type Ledger interface {
	Debit(txn *database.Txn, principal string, amount uint64) error
	Credit(txn *database.Txn, principal string, amount uint64) error
	Balance(txn *database.Txn, principal string) (uint64, error)
}
