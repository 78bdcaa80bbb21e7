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

import (
	"context"

	"github.com/blinklabs-io/modledger/database"
	"github.com/blinklabs-io/modledger/database/models"
	"github.com/blinklabs-io/modledger/event"
)

// InitializeReputation sets a principal's reputation score outright. Admin only
func (m *Moderator) InitializeReputation(
	ctx context.Context,
	caller string,
	principal string,
	score uint64,
) error {
	return m.execute(
		ctx,
		"initialize-reputation",
		caller,
		func(txn *database.Txn, op *operation) error {
			if !m.isAdmin(caller) {
				return ErrNotAuthorized
			}
			if principal == "" {
				return ErrInvalidInput
			}
			if err := m.db.SetReputation(principal, score, txn); err != nil {
				return err
			}
			op.set("principal", principal)
			op.set("score", score)
			op.emit(
				event.ReputationChangedEventType,
				event.ReputationChangedEvent{Principal: principal, Score: score},
			)
			return nil
		},
	)
}

// GetUserReputation returns the reputation record of a principal, or nil if
// it has none. A missing record means a score of 0
func (m *Moderator) GetUserReputation(principal string) (*models.Reputation, error) {
	var ret *models.Reputation
	err := m.view(func(txn *database.Txn) error {
		var err error
		ret, err = m.db.GetReputation(principal, txn)
		return err
	})
	return ret, err
}
