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

// ApplyCooldown blocks a principal from submitting content for the cooldown
// period, replacing any existing cooldown. Admin only
func (m *Moderator) ApplyCooldown(
	ctx context.Context,
	caller string,
	principal string,
) error {
	return m.execute(
		ctx,
		"apply-cooldown",
		caller,
		func(txn *database.Txn, op *operation) error {
			if !m.isAdmin(caller) {
				return ErrNotAuthorized
			}
			if principal == "" {
				return ErrInvalidInput
			}
			until := saturatingAdd(op.height, m.params.CooldownPeriod)
			if err := m.db.SetCooldown(principal, until, txn); err != nil {
				return err
			}
			op.set("principal", principal)
			op.set("cooldown-until", until)
			op.emit(
				event.CooldownAppliedEventType,
				event.CooldownAppliedEvent{
					Principal:     principal,
					CooldownUntil: until,
				},
			)
			return nil
		},
	)
}

// GetUserCooldown returns the cooldown record of a principal, or nil. An
// expired cooldown is still returned
func (m *Moderator) GetUserCooldown(principal string) (*models.Cooldown, error) {
	var ret *models.Cooldown
	err := m.view(func(txn *database.Txn) error {
		var err error
		ret, err = m.db.GetCooldown(principal, txn)
		return err
	})
	return ret, err
}
