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

import "github.com/blinklabs-io/modledger/database/types"

// Reputation holds the voting reputation score for a principal
type Reputation struct {
	Principal string       `gorm:"primaryKey;size:128" json:"principal"`
	Score     types.Uint64 `gorm:"not null"            json:"score"`
}

func (Reputation) TableName() string {
	return "reputation"
}

// Cooldown holds the height until which a principal may not submit content
type Cooldown struct {
	Principal     string `gorm:"primaryKey;size:128" json:"principal"`
	CooldownUntil uint64 `gorm:"not null"            json:"cooldownUntil"`
}

func (Cooldown) TableName() string {
	return "cooldown"
}
