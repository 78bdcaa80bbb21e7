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

package modledger

import (
	"testing"
	"time"

	"github.com/blinklabs-io/modledger/moderation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigOptions(t *testing.T) {
	params := moderation.DefaultParams()
	params.VotingPeriod = 10
	cfg := NewConfig(
		WithAdmin("admin"),
		WithTrustedFinalizers("f1", "f2"),
		WithPenaltyPool("pool"),
		WithParams(params),
		WithAPIListenAddress(":9000"),
		WithAPIRateLimit(5, 10),
		WithBlockInterval(time.Second),
		WithShutdownTimeout(time.Minute),
	)
	assert.NotNil(t, cfg.logger)
	assert.Equal(t, "admin", cfg.admin)
	assert.Equal(t, []string{"f1", "f2"}, cfg.trustedFinalizers)
	assert.Equal(t, "pool", cfg.penaltyPool)
	require.NotNil(t, cfg.params)
	assert.Equal(t, uint64(10), cfg.params.VotingPeriod)
	assert.Equal(t, ":9000", cfg.apiListenAddress)
	assert.InDelta(t, 5.0, cfg.apiRateLimit, 0)
	assert.Equal(t, 10, cfg.apiRateBurst)
	assert.Equal(t, time.Second, cfg.blockInterval)
	assert.Equal(t, time.Minute, cfg.shutdownTimeout)
}

func TestNewRequiresAdmin(t *testing.T) {
	_, err := New(NewConfig())
	require.Error(t, err)
}

func TestNewRejectsInvalidParams(t *testing.T) {
	params := moderation.DefaultParams()
	params.MaxContentHashSize = 0
	_, err := New(NewConfig(WithAdmin("admin"), WithParams(params)))
	require.Error(t, err)
}

func TestNewRejectsNegativeRateLimit(t *testing.T) {
	_, err := New(NewConfig(WithAdmin("admin"), WithAPIRateLimit(-1, 1)))
	require.Error(t, err)
}
