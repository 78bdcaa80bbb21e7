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

package node

import (
	"testing"

	"github.com/blinklabs-io/modledger/internal/config"
	"github.com/blinklabs-io/modledger/moderation"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Admin:           "admin",
		BindAddr:        "127.0.0.1",
		BlockInterval:   "1s",
		ShutdownTimeout: "5s",
		Moderation:      moderation.DefaultParams(),
	}
}

func TestNewNode(t *testing.T) {
	n, err := newNode(testConfig(), nil, prometheus.NewRegistry())
	require.NoError(t, err)
	require.NotNil(t, n)
	require.NoError(t, n.Stop())
}

func TestNewNodeRejectsBadInterval(t *testing.T) {
	cfg := testConfig()
	cfg.BlockInterval = "never"
	_, err := newNode(cfg, nil, prometheus.NewRegistry())
	require.Error(t, err)
}

func TestNewNodeRequiresAdmin(t *testing.T) {
	cfg := testConfig()
	cfg.Admin = ""
	_, err := newNode(cfg, nil, prometheus.NewRegistry())
	require.Error(t, err)
}
