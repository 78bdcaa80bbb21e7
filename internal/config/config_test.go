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

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/blinklabs-io/modledger/moderation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetGlobalConfig() {
	globalConfig = defaultConfig()
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), "modledger.yaml")
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0o644))
	return tmpFile
}

func TestLoad_CompareFullStruct(t *testing.T) {
	resetGlobalConfig()
	tmpFile := writeConfigFile(t, `
databasePath: "/var/lib/modledger"
bindAddr: "127.0.0.1"
admin: "admin"
penaltyPool: "pool"
trustedFinalizers:
  - "f1"
  - "f2"
blockInterval: "1m"
shutdownTimeout: "5s"
apiPort: 9000
apiRateLimit: 20
apiRateBurst: 40
metricsPort: 9100
tracing: true
moderation:
  votingPeriod: 10
  reportThreshold: 5
`)
	expectedParams := moderation.DefaultParams()
	expectedParams.VotingPeriod = 10
	expectedParams.ReportThreshold = 5
	expected := &Config{
		DatabasePath:      "/var/lib/modledger",
		BindAddr:          "127.0.0.1",
		Admin:             "admin",
		PenaltyPool:       "pool",
		TrustedFinalizers: []string{"f1", "f2"},
		BlockInterval:     "1m",
		ShutdownTimeout:   "5s",
		ApiPort:           9000,
		ApiRateLimit:      20,
		ApiRateBurst:      40,
		MetricsPort:       9100,
		Tracing:           true,
		Moderation:        expectedParams,
	}

	actual, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	assert.Equal(t, expected, actual)
	assert.Same(t, actual, GetConfig())
}

func TestLoad_ConfigSection(t *testing.T) {
	resetGlobalConfig()
	tmpFile := writeConfigFile(t, `
config:
  admin: "root"
  apiPort: 8181
`)
	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	assert.Equal(t, "root", cfg.Admin)
	assert.Equal(t, uint(8181), cfg.ApiPort)
	// Unset values keep their defaults
	assert.Equal(t, uint(12799), cfg.MetricsPort)
	assert.Equal(t, "127.0.0.1", cfg.BindAddr)
	assert.Equal(t, moderation.DefaultParams(), cfg.Moderation)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	resetGlobalConfig()
	tmpFile := writeConfigFile(t, `
admin: "admin"
apiPort: 9000
`)
	t.Setenv("MODLEDGER_ADMIN", "env-admin")
	t.Setenv("MODLEDGER_API_PORT", "9999")
	t.Setenv("MODLEDGER_TRUSTED_FINALIZERS", "a,b")
	t.Setenv("MODLEDGER_MODERATION_VOTING_PERIOD", "42")

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	assert.Equal(t, "env-admin", cfg.Admin)
	assert.Equal(t, uint(9999), cfg.ApiPort)
	assert.Equal(t, []string{"a", "b"}, cfg.TrustedFinalizers)
	assert.Equal(t, uint64(42), cfg.Moderation.VotingPeriod)
}

func TestLoad_RequiresAdmin(t *testing.T) {
	resetGlobalConfig()
	tmpFile := writeConfigFile(t, `apiPort: 9000`)
	_, err := LoadConfig(tmpFile)
	require.Error(t, err)
}

func TestLoad_InvalidDuration(t *testing.T) {
	resetGlobalConfig()
	tmpFile := writeConfigFile(t, `
admin: "admin"
blockInterval: "soon"
`)
	_, err := LoadConfig(tmpFile)
	require.Error(t, err)
}

func TestLoad_InvalidModerationParams(t *testing.T) {
	resetGlobalConfig()
	tmpFile := writeConfigFile(t, `
admin: "admin"
moderation:
  votingPeriod: 0
`)
	_, err := LoadConfig(tmpFile)
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	resetGlobalConfig()
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestDurations(t *testing.T) {
	cfg := defaultConfig()
	interval, err := cfg.BlockIntervalDuration()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, interval)
	timeout, err := cfg.ShutdownTimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, timeout)

	cfg.ShutdownTimeout = "-1s"
	_, err = cfg.ShutdownTimeoutDuration()
	require.Error(t, err)
}

func TestContext(t *testing.T) {
	assert.Nil(t, FromContext(context.Background()))
	cfg := defaultConfig()
	ctx := WithContext(context.Background(), cfg)
	assert.Same(t, cfg, FromContext(ctx))
}
