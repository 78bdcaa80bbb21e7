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

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/blinklabs-io/modledger/api"
	"github.com/blinklabs-io/modledger/database"
	"github.com/blinklabs-io/modledger/internal/config"
	"github.com/spf13/cobra"
)

// openDatabase opens the configured database for offline inspection. The
// node must not be running against the same path.
func openDatabase(cmd *cobra.Command) (*database.Database, error) {
	cfg := config.FromContext(cmd.Context())
	if cfg == nil {
		return nil, errors.New("no config found in context")
	}
	// Logs go to stderr so stdout stays valid JSON
	logLevel := slog.LevelWarn
	if globalFlags.debug {
		logLevel = slog.LevelDebug
	}
	db, err := database.New(&database.Config{
		DataDir: cfg.DatabasePath,
		Logger: slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}),
		),
	})
	if err != nil {
		if db != nil {
			db.Close()
		}
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return db, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// inspectCommand builds a read-only subcommand that opens the database and
// hands it to fn
func inspectCommand(
	use string,
	short string,
	args cobra.PositionalArgs,
	fn func(db *database.Database, args []string) error,
) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase(cmd)
			if err != nil {
				return err
			}
			defer db.Close()
			return fn(db, args)
		},
	}
}

func contentCommand() *cobra.Command {
	return inspectCommand(
		"content <id>",
		"Show a content record",
		cobra.ExactArgs(1),
		func(db *database.Database, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid content id: %w", err)
			}
			content, err := db.GetContent(id, nil)
			if err != nil {
				return err
			}
			if content == nil {
				return fmt.Errorf("content %d not found", id)
			}
			return printJSON(api.NewContentResponse(content))
		},
	)
}

func reputationCommand() *cobra.Command {
	return inspectCommand(
		"reputation <principal>",
		"Show the reputation score and cooldown of a principal",
		cobra.ExactArgs(1),
		func(db *database.Database, args []string) error {
			principal := args[0]
			rep, err := db.GetReputation(principal, nil)
			if err != nil {
				return err
			}
			cooldown, err := db.GetCooldown(principal, nil)
			if err != nil {
				return err
			}
			height, err := db.GetChainHeight(nil)
			if err != nil {
				return err
			}
			resp := struct {
				api.ReputationResponse
				Cooldown api.CooldownResponse `json:"cooldown"`
			}{
				ReputationResponse: api.ReputationResponse{Principal: principal},
				Cooldown:           api.CooldownResponse{Principal: principal},
			}
			if rep != nil {
				resp.Score = uint64(rep.Score)
			}
			if cooldown != nil {
				resp.Cooldown.CooldownUntil = cooldown.CooldownUntil
				resp.Cooldown.Active = height < cooldown.CooldownUntil
			}
			return printJSON(resp)
		},
	)
}

func stakeCommand() *cobra.Command {
	return inspectCommand(
		"stake <principal>",
		"Show the moderator stake and balance of a principal",
		cobra.ExactArgs(1),
		func(db *database.Database, args []string) error {
			principal := args[0]
			stake, err := db.GetStake(principal, nil)
			if err != nil {
				return err
			}
			balance, err := db.GetBalance(principal, nil)
			if err != nil {
				return err
			}
			resp := struct {
				Stake   *api.StakeResponse `json:"stake"`
				Balance uint64             `json:"balance"`
			}{
				Balance: balance,
			}
			if stake != nil {
				resp.Stake = &api.StakeResponse{
					Principal: stake.Principal,
					Amount:    uint64(stake.Amount),
					StakedAt:  stake.StakedAt,
					Active:    stake.Active,
				}
			}
			return printJSON(resp)
		},
	)
}

func journalCommand() *cobra.Command {
	var from uint64
	var limit int
	cmd := inspectCommand(
		"journal",
		"List committed operations",
		cobra.NoArgs,
		func(db *database.Database, _ []string) error {
			entries, err := db.Journal(from, limit, nil)
			if err != nil {
				return err
			}
			return printJSON(entries)
		},
	)
	cmd.Flags().Uint64Var(&from, "from", 0, "first sequence number to show")
	cmd.Flags().IntVar(&limit, "limit", 100, "maximum entries to show, 0 for all")
	return cmd
}
