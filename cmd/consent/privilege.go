// Copyright 2026 OpenConsent Project
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
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/openconsent/consent/database/models"
	"github.com/openconsent/consent/internal/config"
	"github.com/spf13/cobra"
)

func privilegeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "privilege",
		Short: "Manage the privilege catalog",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help() //nolint:errcheck
		},
	}
	cmd.AddCommand(privilegeListCommand())
	cmd.AddCommand(privilegeSetCommand())
	cmd.AddCommand(privilegeDeleteCommand())
	return cmd
}

func privilegeListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the privilege catalog",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := config.FromContext(cmd.Context())
			if cfg == nil {
				slog.Error("no config found in context")
				os.Exit(1)
			}
			logger := commonRun()
			db := openDatabase(cfg, logger)
			defer db.Close() //nolint:errcheck
			privileges, err := db.GetPrivileges(nil)
			if err != nil {
				slog.Error(err.Error())
				os.Exit(1)
			}
			for _, privilege := range privileges {
				fmt.Printf("%s\t%s\n", privilege.Name, privilege.Description)
			}
		},
	}
}

func privilegeSetCommand() *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:   "set <name>",
		Short: "Create or update a privilege",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg := config.FromContext(cmd.Context())
			if cfg == nil {
				slog.Error("no config found in context")
				os.Exit(1)
			}
			logger := commonRun()
			db := openDatabase(cfg, logger)
			defer db.Close() //nolint:errcheck
			privilege, err := db.SetPrivilege(args[0], description, nil)
			if err != nil {
				slog.Error(err.Error())
				os.Exit(1)
			}
			fmt.Printf("%s\t%s\n", privilege.Name, privilege.Description)
		},
	}
	cmd.Flags().
		StringVar(&description, "description", "", "human-readable privilege description")
	return cmd
}

func privilegeDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a privilege and all consents that reference it",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg := config.FromContext(cmd.Context())
			if cfg == nil {
				slog.Error("no config found in context")
				os.Exit(1)
			}
			logger := commonRun()
			db := openDatabase(cfg, logger)
			defer db.Close() //nolint:errcheck
			if err := db.DeletePrivilege(args[0], nil); err != nil {
				if errors.Is(err, models.ErrPrivilegeNotFound) {
					slog.Error("no such privilege: " + args[0])
				} else {
					slog.Error(err.Error())
				}
				os.Exit(1)
			}
		},
	}
}
