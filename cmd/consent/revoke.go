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
	"log/slog"
	"os"

	"github.com/openconsent/consent/internal/config"
	"github.com/spf13/cobra"
)

func revokeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "revoke <type>/<id> <privilege> [<privilege> ...]",
		Short: "Revoke a subject's consent to one or more privileges",
		Args:  cobra.MinimumNArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			cfg := config.FromContext(cmd.Context())
			if cfg == nil {
				slog.Error("no config found in context")
				os.Exit(1)
			}
			logger := commonRun()
			subject, err := parseSubject(args[0])
			if err != nil {
				slog.Error(err.Error())
				os.Exit(1)
			}
			db := openDatabase(cfg, logger)
			defer db.Close() //nolint:errcheck
			err = db.RevokeConsent(subject, args[1:], nil)
			if err != nil {
				slog.Error(err.Error())
				os.Exit(1)
			}
		},
	}
}
