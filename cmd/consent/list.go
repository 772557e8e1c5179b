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
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/openconsent/consent/database"
	"github.com/openconsent/consent/database/models"
	"github.com/openconsent/consent/internal/config"
	"github.com/spf13/cobra"
)

func listCommand() *cobra.Command {
	var revoked bool
	cmd := &cobra.Command{
		Use:   "list [<type>/<id>]",
		Short: "List consents, optionally scoped to one subject",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg := config.FromContext(cmd.Context())
			if cfg == nil {
				slog.Error("no config found in context")
				os.Exit(1)
			}
			logger := commonRun()
			var subject database.Subject
			if len(args) > 0 {
				ref, err := parseSubject(args[0])
				if err != nil {
					slog.Error(err.Error())
					os.Exit(1)
				}
				subject = ref
			}
			db := openDatabase(cfg, logger)
			defer db.Close() //nolint:errcheck
			var consents []models.Consent
			var err error
			if revoked {
				consents, err = db.Revoked(subject, nil)
			} else {
				consents, err = db.Granted(subject, nil)
			}
			if err != nil {
				slog.Error(err.Error())
				os.Exit(1)
			}
			for _, consent := range consents {
				when := consent.GrantedOn
				if revoked && consent.RevokedOn != nil {
					when = *consent.RevokedOn
				}
				fmt.Printf(
					"%s/%s\t%s\t%s\n",
					consent.GranterType,
					consent.GranterID,
					consent.Privilege.Name,
					when.Format(time.RFC3339),
				)
			}
		},
	}
	cmd.Flags().
		BoolVar(&revoked, "revoked", false, "list revoked consents instead of granted ones")
	return cmd
}
