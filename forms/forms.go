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

// Package forms holds the input surfaces a UI layer submits to the consent
// ledger: privilege catalog edits and batched consent checkbox choices.
// Forms validate synchronously and apply through the database manager.
package forms

import (
	"fmt"
	"strings"

	"github.com/openconsent/consent/database"
	"github.com/openconsent/consent/database/models"
)

// ValidationError describes a malformed form field
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// PrivilegeForm creates or edits a privilege catalog entry, optionally
// granting the privilege to a set of subjects in the same submission
type PrivilegeForm struct {
	Name        string
	Description string
	Subjects    []database.SubjectRef
}

// Validate checks the form fields without touching storage
func (f *PrivilegeForm) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return ValidationError{Field: "name", Message: "must not be empty"}
	}
	for _, subject := range f.Subjects {
		if subject.Type == "" || subject.ID == "" {
			return ValidationError{
				Field:   "subjects",
				Message: "subject references need both a type and an id",
			}
		}
	}
	return nil
}

// Save validates the form, upserts the privilege, and grants it to any
// selected subjects
func (f *PrivilegeForm) Save(
	db *database.Database,
) (*models.Privilege, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	privilege, err := db.SetPrivilege(
		strings.TrimSpace(f.Name),
		f.Description,
		nil,
	)
	if err != nil {
		return nil, err
	}
	for _, subject := range f.Subjects {
		if err := db.GrantConsent(subject, []string{privilege.Name}, nil); err != nil {
			return nil, err
		}
	}
	return privilege, nil
}

// ConsentForm submits a subject's consent choices in one batch. Selected
// holds the checked privilege names; every catalog privilege left
// unchecked that the subject previously granted is revoked.
type ConsentForm struct {
	Subject  database.SubjectRef
	Selected []string
	// Notes is recorded on freshly created consent records, typically
	// the text that was used to ask for consent
	Notes string
}

// Validate checks the submission against the privilege catalog. Selected
// names that are not in the catalog are rejected, mirroring a checkbox
// form where only known privileges can be checked.
func (f *ConsentForm) Validate(db *database.Database) error {
	if f.Subject.Type == "" || f.Subject.ID == "" {
		return ValidationError{
			Field:   "subject",
			Message: "subject reference needs both a type and an id",
		}
	}
	privileges, err := db.GetPrivileges(nil)
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(privileges))
	for _, privilege := range privileges {
		known[privilege.Name] = true
	}
	for _, name := range f.Selected {
		if !known[name] {
			return ValidationError{
				Field:   "consents",
				Message: fmt.Sprintf("unknown privilege %q", name),
			}
		}
	}
	return nil
}

// Save validates the form, grants the selected privileges, and revokes
// any previously granted privileges that were left unchecked
func (f *ConsentForm) Save(db *database.Database) error {
	if err := f.Validate(db); err != nil {
		return err
	}
	if err := db.GrantConsentNotes(f.Subject, f.Selected, f.Notes, nil); err != nil {
		return err
	}
	selected := make(map[string]bool, len(f.Selected))
	for _, name := range f.Selected {
		selected[name] = true
	}
	granted, err := db.Granted(f.Subject, nil)
	if err != nil {
		return err
	}
	unchecked := []string{}
	for _, consent := range granted {
		if consent.Privilege != nil && !selected[consent.Privilege.Name] {
			unchecked = append(unchecked, consent.Privilege.Name)
		}
	}
	if len(unchecked) == 0 {
		return nil
	}
	return db.RevokeConsent(f.Subject, unchecked, nil)
}
