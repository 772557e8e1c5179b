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

package database

import (
	"fmt"

	"github.com/openconsent/consent/database/models"
	"gorm.io/gorm"
)

// GetConsent returns the consent record for a subject/privilege pair, or
// nil when no record exists. Absence is not an error.
func (d *Database) GetConsent(
	subject Subject,
	privilegeName string,
	txn *Txn,
) (*models.Consent, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Commit() //nolint:errcheck
	}
	ref := subject.SubjectRef()
	return d.metadata.GetConsent(ref.Type, ref.ID, privilegeName, txn.Metadata())
}

// ConsentsForSubject returns all consent records for a subject, granted or
// revoked, ordered by privilege name
func (d *Database) ConsentsForSubject(
	subject Subject,
	txn *Txn,
) ([]models.Consent, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Commit() //nolint:errcheck
	}
	ref := subject.SubjectRef()
	return d.metadata.GetConsentsForGranter(ref.Type, ref.ID, txn.Metadata())
}

// Granted returns all currently granted consents, optionally scoped to one
// subject (nil for all subjects)
func (d *Database) Granted(
	subject Subject,
	txn *Txn,
) ([]models.Consent, error) {
	return d.consentsByState(false, subject, txn)
}

// Revoked returns all revoked consents, optionally scoped to one subject
// (nil for all subjects)
func (d *Database) Revoked(
	subject Subject,
	txn *Txn,
) ([]models.Consent, error) {
	return d.consentsByState(true, subject, txn)
}

func (d *Database) consentsByState(
	revoked bool,
	subject Subject,
	txn *Txn,
) ([]models.Consent, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Commit() //nolint:errcheck
	}
	var ref SubjectRef
	if subject != nil {
		ref = subject.SubjectRef()
	}
	return d.metadata.GetConsentsByState(
		revoked,
		ref.Type,
		ref.ID,
		txn.Metadata(),
	)
}

// GrantConsent grants each named privilege for the subject. The unique
// ledger record per subject/privilege pair is created on first grant and
// reset to the granted state otherwise, so repeated grants are idempotent.
// Each privilege is an independent upsert; there is no atomicity guarantee
// across the whole set.
func (d *Database) GrantConsent(
	subject Subject,
	privilegeNames []string,
	txn *Txn,
) error {
	return d.GrantConsentNotes(subject, privilegeNames, "", txn)
}

// GrantConsentNotes is GrantConsent with audit notes recorded on any
// freshly created ledger records
func (d *Database) GrantConsentNotes(
	subject Subject,
	privilegeNames []string,
	notes string,
	txn *Txn,
) error {
	ref := subject.SubjectRef()
	var metadataTxn *gorm.DB
	if txn != nil {
		metadataTxn = txn.Metadata()
	}
	for _, name := range privilegeNames {
		// With a nil txn each upsert runs in its own storage
		// transaction, which keeps the find-or-create sequence atomic
		// per privilege
		_, err := d.metadata.UpsertConsentGrant(
			ref.Type,
			ref.ID,
			name,
			notes,
			metadataTxn,
		)
		if err != nil {
			return fmt.Errorf(
				"failed to grant consent for %q: %w",
				name,
				err,
			)
		}
		d.metrics.grants.Inc()
		d.logger.Debug(
			"granted consent",
			"component", "database",
			"subject", ref.String(),
			"privilege", name,
		)
	}
	return nil
}

// RevokeConsent revokes the named privileges for the subject in bulk.
// Privileges the subject never granted are skipped; no record is created
// for them. Already-revoked records keep their original revocation time.
func (d *Database) RevokeConsent(
	subject Subject,
	privilegeNames []string,
	txn *Txn,
) error {
	ref := subject.SubjectRef()
	var metadataTxn *gorm.DB
	if txn != nil {
		metadataTxn = txn.Metadata()
	}
	revoked, err := d.metadata.RevokeConsents(
		ref.Type,
		ref.ID,
		privilegeNames,
		metadataTxn,
	)
	if err != nil {
		return fmt.Errorf("failed to revoke consent: %w", err)
	}
	d.metrics.revocations.Add(float64(revoked))
	d.logger.Debug(
		"revoked consents",
		"component", "database",
		"subject", ref.String(),
		"revoked", revoked,
	)
	return nil
}
