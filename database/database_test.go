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

package database_test

import (
	"errors"
	"testing"
	"time"

	"github.com/openconsent/consent/database"
	"github.com/openconsent/consent/database/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDatabase(t *testing.T) *database.Database {
	t.Helper()
	db, err := database.New(&database.Config{
		Logger:       nil,
		PromRegistry: prometheus.NewRegistry(),
		DataDir:      "",
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close() //nolint:errcheck
	})
	return db
}

func mustSetPrivileges(t *testing.T, db *database.Database, names ...string) {
	t.Helper()
	for _, name := range names {
		_, err := db.SetPrivilege(name, "", nil)
		require.NoError(t, err)
	}
}

func TestGrantConsent(t *testing.T) {
	db := newTestDatabase(t)
	mustSetPrivileges(t, db, "newsletter")
	user := database.SubjectRef{Type: "user", ID: "42"}

	err := db.GrantConsent(user, []string{"newsletter"}, nil)
	require.NoError(t, err)

	granted, err := db.IsGrantedBy(user, "newsletter", nil)
	require.NoError(t, err)
	assert.True(t, granted)

	// Exactly one ledger record exists for the pair
	consents, err := db.ConsentsForSubject(user, nil)
	require.NoError(t, err)
	require.Len(t, consents, 1)
	assert.False(t, consents[0].Revoked)
	assert.Nil(t, consents[0].RevokedOn)
}

func TestGrantConsentIdempotent(t *testing.T) {
	db := newTestDatabase(t)
	mustSetPrivileges(t, db, "newsletter")
	user := database.SubjectRef{Type: "user", ID: "42"}

	err := db.GrantConsent(user, []string{"newsletter"}, nil)
	require.NoError(t, err)
	err = db.GrantConsent(user, []string{"newsletter"}, nil)
	require.NoError(t, err)

	consents, err := db.ConsentsForSubject(user, nil)
	require.NoError(t, err)
	require.Len(t, consents, 1)
	assert.False(t, consents[0].Revoked)
}

func TestRevokeConsent(t *testing.T) {
	db := newTestDatabase(t)
	mustSetPrivileges(t, db, "newsletter")
	user := database.SubjectRef{Type: "user", ID: "42"}

	err := db.GrantConsent(user, []string{"newsletter"}, nil)
	require.NoError(t, err)
	err = db.RevokeConsent(user, []string{"newsletter"}, nil)
	require.NoError(t, err)

	granted, err := db.IsGrantedBy(user, "newsletter", nil)
	require.NoError(t, err)
	assert.False(t, granted)

	consent, err := db.GetConsent(user, "newsletter", nil)
	require.NoError(t, err)
	require.NotNil(t, consent)
	assert.True(t, consent.Revoked)
	require.NotNil(t, consent.RevokedOn)
}

func TestRevokeConsentNeverGranted(t *testing.T) {
	db := newTestDatabase(t)
	mustSetPrivileges(t, db, "newsletter")
	user := database.SubjectRef{Type: "user", ID: "42"}

	// Revoking an ungranted privilege creates no record
	err := db.RevokeConsent(user, []string{"newsletter"}, nil)
	require.NoError(t, err)

	granted, err := db.IsGrantedBy(user, "newsletter", nil)
	require.NoError(t, err)
	assert.False(t, granted)

	consent, err := db.GetConsent(user, "newsletter", nil)
	require.NoError(t, err)
	assert.Nil(t, consent)
}

func TestGrantRevokeGrantRoundTrip(t *testing.T) {
	db := newTestDatabase(t)
	mustSetPrivileges(t, db, "newsletter")
	user := database.SubjectRef{Type: "user", ID: "42"}

	err := db.GrantConsent(user, []string{"newsletter"}, nil)
	require.NoError(t, err)
	consent, err := db.GetConsent(user, "newsletter", nil)
	require.NoError(t, err)
	require.NotNil(t, consent)
	originalGrantedOn := consent.GrantedOn

	// Make sure the re-grant lands on a later timestamp
	time.Sleep(5 * time.Millisecond)

	err = db.RevokeConsent(user, []string{"newsletter"}, nil)
	require.NoError(t, err)
	err = db.GrantConsent(user, []string{"newsletter"}, nil)
	require.NoError(t, err)

	consent, err = db.GetConsent(user, "newsletter", nil)
	require.NoError(t, err)
	require.NotNil(t, consent)
	assert.False(t, consent.Revoked)
	assert.Nil(t, consent.RevokedOn)
	assert.True(
		t,
		consent.GrantedOn.After(originalGrantedOn),
		"re-grant should refresh the grant timestamp",
	)
}

func TestGrantedAndRevokedScoping(t *testing.T) {
	db := newTestDatabase(t)
	mustSetPrivileges(t, db, "newsletter", "share-profile")
	user := database.SubjectRef{Type: "user", ID: "42"}
	device := database.SubjectRef{Type: "device", ID: "abc"}

	err := db.GrantConsent(user, []string{"newsletter"}, nil)
	require.NoError(t, err)
	err = db.GrantConsent(device, []string{"share-profile"}, nil)
	require.NoError(t, err)

	// Scenario: granted(user42) contains exactly one record for
	// "newsletter"; revoked(user42) is empty
	granted, err := db.Granted(user, nil)
	require.NoError(t, err)
	require.Len(t, granted, 1)
	assert.Equal(t, "newsletter", granted[0].Privilege.Name)

	revoked, err := db.Revoked(user, nil)
	require.NoError(t, err)
	assert.Empty(t, revoked)

	// Scenario: after revocation the record moves to the revoked set
	err = db.RevokeConsent(user, []string{"newsletter"}, nil)
	require.NoError(t, err)

	granted, err = db.Granted(user, nil)
	require.NoError(t, err)
	assert.Empty(t, granted)

	revoked, err = db.Revoked(user, nil)
	require.NoError(t, err)
	require.Len(t, revoked, 1)
	assert.Equal(t, "newsletter", revoked[0].Privilege.Name)
	require.NotNil(t, revoked[0].RevokedOn)

	// Unscoped queries cover all subjects
	allGranted, err := db.Granted(nil, nil)
	require.NoError(t, err)
	assert.Len(t, allGranted, 1)
	allRevoked, err := db.Revoked(nil, nil)
	require.NoError(t, err)
	assert.Len(t, allRevoked, 1)
}

func TestGrantConsentMultiplePrivileges(t *testing.T) {
	db := newTestDatabase(t)
	mustSetPrivileges(t, db, "share-profile", "newsletter", "analytics")
	user := database.SubjectRef{Type: "user", ID: "42"}

	err := db.GrantConsent(
		user,
		[]string{"share-profile", "newsletter", "analytics"},
		nil,
	)
	require.NoError(t, err)

	consents, err := db.ConsentsForSubject(user, nil)
	require.NoError(t, err)
	require.Len(t, consents, 3)
	// Ledger listings are ordered by privilege name
	assert.Equal(t, "analytics", consents[0].Privilege.Name)
	assert.Equal(t, "newsletter", consents[1].Privilege.Name)
	assert.Equal(t, "share-profile", consents[2].Privilege.Name)
}

func TestGrantConsentUnknownPrivilege(t *testing.T) {
	db := newTestDatabase(t)
	user := database.SubjectRef{Type: "user", ID: "42"}

	err := db.GrantConsent(user, []string{"missing"}, nil)
	require.ErrorIs(t, err, models.ErrPrivilegeNotFound)
}

func TestGrantConsentNotes(t *testing.T) {
	db := newTestDatabase(t)
	mustSetPrivileges(t, db, "newsletter")
	user := database.SubjectRef{Type: "user", ID: "42"}

	err := db.GrantConsentNotes(
		user,
		[]string{"newsletter"},
		"signup form v2",
		nil,
	)
	require.NoError(t, err)

	consent, err := db.GetConsent(user, "newsletter", nil)
	require.NoError(t, err)
	require.NotNil(t, consent)
	assert.Equal(t, "signup form v2", consent.Notes)
}

func TestIsGrantedByDistinctSubjects(t *testing.T) {
	db := newTestDatabase(t)
	mustSetPrivileges(t, db, "newsletter")
	user42 := database.SubjectRef{Type: "user", ID: "42"}
	user43 := database.SubjectRef{Type: "user", ID: "43"}
	device42 := database.SubjectRef{Type: "device", ID: "42"}

	err := db.GrantConsent(user42, []string{"newsletter"}, nil)
	require.NoError(t, err)

	// Matching is by concrete type and identifier, so a device with the
	// same identifier is a different subject
	granted, err := db.IsGrantedBy(user42, "newsletter", nil)
	require.NoError(t, err)
	assert.True(t, granted)

	granted, err = db.IsGrantedBy(user43, "newsletter", nil)
	require.NoError(t, err)
	assert.False(t, granted)

	granted, err = db.IsGrantedBy(device42, "newsletter", nil)
	require.NoError(t, err)
	assert.False(t, granted)
}

func TestDeletePrivilegeRemovesConsents(t *testing.T) {
	db := newTestDatabase(t)
	mustSetPrivileges(t, db, "newsletter")
	user := database.SubjectRef{Type: "user", ID: "42"}

	err := db.GrantConsent(user, []string{"newsletter"}, nil)
	require.NoError(t, err)

	err = db.DeletePrivilege("newsletter", nil)
	require.NoError(t, err)

	consents, err := db.ConsentsForSubject(user, nil)
	require.NoError(t, err)
	assert.Empty(t, consents)
}

func TestDeletePrivilegeNotFound(t *testing.T) {
	db := newTestDatabase(t)

	err := db.DeletePrivilege("missing", nil)
	require.ErrorIs(t, err, models.ErrPrivilegeNotFound)
}

func TestTransactionDo(t *testing.T) {
	db := newTestDatabase(t)
	mustSetPrivileges(t, db, "newsletter", "share-profile")
	user := database.SubjectRef{Type: "user", ID: "42"}

	// A whole grant batch rides one transaction
	err := db.Transaction(true).Do(func(txn *database.Txn) error {
		return txn.DB().GrantConsent(
			user,
			[]string{"newsletter", "share-profile"},
			txn,
		)
	})
	require.NoError(t, err)

	granted, err := db.Granted(user, nil)
	require.NoError(t, err)
	require.Len(t, granted, 2)
	assert.Equal(t, "newsletter", granted[0].Privilege.Name)
	assert.Equal(t, "share-profile", granted[1].Privilege.Name)
}

func TestTransactionDoRollback(t *testing.T) {
	db := newTestDatabase(t)
	mustSetPrivileges(t, db, "newsletter")
	user := database.SubjectRef{Type: "user", ID: "42"}

	errAborted := errors.New("submission aborted")
	err := db.Transaction(true).Do(func(txn *database.Txn) error {
		if err := txn.DB().GrantConsent(user, []string{"newsletter"}, txn); err != nil {
			return err
		}
		return errAborted
	})
	require.ErrorIs(t, err, errAborted)

	// The grant inside the failed transaction must not be visible
	consents, err := db.ConsentsForSubject(user, nil)
	require.NoError(t, err)
	assert.Empty(t, consents)
}

func TestPrivilegeCatalogOrdering(t *testing.T) {
	db := newTestDatabase(t)
	mustSetPrivileges(t, db, "share-profile", "analytics", "newsletter")

	privileges, err := db.GetPrivileges(nil)
	require.NoError(t, err)
	require.Len(t, privileges, 3)
	assert.Equal(t, "analytics", privileges[0].Name)
	assert.Equal(t, "newsletter", privileges[1].Name)
	assert.Equal(t, "share-profile", privileges[2].Name)
}
