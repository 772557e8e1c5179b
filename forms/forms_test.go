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

package forms_test

import (
	"testing"

	"github.com/openconsent/consent/database"
	"github.com/openconsent/consent/forms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDatabase(t *testing.T) *database.Database {
	t.Helper()
	db, err := database.New(&database.Config{DataDir: ""})
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close() //nolint:errcheck
	})
	return db
}

func TestPrivilegeFormValidate(t *testing.T) {
	form := &forms.PrivilegeForm{Name: "  "}
	err := form.Validate()
	require.Error(t, err)

	var validationErr forms.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "name", validationErr.Field)

	form = &forms.PrivilegeForm{
		Name:     "newsletter",
		Subjects: []database.SubjectRef{{Type: "user"}},
	}
	err = form.Validate()
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "subjects", validationErr.Field)
}

func TestPrivilegeFormSave(t *testing.T) {
	db := newTestDatabase(t)
	user := database.SubjectRef{Type: "user", ID: "42"}

	form := &forms.PrivilegeForm{
		Name:        "newsletter",
		Description: "Receive the weekly newsletter",
		Subjects:    []database.SubjectRef{user},
	}
	privilege, err := form.Save(db)
	require.NoError(t, err)
	require.NotNil(t, privilege)
	assert.Equal(t, "newsletter", privilege.Name)

	// The selected subject was granted the privilege in the same submission
	granted, err := db.IsGrantedBy(user, "newsletter", nil)
	require.NoError(t, err)
	assert.True(t, granted)
}

func TestConsentFormValidate(t *testing.T) {
	db := newTestDatabase(t)
	_, err := db.SetPrivilege("newsletter", "", nil)
	require.NoError(t, err)

	form := &forms.ConsentForm{
		Subject:  database.SubjectRef{Type: "user", ID: "42"},
		Selected: []string{"not-in-catalog"},
	}
	err = form.Validate(db)
	require.Error(t, err)

	var validationErr forms.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "consents", validationErr.Field)

	form.Selected = []string{"newsletter"}
	require.NoError(t, form.Validate(db))

	// An empty selection is a valid submission (nothing checked)
	form.Selected = nil
	require.NoError(t, form.Validate(db))
}

func TestConsentFormSave(t *testing.T) {
	db := newTestDatabase(t)
	for _, name := range []string{"newsletter", "share-profile", "analytics"} {
		_, err := db.SetPrivilege(name, "", nil)
		require.NoError(t, err)
	}
	user := database.SubjectRef{Type: "user", ID: "42"}

	// First submission checks two boxes
	form := &forms.ConsentForm{
		Subject:  user,
		Selected: []string{"newsletter", "share-profile"},
		Notes:    "signup form v2",
	}
	require.NoError(t, form.Save(db))

	granted, err := db.Granted(user, nil)
	require.NoError(t, err)
	assert.Len(t, granted, 2)

	// Second submission unchecks share-profile and checks analytics
	form = &forms.ConsentForm{
		Subject:  user,
		Selected: []string{"newsletter", "analytics"},
	}
	require.NoError(t, form.Save(db))

	granted, err = db.Granted(user, nil)
	require.NoError(t, err)
	require.Len(t, granted, 2)
	assert.Equal(t, "analytics", granted[0].Privilege.Name)
	assert.Equal(t, "newsletter", granted[1].Privilege.Name)

	revoked, err := db.Revoked(user, nil)
	require.NoError(t, err)
	require.Len(t, revoked, 1)
	assert.Equal(t, "share-profile", revoked[0].Privilege.Name)
}
