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

package models_test

import (
	"testing"
	"time"

	"github.com/openconsent/consent/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsentRevoke(t *testing.T) {
	consent := &models.Consent{
		GranterType: "user",
		GranterID:   "42",
		PrivilegeID: 1,
		GrantedOn:   time.Now(),
	}
	require.True(t, consent.IsGranted())
	require.False(t, consent.IsRevoked())

	consent.Revoke()
	assert.True(t, consent.Revoked)
	assert.True(t, consent.IsRevoked())
	assert.False(t, consent.IsGranted())
	require.NotNil(t, consent.RevokedOn)

	// Revoking again must not move the revocation timestamp
	firstRevokedOn := *consent.RevokedOn
	consent.Revoke()
	require.NotNil(t, consent.RevokedOn)
	assert.Equal(t, firstRevokedOn, *consent.RevokedOn)
}

func TestConsentGrant(t *testing.T) {
	originalGrantedOn := time.Now().Add(-time.Hour)
	consent := &models.Consent{
		GranterType: "user",
		GranterID:   "42",
		PrivilegeID: 1,
		GrantedOn:   originalGrantedOn,
	}

	// Granting an already-granted consent is a no-op
	consent.Grant()
	assert.False(t, consent.Revoked)
	assert.Equal(t, originalGrantedOn, consent.GrantedOn)
	assert.Nil(t, consent.RevokedOn)

	// Round trip: revoke then grant clears the revocation and refreshes
	// the grant timestamp
	consent.Revoke()
	require.True(t, consent.Revoked)
	consent.Grant()
	assert.False(t, consent.Revoked)
	assert.Nil(t, consent.RevokedOn)
	assert.True(t, consent.GrantedOn.After(originalGrantedOn))
}

func TestConsentString(t *testing.T) {
	consent := &models.Consent{
		GranterType: "user",
		GranterID:   "42",
		Privilege:   &models.Privilege{Name: "newsletter"},
	}
	assert.Equal(
		t,
		"user/42 permits the 'newsletter' privilege",
		consent.String(),
	)

	consent.Revoke()
	assert.Equal(
		t,
		"user/42 revoked the 'newsletter' privilege",
		consent.String(),
	)
}
