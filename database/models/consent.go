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

package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Consent records whether a single granter has agreed to a single Privilege.
// The granter is referenced by an explicit (type, id) pair rather than a
// fixed foreign key, so anything with a stable identity can grant consent,
// not just user accounts. At most one record exists per granter/privilege
// pair; grant and revoke toggle its state in place.
type Consent struct {
	GrantedOn   time.Time
	RevokedOn   *time.Time
	Privilege   *Privilege
	GranterType string `gorm:"size:64;not null;uniqueIndex:uidx_consent_granter_privilege"`
	GranterID   string `gorm:"size:255;not null;uniqueIndex:uidx_consent_granter_privilege"`
	// Notes records how the consent was collected, such as the actual
	// text that was used to ask for it.
	Notes       string
	ID          uint `gorm:"primarykey"`
	PrivilegeID uint `gorm:"not null;uniqueIndex:uidx_consent_granter_privilege"`
	Revoked     bool `gorm:"not null;default:false;index"`
}

func (Consent) TableName() string {
	return "consent"
}

// BeforeCreate stamps the grant time for records created without one
func (c *Consent) BeforeCreate(_ *gorm.DB) error {
	if c.GrantedOn.IsZero() {
		c.GrantedOn = time.Now()
	}
	return nil
}

// Grant returns the consent to the granted state with a fresh grant
// timestamp. It is a no-op when the consent has not been revoked.
func (c *Consent) Grant() {
	if c.Revoked {
		c.Revoked = false
		c.RevokedOn = nil
		c.GrantedOn = time.Now()
	}
}

// Revoke withdraws the consent, recording the time of revocation. It is a
// no-op when the consent is already revoked.
func (c *Consent) Revoke() {
	if !c.Revoked {
		now := time.Now()
		c.Revoked = true
		c.RevokedOn = &now
	}
}

// IsGranted returns true when the consent has not been revoked
func (c *Consent) IsGranted() bool {
	return !c.Revoked
}

// IsRevoked returns true when the consent has been revoked
func (c *Consent) IsRevoked() bool {
	return c.Revoked
}

func (c *Consent) String() string {
	verb := "permits"
	if c.Revoked {
		verb = "revoked"
	}
	privilegeName := fmt.Sprintf("privilege %d", c.PrivilegeID)
	if c.Privilege != nil {
		privilegeName = c.Privilege.Name
	}
	return fmt.Sprintf(
		"%s/%s %s the '%s' privilege",
		c.GranterType,
		c.GranterID,
		verb,
		privilegeName,
	)
}
