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

package mysql

import (
	"errors"
	"fmt"
	"time"

	"github.com/openconsent/consent/database/models"
	"gorm.io/gorm"
)

// GetConsent returns the consent record for a granter/privilege pair, or
// nil when no record exists. Absence is not an error.
func (d *MetadataStoreMysql) GetConsent(
	granterType, granterId, privilegeName string,
	txn *gorm.DB,
) (*models.Consent, error) {
	db := d.DB()
	if txn != nil {
		db = txn
	}
	privilege, err := d.GetPrivilege(privilegeName, txn)
	if err != nil {
		if errors.Is(err, models.ErrPrivilegeNotFound) {
			return nil, nil
		}
		return nil, err
	}
	ret := &models.Consent{}
	result := db.Preload("Privilege").
		Where(
			"granter_type = ? AND granter_id = ? AND privilege_id = ?",
			granterType,
			granterId,
			privilege.ID,
		).
		First(ret)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return ret, nil
}

// GetConsentsForGranter returns all consent records for a granter, ordered
// by privilege name
func (d *MetadataStoreMysql) GetConsentsForGranter(
	granterType, granterId string,
	txn *gorm.DB,
) ([]models.Consent, error) {
	db := d.DB()
	if txn != nil {
		db = txn
	}
	ret := []models.Consent{}
	result := db.Model(&models.Consent{}).
		Joins("JOIN privilege ON privilege.id = consent.privilege_id").
		Where(
			"consent.granter_type = ? AND consent.granter_id = ?",
			granterType,
			granterId,
		).
		Order("privilege.name").
		Preload("Privilege").
		Find(&ret)
	if result.Error != nil {
		return nil, result.Error
	}
	return ret, nil
}

// GetConsentsByState returns consent records filtered by revoked state,
// optionally scoped to a single granter (empty granterType for all),
// ordered by privilege name
func (d *MetadataStoreMysql) GetConsentsByState(
	revoked bool,
	granterType, granterId string,
	txn *gorm.DB,
) ([]models.Consent, error) {
	db := d.DB()
	if txn != nil {
		db = txn
	}
	ret := []models.Consent{}
	query := db.Model(&models.Consent{}).
		Joins("JOIN privilege ON privilege.id = consent.privilege_id").
		Where("consent.revoked = ?", revoked)
	if granterType != "" {
		query = query.Where(
			"consent.granter_type = ? AND consent.granter_id = ?",
			granterType,
			granterId,
		)
	}
	result := query.Order("privilege.name").
		Preload("Privilege").
		Find(&ret)
	if result.Error != nil {
		return nil, result.Error
	}
	return ret, nil
}

// UpsertConsentGrant finds or creates the unique consent record for a
// granter/privilege pair and returns it in the granted state. A fresh
// record is granted by construction; an existing revoked record is reset.
// The find-or-create sequence runs inside a transaction so concurrent
// grants for a new pair cannot race past the uniqueness constraint.
func (d *MetadataStoreMysql) UpsertConsentGrant(
	granterType, granterId, privilegeName, notes string,
	txn *gorm.DB,
) (*models.Consent, error) {
	privilege, err := d.GetPrivilege(privilegeName, txn)
	if err != nil {
		return nil, err
	}
	var ret *models.Consent
	upsert := func(tx *gorm.DB) error {
		consent := &models.Consent{}
		result := tx.Where(
			"granter_type = ? AND granter_id = ? AND privilege_id = ?",
			granterType,
			granterId,
			privilege.ID,
		).First(consent)
		if result.Error != nil {
			if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return result.Error
			}
			consent = &models.Consent{
				GranterType: granterType,
				GranterID:   granterId,
				PrivilegeID: privilege.ID,
				Notes:       notes,
			}
			if result := tx.Create(consent); result.Error != nil {
				return fmt.Errorf(
					"failed to create consent: %w",
					result.Error,
				)
			}
			ret = consent
			return nil
		}
		// Re-granting an already-granted privilege is a no-op
		if consent.Revoked {
			consent.Grant()
			if result := tx.Save(consent); result.Error != nil {
				return fmt.Errorf(
					"failed to update consent: %w",
					result.Error,
				)
			}
		}
		ret = consent
		return nil
	}
	if txn != nil {
		if err := upsert(txn); err != nil {
			return nil, err
		}
	} else {
		if err := d.DB().Transaction(upsert); err != nil {
			return nil, err
		}
	}
	ret.Privilege = privilege
	return ret, nil
}

// RevokeConsents bulk-revokes existing consent records for the named
// privileges and returns the number of records revoked. Privileges that
// were never granted are skipped rather than recorded as pre-revoked, and
// already-revoked records keep their original revocation time.
func (d *MetadataStoreMysql) RevokeConsents(
	granterType, granterId string,
	privilegeNames []string,
	txn *gorm.DB,
) (int64, error) {
	db := d.DB()
	if txn != nil {
		db = txn
	}
	if len(privilegeNames) == 0 {
		return 0, nil
	}
	var privilegeIds []uint
	result := db.Model(&models.Privilege{}).
		Where("name IN ?", privilegeNames).
		Pluck("id", &privilegeIds)
	if result.Error != nil {
		return 0, result.Error
	}
	if len(privilegeIds) == 0 {
		return 0, nil
	}
	result = db.Model(&models.Consent{}).
		Where(
			"granter_type = ? AND granter_id = ?",
			granterType,
			granterId,
		).
		Where("privilege_id IN ?", privilegeIds).
		Where("revoked = ?", false).
		Updates(map[string]any{
			"revoked":    true,
			"revoked_on": time.Now(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
