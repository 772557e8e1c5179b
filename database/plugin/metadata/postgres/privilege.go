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

package postgres

import (
	"errors"
	"fmt"

	"github.com/openconsent/consent/database/models"
	"gorm.io/gorm"
)

// GetPrivilege gets a privilege by name
func (d *MetadataStorePostgres) GetPrivilege(
	name string,
	txn *gorm.DB,
) (*models.Privilege, error) {
	db := d.DB()
	if txn != nil {
		db = txn
	}
	ret := &models.Privilege{}
	result := db.Where("name = ?", name).First(ret)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, models.ErrPrivilegeNotFound
		}
		return nil, result.Error
	}
	return ret, nil
}

// GetPrivileges returns the full privilege catalog in alphabetical order
func (d *MetadataStorePostgres) GetPrivileges(
	txn *gorm.DB,
) ([]models.Privilege, error) {
	db := d.DB()
	if txn != nil {
		db = txn
	}
	ret := []models.Privilege{}
	result := db.Order("name").Find(&ret)
	if result.Error != nil {
		return nil, result.Error
	}
	return ret, nil
}

// SetPrivilege creates or updates a privilege by name
func (d *MetadataStorePostgres) SetPrivilege(
	name, description string,
	txn *gorm.DB,
) (*models.Privilege, error) {
	db := d.DB()
	if txn != nil {
		db = txn
	}
	privilege := &models.Privilege{}
	result := db.Where("name = ?", name).First(privilege)
	if result.Error != nil {
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, result.Error
		}
		privilege = &models.Privilege{
			Name:        name,
			Description: description,
		}
		if result := db.Create(privilege); result.Error != nil {
			return nil, fmt.Errorf(
				"failed to create privilege: %w",
				result.Error,
			)
		}
		return privilege, nil
	}
	privilege.Description = description
	if result := db.Save(privilege); result.Error != nil {
		return nil, fmt.Errorf("failed to update privilege: %w", result.Error)
	}
	return privilege, nil
}

// DeletePrivilege removes a privilege. Associated consent records are
// removed by the foreign key cascade.
func (d *MetadataStorePostgres) DeletePrivilege(
	name string,
	txn *gorm.DB,
) error {
	db := d.DB()
	if txn != nil {
		db = txn
	}
	result := db.Where("name = ?", name).Delete(&models.Privilege{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrPrivilegeNotFound
	}
	return nil
}
