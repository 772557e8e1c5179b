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
	"github.com/openconsent/consent/database/models"
)

// GetPrivilege returns the named privilege, or models.ErrPrivilegeNotFound
// when the catalog has no such entry
func (d *Database) GetPrivilege(
	name string,
	txn *Txn,
) (*models.Privilege, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Commit() //nolint:errcheck
	}
	return d.metadata.GetPrivilege(name, txn.Metadata())
}

// GetPrivileges returns the full privilege catalog in alphabetical order
func (d *Database) GetPrivileges(txn *Txn) ([]models.Privilege, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Commit() //nolint:errcheck
	}
	return d.metadata.GetPrivileges(txn.Metadata())
}

// SetPrivilege creates or updates the named privilege
func (d *Database) SetPrivilege(
	name, description string,
	txn *Txn,
) (*models.Privilege, error) {
	if txn == nil {
		txn = d.Transaction(true)
		ret, err := d.metadata.SetPrivilege(name, description, txn.Metadata())
		if err != nil {
			txn.Rollback() //nolint:errcheck
			return nil, err
		}
		if err := txn.Commit(); err != nil {
			return nil, err
		}
		return ret, nil
	}
	return d.metadata.SetPrivilege(name, description, txn.Metadata())
}

// DeletePrivilege removes the named privilege and, through the storage
// cascade, every consent record that references it
func (d *Database) DeletePrivilege(name string, txn *Txn) error {
	if txn == nil {
		txn = d.Transaction(true)
		if err := d.metadata.DeletePrivilege(name, txn.Metadata()); err != nil {
			txn.Rollback() //nolint:errcheck
			return err
		}
		return txn.Commit()
	}
	return d.metadata.DeletePrivilege(name, txn.Metadata())
}

// IsGrantedBy returns whether the subject currently grants the named
// privilege. A subject with no ledger record for the privilege has not
// granted it.
func (d *Database) IsGrantedBy(
	subject Subject,
	privilegeName string,
	txn *Txn,
) (bool, error) {
	consent, err := d.GetConsent(subject, privilegeName, txn)
	if err != nil {
		return false, err
	}
	if consent == nil {
		return false, nil
	}
	return consent.IsGranted(), nil
}
