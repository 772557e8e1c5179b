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

import "errors"

var ErrPrivilegeNotFound = errors.New("privilege not found")

// Privilege is a permission that the application asks a subject to consent
// to, such as sending a newsletter or sharing profile data. Deleting a
// privilege cascades to its consent records.
type Privilege struct {
	Name        string    `gorm:"size:64;not null;uniqueIndex"`
	Description string
	Consents    []Consent `gorm:"foreignKey:PrivilegeID;constraint:OnDelete:CASCADE"`
	ID          uint      `gorm:"primarykey"`
}

func (Privilege) TableName() string {
	return "privilege"
}

func (p *Privilege) String() string {
	return p.Name
}
