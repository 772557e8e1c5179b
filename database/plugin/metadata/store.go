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

package metadata

import (
	"fmt"
	"log/slog"

	"github.com/openconsent/consent/database/models"
	"github.com/openconsent/consent/database/plugin"
	"github.com/openconsent/consent/database/plugin/metadata/sqlite"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	// Register optional metadata store plugins
	_ "github.com/openconsent/consent/database/plugin/metadata/mysql"
	_ "github.com/openconsent/consent/database/plugin/metadata/postgres"
)

// MetadataStore is the interface implemented by all relational store
// backends. Operations take an optional *gorm.DB transaction handle; when
// nil, the store runs the operation on its base connection.
type MetadataStore interface {
	// Database
	Close() error
	DB() *gorm.DB
	Transaction() *gorm.DB

	// Privilege catalog
	GetPrivilege(string, *gorm.DB) (*models.Privilege, error)
	GetPrivileges(*gorm.DB) ([]models.Privilege, error)
	SetPrivilege(string, string, *gorm.DB) (*models.Privilege, error)
	DeletePrivilege(string, *gorm.DB) error

	// Consent ledger
	GetConsent(
		string, // granterType
		string, // granterId
		string, // privilegeName
		*gorm.DB,
	) (*models.Consent, error)
	GetConsentsForGranter(
		string, // granterType
		string, // granterId
		*gorm.DB,
	) ([]models.Consent, error)
	GetConsentsByState(
		bool, // revoked
		string, // granterType, empty for all granters
		string, // granterId
		*gorm.DB,
	) ([]models.Consent, error)
	UpsertConsentGrant(
		string, // granterType
		string, // granterId
		string, // privilegeName
		string, // notes, only applied on first grant
		*gorm.DB,
	) (*models.Consent, error)
	RevokeConsents(
		string, // granterType
		string, // granterId
		[]string, // privilegeNames
		*gorm.DB,
	) (int64, error)
}

// New creates the named metadata store. The sqlite store takes its data
// directory from the caller; other stores are configured through plugin
// options before this is called.
func New(
	pluginName, dataDir string,
	logger *slog.Logger,
	promRegistry prometheus.Registerer,
) (MetadataStore, error) {
	if pluginName == "" || pluginName == "sqlite" {
		return sqlite.New(dataDir, logger, promRegistry)
	}
	p, err := plugin.StartPlugin(plugin.PluginTypeMetadata, pluginName)
	if err != nil {
		return nil, err
	}
	store, ok := p.(MetadataStore)
	if !ok {
		return nil, fmt.Errorf(
			"metadata plugin '%s' does not implement the metadata store interface",
			pluginName,
		)
	}
	return store, nil
}
