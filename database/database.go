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

// Package database provides the consent ledger: a privilege catalog and,
// per subject and privilege, the current grant/revoke state, on top of a
// pluggable relational metadata store.
package database

import (
	"io"
	"log/slog"

	"github.com/openconsent/consent/database/models"
	"github.com/openconsent/consent/database/plugin/metadata"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Config describes the database configuration
type Config struct {
	Logger         *slog.Logger
	PromRegistry   prometheus.Registerer
	DataDir        string
	MetadataPlugin string
}

// Database is the central point for all consent state transitions and
// scoped queries
type Database struct {
	logger   *slog.Logger
	metadata metadata.MetadataStore
	metrics  databaseMetrics
	dataDir  string
}

type databaseMetrics struct {
	grants      prometheus.Counter
	revocations prometheus.Counter
}

// New creates a new database instance with optional persistence using the provided data directory
func New(cfg *Config) (*Database, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	metadataDb, err := metadata.New(
		cfg.MetadataPlugin,
		cfg.DataDir,
		cfg.Logger,
		cfg.PromRegistry,
	)
	if err != nil {
		return nil, err
	}
	db := &Database{
		logger:   cfg.Logger,
		metadata: metadataDb,
		dataDir:  cfg.DataDir,
	}
	db.init(cfg.PromRegistry)
	return db, nil
}

func (d *Database) init(promRegistry prometheus.Registerer) {
	if d.logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		d.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	promautoFactory := promauto.With(promRegistry)
	d.metrics.grants = promautoFactory.NewCounter(prometheus.CounterOpts{
		Name: "consent_grants_total",
		Help: "total number of consent grant operations",
	})
	d.metrics.revocations = promautoFactory.NewCounter(prometheus.CounterOpts{
		Name: "consent_revocations_total",
		Help: "total number of consent records revoked",
	})
	// Catalog size is sampled at scrape time
	promautoFactory.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "consent_privileges",
		Help: "number of privileges in the catalog",
	}, func() float64 {
		var count int64
		result := d.metadata.DB().
			Model(&models.Privilege{}).
			Count(&count)
		if result.Error != nil {
			return 0
		}
		return float64(count)
	})
}

// DataDir returns the path to the data directory used for storage
func (d *Database) DataDir() string {
	return d.dataDir
}

// Logger returns the logger instance
func (d *Database) Logger() *slog.Logger {
	return d.logger
}

// Metadata returns the underlying metadata store instance
func (d *Database) Metadata() metadata.MetadataStore {
	return d.metadata
}

// Transaction starts a new database transaction and returns a handle to it
func (d *Database) Transaction(readWrite bool) *Txn {
	return NewTxn(d, readWrite)
}

// Close cleans up the database connections
func (d *Database) Close() error {
	return d.metadata.Close()
}
