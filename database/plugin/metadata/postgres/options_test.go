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
	"testing"
)

func TestWithHost(t *testing.T) {
	m := &MetadataStorePostgres{}
	option := WithHost("db.local")

	option(m)

	if m.host != "db.local" {
		t.Errorf("Expected host to be 'db.local', got '%s'", m.host)
	}
}

func TestWithPort(t *testing.T) {
	m := &MetadataStorePostgres{}
	option := WithPort(uint(5432))

	option(m)

	if m.port != 5432 {
		t.Errorf("Expected port to be 5432, got '%d'", m.port)
	}
}

func TestWithDSN(t *testing.T) {
	m := &MetadataStorePostgres{}
	dsn := "host=db.local user=consent dbname=consent port=5432"
	option := WithDSN(dsn)

	option(m)

	if m.dsn != dsn {
		t.Errorf("Expected dsn to be '%s', got '%s'", dsn, m.dsn)
	}
}

func TestNewWithOptionsDefaults(t *testing.T) {
	m, err := NewWithOptions()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.host != "localhost" {
		t.Errorf("Expected default host 'localhost', got '%s'", m.host)
	}
	if m.port != 5432 {
		t.Errorf("Expected default port 5432, got '%d'", m.port)
	}
	if m.user != "postgres" {
		t.Errorf("Expected default user 'postgres', got '%s'", m.user)
	}
	if m.database != "consent" {
		t.Errorf("Expected default database 'consent', got '%s'", m.database)
	}
	if m.sslMode != "disable" {
		t.Errorf("Expected default sslmode 'disable', got '%s'", m.sslMode)
	}
}
