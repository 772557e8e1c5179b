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
	"testing"
)

func TestWithHost(t *testing.T) {
	m := &MetadataStoreMysql{}
	option := WithHost("db.local")

	option(m)

	if m.host != "db.local" {
		t.Errorf("Expected host to be 'db.local', got '%s'", m.host)
	}
}

func TestWithDSN(t *testing.T) {
	m := &MetadataStoreMysql{}
	dsn := "consent:secret@tcp(db.local:3306)/consent?parseTime=true"
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
	if m.port != 3306 {
		t.Errorf("Expected default port 3306, got '%d'", m.port)
	}
	if m.user != "root" {
		t.Errorf("Expected default user 'root', got '%s'", m.user)
	}
	if m.database != "consent" {
		t.Errorf("Expected default database 'consent', got '%s'", m.database)
	}
}
