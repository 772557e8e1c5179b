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

// SubjectRef identifies a consent granter by a concrete type tag and an
// opaque stable identifier. Two refs match when both fields are equal.
type SubjectRef struct {
	Type string
	ID   string
}

// SubjectRef makes a raw ref usable anywhere a Subject is expected
func (r SubjectRef) SubjectRef() SubjectRef {
	return r
}

func (r SubjectRef) String() string {
	return r.Type + "/" + r.ID
}

// Subject is implemented by anything that can grant consent. Host
// applications provide the identity resolution; the ledger only ever sees
// the (type, id) pair.
type Subject interface {
	SubjectRef() SubjectRef
}
