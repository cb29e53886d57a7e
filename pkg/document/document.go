// Copyright the Insign authors.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package document holds the resolved regions-root document and its
// canonical, byte-stable JSON serialization.
package document

import "github.com/Schem-at/Insign/pkg/source"

// Region is the resolved output for one named or anonymous region.
type Region struct {
	BoundingBoxes []source.Box
	Metadata      map[string]any
	// Anonymous marks a synthesized region. The resolver drops anonymous
	// regions with empty Metadata before serialization; Marshal itself does
	// not read this flag.
	Anonymous bool
}

// Document is the fully resolved regions-root, ready for canonical
// serialization.
type Document struct {
	Global    map[string]any
	Wildcards map[string]map[string]any
	Regions   map[string]*Region
}

// NewDocument returns an empty, ready-to-populate Document.
func NewDocument() *Document {
	return &Document{
		Global:    map[string]any{},
		Wildcards: map[string]map[string]any{},
		Regions:   map[string]*Region{},
	}
}
