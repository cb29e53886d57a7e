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
package resolver

import (
	"github.com/Schem-at/Insign/pkg/ast"
	"github.com/Schem-at/Insign/pkg/document"
	"github.com/Schem-at/Insign/pkg/source"
)

// Resolve finalizes the region table and metadata assignments across every
// unit's AST nodes (already flattened into (unit_index, statement_index)
// order by the caller) and assembles the final document.
func Resolve(nodes []ast.Node) (*document.Document, *source.CompileError) {
	table, metas, err := buildTable(nodes)
	if err != nil {
		return nil, err
	}

	boxes, err := EvaluateAll(table)
	if err != nil {
		return nil, err
	}

	merged, err := mergeMetadata(metas)
	if err != nil {
		return nil, err
	}

	doc := document.NewDocument()

	for key, values := range merged {
		switch key.kind {
		case ast.TargetGlobal:
			doc.Global = values
		case ast.TargetWildcard:
			doc.Wildcards[key.name] = values
		case ast.TargetExact:
			doc.Regions[key.name] = regionFor(key.name, table, boxes, values)
		}
	}

	for id := range table {
		if _, ok := doc.Regions[id]; ok {
			continue
		}

		doc.Regions[id] = regionFor(id, table, boxes, nil)
	}

	pruneEmptyAnonymous(doc)

	return doc, nil
}

func regionFor(id string, table map[string]*regionEntry, boxes map[string][]source.Box, metadata map[string]any) *document.Region {
	entry, hasGeometry := table[id]

	r := &document.Region{Metadata: metadata}

	if hasGeometry {
		r.BoundingBoxes = boxes[id]
		r.Anonymous = entry.IsAnonymous
	}

	return r
}

func pruneEmptyAnonymous(doc *document.Document) {
	for id, r := range doc.Regions {
		if r.Anonymous && len(r.Metadata) == 0 {
			delete(doc.Regions, id)
		}
	}
}
