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

// Package resolver collects AST nodes from every unit, builds the region
// table, evaluates defined regions over the boolean region algebra,
// checks metadata for conflicts, and assembles the final document.
package resolver

import (
	"github.com/Schem-at/Insign/pkg/ast"
	"github.com/Schem-at/Insign/pkg/source"
)

type regionEntry struct {
	Mode        ast.GeometryMode
	IsAnonymous bool
	FirstOrigin source.Origin

	// Accumulator mode.
	Boxes []source.Box

	// Defined mode.
	Expr      ast.Expr
	DefinedAt source.Origin
}

// buildTable walks nodes in order and produces the region table plus the
// ordered list of metadata statements. A RegionModeConflict aborts the walk
// immediately, since later statements may depend on a consistent table.
func buildTable(nodes []ast.Node) (map[string]*regionEntry, []*ast.Metadata, *source.CompileError) {
	table := make(map[string]*regionEntry)

	var metas []*ast.Metadata

	for _, node := range nodes {
		switch n := node.(type) {
		case *ast.AccumulatorAppend:
			entry, exists := table[n.Target.ID]
			if !exists {
				entry = &regionEntry{Mode: ast.ModeAccumulator, IsAnonymous: n.Target.IsAnonymous, FirstOrigin: n.Org}
				table[n.Target.ID] = entry
			} else if entry.Mode != ast.ModeAccumulator {
				return nil, nil, source.NewError(source.CodeRegionModeConflict,
					"region '"+n.Target.ID+"' is used as both an accumulator and a defined region",
					entry.FirstOrigin, n.Org)
			}

			entry.Boxes = append(entry.Boxes, n.Box)
		case *ast.DefinedRegion:
			if entry, exists := table[n.Target.ID]; exists {
				return nil, nil, source.NewError(source.CodeRegionModeConflict,
					"region '"+n.Target.ID+"' is defined more than once, or mixes accumulator and defined modes",
					entry.FirstOrigin, n.Org)
			}

			table[n.Target.ID] = &regionEntry{
				Mode:        ast.ModeDefined,
				IsAnonymous: n.Target.IsAnonymous,
				FirstOrigin: n.Org,
				Expr:        n.Expr,
				DefinedAt:   n.Org,
			}
		case *ast.Metadata:
			metas = append(metas, n)
		}
	}

	return table, metas, nil
}
