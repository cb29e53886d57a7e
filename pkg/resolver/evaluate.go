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
	"sort"

	"github.com/Schem-at/Insign/pkg/ast"
	"github.com/Schem-at/Insign/pkg/source"
)

type color int

const (
	white color = iota
	gray
	black
)

// evaluator resolves every region id in the table to its final, sorted,
// deduplicated box list, evaluating defined regions over the boolean region
// algebra in dependency order and rejecting cycles with a three-color
// depth-first marker, exactly as a topological evaluator would.
type evaluator struct {
	table  map[string]*regionEntry
	colors map[string]color
	cache  map[string][]source.Box
}

func newEvaluator(table map[string]*regionEntry) *evaluator {
	return &evaluator{
		table:  table,
		colors: make(map[string]color, len(table)),
		cache:  make(map[string][]source.Box, len(table)),
	}
}

// EvaluateAll resolves every entry in the table. Entries are visited in
// (unit_index, statement_index) order of their first statement, so when more
// than one entry is independently broken the error surfaced is always the
// earliest one, regardless of map iteration order.
func EvaluateAll(table map[string]*regionEntry) (map[string][]source.Box, *source.CompileError) {
	ev := newEvaluator(table)

	ids := make([]string, 0, len(table))
	for id := range table {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool {
		a, b := table[ids[i]].FirstOrigin, table[ids[j]].FirstOrigin
		if a.UnitIndex != b.UnitIndex {
			return a.UnitIndex < b.UnitIndex
		}

		return a.StatementIndex < b.StatementIndex
	})

	for _, id := range ids {
		if _, err := ev.resolve(id, table[id].FirstOrigin); err != nil {
			return nil, err
		}
	}

	return ev.cache, nil
}

func (ev *evaluator) resolve(id string, requestOrigin source.Origin) ([]source.Box, *source.CompileError) {
	if boxes, ok := ev.cache[id]; ok {
		return boxes, nil
	}

	entry, exists := ev.table[id]
	if !exists {
		return nil, source.NewError(source.CodeUnknownRegion,
			"reference to undefined region '"+id+"'", requestOrigin)
	}

	if entry.Mode == ast.ModeAccumulator {
		boxes := source.SortBoxes(entry.Boxes)
		ev.cache[id] = boxes

		return boxes, nil
	}

	switch ev.colors[id] {
	case gray:
		return nil, source.NewError(source.CodeCyclicDefinition,
			"region '"+id+"' participates in a cyclic definition", entry.DefinedAt)
	case black:
		// Unreachable: black implies a cache hit above, but kept for safety
		// against future refactors that separate color from cache.
		return ev.cache[id], nil
	}

	ev.colors[id] = gray

	boxes, err := ev.evalExpr(entry.Expr, entry.DefinedAt)
	if err != nil {
		return nil, err
	}

	ev.colors[id] = black
	ev.cache[id] = boxes

	return boxes, nil
}

func (ev *evaluator) evalExpr(e ast.Expr, origin source.Origin) ([]source.Box, *source.CompileError) {
	switch n := e.(type) {
	case *ast.RegionRef:
		return ev.resolve(n.ID, origin)
	case *ast.BinOp:
		left, err := ev.evalExpr(n.Left, origin)
		if err != nil {
			return nil, err
		}

		right, err := ev.evalExpr(n.Right, origin)
		if err != nil {
			return nil, err
		}

		return applyOp(n.Op, left, right), nil
	default:
		panic("resolver: unknown expression node type")
	}
}
