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
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/Schem-at/Insign/pkg/ast"
	"github.com/Schem-at/Insign/pkg/source"
)

// targetKey is the conflict-detection identity of a metadata target: a
// Wildcard("cpu") and an Exact("cpu.core") are distinct keys even though a
// reader might later apply both to the same region.
type targetKey struct {
	kind ast.TargetKind
	name string
}

type metaEntry struct {
	value  any
	origin source.Origin
}

// mergeMetadata groups metadata statements by (target, key), checks every
// group for structural conflicts, and returns the merged values keyed by
// target (its keys are every target seen, which the document needs even for
// targets that never receive geometry).
func mergeMetadata(metas []*ast.Metadata) (map[targetKey]map[string]any, *source.CompileError) {
	type group struct {
		key     targetKey
		metaKey string
		entries []metaEntry
	}

	order := map[string]int{}
	var groups []*group

	for _, m := range metas {
		tk := targetKey{kind: m.Target.Kind, name: m.Target.Name}
		gkey := fmt.Sprintf("%d\x00%s\x00%s", tk.kind, tk.name, m.Key)

		idx, ok := order[gkey]
		if !ok {
			idx = len(groups)
			order[gkey] = idx
			groups = append(groups, &group{key: tk, metaKey: m.Key})
		}

		groups[idx].entries = append(groups[idx].entries, metaEntry{value: m.Value, origin: m.Org})
	}

	result := make(map[targetKey]map[string]any)

	var conflicts []string
	var conflictOrigins []source.Origin

	for _, g := range groups {
		baseline := g.entries[0].value

		conflicting := false

		for _, e := range g.entries[1:] {
			if !reflect.DeepEqual(baseline, e.value) {
				conflicting = true
			}
		}

		if conflicting {
			origins := make([]string, len(g.entries))
			for i, e := range g.entries {
				origins[i] = fmt.Sprintf("%d:%d", e.origin.UnitIndex, e.origin.StatementIndex)
				conflictOrigins = append(conflictOrigins, e.origin)
			}

			conflicts = append(conflicts, fmt.Sprintf("(%s, %q) at [%s]", targetLabel(g.key), g.metaKey, strings.Join(origins, ", ")))

			continue
		}

		if result[g.key] == nil {
			result[g.key] = map[string]any{}
		}

		result[g.key][g.metaKey] = baseline
	}

	if len(conflicts) > 0 {
		sort.Strings(conflicts)
		return nil, source.NewError(source.CodeMetadataConflict,
			"conflicting metadata values for "+strings.Join(conflicts, "; "), conflictOrigins...)
	}

	return result, nil
}

func targetLabel(k targetKey) string {
	switch k.kind {
	case ast.TargetGlobal:
		return "$global"
	case ast.TargetWildcard:
		return k.name + ".*"
	default:
		return k.name
	}
}
