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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Schem-at/Insign/pkg/ast"
	"github.com/Schem-at/Insign/pkg/source"
)

func origin(unitIdx, stmtIdx uint32) source.Origin {
	return source.Origin{UnitIndex: unitIdx, StatementIndex: stmtIdx}
}

func accum(id string, b source.Box, org source.Origin) *ast.AccumulatorAppend {
	return &ast.AccumulatorAppend{Target: ast.RegionTag{ID: id}, Box: b, Org: org}
}

func defined(id string, e ast.Expr, org source.Origin) *ast.DefinedRegion {
	return &ast.DefinedRegion{Target: ast.RegionTag{ID: id}, Expr: e, Org: org}
}

func ref(id string) ast.Expr { return &ast.RegionRef{ID: id} }

func binop(op byte, l, r ast.Expr) ast.Expr { return &ast.BinOp{Op: op, Left: l, Right: r} }

func meta(target ast.Target, key string, value any, org source.Origin) *ast.Metadata {
	return &ast.Metadata{Target: target, Key: key, Value: value, Org: org}
}

func TestResolveNamedAccumulatorAcrossUnits(t *testing.T) {
	nodes := []ast.Node{
		accum("dataloop", box(0, 64, 0, 31, 72, 15), origin(0, 0)),
		accum("dataloop", box(100, 0, 0, 110, 10, 10), origin(1, 0)),
	}

	doc, err := Resolve(nodes)
	require.Nil(t, err)

	region, ok := doc.Regions["dataloop"]
	require.True(t, ok)
	require.Equal(t, []source.Box{box(0, 64, 0, 31, 72, 15), box(100, 0, 0, 110, 10, 10)}, region.BoundingBoxes)
}

func TestResolveUnionDefine(t *testing.T) {
	nodes := []ast.Node{
		accum("a", box(0, 0, 0, 1, 1, 1), origin(0, 0)),
		accum("b", box(10, 10, 10, 11, 11, 11), origin(0, 1)),
		defined("c", binop('+', ref("a"), ref("b")), origin(0, 2)),
		meta(ast.Target{Kind: ast.TargetExact, Name: "c"}, "note", "u", origin(0, 3)),
	}

	doc, err := Resolve(nodes)
	require.Nil(t, err)

	region := doc.Regions["c"]
	require.ElementsMatch(t, []source.Box{box(0, 0, 0, 1, 1, 1), box(10, 10, 10, 11, 11, 11)}, region.BoundingBoxes)
	require.Equal(t, "u", region.Metadata["note"])
}

func TestResolveModeConflictAccumulatorThenDefined(t *testing.T) {
	nodes := []ast.Node{
		accum("x", box(0, 0, 0, 1, 1, 1), origin(0, 0)),
		defined("x", ref("x"), origin(0, 1)),
	}

	_, err := Resolve(nodes)
	require.NotNil(t, err)
	require.Equal(t, source.CodeRegionModeConflict, err.Code())
}

func TestResolveCycleDetection(t *testing.T) {
	nodes := []ast.Node{
		defined("a", ref("b"), origin(0, 0)),
		defined("b", ref("a"), origin(0, 1)),
	}

	_, err := Resolve(nodes)
	require.NotNil(t, err)
	require.Equal(t, source.CodeCyclicDefinition, err.Code())
}

func TestResolveUnknownRegion(t *testing.T) {
	nodes := []ast.Node{
		defined("a", ref("ghost"), origin(0, 0)),
	}

	_, err := Resolve(nodes)
	require.NotNil(t, err)
	require.Equal(t, source.CodeUnknownRegion, err.Code())
}

func TestResolveGlobalAndWildcardMetadata(t *testing.T) {
	nodes := []ast.Node{
		meta(ast.Target{Kind: ast.TargetWildcard, Name: "cpu"}, "power.budget", "low", origin(0, 0)),
		meta(ast.Target{Kind: ast.TargetGlobal}, "io.bus_width", int64(8), origin(0, 1)),
	}

	doc, err := Resolve(nodes)
	require.Nil(t, err)
	require.Equal(t, "low", doc.Wildcards["cpu"]["power.budget"])
	require.Equal(t, int64(8), doc.Global["io.bus_width"])
}

func TestResolveMetadataConflict(t *testing.T) {
	nodes := []ast.Node{
		meta(ast.Target{Kind: ast.TargetExact, Name: "r"}, "k", int64(1), origin(0, 0)),
		meta(ast.Target{Kind: ast.TargetExact, Name: "r"}, "k", int64(2), origin(1, 0)),
	}

	_, err := Resolve(nodes)
	require.NotNil(t, err)
	require.Equal(t, source.CodeMetadataConflict, err.Code())
	require.Len(t, err.Locations, 2)
}

func TestResolveMetadataDuplicateIdenticalValuesAccepted(t *testing.T) {
	nodes := []ast.Node{
		meta(ast.Target{Kind: ast.TargetExact, Name: "r"}, "k", int64(1), origin(0, 0)),
		meta(ast.Target{Kind: ast.TargetExact, Name: "r"}, "k", int64(1), origin(1, 0)),
	}

	doc, err := Resolve(nodes)
	require.Nil(t, err)
	require.Equal(t, int64(1), doc.Regions["r"].Metadata["k"])
}

func TestResolveAnonymousRegionPrunedWithoutMetadata(t *testing.T) {
	nodes := []ast.Node{
		&ast.AccumulatorAppend{Target: ast.RegionTag{ID: "__anon:0:0", IsAnonymous: true}, Box: box(0, 0, 0, 1, 1, 1), Org: origin(0, 0)},
	}

	doc, err := Resolve(nodes)
	require.Nil(t, err)
	require.NotContains(t, doc.Regions, "__anon:0:0")
}

func TestResolveAnonymousRegionKeptWithMetadata(t *testing.T) {
	nodes := []ast.Node{
		&ast.AccumulatorAppend{Target: ast.RegionTag{ID: "__anon:0:0", IsAnonymous: true}, Box: box(10, 64, 10, 13, 66, 11), Org: origin(0, 0)},
		meta(ast.Target{Kind: ast.TargetExact, Name: "__anon:0:0"}, "doc.label", "Patch A", origin(0, 1)),
	}

	doc, err := Resolve(nodes)
	require.Nil(t, err)

	region, ok := doc.Regions["__anon:0:0"]
	require.True(t, ok)
	require.Equal(t, "Patch A", region.Metadata["doc.label"])
	require.Equal(t, []source.Box{box(10, 64, 10, 13, 66, 11)}, region.BoundingBoxes)
}

func TestResolveExactTargetWithNoGeometryIsPreserved(t *testing.T) {
	nodes := []ast.Node{
		meta(ast.Target{Kind: ast.TargetExact, Name: "future.region"}, "k", "v", origin(0, 0)),
	}

	doc, err := Resolve(nodes)
	require.Nil(t, err)

	region, ok := doc.Regions["future.region"]
	require.True(t, ok)
	require.Empty(t, region.BoundingBoxes)
	require.Equal(t, "v", region.Metadata["k"])
}
