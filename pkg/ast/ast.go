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

// Package ast defines the typed nodes produced by the parser: geometry
// statements (accumulator appends and defined-region expressions) and
// metadata statements (attachments to a target).
package ast

import "github.com/Schem-at/Insign/pkg/source"

// Node is any parsed statement. Every node remembers where it came from so
// the resolver and serializer can attribute errors.
type Node interface {
	Origin() source.Origin
}

// GeometryMode distinguishes the two mutually exclusive region kinds.
type GeometryMode int

const (
	// ModeAccumulator regions grow by repeated box appends.
	ModeAccumulator GeometryMode = iota
	// ModeDefined regions are a single boolean expression over other
	// region ids.
	ModeDefined
)

// RegionTag identifies the subject of a geometry statement: either a named
// id (from "@<id>=...") or an anonymous, synthesized id (from a bare
// "@rc(...)"/"@ac(...)"/"@def(...)").
type RegionTag struct {
	ID          string
	IsAnonymous bool
}

// AccumulatorAppend is produced by "@<id>=rc(box)", "@<id>=ac(box)",
// "@rc(box)", or "@ac(box)".
type AccumulatorAppend struct {
	Target RegionTag
	Box    source.Box
	Org    source.Origin
}

// Origin implements Node.
func (n *AccumulatorAppend) Origin() source.Origin { return n.Org }

// DefinedRegion is produced by "@<id>=<expr>" (where expr is not a bare
// rc/ac call) or the anonymous form "@def(<expr>)".
type DefinedRegion struct {
	Target RegionTag
	Expr   Expr
	Org    source.Origin
}

// Origin implements Node.
func (n *DefinedRegion) Origin() source.Origin { return n.Org }

// Expr is a boolean region-set expression: a reference to a region id, or a
// binary combinator over two sub-expressions.
type Expr interface {
	exprNode()
}

// RegionRef is a leaf expression naming another region id.
type RegionRef struct {
	ID string
}

func (*RegionRef) exprNode() {}

// BinOp is a binary combinator. Op is one of '+', '-', '&', '^'.
type BinOp struct {
	Op          byte
	Left, Right Expr
}

func (*BinOp) exprNode() {}

// TargetKind distinguishes the three metadata target shapes.
type TargetKind int

const (
	// TargetGlobal is the "$global" target.
	TargetGlobal TargetKind = iota
	// TargetExact names a single region id, explicitly or via the
	// current-region rule (the parser rewrites a bare "#key=value" to the
	// unit's current region before this node is ever built).
	TargetExact
	// TargetWildcard matches every region id beginning with "<Name>.".
	TargetWildcard
)

// Target is the subject of a metadata entry.
type Target struct {
	Kind TargetKind
	// Name is the region id for TargetExact, or the prefix (without the
	// trailing ".*") for TargetWildcard. Unused for TargetGlobal.
	Name string
}

// Metadata is one "#key=value" or "#target:key=value" statement, with the
// target already resolved (current-region targets are rewritten to
// TargetExact/anonymous-id during parsing, per the in-unit tracking rule).
type Metadata struct {
	Target Target
	Key    string
	Value  any
	Org    source.Origin
}

// Origin implements Node.
func (n *Metadata) Origin() source.Origin { return n.Org }
