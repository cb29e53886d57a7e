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
package compiler

import (
	"github.com/Schem-at/Insign/pkg/ast"
	"github.com/Schem-at/Insign/pkg/document"
	"github.com/Schem-at/Insign/pkg/parser"
	"github.com/Schem-at/Insign/pkg/resolver"
	"github.com/Schem-at/Insign/pkg/source"
)

// Compile runs the full pipeline over an already-normalized unit sequence:
// parse every unit in order, concatenate their AST nodes preserving
// (unit_index, statement_index) order, then resolve. It is a pure function
// of units and cfg; no state survives the call.
func Compile(units []source.Unit, cfg Config) (*document.Document, *source.CompileError) {
	pcfg := parser.Config{EnablePhase1: cfg.EnablePhase1}

	var nodes []ast.Node

	for _, unit := range units {
		unitNodes, err := parser.ParseUnit(unit, pcfg)
		if err != nil {
			return nil, err
		}

		nodes = append(nodes, unitNodes...)
	}

	return resolver.Resolve(nodes)
}

// CompileJSON is the single entry point an external collaborator calls: a
// request envelope in, the canonical regions-root document bytes out. On
// failure it returns the structured error instead, never a Go error —
// malformed input and compile failures are both first-class outcomes here,
// not exceptional ones.
func CompileJSON(requestJSON []byte, cfg Config) ([]byte, *source.CompileError) {
	units, err := ParseEnvelope(requestJSON)
	if err != nil {
		return nil, err
	}

	doc, err := Compile(units, cfg)
	if err != nil {
		return nil, err
	}

	out, marshalErr := document.Marshal(doc)
	if marshalErr != nil {
		return nil, source.NewError(source.CodeSerializationError, marshalErr.Error())
	}

	return out, nil
}
