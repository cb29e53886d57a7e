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
package parser

import (
	"fmt"
	"strings"

	"github.com/Schem-at/Insign/pkg/ast"
	"github.com/Schem-at/Insign/pkg/lex"
	"github.com/Schem-at/Insign/pkg/source"
)

func parseMetadata(stmt lex.Statement, origin source.Origin, state *unitState) (ast.Node, *source.CompileError) {
	body := strings.TrimSpace(stmt.Raw[1:]) // skip '#'

	eq := strings.IndexByte(body, '=')
	if eq < 0 {
		return nil, source.NewError(source.CodeParseError, "expected '=' in metadata statement", origin)
	}

	prefix := body[:eq]
	valueText := body[eq+1:]

	var (
		target ast.Target
		key    string
	)

	if colon := strings.IndexByte(prefix, ':'); colon >= 0 {
		targetStr := strings.TrimSpace(prefix[:colon])
		key = strings.TrimSpace(prefix[colon+1:])

		t, err := parseTarget(targetStr)
		if err != nil {
			return nil, source.NewError(source.CodeParseError, err.Error(), origin)
		}

		target = t
	} else {
		key = strings.TrimSpace(prefix)

		t, cerr := currentRegionTarget(state, origin)
		if cerr != nil {
			return nil, cerr
		}

		target = t
	}

	if key == "" || strings.ContainsAny(key, " \t\r\n") {
		return nil, source.NewError(source.CodeParseError, "invalid or empty metadata key", origin)
	}

	c := newCursor(valueText)

	value, err := parseJSONValue(c)
	if err != nil {
		return nil, source.NewError(source.CodeParseError, fmt.Sprintf("invalid JSON value: %s", err), origin)
	}

	c.skipSpace()

	if !c.eof() {
		return nil, source.NewError(source.CodeParseError,
			fmt.Sprintf("unexpected trailing content after JSON value: %q", c.rest()), origin)
	}

	return &ast.Metadata{Target: target, Key: key, Value: value, Org: origin}, nil
}

func parseTarget(s string) (ast.Target, error) {
	if s == "$global" {
		return ast.Target{Kind: ast.TargetGlobal}, nil
	}

	if strings.HasSuffix(s, ".*") {
		prefix := s[:len(s)-2]
		if !source.IsValidRegionID(prefix) {
			return ast.Target{}, fmt.Errorf("wildcard target %q requires a valid region-id prefix", s)
		}

		return ast.Target{Kind: ast.TargetWildcard, Name: prefix}, nil
	}

	if !source.IsValidRegionID(s) {
		return ast.Target{}, fmt.Errorf("invalid metadata target %q", s)
	}

	return ast.Target{Kind: ast.TargetExact, Name: s}, nil
}

func currentRegionTarget(state *unitState, origin source.Origin) (ast.Target, *source.CompileError) {
	if state.current == nil {
		return ast.Target{}, source.NewError(source.CodeNoCurrentRegion,
			"metadata statement with no preceding geometry in this unit", origin)
	}

	return ast.Target{Kind: ast.TargetExact, Name: state.current.ID}, nil
}
