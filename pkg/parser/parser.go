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

// unitState tracks the "current region" for a single unit: the target of
// the most recently parsed geometry statement. It is reset at unit
// boundaries and never carried across units.
type unitState struct {
	current *ast.RegionTag
}

// ParseUnit splits and parses every statement of a unit into AST nodes, in
// statement order. The current-region state starts fresh for each call.
func ParseUnit(unit source.Unit, cfg Config) ([]ast.Node, *source.CompileError) {
	statements, splitErr := lex.Split(unit.Index, unit.Text)
	if splitErr != nil {
		return nil, splitErr
	}

	var (
		nodes []ast.Node
		state unitState
	)

	for _, stmt := range statements {
		origin := source.Origin{UnitIndex: unit.Index, StatementIndex: uint32(stmt.Index)}

		if stmt.Raw == "" {
			continue
		}

		switch stmt.Raw[0] {
		case '@':
			node, err := parseGeometry(unit, stmt, origin, cfg, &state)
			if err != nil {
				return nil, err
			}

			nodes = append(nodes, node)
		case '#':
			node, err := parseMetadata(stmt, origin, &state)
			if err != nil {
				return nil, err
			}

			nodes = append(nodes, node)
		default:
			return nil, source.NewError(source.CodeUnexpectedCharacter,
				fmt.Sprintf("statement must begin with '@' or '#', found %q", stmt.Raw[0]), origin)
		}
	}

	return nodes, nil
}

// AnonymousID synthesizes the deterministic id of an anonymous region,
// fully determined by input order: __anon:<unit_index>:<statement_index>.
func AnonymousID(unitIndex uint32, statementIndex int) string {
	return fmt.Sprintf("__anon:%d:%d", unitIndex, statementIndex)
}

func parseGeometry(unit source.Unit, stmt lex.Statement, origin source.Origin, cfg Config, state *unitState) (ast.Node, *source.CompileError) {
	c := newCursor(stmt.Raw[1:]) // skip '@'
	c.skipSpace()

	idStart := c.pos
	id := c.scanIdent()

	c.skipSpace()

	if id != "" {
		if r, ok := c.peek(); ok && r == '=' {
			c.advance()

			rhs := strings.TrimSpace(c.rest())
			target := ast.RegionTag{ID: id}

			return parseGeometryBody(unit, rhs, target, origin, cfg, state)
		}
	}

	// Not a named statement: rewind and parse the anonymous forms.
	c.pos = idStart

	body := strings.TrimSpace(string(c.text[c.pos:]))
	anonID := AnonymousID(unit.Index, stmt.Index)
	target := ast.RegionTag{ID: anonID, IsAnonymous: true}

	if inner, ok := stripCall(body, "def"); ok {
		expr, err := parseFullExpr(inner, cfg)
		if err != nil {
			return nil, wrapExprError(err, origin)
		}

		node := &ast.DefinedRegion{Target: target, Expr: expr, Org: origin}
		state.current = &node.Target

		return node, nil
	}

	if box, isRelative, ok, err := parseCallBox(body); ok || err != nil {
		if err != nil {
			return nil, source.NewError(source.CodeParseError, err.Error(), origin)
		}

		resolved := resolveBox(unit, box, isRelative)
		node := &ast.AccumulatorAppend{Target: target, Box: resolved, Org: origin}
		state.current = &node.Target

		return node, nil
	}

	return nil, source.NewError(source.CodeParseError,
		"expected '<id>=rc(...)', '<id>=ac(...)', '<id>=<expr>', 'rc(...)', 'ac(...)', or 'def(...)'", origin)
}

func parseGeometryBody(unit source.Unit, rhs string, target ast.RegionTag, origin source.Origin, cfg Config, state *unitState) (ast.Node, *source.CompileError) {
	if box, isRelative, ok, err := parseCallBox(rhs); ok || err != nil {
		if err != nil {
			return nil, source.NewError(source.CodeParseError, err.Error(), origin)
		}

		node := &ast.AccumulatorAppend{Target: target, Box: resolveBox(unit, box, isRelative), Org: origin}
		state.current = &node.Target

		return node, nil
	}

	expr, err2 := parseFullExpr(rhs, cfg)
	if err2 != nil {
		return nil, wrapExprError(err2, origin)
	}

	node := &ast.DefinedRegion{Target: target, Expr: expr, Org: origin}
	state.current = &node.Target

	return node, nil
}

// rawBox is the pair of unnormalized, untranslated corners read from an
// rc(...)/ac(...) call.
type rawBox struct {
	A, B source.Position
}

// parseCallBox recognizes "rc(box)" or "ac(box)" as the ENTIRE input s. The
// third return value is false (with a nil error) when s matches neither
// keyword at all, so the caller can fall through to expression parsing.
func parseCallBox(s string) (rawBox, bool, bool, error) {
	if inner, ok := stripCall(s, "rc"); ok {
		box, err := parseBoxFully(inner)
		return box, true, true, err
	}

	if inner, ok := stripCall(s, "ac"); ok {
		box, err := parseBoxFully(inner)
		return box, false, true, err
	}

	return rawBox{}, false, false, nil
}

func parseBoxFully(inner string) (rawBox, error) {
	c := newCursor(inner)

	a, b, err := parseBox(c)
	if err != nil {
		return rawBox{}, err
	}

	c.skipSpace()

	if !c.eof() {
		return rawBox{}, fmt.Errorf("unexpected trailing content after box")
	}

	return rawBox{A: a, B: b}, nil
}

func resolveBox(unit source.Unit, box rawBox, isRelative bool) source.Box {
	if isRelative {
		return source.NewBox(unit.Pos.Add(box.A), unit.Pos.Add(box.B))
	}

	return source.NewBox(box.A, box.B)
}

func parseFullExpr(s string, cfg Config) (ast.Expr, error) {
	c := newCursor(s)

	e, err := parseExpr(c, cfg)
	if err != nil {
		return nil, err
	}

	c.skipSpace()

	if !c.eof() {
		if op, found := unconsumedOperator(c); found {
			return nil, &unknownOperatorError{op: op}
		}

		return nil, fmt.Errorf("unexpected trailing content in expression: %q", c.rest())
	}

	return e, nil
}

type unknownOperatorError struct {
	op rune
}

func (e *unknownOperatorError) Error() string {
	return fmt.Sprintf("operator %q requires the Phase 1 capability", e.op)
}

func wrapExprError(err error, origin source.Origin) *source.CompileError {
	if uo, ok := err.(*unknownOperatorError); ok {
		return source.NewError(source.CodeUnknownOperator, uo.Error(), origin)
	}

	return source.NewError(source.CodeParseError, err.Error(), origin)
}

// stripCall checks whether s is exactly "kw(...)" — kw, optional whitespace,
// a balanced parenthesized group, and nothing else — returning the inner
// text between the parens.
func stripCall(s, kw string) (string, bool) {
	if !strings.HasPrefix(s, kw) {
		return "", false
	}

	rest := strings.TrimLeft(s[len(kw):], " \t\r\n")
	if rest == "" || rest[0] != '(' {
		return "", false
	}

	runes := []rune(rest)
	depth := 0

	for i, r := range runes {
		switch r {
		case '(':
			depth++
		case ')':
			depth--

			if depth == 0 {
				after := strings.TrimSpace(string(runes[i+1:]))
				if after != "" {
					return "", false
				}

				return string(runes[1:i]), true
			}
		}
	}

	return "", false
}
