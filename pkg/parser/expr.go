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

	"github.com/Schem-at/Insign/pkg/ast"
)

// Config carries the one documented core capability: whether the Phase 1
// operator extension (-, &, ^) is enabled. With it disabled the grammar is
// exactly the Phase 0 subset (term ("+" term)*).
type Config struct {
	EnablePhase1 bool
}

// DefaultConfig enables Phase 1, since Phase 0 is a strict subset of it and
// most callers want the full operator set available.
func DefaultConfig() Config {
	return Config{EnablePhase1: true}
}

// parseExpr parses the region-set expression grammar with precedence
// & > + > - > ^ (all left-associative). When cfg.EnablePhase1 is false, the
// -, &, and ^ levels collapse straight through to term, so any occurrence of
// those operators is left unconsumed for the caller to report as
// UnknownOperator.
func parseExpr(c *cursor, cfg Config) (ast.Expr, error) {
	return parseXor(c, cfg)
}

func parseXor(c *cursor, cfg Config) (ast.Expr, error) {
	if !cfg.EnablePhase1 {
		return parseMinus(c, cfg)
	}

	left, err := parseMinus(c, cfg)
	if err != nil {
		return nil, err
	}

	for {
		c.skipSpace()

		r, ok := c.peek()
		if !ok || r != '^' {
			return left, nil
		}

		c.advance()

		right, err := parseMinus(c, cfg)
		if err != nil {
			return nil, err
		}

		left = &ast.BinOp{Op: '^', Left: left, Right: right}
	}
}

func parseMinus(c *cursor, cfg Config) (ast.Expr, error) {
	if !cfg.EnablePhase1 {
		return parsePlus(c, cfg)
	}

	left, err := parsePlus(c, cfg)
	if err != nil {
		return nil, err
	}

	for {
		c.skipSpace()

		r, ok := c.peek()
		if !ok || r != '-' {
			return left, nil
		}

		c.advance()

		right, err := parsePlus(c, cfg)
		if err != nil {
			return nil, err
		}

		left = &ast.BinOp{Op: '-', Left: left, Right: right}
	}
}

func parsePlus(c *cursor, cfg Config) (ast.Expr, error) {
	left, err := parseAnd(c, cfg)
	if err != nil {
		return nil, err
	}

	for {
		c.skipSpace()

		r, ok := c.peek()
		if !ok || r != '+' {
			return left, nil
		}

		c.advance()

		right, err := parseAnd(c, cfg)
		if err != nil {
			return nil, err
		}

		left = &ast.BinOp{Op: '+', Left: left, Right: right}
	}
}

func parseAnd(c *cursor, cfg Config) (ast.Expr, error) {
	if !cfg.EnablePhase1 {
		return parseTerm(c, cfg)
	}

	left, err := parseTerm(c, cfg)
	if err != nil {
		return nil, err
	}

	for {
		c.skipSpace()

		r, ok := c.peek()
		if !ok || r != '&' {
			return left, nil
		}

		c.advance()

		right, err := parseTerm(c, cfg)
		if err != nil {
			return nil, err
		}

		left = &ast.BinOp{Op: '&', Left: left, Right: right}
	}
}

func parseTerm(c *cursor, cfg Config) (ast.Expr, error) {
	c.skipSpace()

	r, ok := c.peek()
	if !ok {
		return nil, fmt.Errorf("expected a region reference or '('")
	}

	if r == '(' {
		c.advance()

		inner, err := parseExpr(c, cfg)
		if err != nil {
			return nil, err
		}

		c.skipSpace()

		if r, ok := c.peek(); !ok || r != ')' {
			if op, found := unconsumedOperator(c); found && !cfg.EnablePhase1 {
				return nil, &unknownOperatorError{op: op}
			}

			return nil, fmt.Errorf("expected ')' to close a parenthesized expression")
		}

		c.advance()

		return inner, nil
	}

	id := c.scanIdent()
	if id == "" {
		return nil, fmt.Errorf("expected a region reference or '('")
	}

	return &ast.RegionRef{ID: id}, nil
}

// unconsumedOperator reports whether the next non-space rune at the cursor
// is one of the Phase 1 operators that was left unparsed because Phase 1 is
// disabled. Used to distinguish UnknownOperator from a generic ParseError.
func unconsumedOperator(c *cursor) (rune, bool) {
	cp := *c
	cp.skipSpace()

	r, ok := cp.peek()
	if !ok {
		return 0, false
	}

	switch r {
	case '-', '&', '^':
		return r, true
	default:
		return 0, false
	}
}
