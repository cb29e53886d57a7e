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
	"strconv"

	"github.com/Schem-at/Insign/pkg/source"
)

// parseBox reads "[ int, int, int ] , [ int, int, int ]" and returns the two
// raw corners, unnormalized and untranslated.
func parseBox(c *cursor) (source.Position, source.Position, error) {
	var zero source.Position

	a, err := parseTriple(c)
	if err != nil {
		return zero, zero, err
	}

	c.skipSpace()

	if r, ok := c.peek(); !ok || r != ',' {
		return zero, zero, fmt.Errorf("expected ',' between box corners")
	}

	c.advance()
	c.skipSpace()

	b, err := parseTriple(c)
	if err != nil {
		return zero, zero, err
	}

	return a, b, nil
}

func parseTriple(c *cursor) (source.Position, error) {
	var zero source.Position

	c.skipSpace()

	if r, ok := c.peek(); !ok || r != '[' {
		return zero, fmt.Errorf("expected '[' to start a coordinate triple")
	}

	c.advance()

	x, err := parseSignedInt(c)
	if err != nil {
		return zero, err
	}

	if err := expectComma(c); err != nil {
		return zero, err
	}

	y, err := parseSignedInt(c)
	if err != nil {
		return zero, err
	}

	if err := expectComma(c); err != nil {
		return zero, err
	}

	z, err := parseSignedInt(c)
	if err != nil {
		return zero, err
	}

	c.skipSpace()

	if r, ok := c.peek(); !ok || r != ']' {
		return zero, fmt.Errorf("expected ']' to close a coordinate triple")
	}

	c.advance()

	return source.Position{X: int32(x), Y: int32(y), Z: int32(z)}, nil
}

func expectComma(c *cursor) error {
	c.skipSpace()

	if r, ok := c.peek(); !ok || r != ',' {
		return fmt.Errorf("expected ',' inside a coordinate triple")
	}

	c.advance()
	c.skipSpace()

	return nil
}

func parseSignedInt(c *cursor) (int64, error) {
	c.skipSpace()

	start := c.pos

	if r, ok := c.peek(); ok && r == '-' {
		c.advance()
	}

	digitsStart := c.pos

	for {
		r, ok := c.peek()
		if !ok || r < '0' || r > '9' {
			break
		}

		c.advance()
	}

	if c.pos == digitsStart {
		return 0, fmt.Errorf("expected an integer")
	}

	n, err := strconv.ParseInt(string(c.text[start:c.pos]), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("coordinate out of 32-bit range: %w", err)
	}

	return n, nil
}
