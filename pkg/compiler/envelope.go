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
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/Schem-at/Insign/pkg/source"
)

// ParseEnvelope is the input normalizer: it validates the request envelope
// (an ordered array of {pos, text} records) and assigns each unit its
// zero-based index. Envelope decoding is the one place the core reaches for
// encoding/json directly rather than the hand-rolled value parser in
// pkg/parser, because the envelope is a fixed, small schema rather than the
// open-ended metadata value lattice that needs int64/float64 to survive a
// round trip.
func ParseEnvelope(data []byte) ([]source.Unit, *source.CompileError) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw []map[string]any

	if err := dec.Decode(&raw); err != nil {
		return nil, invalidInput("envelope must be a JSON array of {pos, text} records: %s", err)
	}

	if dec.More() {
		return nil, invalidInput("unexpected trailing content after the envelope array")
	}

	units := make([]source.Unit, 0, len(raw))

	for i, obj := range raw {
		unit, err := parseUnit(obj, i)
		if err != nil {
			return nil, err
		}

		units = append(units, unit)
	}

	return units, nil
}

func parseUnit(obj map[string]any, index int) (source.Unit, *source.CompileError) {
	posVal, ok := obj["pos"]
	if !ok {
		return source.Unit{}, invalidInput("unit %d: missing 'pos'", index)
	}

	posArr, ok := posVal.([]any)
	if !ok || len(posArr) != 3 {
		return source.Unit{}, invalidInput("unit %d: 'pos' must be a 3-element array of integers", index)
	}

	var coords [3]int32

	for axis, v := range posArr {
		n, ok := v.(json.Number)
		if !ok {
			return source.Unit{}, invalidInput("unit %d: pos[%d] must be an integer", index, axis)
		}

		iv, err := n.Int64()
		if err != nil {
			return source.Unit{}, invalidInput("unit %d: pos[%d] must be an integer, got %q", index, axis, n.String())
		}

		if iv < math.MinInt32 || iv > math.MaxInt32 {
			return source.Unit{}, invalidInput("unit %d: pos[%d] out of 32-bit range", index, axis)
		}

		coords[axis] = int32(iv)
	}

	textVal, ok := obj["text"]
	if !ok {
		return source.Unit{}, invalidInput("unit %d: missing 'text'", index)
	}

	text, ok := textVal.(string)
	if !ok {
		return source.Unit{}, invalidInput("unit %d: 'text' must be a string", index)
	}

	return source.Unit{
		Index: uint32(index),
		Pos:   source.Position{X: coords[0], Y: coords[1], Z: coords[2]},
		Text:  text,
	}, nil
}

func invalidInput(format string, args ...any) *source.CompileError {
	return source.NewError(source.CodeInvalidInput, fmt.Sprintf(format, args...))
}
