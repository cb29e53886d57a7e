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

	"github.com/Schem-at/Insign/pkg/source"
)

// errorResponse mirrors the fixed, small error envelope schema of the
// external interfaces contract. Its field order, not alphabetical sorting,
// is what the JSON tag order below reproduces on the wire.
type errorResponse struct {
	Status   string        `json:"status"`
	Code     string        `json:"code"`
	Message  string        `json:"message"`
	Location *locationJSON `json:"location,omitempty"`
}

type locationJSON struct {
	TupleIndex     uint32 `json:"tuple_index"`
	StatementIndex uint32 `json:"statement_index"`
}

// FormatError renders a CompileError as the error response envelope. Only
// the first location is surfaced: the wire schema documents a single
// optional location object, while a CompileError may batch several when the
// resolver reports independent conflicts together; the first is always the
// earliest in (unit_index, statement_index) order the offending stage
// recorded.
func FormatError(err *source.CompileError, pretty bool) ([]byte, error) {
	resp := errorResponse{
		Status:  "error",
		Code:    string(err.Code()),
		Message: err.Msg,
	}

	if len(err.Locations) > 0 {
		loc := err.Locations[0]
		resp.Location = &locationJSON{TupleIndex: loc.UnitIndex, StatementIndex: loc.StatementIndex}
	}

	if pretty {
		return json.MarshalIndent(resp, "", "  ")
	}

	return json.Marshal(resp)
}

// FormatSuccess reindents an already-canonical document (from
// document.Marshal) for --pretty output without disturbing key order: JSON
// objects carry no order of their own on the wire, so re-indenting the
// canonical bytes is equivalent to re-marshaling the same ordered tree.
func FormatSuccess(docJSON []byte, pretty bool) ([]byte, error) {
	if !pretty {
		return docJSON, nil
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, docJSON, "", "  "); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
