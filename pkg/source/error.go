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
package source

import (
	"fmt"
	"strings"
)

// Code is the fixed taxonomy of compile error kinds reported in the "code"
// field of the error response.
type Code string

// The full error taxonomy. Every compile-time failure carries exactly one of
// these.
const (
	CodeInvalidInput        Code = "InvalidInput"
	CodeUnexpectedCharacter Code = "UnexpectedCharacter"
	CodeUnterminatedGroup   Code = "UnterminatedGroup"
	CodeUnterminatedString  Code = "UnterminatedString"
	CodeParseError          Code = "ParseError"
	CodeUnknownOperator     Code = "UnknownOperator"
	CodeNoCurrentRegion     Code = "NoCurrentRegion"
	CodeRegionModeConflict  Code = "RegionModeConflict"
	CodeUnknownRegion       Code = "UnknownRegion"
	CodeCyclicDefinition    Code = "CyclicDefinition"
	CodeMetadataConflict    Code = "MetadataConflict"
	CodeSerializationError  Code = "SerializationError"
)

// CompileError is the structured diagnostic returned by any pipeline stage.
// It is never used to represent success; a CompileError always aborts the
// pipeline that produced it.
type CompileError struct {
	Kind      Code
	Msg       string
	Locations []Origin
}

// NewError builds a CompileError attributed to zero or more origins. With no
// origins, the error still carries a code and message but no location.
func NewError(kind Code, msg string, origins ...Origin) *CompileError {
	return &CompileError{Kind: kind, Msg: msg, Locations: origins}
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	if len(e.Locations) == 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}

	locs := make([]string, len(e.Locations))
	for i, o := range e.Locations {
		locs[i] = fmt.Sprintf("%d:%d", o.UnitIndex, o.StatementIndex)
	}

	return fmt.Sprintf("%s: %s (at %s)", e.Kind, e.Msg, strings.Join(locs, ", "))
}

// Code returns the error's taxonomy code.
func (e *CompileError) Code() Code {
	return e.Kind
}
