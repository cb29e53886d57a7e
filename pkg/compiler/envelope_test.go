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
	"testing"

	"github.com/Schem-at/Insign/pkg/source"
)

func TestParseEnvelopeValid(t *testing.T) {
	units, err := ParseEnvelope([]byte(`[{"pos":[10,64,10],"text":"@box=rc([0,0,0],[1,1,1])"},{"pos":[0,0,0],"text":""}]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(units) != 2 {
		t.Fatalf("got %d units, want 2", len(units))
	}

	if units[0].Index != 0 || units[1].Index != 1 {
		t.Fatalf("units not assigned sequential indices: %+v", units)
	}

	want := source.Position{X: 10, Y: 64, Z: 10}
	if units[0].Pos != want {
		t.Fatalf("got pos %+v, want %+v", units[0].Pos, want)
	}
}

func TestParseEnvelopeNotAnArray(t *testing.T) {
	_, err := ParseEnvelope([]byte(`{"pos":[0,0,0],"text":""}`))
	if err == nil {
		t.Fatal("expected an error")
	}

	if err.Code() != source.CodeInvalidInput {
		t.Fatalf("got code %v, want InvalidInput", err.Code())
	}
}

func TestParseEnvelopeTrailingContent(t *testing.T) {
	_, err := ParseEnvelope([]byte(`[]garbage`))
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestParseEnvelopeMissingPos(t *testing.T) {
	_, err := ParseEnvelope([]byte(`[{"text":"x"}]`))
	if err == nil || err.Code() != source.CodeInvalidInput {
		t.Fatalf("got err %v, want InvalidInput", err)
	}
}

func TestParseEnvelopePosWrongLength(t *testing.T) {
	_, err := ParseEnvelope([]byte(`[{"pos":[0,0],"text":"x"}]`))
	if err == nil || err.Code() != source.CodeInvalidInput {
		t.Fatalf("got err %v, want InvalidInput", err)
	}
}

func TestParseEnvelopePosNonInteger(t *testing.T) {
	_, err := ParseEnvelope([]byte(`[{"pos":[0.5,0,0],"text":"x"}]`))
	if err == nil || err.Code() != source.CodeInvalidInput {
		t.Fatalf("got err %v, want InvalidInput", err)
	}
}

func TestParseEnvelopeMissingText(t *testing.T) {
	_, err := ParseEnvelope([]byte(`[{"pos":[0,0,0]}]`))
	if err == nil || err.Code() != source.CodeInvalidInput {
		t.Fatalf("got err %v, want InvalidInput", err)
	}
}

func TestParseEnvelopeTextNotString(t *testing.T) {
	_, err := ParseEnvelope([]byte(`[{"pos":[0,0,0],"text":5}]`))
	if err == nil || err.Code() != source.CodeInvalidInput {
		t.Fatalf("got err %v, want InvalidInput", err)
	}
}
