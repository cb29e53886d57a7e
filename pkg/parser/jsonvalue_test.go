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
	"reflect"
	"testing"
)

func parseJSON(t *testing.T, s string) any {
	t.Helper()

	c := newCursor(s)

	v, err := parseJSONValue(c)
	if err != nil {
		t.Fatalf("parseJSONValue(%q) error: %v", s, err)
	}

	if !c.remainderIsBlank() {
		t.Fatalf("parseJSONValue(%q) left trailing content: %q", s, c.rest())
	}

	return v
}

func TestParseJSONValueScalars(t *testing.T) {
	if v := parseJSON(t, "null"); v != nil {
		t.Fatalf("null = %#v", v)
	}

	if v := parseJSON(t, "true"); v != true {
		t.Fatalf("true = %#v", v)
	}

	if v := parseJSON(t, `"hi"`); v != "hi" {
		t.Fatalf(`"hi" = %#v`, v)
	}
}

func TestParseJSONValueIntVsFloat(t *testing.T) {
	iv := parseJSON(t, "42")
	if n, ok := iv.(int64); !ok || n != 42 {
		t.Fatalf("42 parsed as %#v, want int64(42)", iv)
	}

	fv := parseJSON(t, "2.0")
	if n, ok := fv.(float64); !ok || n != 2.0 {
		t.Fatalf("2.0 parsed as %#v, want float64(2.0)", fv)
	}

	ev := parseJSON(t, "1e3")
	if n, ok := ev.(float64); !ok || n != 1000 {
		t.Fatalf("1e3 parsed as %#v, want float64(1000)", ev)
	}
}

func TestParseJSONValueArrayAndObject(t *testing.T) {
	v := parseJSON(t, `{"a":[1,2,3],"b":{"c":true}}`)

	want := map[string]any{
		"a": []any{int64(1), int64(2), int64(3)},
		"b": map[string]any{"c": true},
	}

	if !reflect.DeepEqual(v, want) {
		t.Fatalf("got %#v, want %#v", v, want)
	}
}

func TestParseJSONValueStringEscapes(t *testing.T) {
	v := parseJSON(t, `"line\nbreak é end"`)

	want := "line\nbreak é end"
	if v != want {
		t.Fatalf("got %q, want %q", v, want)
	}
}

func TestParseJSONValueSurrogatePair(t *testing.T) {
	// U+1F600 GRINNING FACE, encoded as a UTF-16 surrogate pair.
	v := parseJSON(t, `"`+`\`+`ud83d`+`\`+`ude00"`)

	want := "\U0001F600"
	if v != want {
		t.Fatalf("got %q, want %q", v, want)
	}
}

func TestParseJSONValueRejectsTrailingGarbage(t *testing.T) {
	c := newCursor("42 garbage")

	if _, err := parseJSONValue(c); err != nil {
		t.Fatalf("unexpected error parsing the number itself: %v", err)
	}

	if c.remainderIsBlank() {
		t.Fatal("expected trailing content to remain unconsumed")
	}
}

func TestParseJSONValueRejectsUnterminatedString(t *testing.T) {
	c := newCursor(`"unterminated`)

	if _, err := parseJSONValue(c); err == nil {
		t.Fatal("expected an error for an unterminated string")
	}
}
