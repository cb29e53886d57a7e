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
package document

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"

	"github.com/Schem-at/Insign/pkg/source"
)

// Marshal renders doc as the canonical, byte-stable JSON object described
// in the serializer contract: $global first (if present), then wildcard
// targets sorted by their full "prefix.*" string, then region ids sorted
// lexicographically; every nested object's keys sorted the same way;
// arrays keep authored order.
func Marshal(doc *Document) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	w := &kvWriter{buf: &buf}

	if len(doc.Global) > 0 {
		v, err := marshalValue(doc.Global)
		if err != nil {
			return nil, err
		}

		w.write("$global", v)
	}

	wildcardNames := make([]string, 0, len(doc.Wildcards))
	for name := range doc.Wildcards {
		wildcardNames = append(wildcardNames, name)
	}

	sort.Slice(wildcardNames, func(i, j int) bool {
		return wildcardNames[i]+".*" < wildcardNames[j]+".*"
	})

	for _, name := range wildcardNames {
		v, err := marshalValue(doc.Wildcards[name])
		if err != nil {
			return nil, err
		}

		w.write(name+".*", v)
	}

	regionIDs := make([]string, 0, len(doc.Regions))
	for id := range doc.Regions {
		regionIDs = append(regionIDs, id)
	}

	sort.Strings(regionIDs)

	for _, id := range regionIDs {
		v, err := marshalRegion(doc.Regions[id])
		if err != nil {
			return nil, err
		}

		w.write(id, v)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// kvWriter appends comma-separated "key":value pairs to an opened object.
type kvWriter struct {
	buf   *bytes.Buffer
	first bool
}

func (w *kvWriter) write(key string, value []byte) {
	if w.first {
		w.buf.WriteByte(',')
	}

	w.first = true

	writeCanonicalString(w.buf, key)
	w.buf.WriteByte(':')
	w.buf.Write(value)
}

func marshalRegion(r *Region) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')
	w := &kvWriter{buf: &buf}

	if len(r.BoundingBoxes) > 0 {
		w.write("bounding_boxes", marshalBoxes(r.BoundingBoxes))
	}

	if len(r.Metadata) > 0 {
		v, err := marshalValue(r.Metadata)
		if err != nil {
			return nil, err
		}

		w.write("metadata", v)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

func marshalBoxes(boxes []source.Box) []byte {
	var buf bytes.Buffer

	buf.WriteByte('[')

	for i, b := range boxes {
		if i > 0 {
			buf.WriteByte(',')
		}

		fmt.Fprintf(&buf, "[[%d,%d,%d],[%d,%d,%d]]",
			b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
	}

	buf.WriteByte(']')

	return buf.Bytes()
}

// marshalValue renders an arbitrary metadata value (the JSON value lattice
// produced by the parser's embedded JSON parser) canonically.
func marshalValue(v any) ([]byte, error) {
	var buf bytes.Buffer

	if err := writeCanonicalValue(&buf, v); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func writeCanonicalValue(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		if val {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case int64:
		buf.WriteString(strconv.FormatInt(val, 10))
	case float64:
		writeCanonicalFloat(buf, val)
	case string:
		writeCanonicalString(buf, val)
	case []any:
		buf.WriteByte('[')

		for i, e := range val {
			if i > 0 {
				buf.WriteByte(',')
			}

			if err := writeCanonicalValue(buf, e); err != nil {
				return err
			}
		}

		buf.WriteByte(']')
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}

		sort.Strings(keys)

		buf.WriteByte('{')

		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}

			writeCanonicalString(buf, k)
			buf.WriteByte(':')

			if err := writeCanonicalValue(buf, val[k]); err != nil {
				return err
			}
		}

		buf.WriteByte('}')
	default:
		return fmt.Errorf("document: unsupported metadata value type %T", v)
	}

	return nil
}

// writeCanonicalFloat uses Go's shortest round-trippable decimal for the
// mantissa, then guarantees a '.' or exponent is present so a float-kind
// number with an integral value (e.g. parsed from "2.0") never collides on
// the wire with an int-kind number of the same value.
func writeCanonicalFloat(buf *bytes.Buffer, f float64) {
	s := strconv.FormatFloat(f, 'g', -1, 64)

	hasDotOrExp := false

	for _, r := range s {
		if r == '.' || r == 'e' || r == 'E' {
			hasDotOrExp = true
			break
		}
	}

	if !hasDotOrExp {
		s += ".0"
	}

	buf.WriteString(s)
}

const hexDigits = "0123456789abcdef"

// writeCanonicalString escapes per RFC 8259, reserving \uXXXX for
// non-printable and non-ASCII characters so the output is byte-identical
// regardless of the platform's locale or default encoding.
func writeCanonicalString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')

	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		default:
			switch {
			case r >= 0x20 && r < 0x7f:
				buf.WriteRune(r)
			case r > 0xFFFF:
				writeSurrogatePair(buf, r)
			default:
				writeShortEscape(buf, uint16(r))
			}
		}
	}

	buf.WriteByte('"')
}

func writeShortEscape(buf *bytes.Buffer, v uint16) {
	buf.WriteString(`\u`)
	buf.WriteByte(hexDigits[(v>>12)&0xf])
	buf.WriteByte(hexDigits[(v>>8)&0xf])
	buf.WriteByte(hexDigits[(v>>4)&0xf])
	buf.WriteByte(hexDigits[v&0xf])
}

func writeSurrogatePair(buf *bytes.Buffer, r rune) {
	r -= 0x10000
	hi := 0xD800 + (r >> 10)
	lo := 0xDC00 + (r & 0x3FF)
	writeShortEscape(buf, uint16(hi))
	writeShortEscape(buf, uint16(lo))
}
