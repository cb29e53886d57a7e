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

import "testing"

func TestNewBoxNormalizesCorners(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Position
		wantMn Position
		wantMx Position
	}{
		{"already normalized", Position{0, 0, 0}, Position{3, 2, 1}, Position{0, 0, 0}, Position{3, 2, 1}},
		{"reversed", Position{3, 2, 1}, Position{0, 0, 0}, Position{0, 0, 0}, Position{3, 2, 1}},
		{"mixed per axis", Position{5, -2, 9}, Position{-1, 4, 0}, Position{-1, -2, 0}, Position{5, 4, 9}},
		{"single point", Position{7, 7, 7}, Position{7, 7, 7}, Position{7, 7, 7}, Position{7, 7, 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBox(tt.a, tt.b)
			if b.Min != tt.wantMn || b.Max != tt.wantMx {
				t.Fatalf("NewBox(%v, %v) = %v..%v, want %v..%v", tt.a, tt.b, b.Min, b.Max, tt.wantMn, tt.wantMx)
			}
		})
	}
}

func TestPositionAdd(t *testing.T) {
	anchor := Position{10, 64, 10}
	rel := Position{3, -2, 0}

	got := anchor.Add(rel)
	want := Position{13, 62, 10}

	if got != want {
		t.Fatalf("Add() = %v, want %v", got, want)
	}
}

func TestSortBoxesDedupsAndOrders(t *testing.T) {
	b1 := NewBox(Position{0, 0, 0}, Position{1, 1, 1})
	b2 := NewBox(Position{5, 5, 5}, Position{6, 6, 6})
	b3 := NewBox(Position{0, 0, 0}, Position{1, 1, 1}) // duplicate of b1

	got := SortBoxes([]Box{b2, b1, b3})

	if len(got) != 2 {
		t.Fatalf("expected 2 deduplicated boxes, got %d: %v", len(got), got)
	}

	if got[0] != b1 || got[1] != b2 {
		t.Fatalf("expected sorted [b1, b2], got %v", got)
	}
}

func TestBoxLess(t *testing.T) {
	small := NewBox(Position{0, 0, 0}, Position{1, 1, 1})
	large := NewBox(Position{0, 0, 0}, Position{2, 1, 1})
	elsewhere := NewBox(Position{1, 0, 0}, Position{1, 1, 1})

	if !small.Less(large) {
		t.Fatalf("expected smaller max to sort first when min is equal")
	}

	if !large.Less(elsewhere) {
		t.Fatalf("expected smaller min.x to sort first")
	}
}
