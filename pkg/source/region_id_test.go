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

func TestIsValidRegionID(t *testing.T) {
	valid := []string{"a", "cpu.core", "dataloop", "A_1.b2", "...", "_"}
	invalid := []string{"", "cpu core", "a/b", "a,b", "a=b", "é"}

	for _, s := range valid {
		if !IsValidRegionID(s) {
			t.Errorf("IsValidRegionID(%q) = false, want true", s)
		}
	}

	for _, s := range invalid {
		if IsValidRegionID(s) {
			t.Errorf("IsValidRegionID(%q) = true, want false", s)
		}
	}
}
