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
package insign

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// GetFlag gets an expected bool flag, or exits if the flag was never
// registered — a programmer error, not a user-facing one.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// isTerminal reports whether stderr is attached to an interactive terminal,
// used to decide whether diagnostics may be colorized.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

const (
	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[0m"
)

// warnf writes a diagnostic line to stderr, colorized when stderr is a
// terminal.
func warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)

	if isTerminal() {
		fmt.Fprintf(os.Stderr, "%s%s%s\n", ansiRed, msg, ansiReset)
		return
	}

	fmt.Fprintln(os.Stderr, msg)
}
