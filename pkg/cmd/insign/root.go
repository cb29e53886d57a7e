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

// Package insign is the thin CLI shell around the compiler core: it owns
// everything the core deliberately stays silent about (stdin/stdout/file
// plumbing, logging, exit codes) and nothing of the compiler's own logic.
package insign

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is filled in when building with a release script, left blank for
// "go run"/"go install" builds.
var Version string

var rootCmd = &cobra.Command{
	Use:   "insign",
	Short: "A deterministic compiler from the Insign sign DSL to a regions document.",
	Long:  "Insign compiles sign-friendly source text into a regions-and-metadata JSON document.",
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "version") {
			fmt.Print("insign ")

			if Version != "" {
				fmt.Print(Version)
			} else {
				fmt.Print("(unknown version)")
			}

			fmt.Println()
		}
	},
}

// Execute adds every child command to the root command and runs it. Called
// once by cmd/insign/main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().Bool("version", false, "report the version of this executable")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
}
