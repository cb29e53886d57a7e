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
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Schem-at/Insign/pkg/compiler"
	"github.com/Schem-at/Insign/pkg/source"
)

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "compile a request envelope into a regions document",
	Long: `Compile reads a JSON request envelope from a file argument, or from stdin when
no file is given, and writes the resulting regions document (or a structured
error) to stdout. Input may also be JSON-lines: one envelope array per line,
compiled independently, one result line written per input line.`,
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}

		requestID := uuid.New().String()
		entry := log.WithField("request_id", requestID)

		data, err := readRequest(args)
		if err != nil {
			warnf("insign: %s", err)
			os.Exit(1)
		}

		entry.WithField("bytes", len(data)).Debug("read request")

		cfg := compiler.Config{EnablePhase1: GetFlag(cmd, "phase1")}
		pretty := GetFlag(cmd, "pretty")

		start := time.Now()
		exitCode := runLines(os.Stdout, data, cfg, pretty)
		entry.WithField("elapsed", time.Since(start)).Debug("compile finished")

		os.Exit(exitCode)
	},
}

func readRequest(args []string) ([]byte, error) {
	if len(args) == 1 {
		return os.ReadFile(args[0])
	}

	return io.ReadAll(os.Stdin)
}

// runLines dispatches a single JSON-array envelope as one request, or, when
// the input looks like JSON-lines (more than one non-empty line), compiles
// each line independently and writes one result line per input line. It
// returns the process exit code: the worst of 0 (all succeeded), 1 (any
// envelope error), 2 (any compile error) seen across every line.
func runLines(w io.Writer, data []byte, cfg compiler.Config, pretty bool) int {
	lines := splitNonEmptyLines(data)

	if len(lines) <= 1 {
		trimmed := bytes.TrimSpace(data)
		return compileOne(w, trimmed, cfg, pretty)
	}

	worst := 0

	for _, line := range lines {
		code := compileOne(w, []byte(line), cfg, pretty)
		if code > worst {
			worst = code
		}

		fmt.Fprintln(w)
	}

	return worst
}

func splitNonEmptyLines(data []byte) []string {
	var lines []string

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}

	return lines
}

func compileOne(w io.Writer, request []byte, cfg compiler.Config, pretty bool) int {
	docJSON, cerr := compiler.CompileJSON(request, cfg)
	if cerr != nil {
		out, err := compiler.FormatError(cerr, pretty)
		if err != nil {
			warnf("insign: failed to format error response: %s", err)
			return 2
		}

		w.Write(out) //nolint:errcheck

		if cerr.Code() == source.CodeInvalidInput {
			return 1
		}

		return 2
	}

	out, err := compiler.FormatSuccess(docJSON, pretty)
	if err != nil {
		warnf("insign: failed to format success response: %s", err)
		return 2
	}

	w.Write(out) //nolint:errcheck

	return 0
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().Bool("pretty", false, "indent the JSON output")
	compileCmd.Flags().Bool("phase1", true, "enable the Phase 1 operator extension (-, &, ^)")
}
