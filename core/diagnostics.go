/*
 * Copyright (C) 2026 Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */

package core

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// DiagnosticResult are the result of different checks giving information on how well the system is doing
type DiagnosticResult interface {
	// Name returns a simple and understandable name of the check
	Name() string

	// String returns the outcome of the check formatted as string
	String() string
}

// GenericDiagnosticResult is an implementation of the DiagnosticResult interface that contains a generic value.
type GenericDiagnosticResult struct {
	Title   string
	Outcome interface{}
}

// Name returns the name of the GenericDiagnosticResult
func (r *GenericDiagnosticResult) Name() string {
	return r.Title
}

// String returns the outcome of the GenericDiagnosticResult as string
func (r *GenericDiagnosticResult) String() string {
	return fmt.Sprintf("%v", r.Outcome)
}

// DiagnosticsReport holds the diagnostics of the engines in a system, keyed by engine name and then diagnostic name.
type DiagnosticsReport map[string]map[string]string

// NewDiagnosticsReport collects the diagnostics of all named, diagnosable engines in the system.
func NewDiagnosticsReport(system *System) DiagnosticsReport {
	result := DiagnosticsReport{}
	system.VisitEngines(func(engine Engine) {
		diagnosable, isDiagnosable := engine.(Diagnosable)
		named, isNamed := engine.(Named)
		if !isDiagnosable || !isNamed {
			return
		}
		results := map[string]string{}
		for _, d := range diagnosable.Diagnostics() {
			results[d.Name()] = d.String()
		}
		result[named.Name()] = results
	})
	return result
}

// String renders the report as indented text, with engines and their diagnostics sorted by name.
func (r DiagnosticsReport) String() string {
	var lines []string
	for _, engine := range slices.Sorted(maps.Keys(r)) {
		lines = append(lines, engine)
		for _, name := range slices.Sorted(maps.Keys(r[engine])) {
			lines = append(lines, fmt.Sprintf("\t%s: %s", name, r[engine][name]))
		}
	}
	return strings.Join(lines, "\n")
}
