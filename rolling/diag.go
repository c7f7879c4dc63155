/*
 * Copyright 2025 The TimeRoll Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package rolling

// Diagnostic codes emitted during plan normalization.
const (
	// DiagDefaultQuantile is emitted when a quantile is requested by bare
	// name and silently defaults to the 0.5 level.
	DiagDefaultQuantile = "default-quantile"
)

// Diagnostic is a structured advisory collected while a specification is
// normalized. Diagnostics never fail the run; they surface choices the
// engine made on the caller's behalf.
type Diagnostic struct {
	// Code identifies the advisory.
	Code string
	// Unit names the function label or output column the advisory concerns.
	Unit string
	// Message is the human-readable explanation.
	Message string
}

// DiagnosticHandler receives every diagnostic of a call exactly once.
type DiagnosticHandler func(Diagnostic)
