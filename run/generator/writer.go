// Copyright 2025 The Choreoform Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package generator

import (
	"strings"
)

const (
	indentUnit = "  "
	separator  = "---\n"
)

// writer accumulates lines of a single document. Values are written verbatim.
type writer struct {
	sb strings.Builder
}

func (w *writer) line(level int, text string) {
	w.sb.WriteString(strings.Repeat(indentUnit, level))
	w.sb.WriteString(text)
	w.sb.WriteByte('\n')
}

func (w *writer) field(level int, key, value string) {
	w.line(level, key+": "+value)
}

func (w *writer) String() string {
	return w.sb.String()
}

// joinDocuments concatenates the non-empty documents, putting a separator line in front of
// every document except the first one.
func joinDocuments(documents ...string) string {
	var sb strings.Builder
	for _, doc := range documents {
		if doc == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
			sb.WriteString(separator)
		}
		sb.WriteString(doc)
	}
	return sb.String()
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func quote(value string) string {
	return `"` + value + `"`
}
