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

package assistant

import (
	"bytes"
	"github.com/Masterminds/sprig"
	"github.com/pkg/errors"
	"text/template"
)

const suggestionPrompt = `You are an AI assistant that provides YAML configuration suggestions based on context and user input.

Context:
{{ .Context | trim }}

User Input: {{ .UserInput | trim }}

Provide an array of YAML configuration suggestions that are relevant to the context and user input. The suggestions should be valid YAML configurations.
Respond with a JSON object of the form {"suggestions": ["..."]} where each string is a suggestion.
Do not include any explanation. For example:
{"suggestions": {{ list "apiVersion: openchoreo.dev/v1alpha1" "kind: Component" "metadata:" | toJson }}}
`

const validationPrompt = `You are an expert YAML validator. Given the following YAML context and a proposed parameter, determine if the parameter is valid in the context.

YAML Context:

{{ .YamlContext | trim | indent 4 }}

Proposed Parameter: {{ .Parameter | trim | quote }}

Respond with JSON in the following format:

{"isValid": true|false, "reason": "A brief explanation if isValid is false"}

If the parameter is valid, isValid should be true and the reason should be omitted. If the parameter is invalid, isValid should be false and the reason should explain why. Focus on whether the parameter makes sense semantically and structurally within the YAML context.

Consider the OpenChoreo YAML Configuration Guide when making your determination. You should assume the user is following the guide.

Pay close attention to indentation and type mismatches. For example, if the YAML context expects a boolean, but the parameter is a string, then it is invalid.

Be concise.
`

var prompts = template.Must(template.New("prompts").Funcs(sprig.TxtFuncMap()).Parse(
	`{{ define "suggestion" }}` + suggestionPrompt + `{{ end }}` +
		`{{ define "validation" }}` + validationPrompt + `{{ end }}`,
))

func renderPrompt(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := prompts.ExecuteTemplate(&buf, name, data); err != nil {
		return "", errors.Errorf("failed to execute %s prompt: %v", name, err)
	}
	return buf.String(), nil
}
