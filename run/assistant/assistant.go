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
	"context"
	"github.com/choreoform/choreoform/app"
	"github.com/choreoform/choreoform/conf/settings"
	"github.com/pkg/errors"
)

// SuggestionInstruction is the user input sent with every suggestion request.
const SuggestionInstruction = "Suggest next valid YAML lines based on the context"

var (
	ErrMissingApiKey     = errors.New("AI API key is not configured")
	ErrMalformedResponse = errors.New("malformed model response")
)

type SuggestionRequest struct {
	Context   string `json:"context"`
	UserInput string `json:"userInput"`
}

type ValidationRequest struct {
	YamlContext string `json:"yamlContext"`
	Parameter   string `json:"parameter"`
}

// Validation is the verdict for a single parameter. Reason is only set when IsValid is false.
type Validation struct {
	IsValid bool   `json:"isValid"`
	Reason  string `json:"reason,omitempty"`
}

type Suggester interface {
	// Suggest returns candidate continuations. An empty result is a success.
	Suggest(ctx context.Context, req *SuggestionRequest) ([]string, error)
}

type Validator interface {
	Validate(ctx context.Context, req *ValidationRequest) (*Validation, error)
}

type Assistant interface {
	Suggester
	Validator
}

type Maker interface {
	Make(config *settings.AI) Assistant
}

type nativeMaker struct {
	fnd app.Foundation
}

func CreateMaker(fnd app.Foundation) Maker {
	return &nativeMaker{
		fnd: fnd,
	}
}

func (m *nativeMaker) Make(config *settings.AI) Assistant {
	if m.fnd.DryRun() {
		return &dryRunAssistant{fnd: m.fnd}
	}
	return &geminiAssistant{
		fnd:      m.fnd,
		client:   m.fnd.HttpClient(config.TimeoutDuration()),
		endpoint: config.Endpoint,
		model:    config.Model,
		apiKey:   config.ApiKey,
	}
}

type dryRunAssistant struct {
	fnd app.Foundation
}

func (a *dryRunAssistant) Suggest(ctx context.Context, req *SuggestionRequest) ([]string, error) {
	a.fnd.Logger().Infof("Dry run: skipping suggestion request")
	return []string{}, nil
}

func (a *dryRunAssistant) Validate(ctx context.Context, req *ValidationRequest) (*Validation, error) {
	a.fnd.Logger().Infof("Dry run: skipping validation of %q", req.Parameter)
	return &Validation{IsValid: true}, nil
}
