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
	"context"
	"encoding/json"
	"github.com/choreoform/choreoform/app"
	"github.com/pkg/errors"
	"io"
	"net/http"
	"net/url"
	"strings"
)

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content      content `json:"content"`
	FinishReason string  `json:"finishReason"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// geminiAssistant talks to the generateContent method of the Gemini REST API.
type geminiAssistant struct {
	fnd      app.Foundation
	client   app.HttpClient
	endpoint string
	model    string
	apiKey   string
}

func (a *geminiAssistant) Suggest(ctx context.Context, req *SuggestionRequest) ([]string, error) {
	prompt, err := renderPrompt("suggestion", req)
	if err != nil {
		return nil, err
	}
	text, err := a.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return parseSuggestions(text)
}

func (a *geminiAssistant) Validate(ctx context.Context, req *ValidationRequest) (*Validation, error) {
	prompt, err := renderPrompt("validation", req)
	if err != nil {
		return nil, err
	}
	text, err := a.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return parseValidation(text)
}

func (a *geminiAssistant) url() string {
	return strings.TrimRight(a.endpoint, "/") + "/v1beta/models/" + url.PathEscape(a.model) + ":generateContent"
}

// generate sends a single user prompt and returns the text of the first candidate.
func (a *geminiAssistant) generate(ctx context.Context, prompt string) (string, error) {
	if a.apiKey == "" {
		return "", ErrMissingApiKey
	}
	body, err := json.Marshal(&generateRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: prompt}}},
		},
		GenerationConfig: generationConfig{ResponseMimeType: "application/json"},
	})
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url(), bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", a.apiKey)
	a.fnd.Logger().Debugf("Sending generate request for model %s", a.model)

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return "", errors.Wrap(err, "generate request failed")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "reading generate response failed")
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error.Message != "" {
			return "", errors.Errorf("model returned status %d: %s", resp.StatusCode, errResp.Error.Message)
		}
		return "", errors.Errorf("model returned status %d", resp.StatusCode)
	}

	var genResp generateResponse
	if err = json.Unmarshal(respBody, &genResp); err != nil {
		return "", errors.Wrap(ErrMalformedResponse, err.Error())
	}
	if len(genResp.Candidates) == 0 {
		return "", errors.Wrap(ErrMalformedResponse, "no candidates")
	}
	var sb strings.Builder
	for _, p := range genResp.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	if sb.Len() == 0 {
		return "", errors.Wrapf(ErrMalformedResponse, "empty candidate (finish reason %s)", genResp.Candidates[0].FinishReason)
	}
	return sb.String(), nil
}

// stripFences removes a surrounding markdown code fence.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		text = text[nl+1:]
	} else {
		text = strings.TrimPrefix(text, "```")
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "```"))
}

// parseSuggestions accepts either {"suggestions": [...]} or a bare array of strings.
func parseSuggestions(text string) ([]string, error) {
	text = stripFences(text)
	var raw []interface{}
	if strings.HasPrefix(text, "[") {
		if err := json.Unmarshal([]byte(text), &raw); err != nil {
			return nil, errors.Wrap(ErrMalformedResponse, err.Error())
		}
	} else {
		var obj struct {
			Suggestions *[]interface{} `json:"suggestions"`
		}
		if err := json.Unmarshal([]byte(text), &obj); err != nil {
			return nil, errors.Wrap(ErrMalformedResponse, err.Error())
		}
		if obj.Suggestions == nil {
			return nil, errors.Wrap(ErrMalformedResponse, "missing suggestions")
		}
		raw = *obj.Suggestions
	}

	suggestions := make([]string, 0, len(raw))
	for i, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, errors.Wrapf(ErrMalformedResponse, "suggestion %d is not a string", i)
		}
		suggestions = append(suggestions, s)
	}
	return suggestions, nil
}

func parseValidation(text string) (*Validation, error) {
	var obj struct {
		IsValid *bool  `json:"isValid"`
		Reason  string `json:"reason"`
	}
	if err := json.Unmarshal([]byte(stripFences(text)), &obj); err != nil {
		return nil, errors.Wrap(ErrMalformedResponse, err.Error())
	}
	if obj.IsValid == nil {
		return nil, errors.Wrap(ErrMalformedResponse, "missing isValid")
	}
	validation := &Validation{IsValid: *obj.IsValid}
	if !validation.IsValid {
		validation.Reason = obj.Reason
	}
	return validation, nil
}
