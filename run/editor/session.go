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

package editor

import (
	"context"
	"github.com/choreoform/choreoform/app"
	"github.com/choreoform/choreoform/conf/types"
	"github.com/choreoform/choreoform/run/assistant"
	"github.com/choreoform/choreoform/run/lint"
	"github.com/choreoform/choreoform/run/templates"
	"github.com/pkg/errors"
	"strings"
	"sync"
)

var (
	ErrBusy                  = errors.New("an AI request is already in flight")
	ErrUnknownDocument       = errors.New("unknown document")
	ErrDescriptorUnavailable = errors.New("workload descriptor is only available while build is enabled")
)

type NoticeLevel string

const (
	InfoNotice  NoticeLevel = "info"
	ErrorNotice NoticeLevel = "error"
)

type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}

var (
	NoticeNoSuggestions          = Notice{Level: InfoNotice, Message: "No suggestions found at this time."}
	NoticeSuggestionsUnavailable = Notice{Level: ErrorNotice, Message: "Could not fetch AI suggestions."}
	NoticeValidationUnavailable  = Notice{Level: ErrorNotice, Message: "Could not validate the parameter."}
)

type Document string

const (
	ConfigDocument     Document = "config"
	DescriptorDocument Document = "descriptor"
)

const (
	ConfigFilename     = "config.yml"
	DescriptorFilename = "workload.yaml"
)

type Artifact struct {
	Filename string
	Content  string
}

// View is what a client renders for a session.
type View struct {
	Id                string                    `json:"id"`
	Template          templates.Name            `json:"template"`
	Config            *types.Config             `json:"config"`
	Descriptor        *types.WorkloadDescriptor `json:"descriptor"`
	Buffer            string                    `json:"buffer"`
	DescriptorPreview string                    `json:"descriptorPreview,omitempty"`
	Suggestions       []string                  `json:"suggestions"`
	Notice            *Notice                   `json:"notice,omitempty"`
	Busy              bool                      `json:"busy"`
	Hints             []lint.Hint               `json:"hints"`
}

type ValidationResult struct {
	IsValid bool    `json:"isValid"`
	Reason  string  `json:"reason,omitempty"`
	Notice  *Notice `json:"notice,omitempty"`
}

// Session holds one editor with its text buffer. At most one AI request runs at a time and
// responses that arrive after a template switch are discarded.
type Session struct {
	id        string
	fnd       app.Foundation
	editor    Editor
	suggester assistant.Suggester
	validator assistant.Validator

	mu          sync.Mutex
	state       *State
	buffer      string
	suggestions []string
	notice      *Notice
	busy        bool
	seq         uint64
}

func NewSession(
	id string,
	fnd app.Foundation,
	editor Editor,
	suggester assistant.Suggester,
	validator assistant.Validator,
	state *State,
) *Session {
	return &Session{
		id:          id,
		fnd:         fnd,
		editor:      editor,
		suggester:   suggester,
		validator:   validator,
		state:       state,
		buffer:      state.Render(),
		suggestions: []string{},
	}
}

func (s *Session) Id() string {
	return s.id
}

func (s *Session) State() *State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) View() *View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

func (s *Session) view() *View {
	descriptorPreview, _ := s.state.RenderDescriptor()
	suggestions := make([]string, len(s.suggestions))
	copy(suggestions, s.suggestions)
	var notice *Notice
	if s.notice != nil {
		n := *s.notice
		notice = &n
	}
	return &View{
		Id:                s.id,
		Template:          s.state.Template,
		Config:            s.state.Config.Clone(),
		Descriptor:        s.state.Descriptor.Clone(),
		Buffer:            s.buffer,
		DescriptorPreview: descriptorPreview,
		Suggestions:       suggestions,
		Notice:            notice,
		Busy:              s.busy,
		Hints:             s.state.Hints(),
	}
}

// update replaces the state and overwrites the buffer with the fresh rendering.
func (s *Session) update(state *State) {
	s.state = state
	s.buffer = state.Render()
	s.notice = nil
}

func (s *Session) Apply(action *Action) (*View, error) {
	if action.Op == SelectTemplateOp {
		return s.SelectTemplate(templates.Name(action.Value))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := s.editor.Apply(s.state, action)
	if err != nil {
		return nil, err
	}
	s.update(next)
	return s.view(), nil
}

func (s *Session) SelectTemplate(name templates.Name) (*View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := s.editor.SelectTemplate(s.state, name)
	if err != nil {
		return nil, err
	}
	s.update(next)
	s.suggestions = []string{}
	s.seq++
	return s.view(), nil
}

// SetBuffer replaces the buffer with user edited text. The next mutation overwrites it.
func (s *Session) SetBuffer(buffer string) *View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buffer = buffer
	return s.view()
}

// begin marks an AI request in flight and returns its sequence number.
func (s *Session) begin() (uint64, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return 0, "", ErrBusy
	}
	s.busy = true
	s.notice = nil
	return s.seq, s.buffer, nil
}

// Suggest asks the assistant for continuations of the current buffer. Failures are
// reported as a notice on the view, never as an error.
func (s *Session) Suggest(ctx context.Context) (*View, error) {
	seq, buffer, err := s.begin()
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.suggestions = []string{}
	s.mu.Unlock()

	suggestions, err := s.suggester.Suggest(ctx, &assistant.SuggestionRequest{
		Context:   buffer,
		UserInput: assistant.SuggestionInstruction,
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	if seq != s.seq {
		s.fnd.Logger().Debugf("Discarding suggestions for session %s after template switch", s.id)
		return s.view(), nil
	}
	if err != nil {
		s.fnd.Logger().Warnf("Fetching suggestions for session %s failed: %v", s.id, err)
		notice := NoticeSuggestionsUnavailable
		s.notice = &notice
		return s.view(), nil
	}
	if len(suggestions) == 0 {
		notice := NoticeNoSuggestions
		s.notice = &notice
	}
	s.suggestions = append([]string{}, suggestions...)
	return s.view(), nil
}

// ApplySuggestion appends the suggestion to the trimmed buffer and clears the offered list.
func (s *Session) ApplySuggestion(index int) (*View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.suggestions) {
		return nil, errors.Wrapf(ErrNotFound, "suggestion %d", index)
	}
	s.buffer = strings.TrimSpace(s.buffer) + "\n" + s.suggestions[index]
	s.suggestions = []string{}
	return s.view(), nil
}

// Validate checks a single parameter against the current buffer.
func (s *Session) Validate(ctx context.Context, parameter string) (*ValidationResult, error) {
	_, buffer, err := s.begin()
	if err != nil {
		return nil, err
	}

	validation, err := s.validator.Validate(ctx, &assistant.ValidationRequest{
		YamlContext: buffer,
		Parameter:   parameter,
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	if err == nil && validation == nil {
		err = errors.New("empty validation result")
	}
	if err != nil {
		s.fnd.Logger().Warnf("Validating parameter for session %s failed: %v", s.id, err)
		notice := NoticeValidationUnavailable
		s.notice = &notice
		return &ValidationResult{Notice: &notice}, nil
	}
	result := &ValidationResult{IsValid: validation.IsValid}
	if !validation.IsValid {
		result.Reason = validation.Reason
	}
	return result, nil
}

// Download returns the artifact for the document. An empty document selects the config.
func (s *Session) Download(document Document) (*Artifact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch document {
	case "", ConfigDocument:
		return &Artifact{Filename: ConfigFilename, Content: s.buffer}, nil
	case DescriptorDocument:
		content, ok := s.state.RenderDescriptor()
		if !ok {
			return nil, ErrDescriptorUnavailable
		}
		return &Artifact{Filename: DescriptorFilename, Content: content}, nil
	}
	return nil, errors.Wrapf(ErrUnknownDocument, "%q", document)
}
