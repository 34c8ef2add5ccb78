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
	assistantMocks "github.com/choreoform/choreoform/mocks/generated/run/assistant"
	"github.com/choreoform/choreoform/run/assistant"
	"github.com/choreoform/choreoform/run/templates"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"testing"
)

type sessionFixture struct {
	session   *Session
	suggester *assistantMocks.MockSuggester
	validator *assistantMocks.MockValidator
}

func newSessionFixture(t *testing.T) *sessionFixture {
	fndMock := newTestFoundation(t)
	e := CreateEditor(fndMock, templates.CreateMaker(fndMock))
	suggester := assistantMocks.NewMockSuggester(t)
	validator := assistantMocks.NewMockValidator(t)
	return &sessionFixture{
		session:   NewSession("s1", fndMock, e, suggester, validator, e.Initial()),
		suggester: suggester,
		validator: validator,
	}
}

func TestSession_BufferFollowsMutations(t *testing.T) {
	f := newSessionFixture(t)
	view := f.session.View()
	assert.Equal(t, "s1", view.Id)
	assert.Equal(t, f.session.State().Render(), view.Buffer)
	assert.Contains(t, view.DescriptorPreview, "name: my-service-workload")
	assert.Equal(t, []string{}, view.Suggestions)

	view = f.session.SetBuffer("edited by hand")
	assert.Equal(t, "edited by hand", view.Buffer)

	view, err := f.session.Apply(&Action{Op: SetFieldOp, Field: "component.name", Value: "orders"})
	require.NoError(t, err)
	assert.Equal(t, templates.Custom, view.Template)
	assert.Contains(t, view.Buffer, "  name: orders\n")
	assert.NotContains(t, view.Buffer, "edited by hand")

	view, err = f.session.Apply(&Action{Op: SetFieldOp, Field: "build.enabled", Value: "false"})
	require.NoError(t, err)
	assert.Empty(t, view.DescriptorPreview)

	_, err = f.session.Apply(&Action{Op: SetFieldOp, Field: "nope"})
	assert.ErrorIs(t, err, ErrUnknownField)
	assert.Equal(t, "orders", f.session.State().Config.Component.Name)
}

func TestSession_SelectTemplate(t *testing.T) {
	f := newSessionFixture(t)
	view, err := f.session.SelectTemplate(templates.ScheduledTask)
	require.NoError(t, err)
	assert.Equal(t, templates.ScheduledTask, view.Template)
	assert.Contains(t, view.Buffer, "kind: ScheduledTask")

	view, err = f.session.Apply(&Action{Op: SelectTemplateOp, Value: "react-web-app"})
	require.NoError(t, err)
	assert.Equal(t, templates.ReactWebApp, view.Template)

	_, err = f.session.SelectTemplate("none")
	assert.ErrorIs(t, err, templates.ErrUnknownTemplate)
	assert.Equal(t, templates.ReactWebApp, f.session.View().Template)
}

func TestSession_Suggest(t *testing.T) {
	tests := []struct {
		name            string
		suggestions     []string
		err             error
		wantSuggestions []string
		wantNotice      *Notice
	}{
		{
			name:            "suggestions offered",
			suggestions:     []string{"  replicas: 2", "  labels:"},
			wantSuggestions: []string{"  replicas: 2", "  labels:"},
		},
		{
			name:            "empty result",
			suggestions:     []string{},
			wantSuggestions: []string{},
			wantNotice:      &NoticeNoSuggestions,
		},
		{
			name:            "failure",
			err:             errors.New("status 500"),
			wantSuggestions: []string{},
			wantNotice:      &NoticeSuggestionsUnavailable,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSessionFixture(t)
			buffer := f.session.View().Buffer
			f.suggester.On("Suggest", mock.Anything, &assistant.SuggestionRequest{
				Context:   buffer,
				UserInput: "Suggest next valid YAML lines based on the context",
			}).Return(tt.suggestions, tt.err).Once()

			view, err := f.session.Suggest(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.wantSuggestions, view.Suggestions)
			assert.Equal(t, tt.wantNotice, view.Notice)
			assert.False(t, view.Busy)
			assert.Equal(t, buffer, view.Buffer)
		})
	}
}

func TestSession_ApplySuggestion(t *testing.T) {
	f := newSessionFixture(t)
	f.session.SetBuffer("\n  kind: Component\n\n")
	f.suggester.On("Suggest", mock.Anything, mock.Anything).Return([]string{"metadata:", "spec:"}, nil).Once()
	_, err := f.session.Suggest(context.Background())
	require.NoError(t, err)

	_, err = f.session.ApplySuggestion(2)
	assert.ErrorIs(t, err, ErrNotFound)

	view, err := f.session.ApplySuggestion(1)
	require.NoError(t, err)
	assert.Equal(t, "kind: Component\nspec:", view.Buffer)
	assert.Empty(t, view.Suggestions)

	_, err = f.session.ApplySuggestion(0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSession_SuggestWhileBusy(t *testing.T) {
	f := newSessionFixture(t)
	started := make(chan struct{})
	release := make(chan struct{})
	f.suggester.On("Suggest", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		close(started)
		<-release
	}).Return([]string{"spec:"}, nil).Once()

	done := make(chan *View)
	go func() {
		view, _ := f.session.Suggest(context.Background())
		done <- view
	}()
	<-started

	assert.True(t, f.session.View().Busy)
	_, err := f.session.Suggest(context.Background())
	assert.ErrorIs(t, err, ErrBusy)
	_, err = f.session.Validate(context.Background(), "replicas: 2")
	assert.ErrorIs(t, err, ErrBusy)

	close(release)
	view := <-done
	assert.False(t, view.Busy)
	assert.Equal(t, []string{"spec:"}, view.Suggestions)
}

func TestSession_SuggestDiscardedAfterTemplateSwitch(t *testing.T) {
	f := newSessionFixture(t)
	started := make(chan struct{})
	release := make(chan struct{})
	f.suggester.On("Suggest", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		close(started)
		<-release
	}).Return([]string{"stale:"}, nil).Once()

	done := make(chan *View)
	go func() {
		view, _ := f.session.Suggest(context.Background())
		done <- view
	}()
	<-started

	_, err := f.session.SelectTemplate(templates.ReactWebApp)
	require.NoError(t, err)
	close(release)

	view := <-done
	assert.Empty(t, view.Suggestions)
	assert.Nil(t, view.Notice)
	assert.False(t, view.Busy)
	assert.Equal(t, templates.ReactWebApp, view.Template)
}

func TestSession_Validate(t *testing.T) {
	tests := []struct {
		name       string
		validation *assistant.Validation
		err        error
		want       *ValidationResult
	}{
		{
			name:       "valid",
			validation: &assistant.Validation{IsValid: true, Reason: "ignored"},
			want:       &ValidationResult{IsValid: true},
		},
		{
			name:       "invalid",
			validation: &assistant.Validation{IsValid: false, Reason: "replicas must be an integer"},
			want:       &ValidationResult{IsValid: false, Reason: "replicas must be an integer"},
		},
		{
			name: "failure",
			err:  errors.New("timeout"),
			want: &ValidationResult{Notice: &NoticeValidationUnavailable},
		},
		{
			name: "empty result",
			want: &ValidationResult{Notice: &NoticeValidationUnavailable},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSessionFixture(t)
			f.validator.On("Validate", mock.Anything, &assistant.ValidationRequest{
				YamlContext: f.session.View().Buffer,
				Parameter:   "replicas: two",
			}).Return(tt.validation, tt.err).Once()

			got, err := f.session.Validate(context.Background(), "replicas: two")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.False(t, f.session.View().Busy)
		})
	}
}

func TestSession_Download(t *testing.T) {
	f := newSessionFixture(t)
	f.session.SetBuffer("kind: Component\n")

	artifact, err := f.session.Download("")
	require.NoError(t, err)
	assert.Equal(t, &Artifact{Filename: "config.yml", Content: "kind: Component\n"}, artifact)

	artifact, err = f.session.Download(ConfigDocument)
	require.NoError(t, err)
	assert.Equal(t, "config.yml", artifact.Filename)

	artifact, err = f.session.Download(DescriptorDocument)
	require.NoError(t, err)
	assert.Equal(t, "workload.yaml", artifact.Filename)
	assert.Contains(t, artifact.Content, "# OpenChoreo workload descriptor.")

	_, err = f.session.Download("pdf")
	assert.ErrorIs(t, err, ErrUnknownDocument)

	_, err = f.session.Apply(&Action{Op: SetFieldOp, Field: "build.enabled", Value: "false"})
	require.NoError(t, err)
	_, err = f.session.Download(DescriptorDocument)
	assert.ErrorIs(t, err, ErrDescriptorUnavailable)
}
