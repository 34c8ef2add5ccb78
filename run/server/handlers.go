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

package server

import (
	"encoding/json"
	"github.com/choreoform/choreoform/conf/types"
	"github.com/choreoform/choreoform/run/editor"
	"github.com/choreoform/choreoform/run/lint"
	"github.com/choreoform/choreoform/run/templates"
	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"net/http"
)

type templatesResponse struct {
	Templates []templates.Name `json:"templates"`
}

type renderRequest struct {
	Config     *types.Config             `json:"config"`
	Descriptor *types.WorkloadDescriptor `json:"descriptor,omitempty"`
}

type renderResponse struct {
	Config     string      `json:"config"`
	Descriptor string      `json:"descriptor,omitempty"`
	Hints      []lint.Hint `json:"hints"`
}

type createSessionRequest struct {
	Template   templates.Name            `json:"template,omitempty"`
	Config     *types.Config             `json:"config,omitempty"`
	Descriptor *types.WorkloadDescriptor `json:"descriptor,omitempty"`
}

type bufferRequest struct {
	Buffer string `json:"buffer"`
}

type applySuggestionRequest struct {
	Index int `json:"index"`
}

type validateRequest struct {
	Parameter string `json:"parameter"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *nativeServer) healthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *nativeServer) listTemplates(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, templatesResponse{Templates: s.templates.Names()})
}

func (s *nativeServer) render(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Config == nil {
		s.writeError(w, http.StatusBadRequest, errors.New("config is required"))
		return
	}
	if req.Config.APIVersion == "" {
		req.Config.APIVersion = types.DefaultAPIVersion
	}
	state := s.editor.FromSnapshot(req.Config, req.Descriptor)
	descriptor, _ := state.RenderDescriptor()
	s.writeJSON(w, http.StatusOK, renderResponse{
		Config:     state.Render(),
		Descriptor: descriptor,
		Hints:      state.Hints(),
	})
}

func (s *nativeServer) createSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if r.ContentLength != 0 && !s.decode(w, r, &req) {
		return
	}

	var session *editor.Session
	if req.Config != nil {
		if req.Config.APIVersion == "" {
			req.Config.APIVersion = types.DefaultAPIVersion
		}
		session = s.store.CreateFrom(s.editor.FromSnapshot(req.Config, req.Descriptor))
	} else {
		name := req.Template
		if name == "" {
			name = templates.ServiceBuildFromSource
		}
		var err error
		if session, err = s.store.Create(name); err != nil {
			s.writeEditorError(w, err)
			return
		}
	}
	s.writeJSON(w, http.StatusCreated, session.View())
}

// session resolves the {id} parameter and writes a 404 when it is unknown.
func (s *nativeServer) session(w http.ResponseWriter, r *http.Request) (*editor.Session, bool) {
	session, err := s.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeEditorError(w, err)
		return nil, false
	}
	return session, true
}

func (s *nativeServer) getSession(w http.ResponseWriter, r *http.Request) {
	if session, ok := s.session(w, r); ok {
		s.writeJSON(w, http.StatusOK, session.View())
	}
}

func (s *nativeServer) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(chi.URLParam(r, "id")); err != nil {
		s.writeEditorError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *nativeServer) applyAction(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	var action editor.Action
	if !s.decode(w, r, &action) {
		return
	}
	view, err := session.Apply(&action)
	if err != nil {
		s.writeEditorError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

func (s *nativeServer) setBuffer(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	var req bufferRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.writeJSON(w, http.StatusOK, session.SetBuffer(req.Buffer))
}

func (s *nativeServer) suggest(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	view, err := session.Suggest(r.Context())
	if err != nil {
		s.writeEditorError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

func (s *nativeServer) applySuggestion(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	var req applySuggestionRequest
	if !s.decode(w, r, &req) {
		return
	}
	view, err := session.ApplySuggestion(req.Index)
	if err != nil {
		s.writeEditorError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

func (s *nativeServer) validate(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	var req validateRequest
	if !s.decode(w, r, &req) {
		return
	}
	result, err := session.Validate(r.Context(), req.Parameter)
	if err != nil {
		s.writeEditorError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *nativeServer) download(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	artifact, err := session.Download(editor.Document(r.URL.Query().Get("document")))
	if err != nil {
		s.writeEditorError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.Header().Set("Content-Disposition", `attachment; filename="`+artifact.Filename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(artifact.Content)); err != nil {
		s.fnd.Logger().Warnf("Writing download failed: %v", err)
	}
}

func (s *nativeServer) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.writeError(w, http.StatusBadRequest, errors.Wrap(err, "invalid request body"))
		return false
	}
	return true
}

func (s *nativeServer) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.fnd.Logger().Warnf("Encoding response failed: %v", err)
	}
}

func (s *nativeServer) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *nativeServer) writeEditorError(w http.ResponseWriter, err error) {
	s.writeError(w, statusOf(err), err)
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, editor.ErrSessionNotFound), errors.Is(err, editor.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, editor.ErrBusy), errors.Is(err, editor.ErrDescriptorUnavailable):
		return http.StatusConflict
	case errors.Is(err, templates.ErrUnknownTemplate),
		errors.Is(err, editor.ErrUnknownOp),
		errors.Is(err, editor.ErrUnknownField),
		errors.Is(err, editor.ErrInvalidValue),
		errors.Is(err, editor.ErrUnknownDocument):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
