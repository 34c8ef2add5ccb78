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
	"github.com/choreoform/choreoform/app"
	"github.com/choreoform/choreoform/run/assistant"
	"github.com/choreoform/choreoform/run/templates"
	"github.com/pkg/errors"
	"sync"
)

var ErrSessionNotFound = errors.New("session not found")

// Store keeps sessions in memory for the lifetime of the process.
type Store interface {
	Create(name templates.Name) (*Session, error)
	CreateFrom(state *State) *Session
	Get(id string) (*Session, error)
	Delete(id string) error
	Len() int
}

type memoryStore struct {
	fnd       app.Foundation
	editor    Editor
	suggester assistant.Suggester
	validator assistant.Validator

	mu       sync.RWMutex
	sessions map[string]*Session
}

func CreateStore(fnd app.Foundation, editor Editor, suggester assistant.Suggester, validator assistant.Validator) Store {
	return &memoryStore{
		fnd:       fnd,
		editor:    editor,
		suggester: suggester,
		validator: validator,
		sessions:  make(map[string]*Session),
	}
}

func (m *memoryStore) Create(name templates.Name) (*Session, error) {
	state, err := m.editor.SelectTemplate(nil, name)
	if err != nil {
		return nil, err
	}
	return m.CreateFrom(state), nil
}

func (m *memoryStore) CreateFrom(state *State) *Session {
	session := NewSession(m.fnd.GenerateUuid(), m.fnd, m.editor, m.suggester, m.validator, state)
	m.mu.Lock()
	m.sessions[session.Id()] = session
	m.mu.Unlock()
	m.fnd.Logger().Debugf("Created session %s from template %s", session.Id(), state.Template)
	return session
}

func (m *memoryStore) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[id]
	if !ok {
		return nil, errors.Wrapf(ErrSessionNotFound, "%s", id)
	}
	return session, nil
}

func (m *memoryStore) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return errors.Wrapf(ErrSessionNotFound, "%s", id)
	}
	delete(m.sessions, id)
	return nil
}

func (m *memoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
