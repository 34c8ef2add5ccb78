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
	"github.com/choreoform/choreoform/conf/types"
	"github.com/choreoform/choreoform/run/templates"
	"github.com/pkg/errors"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUnknownOp    = errors.New("unknown operation")
	ErrUnknownField = errors.New("unknown field")
	ErrInvalidValue = errors.New("invalid value")
)

type Editor interface {
	// Initial returns the state the editor starts with.
	Initial() *State
	// SelectTemplate replaces the config with a fresh template instance.
	SelectTemplate(state *State, name templates.Name) (*State, error)
	// FromSnapshot wraps a loaded config and descriptor into a custom state.
	FromSnapshot(config *types.Config, descriptor *types.WorkloadDescriptor) *State
	Apply(state *State, action *Action) (*State, error)
}

type nativeEditor struct {
	fnd       app.Foundation
	templates templates.Maker
}

func CreateEditor(fnd app.Foundation, templatesMaker templates.Maker) Editor {
	return &nativeEditor{
		fnd:       fnd,
		templates: templatesMaker,
	}
}

func (e *nativeEditor) Initial() *State {
	state, err := e.SelectTemplate(nil, templates.ServiceBuildFromSource)
	if err != nil {
		// the default template is always known
		panic(err)
	}
	return state
}

func (e *nativeEditor) SelectTemplate(state *State, name templates.Name) (*State, error) {
	config, err := e.templates.Make(name)
	if err != nil {
		return nil, err
	}
	var descriptor *types.WorkloadDescriptor
	if state == nil || state.Descriptor == nil || config.Build.Enabled {
		descriptor = e.templates.MakeDescriptor(config.Deployment.WorkloadName)
	} else {
		descriptor = state.Descriptor.Clone()
		descriptor.Name = config.Deployment.WorkloadName
	}
	e.fnd.Logger().Debugf("Selected template %s", name)
	return &State{
		Template:   name,
		Config:     config,
		Descriptor: descriptor,
	}, nil
}

func (e *nativeEditor) FromSnapshot(config *types.Config, descriptor *types.WorkloadDescriptor) *State {
	config = config.Clone()
	if descriptor == nil {
		descriptor = e.templates.MakeDescriptor(config.Deployment.WorkloadName)
	} else {
		descriptor = descriptor.Clone()
		descriptor.Name = config.Deployment.WorkloadName
	}
	return &State{
		Template:   templates.Custom,
		Config:     config,
		Descriptor: descriptor,
	}
}
