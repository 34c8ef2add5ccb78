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
	"github.com/choreoform/choreoform/conf/types"
	"github.com/choreoform/choreoform/run/generator"
	"github.com/choreoform/choreoform/run/lint"
	"github.com/choreoform/choreoform/run/templates"
)

// State is an immutable editor snapshot. Mutations always return a new State.
type State struct {
	Template   templates.Name            `json:"template"`
	Config     *types.Config             `json:"config"`
	Descriptor *types.WorkloadDescriptor `json:"descriptor"`
}

func (s *State) Clone() *State {
	return &State{
		Template:   s.Template,
		Config:     s.Config.Clone(),
		Descriptor: s.Descriptor.Clone(),
	}
}

// Render returns the component configuration text.
func (s *State) Render() string {
	return generator.Generate(s.Config)
}

// RenderDescriptor returns the workload descriptor text. It is only available while build is enabled.
func (s *State) RenderDescriptor() (string, bool) {
	if !s.DescriptorEnabled() {
		return "", false
	}
	return generator.GenerateWorkloadDescriptor(s.Descriptor), true
}

func (s *State) DescriptorEnabled() bool {
	return s.Config != nil && s.Config.Build.Enabled
}

func (s *State) Hints() []lint.Hint {
	hints := lint.Config(s.Config)
	if s.DescriptorEnabled() {
		hints = append(hints, lint.Descriptor(s.Descriptor)...)
	}
	return hints
}
