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

package types

type Workload struct {
	Enabled bool     `json:"enabled" yaml:"enabled" toml:"enabled"`
	Name    string   `json:"name" yaml:"name" toml:"name"`
	Image   string   `json:"image" yaml:"image" toml:"image"`
	Command string   `json:"command" yaml:"command" toml:"command"`
	Args    string   `json:"args" yaml:"args" toml:"args"`
	Env     []EnvVar `json:"env" yaml:"env" toml:"env"`
	Port    string   `json:"port" yaml:"port" toml:"port"`
}

// EnvVar is a workload environment entry. A blank Key means the row is not filled yet.
type EnvVar struct {
	Id    string `json:"id" yaml:"id" toml:"id"`
	Key   string `json:"key" yaml:"key" toml:"key"`
	Value string `json:"value" yaml:"value" toml:"value"`
}
