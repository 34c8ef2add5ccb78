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

type ApiType string

const (
	RestApi      ApiType = "REST"
	GraphQLApi   ApiType = "GraphQL"
	WebSocketApi ApiType = "WebSocket"
)

func (t ApiType) IsValid() bool {
	switch t {
	case RestApi, GraphQLApi, WebSocketApi:
		return true
	}
	return false
}

type ExposeLevel string

const (
	PublicExposeLevel       ExposeLevel = "Public"
	OrganizationExposeLevel ExposeLevel = "Organization"
)

func (l ExposeLevel) IsValid() bool {
	return l == PublicExposeLevel || l == OrganizationExposeLevel
}

// ApiEndpoint is a deployment API entry. A blank Name keeps the row out of the rendered
// apis map.
type ApiEndpoint struct {
	Id           string        `json:"id" yaml:"id" toml:"id"`
	Name         string        `json:"name" yaml:"name" toml:"name"`
	Type         ApiType       `json:"type" yaml:"type" toml:"type"`
	Port         string        `json:"port" yaml:"port" toml:"port"`
	BasePath     string        `json:"basePath" yaml:"basePath" toml:"basePath"`
	ExposeLevels []ExposeLevel `json:"exposeLevels" yaml:"exposeLevels" toml:"exposeLevels"`
}

func (a ApiEndpoint) Clone() ApiEndpoint {
	if a.ExposeLevels != nil {
		levels := make([]ExposeLevel, len(a.ExposeLevels))
		copy(levels, a.ExposeLevels)
		a.ExposeLevels = levels
	}
	return a
}
