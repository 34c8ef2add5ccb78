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

type WorkloadEndpointType string

const (
	RestEndpoint      WorkloadEndpointType = "REST"
	GraphQLEndpoint   WorkloadEndpointType = "GraphQL"
	GrpcEndpoint      WorkloadEndpointType = "gRPC"
	TcpEndpoint       WorkloadEndpointType = "TCP"
	UdpEndpoint       WorkloadEndpointType = "UDP"
	HttpEndpoint      WorkloadEndpointType = "HTTP"
	WebsocketEndpoint WorkloadEndpointType = "Websocket"
)

func (t WorkloadEndpointType) IsValid() bool {
	switch t {
	case RestEndpoint, GraphQLEndpoint, GrpcEndpoint, TcpEndpoint, UdpEndpoint, HttpEndpoint, WebsocketEndpoint:
		return true
	}
	return false
}

// WorkloadDescriptor is the source-side description of a workload's endpoints. It is only
// offered while building from source.
type WorkloadDescriptor struct {
	APIVersion string             `json:"apiVersion" yaml:"apiVersion" toml:"apiVersion"`
	Name       string             `json:"name" yaml:"name" toml:"name"`
	Endpoints  []WorkloadEndpoint `json:"endpoints" yaml:"endpoints" toml:"endpoints"`
}

type WorkloadEndpoint struct {
	Id         string               `json:"id" yaml:"id" toml:"id"`
	Name       string               `json:"name" yaml:"name" toml:"name"`
	Port       int                  `json:"port" yaml:"port" toml:"port"`
	Type       WorkloadEndpointType `json:"type" yaml:"type" toml:"type"`
	SchemaFile string               `json:"schemaFile" yaml:"schemaFile" toml:"schemaFile"`
}

func (d *WorkloadDescriptor) Clone() *WorkloadDescriptor {
	if d == nil {
		return nil
	}
	clone := *d
	if d.Endpoints != nil {
		clone.Endpoints = make([]WorkloadEndpoint, len(d.Endpoints))
		copy(clone.Endpoints, d.Endpoints)
	}
	return &clone
}
