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

package generator

import (
	"github.com/choreoform/choreoform/conf/types"
	"strconv"
)

// GenerateWorkloadDescriptor renders the descriptor as a commented reference document. The
// comment lines are part of the output format. Endpoints are emitted as they are, including
// rows with a blank name.
func GenerateWorkloadDescriptor(descriptor *types.WorkloadDescriptor) string {
	if descriptor == nil {
		descriptor = &types.WorkloadDescriptor{}
	}
	w := &writer{}
	w.line(0, "# OpenChoreo workload descriptor.")
	w.line(0, "# Keep this file in the application path of the source repository; the build")
	w.line(0, "# reads it to create the Workload for the component.")
	w.line(0, "")
	w.line(0, "# Version of the descriptor format.")
	w.field(0, "apiVersion", descriptor.APIVersion)
	w.line(0, "")
	w.line(0, "# Workload metadata.")
	w.line(0, "metadata:")
	w.line(1, "# Name of the workload. It must match the workload name of the deployment.")
	w.field(1, "name", descriptor.Name)

	if len(descriptor.Endpoints) == 0 {
		return w.String()
	}

	w.line(0, "")
	w.line(0, "# Network endpoints exposed by the workload.")
	w.line(0, "endpoints:")
	for _, endpoint := range descriptor.Endpoints {
		w.line(1, "# Name of the endpoint, unique within the workload.")
		w.line(1, "- name: "+endpoint.Name)
		w.line(2, "# Port the workload listens on for this endpoint.")
		w.field(2, "port", strconv.Itoa(endpoint.Port))
		w.line(2, "# Protocol: REST, GraphQL, gRPC, TCP, UDP, HTTP or Websocket.")
		w.field(2, "type", string(endpoint.Type))
		if endpoint.SchemaFile != "" {
			w.line(2, "# Schema file for the endpoint, relative to the application path.")
			w.field(2, "schemaFile", endpoint.SchemaFile)
		}
	}
	return w.String()
}
