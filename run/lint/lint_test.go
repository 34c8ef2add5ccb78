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

package lint

import (
	"github.com/choreoform/choreoform/conf/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func validConfig() *types.Config {
	return &types.Config{
		APIVersion: types.DefaultAPIVersion,
		Component: types.Component{
			Name:        "greeter-service",
			Namespace:   "default",
			ProjectName: "default",
			Type:        types.ServiceComponent,
		},
		Build: types.Build{Strategy: types.GoogleCloudBuildpacksStrategy},
		Deployment: types.Deployment{
			WorkloadName: "greeter-service-workload",
			Apis: []types.ApiEndpoint{
				{Id: "a1", Name: "greeter-api", Type: types.RestApi, Port: "9090",
					ExposeLevels: []types.ExposeLevel{types.PublicExposeLevel}},
			},
		},
		Workload: types.Workload{
			Enabled: true,
			Name:    "greeter-service-workload",
			Image:   "ghcr.io/openchoreo/samples/greeter-service:latest",
			Env:     []types.EnvVar{{Id: "e1", Key: "LOG_LEVEL", Value: "info"}},
			Port:    "9090",
		},
	}
}

func fields(hints []Hint) []string {
	var result []string
	for _, h := range hints {
		result = append(result, h.Field)
	}
	return result
}

func TestConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *types.Config)
		want   []string
	}{
		{
			name:   "valid",
			mutate: func(c *types.Config) {},
		},
		{
			name:   "nil",
			mutate: nil,
		},
		{
			name: "blank names are not reported",
			mutate: func(c *types.Config) {
				c.Component.Name = ""
				c.Component.Namespace = ""
				c.Deployment.WorkloadName = ""
			},
		},
		{
			name: "invalid labels",
			mutate: func(c *types.Config) {
				c.Component.Name = "My_Service"
				c.Component.ProjectName = "-proj"
				c.Workload.Name = "Workload"
			},
			want: []string{"component.name", "component.projectName", "workload.name"},
		},
		{
			name: "unknown enums",
			mutate: func(c *types.Config) {
				c.Component.Type = "Job"
				c.Build.Enabled = true
				c.Build.Strategy = "maven"
				c.Build.Repository.URL = "https://example.com/repo"
			},
			want: []string{"component.type", "build.strategy"},
		},
		{
			name: "build without repository",
			mutate: func(c *types.Config) {
				c.Build.Enabled = true
			},
			want: []string{"build.repository.url"},
		},
		{
			name: "image and ports",
			mutate: func(c *types.Config) {
				c.Workload.Image = "Not A Reference"
				c.Workload.Port = "70000"
				c.Deployment.Apis[0].Port = "0"
			},
			want: []string{"workload.image", "workload.port", "deployment.apis[a1].port"},
		},
		{
			name: "missing image",
			mutate: func(c *types.Config) {
				c.Workload.Image = ""
			},
			want: []string{"workload.image"},
		},
		{
			name: "disabled workload is not checked",
			mutate: func(c *types.Config) {
				c.Workload.Enabled = false
				c.Workload.Image = ""
				c.Workload.Port = "x"
			},
		},
		{
			name: "workload port ignored for web applications",
			mutate: func(c *types.Config) {
				c.Component.Type = types.WebApplicationComponent
				c.Workload.Port = "x"
				c.Deployment.Apis[0].Port = "x"
			},
		},
		{
			name: "duplicates",
			mutate: func(c *types.Config) {
				c.Workload.Env = append(c.Workload.Env,
					types.EnvVar{Id: "e2", Key: "", Value: ""},
					types.EnvVar{Id: "e3", Key: "LOG_LEVEL", Value: "debug"})
				c.Deployment.Apis = append(c.Deployment.Apis,
					types.ApiEndpoint{Id: "a2", Name: "greeter-api", Port: "9091",
						ExposeLevels: []types.ExposeLevel{types.OrganizationExposeLevel}})
			},
			want: []string{"workload.env[e3].key", "deployment.apis[a2].name"},
		},
		{
			name: "api without expose levels",
			mutate: func(c *types.Config) {
				c.Deployment.Apis[0].ExposeLevels = nil
				c.Deployment.Apis = append(c.Deployment.Apis, types.ApiEndpoint{Id: "a2"})
			},
			want: []string{"deployment.apis[a1].exposeLevels"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var config *types.Config
			if tt.mutate != nil {
				config = validConfig()
				tt.mutate(config)
			}
			assert.Equal(t, tt.want, fields(Config(config)))
		})
	}
}

func TestConfig_Messages(t *testing.T) {
	config := validConfig()
	config.Component.Name = "My_Service"
	config.Workload.Image = "ghcr.io/Org/App:latest"
	config.Workload.Port = "http"
	hints := Config(config)
	require.Len(t, hints, 3)
	assert.Contains(t, hints[0].Message, "RFC 1123 label")
	assert.Contains(t, hints[1].Message, "invalid image reference")
	assert.Equal(t, `invalid port "http"`, hints[2].Message)
}

func TestDescriptor(t *testing.T) {
	tests := []struct {
		name       string
		descriptor *types.WorkloadDescriptor
		want       []string
	}{
		{
			name: "valid",
			descriptor: &types.WorkloadDescriptor{
				Name: "svc-workload",
				Endpoints: []types.WorkloadEndpoint{
					{Id: "d1", Name: "grpc", Port: 50051, Type: types.GrpcEndpoint},
				},
			},
		},
		{
			name: "nil",
		},
		{
			name: "invalid endpoint",
			descriptor: &types.WorkloadDescriptor{
				Name: "Svc",
				Endpoints: []types.WorkloadEndpoint{
					{Id: "d1", Name: "", Port: 0, Type: "SOAP"},
					{Id: "d2", Name: "ok", Port: 65536, Type: types.UdpEndpoint},
				},
			},
			want: []string{
				"descriptor.name",
				"descriptor.endpoints[d1].name",
				"descriptor.endpoints[d1].port",
				"descriptor.endpoints[d1].type",
				"descriptor.endpoints[d2].port",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fields(Descriptor(tt.descriptor)))
		})
	}
}
