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

package loader

import (
	"github.com/choreoform/choreoform/conf/types"
	appMocks "github.com/choreoform/choreoform/mocks/generated/app"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

const jsonSnapshot = `{
  "config": {
    "component": {"name": "svc", "namespace": "ns", "projectName": "proj", "type": "Service"},
    "build": {"enabled": false, "strategy": "docker"},
    "deployment": {
      "workloadName": "svc-workload",
      "apis": [{"id": "a1", "name": "api", "type": "REST", "port": "8080", "basePath": "/", "exposeLevels": ["Public"]}]
    },
    "workload": {"enabled": true, "name": "svc-workload", "image": "nginx", "env": [{"id": "e1", "key": "K", "value": "V"}], "port": "8080"}
  }
}`

const yamlSnapshot = `config:
  apiVersion: openchoreo.dev/v1beta1
  component:
    name: svc
    namespace: ns
    projectName: proj
    type: Service
  build:
    enabled: false
    strategy: docker
  deployment:
    workloadName: svc-workload
    apis:
      - id: a1
        name: api
        type: REST
        port: "8080"
        basePath: /
        exposeLevels: [Public]
  workload:
    enabled: true
    name: svc-workload
    image: nginx
    env:
      - id: e1
        key: K
        value: V
    port: "8080"
descriptor:
  name: svc-workload
  endpoints:
    - id: d1
      name: rest-api
      port: 8080
      type: REST
`

const tomlSnapshot = `[config.component]
name = "svc"
namespace = "ns"
projectName = "proj"
type = "Service"

[config.build]
enabled = false
strategy = "docker"

[config.deployment]
workloadName = "svc-workload"

[[config.deployment.apis]]
id = "a1"
name = "api"
type = "REST"
port = "8080"
basePath = "/"
exposeLevels = ["Public"]

[config.workload]
enabled = true
name = "svc-workload"
image = "nginx"
port = "8080"

[[config.workload.env]]
id = "e1"
key = "K"
value = "V"
`

func expectedConfig(apiVersion string) *types.Config {
	return &types.Config{
		APIVersion: apiVersion,
		Component: types.Component{
			Name:        "svc",
			Namespace:   "ns",
			ProjectName: "proj",
			Type:        types.ServiceComponent,
		},
		Build: types.Build{Strategy: types.DockerStrategy},
		Deployment: types.Deployment{
			WorkloadName: "svc-workload",
			Apis: []types.ApiEndpoint{
				{
					Id:           "a1",
					Name:         "api",
					Type:         types.RestApi,
					Port:         "8080",
					BasePath:     "/",
					ExposeLevels: []types.ExposeLevel{types.PublicExposeLevel},
				},
			},
		},
		Workload: types.Workload{
			Enabled: true,
			Name:    "svc-workload",
			Image:   "nginx",
			Env:     []types.EnvVar{{Id: "e1", Key: "K", Value: "V"}},
			Port:    "8080",
		},
	}
}

func setupFs(t *testing.T) afero.Fs {
	fs := afero.NewMemMapFs()
	files := map[string]string{
		"/state.json":    jsonSnapshot,
		"/state.yaml":    yamlSnapshot,
		"/state.toml":    tomlSnapshot,
		"/invalid.json":  `{"config":`,
		"/empty.json":    `{}`,
		"/state.unknown": jsonSnapshot,
	}
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
	}
	return fs
}

func TestFileLoader_LoadSnapshot(t *testing.T) {
	fndMock := appMocks.NewMockFoundation(t)
	fndMock.On("Fs").Return(setupFs(t))
	l := CreateLoader(fndMock)

	tests := []struct {
		name           string
		path           string
		wantConfig     *types.Config
		wantDescriptor *types.WorkloadDescriptor
		errMsg         string
	}{
		{
			name:       "json defaults api version",
			path:       "/state.json",
			wantConfig: expectedConfig(types.DefaultAPIVersion),
		},
		{
			name:       "yaml keeps api version and loads descriptor",
			path:       "/state.yaml",
			wantConfig: expectedConfig("openchoreo.dev/v1beta1"),
			wantDescriptor: &types.WorkloadDescriptor{
				APIVersion: types.DefaultAPIVersion,
				Name:       "svc-workload",
				Endpoints: []types.WorkloadEndpoint{
					{Id: "d1", Name: "rest-api", Port: 8080, Type: types.RestEndpoint},
				},
			},
		},
		{
			name:       "toml",
			path:       "/state.toml",
			wantConfig: expectedConfig(types.DefaultAPIVersion),
		},
		{
			name:   "unsupported extension",
			path:   "/state.unknown",
			errMsg: "unsupported extension: .unknown",
		},
		{
			name:   "missing config",
			path:   "/empty.json",
			errMsg: "snapshot /empty.json does not contain a config",
		},
		{
			name:   "invalid json",
			path:   "/invalid.json",
			errMsg: "unexpected end of JSON input",
		},
		{
			name:   "not found",
			path:   "/missing.json",
			errMsg: "open /missing.json: file does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot, err := l.LoadSnapshot(tt.path)
			if tt.errMsg != "" {
				assert.Nil(t, snapshot)
				assert.EqualError(t, err, tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantConfig, snapshot.Config)
			assert.Equal(t, tt.wantDescriptor, snapshot.Descriptor)
		})
	}
}

func TestFileLoader_LoadSnapshots(t *testing.T) {
	fndMock := appMocks.NewMockFoundation(t)
	fndMock.On("Fs").Return(setupFs(t))
	l := CreateLoader(fndMock)

	snapshots, err := l.LoadSnapshots([]string{"/state.json", "/state.toml"})
	require.NoError(t, err)
	require.Len(t, snapshots, 2)
	assert.Equal(t, snapshots[0].Config, snapshots[1].Config)

	snapshots, err = l.LoadSnapshots([]string{"/state.json", "/missing.json"})
	assert.Nil(t, snapshots)
	assert.EqualError(t, err, "loading snapshot /missing.json failed: open /missing.json: file does not exist")
}

func TestFileLoader_Load(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/settings.yml", []byte("server:\n  address: \":9000\"\n"), 0644))
	fndMock := appMocks.NewMockFoundation(t)
	fndMock.On("Fs").Return(fs)

	var data map[string]interface{}
	err := CreateLoader(fndMock).Load("/settings.yml", &data)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"server": map[string]interface{}{"address": ":9000"}}, data)
}

func TestFileLoader_Write(t *testing.T) {
	fs := afero.NewMemMapFs()
	fndMock := appMocks.NewMockFoundation(t)
	fndMock.On("Fs").Return(fs)
	l := CreateLoader(fndMock)

	require.NoError(t, l.Write("/out/deep/config.yml", "kind: Component\n"))
	content, err := afero.ReadFile(fs, "/out/deep/config.yml")
	require.NoError(t, err)
	assert.Equal(t, "kind: Component\n", string(content))

	require.NoError(t, l.Write("workload.yaml", "a"))
	content, err = afero.ReadFile(fs, "workload.yaml")
	require.NoError(t, err)
	assert.Equal(t, "a", string(content))

	roFndMock := appMocks.NewMockFoundation(t)
	roFndMock.On("Fs").Return(afero.NewReadOnlyFs(afero.NewMemMapFs()))
	err = CreateLoader(roFndMock).Write("/x/config.yml", "a")
	assert.ErrorContains(t, err, "creating directory /x")
}
