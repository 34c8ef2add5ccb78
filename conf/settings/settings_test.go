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

package settings

import (
	"github.com/choreoform/choreoform/conf/loader"
	"github.com/choreoform/choreoform/mocks/authored/external"
	appMocks "github.com/choreoform/choreoform/mocks/generated/app"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func TestNativeMaker_Make(t *testing.T) {
	tests := []struct {
		name       string
		files      map[string]string
		path       string
		envVars    map[string]string
		noEnvs     bool
		overwrites map[string]string
		want       *Settings
		errMsg     string
	}{
		{
			name: "defaults",
			want: Default(),
		},
		{
			name:  "yaml file keeps unset defaults",
			files: map[string]string{"/s.yaml": "ai:\n  model: gemini-1.5-pro\n  timeout: 5000\n"},
			path:  "/s.yaml",
			want: &Settings{
				Server: Server{Address: DefaultServerAddress},
				AI: AI{
					Endpoint: DefaultAIEndpoint,
					Model:    "gemini-1.5-pro",
					Timeout:  5000,
				},
			},
		},
		{
			name:  "toml file",
			files: map[string]string{"/s.toml": "[server]\naddress = \"127.0.0.1:9000\"\n"},
			path:  "/s.toml",
			want: &Settings{
				Server: Server{Address: "127.0.0.1:9000"},
				AI:     Default().AI,
			},
		},
		{
			name:    "api key from first env var",
			envVars: map[string]string{"GEMINI_API_KEY": "gemini", "GOOGLE_API_KEY": "google"},
			want: &Settings{
				Server: Default().Server,
				AI: AI{
					Endpoint: DefaultAIEndpoint,
					Model:    DefaultAIModel,
					ApiKey:   "gemini",
					Timeout:  DefaultAITimeout,
				},
			},
		},
		{
			name:    "api key from fallback env var",
			envVars: map[string]string{"GOOGLE_API_KEY": "google"},
			want: &Settings{
				Server: Default().Server,
				AI: AI{
					Endpoint: DefaultAIEndpoint,
					Model:    DefaultAIModel,
					ApiKey:   "google",
					Timeout:  DefaultAITimeout,
				},
			},
		},
		{
			name:    "env ignored with no envs",
			envVars: map[string]string{"GEMINI_API_KEY": "gemini"},
			noEnvs:  true,
			want:    Default(),
		},
		{
			name:    "file key wins over env",
			files:   map[string]string{"/s.json": `{"ai": {"apiKey": "file"}}`},
			path:    "/s.json",
			envVars: map[string]string{"GEMINI_API_KEY": "gemini"},
			want: &Settings{
				Server: Default().Server,
				AI: AI{
					Endpoint: DefaultAIEndpoint,
					Model:    DefaultAIModel,
					ApiKey:   "file",
					Timeout:  DefaultAITimeout,
				},
			},
		},
		{
			name:       "overwrites win",
			envVars:    map[string]string{"GEMINI_API_KEY": "gemini"},
			overwrites: map[string]string{"ai.apiKey": "flag", "ai.timeout": "100", "server.address": ":1"},
			want: &Settings{
				Server: Server{Address: ":1"},
				AI: AI{
					Endpoint: DefaultAIEndpoint,
					Model:    DefaultAIModel,
					ApiKey:   "flag",
					Timeout:  100,
				},
			},
		},
		{
			name:   "missing file",
			path:   "/missing.yaml",
			errMsg: "loading settings /missing.yaml: open /missing.yaml: file does not exist",
		},
		{
			name:       "unknown overwrite",
			overwrites: map[string]string{"ai.temperature": "1"},
			errMsg:     "unknown setting ai.temperature",
		},
		{
			name:       "invalid timeout overwrite",
			overwrites: map[string]string{"ai.timeout": "soon"},
			errMsg:     "setting ai.timeout: invalid timeout \"soon\"",
		},
		{
			name:       "non positive timeout",
			overwrites: map[string]string{"ai.timeout": "0"},
			errMsg:     "AI timeout must be positive, got 0",
		},
		{
			name:       "invalid endpoint",
			overwrites: map[string]string{"ai.endpoint": "localhost"},
			errMsg:     "invalid AI endpoint \"localhost\"",
		},
		{
			name:       "empty model",
			overwrites: map[string]string{"ai.model": ""},
			errMsg:     "AI model must not be empty",
		},
		{
			name:       "empty address",
			overwrites: map[string]string{"server.address": ""},
			errMsg:     "server address must not be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			for path, content := range tt.files {
				require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
			}
			fndMock := appMocks.NewMockFoundation(t)
			fndMock.On("Fs").Return(fs).Maybe()
			fndMock.On("Logger").Return(external.NewMockLogger().SugaredLogger).Maybe()
			fndMock.On("LookupEnvVar", "GEMINI_API_KEY").Return(func(key string) (string, bool) {
				v, ok := tt.envVars[key]
				return v, ok
			}).Maybe()
			fndMock.On("LookupEnvVar", "GOOGLE_API_KEY").Return(func(key string) (string, bool) {
				v, ok := tt.envVars[key]
				return v, ok
			}).Maybe()

			m := CreateMaker(fndMock, loader.CreateLoader(fndMock))
			got, err := m.Make(tt.path, tt.overwrites, tt.noEnvs)
			if tt.errMsg != "" {
				assert.Nil(t, got)
				assert.EqualError(t, err, tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			if tt.noEnvs {
				fndMock.AssertNotCalled(t, "LookupEnvVar", "GEMINI_API_KEY")
			}
		})
	}
}

func TestAI_TimeoutDuration(t *testing.T) {
	assert.Equal(t, 30*time.Second, Default().AI.TimeoutDuration())
	assert.Equal(t, 250*time.Millisecond, AI{Timeout: 250}.TimeoutDuration())
}
