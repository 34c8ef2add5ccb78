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
	"github.com/choreoform/choreoform/app"
	"github.com/choreoform/choreoform/conf/loader"
	"github.com/pkg/errors"
	"net/url"
	"sort"
	"strconv"
	"time"
)

const (
	DefaultServerAddress = ":8080"
	DefaultAIEndpoint    = "https://generativelanguage.googleapis.com"
	DefaultAIModel       = "gemini-2.0-flash"
	DefaultAITimeout     = 30000
)

// API key variables in lookup order.
var apiKeyEnvVars = []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"}

type Settings struct {
	Server Server `json:"server" yaml:"server" toml:"server"`
	AI     AI     `json:"ai" yaml:"ai" toml:"ai"`
}

type Server struct {
	Address string `json:"address" yaml:"address" toml:"address"`
}

type AI struct {
	Endpoint string `json:"endpoint" yaml:"endpoint" toml:"endpoint"`
	Model    string `json:"model" yaml:"model" toml:"model"`
	ApiKey   string `json:"apiKey" yaml:"apiKey" toml:"apiKey"`
	// Timeout in milliseconds.
	Timeout int `json:"timeout" yaml:"timeout" toml:"timeout"`
}

func (a AI) TimeoutDuration() time.Duration {
	return time.Duration(a.Timeout) * time.Millisecond
}

func Default() *Settings {
	return &Settings{
		Server: Server{
			Address: DefaultServerAddress,
		},
		AI: AI{
			Endpoint: DefaultAIEndpoint,
			Model:    DefaultAIModel,
			Timeout:  DefaultAITimeout,
		},
	}
}

type Maker interface {
	// Make builds settings from defaults, the optional file, environment and overwrites in that order.
	Make(path string, overwrites map[string]string, noEnvs bool) (*Settings, error)
}

type nativeMaker struct {
	fnd    app.Foundation
	loader loader.Loader
}

func CreateMaker(fnd app.Foundation, loader loader.Loader) Maker {
	return &nativeMaker{
		fnd:    fnd,
		loader: loader,
	}
}

func (m *nativeMaker) Make(path string, overwrites map[string]string, noEnvs bool) (*Settings, error) {
	s := Default()
	if path != "" {
		if err := m.loader.Load(path, s); err != nil {
			return nil, errors.Wrapf(err, "loading settings %s", path)
		}
	}
	if !noEnvs && s.AI.ApiKey == "" {
		for _, name := range apiKeyEnvVars {
			if key, ok := m.fnd.LookupEnvVar(name); ok && key != "" {
				m.fnd.Logger().Debugf("Using AI API key from %s", name)
				s.AI.ApiKey = key
				break
			}
		}
	}
	if err := s.Apply(overwrites); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

type setter func(s *Settings, value string) error

var setters = map[string]setter{
	"server.address": func(s *Settings, value string) error {
		s.Server.Address = value
		return nil
	},
	"ai.endpoint": func(s *Settings, value string) error {
		s.AI.Endpoint = value
		return nil
	},
	"ai.model": func(s *Settings, value string) error {
		s.AI.Model = value
		return nil
	},
	"ai.apiKey": func(s *Settings, value string) error {
		s.AI.ApiKey = value
		return nil
	},
	"ai.timeout": func(s *Settings, value string) error {
		timeout, err := strconv.Atoi(value)
		if err != nil {
			return errors.Errorf("invalid timeout %q", value)
		}
		s.AI.Timeout = timeout
		return nil
	},
}

// Apply sets dotted keys such as ai.model. Keys are applied in sorted order.
func (s *Settings) Apply(overwrites map[string]string) error {
	keys := make([]string, 0, len(overwrites))
	for key := range overwrites {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		set, ok := setters[key]
		if !ok {
			return errors.Errorf("unknown setting %s", key)
		}
		if err := set(s, overwrites[key]); err != nil {
			return errors.Wrapf(err, "setting %s", key)
		}
	}
	return nil
}

func (s *Settings) Validate() error {
	if s.Server.Address == "" {
		return errors.New("server address must not be empty")
	}
	endpoint, err := url.Parse(s.AI.Endpoint)
	if err != nil || endpoint.Scheme == "" || endpoint.Host == "" {
		return errors.Errorf("invalid AI endpoint %q", s.AI.Endpoint)
	}
	if s.AI.Model == "" {
		return errors.New("AI model must not be empty")
	}
	if s.AI.Timeout <= 0 {
		return errors.Errorf("AI timeout must be positive, got %d", s.AI.Timeout)
	}
	return nil
}
