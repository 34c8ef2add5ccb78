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
	"fmt"
	"github.com/choreoform/choreoform/conf/types"
	"github.com/distribution/reference"
	"github.com/docker/go-connections/nat"
	"k8s.io/apimachinery/pkg/util/validation"
	"strconv"
	"strings"
)

// Hint is an advisory finding for a single form field. Hints never affect generated text.
type Hint struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type linter struct {
	hints []Hint
}

func (l *linter) add(field, format string, args ...interface{}) {
	l.hints = append(l.hints, Hint{Field: field, Message: fmt.Sprintf(format, args...)})
}

// label checks a Kubernetes object name. Blank values are skipped as they are defaulted or omitted.
func (l *linter) label(field, value string) {
	if value == "" {
		return
	}
	if errs := validation.IsDNS1123Label(value); len(errs) > 0 {
		l.add(field, "%s", strings.Join(errs, "; "))
	}
}

func (l *linter) port(field, value string) {
	if value == "" {
		return
	}
	port, err := nat.ParsePort(value)
	if err != nil {
		l.add(field, "invalid port %q", value)
		return
	}
	if port == 0 {
		l.add(field, "port must be between 1 and 65535")
	}
}

func (l *linter) image(field, value string) {
	if value == "" {
		l.add(field, "image is required when the workload is enabled")
		return
	}
	if _, err := reference.ParseNormalizedNamed(value); err != nil {
		l.add(field, "invalid image reference: %v", err)
	}
}

// Config returns hints for the config fields in form order.
func Config(config *types.Config) []Hint {
	l := &linter{}
	if config == nil {
		return l.hints
	}
	l.label("component.name", config.Component.Name)
	l.label("component.namespace", config.Component.Namespace)
	l.label("component.projectName", config.Component.ProjectName)
	if !config.Component.Type.IsValid() {
		l.add("component.type", "unknown component type %q", config.Component.Type)
	}

	if config.Build.Enabled {
		if !config.Build.Strategy.IsValid() {
			l.add("build.strategy", "unknown build strategy %q", config.Build.Strategy)
		}
		if config.Build.Repository.URL == "" {
			l.add("build.repository.url", "repository url is required when build is enabled")
		}
	}

	if config.Workload.Enabled {
		l.label("workload.name", config.Workload.Name)
		l.image("workload.image", config.Workload.Image)
		if config.Component.Type == types.ServiceComponent {
			l.port("workload.port", config.Workload.Port)
		}
		seen := make(map[string]bool)
		for _, env := range config.Workload.Env {
			if env.Key == "" {
				continue
			}
			if seen[env.Key] {
				l.add(fmt.Sprintf("workload.env[%s].key", env.Id), "duplicate environment variable %s", env.Key)
			}
			seen[env.Key] = true
		}
	}

	l.label("deployment.workloadName", config.Deployment.WorkloadName)
	if config.Component.Type == types.ServiceComponent {
		names := make(map[string]bool)
		for _, api := range config.Deployment.Apis {
			if api.Name == "" {
				continue
			}
			prefix := fmt.Sprintf("deployment.apis[%s]", api.Id)
			if names[api.Name] {
				l.add(prefix+".name", "duplicate API name %s", api.Name)
			}
			names[api.Name] = true
			l.port(prefix+".port", api.Port)
			if len(api.ExposeLevels) == 0 {
				l.add(prefix+".exposeLevels", "API %s is not exposed at any level", api.Name)
			}
		}
	}
	return l.hints
}

// Descriptor returns hints for the workload descriptor.
func Descriptor(descriptor *types.WorkloadDescriptor) []Hint {
	l := &linter{}
	if descriptor == nil {
		return l.hints
	}
	l.label("descriptor.name", descriptor.Name)
	for _, endpoint := range descriptor.Endpoints {
		prefix := fmt.Sprintf("descriptor.endpoints[%s]", endpoint.Id)
		if endpoint.Name == "" {
			l.add(prefix+".name", "endpoint name is required")
		}
		l.port(prefix+".port", strconv.Itoa(endpoint.Port))
		if !endpoint.Type.IsValid() {
			l.add(prefix+".type", "unknown endpoint type %q", endpoint.Type)
		}
	}
	return l.hints
}
