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
	"strings"
)

const (
	fallbackComponentName = "my-component"
	defaultNamespace      = "default"
	defaultProjectName    = "default"

	restEndpointName = "rest-api"
)

// Generate renders the config into the Component, Build, Workload and deployment documents.
// Build and Workload are left out when disabled. It never fails: blank fields are either
// defaulted or skipped.
func Generate(config *types.Config) string {
	if config == nil {
		config = &types.Config{}
	}
	return joinDocuments(
		componentDocument(config),
		buildDocument(config),
		workloadDocument(config),
		deploymentDocument(config),
	)
}

func componentDocument(config *types.Config) string {
	w := &writer{}
	w.field(0, "apiVersion", config.APIVersion)
	w.field(0, "kind", "Component")
	w.line(0, "metadata:")
	w.field(1, "name", orDefault(config.Component.Name, fallbackComponentName))
	w.field(1, "namespace", orDefault(config.Component.Namespace, defaultNamespace))
	w.line(0, "spec:")
	w.line(1, "owner:")
	w.field(2, "projectName", orDefault(config.Component.ProjectName, defaultProjectName))
	w.field(1, "type", string(config.Component.Type))
	if config.Build.Enabled {
		w.line(1, "build:")
		writeBuildSource(w, 2, &config.Build)
	}
	return w.String()
}

func buildDocument(config *types.Config) string {
	if !config.Build.Enabled {
		return ""
	}
	w := &writer{}
	w.field(0, "apiVersion", config.APIVersion)
	w.field(0, "kind", "Build")
	w.line(0, "metadata:")
	w.field(1, "name", config.Component.Name+"-build-01")
	w.field(1, "namespace", orDefault(config.Component.Namespace, defaultNamespace))
	w.line(0, "spec:")
	w.line(1, "owner:")
	w.field(2, "componentName", config.Component.Name)
	w.field(2, "projectName", orDefault(config.Component.ProjectName, defaultProjectName))
	writeBuildSource(w, 1, &config.Build)
	return w.String()
}

// writeBuildSource emits the repository, template reference and strategy parameters. The
// Component document nests it one level deeper than the Build document.
func writeBuildSource(w *writer, level int, build *types.Build) {
	w.line(level, "repository:")
	w.field(level+1, "url", build.Repository.URL)
	w.line(level+1, "revision:")
	w.field(level+2, "branch", build.Repository.Branch)
	w.field(level+1, "appPath", build.Repository.AppPath)
	w.line(level, "templateRef:")
	w.field(level+1, "name", string(build.Strategy))

	params := buildParameters(build)
	if len(params) == 0 {
		return
	}
	w.line(level+1, "parameters:")
	for _, p := range params {
		w.line(level+2, "- name: "+p.name)
		w.field(level+3, "value", p.value)
	}
}

type parameter struct {
	name  string
	value string
}

func buildParameters(build *types.Build) []parameter {
	var params []parameter
	switch build.Strategy {
	case types.DockerStrategy:
		if build.Parameters.DockerContext != "" {
			params = append(params, parameter{"docker-context", build.Parameters.DockerContext})
		}
		if build.Parameters.DockerfilePath != "" {
			params = append(params, parameter{"dockerfile-path", build.Parameters.DockerfilePath})
		}
	case types.ReactStrategy:
		if build.Parameters.NodeVersion != "" {
			params = append(params, parameter{"node-version", quote(build.Parameters.NodeVersion)})
		}
	}
	return params
}

func workloadDocument(config *types.Config) string {
	workload := &config.Workload
	if !workload.Enabled {
		return ""
	}
	w := &writer{}
	w.field(0, "apiVersion", config.APIVersion)
	w.field(0, "kind", "Workload")
	w.line(0, "metadata:")
	w.field(1, "name", workload.Name)
	w.field(1, "namespace", config.Component.Namespace)
	w.line(0, "spec:")
	w.line(1, "owner:")
	w.field(2, "componentName", config.Component.Name)
	w.field(2, "projectName", config.Component.ProjectName)
	w.line(1, "containers:")
	w.line(2, "main:")
	w.field(3, "image", workload.Image)

	if workload.Command != "" {
		w.line(3, "command:")
		w.line(4, "- "+workload.Command)
	}
	if workload.Args != "" {
		w.line(3, "args:")
		for _, arg := range strings.Split(workload.Args, " ") {
			w.line(4, "- "+quote(arg))
		}
	}
	if hasEnvKeys(workload.Env) {
		w.line(3, "env:")
		for _, env := range workload.Env {
			if env.Key == "" {
				continue
			}
			w.line(4, "- key: "+env.Key)
			w.field(5, "value", env.Value)
		}
	}

	if config.Component.Type == types.ServiceComponent && workload.Port != "" {
		w.line(1, "endpoints:")
		w.line(2, restEndpointName+":")
		w.field(3, "type", string(types.RestApi))
		w.field(3, "port", workload.Port)
	}
	return w.String()
}

func hasEnvKeys(env []types.EnvVar) bool {
	for _, e := range env {
		if e.Key != "" {
			return true
		}
	}
	return false
}

func deploymentDocument(config *types.Config) string {
	w := &writer{}
	w.field(0, "apiVersion", config.APIVersion)
	w.field(0, "kind", string(config.Component.Type))
	w.line(0, "metadata:")
	w.field(1, "name", config.Component.Name)
	w.field(1, "namespace", orDefault(config.Component.Namespace, defaultNamespace))
	w.line(0, "spec:")
	w.line(1, "owner:")
	w.field(2, "componentName", config.Component.Name)
	w.field(2, "projectName", orDefault(config.Component.ProjectName, defaultProjectName))
	w.field(1, "workloadName", config.Deployment.WorkloadName)

	if config.Component.Type == types.ServiceComponent && hasApiNames(config.Deployment.Apis) {
		w.line(1, "apis:")
		for _, api := range config.Deployment.Apis {
			if api.Name == "" {
				continue
			}
			w.line(2, api.Name+":")
			w.field(3, "type", string(api.Type))
			w.line(3, "rest:")
			w.line(4, "backend:")
			w.field(5, "port", api.Port)
			w.field(5, "basePath", api.BasePath)
			w.field(4, "exposeLevels", exposeLevelList(api.ExposeLevels))
		}
	}
	return w.String()
}

func hasApiNames(apis []types.ApiEndpoint) bool {
	for _, api := range apis {
		if api.Name != "" {
			return true
		}
	}
	return false
}

func exposeLevelList(levels []types.ExposeLevel) string {
	quoted := make([]string, len(levels))
	for i, level := range levels {
		quoted[i] = quote(string(level))
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
