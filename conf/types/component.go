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

const DefaultAPIVersion = "openchoreo.dev/v1alpha1"

type ComponentType string

const (
	ServiceComponent        ComponentType = "Service"
	WebApplicationComponent ComponentType = "WebApplication"
	ScheduledTaskComponent  ComponentType = "ScheduledTask"
)

func (t ComponentType) IsValid() bool {
	switch t {
	case ServiceComponent, WebApplicationComponent, ScheduledTaskComponent:
		return true
	}
	return false
}

type BuildStrategy string

const (
	GoogleCloudBuildpacksStrategy BuildStrategy = "google-cloud-buildpacks"
	DockerStrategy                BuildStrategy = "docker"
	ReactStrategy                 BuildStrategy = "react"
	BallerinaBuildpackStrategy    BuildStrategy = "ballerina-buildpack"
)

func (s BuildStrategy) IsValid() bool {
	switch s {
	case GoogleCloudBuildpacksStrategy, DockerStrategy, ReactStrategy, BallerinaBuildpackStrategy:
		return true
	}
	return false
}

// Config is the full form state rendered into the Component, Build, Workload and deployment
// documents.
type Config struct {
	APIVersion string     `json:"apiVersion" yaml:"apiVersion" toml:"apiVersion"`
	Component  Component  `json:"component" yaml:"component" toml:"component"`
	Build      Build      `json:"build" yaml:"build" toml:"build"`
	Deployment Deployment `json:"deployment" yaml:"deployment" toml:"deployment"`
	Workload   Workload   `json:"workload" yaml:"workload" toml:"workload"`
}

type Component struct {
	Name        string        `json:"name" yaml:"name" toml:"name"`
	Namespace   string        `json:"namespace" yaml:"namespace" toml:"namespace"`
	ProjectName string        `json:"projectName" yaml:"projectName" toml:"projectName"`
	Type        ComponentType `json:"type" yaml:"type" toml:"type"`
}

type Build struct {
	Enabled    bool            `json:"enabled" yaml:"enabled" toml:"enabled"`
	Strategy   BuildStrategy   `json:"strategy" yaml:"strategy" toml:"strategy"`
	Repository Repository      `json:"repository" yaml:"repository" toml:"repository"`
	Parameters BuildParameters `json:"parameters" yaml:"parameters" toml:"parameters"`
}

type Repository struct {
	URL     string `json:"url" yaml:"url" toml:"url"`
	Branch  string `json:"branch" yaml:"branch" toml:"branch"`
	AppPath string `json:"appPath" yaml:"appPath" toml:"appPath"`
}

// BuildParameters holds strategy specific values. Only DockerContext and DockerfilePath are
// read for the docker strategy and only NodeVersion for react.
type BuildParameters struct {
	DockerContext  string `json:"dockerContext,omitempty" yaml:"dockerContext,omitempty" toml:"dockerContext,omitempty"`
	DockerfilePath string `json:"dockerfilePath,omitempty" yaml:"dockerfilePath,omitempty" toml:"dockerfilePath,omitempty"`
	NodeVersion    string `json:"nodeVersion,omitempty" yaml:"nodeVersion,omitempty" toml:"nodeVersion,omitempty"`
}

type Deployment struct {
	WorkloadName string        `json:"workloadName" yaml:"workloadName" toml:"workloadName"`
	Apis         []ApiEndpoint `json:"apis" yaml:"apis" toml:"apis"`
}

// Clone returns a deep copy so that snapshots never share row slices.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	if c.Deployment.Apis != nil {
		clone.Deployment.Apis = make([]ApiEndpoint, len(c.Deployment.Apis))
		for i, api := range c.Deployment.Apis {
			clone.Deployment.Apis[i] = api.Clone()
		}
	}
	if c.Workload.Env != nil {
		clone.Workload.Env = make([]EnvVar, len(c.Workload.Env))
		copy(clone.Workload.Env, c.Workload.Env)
	}
	return &clone
}
