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

package templates

import (
	"github.com/choreoform/choreoform/app"
	"github.com/choreoform/choreoform/conf/types"
	"github.com/pkg/errors"
)

type Name string

const (
	ServiceBuildFromSource Name = "service-build-from-source"
	ServicePreBuiltImage   Name = "service-pre-built-image"
	ReactWebApp            Name = "react-web-app"
	ScheduledTask          Name = "scheduled-task"

	// Custom marks a state that has been edited after a template was applied.
	Custom Name = "custom"
)

var ErrUnknownTemplate = errors.New("unknown template")

var names = []Name{
	ServiceBuildFromSource,
	ServicePreBuiltImage,
	ReactWebApp,
	ScheduledTask,
}

type Maker interface {
	Names() []Name
	Make(name Name) (*types.Config, error)
	MakeDescriptor(workloadName string) *types.WorkloadDescriptor
}

type nativeMaker struct {
	fnd app.Foundation
}

func CreateMaker(fnd app.Foundation) Maker {
	return &nativeMaker{
		fnd: fnd,
	}
}

func (m *nativeMaker) Names() []Name {
	result := make([]Name, len(names))
	copy(result, names)
	return result
}

// Make returns a fresh config for the template. Row ids are generated on every call.
func (m *nativeMaker) Make(name Name) (*types.Config, error) {
	switch name {
	case ServiceBuildFromSource:
		return m.serviceBuildFromSource(), nil
	case ServicePreBuiltImage:
		return m.servicePreBuiltImage(), nil
	case ReactWebApp:
		return m.reactWebApp(), nil
	case ScheduledTask:
		return m.scheduledTask(), nil
	}
	return nil, errors.Wrapf(ErrUnknownTemplate, "%q", name)
}

func (m *nativeMaker) MakeDescriptor(workloadName string) *types.WorkloadDescriptor {
	return &types.WorkloadDescriptor{
		APIVersion: types.DefaultAPIVersion,
		Name:       workloadName,
		Endpoints: []types.WorkloadEndpoint{
			{
				Id:         m.fnd.GenerateUuid(),
				Name:       "rest-api",
				Port:       8080,
				Type:       types.RestEndpoint,
				SchemaFile: "openapi.yaml",
			},
		},
	}
}

func (m *nativeMaker) serviceBuildFromSource() *types.Config {
	return &types.Config{
		APIVersion: types.DefaultAPIVersion,
		Component: types.Component{
			Name:        "my-service",
			Namespace:   "default",
			ProjectName: "default",
			Type:        types.ServiceComponent,
		},
		Build: types.Build{
			Enabled:  true,
			Strategy: types.GoogleCloudBuildpacksStrategy,
			Repository: types.Repository{
				URL:     "https://github.com/openchoreo/sample-workloads",
				Branch:  "main",
				AppPath: "/service-go-reading-list",
			},
		},
		Deployment: types.Deployment{
			WorkloadName: "my-service-workload",
			Apis: []types.ApiEndpoint{
				{
					Id:           m.fnd.GenerateUuid(),
					Name:         "my-api",
					Type:         types.RestApi,
					Port:         "8080",
					BasePath:     "/api/v1",
					ExposeLevels: []types.ExposeLevel{types.PublicExposeLevel},
				},
			},
		},
		Workload: types.Workload{
			Enabled: false,
			Name:    "my-service-workload",
			Env:     []types.EnvVar{},
			Port:    "8080",
		},
	}
}

func (m *nativeMaker) servicePreBuiltImage() *types.Config {
	return &types.Config{
		APIVersion: types.DefaultAPIVersion,
		Component: types.Component{
			Name:        "greeter-service",
			Namespace:   "default",
			ProjectName: "default",
			Type:        types.ServiceComponent,
		},
		Build: types.Build{
			Enabled:  false,
			Strategy: types.GoogleCloudBuildpacksStrategy,
		},
		Deployment: types.Deployment{
			WorkloadName: "greeter-service-workload",
			Apis: []types.ApiEndpoint{
				{
					Id:       m.fnd.GenerateUuid(),
					Name:     "greeter-api",
					Type:     types.RestApi,
					Port:     "9090",
					BasePath: "/greeter",
					ExposeLevels: []types.ExposeLevel{
						types.OrganizationExposeLevel,
						types.PublicExposeLevel,
					},
				},
			},
		},
		Workload: types.Workload{
			Enabled: true,
			Name:    "greeter-service-workload",
			Image:   "ghcr.io/openchoreo/samples/greeter-service:latest",
			Command: "./go-greeter",
			Args:    "--port 9090",
			Env: []types.EnvVar{
				{Id: m.fnd.GenerateUuid(), Key: "LOG_LEVEL", Value: "info"},
			},
			Port: "9090",
		},
	}
}

func (m *nativeMaker) reactWebApp() *types.Config {
	return &types.Config{
		APIVersion: types.DefaultAPIVersion,
		Component: types.Component{
			Name:        "frontend-app",
			Namespace:   "default",
			ProjectName: "default",
			Type:        types.WebApplicationComponent,
		},
		Build: types.Build{
			Enabled:  true,
			Strategy: types.ReactStrategy,
			Repository: types.Repository{
				URL:     "https://github.com/your-org/frontend-app",
				Branch:  "main",
				AppPath: "/",
			},
			Parameters: types.BuildParameters{NodeVersion: "18"},
		},
		Deployment: types.Deployment{
			WorkloadName: "frontend-app-workload",
			Apis:         []types.ApiEndpoint{},
		},
		Workload: types.Workload{
			Enabled: false,
			Name:    "my-service-workload",
			Env:     []types.EnvVar{},
			Port:    "8080",
		},
	}
}

func (m *nativeMaker) scheduledTask() *types.Config {
	return &types.Config{
		APIVersion: types.DefaultAPIVersion,
		Component: types.Component{
			Name:        "data-processor",
			Namespace:   "default",
			ProjectName: "default",
			Type:        types.ScheduledTaskComponent,
		},
		Build: types.Build{
			Enabled:  false,
			Strategy: types.GoogleCloudBuildpacksStrategy,
		},
		Deployment: types.Deployment{
			WorkloadName: "data-processor-workload",
			Apis:         []types.ApiEndpoint{},
		},
		Workload: types.Workload{
			Enabled: true,
			Name:    "data-processor-workload",
			Image:   "ghcr.io/your-org/data-processor:latest",
			Env: []types.EnvVar{
				{Id: m.fnd.GenerateUuid(), Key: "DATABASE_HOST", Value: "postgres.internal"},
				{Id: m.fnd.GenerateUuid(), Key: "BATCH_SIZE", Value: "1000"},
			},
		},
	}
}
