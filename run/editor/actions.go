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

package editor

import (
	"github.com/choreoform/choreoform/conf/types"
	"github.com/choreoform/choreoform/run/templates"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
	"strconv"
)

type Op string

const (
	SetFieldOp          Op = "set-field"
	AddApiOp            Op = "add-api"
	UpdateApiOp         Op = "update-api"
	RemoveApiOp         Op = "remove-api"
	ToggleExposeLevelOp Op = "toggle-expose-level"
	AddEnvOp            Op = "add-env"
	UpdateEnvOp         Op = "update-env"
	RemoveEnvOp         Op = "remove-env"
	AddEndpointOp       Op = "add-endpoint"
	UpdateEndpointOp    Op = "update-endpoint"
	RemoveEndpointOp    Op = "remove-endpoint"

	// SelectTemplateOp is handled by Session as it replaces the whole state.
	SelectTemplateOp Op = "select-template"
)

// Action is a single form interaction. Row operations address rows by Id.
type Action struct {
	Op    Op     `json:"op"`
	Id    string `json:"id,omitempty"`
	Field string `json:"field,omitempty"`
	Value string `json:"value,omitempty"`
}

// Apply returns a new state with the action applied. The given state is never modified.
func (e *nativeEditor) Apply(state *State, action *Action) (*State, error) {
	next := state.Clone()
	if next.Descriptor == nil {
		next.Descriptor = &types.WorkloadDescriptor{
			APIVersion: types.DefaultAPIVersion,
			Name:       next.Config.Deployment.WorkloadName,
		}
	}
	var err error
	switch action.Op {
	case SetFieldOp:
		err = setField(next, action.Field, action.Value)
	case AddApiOp:
		next.Config.Deployment.Apis = append(next.Config.Deployment.Apis, types.ApiEndpoint{
			Id:           e.fnd.GenerateUuid(),
			Name:         "",
			Type:         types.RestApi,
			Port:         "8080",
			BasePath:     "",
			ExposeLevels: []types.ExposeLevel{types.OrganizationExposeLevel},
		})
	case UpdateApiOp:
		err = updateApi(next.Config, action)
	case RemoveApiOp:
		next.Config.Deployment.Apis, err = removeRow(next.Config.Deployment.Apis, action.Id, "api",
			func(api types.ApiEndpoint) string { return api.Id })
	case ToggleExposeLevelOp:
		err = toggleExposeLevel(next.Config, action.Id, types.ExposeLevel(action.Value))
	case AddEnvOp:
		next.Config.Workload.Env = append(next.Config.Workload.Env, types.EnvVar{Id: e.fnd.GenerateUuid()})
	case UpdateEnvOp:
		err = updateEnv(next.Config, action)
	case RemoveEnvOp:
		next.Config.Workload.Env, err = removeRow(next.Config.Workload.Env, action.Id, "env",
			func(env types.EnvVar) string { return env.Id })
	case AddEndpointOp:
		next.Descriptor.Endpoints = append(next.Descriptor.Endpoints, types.WorkloadEndpoint{
			Id:   e.fnd.GenerateUuid(),
			Port: 8080,
			Type: types.RestEndpoint,
		})
	case UpdateEndpointOp:
		err = updateEndpoint(next.Descriptor, action)
	case RemoveEndpointOp:
		next.Descriptor.Endpoints, err = removeRow(next.Descriptor.Endpoints, action.Id, "endpoint",
			func(endpoint types.WorkloadEndpoint) string { return endpoint.Id })
	default:
		err = errors.Wrapf(ErrUnknownOp, "%q", action.Op)
	}
	if err != nil {
		return nil, err
	}
	next.Template = templates.Custom
	e.fnd.Logger().Debugf("Applied %s %s %s", action.Op, action.Id, action.Field)
	return next, nil
}

type fieldSetter func(s *State, value string) error

func stringSetter(target func(s *State) *string) fieldSetter {
	return func(s *State, value string) error {
		*target(s) = value
		return nil
	}
}

func parseBool(field, value string) (bool, error) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, errors.Wrapf(ErrInvalidValue, "%s %q", field, value)
	}
	return b, nil
}

// setWorkloadName keeps workload name, deployment workload name and descriptor name in sync.
func setWorkloadName(s *State, value string) error {
	s.Config.Deployment.WorkloadName = value
	s.Config.Workload.Name = value
	if s.Descriptor != nil {
		s.Descriptor.Name = value
	}
	return nil
}

var fieldSetters = map[string]fieldSetter{
	"component.name":        stringSetter(func(s *State) *string { return &s.Config.Component.Name }),
	"component.namespace":   stringSetter(func(s *State) *string { return &s.Config.Component.Namespace }),
	"component.projectName": stringSetter(func(s *State) *string { return &s.Config.Component.ProjectName }),
	"component.type": func(s *State, value string) error {
		t := types.ComponentType(value)
		if !t.IsValid() {
			return errors.Wrapf(ErrInvalidValue, "component type %q", value)
		}
		s.Config.Component.Type = t
		return nil
	},
	"build.enabled": func(s *State, value string) error {
		enabled, err := parseBool("build.enabled", value)
		if err != nil {
			return err
		}
		s.Config.Build.Enabled = enabled
		s.Config.Workload.Enabled = !enabled
		return nil
	},
	"build.strategy": func(s *State, value string) error {
		strategy := types.BuildStrategy(value)
		if !strategy.IsValid() {
			return errors.Wrapf(ErrInvalidValue, "build strategy %q", value)
		}
		s.Config.Build.Strategy = strategy
		return nil
	},
	"build.repository.url":            stringSetter(func(s *State) *string { return &s.Config.Build.Repository.URL }),
	"build.repository.branch":         stringSetter(func(s *State) *string { return &s.Config.Build.Repository.Branch }),
	"build.repository.appPath":        stringSetter(func(s *State) *string { return &s.Config.Build.Repository.AppPath }),
	"build.parameters.dockerContext":  stringSetter(func(s *State) *string { return &s.Config.Build.Parameters.DockerContext }),
	"build.parameters.dockerfilePath": stringSetter(func(s *State) *string { return &s.Config.Build.Parameters.DockerfilePath }),
	"build.parameters.nodeVersion":    stringSetter(func(s *State) *string { return &s.Config.Build.Parameters.NodeVersion }),
	"workload.enabled": func(s *State, value string) error {
		enabled, err := parseBool("workload.enabled", value)
		if err != nil {
			return err
		}
		s.Config.Workload.Enabled = enabled
		return nil
	},
	"workload.name":           setWorkloadName,
	"workload.image":          stringSetter(func(s *State) *string { return &s.Config.Workload.Image }),
	"workload.command":        stringSetter(func(s *State) *string { return &s.Config.Workload.Command }),
	"workload.args":           stringSetter(func(s *State) *string { return &s.Config.Workload.Args }),
	"workload.port":           stringSetter(func(s *State) *string { return &s.Config.Workload.Port }),
	"deployment.workloadName": setWorkloadName,
}

func setField(s *State, field, value string) error {
	set, ok := fieldSetters[field]
	if !ok {
		return errors.Wrapf(ErrUnknownField, "%q", field)
	}
	return set(s, value)
}

func findRow[T any](rows []T, id string, kind string, rowId func(T) string) (int, error) {
	i := slices.IndexFunc(rows, func(row T) bool { return rowId(row) == id })
	if i < 0 {
		return -1, errors.Wrapf(ErrNotFound, "%s %s", kind, id)
	}
	return i, nil
}

func removeRow[T any](rows []T, id string, kind string, rowId func(T) string) ([]T, error) {
	i, err := findRow(rows, id, kind, rowId)
	if err != nil {
		return rows, err
	}
	return slices.Delete(rows, i, i+1), nil
}

func updateApi(config *types.Config, action *Action) error {
	i, err := findRow(config.Deployment.Apis, action.Id, "api", func(api types.ApiEndpoint) string { return api.Id })
	if err != nil {
		return err
	}
	api := &config.Deployment.Apis[i]
	switch action.Field {
	case "name":
		api.Name = action.Value
	case "type":
		t := types.ApiType(action.Value)
		if !t.IsValid() {
			return errors.Wrapf(ErrInvalidValue, "api type %q", action.Value)
		}
		api.Type = t
	case "port":
		api.Port = action.Value
	case "basePath":
		api.BasePath = action.Value
	default:
		return errors.Wrapf(ErrUnknownField, "api field %q", action.Field)
	}
	return nil
}

// toggleExposeLevel appends the level when absent and removes it when present.
func toggleExposeLevel(config *types.Config, id string, level types.ExposeLevel) error {
	if !level.IsValid() {
		return errors.Wrapf(ErrInvalidValue, "expose level %q", level)
	}
	i, err := findRow(config.Deployment.Apis, id, "api", func(api types.ApiEndpoint) string { return api.Id })
	if err != nil {
		return err
	}
	api := &config.Deployment.Apis[i]
	if j := slices.Index(api.ExposeLevels, level); j >= 0 {
		api.ExposeLevels = slices.Delete(api.ExposeLevels, j, j+1)
	} else {
		api.ExposeLevels = append(api.ExposeLevels, level)
	}
	return nil
}

func updateEnv(config *types.Config, action *Action) error {
	i, err := findRow(config.Workload.Env, action.Id, "env", func(env types.EnvVar) string { return env.Id })
	if err != nil {
		return err
	}
	switch action.Field {
	case "key":
		config.Workload.Env[i].Key = action.Value
	case "value":
		config.Workload.Env[i].Value = action.Value
	default:
		return errors.Wrapf(ErrUnknownField, "env field %q", action.Field)
	}
	return nil
}

func updateEndpoint(descriptor *types.WorkloadDescriptor, action *Action) error {
	i, err := findRow(descriptor.Endpoints, action.Id, "endpoint",
		func(endpoint types.WorkloadEndpoint) string { return endpoint.Id })
	if err != nil {
		return err
	}
	endpoint := &descriptor.Endpoints[i]
	switch action.Field {
	case "name":
		endpoint.Name = action.Value
	case "port":
		port, err := strconv.Atoi(action.Value)
		if err != nil {
			return errors.Wrapf(ErrInvalidValue, "endpoint port %q", action.Value)
		}
		endpoint.Port = port
	case "type":
		t := types.WorkloadEndpointType(action.Value)
		if !t.IsValid() {
			return errors.Wrapf(ErrInvalidValue, "endpoint type %q", action.Value)
		}
		endpoint.Type = t
	case "schemaFile":
		endpoint.SchemaFile = action.Value
	default:
		return errors.Wrapf(ErrUnknownField, "endpoint field %q", action.Field)
	}
	return nil
}
