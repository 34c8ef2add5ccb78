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
	"encoding/json"
	"github.com/choreoform/choreoform/app"
	"github.com/choreoform/choreoform/conf/types"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
	"path/filepath"
)

// Snapshot is an editor state as stored by a client: the config and an optional descriptor.
type Snapshot struct {
	Config     *types.Config             `json:"config" yaml:"config" toml:"config"`
	Descriptor *types.WorkloadDescriptor `json:"descriptor,omitempty" yaml:"descriptor,omitempty" toml:"descriptor,omitempty"`
}

type Loader interface {
	Load(path string, target interface{}) error
	LoadSnapshot(path string) (*Snapshot, error)
	LoadSnapshots(paths []string) ([]*Snapshot, error)
	Write(path string, content string) error
}

type FileLoader struct {
	fnd app.Foundation
}

func CreateLoader(fnd app.Foundation) Loader {
	return &FileLoader{
		fnd: fnd,
	}
}

// Load unmarshals the file into target picking the format by the file extension.
func (l *FileLoader) Load(path string, target interface{}) error {
	rawData, err := afero.ReadFile(l.fnd.Fs(), path)
	if err != nil {
		return err
	}

	extension := filepath.Ext(path)
	switch extension {
	case ".json":
		err = json.Unmarshal(rawData, target)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(rawData, target)
	case ".toml":
		err = toml.Unmarshal(rawData, target)
	default:
		return errors.Errorf("unsupported extension: %s", extension)
	}

	return err
}

func (l *FileLoader) LoadSnapshot(path string) (*Snapshot, error) {
	snapshot := &Snapshot{}
	if err := l.Load(path, snapshot); err != nil {
		return nil, err
	}
	if snapshot.Config == nil {
		return nil, errors.Errorf("snapshot %s does not contain a config", path)
	}
	if snapshot.Config.APIVersion == "" {
		snapshot.Config.APIVersion = types.DefaultAPIVersion
	}
	if snapshot.Descriptor != nil && snapshot.Descriptor.APIVersion == "" {
		snapshot.Descriptor.APIVersion = types.DefaultAPIVersion
	}
	return snapshot, nil
}

func (l *FileLoader) LoadSnapshots(paths []string) ([]*Snapshot, error) {
	snapshots := make([]*Snapshot, 0, len(paths))
	for _, path := range paths {
		snapshot, err := l.LoadSnapshot(path)
		if err != nil {
			return nil, errors.Errorf("loading snapshot %s failed: %v", path, err)
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots, nil
}

// Write stores the content creating missing parent directories.
func (l *FileLoader) Write(path string, content string) error {
	fs := l.fnd.Fs()
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "creating directory %s", dir)
		}
	}
	if err := afero.WriteFile(fs, path, []byte(content), 0644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}
