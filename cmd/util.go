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

package cmd

import (
	"github.com/choreoform/choreoform/app"
	"strings"
)

const (
	overwriteEnvVar = "CHOREOFORM_OVERWRITE"
	// Settings values hold URLs and host:port addresses, so pairs in the env var are
	// separated by commas.
	overwriteEnvSeparator = ","
)

// getOverwrites collects settings overwrites from the flags and then from the environment.
// Environment pairs win over flags unless noEnvs is set.
func getOverwrites(overwriteValues []string, noEnvs bool, fnd app.Foundation) map[string]string {
	overwrites := make(map[string]string)
	for _, arg := range overwriteValues {
		if !putPair(overwrites, arg) {
			fnd.Logger().Warn("Invalid key-value pair: ", arg)
		}
	}
	if noEnvs {
		return overwrites
	}
	val, ok := fnd.LookupEnvVar(overwriteEnvVar)
	if !ok || val == "" {
		return overwrites
	}
	for _, arg := range strings.Split(val, overwriteEnvSeparator) {
		if !putPair(overwrites, strings.TrimSpace(arg)) {
			fnd.Logger().Warnf("Invalid environment key-value pair: %s", arg)
		}
	}
	return overwrites
}

// putPair stores a key=value pair. Only the first equals sign separates the key.
func putPair(overwrites map[string]string, arg string) bool {
	key, value, found := strings.Cut(arg, "=")
	if !found || key == "" {
		return false
	}
	overwrites[key] = value
	return true
}
