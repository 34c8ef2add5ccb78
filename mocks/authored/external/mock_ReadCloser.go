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

package external

import (
	"github.com/stretchr/testify/mock"
)

// MockReadCloser is an io.ReadCloser driven by testify expectations.
type MockReadCloser struct {
	mock.Mock
}

func NewMockReadCloser() *MockReadCloser {
	return &MockReadCloser{}
}

func (m *MockReadCloser) Read(p []byte) (n int, err error) {
	args := m.Called(p)
	if args.Get(0) != nil {
		n = args.Int(0)
	}
	err = args.Error(1)
	return
}

func (m *MockReadCloser) Close() error {
	args := m.Called()
	return args.Error(0)
}
