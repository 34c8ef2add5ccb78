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

package app

import (
	"net/http"
	"time"
)

type HttpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type RealHttpClient struct {
	client *http.Client
}

func (c *RealHttpClient) Do(req *http.Request) (*http.Response, error) {
	return c.client.Do(req)
}

func NewRealHttpClient(timeout time.Duration) HttpClient {
	return &RealHttpClient{
		client: &http.Client{Timeout: timeout},
	}
}
