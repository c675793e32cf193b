// Copyright 2025 The Rivaas Authors
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

package urljs

import (
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoHandler(echo.Context) error { return nil }

func TestFromEcho_ConvertsParams(t *testing.T) {
	t.Parallel()

	e := echo.New()
	e.GET("/articles/:id", echoHandler).Name = "article"
	e.GET("/files/*", echoHandler).Name = "files"

	entries := FromEcho(e, nil)
	require.Len(t, entries, 2)

	oracle := NewOracle(entries)
	path, err := oracle.ReverseLookup("article", map[string]any{"id": 7}, nil)
	require.NoError(t, err)
	assert.Equal(t, "/articles/7", path)

	path, err = oracle.ReverseLookup("files", map[string]any{"filepath": "img/logo.png"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "/files/img/logo.png", path)
}

func TestFromEcho_CustomNamer(t *testing.T) {
	t.Parallel()

	e := echo.New()
	e.GET("/a/:x", echoHandler)
	e.GET("/skip/", echoHandler)

	entries := FromEcho(e, func(r *echo.Route) string {
		if r.Path == "/a/:x" {
			return "a"
		}
		return ""
	})
	require.Len(t, entries, 1)

	oracle := NewOracle(entries)
	path, err := oracle.ReverseLookup("a", map[string]any{"x": "v"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "/a/v", path)
}
