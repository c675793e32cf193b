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
	"context"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listArticles(*gin.Context) {}

func ginNamerByPath(names map[string]string) GinNamer {
	return func(info gin.RouteInfo) string {
		return names[info.Path]
	}
}

func TestFromGin_ConvertsParams(t *testing.T) {
	t.Parallel()

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/articles/:id", listArticles)
	engine.GET("/files/*filepath", listArticles)

	entries := FromGin(engine, ginNamerByPath(map[string]string{
		"/articles/:id":    "article",
		"/files/*filepath": "files",
	}))
	require.Len(t, entries, 2)

	oracle := NewOracle(entries)
	path, err := oracle.ReverseLookup("article", map[string]any{"id": 7}, nil)
	require.NoError(t, err)
	assert.Equal(t, "/articles/7", path)

	path, err = oracle.ReverseLookup("files", map[string]any{"filepath": "img/logo.png"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "/files/img/logo.png", path)
}

func TestFromGin_DefaultNamerUsesHandler(t *testing.T) {
	t.Parallel()

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/articles/", listArticles)

	entries := FromGin(engine, nil)
	require.Len(t, entries, 1)

	oracle := NewOracle(entries)
	path, err := oracle.ReverseLookup("listArticles", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "/articles/", path)
}

func TestFromGin_DropsUnnamedAndDuplicates(t *testing.T) {
	t.Parallel()

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/a/", listArticles)
	engine.POST("/a/", listArticles)
	engine.GET("/b/", listArticles)

	entries := FromGin(engine, ginNamerByPath(map[string]string{"/a/": "a"}))
	assert.Len(t, entries, 1, "the /b/ route has no name and GET/POST collapse to one entry")
}

func TestFromGin_GenerateEndToEnd(t *testing.T) {
	t.Parallel()

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/articles/:id", listArticles)

	entries := FromGin(engine, ginNamerByPath(map[string]string{"/articles/:id": "article"}))
	out, err := MustNew().Generate(context.Background(), entries)
	require.NoError(t, err)
	assert.Contains(t, out, `"article": (options={}, args=[]) => {`)
	assert.Contains(t, out, "return `/articles/${kwargs[\"id\"]}`;")
}
