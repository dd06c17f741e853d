// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package http

import (
	"context"
	gohttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/prashantv/gostub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/catalog"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/es"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/es/mocktest"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/internal/json"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/log"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/mapping"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/schema"
)

var testMapping = &mapping.IndexMapping{
	Source: &mapping.SourceConfig{Excludes: []string{"secret_*"}},
	Properties: map[string]*mapping.Property{
		"message":    {Type: "text"},
		"level":      {Type: "keyword"},
		"latency":    {Type: "long"},
		"secret_key": {Type: "keyword"},
	},
}

// newTestEngine mock 掉集群 client，返回注册了全部路由的 engine
func newTestEngine(t *testing.T) (*gin.Engine, *mocktest.MockClient) {
	log.InitTestLogger()
	gin.SetMode(gin.TestMode)
	setDefaultConfig()
	LoadConfig()

	ctrl := gomock.NewController(t)
	client := mocktest.NewMockClient(ctrl)
	stubs := gostub.StubFunc(&es.NewClient, client, nil)
	t.Cleanup(stubs.Reset)
	require.NoError(t, es.ReloadClusters(map[string]*es.Config{
		"test": {Host: "http://127.0.0.1:9200"},
	}))

	c, err := catalog.New(catalog.DefaultOptions())
	require.NoError(t, err)
	catalog.SetDefault(c)

	return NewEngine(context.Background()), client
}

func serve(g *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	g.ServeHTTP(w, req)
	return w
}

func TestHandlerClusters(t *testing.T) {
	g, client := newTestEngine(t)

	client.EXPECT().Info(gomock.Any()).Return(&es.Info{Name: "node-1", ClusterName: "test", Version: "8.11.0"}, nil)
	client.EXPECT().Indices(gomock.Any(), "logs-*").Return(map[string]*mapping.Index{
		"logs-000002": {Aliases: map[string]any{"logs": map[string]any{}}},
		"logs-000001": {},
	}, nil)
	client.EXPECT().Indices(gomock.Any(), "*").Return(nil, errors.New("connection refused"))

	testCases := []struct {
		name   string
		path   string
		status int
		result string
	}{
		{name: "clusters", path: "/clusters", status: gohttp.StatusOK, result: `{"clusters":["test"]}`},
		{
			name:   "info",
			path:   "/clusters/test/info",
			status: gohttp.StatusOK,
			result: `{"name":"node-1","cluster_name":"test","version":"8.11.0","lucene_version":"","tagline":""}`,
		},
		{
			name:   "indices",
			path:   "/clusters/test/indices?pattern=logs-*",
			status: gohttp.StatusOK,
			result: `[{"name":"logs-000001","aliases":[]},{"name":"logs-000002","aliases":["logs"]}]`,
		},
		{name: "cluster unavailable", path: "/clusters/test/indices", status: gohttp.StatusBadGateway},
		{name: "unknown cluster", path: "/clusters/missing/health", status: gohttp.StatusNotFound},
	}

	for _, c := range testCases {
		t.Run(c.name, func(t *testing.T) {
			w := serve(g, gohttp.MethodGet, c.path, "")
			assert.Equal(t, c.status, w.Code)
			if c.result != "" {
				assert.JSONEq(t, c.result, w.Body.String())
			} else {
				assert.Contains(t, w.Body.String(), `"error"`)
			}
		})
	}
}

func TestHandlerFields(t *testing.T) {
	g, client := newTestEngine(t)
	client.EXPECT().Mapping(gomock.Any(), "logs").Return(testMapping, nil)

	w := serve(g, gohttp.MethodGet, "/clusters/test/indices/logs/fields?filter=:keyword&selected=level,missing", "")
	require.Equal(t, gohttp.StatusOK, w.Code)

	var data FieldsData
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &data))
	require.Len(t, data.Fields, 2)
	assert.Equal(t, FieldInfo{
		Name:       "level",
		Type:       "keyword",
		Index:      true,
		Source:     true,
		Group:      mapping.GroupKeyword,
		Categories: []mapping.Category{mapping.CategoryKeyword, mapping.CategoryTerm, mapping.CategoryText},
		Selected:   true,
	}, data.Fields[0])
	assert.Equal(t, "secret_key", data.Fields[1].Name)
	assert.False(t, data.Fields[1].Source)
	assert.Equal(t, []string{"level", "secret_key"}, data.Categories[mapping.CategoryTerm])
	assert.Equal(t, []string{}, data.Categories[mapping.CategoryNumeric])

	// 第二次请求命中缓存
	w = serve(g, gohttp.MethodGet, "/clusters/test/indices/logs/fields", "")
	require.Equal(t, gohttp.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &data))
	assert.Len(t, data.Fields, 4)
}

func TestHandlerSchemaAndValidate(t *testing.T) {
	g, client := newTestEngine(t)
	client.EXPECT().Mapping(gomock.Any(), "logs").Return(testMapping, nil)
	client.EXPECT().Mapping(gomock.Any(), "missing").Return(nil, &es.StatusError{StatusCode: gohttp.StatusNotFound})

	w := serve(g, gohttp.MethodGet, "/clusters/test/indices/logs/schema", "")
	require.Equal(t, gohttp.StatusOK, w.Code)
	assert.Equal(t, gin.MIMEJSON, w.Header().Get("Content-Type"))
	doc := make(map[string]any)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, schema.DocumentURI, doc["uri"])

	testCases := []struct {
		name   string
		body   string
		status int
		valid  bool
	}{
		{name: "valid", body: `{"query":{"range":{"latency":{"gte":100}}},"sort":[{"level":"asc"}]}`, status: gohttp.StatusOK, valid: true},
		{name: "text field in term", body: `{"query":{"term":{"message":"error"}}}`, status: gohttp.StatusOK},
		{name: "unknown clause", body: `{"query":{"unknown":{}}}`, status: gohttp.StatusOK},
		{name: "not json", body: `{"query":`, status: gohttp.StatusBadRequest},
	}

	for _, c := range testCases {
		t.Run(c.name, func(t *testing.T) {
			w := serve(g, gohttp.MethodPost, "/clusters/test/indices/logs/_validate", c.body)
			require.Equal(t, c.status, w.Code)
			if c.status != gohttp.StatusOK {
				return
			}
			var data ValidateData
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &data))
			assert.Equal(t, c.valid, data.Valid)
			assert.Equal(t, c.valid, len(data.Errors) == 0)
		})
	}

	w = serve(g, gohttp.MethodGet, "/clusters/test/indices/missing/schema", "")
	assert.Equal(t, gohttp.StatusNotFound, w.Code)
}

func TestHandlerSearch(t *testing.T) {
	g, client := newTestEngine(t)

	client.EXPECT().Search(gomock.Any(), "logs", gomock.Any()).DoAndReturn(
		func(ctx context.Context, index string, body []byte) ([]byte, error) {
			assert.JSONEq(t, `{"size":1,"_source":["message","level"]}`, string(body))
			return []byte(`{"hits":{"total":{"value":0},"hits":[]}}`), nil
		},
	)
	client.EXPECT().Search(gomock.Any(), "missing", gomock.Any()).Return(nil, &es.StatusError{StatusCode: gohttp.StatusNotFound})
	client.EXPECT().Search(gomock.Any(), "rejected", gomock.Any()).Return(nil, &es.StatusError{StatusCode: gohttp.StatusBadRequest, Body: "parsing_exception"})
	client.EXPECT().Search(gomock.Any(), "down", gomock.Any()).Return(nil, &es.StatusError{StatusCode: gohttp.StatusServiceUnavailable})

	w := serve(g, gohttp.MethodPost, "/clusters/test/indices/logs/_search?fields=level,message", `{"size":1,"_source":"message"}`)
	assert.Equal(t, gohttp.StatusOK, w.Code)
	assert.JSONEq(t, `{"hits":{"total":{"value":0},"hits":[]}}`, w.Body.String())

	w = serve(g, gohttp.MethodPost, "/clusters/test/indices/missing/_search", `{}`)
	assert.Equal(t, gohttp.StatusNotFound, w.Code)

	w = serve(g, gohttp.MethodPost, "/clusters/test/indices/rejected/_search", `{"query":{"bogus":{}}}`)
	assert.Equal(t, gohttp.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "parsing_exception")

	w = serve(g, gohttp.MethodPost, "/clusters/test/indices/down/_search", `{}`)
	assert.Equal(t, gohttp.StatusBadGateway, w.Code)

	w = serve(g, gohttp.MethodPost, "/clusters/test/indices/logs/_search?fields=level", `[1,2]`)
	assert.Equal(t, gohttp.StatusBadRequest, w.Code)
}

func TestHandlerInvalidateCache(t *testing.T) {
	g, client := newTestEngine(t)
	client.EXPECT().Mapping(gomock.Any(), "logs").Return(testMapping, nil).Times(2)

	assert.Equal(t, gohttp.StatusOK, serve(g, gohttp.MethodGet, "/clusters/test/indices/logs/fields", "").Code)
	assert.Equal(t, gohttp.StatusOK, serve(g, gohttp.MethodGet, "/clusters/test/indices/logs/fields", "").Code)

	w := serve(g, gohttp.MethodDelete, "/clusters/test/indices/logs/cache", "")
	assert.Equal(t, gohttp.StatusOK, w.Code)
	assert.JSONEq(t, `{"result":true}`, w.Body.String())

	assert.Equal(t, gohttp.StatusOK, serve(g, gohttp.MethodGet, "/clusters/test/indices/logs/fields", "").Code)
}

func TestHandlerMapping(t *testing.T) {
	g, _ := newTestEngine(t)

	w := serve(g, gohttp.MethodPost, "/schema", "")
	require.Equal(t, gohttp.StatusOK, w.Code)
	var doc struct {
		Schema map[string]any `json:"schema"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	definitions := doc.Schema["definitions"].(map[string]any)
	assert.Equal(t, map[string]any{"oneOf": []any{map[string]any{"type": "string"}}}, definitions[schema.TermFields])

	w = serve(g, gohttp.MethodPost, "/schema", `{"mappings":{"properties":{"level":{"type":"keyword"}}}}`)
	require.Equal(t, gohttp.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"level"`)

	w = serve(g, gohttp.MethodPost, "/schema", `{"mappings":`)
	assert.Equal(t, gohttp.StatusBadRequest, w.Code)

	w = serve(g, gohttp.MethodPost, "/fields?filter=-@source", `{"_source":{"excludes":["raw.*"]},"properties":{"raw":{"properties":{"body":{"type":"text"}}},"level":{"type":"keyword"}}}`)
	require.Equal(t, gohttp.StatusOK, w.Code)
	var data FieldsData
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &data))
	require.Len(t, data.Fields, 1)
	assert.Equal(t, "raw.body", data.Fields[0].Name)
	assert.Equal(t, mapping.GroupText, data.Fields[0].Group)
}

func TestMetricsHandler(t *testing.T) {
	g, _ := newTestEngine(t)

	serve(g, gohttp.MethodGet, "/clusters", "")
	w := serve(g, gohttp.MethodGet, "/metrics", "")
	assert.Equal(t, gohttp.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "eska_request_count_total")
}

func TestAppendSource(t *testing.T) {
	testCases := []struct {
		name     string
		body     string
		fields   []string
		expected string
	}{
		{name: "no fields", body: `{"size":1}`, expected: `{"size":1}`},
		{name: "empty body", body: ``, fields: []string{"a"}, expected: `{"_source":["a"]}`},
		{name: "existing list", body: `{"_source":["a","b"]}`, fields: []string{"b", "c"}, expected: `{"_source":["a","b","c"]}`},
		{name: "string source", body: `{"_source":"a"}`, fields: []string{"c"}, expected: `{"_source":["a","c"]}`},
		{name: "object source replaced", body: `{"_source":{"includes":["x"]}}`, fields: []string{"c"}, expected: `{"_source":["c"]}`},
		{name: "null body", body: `null`, fields: []string{"c"}, expected: `{"_source":["c"]}`},
	}

	for _, c := range testCases {
		t.Run(c.name, func(t *testing.T) {
			res, err := appendSource([]byte(c.body), c.fields)
			require.NoError(t, err)
			assert.JSONEq(t, c.expected, string(res))
		})
	}

	_, err := appendSource([]byte(`"query"`), []string{"a"})
	assert.True(t, errors.Is(err, ErrBadRequest))
}
