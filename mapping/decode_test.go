// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package mapping_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/mapping"
)

func TestDecode(t *testing.T) {
	expected := mapping.Fields{
		"title":      {Type: "text", Index: true, Source: true},
		"secret_key": {Type: "keyword", Index: true, Source: false},
	}

	testCases := []struct {
		name string
		data string
	}{
		{
			name: "bare mapping",
			data: `{"_source":{"excludes":["secret_*"]},"properties":{"title":{"type":"text"},"secret_key":{"type":"keyword"}}}`,
		},
		{
			name: "mappings wrapper",
			data: `{"mappings":{"_source":{"excludes":["secret_*"]},"properties":{"title":{"type":"text"},"secret_key":{"type":"keyword"}}}}`,
		},
		{
			name: "index metadata",
			data: `{"logs-2024":{"aliases":{"logs":{}},"mappings":{"_source":{"excludes":["secret_*"]},"properties":{"title":{"type":"text"},"secret_key":{"type":"keyword"}}},"settings":{}}}`,
		},
		{
			name: "legacy mapping type",
			data: `{"_doc":{"_source":{"excludes":"secret_*"},"properties":{"title":{"type":"text"},"secret_key":{"type":"keyword"}}}}`,
		},
	}

	for _, c := range testCases {
		t.Run(c.name, func(t *testing.T) {
			m, err := mapping.Decode([]byte(c.data))
			require.NoError(t, err)
			assert.Equal(t, expected, mapping.FlattenFields(m))
		})
	}
}

func TestDecodeTolerance(t *testing.T) {
	data := `{
		"properties": {
			"string_false": {"type": "keyword", "index": "false"},
			"string_true": {"type": "keyword", "index": "true"},
			"garbage_index": {"type": "keyword", "index": "maybe"},
			"null_index": {"type": "keyword", "index": null},
			"zero_index": {"type": "keyword", "index": 0},
			"one_index": {"type": "keyword", "index": 1},
			"numeric_type": {"type": 5},
			"not_an_object": "keyword",
			"no_type": {},
			"null_node": null
		}
	}`

	m, err := mapping.Decode([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, mapping.Fields{
		"string_false":  {Type: "keyword", Index: false, Source: true},
		"string_true":   {Type: "keyword", Index: true, Source: true},
		"garbage_index": {Type: "keyword", Index: true, Source: true},
		"null_index":    {Type: "keyword", Index: true, Source: true},
		"zero_index":    {Type: "keyword", Index: false, Source: true},
		"one_index":     {Type: "keyword", Index: true, Source: true},
		"numeric_type":  {Type: "object", Index: false, Source: true},
		"not_an_object": {Type: "object", Index: false, Source: true},
		"no_type":       {Type: "object", Index: false, Source: true},
	}, mapping.FlattenFields(m))

	_, err = mapping.Decode([]byte(`{"properties":`))
	assert.Error(t, err)

	m, err = mapping.Decode([]byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, mapping.FlattenFields(m))
}

func TestDecodeIndices(t *testing.T) {
	data := `{
		"logs-000001": {"aliases": {"logs": {"is_write_index": true}}, "mappings": {"properties": {"message": {"type": "text"}}}, "settings": {"index": {"number_of_shards": "1"}}},
		"logs-000002": {"aliases": {"logs": {}}, "mappings": {"properties": {"level": {"type": "keyword"}}}},
		"broken": {"aliases": {}}
	}`

	indices, err := mapping.DecodeIndices([]byte(data))
	require.NoError(t, err)
	assert.Len(t, indices, 2)
	assert.Equal(t, []string{"logs"}, indices["logs-000001"].AliasNames())
	assert.NotNil(t, indices["logs-000001"].Settings)

	merged, err := mapping.Decode([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, []string{"level", "message"}, mapping.FlattenFields(merged).Names())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "mapping.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
_source:
  excludes:
    - "raw.*"
properties:
  raw:
    properties:
      body:
        type: text
  level:
    type: keyword
    index: false
`), 0o644))

	m, err := mapping.Load(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, mapping.Fields{
		"raw":      {Type: "object", Index: false, Source: true},
		"raw.body": {Type: "text", Index: true, Source: false},
		"level":    {Type: "keyword", Index: false, Source: true},
	}, mapping.FlattenFields(m))

	jsonPath := filepath.Join(dir, "mapping.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"mappings":{"properties":{"level":{"type":"keyword"}}}}`), 0o644))
	m, err = mapping.Load(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"level"}, mapping.IndexFields(m).Names())

	_, err = mapping.Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
