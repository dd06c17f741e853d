// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/internal/json"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/schema"
)

const testMapping = `
_source:
  excludes: ["secret_*"]
properties:
  message:
    type: text
  level:
    type: keyword
  latency:
    type: long
  secret_key:
    type: keyword
`

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		schemaOutput, schemaCompact, schemaOnly = "", false, false
		fieldsFilter, fieldsCategory = "", ""
		validateMapping = ""
	})
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestSchemaCmd(t *testing.T) {
	path := writeFile(t, "mapping.yaml", testMapping)

	out, err := execute(t, "schema", "--compact", path)
	require.NoError(t, err)
	doc := make(map[string]any)
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, schema.DocumentURI, doc["uri"])

	output := filepath.Join(t.TempDir(), "schema.json")
	_, err = execute(t, "schema", "--schema-only", "-o", output)
	require.NoError(t, err)
	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"required"`)
	assert.NotContains(t, string(data), `"uri"`)

	_, err = execute(t, "schema", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestFieldsCmd(t *testing.T) {
	path := writeFile(t, "mapping.yaml", testMapping)

	out, err := execute(t, "fields", path, "-c", "term", "-f", "@source")
	require.NoError(t, err)
	assert.Contains(t, out, "level")
	assert.Contains(t, out, "latency")
	assert.NotContains(t, out, "secret_key")
	assert.NotContains(t, out, "message")

	_, err = execute(t, "fields", path, "-c", "unknown")
	assert.Error(t, err)
}

func TestValidateCmd(t *testing.T) {
	mappingPath := writeFile(t, "mapping.yaml", testMapping)

	testCases := []struct {
		name   string
		query  string
		hasErr bool
	}{
		{name: "valid", query: `{"query":{"term":{"level":"error"}}}`},
		{name: "text field in term", query: `{"query":{"term":{"message":"error"}}}`, hasErr: true},
		{name: "broken json", query: `{"query":`, hasErr: true},
	}

	for _, c := range testCases {
		t.Run(c.name, func(t *testing.T) {
			queryPath := writeFile(t, "query.json", c.query)
			out, err := execute(t, "validate", "-m", mappingPath, queryPath)
			if c.hasErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out, "ok")
		})
	}
}
