// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package schema_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/mapping"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/schema"
)

func compile(t *testing.T, m *mapping.IndexMapping) *schema.Validator {
	v, err := schema.Compile(schema.BuildQuerySchema(m))
	require.NoError(t, err)
	return v
}

func TestValidatorWithMapping(t *testing.T) {
	v := compile(t, &mapping.IndexMapping{
		Source: &mapping.SourceConfig{Excludes: []string{"secret_*"}},
		Properties: map[string]*mapping.Property{
			"title":      {Type: "text"},
			"status":     {Type: "keyword"},
			"count":      {Type: "integer"},
			"created":    {Type: "date"},
			"embedding":  {Type: "dense_vector"},
			"secret_key": {Type: "keyword"},
			"comments": {
				Type: "nested",
				Properties: map[string]*mapping.Property{
					"author": {Type: "keyword"},
				},
			},
		},
	})

	testCases := []struct {
		name  string
		body  string
		valid bool
	}{
		{name: "match all", body: `{"query":{"match_all":{}}}`, valid: true},
		{name: "match with paging", body: `{"query":{"match":{"title":"hello"}},"from":0,"size":10}`, valid: true},
		{
			name:  "bool composition",
			body:  `{"query":{"bool":{"must":[{"term":{"status":"ok"}},{"range":{"count":{"gte":1}}}],"filter":{"exists":{"field":"created"}}}}}`,
			valid: true,
		},
		{name: "terms with boost", body: `{"query":{"terms":{"status":["a","b"],"boost":1.5}}}`, valid: true},
		{
			name:  "nested",
			body:  `{"query":{"nested":{"path":"comments","query":{"term":{"comments.author":"bob"}}}}}`,
			valid: true,
		},
		{name: "source patterns", body: `{"query":{"match_all":{}},"_source":{"includes":["title","stat*"]}}`, valid: true},
		{name: "source glob on both ends", body: `{"query":{"match_all":{}},"_source":["*tit*"]}`, valid: true},
		{
			name:  "sort and aggs",
			body:  `{"query":{"match_all":{}},"sort":[{"created":"desc"},"_score"],"aggs":{"by_status":{"terms":{"field":"status"},"aggs":{"avg_count":{"avg":{"field":"count"}}}}}}`,
			valid: true,
		},
		{
			name:  "knn",
			body:  `{"query":{"match_all":{}},"knn":{"field":"embedding","query_vector":[0.1,0.2],"k":5,"num_candidates":50}}`,
			valid: true,
		},
		{name: "multi match boosted fields", body: `{"query":{"multi_match":{"query":"x","fields":["title^2","status"]}}}`, valid: true},
		{name: "missing query", body: `{}`},
		{name: "unknown top level key", body: `{"query":{"match_all":{}},"unknown":1}`},
		{name: "term on text field", body: `{"query":{"term":{"title":"x"}}}`},
		{name: "range on keyword field", body: `{"query":{"range":{"status":{"gte":1}}}}`},
		{name: "match on numeric field", body: `{"query":{"match":{"count":"1"}}}`},
		{name: "knn on text field", body: `{"query":{"match_all":{}},"knn":{"field":"title","query_vector":[1],"k":1,"num_candidates":1}}`},
		{name: "excluded source field", body: `{"query":{"match_all":{}},"_source":["secret_key"]}`},
		{name: "unknown bool key", body: `{"query":{"bool":{"must":[{"match_all":{}}],"bogus":1}}}`},
		{name: "empty query clause", body: `{"query":{}}`},
	}

	for _, c := range testCases {
		t.Run(c.name, func(t *testing.T) {
			err := v.Validate([]byte(c.body))
			if c.valid {
				assert.NoError(t, err)
				return
			}

			var invalid *schema.InvalidError
			require.True(t, errors.As(err, &invalid), "%v", err)
			assert.NotEmpty(t, invalid.Errors)
		})
	}
}

func TestValidatorWithoutMapping(t *testing.T) {
	v := compile(t, nil)

	assert.NoError(t, v.Validate([]byte(`{"query":{"term":{"anything":"x"}}}`)))
	assert.NoError(t, v.Validate([]byte(`{"query":{"range":{"whatever":{"lt":"now"}}},"sort":"any_field"}`)))
	assert.NoError(t, v.Validate([]byte(`{"query":{"match_all":{}},"_source":["user.*","*_id","*x*"]}`)))

	err := v.Validate([]byte(`{"query":{"match":{"a":"x","b":"y"}}}`))
	var invalid *schema.InvalidError
	assert.True(t, errors.As(err, &invalid))

	err = v.Validate([]byte(`{}`))
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "required", invalid.Errors[0].Type)

	err = v.Validate([]byte(`{"query":`))
	assert.Error(t, err)
	assert.False(t, errors.As(err, &invalid))
}
