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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/mapping"
)

func TestMerge(t *testing.T) {
	first := &mapping.IndexMapping{
		Source: &mapping.SourceConfig{Excludes: []string{"secret_*"}},
		Properties: map[string]*mapping.Property{
			"status": {Type: "keyword"},
			"user": {
				Properties: map[string]*mapping.Property{
					"name": {Type: "text"},
				},
			},
		},
	}
	second := &mapping.IndexMapping{
		Source: &mapping.SourceConfig{Excludes: []string{"secret_*", "tmp_*"}},
		Properties: map[string]*mapping.Property{
			"status": {Type: "long", Index: mapping.Bool(false)},
			"user": {
				Properties: map[string]*mapping.Property{
					"age": {Type: "integer"},
				},
			},
			"tmp_value": {Type: "keyword"},
		},
	}

	merged := mapping.Merge(first, nil, second)
	assert.Equal(t, []string{"secret_*", "tmp_*"}, merged.Excludes())
	assert.Equal(t, mapping.Fields{
		"status":    {Type: "keyword", Index: true, Source: true},
		"user":      {Type: "object", Index: false, Source: true},
		"user.name": {Type: "text", Index: true, Source: true},
		"user.age":  {Type: "integer", Index: true, Source: true},
		"tmp_value": {Type: "keyword", Index: true, Source: false},
	}, mapping.FlattenFields(merged))

	// 入参不被修改
	assert.Len(t, first.Properties["user"].Properties, 1)
	assert.Nil(t, mapping.Merge().Source)
}

func TestResolveIndex(t *testing.T) {
	indices := map[string]*mapping.Index{
		"logs-000002": {Aliases: map[string]any{"logs": map[string]any{}}},
		"logs-000001": {Aliases: map[string]any{"logs": map[string]any{}, "logs-old": map[string]any{}}},
		"metrics":     {},
	}

	testCases := []struct {
		name     string
		query    string
		expected string
		found    bool
	}{
		{name: "by index name", query: "metrics", expected: "metrics", found: true},
		{name: "by alias", query: "logs-old", expected: "logs-000001", found: true},
		{name: "alias with many indices", query: "logs", expected: "logs-000001", found: true},
		{name: "missing", query: "traces", found: false},
	}

	for _, c := range testCases {
		t.Run(c.name, func(t *testing.T) {
			name, _, ok := mapping.ResolveIndex(indices, c.query)
			assert.Equal(t, c.found, ok)
			assert.Equal(t, c.expected, name)
		})
	}
}
