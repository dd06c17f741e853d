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

func TestCategoryFilters(t *testing.T) {
	m := &mapping.IndexMapping{
		Properties: map[string]*mapping.Property{
			"a": {Type: "keyword"},
			"b": {Type: "text"},
			"c": {Type: "integer"},
			"d": {Type: "date"},
		},
	}

	testCases := []struct {
		name     string
		fields   mapping.Fields
		expected []string
	}{
		{name: "term", fields: mapping.TermFields(m), expected: []string{"a", "c", "d"}},
		{name: "text", fields: mapping.TextFields(m), expected: []string{"a", "b"}},
		{name: "range", fields: mapping.RangeFields(m), expected: []string{"c", "d"}},
		{name: "keyword", fields: mapping.KeywordFields(m), expected: []string{"a"}},
		{name: "numeric", fields: mapping.NumericFields(m), expected: []string{"c"}},
		{name: "date", fields: mapping.DateFields(m), expected: []string{"d"}},
		{name: "vector", fields: mapping.VectorFields(m), expected: []string{}},
		{name: "index", fields: mapping.IndexFields(m), expected: []string{"a", "b", "c", "d"}},
		{name: "source", fields: mapping.SourceFields(m), expected: []string{"a", "b", "c", "d"}},
	}

	for _, c := range testCases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.expected, c.fields.Names())
		})
	}
}

func TestIndexFalsePropagation(t *testing.T) {
	m := &mapping.IndexMapping{
		Properties: map[string]*mapping.Property{
			"k":  {Type: "keyword", Index: mapping.Bool(false)},
			"t":  {Type: "text", Index: mapping.Bool(false)},
			"n":  {Type: "long", Index: mapping.Bool(false)},
			"dt": {Type: "date", Index: mapping.Bool(false)},
			"ok": {Type: "keyword"},
		},
	}

	fields := mapping.FlattenFields(m)
	assert.Len(t, fields, 5)

	for name, f := range map[string]mapping.Fields{
		"index":   fields.IndexFields(),
		"text":    fields.TextFields(),
		"keyword": fields.KeywordFields(),
		"term":    fields.TermFields(),
		"date":    fields.DateFields(),
		"range":   fields.RangeFields(),
		"numeric": fields.NumericFields(),
	} {
		for _, disabled := range []string{"k", "t", "n", "dt"} {
			assert.NotContains(t, f, disabled, name)
		}
	}
	assert.Contains(t, fields.TermFields(), "ok")
}

func TestVectorFieldsIgnoreIndex(t *testing.T) {
	m := &mapping.IndexMapping{
		Properties: map[string]*mapping.Property{
			"embedding":     {Type: "dense_vector"},
			"raw_embedding": {Type: "dense_vector", Index: mapping.Bool(false)},
			"title":         {Type: "text"},
		},
	}

	assert.Equal(t, []string{"embedding", "raw_embedding"}, mapping.VectorFields(m).Names())
	assert.Equal(t, []string{"title"}, mapping.TextFields(m).Names())
}

func TestUnknownTypeOnlyInRawOutput(t *testing.T) {
	m := &mapping.IndexMapping{
		Properties: map[string]*mapping.Property{
			"future": {Type: "semantic_text_v9"},
		},
	}

	fields := mapping.FlattenFields(m)
	assert.Equal(t, mapping.Field{Type: "semantic_text_v9", Index: true, Source: true}, fields["future"])
	assert.Empty(t, mapping.Categories("semantic_text_v9"))
	for _, c := range mapping.AllCategories {
		assert.Empty(t, fields.ByCategory(c), string(c))
	}
}

func TestCategories(t *testing.T) {
	testCases := []struct {
		fieldType string
		expected  []mapping.Category
	}{
		{"keyword", []mapping.Category{mapping.CategoryKeyword, mapping.CategoryTerm, mapping.CategoryText}},
		{"text", []mapping.Category{mapping.CategoryText}},
		{"integer", []mapping.Category{mapping.CategoryNumeric, mapping.CategoryRange, mapping.CategoryTerm}},
		{"date_nanos", []mapping.Category{mapping.CategoryDate, mapping.CategoryRange, mapping.CategoryTerm}},
		{"ip", []mapping.Category{mapping.CategoryRange, mapping.CategoryTerm}},
		{"boolean", []mapping.Category{mapping.CategoryTerm}},
		{"dense_vector", []mapping.Category{mapping.CategoryVector}},
		{"object", nil},
	}

	for _, c := range testCases {
		t.Run(c.fieldType, func(t *testing.T) {
			assert.Equal(t, c.expected, mapping.Categories(c.fieldType))
		})
	}

	assert.Equal(t, []string{"date", "date_nanos"}, mapping.CategoryDate.Types())
	assert.Nil(t, mapping.Category("unknown").Types())
}

func TestTypeGroup(t *testing.T) {
	assert.Equal(t, mapping.GroupText, mapping.TypeGroup("match_only_text"))
	assert.Equal(t, mapping.GroupKeyword, mapping.TypeGroup("constant_keyword"))
	assert.Equal(t, mapping.GroupNumeric, mapping.TypeGroup("scaled_float"))
	assert.Equal(t, mapping.GroupGeo, mapping.TypeGroup("geo_point"))
	assert.Equal(t, mapping.GroupVector, mapping.TypeGroup("dense_vector"))
	assert.Equal(t, mapping.GroupObject, mapping.TypeGroup("nested"))
	assert.Equal(t, mapping.GroupOther, mapping.TypeGroup("whatever"))
}
