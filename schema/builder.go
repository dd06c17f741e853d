// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package schema

import (
	"slices"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/mapping"
)

// 定义名称
const (
	QueryContainer = "QueryContainer"
	QueryArray     = "QueryArray"

	SourceFields  = "SourceFields"
	IndexFields   = "IndexFields"
	TextFields    = "TextFields"
	KeywordFields = "KeywordFields"
	TermFields    = "TermFields"
	NumericFields = "NumericFields"
	DateFields    = "DateFields"
	RangeFields   = "RangeFields"
	VectorFields  = "VectorFields"
)

const (
	// WildcardPrefixPattern 以 * 开头的字段通配
	WildcardPrefixPattern = "^[*].*"
	// WildcardSuffixPattern 以 * 结尾且不以 * 开头，和前缀通配互斥
	// 不能写成 .*[*]$，否则 "*x*" 同时命中两个分支，oneOf 校验失败
	WildcardSuffixPattern = "^[^*].*[*]$"
)

// fieldSets 字段定义名称到分类函数
var fieldSets = map[string]func(mapping.Fields) mapping.Fields{
	SourceFields:  mapping.Fields.SourceFields,
	IndexFields:   mapping.Fields.IndexFields,
	TextFields:    mapping.Fields.TextFields,
	KeywordFields: mapping.Fields.KeywordFields,
	TermFields:    mapping.Fields.TermFields,
	NumericFields: mapping.Fields.NumericFields,
	DateFields:    mapping.Fields.DateFields,
	RangeFields:   mapping.Fields.RangeFields,
	VectorFields:  mapping.Fields.VectorFields,
}

// builder 持有分类后的字段，fields 为 nil 表示没有 mapping
type builder struct {
	fields mapping.Fields
}

// BuildQuerySchema 根据 mapping 生成查询语句的 JSON Schema，m 为 nil 时生成不限制字段名的 schema
func BuildQuerySchema(m *mapping.IndexMapping) *Schema {
	b := &builder{}
	if m != nil {
		b.fields = mapping.FlattenFields(m)
	}
	return b.build()
}

func (b *builder) build() *Schema {
	s := Closed(b.topLevel(), "query")
	s.Definitions = b.definitions()
	return s
}

func (b *builder) topLevel() map[string]*Schema {
	return map[string]*Schema{
		"query":               Ref(QueryContainer),
		"from":                NonNegativeInteger(),
		"size":                NonNegativeInteger(),
		"track_total_hits":    OneOf(Boolean(), NonNegativeInteger()),
		"_source":             sourceFilter(),
		"aggs":                Ref(Aggregations),
		"aggregations":        Ref(Aggregations),
		"sort":                sortSchema(),
		"highlight":           Ref(Highlight),
		"runtime_mappings":    Ref(RuntimeMappings),
		"fields":              fieldAndFormatList(),
		"docvalue_fields":     fieldAndFormatList(),
		"stored_fields":       OneOf(String(), Array(String())),
		"explain":             Boolean(),
		"version":             Boolean(),
		"seq_no_primary_term": Boolean(),
		"timeout":             String(),
		"terminate_after":     NonNegativeInteger(),
		"min_score":           Number(),
		"post_filter":         Ref(QueryContainer),
		"knn":                 OneOf(Ref(KnnQuery), Array(Ref(KnnQuery))),
		"search_after":        Array(Any()),
		"collapse":            collapse(),
		"track_scores":        Boolean(),
		"profile":             Boolean(),
	}
}

func (b *builder) definitions() map[string]*Schema {
	defs := make(map[string]*Schema)
	for name := range fieldSets {
		defs[name] = b.fieldsDefinition(name)
	}
	for _, group := range []map[string]*Schema{
		b.queryDefinitions(),
		b.searchDefinitions(),
		b.aggregationDefinitions(),
	} {
		for name, s := range group {
			defs[name] = s
		}
	}
	return defs
}

// names 某一类字段的名称，没有 mapping 时返回 nil
func (b *builder) names(set string) []string {
	if b.fields == nil {
		return nil
	}
	return fieldSets[set](b.fields).Names()
}

// fieldsDefinition 字段定义：已知字段名枚举或者通配模式
func (b *builder) fieldsDefinition(set string) *Schema {
	// 没有 mapping 时只保留一个分支，三个分支都是 string 会让通配字段同时命中多个
	if b.fields == nil {
		return OneOf(String())
	}
	return OneOf(
		Enum(b.names(set)...),
		Pattern(WildcardPrefixPattern),
		Pattern(WildcardSuffixPattern),
	)
}

// propertyNames 字段作为 key 的子句，没有 mapping 时不限制
func (b *builder) propertyNames(set string, extra ...string) *Schema {
	if b.fields == nil {
		return nil
	}
	return &Schema{Enum: append(b.names(set), extra...)}
}

// fieldMap key 为某类字段名、value 为 values 的对象
func (b *builder) fieldMap(set string, values *Schema) *Schema {
	s := MapOf(values)
	s.PropertyNames = b.propertyNames(set)
	return s
}

// singleFieldMap 只允许一个字段 key 的对象，如 match、prefix
func (b *builder) singleFieldMap(set string, values *Schema) *Schema {
	return b.fieldMap(set, values).WithPropertyCount(1, 1)
}

// nestedPaths nested 类型字段路径
func (b *builder) nestedPaths() *Schema {
	if b.fields == nil {
		return String()
	}
	paths := make([]string, 0)
	for name, f := range b.fields {
		if f.Type == mapping.TypeNested {
			paths = append(paths, name)
		}
	}
	slices.Sort(paths)
	return Enum(paths...)
}
