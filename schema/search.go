// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package schema

const (
	SortField       = "SortField"
	SortOptions     = "SortOptions"
	RuntimeMappings = "RuntimeMappings"
	Highlight       = "Highlight"
	HighlightField  = "HighlightField"
	InnerHits       = "InnerHits"
)

// 排序时除字段外额外允许的 key
var sortSpecialKeys = []string{"_score", "_doc"}

func (b *builder) searchDefinitions() map[string]*Schema {
	return map[string]*Schema{
		SortField:       b.sortField(),
		SortOptions:     sortOptions(),
		RuntimeMappings: runtimeMappings(),
		Highlight:       b.highlight(),
		HighlightField:  highlightField(),
		InnerHits:       innerHits(),
	}
}

// sourceFilter _source 支持 bool、单个字段、字段数组以及 includes/excludes
func sourceFilter() *Schema {
	patterns := OneOf(Ref(SourceFields), Array(Ref(SourceFields)))
	return OneOf(
		Boolean(),
		Ref(SourceFields),
		Array(Ref(SourceFields)).WithUniqueItems(),
		Closed(map[string]*Schema{
			"includes": patterns,
			"excludes": patterns,
		}),
	)
}

func sortSchema() *Schema {
	return OneOf(Ref(SortField), Array(Ref(SortField)))
}

// sortField "field"、{"field": "desc"} 或 {"field": {...options}}
func (b *builder) sortField() *Schema {
	name := String()
	keys := b.propertyNames(IndexFields, sortSpecialKeys...)
	if keys != nil {
		name.Enum = keys.Enum
	}

	order := OneOf(Enum("asc", "desc"), Ref(SortOptions))
	byKey := MapOf(order).WithPropertyCount(1, 1)
	byKey.PropertyNames = keys

	return OneOf(name, byKey)
}

func sortOptions() *Schema {
	return Closed(map[string]*Schema{
		"order":         Enum("asc", "desc"),
		"mode":          Enum("min", "max", "sum", "avg", "median"),
		"missing":       stringOrNumber(),
		"unmapped_type": String(),
		"numeric_type":  Enum("double", "long", "date", "date_nanos"),
		"format":        String(),
		"nested": Object(map[string]*Schema{
			"path":         String(),
			"filter":       Ref(QueryContainer),
			"max_children": NonNegativeInteger(),
		}, "path"),
	})
}

func runtimeMappings() *Schema {
	return MapOf(Closed(map[string]*Schema{
		"type": Enum(
			"boolean", "composite", "date", "double", "geo_point",
			"ip", "keyword", "long", "lookup",
		),
		"script": Ref(Script),
		"format": String(),
		"fields": Object(nil),
	}, "type"))
}

// fieldAndFormatList fields、docvalue_fields
func fieldAndFormatList() *Schema {
	return Array(OneOf(
		Ref(IndexFields),
		Closed(map[string]*Schema{
			"field":            Ref(IndexFields),
			"format":           String(),
			"include_unmapped": Boolean(),
		}, "field"),
	))
}

func collapse() *Schema {
	return Closed(map[string]*Schema{
		"field":                         Ref(TermFields),
		"inner_hits":                    OneOf(Ref(InnerHits), Array(Ref(InnerHits))),
		"max_concurrent_group_searches": NonNegativeInteger(),
	}, "field")
}

// highlightCommon highlight 顶层和单字段共有的参数
func highlightCommon() map[string]*Schema {
	return map[string]*Schema{
		"type":                Enum("unified", "plain", "fvh"),
		"fragment_size":       NonNegativeInteger(),
		"number_of_fragments": NonNegativeInteger(),
		"pre_tags":            Array(String()),
		"post_tags":           Array(String()),
		"order":               Enum("score", "none"),
		"require_field_match": Boolean(),
		"no_match_size":       NonNegativeInteger(),
		"highlight_query":     Ref(QueryContainer),
		"boundary_scanner":    Enum("chars", "sentence", "word"),
		"fragmenter":          Enum("simple", "span"),
		"max_analyzed_offset": NonNegativeInteger(),
	}
}

// highlight fields 的 key 允许通配，所以 propertyNames 引用 TextFields 定义
func (b *builder) highlight() *Schema {
	byName := MapOf(Ref(HighlightField))
	if b.fields != nil {
		byName.PropertyNames = Ref(TextFields)
	}

	props := highlightCommon()
	props["fields"] = OneOf(byName, Array(byName))
	props["encoder"] = Enum("default", "html")
	props["tags_schema"] = Enum("styled")
	return Closed(props, "fields")
}

func highlightField() *Schema {
	props := highlightCommon()
	props["matched_fields"] = Array(Ref(TextFields))
	return Closed(props)
}

func innerHits() *Schema {
	return Closed(map[string]*Schema{
		"name":                String(),
		"from":                NonNegativeInteger(),
		"size":                NonNegativeInteger(),
		"sort":                sortSchema(),
		"_source":             sourceFilter(),
		"highlight":           Ref(Highlight),
		"explain":             Boolean(),
		"version":             Boolean(),
		"seq_no_primary_term": Boolean(),
		"stored_fields":       OneOf(String(), Array(String())),
		"docvalue_fields":     fieldAndFormatList(),
		"fields":              fieldAndFormatList(),
	})
}
