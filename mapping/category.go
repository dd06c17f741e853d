// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package mapping

import (
	"slices"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/internal/set"
)

// Category 字段可参与的查询类别，只由 type 决定
type Category string

const (
	CategoryText    Category = "text"
	CategoryKeyword Category = "keyword"
	CategoryTerm    Category = "term"
	CategoryNumeric Category = "numeric"
	CategoryDate    Category = "date"
	CategoryVector  Category = "vector"
	CategoryRange   Category = "range"
)

var (
	keywordTypes = set.New("keyword", "constant_keyword", "wildcard")
	textTypes    = set.New("text", "match_only_text", "search_as_you_type").Union(keywordTypes)
	numericTypes = set.New(
		"long", "integer", "short", "byte", "double", "float", "half_float", "scaled_float", "unsigned_long",
	)
	dateTypes   = set.New("date", "date_nanos")
	vectorTypes = set.New("dense_vector")
	termTypes   = keywordTypes.Union(numericTypes, set.New("boolean"), dateTypes, set.New("ip"))
	rangeTypes  = numericTypes.Union(dateTypes, set.New("ip"))

	categoryTypes = map[Category]*set.Set[string]{
		CategoryText:    textTypes,
		CategoryKeyword: keywordTypes,
		CategoryTerm:    termTypes,
		CategoryNumeric: numericTypes,
		CategoryDate:    dateTypes,
		CategoryVector:  vectorTypes,
		CategoryRange:   rangeTypes,
	}

	// AllCategories 固定顺序
	AllCategories = []Category{
		CategoryDate, CategoryKeyword, CategoryNumeric, CategoryRange, CategoryTerm, CategoryText, CategoryVector,
	}
)

// Contains 该类别是否包含指定的字段类型
func (c Category) Contains(fieldType string) bool {
	types, ok := categoryTypes[c]
	if !ok {
		return false
	}
	return types.Existed(fieldType)
}

// Types 该类别包含的字段类型
func (c Category) Types() []string {
	types, ok := categoryTypes[c]
	if !ok {
		return nil
	}
	return set.Sorted(types)
}

// Categories 字段类型所属的全部类别，未知类型返回空
func Categories(fieldType string) []Category {
	var cs []Category
	for _, c := range AllCategories {
		if c.Contains(fieldType) {
			cs = append(cs, c)
		}
	}
	return cs
}

func (f Fields) filter(fn func(Field) bool) Fields {
	res := make(Fields)
	for name, field := range f {
		if fn(field) {
			res[name] = field
		}
	}
	return res
}

// Names 排序后的字段名
func (f Fields) Names() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	return sortStrings(names)
}

func (f Fields) SourceFields() Fields {
	return f.filter(func(field Field) bool { return field.Source })
}

func (f Fields) IndexFields() Fields {
	return f.filter(func(field Field) bool { return field.Index })
}

// ByCategory 按类别过滤；vector 在全部字段上过滤，其余类别只在可索引字段上过滤
func (f Fields) ByCategory(c Category) Fields {
	base := f
	if c != CategoryVector {
		base = f.IndexFields()
	}
	return base.filter(func(field Field) bool { return c.Contains(field.Type) })
}

func (f Fields) TextFields() Fields    { return f.ByCategory(CategoryText) }
func (f Fields) KeywordFields() Fields { return f.ByCategory(CategoryKeyword) }
func (f Fields) TermFields() Fields    { return f.ByCategory(CategoryTerm) }
func (f Fields) NumericFields() Fields { return f.ByCategory(CategoryNumeric) }
func (f Fields) DateFields() Fields    { return f.ByCategory(CategoryDate) }
func (f Fields) VectorFields() Fields  { return f.ByCategory(CategoryVector) }
func (f Fields) RangeFields() Fields   { return f.ByCategory(CategoryRange) }

// 以下直接作用于映射

func SourceFields(m *IndexMapping) Fields  { return FlattenFields(m).SourceFields() }
func IndexFields(m *IndexMapping) Fields   { return FlattenFields(m).IndexFields() }
func TextFields(m *IndexMapping) Fields    { return FlattenFields(m).TextFields() }
func KeywordFields(m *IndexMapping) Fields { return FlattenFields(m).KeywordFields() }
func TermFields(m *IndexMapping) Fields    { return FlattenFields(m).TermFields() }
func NumericFields(m *IndexMapping) Fields { return FlattenFields(m).NumericFields() }
func DateFields(m *IndexMapping) Fields    { return FlattenFields(m).DateFields() }
func VectorFields(m *IndexMapping) Fields  { return FlattenFields(m).VectorFields() }
func RangeFields(m *IndexMapping) Fields   { return FlattenFields(m).RangeFields() }

func sortStrings(s []string) []string {
	slices.Sort(s)
	return s
}
