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
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/internal/json"
)

const (
	DefinitionsPrefix = "#/definitions/"

	TypeObject  = "object"
	TypeArray   = "array"
	TypeString  = "string"
	TypeNumber  = "number"
	TypeInteger = "integer"
	TypeBoolean = "boolean"
)

// Schema JSON Schema 节点
// Enum 不为 nil 时一定输出，即使为空
type Schema struct {
	Ref                  string             `json:"$ref,omitempty"`
	Type                 string             `json:"type,omitempty"`
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties *Schema            `json:"additionalProperties,omitempty"`
	PropertyNames        *Schema            `json:"propertyNames,omitempty"`
	MinProperties        *int               `json:"minProperties,omitempty"`
	MaxProperties        *int               `json:"maxProperties,omitempty"`
	Items                *Schema            `json:"items,omitempty"`
	MinItems             *int               `json:"minItems,omitempty"`
	UniqueItems          bool               `json:"uniqueItems,omitempty"`
	OneOf                []*Schema          `json:"oneOf,omitempty"`
	AnyOf                []*Schema          `json:"anyOf,omitempty"`
	Enum                 []string           `json:"enum,omitempty"`
	Pattern              string             `json:"pattern,omitempty"`
	Minimum              *float64           `json:"minimum,omitempty"`
	Maximum              *float64           `json:"maximum,omitempty"`
	Definitions          map[string]*Schema `json:"definitions,omitempty"`

	// 布尔形式的 schema，如 additionalProperties: false
	boolean *bool
}

// IsFalse 是否为 false schema
func (s *Schema) IsFalse() bool {
	return s != nil && s.boolean != nil && !*s.boolean
}

type schemaAlias Schema

type schemaWithEnum struct {
	*schemaAlias
	Enum []string `json:"enum"`
}

func (s *Schema) MarshalJSON() ([]byte, error) {
	if s.boolean != nil {
		return json.Marshal(*s.boolean)
	}
	if s.Enum != nil && len(s.Enum) == 0 {
		return json.Marshal(schemaWithEnum{schemaAlias: (*schemaAlias)(s), Enum: s.Enum})
	}
	return json.Marshal((*schemaAlias)(s))
}

// Ref 引用 definitions 下的定义
func Ref(name string) *Schema {
	return &Schema{Ref: DefinitionsPrefix + name}
}

// False 不接受任何值
func False() *Schema {
	b := false
	return &Schema{boolean: &b}
}

// Any 接受任意值
func Any() *Schema {
	return &Schema{}
}

func String() *Schema {
	return &Schema{Type: TypeString}
}

func Boolean() *Schema {
	return &Schema{Type: TypeBoolean}
}

func Number() *Schema {
	return &Schema{Type: TypeNumber}
}

// NonNegativeNumber 大于等于 0 的数字
func NonNegativeNumber() *Schema {
	return &Schema{Type: TypeNumber, Minimum: float(0)}
}

func Integer() *Schema {
	return &Schema{Type: TypeInteger}
}

// NonNegativeInteger 大于等于 0 的整数
func NonNegativeInteger() *Schema {
	return &Schema{Type: TypeInteger, Minimum: float(0)}
}

// Enum 字符串枚举
func Enum(values ...string) *Schema {
	return &Schema{Type: TypeString, Enum: values}
}

// Pattern 正则约束的字符串
func Pattern(pattern string) *Schema {
	return &Schema{Type: TypeString, Pattern: pattern}
}

// Array 元素类型为 items 的数组
func Array(items *Schema) *Schema {
	return &Schema{Type: TypeArray, Items: items}
}

// OneOf 恰好满足其中一个
func OneOf(schemas ...*Schema) *Schema {
	return &Schema{OneOf: schemas}
}

// AnyOf 至少满足其中一个
func AnyOf(schemas ...*Schema) *Schema {
	return &Schema{AnyOf: schemas}
}

// Object 不限制额外字段的对象
func Object(properties map[string]*Schema, required ...string) *Schema {
	return &Schema{
		Type:       TypeObject,
		Properties: properties,
		Required:   required,
	}
}

// Closed 只允许 properties 中列出的字段
func Closed(properties map[string]*Schema, required ...string) *Schema {
	s := Object(properties, required...)
	s.AdditionalProperties = False()
	return s
}

// MapOf key 任意，value 为 values 的对象
func MapOf(values *Schema) *Schema {
	return &Schema{
		Type:                 TypeObject,
		AdditionalProperties: values,
	}
}

// Clause 单 key 查询子句，如 {"match_all": {...}}
func Clause(key string, body *Schema) *Schema {
	return Closed(map[string]*Schema{key: body}, key)
}

// WithMinItems
func (s *Schema) WithMinItems(n int) *Schema {
	s.MinItems = &n
	return s
}

// WithUniqueItems
func (s *Schema) WithUniqueItems() *Schema {
	s.UniqueItems = true
	return s
}

// WithRange 数值上下限
func (s *Schema) WithRange(min, max float64) *Schema {
	s.Minimum = float(min)
	s.Maximum = float(max)
	return s
}

// WithMinimum
func (s *Schema) WithMinimum(min float64) *Schema {
	s.Minimum = float(min)
	return s
}

// WithPropertyCount 对象字段个数上下限，小于 0 表示不限制
func (s *Schema) WithPropertyCount(min, max int) *Schema {
	if min >= 0 {
		s.MinProperties = &min
	}
	if max >= 0 {
		s.MaxProperties = &max
	}
	return s
}

func float(f float64) *float64 {
	return &f
}
