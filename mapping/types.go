// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package mapping

const (
	Step = "."

	KeyType       = "type"
	KeyIndex      = "index"
	KeyProperties = "properties"
	KeySource     = "_source"
	KeyMappings   = "mappings"
	KeyAliases    = "aliases"
	KeySettings   = "settings"
	KeyExcludes   = "excludes"
	KeyIncludes   = "includes"
	KeyEnabled    = "enabled"

	TypeObject = "object"
	TypeNested = "nested"
)

// SourceConfig _source 配置，只有 excludes 会影响字段的 source 属性
type SourceConfig struct {
	Enabled  *bool    `json:"enabled,omitempty"`
	Includes []string `json:"includes,omitempty"`
	Excludes []string `json:"excludes,omitempty"`
}

// IndexMapping 索引映射，也可以是任意一层带 properties 的节点
type IndexMapping struct {
	Source     *SourceConfig        `json:"_source,omitempty"`
	Properties map[string]*Property `json:"properties,omitempty"`
}

// Property 单个字段的定义
// Index 为空表示未声明；Type 为空时按 object 处理
type Property struct {
	Type       string               `json:"type,omitempty"`
	Index      *bool                `json:"index,omitempty"`
	Properties map[string]*Property `json:"properties,omitempty"`
}

// Index 索引元数据接口 GET /{index} 的单个索引返回
type Index struct {
	Aliases  map[string]any `json:"aliases,omitempty"`
	Mappings *IndexMapping  `json:"mappings,omitempty"`
	Settings map[string]any `json:"settings,omitempty"`
}

// AliasNames
func (i *Index) AliasNames() []string {
	if i == nil {
		return nil
	}
	names := make([]string, 0, len(i.Aliases))
	for name := range i.Aliases {
		names = append(names, name)
	}
	return sortStrings(names)
}

// Excludes _source.excludes
func (m *IndexMapping) Excludes() []string {
	if m == nil || m.Source == nil {
		return nil
	}
	return m.Source.Excludes
}

// Bool 用于构造 Property.Index
func Bool(b bool) *bool {
	return &b
}
