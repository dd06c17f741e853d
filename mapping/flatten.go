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
	"github.com/gobwas/glob"
)

// Field 打平之后的字段描述
type Field struct {
	Type   string `json:"type"`
	Index  bool   `json:"index"`
	Source bool   `json:"source"`
}

// Fields 以 "." 拼接的完整路径为 key
type Fields map[string]Field

type excludeMatcher []glob.Glob

// newExcludeMatcher 编译 _source.excludes，不分隔符，* 可以跨越 "."
// 无法编译的表达式不匹配任何字段
func newExcludeMatcher(patterns []string) excludeMatcher {
	matcher := make(excludeMatcher, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			continue
		}
		matcher = append(matcher, g)
	}
	return matcher
}

func (m excludeMatcher) match(path string) bool {
	for _, g := range m {
		if g.Match(path) {
			return true
		}
	}
	return false
}

// FlattenFields 打平整个映射，排除规则取自 _source.excludes
func FlattenFields(m *IndexMapping) Fields {
	if m == nil {
		return make(Fields)
	}
	return FlattenProperties(m.Properties, "", m.Excludes())
}

// FlattenProperties 打平任意一层 properties，prefix 为该层的完整路径
func FlattenProperties(props map[string]*Property, prefix string, excludes []string) Fields {
	res := make(Fields)
	flattenProperties(prefix, props, newExcludeMatcher(excludes), res)
	return res
}

func flattenProperties(prefix string, props map[string]*Property, excludes excludeMatcher, res Fields) {
	// 按名称顺序遍历，带 "." 的字段名与嵌套路径冲突时结果稳定
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sortStrings(names)

	for _, name := range names {
		prop := props[name]
		if prop == nil {
			continue
		}

		fullPath := name
		if prefix != "" {
			fullPath = prefix + Step + name
		}

		if _, ok := res[fullPath]; !ok {
			res[fullPath] = Field{
				Type:   typeOrObject(prop.Type),
				Index:  isIndexed(prop),
				Source: !excludes.match(fullPath),
			}
		}

		if prop.Properties != nil {
			flattenProperties(fullPath, prop.Properties, excludes, res)
		}
	}
}

func typeOrObject(t string) string {
	if t == "" {
		return TypeObject
	}
	return t
}

func isIndexed(prop *Property) bool {
	if prop.Type == "" || prop.Type == TypeObject || prop.Type == TypeNested {
		return false
	}
	return prop.Index == nil || *prop.Index
}
