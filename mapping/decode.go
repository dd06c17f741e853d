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
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/internal/json"
)

// Decode 解析映射文档，支持以下几种结构：
//   - {"_source": ..., "properties": ...}
//   - {"mappings": {...}}
//   - {"<index>": {"mappings": {...}}}，多个索引时合并
//
// 只有 JSON 本身不合法才会返回错误，节点内容不合法时忽略该节点
func Decode(data []byte) (*IndexMapping, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "decode mapping")
	}
	return FromMap(doc), nil
}

// DecodeIndices 解析 GET /{pattern} 的返回
func DecodeIndices(data []byte) (map[string]*Index, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "decode indices")
	}
	return IndicesFromMap(doc), nil
}

// Load 从文件读取映射，.yaml/.yml 按 yaml 解析，其他按 json 解析
func Load(path string) (*IndexMapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read mapping file %s", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var doc map[string]any
		if err = yaml.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrapf(err, "decode mapping file %s", path)
		}
		return FromMap(doc), nil
	default:
		m, err := Decode(data)
		if err != nil {
			return nil, errors.WithMessagef(err, "mapping file %s", path)
		}
		return m, nil
	}
}

// FromMap 从通用结构中解析映射
func FromMap(doc map[string]any) *IndexMapping {
	if len(doc) == 0 {
		return &IndexMapping{}
	}

	if isMappingNode(doc) {
		return mappingFromMap(doc)
	}

	if inner, ok := asMap(doc[KeyMappings]); ok {
		return FromMap(inner)
	}

	// 索引元数据 {"<index>": {"mappings": ...}}
	indices := IndicesFromMap(doc)
	if len(indices) > 0 {
		names := make([]string, 0, len(indices))
		for name := range indices {
			names = append(names, name)
		}
		sortStrings(names)

		ms := make([]*IndexMapping, 0, len(names))
		for _, name := range names {
			ms = append(ms, indices[name].Mappings)
		}
		return Merge(ms...)
	}

	// 旧版本带 type 的映射 {"_doc": {"properties": ...}}
	if len(doc) == 1 {
		for _, v := range doc {
			if inner, ok := asMap(v); ok && isMappingNode(inner) {
				return mappingFromMap(inner)
			}
		}
	}

	return &IndexMapping{}
}

// IndicesFromMap 只保留带 mappings 的索引
func IndicesFromMap(doc map[string]any) map[string]*Index {
	indices := make(map[string]*Index)
	for name, v := range doc {
		node, ok := asMap(v)
		if !ok {
			continue
		}
		mappings, ok := asMap(node[KeyMappings])
		if !ok {
			continue
		}

		idx := &Index{
			Mappings: FromMap(mappings),
		}
		if aliases, ok := asMap(node[KeyAliases]); ok {
			idx.Aliases = aliases
		}
		if settings, ok := asMap(node[KeySettings]); ok {
			idx.Settings = settings
		}
		indices[name] = idx
	}
	return indices
}

func isMappingNode(doc map[string]any) bool {
	if _, ok := doc[KeyProperties]; ok {
		return true
	}
	_, ok := doc[KeySource]
	return ok
}

func mappingFromMap(doc map[string]any) *IndexMapping {
	m := &IndexMapping{}
	if source, ok := asMap(doc[KeySource]); ok {
		m.Source = sourceFromMap(source)
	}
	if props, ok := asMap(doc[KeyProperties]); ok {
		m.Properties = propertiesFromMap(props)
	}
	return m
}

func sourceFromMap(doc map[string]any) *SourceConfig {
	s := &SourceConfig{
		Includes: stringList(doc[KeyIncludes]),
		Excludes: stringList(doc[KeyExcludes]),
	}
	if b, ok := toBool(doc[KeyEnabled]); ok {
		s.Enabled = &b
	}
	return s
}

func propertiesFromMap(doc map[string]any) map[string]*Property {
	props := make(map[string]*Property, len(doc))
	for name, v := range doc {
		if v == nil {
			continue
		}
		// 非对象节点保留为没有 type 的字段，分类时按 object 处理
		node, ok := asMap(v)
		if !ok {
			props[name] = &Property{}
			continue
		}
		props[name] = propertyFromMap(node)
	}
	return props
}

func propertyFromMap(doc map[string]any) *Property {
	p := &Property{}
	if t, ok := doc[KeyType].(string); ok {
		p.Type = t
	}
	if b, ok := toBool(doc[KeyIndex]); ok {
		p.Index = &b
	}
	if props, ok := asMap(doc[KeyProperties]); ok {
		p.Properties = propertiesFromMap(props)
	}
	return p
}

// toBool 兼容 bool、"true"/"false" 字符串以及数字（非 0 为 true），其余视为未声明
func toBool(v any) (bool, bool) {
	switch v.(type) {
	case nil:
		return false, false
	case bool, string:
		b, err := cast.ToBoolE(v)
		return b, err == nil
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return false, false
	}
	return f != 0, true
}

// stringList excludes 允许写成单个字符串
func stringList(v any) []string {
	switch vs := v.(type) {
	case nil:
		return nil
	case string:
		return []string{vs}
	case []any:
		list := make([]string, 0, len(vs))
		for _, item := range vs {
			if s, ok := item.(string); ok {
				list = append(list, s)
			}
		}
		return list
	case []string:
		return vs
	default:
		return nil
	}
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	default:
		return nil, false
	}
}
