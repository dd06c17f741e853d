// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package mapping

// Merge 合并多个索引的映射（别名指向多个索引时使用）
// 同名字段以先出现的定义为准，子字段取并集；excludes 去重合并
// 返回新的映射，不修改入参
func Merge(ms ...*IndexMapping) *IndexMapping {
	res := &IndexMapping{}

	var excludes []string
	seen := make(map[string]struct{})
	for _, m := range ms {
		if m == nil {
			continue
		}
		for _, e := range m.Excludes() {
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			excludes = append(excludes, e)
		}
		if m.Properties != nil {
			if res.Properties == nil {
				res.Properties = make(map[string]*Property)
			}
			mergeProperties(res.Properties, m.Properties)
		}
	}

	if len(excludes) > 0 {
		res.Source = &SourceConfig{Excludes: excludes}
	}
	return res
}

func mergeProperties(dst, src map[string]*Property) {
	for name, prop := range src {
		if prop == nil {
			continue
		}
		exist, ok := dst[name]
		if !ok {
			dst[name] = cloneProperty(prop)
			continue
		}
		if prop.Properties != nil {
			if exist.Properties == nil {
				exist.Properties = make(map[string]*Property)
			}
			mergeProperties(exist.Properties, prop.Properties)
		}
	}
}

func cloneProperty(p *Property) *Property {
	np := &Property{
		Type: p.Type,
	}
	if p.Index != nil {
		np.Index = Bool(*p.Index)
	}
	if p.Properties != nil {
		np.Properties = make(map[string]*Property, len(p.Properties))
		for name, child := range p.Properties {
			if child == nil {
				continue
			}
			np.Properties[name] = cloneProperty(child)
		}
	}
	return np
}

// ResolveIndex 先按索引名查找，找不到时按别名查找，别名命中多个索引时按名称顺序取第一个
func ResolveIndex(indices map[string]*Index, name string) (string, *Index, bool) {
	if idx, ok := indices[name]; ok {
		return name, idx, true
	}

	names := make([]string, 0, len(indices))
	for n := range indices {
		names = append(names, n)
	}
	sortStrings(names)

	for _, n := range names {
		idx := indices[n]
		if idx == nil {
			continue
		}
		if _, ok := idx.Aliases[name]; ok {
			return n, idx, true
		}
	}
	return "", nil, false
}
