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
	"strings"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/internal/set"
)

const (
	AttrIndex    = "index"
	AttrSource   = "source"
	AttrSelected = "selected"
)

// Filter 字段过滤条件
//
//	@index @source @selected   属性，多个之间为或
//	:keyword                   类型，多个之间为或
//	-@index -:text             排除
//	其余文本                   字段名包含（忽略大小写）
type Filter struct {
	Attributes         *set.Set[string]
	Types              *set.Set[string]
	NegativeAttributes *set.Set[string]
	NegativeTypes      *set.Set[string]
	Text               string
}

// ParseFilter 解析过滤语句，空语句匹配全部字段
func ParseFilter(query string) *Filter {
	f := &Filter{
		Attributes:         set.New[string](),
		Types:              set.New[string](),
		NegativeAttributes: set.New[string](),
		NegativeTypes:      set.New[string](),
	}

	var text []string
	for _, token := range strings.Fields(query) {
		switch {
		case strings.HasPrefix(token, "-@"):
			f.NegativeAttributes.Add(token[2:])
		case strings.HasPrefix(token, "@"):
			f.Attributes.Add(token[1:])
		case strings.HasPrefix(token, "-:"):
			f.NegativeTypes.Add(strings.ToLower(token[2:]))
		case strings.HasPrefix(token, ":"):
			f.Types.Add(strings.ToLower(token[1:]))
		default:
			text = append(text, token)
		}
	}
	f.Text = strings.ToLower(strings.Join(text, " "))
	return f
}

// Match 先判断排除条件，再判断属性、类型，最后匹配字段名
func (f *Filter) Match(name string, field Field, selected bool) bool {
	if f == nil {
		return true
	}

	fieldType := strings.ToLower(field.Type)

	if f.NegativeAttributes.Existed(AttrIndex) && field.Index {
		return false
	}
	if f.NegativeAttributes.Existed(AttrSource) && field.Source {
		return false
	}
	if f.NegativeAttributes.Existed(AttrSelected) && selected {
		return false
	}
	if f.NegativeTypes.Existed(fieldType) {
		return false
	}

	if f.Attributes.Size() > 0 {
		matched := (f.Attributes.Existed(AttrIndex) && field.Index) ||
			(f.Attributes.Existed(AttrSource) && field.Source) ||
			(f.Attributes.Existed(AttrSelected) && selected)
		if !matched {
			return false
		}
	}

	if f.Types.Size() > 0 && !f.Types.Existed(fieldType) {
		return false
	}

	if f.Text != "" && !strings.Contains(strings.ToLower(name), f.Text) {
		return false
	}
	return true
}

// Filter 按过滤语句筛选字段，selected 为已选中的字段
func (f Fields) Filter(query string, selected []string) Fields {
	if strings.TrimSpace(query) == "" {
		return f
	}

	var (
		filter      = ParseFilter(query)
		selectedSet = set.New(selected...)
		res         = make(Fields)
	)
	for name, field := range f {
		if filter.Match(name, field, selectedSet.Existed(name)) {
			res[name] = field
		}
	}
	return res
}

// Selected 只保留选中的字段
func (f Fields) Selected(selected []string) Fields {
	res := make(Fields)
	for _, name := range selected {
		if field, ok := f[name]; ok {
			res[name] = field
		}
	}
	return res
}
