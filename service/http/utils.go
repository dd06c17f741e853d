// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package http

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/internal/json"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/mapping"
)

// FieldInfo 单个字段的分类结果
type FieldInfo struct {
	Name       string             `json:"name"`
	Type       string             `json:"type"`
	Index      bool               `json:"index"`
	Source     bool               `json:"source"`
	Group      string             `json:"group"`
	Categories []mapping.Category `json:"categories"`
	Selected   bool               `json:"selected"`
}

// FieldsData 字段列表以及各分类下的字段名
type FieldsData struct {
	Fields     []FieldInfo                   `json:"fields"`
	Categories map[mapping.Category][]string `json:"categories"`
}

// readBody 读取请求 body，超过 MaxBodySize 时返回错误
func readBody(c *gin.Context) ([]byte, error) {
	body := c.Request.Body
	if body == nil {
		return nil, nil
	}
	if MaxBodySize > 0 {
		body = http.MaxBytesReader(c.Writer, body, MaxBodySize)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, badRequest(err)
	}
	return data, nil
}

// splitList 逗号分隔的参数，忽略空值
func splitList(s string) []string {
	var res []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			res = append(res, item)
		}
	}
	return res
}

// newFieldsData 按过滤语句筛选后输出，选中状态来自 selected
func newFieldsData(fields mapping.Fields, filter string, selected []string) *FieldsData {
	filtered := fields.Filter(filter, selected)
	selectedFields := fields.Selected(selected)

	data := &FieldsData{
		Fields:     make([]FieldInfo, 0, len(filtered)),
		Categories: make(map[mapping.Category][]string, len(mapping.AllCategories)),
	}
	for _, name := range filtered.Names() {
		f := filtered[name]
		_, ok := selectedFields[name]
		data.Fields = append(data.Fields, FieldInfo{
			Name:       name,
			Type:       f.Type,
			Index:      f.Index,
			Source:     f.Source,
			Group:      mapping.TypeGroup(f.Type),
			Categories: mapping.Categories(f.Type),
			Selected:   ok,
		})
	}
	for _, category := range mapping.AllCategories {
		data.Categories[category] = filtered.ByCategory(category).Names()
	}
	return data
}

// appendSource 把选中的字段追加到 _source，已有的 _source 列表保持在前
func appendSource(body []byte, fields []string) ([]byte, error) {
	doc := make(map[string]any)
	if len(strings.TrimSpace(string(body))) > 0 {
		if err := json.Unmarshal(body, &doc); err != nil {
			return nil, badRequest(err)
		}
		if doc == nil {
			doc = make(map[string]any)
		}
	}
	if len(fields) == 0 {
		if len(body) == 0 {
			return []byte("{}"), nil
		}
		return body, nil
	}

	var source []any
	switch v := doc[mapping.KeySource].(type) {
	case []any:
		source = v
	case string:
		source = []any{v}
	}

	existed := make(map[string]struct{}, len(source))
	for _, s := range source {
		if name, ok := s.(string); ok {
			existed[name] = struct{}{}
		}
	}
	for _, name := range fields {
		if _, ok := existed[name]; ok {
			continue
		}
		existed[name] = struct{}{}
		source = append(source, name)
	}
	doc[mapping.KeySource] = source

	return json.Marshal(doc)
}
