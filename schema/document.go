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
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/mapping"
)

const (
	DocumentURI  = "http://elasticsearch/query-schema.json"
	FileMatchAll = "*"
)

// Document 编辑器 schema 服务的注册项
type Document struct {
	URI       string   `json:"uri"`
	FileMatch []string `json:"fileMatch"`
	Schema    *Schema  `json:"schema"`
}

func NewDocument(m *mapping.IndexMapping) *Document {
	return &Document{
		URI:       DocumentURI,
		FileMatch: []string{FileMatchAll},
		Schema:    BuildQuerySchema(m),
	}
}
