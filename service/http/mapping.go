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
	"bytes"

	"github.com/gin-gonic/gin"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/internal/json"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/mapping"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/metadata"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/schema"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/trace"
)

// decodeMapping 空 body 返回 nil，表示没有 mapping
func decodeMapping(c *gin.Context) (*mapping.IndexMapping, error) {
	body, err := readBody(c)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}
	m, err := mapping.Decode(body)
	if err != nil {
		return nil, badRequest(err)
	}
	return m, nil
}

// HandlerMappingSchema 由请求中的 mapping 文档直接生成 schema，不访问集群
// @Summary  schema from mapping
// @Accept   json
// @Produce  json
// @Success  200  {object}  schema.Document
// @Failure  400  {object}  ErrResponse
// @Router   /schema [post]
func HandlerMappingSchema(c *gin.Context) {
	var (
		ctx  = c.Request.Context()
		resp = &response{c: c}

		err error
	)

	ctx, span := trace.NewSpan(ctx, "handle-mapping-schema")
	defer span.End(&err)

	m, err := decodeMapping(c)
	if err != nil {
		resp.failed(ctx, err)
		return
	}
	span.Set("has-mapping", m != nil)

	data, err := json.Marshal(schema.NewDocument(m))
	if err != nil {
		err = metadata.NewMessage(metadata.MsgSchemaBuild, "序列化 schema 失败").Error(ctx, err)
		resp.failed(ctx, err)
		return
	}
	resp.raw(ctx, data)
}

// HandlerMappingFields 由请求中的 mapping 文档直接输出字段分类
// @Summary  fields from mapping
// @Accept   json
// @Produce  json
// @Param    filter    query     string  false  "过滤语句"
// @Param    selected  query     string  false  "已选字段，逗号分隔"
// @Success  200       {object}  FieldsData
// @Failure  400       {object}  ErrResponse
// @Router   /fields [post]
func HandlerMappingFields(c *gin.Context) {
	var (
		ctx      = c.Request.Context()
		resp     = &response{c: c}
		filter   = c.Query("filter")
		selected = splitList(c.Query("selected"))

		err error
	)

	ctx, span := trace.NewSpan(ctx, "handle-mapping-fields")
	defer span.End(&err)

	m, err := decodeMapping(c)
	if err != nil {
		resp.failed(ctx, err)
		return
	}
	resp.success(ctx, newFieldsData(mapping.FlattenFields(m), filter, selected))
}
