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
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/catalog"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/errno"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/es"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/log"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/schema"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/trace"
)

// ValidateData 校验结果，校验失败也返回 200
type ValidateData struct {
	Valid  bool                     `json:"valid"`
	Errors []schema.ValidationError `json:"errors"`
}

// HandlerFields 索引字段分类
// @Summary  index fields
// @Produce  json
// @Param    cluster   path      string  true   "集群名称"
// @Param    index     path      string  true   "索引或别名"
// @Param    filter    query     string  false  "过滤语句，如 @index :keyword -@source name"
// @Param    selected  query     string  false  "已选字段，逗号分隔"
// @Success  200       {object}  FieldsData
// @Failure  404       {object}  ErrResponse
// @Failure  502       {object}  ErrResponse
// @Router   /clusters/{cluster}/indices/{index}/fields [get]
func HandlerFields(c *gin.Context) {
	var (
		ctx      = c.Request.Context()
		resp     = &response{c: c}
		cluster  = c.Param("cluster")
		index    = c.Param("index")
		filter   = c.Query("filter")
		selected = splitList(c.Query("selected"))

		err error
	)

	ctx, span := trace.NewSpan(ctx, "handle-fields")
	defer span.End(&err)
	span.Set("cluster", cluster)
	span.Set("index", index)
	span.Set("filter", filter)

	fields, err := catalog.Default().GetFields(ctx, cluster, index)
	if err != nil {
		resp.failed(ctx, err)
		return
	}
	resp.success(ctx, newFieldsData(fields, filter, selected))
}

// HandlerSchema 索引对应的编辑器 schema 文档
// @Summary  index query schema
// @Produce  json
// @Param    cluster  path      string  true  "集群名称"
// @Param    index    path      string  true  "索引或别名"
// @Success  200      {object}  schema.Document
// @Failure  404      {object}  ErrResponse
// @Failure  502      {object}  ErrResponse
// @Router   /clusters/{cluster}/indices/{index}/schema [get]
func HandlerSchema(c *gin.Context) {
	var (
		ctx     = c.Request.Context()
		resp    = &response{c: c}
		cluster = c.Param("cluster")
		index   = c.Param("index")

		err error
	)

	ctx, span := trace.NewSpan(ctx, "handle-schema")
	defer span.End(&err)
	span.Set("cluster", cluster)
	span.Set("index", index)

	data, err := catalog.Default().GetSchema(ctx, cluster, index)
	if err != nil {
		resp.failed(ctx, err)
		return
	}
	resp.raw(ctx, data)
}

// HandlerValidate 按索引 schema 校验查询语句
// @Summary  validate query
// @Accept   json
// @Produce  json
// @Param    cluster  path      string  true  "集群名称"
// @Param    index    path      string  true  "索引或别名"
// @Success  200      {object}  ValidateData
// @Failure  400      {object}  ErrResponse
// @Failure  404      {object}  ErrResponse
// @Router   /clusters/{cluster}/indices/{index}/_validate [post]
func HandlerValidate(c *gin.Context) {
	var (
		ctx     = c.Request.Context()
		resp    = &response{c: c}
		cluster = c.Param("cluster")
		index   = c.Param("index")

		err error
	)

	ctx, span := trace.NewSpan(ctx, "handle-validate")
	defer span.End(&err)
	span.Set("cluster", cluster)
	span.Set("index", index)

	body, err := readBody(c)
	if err != nil {
		resp.failed(ctx, err)
		return
	}
	validator, err := catalog.Default().GetValidator(ctx, cluster, index)
	if err != nil {
		resp.failed(ctx, err)
		return
	}

	data := &ValidateData{Valid: true, Errors: []schema.ValidationError{}}
	if validateErr := validator.Validate(body); validateErr != nil {
		var invalid *schema.InvalidError
		if !errors.As(validateErr, &invalid) {
			err = badRequest(validateErr)
			resp.failed(ctx, err)
			return
		}
		data.Valid = false
		data.Errors = invalid.Errors
	}
	span.Set("valid", data.Valid)
	resp.success(ctx, data)
}

// HandlerSearch 把选中字段追加到 _source 后转发到集群
// @Summary  search
// @Accept   json
// @Produce  json
// @Param    cluster  path      string  true   "集群名称"
// @Param    index    path      string  true   "索引或别名"
// @Param    fields   query     string  false  "追加到 _source 的字段，逗号分隔"
// @Failure  400      {object}  ErrResponse
// @Failure  404      {object}  ErrResponse
// @Failure  502      {object}  ErrResponse
// @Router   /clusters/{cluster}/indices/{index}/_search [post]
func HandlerSearch(c *gin.Context) {
	var (
		ctx     = c.Request.Context()
		resp    = &response{c: c}
		cluster = c.Param("cluster")
		index   = c.Param("index")
		fields  = splitList(c.Query("fields"))

		err error
	)

	ctx, span := trace.NewSpan(ctx, "handle-search")
	defer span.End(&err)
	span.Set("cluster", cluster)
	span.Set("index", index)
	span.Set("fields", fields)

	body, err := readBody(c)
	if err != nil {
		resp.failed(ctx, err)
		return
	}
	body, err = appendSource(body, fields)
	if err != nil {
		codedErr := errno.ErrDataFormatInvalid().
			WithComponent("HTTP").
			WithOperation("追加 _source 字段").
			WithContext("index", index).
			WithError(err).
			WithSolution("检查查询语句是否为 JSON 对象")
		log.WarnWithCodef(ctx, codedErr)
		resp.failed(ctx, err)
		return
	}
	span.Set("query-body", string(body))

	client, err := es.GetClient(cluster)
	if err != nil {
		resp.failed(ctx, err)
		return
	}
	res, err := client.Search(ctx, index, body)
	if err != nil {
		resp.failed(ctx, err)
		return
	}
	resp.raw(ctx, res)
}

// HandlerInvalidateCache 清理索引的 mapping 和 schema 缓存
// @Summary  invalidate index cache
// @Produce  json
// @Param    cluster  path      string  true  "集群名称"
// @Param    index    path      string  true  "索引或别名"
// @Router   /clusters/{cluster}/indices/{index}/cache [delete]
func HandlerInvalidateCache(c *gin.Context) {
	var (
		ctx     = c.Request.Context()
		resp    = &response{c: c}
		cluster = c.Param("cluster")
		index   = c.Param("index")
	)

	catalog.Default().Invalidate(cluster, index)
	log.Infof(ctx, "invalidate cache %s/%s", cluster, index)
	resp.success(ctx, gin.H{"result": true})
}
