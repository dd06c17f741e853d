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
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/es"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/trace"
)

const defaultIndexPattern = "*"

// IndexInfo
type IndexInfo struct {
	Name    string   `json:"name"`
	Aliases []string `json:"aliases"`
}

// HandlerClusters 已配置的集群
// @Summary  list clusters
// @Produce  json
// @Success  200  {object}  map[string][]string
// @Router   /clusters [get]
func HandlerClusters(c *gin.Context) {
	var (
		ctx  = c.Request.Context()
		resp = &response{c: c}
	)

	resp.success(ctx, gin.H{"clusters": es.Clusters()})
}

// HandlerClusterInfo 集群根路径信息
// @Summary  cluster info
// @Produce  json
// @Param    cluster  path      string  true  "集群名称"
// @Success  200      {object}  es.Info
// @Failure  404      {object}  ErrResponse
// @Failure  502      {object}  ErrResponse
// @Router   /clusters/{cluster}/info [get]
func HandlerClusterInfo(c *gin.Context) {
	var (
		ctx     = c.Request.Context()
		resp    = &response{c: c}
		cluster = c.Param("cluster")

		err error
	)

	ctx, span := trace.NewSpan(ctx, "handle-cluster-info")
	defer span.End(&err)
	span.Set("cluster", cluster)

	client, err := es.GetClient(cluster)
	if err != nil {
		resp.failed(ctx, err)
		return
	}
	info, err := client.Info(ctx)
	if err != nil {
		resp.failed(ctx, err)
		return
	}
	resp.success(ctx, info)
}

// HandlerClusterHealth 集群健康状态
// @Summary  cluster health
// @Produce  json
// @Param    cluster  path      string  true  "集群名称"
// @Failure  404      {object}  ErrResponse
// @Failure  502      {object}  ErrResponse
// @Router   /clusters/{cluster}/health [get]
func HandlerClusterHealth(c *gin.Context) {
	var (
		ctx     = c.Request.Context()
		resp    = &response{c: c}
		cluster = c.Param("cluster")

		err error
	)

	ctx, span := trace.NewSpan(ctx, "handle-cluster-health")
	defer span.End(&err)
	span.Set("cluster", cluster)

	client, err := es.GetClient(cluster)
	if err != nil {
		resp.failed(ctx, err)
		return
	}
	health, err := client.Health(ctx)
	if err != nil {
		resp.failed(ctx, err)
		return
	}
	resp.success(ctx, health)
}

// HandlerIndices 匹配 pattern 的索引及其别名，默认全部
// @Summary  list indices
// @Produce  json
// @Param    cluster  path      string  true   "集群名称"
// @Param    pattern  query     string  false  "索引通配" default(*)
// @Success  200      {array}   IndexInfo
// @Failure  404      {object}  ErrResponse
// @Failure  502      {object}  ErrResponse
// @Router   /clusters/{cluster}/indices [get]
func HandlerIndices(c *gin.Context) {
	var (
		ctx     = c.Request.Context()
		resp    = &response{c: c}
		cluster = c.Param("cluster")
		pattern = c.DefaultQuery("pattern", defaultIndexPattern)

		err error
	)

	ctx, span := trace.NewSpan(ctx, "handle-indices")
	defer span.End(&err)
	span.Set("cluster", cluster)
	span.Set("pattern", pattern)

	client, err := es.GetClient(cluster)
	if err != nil {
		resp.failed(ctx, err)
		return
	}
	indices, err := client.Indices(ctx, pattern)
	if err != nil {
		resp.failed(ctx, err)
		return
	}

	names := make([]string, 0, len(indices))
	for name := range indices {
		names = append(names, name)
	}
	slices.Sort(names)

	res := make([]IndexInfo, 0, len(names))
	for _, name := range names {
		aliases := indices[name].AliasNames()
		if aliases == nil {
			aliases = []string{}
		}
		res = append(res, IndexInfo{Name: name, Aliases: aliases})
	}
	span.Set("index-count", len(res))
	resp.success(ctx, res)
}
