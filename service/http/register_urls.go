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
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/viper"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/log"
)

// HandlerEntry
type HandlerEntry struct {
	Method      string
	HandlerPath string
	HandlerFunc []gin.HandlerFunc
}

type RegisterHandlers struct {
	ctx     context.Context
	g       *gin.RouterGroup
	entries []HandlerEntry
}

func getRegisterHandlers(ctx context.Context, g *gin.RouterGroup) *RegisterHandlers {
	return &RegisterHandlers{
		ctx: ctx,
		g:   g,
	}
}

// register 路径为空的接口不注册
func (r *RegisterHandlers) register(method, configPath string, handlers ...gin.HandlerFunc) {
	handlerPath := viper.GetString(configPath)
	if handlerPath == "" {
		log.Warnf(r.ctx, "handler path of %s is empty, skip register", configPath)
		return
	}
	r.entries = append(r.entries, HandlerEntry{
		Method:      method,
		HandlerPath: handlerPath,
		HandlerFunc: handlers,
	})
}

func (r *RegisterHandlers) do() {
	for _, entry := range r.entries {
		if len(entry.HandlerFunc) == 0 {
			continue
		}
		r.g.Handle(entry.Method, entry.HandlerPath, entry.HandlerFunc...)
		log.Debugf(r.ctx, "register handler %s %s", entry.Method, entry.HandlerPath)
	}
}

// registerDefaultHandlers 业务接口，需要经过中间件
func registerDefaultHandlers(ctx context.Context, g *gin.RouterGroup) {
	registerHandler := getRegisterHandlers(ctx, g)

	registerHandler.register(http.MethodGet, ClustersPathConfigPath, HandlerClusters)
	registerHandler.register(http.MethodGet, ClusterInfoPathConfigPath, HandlerClusterInfo)
	registerHandler.register(http.MethodGet, ClusterHealthPathConfigPath, HandlerClusterHealth)
	registerHandler.register(http.MethodGet, IndicesPathConfigPath, HandlerIndices)

	registerHandler.register(http.MethodGet, FieldsPathConfigPath, HandlerFields)
	registerHandler.register(http.MethodGet, SchemaPathConfigPath, HandlerSchema)
	registerHandler.register(http.MethodPost, ValidatePathConfigPath, HandlerValidate)
	registerHandler.register(http.MethodPost, SearchPathConfigPath, HandlerSearch)
	registerHandler.register(http.MethodDelete, CachePathConfigPath, HandlerInvalidateCache)

	registerHandler.register(http.MethodPost, MappingSchemaPathConfigPath, HandlerMappingSchema)
	registerHandler.register(http.MethodPost, MappingFieldsPathConfigPath, HandlerMappingFields)

	registerHandler.do()
}

// registerOtherHandlers 运维类接口，不经过中间件
func registerOtherHandlers(ctx context.Context, g *gin.RouterGroup) {
	registerHandler := getRegisterHandlers(ctx, g)

	if viper.GetBool(EnablePrometheusConfigPath) {
		registerHandler.register(http.MethodGet, PrometheusPathConfigPath, gin.WrapH(
			promhttp.HandlerFor(
				prometheus.DefaultGatherer,
				promhttp.HandlerOpts{
					EnableOpenMetrics: true,
				},
			),
		))
	}

	registerHandler.do()
}
