// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/errno"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/log"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/metric"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/trace"
)

// Params
type Params struct {
	SlowQueryThreshold time.Duration
}

// routePath 使用注册的路由模板作为指标 label，未匹配的路由统一归类
func routePath(c *gin.Context) string {
	if p := c.FullPath(); p != "" {
		return p
	}
	return "unmatched"
}

// Timer 记录请求耗时，超过阈值时输出慢请求告警
func Timer(p *Params) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			start = time.Now()
			path  = routePath(c)
		)

		ctx, span := trace.NewSpan(c.Request.Context(), "http-api")
		c.Request = c.Request.WithContext(ctx)
		span.Set("http-api-path", path)
		metric.APIRequestInc(ctx, path, metric.StatusReceived)

		defer func() {
			sub := time.Since(start)
			metric.APIRequestSecond(ctx, sub, path)
			span.Set("http-api-query-cost", int(sub.Milliseconds()))
			span.Set("http-api-status-code", c.Writer.Status())

			if p != nil && p.SlowQueryThreshold > 0 && sub > p.SlowQueryThreshold {
				codedErr := errno.ErrWarningServiceDegraded().
					WithComponent("HTTP").
					WithOperation("慢请求").
					WithContext("path", c.Request.URL.Path).
					WithContext("duration", sub.String()).
					WithSolution("检查集群响应时间或调整 http.slow_query_threshold")
				log.WarnWithCodef(ctx, codedErr)
			}
			span.End(nil)
		}()

		c.Next()
	}
}
