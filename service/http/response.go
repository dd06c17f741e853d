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
	"github.com/pkg/errors"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/catalog"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/es"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/log"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/metric"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/trace"
)

// ErrBadRequest 请求参数或 body 不合法
var ErrBadRequest = errors.New("bad request")

// ErrResponse
type ErrResponse struct {
	TraceID string `json:"trace_id,omitempty"`
	Err     string `json:"error"`
}

type response struct {
	c *gin.Context
}

// statusCode 集群或索引不存在返回 404，参数错误返回 400，集群返回的 4xx 原样透传，其余视为集群异常
func statusCode(err error) int {
	var se *es.StatusError
	switch {
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, es.ErrClusterNotFound), errors.Is(err, catalog.ErrIndexNotFound), es.IsNotFound(err):
		return http.StatusNotFound
	case errors.As(err, &se) && se.StatusCode >= http.StatusBadRequest && se.StatusCode < http.StatusInternalServerError:
		return se.StatusCode
	default:
		return http.StatusBadGateway
	}
}

func badRequest(err error) error {
	if err == nil {
		return ErrBadRequest
	}
	return errors.Wrap(ErrBadRequest, err.Error())
}

func (r *response) failed(ctx context.Context, err error) {
	log.Errorf(ctx, "%s", err.Error())
	metric.APIRequestInc(ctx, r.c.FullPath(), metric.StatusFailed)

	_, span := trace.NewSpan(ctx, "response-failed")
	defer span.End(nil)
	r.c.JSON(statusCode(err), ErrResponse{
		TraceID: span.TraceID(),
		Err:     err.Error(),
	})
}

func (r *response) success(ctx context.Context, data any) {
	metric.APIRequestInc(ctx, r.c.FullPath(), metric.StatusSuccess)
	r.c.JSON(http.StatusOK, data)
}

// raw 直接返回已经序列化好的 JSON
func (r *response) raw(ctx context.Context, data []byte) {
	log.Debugf(ctx, "response data size is %d", len(data))
	metric.APIRequestInc(ctx, r.c.FullPath(), metric.StatusSuccess)
	r.c.Data(http.StatusOK, gin.MIMEJSON, data)
}
