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
	"net"
	gohttp "net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/errno"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/log"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/service/http/middleware"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/service/trace"
)

// Service
type Service struct {
	wg         sync.WaitGroup
	ctx        context.Context
	cancelFunc context.CancelFunc

	server *gohttp.Server
	g      *gin.Engine
}

func (s *Service) Type() string {
	return "http"
}

func (s *Service) Start(ctx context.Context) {
	s.Reload(ctx)
}

// NewEngine 构造注册了全部路由的 gin engine
func NewEngine(ctx context.Context) *gin.Engine {
	g := gin.New()

	public := g.Group("/")
	// 中间件必须在路由之前注册
	public.Use(
		gin.Recovery(),
		otelgin.Middleware(trace.ServiceName),
		middleware.Timer(&middleware.Params{
			SlowQueryThreshold: SlowQueryThreshold,
		}),
	)
	registerDefaultHandlers(ctx, public)

	private := g.Group("/")
	registerOtherHandlers(ctx, private)
	return g
}

func (s *Service) Reload(ctx context.Context) {
	if s.server != nil {
		tempCtx, cancelFunc := context.WithTimeout(ctx, WriteTimeout)
		defer cancelFunc()
		if err := s.server.Shutdown(tempCtx); err != nil {
			log.Errorf(ctx, "failed to shutdown http server for->[%s]", err)
		}
	}

	if s.cancelFunc != nil {
		s.cancelFunc()
	}

	log.Debugf(ctx, "waiting for http service close")
	s.Wait()

	gin.SetMode(gin.ReleaseMode)
	s.g = NewEngine(ctx)

	s.server = &gohttp.Server{
		Addr:         net.JoinHostPort(IPAddress, strconv.Itoa(Port)),
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
		Handler:      s.g,
	}

	s.wg.Add(1)
	go func(server *gohttp.Server) {
		defer s.wg.Done()
		if err := server.ListenAndServe(); err != nil && err != gohttp.ErrServerClosed {
			codedErr := errno.ErrBusinessLogicError().
				WithComponent("HTTP").
				WithOperation("启动服务").
				WithContext("address", server.Addr).
				WithError(err).
				WithSolution("检查 http.address 与 http.port 是否被占用")
			log.ErrorWithCodef(ctx, codedErr)
		}
	}(s.server)

	s.ctx, s.cancelFunc = context.WithCancel(ctx)
	s.wg.Add(1)
	go func(ctx context.Context, server *gohttp.Server) {
		defer s.wg.Done()
		<-ctx.Done()
		if err := server.Close(); err != nil {
			log.Errorf(ctx, "failed to close http server for->[%s]", err)
		}
	}(s.ctx, s.server)

	codedInfo := errno.ErrInfoServiceStart().
		WithComponent("HTTP").
		WithOperation("服务启动").
		WithContext("address", s.server.Addr)
	log.InfoWithCodef(ctx, codedInfo)
}

func (s *Service) Wait() {
	s.wg.Wait()
}

func (s *Service) Close() {
	if s.cancelFunc != nil {
		s.cancelFunc()
	}
}
