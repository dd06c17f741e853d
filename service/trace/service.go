// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package trace

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.10.0"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/errno"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/log"
)

const shutdownTimeout = 5 * time.Second

// Service 上报 eska 的 span 到 OTLP 服务端
type Service struct {
	tracerProvider *sdktrace.TracerProvider

	// 每个已创建的 provider 对应一次 Add，在 provider 关闭后 Done
	wg sync.WaitGroup
}

func (s *Service) Type() string {
	return "trace"
}

func endpoint() string {
	return net.JoinHostPort(otlpHost, otlpPort)
}

// newClient 按 trace.otlp.type 选择 http 或 grpc 协议
func newClient(otlpType string) (otlptrace.Client, error) {
	switch otlpType {
	case OtlpTypeHTTP:
		return otlptracehttp.NewClient(
			otlptracehttp.WithEndpoint(endpoint()),
			otlptracehttp.WithInsecure(),
			otlptracehttp.WithRetry(otlptracehttp.RetryConfig{
				Enabled:         true,
				InitialInterval: time.Second,
				MaxInterval:     5 * time.Second,
				MaxElapsedTime:  30 * time.Second,
			}),
		), nil
	case OtlpTypeGrpc:
		return otlptracegrpc.NewClient(
			otlptracegrpc.WithEndpoint(endpoint()),
			otlptracegrpc.WithInsecure(),
		), nil
	default:
		return nil, errors.Errorf("unknown otlp type: %s", otlpType)
	}
}

func newResource() *resource.Resource {
	attrs := []attribute.KeyValue{
		semconv.ServiceNameKey.String(ServiceName),
	}
	if otlpToken != "" {
		attrs = append(attrs, attribute.Key("bk.data.token").String(otlpToken))
	}
	return resource.NewWithAttributes(semconv.SchemaURL, attrs...)
}

func (s *Service) Start(ctx context.Context) {
	if !Enable {
		log.Debugf(ctx, "trace is disabled")
		return
	}

	client, err := newClient(OtlpType)
	if err != nil {
		codedErr := errno.ErrConfigReloadFailed().
			WithComponent("Trace导出器").
			WithOperation("选择 OTLP 协议").
			WithContext("otlp_type", OtlpType).
			WithError(err).
			WithSolution("trace.otlp.type 仅支持 http 或 grpc")
		log.ErrorWithCodef(ctx, codedErr)
		return
	}

	exporter, err := otlptrace.New(ctx, client)
	if err != nil {
		codedErr := errno.ErrStorageConnFailed().
			WithComponent("Trace导出器").
			WithOperation("创建 OTLP 导出器").
			WithContext("otlp_type", OtlpType).
			WithContext("endpoint", endpoint()).
			WithError(err).
			WithSolution("检查OTLP服务器连接和配置")
		log.ErrorWithCodef(ctx, codedErr)
		return
	}

	s.wg.Add(1)
	s.tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(newResource()),
	)
	otel.SetTracerProvider(s.tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	codedInfo := errno.ErrInfoServiceStart().
		WithComponent("Trace导出器").
		WithOperation("服务启动").
		WithContext("endpoint", endpoint()).
		WithContext("otlp_type", OtlpType)
	log.InfoWithCodef(ctx, codedInfo)
}

func (s *Service) Reload(ctx context.Context) {
	s.Close()
	s.Start(ctx)
	codedInfo := errno.ErrInfoConfigReload().
		WithComponent("Trace导出器").
		WithOperation("服务重载").
		WithContext("enable", Enable)
	log.InfoWithCodef(ctx, codedInfo)
}

// Close 异步刷新剩余 span 并关闭 provider，通过 Wait 等待完成
func (s *Service) Close() {
	if s.tracerProvider == nil {
		return
	}

	go func(tp *sdktrace.TracerProvider) {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			codedErr := errno.ErrBusinessLogicError().
				WithComponent("Trace导出器").
				WithOperation("关闭跟踪导出器").
				WithError(err).
				WithSolution("检查跟踪服务器状态和连接")
			log.ErrorWithCodef(ctx, codedErr)
			return
		}

		codedInfo := errno.ErrInfoServiceShutdown().
			WithComponent("Trace导出器").
			WithOperation("服务关闭")
		log.InfoWithCodef(ctx, codedInfo)
	}(s.tracerProvider)
	s.tracerProvider = nil
}

func (s *Service) Wait() {
	s.wg.Wait()
}
