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
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const (
	TracerName = "bk-monitorv3/eska"

	// AttributePrefix span 属性统一加前缀，避免和 otelgin 等组件的属性冲突
	AttributePrefix = "eska."
)

// Span 对 otel span 的简单包装，nil 安全
type Span struct {
	span oteltrace.Span
}

// NewSpan 以 ctx 中的 span 为父节点开启新的 span
func NewSpan(ctx context.Context, name string) (context.Context, *Span) {
	ctx, span := otel.Tracer(TracerName).Start(ctx, name)
	return ctx, &Span{span: span}
}

func (s *Span) TraceID() string {
	if s == nil || s.span == nil {
		return ""
	}
	sc := s.span.SpanContext()
	if !sc.HasTraceID() {
		return ""
	}
	return sc.TraceID().String()
}

func toAttribute(key string, value any) attribute.KeyValue {
	key = AttributePrefix + key
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case []string:
		return attribute.StringSlice(key, v)
	case bool:
		return attribute.Bool(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case float64:
		return attribute.Float64(key, v)
	case time.Duration:
		return attribute.String(key, v.String())
	case error:
		return attribute.String(key, v.Error())
	case fmt.Stringer:
		return attribute.String(key, v.String())
	default:
		return attribute.String(key, fmt.Sprintf("%+v", v))
	}
}

// Set 设置 span 属性，key 自动加上 AttributePrefix
func (s *Span) Set(key string, value any) {
	if s == nil || s.span == nil {
		return
	}
	s.span.SetAttributes(toAttribute(key, value))
}

// End 结束 span，errPoint 指向的错误不为空时标记为失败
func (s *Span) End(errPoint *error) {
	if s == nil || s.span == nil {
		return
	}
	if errPoint != nil && *errPoint != nil {
		s.span.RecordError(*errPoint)
		s.span.SetStatus(codes.Error, (*errPoint).Error())
	}
	s.span.End()
}
