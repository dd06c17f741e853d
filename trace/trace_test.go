// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package trace_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/trace"
)

func TestSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	otel.SetTracerProvider(tp)
	defer func() { _ = tp.Shutdown(context.Background()) }()

	ctx, span := trace.NewSpan(context.Background(), "build-schema")
	span.Set("cluster", "prod")
	span.Set("fields", []string{"a", "b"})
	span.Set("count", 3)
	assert.NotEmpty(t, span.TraceID())

	_, child := trace.NewSpan(ctx, "marshal")
	child.End(nil)

	err := errors.New("mapping not found")
	span.End(&err)

	ended := recorder.Ended()
	assert.Len(t, ended, 2)
	assert.Equal(t, "marshal", ended[0].Name())
	assert.Equal(t, "build-schema", ended[1].Name())
	assert.Equal(t, ended[1].SpanContext().SpanID(), ended[0].Parent().SpanID())

	attrs := make(map[string]string)
	for _, kv := range ended[1].Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "prod", attrs["eska.cluster"])
	assert.Equal(t, "3", attrs["eska.count"])
	assert.Equal(t, "mapping not found", ended[1].Status().Description)

	var nilSpan *trace.Span
	nilSpan.Set("k", "v")
	nilSpan.End(nil)
	assert.Empty(t, nilSpan.TraceID())
}
