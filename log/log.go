// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package log

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap/zapcore"
)

// message 带 span 的 ctx 在日志前加 [trace_id]，便于和链路对应
func message(ctx context.Context, format string, v ...any) string {
	msg := fmt.Sprintf(format, v...)
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		return "[" + sc.TraceID().String() + "] " + msg
	}
	return msg
}

func logf(ctx context.Context, level zapcore.Level, format string, v ...any) {
	if !loggerLevel.Enabled(level) {
		return
	}
	l := OtLogger.Ctx(ctx)
	msg := message(ctx, format, v...)
	switch level {
	case zapcore.DebugLevel:
		l.Debug(msg)
	case zapcore.InfoLevel:
		l.Info(msg)
	case zapcore.WarnLevel:
		l.Warn(msg)
	case zapcore.ErrorLevel:
		l.Error(msg)
	default:
		l.Fatal(msg)
	}
}

func Debugf(ctx context.Context, format string, v ...any) {
	logf(ctx, zapcore.DebugLevel, format, v...)
}

func Infof(ctx context.Context, format string, v ...any) {
	logf(ctx, zapcore.InfoLevel, format, v...)
}

func Warnf(ctx context.Context, format string, v ...any) {
	logf(ctx, zapcore.WarnLevel, format, v...)
}

func Errorf(ctx context.Context, format string, v ...any) {
	logf(ctx, zapcore.ErrorLevel, format, v...)
}

// Fatalf 输出后退出进程
func Fatalf(ctx context.Context, format string, v ...any) {
	logf(ctx, zapcore.FatalLevel, format, v...)
}
