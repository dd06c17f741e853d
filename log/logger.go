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
	"os"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	loggerLevel = zap.NewAtomicLevelAt(zap.InfoLevel)

	// DefaultLogger 不带 trace 信息的基础日志
	DefaultLogger *Logger
	// OtLogger 会把日志同步写入 span event
	OtLogger *otelzap.Logger

	// 文件输出时关闭旧文件句柄
	closeOutput = func() {}
)

// Logger
type Logger struct {
	logger *zap.Logger
}

// Zap
func (l *Logger) Zap() *zap.Logger {
	return l.logger
}

// Sync
func (l *Logger) Sync() error {
	return l.logger.Sync()
}

func newEncoder() zapcore.Encoder {
	return zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	})
}

// setLogger 替换全局日志对象
func setLogger(writeSyncer zapcore.WriteSyncer) {
	zl := zap.New(
		zapcore.NewCore(newEncoder(), writeSyncer, loggerLevel),
		zap.AddCaller(), zap.AddCallerSkip(2),
	)

	DefaultLogger = &Logger{logger: zl}
	OtLogger = otelzap.New(zl, otelzap.WithMinLevel(zap.WarnLevel))
}

func init() {
	setLogger(zapcore.Lock(os.Stdout))
}
