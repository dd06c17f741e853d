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
)

// CodedMessage 带错误码的日志内容，由 errno.ErrCode 实现
type CodedMessage interface {
	String() string
}

// ErrorWithCodef 按错误码格式输出 error 日志
func ErrorWithCodef(ctx context.Context, code CodedMessage) {
	if code == nil {
		return
	}
	Errorf(ctx, "%s", code.String())
}

// WarnWithCodef
func WarnWithCodef(ctx context.Context, code CodedMessage) {
	if code == nil {
		return
	}
	Warnf(ctx, "%s", code.String())
}

// InfoWithCodef
func InfoWithCodef(ctx context.Context, code CodedMessage) {
	if code == nil {
		return
	}
	Infof(ctx, "%s", code.String())
}
