// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package errno

import (
	"fmt"
	"strings"
)

type contextItem struct {
	key   string
	value any
}

// ErrCode 带错误码的错误，附带组件、操作、上下文以及解决建议
type ErrCode struct {
	code     string
	message  string
	category string

	component string
	operation string
	contexts  []contextItem
	solution  string
	err       error
}

// NewErrCode
func NewErrCode(code, message, category string) *ErrCode {
	return &ErrCode{
		code:     code,
		message:  message,
		category: category,
	}
}

func (e *ErrCode) Code() string {
	return e.code
}

func (e *ErrCode) Message() string {
	return e.message
}

func (e *ErrCode) Category() string {
	return e.category
}

// WithComponent 出错的组件
func (e *ErrCode) WithComponent(component string) *ErrCode {
	e.component = component
	return e
}

// WithOperation 出错时正在执行的操作
func (e *ErrCode) WithOperation(operation string) *ErrCode {
	e.operation = operation
	return e
}

// WithContext 追加上下文，按追加顺序输出
func (e *ErrCode) WithContext(key string, value any) *ErrCode {
	e.contexts = append(e.contexts, contextItem{key: key, value: value})
	return e
}

// WithSolution 解决建议
func (e *ErrCode) WithSolution(solution string) *ErrCode {
	e.solution = solution
	return e
}

// WithError 关联原始错误
func (e *ErrCode) WithError(err error) *ErrCode {
	e.err = err
	return e
}

// WithErrorf
func (e *ErrCode) WithErrorf(format string, args ...any) *ErrCode {
	e.err = fmt.Errorf(format, args...)
	return e
}

// Unwrap
func (e *ErrCode) Unwrap() error {
	return e.err
}

// Error
func (e *ErrCode) Error() string {
	if e.err != nil {
		return fmt.Sprintf("[%s] %s: %s", e.code, e.message, e.err.Error())
	}
	return fmt.Sprintf("[%s] %s", e.code, e.message)
}

// String 完整的日志输出格式
func (e *ErrCode) String() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s] [%s] %s", e.code, e.category, e.message))
	if e.component != "" {
		b.WriteString(" | 组件: ")
		b.WriteString(e.component)
	}
	if e.operation != "" {
		b.WriteString(" | 操作: ")
		b.WriteString(e.operation)
	}
	if len(e.contexts) > 0 {
		items := make([]string, 0, len(e.contexts))
		for _, c := range e.contexts {
			items = append(items, fmt.Sprintf("%s=%v", c.key, c.value))
		}
		b.WriteString(" | 上下文: ")
		b.WriteString(strings.Join(items, ", "))
	}
	if e.err != nil {
		b.WriteString(" | 错误: ")
		b.WriteString(e.err.Error())
	}
	if e.solution != "" {
		b.WriteString(" | 解决: ")
		b.WriteString(e.solution)
	}
	return b.String()
}
