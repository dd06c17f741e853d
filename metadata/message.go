// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package metadata

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/log"
)

// 日志中的消息来源
const (
	MsgQueryES     = "es_query"
	MsgCatalog     = "catalog"
	MsgSchemaBuild = "schema_build"
)

// Message 带来源标识的日志消息，Error 会同时记录日志
type Message struct {
	ID      string
	Content string
}

func NewMessage(id, format string, args ...any) *Message {
	return &Message{ID: id, Content: fmt.Sprintf(format, args...)}
}

// Text [ID] Content
func (m *Message) Text() string {
	return "[" + m.ID + "] " + m.Content
}

func (m *Message) String() string {
	return m.Content
}

// Error 以 Content 包装 err 并输出 error 日志，err 为空时只返回 Content
func (m *Message) Error(ctx context.Context, err error) error {
	var res error
	if err == nil {
		res = errors.New(m.Content)
	} else {
		res = errors.WithMessage(err, m.Content)
	}
	log.Errorf(ctx, "[%s] %s", m.ID, res)
	return res
}
