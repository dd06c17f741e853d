// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package metadata_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/log"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/metadata"
)

func TestMessage(t *testing.T) {
	log.InitTestLogger()
	ctx := context.Background()

	msg := metadata.NewMessage(metadata.MsgQueryES, "索引 %s 查询失败", "logs")
	assert.Equal(t, "[es_query] 索引 logs 查询失败", msg.Text())
	assert.Equal(t, "索引 logs 查询失败", msg.String())

	cause := errors.New("timeout")
	err := msg.Error(ctx, cause)
	assert.Equal(t, "索引 logs 查询失败: timeout", err.Error())
	assert.Equal(t, cause, errors.Cause(err))

	assert.Equal(t, "索引 logs 查询失败", msg.Error(ctx, nil).Error())
}
