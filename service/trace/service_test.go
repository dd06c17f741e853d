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
	"testing"

	"github.com/prashantv/gostub"
	"github.com/stretchr/testify/assert"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/log"
)

func TestNewClient(t *testing.T) {
	testCases := []struct {
		otlpType string
		hasErr   bool
	}{
		{otlpType: OtlpTypeHTTP},
		{otlpType: OtlpTypeGrpc},
		{otlpType: "udp", hasErr: true},
	}

	for _, c := range testCases {
		t.Run(c.otlpType, func(t *testing.T) {
			client, err := newClient(c.otlpType)
			if c.hasErr {
				assert.Error(t, err)
				assert.Nil(t, client)
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}

func TestServiceLifecycle(t *testing.T) {
	log.InitTestLogger()
	ctx := context.Background()

	stubs := gostub.Stub(&Enable, false)
	defer stubs.Reset()

	s := &Service{}
	s.Start(ctx)
	assert.Nil(t, s.tracerProvider)
	s.Close()
	s.Wait()

	stubs.Stub(&Enable, true)
	stubs.Stub(&OtlpType, OtlpTypeHTTP)
	stubs.Stub(&ServiceName, "eska-test")
	stubs.Stub(&otlpHost, "127.0.0.1")
	stubs.Stub(&otlpPort, "4318")

	s.Reload(ctx)
	assert.NotNil(t, s.tracerProvider)
	s.Close()
	s.Wait()
	assert.Nil(t, s.tracerProvider)
}
