// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package es_test

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/prashantv/gostub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/es"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/es/mocktest"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/log"
)

func TestReloadClusters(t *testing.T) {
	log.InitTestLogger()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	// mock掉client，不访问真实集群
	client := mocktest.NewMockClient(ctrl)
	stubs := gostub.StubFunc(&es.NewClient, client, nil)
	defer stubs.Reset()

	err := es.ReloadClusters(map[string]*es.Config{
		"prod": {Host: "http://prod:9200"},
		"dev":  {Host: "http://dev:9200"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"dev", "prod"}, es.Clusters())

	c, err := es.GetClient("prod")
	require.NoError(t, err)
	assert.Equal(t, client, c)

	_, err = es.GetClient("staging")
	assert.ErrorIs(t, err, es.ErrClusterNotFound)

	// 失败时保留原有集群
	stubs.StubFunc(&es.NewClient, nil, es.ErrEmptyHost)
	err = es.ReloadClusters(map[string]*es.Config{"broken": {}})
	assert.Error(t, err)
	assert.Equal(t, []string{"dev", "prod"}, es.Clusters())
}
