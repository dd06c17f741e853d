// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/eventbus"
)

// TestInitConfig 加载测试配置
func TestInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eska.yaml")
	err := os.WriteFile(path, []byte("http:\n  port: 10205\ncatalog:\n  mapping_cache:\n    ttl: 1m\n"), 0o644)
	require.NoError(t, err)

	var (
		preParsed  bool
		postParsed bool
	)
	preFn := func() {
		preParsed = true
		viper.SetDefault("test.default", "default-value")
	}
	postFn := func() {
		postParsed = true
	}
	require.NoError(t, eventbus.EventBus.Subscribe(eventbus.EventSignalConfigPreParse, preFn))
	require.NoError(t, eventbus.EventBus.Subscribe(eventbus.EventSignalConfigPostParse, postFn))
	defer func() {
		_ = eventbus.EventBus.Unsubscribe(eventbus.EventSignalConfigPreParse, preFn)
		_ = eventbus.EventBus.Unsubscribe(eventbus.EventSignalConfigPostParse, postFn)
	}()

	CustomConfigFilePath = path
	defer func() {
		CustomConfigFilePath = ""
	}()
	InitConfig()

	assert.True(t, preParsed)
	assert.True(t, postParsed)
	assert.Equal(t, 10205, viper.GetInt("http.port"))
	assert.Equal(t, "1m", viper.GetString("catalog.mapping_cache.ttl"))
	assert.Equal(t, "default-value", viper.GetString("test.default"))

	// 环境变量带 . 的情况
	t.Setenv("ESKA_TEST_KEY", "from-env")
	assert.Equal(t, "from-env", viper.Get("test.key"))
}
