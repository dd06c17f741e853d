// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package catalog

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/errno"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/eventbus"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/log"
)

func setDefaultConfig() {
	opt := DefaultOptions()
	viper.SetDefault(MappingCacheTTLConfigPath, opt.MappingTTL)
	viper.SetDefault(MappingCacheCleanupConfigPath, opt.MappingCleanup)
	viper.SetDefault(SchemaCacheTTLConfigPath, opt.SchemaTTL)
	viper.SetDefault(SchemaCacheMaxCostConfigPath, opt.SchemaMaxCost)
	viper.SetDefault(SchemaCacheNumCountersConfigPath, opt.SchemaNumCounters)
	viper.SetDefault(SchemaCacheBufferItemsConfigPath, opt.SchemaBufferItems)
}

// LoadConfig 按新配置重建默认 catalog，旧缓存全部丢弃
func LoadConfig() {
	opt := &Options{
		MappingTTL:        viper.GetDuration(MappingCacheTTLConfigPath),
		MappingCleanup:    viper.GetDuration(MappingCacheCleanupConfigPath),
		SchemaTTL:         viper.GetDuration(SchemaCacheTTLConfigPath),
		SchemaMaxCost:     viper.GetInt64(SchemaCacheMaxCostConfigPath),
		SchemaNumCounters: viper.GetInt64(SchemaCacheNumCountersConfigPath),
		SchemaBufferItems: viper.GetInt64(SchemaCacheBufferItemsConfigPath),
	}

	c, err := New(opt)
	if err != nil {
		codedErr := errno.ErrConfigReloadFailed().
			WithComponent("catalog").
			WithOperation("重建缓存").
			WithError(err).
			WithSolution("检查 catalog.schema_cache 配置")
		log.ErrorWithCodef(context.TODO(), codedErr)
		return
	}
	SetDefault(c)

	log.Debugf(context.TODO(), "reload success new config mapping ttl->[%s] schema ttl->[%s] schema max cost->[%d]",
		opt.MappingTTL, opt.SchemaTTL, opt.SchemaMaxCost)
}

func init() {
	if err := eventbus.EventBus.Subscribe(eventbus.EventSignalConfigPreParse, setDefaultConfig); err != nil {
		fmt.Printf(
			"failed to subscribe event->[%s] for catalog module for default config, maybe catalog module won't working.",
			eventbus.EventSignalConfigPreParse,
		)
	}

	if err := eventbus.EventBus.Subscribe(eventbus.EventSignalConfigPostParse, LoadConfig); err != nil {
		fmt.Printf(
			"failed to subscribe event->[%s] for catalog module for new config, maybe catalog module won't working.",
			eventbus.EventSignalConfigPostParse,
		)
	}
}
