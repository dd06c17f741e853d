// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package es

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/errno"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/es"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/eventbus"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/log"
)

func setDefaultConfig() {
	viper.SetDefault(ClustersConfigPath, []any{})
	viper.SetDefault(WarmEnableConfigPath, false)
	viper.SetDefault(WarmPatternConfigPath, "*")
	viper.SetDefault(WarmPeriodConfigPath, "10m")
}

func LoadConfig() {
	var clusters []*es.Config
	if err := viper.UnmarshalKey(ClustersConfigPath, &clusters); err != nil {
		codedErr := errno.ErrConfigReloadFailed().
			WithComponent("ES集群配置").
			WithOperation("解析集群列表").
			WithContext("path", ClustersConfigPath).
			WithError(err).
			WithSolution("检查 elasticsearch.clusters 配置格式")
		log.ErrorWithCodef(context.TODO(), codedErr)
	} else {
		Clusters = clusters
	}

	WarmEnable = viper.GetBool(WarmEnableConfigPath)
	WarmPattern = viper.GetString(WarmPatternConfigPath)
	WarmPeriod = viper.GetDuration(WarmPeriodConfigPath)

	log.Debugf(context.TODO(), "reload es config clusters->[%d] warm->[%t] pattern->[%s] period->[%s]",
		len(Clusters), WarmEnable, WarmPattern, WarmPeriod)
}

func init() {
	if err := eventbus.EventBus.Subscribe(eventbus.EventSignalConfigPreParse, setDefaultConfig); err != nil {
		fmt.Printf(
			"failed to subscribe event->[%s] for es module for default config, maybe es module won't working.",
			eventbus.EventSignalConfigPreParse,
		)
	}

	if err := eventbus.EventBus.Subscribe(eventbus.EventSignalConfigPostParse, LoadConfig); err != nil {
		fmt.Printf(
			"failed to subscribe event->[%s] for es module for new config, maybe es module won't working.",
			eventbus.EventSignalConfigPostParse,
		)
	}
}
