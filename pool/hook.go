// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package pool

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/eventbus"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/log"
)

func setDefaultConfig() {
	viper.SetDefault(SizeConfigPath, -1)
}

// LoadConfig 每个子池的容量
func LoadConfig() {
	size := viper.GetInt(SizeConfigPath)
	if err := Tune(size); err != nil {
		log.Warnf(context.TODO(), "tune pool size->[%d] failed, error:%s", size, err)
		return
	}
	log.Debugf(context.TODO(), "reload success new config pool size->[%d]", size)
}

func init() {
	if err := eventbus.EventBus.Subscribe(eventbus.EventSignalConfigPreParse, setDefaultConfig); err != nil {
		fmt.Printf(
			"failed to subscribe event->[%s] for pool module for default config, maybe pool module won't working.",
			eventbus.EventSignalConfigPreParse,
		)
	}

	if err := eventbus.EventBus.Subscribe(eventbus.EventSignalConfigPostParse, LoadConfig); err != nil {
		fmt.Printf(
			"failed to subscribe event->[%s] for pool module for new config, maybe pool module won't working.",
			eventbus.EventSignalConfigPostParse,
		)
	}
}
