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
	"fmt"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/eventbus"
)

// SystemConfigDir 未指定 --config 时最后查找的目录
const SystemConfigDir = "/etc/eska"

// setConfigFile --config 优先，否则依次在当前目录、$HOME、/etc/eska 下查找 eska.yaml
func setConfigFile() {
	if CustomConfigFilePath != "" {
		viper.SetConfigFile(CustomConfigFilePath)
		return
	}

	viper.SetConfigName(AppName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if home, err := homedir.Dir(); err == nil {
		viper.AddConfigPath(home)
	} else {
		fmt.Printf("get home dir failed,error:%s\n", err)
	}
	viper.AddConfigPath(SystemConfigDir)
}

// InitConfig 读取配置文件，前后分别发布 PreParse 和 PostParse 事件
// 没有找到配置文件时只使用默认值和环境变量
func InitConfig() {
	setConfigFile()

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	eventbus.EventBus.Publish(eventbus.EventSignalConfigPreParse)

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	switch {
	case err == nil:
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	case errors.As(err, &notFound):
		fmt.Println("config file not found, using defaults and env")
	default:
		fmt.Printf("loading config file:%s failed,error:%s\n", viper.ConfigFileUsed(), err)
	}

	eventbus.EventBus.Publish(eventbus.EventSignalConfigPostParse)
}
