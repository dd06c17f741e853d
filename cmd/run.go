// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/gops/agent"
	"github.com/spf13/cobra"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/config"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/define"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/log"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/pool"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/service/es"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/service/http"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/service/trace"
)

const releaseTimeout = 5 * time.Second

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "start eska http service",
	Long:  `start eska http service, SIGUSR1 reloads config, SIGTERM/SIGINT stops`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			serviceList     []define.Service
			ctx, cancelFunc = context.WithCancel(context.Background())
			sc              = make(chan os.Signal, 1)
		)
		config.InitConfig()

		if err := agent.Listen(agent.Options{}); err != nil {
			log.Warnf(ctx, "start gops agent failed: %s", err)
		}

		// trace 需要最先启动，http 依赖集群配置所以放在 es 之后
		serviceList = []define.Service{
			&trace.Service{},
			&es.Service{},
			&http.Service{},
		}

		signal.Notify(sc, syscall.SIGUSR1, syscall.SIGTERM, syscall.SIGINT)
	LOOP:
		for {
			for _, service := range serviceList {
				service.Reload(ctx)
			}
			log.Infof(ctx, "reload done")
			switch <-sc {
			case syscall.SIGUSR1:
				config.InitConfig()
				log.Debugf(ctx, "SIGUSR1 signal got, will reload server")
			case syscall.SIGTERM, syscall.SIGINT:
				log.Debugf(ctx, "shutdown signal got, will shutdown server")
				cancelFunc()
				break LOOP
			}
		}

		// 逆序关闭，先停止接收请求
		for i := len(serviceList) - 1; i >= 0; i-- {
			service := serviceList[i]
			log.Warnf(ctx, "close service:%s", service.Type())
			service.Close()
			service.Wait()
			log.Warnf(ctx, "waiting for service:%s done", service.Type())
		}
		if err := pool.Release(releaseTimeout); err != nil {
			log.Warnf(ctx, "release pool failed: %s", err)
		}
		agent.Close()

		log.Debugf(ctx, "all service exit, server exit now.")
		os.Exit(0)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
