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
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/catalog"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/errno"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/es"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/log"
)

// Service 维护集群 client 并定期预热 mapping 缓存
type Service struct {
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         *sync.WaitGroup
}

func (s *Service) Type() string {
	return "es"
}

func (s *Service) Start(ctx context.Context) {
	s.Reload(ctx)
}

// reloadClusters 用当前配置重建集群 client，变更后的集群缓存一并清空
func (s *Service) reloadClusters(configs []*es.Config) error {
	infos := make(map[string]*es.Config, len(configs))
	for _, cfg := range configs {
		if cfg == nil {
			continue
		}
		if cfg.Name == "" {
			return errors.Errorf("cluster %s has no name", cfg.Host)
		}
		if _, ok := infos[cfg.Name]; ok {
			return errors.Errorf("duplicate cluster name %s", cfg.Name)
		}
		c := *cfg
		infos[cfg.Name] = &c
	}

	if err := es.ReloadClusters(infos); err != nil {
		return err
	}
	catalog.Default().Flush()
	return nil
}

// warm 依次预热每个集群，单个集群失败不影响其它集群
func (s *Service) warm(ctx context.Context) {
	for _, cluster := range es.Clusters() {
		start := time.Now()
		n, err := catalog.Default().Warm(ctx, cluster, WarmPattern)
		if err != nil {
			codedErr := errno.ErrWarningCacheDegraded().
				WithComponent("ES预热").
				WithOperation("预热集群映射").
				WithContext("cluster", cluster).
				WithContext("pattern", WarmPattern).
				WithError(err).
				WithSolution("检查集群连接或调整 elasticsearch.warm.pattern")
			log.WarnWithCodef(ctx, codedErr)
			continue
		}
		log.Debugf(ctx, "warm cluster:%s pattern:%s indices:%d cost:%s", cluster, WarmPattern, n, time.Since(start))
	}
}

func (s *Service) loopWarm(ctx context.Context) {
	if !WarmEnable || WarmPeriod <= 0 {
		log.Debugf(ctx, "es warm is disabled")
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(WarmPeriod)
		defer ticker.Stop()

		s.warm(ctx)
		for {
			select {
			case <-ctx.Done():
				log.Debugf(context.TODO(), "es warm loop exit")
				return
			case <-ticker.C:
				s.warm(ctx)
			}
		}
	}()
}

func (s *Service) Reload(ctx context.Context) {
	if s.wg == nil {
		s.wg = new(sync.WaitGroup)
	}
	if s.cancelFunc != nil {
		s.cancelFunc()
	}

	log.Debugf(context.TODO(), "waiting for es service close")
	s.Wait()

	s.ctx, s.cancelFunc = context.WithCancel(ctx)
	if err := s.reloadClusters(Clusters); err != nil {
		codedErr := errno.ErrConfigReloadFailed().
			WithComponent("ES服务").
			WithOperation("重载集群配置").
			WithContext("clusters", len(Clusters)).
			WithError(err).
			WithSolution("检查 elasticsearch.clusters 的 name 与 host，原有集群保持不变")
		log.ErrorWithCodef(context.TODO(), codedErr)
	}
	s.loopWarm(s.ctx)

	codedInfo := errno.ErrInfoConfigReload().
		WithComponent("ES服务").
		WithOperation("服务重载").
		WithContext("clusters", es.Clusters())
	log.InfoWithCodef(context.TODO(), codedInfo)
}

func (s *Service) Wait() {
	if s.wg == nil {
		return
	}
	s.wg.Wait()
}

func (s *Service) Close() {
	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	log.Infof(context.TODO(), "es service context cancel func called.")
}
