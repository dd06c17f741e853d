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
	"slices"
	"sync"

	"github.com/pkg/errors"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/log"
)

var (
	clusterLock sync.RWMutex
	clusterMap  = make(map[string]Client)
)

// ReloadClusters 按配置重建所有集群的 client，任一集群失败时保持原有 client 不变
func ReloadClusters(configs map[string]*Config) error {
	newClusterMap := make(map[string]Client, len(configs))
	for name, cfg := range configs {
		if cfg.Name == "" {
			cfg.Name = name
		}
		client, err := NewClient(cfg)
		if err != nil {
			return errors.WithMessagef(err, "reload cluster %s", name)
		}
		newClusterMap[name] = client
	}

	clusterLock.Lock()
	defer clusterLock.Unlock()
	clusterMap = newClusterMap
	log.Debugf(context.TODO(), "reload clusters:%v", clusterNames())
	return nil
}

// GetClient
func GetClient(name string) (Client, error) {
	clusterLock.RLock()
	defer clusterLock.RUnlock()
	client, ok := clusterMap[name]
	if !ok {
		return nil, errors.Wrap(ErrClusterNotFound, name)
	}
	return client, nil
}

// Clusters 已配置的集群名称
func Clusters() []string {
	clusterLock.RLock()
	defer clusterLock.RUnlock()
	return clusterNames()
}

func clusterNames() []string {
	names := make([]string, 0, len(clusterMap))
	for name := range clusterMap {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
