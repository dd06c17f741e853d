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
	"slices"
	"sync"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/es"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/log"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/mapping"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/metadata"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/pool"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/trace"
)

// groupByAlias 索引本身以及别名对应的 mapping，别名覆盖多个索引时合并
func groupByAlias(indices map[string]*mapping.Index) map[string]*mapping.IndexMapping {
	members := make(map[string][]string)
	for name, index := range indices {
		members[name] = append(members[name], name)
		for _, alias := range index.AliasNames() {
			if _, ok := indices[alias]; ok {
				continue
			}
			members[alias] = append(members[alias], name)
		}
	}

	res := make(map[string]*mapping.IndexMapping, len(members))
	for name, names := range members {
		slices.Sort(names)
		mappings := make([]*mapping.IndexMapping, 0, len(names))
		for _, n := range names {
			mappings = append(mappings, indices[n].Mappings)
		}
		if len(mappings) == 1 {
			res[name] = mappings[0]
		} else {
			res[name] = mapping.Merge(mappings...)
		}
	}
	return res
}

// Warm 一次性拉取匹配 pattern 的索引，写入 mapping 缓存并在协程池中预生成 schema
func (c *Catalog) Warm(ctx context.Context, cluster, pattern string) (n int, err error) {
	ctx, span := trace.NewSpan(ctx, "catalog-warm")
	defer span.End(&err)
	span.Set("cluster", cluster)
	span.Set("pattern", pattern)

	client, err := es.GetClient(cluster)
	if err != nil {
		return 0, err
	}
	indices, err := client.Indices(ctx, pattern)
	if err != nil {
		return 0, metadata.NewMessage(
			metadata.MsgCatalog,
			"预热 %s 索引 %s 失败", cluster, pattern,
		).Error(ctx, err)
	}

	wg := new(sync.WaitGroup)
	for name, m := range groupByAlias(indices) {
		c.mappings.SetDefault(cacheKey(cluster, name), m)

		wg.Add(1)
		name, m := name, m
		err = pool.Submit(func() {
			defer wg.Done()
			if _, buildErr := c.buildSchema(ctx, cluster, name, m); buildErr != nil {
				log.Warnf(ctx, "[catalog] warm schema %s/%s failed: %s", cluster, name, buildErr)
			}
		})
		if err != nil {
			wg.Done()
			return n, err
		}
		n++
	}
	wg.Wait()
	c.Wait()

	log.Infof(ctx, "[catalog] warm cluster:%s pattern:%s indices:%d", cluster, pattern, n)
	return n, nil
}
