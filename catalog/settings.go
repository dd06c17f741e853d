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
	"time"
)

const (
	MappingCacheTTLConfigPath     = "catalog.mapping_cache.ttl"
	MappingCacheCleanupConfigPath = "catalog.mapping_cache.cleanup"

	SchemaCacheTTLConfigPath         = "catalog.schema_cache.ttl"
	SchemaCacheMaxCostConfigPath     = "catalog.schema_cache.max_cost"
	SchemaCacheNumCountersConfigPath = "catalog.schema_cache.num_counters"
	SchemaCacheBufferItemsConfigPath = "catalog.schema_cache.buffer_items"
)

// Options 缓存参数
type Options struct {
	MappingTTL     time.Duration
	MappingCleanup time.Duration

	SchemaTTL         time.Duration
	SchemaMaxCost     int64
	SchemaNumCounters int64
	SchemaBufferItems int64
}

// DefaultOptions 与配置默认值一致
func DefaultOptions() *Options {
	return &Options{
		MappingTTL:        5 * time.Minute,
		MappingCleanup:    10 * time.Minute,
		SchemaTTL:         5 * time.Minute,
		SchemaMaxCost:     256 << 20,
		SchemaNumCounters: 100000,
		SchemaBufferItems: 64,
	}
}
