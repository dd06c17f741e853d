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
	"sync"
	"time"

	ristretto "github.com/dgraph-io/ristretto/v2"
	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/errno"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/es"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/internal/json"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/log"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/mapping"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/metric"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/schema"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/trace"
)

var ErrIndexNotFound = errors.New("index not found")

var (
	defaultCatalog *Catalog
	defaultLock    sync.RWMutex
)

// Catalog 按 cluster/index 缓存 mapping、schema 文档和校验器
type Catalog struct {
	mappings   *cache.Cache
	validators *cache.Cache
	schemas    *ristretto.Cache[string, []byte]
	schemaTTL  time.Duration

	group singleflight.Group
}

func New(opt *Options) (*Catalog, error) {
	schemas, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		MaxCost:     opt.SchemaMaxCost,
		NumCounters: opt.SchemaNumCounters,
		BufferItems: opt.SchemaBufferItems,
	})
	if err != nil {
		return nil, errors.Wrap(err, "new schema cache")
	}

	return &Catalog{
		mappings:   cache.New(opt.MappingTTL, opt.MappingCleanup),
		validators: cache.New(opt.MappingTTL, opt.MappingCleanup),
		schemas:    schemas,
		schemaTTL:  opt.SchemaTTL,
	}, nil
}

// Default 获取默认 catalog，配置加载前使用默认参数
func Default() *Catalog {
	defaultLock.RLock()
	c := defaultCatalog
	defaultLock.RUnlock()
	if c != nil {
		return c
	}

	defaultLock.Lock()
	defer defaultLock.Unlock()
	if defaultCatalog == nil {
		defaultCatalog = mustNew(DefaultOptions())
	}
	return defaultCatalog
}

// mustNew 创建失败直接 panic，只用于内置的默认参数
func mustNew(opt *Options) *Catalog {
	c, err := New(opt)
	if err != nil {
		codedErr := errno.ErrBusinessLogicError().
			WithComponent("catalog").
			WithOperation("创建默认缓存").
			WithError(err).
			WithSolution("检查 catalog 默认参数")
		log.ErrorWithCodef(context.TODO(), codedErr)
		panic(errors.Wrap(err, "new default catalog"))
	}
	return c
}

// SetDefault 替换默认 catalog 并关闭旧的
func SetDefault(c *Catalog) {
	defaultLock.Lock()
	old := defaultCatalog
	defaultCatalog = c
	defaultLock.Unlock()

	if old != nil {
		old.Close()
	}
}

func cacheKey(cluster, index string) string {
	return cluster + "/" + index
}

// GetMapping 获取索引 mapping，并发的未命中请求合并为一次集群请求
func (c *Catalog) GetMapping(ctx context.Context, cluster, index string) (m *mapping.IndexMapping, err error) {
	ctx, span := trace.NewSpan(ctx, "catalog-get-mapping")
	defer span.End(&err)
	span.Set("cluster", cluster)
	span.Set("index", index)

	key := cacheKey(cluster, index)
	if v, ok := c.mappings.Get(key); ok {
		if m, ok = v.(*mapping.IndexMapping); ok {
			metric.CacheCountInc(ctx, metric.CacheMapping, metric.CacheHit)
			return m, nil
		}
		log.Warnf(ctx, "[catalog] mapping cache %s type assertion failed", key)
	}
	metric.CacheCountInc(ctx, metric.CacheMapping, metric.CacheMiss)

	// 共享请求不跟随调用方取消，超时由 client 控制
	fetchCtx := context.WithoutCancel(ctx)
	v, err, shared := c.group.Do(key, func() (any, error) {
		client, err := es.GetClient(cluster)
		if err != nil {
			return nil, err
		}
		m, err := client.Mapping(fetchCtx, index)
		if err != nil {
			if es.IsNotFound(err) {
				return nil, errors.Wrap(ErrIndexNotFound, index)
			}
			codedErr := errno.ErrStorageQueryFailed().
				WithComponent("catalog").
				WithOperation("获取索引映射").
				WithContext("cluster", cluster).
				WithContext("index", index).
				WithError(err).
				WithSolution("检查集群连接以及索引是否存在")
			log.ErrorWithCodef(ctx, codedErr)
			return nil, err
		}
		c.mappings.SetDefault(key, m)
		return m, nil
	})
	span.Set("shared", shared)
	if err != nil {
		return nil, err
	}
	return v.(*mapping.IndexMapping), nil
}

// GetFields 索引的扁平化字段
func (c *Catalog) GetFields(ctx context.Context, cluster, index string) (mapping.Fields, error) {
	m, err := c.GetMapping(ctx, cluster, index)
	if err != nil {
		return nil, err
	}
	return mapping.FlattenFields(m), nil
}

// GetSchema 索引的编辑器 schema 文档，返回序列化后的内容
func (c *Catalog) GetSchema(ctx context.Context, cluster, index string) (data []byte, err error) {
	ctx, span := trace.NewSpan(ctx, "catalog-get-schema")
	defer span.End(&err)

	key := cacheKey(cluster, index)
	if data, ok := c.schemas.Get(key); ok {
		metric.CacheCountInc(ctx, metric.CacheSchema, metric.CacheHit)
		return data, nil
	}
	metric.CacheCountInc(ctx, metric.CacheSchema, metric.CacheMiss)

	m, err := c.GetMapping(ctx, cluster, index)
	if err != nil {
		return nil, err
	}
	return c.buildSchema(ctx, cluster, index, m)
}

func (c *Catalog) buildSchema(ctx context.Context, cluster, index string, m *mapping.IndexMapping) ([]byte, error) {
	start := time.Now()
	data, err := json.Marshal(schema.NewDocument(m))
	if err != nil {
		return nil, errors.Wrapf(err, "marshal schema of %s", index)
	}
	metric.SchemaBuildSecond(ctx, time.Since(start), cluster)

	c.schemas.SetWithTTL(cacheKey(cluster, index), data, int64(len(data)), c.schemaTTL)
	return data, nil
}

// GetValidator 索引 schema 编译后的校验器
func (c *Catalog) GetValidator(ctx context.Context, cluster, index string) (*schema.Validator, error) {
	key := cacheKey(cluster, index)
	if v, ok := c.validators.Get(key); ok {
		if validator, ok := v.(*schema.Validator); ok {
			return validator, nil
		}
	}

	m, err := c.GetMapping(ctx, cluster, index)
	if err != nil {
		return nil, err
	}
	validator, err := schema.Compile(schema.BuildQuerySchema(m))
	if err != nil {
		return nil, err
	}
	c.validators.SetDefault(key, validator)
	return validator, nil
}

// Invalidate 删除索引的所有缓存
func (c *Catalog) Invalidate(cluster, index string) {
	key := cacheKey(cluster, index)
	c.mappings.Delete(key)
	c.validators.Delete(key)
	c.schemas.Del(key)
}

// Flush 清空所有缓存
func (c *Catalog) Flush() {
	c.mappings.Flush()
	c.validators.Flush()
	c.schemas.Clear()
}

// Wait 等待 schema 缓存写入生效
func (c *Catalog) Wait() {
	c.schemas.Wait()
}

func (c *Catalog) Close() {
	c.Flush()
	c.schemas.Close()
}
