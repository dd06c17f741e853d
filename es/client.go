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
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"slices"
	"time"

	elasticsearch "github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	elastic "github.com/olivere/elastic/v7"
	"github.com/pkg/errors"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/log"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/mapping"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/metadata"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/metric"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/trace"
)

type Client interface {
	Indices(ctx context.Context, pattern string) (map[string]*mapping.Index, error)
	Mapping(ctx context.Context, index string) (*mapping.IndexMapping, error)
	Search(ctx context.Context, index string, body []byte) ([]byte, error)
	Info(ctx context.Context) (*Info, error)
	Health(ctx context.Context) (*elastic.ClusterHealthResponse, error)
}

// Info 集群根路径返回的节点信息
type Info struct {
	Name          string `json:"name"`
	ClusterName   string `json:"cluster_name"`
	Version       string `json:"version"`
	LuceneVersion string `json:"lucene_version"`
	Tagline       string `json:"tagline"`
}

// StatusError 集群返回非 2xx
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("elasticsearch response status %d: %s", e.StatusCode, e.Body)
}

// IsNotFound 错误是否为集群返回的 404
func IsNotFound(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode == http.StatusNotFound
	}
	return elastic.IsNotFound(err)
}

// ESClient es 查询 client，索引和查询走 go-elasticsearch，集群信息走 olivere
type ESClient struct {
	name string
	host string
	// 控制并发数
	tokenChan chan int
	timeout   time.Duration

	client  *elasticsearch.Client
	elastic *elastic.Client
}

var NewClient = func(cfg *Config) (Client, error) {
	if err := cfg.check(); err != nil {
		return nil, err
	}
	header, err := cfg.Auth.header()
	if err != nil {
		return nil, err
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.Host},
		Username:  cfg.Auth.Username,
		Password:  cfg.Auth.Password,
		Header:    header,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "new elasticsearch client %s", cfg.Name)
	}

	opts := []elastic.ClientOptionFunc{
		elastic.SetURL(cfg.Host),
		elastic.SetSniff(false),
		elastic.SetHealthcheck(false),
		elastic.SetHttpClient(&http.Client{Timeout: cfg.Timeout}),
		elastic.SetHeaders(header),
	}
	if cfg.Auth.Type == AuthBasic {
		opts = append(opts, elastic.SetBasicAuth(cfg.Auth.Username, cfg.Auth.Password))
	}
	cli, err := elastic.NewClient(opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "new elastic client %s", cfg.Name)
	}

	return &ESClient{
		name:      cfg.Name,
		host:      cfg.Host,
		tokenChan: make(chan int, cfg.MaxConcurrency),
		timeout:   cfg.Timeout,
		client:    client,
		elastic:   cli,
	}, nil
}

// acquire 获取并发令牌，ctx 取消时放弃
func (c *ESClient) acquire(ctx context.Context) (func(), error) {
	select {
	case c.tokenChan <- 1:
		return func() { <-c.tokenChan }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// do 执行 esapi 请求并读取 body，非 2xx 转为 StatusError
func (c *ESClient) do(ctx context.Context, action string, fn func(ctx context.Context) (*esapi.Response, error)) (data []byte, err error) {
	ctx, span := trace.NewSpan(ctx, "es-"+action)
	defer span.End(&err)
	span.Set("cluster", c.name)

	release, err := c.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	metric.ESRequestInc(ctx, c.name, action, metric.StatusReceived)
	defer func() {
		status := metric.StatusSuccess
		if err != nil {
			status = metric.StatusFailed
		}
		metric.ESRequestInc(ctx, c.name, action, status)
	}()

	res, err := fn(ctx)
	if err != nil {
		return nil, metadata.NewMessage(
			metadata.MsgQueryES,
			"%s %s 请求失败", c.name, action,
		).Error(ctx, err)
	}
	defer res.Body.Close()

	data, err = io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s response", action)
	}
	span.Set("status_code", res.StatusCode)

	if res.IsError() {
		return nil, &StatusError{StatusCode: res.StatusCode, Body: string(data)}
	}
	log.Debugf(ctx, "[%s] %s get result size:%d", c.name, action, len(data))
	return data, nil
}

// Indices 获取匹配 pattern 的索引以及别名、mapping
func (c *ESClient) Indices(ctx context.Context, pattern string) (map[string]*mapping.Index, error) {
	es := c.client
	data, err := c.do(ctx, metric.ActionIndices, func(ctx context.Context) (*esapi.Response, error) {
		return es.Indices.Get([]string{pattern}, es.Indices.Get.WithContext(ctx))
	})
	if err != nil {
		return nil, err
	}
	return mapping.DecodeIndices(data)
}

// Mapping 获取 index 的 mapping，别名对应多个索引时合并
func (c *ESClient) Mapping(ctx context.Context, index string) (*mapping.IndexMapping, error) {
	es := c.client
	data, err := c.do(ctx, metric.ActionMapping, func(ctx context.Context) (*esapi.Response, error) {
		return es.Indices.GetMapping(es.Indices.GetMapping.WithIndex(index), es.Indices.GetMapping.WithContext(ctx))
	})
	if err != nil {
		return nil, err
	}

	indices, err := mapping.DecodeIndices(data)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(indices))
	for name := range indices {
		names = append(names, name)
	}
	mappings := make([]*mapping.IndexMapping, 0, len(names))
	slices.Sort(names)
	for _, name := range names {
		mappings = append(mappings, indices[name].Mappings)
	}
	return mapping.Merge(mappings...), nil
}

// Search es 接口 _search 代理
func (c *ESClient) Search(ctx context.Context, index string, body []byte) ([]byte, error) {
	es := c.client
	return c.do(ctx, metric.ActionSearch, func(ctx context.Context) (*esapi.Response, error) {
		return es.Search(
			es.Search.WithContext(ctx),
			es.Search.WithIndex(index),
			es.Search.WithBody(bytes.NewReader(body)),
		)
	})
}

// Info 集群根路径信息
func (c *ESClient) Info(ctx context.Context) (info *Info, err error) {
	ctx, span := trace.NewSpan(ctx, "es-info")
	defer span.End(&err)

	release, err := c.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	res, code, err := c.elastic.Ping(c.host).Do(ctx)
	c.count(ctx, metric.ActionInfo, err)
	if err != nil {
		return nil, err
	}
	if code >= http.StatusMultipleChoices {
		return nil, &StatusError{StatusCode: code}
	}

	return &Info{
		Name:          res.Name,
		ClusterName:   res.ClusterName,
		Version:       res.Version.Number,
		LuceneVersion: res.Version.LuceneVersion,
		Tagline:       res.TagLine,
	}, nil
}

// Health 集群健康状态
func (c *ESClient) Health(ctx context.Context) (res *elastic.ClusterHealthResponse, err error) {
	ctx, span := trace.NewSpan(ctx, "es-health")
	defer span.End(&err)

	release, err := c.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	res, err = c.elastic.ClusterHealth().Do(ctx)
	c.count(ctx, metric.ActionHealth, err)
	return res, err
}

func (c *ESClient) count(ctx context.Context, action string, err error) {
	status := metric.StatusSuccess
	if err != nil {
		status = metric.StatusFailed
	}
	metric.ESRequestInc(ctx, c.name, action, status)
}
