// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package metric

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/log"
)

const (
	StatusReceived = "received"
	StatusSuccess  = "success"
	StatusFailed   = "failed"

	CacheMapping = "mapping"
	CacheSchema  = "schema"

	CacheHit  = "hit"
	CacheMiss = "miss"

	ActionIndices = "indices"
	ActionMapping = "mapping"
	ActionSearch  = "search"
	ActionInfo    = "info"
	ActionHealth  = "health"
)

var (
	apiRequestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "eska",
			Name:      "request_count_total",
			Help:      "request handled count",
		},
		[]string{"url", "status"},
	)

	apiRequestHandleSecondHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "eska",
			Name:      "request_handle_seconds",
			Help:      "request handle seconds",
			Buckets:   []float64{0, 0.05, 0.1, 0.5, 1, 3, 5, 10, 30},
		},
		[]string{"url"},
	)

	cacheCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "eska",
			Name:      "cache_count_total",
			Help:      "catalog cache lookups",
		},
		[]string{"cache", "result"},
	)

	schemaBuildSecondHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "eska",
			Name:      "schema_build_seconds",
			Help:      "query schema build seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
		[]string{"cluster"},
	)

	esRequestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "eska",
			Name:      "es_request_count_total",
			Help:      "elasticsearch request count",
		},
		[]string{"cluster", "action", "status"},
	)
)

// APIRequestInc http 访问指标
func APIRequestInc(ctx context.Context, params ...string) {
	metric, err := apiRequestCount.GetMetricWithLabelValues(params...)
	counterInc(ctx, metric, err, params...)
}

// APIRequestSecond
func APIRequestSecond(ctx context.Context, duration time.Duration, params ...string) {
	metric, err := apiRequestHandleSecondHistogram.GetMetricWithLabelValues(params...)
	observe(ctx, metric, err, duration, params...)
}

// CacheCountInc 缓存命中情况
func CacheCountInc(ctx context.Context, params ...string) {
	metric, err := cacheCount.GetMetricWithLabelValues(params...)
	counterInc(ctx, metric, err, params...)
}

// SchemaBuildSecond
func SchemaBuildSecond(ctx context.Context, duration time.Duration, params ...string) {
	metric, err := schemaBuildSecondHistogram.GetMetricWithLabelValues(params...)
	observe(ctx, metric, err, duration, params...)
}

// ESRequestInc
func ESRequestInc(ctx context.Context, params ...string) {
	metric, err := esRequestCount.GetMetricWithLabelValues(params...)
	counterInc(ctx, metric, err, params...)
}

// counterInc
func counterInc(
	ctx context.Context, metric prometheus.Counter, err error, params ...string,
) {
	if err != nil {
		log.Warnf(ctx, "metric counter:%v failed,error:%s", params, err)
		return
	}

	sp := trace.SpanFromContext(ctx).SpanContext()
	if sp.IsSampled() {
		exemplarAdder, ok := metric.(prometheus.ExemplarAdder)
		if ok {
			exemplarAdder.AddWithExemplar(1, prometheus.Labels{
				"traceID": sp.TraceID().String(),
				"spanID":  sp.SpanID().String(),
			})
		} else {
			log.Errorf(ctx, "metric type is wrong: %T, %v", metric, metric)
		}
	} else {
		metric.Inc()
	}
}

func observe(
	ctx context.Context, metric prometheus.Observer, err error, duration time.Duration, params ...string,
) {
	if err != nil {
		log.Warnf(ctx, "metric histogram:%v failed,error:%s", params, err)
		return
	}

	sp := trace.SpanFromContext(ctx).SpanContext()
	if sp.IsSampled() {
		// exemplarObserve 只支持 histograms 类型
		exemplarObserve, ok := metric.(prometheus.ExemplarObserver)
		if ok {
			exemplarObserve.ObserveWithExemplar(duration.Seconds(), prometheus.Labels{
				"traceID": sp.TraceID().String(),
				"spanID":  sp.SpanID().String(),
			})
		} else {
			log.Errorf(ctx, "metric type is wrong: %T, %v", metric, metric)
		}
	} else {
		metric.Observe(duration.Seconds())
	}
}

// init
func init() {
	prometheus.MustRegister(
		apiRequestCount, apiRequestHandleSecondHistogram, cacheCount, schemaBuildSecondHistogram, esRequestCount,
	)
}
