// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package http

import (
	"time"
)

const (
	IPAddressConfigPath          = "http.address"
	PortConfigPath               = "http.port"
	WriteTimeOutConfigPath       = "http.write_timeout"
	ReadTimeOutConfigPath        = "http.read_timeout"
	SlowQueryThresholdConfigPath = "http.slow_query_threshold"
	MaxBodySizeConfigPath        = "http.max_body_size"

	EnablePrometheusConfigPath = "http.prometheus.enable"
	PrometheusPathConfigPath   = "http.prometheus.path"

	ClustersPathConfigPath      = "http.path.clusters"
	ClusterInfoPathConfigPath   = "http.path.cluster_info"
	ClusterHealthPathConfigPath = "http.path.cluster_health"
	IndicesPathConfigPath       = "http.path.indices"
	FieldsPathConfigPath        = "http.path.fields"
	SchemaPathConfigPath        = "http.path.schema"
	ValidatePathConfigPath      = "http.path.validate"
	SearchPathConfigPath        = "http.path.search"
	CachePathConfigPath         = "http.path.cache"
	MappingSchemaPathConfigPath = "http.path.mapping_schema"
	MappingFieldsPathConfigPath = "http.path.mapping_fields"
)

var (
	IPAddress string
	Port      int

	WriteTimeout       time.Duration
	ReadTimeout        time.Duration
	SlowQueryThreshold time.Duration

	// MaxBodySize 请求 body 上限，单位字节
	MaxBodySize int64
)
