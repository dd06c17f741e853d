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
	"encoding/base64"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

const (
	AuthNone   = "noauth"
	AuthBasic  = "basic"
	AuthAPIKey = "apikey"
	AuthBearer = "bearer"

	DefaultMaxConcurrency = 200
	DefaultTimeout        = 30 * time.Second
)

var (
	ErrClusterNotFound = errors.New("cluster not found")
	ErrEmptyHost       = errors.New("cluster host is empty")
	ErrUnknownAuthType = errors.New("unknown auth type")
)

// Auth 集群认证信息
type Auth struct {
	Type     string `json:"type" mapstructure:"type"`
	Username string `json:"username" mapstructure:"username"`
	Password string `json:"password" mapstructure:"password"`
	ID       string `json:"id" mapstructure:"id"`
	APIKey   string `json:"api_key" mapstructure:"api_key"`
	Token    string `json:"token" mapstructure:"token"`
}

// Config 集群配置
type Config struct {
	Name           string        `json:"name" mapstructure:"name"`
	Host           string        `json:"host" mapstructure:"host"`
	Auth           Auth          `json:"auth" mapstructure:"auth"`
	MaxConcurrency int           `json:"max_concurrency" mapstructure:"max_concurrency"`
	Timeout        time.Duration `json:"timeout" mapstructure:"timeout"`
}

// header 生成认证请求头，noauth 和 basic 返回空
func (a Auth) header() (http.Header, error) {
	h := make(http.Header)
	switch a.Type {
	case "", AuthNone, AuthBasic:
	case AuthAPIKey:
		key := a.APIKey
		if a.ID != "" {
			key = base64.StdEncoding.EncodeToString([]byte(a.ID + ":" + a.APIKey))
		}
		h.Set("Authorization", "ApiKey "+key)
	case AuthBearer:
		h.Set("Authorization", "Bearer "+a.Token)
	default:
		return nil, errors.Wrap(ErrUnknownAuthType, a.Type)
	}
	return h, nil
}

// check 校验并补全默认值
func (c *Config) check() error {
	if c.Host == "" {
		return errors.Wrap(ErrEmptyHost, c.Name)
	}
	if c.MaxConcurrency <= 0 {
		c.MaxConcurrency = DefaultMaxConcurrency
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return nil
}
