// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package pool

import (
	"context"
	"runtime"
	"sync"
	"time"

	ants "github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/log"
)

const (
	SizeConfigPath = "pool.size"
)

var ErrEmptyPool = errors.New("pool is empty")

var (
	poolLock    sync.RWMutex
	defaultPool *ants.MultiPool
)

// newPool 按 CPU 数拆分子池，size 为每个子池的容量，小于等于 0 时不限制
func newPool(size int) (*ants.MultiPool, error) {
	return ants.NewMultiPool(
		runtime.GOMAXPROCS(0), size, ants.LeastTasks,
		ants.WithPanicHandler(func(p any) {
			log.Errorf(context.TODO(), "[pool] task panic: %v", p)
		}),
	)
}

func get() (*ants.MultiPool, error) {
	poolLock.RLock()
	defer poolLock.RUnlock()
	if defaultPool == nil {
		return nil, ErrEmptyPool
	}
	return defaultPool, nil
}

// Tune 调整每个子池的容量，已释放的池会重新创建
func Tune(size int) error {
	poolLock.Lock()
	defer poolLock.Unlock()
	if defaultPool == nil || defaultPool.IsClosed() {
		p, err := newPool(size)
		if err != nil {
			return errors.Wrap(err, "new pool")
		}
		defaultPool = p
		return nil
	}
	defaultPool.Tune(size)
	return nil
}

// Submit 提交任务，预热 schema 等后台任务都走这里
func Submit(task func()) error {
	p, err := get()
	if err != nil {
		return err
	}
	return p.Submit(task)
}

// Running 正在执行的任务数
func Running() int {
	p, err := get()
	if err != nil {
		return 0
	}
	return p.Running()
}

// Release 等待正在执行的任务结束后释放
func Release(timeout time.Duration) error {
	p, err := get()
	if err != nil {
		return err
	}
	return p.ReleaseTimeout(timeout)
}

func init() {
	defaultPool, _ = newPool(-1)
}
