// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package pool_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/log"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/pool"
)

func TestSubmit(t *testing.T) {
	log.InitTestLogger()

	var (
		wg    sync.WaitGroup
		count atomic.Int64
	)

	for i := 0; i < 100; i++ {
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			count.Add(1)
		})
		require.NoError(t, err)
	}
	wg.Wait()
	assert.Equal(t, int64(100), count.Load())

	// panic 不影响后续任务
	wg.Add(1)
	require.NoError(t, pool.Submit(func() {
		defer wg.Done()
		panic("broken task")
	}))
	wg.Wait()

	assert.NoError(t, pool.Tune(8))
	wg.Add(1)
	require.NoError(t, pool.Submit(wg.Done))
	wg.Wait()
}

func TestRelease(t *testing.T) {
	require.NoError(t, pool.Release(time.Second))
	assert.Error(t, pool.Submit(func() {}))

	// Tune 重新创建已释放的池
	require.NoError(t, pool.Tune(-1))
	done := make(chan struct{})
	require.NoError(t, pool.Submit(func() { close(done) }))
	<-done
}
