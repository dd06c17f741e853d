// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package set

import (
	"cmp"
	"slices"
	"sync"
)

type Set[T comparable] struct {
	m    map[T]struct{}
	lock sync.RWMutex
}

func New[T comparable](items ...T) *Set[T] {
	s := &Set[T]{
		m: make(map[T]struct{}, len(items)),
	}
	s.Add(items...)
	return s
}

func (s *Set[T]) Add(items ...T) {
	s.lock.Lock()
	defer s.lock.Unlock()
	for _, item := range items {
		s.m[item] = struct{}{}
	}
}

func (s *Set[T]) Existed(item T) bool {
	if s == nil {
		return false
	}
	s.lock.RLock()
	defer s.lock.RUnlock()
	_, ok := s.m[item]
	return ok
}

func (s *Set[T]) Size() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return len(s.m)
}

func (s *Set[T]) ToArray() []T {
	s.lock.RLock()
	defer s.lock.RUnlock()
	array := make([]T, 0, len(s.m))
	for item := range s.m {
		array = append(array, item)
	}
	return array
}

// Union 返回新集合，不修改原集合
func (s *Set[T]) Union(others ...*Set[T]) *Set[T] {
	nt := New[T](s.ToArray()...)
	for _, o := range others {
		if o == nil {
			continue
		}
		nt.Add(o.ToArray()...)
	}
	return nt
}

func (s *Set[T]) Intersection(t *Set[T]) *Set[T] {
	nt := New[T]()
	if t == nil {
		return nt
	}
	for _, i := range s.ToArray() {
		if t.Existed(i) {
			nt.Add(i)
		}
	}
	return nt
}

// Sorted 有序输出，用于生成稳定的结果
func Sorted[T cmp.Ordered](s *Set[T]) []T {
	array := s.ToArray()
	slices.Sort(array)
	return array
}
