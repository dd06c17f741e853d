// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package json

import (
	"io"

	"github.com/bytedance/sonic"
)

// 与标准库行为保持一致（map key 排序、HTML 转义），保证输出稳定
var api = sonic.ConfigStd

type (
	Decoder = sonic.Decoder
	Encoder = sonic.Encoder
)

func Marshal(v any) ([]byte, error) {
	return api.Marshal(v)
}

func MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return api.MarshalIndent(v, prefix, indent)
}

func Unmarshal(data []byte, v any) error {
	return api.Unmarshal(data, v)
}

func Valid(data []byte) bool {
	return api.Valid(data)
}

func NewDecoder(r io.Reader) Decoder {
	return api.NewDecoder(r)
}

func NewEncoder(w io.Writer) Encoder {
	return api.NewEncoder(w)
}
