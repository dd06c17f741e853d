// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package schema

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/internal/json"
)

// ValidationError 单条校验失败信息
type ValidationError struct {
	Field       string `json:"field"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// InvalidError 查询语句不符合 schema
type InvalidError struct {
	Errors []ValidationError
}

func (e *InvalidError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, ve := range e.Errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", ve.Field, ve.Description))
	}
	return fmt.Sprintf("query is invalid: %s", strings.Join(msgs, "; "))
}

// Validator 编译后的 schema
type Validator struct {
	schema *gojsonschema.Schema
}

// Compile 按 draft-07 编译 schema
func Compile(s *Schema) (*Validator, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, errors.Wrap(err, "marshal schema")
	}

	loader := gojsonschema.NewSchemaLoader()
	loader.Draft = gojsonschema.Draft7
	loader.AutoDetect = false

	compiled, err := loader.Compile(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, errors.Wrap(err, "compile schema")
	}
	return &Validator{schema: compiled}, nil
}

// Validate body 不是合法 JSON 时返回普通错误，不符合 schema 时返回 *InvalidError
func (v *Validator) Validate(body []byte) error {
	if !json.Valid(body) {
		return errors.New("query body is not valid json")
	}

	res, err := v.schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return errors.Wrap(err, "validate query")
	}
	if res.Valid() {
		return nil
	}

	invalid := &InvalidError{Errors: make([]ValidationError, 0, len(res.Errors()))}
	for _, re := range res.Errors() {
		invalid.Errors = append(invalid.Errors, ValidationError{
			Field:       re.Field(),
			Type:        re.Type(),
			Description: re.Description(),
		})
	}
	return invalid
}
