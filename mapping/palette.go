// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package mapping

// 字段展示分组，前端按分组着色
const (
	GroupText    = "text"
	GroupKeyword = "keyword"
	GroupNumeric = "numeric"
	GroupDate    = "date"
	GroupBoolean = "boolean"
	GroupIP      = "ip"
	GroupGeo     = "geo"
	GroupVector  = "vector"
	GroupRange   = "range"
	GroupObject  = "object"
	GroupBinary  = "binary"
	GroupOther   = "other"
)

var typeGroups = map[string]string{
	"text":               GroupText,
	"match_only_text":    GroupText,
	"search_as_you_type": GroupText,
	"completion":         GroupText,
	"annotated_text":     GroupText,

	"keyword":          GroupKeyword,
	"constant_keyword": GroupKeyword,
	"wildcard":         GroupKeyword,

	"long":          GroupNumeric,
	"integer":       GroupNumeric,
	"short":         GroupNumeric,
	"byte":          GroupNumeric,
	"double":        GroupNumeric,
	"float":         GroupNumeric,
	"half_float":    GroupNumeric,
	"scaled_float":  GroupNumeric,
	"unsigned_long": GroupNumeric,
	"token_count":   GroupNumeric,

	"date":       GroupDate,
	"date_nanos": GroupDate,

	"boolean": GroupBoolean,

	"ip": GroupIP,

	"geo_point": GroupGeo,
	"geo_shape": GroupGeo,
	"point":     GroupGeo,
	"shape":     GroupGeo,

	"dense_vector":  GroupVector,
	"sparse_vector": GroupVector,
	"rank_features": GroupVector,
	"rank_feature":  GroupVector,

	"integer_range": GroupRange,
	"float_range":   GroupRange,
	"long_range":    GroupRange,
	"double_range":  GroupRange,
	"date_range":    GroupRange,
	"ip_range":      GroupRange,

	"object":    GroupObject,
	"nested":    GroupObject,
	"flattened": GroupObject,
	"join":      GroupObject,

	"binary": GroupBinary,
}

// TypeGroup 字段类型对应的展示分组，未知类型归为 other
func TypeGroup(fieldType string) string {
	if g, ok := typeGroups[fieldType]; ok {
		return g
	}
	return GroupOther
}
