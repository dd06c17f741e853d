// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package errno

// 错误定义结构
type ErrorDefinition struct {
	Code     string // 错误代码，如 "MP001"
	Message  string // 错误消息
	Category string // 错误分类
}

var errorDefinitions = map[string]ErrorDefinition{
	// 映射解析类错误 (Mapping - MP)
	"ErrMappingDecodeFailed": {"MP001", "索引映射解析失败", "映射解析"},
	"ErrMappingNotFound":     {"MP002", "索引映射不存在", "映射解析"},

	// 查询校验类错误 (Query Validate - QV)
	"ErrQueryValidateFailed": {"QV001", "查询语句校验失败", "查询校验"},
	"ErrSchemaCompileFailed": {"QV002", "查询结构编译失败", "查询校验"},

	// 存储连接类错误 (Storage Connection - SC)
	"ErrStorageConnFailed":   {"SC001", "存储连接失败", "存储连接"},
	"ErrStorageNotFound":     {"SC002", "存储集群不存在", "存储连接"},
	"ErrStorageQueryFailed":  {"SC003", "存储查询失败", "存储连接"},
	"ErrStorageStatusFailed": {"SC004", "存储返回异常状态", "存储连接"},

	// 数据处理类错误 (Data Processing - DP)
	"ErrDataFormatInvalid":     {"DP001", "数据格式错误", "数据处理"},
	"ErrDataDeserializeFailed": {"DP002", "数据反序列化失败", "数据处理"},

	// 配置管理类错误 (Configuration - CF)
	"ErrConfigReloadFailed": {"CF001", "配置重载失败", "配置管理"},

	// 业务逻辑类错误 (Business Logic - BL)
	"ErrBusinessParamInvalid": {"BL001", "业务参数无效", "业务逻辑"},
	"ErrBusinessLogicError":   {"BL002", "业务逻辑错误", "业务逻辑"},

	// 警告类 (Warning - WN)
	"ErrWarningCacheDegraded":   {"WN001", "缓存降级处理", "警告"},
	"ErrWarningServiceDegraded": {"WN002", "服务降级", "警告"},

	// 信息类 (Info - IF)
	"ErrInfoServiceStart":    {"IF001", "服务启动", "信息"},
	"ErrInfoServiceShutdown": {"IF002", "服务关闭", "信息"},
	"ErrInfoConfigReload":    {"IF003", "配置重载", "信息"},
}

func newError(name string) *ErrCode {
	def, exists := errorDefinitions[name]
	if !exists {
		return NewErrCode("UNKNOWN", "未知错误", "未知")
	}

	return NewErrCode(def.Code, def.Message, def.Category)
}

func ErrMappingDecodeFailed() *ErrCode    { return newError("ErrMappingDecodeFailed") }
func ErrMappingNotFound() *ErrCode        { return newError("ErrMappingNotFound") }
func ErrQueryValidateFailed() *ErrCode    { return newError("ErrQueryValidateFailed") }
func ErrSchemaCompileFailed() *ErrCode    { return newError("ErrSchemaCompileFailed") }
func ErrStorageConnFailed() *ErrCode      { return newError("ErrStorageConnFailed") }
func ErrStorageNotFound() *ErrCode        { return newError("ErrStorageNotFound") }
func ErrStorageQueryFailed() *ErrCode     { return newError("ErrStorageQueryFailed") }
func ErrStorageStatusFailed() *ErrCode    { return newError("ErrStorageStatusFailed") }
func ErrDataFormatInvalid() *ErrCode      { return newError("ErrDataFormatInvalid") }
func ErrDataDeserializeFailed() *ErrCode  { return newError("ErrDataDeserializeFailed") }
func ErrConfigReloadFailed() *ErrCode     { return newError("ErrConfigReloadFailed") }
func ErrBusinessParamInvalid() *ErrCode   { return newError("ErrBusinessParamInvalid") }
func ErrBusinessLogicError() *ErrCode     { return newError("ErrBusinessLogicError") }
func ErrWarningCacheDegraded() *ErrCode   { return newError("ErrWarningCacheDegraded") }
func ErrWarningServiceDegraded() *ErrCode { return newError("ErrWarningServiceDegraded") }
func ErrInfoServiceStart() *ErrCode       { return newError("ErrInfoServiceStart") }
func ErrInfoServiceShutdown() *ErrCode    { return newError("ErrInfoServiceShutdown") }
func ErrInfoConfigReload() *ErrCode       { return newError("ErrInfoConfigReload") }
