// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/internal/json"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/mapping"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/schema"
)

var (
	schemaOutput  string
	schemaCompact bool
	schemaOnly    bool
)

// loadMapping 未指定文件时返回 nil，生成不带字段约束的 schema
func loadMapping(args []string) (*mapping.IndexMapping, error) {
	if len(args) == 0 || args[0] == "" {
		return nil, nil
	}
	m, err := mapping.Load(args[0])
	if err != nil {
		return nil, errors.WithMessagef(err, "load mapping %s", args[0])
	}
	return m, nil
}

func marshal(v any, compact bool) ([]byte, error) {
	if compact {
		return json.Marshal(v)
	}
	return json.MarshalIndent(v, "", "  ")
}

// writeOutput 写入文件，path 为空时输出到 w
func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := fmt.Fprintln(w, string(data))
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

var schemaCmd = &cobra.Command{
	Use:   "schema [mapping file]",
	Short: "print query schema document of a mapping file",
	Long:  `print the editor query schema document built from a json/yaml mapping file, without file a permissive schema is printed`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadMapping(args)
		if err != nil {
			return err
		}

		var v any = schema.NewDocument(m)
		if schemaOnly {
			v = schema.BuildQuerySchema(m)
		}
		data, err := marshal(v, schemaCompact)
		if err != nil {
			return errors.Wrap(err, "marshal schema")
		}
		return writeOutput(cmd.OutOrStdout(), schemaOutput, data)
	},
}

func init() {
	schemaCmd.Flags().StringVarP(&schemaOutput, "output", "o", "", "output file, default stdout")
	schemaCmd.Flags().BoolVar(&schemaCompact, "compact", false, "print compact json")
	schemaCmd.Flags().BoolVar(&schemaOnly, "schema-only", false, "print the schema without document wrapper")
	rootCmd.AddCommand(schemaCmd)
}
