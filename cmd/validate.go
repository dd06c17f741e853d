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
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/schema"
)

var validateMapping string

var validateCmd = &cobra.Command{
	Use:   "validate <query file>",
	Short: "validate a query body against the schema of a mapping file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadMapping([]string{validateMapping})
		if err != nil {
			return err
		}
		body, err := os.ReadFile(args[0])
		if err != nil {
			return errors.Wrapf(err, "read query %s", args[0])
		}

		validator, err := schema.Compile(schema.BuildQuerySchema(m))
		if err != nil {
			return err
		}
		err = validator.Validate(body)

		var invalid *schema.InvalidError
		if errors.As(err, &invalid) {
			for _, e := range invalid.Errors {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", e.Field, e.Type, e.Description)
			}
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "ok")
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVarP(&validateMapping, "mapping", "m", "", "mapping file, default no field constraints")
	rootCmd.AddCommand(validateCmd)
}
