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
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/eska/mapping"
)

var (
	fieldsFilter   string
	fieldsCategory string
)

var fieldsCmd = &cobra.Command{
	Use:   "fields <mapping file>",
	Short: "print classified fields of a mapping file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadMapping(args)
		if err != nil {
			return err
		}

		fields := mapping.FlattenFields(m).Filter(fieldsFilter, nil)
		if fieldsCategory != "" {
			category := mapping.Category(strings.ToLower(fieldsCategory))
			if category.Types() == nil {
				return errors.Errorf("unknown category %s", fieldsCategory)
			}
			fields = fields.ByCategory(category)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tTYPE\tINDEX\tSOURCE\tGROUP\tCATEGORIES")
		for _, name := range fields.Names() {
			f := fields[name]
			categories := make([]string, 0)
			for _, c := range mapping.Categories(f.Type) {
				categories = append(categories, string(c))
			}
			fmt.Fprintf(w, "%s\t%s\t%t\t%t\t%s\t%s\n",
				name, f.Type, f.Index, f.Source, mapping.TypeGroup(f.Type), strings.Join(categories, ","))
		}
		return w.Flush()
	},
}

func init() {
	fieldsCmd.Flags().StringVarP(&fieldsFilter, "filter", "f", "", "filter expression, e.g. \"@index -:text user\"")
	fieldsCmd.Flags().StringVarP(&fieldsCategory, "category", "c", "", "only print fields of a category: text|keyword|term|numeric|date|range|vector")
	rootCmd.AddCommand(fieldsCmd)
}
