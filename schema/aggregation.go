// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package schema

const (
	Aggregations             = "Aggregations"
	Aggregation              = "Aggregation"
	TermsAggregation         = "TermsAggregation"
	DateHistogramAggregation = "DateHistogramAggregation"
	HistogramAggregation     = "HistogramAggregation"
	RangeAggregation         = "RangeAggregation"
	DateRangeAggregation     = "DateRangeAggregation"
	FiltersAggregation       = "FiltersAggregation"
	MetricAggregation        = "MetricAggregation"
	CountAggregation         = "CountAggregation"
	PercentilesAggregation   = "PercentilesAggregation"
	TopHitsAggregation       = "TopHitsAggregation"
	NestedAggregation        = "NestedAggregation"
	CompositeAggregation     = "CompositeAggregation"
)

// 使用 MetricAggregation 的聚合
var metricAggregations = []string{"avg", "sum", "min", "max", "stats", "extended_stats"}

// 使用 CountAggregation 的聚合
var countAggregations = []string{"cardinality", "value_count"}

func (b *builder) aggregationDefinitions() map[string]*Schema {
	return map[string]*Schema{
		Aggregations:             MapOf(Ref(Aggregation)),
		Aggregation:              aggregation(),
		TermsAggregation:         termsAggregation(),
		DateHistogramAggregation: dateHistogramAggregation(),
		HistogramAggregation:     histogramAggregation(),
		RangeAggregation:         rangeAggregation(),
		DateRangeAggregation:     dateRangeAggregation(),
		FiltersAggregation:       filtersAggregation(),
		MetricAggregation:        metricAggregation(),
		CountAggregation:         countAggregation(),
		PercentilesAggregation:   percentilesAggregation(),
		TopHitsAggregation:       topHitsAggregation(),
		NestedAggregation:        Closed(map[string]*Schema{"path": b.nestedPaths()}, "path"),
		CompositeAggregation:     compositeAggregation(),
	}
}

// aggregation 单个聚合，aggs/aggregations 递归引用 Aggregations
func aggregation() *Schema {
	props := map[string]*Schema{
		"terms":          Ref(TermsAggregation),
		"date_histogram": Ref(DateHistogramAggregation),
		"histogram":      Ref(HistogramAggregation),
		"range":          Ref(RangeAggregation),
		"date_range":     Ref(DateRangeAggregation),
		"filter":         Ref(QueryContainer),
		"filters":        Ref(FiltersAggregation),
		"percentiles":    Ref(PercentilesAggregation),
		"top_hits":       Ref(TopHitsAggregation),
		"nested":         Ref(NestedAggregation),
		"reverse_nested": Closed(map[string]*Schema{"path": String()}),
		"composite":      Ref(CompositeAggregation),
		"aggs":           Ref(Aggregations),
		"aggregations":   Ref(Aggregations),
		"meta":           Object(nil),
	}
	for _, name := range metricAggregations {
		props[name] = Ref(MetricAggregation)
	}
	for _, name := range countAggregations {
		props[name] = Ref(CountAggregation)
	}
	return Closed(props).WithPropertyCount(1, -1)
}

func bucketOrder() *Schema {
	order := MapOf(Enum("asc", "desc"))
	return OneOf(order, Array(order))
}

func termsAggregation() *Schema {
	return Closed(map[string]*Schema{
		"field":                     Ref(TermFields),
		"script":                    Ref(Script),
		"size":                      NonNegativeInteger(),
		"shard_size":                NonNegativeInteger(),
		"min_doc_count":             NonNegativeInteger(),
		"shard_min_doc_count":       NonNegativeInteger(),
		"order":                     bucketOrder(),
		"missing":                   scalar(),
		"include":                   OneOf(String(), Array(scalar()), partition()),
		"exclude":                   OneOf(String(), Array(scalar())),
		"execution_hint":            Enum("map", "global_ordinals"),
		"collect_mode":              Enum("depth_first", "breadth_first"),
		"show_term_doc_count_error": Boolean(),
		"value_type":                String(),
		"format":                    String(),
	})
}

// partition terms 分区聚合
func partition() *Schema {
	return Closed(map[string]*Schema{
		"partition":      NonNegativeInteger(),
		"num_partitions": Integer().WithMinimum(1),
	}, "partition", "num_partitions")
}

func stringOrNumberBounds() *Schema {
	return Closed(map[string]*Schema{
		"min": stringOrNumber(),
		"max": stringOrNumber(),
	})
}

func dateHistogramAggregation() *Schema {
	return Closed(map[string]*Schema{
		"field":             Ref(DateFields),
		"script":            Ref(Script),
		"calendar_interval": String(),
		"fixed_interval":    String(),
		"interval":          String(),
		"format":            String(),
		"time_zone":         String(),
		"offset":            String(),
		"min_doc_count":     NonNegativeInteger(),
		"extended_bounds":   stringOrNumberBounds(),
		"hard_bounds":       stringOrNumberBounds(),
		"order":             bucketOrder(),
		"keyed":             Boolean(),
		"missing":           String(),
	})
}

func histogramAggregation() *Schema {
	bounds := Closed(map[string]*Schema{
		"min": Number(),
		"max": Number(),
	})
	return Closed(map[string]*Schema{
		"field":           Ref(NumericFields),
		"script":          Ref(Script),
		"interval":        NonNegativeNumber(),
		"offset":          Number(),
		"min_doc_count":   NonNegativeInteger(),
		"extended_bounds": bounds,
		"hard_bounds":     bounds,
		"order":           bucketOrder(),
		"keyed":           Boolean(),
		"missing":         Number(),
	}, "interval")
}

func rangeAggregation() *Schema {
	ranges := Array(Closed(map[string]*Schema{
		"from": stringOrNumber(),
		"to":   stringOrNumber(),
		"key":  String(),
	})).WithMinItems(1)
	return Closed(map[string]*Schema{
		"field":   Ref(RangeFields),
		"script":  Ref(Script),
		"ranges":  ranges,
		"keyed":   Boolean(),
		"format":  String(),
		"missing": stringOrNumber(),
	}, "ranges")
}

func dateRangeAggregation() *Schema {
	ranges := Array(Closed(map[string]*Schema{
		"from": stringOrNumber(),
		"to":   stringOrNumber(),
		"key":  String(),
	})).WithMinItems(1)
	return Closed(map[string]*Schema{
		"field":     Ref(DateFields),
		"script":    Ref(Script),
		"ranges":    ranges,
		"format":    String(),
		"time_zone": String(),
		"keyed":     Boolean(),
		"missing":   String(),
	}, "field", "ranges")
}

func filtersAggregation() *Schema {
	return Closed(map[string]*Schema{
		"filters":          OneOf(MapOf(Ref(QueryContainer)), Ref(QueryArray)),
		"other_bucket":     Boolean(),
		"other_bucket_key": String(),
		"keyed":            Boolean(),
	}, "filters")
}

func metricAggregation() *Schema {
	return Closed(map[string]*Schema{
		"field":   Ref(RangeFields),
		"script":  Ref(Script),
		"missing": stringOrNumber(),
		"format":  String(),
		"sigma":   NonNegativeNumber(),
	})
}

func countAggregation() *Schema {
	return Closed(map[string]*Schema{
		"field":               Ref(TermFields),
		"script":              Ref(Script),
		"missing":             scalar(),
		"precision_threshold": NonNegativeInteger(),
	})
}

func percentilesAggregation() *Schema {
	return Closed(map[string]*Schema{
		"field":    Ref(RangeFields),
		"script":   Ref(Script),
		"percents": Array(Number().WithRange(0, 100)),
		"keyed":    Boolean(),
		"missing":  stringOrNumber(),
		"format":   String(),
		"tdigest": Closed(map[string]*Schema{
			"compression": NonNegativeNumber(),
		}),
		"hdr": Closed(map[string]*Schema{
			"number_of_significant_value_digits": NonNegativeInteger(),
		}),
	})
}

func topHitsAggregation() *Schema {
	return Closed(map[string]*Schema{
		"from":                NonNegativeInteger(),
		"size":                NonNegativeInteger(),
		"sort":                sortSchema(),
		"_source":             sourceFilter(),
		"highlight":           Ref(Highlight),
		"explain":             Boolean(),
		"version":             Boolean(),
		"seq_no_primary_term": Boolean(),
		"stored_fields":       OneOf(String(), Array(String())),
		"docvalue_fields":     fieldAndFormatList(),
		"fields":              fieldAndFormatList(),
		"script_fields":       MapOf(Closed(map[string]*Schema{"script": Ref(Script)}, "script")),
	})
}

// compositeAggregation sources 每一项是 {"<name>": {"terms"|"histogram"|"date_histogram": {...}}}
func compositeAggregation() *Schema {
	order := Enum("asc", "desc")
	source := Closed(map[string]*Schema{
		"terms": Closed(map[string]*Schema{
			"field":          Ref(TermFields),
			"script":         Ref(Script),
			"order":          order,
			"missing_bucket": Boolean(),
		}),
		"histogram": Closed(map[string]*Schema{
			"field":          Ref(NumericFields),
			"interval":       NonNegativeNumber(),
			"order":          order,
			"missing_bucket": Boolean(),
		}, "interval"),
		"date_histogram": Closed(map[string]*Schema{
			"field":             Ref(DateFields),
			"calendar_interval": String(),
			"fixed_interval":    String(),
			"format":            String(),
			"time_zone":         String(),
			"offset":            String(),
			"order":             order,
			"missing_bucket":    Boolean(),
		}),
	}).WithPropertyCount(1, 1)

	return Closed(map[string]*Schema{
		"sources": Array(MapOf(source).WithPropertyCount(1, 1)).WithMinItems(1),
		"size":    NonNegativeInteger(),
		"after":   Object(nil),
	}, "sources")
}
