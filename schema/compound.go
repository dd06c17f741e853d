// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package schema

var (
	boostModes = []string{"multiply", "replace", "sum", "avg", "max", "min"}
	scoreModes = []string{"multiply", "sum", "avg", "first", "max", "min"}

	fieldValueModifiers = []string{
		"none", "log", "log1p", "log2p", "ln", "ln1p", "ln2p", "square", "sqrt", "reciprocal",
	}
)

// scoreFunctionProps 打分函数，function_score 顶层也可以直接写单个函数
func (b *builder) scoreFunctionProps() map[string]*Schema {
	return map[string]*Schema{
		"filter": Ref(QueryContainer),
		"weight": Number(),
		"script_score": Closed(map[string]*Schema{
			"script": Ref(Script),
		}, "script"),
		"random_score": Closed(map[string]*Schema{
			"seed":  OneOf(Integer(), String()),
			"field": String(),
		}),
		"field_value_factor": Closed(map[string]*Schema{
			"field":    Ref(NumericFields),
			"factor":   Number(),
			"modifier": Enum(fieldValueModifiers...),
			"missing":  Number(),
		}, "field"),
		"gauss":  b.decayFunction(),
		"linear": b.decayFunction(),
		"exp":    b.decayFunction(),
	}
}

// decayFunction {"<range field>": {origin, scale, offset, decay}, "multi_value_mode": ...}
func (b *builder) decayFunction() *Schema {
	params := Closed(map[string]*Schema{
		"origin": stringOrNumber(),
		"scale":  stringOrNumber(),
		"offset": stringOrNumber(),
		"decay":  Number().WithRange(0, 1),
	}, "scale")

	s := MapOf(params)
	s.Properties = map[string]*Schema{
		"multi_value_mode": Enum("min", "max", "avg", "sum"),
	}
	s.PropertyNames = b.propertyNames(RangeFields, "multi_value_mode")
	return s.WithPropertyCount(1, -1)
}

func (b *builder) scoreFunction() *Schema {
	return Closed(b.scoreFunctionProps()).WithPropertyCount(1, -1)
}

func (b *builder) functionScoreBody() *Schema {
	props := withCommon(map[string]*Schema{
		"query":      Ref(QueryContainer),
		"functions":  Array(Ref(ScoreFunction)),
		"boost_mode": Enum(boostModes...),
		"score_mode": Enum(scoreModes...),
		"max_boost":  Number(),
		"min_score":  Number(),
	})
	// 单函数简写
	for key, fn := range b.scoreFunctionProps() {
		if key != "filter" {
			props[key] = fn
		}
	}
	return Closed(props)
}

func scriptScoreBody() *Schema {
	return Closed(withCommon(map[string]*Schema{
		"query":     Ref(QueryContainer),
		"script":    Ref(Script),
		"min_score": Number(),
	}), "query", "script")
}

func moreLikeThisBody() *Schema {
	doc := Object(map[string]*Schema{
		"_index": String(),
		"_id":    String(),
		"doc":    Object(nil),
	})
	like := OneOf(String(), doc, Array(AnyOf(String(), doc)))

	return Closed(withCommon(map[string]*Schema{
		"fields":               Array(Ref(TextFields)),
		"like":                 like,
		"unlike":               like,
		"min_term_freq":        NonNegativeInteger(),
		"max_query_terms":      NonNegativeInteger(),
		"min_doc_freq":         NonNegativeInteger(),
		"max_doc_freq":         NonNegativeInteger(),
		"min_word_length":      NonNegativeInteger(),
		"max_word_length":      NonNegativeInteger(),
		"stop_words":           Array(String()),
		"analyzer":             String(),
		"minimum_should_match": minimumShouldMatch(),
		"boost_terms":          Number(),
		"include":              Boolean(),
	}), "like")
}

// knn 顶层 knn 的参数，field 直接约束为向量字段
func (b *builder) knn() *Schema {
	field := String()
	if b.fields != nil {
		field.Enum = b.names(VectorFields)
	}

	return Closed(map[string]*Schema{
		"field":                field,
		"query_vector":         Array(Number()),
		"query_vector_builder": Object(nil),
		"k":                    Integer().WithMinimum(1),
		"num_candidates":       Integer().WithMinimum(1),
		"filter":               queryOrArray(),
		"similarity":           Number(),
		"boost":                NonNegativeNumber(),
		"inner_hits":           Ref(InnerHits),
	}, "field")
}

func script() *Schema {
	return OneOf(String(), Closed(map[string]*Schema{
		"source": String(),
		"id":     String(),
		"lang":   String(),
		"params": Object(nil),
	}))
}
