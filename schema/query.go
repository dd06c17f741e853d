// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package schema

// 查询子句定义名称
const (
	MatchAllQuery          = "MatchAllQuery"
	MatchNoneQuery         = "MatchNoneQuery"
	MatchQuery             = "MatchQuery"
	MatchPhraseQuery       = "MatchPhraseQuery"
	MatchPhrasePrefixQuery = "MatchPhrasePrefixQuery"
	MatchBoolPrefixQuery   = "MatchBoolPrefixQuery"
	MultiMatchQuery        = "MultiMatchQuery"
	TermQuery              = "TermQuery"
	TermsQuery             = "TermsQuery"
	RangeQuery             = "RangeQuery"
	ExistsQuery            = "ExistsQuery"
	PrefixQuery            = "PrefixQuery"
	WildcardQuery          = "WildcardQuery"
	RegexpQuery            = "RegexpQuery"
	FuzzyQuery             = "FuzzyQuery"
	IdsQuery               = "IdsQuery"
	QueryStringQuery       = "QueryStringQuery"
	SimpleQueryStringQuery = "SimpleQueryStringQuery"
	NestedQuery            = "NestedQuery"
	BoolQuery              = "BoolQuery"
	BoostingQuery          = "BoostingQuery"
	ConstantScoreQuery     = "ConstantScoreQuery"
	DisMaxQuery            = "DisMaxQuery"
	FunctionScoreQuery     = "FunctionScoreQuery"
	ScoreFunction          = "ScoreFunction"
	ScriptScoreQuery       = "ScriptScoreQuery"
	MoreLikeThisQuery      = "MoreLikeThisQuery"
	KnnQuery               = "KnnQuery"
	Script                 = "Script"
)

// ContainerClauses QueryContainer 可选的子句，顺序即 oneOf 的顺序
var ContainerClauses = []string{
	MatchAllQuery,
	MatchNoneQuery,
	MatchQuery,
	MatchPhraseQuery,
	MatchPhrasePrefixQuery,
	MatchBoolPrefixQuery,
	MultiMatchQuery,
	TermQuery,
	TermsQuery,
	RangeQuery,
	ExistsQuery,
	PrefixQuery,
	WildcardQuery,
	RegexpQuery,
	FuzzyQuery,
	IdsQuery,
	QueryStringQuery,
	SimpleQueryStringQuery,
	NestedQuery,
	BoolQuery,
	BoostingQuery,
	ConstantScoreQuery,
	DisMaxQuery,
	FunctionScoreQuery,
	ScriptScoreQuery,
	MoreLikeThisQuery,
}

func (b *builder) queryDefinitions() map[string]*Schema {
	refs := make([]*Schema, 0, len(ContainerClauses))
	for _, name := range ContainerClauses {
		refs = append(refs, Ref(name))
	}

	return map[string]*Schema{
		QueryContainer: OneOf(refs...),
		QueryArray:     Array(Ref(QueryContainer)),

		MatchAllQuery:          Clause("match_all", Closed(map[string]*Schema{"boost": NonNegativeNumber()})),
		MatchNoneQuery:         Clause("match_none", Closed(map[string]*Schema{"_name": String()})),
		MatchQuery:             Clause("match", b.matchBody()),
		MatchPhraseQuery:       Clause("match_phrase", b.matchPhraseBody(false)),
		MatchPhrasePrefixQuery: Clause("match_phrase_prefix", b.matchPhraseBody(true)),
		MatchBoolPrefixQuery:   Clause("match_bool_prefix", b.matchBoolPrefixBody()),
		MultiMatchQuery:        Clause("multi_match", multiMatchBody()),
		TermQuery:              Clause("term", b.termBody()),
		TermsQuery:             Clause("terms", b.termsBody()),
		RangeQuery:             Clause("range", b.rangeBody()),
		ExistsQuery:            Clause("exists", existsBody()),
		PrefixQuery:            Clause("prefix", b.textValueBody("value", nil)),
		WildcardQuery:          Clause("wildcard", b.wildcardBody()),
		RegexpQuery:            Clause("regexp", b.regexpBody()),
		FuzzyQuery:             Clause("fuzzy", b.fuzzyBody()),
		IdsQuery:               Clause("ids", idsBody()),
		QueryStringQuery:       Clause("query_string", queryStringBody()),
		SimpleQueryStringQuery: Clause("simple_query_string", simpleQueryStringBody()),
		NestedQuery:            Clause("nested", b.nestedBody()),
		BoolQuery:              Clause("bool", boolBody()),
		BoostingQuery:          Clause("boosting", boostingBody()),
		ConstantScoreQuery:     Clause("constant_score", constantScoreBody()),
		DisMaxQuery:            Clause("dis_max", disMaxBody()),
		FunctionScoreQuery:     Clause("function_score", b.functionScoreBody()),
		ScoreFunction:          b.scoreFunction(),
		ScriptScoreQuery:       Clause("script_score", scriptScoreBody()),
		MoreLikeThisQuery:      Clause("more_like_this", moreLikeThisBody()),
		KnnQuery:               b.knn(),
		Script:                 script(),
	}
}

// withCommon 所有子句都支持 boost 和 _name
func withCommon(props map[string]*Schema) map[string]*Schema {
	props["boost"] = NonNegativeNumber()
	props["_name"] = String()
	return props
}

func scalar() *Schema {
	return OneOf(String(), Number(), Boolean())
}

func stringOrNumber() *Schema {
	return OneOf(String(), Number())
}

func minimumShouldMatch() *Schema {
	return OneOf(Integer(), String())
}

func fuzziness() *Schema {
	return OneOf(String(), Integer())
}

func operator() *Schema {
	return Enum("and", "or", "AND", "OR")
}

func zeroTermsQuery() *Schema {
	return Enum("none", "all")
}

// boostedFields 字段列表，支持 title^3 形式的权重
func boostedFields(set string) *Schema {
	return Array(AnyOf(Ref(set), Pattern(`^[^\^]+\^[0-9]+(\.[0-9]+)?$`)))
}

func (b *builder) matchBody() *Schema {
	options := Closed(withCommon(map[string]*Schema{
		"query":                               scalar(),
		"operator":                            operator(),
		"analyzer":                            String(),
		"fuzziness":                           fuzziness(),
		"fuzzy_rewrite":                       String(),
		"fuzzy_transpositions":                Boolean(),
		"minimum_should_match":                minimumShouldMatch(),
		"lenient":                             Boolean(),
		"prefix_length":                       NonNegativeInteger(),
		"max_expansions":                      NonNegativeInteger(),
		"zero_terms_query":                    zeroTermsQuery(),
		"auto_generate_synonyms_phrase_query": Boolean(),
	}), "query")
	return b.singleFieldMap(TextFields, OneOf(String(), Number(), Boolean(), options))
}

func (b *builder) matchPhraseBody(prefix bool) *Schema {
	props := withCommon(map[string]*Schema{
		"query":            String(),
		"analyzer":         String(),
		"slop":             NonNegativeInteger(),
		"zero_terms_query": zeroTermsQuery(),
	})
	if prefix {
		props["max_expansions"] = NonNegativeInteger()
	}
	return b.singleFieldMap(TextFields, OneOf(String(), Closed(props, "query")))
}

func (b *builder) matchBoolPrefixBody() *Schema {
	options := Closed(withCommon(map[string]*Schema{
		"query":                String(),
		"analyzer":             String(),
		"operator":             operator(),
		"minimum_should_match": minimumShouldMatch(),
		"fuzziness":            fuzziness(),
		"prefix_length":        NonNegativeInteger(),
		"max_expansions":       NonNegativeInteger(),
		"fuzzy_transpositions": Boolean(),
		"fuzzy_rewrite":        String(),
	}), "query")
	return b.singleFieldMap(TextFields, OneOf(String(), options))
}

func multiMatchBody() *Schema {
	return Closed(withCommon(map[string]*Schema{
		"query":  scalar(),
		"fields": boostedFields(TextFields),
		"type": Enum(
			"best_fields", "most_fields", "cross_fields",
			"phrase", "phrase_prefix", "bool_prefix",
		),
		"operator":             operator(),
		"analyzer":             String(),
		"tie_breaker":          Number().WithRange(0, 1),
		"minimum_should_match": minimumShouldMatch(),
		"fuzziness":            fuzziness(),
		"prefix_length":        NonNegativeInteger(),
		"max_expansions":       NonNegativeInteger(),
		"slop":                 NonNegativeInteger(),
		"lenient":              Boolean(),
		"zero_terms_query":     zeroTermsQuery(),
	}), "query")
}

func (b *builder) termBody() *Schema {
	options := Closed(withCommon(map[string]*Schema{
		"value":            scalar(),
		"case_insensitive": Boolean(),
	}), "value")
	return b.singleFieldMap(TermFields, OneOf(String(), Number(), Boolean(), options))
}

// termsBody 除了字段 key 之外还允许 boost 和 _name
func (b *builder) termsBody() *Schema {
	lookup := Closed(map[string]*Schema{
		"index":   String(),
		"id":      String(),
		"path":    String(),
		"routing": String(),
	}, "index", "id", "path")

	s := MapOf(OneOf(Array(scalar()), lookup))
	s.Properties = withCommon(map[string]*Schema{})
	s.PropertyNames = b.propertyNames(TermFields, "boost", "_name")
	return s.WithPropertyCount(1, -1)
}

func (b *builder) rangeBody() *Schema {
	options := Closed(withCommon(map[string]*Schema{
		"gt":        stringOrNumber(),
		"gte":       stringOrNumber(),
		"lt":        stringOrNumber(),
		"lte":       stringOrNumber(),
		"format":    String(),
		"time_zone": String(),
		"relation":  Enum("INTERSECTS", "CONTAINS", "WITHIN"),
	})).WithPropertyCount(1, -1)
	return b.singleFieldMap(RangeFields, options)
}

func existsBody() *Schema {
	return Closed(withCommon(map[string]*Schema{
		"field": Ref(IndexFields),
	}), "field")
}

// textValueBody prefix/wildcard/regexp/fuzzy 的公共形式：字符串或带 key 的对象
func (b *builder) textValueBody(key string, extra map[string]*Schema) *Schema {
	props := withCommon(map[string]*Schema{
		key:                String(),
		"rewrite":          String(),
		"case_insensitive": Boolean(),
	})
	for k, v := range extra {
		props[k] = v
	}
	return b.singleFieldMap(TextFields, OneOf(String(), Closed(props, key)))
}

// wildcardBody value 和 wildcard 两个 key 都可以
func (b *builder) wildcardBody() *Schema {
	options := Closed(withCommon(map[string]*Schema{
		"value":            String(),
		"wildcard":         String(),
		"rewrite":          String(),
		"case_insensitive": Boolean(),
	})).WithPropertyCount(1, -1)
	return b.singleFieldMap(TextFields, OneOf(String(), options))
}

func (b *builder) regexpBody() *Schema {
	return b.textValueBody("value", map[string]*Schema{
		"flags":                   String(),
		"max_determinized_states": NonNegativeInteger(),
	})
}

func (b *builder) fuzzyBody() *Schema {
	return b.textValueBody("value", map[string]*Schema{
		"fuzziness":      fuzziness(),
		"max_expansions": NonNegativeInteger(),
		"prefix_length":  NonNegativeInteger(),
		"transpositions": Boolean(),
	})
}

func idsBody() *Schema {
	return Closed(withCommon(map[string]*Schema{
		"values": Array(String()),
	}), "values")
}

func queryStringBody() *Schema {
	return Closed(withCommon(map[string]*Schema{
		"query":                  String(),
		"default_field":          Ref(IndexFields),
		"fields":                 boostedFields(IndexFields),
		"default_operator":       operator(),
		"analyzer":               String(),
		"quote_analyzer":         String(),
		"quote_field_suffix":     String(),
		"analyze_wildcard":       Boolean(),
		"allow_leading_wildcard": Boolean(),
		"fuzziness":              fuzziness(),
		"fuzzy_max_expansions":   NonNegativeInteger(),
		"fuzzy_prefix_length":    NonNegativeInteger(),
		"lenient":                Boolean(),
		"minimum_should_match":   minimumShouldMatch(),
		"phrase_slop":            NonNegativeInteger(),
		"time_zone":              String(),
		"type": Enum(
			"best_fields", "most_fields", "cross_fields",
			"phrase", "phrase_prefix", "bool_prefix",
		),
	}), "query")
}

func simpleQueryStringBody() *Schema {
	return Closed(withCommon(map[string]*Schema{
		"query":                               String(),
		"fields":                              boostedFields(IndexFields),
		"default_operator":                    operator(),
		"analyzer":                            String(),
		"analyze_wildcard":                    Boolean(),
		"auto_generate_synonyms_phrase_query": Boolean(),
		"flags":                               String(),
		"fuzzy_max_expansions":                NonNegativeInteger(),
		"fuzzy_prefix_length":                 NonNegativeInteger(),
		"fuzzy_transpositions":                Boolean(),
		"lenient":                             Boolean(),
		"minimum_should_match":                minimumShouldMatch(),
		"quote_field_suffix":                  String(),
	}), "query")
}

func (b *builder) nestedBody() *Schema {
	return Closed(withCommon(map[string]*Schema{
		"path":            b.nestedPaths(),
		"query":           Ref(QueryContainer),
		"score_mode":      Enum("avg", "max", "min", "none", "sum"),
		"ignore_unmapped": Boolean(),
		"inner_hits":      Ref(InnerHits),
	}), "path", "query")
}

// queryOrArray 单个查询或者查询数组
func queryOrArray() *Schema {
	return OneOf(Ref(QueryContainer), Ref(QueryArray))
}

func boolBody() *Schema {
	return Closed(withCommon(map[string]*Schema{
		"must":                 queryOrArray(),
		"filter":               queryOrArray(),
		"should":               queryOrArray(),
		"must_not":             queryOrArray(),
		"minimum_should_match": minimumShouldMatch(),
	}))
}

func boostingBody() *Schema {
	return Closed(withCommon(map[string]*Schema{
		"positive":       Ref(QueryContainer),
		"negative":       Ref(QueryContainer),
		"negative_boost": NonNegativeNumber(),
	}), "positive", "negative", "negative_boost")
}

func constantScoreBody() *Schema {
	return Closed(withCommon(map[string]*Schema{
		"filter": Ref(QueryContainer),
	}), "filter")
}

func disMaxBody() *Schema {
	return Closed(withCommon(map[string]*Schema{
		"queries":     Ref(QueryArray),
		"tie_breaker": Number().WithRange(0, 1),
	}), "queries")
}
