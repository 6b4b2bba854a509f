package features

import (
	"fmt"
	"strings"
)

// NormalizeName rewrites the percent-sign marker some raw reference columns
// carry into the plain token the model was trained with ("(%)" -> "pct").
// It is the single place this rewrite happens; the declared schema and the
// model's trained column list both pass through it.
func NormalizeName(name string) string {
	return strings.ReplaceAll(name, "(%)", "pct")
}

// schema is the fixed, ordered list of every feature the derivation engine
// produces. Names are the native column names the model was trained with.
var schema = []string{
	// raw contract fields re-exposed under their source column names
	"보증시작월",
	"보증완료월",
	"주택가액",
	"임대보증금액",
	"선순위",

	// leverage ratios
	"초기LTV",
	"계산_LTV",
	"선순위비율",
	"담보여유금액",
	"잔여가치율",
	"보증금_대비_주택가액_비율",
	"선순위_보증금_합계_비율",

	// calendar decomposition
	"보증시작_연도",
	"보증시작_월",
	"보증시작_분기",
	"보증종료_연도",
	"보증종료_월",
	"보증종료_분기",
	"보증기간개월",
	"경과기간개월",
	"잔여기간개월",

	// seasonal indicators (autumn is the implicit all-zero case)
	"계절구분_봄",
	"계절구분_여름",
	"계절구분_겨울",

	// region one-hot block
	"시도_경기",
	"시도_경남",
	"시도_경북",
	"시도_광주",
	"시도_대구",
	"시도_대전",
	"시도_부산",
	"시도_서울",
	"시도_세종",
	"시도_울산",
	"시도_인천",
	"시도_전남",
	"시도_전북",
	"시도_제주",
	"시도_충남",
	"시도_충북",
	"지역구분_지방",

	// property-type one-hot block
	"주택구분_다가구주택",
	"주택구분_다세대주택",
	"주택구분_다중주택",
	"주택구분_단독주택",
	"주택구분_아파트",
	"주택구분_연립주택",
	"주택구분_오피스텔",
	"주택구분_주상복합",

	// lookup-derived macro features
	"지역별_선순위_평균대비_비율",
	"주택매매지수",
	"보증완료금리",
	"순이동률pct",
	"보증완료월_실업률",
}

// Schema returns the declared ordered feature names
func Schema() []string {
	out := make([]string, len(schema))
	copy(out, schema)
	return out
}

// fromValues assembles an ordered Vector from a full set of named values.
// Every schema slot must be present and no extra names may appear; a
// violation means the derivation drifted from the declared schema.
func fromValues(vals map[string]float64) (*Vector, error) {
	if len(vals) != len(schema) {
		return nil, fmt.Errorf("derived %d features, schema declares %d", len(vals), len(schema))
	}
	v := &Vector{
		names:  make([]string, len(schema)),
		values: make([]float64, len(schema)),
		index:  make(map[string]int, len(schema)),
	}
	for i, name := range schema {
		value, ok := vals[name]
		if !ok {
			return nil, fmt.Errorf("schema feature %q was not derived", name)
		}
		v.names[i] = name
		v.values[i] = value
		v.index[name] = i
	}
	return v, nil
}
