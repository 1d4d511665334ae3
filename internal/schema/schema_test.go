package schema

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/market_radar/internal/model"
)

func validCase(brand string) model.Case {
	return model.Case{
		Brand:        brand,
		CampaignName: brand + " Campaign",
		Geography:    "Japan",
		Summary:      "施策の概要",
		Influencers:  []model.Influencer{{Name: "佐藤まい"}},
		Sources:      []string{"https://example.com/article"},
	}
}

func marshalCases(t *testing.T, cases []model.Case) []byte {
	t.Helper()
	doc, err := json.Marshal(map[string]any{"cases": cases})
	require.NoError(t, err)
	return doc
}

func TestCaseListAcceptsValidList(t *testing.T) {
	doc := marshalCases(t, []model.Case{validCase("Shiseido"), validCase("UNIQLO")})
	assert.NoError(t, Validate(doc, CaseList()))
}

func TestCaseListRejectsEmptyList(t *testing.T) {
	doc := marshalCases(t, []model.Case{})
	assert.Error(t, Validate(doc, CaseList()))
}

func TestCaseListRejectsMoreThanSixCases(t *testing.T) {
	cases := make([]model.Case, 7)
	for i := range cases {
		cases[i] = validCase(fmt.Sprintf("Brand%d", i))
	}
	assert.Error(t, Validate(marshalCases(t, cases), CaseList()))
}

func TestCaseListRejectsCaseWithoutInfluencer(t *testing.T) {
	c := validCase("Shiseido")
	c.Influencers = nil
	assert.Error(t, Validate(marshalCases(t, []model.Case{c}), CaseList()))

	c.Influencers = []model.Influencer{}
	assert.Error(t, Validate(marshalCases(t, []model.Case{c}), CaseList()))
}

func TestCaseListRejectsMissingRequiredField(t *testing.T) {
	c := validCase("Shiseido")
	c.Summary = ""
	assert.Error(t, Validate(marshalCases(t, []model.Case{c}), CaseList()))
}

func enrichedDoc(t *testing.T, metrics []map[string]any) []byte {
	t.Helper()
	doc, err := json.Marshal(map[string]any{"cases": []map[string]any{{
		"brand":        "Shiseido",
		"campaignName": "Beauty AI Lab",
		"geography":    "Japan",
		"summary":      "施策の概要",
		"influencers":  []map[string]any{{"name": "佐藤まい"}},
		"metrics":      metrics,
	}}})
	require.NoError(t, err)
	return doc
}

func TestEnrichedCaseListAcceptsValidList(t *testing.T) {
	doc := enrichedDoc(t, []map[string]any{
		{"name": "売上", "value": "1.2億円", "currency": "JPY", "timeframe": "3ヶ月"},
		{"name": "CVR", "value": "不明", "note": "公開情報なし"},
	})
	assert.NoError(t, Validate(doc, EnrichedCaseList(false)))
	assert.NoError(t, Validate(doc, EnrichedCaseList(true)))
}

func TestEnrichedCaseListRejectsCaseWithoutMetrics(t *testing.T) {
	doc := enrichedDoc(t, []map[string]any{})
	assert.Error(t, Validate(doc, EnrichedCaseList(false)))
}

func TestEnrichedCaseListHasNoUpperBound(t *testing.T) {
	cases := make([]map[string]any, 10)
	for i := range cases {
		cases[i] = map[string]any{
			"brand":        fmt.Sprintf("Brand%d", i),
			"campaignName": "Campaign",
			"geography":    "Japan",
			"summary":      "概要",
			"influencers":  []map[string]any{{"name": "佐藤まい"}},
			"metrics":      []map[string]any{{"name": "売上", "value": "不明"}},
		}
	}
	doc, err := json.Marshal(map[string]any{"cases": cases})
	require.NoError(t, err)
	assert.NoError(t, Validate(doc, EnrichedCaseList(false)))
}

// currency 可空性是两个流水线变体唯一的 Schema 层分歧
func TestEnrichedCaseListCurrencyNullability(t *testing.T) {
	doc := enrichedDoc(t, []map[string]any{
		{"name": "売上", "value": "1.2億円", "currency": nil},
	})

	assert.NoError(t, Validate(doc, EnrichedCaseList(true)))
	assert.Error(t, Validate(doc, EnrichedCaseList(false)))
}

func TestValidateRejectsMalformedJSON(t *testing.T) {
	assert.Error(t, Validate([]byte("{not json"), CaseList()))
}
