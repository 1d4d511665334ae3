package pipeline

import "github.com/iWorld-y/market_radar/internal/model"

// Variant 流水线变体配置。两套历史定义只在缺省值、提示词措辞、
// currency 可空性与能力判定上存在分歧，这里统一为一条参数化流水线。
type Variant struct {
	Name string

	// Defaults 输入缺省值
	Defaults model.Defaults

	// CollectorNote 收集阶段附加的提示词措辞
	CollectorNote string

	// GPT5TextMode 能力判定是否额外检查 gpt-5 前缀
	GPT5TextMode bool

	// CurrencyNullable 指标 currency 字段是否允许 null
	CurrencyNullable bool
}

// VariantGeneral 通用市场调查变体：能力判定只看 search，currency 可空
var VariantGeneral = Variant{
	Name: "general",
	Defaults: model.Defaults{
		Geography:   "Japan",
		Language:    model.LangJA,
		MetricFocus: []string{"売上", "GMV", "CVR"},
	},
	GPT5TextMode:     false,
	CurrencyNullable: true,
}

// VariantInfluencerJP 日本インフルエンサー施策特化变体：
// 能力判定同时检查 gpt-5 前缀，currency 不可空
var VariantInfluencerJP = Variant{
	Name: "influencer_jp",
	Defaults: model.Defaults{
		Geography:   "Japan",
		Language:    model.LangJA,
		MetricFocus: []string{"売上", "GMV", "CVR"},
	},
	CollectorNote:    "インフルエンサーやアンバサダーを起用した事例を優先してください。",
	GPT5TextMode:     true,
	CurrencyNullable: false,
}

// Variants 按名字查找变体
var Variants = map[string]Variant{
	VariantGeneral.Name:      VariantGeneral,
	VariantInfluencerJP.Name: VariantInfluencerJP,
}
