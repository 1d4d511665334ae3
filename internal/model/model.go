// Package model 定义各阶段边界上流转的数据结构。纯数据契约，不含行为。
package model

import (
	"strings"

	"github.com/iWorld-y/market_radar/internal/errs"
)

// Influencer 与单个案例关联的推广者，除 Name 外均可缺省
type Influencer struct {
	Name        string `json:"name"`
	Platform    string `json:"platform,omitempty"`
	Handle      string `json:"handle,omitempty"`
	Followers   string `json:"followers,omitempty"`
	Positioning string `json:"positioning,omitempty"`
}

// Case 一条市场案例记录，由第一阶段产出，之后只读
type Case struct {
	Brand        string       `json:"brand"`
	CampaignName string       `json:"campaignName"`
	Geography    string       `json:"geography"`
	Summary      string       `json:"summary"`
	Timeframe    string       `json:"timeframe,omitempty"`
	ProductFocus string       `json:"productFocus,omitempty"`
	OfferType    string       `json:"offerType,omitempty"`
	Influencers  []Influencer `json:"influencers"`
	Sources      []string     `json:"sources,omitempty"`
}

// Metric 一条 KPI 观测值。Value 为字符串：数值可能拿不到，需要放占位符。
type Metric struct {
	Name      string `json:"name"`
	Value     string `json:"value"`
	Currency  string `json:"currency,omitempty"`
	Timeframe string `json:"timeframe,omitempty"`
	Note      string `json:"note,omitempty"`
}

// EnrichedCase 案例加上至少一条 KPI。基础字段与来源 Case 逐字节一致。
type EnrichedCase struct {
	Case
	Metrics []Metric `json:"metrics"`
}

// CollectOutput 第一阶段输出。MetricFocus / Language / IncludeSources 原样透传。
type CollectOutput struct {
	Cases          []Case
	MetricFocus    []string
	Language       string
	IncludeSources bool
}

// EnrichOutput 第二阶段输出
type EnrichOutput struct {
	Cases          []EnrichedCase
	MetricFocus    []string
	Language       string
	IncludeSources bool
}

// Result 最终运行结果。运行失败时不返回部分结果。
type Result struct {
	Summary     string
	SentToSlack bool
	Cases       []EnrichedCase
}

// 输入约束
const (
	MinExamplesFloor = 1
	MinExamplesCeil  = 6
	MaxCases         = 6
)

// 输出语言
const (
	LangJA = "ja"
	LangEN = "en"
)

// Defaults 输入缺省值，由具体流水线变体提供
type Defaults struct {
	Geography   string
	Language    string
	MetricFocus []string
}

// Input 调用方传入的部分覆盖，未填字段合并缺省值。
// IncludeSources 用指针区分「未指定」与「显式 false」。
type Input struct {
	FocusKeyword   string
	Geography      string
	MinExamples    int
	Language       string
	MetricFocus    []string
	IncludeSources *bool
}

// RunInput 合并缺省值并通过校验后的完整输入
type RunInput struct {
	FocusKeyword   string
	Geography      string
	MinExamples    int
	Language       string
	MetricFocus    []string
	IncludeSources bool
}

// Normalize 合并缺省值并做入口校验。校验失败发生在任何模型调用之前。
func (in Input) Normalize(d Defaults) (RunInput, error) {
	out := RunInput{
		FocusKeyword:   strings.TrimSpace(in.FocusKeyword),
		Geography:      in.Geography,
		MinExamples:    in.MinExamples,
		Language:       in.Language,
		MetricFocus:    in.MetricFocus,
		IncludeSources: true,
	}

	if out.FocusKeyword == "" {
		return RunInput{}, errs.NewValidation("input", "focusKeyword must not be empty")
	}
	if out.Geography == "" {
		out.Geography = d.Geography
	}
	if out.MinExamples == 0 {
		out.MinExamples = 3
	}
	if out.MinExamples < MinExamplesFloor || out.MinExamples > MinExamplesCeil {
		return RunInput{}, errs.NewValidation("input", "minExamples must be between 1 and 6")
	}
	if out.Language == "" {
		out.Language = d.Language
	}
	if out.Language != LangJA && out.Language != LangEN {
		return RunInput{}, errs.NewValidation("input", `language must be "ja" or "en"`)
	}
	if len(out.MetricFocus) == 0 {
		out.MetricFocus = append([]string(nil), d.MetricFocus...)
	}
	for _, m := range out.MetricFocus {
		if strings.TrimSpace(m) == "" {
			return RunInput{}, errs.NewValidation("input", "metricFocus entries must not be empty")
		}
	}
	if in.IncludeSources != nil {
		out.IncludeSources = *in.IncludeSources
	}

	return out, nil
}
