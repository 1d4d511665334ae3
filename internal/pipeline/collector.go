package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/iWorld-y/market_radar/internal/llm"
	"github.com/iWorld-y/market_radar/internal/logger"
	"github.com/iWorld-y/market_radar/internal/model"
	"github.com/iWorld-y/market_radar/internal/schema"
)

const stageCollect = "collect"

// caseListEnvelope 第一阶段的模型返回信封
type caseListEnvelope struct {
	Cases []model.Case `json:"cases"`
}

// caseListExample 嵌入提示词的形状示例，引导模型输出正确结构
const caseListExample = `{
  "cases": [
    {
      "brand": "ブランド名",
      "campaignName": "キャンペーン名",
      "geography": "地域",
      "summary": "施策の概要",
      "timeframe": "実施期間（任意）",
      "productFocus": "対象商材（任意）",
      "offerType": "オファー種別（任意）",
      "influencers": [
        {
          "name": "起用インフルエンサー名",
          "platform": "プラットフォーム（任意）",
          "handle": "アカウント（任意）",
          "followers": "フォロワー数（任意）",
          "positioning": "ポジショニング（任意）"
        }
      ],
      "sources": ["https://example.com/article"]
    }
  ]
}`

// buildCollectorPrompts 构造第一阶段提示词
func buildCollectorPrompts(v Variant, in model.RunInput) (string, string) {
	var system string
	var sb strings.Builder

	if in.Language == model.LangEN {
		system = "You are a senior market research analyst. You only report real, verifiable marketing campaigns and never invent facts."
		fmt.Fprintf(&sb, "Find real-world marketing case studies about %q in %s.\n", in.FocusKeyword, in.Geography)
		fmt.Fprintf(&sb, "Return at least %d distinct cases (at most %d).\n", in.MinExamples, model.MaxCases)
		sb.WriteString("Write every field in English.\n")
		if in.IncludeSources {
			sb.WriteString("Attach source URLs for each case in the sources array when available.\n")
		}
		if v.CollectorNote != "" {
			sb.WriteString(v.CollectorNote + "\n")
		}
		fmt.Fprintf(&sb, "Respond as a JSON object with a cases array, shaped exactly like this example:\n%s", caseListExample)
		return system, sb.String()
	}

	system = "あなたは市場調査の専門アナリストです。実在するマーケティング事例のみを扱い、事実を捏造しません。"
	fmt.Fprintf(&sb, "%s における「%s」に関する実在のマーケティング事例を調査してください。\n", in.Geography, in.FocusKeyword)
	fmt.Fprintf(&sb, "互いに異なる事例を最低 %d 件（最大 %d 件）挙げてください。\n", in.MinExamples, model.MaxCases)
	sb.WriteString("すべてのフィールドは日本語で記述してください。\n")
	if in.IncludeSources {
		sb.WriteString("可能な限り各事例の参照元URLを sources 配列に含めてください。\n")
	}
	if v.CollectorNote != "" {
		sb.WriteString(v.CollectorNote + "\n")
	}
	fmt.Fprintf(&sb, "次の例と同じ構造の、cases 配列を持つ JSON オブジェクトで回答してください:\n%s", caseListExample)

	return system, sb.String()
}

// collectCases 第一阶段：收集候选案例。
// 案例数与每案例至少一名推广者由 Schema 保证，不满足即 ValidationError。
func collectCases(ctx context.Context, ad *llm.Adapter, v Variant, in model.RunInput) (*model.CollectOutput, error) {
	system, user := buildCollectorPrompts(v, in)

	env, err := llm.Generate[caseListEnvelope](ctx, ad, stageCollect, schema.CaseList(), system, user)
	if err != nil {
		return nil, err
	}

	logger.Log.Infof("收集阶段完成: %d 个案例 (keyword=%q)", len(env.Cases), in.FocusKeyword)

	return &model.CollectOutput{
		Cases:          env.Cases,
		MetricFocus:    in.MetricFocus,
		Language:       in.Language,
		IncludeSources: in.IncludeSources,
	}, nil
}
