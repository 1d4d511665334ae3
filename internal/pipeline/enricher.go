package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iWorld-y/market_radar/internal/errs"
	"github.com/iWorld-y/market_radar/internal/llm"
	"github.com/iWorld-y/market_radar/internal/logger"
	"github.com/iWorld-y/market_radar/internal/model"
	"github.com/iWorld-y/market_radar/internal/schema"
)

const stageEnrich = "enrich"

// enrichedListEnvelope 第二阶段的模型返回信封
type enrichedListEnvelope struct {
	Cases []model.EnrichedCase `json:"cases"`
}

// buildEnricherPrompts 构造第二阶段提示词。
// 案例列表整体序列化进提示词，所有字段往返，不只传标识。
func buildEnricherPrompts(co *model.CollectOutput) (string, string, error) {
	casesJSON, err := json.MarshalIndent(caseListEnvelope{Cases: co.Cases}, "", "  ")
	if err != nil {
		return "", "", fmt.Errorf("marshal cases failed: %w", err)
	}

	var system string
	var sb strings.Builder

	if co.Language == model.LangEN {
		system = "You are a marketing data analyst. You attach realistic KPI observations to case studies and never invent precise numbers you cannot support."
		fmt.Fprintf(&sb, "For each case below, attach at least one KPI metric, focusing on: %s.\n", strings.Join(co.MetricFocus, ", "))
		sb.WriteString("When a number cannot be sourced, set value to \"unavailable\" and explain why in note.\n")
		sb.WriteString("Keep every existing field of every case unchanged, keep the case order, and add only a metrics array per case.\n")
		sb.WriteString("Write metric names, values and notes in English.\n")
		fmt.Fprintf(&sb, "Respond as a JSON object with a cases array.\n\nInput cases:\n%s", string(casesJSON))
		return system, sb.String(), nil
	}

	system = "あなたはマーケティングデータアナリストです。事例に現実的なKPIを付与し、根拠のない正確な数値は作りません。"
	fmt.Fprintf(&sb, "以下の各事例に、%s を中心とした数値指標を少なくとも1つ付与してください。\n", strings.Join(co.MetricFocus, "、"))
	sb.WriteString("数値が確認できない場合は value を「不明」とし、note に理由を記載してください。\n")
	sb.WriteString("既存フィールドは一切変更せず、事例の順序も保ち、各事例に metrics 配列のみを追加してください。\n")
	sb.WriteString("指標名・値・注記は日本語で記述してください。\n")
	fmt.Fprintf(&sb, "cases 配列を持つ JSON オブジェクトで回答してください。\n\n対象の事例:\n%s", string(casesJSON))

	return system, sb.String(), nil
}

// enrichCases 第二阶段：为每个案例补充 KPI。
// 模型输出只取 metrics，基础字段一律以第一阶段结果为准，
// 保证 EnrichedCase 与来源 Case 逐字节一致。
func enrichCases(ctx context.Context, ad *llm.Adapter, v Variant, co *model.CollectOutput) (*model.EnrichOutput, error) {
	system, user, err := buildEnricherPrompts(co)
	if err != nil {
		return nil, errs.NewValidationWrap(stageEnrich, "failed to serialize stage 1 output", "", err)
	}

	env, err := llm.Generate[enrichedListEnvelope](ctx, ad, stageEnrich, schema.EnrichedCaseList(v.CurrencyNullable), system, user)
	if err != nil {
		return nil, err
	}

	if len(env.Cases) != len(co.Cases) {
		return nil, errs.NewValidation(stageEnrich,
			fmt.Sprintf("enriched case count mismatch: got %d, want %d", len(env.Cases), len(co.Cases)))
	}

	enriched := make([]model.EnrichedCase, len(co.Cases))
	for i := range co.Cases {
		enriched[i] = model.EnrichedCase{
			Case:    co.Cases[i],
			Metrics: env.Cases[i].Metrics,
		}
	}

	logger.Log.Infof("补充阶段完成: %d 个案例已附加指标", len(enriched))

	return &model.EnrichOutput{
		Cases:          enriched,
		MetricFocus:    co.MetricFocus,
		Language:       co.Language,
		IncludeSources: co.IncludeSources,
	}, nil
}
