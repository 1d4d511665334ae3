package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/iWorld-y/market_radar/internal/logger"
	"github.com/iWorld-y/market_radar/internal/model"
	"github.com/iWorld-y/market_radar/internal/slack"
)

// labels 摘要中与语言相关的固定文案
type labels struct {
	title   string
	kpi     string
	sources string
}

func localize(lang string) labels {
	if lang == model.LangEN {
		return labels{
			title:   "Market Research Report",
			kpi:     "Key KPIs",
			sources: "Sources",
		}
	}
	return labels{
		title:   "市場調査レポート",
		kpi:     "主要KPI",
		sources: "参考",
	}
}

// formatMetricLine 单条指标行: - <name>: <value> [<currency>] [(<timeframe>)] [｜<note>]
func formatMetricLine(m model.Metric) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "- %s: %s", m.Name, m.Value)
	if m.Currency != "" {
		sb.WriteString(" " + m.Currency)
	}
	if m.Timeframe != "" {
		fmt.Fprintf(&sb, " (%s)", m.Timeframe)
	}
	if m.Note != "" {
		sb.WriteString(" ｜" + m.Note)
	}
	return sb.String()
}

// renderSummary 渲染纯文本摘要。同样输入必须得到逐字节一致的输出。
func renderSummary(cases []model.EnrichedCase, lang string, includeSources bool) string {
	l := localize(lang)
	blocks := make([]string, 0, len(cases))

	for i, c := range cases {
		var sb strings.Builder
		fmt.Fprintf(&sb, "%d. %s / %s\n", i+1, c.Brand, c.CampaignName)
		sb.WriteString(c.Summary + "\n")
		sb.WriteString(l.kpi + ":\n")
		for _, m := range c.Metrics {
			sb.WriteString(formatMetricLine(m) + "\n")
		}
		if includeSources && len(c.Sources) > 0 {
			fmt.Fprintf(&sb, "%s: %s\n", l.sources, strings.Join(c.Sources, ", "))
		}
		blocks = append(blocks, strings.TrimRight(sb.String(), "\n"))
	}

	return strings.Join(blocks, "\n\n")
}

// buildBlocks 构造 Block Kit 载荷：1 个标题块 + 每案例 1 个正文块。
// 总块数受频道硬上限约束，超出的案例只在纯文本摘要与返回结果中保留。
func buildBlocks(cases []model.EnrichedCase, lang string) []slack.Block {
	l := localize(lang)
	blocks := []slack.Block{slack.HeaderBlock(l.title)}

	for i, c := range cases {
		if len(blocks) >= slack.MaxBlocks {
			break
		}
		kpis := make([]string, 0, len(c.Metrics))
		for _, m := range c.Metrics {
			kpis = append(kpis, fmt.Sprintf("%s: %s", m.Name, m.Value))
		}
		text := fmt.Sprintf("*%d. %s / %s*\n%s\n%s", i+1, c.Brand, c.CampaignName, c.Summary, strings.Join(kpis, " / "))
		blocks = append(blocks, slack.SectionBlock(text))
	}

	return blocks
}

// summarize 第三阶段：渲染摘要并投递通知。不调用模型。
// 未配置 Webhook 不是错误，降级为仅生成摘要；投递失败原样上抛。
func summarize(ctx context.Context, notifier *slack.Client, eo *model.EnrichOutput) (*model.Result, error) {
	result := &model.Result{
		Summary: renderSummary(eo.Cases, eo.Language, eo.IncludeSources),
		Cases:   eo.Cases,
	}

	if !notifier.Configured() {
		logger.Log.Warn("未配置 Slack Webhook，跳过通知投递")
		return result, nil
	}

	payload := slack.Payload{
		Text:   result.Summary,
		Blocks: buildBlocks(eo.Cases, eo.Language),
	}
	if err := notifier.Post(ctx, payload); err != nil {
		return nil, err
	}

	result.SentToSlack = true
	logger.Log.Infof("通知已投递: %d 个 Block", len(payload.Blocks))

	return result, nil
}
