// Package pipeline 固定三阶段的市场调查流水线：
// 案例收集 → 指标补充 → 摘要与通知。顺序执行，无分支无并发。
package pipeline

import (
	"context"

	"github.com/iWorld-y/market_radar/internal/errs"
	"github.com/iWorld-y/market_radar/internal/llm"
	"github.com/iWorld-y/market_radar/internal/logger"
	"github.com/iWorld-y/market_radar/internal/model"
	"github.com/iWorld-y/market_radar/internal/slack"
)

// State 流水线状态
type State int

const (
	StateCollecting State = iota
	StateEnriching
	StateSummarizing
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateCollecting:
		return "collecting"
	case StateEnriching:
		return "enriching"
	case StateSummarizing:
		return "summarizing"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal 是否终态
func (s State) Terminal() bool {
	return s == StateSucceeded || s == StateFailed
}

// Pipeline 一条参数化流水线。依赖在启动时注入，运行期间只读，
// 多个 Run 并发执行时互不共享可变状态。
type Pipeline struct {
	variant  Variant
	adapter  *llm.Adapter
	notifier *slack.Client
}

// New 组装流水线
func New(v Variant, ad *llm.Adapter, notifier *slack.Client) *Pipeline {
	return &Pipeline{variant: v, adapter: ad, notifier: notifier}
}

// Run 执行一次完整扫描。任一阶段失败即整体失败，错误原样上抛，
// 不返回部分结果；状态机未落到终态按挂起处理。
func (p *Pipeline) Run(ctx context.Context, in model.Input) (*model.Result, error) {
	run, err := in.Normalize(p.variant.Defaults)
	if err != nil {
		return nil, err
	}

	logger.Log.Infof("开始市场调查扫描 [%s]: keyword=%q geography=%q min=%d lang=%s",
		p.variant.Name, run.FocusKeyword, run.Geography, run.MinExamples, run.Language)

	var (
		state  = StateCollecting
		co     *model.CollectOutput
		eo     *model.EnrichOutput
		result *model.Result
		runErr error
	)

	for !state.Terminal() {
		logger.Log.Debugf("流水线状态: %s", state)

		switch state {
		case StateCollecting:
			co, runErr = collectCases(ctx, p.adapter, p.variant, run)
			if runErr != nil {
				state = StateFailed
				break
			}
			state = StateEnriching

		case StateEnriching:
			eo, runErr = enrichCases(ctx, p.adapter, p.variant, co)
			if runErr != nil {
				state = StateFailed
				break
			}
			state = StateSummarizing

		case StateSummarizing:
			result, runErr = summarize(ctx, p.notifier, eo)
			if runErr != nil {
				state = StateFailed
				break
			}
			state = StateSucceeded

		default:
			// 不可预期的控制流状态，按挂起处理
			return nil, errs.NewSuspended(state.String())
		}
	}

	if state == StateFailed {
		logger.Log.Errorf("扫描失败: %v", runErr)
		return nil, runErr
	}
	if result == nil {
		return nil, errs.NewSuspended(state.String())
	}

	logger.Log.Infof("扫描完成: %d 个案例, sentToSlack=%v", len(result.Cases), result.SentToSlack)
	return result, nil
}
