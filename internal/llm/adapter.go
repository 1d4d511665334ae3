// Package llm 把「向模型要一份符合 Schema 的数据」收敛为一个函数。
// 结构化模式依赖服务端的 response_format 约束，文本模式在提示词里
// 追加 JSON-only 指令后自行解析；两种模式的返回值都要过本地 Schema 校验。
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/openai"
	openaiacl "github.com/cloudwego/eino-ext/libs/acl/openai"
	einomodel "github.com/cloudwego/eino/components/model"
	einoschema "github.com/cloudwego/eino/schema"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/market_radar/internal/config"
	"github.com/iWorld-y/market_radar/internal/errs"
	"github.com/iWorld-y/market_radar/internal/logger"
	"github.com/iWorld-y/market_radar/internal/schema"
)

// jsonOnlyInstruction 文本模式下追加到 system 与 user 两侧的指令
const jsonOnlyInstruction = "\n\n必ず JSON オブジェクトのみで回答してください。説明文・マークダウンは不要です。(Respond with a single JSON object only, no prose, no markdown.)"

// Adapter 结构化生成适配器。内部不做重试，单次上游失败立即上抛。
type Adapter struct {
	cm         einomodel.BaseChatModel
	capability Capability
	limiter    *rate.Limiter
}

// NewAdapter 按能力标签构造生产环境适配器。
// 结构化模式在模型侧开启 json_object 约束。
func NewAdapter(ctx context.Context, cfg *config.LLMConfig, capability Capability, limiter *rate.Limiter) (*Adapter, error) {
	mc := &openai.ChatModelConfig{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
	}
	if capability == StructuredCapable {
		mc.ResponseFormat = &openaiacl.ChatCompletionResponseFormat{
			Type: openaiacl.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	cm, err := openai.NewChatModel(ctx, mc)
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}

	return &Adapter{cm: cm, capability: capability, limiter: limiter}, nil
}

// NewAdapterWithModel 注入现成的 ChatModel，供测试替换
func NewAdapterWithModel(cm einomodel.BaseChatModel, capability Capability, limiter *rate.Limiter) *Adapter {
	return &Adapter{cm: cm, capability: capability, limiter: limiter}
}

// Capability 返回解析好的能力标签
func (a *Adapter) Capability() Capability { return a.capability }

// Generate 发起一次模型调用并把输出解析为 T。
// 上游失败返回 UpstreamError；解析或 Schema 校验失败返回 ValidationError。
func Generate[T any](ctx context.Context, a *Adapter, stage, schemaDoc, systemPrompt, userPrompt string) (*T, error) {
	if a.limiter != nil {
		if err := a.limiter.Wait(ctx); err != nil {
			return nil, errs.NewUpstream("llm", err)
		}
	}

	if a.capability == TextOnly {
		systemPrompt += jsonOnlyInstruction
		userPrompt += jsonOnlyInstruction
	}

	messages := []*einoschema.Message{
		{Role: einoschema.System, Content: systemPrompt},
		{Role: einoschema.User, Content: userPrompt},
	}

	resp, err := a.cm.Generate(ctx, messages)
	if err != nil {
		return nil, errs.NewUpstream("llm", err)
	}

	raw := resp.Content
	clean := cleanJSONContent(raw)
	logger.Log.Debugf("模型返回 [%s]: %d bytes", stage, len(clean))

	// 先确认是合法 JSON，再过 Schema
	var probe any
	if err := json.Unmarshal([]byte(clean), &probe); err != nil {
		return nil, errs.NewValidationWrap(stage, "model output is not valid JSON", raw, err)
	}

	if err := schema.Validate([]byte(clean), schemaDoc); err != nil {
		return nil, errs.NewValidationWrap(stage, "model output does not satisfy schema", raw, err)
	}

	var out T
	if err := json.Unmarshal([]byte(clean), &out); err != nil {
		return nil, errs.NewValidationWrap(stage, "model output does not fit target type", raw, err)
	}

	return &out, nil
}

// cleanJSONContent 去掉模型惯常附带的 markdown 围栏
func cleanJSONContent(content string) string {
	clean := strings.TrimSpace(content)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}
