package llm

import "strings"

// Capability 模型能力标签，决定适配器取结构化输出还是纯文本再解析
type Capability int

const (
	// StructuredCapable 模型侧可约束输出为 JSON
	StructuredCapable Capability = iota
	// TextOnly 只能自由生成文本，由适配器解析并校验
	TextOnly
)

func (c Capability) String() string {
	if c == TextOnly {
		return "text_only"
	}
	return "structured_capable"
}

// ResolveCapability 由模型名解析能力标签，进程启动时解析一次。
// 带检索功能的模型（名字含 search）不支持结构化输出；
// gpt5TextMode 打开时 gpt-5 系列同样走文本模式（两个流水线变体在此存在分歧）。
func ResolveCapability(modelName string, gpt5TextMode bool) Capability {
	if strings.Contains(modelName, "search") {
		return TextOnly
	}
	if gpt5TextMode && strings.HasPrefix(modelName, "gpt-5") {
		return TextOnly
	}
	return StructuredCapable
}
