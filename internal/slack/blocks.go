package slack

// MaxBlocks Slack 单条消息的 Block 数量硬上限
const MaxBlocks = 50

// TextObject Block 内的文本对象
type TextObject struct {
	Type  string `json:"type"` // plain_text 或 mrkdwn
	Text  string `json:"text"`
	Emoji bool   `json:"emoji,omitempty"`
}

// Block Block Kit 消息单元
type Block struct {
	Type string      `json:"type"` // header 或 section
	Text *TextObject `json:"text,omitempty"`
}

// HeaderBlock 构造标题块
func HeaderBlock(text string) Block {
	return Block{
		Type: "header",
		Text: &TextObject{Type: "plain_text", Text: text, Emoji: true},
	}
}

// SectionBlock 构造正文块（mrkdwn）
func SectionBlock(markdown string) Block {
	return Block{
		Type: "section",
		Text: &TextObject{Type: "mrkdwn", Text: markdown},
	}
}

// Payload Incoming Webhook 请求体。Text 为纯文本兜底。
type Payload struct {
	Text     string  `json:"text"`
	Blocks   []Block `json:"blocks,omitempty"`
	Username string  `json:"username,omitempty"`
}
