// Package schema 声明各阶段边界的 JSON Schema，并提供本地校验。
// 即使模型侧开启了结构化输出，返回值也要在这里再过一遍。
package schema

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// caseProperties 基础案例字段，两个阶段共用
const caseProperties = `
	"brand":        {"type": "string", "minLength": 1},
	"campaignName": {"type": "string", "minLength": 1},
	"geography":    {"type": "string", "minLength": 1},
	"summary":      {"type": "string", "minLength": 1},
	"timeframe":    {"type": "string"},
	"productFocus": {"type": "string"},
	"offerType":    {"type": "string"},
	"influencers": {
		"type": "array",
		"minItems": 1,
		"items": {
			"type": "object",
			"required": ["name"],
			"properties": {
				"name":        {"type": "string", "minLength": 1},
				"platform":    {"type": "string"},
				"handle":      {"type": "string"},
				"followers":   {"type": "string"},
				"positioning": {"type": "string"}
			}
		}
	},
	"sources": {
		"type": "array",
		"minItems": 1,
		"items": {"type": "string", "minLength": 1}
	}`

// CaseList 第一阶段返回的案例列表信封：1 到 6 条案例
func CaseList() string {
	return fmt.Sprintf(`{
	"type": "object",
	"required": ["cases"],
	"properties": {
		"cases": {
			"type": "array",
			"minItems": 1,
			"maxItems": 6,
			"items": {
				"type": "object",
				"required": ["brand", "campaignName", "geography", "summary", "influencers"],
				"properties": {%s}
			}
		}
	}
}`, caseProperties)
}

// EnrichedCaseList 第二阶段返回的信封：案例数不设上限，每条至少一项指标。
// currencyNullable 对应两个流水线变体对 currency 可空性的分歧。
func EnrichedCaseList(currencyNullable bool) string {
	currencyType := `{"type": "string"}`
	if currencyNullable {
		currencyType = `{"type": ["string", "null"]}`
	}

	return fmt.Sprintf(`{
	"type": "object",
	"required": ["cases"],
	"properties": {
		"cases": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["brand", "campaignName", "geography", "summary", "influencers", "metrics"],
				"properties": {%s,
					"metrics": {
						"type": "array",
						"minItems": 1,
						"items": {
							"type": "object",
							"required": ["name", "value"],
							"properties": {
								"name":      {"type": "string", "minLength": 1},
								"value":     {"type": "string", "minLength": 1},
								"currency":  %s,
								"timeframe": {"type": "string"},
								"note":      {"type": "string"}
							}
						}
					}
				}
			}
		}
	}
}`, caseProperties, currencyType)
}

// Validate 用指定 Schema 校验一段 JSON 文档，不通过时汇总全部违例
func Validate(doc []byte, schemaDoc string) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaDoc)
	documentLoader := gojsonschema.NewBytesLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation failed to run: %w", err)
	}

	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return fmt.Errorf("schema violations: %s", strings.Join(msgs, "; "))
	}

	return nil
}
