package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/market_radar/internal/config"
	"github.com/iWorld-y/market_radar/internal/llm"
	"github.com/iWorld-y/market_radar/internal/logger"
	"github.com/iWorld-y/market_radar/internal/model"
	"github.com/iWorld-y/market_radar/internal/pipeline"
	"github.com/iWorld-y/market_radar/internal/slack"
)

func main() {
	var (
		configPath  = flag.String("config", "", "配置文件路径（可选，环境变量优先）")
		keyword     = flag.String("keyword", "", "调查关键词（必填）")
		geography   = flag.String("geo", "", "调查地域")
		minExamples = flag.Int("min", 0, "最少案例数 (1-6)")
		language    = flag.String("lang", "", "输出语言 ja/en")
		metrics     = flag.String("metrics", "", "关注的KPI，逗号分隔")
		noSources   = flag.Bool("no-sources", false, "摘要中不附带参照元URL")
		variantName = flag.String("variant", pipeline.VariantGeneral.Name, "流水线变体 general/influencer_jp")
	)
	flag.Parse()

	// 1. 加载 .env 与配置
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("无法加载配置: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("配置错误: %v", err)
	}

	// 2. 初始化日志
	if err := logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		log.Fatalf("无法初始化日志: %v", err)
	}
	logger.Log.Info("启动市场雷达...")

	variant, ok := pipeline.Variants[*variantName]
	if !ok {
		logger.Log.Fatalf("未知的流水线变体: %s", *variantName)
	}

	ctx := context.Background()

	// 3. 初始化限流器
	limit := rate.Limit(float64(cfg.Concurrency.RPM) / 60.0)
	limiter := rate.NewLimiter(limit, cfg.Concurrency.QPS)

	// 4. 初始化 LLM 适配器
	capability := llm.ResolveCapability(cfg.LLM.Model, variant.GPT5TextMode)
	logger.Log.Infof("模型 %s 能力: %s", cfg.LLM.Model, capability)

	adapter, err := llm.NewAdapter(ctx, &cfg.LLM, capability, limiter)
	if err != nil {
		logger.Log.Fatalf("LLM 初始化失败: %v", err)
	}

	// 5. 初始化 Slack 客户端
	notifier := slack.NewClient(cfg.Slack.WebhookURL, cfg.Slack.Username)
	if !notifier.Configured() {
		logger.Log.Info("未配置 Slack Webhook，结果仅输出到本地")
	}

	// 6. 组装输入并执行
	input := model.Input{
		FocusKeyword: *keyword,
		Geography:    *geography,
		MinExamples:  *minExamples,
		Language:     *language,
	}
	if *metrics != "" {
		for _, m := range strings.Split(*metrics, ",") {
			if mm := strings.TrimSpace(m); mm != "" {
				input.MetricFocus = append(input.MetricFocus, mm)
			}
		}
	}
	if *noSources {
		include := false
		input.IncludeSources = &include
	}

	result, err := pipeline.New(variant, adapter, notifier).Run(ctx, input)
	if err != nil {
		logger.Log.Fatalf("扫描失败: %v", err)
	}

	fmt.Fprintln(os.Stdout, result.Summary)
	logger.Log.Infof("✅ 市场调查完成: %d 个案例, sentToSlack=%v", len(result.Cases), result.SentToSlack)
}
