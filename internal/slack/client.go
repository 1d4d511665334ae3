// Package slack Slack Incoming Webhook 客户端
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/iWorld-y/market_radar/internal/errs"
)

// Client Webhook 客户端。webhookURL 为空表示未配置投递目标。
type Client struct {
	webhookURL string
	username   string
	client     *http.Client
}

// NewClient 创建一个新的 Webhook 客户端
func NewClient(webhookURL, username string) *Client {
	return &Client{
		webhookURL: webhookURL,
		username:   username,
		client:     http.DefaultClient,
	}
}

// Configured 是否配置了投递目标
func (c *Client) Configured() bool {
	return c != nil && c.webhookURL != ""
}

// Post 投递一条消息。投递失败按上游错误上抛，由调用方决定成败。
func (c *Client) Post(ctx context.Context, payload Payload) error {
	if !c.Configured() {
		return errs.NewUpstream("slack", fmt.Errorf("webhook url not configured"))
	}

	if payload.Username == "" {
		payload.Username = c.username
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return errs.NewUpstream("slack", fmt.Errorf("marshal payload failed: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return errs.NewUpstream("slack", fmt.Errorf("create request failed: %w", err))
	}
	httpReq.Header.Add("Content-Type", "application/json")

	res, err := c.client.Do(httpReq)
	if err != nil {
		return errs.NewUpstream("slack", fmt.Errorf("request failed: %w", err))
	}
	defer res.Body.Close()

	respBody, err := io.ReadAll(res.Body)
	if err != nil {
		return errs.NewUpstream("slack", fmt.Errorf("read body failed: %w", err))
	}

	if res.StatusCode != http.StatusOK {
		return errs.NewUpstream("slack", fmt.Errorf("webhook error (status %d): %s", res.StatusCode, string(respBody)))
	}

	return nil
}
