package slack

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/market_radar/internal/errs"
)

func TestBlockConstructors(t *testing.T) {
	h := HeaderBlock("市場調査レポート")
	assert.Equal(t, "header", h.Type)
	assert.Equal(t, "plain_text", h.Text.Type)
	assert.Equal(t, "市場調査レポート", h.Text.Text)

	s := SectionBlock("*Shiseido / Beauty AI Lab*")
	assert.Equal(t, "section", s.Type)
	assert.Equal(t, "mrkdwn", s.Text.Type)
}

func TestConfigured(t *testing.T) {
	assert.False(t, NewClient("", "").Configured())
	assert.True(t, NewClient("https://hooks.slack.com/services/T/B/X", "").Configured())

	var nilClient *Client
	assert.False(t, nilClient.Configured())
}

func TestPostDeliversPayload(t *testing.T) {
	var got Payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "market-radar")
	payload := Payload{
		Text:   "fallback text",
		Blocks: []Block{HeaderBlock("タイトル"), SectionBlock("本文")},
	}
	require.NoError(t, client.Post(context.Background(), payload))

	assert.Equal(t, "fallback text", got.Text)
	require.Len(t, got.Blocks, 2)
	// 客户端缺省用户名自动补齐
	assert.Equal(t, "market-radar", got.Username)
}

func TestPostKeepsExplicitUsername(t *testing.T) {
	var got Payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "default-name")
	require.NoError(t, client.Post(context.Background(), Payload{Text: "x", Username: "explicit"}))
	assert.Equal(t, "explicit", got.Username)
}

func TestPostFailsOnNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid_payload", http.StatusBadRequest)
	}))
	defer srv.Close()

	err := NewClient(srv.URL, "").Post(context.Background(), Payload{Text: "x"})
	require.Error(t, err)
	assert.True(t, errs.IsUpstream(err))
	assert.Contains(t, err.Error(), "invalid_payload")
}

func TestPostWithoutWebhookIsError(t *testing.T) {
	err := NewClient("", "").Post(context.Background(), Payload{Text: "x"})
	require.Error(t, err)
	assert.True(t, errs.IsUpstream(err))
}
