// Package assistant calls an OpenAI-compatible chat completions
// endpoint to produce the room assistant's replies.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const defaultSystemPrompt = "你是一个名叫“川小农”的AI助手，你是四川农业大学的专属助手。" +
	"你热爱四川农业大学，对学校的历史、文化、校园生活非常了解。你的回答风格应该是热情、友好、积极向上的。" +
	"当用户询问其他大学时，请委婉地拒绝回答，并将话题引导回四川农业大学。"

// Config configures the chat completions endpoint and HTTP behavior.
type Config struct {
	BaseURL      string
	APIKey       string
	Model        string
	SystemPrompt string
	MaxTokens    int
	Temperature  float64
	HTTPClient   *http.Client

	// DeflectKeywords short-circuit the API call with DeflectReply.
	DeflectKeywords []string
	DeflectReply    string
	// NoticeKeywords trigger the bulletin template instead of the API.
	NoticeKeywords []string
}

// Client is an assistant backed by a chat completions API.
type Client struct {
	cfg Config
}

// New builds an assistant client, applying defaults for unset fields.
func New(cfg Config) *Client {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = "https://api.siliconflow.cn/v1"
	}
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = defaultSystemPrompt
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 300
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.7
	}
	if cfg.DeflectKeywords == nil {
		cfg.DeflectKeywords = []string{"清华", "北大", "复旦", "交大", "浙大", "电子科大", "川大", "西南交大"}
	}
	if cfg.DeflectReply == "" {
		cfg.DeflectReply = "🙄"
	}
	if cfg.NoticeKeywords == nil {
		cfg.NoticeKeywords = []string{"活动通知", "生成通知"}
	}
	return &Client{cfg: cfg}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Reply produces the assistant's answer for a query. Local rules run
// first; only queries they do not cover reach the API.
func (c *Client) Reply(ctx context.Context, query string) (string, error) {
	if reply, ok := c.localReply(query); ok {
		return reply, nil
	}

	body, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: c.cfg.SystemPrompt},
			{Role: "user", Content: query},
		},
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode chat request: %w", err)
	}

	url := strings.TrimSuffix(c.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat completions call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("chat completions returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode chat response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("chat completions returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

// localReply applies the rule table that predates the API integration.
func (c *Client) localReply(query string) (string, bool) {
	for _, keyword := range c.cfg.DeflectKeywords {
		if strings.Contains(query, keyword) {
			return c.cfg.DeflectReply, true
		}
	}

	for _, keyword := range c.cfg.NoticeKeywords {
		if strings.Contains(query, keyword) {
			return c.noticeReply(query), true
		}
	}

	return "", false
}

func (c *Client) noticeReply(query string) string {
	content := query
	content = strings.ReplaceAll(content, "生成活动通知", "")
	content = strings.ReplaceAll(content, "活动通知", "")
	content = strings.TrimSpace(content)

	return fmt.Sprintf(`
📢 **【川农活动通知】** 📢

同学你好！你需要的活动通知已生成：

----------------------------------
%s
----------------------------------

欢迎各位川农学子踊跃参加！
🌾 369，川农牛！ 🌾
`, content)
}
