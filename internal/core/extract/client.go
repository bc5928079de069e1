package extract

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"recipe-grocery/internal/infrastructure/config"
	"recipe-grocery/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// maxLoggedBody 錯誤日誌中保留的回應長度
const maxLoggedBody = 512

const systemPrompt = `You extract ingredient lines from recipe captions.
Return only a JSON object of the form {"ingredients": ["line", ...]}.
Copy each ingredient line as written, including quantity and unit.
Do not translate, merge, or invent ingredients. Return {"ingredients": []} when none are present.`

// Message 消息結構
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request chat completion 請求
type Request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature"`
}

// Response OpenRouter 響應結構
type Response struct {
	ID      string    `json:"id"`
	Choices []Choice  `json:"choices"`
	Usage   UsageInfo `json:"usage"`
}

// Choice 選擇結構
type Choice struct {
	Message Message `json:"message"`
}

// UsageInfo 使用量信息
type UsageInfo struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ingredientPayload 模型回覆的 JSON 內容
type ingredientPayload struct {
	Ingredients []string `json:"ingredients"`
}

// OpenRouterClient 透過 OpenRouter 從說明文字擷取食材行
type OpenRouterClient struct {
	client    *resty.Client
	model     string
	maxTokens int
}

// NewOpenRouterClient 創建 OpenRouter 客戶端
func NewOpenRouterClient(cfg config.OpenRouterConfig) *OpenRouterClient {
	client := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.APIKey)).
		SetHeader("HTTP-Referer", "https://recipe-grocery.app").
		SetHeader("X-Title", "Recipe Grocery")

	return &OpenRouterClient{
		client:    client,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}
}

// ExtractLines 將說明文字送給模型，回傳食材行
func (c *OpenRouterClient) ExtractLines(ctx context.Context, caption string) ([]string, error) {
	req := Request{
		Model: c.model,
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: caption},
		},
		MaxTokens:   c.maxTokens,
		Temperature: 0,
	}

	common.LogDebug("Sending request to OpenRouter",
		zap.String("model", c.model),
		zap.Int("caption_length", len(caption)),
	)

	var result Response
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		Post("/chat/completions")
	if err != nil {
		if ctx.Err() != nil {
			return nil, common.ErrGatewayTimeout.Wrap(err)
		}
		return nil, common.ErrExtractFailed.Wrap(fmt.Errorf("failed to send request to OpenRouter: %w", err))
	}

	if resp.StatusCode() != http.StatusOK {
		common.LogError("OpenRouter returned error status",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("model", c.model),
			zap.String("response", truncateBody(resp.String())),
		)
		return nil, common.ErrExtractFailed.Wrap(fmt.Errorf("OpenRouter API returned status %d", resp.StatusCode()))
	}

	if len(result.Choices) == 0 {
		return nil, common.ErrExtractFailed.Wrap(fmt.Errorf("no choices in OpenRouter response"))
	}

	lines, err := parseIngredientContent(result.Choices[0].Message.Content)
	if err != nil {
		common.LogError("Failed to parse OpenRouter content",
			zap.Error(err),
			zap.String("model", c.model),
			zap.String("response", truncateBody(result.Choices[0].Message.Content)),
		)
		return nil, common.ErrExtractFailed.Wrap(err)
	}

	common.LogDebug("OpenRouter extraction succeeded",
		zap.String("model", c.model),
		zap.Int("lines", len(lines)),
		zap.Int("total_tokens", result.Usage.TotalTokens),
	)
	return lines, nil
}

// parseIngredientContent 從模型回覆取出食材行；鍵未加引號時嘗試修復一次
func parseIngredientContent(content string) ([]string, error) {
	raw, ok := common.ExtractJSONObject(content)
	if !ok {
		return nil, fmt.Errorf("no JSON object in model content")
	}

	var payload ingredientPayload
	if err := common.ParseJSON(raw, &payload); err != nil {
		if retryErr := common.ParseJSON(common.QuoteJSONKeys(raw), &payload); retryErr != nil {
			return nil, fmt.Errorf("failed to decode ingredients: %w", err)
		}
	}
	return common.NonEmptyLines(payload.Ingredients), nil
}

func truncateBody(body string) string {
	if len(body) <= maxLoggedBody {
		return body
	}
	return body[:maxLoggedBody] + "...(truncated)"
}

// Close 關閉閒置連線
func (c *OpenRouterClient) Close() {
	c.client.GetClient().CloseIdleConnections()
}

