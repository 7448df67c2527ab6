package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Sportinger/argus/internal/models"
	olla "github.com/ollama/ollama/api"
)

// Ollama 是一个用于 Ollama API 的 LLM 客户端。
type Ollama struct {
	client *olla.Client // Ollama 客户端实例。
	model  string       // 要使用的模型名称。
}

// NewOllama 创建一个新的 Ollama 客户端。
// baseURL 为空时默认为 "http://localhost:11434"。
func NewOllama(model, baseURL string) (*Ollama, error) {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	// 创建一个带有超时设置的 HTTP 客户端。
	hc := &http.Client{
		Timeout: 120 * time.Second,
	}

	client := olla.NewClient(parsedURL, hc)

	return &Ollama{client: client, model: model}, nil
}

// GenerateContent 使用 Ollama API 生成内容。
func (o *Ollama) GenerateContent(ctx context.Context, req *models.GenerateContentRequest) (*models.GenerateContentResponse, error) {
	prompt := o.toOllamaPrompt(req)

	var result *olla.GenerateResponse

	stream := false
	err := o.client.Generate(ctx, &olla.GenerateRequest{
		Model:  o.model,
		Prompt: prompt,
		Stream: &stream,
	}, func(resp olla.GenerateResponse) error {
		result = &resp
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate content with ollama: %w", err)
	}
	if result == nil {
		return nil, fmt.Errorf("ollama returned no response")
	}

	return &models.GenerateContentResponse{
		ModelVersion: o.model,
		Content: []models.Content{
			{
				Role:  models.SpeakerModel,
				Parts: []*models.Part{{Text: result.Response}},
			},
		},
	}, nil
}

// toOllamaPrompt 将内部请求转换为单个提示字符串。
func (o *Ollama) toOllamaPrompt(req *models.GenerateContentRequest) string {
	var sb strings.Builder
	for _, content := range req.Content {
		for _, part := range content.Parts {
			if part.Text == "" {
				continue
			}
			sb.WriteString(part.Text)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
