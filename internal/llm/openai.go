package llm

import (
	"context"
	"fmt"

	"github.com/Sportinger/argus/internal/models"
	openai "github.com/meguminnnnnnnnn/go-openai"
)

// OpenAI 是一个用于 OpenAI API 的 LLM 客户端。
type OpenAI struct {
	client *openai.Client // OpenAI 客户端实例。
	model  string         // 要使用的模型名称。
}

// NewOpenAI 创建一个新的 OpenAI 客户端。
func NewOpenAI(model string, apiKey string) (*OpenAI, error) {
	config := openai.DefaultConfig(apiKey)
	client := openai.NewClientWithConfig(config)
	return &OpenAI{
		client: client,
		model:  model,
	}, nil
}

// GenerateContent 使用 OpenAI API 生成内容。
func (o *OpenAI) GenerateContent(ctx context.Context, req *models.GenerateContentRequest) (*models.GenerateContentResponse, error) {
	resp, err := o.client.CreateChatCompletion(ctx, o.toOpenAIRequest(req))
	if err != nil {
		return nil, fmt.Errorf("failed to create chat completion: %w", err)
	}

	return o.toGenerateContentResponse(&resp), nil
}

// toOpenAIRequest 将我们的内部请求格式转换为 OpenAI 格式。
func (o *OpenAI) toOpenAIRequest(req *models.GenerateContentRequest) openai.ChatCompletionRequest {
	var messages []openai.ChatCompletionMessage
	for _, content := range req.Content {
		role := openai.ChatMessageRoleUser
		if content.Role == models.SpeakerModel {
			role = openai.ChatMessageRoleAssistant
		}
		for _, part := range content.Parts {
			if part.Text == "" {
				continue
			}
			messages = append(messages, openai.ChatCompletionMessage{
				Role:    role,
				Content: part.Text,
			})
		}
	}

	return openai.ChatCompletionRequest{
		Model:    o.model,
		Messages: messages,
	}
}

// toGenerateContentResponse 将 OpenAI 响应转换为内部响应格式。
func (o *OpenAI) toGenerateContentResponse(resp *openai.ChatCompletionResponse) *models.GenerateContentResponse {
	out := &models.GenerateContentResponse{
		ModelVersion: resp.Model,
	}
	for _, choice := range resp.Choices {
		out.Content = append(out.Content, models.Content{
			Role:  models.SpeakerModel,
			Parts: []*models.Part{{Text: choice.Message.Content}},
		})
	}
	return out
}
