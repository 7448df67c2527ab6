package llm

import (
	"context"
	"fmt"

	"github.com/Sportinger/argus/internal/config"
	"github.com/Sportinger/argus/internal/models"
)

// LLM 定义了所有大型语言模型客户端必须实现的通用接口。
// 抽取流水线把模型当作不透明函数使用：文本进，文本出。
type LLM interface {
	GenerateContent(ctx context.Context, req *models.GenerateContentRequest) (*models.GenerateContentResponse, error)
}

// NewClient 是一个工厂函数，根据提供的配置创建并返回一个实现了 LLM 接口的客户端。
func NewClient(cfg config.LLMConfig) (LLM, error) {
	if len(cfg.Models) == 0 {
		return nil, fmt.Errorf("no model configured for provider: %s", cfg.Provider)
	}
	model := cfg.Models[0]

	switch cfg.Provider {
	case "openai":
		return NewOpenAI(model.Name, model.APIKey)
	case "ollama":
		return NewOllama(model.Name, model.BaseURL)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
