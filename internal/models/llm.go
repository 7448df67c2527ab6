package models

// SpeakerRole 定义了消息发送者的角色。
type SpeakerRole string

const (
	SpeakerUser  SpeakerRole = "user"  // 用户角色。
	SpeakerModel SpeakerRole = "model" // 模型角色。
)

// Content 包含了构成单个消息的多个部分。
type Content struct {
	Parts []*Part     `json:"parts,omitempty"`
	Role  SpeakerRole `json:"role,omitempty"`
}

// Part 定义了消息的单个部分。抽取流水线只使用文本部分。
type Part struct {
	Text string `json:"text,omitempty"`
}

// GenerateContentRequest 定义了生成内容的请求结构。
type GenerateContentRequest struct {
	Content []Content `json:"content,omitempty"`
}

// GenerateContentResponse 定义了生成内容的响应结构。
type GenerateContentResponse struct {
	Content      []Content `json:"content,omitempty"`
	ModelVersion string    `json:"modelVersion,omitempty"`
}
