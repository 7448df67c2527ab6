package models

// ErrorInfo 存储了关于错误的结构化信息。
type ErrorInfo struct {
	Message string `json:"message"`
	Type    string `json:"type,omitempty"` // 错误的类型，例如 "store_error", "agent_error"
}
