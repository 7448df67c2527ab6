package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AppInfo 包含应用程序的基本信息。
type AppInfo struct {
	Name    string `yaml:"name"`    // 应用程序名称
	Version string `yaml:"version"` // 应用程序版本
}

// LoggerConfig 定义了日志记录器的配置。
type LoggerConfig struct {
	Level string `yaml:"level"` // 日志级别 (例如: "debug", "info", "warn", "error")
}

// Neo4jConfig 定义了 Neo4j 图数据库的连接配置。
// Uri、Username、Password 三项为必填，没有默认值。
type Neo4jConfig struct {
	Uri      string `yaml:"uri"`      // Neo4j 数据库URI (例如: "bolt://localhost:7687")
	Username string `yaml:"username"` // 用户名
	Password string `yaml:"password"` // 密码
	Database string `yaml:"database"` // 数据库名称
}

// RedisConfig 定义了 Redis 数据库的连接配置。
type RedisConfig struct {
	Address  string `yaml:"address"`  // Redis 服务器地址 (例如: "localhost:6379")
	Password string `yaml:"password"` // Redis 密码
	DB       int    `yaml:"db"`       // Redis 数据库编号
	SeenTTL  int    `yaml:"seenTTL"`  // 已采集文档标记的过期时间 (秒, 0 表示永不过期)
}

// KafkaConfig 定义了 Kafka 消息队列的连接配置。
type KafkaConfig struct {
	Brokers       []string `yaml:"brokers"`       // Kafka Broker 地址列表
	DocumentTopic string   `yaml:"documentTopic"` // 原始文档主题
	GroupID       string   `yaml:"groupID"`       // 消费者组ID
}

// DatabaseConfigs 汇总了所有数据库的配置。
type DatabaseConfigs struct {
	Neo4j Neo4jConfig `yaml:"neo4j"` // Neo4j 配置
	Redis RedisConfig `yaml:"redis"` // Redis 配置
	Kafka KafkaConfig `yaml:"kafka"` // Kafka 配置
}

// ModelConfig 描述单个 LLM 模型。
type ModelConfig struct {
	Name    string `yaml:"name"`    // 模型名称
	APIKey  string `yaml:"apiKey"`  // API 密钥
	BaseURL string `yaml:"baseURL"` // 服务地址 (ollama 等本地服务使用)
}

// LLMConfig 包含了不同LLM提供商的配置。
type LLMConfig struct {
	Provider string        `yaml:"provider"` // LLM提供商 (例如: "openai", "ollama")
	Models   []ModelConfig `yaml:"models"`   // 模型列表，第一个为默认模型
}

// AgentConfig 定义了单个数据源 Agent 的配置。
type AgentConfig struct {
	Name       string `yaml:"name"`       // Agent 名称 (例如: "gdelt")
	Enabled    bool   `yaml:"enabled"`    // 是否启用
	MaxRecords int    `yaml:"maxRecords"` // 单次采集的最大记录数
	Query      string `yaml:"query"`      // 源相关的查询表达式 (可选)
	APIKey     string `yaml:"apiKey"`     // API 密钥 (需要认证的源使用)
}

// RateLimiterConfig 定义了限流器的配置。
type RateLimiterConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Algorithm string  `yaml:"algorithm"` // 支持: "tokenBucket", "leakyBucket"
	Rate      float64 `yaml:"rate"`      // 每秒生成的令牌数 / 漏出速率
	Capacity  int     `yaml:"capacity"`  // 桶容量
}

// CircuitBreakerConfig 定义了熔断器的配置。
type CircuitBreakerConfig struct {
	Enabled          bool   `yaml:"enabled"`
	FailureThreshold uint32 `yaml:"failureThreshold"` // 连续失败多少次后熔断
	SuccessThreshold uint32 `yaml:"successThreshold"` // 半开状态连续成功多少次后恢复
	Timeout          string `yaml:"timeout"`          // 熔断后多久进入半开状态 (例如: "30s")
}

// MiddlewareConfig 包含出站 HTTP 客户端的保护性中间件配置。
type MiddlewareConfig struct {
	RateLimiter    RateLimiterConfig    `yaml:"rateLimiter"`
	CircuitBreaker CircuitBreakerConfig `yaml:"circuitBreaker"`
}

// AppConfig 是应用程序的顶层配置。
type AppConfig struct {
	App        AppInfo          `yaml:"app"`        // 应用程序信息
	Logger     LoggerConfig     `yaml:"logger"`     // 日志记录器配置
	LLM        LLMConfig        `yaml:"llm"`        // LLM 配置
	Databases  DatabaseConfigs  `yaml:"databases"`  // 数据库配置
	Agents     []AgentConfig    `yaml:"agents"`     // 数据源 Agent 配置
	Middleware MiddlewareConfig `yaml:"middleware"` // 中间件配置
}

// LoadConfig 从指定路径读取并解析 YAML 配置文件。
func LoadConfig(path string) (*AppConfig, error) {
	yamlFile, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("无法读取 YAML 文件 '%s': %w", path, err)
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(yamlFile, &cfg); err != nil {
		return nil, fmt.Errorf("解析 YAML 文件失败: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate 检查没有默认值的必填项。
func (c *AppConfig) validate() error {
	neo := c.Databases.Neo4j
	if neo.Uri == "" || neo.Username == "" || neo.Password == "" {
		return fmt.Errorf("配置缺少必填项: databases.neo4j 的 uri/username/password")
	}
	return nil
}
