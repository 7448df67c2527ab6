package neo4j

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/Sportinger/argus/internal/config"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

var (
	instance *Neo4jClient
	once     sync.Once
	initErr  error
)

// Neo4jClient 包含了 Neo4j 驱动实例和从 YAML 加载的相关配置。
// 驱动内部管理连接池；每次操作都在一个独立的 session 中执行，
// session 在操作结束时（无论成败）被确定性地释放。
type Neo4jClient struct {
	Driver neo4j.DriverWithContext // Neo4j 驱动实例。
	Config *config.Neo4jConfig     // Neo4j 配置。
}

// GetClient 使用单例模式创建并返回一个新的 Neo4j 驱动实例。
func GetClient(ctx context.Context, cfg *config.Neo4jConfig) (*Neo4jClient, error) {
	once.Do(func() {
		// 使用用户名和密码创建认证 token。
		auth := neo4j.BasicAuth(cfg.Username, cfg.Password, "")

		driver, err := neo4j.NewDriverWithContext(cfg.Uri, auth)
		if err != nil {
			initErr = fmt.Errorf("无法创建 Neo4j 驱动: %w", err)
			return
		}

		// 验证与数据库的连接是否成功。
		if err := driver.VerifyConnectivity(ctx); err != nil {
			driver.Close(ctx) // 如果验证失败，需要关闭已创建的驱动以释放资源。
			initErr = fmt.Errorf("无法连接到 Neo4j 数据库: %w", err)
			return
		}

		log.Println("✅ 成功连接到 Neo4j!")
		instance = &Neo4jClient{Driver: driver, Config: cfg}
	})
	return instance, initErr
}

// Close 安全地关闭与 Neo4j 的连接。
func (c *Neo4jClient) Close(ctx context.Context) {
	if c.Driver != nil {
		if err := c.Driver.Close(ctx); err != nil {
			log.Printf("关闭 Neo4j 驱动失败: %v", err)
		}
	}
}

// HealthCheck 检查 Neo4j 连接的健康状况。
func (c *Neo4jClient) HealthCheck(ctx context.Context) error {
	return c.Driver.VerifyConnectivity(ctx)
}

// Run 在一个写会话中执行单条参数化 Cypher 语句并等待其完成。
// 结果在会话关闭前被消费完毕。
func (c *Neo4jClient) Run(ctx context.Context, query string, params map[string]interface{}) error {
	session := c.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: c.Config.Database,
	})
	defer session.Close(ctx)

	result, err := session.Run(ctx, query, params)
	if err != nil {
		return fmt.Errorf("failed to run Cypher query: %w", err)
	}
	if _, err := result.Consume(ctx); err != nil {
		return fmt.Errorf("failed to consume Cypher result: %w", err)
	}
	return nil
}

// Collect 在一个读会话中执行单条参数化 Cypher 语句，
// 并把所有记录收集为扁平的 map 序列。
func (c *Neo4jClient) Collect(ctx context.Context, query string, params map[string]interface{}) ([]map[string]interface{}, error) {
	session := c.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: c.Config.Database,
	})
	defer session.Close(ctx)

	result, err := session.Run(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to run Cypher read query: %w", err)
	}

	records, err := result.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to collect Cypher records: %w", err)
	}

	rows := make([]map[string]interface{}, 0, len(records))
	for _, record := range records {
		rows = append(rows, record.AsMap())
	}
	return rows, nil
}
