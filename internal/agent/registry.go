package agent

import (
	"context"
	"sync"

	"github.com/Sportinger/argus/internal/models"
)

// LocalRegistry 在内存中存储和管理 Agent 实例。
type LocalRegistry struct {
	agents map[string]Agent
	order  []string // 保持注册顺序，便于确定性的遍历
	mutex  sync.RWMutex
}

// NewLocalRegistry 创建一个新的本地注册表实例。
func NewLocalRegistry() *LocalRegistry {
	return &LocalRegistry{
		agents: make(map[string]Agent),
	}
}

// Register 将一个 Agent 实例添加到注册表。
func (r *LocalRegistry) Register(agent Agent) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if _, exists := r.agents[agent.Name()]; !exists {
		r.order = append(r.order, agent.Name())
	}
	r.agents[agent.Name()] = agent
}

// GetAgent 根据名称检索一个 Agent。
func (r *LocalRegistry) GetAgent(name string) (Agent, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	agent, found := r.agents[name]
	return agent, found
}

// ListAgents 按注册顺序返回所有已注册的 Agent。
func (r *LocalRegistry) ListAgents() []Agent {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	agents := make([]Agent, 0, len(r.order))
	for _, name := range r.order {
		agents = append(agents, r.agents[name])
	}
	return agents
}

// Statuses 对所有已注册的 Agent 执行一次健康检查。
func (r *LocalRegistry) Statuses(ctx context.Context) []models.AgentStatus {
	agents := r.ListAgents()
	statuses := make([]models.AgentStatus, 0, len(agents))
	for _, a := range agents {
		statuses = append(statuses, models.AgentStatus{
			Name:    a.Name(),
			Healthy: a.HealthCheck(ctx),
		})
	}
	return statuses
}
