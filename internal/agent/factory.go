package agent

import (
	"fmt"

	"github.com/Sportinger/argus/internal/config"
	httpclient "github.com/Sportinger/argus/pkg/http"
)

// New 是一个工厂函数，根据数据源配置创建对应的 Agent 实现。
func New(cfg config.AgentConfig, client *httpclient.Client) (Agent, error) {
	switch cfg.Name {
	case "gdelt":
		return NewGDELTAgent(cfg, client), nil
	case "opensanctions":
		return NewOpenSanctionsAgent(cfg, client), nil
	case "opencorporates":
		return NewOpenCorporatesAgent(cfg, client), nil
	case "adsb":
		return NewADSBAgent(cfg, client), nil
	default:
		return nil, fmt.Errorf("unknown agent source: %s", cfg.Name)
	}
}
