package agent_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripflow/internal/agents"
	"tripflow/internal/config"
	"tripflow/pkg/utils"
)

var Module = fx.Provide(provideAgentFactory)

func provideAgentFactory(cfg config.Config, creds config.CredentialSource, sink utils.DebugSink, logger *zap.Logger) *agents.AgentFactory {
	return agents.NewAgentFactory(cfg, creds, sink, logger)
}
