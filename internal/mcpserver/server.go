package mcpserver

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"storeops-mcp/internal/advisor"
	"storeops-mcp/internal/cache"
	"storeops-mcp/internal/config"
	"storeops-mcp/internal/logging"
	"storeops-mcp/internal/mcpserver/prompts"
	"storeops-mcp/internal/mcpserver/resources"
	"storeops-mcp/internal/mcpserver/tools"
	"storeops-mcp/internal/ops/correlate"
	"storeops-mcp/internal/ops/identity"
	"storeops-mcp/internal/ops/pipeline"
	"storeops-mcp/internal/ops/plan"
	"storeops-mcp/internal/ops/severity"
	"storeops-mcp/internal/safety"
	"storeops-mcp/internal/store"
	"storeops-mcp/internal/version"
)

type Server struct {
	cfg    config.Config
	logger *zap.Logger
	runs   *store.Store
	srv    *mcp.Server
}

// New wires the full analysis stack and registers tools, prompts, and
// resources. The run store is optional; a missing DSN disables the
// persistence tools without failing startup.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Server, error) {
	impl := &mcp.Implementation{Name: cfg.AppName, Version: version.Version}
	m := mcp.NewServer(impl, nil)

	resolver := identity.NewResolver()
	engine := correlate.New(resolver, severity.TierThresholds{
		Critical: cfg.TierCriticalBelow,
		Poor:     cfg.TierPoorBelow,
		Average:  cfg.TierAverageBelow,
	}, logger)
	selector := correlate.NewSelector(severity.NewScorer(severity.Thresholds{
		ConversionTarget: cfg.ConversionTarget,
		ABSTarget:        cfg.ABSTarget,
		ABVTarget:        cfg.ABVTarget,
		ConversionWeight: cfg.ConversionWeight,
		ABSWeight:        cfg.ABSWeight,
		ABVWeight:        cfg.ABVWeight,
	}))

	chain, err := buildAdvisorChain(cfg, logger)
	if err != nil {
		return nil, err
	}
	var client plan.AdvisorClient
	advisorNames := []string{}
	if chain.Len() > 0 {
		client = chain
		advisorNames = chain.Names()
	}
	dispatcher := plan.NewDispatcher(client,
		time.Duration(cfg.InterCallDelayMs)*time.Millisecond,
		cfg.AdvisorMaxTokens, logger)
	pipe := pipeline.New(engine, selector, dispatcher, cfg.TopN, cfg.RecoveryRate, logger)

	var runs *store.Store
	if cfg.DatabaseDSN != "" {
		runs, err = store.New(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
	}

	deps := tools.Dependencies{
		Logger:       logging.WithComponent(logger, "tools"),
		Config:       cfg,
		Guardrails:   safety.NewGuardrails(cfg),
		Cache:        cache.New(),
		Store:        runs,
		Pipeline:     pipe,
		Resolver:     resolver,
		AdvisorNames: advisorNames,
	}
	tools.Register(m, deps)
	prompts.RegisterAll(m, deps)
	resources.RegisterAll(m, deps)

	logger.Info("server wired",
		zap.Strings("advisor_backends", advisorNames),
		zap.Bool("store_enabled", runs != nil),
		zap.Int("top_n", cfg.TopN),
	)
	return &Server{cfg: cfg, logger: logger, runs: runs, srv: m}, nil
}

func buildAdvisorChain(cfg config.Config, logger *zap.Logger) (*advisor.Chain, error) {
	specs := make([]advisor.Spec, 0, len(cfg.AdvisorBackends))
	for _, b := range cfg.AdvisorBackends {
		logger.Debug("configuring advisor backend",
			zap.String("kind", b.Kind),
			zap.String("api_key", safety.MaskAPIKey(b.APIKey)),
		)
		specs = append(specs, advisor.Spec{Kind: b.Kind, APIKey: b.APIKey, Model: b.Model, BaseURL: b.BaseURL})
	}
	backends, err := advisor.FromSpecs(specs)
	if err != nil {
		return nil, err
	}
	policy := advisor.Policy{
		MaxAttempts: cfg.AdvisorMaxAttempts,
		BaseBackoff: time.Second,
		CallTimeout: time.Duration(cfg.AdvisorTimeoutSeconds) * time.Second,
	}
	return advisor.NewChain(policy, logger, backends...), nil
}

// Run runs the server with the provided transport (e.g., &mcp.StdioTransport{}).
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	return s.srv.Run(ctx, transport)
}

func (s *Server) Close() {
	if s.runs != nil {
		s.runs.Close()
	}
}
