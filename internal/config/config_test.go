package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Transport != TransportStdio {
		t.Fatalf("expected stdio transport, got %s", cfg.Transport)
	}
	if cfg.TopN != 4 {
		t.Fatalf("expected default top_n 4, got %d", cfg.TopN)
	}
	if cfg.ConversionTarget != 80.0 || cfg.ABSTarget != 1.8 || cfg.ABVTarget != 4500.0 {
		t.Fatalf("unexpected score targets: %v/%v/%v", cfg.ConversionTarget, cfg.ABSTarget, cfg.ABVTarget)
	}
	if cfg.RecoveryRate != 0.6 {
		t.Fatalf("expected recovery_rate 0.6, got %v", cfg.RecoveryRate)
	}
	if len(cfg.AdvisorBackends) != 0 {
		t.Fatalf("expected no advisor backends by default, got %d", len(cfg.AdvisorBackends))
	}
}

func TestLoadEnvBackend(t *testing.T) {
	t.Setenv("STOREOPS_MCP_ANTHROPIC_API_KEY", "sk-ant-test")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.AdvisorBackends) != 1 {
		t.Fatalf("expected one advisor backend, got %d", len(cfg.AdvisorBackends))
	}
	if cfg.AdvisorBackends[0].Kind != "anthropic" {
		t.Fatalf("expected anthropic backend, got %s", cfg.AdvisorBackends[0].Kind)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	base := func() Config {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		return cfg
	}

	cfg := base()
	cfg.Transport = "udp"
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for unknown transport")
	}

	cfg = base()
	cfg.TopN = 0
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for top_n = 0")
	}

	cfg = base()
	cfg.MaxTopN = cfg.TopN - 1
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for max_top_n < top_n")
	}

	cfg = base()
	cfg.ConversionWeight = 1.5
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for weight outside [0,1]")
	}

	cfg = base()
	cfg.TierPoorBelow = cfg.TierCriticalBelow
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for non-ascending tier cut-offs")
	}

	cfg = base()
	cfg.AdvisorBackends = []AdvisorBackend{{Kind: "anthropic"}}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for backend without api key")
	}
}
