package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Transport string

const (
	TransportStdio      Transport = "stdio"
	TransportSSE        Transport = "sse"
	TransportStreamable Transport = "streamable"
)

// AdvisorBackend configures one advisory provider. Backends are tried in
// list order.
type AdvisorBackend struct {
	Kind    string `mapstructure:"kind"` // anthropic|openai
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

type Config struct {
	Transport Transport `mapstructure:"transport"`
	HTTPAddr  string    `mapstructure:"http_addr"`
	HTTPPort  int       `mapstructure:"http_port"`
	HTTPPath  string    `mapstructure:"http_path"`

	AppName  string `mapstructure:"app_name"`
	LogLevel string `mapstructure:"log_level"`

	// Optional run persistence. Empty DSN disables the store.
	DatabaseDSN           string `mapstructure:"database_dsn"`
	ConnectTimeoutSeconds int    `mapstructure:"connect_timeout_seconds"`

	// Advisory providers. Empty list means every plan is rule-based.
	AdvisorBackends       []AdvisorBackend `mapstructure:"advisor_backends"`
	AdvisorTimeoutSeconds int              `mapstructure:"advisor_timeout_seconds"`
	AdvisorMaxAttempts    int              `mapstructure:"advisor_max_attempts"`
	AdvisorMaxTokens      int              `mapstructure:"advisor_max_tokens"`
	InterCallDelayMs      int              `mapstructure:"inter_call_delay_ms"`

	// Selection and input guardrails.
	TopN            int `mapstructure:"top_n"`
	MaxTopN         int `mapstructure:"max_top_n"`
	MaxStoresPerRun int `mapstructure:"max_stores_per_run"`

	// Badness scoring constants. Business values carried from the
	// retail performance playbook; adjust only with the domain owner.
	ConversionTarget float64 `mapstructure:"conversion_target"`
	ABSTarget        float64 `mapstructure:"abs_target"`
	ABVTarget        float64 `mapstructure:"abv_target"`
	ConversionWeight float64 `mapstructure:"conversion_weight"`
	ABSWeight        float64 `mapstructure:"abs_weight"`
	ABVWeight        float64 `mapstructure:"abv_weight"`

	// Staff tier conversion cut-offs, ascending.
	TierCriticalBelow float64 `mapstructure:"tier_critical_below"`
	TierPoorBelow     float64 `mapstructure:"tier_poor_below"`
	TierAverageBelow  float64 `mapstructure:"tier_average_below"`

	// Share of reported revenue loss assumed recoverable for the
	// summary figure.
	RecoveryRate float64 `mapstructure:"recovery_rate"`

	EnableCaching   bool `mapstructure:"enable_caching"`
	CacheTTLSeconds int  `mapstructure:"cache_ttl_seconds"`
}

func defaults(v *viper.Viper) {
	v.SetDefault("transport", string(TransportStdio))
	v.SetDefault("http_addr", "127.0.0.1")
	v.SetDefault("http_port", 8485)
	v.SetDefault("http_path", "/mcp")
	v.SetDefault("app_name", "storeops-mcp")
	v.SetDefault("log_level", "info")
	v.SetDefault("database_dsn", "")
	v.SetDefault("connect_timeout_seconds", 5)
	v.SetDefault("advisor_timeout_seconds", 45)
	v.SetDefault("advisor_max_attempts", 3)
	v.SetDefault("advisor_max_tokens", 2048)
	v.SetDefault("inter_call_delay_ms", 2000)
	v.SetDefault("top_n", 4)
	v.SetDefault("max_top_n", 20)
	v.SetDefault("max_stores_per_run", 500)
	v.SetDefault("conversion_target", 80.0)
	v.SetDefault("abs_target", 1.8)
	v.SetDefault("abv_target", 4500.0)
	v.SetDefault("conversion_weight", 0.70)
	v.SetDefault("abs_weight", 0.15)
	v.SetDefault("abv_weight", 0.15)
	v.SetDefault("tier_critical_below", 40.0)
	v.SetDefault("tier_poor_below", 55.0)
	v.SetDefault("tier_average_below", 70.0)
	v.SetDefault("recovery_rate", 0.6)
	v.SetDefault("enable_caching", true)
	v.SetDefault("cache_ttl_seconds", 300)
}

func Load() (Config, error) {
	v := viper.New()
	defaults(v)
	v.SetEnvPrefix("STOREOPS_MCP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Flags override (parse early to locate config file)
	fs := pflag.NewFlagSet(os.Args[0], pflag.ContinueOnError)
	var cfgPathFlag string
	fs.StringVarP(&cfgPathFlag, "config", "c", "", "Config file path (yaml|json|toml)")
	fs.String("transport", string(TransportStdio), "Transport: stdio|sse|streamable")
	fs.String("http-addr", "127.0.0.1", "HTTP listen address (sse/streamable)")
	fs.Int("http-port", 8485, "HTTP listen port (sse/streamable)")
	fs.String("http-path", "/mcp", "HTTP endpoint path (sse/streamable)")
	fs.String("app-name", "storeops-mcp", "Application name")
	fs.String("log-level", "info", "Log level")
	fs.String("database-dsn", "", "Postgres DSN for run persistence (optional)")
	fs.Int("connect-timeout-seconds", 5, "DB connection timeout in seconds")
	fs.Int("advisor-timeout-seconds", 45, "Per-advisor-call timeout in seconds")
	fs.Int("advisor-max-attempts", 3, "Retry attempts per advisor backend")
	fs.Int("advisor-max-tokens", 2048, "Max output tokens per advisory call")
	fs.Int("inter-call-delay-ms", 2000, "Delay between advisor calls across stores")
	fs.Int("top-n", 4, "Number of worst stores to plan via the advisor")
	fs.Int("max-top-n", 20, "Upper bound callers may request for top-n")
	fs.Int("max-stores-per-run", 500, "Maximum input stores accepted per run")
	fs.Bool("enable-caching", true, "Enable analysis result caching")
	fs.Int("cache-ttl-seconds", 300, "Analysis cache TTL in seconds")

	_ = fs.Parse(os.Args[1:])

	// Config file resolution
	cfgPath := cfgPathFlag
	if cfgPath == "" {
		cfgPath = os.Getenv("STOREOPS_MCP_CONFIG")
	}
	if cfgPath != "" {
		if err := readConfigFile(v, cfgPath); err != nil {
			return Config{}, err
		}
	} else {
		_ = readDefaultConfig(v) // best-effort
	}

	// Flags override config
	_ = v.BindPFlags(fs)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	applyEnvBackends(&cfg)
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnvBackends appends backends from bare API-key env vars when no
// backend list was configured, so the common single-provider setup needs
// no config file.
func applyEnvBackends(cfg *Config) {
	if len(cfg.AdvisorBackends) > 0 {
		return
	}
	if key := os.Getenv("STOREOPS_MCP_ANTHROPIC_API_KEY"); key != "" {
		cfg.AdvisorBackends = append(cfg.AdvisorBackends, AdvisorBackend{Kind: "anthropic", APIKey: key})
	}
	if key := os.Getenv("STOREOPS_MCP_OPENAI_API_KEY"); key != "" {
		cfg.AdvisorBackends = append(cfg.AdvisorBackends, AdvisorBackend{Kind: "openai", APIKey: key})
	}
}

func Validate(cfg Config) error {
	switch cfg.Transport {
	case TransportStdio, TransportSSE, TransportStreamable:
	default:
		return fmt.Errorf("config: transport must be one of [%s,%s,%s]",
			TransportStdio, TransportSSE, TransportStreamable)
	}
	if cfg.ConnectTimeoutSeconds <= 0 {
		return errors.New("config: connect_timeout_seconds must be > 0")
	}
	if cfg.AdvisorTimeoutSeconds <= 0 {
		return errors.New("config: advisor_timeout_seconds must be > 0")
	}
	if cfg.AdvisorMaxAttempts <= 0 {
		return errors.New("config: advisor_max_attempts must be > 0")
	}
	if cfg.AdvisorMaxTokens <= 0 {
		return errors.New("config: advisor_max_tokens must be > 0")
	}
	if cfg.InterCallDelayMs < 0 {
		return errors.New("config: inter_call_delay_ms must be >= 0")
	}
	if cfg.TopN <= 0 {
		return errors.New("config: top_n must be > 0")
	}
	if cfg.MaxTopN < cfg.TopN {
		return errors.New("config: max_top_n must be >= top_n")
	}
	if cfg.MaxStoresPerRun <= 0 {
		return errors.New("config: max_stores_per_run must be > 0")
	}
	for _, w := range []float64{cfg.ConversionWeight, cfg.ABSWeight, cfg.ABVWeight} {
		if w < 0 || w > 1 {
			return errors.New("config: score weights must be within [0,1]")
		}
	}
	if cfg.ConversionTarget <= 0 || cfg.ABSTarget <= 0 || cfg.ABVTarget <= 0 {
		return errors.New("config: score targets must be > 0")
	}
	if !(cfg.TierCriticalBelow < cfg.TierPoorBelow && cfg.TierPoorBelow < cfg.TierAverageBelow) {
		return errors.New("config: staff tier cut-offs must be ascending")
	}
	if cfg.RecoveryRate < 0 || cfg.RecoveryRate > 1 {
		return errors.New("config: recovery_rate must be within [0,1]")
	}
	if cfg.CacheTTLSeconds <= 0 {
		return errors.New("config: cache_ttl_seconds must be > 0")
	}
	for i, b := range cfg.AdvisorBackends {
		if b.Kind != "anthropic" && b.Kind != "openai" {
			return fmt.Errorf("config: advisor_backends[%d].kind must be anthropic or openai", i)
		}
		if b.APIKey == "" {
			return fmt.Errorf("config: advisor_backends[%d].api_key is required", i)
		}
	}
	return nil
}

func readConfigFile(v *viper.Viper, path string) error {
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	return nil
}

func readDefaultConfig(v *viper.Viper) error {
	paths := defaultConfigCandidates()
	exts := []string{"yaml", "yml", "json", "toml"}
	for _, base := range paths {
		for _, ext := range exts {
			candidate := base + "." + ext
			if _, err := os.Stat(candidate); err == nil {
				v.SetConfigFile(candidate)
				if err := v.ReadInConfig(); err != nil {
					return fmt.Errorf("read default config %s: %w", candidate, err)
				}
				return nil
			}
		}
	}
	return nil
}

func defaultConfigCandidates() []string {
	var out []string
	cwd, _ := os.Getwd()
	if cwd != "" {
		out = append(out,
			filepath.Join(cwd, "storeops-mcp"),
			filepath.Join(cwd, "config", "storeops-mcp"),
		)
	}
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			xdg = filepath.Join(home, ".config")
		}
	}
	if xdg != "" {
		out = append(out, filepath.Join(xdg, "storeops-mcp", "config"))
	}
	return out
}
