package model

import "time"

// Config is the complete runtime configuration. All tunables (scoring
// weights, the trusted-domain table, provider settings) live here so
// adjustments happen in one place.
type Config struct {
	HTTP      HTTPConfig            `yaml:"http" mapstructure:"http"`
	Providers ProvidersConfig       `yaml:"providers" mapstructure:"providers"`
	Scoring   Weights               `yaml:"scoring" mapstructure:"scoring"`
	Trusted   map[string]SourceType `yaml:"trusted_domains" mapstructure:"trusted_domains"`
	Server    ServerConfig          `yaml:"server" mapstructure:"server"`
	LLM       LLMConfig             `yaml:"llm" mapstructure:"llm"`
	Verbose   bool                  `yaml:"verbose" mapstructure:"verbose"`
}

// HTTPConfig controls the outbound fetch client shared by providers.
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent     string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
}

// ProvidersConfig controls the search provider adapters.
type ProvidersConfig struct {
	BraveAPIKey     string        `yaml:"brave_api_key" mapstructure:"brave_api_key"`
	BraveResults    int           `yaml:"brave_results" mapstructure:"brave_results"`
	DuckDuckGo      bool          `yaml:"duckduckgo" mapstructure:"duckduckgo"`
	Bing            bool          `yaml:"bing" mapstructure:"bing"`
	BingResults     int           `yaml:"bing_results" mapstructure:"bing_results"`
	PerCallTimeout  time.Duration `yaml:"per_call_timeout" mapstructure:"per_call_timeout"`
	CacheTTL        time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`
	RequestsPerSec  float64       `yaml:"requests_per_sec" mapstructure:"requests_per_sec"`
	Burst           int           `yaml:"burst" mapstructure:"burst"`
	FanoutWorkers   int           `yaml:"fanout_workers" mapstructure:"fanout_workers"`
	MaxQueryVariant int           `yaml:"max_query_variants" mapstructure:"max_query_variants"`
}

// Weights holds the additive scoring increments. Each signal contributes
// a bounded increment; the sum is clamped to [0,1].
type Weights struct {
	Base                float64 `yaml:"base" mapstructure:"base"`
	TrustedDomain       float64 `yaml:"trusted_domain" mapstructure:"trusted_domain"`
	CompanyMention      float64 `yaml:"company_mention" mapstructure:"company_mention"`
	AliasMention        float64 `yaml:"alias_mention" mapstructure:"alias_mention"`
	Corroboration       float64 `yaml:"corroboration" mapstructure:"corroboration"`
	CorroborationCap    float64 `yaml:"corroboration_cap" mapstructure:"corroboration_cap"`
	MissingTitlePenalty float64 `yaml:"missing_title_penalty" mapstructure:"missing_title_penalty"`

	// StrongMatch is the display threshold: below it the response
	// message flags the best match as low-confidence.
	StrongMatch float64 `yaml:"strong_match" mapstructure:"strong_match"`
}

// ServerConfig controls the HTTP API surface.
type ServerConfig struct {
	Addr           string        `yaml:"addr" mapstructure:"addr"`
	AllowedOrigins []string      `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	RequestTimeout time.Duration `yaml:"request_timeout" mapstructure:"request_timeout"`
}

// LLMConfig configures the optional summary provider. Empty Provider
// disables summaries entirely.
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"`
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
}

// DefaultConfig returns the built-in defaults. The trusted-domain set
// and weights mirror the documented scoring rules.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:       10 * time.Second,
			UserAgent:     "rolefinder/0.1 (+https://github.com/mkarpov/rolefinder)",
			MaxBodyBytes:  2_000_000,
			RespectRobots: false,
		},
		Providers: ProvidersConfig{
			BraveResults:    8,
			DuckDuckGo:      true,
			Bing:            true,
			BingResults:     6,
			PerCallTimeout:  10 * time.Second,
			CacheTTL:        5 * time.Minute,
			RequestsPerSec:  2,
			Burst:           4,
			FanoutWorkers:   6,
			MaxQueryVariant: 8,
		},
		Scoring: Weights{
			Base:                0.10,
			TrustedDomain:       0.35,
			CompanyMention:      0.20,
			AliasMention:        0.20,
			Corroboration:       0.10,
			CorroborationCap:    0.30,
			MissingTitlePenalty: 0.10,
			StrongMatch:         0.50,
		},
		Trusted: DefaultTrustedDomains(),
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
			RequestTimeout: 60 * time.Second,
		},
		LLM: LLMConfig{
			MaxTokens: 500,
			Timeout:   30,
		},
	}
}

// DefaultTrustedDomains maps domain suffixes to source types. Hosts are
// matched by longest suffix; anything else is generic_web.
func DefaultTrustedDomains() map[string]SourceType {
	return map[string]SourceType{
		"linkedin.com":   SourceLinkedIn,
		"wikipedia.org":  SourceWikipedia,
		"crunchbase.com": SourceCrunchbase,
		"bloomberg.com":  SourceNews,
		"reuters.com":    SourceNews,
		"forbes.com":     SourceNews,
		"ft.com":         SourceNews,
		"nytimes.com":    SourceNews,
	}
}
