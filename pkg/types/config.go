package types

import "time"

// HTTPConfig holds shared HTTP settings used by every component that makes
// network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// ProxyURL is an optional HTTP/HTTPS proxy (e.g. "http://127.0.0.1:7890").
	// Empty means direct connection.
	ProxyURL string `json:"proxy_url,omitempty" yaml:"proxy_url,omitempty"`
}

// SourceConfig holds settings for the search-source clients.
type SourceConfig struct {
	HTTPConfig `yaml:",inline"`

	// Engines lists source names in priority order. The resolver consults
	// them one at a time and stops at the first match.
	// Default: dblp, google_scholar, crossref. semantic_scholar and pmlr
	// are also recognized.
	Engines []string `json:"engines" yaml:"engines"`

	// SemanticScholarAPIKey raises the Semantic Scholar rate limit.
	SemanticScholarAPIKey string `json:"semantic_scholar_api_key,omitempty" yaml:"semantic_scholar_api_key,omitempty"`

	// InterSourceDelay is the pause between unsuccessful source attempts
	// (default 500ms).
	InterSourceDelay time.Duration `json:"inter_source_delay" yaml:"inter_source_delay"`
}

// CacheConfig holds settings for the on-disk resolution cache.
type CacheConfig struct {
	// Dir is the cache directory (default ".paper-cache").
	Dir string `json:"dir" yaml:"dir"`

	// ExpiryDays is the time-to-live of a cache entry in days (default 30).
	// Entries older than this are treated as absent and purged on lookup.
	ExpiryDays int `json:"expiry_days" yaml:"expiry_days"`
}

// LLMConfig holds settings for the text-understanding capability used by
// the last-resort page extraction strategy. The API is OpenAI-compatible
// chat completions.
type LLMConfig struct {
	// Enabled gates LLM extraction entirely. When false the strategy
	// reports no pages without a network call.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// BaseURL is the API root (e.g. "https://api.openai.com/v1").
	BaseURL string `json:"base_url" yaml:"base_url"`

	// APIKey is the bearer token for the API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Model is the model identifier.
	Model string `json:"model" yaml:"model"`

	// Timeout is the request timeout for LLM calls, which run longer than
	// ordinary metadata fetches (default 60s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// BrowserConfig holds settings for the headless-rendering capability used
// when a plain fetch is blocked by an anti-automation challenge.
type BrowserConfig struct {
	// Enabled gates headless rendering. When false, blocked fetches fail
	// over to the next strategy instead.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// WaitTimeout bounds how long to wait for a challenge to clear before
	// giving up on the rendered page (default 20s).
	WaitTimeout time.Duration `json:"wait_timeout" yaml:"wait_timeout"`
}

// HistoryConfig holds settings for the SQLite resolution log.
type HistoryConfig struct {
	// Path is the database file (default ".paper-cache/history.db").
	// Empty disables history recording.
	Path string `json:"path" yaml:"path"`
}

// Config groups all component configurations.
type Config struct {
	Sources SourceConfig  `json:"sources" yaml:"sources"`
	Cache   CacheConfig   `json:"cache" yaml:"cache"`
	LLM     LLMConfig     `json:"llm" yaml:"llm"`
	Browser BrowserConfig `json:"browser" yaml:"browser"`
	History HistoryConfig `json:"history" yaml:"history"`
}

// Defaults fills zero-valued fields with working defaults.
func (c *Config) Defaults() {
	if c.Sources.Timeout == 0 {
		c.Sources.Timeout = 15 * time.Second
	}
	if c.Sources.UserAgent == "" {
		c.Sources.UserAgent = "paper-reference-agent/0.1 (mailto:maintainers@example.org)"
	}
	if len(c.Sources.Engines) == 0 {
		c.Sources.Engines = []string{"dblp", "google_scholar", "crossref"}
	}
	if c.Sources.InterSourceDelay == 0 {
		c.Sources.InterSourceDelay = 500 * time.Millisecond
	}
	if c.Cache.Dir == "" {
		c.Cache.Dir = ".paper-cache"
	}
	if c.Cache.ExpiryDays == 0 {
		c.Cache.ExpiryDays = 30
	}
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = "https://api.openai.com/v1"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "gpt-4o-mini"
	}
	if c.LLM.Timeout == 0 {
		c.LLM.Timeout = 60 * time.Second
	}
	if c.Browser.WaitTimeout == 0 {
		c.Browser.WaitTimeout = 20 * time.Second
	}
}
